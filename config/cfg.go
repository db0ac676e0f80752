package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// ColorsConfig controls how highlight colors are assigned to annotation
	// types. Presets are consulted first, then palette entries in order of
	// first appearance, then colors generated from the seeded sequence.
	ColorsConfig struct {
		Seed    int64             `yaml:"seed"`
		Darken  float64           `yaml:"darken" validate:"gte=0,lte=1"`
		Presets map[string]string `yaml:"presets,omitempty" validate:"omitempty,dive,hexcolor"`
		Palette []string          `yaml:"palette,omitempty" validate:"omitempty,dive,hexcolor"`
	}

	// HeadingsConfig controls promotion of short "section" spans to heading
	// tags. This is a document structure guessing heuristic inherited from
	// annotated corpora where section titles are marked as plain sections.
	HeadingsConfig struct {
		Enable    bool `yaml:"enable"`
		MaxLength int  `yaml:"max_length" validate:"min=1"`
		TopOffset int  `yaml:"top_offset" validate:"min=0"`
	}

	RenderConfig struct {
		Tag                   string         `yaml:"tag" validate:"required,alphanum"`
		VSpace                int            `yaml:"vspace" validate:"min=0"`
		BaseLineHeight        int            `yaml:"base_line_height" validate:"min=1"`
		StylesheetPath        string         `yaml:"stylesheet_path,omitempty" sanitize:"path_clean" validate:"omitempty,filepath"`
		OutputNameTemplate    string         `yaml:"output_name_template"`
		FileNameTransliterate bool           `yaml:"file_name_transliterate"`
		Headings              HeadingsConfig `yaml:"headings"`
		Colors                ColorsConfig   `yaml:"colors"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Render    RenderConfig   `yaml:"render"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
