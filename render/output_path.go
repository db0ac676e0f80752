package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"sohtml/config"
	"sohtml/state"
)

const outputExt = ".html"

// Values holds the variables available to the output name template.
type Values struct {
	Context     string
	Source      string
	Annotations int
	Types       []string
	Date        string
}

// buildOutputPath returns the constructed output file path/name. It uses
// either the default naming scheme or the user-defined template, cleans up
// the path and if requested transliterates it.
func buildOutputPath(dst string, values Values, env *state.LocalEnv) string {
	defaultFile := buildDefaultFileName(values.Source, env)

	if env.Cfg.Render.OutputNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expandedName := expandOutputNameTemplate(values, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(dst, defaultFile)
	}

	return assemblePathWithSubdirs(dst, expandedName, env)
}

func buildDefaultFileName(source string, env *state.LocalEnv) string {
	if env.Cfg.Render.FileNameTransliterate {
		source = slug.Make(source)
	}
	return config.CleanFileName(source) + outputExt
}

func expandOutputNameTemplate(values Values, env *state.LocalEnv) string {
	values.Context = string(config.OutputNameTemplateFieldName)
	expandedName, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Render.OutputNameTemplate, values)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(expandedName)
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output
// path, cleaning and transliterating segments as needed.
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	pathSegments := splitAndCleanPath(expandedName)

	if len(pathSegments) == 0 {
		return outDir
	}

	fileName := cleanPathSegment(pathSegments[len(pathSegments)-1], env) + outputExt
	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)

	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}

	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
		path = head
	}

	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Render.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}

// expandTemplate expands a template string with the prepared values.
func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildValues(source string, annotations int, types []string) Values {
	return Values{
		Source:      source,
		Annotations: annotations,
		Types:       types,
		Date:        time.Now().Format("2006-01-02"),
	}
}
