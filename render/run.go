package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"sohtml/config"
	"sohtml/css"
	"sohtml/so"
	"sohtml/state"
)

// inlineSourceName names the output file when the text comes from the command
// line rather than a file.
const inlineSourceName = "annotated"

// Run implements the render command: read text and standoff annotations,
// produce an HTML page and write it to the destination directory or stdout.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	if cmd.Args().Len() < 2 {
		return errors.New("both text and annotations have to be specified")
	}
	if cmd.Args().Len() > 3 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[3:]))
	}

	text, source, err := readTextArg(cmd, env)
	if err != nil {
		return err
	}
	standoffs, err := readStandoffsArg(cmd, env)
	if err != nil {
		return err
	}

	env.Overwrite = cmd.Bool("overwrite")
	legend := !cmd.Bool("no-legend")

	if err := loadExtraStylesheet(env, log); err != nil {
		return err
	}

	log.Info("Rendering starting",
		zap.String("source", source),
		zap.Int("text_length", len(text)),
		zap.Int("standoffs", len(standoffs)))
	defer func(start time.Time) {
		log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	r := New(optionsFromConfig(env.Cfg), log)
	cssText, body, err := r.Render(text, standoffs, legend)
	if err != nil {
		return fmt.Errorf("unable to render annotations: %w", err)
	}
	doc := r.compose(cssText, body, string(env.ExtraCSS))

	env.Rpt.StoreData("render/generated.css", []byte(cssText))
	env.Rpt.StoreData("render/body.html", []byte(body))
	env.Rpt.StoreData("render/document.html", []byte(doc))

	dst := cmd.Args().Get(2)
	if dst == "" || dst == "-" {
		if _, err := os.Stdout.WriteString(doc); err != nil {
			return fmt.Errorf("unable to write result: %w", err)
		}
		return nil
	}

	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	out := buildOutputPath(dst, buildValues(source, len(standoffs), standoffTypes(standoffs)), env)

	if _, err := os.Stat(out); err == nil && !env.Overwrite {
		return fmt.Errorf("output file already exists: %s", out)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0700); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	log.Info("Result written", zap.String("file", out))
	return nil
}

// readTextArg returns the text to annotate and the source name used for
// output naming. With --text-file the first argument is a path, otherwise it
// is the text itself.
func readTextArg(cmd *cli.Command, env *state.LocalEnv) (string, string, error) {
	arg := cmd.Args().Get(0)
	if !cmd.Bool("text-file") {
		env.Rpt.StoreData("render/text.txt", []byte(arg))
		return arg, inlineSourceName, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("unable to read text from %q: %w", arg, err)
	}
	env.Rpt.Store("render/"+filepath.Base(arg), arg)
	name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
	return string(data), name, nil
}

// readStandoffsArg parses the annotations argument. With --so-file the second
// argument is a path, otherwise it is the JSON itself.
func readStandoffsArg(cmd *cli.Command, env *state.LocalEnv) ([]so.Standoff, error) {
	arg := cmd.Args().Get(1)
	data := []byte(arg)
	if cmd.Bool("so-file") {
		var err error
		if data, err = os.ReadFile(arg); err != nil {
			return nil, fmt.Errorf("unable to read annotations from %q: %w", arg, err)
		}
		env.Rpt.Store("render/"+filepath.Base(arg), arg)
	} else {
		env.Rpt.StoreData("render/standoffs.json", data)
	}
	standoffs, err := so.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse annotations: %w", err)
	}
	return standoffs, nil
}

// loadExtraStylesheet reads and validates the user stylesheet configured via
// render.stylesheet_path, keeping its normalized form in the environment.
func loadExtraStylesheet(env *state.LocalEnv, log *zap.Logger) error {
	path := env.Cfg.Render.StylesheetPath
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read style css from %q: %w", path, err)
	}
	sheet := css.NewParser(log).Parse(data, path)
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet construct skipped", zap.String("file", path), zap.String("detail", w))
	}
	env.ExtraCSS = []byte(sheet.String())
	env.Rpt.Store("render/"+filepath.Base(path), path)
	return nil
}

func optionsFromConfig(cfg *config.Config) Options {
	rc := cfg.Render
	opts := Options{
		Tag:            rc.Tag,
		VSpace:         rc.VSpace,
		BaseLineHeight: rc.BaseLineHeight,
		Darken:         rc.Colors.Darken,
		Seed:           rc.Colors.Seed,
		Presets:        rc.Colors.Presets,
		Palette:        rc.Colors.Palette,
		Headings: HeadingPolicy{
			Enable:    rc.Headings.Enable,
			MaxLength: rc.Headings.MaxLength,
			TopOffset: rc.Headings.TopOffset,
		},
	}
	if opts.Presets == nil {
		opts.Presets = presetColors
	}
	return opts
}

// standoffTypes returns unique annotation types in order of first appearance.
func standoffTypes(standoffs []so.Standoff) []string {
	var types []string
	seen := make(map[string]struct{})
	for _, st := range standoffs {
		if _, ok := seen[st.Type]; !ok {
			seen[st.Type] = struct{}{}
			types = append(types, st.Type)
		}
	}
	return types
}
