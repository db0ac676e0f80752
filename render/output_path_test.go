package render

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"sohtml/config"
	"sohtml/state"
)

func newTestEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	return &state.LocalEnv{Cfg: cfg, Log: zap.NewNop()}
}

func TestBuildOutputPathDefaultTemplate(t *testing.T) {
	env := newTestEnv(t)
	got := buildOutputPath("/out", buildValues("doc", 3, []string{"A"}), env)
	if got != filepath.Join("/out", "doc.html") {
		t.Fatalf("buildOutputPath() = %q, want /out/doc.html", got)
	}
}

func TestBuildOutputPathCustomTemplate(t *testing.T) {
	env := newTestEnv(t)
	env.Cfg.Render.OutputNameTemplate = "{{.Source}}-{{.Annotations}}"
	got := buildOutputPath("/out", buildValues("doc", 3, nil), env)
	if got != filepath.Join("/out", "doc-3.html") {
		t.Fatalf("buildOutputPath() = %q, want /out/doc-3.html", got)
	}
}

func TestBuildOutputPathSubdirectories(t *testing.T) {
	env := newTestEnv(t)
	env.Cfg.Render.OutputNameTemplate = "rendered/{{.Source}}"
	got := buildOutputPath("/out", buildValues("doc", 0, nil), env)
	if got != filepath.Join("/out", "rendered", "doc.html") {
		t.Fatalf("buildOutputPath() = %q, want /out/rendered/doc.html", got)
	}
}

func TestBuildOutputPathBadTemplateFallsBack(t *testing.T) {
	env := newTestEnv(t)
	env.Cfg.Render.OutputNameTemplate = "{{.NoSuchField}}"
	got := buildOutputPath("/out", buildValues("doc", 0, nil), env)
	if got != filepath.Join("/out", "doc.html") {
		t.Fatalf("buildOutputPath() = %q, want fallback to /out/doc.html", got)
	}
}

func TestBuildOutputPathTransliterate(t *testing.T) {
	env := newTestEnv(t)
	env.Cfg.Render.FileNameTransliterate = true
	got := buildOutputPath("/out", buildValues("My Document", 0, nil), env)
	if got != filepath.Join("/out", "My-Document.html") {
		t.Fatalf("buildOutputPath() = %q, want /out/My-Document.html", got)
	}
}

func TestExpandTemplateSprigFunctions(t *testing.T) {
	got, err := expandTemplate(config.OutputNameTemplateFieldName, `{{.Source | upper}}`, Values{Source: "doc"})
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if got != "DOC" {
		t.Fatalf("expandTemplate() = %q, want DOC", got)
	}
}
