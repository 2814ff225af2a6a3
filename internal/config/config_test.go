package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, used, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if used != "" {
		t.Fatalf("expected no config file, got %q", used)
	}
	want := Defaults()
	want.Exclude = []string{}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".brudoc.yaml")
	data := "input: ./api\nformat: md\ntitle: From file\nexclude:\n  - \"*.draft\"\n  - tmp\n"
	if err := os.WriteFile(file, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BRUDOC_FORMAT", "json")
	t.Setenv("BRUDOC_TITLE", "From env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP(KeyInput, "i", "./Collection", "")
	flags.StringP(KeyFormat, "f", "html", "")
	flags.String(KeyTitle, "", "")
	flags.BoolP(KeyVerbose, "v", false, "")
	if err := flags.Parse([]string{"--title", "From flag", "-v"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, used, err := Load(LoadOptions{SearchPaths: []string{dir}, Flags: flags})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if used != file {
		t.Fatalf("expected %s used, got %q", file, used)
	}
	want := Config{
		Input:   "./api",
		Output:  "./docs",
		Format:  "json",
		Exclude: []string{"*.draft", "tmp"},
		Verbose: true,
		Title:   "From flag",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(file, []byte(`{"output":"site/index.html"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, used, err := Load(LoadOptions{File: file})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if used != file || cfg.Output != "site/index.html" {
		t.Fatalf("unexpected result %q %+v", used, cfg)
	}
	if _, _, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
