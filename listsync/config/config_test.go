package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listsync.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Config
	}{
		{
			name: "empty",
			in:   "",
			want: Default(),
		},
		{
			name: "full",
			in: `
separator = ";"
key_field = 2
updates = false
addr = ":9090"
lang = "go"
title = "users"
`,
			want: &Config{
				Separator: ";",
				KeyField:  2,
				Updates:   false,
				Addr:      ":9090",
				Lang:      "go",
				Title:     "users",
			},
		},
		{
			name: "partial",
			in:   "key_field = 1\n",
			want: &Config{
				Separator: ",",
				KeyField:  1,
				Updates:   true,
				Title:     "listsync",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeConfig(t, tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load result is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "syntax", in: "key_field = "},
		{name: "unknown_key", in: "color = true\n"},
		{name: "negative_key_field", in: "key_field = -1\n"},
		{name: "bad_addr", in: "addr = \"localhost\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.in)); err == nil {
				t.Errorf("Load() succeeded, want error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("Load() of missing file succeeded, want error")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.KeyField = -2
	cfg.Addr = "nope"

	var errs ValidateErrors
	if err := cfg.Validate(); !errors.As(err, &errs) {
		t.Fatalf("Validate() = %v, want ValidateErrors", err)
	}
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	if diff := cmp.Diff([]string{"key_field", "addr"}, fields); diff != "" {
		t.Errorf("invalid fields are different (-want, +got):\n%s", diff)
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}
