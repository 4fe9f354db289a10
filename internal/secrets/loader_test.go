package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSecret(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}
	return path
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("HH_TEST_TOKEN", "  from-env \n")

	tests := []struct {
		name string
		src  Source
		want string
	}{
		{
			name: "file wins",
			src:  Source{File: writeSecret(t, "from-file\n"), Env: "HH_TEST_TOKEN", Value: "inline"},
			want: "from-file",
		},
		{
			name: "env before value",
			src:  Source{Env: "HH_TEST_TOKEN", Value: "inline"},
			want: "from-env",
		},
		{
			name: "empty env falls back to value",
			src:  Source{Env: "HH_TEST_TOKEN_UNSET", Value: " inline "},
			want: "inline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     Source
		message string
	}{
		{
			name:    "nothing configured",
			src:     Source{Name: "hh token"},
			message: "hh token is not configured",
		},
		{
			name:    "default name",
			src:     Source{},
			message: "secret is not configured",
		},
		{
			name:    "missing file",
			src:     Source{Name: "hh token", File: filepath.Join(t.TempDir(), "absent")},
			message: "reading hh token from file",
		},
		{
			name:    "empty file",
			src:     Source{Name: "hh token", File: writeSecret(t, "  \n"), Value: "inline"},
			message: "is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("expected error containing %q, got %q", tt.message, err)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	got, err := LoadOptional(Source{Name: "hh token", Env: "HH_TEST_TOKEN_UNSET"})
	if err != nil || got != "" {
		t.Fatalf("expected empty secret without error, got %q, %v", got, err)
	}

	if _, err := LoadOptional(Source{File: filepath.Join(t.TempDir(), "absent")}); err == nil {
		t.Fatalf("expected error for unreadable file")
	}

	got, err = LoadOptional(Source{Value: "inline"})
	if err != nil || got != "inline" {
		t.Fatalf("expected inline secret, got %q, %v", got, err)
	}
}
