package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/pressparse/internal/model"
)

const cliRelease = `FOR IMMEDIATE RELEASE

Acme Opens New Solar Panel Plant

RICHMOND, Va. — Oct 1, 2025 — Acme Corp today opened a new solar panel plant that will employ two hundred people from the surrounding region.

"This plant brings two hundred jobs to the region," said Jane Doe, CEO of Acme.

The plant will produce panels for municipal projects starting next spring, according to the company.

###
`

func TestParseCommand_JSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "release.txt")
	if err := os.WriteFile(path, []byte(cliRelease), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"parse", path, "--format", "json"})
	defer rootCmd.SetArgs(nil)

	if err := Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var report model.Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("Expected JSON report, got %v: %s", err, out.String())
	}
	if report.Subject != "Acme Opens New Solar Panel Plant" {
		t.Errorf("Expected headline as subject, got %q", report.Subject)
	}
	if report.ParseResult == nil || len(report.ParseResult.Quotes) != 1 {
		t.Errorf("Expected one quote in the report")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"releases/2025/Acme Plant.txt", "releases-2025-acme-plant"},
		{"https://www.prnewswire.com/news-releases/acme-301.html", "www-prnewswire-com-news-releases-acme-301"},
		{"///", "source"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}

	long := slugify(strings.Repeat("a", 100) + ".txt")
	if len(long) > 60 {
		t.Errorf("Expected slug capped at 60 chars, got %d", len(long))
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pressparse", "config.yaml")

	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"combine_distance: 300", "no_quotes: 40", "timeout: 30s", "OPENAI_API_KEY"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Expected config to contain %q", want)
		}
	}
	if strings.Contains(string(data), "api_key") {
		t.Error("Expected API key to be left out of the config file")
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("Expected error when the config file already exists")
	}
}
