package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sethvargo/go-githubactions"
)

func actionWithInputs(inputs map[string]string) *githubactions.Action {
	return githubactions.New(
		githubactions.WithWriter(io.Discard),
		githubactions.WithGetenv(func(key string) string {
			return inputs[key]
		}),
	)
}

func TestFromActionDefaults(t *testing.T) {
	a := actionWithInputs(map[string]string{
		"INPUT_DATABASE-NAME": "sales",
	})

	cfg, err := FromAction(a)
	if err != nil {
		t.Fatalf("from action: %v", err)
	}
	if cfg.DatabaseName != "sales" {
		t.Fatalf("database name=%q", cfg.DatabaseName)
	}
	if !cfg.IfNotExists {
		t.Fatalf("expected if_not_exists default true")
	}
	if cfg.MaxAttempts != 10 {
		t.Fatalf("max attempts=%d, want 10", cfg.MaxAttempts)
	}
	if cfg.PollDelayMs != 1000 {
		t.Fatalf("poll delay=%d, want 1000", cfg.PollDelayMs)
	}
	if cfg.Parameters != nil {
		t.Fatalf("parameters=%v, want nil", cfg.Parameters)
	}
}

func TestFromActionAllInputs(t *testing.T) {
	a := actionWithInputs(map[string]string{
		"INPUT_DATABASE-NAME": "sales",
		"INPUT_DESCRIPTION":   "sales data",
		"INPUT_LOCATION-URI":  "s3://bucket/sales",
		"INPUT_PARAMETERS":    `{"owner":"data-eng","tier":"gold"}`,
		"INPUT_CATALOG-ID":    "222222222222",
		"INPUT_IF-NOT-EXISTS": "false",
		"INPUT_MAX-ATTEMPTS":  "5",
		"INPUT_POLL-DELAY-MS": "250",
		"INPUT_REGION":        "eu-west-1",
	})

	cfg, err := FromAction(a)
	if err != nil {
		t.Fatalf("from action: %v", err)
	}
	if cfg.IfNotExists {
		t.Fatalf("expected if_not_exists=false for literal false")
	}
	if cfg.Parameters["owner"] != "data-eng" || cfg.Parameters["tier"] != "gold" {
		t.Fatalf("parameters=%v", cfg.Parameters)
	}
	if cfg.CatalogID != "222222222222" {
		t.Fatalf("catalog id=%q", cfg.CatalogID)
	}
	if cfg.MaxAttempts != 5 || cfg.PollDelayMs != 250 {
		t.Fatalf("poll settings=%d/%d", cfg.MaxAttempts, cfg.PollDelayMs)
	}
	if cfg.AWS.Region != "eu-west-1" {
		t.Fatalf("region=%q", cfg.AWS.Region)
	}
}

func TestIfNotExistsLiteralFalseOnly(t *testing.T) {
	for _, raw := range []string{"", "true", "TRUE", "0", "no", "False"} {
		a := actionWithInputs(map[string]string{
			"INPUT_DATABASE-NAME": "sales",
			"INPUT_IF-NOT-EXISTS": raw,
		})
		cfg, err := FromAction(a)
		if err != nil {
			t.Fatalf("from action (%q): %v", raw, err)
		}
		if !cfg.IfNotExists {
			t.Fatalf("if-not-exists=%q should read as true", raw)
		}
	}
}

func TestFromActionRequiresName(t *testing.T) {
	if _, err := FromAction(actionWithInputs(nil)); err == nil {
		t.Fatalf("expected error for missing database-name")
	}
}

func TestParseParameters(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]string
		wantErr bool
	}{
		{name: "empty", raw: "", want: nil},
		{name: "flat object", raw: `{"a":"b"}`, want: map[string]string{"a": "b"}},
		{name: "array", raw: `[1,2]`, wantErr: true},
		{name: "nested value", raw: `{"a":{"b":"c"}}`, wantErr: true},
		{name: "numeric value", raw: `{"a":1}`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "malformed", raw: `{"a":`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParameters(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tt.raw, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parameters=%v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Fatalf("parameters[%s]=%q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestFromActionRejectsBadParameters(t *testing.T) {
	a := actionWithInputs(map[string]string{
		"INPUT_DATABASE-NAME": "sales",
		"INPUT_PARAMETERS":    "[1,2]",
	})
	_, err := FromAction(a)
	if err == nil || !strings.Contains(err.Error(), "parse parameters") {
		t.Fatalf("expected parameter parse error, got %v", err)
	}
}

func TestFromActionRejectsBadMaxAttempts(t *testing.T) {
	a := actionWithInputs(map[string]string{
		"INPUT_DATABASE-NAME": "sales",
		"INPUT_MAX-ATTEMPTS":  "many",
	})
	if _, err := FromAction(a); err == nil {
		t.Fatalf("expected error for non-numeric max-attempts")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database_name: sales
description: sales data
location_uri: s3://bucket/sales
parameters: '{"owner":"data-eng"}'
if_not_exists: false
max_attempts: 3
poll_delay_ms: 100
aws:
  region: us-east-1
  endpoint: http://localhost:4566
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DatabaseName != "sales" {
		t.Fatalf("database name=%q", cfg.DatabaseName)
	}
	if cfg.IfNotExists {
		t.Fatalf("expected if_not_exists=false")
	}
	if cfg.Parameters["owner"] != "data-eng" {
		t.Fatalf("parameters=%v", cfg.Parameters)
	}
	if cfg.MaxAttempts != 3 || cfg.PollDelayMs != 100 {
		t.Fatalf("poll settings=%d/%d", cfg.MaxAttempts, cfg.PollDelayMs)
	}
	if cfg.AWS.Endpoint != "http://localhost:4566" {
		t.Fatalf("endpoint=%q", cfg.AWS.Endpoint)
	}
}

func TestLoadFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("database_name: sales\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.IfNotExists || cfg.MaxAttempts != 10 || cfg.PollDelayMs != 1000 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
