package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "cinelookup", "config.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	requireContains(t, stdout, "Wrote sample configuration to "+target)
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	requireContains(t, string(data), "[tmdb]")

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("overwrite returned error: %v", err)
	}
}

func TestConfigValidateReportsMissingKey(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler())
	env.cfg.TMDB.APIKey = ""
	writeTestConfig(t, env.configPath, env.cfg)

	stdout, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("validate returned error: %v", err)
	}
	requireContains(t, stdout, "Config path: "+env.configPath)
	requireContains(t, stdout, "TMDB API key missing")
	requireContains(t, stdout, "Configuration valid")
}

func TestConfigShowMasksKeys(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler())

	stdout, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}
	requireContains(t, stdout, "[tmdb]")
	requireContains(t, stdout, "****")
	requireNotContains(t, stdout, "'test'")
	requireNotContains(t, stdout, "\"test\"")
}

func TestConfigSetKeyEnablesSearch(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler())

	stdout, _, err := runCLI(t, []string{"config", "set-key", "abc123"}, env.configPath)
	if err != nil {
		t.Fatalf("set-key returned error: %v", err)
	}
	requireContains(t, stdout, env.cfg.TMDB.APIKeyFile)
	data, err := os.ReadFile(env.cfg.TMDB.APIKeyFile)
	if err != nil {
		t.Fatalf("read key file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "abc123" {
		t.Fatalf("unexpected key file contents %q", data)
	}
	info, err := os.Stat(env.cfg.TMDB.APIKeyFile)
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 key file, got %v", perm)
	}
}

func TestConfigLanguagesMarksCurrent(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler())

	stdout, _, err := runCLI(t, []string{"config", "languages"}, env.configPath)
	if err != nil {
		t.Fatalf("languages returned error: %v", err)
	}
	requireContains(t, stdout, "Srpski")
	requireContains(t, stdout, "en-US")
	for _, line := range strings.Split(stdout, "\n") {
		if strings.Contains(line, "en-US") && !strings.Contains(line, "*") {
			t.Fatalf("expected current language marker on %q", line)
		}
	}
}
