package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/n0roo/infradocs/internal/catalog"
	"github.com/n0roo/infradocs/internal/config"
)

// setupTestHome points HOME and the config path at a temp dir and returns it
func setupTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvConfigPath, filepath.Join(home, "config.yaml"))
	return home
}

// runCLI executes the root command with args and returns what it wrote
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// flag variables survive between Execute calls
	catalogPath, configPath, logLevel = "", "", ""
	verbose, jsonOut, configForce = false, false, false
	startTier, exportOut, exportFormat, exportTiers = "", "", "html", nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestTiersCommand(t *testing.T) {
	setupTestHome(t)

	out, err := runCLI(t, "tiers")
	if err != nil {
		t.Fatalf("tiers failed: %v", err)
	}
	for _, key := range []string{"standard", "vm", "moderate", "strict"} {
		if !strings.Contains(out, key) {
			t.Errorf("output missing tier %q:\n%s", key, out)
		}
	}
	if !strings.Contains(out, "* [1]") {
		t.Errorf("default tier should be marked first:\n%s", out)
	}
}

func TestTiersCommand_JSON(t *testing.T) {
	setupTestHome(t)

	out, err := runCLI(t, "tiers", "--json")
	if err != nil {
		t.Fatalf("tiers failed: %v", err)
	}

	var tiers []tierSummary
	if err := json.Unmarshal([]byte(out), &tiers); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(tiers) != 4 {
		t.Fatalf("expected 4 tiers, got %d", len(tiers))
	}
	if tiers[0].Key != "standard" || !tiers[0].Default {
		t.Errorf("first tier = %+v, want default standard", tiers[0])
	}
	if tiers[3].Key != "strict" || tiers[3].Color != "red" || tiers[3].Icon != "lock" {
		t.Errorf("last tier = %+v", tiers[3])
	}
}

func TestSectionsCommand(t *testing.T) {
	setupTestHome(t)

	out, err := runCLI(t, "sections", "standard")
	if err != nil {
		t.Fatalf("sections failed: %v", err)
	}
	if !strings.Contains(out, "Deployment Overview (diagram)") {
		t.Errorf("overview should be flagged with the diagram:\n%s", out)
	}
	if strings.Count(out, "(diagram)") != 1 {
		t.Errorf("exactly one section should carry the diagram:\n%s", out)
	}
}

func TestSectionsCommand_UnknownTier(t *testing.T) {
	setupTestHome(t)

	_, err := runCLI(t, "sections", "nope")
	if !errors.Is(err, catalog.ErrUnknownTier) {
		t.Errorf("expected ErrUnknownTier, got %v", err)
	}
}

func TestShowCommand(t *testing.T) {
	setupTestHome(t)

	out, err := runCLI(t, "show", "standard", "overview")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "System Architecture Diagram") {
		t.Error("overview should include the diagram")
	}
	if !strings.Contains(out, "SYSTEM ARCHITECTURE") {
		t.Error("heading should be printed")
	}
	if !strings.Contains(out, "  • One server per factory facility") {
		t.Error("list items should be bulleted")
	}
	if strings.Contains(out, "Network Architecture & Communication") {
		t.Error("sections not asked for should not be printed")
	}
}

func TestShowCommand_AllSections(t *testing.T) {
	setupTestHome(t)

	out, err := runCLI(t, "show", "strict")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, title := range []string{"Self-Managed Backup & Disaster Recovery", "On-Site Support Only"} {
		if !strings.Contains(out, title) {
			t.Errorf("output missing %q", title)
		}
	}
	if strings.Contains(out, "System Architecture Diagram") {
		t.Error("strict sections carry no diagram")
	}
}

func TestShowCommand_Errors(t *testing.T) {
	setupTestHome(t)

	if _, err := runCLI(t, "show", "nope"); !errors.Is(err, catalog.ErrUnknownTier) {
		t.Errorf("expected ErrUnknownTier, got %v", err)
	}
	if _, err := runCLI(t, "show", "vm", "gcchigh"); !errors.Is(err, catalog.ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}
}

func TestShowCommand_JSON(t *testing.T) {
	setupTestHome(t)

	out, err := runCLI(t, "show", "vm", "requirements", "--json")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}

	var page struct {
		Tier struct {
			Key string `json:"key"`
		} `json:"tier"`
		Sections []struct {
			Key      string            `json:"key"`
			Expanded bool              `json:"expanded"`
			Blocks   []json.RawMessage `json:"blocks"`
		} `json:"sections"`
	}
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if page.Tier.Key != "vm" {
		t.Errorf("tier = %q, want vm", page.Tier.Key)
	}
	for _, s := range page.Sections {
		want := s.Key == "requirements"
		if s.Expanded != want {
			t.Errorf("%s expanded = %v, want %v", s.Key, s.Expanded, want)
		}
		if want && len(s.Blocks) == 0 {
			t.Errorf("%s should carry rendered blocks", s.Key)
		}
		if !want && len(s.Blocks) != 0 {
			t.Errorf("%s is collapsed and should carry no blocks", s.Key)
		}
	}
}

func TestCatalogFlag(t *testing.T) {
	home := setupTestHome(t)

	path := filepath.Join(home, "catalog.yaml")
	data := `default_tier: lab
tiers:
  - key: lab
    title: Lab
    color: green
    icon: server
    sections:
      - key: intro
        title: Intro
        diagram: true
        content: "**Hello**"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "show", "lab", "--catalog", path)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "HELLO") {
		t.Errorf("expected custom catalog content:\n%s", out)
	}
}

func TestValidateCommand(t *testing.T) {
	setupTestHome(t)

	out, err := runCLI(t, "validate")
	if err != nil {
		t.Fatalf("built-in catalog should validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "built-in") {
		t.Errorf("expected catalog source in output:\n%s", out)
	}
	if strings.Contains(out, "✗") {
		t.Errorf("no check should fail:\n%s", out)
	}
}

func TestValidateCommand_BadFile(t *testing.T) {
	home := setupTestHome(t)

	path := filepath.Join(home, "bad.yaml")
	if err := os.WriteFile(path, []byte("tiers: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "validate", path)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if !strings.Contains(out, "✗") {
		t.Errorf("failed check should be marked:\n%s", out)
	}
}

func TestValidateCommand_BadDefaultTier(t *testing.T) {
	setupTestHome(t)

	cfg := config.Default()
	cfg.DefaultTier = "nope"
	if err := config.Save(config.ConfigPath(), cfg); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "validate", "--json")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	var report struct {
		OK     bool          `json:"ok"`
		Checks []checkResult `json:"checks"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if report.OK {
		t.Error("report should not be ok")
	}
	for _, c := range report.Checks {
		if c.Name == "default_tier" && c.OK {
			t.Error("default_tier check should fail")
		}
	}
}

func TestConfigCommands(t *testing.T) {
	setupTestHome(t)
	path := config.ConfigPath()

	out, err := runCLI(t, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(out), path)
	}

	if _, err := runCLI(t, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !config.Exists(path) {
		t.Fatal("config file should exist after init")
	}
	if _, err := runCLI(t, "config", "init"); err == nil {
		t.Error("second init without --force should fail")
	}
	if _, err := runCLI(t, "config", "init", "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}

	if _, err := runCLI(t, "config", "set", "default_tier", "strict"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	out, err = runCLI(t, "config", "get", "default_tier")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "strict" {
		t.Errorf("default_tier = %q, want strict", strings.TrimSpace(out))
	}

	if _, err := runCLI(t, "config", "set", "default_tier", "nope"); err == nil {
		t.Error("unknown tier should be rejected")
	}
	if _, err := runCLI(t, "config", "set", "log.level", "loud"); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := runCLI(t, "config", "set", "nope", "x"); err == nil {
		t.Error("unknown key should be rejected")
	}

	// the configured default tier is now marked in the tier list
	out, err = runCLI(t, "tiers", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var tiers []tierSummary
	if err := json.Unmarshal([]byte(out), &tiers); err != nil {
		t.Fatal(err)
	}
	for _, tier := range tiers {
		if tier.Default != (tier.Key == "strict") {
			t.Errorf("%s default = %v", tier.Key, tier.Default)
		}
	}
}

func TestExportCommand(t *testing.T) {
	home := setupTestHome(t)

	path := filepath.Join(home, "out", "docs.html")
	out, err := runCLI(t, "export", "--out", path)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output should name the file:\n%s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	for _, want := range []string{"<!DOCTYPE html>", "Strict Air-Gapped Deployment", "<svg"} {
		if !strings.Contains(html, want) {
			t.Errorf("export missing %q", want)
		}
	}
}

func TestExportCommand_TierToDirectory(t *testing.T) {
	home := setupTestHome(t)

	dir := filepath.Join(home, "exports") + "/"
	if _, err := runCLI(t, "export", "--tier", "vm", "--format", "markdown", "--out", dir); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	path := filepath.Join(home, "exports", "customer-hosted-virtual-machine-deployment.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected %s: %v", path, err)
	}
	if !strings.HasPrefix(string(data), "# Customer-Hosted Virtual Machine Deployment") {
		t.Errorf("unexpected markdown header:\n%.80s", data)
	}
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	setupTestHome(t)

	if _, err := runCLI(t, "export", "--format", "pdf"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestVersionCommand(t *testing.T) {
	setupTestHome(t)

	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "infradocs "+Version) {
		t.Errorf("unexpected version output:\n%s", out)
	}
	if !strings.Contains(out, "config init") {
		t.Error("missing config hint when no config file exists")
	}
}

func TestCatalogCommand(t *testing.T) {
	home := setupTestHome(t)

	out, err := runCLI(t, "catalog")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(home, "dump.yaml")
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("dumped catalog should load: %v", err)
	}
	if cat.Len() != 4 {
		t.Errorf("expected 4 tiers, got %d", cat.Len())
	}
}

func TestValidateCommand_NoDiagramIsValid(t *testing.T) {
	home := setupTestHome(t)

	path := filepath.Join(home, "plain.yaml")
	data := `tiers:
  - key: lab
    title: Lab
    color: green
    icon: server
    sections:
      - key: intro
        title: Intro
        content: "- one"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "validate", path, "--json")
	if err != nil {
		t.Fatalf("catalog without a diagram should validate: %v\n%s", err, out)
	}

	var report struct {
		OK     bool          `json:"ok"`
		Checks []checkResult `json:"checks"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !report.OK {
		t.Error("report should be ok")
	}
	for _, c := range report.Checks {
		switch c.Name {
		case "diagram":
			if !c.Info || c.Message != "0 section(s)" {
				t.Errorf("diagram = %+v, want info with zero count", c)
			}
		case "render":
			if !c.Info {
				t.Errorf("render = %+v, want info", c)
			}
		}
	}
}
