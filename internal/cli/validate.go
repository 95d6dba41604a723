package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/n0roo/infradocs/internal/catalog"
	"github.com/n0roo/infradocs/internal/config"
	"github.com/n0roo/infradocs/internal/logging"
	"github.com/n0roo/infradocs/internal/render"
)

// ErrValidationFailed is returned when any check fails
var ErrValidationFailed = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "카탈로그와 설정 검증",
	Long: `카탈로그 YAML과 설정 파일을 검증합니다.

파일을 지정하지 않으면 현재 사용 중인 카탈로그(--catalog, 설정, 내장 순)를 검증합니다.

예시:
  infradocs validate
  infradocs validate ./docs/catalog.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

type checkResult struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Info    bool   `json:"info,omitempty"`
	Message string `json:"message,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	var results []checkResult

	cfg, err := loadConfig()
	if err != nil {
		results = append(results, checkResult{Name: "config", Message: err.Error()})
		cfg = config.Default()
	} else {
		results = append(results, checkResult{Name: "config", OK: true, Message: GetConfigPath()})
	}

	var cat *catalog.Catalog
	if len(args) == 1 {
		cat, err = catalog.LoadFile(args[0])
		if err == nil {
			results = append(results, checkResult{Name: "catalog", OK: true, Message: args[0]})
		}
	} else {
		var source string
		cat, source, err = loadCatalog(cfg)
		if err == nil {
			results = append(results, checkResult{Name: "catalog", OK: true, Message: source})
		}
	}
	if err != nil {
		results = append(results, checkResult{Name: "catalog", Message: err.Error()})
	}

	if cat != nil {
		results = append(results, checkDefaultTier(cat, cfg))
		results = append(results, diagramInfo(cat))
		results = append(results, renderInfo(cat))
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
			logger.Warn("validation check failed",
				zap.String("check", r.Name),
				zap.String("message", r.Message),
			)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		if err := json.NewEncoder(out).Encode(map[string]interface{}{
			"ok":     failed == 0,
			"checks": results,
		}); err != nil {
			return err
		}
	} else {
		printChecks(out, results)
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s): %w", failed, ErrValidationFailed)
	}
	return nil
}

func checkDefaultTier(cat *catalog.Catalog, cfg *config.Config) checkResult {
	r := checkResult{Name: "default_tier"}
	key := cfg.DefaultTier
	if key == "" {
		key = cat.DefaultTier()
	}
	if !cat.HasTier(key) {
		r.Message = fmt.Sprintf("%q is not one of %v", key, cat.Keys())
		return r
	}
	r.OK = true
	r.Message = key
	return r
}

// diagramInfo counts the sections carrying the diagram flag. Any count,
// zero included, is valid.
func diagramInfo(cat *catalog.Catalog) checkResult {
	count := 0
	for _, key := range cat.Keys() {
		sections, _ := cat.Sections(key)
		for _, s := range sections {
			if s.Diagram {
				count++
			}
		}
	}
	return checkResult{
		Name:    "diagram",
		OK:      true,
		Info:    true,
		Message: fmt.Sprintf("%d section(s)", count),
	}
}

// renderInfo summarises the catalog size in rendered lines
func renderInfo(cat *catalog.Catalog) checkResult {
	sections, blocks := 0, 0
	for _, key := range cat.Keys() {
		list, _ := cat.Sections(key)
		for _, s := range list {
			sections++
			blocks += len(render.Render(s.Content))
		}
	}
	return checkResult{
		Name:    "render",
		OK:      true,
		Info:    true,
		Message: fmt.Sprintf("%d tiers, %d sections, %d lines", cat.Len(), sections, blocks),
	}
}

func printChecks(w io.Writer, results []checkResult) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	faint := color.New(color.Faint)

	for _, r := range results {
		mark := green.Sprint("✓")
		switch {
		case !r.OK:
			mark = red.Sprint("✗")
		case r.Info:
			mark = faint.Sprint("i")
		}
		fmt.Fprintf(w, "  %s %-13s %s\n", mark, r.Name, r.Message)
	}
}
