package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/n0roo/infradocs/internal/catalog"
	"github.com/n0roo/infradocs/internal/view"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "배포 티어 목록",
	Args:  cobra.NoArgs,
	RunE:  runTiers,
}

var sectionsCmd = &cobra.Command{
	Use:   "sections <tier>",
	Short: "티어의 섹션 목록",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

var showCmd = &cobra.Command{
	Use:   "show <tier> [section...]",
	Short: "섹션 내용 출력",
	Long: `티어의 섹션 내용을 텍스트로 출력합니다.

섹션을 지정하지 않으면 티어의 모든 섹션을 출력합니다.

예시:
  infradocs show standard
  infradocs show strict backup support
  infradocs show vm requirements --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

var catalogDumpCmd = &cobra.Command{
	Use:   "catalog",
	Short: "내장 카탈로그 YAML 출력",
	Long: `내장 문서 카탈로그를 YAML로 출력합니다.

수정한 뒤 --catalog 플래그나 설정의 catalog 키로 지정할 수 있습니다.

예시:
  infradocs catalog > my-catalog.yaml
  infradocs --catalog my-catalog.yaml`,
	Args: cobra.NoArgs,
	RunE: runCatalogDump,
}

func init() {
	rootCmd.AddCommand(catalogDumpCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(showCmd)
}

type tierSummary struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	Sections int    `json:"sections"`
	Default  bool   `json:"default,omitempty"`
}

func runCatalogDump(cmd *cobra.Command, args []string) error {
	_, err := cmd.OutOrStdout().Write(catalog.DefaultYAML())
	return err
}

func runTiers(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	var summaries []tierSummary
	for _, t := range a.cat.Tiers() {
		sections, err := a.cat.Sections(t.Key)
		if err != nil {
			return err
		}
		summaries = append(summaries, tierSummary{
			Key:      t.Key,
			Title:    t.Title,
			Color:    t.Color,
			Icon:     t.Icon,
			Sections: len(sections),
			Default:  t.Key == a.initialTier(""),
		})
	}

	if jsonOut {
		return json.NewEncoder(out).Encode(summaries)
	}

	keyColor := color.New(color.FgCyan, color.Bold)
	fmt.Fprintf(out, "📚 배포 티어 (%d)\n\n", len(summaries))
	for i, s := range summaries {
		marker := " "
		if s.Default {
			marker = "*"
		}
		fmt.Fprintf(out, "%s [%d] %-10s %s (%d sections)\n",
			marker, i+1, keyColor.Sprint(s.Key), s.Title, s.Sections)
	}
	return nil
}

func runSections(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	tier, err := a.cat.Tier(args[0])
	if err != nil {
		return fmt.Errorf("티어를 찾을 수 없습니다 (사용 가능: %v): %w", a.cat.Keys(), err)
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return json.NewEncoder(out).Encode(tier.Sections)
	}

	keyColor := color.New(color.FgCyan)
	fmt.Fprintf(out, "%s\n\n", tier.Title)
	for _, s := range tier.Sections {
		suffix := ""
		if s.Diagram {
			suffix = " (diagram)"
		}
		fmt.Fprintf(out, "  %-16s %s%s\n", keyColor.Sprint(s.Key), s.Title, suffix)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	st, err := view.Expanded(a.cat, args[0], args[1:]...)
	if err != nil {
		return err
	}
	page, err := view.Build(a.cat, st)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(page)
	}
	printPage(cmd.OutOrStdout(), page)
	return nil
}
