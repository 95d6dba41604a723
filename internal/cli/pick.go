package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/n0roo/infradocs/internal/catalog"
	"github.com/n0roo/infradocs/internal/tui"
	"github.com/n0roo/infradocs/internal/view"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "티어와 섹션을 골라서 출력",
	Long: `대화형으로 티어와 섹션을 선택한 뒤 선택한 섹션을 출력합니다.

TUI를 쓸 수 없는 환경(스크롤백이 필요한 경우 등)에서 유용합니다.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	theme := huh.ThemeCharm()

	tierKey := a.initialTier("")
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("배포 티어").
			Options(tierOptions(a.cat.Tiers())...).
			Value(&tierKey),
	)).WithTheme(theme).Run(); err != nil {
		return err
	}

	sections, err := a.cat.Sections(tierKey)
	if err != nil {
		return err
	}

	var picked []string
	if err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("섹션 (space로 선택, enter로 확인)").
			Options(sectionOptions(sections)...).
			Value(&picked),
	)).WithTheme(theme).Run(); err != nil {
		return err
	}
	if len(picked) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "선택한 섹션이 없습니다.")
		return nil
	}

	a.logger.Debug("sections picked",
		zap.String("tier", tierKey),
		zap.Strings("sections", picked),
	)

	st, err := view.Expanded(a.cat, tierKey, picked...)
	if err != nil {
		return err
	}
	page, err := view.Build(a.cat, st)
	if err != nil {
		return err
	}
	printPage(cmd.OutOrStdout(), page)
	return nil
}

func tierOptions(tiers []catalog.TierInfo) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(tiers))
	for _, t := range tiers {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s", tui.Icon(t.Icon), t.Title), t.Key))
	}
	return opts
}

func sectionOptions(sections []catalog.Section) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(sections))
	for _, s := range sections {
		opts = append(opts, huh.NewOption(s.Title, s.Key))
	}
	return opts
}
