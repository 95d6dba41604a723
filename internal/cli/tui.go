package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/n0roo/infradocs/internal/selection"
	"github.com/n0roo/infradocs/internal/tui"
)

var startTier string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "문서 뷰어 TUI 실행",
	Long: `터미널 기반 문서 뷰어를 실행합니다.

키:
  1-9          티어 선택
  tab          다음 티어
  ↑/↓, enter   섹션 이동 / 펼치기·접기
  c            모두 접기
  ?            도움말
  q            종료`,
	RunE: runTui,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVarP(&startTier, "tier", "t", "", "시작 티어")
}

func runTui(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctrl := selection.ForCatalog(a.cat, selection.WithLogger(a.logger))
	if tier := a.initialTier(startTier); tier != ctrl.ActiveTier() {
		if err := ctrl.SelectTier(tier); err != nil {
			a.logger.Warn("start tier rejected", zap.String("tier", tier))
			return fmt.Errorf("시작 티어 %q를 찾을 수 없습니다 (사용 가능: %v): %w", tier, a.cat.Keys(), err)
		}
	}

	return tui.Run(a.cat, ctrl, a.cfg, a.logger)
}
