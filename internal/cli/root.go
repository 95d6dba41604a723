package cli

import (
	"github.com/spf13/cobra"
)

var (
	catalogPath string
	configPath  string
	logLevel    string
	verbose     bool
	jsonOut     bool
)

var rootCmd = &cobra.Command{
	Use:   "infradocs",
	Short: "Pico MES 인프라 문서 뷰어",
	Long: `infradocs - Pico MES 인프라 문서 뷰어

배포 환경별 설치/보안 문서를 터미널에서 조회합니다.

배포 티어:
  - standard: 표준 온프레미스 배포
  - vm:       고객 호스팅 가상 머신 배포
  - moderate: 제한된 네트워크 환경 배포
  - strict:   완전 에어갭 배포

인자 없이 실행하면 대화형 뷰어(TUI)가 시작됩니다.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runTui,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "문서 카탈로그 YAML 경로 (기본: 내장 문서)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "설정 파일 경로 (기본: ~/.infradocs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "로그 레벨 (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "로그를 stderr로도 출력")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "JSON 출력")

	rootCmd.Flags().StringVarP(&startTier, "tier", "t", "", "시작 티어")
}

// IsVerbose returns verbose flag
func IsVerbose() bool {
	return verbose
}

// IsJSON returns json output flag
func IsJSON() bool {
	return jsonOut
}
