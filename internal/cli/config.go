package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/n0roo/infradocs/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "뷰어 설정 관리",
	Long: `infradocs 설정을 관리합니다.

설정 파일: ~/.infradocs/config.yaml (INFRADOCS_CONFIG 로 변경 가능)

예시:
  infradocs config show              # 현재 설정 표시
  infradocs config init              # 설정 초기화
  infradocs config set default_tier strict
  infradocs config get log.level
`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "설정 초기화",
	Long: `기본 설정으로 설정 파일을 생성합니다.

이미 파일이 있으면 --force 옵션이 필요합니다.
`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 출력",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

사용 가능한 키:
  catalog          외부 카탈로그 YAML 경로 (빈 값이면 내장 문서)
  default_tier     시작 티어
  theme.primary    기본 색상
  footer.contact   하단 연락처
  log.level        로그 레벨 (debug, info, warn, error)
  log.format       로그 형식 (text, json)
  log.file         로그 파일 경로

예시:
  infradocs config set default_tier vm
  infradocs config set log.level debug
`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "설정 값 조회",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var (
	configForce bool
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "기존 설정 덮어쓰기")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := GetConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return json.NewEncoder(out).Encode(map[string]interface{}{
			"path":       path,
			"configured": config.Exists(path),
			"config":     cfg,
		})
	}

	if !config.Exists(path) {
		fmt.Fprintln(out, "⚠️  설정 파일이 없어 기본값을 사용합니다.")
		fmt.Fprintln(out, "  생성: infradocs config init")
		fmt.Fprintln(out)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config marshal failed: %w", err)
	}
	fmt.Fprintf(out, "# %s\n", path)
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := GetConfigPath()
	if config.Exists(path) && !configForce {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n--force 옵션으로 덮어쓰기 가능", path)
	}

	cfg := config.Default()
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return json.NewEncoder(out).Encode(map[string]interface{}{
			"status": "created",
			"path":   path,
			"config": cfg,
		})
	}

	fmt.Fprintln(out, "✅ 설정 생성 완료!")
	fmt.Fprintf(out, "   파일: %s\n", path)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "💡 시작 티어 변경:")
	fmt.Fprintln(out, "  infradocs config set default_tier strict")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), GetConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := GetConfigPath()
	key, value := args[0], args[1]

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	switch key {
	case "catalog":
		cfg.Catalog = value
	case "default_tier":
		cat, _, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		if !cat.HasTier(value) {
			return fmt.Errorf("알 수 없는 티어: %s\n사용 가능: %v", value, cat.Keys())
		}
		cfg.DefaultTier = value
	case "theme.primary":
		cfg.Theme.Primary = value
	case "footer.contact":
		cfg.Footer.Contact = value
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	case "log.file":
		cfg.Log.File = value
	default:
		return fmt.Errorf("알 수 없는 설정 키: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return json.NewEncoder(out).Encode(map[string]interface{}{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Fprintf(out, "✅ 설정 변경: %s = %s\n", key, value)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigPath())
	if err != nil {
		return err
	}

	key := args[0]
	var value interface{}

	switch key {
	case "catalog":
		value = cfg.Catalog
	case "default_tier":
		value = cfg.DefaultTier
	case "theme.primary":
		value = cfg.Theme.Primary
	case "theme.colors":
		value = cfg.Theme.Colors
	case "footer.title":
		value = cfg.Footer.Title
	case "footer.compliance":
		value = cfg.Footer.Compliance
	case "footer.contact":
		value = cfg.Footer.Contact
	case "log.level":
		value = cfg.Log.Level
	case "log.format":
		value = cfg.Log.Format
	case "log.file":
		value = cfg.Log.File
	default:
		return fmt.Errorf("알 수 없는 설정 키: %s", key)
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return json.NewEncoder(out).Encode(map[string]interface{}{
			"key":   key,
			"value": value,
		})
	}
	fmt.Fprintf(out, "%v\n", value)
	return nil
}
