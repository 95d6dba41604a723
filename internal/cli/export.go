package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/n0roo/infradocs/internal/export"
)

var (
	exportOut    string
	exportFormat string
	exportTiers  []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "문서를 파일로 내보내기",
	Long: `모든 섹션을 펼친 상태로 문서를 파일로 내보냅니다.

형식: html (기본), markdown, json

예시:
  infradocs export                          # 모든 티어를 HTML로
  infradocs export --tier strict -o strict.html
  infradocs export --format markdown --out docs/`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "출력 파일 또는 디렉토리 (기본: 현재 디렉토리)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatHTML), "출력 형식")
	exportCmd.Flags().StringSliceVar(&exportTiers, "tier", nil, "내보낼 티어 (반복 가능, 기본: 전체)")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	mgr := export.NewManager(a.logger)
	format := export.Format(strings.ToLower(exportFormat))
	if _, err := mgr.Get(format); err != nil {
		return fmt.Errorf("%w (사용 가능: %v)", err, mgr.Formats())
	}

	doc, err := export.NewDocument(a.cat, a.cfg, exportTiers...)
	if err != nil {
		return err
	}

	path := exportOut
	switch {
	case path == "":
		path = mgr.Filename(doc, format)
	case strings.HasSuffix(path, "/") || filepath.Ext(path) == "":
		path = filepath.Join(path, mgr.Filename(doc, format))
	}

	if err := mgr.ExportToFile(doc, format, path); err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
			"status": "exported",
			"path":   path,
			"format": format,
			"pages":  len(doc.Pages),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %d개 티어를 내보냈습니다: %s\n", len(doc.Pages), path)
	return nil
}
