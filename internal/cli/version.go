package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/n0roo/infradocs/internal/config"
)

// Build information, set via -ldflags
var (
	Version = "0.1.0"
	Commit  = "none"
	Date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 출력",
	Long:  `infradocs 버전 및 빌드 정보를 출력합니다.`,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	info := map[string]interface{}{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
		"go":      runtime.Version(),
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
		"config":  GetConfigPath(),
	}

	if jsonOut {
		return json.NewEncoder(out).Encode(info)
	}

	fmt.Fprintf(out, "infradocs %s\n", Version)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Commit:    %s\n", Commit)
	fmt.Fprintf(out, "  Built:     %s\n", Date)
	fmt.Fprintf(out, "  Go:        %s\n", runtime.Version())
	fmt.Fprintf(out, "  OS/Arch:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(out)

	if config.Exists(GetConfigPath()) {
		fmt.Fprintf(out, "  Config:    %s\n", GetConfigPath())
	} else {
		fmt.Fprintf(out, "  Config:    ❌ (run 'infradocs config init' to create)\n")
	}
	return nil
}
