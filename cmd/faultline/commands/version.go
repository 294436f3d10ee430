package commands

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/faultline/internal/cli/output"
	"github.com/kbukum/faultline/version"
)

func newVersionCmd(a *app) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the faultline version, build information and the error kinds this build understands.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				a.printer.Println(version.GetShortVersion())
				return nil
			}
			info := version.GetVersionInfo()
			if a.printer.Format() != output.FormatTable {
				return errOrNil(a.printer.Print(info))
			}
			return errOrNil(output.SimpleTable(a.printer.Writer(), output.Pairs{
				{"Version", info.Version},
				{"Commit", info.GitCommit},
				{"Built", info.BuildTime},
				{"Go version", info.GoVersion},
				{"OS/Arch", runtime.GOOS + "/" + runtime.GOARCH},
				{"Error kinds", strconv.Itoa(info.Kinds)},
				{"Encodings", strings.Join(info.Encodings, ", ")},
			}))
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Show only the version string")
	return cmd
}
