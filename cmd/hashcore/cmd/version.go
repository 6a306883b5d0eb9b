package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"massnet.org/hashcore/config"
	"massnet.org/hashcore/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.out, "%s %s (%s %s/%s)\n", config.AppName, version.GetVersion(),
				runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
