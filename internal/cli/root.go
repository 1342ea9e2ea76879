package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/SpritePack/internal/export"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version and the
// version command. It also stamps exported manifests.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
	if v != "" {
		export.Version = v
	}
}

// Execute runs the atlaspack CLI with ctx as the root context.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "atlaspack",
		Short:        "Pack a folder of sprites into a texture atlas",
		Long:         `atlaspack scans a folder of images, orders them and packs them row by row into a single fixed-size texture atlas.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(versionString())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPackCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newFitCmd())
	root.AddCommand(newProjectCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func versionString() string {
	return fmt.Sprintf("atlaspack %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionString())
		},
	}
}
