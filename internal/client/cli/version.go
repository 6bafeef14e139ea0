package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func (c *Cli) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offline: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			c.printVersion()
		},
	}
}

func (c *Cli) printVersion() {
	c.io.Printf("awxctl\n")
	c.io.Printf("Version:    %s\n", Version)
	c.io.Printf("Build Date: %s\n", BuildDate)
	c.io.Printf("Git Commit: %s\n", GitCommit)
	c.io.Printf("Go:         %s\n", runtime.Version())
}
