// Package commands implements the CLI commands for the depsize tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/depsize/internal/app"
	"go.trai.ch/depsize/internal/build"
)

// CLI represents the command line interface for depsize.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "depsize",
		Short: "Report the on-disk size of every dependency of a project",
		Long: "depsize resolves the dependencies of the project in the working directory,\n" +
			"measures the source checkout of each distinct package and prints the sizes\n" +
			"together with the total.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runMeasure,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.Flags()
	flags.StringP("config", "c", "depsize.yaml", "Path to the configuration file")
	flags.IntP("concurrency", "j", 0, "Number of packages measured at once (default: number of CPUs)")
	flags.String("manifest-path", "", "Path to Cargo.toml")
	flags.StringP("packages", "p", "", "Path to an already resolved package list")
	flags.Bool("direct-only", false, "Only list direct dependencies, at their highest resolved version")
	flags.StringArray("ignore", nil, "Skip files and directories matching this base-name glob (repeatable)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(c.newVersionCmd())

	c.rootCmd = rootCmd
	return c
}

func (c *CLI) runMeasure(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	opts := app.RunOptions{}
	opts.ConfigPath, _ = flags.GetString("config")
	opts.ManifestPath, _ = flags.GetString("manifest-path")
	opts.PackagesFile, _ = flags.GetString("packages")
	opts.Ignore, _ = flags.GetStringArray("ignore")
	opts.NoColor, _ = flags.GetBool("no-color")
	opts.LogJSON, _ = flags.GetBool("log-json")

	if flags.Changed("concurrency") {
		n, _ := flags.GetInt("concurrency")
		opts.Concurrency = &n
	}
	if flags.Changed("direct-only") {
		directOnly, _ := flags.GetBool("direct-only")
		opts.DirectOnly = &directOnly
	}

	return c.app.Run(cmd.Context(), opts)
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
