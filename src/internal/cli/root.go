// Package cli provides the command-line surface for stagehand: the
// interactive deployment menu and its non-interactive helpers.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stagehand-sh/stagehand/src/internal/backup"
	"github.com/stagehand-sh/stagehand/src/internal/config"
	"github.com/stagehand-sh/stagehand/src/internal/deploy"
	"github.com/stagehand-sh/stagehand/src/internal/display"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "stagehand [choice]",
	Short: "Deployment sync between a local CMS workspace and a remote server",
	Long: `Stagehand synchronizes a CMS codebase and its content directory between the
local workspace and a single remote server, using rsync over ssh. Every
mutating transfer is previewed first and requires explicit confirmation, and
local content is snapshotted before a pull can overwrite it.

Examples:
  stagehand                # Interactive menu
  stagehand 1              # Pull content from the server
  stagehand 2              # Push codebase to the server
  stagehand preview        # Dry-run everything, touch nothing`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		choiceArg := ""
		if len(args) == 1 {
			choiceArg = args[0]
		}

		orchestrator, err := buildOrchestrator()
		if err != nil {
			return err
		}

		fmt.Println(display.CreateBanner("Stagehand Deployment Sync", colorEnabled()))
		fmt.Println()

		err = orchestrator.Run(cmd.Context(), choiceArg)
		if deploy.IsCancellation(err) {
			// A declined confirmation is a clean, intentional stop.
			return nil
		}

		return err
	},
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, buildTime, commit string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf(`stagehand version %s
Build time: %s
Commit: %s
`, version, buildTime, commit))
}

// Execute runs the root command for the stagehand CLI. Failures are rendered
// through the status renderer so they carry the same texture as the rest of
// the output, then returned for the exit-code mapping in main.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		out := display.NewStatusRenderer(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
		out.PrintError(err.Error())
	}

	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is deploy.env)")
}

func colorEnabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// buildOrchestrator loads the configuration and wires the real runner, prompt
// source and backup creator together.
func buildOrchestrator() (*deploy.Orchestrator, error) {
	cfg, err := config.NewLoader().Load(configFile)
	if err != nil {
		return nil, deploy.NewConfigurationError(err)
	}

	out := display.NewStatusRenderer(os.Stdout, colorEnabled())
	runner := deploy.NewExecRunner(cfg, os.Stdout, os.Stderr)
	creator := backup.NewCreator(cfg.BackupsDir, cfg.MaxBackups)

	return deploy.NewOrchestrator(cfg, runner, newSurveyPrompter(), creator, out), nil
}
