package cli

import (
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Dry-run every sync direction without prompts or mutation",
	Long: `Preview runs the dry-run step for the codebase push, the content push and
the content pull, reporting what each transfer would change. Nothing is
written locally or remotely and no confirmation is asked.

Examples:
  stagehand preview                        # Preview all directions
  stagehand preview --config staging.env   # Preview against another server`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		orchestrator, err := buildOrchestrator()
		if err != nil {
			return err
		}

		if err := orchestrator.Preflight(cmd.Context()); err != nil {
			return err
		}

		return orchestrator.PreviewAll(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
