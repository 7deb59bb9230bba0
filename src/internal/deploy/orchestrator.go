// Package deploy implements the synchronization workflow between a local CMS
// workspace and a single remote server: preflight checks, filter rule
// construction, previews, confirmations and the transfers themselves.
package deploy

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stagehand-sh/stagehand/src/internal/config"
	"github.com/stagehand-sh/stagehand/src/internal/display"
)

// Choice is one of the menu entries offered to the operator.
type Choice int

// Menu choices
const (
	ChoicePullContent  Choice = 1
	ChoicePushCodebase Choice = 2
	ChoicePushContent  Choice = 3
	ChoicePreviewAll   Choice = 4
	ChoiceExit         Choice = 5
)

// MenuOptions lists the menu entries in choice order.
var MenuOptions = []string{
	"Pull content from server",
	"Push codebase to server",
	"Push content to server",
	"Preview all pending changes",
	"Exit",
}

// ChoiceFromString parses a menu choice supplied on the command line.
func ChoiceFromString(s string) (Choice, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid menu choice %q", s)
	}

	choice := Choice(n)
	if choice < ChoicePullContent || choice > ChoiceExit {
		return 0, fmt.Errorf("invalid menu choice %d, must be 1-%d", n, len(MenuOptions))
	}

	return choice, nil
}

// BackupCreator snapshots the local content tree before a pull overwrites it.
type BackupCreator interface {
	// Create copies sourceDir into a fresh timestamped snapshot directory and
	// returns its path. An empty path with a nil error means there was
	// nothing to back up.
	Create(ctx context.Context, sourceDir, label string) (string, error)

	// Prune removes the oldest snapshots for label beyond the retention
	// limit.
	Prune(label string) error
}

// Orchestrator wires the menu choices to preflight checks, backups and the
// transfer executor.
type Orchestrator struct {
	cfg    config.Config
	runner Runner
	prompt Prompter
	backup BackupCreator
	out    *display.StatusRenderer
}

// NewOrchestrator creates an orchestrator for one interactive run.
func NewOrchestrator(cfg config.Config, runner Runner, prompt Prompter, backup BackupCreator, out *display.StatusRenderer) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		runner: runner,
		prompt: prompt,
		backup: backup,
		out:    out,
	}
}

// Run performs the preflight checks and dispatches a single menu choice. When
// choiceArg is empty the operator picks from the interactive menu.
func (o *Orchestrator) Run(ctx context.Context, choiceArg string) error {
	if err := o.Preflight(ctx); err != nil {
		return err
	}

	var (
		choice Choice
		err    error
	)

	if choiceArg != "" {
		choice, err = ChoiceFromString(choiceArg)
	} else {
		choice, err = o.selectChoice()
	}

	if err != nil {
		return err
	}

	return o.Dispatch(ctx, choice)
}

// Preflight verifies remote reachability (hard precondition) and remote path
// existence (soft, confirmable: the operator may be initializing a fresh
// remote).
func (o *Orchestrator) Preflight(ctx context.Context) error {
	o.out.PrintProgress(fmt.Sprintf("Checking connection to %s...", o.cfg.Host))

	if err := o.runner.Probe(ctx); err != nil {
		return NewConnectivityError(o.cfg.Host, err)
	}

	exists, err := o.runner.RemoteDirExists(ctx, o.cfg.RemotePath)
	if err != nil {
		return NewConnectivityError(o.cfg.Host, err)
	}

	if !exists {
		o.out.PrintWarning(fmt.Sprintf("Remote path %s does not exist on %s", o.cfg.RemotePath, o.cfg.Host))

		ok, err := o.prompt.Confirm("Continue anyway?", false)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}

		if !ok {
			return NewRemotePathError(o.cfg.RemotePath)
		}
	}

	return nil
}

// Dispatch runs the operation for a single menu choice.
func (o *Orchestrator) Dispatch(ctx context.Context, choice Choice) error {
	switch choice {
	case ChoicePullContent:
		return o.pullContent(ctx)
	case ChoicePushCodebase:
		return o.pushCodebase(ctx)
	case ChoicePushContent:
		return o.pushContent(ctx)
	case ChoicePreviewAll:
		return o.PreviewAll(ctx)
	case ChoiceExit:
		o.out.PrintInfo("Nothing synchronized")

		return nil
	default:
		return fmt.Errorf("invalid menu choice %d", choice)
	}
}

func (o *Orchestrator) selectChoice() (Choice, error) {
	idx, err := o.prompt.Select("What would you like to do?", MenuOptions)
	if err != nil {
		return 0, fmt.Errorf("menu selection failed: %w", err)
	}

	return Choice(idx + 1), nil
}

// pullContent snapshots the local content tree, then previews and executes the
// remote-to-local content transfer. The snapshot is best-effort: a failed
// backup is downgraded to a warning and the pull proceeds.
func (o *Orchestrator) pullContent(ctx context.Context) error {
	dir, err := o.backup.Create(ctx, o.cfg.ContentDir, "content")

	switch {
	case err != nil:
		de := NewBackupError(err)
		if de.Fatal {
			return de
		}

		o.out.PrintWarning(fmt.Sprintf("%s, continuing without one", de))
	case dir == "":
		o.out.PrintInfo("No local content directory yet, skipping backup")
	default:
		o.out.PrintSuccess(fmt.Sprintf("Local content backed up to %s", dir))

		if err := o.backup.Prune("content"); err != nil {
			o.out.PrintWarning(fmt.Sprintf("Could not prune old backups: %v", err))
		}
	}

	return NewExecutor(o.runner, o.prompt, o.out).Run(ctx, PullContentPlan(o.cfg))
}

func (o *Orchestrator) pushCodebase(ctx context.Context) error {
	o.out.PrintWarning(fmt.Sprintf("This overwrites the codebase on %s", o.cfg.Host))

	return NewExecutor(o.runner, o.prompt, o.out).Run(ctx, PushCodebasePlan(o.cfg))
}

// pushContent optionally re-runs the pull preview as a conflict check, then
// asks whether the push should be an exact mirror (delete remote extras) or
// additive-only before handing the plan to the executor.
func (o *Orchestrator) pushContent(ctx context.Context) error {
	check, err := o.prompt.Confirm("Preview remote content changes first (conflict check)?", false)
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}

	if check {
		if _, err := NewExecutor(o.runner, o.prompt, o.out).Preview(ctx, PullContentPlan(o.cfg)); err != nil {
			return err
		}
	}

	mirror, err := o.prompt.Confirm("Make remote an exact mirror (deletes remote-only files)? No keeps it additive-only", false)
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}

	return NewExecutor(o.runner, o.prompt, o.out).Run(ctx, PushContentPlan(o.cfg, mirror))
}

// PreviewAll runs the dry-run step for every direction with no prompts and no
// mutation. Individual preview failures are reported, not propagated, so one
// unreachable direction does not hide the others.
func (o *Orchestrator) PreviewAll(ctx context.Context) error {
	plans := []Plan{
		PushCodebasePlan(o.cfg),
		PushContentPlan(o.cfg, false),
		PullContentPlan(o.cfg),
	}

	for _, plan := range plans {
		if _, err := NewExecutor(o.runner, o.prompt, o.out).Preview(ctx, plan); err != nil {
			o.out.PrintWarning(fmt.Sprintf("%s: no differences or connection failed", plan.Direction))
		}
	}

	return nil
}
