package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/stagehand-sh/stagehand/src/internal/display"
)

// State tracks where an operation is in its lifecycle.
type State int

// Executor states
const (
	StateIdle State = iota
	StatePreviewRequested
	StatePreviewShown
	StateConfirmed
	StateCancelled
	StateExecuting
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreviewRequested:
		return "preview requested"
	case StatePreviewShown:
		return "preview shown"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	case StateExecuting:
		return "executing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Prompter is the capability interface for interactive input, so the
// orchestration logic can be driven by a scripted source in tests.
type Prompter interface {
	// Select presents a list of options and returns the chosen index.
	Select(message string, options []string) (int, error)

	// Confirm asks a yes/no question. Only an affirmative answer returns
	// true; anything else is a safe no.
	Confirm(message string, def bool) (bool, error)
}

// Executor drives a single transfer through preview, confirmation and
// execution. The preview always runs before the mutating step, and a failed
// preview never falls through to execution.
type Executor struct {
	runner Runner
	prompt Prompter
	out    *display.StatusRenderer
	state  State
}

// NewExecutor creates an executor around the given runner and prompt source.
func NewExecutor(runner Runner, prompt Prompter, out *display.StatusRenderer) *Executor {
	return &Executor{
		runner: runner,
		prompt: prompt,
		out:    out,
		state:  StateIdle,
	}
}

// State returns the executor's current lifecycle state.
func (e *Executor) State() State {
	return e.state
}

// Preview runs the dry-run step only and renders the itemized changes. Used
// for the informational preview operation and the pre-push conflict check.
func (e *Executor) Preview(ctx context.Context, plan Plan) ([]Change, error) {
	e.state = StatePreviewRequested

	output, err := e.runner.DryRun(ctx, plan)
	if err != nil {
		e.state = StateFailed

		return nil, NewDryRunError(plan, err)
	}

	e.state = StatePreviewShown

	changes := ParseItemized(output)
	e.renderChanges(plan, changes)

	return changes, nil
}

// Run drives the full lifecycle for a mutating transfer: preview, explicit
// confirmation, then the real transfer with the identical plan. A negative
// confirmation returns a cancellation error wrapping ErrCancelled and the
// destination is never touched.
func (e *Executor) Run(ctx context.Context, plan Plan) error {
	if plan.Delete {
		e.out.PrintWarning("Delete mode: files missing locally will be REMOVED from the destination")
	}

	changes, err := e.Preview(ctx, plan)
	if err != nil {
		return err
	}

	// Attribute-only entries keep the list non-empty, so a dry run reporting
	// only metadata updates still goes through confirmation and transfer.
	if len(changes) == 0 {
		e.state = StateCompleted
		e.out.PrintSuccess("Nothing to transfer, already in sync")

		return nil
	}

	confirmed, err := e.prompt.Confirm(fmt.Sprintf("Apply these changes (%s)?", plan.Direction), false)
	if err != nil {
		e.state = StateFailed

		return fmt.Errorf("confirmation failed: %w", err)
	}

	if !confirmed {
		e.state = StateCancelled
		e.out.PrintWarning("Operation cancelled")

		return NewCancellationError(plan)
	}

	e.state = StateConfirmed

	e.state = StateExecuting
	if err := e.runner.Transfer(ctx, plan); err != nil {
		e.state = StateFailed

		return NewTransferError(plan, err)
	}

	e.state = StateCompleted
	e.out.PrintSuccess(fmt.Sprintf("%s completed", capitalize(plan.Direction.String())))

	return nil
}

func (e *Executor) renderChanges(plan Plan, changes []Change) {
	if len(changes) == 0 {
		e.out.PrintInfo(fmt.Sprintf("Preview (%s): no differences", plan.Direction))

		return
	}

	e.out.PrintInfo(fmt.Sprintf("Preview (%s): %d change(s)", plan.Direction, len(changes)))

	var creates, updates, deletes, attrOnly int

	for _, change := range changes {
		if change.AttrOnly {
			attrOnly++

			continue
		}

		e.out.PrintChangeLine(change.Action.String(), change.Path)

		switch change.Action {
		case ActionCreate:
			creates++
		case ActionUpdate:
			updates++
		case ActionDelete:
			deletes++
		}
	}

	summary := fmt.Sprintf("%d to create, %d to update, %d to delete", creates, updates, deletes)
	if attrOnly > 0 {
		summary += fmt.Sprintf(", %d attribute-only (times/permissions)", attrOnly)
	}

	e.out.PrintInfo(summary)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
