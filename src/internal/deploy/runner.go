package deploy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/stagehand-sh/stagehand/src/internal/config"
)

// Runner describes exactly the external operations the orchestrator needs, so
// tests can substitute recorded results instead of shelling out.
type Runner interface {
	// Probe attempts a no-op authenticated connection to the remote host with
	// non-interactive credentials and a short connect timeout.
	Probe(ctx context.Context) error

	// RemoteDirExists checks whether dir exists as a directory on the remote
	// host.
	RemoteDirExists(ctx context.Context, dir string) (bool, error)

	// DryRun executes the transfer in dry-run mode with itemized change
	// reporting and returns the tool's output.
	DryRun(ctx context.Context, plan Plan) (string, error)

	// Transfer executes the real transfer with progress reporting, using the
	// identical source, destination, rules and delete flag as the preview.
	Transfer(ctx context.Context, plan Plan) error
}

// ExecRunner invokes the system rsync and ssh binaries.
type ExecRunner struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner creates a runner that shells out to the binaries named in cfg,
// streaming real-transfer output to the given writers.
func NewExecRunner(cfg config.Config, stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
	}
}

// Probe runs `ssh -o BatchMode=yes -o ConnectTimeout=<n> host exit`.
func (r *ExecRunner) Probe(ctx context.Context) error {
	args := probeArgs(r.cfg)

	cmd := exec.CommandContext(ctx, r.cfg.SSHBin, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ssh probe failed: %w (%s)", err, bytes.TrimSpace(output))
	}

	return nil
}

// RemoteDirExists runs `ssh host test -d <dir>`. A clean non-zero exit from
// the remote test means the directory is absent; anything else is a transport
// failure.
func (r *ExecRunner) RemoteDirExists(ctx context.Context, dir string) (bool, error) {
	args := remoteDirArgs(r.cfg, dir)

	cmd := exec.CommandContext(ctx, r.cfg.SSHBin, args...)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return false, nil
		}

		return false, fmt.Errorf("remote directory check failed: %w", err)
	}

	return true, nil
}

// DryRun runs rsync in dry-run mode and returns its itemized output.
func (r *ExecRunner) DryRun(ctx context.Context, plan Plan) (string, error) {
	args := rsyncArgs(plan, true)

	cmd := exec.CommandContext(ctx, r.cfg.RsyncBin, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("rsync dry-run failed: %w", err)
	}

	return string(output), nil
}

// Transfer runs the real rsync invocation, streaming progress output.
func (r *ExecRunner) Transfer(ctx context.Context, plan Plan) error {
	args := rsyncArgs(plan, false)

	cmd := exec.CommandContext(ctx, r.cfg.RsyncBin, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rsync transfer failed: %w", err)
	}

	return nil
}

// rsyncArgs builds the rsync argument list for a plan. The dry run and the
// real run differ only in the preview and progress flags; source, destination,
// delete flag and rule order are identical.
func rsyncArgs(plan Plan, dryRun bool) []string {
	args := []string{"-az"}

	if dryRun {
		args = append(args, "--dry-run", "--itemize-changes")
	} else {
		args = append(args, "--progress")
	}

	if plan.Delete {
		args = append(args, "--delete")
	}

	for _, rule := range plan.Rules {
		args = append(args, rule.Arg())
	}

	return append(args, plan.Source, plan.Dest)
}

func probeArgs(cfg config.Config) []string {
	return []string{
		"-o", "BatchMode=yes",
		"-o", fmt.Sprintf("ConnectTimeout=%d", cfg.ConnectTimeoutSecs),
		cfg.Host,
		"exit",
	}
}

func remoteDirArgs(cfg config.Config, dir string) []string {
	return []string{
		"-o", "BatchMode=yes",
		cfg.Host,
		"test", "-d", dir,
	}
}
