package deploy

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCategory represents different types of deployment errors
type ErrorCategory int

// Error categories for classification
const (
	ErrorCategoryUnknown ErrorCategory = iota
	ErrorCategoryConfiguration
	ErrorCategoryConnectivity
	ErrorCategoryRemotePath
	ErrorCategoryBackup
	ErrorCategoryDryRun
	ErrorCategoryTransfer
	ErrorCategoryCancellation
)

func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryConfiguration:
		return "Configuration"
	case ErrorCategoryConnectivity:
		return "Connectivity"
	case ErrorCategoryRemotePath:
		return "RemotePath"
	case ErrorCategoryBackup:
		return "Backup"
	case ErrorCategoryDryRun:
		return "DryRun"
	case ErrorCategoryTransfer:
		return "Transfer"
	case ErrorCategoryCancellation:
		return "Cancellation"
	default:
		return "Unknown"
	}
}

// DeployError represents a detailed deployment error. Fatal errors abort the
// run; non-fatal ones are downgraded to warnings by the orchestrator.
type DeployError struct {
	Category   ErrorCategory `json:"category"`
	Operation  string        `json:"operation"`
	Message    string        `json:"message"`
	Underlying error         `json:"-"`
	Timestamp  time.Time     `json:"timestamp"`
	Fatal      bool          `json:"fatal"`
}

func (de *DeployError) Error() string {
	if de.Operation != "" {
		return fmt.Sprintf("[%s] %s: %s", de.Category, de.Operation, de.Message)
	}

	return fmt.Sprintf("[%s] %s", de.Category, de.Message)
}

func (de *DeployError) Unwrap() error {
	return de.Underlying
}

// NewConfigurationError wraps a config load or validation failure so it
// carries the same category formatting as the runtime failures.
func NewConfigurationError(err error) *DeployError {
	return &DeployError{
		Category:   ErrorCategoryConfiguration,
		Operation:  "config",
		Message:    err.Error(),
		Underlying: err,
		Timestamp:  time.Now(),
		Fatal:      true,
	}
}

// NewConnectivityError creates the fatal error raised when the remote probe
// fails. There is no retry; the operator fixes network or keys and reruns.
func NewConnectivityError(host string, err error) *DeployError {
	return &DeployError{
		Category:   ErrorCategoryConnectivity,
		Operation:  "probe",
		Message:    fmt.Sprintf("cannot reach %s: %v", host, err),
		Underlying: err,
		Timestamp:  time.Now(),
		Fatal:      true,
	}
}

// NewRemotePathError creates the error raised when the operator declines to
// continue after the remote base path was reported missing.
func NewRemotePathError(path string) *DeployError {
	return &DeployError{
		Category:  ErrorCategoryRemotePath,
		Operation: "preflight",
		Message:   fmt.Sprintf("remote path %s does not exist", path),
		Timestamp: time.Now(),
		Fatal:     true,
	}
}

// NewBackupError creates the non-fatal error raised when a pre-pull snapshot
// could not be created. Backups are best-effort and never block a pull.
func NewBackupError(err error) *DeployError {
	return &DeployError{
		Category:   ErrorCategoryBackup,
		Operation:  "snapshot",
		Message:    err.Error(),
		Underlying: err,
		Timestamp:  time.Now(),
		Fatal:      false,
	}
}

// NewDryRunError creates the error raised when a preview invocation fails.
// The executor stops before ever reaching the mutating step.
func NewDryRunError(plan Plan, err error) *DeployError {
	return &DeployError{
		Category:   ErrorCategoryDryRun,
		Operation:  plan.Direction.String(),
		Message:    fmt.Sprintf("preview failed: %v", err),
		Underlying: err,
		Timestamp:  time.Now(),
		Fatal:      true,
	}
}

// NewTransferError creates the error raised when a confirmed transfer exits
// non-zero. No rollback is attempted; rsync's file-level atomicity is
// inherited as-is.
func NewTransferError(plan Plan, err error) *DeployError {
	return &DeployError{
		Category:   ErrorCategoryTransfer,
		Operation:  plan.Direction.String(),
		Message:    fmt.Sprintf("transfer failed: %v", err),
		Underlying: err,
		Timestamp:  time.Now(),
		Fatal:      true,
	}
}

// ErrCancelled is returned when the operator answers a confirmation prompt
// negatively. It is a clean, intentional stop, not a failure, but callers must
// not proceed to any follow-on step.
var ErrCancelled = errors.New("operation cancelled")

// NewCancellationError records a declined confirmation for an operation. It
// wraps ErrCancelled so errors.Is still matches, and is never fatal to the
// process.
func NewCancellationError(plan Plan) *DeployError {
	return &DeployError{
		Category:   ErrorCategoryCancellation,
		Operation:  plan.Direction.String(),
		Message:    "cancelled by operator",
		Underlying: ErrCancelled,
		Timestamp:  time.Now(),
		Fatal:      false,
	}
}

// IsCancellation reports whether err represents a user cancellation.
func IsCancellation(err error) bool {
	if errors.Is(err, ErrCancelled) {
		return true
	}

	var de *DeployError
	if errors.As(err, &de) {
		return de.Category == ErrorCategoryCancellation
	}

	return false
}
