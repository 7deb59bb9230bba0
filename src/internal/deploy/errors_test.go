package deploy

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorConstructors(t *testing.T) {
	t.Parallel()

	underlying := errors.New("boom")
	plan := PullContentPlan(testConfig())

	tests := []struct {
		name     string
		err      *DeployError
		category ErrorCategory
		fatal    bool
	}{
		{name: "configuration", err: NewConfigurationError(underlying), category: ErrorCategoryConfiguration, fatal: true},
		{name: "connectivity", err: NewConnectivityError("deploy@example.com", underlying), category: ErrorCategoryConnectivity, fatal: true},
		{name: "remote path", err: NewRemotePathError("/var/www/site"), category: ErrorCategoryRemotePath, fatal: true},
		{name: "backup", err: NewBackupError(underlying), category: ErrorCategoryBackup, fatal: false},
		{name: "dry run", err: NewDryRunError(plan, underlying), category: ErrorCategoryDryRun, fatal: true},
		{name: "transfer", err: NewTransferError(plan, underlying), category: ErrorCategoryTransfer, fatal: true},
		{name: "cancellation", err: NewCancellationError(plan), category: ErrorCategoryCancellation, fatal: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.err.Category != tt.category {
				t.Errorf("Category = %v, want %v", tt.err.Category, tt.category)
			}

			if tt.err.Fatal != tt.fatal {
				t.Errorf("Fatal = %v, want %v", tt.err.Fatal, tt.fatal)
			}

			if !strings.Contains(tt.err.Error(), "["+tt.category.String()+"]") {
				t.Errorf("Error() = %q, want the category tag", tt.err.Error())
			}
		})
	}
}

func TestCancellationErrorMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := NewCancellationError(PushCodebasePlan(testConfig()))

	if !errors.Is(err, ErrCancelled) {
		t.Error("cancellation error does not match ErrCancelled")
	}

	if !IsCancellation(err) {
		t.Error("IsCancellation() = false, want true")
	}
}
