package status_test

import (
	"testing"

	"github.com/NamanBalaji/swarmsim/internal/status"
)

func TestString(t *testing.T) {
	tests := map[status.Status]string{
		status.Pending:    "pending",
		status.Running:    "running",
		status.Completed:  "completed",
		status.RoundLimit: "round limit",
		status.Failed:     "failed",
		status.Cancelled:  "cancelled",
		42:                "unknown",
	}

	for s, want := range tests {
		if got := status.String(s); got != want {
			t.Errorf("String(%d) = %q, want %q", s, got, want)
		}
	}
}
