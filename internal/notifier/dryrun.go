package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/daas/portwatch/internal/maneuver"
	"github.com/daas/portwatch/internal/telegram"
)

// DryRunNotifier prints what would be sent without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out (stdout when nil)
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Name implements Notifier
func (n *DryRunNotifier) Name() string {
	return "dryrun"
}

// Notify prints the alerts that would be posted
func (n *DryRunNotifier) Notify(ctx context.Context, maneuvers []maneuver.Maneuver) error {
	return deliver(ctx, n.Name(), maneuvers, 0, func(_ context.Context, m maneuver.Maneuver) error {
		msg := telegram.FormatAlert(m)
		_, err := fmt.Fprintf(n.out, "--- Alert (%s) ---\n%s\n\n", m.Name, msg)
		return err
	})
}
