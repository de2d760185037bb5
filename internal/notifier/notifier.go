package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daas/portwatch/internal/logger"
	"github.com/daas/portwatch/internal/maneuver"
	"github.com/daas/portwatch/internal/metrics"
)

// DefaultDelay is the pause between two consecutive messages.
const DefaultDelay = time.Second

// Notifier defines the interface for posting maneuver alerts
type Notifier interface {
	// Name identifies the destination in logs and metrics
	Name() string

	// Notify sends one alert per maneuver. It attempts every maneuver and
	// returns the joined delivery errors.
	Notify(ctx context.Context, maneuvers []maneuver.Maneuver) error
}

type sendFunc func(ctx context.Context, m maneuver.Maneuver) error

// deliver sends maneuvers one at a time with delay between sends.
// Failures are logged and collected; they never stop the remaining sends.
func deliver(ctx context.Context, name string, maneuvers []maneuver.Maneuver, delay time.Duration, send sendFunc) error {
	var errs []error

	for i, m := range maneuvers {
		if err := send(ctx, m); err != nil {
			metrics.NotificationsTotal.WithLabelValues(name, metrics.DeliveryFailed).Inc()
			logger.Error("notification failed", logger.Fields{
				"notifier": name,
				"vessel":   m.Name,
				"berth":    m.Berth,
			}, err)
			errs = append(errs, fmt.Errorf("notifying %s: %w", m.Name, err))
		} else {
			metrics.NotificationsTotal.WithLabelValues(name, metrics.DeliverySent).Inc()
		}

		// Rate limiting: wait between messages
		if i < len(maneuvers)-1 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				errs = append(errs, fmt.Errorf("%d alert(s) not sent: %w", len(maneuvers)-i-1, ctx.Err()))
				return errors.Join(errs...)
			case <-timer.C:
			}
		}
	}

	return errors.Join(errs...)
}
