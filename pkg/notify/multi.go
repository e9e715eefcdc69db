package notify

import (
	"context"
	"errors"
	"fmt"

	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

// Multi fans an alert out to every channel. Every channel is tried and the
// alert counts as failed when any of them fails.
type Multi []wear.Notifier

func (m Multi) Notify(ctx context.Context, alert wear.Alert) error {
	if len(m) == 0 {
		return wear.ErrNoNotifier
	}

	var errs []error
	for i, n := range m {
		if err := n.Notify(ctx, alert); err != nil {
			errs = append(errs, fmt.Errorf("channel %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Combine drops nil channels and collapses a single channel to itself.
func Combine(notifiers ...wear.Notifier) wear.Notifier {
	var m Multi
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}
