package notification

import (
	"context"
	"errors"

	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports"
)

// Fanout delivers a notice to every notifier and joins their errors.
type Fanout []ports.Notifier

func (f Fanout) NotifyBooking(ctx context.Context, notice domain.BookingNotice) error {
	var errs []error
	for _, n := range f {
		if n == nil {
			continue
		}
		if err := n.NotifyBooking(ctx, notice); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
