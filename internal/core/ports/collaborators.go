package ports

import (
	"context"
	"time"

	"github.com/srgjo27/sportsync/internal/core/domain"
)

type Notifier interface {
	NotifyBooking(ctx context.Context, notice domain.BookingNotice) error
}

// PaymentQRGenerator returns a QR image reference, or nil when it cannot
// produce one for the request.
type PaymentQRGenerator interface {
	GenerateQR(ctx context.Context, req domain.PaymentRequest) (*string, error)
}

type BankDirectory interface {
	ListBanks(ctx context.Context) ([]domain.Bank, error)
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
