package services

import (
	"context"
	"fmt"

	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports"
	"go.uber.org/zap"
)

const notAvailable = "N/A"

// PaymentDesk builds the transfer instructions shown after a booking.
type PaymentDesk struct {
	qr     ports.PaymentQRGenerator
	prefix string
	logger *zap.Logger
}

func NewPaymentDesk(qr ports.PaymentQRGenerator, prefix string, logger *zap.Logger) *PaymentDesk {
	return &PaymentDesk{qr: qr, prefix: prefix, logger: logger}
}

// Describe never fails: when the complex has no bank details or the QR
// generator is unavailable the customer gets a plain-text descriptor.
func (d *PaymentDesk) Describe(ctx context.Context, cx *domain.Complex, booking *domain.Booking, customerName string) domain.PaymentInfo {
	info := domain.PaymentInfo{
		BankCode:      orNA(cx.BankCode),
		AccountNumber: orNA(cx.AccountNumber),
		AccountName:   orNA(cx.AccountName),
		Amount:        booking.TotalPrice.Round(0).IntPart(),
		Description:   fmt.Sprintf("%s %s %s", d.prefix, booking.PaymentRef(), customerName),
	}

	if !cx.HasBanking() || d.qr == nil {
		return info
	}

	url, err := d.qr.GenerateQR(ctx, domain.PaymentRequest{
		BankCode:      cx.BankCode,
		AccountNumber: cx.AccountNumber,
		AccountName:   cx.AccountName,
		Amount:        info.Amount,
		Description:   info.Description,
	})
	if err != nil {
		d.logger.Warn("payment qr unavailable, falling back to plain descriptor",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err),
		)
		return info
	}

	info.QRURL = url
	return info
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
