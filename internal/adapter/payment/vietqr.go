package payment

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/srgjo27/sportsync/internal/core/domain"
)

const (
	DefaultImageBase = "https://img.vietqr.io/image"
	maxAddInfo       = 25
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// QRGenerator renders VietQR quick-link image URLs. It never calls the
// network; the image is produced by VietQR when the client loads the URL.
type QRGenerator struct {
	base string
}

func NewQRGenerator(base string) *QRGenerator {
	if base == "" {
		base = DefaultImageBase
	}
	return &QRGenerator{base: strings.TrimRight(base, "/")}
}

func (g *QRGenerator) GenerateQR(_ context.Context, req domain.PaymentRequest) (*string, error) {
	if req.BankCode == "" || req.AccountNumber == "" {
		return nil, fmt.Errorf("%w: bank code and account number are required", domain.ErrValidation)
	}

	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: negative amount", domain.ErrValidation)
	}

	q := url.Values{}
	q.Set("amount", strconv.FormatInt(req.Amount, 10))
	q.Set("addInfo", CleanDescription(req.Description))
	if name := CleanDescription(req.AccountName); name != "" {
		q.Set("accountName", name)
	}

	link := fmt.Sprintf("%s/%s-%s-compact2.jpg?%s",
		g.base, url.PathEscape(req.BankCode), url.PathEscape(req.AccountNumber), q.Encode())

	return &link, nil
}

// CleanDescription keeps ASCII letters, digits and single spaces, and cuts
// the result to the 25 characters banks accept in a transfer note.
func CleanDescription(s string) string {
	s = nonAlnum.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))

	if len(s) > maxAddInfo {
		s = strings.TrimSpace(s[:maxAddInfo])
	}

	return s
}
