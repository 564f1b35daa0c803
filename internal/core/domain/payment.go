package domain

// PaymentRequest is what a QR generator needs to render a transfer code.
type PaymentRequest struct {
	BankCode      string
	AccountNumber string
	AccountName   string
	Amount        int64
	Description   string
}

// PaymentInfo tells the customer how to pay. QRURL is nil when no QR could be
// produced and the customer has to type the transfer by hand.
type PaymentInfo struct {
	QRURL         *string `json:"qr_url"`
	BankCode      string  `json:"bank_code"`
	AccountNumber string  `json:"account_number"`
	AccountName   string  `json:"account_name"`
	Amount        int64   `json:"amount"`
	Description   string  `json:"description"`
}

type Bank struct {
	ID                int    `json:"id"`
	Code              string `json:"code"`
	Bin               string `json:"bin"`
	Name              string `json:"name"`
	ShortName         string `json:"shortName"`
	Logo              string `json:"logo"`
	TransferSupported int    `json:"transferSupported"`
	LookupSupported   int    `json:"lookupSupported"`
}
