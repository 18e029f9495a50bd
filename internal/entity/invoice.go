package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Amounts are stored as NUMERIC(12, 2).
const AmountScale = 2

var MaxAmount = decimal.New(1, 10)

type Invoice struct {
	ID       int64
	CompCode string
	Amount   decimal.Decimal
	Paid     bool
	AddDate  time.Time
	PaidDate *time.Time
}

// ValidateAmount accepts positive amounts with at most two decimal places
// below MaxAmount. Anything else would be rounded or rejected by the database.
func ValidateAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return fmt.Errorf("%w: amount %s must be positive", ErrInvalidArgument, amount)
	case !amount.Equal(amount.Truncate(AmountScale)):
		return fmt.Errorf("%w: amount %s has more than %d decimal places", ErrInvalidArgument, amount, AmountScale)
	case amount.GreaterThanOrEqual(MaxAmount):
		return fmt.Errorf("%w: amount %s must be less than %s", ErrInvalidArgument, amount, MaxAmount)
	}

	return nil
}

// InvoiceSummary is the listing projection of an invoice.
type InvoiceSummary struct {
	ID       int64
	CompCode string
}

// InvoiceDetails is an invoice with its company expanded.
type InvoiceDetails struct {
	Invoice
	Company Company
}

type InvoiceEventType string

func (t InvoiceEventType) String() string {
	return string(t)
}

const (
	InvoiceEventCreated InvoiceEventType = "invoice.created"
	InvoiceEventPaid    InvoiceEventType = "invoice.paid"
)
