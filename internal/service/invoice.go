package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/honlnm/biztime/internal/entity"
)

func (s *Service) Invoices(ctx context.Context) ([]entity.InvoiceSummary, error) {
	invoices, err := s.repo.Invoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	return invoices, nil
}

func (s *Service) Invoice(ctx context.Context, id int64) (entity.InvoiceDetails, error) {
	inv, err := s.repo.InvoiceDetails(ctx, id)
	if err != nil {
		return entity.InvoiceDetails{}, fmt.Errorf("get invoice %d: %w", id, err)
	}

	return inv, nil
}

func (s *Service) CreateInvoice(ctx context.Context, compCode string, amount decimal.Decimal) (entity.Invoice, error) {
	err := entity.ValidateAmount(amount)
	if err != nil {
		return entity.Invoice{}, err
	}

	inv, err := s.repo.CreateInvoice(ctx, compCode, amount)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("create invoice for company %q: %w", compCode, err)
	}

	slog.InfoContext(ctx, fmt.Sprintf("invoice %d for company %q created on amount %s", inv.ID, inv.CompCode, inv.Amount))

	s.producer.SendInvoiceEvent(ctx, entity.InvoiceEventCreated, inv)

	return inv, nil
}

// UpdateInvoice changes amount and paid state. The paid event is sent only
// when the invoice goes from unpaid to paid.
func (s *Service) UpdateInvoice(ctx context.Context, id int64, amount decimal.Decimal, paid bool) (entity.Invoice, error) {
	err := entity.ValidateAmount(amount)
	if err != nil {
		return entity.Invoice{}, err
	}

	inv, becamePaid, err := s.repo.UpdateInvoice(ctx, id, amount, paid)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("update invoice %d: %w", id, err)
	}

	if becamePaid {
		slog.InfoContext(ctx, fmt.Sprintf("invoice %d paid", inv.ID))
		s.producer.SendInvoiceEvent(ctx, entity.InvoiceEventPaid, inv)
	}

	return inv, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id int64) error {
	err := s.repo.DeleteInvoice(ctx, id)
	if err != nil {
		return fmt.Errorf("delete invoice %d: %w", id, err)
	}

	return nil
}
