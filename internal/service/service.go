package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/honlnm/biztime/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository interface {
	Companies(ctx context.Context) ([]entity.Company, error)
	Company(ctx context.Context, code string) (entity.Company, error)
	CreateCompany(ctx context.Context, c entity.Company) (entity.Company, error)
	UpdateCompany(ctx context.Context, c entity.Company) (entity.Company, error)
	DeleteCompany(ctx context.Context, code string) error
	CreateCompanyIndustry(ctx context.Context, ci entity.CompanyIndustry) (entity.CompanyIndustry, error)

	Industries(ctx context.Context) ([]entity.Industry, error)
	CreateIndustry(ctx context.Context, ind entity.Industry) (entity.Industry, error)

	Invoices(ctx context.Context) ([]entity.InvoiceSummary, error)
	InvoiceDetails(ctx context.Context, id int64) (entity.InvoiceDetails, error)
	CreateInvoice(ctx context.Context, compCode string, amount decimal.Decimal) (entity.Invoice, error)
	UpdateInvoice(ctx context.Context, id int64, amount decimal.Decimal, paid bool) (inv entity.Invoice, becamePaid bool, err error)
	DeleteInvoice(ctx context.Context, id int64) error
}

type Producer interface {
	SendInvoiceEvent(ctx context.Context, eventType entity.InvoiceEventType, inv entity.Invoice)
}

type Service struct {
	repo     Repository
	producer Producer
}

func New(repo Repository, producer Producer) *Service {
	return &Service{
		repo:     repo,
		producer: producer,
	}
}
