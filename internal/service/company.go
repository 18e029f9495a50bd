package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gosimple/slug"

	"github.com/honlnm/biztime/internal/entity"
)

func (s *Service) Companies(ctx context.Context) ([]entity.Company, error) {
	companies, err := s.repo.Companies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	return companies, nil
}

func (s *Service) Company(ctx context.Context, code string) (entity.Company, error) {
	c, err := s.repo.Company(ctx, code)
	if err != nil {
		return entity.Company{}, fmt.Errorf("get company %q: %w", code, err)
	}

	return c, nil
}

// CreateCompany stores a new company keyed by the slug of its name.
func (s *Service) CreateCompany(ctx context.Context, name, description string) (entity.Company, error) {
	code := slug.Make(name)
	if code == "" {
		return entity.Company{}, fmt.Errorf("%w: company name %q has no usable characters", entity.ErrInvalidArgument, name)
	}

	c, err := s.repo.CreateCompany(ctx, entity.Company{
		Code:        code,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return entity.Company{}, fmt.Errorf("create company %q: %w", code, err)
	}

	slog.InfoContext(ctx, "company created", slog.String("code", c.Code))

	return c, nil
}

func (s *Service) UpdateCompany(ctx context.Context, code, name, description string) (entity.Company, error) {
	c, err := s.repo.UpdateCompany(ctx, entity.Company{
		Code:        code,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return entity.Company{}, fmt.Errorf("update company %q: %w", code, err)
	}

	return c, nil
}

func (s *Service) DeleteCompany(ctx context.Context, code string) error {
	err := s.repo.DeleteCompany(ctx, code)
	if err != nil {
		return fmt.Errorf("delete company %q: %w", code, err)
	}

	slog.InfoContext(ctx, "company deleted", slog.String("code", code))

	return nil
}

func (s *Service) LinkIndustry(ctx context.Context, compCode, indCode string) (entity.CompanyIndustry, error) {
	ci, err := s.repo.CreateCompanyIndustry(ctx, entity.CompanyIndustry{
		CompCode: compCode,
		IndCode:  indCode,
	})
	if err != nil {
		return entity.CompanyIndustry{}, fmt.Errorf("link company %q to industry %q: %w", compCode, indCode, err)
	}

	return ci, nil
}
