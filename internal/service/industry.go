package service

import (
	"context"
	"fmt"

	"github.com/honlnm/biztime/internal/entity"
)

func (s *Service) Industries(ctx context.Context) ([]entity.Industry, error) {
	industries, err := s.repo.Industries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list industries: %w", err)
	}

	return industries, nil
}

func (s *Service) CreateIndustry(ctx context.Context, code, industry string) (entity.Industry, error) {
	ind, err := s.repo.CreateIndustry(ctx, entity.Industry{
		Code:     code,
		Industry: industry,
	})
	if err != nil {
		return entity.Industry{}, fmt.Errorf("create industry %q: %w", code, err)
	}

	return ind, nil
}
