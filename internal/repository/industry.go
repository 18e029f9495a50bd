package repository

import (
	"context"

	"github.com/honlnm/biztime/internal/entity"
)

func (r *Repository) Industries(ctx context.Context) ([]entity.Industry, error) {
	stmt := psql.Select(
		"i.code",
		"i.industry",
		"COALESCE(array_agg(ci.comp_code ORDER BY ci.comp_code) FILTER (WHERE ci.comp_code IS NOT NULL), '{}')",
	).
		From("industries i").
		LeftJoin("companies_industries ci ON ci.ind_code = i.code").
		GroupBy("i.code", "i.industry").
		OrderBy("i.code")

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	industries := make([]entity.Industry, 0)

	for rows.Next() {
		var ind entity.Industry

		err = rows.Scan(&ind.Code, &ind.Industry, &ind.CompanyCodes)
		if err != nil {
			return nil, err
		}

		industries = append(industries, ind)
	}

	return industries, rows.Err()
}

func (r *Repository) CreateIndustry(ctx context.Context, ind entity.Industry) (entity.Industry, error) {
	const q = `
	INSERT INTO industries (code, industry)
	VALUES ($1, $2)
	RETURNING code, industry`

	err := r.db.QueryRow(ctx, q, ind.Code, ind.Industry).Scan(&ind.Code, &ind.Industry)
	if err != nil {
		return entity.Industry{}, err
	}

	return ind, nil
}
