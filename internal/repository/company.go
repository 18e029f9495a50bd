package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/honlnm/biztime/internal/entity"
)

func (r *Repository) Companies(ctx context.Context) ([]entity.Company, error) {
	rows, err := r.db.Query(ctx, selectCompany+" ORDER BY code")
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	companies := make([]entity.Company, 0)

	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}

		companies = append(companies, c)
	}

	return companies, rows.Err()
}

// Company returns the company with its industries. Companies without
// industries come back with an empty, non-nil Industries slice.
func (r *Repository) Company(ctx context.Context, code string) (entity.Company, error) {
	const q = `
	SELECT c.code, c.name, c.description, i.code, i.industry
	FROM companies c
		LEFT JOIN companies_industries ci ON ci.comp_code = c.code
		LEFT JOIN industries i ON i.code = ci.ind_code
	WHERE c.code = $1
	ORDER BY i.code`

	rows, err := r.db.Query(ctx, q, code)
	if err != nil {
		return entity.Company{}, err
	}

	defer rows.Close()

	var (
		company entity.Company
		found   bool
	)

	for rows.Next() {
		var indCode, indName *string

		err = rows.Scan(&company.Code, &company.Name, &company.Description, &indCode, &indName)
		if err != nil {
			return entity.Company{}, err
		}

		if !found {
			company.Industries = make([]entity.Industry, 0)
			found = true
		}

		if indCode != nil && indName != nil {
			company.Industries = append(company.Industries, entity.Industry{Code: *indCode, Industry: *indName})
		}
	}

	if err = rows.Err(); err != nil {
		return entity.Company{}, err
	}

	if !found {
		return entity.Company{}, entity.ErrNotFound
	}

	return company, nil
}

func (r *Repository) CreateCompany(ctx context.Context, c entity.Company) (entity.Company, error) {
	const q = `
	INSERT INTO companies (code, name, description)
	VALUES ($1, $2, $3)
	RETURNING code, name, description`

	return scanCompany(r.db.QueryRow(ctx, q, c.Code, c.Name, c.Description))
}

func (r *Repository) UpdateCompany(ctx context.Context, c entity.Company) (entity.Company, error) {
	const q = `
	UPDATE companies SET name = $1, description = $2
	WHERE code = $3
	RETURNING code, name, description`

	return scanCompany(r.db.QueryRow(ctx, q, c.Name, c.Description, c.Code))
}

func (r *Repository) DeleteCompany(ctx context.Context, code string) error {
	const q = `DELETE FROM companies WHERE code = $1`

	result, err := r.db.Exec(ctx, q, code)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) CreateCompanyIndustry(ctx context.Context, ci entity.CompanyIndustry) (entity.CompanyIndustry, error) {
	const q = `
	INSERT INTO companies_industries (comp_code, ind_code)
	VALUES ($1, $2)
	RETURNING comp_code, ind_code`

	err := r.db.QueryRow(ctx, q, ci.CompCode, ci.IndCode).Scan(&ci.CompCode, &ci.IndCode)
	if err != nil {
		return entity.CompanyIndustry{}, err
	}

	return ci, nil
}

func scanCompany(row pgx.Row) (c entity.Company, err error) {
	err = row.Scan(
		&c.Code,
		&c.Name,
		&c.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Company{}, entity.ErrNotFound
		}

		return entity.Company{}, err
	}

	return c, nil
}
