package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/honlnm/biztime/internal/entity"
)

func (r *Repository) Invoices(ctx context.Context) ([]entity.InvoiceSummary, error) {
	sql, args, err := psql.Select("id", "comp_code").
		From("invoices").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	invoices := make([]entity.InvoiceSummary, 0)

	for rows.Next() {
		var inv entity.InvoiceSummary

		err = rows.Scan(&inv.ID, &inv.CompCode)
		if err != nil {
			return nil, err
		}

		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

func (r *Repository) InvoiceDetails(ctx context.Context, id int64) (entity.InvoiceDetails, error) {
	const q = `
	SELECT
		i.id,
		i.comp_code,
		i.amt,
		i.paid,
		i.add_date,
		i.paid_date,
		c.code,
		c.name,
		c.description
	FROM invoices i
		JOIN companies c ON c.code = i.comp_code
	WHERE i.id = $1`

	var d entity.InvoiceDetails

	err := r.db.QueryRow(ctx, q, id).Scan(
		&d.ID,
		&d.CompCode,
		&d.Amount,
		&d.Paid,
		&d.AddDate,
		&d.PaidDate,
		&d.Company.Code,
		&d.Company.Name,
		&d.Company.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.InvoiceDetails{}, entity.ErrNotFound
		}

		return entity.InvoiceDetails{}, err
	}

	return d, nil
}

func (r *Repository) CreateInvoice(ctx context.Context, compCode string, amount decimal.Decimal) (entity.Invoice, error) {
	q := `INSERT INTO invoices (comp_code, amt) VALUES ($1, $2) ` + returningInvoice
	return scanInvoice(r.db.QueryRow(ctx, q, compCode, amount))
}

// UpdateInvoice sets amount and paid flag. paid_date is stamped with the
// database clock when an unpaid invoice becomes paid, cleared when it becomes
// unpaid and kept otherwise. becamePaid reports the unpaid to paid transition.
func (r *Repository) UpdateInvoice(
	ctx context.Context,
	id int64,
	amount decimal.Decimal,
	paid bool,
) (inv entity.Invoice, becamePaid bool, err error) {
	const q = `
	WITH prev AS (
		SELECT id, paid FROM invoices WHERE id = $1 FOR UPDATE
	)
	UPDATE invoices i
	SET amt       = $2,
		paid      = $3,
		paid_date = CASE
			WHEN NOT $3 THEN NULL
			WHEN NOT prev.paid THEN now()
			ELSE i.paid_date
		END
	FROM prev
	WHERE i.id = prev.id
	RETURNING i.id, i.comp_code, i.amt, i.paid, i.add_date, i.paid_date, prev.paid`

	var wasPaid bool

	err = r.db.QueryRow(ctx, q, id, amount, paid).Scan(
		&inv.ID,
		&inv.CompCode,
		&inv.Amount,
		&inv.Paid,
		&inv.AddDate,
		&inv.PaidDate,
		&wasPaid,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Invoice{}, false, entity.ErrNotFound
		}

		return entity.Invoice{}, false, err
	}

	return inv, !wasPaid && inv.Paid, nil
}

func (r *Repository) DeleteInvoice(ctx context.Context, id int64) error {
	const q = `DELETE FROM invoices WHERE id = $1`

	result, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func scanInvoice(row pgx.Row) (inv entity.Invoice, err error) {
	err = row.Scan(
		&inv.ID,
		&inv.CompCode,
		&inv.Amount,
		&inv.Paid,
		&inv.AddDate,
		&inv.PaidDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Invoice{}, entity.ErrNotFound
		}

		return entity.Invoice{}, err
	}

	return inv, nil
}
