package repository

const (
	selectCompany = `SELECT code, name, description FROM companies`

	returningInvoice = "RETURNING id, comp_code, amt, paid, add_date, paid_date"
)
