package entity

type Company struct {
	Code        string
	Name        string
	Description string
	// Industries is only filled in by detail lookups.
	Industries []Industry
}

// CompanyIndustry links a company to an industry.
type CompanyIndustry struct {
	CompCode string
	IndCode  string
}
