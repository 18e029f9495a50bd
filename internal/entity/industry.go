package entity

type Industry struct {
	Code     string
	Industry string
	// CompanyCodes is only filled in by listings.
	CompanyCodes []string
}
