package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/honlnm/biztime/internal/entity"
)

type CompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

type CompanyResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CompanyIndustryResponse struct {
	Code     string `json:"code"`
	Industry string `json:"industry"`
}

type CompanyDetailsResponse struct {
	CompanyResponse
	Industries []CompanyIndustryResponse `json:"industries"`
}

type CompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

type CompanyEnvelope struct {
	Company CompanyResponse `json:"company"`
}

type CompanyDetailsEnvelope struct {
	Company CompanyDetailsResponse `json:"company"`
}

type LinkIndustryRequest struct {
	IndCode string `json:"ind_code" validate:"required,min=1,max=64"`
}

type CompanyIndustryLink struct {
	CompCode string `json:"comp_code"`
	IndCode  string `json:"ind_code"`
}

type CompanyIndustryEnvelope struct {
	CompanyIndustry CompanyIndustryLink `json:"company_industry"`
}

func toCompanyResponse(c entity.Company) CompanyResponse {
	return CompanyResponse{
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
	}
}

// Companies lists all companies
// @Summary List companies
// @Tags companies
// @Produce json
// @Success 200 {object} CompaniesResponse
// @Failure 500 {object} ErrorResponse
// @Router /companies [get]
func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companies, err := h.s.Companies(ctx)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to list companies")
		return
	}

	resp := CompaniesResponse{Companies: make([]CompanyResponse, 0, len(companies))}
	for _, c := range companies {
		resp.Companies = append(resp.Companies, toCompanyResponse(c))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// Company returns a company with its industries
// @Summary Get company
// @Tags companies
// @Produce json
// @Param code path string true "Company code"
// @Success 200 {object} CompanyDetailsEnvelope
// @Failure 404 {object} ErrorResponse "Company not found"
// @Failure 500 {object} ErrorResponse
// @Router /companies/{code} [get]
func (h *Handler) Company(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	c, err := h.s.Company(ctx, code)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, "Can't find company with code of "+code)
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to get company")
		}

		return
	}

	resp := CompanyDetailsResponse{
		CompanyResponse: toCompanyResponse(c),
		Industries:      make([]CompanyIndustryResponse, 0, len(c.Industries)),
	}

	for _, ind := range c.Industries {
		resp.Industries = append(resp.Industries, CompanyIndustryResponse{Code: ind.Code, Industry: ind.Industry})
	}

	SendJSON(ctx, w, http.StatusOK, CompanyDetailsEnvelope{Company: resp})
}

// CreateCompany creates a company, its code is derived from the name
// @Summary Create company
// @Tags companies
// @Accept json
// @Produce json
// @Param CompanyRequest body CompanyRequest true "Company"
// @Success 201 {object} CompanyEnvelope
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse
// @Router /companies [post]
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CompanyRequest

	err := h.decodeRequest(r, &req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid request")
		return
	}

	c, err := h.s.CreateCompany(ctx, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid company name")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to create company")
		}

		return
	}

	SendJSON(ctx, w, http.StatusCreated, CompanyEnvelope{Company: toCompanyResponse(c)})
}

// UpdateCompany changes name and description of a company
// @Summary Update company
// @Tags companies
// @Accept json
// @Produce json
// @Param code path string true "Company code"
// @Param CompanyRequest body CompanyRequest true "Company"
// @Success 200 {object} CompanyEnvelope
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Failure 500 {object} ErrorResponse
// @Router /companies/{code} [put]
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	var req CompanyRequest

	err := h.decodeRequest(r, &req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid request")
		return
	}

	c, err := h.s.UpdateCompany(ctx, code, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, "Can't update company with code of "+code)
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to update company")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, CompanyEnvelope{Company: toCompanyResponse(c)})
}

// DeleteCompany deletes a company with its invoices and industry links
// @Summary Delete company
// @Tags companies
// @Produce json
// @Param code path string true "Company code"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} ErrorResponse "Company not found"
// @Failure 500 {object} ErrorResponse
// @Router /companies/{code} [delete]
func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	err := h.s.DeleteCompany(ctx, code)

	switch {
	case err == nil:
		SendJSON(ctx, w, http.StatusOK, deletedResponse)
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, "Can't delete company with code of "+code)
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to delete company")
	}
}

// LinkIndustry associates a company with an industry
// @Summary Link company to industry
// @Tags companies
// @Accept json
// @Produce json
// @Param code path string true "Company code"
// @Param LinkIndustryRequest body LinkIndustryRequest true "Industry"
// @Success 201 {object} CompanyIndustryEnvelope
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse
// @Router /companies/{code} [post]
func (h *Handler) LinkIndustry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	var req LinkIndustryRequest

	err := h.decodeRequest(r, &req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid request")
		return
	}

	ci, err := h.s.LinkIndustry(ctx, code, req.IndCode)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to link industry")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, CompanyIndustryEnvelope{
		CompanyIndustry: CompanyIndustryLink{CompCode: ci.CompCode, IndCode: ci.IndCode},
	})
}
