package api

import (
	"net/http"

	"github.com/honlnm/biztime/internal/entity"
)

type CreateIndustryRequest struct {
	Code     string `json:"code" validate:"required,min=1,max=64,nospace"`
	Industry string `json:"industry" validate:"required,min=1,max=255"`
}

type IndustryResponse struct {
	Code      string   `json:"code"`
	Industry  string   `json:"industry"`
	Companies []string `json:"companies"`
}

type IndustriesResponse struct {
	Industries []IndustryResponse `json:"industries"`
}

type IndustryEnvelope struct {
	Industry IndustryResponse `json:"industry"`
}

func toIndustryResponse(ind entity.Industry) IndustryResponse {
	companies := ind.CompanyCodes
	if companies == nil {
		companies = []string{}
	}

	return IndustryResponse{
		Code:      ind.Code,
		Industry:  ind.Industry,
		Companies: companies,
	}
}

// Industries lists industries with codes of their companies
// @Summary List industries
// @Tags industries
// @Produce json
// @Success 200 {object} IndustriesResponse
// @Failure 500 {object} ErrorResponse
// @Router /industries [get]
func (h *Handler) Industries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	industries, err := h.s.Industries(ctx)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to list industries")
		return
	}

	resp := IndustriesResponse{Industries: make([]IndustryResponse, 0, len(industries))}
	for _, ind := range industries {
		resp.Industries = append(resp.Industries, toIndustryResponse(ind))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// CreateIndustry
// @Summary Create industry
// @Tags industries
// @Accept json
// @Produce json
// @Param CreateIndustryRequest body CreateIndustryRequest true "Industry"
// @Success 201 {object} IndustryEnvelope
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse
// @Router /industries [post]
func (h *Handler) CreateIndustry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateIndustryRequest

	err := h.decodeRequest(r, &req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid request")
		return
	}

	ind, err := h.s.CreateIndustry(ctx, req.Code, req.Industry)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to create industry")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, IndustryEnvelope{Industry: toIndustryResponse(ind)})
}
