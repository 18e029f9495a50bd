package api_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/honlnm/biztime/internal/api"
	"github.com/honlnm/biztime/internal/entity"
	"github.com/honlnm/biztime/internal/mocks"
)

type testAPI struct {
	svc    *mocks.MockService
	router http.Handler
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)

	return testAPI{
		svc:    svc,
		router: api.NewRouter(api.NewHandler(svc), api.NewMiddleware()),
	}
}

func (a testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	return rec
}

type decimalMatcher struct {
	want decimal.Decimal
}

func decimalEq(s string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(s)}
}

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "is decimal " + m.want.String()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestHandler_Metrics(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.do(t, http.MethodGet, "/api/health", "")

	rec := a.do(t, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "biztime_http_requests_total")
}

func TestHandler_RequestIDPropagated(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-Id", "req-42")

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	require.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
}

func TestHandler_Companies(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().Companies(gomock.Any()).Return([]entity.Company{
		{Code: "apple", Name: "Apple Computer", Description: "Maker of OSX."},
		{Code: "ibm", Name: "IBM", Description: "Big blue."},
	}, nil)

	rec := a.do(t, http.MethodGet, "/companies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"companies":[
		{"code":"apple","name":"Apple Computer","description":"Maker of OSX."},
		{"code":"ibm","name":"IBM","description":"Big blue."}
	]}`, rec.Body.String())
}

func TestHandler_Companies_Empty(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().Companies(gomock.Any()).Return(nil, nil)

	rec := a.do(t, http.MethodGet, "/companies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"companies":[]}`, rec.Body.String())
}

func TestHandler_Companies_Error(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().Companies(gomock.Any()).Return(nil, errors.New("connection refused"))

	rec := a.do(t, http.MethodGet, "/companies", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "connection refused", decodeBody(t, rec)["description"])
}

func TestHandler_Company(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		company  entity.Company
		err      error
		wantCode int
		wantBody string
	}{
		{
			name: "with industries",
			company: entity.Company{
				Code:        "apple",
				Name:        "Apple Computer",
				Description: "Maker of OSX.",
				Industries:  []entity.Industry{{Code: "tech", Industry: "Technology"}},
			},
			wantCode: http.StatusOK,
			wantBody: `{"company":{"code":"apple","name":"Apple Computer","description":"Maker of OSX.",
				"industries":[{"code":"tech","industry":"Technology"}]}}`,
		},
		{
			name:     "without industries",
			company:  entity.Company{Code: "apple", Name: "Apple Computer"},
			wantCode: http.StatusOK,
			wantBody: `{"company":{"code":"apple","name":"Apple Computer","description":"","industries":[]}}`,
		},
		{
			name:     "not found",
			err:      fmt.Errorf("get company: %w", entity.ErrNotFound),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "internal",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAPI(t)

			a.svc.EXPECT().Company(gomock.Any(), "apple").Return(tt.company, tt.err)

			rec := a.do(t, http.MethodGet, "/companies/apple", "")
			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				require.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_CreateCompany(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().CreateCompany(gomock.Any(), "Kwik Trip", "Gas Station").
		Return(entity.Company{Code: "kwik-trip", Name: "Kwik Trip", Description: "Gas Station"}, nil)

	rec := a.do(t, http.MethodPost, "/companies", `{"name":"Kwik Trip","description":"Gas Station"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"company":{"code":"kwik-trip","name":"Kwik Trip","description":"Gas Station"}}`, rec.Body.String())
}

func TestHandler_CreateCompany_BadRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"name":`},
		{name: "missing name", body: `{"description":"Gas Station"}`},
		{name: "empty name", body: `{"name":""}`},
		{name: "name too long", body: fmt.Sprintf(`{"name":%q}`, strings.Repeat("a", 256))},
		{name: "trailing garbage", body: `{"name":"x"} trailing garbage`},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAPI(t)

			rec := a.do(t, http.MethodPost, "/companies", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotEmpty(t, decodeBody(t, rec)["message"])
		})
	}
}

func TestHandler_CreateCompany_EmptySlug(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().CreateCompany(gomock.Any(), "!!!", "").
		Return(entity.Company{}, fmt.Errorf("%w: no usable characters", entity.ErrInvalidArgument))

	rec := a.do(t, http.MethodPost, "/companies", `{"name":"!!!"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateCompany(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().UpdateCompany(gomock.Any(), "ibm", "IBM", "Big blue.").
		Return(entity.Company{Code: "ibm", Name: "IBM", Description: "Big blue."}, nil)

	rec := a.do(t, http.MethodPut, "/companies/ibm", `{"name":"IBM","description":"Big blue."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"company":{"code":"ibm","name":"IBM","description":"Big blue."}}`, rec.Body.String())
}

func TestHandler_UpdateCompany_NotFound(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().UpdateCompany(gomock.Any(), "nope", "Nope", "").Return(entity.Company{}, entity.ErrNotFound)

	rec := a.do(t, http.MethodPut, "/companies/nope", `{"name":"Nope"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteCompany(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	gomock.InOrder(
		a.svc.EXPECT().DeleteCompany(gomock.Any(), "ibm").Return(nil),
		a.svc.EXPECT().Company(gomock.Any(), "ibm").Return(entity.Company{}, entity.ErrNotFound),
	)

	rec := a.do(t, http.MethodDelete, "/companies/ibm", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())

	rec = a.do(t, http.MethodGet, "/companies/ibm", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteCompany_NotFound(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().DeleteCompany(gomock.Any(), "nope").Return(entity.ErrNotFound)

	rec := a.do(t, http.MethodDelete, "/companies/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_LinkIndustry(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().LinkIndustry(gomock.Any(), "apple", "tech").
		Return(entity.CompanyIndustry{CompCode: "apple", IndCode: "tech"}, nil)

	rec := a.do(t, http.MethodPost, "/companies/apple", `{"ind_code":"tech"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"company_industry":{"comp_code":"apple","ind_code":"tech"}}`, rec.Body.String())
}

func TestHandler_LinkIndustry_BadRequest(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/companies/apple", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_LinkIndustry_ConstraintViolation(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().LinkIndustry(gomock.Any(), "apple", "unknown").
		Return(entity.CompanyIndustry{}, errors.New("violates foreign key constraint"))

	rec := a.do(t, http.MethodPost, "/companies/apple", `{"ind_code":"unknown"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_Industries(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().Industries(gomock.Any()).Return([]entity.Industry{
		{Code: "acct", Industry: "Accounting", CompanyCodes: []string{}},
		{Code: "tech", Industry: "Technology", CompanyCodes: []string{"apple", "ibm"}},
	}, nil)

	rec := a.do(t, http.MethodGet, "/industries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"industries":[
		{"code":"acct","industry":"Accounting","companies":[]},
		{"code":"tech","industry":"Technology","companies":["apple","ibm"]}
	]}`, rec.Body.String())
}

func TestHandler_CreateIndustry(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().CreateIndustry(gomock.Any(), "tech", "Technology").
		Return(entity.Industry{Code: "tech", Industry: "Technology"}, nil)

	rec := a.do(t, http.MethodPost, "/industries", `{"code":"tech","industry":"Technology"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"industry":{"code":"tech","industry":"Technology","companies":[]}}`, rec.Body.String())
}

func TestHandler_CreateIndustry_BadRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing code", body: `{"industry":"Technology"}`},
		{name: "missing industry", body: `{"code":"tech"}`},
		{name: "code with space", body: `{"code":"te ch","industry":"Technology"}`},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAPI(t)

			rec := a.do(t, http.MethodPost, "/industries", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_Invoices(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().Invoices(gomock.Any()).Return([]entity.InvoiceSummary{
		{ID: 1, CompCode: "apple"},
		{ID: 2, CompCode: "ibm"},
	}, nil)

	rec := a.do(t, http.MethodGet, "/invoices", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"invoices":[{"id":1,"comp_code":"apple"},{"id":2,"comp_code":"ibm"}]}`, rec.Body.String())
}

func TestHandler_Invoice(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	addDate := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	paidDate := addDate.Add(time.Hour)

	a.svc.EXPECT().Invoice(gomock.Any(), int64(3)).Return(entity.InvoiceDetails{
		Invoice: entity.Invoice{
			ID:       3,
			CompCode: "apple",
			Amount:   decimal.RequireFromString("300.50"),
			Paid:     true,
			AddDate:  addDate,
			PaidDate: &paidDate,
		},
		Company: entity.Company{Code: "apple", Name: "Apple Computer", Description: "Maker of OSX."},
	}, nil)

	rec := a.do(t, http.MethodGet, "/invoices/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"invoice":{"id":3,
		"company":{"code":"apple","name":"Apple Computer","description":"Maker of OSX."},
		"amt":300.5,"paid":true,
		"add_date":"2024-03-01T10:00:00Z","paid_date":"2024-03-01T11:00:00Z"}}`, rec.Body.String())
}

func TestHandler_Invoice_NotFound(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().Invoice(gomock.Any(), int64(0)).Return(entity.InvoiceDetails{}, entity.ErrNotFound)

	rec := a.do(t, http.MethodGet, "/invoices/0", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Invoice_BadID(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := a.do(t, method, "/invoices/abc", `{"amt":10,"paid":false}`)
		require.Equal(t, http.StatusBadRequest, rec.Code, method)
	}
}

func TestHandler_CreateInvoice(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	addDate := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	a.svc.EXPECT().CreateInvoice(gomock.Any(), "emerson", decimalEq("50")).
		Return(entity.Invoice{
			ID:       4,
			CompCode: "emerson",
			Amount:   decimal.NewFromInt(50),
			AddDate:  addDate,
		}, nil)

	rec := a.do(t, http.MethodPost, "/invoices", `{"comp_code":"emerson","amt":50}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"invoice":{"id":4,"comp_code":"emerson","amt":50,"paid":false,
		"add_date":"2024-03-01T10:00:00Z","paid_date":null}}`, rec.Body.String())
}

func TestHandler_CreateInvoice_BadRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `not json`},
		{name: "missing comp_code", body: `{"amt":50}`},
		{name: "missing amt", body: `{"comp_code":"emerson"}`},
		{name: "zero amt", body: `{"comp_code":"emerson","amt":0}`},
		{name: "negative amt", body: `{"comp_code":"emerson","amt":-5}`},
		{name: "amt not a number", body: `{"comp_code":"emerson","amt":"lots"}`},
		{name: "amt rounds to zero", body: `{"comp_code":"emerson","amt":0.001}`},
		{name: "amt with three decimals", body: `{"comp_code":"emerson","amt":1.005}`},
		{name: "amt above column range", body: `{"comp_code":"emerson","amt":100000000000}`},
		{name: "trailing data", body: `{"comp_code":"emerson","amt":50} {"amt":1}`},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAPI(t)

			rec := a.do(t, http.MethodPost, "/invoices", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_CreateInvoice_TwoDecimalAmount(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().CreateInvoice(gomock.Any(), "emerson", decimalEq("9999999999.99")).
		Return(entity.Invoice{ID: 9, CompCode: "emerson", Amount: decimal.RequireFromString("9999999999.99")}, nil)

	rec := a.do(t, http.MethodPost, "/invoices", `{"comp_code":"emerson","amt":9999999999.99}`+"\n")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.EqualValues(t, 9999999999.99, decodeBody(t, rec)["invoice"].(map[string]any)["amt"])
}

func TestHandler_UpdateInvoice(t *testing.T) {
	t.Parallel()

	addDate := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	paidDate := addDate.Add(time.Minute)

	tests := []struct {
		name     string
		body     string
		paid     bool
		result   entity.Invoice
		wantBody string
	}{
		{
			name: "pay",
			body: `{"amt":100,"paid":true}`,
			paid: true,
			result: entity.Invoice{
				ID: 5, CompCode: "ibm", Amount: decimal.NewFromInt(100), Paid: true, AddDate: addDate, PaidDate: &paidDate,
			},
			wantBody: `{"invoice":{"id":5,"comp_code":"ibm","amt":100,"paid":true,
				"add_date":"2024-03-01T10:00:00Z","paid_date":"2024-03-01T10:01:00Z"}}`,
		},
		{
			name: "unpay",
			body: `{"amt":100,"paid":false}`,
			paid: false,
			result: entity.Invoice{
				ID: 5, CompCode: "ibm", Amount: decimal.NewFromInt(100), AddDate: addDate,
			},
			wantBody: `{"invoice":{"id":5,"comp_code":"ibm","amt":100,"paid":false,
				"add_date":"2024-03-01T10:00:00Z","paid_date":null}}`,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAPI(t)

			a.svc.EXPECT().UpdateInvoice(gomock.Any(), int64(5), decimalEq("100"), tt.paid).Return(tt.result, nil)

			rec := a.do(t, http.MethodPut, "/invoices/5", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			require.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_UpdateInvoice_BadRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing paid", body: `{"amt":100}`},
		{name: "missing amt", body: `{"paid":true}`},
		{name: "paid not a bool", body: `{"amt":100,"paid":"yes"}`},
		{name: "amt with three decimals", body: `{"amt":1.005,"paid":true}`},
		{name: "amt above column range", body: `{"amt":100000000000,"paid":true}`},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAPI(t)

			rec := a.do(t, http.MethodPut, "/invoices/5", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_UpdateInvoice_NotFound(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.svc.EXPECT().UpdateInvoice(gomock.Any(), int64(99), decimalEq("10"), false).
		Return(entity.Invoice{}, fmt.Errorf("get invoice 99: %w", entity.ErrNotFound))

	rec := a.do(t, http.MethodPut, "/invoices/99", `{"amt":10,"paid":false}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteInvoice(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	gomock.InOrder(
		a.svc.EXPECT().DeleteInvoice(gomock.Any(), int64(6)).Return(nil),
		a.svc.EXPECT().DeleteInvoice(gomock.Any(), int64(6)).Return(entity.ErrNotFound),
	)

	rec := a.do(t, http.MethodDelete, "/invoices/6", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())

	rec = a.do(t, http.MethodDelete, "/invoices/6", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Cors_Preflight(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/companies", nil)
	req.Header.Set("Origin", "http://example.com")

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "http://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
