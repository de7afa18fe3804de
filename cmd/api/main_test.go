package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dealsheet/pkg/models"
	"dealsheet/pkg/store"
)

func newTestRouter() (*Server, http.Handler) {
	server := NewServer(store.NewMemoryStore())
	return server, newRouter(server)
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestAPI_CreateAndGetDeal(t *testing.T) {
	_, router := newTestRouter()

	dealReq := map[string]any{
		"label":                  "triplex on oak st",
		"purchase_price":         300000.0,
		"down_payment":           60000.0,
		"annual_rate_percent":    6.5,
		"term_years":             30,
		"monthly_rent":           2500.0,
		"monthly_expenses":       1800.0,
		"income_growth_percent":  3.0,
		"expense_growth_percent": 2.5,
		"value_growth_percent":   4.0,
	}
	rr := postJSON(t, router, "/deals", dealReq)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var created models.Deal
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal deal: %v", err)
	}

	if len(created.Projection) != 30 {
		t.Errorf("Expected 30 projection years, got %d", len(created.Projection))
	}
	if created.MonthlyPayment.IsZero() {
		t.Error("Expected a non-zero monthly payment")
	}
	if created.CapRatePercent == nil {
		t.Error("Expected a cap rate for a non-zero purchase price")
	}
	if len(created.Warnings) != 0 {
		t.Errorf("Expected no advisory warnings, got %v", created.Warnings)
	}

	// Fetch it back by ID.
	req := httptest.NewRequest("GET", "/deals/"+created.ID.String(), nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var fetched models.Deal
	if err := json.Unmarshal(rr.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("Failed to unmarshal fetched deal: %v", err)
	}
	if fetched.ID != created.ID {
		t.Errorf("Expected deal %s, got %s", created.ID, fetched.ID)
	}
}

func TestAPI_CreateDealWithAdvisoryWarnings(t *testing.T) {
	_, router := newTestRouter()

	dealReq := map[string]any{
		"purchase_price":      300000.0,
		"down_payment":        60000.0,
		"annual_rate_percent": 22.0, // above the advisory bound
		"term_years":          30,
		"monthly_rent":        2500.0,
		"monthly_expenses":    1800.0,
	}
	rr := postJSON(t, router, "/deals", dealReq)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201 (warnings never block), got %d", rr.Code)
	}

	var created models.Deal
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal deal: %v", err)
	}
	if len(created.Warnings) == 0 {
		t.Error("Expected advisory warnings for a 22% interest rate")
	}
}

func TestAPI_GetMissingDeal(t *testing.T) {
	_, router := newTestRouter()

	req := httptest.NewRequest("GET", "/deals/00000000-0000-0000-0000-000000000000", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/deals/not-a-uuid", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestAPI_DeleteDeal(t *testing.T) {
	server, router := newTestRouter()

	deal := server.analyzeDeal(dealRequestFixture())
	if err := server.storage.SaveDeal(deal); err != nil {
		t.Fatalf("Failed to seed deal: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/deals/"+deal.ID.String(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/deals/"+deal.ID.String(), nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", rr.Code)
	}
}

func TestAPI_Schedule(t *testing.T) {
	_, router := newTestRouter()

	scheduleReq := map[string]any{
		"loan": map[string]any{
			"principal":           200000.0,
			"annual_rate_percent": 6.0,
			"term_years":          30,
		},
	}
	rr := postJSON(t, router, "/schedules", scheduleReq)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var rows []models.PaymentBreakdown
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("Failed to unmarshal schedule: %v", err)
	}
	if len(rows) != 360 {
		t.Fatalf("Expected 360 rows, got %d", len(rows))
	}
	if rows[0].Interest.StringFixed(2) != "1000.00" {
		t.Errorf("Expected 1000.00 first-month interest, got %s", rows[0].Interest)
	}
}

func TestAPI_TempFinancing(t *testing.T) {
	_, router := newTestRouter()

	tempReq := map[string]any{
		"purchase_price":          250000.0,
		"initial_cash_investment": 250000.0,
		"renovation_costs":        50000.0,
		"after_repair_value":      400000.0,
		"temp_financing_amount":   0.0,
		"temp_interest_rate":      12.0,
		"temp_loan_term_months":   6,
		"cash_out_ltv":            75.0,
		"refi_rate_percent":       6.5,
		"refi_term_years":         30,
	}
	rr := postJSON(t, router, "/tempfin", tempReq)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Analysis struct {
			FinalCashLeftInDeal string `json:"final_cash_left_in_deal"`
		} `json:"analysis"`
		Validation struct {
			IsValid bool `json:"is_valid"`
		} `json:"validation"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Analysis.FinalCashLeftInDeal != "0" {
		t.Errorf("Expected all cash returned, got %s left in deal", resp.Analysis.FinalCashLeftInDeal)
	}
	if !resp.Validation.IsValid {
		t.Error("Expected a valid scenario")
	}
}

func dealRequestFixture() dealRequest {
	var req dealRequest
	payload := []byte(`{
		"purchase_price": 300000,
		"down_payment": 60000,
		"annual_rate_percent": 6.5,
		"term_years": 30,
		"monthly_rent": 2500,
		"monthly_expenses": 1800,
		"income_growth_percent": 3,
		"expense_growth_percent": 2.5,
		"value_growth_percent": 4
	}`)
	if err := json.Unmarshal(payload, &req); err != nil {
		panic(err)
	}
	return req
}
