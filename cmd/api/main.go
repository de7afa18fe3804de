package main

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"dealsheet/pkg/metrics"
	"dealsheet/pkg/models"
	"dealsheet/pkg/projection"
	"dealsheet/pkg/schedule"
	"dealsheet/pkg/store"
	"dealsheet/pkg/tempfin"
	"dealsheet/pkg/timevalue"
	"dealsheet/pkg/validate"
)

// Server wires the calculation engine to its HTTP surface.
type Server struct {
	storage  store.Storage
	analyzer *tempfin.Analyzer
}

func NewServer(s store.Storage) *Server {
	return &Server{
		storage:  s,
		analyzer: tempfin.NewAnalyzer(),
	}
}

type dealRequest struct {
	Label                string          `json:"label"`
	PurchasePrice        decimal.Decimal `json:"purchase_price"`
	DownPayment          decimal.Decimal `json:"down_payment"`
	AnnualRatePercent    float64         `json:"annual_rate_percent"`
	TermYears            int             `json:"term_years"`
	MonthlyRent          decimal.Decimal `json:"monthly_rent"`
	MonthlyExpenses      decimal.Decimal `json:"monthly_expenses"`
	IncomeGrowthPercent  float64         `json:"income_growth_percent"`
	ExpenseGrowthPercent float64         `json:"expense_growth_percent"`
	ValueGrowthPercent   float64         `json:"value_growth_percent"`
}

// advisoryWarnings runs the input predicates and pairs failures with
// user-facing messages. Warnings never block the calculation.
func advisoryWarnings(req dealRequest) []string {
	var warnings []string
	if !validate.PurchasePrice(req.PurchasePrice.InexactFloat64()) {
		warnings = append(warnings, "purchase price outside the supported range")
	}
	if !validate.DownPayment(req.DownPayment.InexactFloat64(), req.PurchasePrice.InexactFloat64()) {
		warnings = append(warnings, "down payment must be between zero and the purchase price")
	}
	if !validate.InterestRate(req.AnnualRatePercent) {
		warnings = append(warnings, "interest rate outside the typical 0.1%-15% range")
	}
	if !validate.MonthlyRent(req.MonthlyRent.InexactFloat64()) {
		warnings = append(warnings, "monthly rent outside the supported range")
	}
	for _, g := range []float64{req.IncomeGrowthPercent, req.ExpenseGrowthPercent, req.ValueGrowthPercent} {
		if !validate.GrowthRate(g) {
			warnings = append(warnings, "growth rate outside the supported 0%-20% range")
			break
		}
	}
	return warnings
}

// finitePtr maps non-finite metric values to nil so they serialize as JSON
// null; the UI shows a neutral placeholder for those.
func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// analyzeDeal runs the full engine for one scenario.
func (s *Server) analyzeDeal(req dealRequest) *models.Deal {
	loan := models.LoanTerms{
		Principal:         req.PurchasePrice.Sub(req.DownPayment),
		AnnualRatePercent: req.AnnualRatePercent,
		TermYears:         req.TermYears,
	}

	monthlyPayment := decimal.NewFromFloat(timevalue.MonthlyPayment(
		loan.Principal.InexactFloat64(),
		loan.AnnualRatePercent/100.0,
		loan.TermYears,
	))

	years := projection.Project(projection.Inputs{
		PurchasePrice:        req.PurchasePrice,
		Loan:                 loan,
		MonthlyIncome:        req.MonthlyRent,
		MonthlyExpenses:      req.MonthlyExpenses,
		IncomeGrowthPercent:  req.IncomeGrowthPercent,
		ExpenseGrowthPercent: req.ExpenseGrowthPercent,
		ValueGrowthPercent:   req.ValueGrowthPercent,
	})

	twelve := decimal.NewFromInt(12)
	noi := metrics.NetOperatingIncome(req.MonthlyRent.Mul(twelve), req.MonthlyExpenses.Mul(twelve))

	deal := &models.Deal{
		ID:                 uuid.New(),
		Label:              req.Label,
		CreatedAt:          time.Now(),
		PurchasePrice:      req.PurchasePrice,
		DownPayment:        req.DownPayment,
		Loan:               loan,
		MonthlyRent:        req.MonthlyRent,
		MonthlyExpenses:    req.MonthlyExpenses,
		MonthlyPayment:     monthlyPayment,
		NetOperatingIncome: noi,
		GrossRentMultiple:  metrics.GrossRentMultiplier(req.PurchasePrice, req.MonthlyRent.Mul(twelve)),
		Projection:         years,
		Warnings:           advisoryWarnings(req),
	}

	// Ratio metrics are guarded here, per their own business rule: a zero
	// denominator leaves the metric unset rather than reporting 0.
	if capRate, err := metrics.CapRate(noi, req.PurchasePrice); err == nil {
		deal.CapRatePercent = finitePtr(capRate)
	}
	if coc, err := metrics.CashOnCashReturn(years[0].AnnualCashFlow, req.DownPayment); err == nil {
		deal.CashOnCashPercent = finitePtr(coc)
	}

	// IRR over the holding period: the down payment goes out up front, each
	// year's cash flow comes back, and year 30 adds the accumulated equity
	// as an implied disposition.
	cashflows := make([]float64, 0, len(years)+1)
	cashflows = append(cashflows, -req.DownPayment.InexactFloat64())
	for i, y := range years {
		cf := y.AnnualCashFlow.InexactFloat64()
		if i == len(years)-1 {
			cf += y.Equity.InexactFloat64()
		}
		cashflows = append(cashflows, cf)
	}
	deal.InternalRate = finitePtr(timevalue.InternalRateOfReturn(cashflows))

	return deal
}

func (s *Server) createDealHandler(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deal := s.analyzeDeal(req)
	if err := s.storage.SaveDeal(deal); err != nil {
		log.Printf("Error saving deal: %v\n", err)
		http.Error(w, "Failed to save deal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(deal)
}

func (s *Server) getDealHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid deal ID", http.StatusBadRequest)
		return
	}

	deal, err := s.storage.GetDeal(id)
	if err != nil {
		if errors.Is(err, store.ErrDealNotFound) {
			http.Error(w, "Deal not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(deal)
}

func (s *Server) listDealsHandler(w http.ResponseWriter, r *http.Request) {
	deals, err := s.storage.ListDeals()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(deals)
}

func (s *Server) deleteDealHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid deal ID", http.StatusBadRequest)
		return
	}

	if err := s.storage.DeleteDeal(id); err != nil {
		if errors.Is(err, store.ErrDealNotFound) {
			http.Error(w, "Deal not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) scheduleHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Loan                  models.LoanTerms        `json:"loan"`
		ExtraMonthlyPrincipal decimal.Decimal         `json:"extra_monthly_principal"`
		LumpSumPayments       map[int]decimal.Decimal `json:"lump_sum_payments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows := schedule.Build(req.Loan, schedule.Options{
		ExtraMonthlyPrincipal: req.ExtraMonthlyPrincipal,
		LumpSumPayments:       req.LumpSumPayments,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

func (s *Server) projectionHandler(w http.ResponseWriter, r *http.Request) {
	var req projection.Inputs
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projection.Project(req))
}

func (s *Server) tempFinancingHandler(w http.ResponseWriter, r *http.Request) {
	var req tempfin.Inputs
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := struct {
		Analysis   tempfin.Analysis `json:"analysis"`
		Validation validate.Result  `json:"validation"`
		StartDate  time.Time        `json:"projection_start_date"`
	}{
		Analysis:   s.analyzer.Analyze(req),
		Validation: tempfin.Validate(req),
		StartDate:  s.analyzer.StartDate(req.TempLoanTermMonths, 1),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func newRouter(server *Server) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/deals", server.listDealsHandler).Methods("GET")
	router.HandleFunc("/deals", server.createDealHandler).Methods("POST")
	router.HandleFunc("/deals/{id}", server.getDealHandler).Methods("GET")
	router.HandleFunc("/deals/{id}", server.deleteDealHandler).Methods("DELETE")
	router.HandleFunc("/schedules", server.scheduleHandler).Methods("POST")
	router.HandleFunc("/projections", server.projectionHandler).Methods("POST")
	router.HandleFunc("/tempfin", server.tempFinancingHandler).Methods("POST")

	return router
}

func main() {
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	server := NewServer(memStore)
	router := newRouter(server)

	log.Println("Server starting on :8080")
	log.Fatal(http.ListenAndServe(":8080", router))
}
