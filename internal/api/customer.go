package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/utils"
)

type CustomerHandler struct {
	customers    *service.CustomerService
	accounts     *service.AccountService
	transactions *service.TransactionService
	logger       *logrus.Logger
}

func NewCustomerHandler(customers *service.CustomerService, accounts *service.AccountService, transactions *service.TransactionService, logger *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers:    customers,
		accounts:     accounts,
		transactions: transactions,
		logger:       logger,
	}
}

func (h *CustomerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.CreateCustomer).Methods(http.MethodPost)
	router.HandleFunc("", h.ListCustomers).Methods(http.MethodGet)
	router.HandleFunc("/{id}", h.GetCustomer).Methods(http.MethodGet)
	router.HandleFunc("/{id}", h.UpdateCustomer).Methods(http.MethodPut)
	router.HandleFunc("/{id}", h.DeleteCustomer).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/accounts", h.ListCustomerAccounts).Methods(http.MethodGet)
	router.HandleFunc("/{id}/transactions", h.ListCustomerTransactions).Methods(http.MethodGet)
}

// customerRequest is the body of create and update. A missing risk limit
// means the default limit.
type customerRequest struct {
	Name           string       `json:"name"`
	LastName       string       `json:"last_name"`
	IdentityNumber string       `json:"identity_number"`
	BirthPlace     string       `json:"birth_place"`
	BirthDate      string       `json:"birth_date"`
	RiskLimit      *utils.Money `json:"risk_limit"`
}

func (req customerRequest) details() (ledger.CustomerDetails, error) {
	d := ledger.CustomerDetails{
		Name:           req.Name,
		LastName:       req.LastName,
		IdentityNumber: req.IdentityNumber,
		BirthPlace:     req.BirthPlace,
		RiskLimit:      utils.Money(config.DefaultRiskLimit),
	}
	if req.BirthDate != "" {
		t, err := time.Parse(config.DateLayout, req.BirthDate)
		if err != nil {
			return d, badRequest{msg: "birth_date must be YYYY-MM-DD"}
		}
		d.BirthDate = t
	}
	if req.RiskLimit != nil {
		if req.RiskLimit.IsNegative() {
			return d, badRequest{msg: "risk_limit must not be negative"}
		}
		d.RiskLimit = *req.RiskLimit
	}
	return d, nil
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	d, err := req.details()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	customer, err := h.customers.Create(r.Context(), d)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, customer)
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, nonNil(customers))
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	customer, err := h.customers.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req customerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	d, err := req.details()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	customer, err := h.customers.Update(r.Context(), id, d)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	customer, err := h.customers.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, customer)
}

func (h *CustomerHandler) ListCustomerAccounts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	accounts, err := h.accounts.ListByCustomer(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, nonNil(accounts))
}

func (h *CustomerHandler) ListCustomerTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	history, err := h.transactions.ListByCustomer(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, nonNil(history))
}
