package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/service"
)

type AccountHandler struct {
	accounts *service.AccountService
	cards    *service.CardService
	logger   *logrus.Logger
}

func NewAccountHandler(accounts *service.AccountService, cards *service.CardService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		cards:    cards,
		logger:   logger,
	}
}

func (h *AccountHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.CreateAccount).Methods(http.MethodPost)
	router.HandleFunc("", h.ListAccounts).Methods(http.MethodGet)
	router.HandleFunc("/{id}", h.GetAccount).Methods(http.MethodGet)
	router.HandleFunc("/{id}", h.UpdateAccount).Methods(http.MethodPut)
	router.HandleFunc("/{id}", h.DeleteAccount).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/cards", h.ListAccountCards).Methods(http.MethodGet)
}

type accountRequest struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Type       string    `json:"type"`
	IBAN       string    `json:"iban"`
}

func (req accountRequest) accountType() (models.AccountType, error) {
	t, err := models.ParseAccountType(req.Type)
	if err != nil {
		return "", badRequest{msg: err.Error()}
	}
	return t, nil
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	accountType, err := req.accountType()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	account, err := h.accounts.Create(r.Context(), req.CustomerID, accountType, req.IBAN)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, account)
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, nonNil(accounts))
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, account)
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req accountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	accountType, err := req.accountType()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	account, err := h.accounts.Update(r.Context(), id, req.CustomerID, accountType, req.IBAN)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	account, err := h.accounts.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, account)
}

func (h *AccountHandler) ListAccountCards(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	cards, err := h.cards.ListByAccount(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, nonNil(cards))
}
