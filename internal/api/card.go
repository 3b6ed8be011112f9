package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/utils"
)

type CardHandler struct {
	cards        *service.CardService
	transactions *service.TransactionService
	reports      *service.ReportService
	logger       *logrus.Logger
}

func NewCardHandler(cards *service.CardService, transactions *service.TransactionService, reports *service.ReportService, logger *logrus.Logger) *CardHandler {
	return &CardHandler{
		cards:        cards,
		transactions: transactions,
		reports:      reports,
		logger:       logger,
	}
}

func (h *CardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/credit", h.CreateCreditCard).Methods(http.MethodPost)
	router.HandleFunc("/debit", h.CreateDebitCard).Methods(http.MethodPost)
	router.HandleFunc("", h.ListCards).Methods(http.MethodGet)
	router.HandleFunc("/{id}", h.GetCard).Methods(http.MethodGet)
	router.HandleFunc("/{id}", h.UpdateCard).Methods(http.MethodPut)
	router.HandleFunc("/{id}", h.DeleteCard).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/transactions", h.ListCardTransactions).Methods(http.MethodGet)
	router.HandleFunc("/{id}/report", h.GetCardReport).Methods(http.MethodGet)
}

type cardRequest struct {
	AccountID uuid.UUID   `json:"account_id"`
	Number    string      `json:"number"`
	Balance   utils.Money `json:"balance"`
}

type cardUpdateRequest struct {
	Number string `json:"number"`
}

func (h *CardHandler) CreateCreditCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	card, err := h.cards.CreateCredit(r.Context(), req.AccountID, req.Number, req.Balance)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, card)
}

func (h *CardHandler) CreateDebitCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if !req.Balance.IsZero() {
		writeError(w, h.logger, badRequest{msg: "debit cards are issued without balance"})
		return
	}

	card, err := h.cards.CreateDebit(r.Context(), req.AccountID, req.Number)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, card)
}

func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, nonNil(cards))
}

func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	card, err := h.cards.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, card)
}

func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req cardUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	card, err := h.cards.Update(r.Context(), id, req.Number)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, card)
}

func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	card, err := h.cards.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, card)
}

func (h *CardHandler) ListCardTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	history, err := h.transactions.ListByCard(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, nonNil(history))
}

func (h *CardHandler) GetCardReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	report, err := h.reports.CardReport(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, report)
}
