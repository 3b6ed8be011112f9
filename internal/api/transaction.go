package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/utils"
)

type TransactionHandler struct {
	transactions *service.TransactionService
	logger       *logrus.Logger
}

func NewTransactionHandler(transactions *service.TransactionService, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		logger:       logger,
	}
}

func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.CreateTransaction).Methods(http.MethodPost)
	router.HandleFunc("", h.ListTransactions).Methods(http.MethodGet)
	router.HandleFunc("/{id}", h.GetTransaction).Methods(http.MethodGet)
}

type transactionRequest struct {
	CardID     uuid.UUID   `json:"card_id"`
	Amount     utils.Money `json:"amount"`
	Direction  string      `json:"direction"`
	Type       string      `json:"type"`
	Definition string      `json:"definition"`
}

func (req transactionRequest) toService() (service.TransactionRequest, error) {
	direction, err := models.ParseDirection(req.Direction)
	if err != nil {
		return service.TransactionRequest{}, badRequest{msg: err.Error()}
	}
	txType, err := models.ParseTransactionType(req.Type)
	if err != nil {
		return service.TransactionRequest{}, badRequest{msg: err.Error()}
	}
	return service.TransactionRequest{
		CardID:     req.CardID,
		Amount:     req.Amount,
		Direction:  direction,
		Type:       txType,
		Definition: req.Definition,
	}, nil
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	svcReq, err := req.toService()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	tx, err := h.transactions.Create(r.Context(), svcReq)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, tx)
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	history, err := h.transactions.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, nonNil(history))
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	tx, err := h.transactions.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, tx)
}
