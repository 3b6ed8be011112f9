// Package api serves the ledger services as JSON over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/service"
)

// NewRouter builds the router for every ledger endpoint
func NewRouter(services *service.Services, logger *logrus.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware(logger))
	router.HandleFunc("/health", health).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()

	NewCustomerHandler(services.Customers, services.Accounts, services.Transactions, logger).
		RegisterRoutes(apiRouter.PathPrefix("/customers").Subrouter())
	NewAccountHandler(services.Accounts, services.Cards, logger).
		RegisterRoutes(apiRouter.PathPrefix("/accounts").Subrouter())
	NewCardHandler(services.Cards, services.Transactions, services.Reports, logger).
		RegisterRoutes(apiRouter.PathPrefix("/cards").Subrouter())
	NewTransactionHandler(services.Transactions, logger).
		RegisterRoutes(apiRouter.PathPrefix("/transactions").Subrouter())

	return router
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

// errBadRequest marks malformed input that never reached a service
var errBadRequest = errors.New("bad request")

// badRequest wraps a client input problem
type badRequest struct {
	msg string
}

func (e badRequest) Error() string { return e.msg }
func (e badRequest) Is(target error) bool {
	return target == errBadRequest
}

// StatusFor maps an error to its HTTP status
func StatusFor(err error) int {
	if errors.Is(err, errBadRequest) {
		return http.StatusBadRequest
	}
	switch ledger.KindOf(err) {
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindConflict:
		return http.StatusConflict
	case ledger.KindValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, logger *logrus.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

// writeError answers with the error status. Internal errors are logged and
// hidden from the client.
func writeError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("request failed")
		msg = http.StatusText(status)
	}
	writeJSON(w, logger, status, errorResponse{Error: msg})
}

// pathID parses the {id} route variable
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, badRequest{msg: "invalid id " + raw}
	}
	return id, nil
}

// decode reads a JSON body into v, rejecting unknown fields
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest{msg: "invalid request body: " + err.Error()}
	}
	return nil
}

// nonNil makes empty lists encode as [] rather than null
func nonNil[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return items
}
