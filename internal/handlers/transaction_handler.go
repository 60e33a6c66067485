package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"corteBack/internal/models"
	"corteBack/internal/services"
)

type TransactionHandler struct {
	Service *services.TransactionService
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Description string `json:"description"`
		Amount      string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	tx, err := h.Service.CreateTransaction(r.Context(), userIDFromContext(r), body.Description, body.Amount)
	switch {
	case errors.Is(err, models.ErrEmptyField):
		writeError(w, http.StatusUnprocessableEntity, "preencha todos os campos")
		return
	case errors.Is(err, models.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, "valor inválido")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "não foi possível registrar a transação")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tx)
}

func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Service.GetTransactions(r.Context(), userIDFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch transactions")
		return
	}
	json.NewEncoder(w).Encode(txs)
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	err := h.Service.DeleteTransaction(r.Context(), userIDFromContext(r), id)
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	case errors.Is(err, models.ErrNotOwner):
		writeError(w, http.StatusForbidden, "transaction belongs to another user")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
