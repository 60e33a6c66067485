package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"corteBack/internal/models"
	"corteBack/internal/services"
)

type StockHandler struct {
	Service *services.StockService
}

func (h *StockHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	item, err := h.Service.CreateItem(r.Context(), userIDFromContext(r), body.Name, body.Quantity)
	switch {
	case errors.Is(err, models.ErrEmptyField):
		writeError(w, http.StatusUnprocessableEntity, "preencha todos os campos")
		return
	case errors.Is(err, models.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, "quantidade inválida")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "não foi possível adicionar o item")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *StockHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetItems(r.Context(), userIDFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch stock")
		return
	}
	json.NewEncoder(w).Encode(items)
}

func (h *StockHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	var body struct {
		Delta int64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	err := h.Service.AdjustQuantity(r.Context(), userIDFromContext(r), id, body.Delta)
	switch {
	case errors.Is(err, models.ErrInvalidDelta):
		writeError(w, http.StatusUnprocessableEntity, "delta must be +1 or -1")
		return
	case errors.Is(err, models.ErrNegativeQuantity):
		writeError(w, http.StatusConflict, "a quantidade não pode ser menor que 0")
		return
	case errors.Is(err, models.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "item not found")
		return
	case errors.Is(err, models.ErrNotOwner):
		writeError(w, http.StatusForbidden, "item belongs to another user")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "não foi possível atualizar o item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StockHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	err := h.Service.DeleteItem(r.Context(), userIDFromContext(r), id)
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "item not found")
		return
	case errors.Is(err, models.ErrNotOwner):
		writeError(w, http.StatusForbidden, "item belongs to another user")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "não foi possível excluir o item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
