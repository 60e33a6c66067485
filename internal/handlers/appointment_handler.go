package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"corteBack/internal/models"
	"corteBack/internal/services"
)

type AppointmentHandler struct {
	Service *services.AppointmentService
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	appt, err := h.Service.CreateAppointment(r.Context(), userIDFromContext(r), body.Description)
	if errors.Is(err, models.ErrEmptyField) {
		writeError(w, http.StatusUnprocessableEntity, "o campo de compromisso não pode estar vazio")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "não foi possível adicionar o compromisso")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appt)
}

func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.Service.GetAppointments(r.Context(), userIDFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch appointments")
		return
	}
	json.NewEncoder(w).Encode(appts)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	err := h.Service.DeleteAppointment(r.Context(), userIDFromContext(r), id)
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	case errors.Is(err, models.ErrNotOwner):
		writeError(w, http.StatusForbidden, "appointment belongs to another user")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "não foi possível excluir o compromisso")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
