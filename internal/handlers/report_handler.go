package handlers

import (
	"encoding/json"
	"net/http"

	"corteBack/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

// GenerateCaixaReport renders the PDF for the signed-in user's current ledger
// and returns where it was written (and uploaded, when storage is on).
func (h *ReportHandler) GenerateCaixaReport(w http.ResponseWriter, r *http.Request) {
	path, url, err := h.Service.GenerateForOwner(r.Context(), userIDFromContext(r))
	if err != nil {
		// An upload failure still leaves the rendered file on disk.
		if path != "" {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "não foi possível enviar o PDF",
				"path":  path,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "não foi possível gerar o PDF")
		return
	}

	resp := map[string]string{"path": path}
	if url != "" {
		resp["url"] = url
	}
	json.NewEncoder(w).Encode(resp)
}
