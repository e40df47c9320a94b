package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/beatercode/organAizer-server/pkg/organizer"
	"github.com/beatercode/organAizer-server/pkg/utils"
)

// errorResponse — тело ответа при ошибке.
type errorResponse struct {
	Error string `json:"error"`
}

// statusResponse — тело ответа /api/status.
type statusResponse struct {
	Status    string `json:"status"`
	AIEnabled bool   `json:"aiEnabled"`
	Model     string `json:"model,omitempty"`
	Version   string `json:"version"`
}

// handleOrganize — единая точка входа операций.
//
// POST {folderData, option, userInput?} → операция-специфичный JSON.
// Ошибки клиентского ввода → 400 без частичной обработки; всё
// остальное обработчики операций превращают в деградированный успех.
func (s *Server) handleOrganize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req organizer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	result, err := s.org.Handle(r.Context(), req)
	if err != nil {
		if isClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.Error("Organize request failed", "error", err, "request_id", GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleStatus — статический индикатор работоспособности.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := statusResponse{
		Status:    "running",
		AIEnabled: s.cfg.AI.Enabled(),
		Version:   Version,
	}
	if s.cfg.AI.Enabled() {
		resp.Model = s.cfg.AI.Model
	}
	writeJSON(w, http.StatusOK, resp)
}

// isClientError отличает ошибки клиентского ввода от внутренних.
func isClientError(err error) bool {
	return errors.Is(err, organizer.ErrMissingFolderData) ||
		errors.Is(err, organizer.ErrUnknownOption) ||
		errors.Is(err, organizer.ErrMissingQuery)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
