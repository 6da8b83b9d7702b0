package httpapi

import (
	"encoding/json"
	"net"
	"net/http"

	"bistro-backend/internal/domain"
)

func (h *Handler) submitSurvey(w http.ResponseWriter, r *http.Request) {
	var survey domain.Survey
	if err := json.NewDecoder(r.Body).Decode(&survey); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	survey.SubmittedIP = clientIP(r)
	survey.UserAgent = r.UserAgent()
	if survey.SubmittedLanguage == "" {
		survey.SubmittedLanguage = r.Header.Get("Accept-Language")
	}

	if err := h.Surveys.Submit(r.Context(), &survey); err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusCreated, survey)
}

func (h *Handler) listSurveys(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.Surveys.List()
	if err != nil {
		internalError(w, "list surveys", err)
		return
	}
	respond(w, http.StatusOK, surveys)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
