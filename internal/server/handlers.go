package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"dslsplit/internal/domain"
	"dslsplit/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

type splitTextRequest struct {
	Text     string `json:"text"`
	Method   string `json:"method"`
	Variant  string `json:"variant"`
	Language string `json:"lang"`
}

type splitTextResponse struct {
	Results []*domain.SplitResponse `json:"results"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode error", slog.String("err", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidMethod),
		errors.Is(err, domain.ErrInvalidVariant),
		errors.Is(err, domain.ErrInvalidLanguage),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("split failed", slog.String("request_id", RequestID(r.Context())), slog.String("err", msg))
		msg = "internal error"
	}
	writeError(w, status, msg)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("200"))
}

func (s *Server) handleSplitWord(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := s.split.Split(r.Context(), usecase.SplitRequest{
		Word:     r.PathValue("word"),
		Method:   q.Get("method"),
		Variant:  q.Get("variant"),
		Language: q.Get("lang"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.splits.WithLabelValues(string(resp.Method)).Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSplitText(w http.ResponseWriter, r *http.Request) {
	var body splitTextRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
		return
	}

	responses, err := s.split.SplitText(r.Context(), usecase.TextRequest{
		Text:     body.Text,
		Method:   body.Method,
		Variant:  body.Variant,
		Language: body.Language,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for _, resp := range responses {
		s.metrics.splits.WithLabelValues(string(resp.Method)).Inc()
	}
	writeJSON(w, http.StatusOK, splitTextResponse{Results: responses})
}
