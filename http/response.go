package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ai-strategies/service"

	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// decodeJSON rejects non-JSON content types and unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) (int, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return http.StatusUnsupportedMediaType, errors.New("Content-Type must be application/json")
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeErrorStatus(err), fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err != nil && decodeErrorStatus(err) == http.StatusRequestEntityTooLarge {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("invalid request body: %w", err)
		}
		return http.StatusBadRequest, errors.New("invalid request body: unexpected data after JSON object")
	}
	return http.StatusOK, nil
}

func decodeErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// writeJSON encodes into a buffer first so an encoding failure can still
// produce a 500 before any header is written.
func writeJSON(w http.ResponseWriter, log *logrus.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.WithError(err).Error("encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Warn("writing response")
	}
}

func writeError(w http.ResponseWriter, log *logrus.Logger, status int, msg string) {
	writeJSON(w, log, status, errorResponse{Error: msg})
}

// writeServiceError maps domain validation failures to 400 and everything
// else to 500.
func writeServiceError(w http.ResponseWriter, log *logrus.Logger, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}
	log.WithError(err).Error("calculation failed")
	writeError(w, log, http.StatusInternalServerError, "internal server error")
}

func wantsExplanation(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("explain")) {
	case "1", "true", "yes":
		return true
	}
	return false
}
