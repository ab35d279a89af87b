package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/nestgraph/pkg/errors"
	"github.com/matzehuels/nestgraph/pkg/network"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTarget, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidModel:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidReference, errors.ErrCodeUnknownModel:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body")
	}
	return nil
}

func pathIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid index %q", raw)
	}
	return i, nil
}

// withNode resolves {index} to a node and runs next under the server lock.
func (s *Server) withNode(next func(http.ResponseWriter, *http.Request, *network.Node)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		i, err := pathIndex(r)
		if err != nil {
			s.respondError(w, err)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		node := s.net.Node(i)
		if node == nil {
			s.respondError(w, errors.New(errors.ErrCodeNotFound, "no node at index %d", i))
			return
		}
		next(w, r, node)
	}
}

// withConnection resolves {index} to a connection and runs next under the
// server lock.
func (s *Server) withConnection(next func(http.ResponseWriter, *http.Request, *network.Connection)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		i, err := pathIndex(r)
		if err != nil {
			s.respondError(w, err)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		c := s.net.Connection(i)
		if c == nil {
			s.respondError(w, errors.New(errors.ErrCodeNotFound, "no connection at index %d", i))
			return
		}
		next(w, r, c)
	}
}
