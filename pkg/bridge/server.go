package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ucanduit/ucanduit/pkg/persistence"
)

// MaxBodyBytes caps the size of an invoke request body.
const MaxBodyBytes = 8 << 20

// Server exposes a Registry to the UI layer over loopback HTTP:
// POST /invoke/{command} with the argument object as the body.
type Server struct {
	srv      *http.Server
	mux      *http.ServeMux
	registry *Registry
	maxBody  int64
}

func NewServer(registry *Registry) *Server {
	s := &Server{
		registry: registry,
		mux:      http.NewServeMux(),
		maxBody:  MaxBodyBytes,
	}

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /invoke/{command}", s.handleInvoke)

	s.srv = &http.Server{Handler: withCORS(s.mux)}
	return s
}

// Start listens on addr and serves until ctx is cancelled. It returns the
// base URL, which is useful when addr uses port 0.
func (s *Server) Start(ctx context.Context, addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("bridge server error")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()

	return "http://" + ln.Addr().String(), nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	command := r.PathValue("command")
	requestID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"command": command, "request_id": requestID})
	w.Header().Set("X-Request-Id", requestID)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		log.WithError(err).Warn("failed to read request body")
		writeErr(w, status, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	result, err := s.registry.Invoke(command, body)
	if err != nil {
		log.WithError(err).Warn("command failed")
		writeErr(w, statusFor(err), err)
		return
	}

	log.Info("command succeeded")
	writeJSON(w, http.StatusOK, result)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownCommand), errors.Is(err, persistence.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadArgs), errors.Is(err, persistence.ErrInvalidFilename):
		return http.StatusBadRequest
	case errors.Is(err, persistence.ErrParse):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, err error) {
	type response struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, response{Error: err.Error()})
}
