// Package api serves program runs, translations and checks over HTTP.
//
// All endpoints live under /v1, accept a JSON body and answer with JSON:
//
//	POST /v1/run        {"source": "+++.", "notation": "punctuation", "input": ""}
//	POST /v1/translate  {"source": "+++.", "notation": "punctuation"}
//	POST /v1/check      {"source": "+]"}
//	POST /v1/dis        {"source": "+[-]"}
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/braintranscriber/bt"
	"github.com/braintranscriber/bt/bytecode"
	"github.com/braintranscriber/bt/dis"
	"github.com/braintranscriber/bt/errz"
	"github.com/braintranscriber/bt/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const (
	DefaultMaxSteps    = 10_000_000
	DefaultTimeout     = 10 * time.Second
	DefaultMaxBodySize = 1 << 20
)

// Config controls the limits applied to every request.
type Config struct {
	Logger zerolog.Logger

	// TapeSize is the initial tape size of each run.
	TapeSize int

	// MaxSteps caps the instructions a single run may execute. Requests
	// may ask for a lower limit but never a higher one.
	MaxSteps int64

	// Timeout bounds the duration of a single run.
	Timeout time.Duration

	// MaxBodySize is the largest accepted request body in bytes.
	MaxBodySize int64
}

// RunRequest is the body of POST /v1/run.
type RunRequest struct {
	Source   string `json:"source"`
	Notation string `json:"notation,omitempty"`
	Input    string `json:"input,omitempty"`
	MaxSteps int64  `json:"max_steps,omitempty"`
}

// RunResponse holds the output produced by a run. Output written before a
// failure is still returned alongside the error.
type RunResponse struct {
	Output string `json:"output"`
	Error  *Error `json:"error,omitempty"`
}

// SourceRequest is the body of the translate, check and dis endpoints.
type SourceRequest struct {
	Source   string `json:"source"`
	Notation string `json:"notation,omitempty"`
}

type TranslateResponse struct {
	Source   string `json:"source"`
	Notation string `json:"notation"`
}

type CheckResponse struct {
	Problems []Error `json:"problems"`
}

type DisResponse struct {
	Stats        bytecode.Stats    `json:"stats"`
	Instructions []dis.Instruction `json:"instructions"`
}

// Error describes a failed request or run.
type Error struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Position int    `json:"position"`
}

type errorResponse struct {
	Error *Error `json:"error"`
}

type server struct {
	cfg Config
}

// NewRouter returns the HTTP handler for the API.
func NewRouter(cfg Config) http.Handler {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	s := &server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(hlog.NewHandler(cfg.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(middleware.RequestSize(cfg.MaxBodySize))
		r.Post("/run", s.handleRun)
		r.Post("/translate", s.handleTranslate)
		r.Post("/check", s.handleCheck)
		r.Post("/dis", s.handleDis)
	})
	return r
}

func (s *server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	notation, ok := parseNotation(w, req.Notation)
	if !ok {
		return
	}
	maxSteps := s.cfg.MaxSteps
	if req.MaxSteps > 0 && req.MaxSteps < maxSteps {
		maxSteps = req.MaxSteps
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()

	var out bytes.Buffer
	err := bt.Run(ctx, req.Source, notation,
		bt.WithInput(strings.NewReader(req.Input)),
		bt.WithOutput(&out),
		bt.WithTapeSize(s.cfg.TapeSize),
		bt.WithMaxSteps(maxSteps),
		bt.WithLogger(*hlog.FromRequest(r)))

	resp := RunResponse{Output: out.String()}
	status := http.StatusOK
	if err != nil {
		resp.Error = toError(err)
		status = statusFor(err)
		hlog.FromRequest(r).Debug().Err(err).Msg("run failed")
	}
	respondJSON(w, status, resp)
}

func (s *server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req SourceRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	notation, ok := parseNotation(w, req.Notation)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, TranslateResponse{
		Source:   bt.Translate(req.Source, notation),
		Notation: notation.Other().String(),
	})
}

func (s *server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req SourceRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	notation, ok := parseNotation(w, req.Notation)
	if !ok {
		return
	}
	resp := CheckResponse{Problems: []Error{}}
	if err := bt.Check(req.Source, notation); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				resp.Problems = append(resp.Problems, *toError(e))
			}
		} else {
			resp.Problems = append(resp.Problems, *toError(err))
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *server) handleDis(w http.ResponseWriter, r *http.Request) {
	var req SourceRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	notation, ok := parseNotation(w, req.Notation)
	if !ok {
		return
	}
	program := bt.Decode(req.Source, notation)
	respondJSON(w, http.StatusOK, DisResponse{
		Stats:        bytecode.GetStats(program),
		Instructions: dis.Disassemble(program),
	})
}

func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		}
		return false
	}
	return true
}

// parseNotation defaults to punctuation notation when name is empty.
func parseNotation(w http.ResponseWriter, name string) (token.Notation, bool) {
	if name == "" {
		return token.Punctuation, true
	}
	notation, err := token.ParseNotation(name)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return notation, false
	}
	return notation, true
}

func toError(err error) *Error {
	var serr *errz.StructuredError
	switch {
	case errors.As(err, &serr):
		return &Error{Kind: serr.Kind.String(), Message: serr.Message, Position: serr.Position}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: "timeout", Message: "run exceeded the time limit", Position: -1}
	case errors.Is(err, context.Canceled):
		return &Error{Kind: "canceled", Message: "run was canceled", Position: -1}
	default:
		return &Error{Kind: "error", Message: err.Error(), Position: -1}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errz.ErrUnbalancedLoop), errors.Is(err, errz.ErrHalted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: &Error{Kind: "request", Message: message, Position: -1}})
}
