// Package server exposes the tokenizer over HTTP.
//
//	GET  /health  liveness and build version
//	GET  /vocab   the vocabulary, optionally filtered with ?family=
//	POST /encode  {"fsw": "..."} -> {"tokens": [...], "ids": [...]}
//	POST /decode  {"tokens": [...]} or {"ids": [...]} -> {"fsw": "..."}
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/example/go-fsw-tokenizer/internal/config"
	"github.com/example/go-fsw-tokenizer/internal/fsw"
	"github.com/example/go-fsw-tokenizer/internal/tokenizer"
)

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes int
	strict       bool
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes: 64 * 1024,
		logger:       slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes limits the size of a request body.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithStrictDecode makes /decode reject sequences the encoder could not have
// produced.
func WithStrictDecode(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

type handler struct {
	tok  *tokenizer.SignWritingTokenizer
	opts options
	log  *slog.Logger
}

// NewHandler returns an http.Handler serving /health, /vocab, /encode and
// /decode with the given tokenizer.
func NewHandler(tok *tokenizer.SignWritingTokenizer, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{tok: tok, opts: opts, log: opts.logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/vocab", h.handleVocab)
	mux.HandleFunc("/encode", h.handleEncode)
	mux.HandleFunc("/decode", h.handleDecode)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

type vocabResponse struct {
	StartingIndex int      `json:"starting_index"`
	Size          int      `json:"size"`
	Tokens        []string `json:"tokens"`
}

func (h *handler) handleVocab(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	v := h.tok.Vocabulary()
	tokens := v.Tokens()

	if name := r.URL.Query().Get("family"); name != "" {
		fam, err := tokenizer.ParseFamily(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		filtered := tokens[:0]
		for _, tok := range tokens {
			if tokenizer.Classify(tok) == fam {
				filtered = append(filtered, tok)
			}
		}
		tokens = filtered
	}

	writeJSON(w, http.StatusOK, vocabResponse{
		StartingIndex: v.StartingIndex(),
		Size:          v.Size(),
		Tokens:        tokens,
	})
}

type encodeRequest struct {
	FSW string `json:"fsw"`
}

type encodeResponse struct {
	Tokens []string `json:"tokens"`
	IDs    []int64  `json:"ids"`
}

func (h *handler) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.FSW == "" {
		writeError(w, http.StatusBadRequest, "fsw field is required")
		return
	}

	start := time.Now()

	tokens, err := h.tok.Tokens(req.FSW)
	if err != nil {
		h.encodeFailed(r, req.FSW, err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	ids, err := h.tok.Encode(req.FSW)
	if err != nil {
		h.encodeFailed(r, req.FSW, err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "encode complete",
		slog.Int("fsw_len", len(req.FSW)),
		slog.Int("tokens", len(tokens)),
		slog.Int64("duration_us", time.Since(start).Microseconds()),
	)
	writeJSON(w, http.StatusOK, encodeResponse{Tokens: tokens, IDs: ids})
}

func (h *handler) encodeFailed(r *http.Request, text string, err error) {
	h.log.WarnContext(r.Context(), "encode failed",
		slog.Int("fsw_len", len(text)),
		slog.String("error", err.Error()),
	)
}

type decodeRequest struct {
	Tokens []string `json:"tokens"`
	IDs    []int64  `json:"ids"`
}

type decodeResponse struct {
	FSW string `json:"fsw"`
}

func (h *handler) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if len(req.Tokens) > 0 && len(req.IDs) > 0 {
		writeError(w, http.StatusBadRequest, "set either tokens or ids, not both")
		return
	}

	tokens := req.Tokens
	if len(req.IDs) > 0 {
		var err error
		tokens, err = h.tok.IDsToTokens(req.IDs)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
	}

	if len(tokens) == 0 {
		writeError(w, http.StatusBadRequest, "tokens or ids field is required")
		return
	}

	if h.opts.strict {
		if err := tokenizer.Validate(tokens); err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
	}

	text, err := h.tok.TokensToText(tokens)
	if err != nil {
		h.log.WarnContext(r.Context(), "decode failed",
			slog.Int("tokens", len(tokens)),
			slog.String("error", err.Error()),
		)
		writeError(w, statusFor(err), err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "decode complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("fsw_len", len(text)),
	)
	writeJSON(w, http.StatusOK, decodeResponse{FSW: text})
}

// decodeBody reads a size-limited JSON POST body into v, writing an error
// response and returning false when that fails.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}

	body := http.MaxBytesReader(w, r.Body, int64(h.opts.maxTextBytes))
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "request body is required")
		default:
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		}
		return false
	}

	return true
}

// statusFor maps tokenizer and parser errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, fsw.ErrParse),
		errors.Is(err, tokenizer.ErrUnknownToken),
		errors.Is(err, tokenizer.ErrMalformedSequence):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server — wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	tok             *tokenizer.SignWritingTokenizer
	shutdownTimeout time.Duration
}

func New(cfg config.Config, tok *tokenizer.SignWritingTokenizer) *Server {
	timeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Server{
		cfg:             cfg,
		tok:             tok,
		shutdownTimeout: timeout,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	opts := []Option{WithStrictDecode(s.cfg.Decode.Strict)}
	if s.cfg.Server.MaxTextBytes > 0 {
		opts = append(opts, WithMaxTextBytes(s.cfg.Server.MaxTextBytes))
	}
	return NewHandler(s.tok, opts...)
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	slog.Info("server listening", slog.String("addr", s.cfg.Server.ListenAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

// ProbeHTTP checks the /health endpoint of a running server.
func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
