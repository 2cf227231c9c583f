// Package server is the HTTP front end used by the web playground. It checks
// specifications with the configured mcrl22lps and prints them through the
// bridge.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tliron/commonlog"
	"parsecheck/internal/bridge"
	"parsecheck/internal/toolexec"
)

var log = commonlog.GetLogger("parsecheck.server")

//go:embed webpage/index.html
var indexHTML []byte

// CheckRequest is the body of /api/check_mcrl2 and /api/print.
type CheckRequest struct {
	Text string `json:"text"`
	Kind string `json:"kind,omitempty"`
}

type CheckResponse struct {
	Result  string `json:"result"`
	Success bool   `json:"success"`
}

// Server serves the playground API.
type Server struct {
	// Mcrl22lps is the tool run by /api/check_mcrl2. When empty the bridge
	// prints the specification instead.
	Mcrl22lps string
	Bridge    *bridge.Bridge
	// ToolTimeout bounds a single tool run.
	ToolTimeout time.Duration
}

func New(mcrl22lps string, b *bridge.Bridge) *Server {
	if b == nil {
		b = bridge.Default()
	}
	return &Server{Mcrl22lps: mcrl22lps, Bridge: b, ToolTimeout: 30 * time.Second}
}

// Handler routes the playground endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/check_mcrl2", s.handleCheck)
	mux.HandleFunc("POST /api/print", s.handlePrint)
	mux.HandleFunc("OPTIONS /api/", handlePreflight)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})
	return withLogging(mux)
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		log.Infof("server running on http://%s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write(indexHTML)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !decode(w, r, &req) {
		return
	}

	if s.Mcrl22lps == "" {
		writeJSON(w, s.print(bridge.ModeProcess, req.Text))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.ToolTimeout)
	defer cancel()

	res, err := toolexec.Run(ctx, s.Mcrl22lps, req.Text, "--print-ast")
	if err != nil {
		log.Errorf("%s", err)
		writeJSON(w, CheckResponse{Result: fmt.Sprintf("Error running mcrl22lps: %s", err)})
		return
	}
	writeJSON(w, CheckResponse{Result: res.Output(), Success: res.Success()})
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !decode(w, r, &req) {
		return
	}

	kind := req.Kind
	if kind == "" {
		kind = bridge.ModeProcess.String()
	}
	mode, err := bridge.ParseMode(kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, s.print(mode, req.Text))
}

func (s *Server) print(mode bridge.Mode, text string) CheckResponse {
	out, err := s.Bridge.Print(mode, text)
	if err != nil {
		return CheckResponse{Result: err.Error()}
	}
	return CheckResponse{Result: out, Success: true}
}

func handlePreflight(w http.ResponseWriter, r *http.Request) {
	cors(w)
	w.WriteHeader(http.StatusOK)
}

func cors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		log.Debugf("bad request body: %s", err)
		http.Error(w, "Invalid JSON in request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, resp CheckResponse) {
	cors(w)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Errorf("writing response: %s", err)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Infof("%s %s dur=%s", r.Method, r.URL.Path, time.Since(start))
	})
}
