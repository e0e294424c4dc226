// Package server exposes digest generation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/takumin/newsbrief/internal/application/usecase"
	"github.com/takumin/newsbrief/internal/domain/digest"
)

const digestTimeout = 120 * time.Second

// Server handles digest API requests.
type Server struct {
	digests *usecase.GenerateService
}

// New creates a Server around a generation service.
func New(digests *usecase.GenerateService) (*Server, error) {
	if digests == nil {
		return nil, errors.New("generation service required")
	}
	return &Server{digests: digests}, nil
}

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/digest", s.handleDigest)
	mux.HandleFunc("/api/health", s.handleHealth)
	return corsMiddleware(logMiddleware(mux))
}

type digestReq struct {
	Topic            string `json:"topic"`
	GenerateAIDigest bool   `json:"generate_ai_digest"`
}

type aiDigestResp struct {
	OverallSummary    string `json:"overall_summary"`
	ArticleHighlights string `json:"article_highlights"`
	IsMock            bool   `json:"is_mock,omitempty"`
}

type digestResp struct {
	Status   string           `json:"status"`
	Topic    string           `json:"topic"`
	Articles []digest.Article `json:"articles"`
	AIDigest *aiDigestResp    `json:"ai_digest,omitempty"`
	Digest   string           `json:"digest,omitempty"`
}

type errorResp struct {
	Error string `json:"error"`
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResp{Error: "method not allowed"})
		return
	}

	var req digestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "topic is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), digestTimeout)
	defer cancel()

	generated, err := s.digests.Build(ctx, req.Topic)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResp{Error: err.Error()})
		return
	}

	resp := digestResp{
		Status:   digest.StatusGenerated,
		Topic:    generated.Topic,
		Articles: generated.Articles,
	}
	if req.GenerateAIDigest {
		resp.AIDigest = &aiDigestResp{
			OverallSummary:    generated.OverallSummary,
			ArticleHighlights: generated.ArticleHighlights,
			IsMock:            generated.Mock,
		}
	} else {
		resp.Status = digest.StatusReceived
		resp.Digest = generated.OverallSummary
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResp{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// ListenAndServe blocks serving the API on addr until the context ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
