package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bazaarlabs/khoj/internal/embedding"
	"github.com/bazaarlabs/khoj/internal/models"
	"github.com/bazaarlabs/khoj/internal/search"
)

// searchRequestBody is the wire form of a search request; the image travels
// as base64.
type searchRequestBody struct {
	Text         string `json:"text,omitempty"`
	Image        string `json:"image,omitempty"`
	TopK         int    `json:"top_k,omitempty"`
	CategoryHint string `json:"category_hint,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := &models.SearchRequest{
		Text:         body.Text,
		TopK:         body.TopK,
		CategoryHint: body.CategoryHint,
	}
	if body.Image != "" {
		image, err := base64.StdEncoding.DecodeString(body.Image)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "image must be base64 encoded")
			return
		}
		req.ImageData = image
	}

	s.logger.Debug("search request", zap.String("text", body.Text), zap.Int("top_k", body.TopK))
	response, err := s.pipeline.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrEmptyQuery):
			s.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, embedding.ErrModelUnavailable):
			s.logger.Error("embedding model unavailable", zap.Error(err))
			s.respondError(w, http.StatusBadGateway, "embedding model unavailable")
		default:
			s.logger.Error("search failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "product not found")
		return
	}
	s.respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
