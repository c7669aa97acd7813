package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/CTAG07/Pseudoword/pkg/pseudoword"
	"github.com/CTAG07/Pseudoword/pkg/seedstore"
)

// SeedsAPI holds the dependencies for the stored seed API handlers.
type SeedsAPI struct {
	store  *seedstore.Store
	gen    *GenerateAPI
	logger *slog.Logger
}

// NewSeedsAPI creates a new instance of the SeedsAPI.
func NewSeedsAPI(store *seedstore.Store, gen *GenerateAPI, logger *slog.Logger) *SeedsAPI {
	return &SeedsAPI{
		store:  store,
		gen:    gen,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for all /api/seeds endpoints.
func (a *SeedsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/seeds", a.handleListAndCreateSeeds)
	mux.HandleFunc("/api/seeds/", a.handleSeedByName)
}

type CreateSeedRequest struct {
	Name string    `json:"name"`
	Seed SeedInput `json:"seed"`
}

type SeedResponse struct {
	seedstore.SeedInfo
	Words []string `json:"words"`
}

// handleListAndCreateSeeds handles GET for listing and POST for creating seeds.
func (a *SeedsAPI) handleListAndCreateSeeds(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		infos, err := a.store.List(r.Context())
		if err != nil {
			a.logger.Error("Failed to list seeds", "error", err)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve seeds: %v", err))
			return
		}
		respondWithJSON(w, http.StatusOK, infos)

	case http.MethodPost:
		var req CreateSeedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON request body: %v", err))
			return
		}
		if req.Name == "" || strings.Contains(req.Name, "/") {
			respondWithError(w, http.StatusBadRequest, "A seed name without '/' is required")
			return
		}

		info, err := a.store.Insert(r.Context(), req.Name, req.Seed)
		switch {
		case errors.Is(err, seedstore.ErrSeedExists):
			respondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, seedstore.ErrEmptySeed):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case err != nil:
			a.logger.Error("Failed to insert seed", "name", req.Name, "error", err)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to create seed: %v", err))
		default:
			respondWithJSON(w, http.StatusCreated, info)
		}

	default:
		w.Header().Set("Allow", "GET, POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleSeedByName routes actions for a specific seed, e.g., show, delete, stats.
func (a *SeedsAPI) handleSeedByName(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/seeds/")
	parts := strings.Split(path, "/")
	seedName := parts[0]

	if seedName == "" {
		respondWithError(w, http.StatusBadRequest, "Seed name not specified")
		return
	}

	if len(parts) == 1 { // Path is just /api/seeds/{name}
		switch r.Method {
		case http.MethodGet:
			info, err := a.store.Info(r.Context(), seedName)
			if err != nil {
				a.respondWithStoreError(w, seedName, err)
				return
			}
			words, err := a.store.Get(r.Context(), seedName)
			if err != nil {
				a.respondWithStoreError(w, seedName, err)
				return
			}
			respondWithJSON(w, http.StatusOK, SeedResponse{SeedInfo: info, Words: words})
		case http.MethodDelete:
			if err := a.store.Remove(r.Context(), seedName); err != nil {
				a.respondWithStoreError(w, seedName, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Header().Set("Allow", "GET, DELETE")
			respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	switch parts[1] {
	case "stats":
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		gc := a.gen.config.Normalized()
		model := a.gen.buildModel(w, r, nil, seedName, gc)
		if model == nil {
			return
		}
		respondWithJSON(w, http.StatusOK, model.Stats())

	default:
		respondWithError(w, http.StatusNotFound, "Action not found")
	}
}

func (a *SeedsAPI) respondWithStoreError(w http.ResponseWriter, seedName string, err error) {
	if errors.Is(err, seedstore.ErrSeedNotFound) {
		respondWithError(w, http.StatusNotFound, "Seed not found")
		return
	}
	a.logger.Error("Seed store error", "name", seedName, "error", err)
	respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
}

// seedWordsFromQuery reads an inline seed from the "seed" query parameter.
func seedWordsFromQuery(r *http.Request) []string {
	return pseudoword.ParseSeed(r.URL.Query().Get("seed"))
}
