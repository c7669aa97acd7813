package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/CTAG07/Pseudoword/pkg/pseudoword"
	"github.com/CTAG07/Pseudoword/pkg/seedstore"
)

// GenerateAPI holds the dependencies for the generation API handlers.
type GenerateAPI struct {
	store    *seedstore.Store
	config   *GeneratorConfig
	maxWords int
	logger   *slog.Logger
}

// NewGenerateAPI creates a new instance of the GenerateAPI.
func NewGenerateAPI(store *seedstore.Store, config *Config, logger *slog.Logger) *GenerateAPI {
	return &GenerateAPI{
		store:    store,
		config:   config.Generator,
		maxWords: max(1, config.Server.MaxWordsPerRequest),
		logger:   logger,
	}
}

// RegisterRoutes sets up the routing for the /api/generate endpoint.
func (a *GenerateAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", a.handleGenerate)
}

// SeedInput accepts either a whitespace-separated string or a list of words.
type SeedInput []string

func (s *SeedInput) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = pseudoword.ParseSeed(text)
		return nil
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return errors.New("seed must be a string or a list of strings")
	}
	*s = pseudoword.ParseSeedList(words)
	return nil
}

type GenerateRequest struct {
	Seed        SeedInput `json:"seed"`
	SeedName    string    `json:"seed_name"`
	Order       int       `json:"order"`
	Charset     string    `json:"charset"`
	MinLength   int       `json:"min_length"`
	MaxLength   int       `json:"max_length"`
	MaxAttempts int       `json:"max_attempts"`
	Count       int       `json:"count"`
}

type GenerateResponse struct {
	Words         []string `json:"words"`
	Density       float64  `json:"density"`
	TrainingWords int      `json:"training_words"`
}

func (r GenerateRequest) generatorConfig(base *GeneratorConfig) GeneratorConfig {
	return base.Override(GeneratorConfig{
		Order:       r.Order,
		Charset:     r.Charset,
		MinLength:   r.MinLength,
		MaxLength:   r.MaxLength,
		MaxAttempts: r.MaxAttempts,
	}).Normalized()
}

// seedWords resolves the seed of a request: a stored seed by name, or the
// inline words.
func (a *GenerateAPI) seedWords(ctx context.Context, seed []string, seedName string) ([]string, error) {
	if seedName == "" {
		return seed, nil
	}
	if a.store == nil {
		return nil, fmt.Errorf("%w: %q (no seed store configured)", seedstore.ErrSeedNotFound, seedName)
	}
	words, err := a.store.Get(ctx, seedName)
	if err != nil {
		return nil, err
	}
	return pseudoword.ParseSeedList(words), nil
}

// buildModel resolves the seed and trains a model, writing an error response
// and returning nil on failure.
func (a *GenerateAPI) buildModel(w http.ResponseWriter, r *http.Request, seed []string, seedName string, gc GeneratorConfig) *pseudoword.Model {
	words, err := a.seedWords(r.Context(), seed, seedName)
	if err != nil {
		if errors.Is(err, seedstore.ErrSeedNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return nil
		}
		a.logger.Error("Failed to load seed", "seed_name", seedName, "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load seed: %v", err))
		return nil
	}

	model, err := gc.BuildModel(words)
	if err != nil {
		if errors.Is(err, pseudoword.ErrInvalidSeed) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return nil
		}
		a.logger.Error("Failed to build model", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to build model: %v", err))
		return nil
	}
	model.SetLogger(a.logger)
	return model
}

// handleGenerate trains a model on the request's seed and returns generated words.
func (a *GenerateAPI) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON request body: %v", err))
		return
	}
	if req.Count < 0 || req.Count > a.maxWords {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("count must be between 1 and %d", a.maxWords))
		return
	}

	gc := req.generatorConfig(a.config)
	model := a.buildModel(w, r, req.Seed, req.SeedName, gc)
	if model == nil {
		return
	}

	opts := gc.Options()
	words := make([]string, max(1, req.Count))
	for i := range words {
		words[i] = model.GenerateWord(opts...)
	}

	respondWithJSON(w, http.StatusOK, GenerateResponse{
		Words:         words,
		Density:       model.Density(),
		TrainingWords: model.TrainingWords(),
	})
}
