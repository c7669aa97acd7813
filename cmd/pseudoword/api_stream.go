package main

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

const streamWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// StreamAPI streams generated words over a websocket.
type StreamAPI struct {
	gen    *GenerateAPI
	logger *slog.Logger
}

// NewStreamAPI creates a new instance of the StreamAPI.
func NewStreamAPI(gen *GenerateAPI, logger *slog.Logger) *StreamAPI {
	return &StreamAPI{gen: gen, logger: logger}
}

// RegisterRoutes sets up the routing for the /api/stream endpoint.
func (a *StreamAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/stream", a.handleStream)
}

// StreamMessage is one generated word sent over the websocket.
type StreamMessage struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

// handleStream builds a model from the query parameters (seed or seed_name,
// order, charset, min_length, max_length, max_attempts, count) and sends
// count words, one JSON message each, before closing the connection. Seed
// errors are reported as plain HTTP errors before the upgrade.
func (a *StreamAPI) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req := GenerateRequest{
		Order:       queryInt(r, "order"),
		Charset:     r.URL.Query().Get("charset"),
		MinLength:   queryInt(r, "min_length"),
		MaxLength:   queryInt(r, "max_length"),
		MaxAttempts: queryInt(r, "max_attempts"),
		Count:       queryInt(r, "count"),
	}
	if req.Count <= 0 || req.Count > a.gen.maxWords {
		req.Count = a.gen.maxWords
	}

	gc := req.generatorConfig(a.gen.config)
	model := a.gen.buildModel(w, r, seedWordsFromQuery(r), r.URL.Query().Get("seed_name"), gc)
	if model == nil {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer func(conn *websocket.Conn) {
		_ = conn.Close()
	}(conn)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reading is only needed to notice the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sent := 0
	for word := range model.GenerateStream(ctx, req.Count, gc.Options()...) {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err = conn.WriteJSON(StreamMessage{Index: sent, Word: word}); err != nil {
			a.logger.Debug("Word stream write failed", "sent", sent, "error", err)
			cancel()
			break
		}
		sent++
	}

	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
	a.logger.Debug("Word stream finished", slog.Int("sent", sent))
}
