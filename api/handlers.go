package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"gotraffic/adapters/llm"
	"gotraffic/internal/analysis"
	apperrors "gotraffic/internal/errors"
)

const serviceName = "Broadcast Revenue Intelligence"

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (a *App) writeError(w http.ResponseWriter, status int, err error) {
	a.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}

// handleHealth reports service mode and dataset availability.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "AI"
	if a.cfg.AI.APIKey == "" {
		mode = "MOCK"
	}

	dataStatus := map[string]bool{}
	for _, name := range []string{"orders.csv", "spots.csv", "inventory.csv"} {
		_, err := os.Stat(filepath.Join(a.cfg.Data.Dir, name))
		dataStatus[name] = err == nil
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"service":     serviceName,
		"mode":        mode,
		"version":     "0.1.0",
		"data_status": dataStatus,
	})
}

// handlePipelineStatus counts the CSV files at each pipeline stage.
func (a *App) handlePipelineStatus(w http.ResponseWriter, r *http.Request) {
	count := func(dir string) int {
		matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
		if err != nil {
			return 0
		}
		return len(matches)
	}
	a.writeJSON(w, http.StatusOK, map[string]int{
		"raw_files":       count(a.cfg.Data.RawDir),
		"processed_files": count(a.cfg.Data.ProcessedDir),
		"sample_files":    count(a.cfg.Data.Dir),
	})
}

func (a *App) handleStations(w http.ResponseWriter, r *http.Request) {
	stations, err := a.loader.Stations()
	if err != nil {
		a.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"stations": stations})
}

func (a *App) handleRevenueByDaypart(w http.ResponseWriter, r *http.Request) {
	spots, err := a.loader.Spots()
	if err != nil {
		a.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	a.writeJSON(w, http.StatusOK, analysis.RevenueByDaypart(spots, r.URL.Query().Get("station")))
}

func (a *App) handleAURTrends(w http.ResponseWriter, r *http.Request) {
	spots, err := a.loader.Spots()
	if err != nil {
		a.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	granularity := r.URL.Query().Get("granularity")
	if granularity != "quarterly" {
		granularity = "monthly"
	}
	a.writeJSON(w, http.StatusOK, analysis.AURTrends(spots, r.URL.Query().Get("station"), granularity))
}

func (a *App) handleTopAdvertisers(w http.ResponseWriter, r *http.Request) {
	spots, err := a.loader.Spots()
	if err != nil {
		a.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	orders, err := a.loader.Orders()
	if err != nil {
		a.writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 50 {
			limit = n
		}
	}
	a.writeJSON(w, http.StatusOK, analysis.TopAdvertisers(spots, orders, r.URL.Query().Get("station"), limit))
}

func (a *App) handleSelloutRates(w http.ResponseWriter, r *http.Request) {
	inventory, err := a.loader.Inventory()
	if err != nil {
		a.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"dayparts": analysis.SelloutRates(inventory, r.URL.Query().Get("station")),
	})
}

func (a *App) handleMakegoodSummary(w http.ResponseWriter, r *http.Request) {
	spots, err := a.loader.Spots()
	if err != nil {
		a.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	a.writeJSON(w, http.StatusOK, analysis.MakegoodSummary(spots, r.URL.Query().Get("station")))
}

type chatRequest struct {
	Message string        `json:"message"`
	History []chatMessage `json:"history"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// handleChat forwards a question plus chat history to the advisory client.
func (a *App) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, apperrors.InvalidInput("invalid chat request body"))
		return
	}
	if req.Message == "" {
		a.writeError(w, http.StatusBadRequest, apperrors.InvalidInput("message is required"))
		return
	}

	history := make([]llm.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	response, err := a.chat.Chat(r.Context(), history, req.Message)
	if err != nil {
		a.writeError(w, http.StatusBadGateway, apperrors.ExternalServiceError("chat", err))
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{
		"request_id": uuid.NewString(),
		"response":   response,
	})
}
