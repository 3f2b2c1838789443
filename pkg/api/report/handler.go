// Package report exposes the research pipeline over HTTP.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"equity_research/pkg/core/pipeline"
	"equity_research/pkg/core/store"
)

var (
	orchestrator *pipeline.Orchestrator
	repository   store.ReportRepository
)

// InitHandler wires the shared pipeline and repository. The repository may be
// nil when running without a database; cached lookups then return 404.
func InitHandler(orch *pipeline.Orchestrator, repo store.ReportRepository) {
	orchestrator = orch
	repository = repo
}

// GenerateRequest is the POST body for a report run.
type GenerateRequest struct {
	Ticker string `json:"ticker"`
}

// Pipeline runs are bounded; an LLM narrative plus several vendor calls can
// take a while, but not forever.
const runTimeout = 5 * time.Minute

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleGenerate runs the full pipeline for the requested ticker and returns
// the finished report.
func HandleGenerate(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), runTimeout)
	defer cancel()

	result, err := orchestrator.Run(ctx, ticker)
	if err != nil {
		fmt.Printf("[REPORT] Pipeline failed for %s: %v\n", ticker, err)
		http.Error(w, fmt.Sprintf("report generation failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleGet serves the most recent stored report for ?ticker=XYZ.
func HandleGet(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}
	if repository == nil {
		http.Error(w, "report storage not configured", http.StatusNotFound)
		return
	}

	result, err := repository.Load(r.Context(), ticker)
	if err != nil {
		http.Error(w, fmt.Sprintf("no report for %s: %v", ticker, err), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
