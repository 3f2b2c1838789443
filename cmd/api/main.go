package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"equity_research/pkg/api/report"
	"equity_research/pkg/config"
	"equity_research/pkg/core/llm"
	"equity_research/pkg/core/marketdata"
	"equity_research/pkg/core/news"
	"equity_research/pkg/core/pipeline"
	corereport "equity_research/pkg/core/report"
	"equity_research/pkg/core/store"
)

func main() {
	cfg, err := config.Load("config/settings.yaml")
	if err != nil {
		fmt.Printf("[FATAL] Config load failed: %v\n", err)
		os.Exit(1)
	}
	if cfg.DataBaseURL == "" {
		fmt.Println("[FATAL] data_base_url is not configured")
		os.Exit(1)
	}

	ctx := context.Background()

	// Optional layers: LLM narrative and Postgres storage are skipped when
	// unconfigured so the quantitative pipeline still runs.
	var narrator pipeline.Narrator
	provider, err := llm.NewProvider(cfg.LLMProvider, cfg.LLMModel)
	if err != nil {
		fmt.Printf("[WARNING] LLM provider unavailable: %v. Reports will omit commentary.\n", err)
	} else {
		narrator = corereport.NewNarrativeWriter(provider)
	}

	var summarizer pipeline.Summarizer
	if agent, err := llm.NewResearchAgent(ctx, cfg.LLMModel); err != nil {
		fmt.Printf("[WARNING] Research agent unavailable: %v. Reports will list headlines only.\n", err)
	} else {
		defer agent.Close()
		summarizer = agent
	}

	var repo store.ReportRepository
	if url := os.Getenv("DATABASE_URL"); url != "" {
		pool, err := store.Connect(ctx, url)
		if err != nil {
			fmt.Printf("[WARNING] Database unavailable: %v. Reports will not be persisted.\n", err)
		} else {
			defer pool.Close()
			repo = store.NewReportRepo(pool)
		}
	}

	orch := pipeline.NewOrchestrator(
		marketdata.NewClient(cfg.DataBaseURL),
		news.NewScraper(),
		summarizer,
		narrator,
		repo,
		cfg,
	)

	report.InitHandler(orch, repo)
	http.HandleFunc("/api/report/generate", report.HandleGenerate)
	http.HandleFunc("/api/report", report.HandleGet)

	fmt.Printf("API server starting on %s...\n", cfg.ListenAddr)
	fmt.Println("  - POST /api/report/generate")
	fmt.Println("  - GET  /api/report?ticker=XYZ")

	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
