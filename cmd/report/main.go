package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"equity_research/pkg/config"
	"equity_research/pkg/core/llm"
	"equity_research/pkg/core/marketdata"
	"equity_research/pkg/core/news"
	"equity_research/pkg/core/pipeline"
	corereport "equity_research/pkg/core/report"
	"equity_research/pkg/core/store"
)

func main() {
	configPath := flag.String("config", "config/settings.yaml", "path to settings file")
	outPath := flag.String("out", "", "write the markdown report to a file instead of stdout")
	noLLM := flag.Bool("no-llm", false, "skip the narrative section")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: report [flags] TICKER")
		flag.PrintDefaults()
		os.Exit(1)
	}
	ticker := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Config load failed: %v\n", err)
		os.Exit(1)
	}
	if cfg.DataBaseURL == "" {
		fmt.Println("data_base_url is not configured")
		os.Exit(1)
	}

	ctx := context.Background()

	var narrator pipeline.Narrator
	var summarizer pipeline.Summarizer
	if !*noLLM {
		provider, err := llm.NewProvider(cfg.LLMProvider, cfg.LLMModel)
		if err != nil {
			fmt.Printf("Warning: LLM provider unavailable: %v. Skipping commentary.\n", err)
		} else {
			narrator = corereport.NewNarrativeWriter(provider)
		}
		if agent, err := llm.NewResearchAgent(ctx, cfg.LLMModel); err != nil {
			fmt.Printf("Warning: research agent unavailable: %v. Headlines will not be summarized.\n", err)
		} else {
			defer agent.Close()
			summarizer = agent
		}
	}

	var repo store.ReportRepository
	if url := os.Getenv("DATABASE_URL"); url != "" {
		pool, err := store.Connect(ctx, url)
		if err != nil {
			fmt.Printf("Warning: database unavailable: %v. Report will not be persisted.\n", err)
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

	result, err := orch.Run(ctx, ticker)
	if err != nil {
		fmt.Printf("Pipeline failed: %v\n", err)
		os.Exit(1)
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(result.Markdown), 0644); err != nil {
			fmt.Printf("Failed to write %s: %v\n", *outPath, err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *outPath)
		return
	}

	fmt.Println()
	fmt.Println(result.Markdown)
}
