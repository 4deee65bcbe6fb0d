package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rajyadav1814/repoguard/internal/config"
	"github.com/rajyadav1814/repoguard/internal/cvelookup"
	"github.com/rajyadav1814/repoguard/internal/datastore"
	"github.com/rajyadav1814/repoguard/internal/fetcher"
	"github.com/rajyadav1814/repoguard/internal/logger"
	"github.com/rajyadav1814/repoguard/internal/models"
	"github.com/rajyadav1814/repoguard/internal/orchestrator"
)

func main() {
	// Flags
	repoFlag := flag.String("repo", "", "Repository to scan in owner/name form (required).")
	repoFlagAlias := flag.String("r", "", "Alias for -repo")

	branchFlag := flag.String("branch", "", "Branch to scan (defaults to the configured default branch).")
	branchFlagAlias := flag.String("b", "", "Alias for -branch")

	configFlag := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFlagAlias := flag.String("c", "", "Alias for -config")

	jsonOutput := flag.Bool("json", false, "Print the full scan result as JSON to stdout.")
	flag.Parse()

	// Consolidate alias flags
	if *repoFlag == "" && *repoFlagAlias != "" {
		*repoFlag = *repoFlagAlias
	}
	if *branchFlag == "" && *branchFlagAlias != "" {
		*branchFlag = *branchFlagAlias
	}
	if *configFlag == "" && *configFlagAlias != "" {
		*configFlag = *configFlagAlias
	}

	if *repoFlag == "" {
		log.Fatalln("[FATAL] -repo argument is required (owner/name)")
	}

	gCfg, err := config.LoadGlobalConfig(*configFlag)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config from '%s': %v", *configFlag, err)
	}
	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Configuration validation failed: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	if token := os.Getenv("REPOGUARD_GITHUB_TOKEN"); token != "" && gCfg.FetcherConfig.Token == "" {
		gCfg.FetcherConfig.Token = token
	}

	store, err := openStore(gCfg, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to open blob store")
	}
	defer store.Close()

	var lookup cvelookup.Client
	if gCfg.ScannerConfig.EnrichmentEnabled {
		lookup = cvelookup.NewOSVClient(gCfg.ScannerConfig.EnrichmentBaseURL, 15*time.Second, zLogger)
	}

	contentFetcher := fetcher.NewGitHubFetcher(gCfg.FetcherConfig, zLogger)
	scanner := orchestrator.NewScanOrchestrator(gCfg.ScannerConfig, contentFetcher, store, lookup, zLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := scanner.Scan(ctx, *repoFlag, *branchFlag)
	if err != nil {
		if orchestrator.IsNotFound(err) {
			zLogger.Fatal().Err(err).Msg("Repository or branch not found")
		}
		zLogger.Fatal().Err(err).Msg("Scan failed")
	}

	printSummary(zLogger, result)

	if *jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			zLogger.Error().Err(err).Msg("Failed to encode result")
		}
	}

	if len(orchestrator.HighSeverityFindings(result)) > 0 {
		os.Exit(1)
	}
}

func openStore(gCfg *config.GlobalConfig, zLogger zerolog.Logger) (datastore.BlobStore, error) {
	switch gCfg.StorageConfig.Backend {
	case "valkey":
		return datastore.NewValkeyStore(gCfg.StorageConfig.ValkeyAddr, zLogger)
	default:
		return datastore.NewSQLiteStore(gCfg.StorageConfig.SQLitePath, zLogger)
	}
}

func printSummary(zLogger zerolog.Logger, result *models.ScanResult) {
	hist := result.Statistics.IssuesBySeverity
	event := zLogger.Info().
		Str("repo", result.RepoName).
		Str("scan_id", result.ScanID).
		Int("files_scanned", result.Statistics.FilesScanned).
		Int("total", len(result.Findings)).
		Int("critical", hist[models.SeverityCritical]).
		Int("high", hist[models.SeverityHigh]).
		Int("medium", hist[models.SeverityMedium]).
		Int("low", hist[models.SeverityLow])

	if t := result.Statistics.Trends; t != nil {
		if t.FirstScan {
			event = event.Bool("first_scan", true)
		} else {
			event = event.
				Int("delta_total", t.Changes.Total).
				Str("delta_percent", fmt.Sprintf("%+.1f%%", t.Changes.Percent)).
				Int("days_since_previous", t.DaysSincePrevious)
		}
	}
	event.Msg("Scan summary")
}
