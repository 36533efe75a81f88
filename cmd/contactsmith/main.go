package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amosWeiskopf/contactsmith/internal/config"
	"github.com/amosWeiskopf/contactsmith/pkg/crawler"
	"github.com/amosWeiskopf/contactsmith/pkg/dedup"
	"github.com/amosWeiskopf/contactsmith/pkg/extractor"
	"github.com/amosWeiskopf/contactsmith/pkg/ner"
	"github.com/amosWeiskopf/contactsmith/pkg/reporter"
	"github.com/amosWeiskopf/contactsmith/pkg/search"
	"github.com/amosWeiskopf/contactsmith/pkg/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "contactsmith",
	Short: "ContactSmith - keyword-driven contact scraper",
	Long: `ContactSmith finds websites for a keyword, crawls them a batch at a
time, extracts contact details (names, organizations, emails, phone numbers)
from page text, and exports the deduplicated results to CSV or Excel.
Visitation state persists across runs so pages are never scraped twice.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the next batch of sites for a keyword and export contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword, _ := cmd.Flags().GetString("keyword")
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			return fmt.Errorf("keyword must not be empty")
		}

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if sites, _ := cmd.Flags().GetInt("sites"); sites > 0 {
			cfg.Crawler.SitesPerRun = sites
		}
		if maxPages, _ := cmd.Flags().GetInt("max-pages"); maxPages > 0 {
			cfg.Crawler.MaxPagesPerSite = maxPages
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger := newLogger(cfg.Logging.Level)
		ctx := cmd.Context()

		st, err := store.New(cfg.Storage.Path)
		if err != nil {
			return err
		}
		visited, err := st.Load(store.KeyVisited)
		if err != nil {
			return err
		}
		pool, err := st.Load(store.KeyCandidates)
		if err != nil {
			return err
		}

		// The pool is filled once per keyword and reused across runs until
		// reset or exhausted.
		if len(pool) == 0 {
			logger.Info("searching for candidate sites", "keyword", keyword, "region", cfg.Search.Region)
			provider := search.NewDuckDuckGo(cfg.Search.Endpoint, cfg.Search.RegionTLD, cfg.Search.Timeout)
			urls, err := provider.Search(ctx, keyword, cfg.Search.Region, cfg.Search.MaxResults)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			pool = make(map[string]struct{}, len(urls))
			for _, u := range urls {
				pool[u] = struct{}{}
			}
			if err := st.Save(store.KeyCandidates, pool); err != nil {
				return fmt.Errorf("failed to persist candidate pool: %w", err)
			}
		}

		batch, err := crawler.NextBatch(pool, visited, cfg.Crawler.SitesPerRun)
		switch {
		case errors.Is(err, crawler.ErrNoPool):
			fmt.Println("Search returned no candidate URLs. Try a broader keyword.")
			return nil
		case errors.Is(err, crawler.ErrPoolExhausted):
			fmt.Println("No new URLs to crawl. Run 'contactsmith reset' to start over.")
			return nil
		case err != nil:
			return err
		}
		logger.Info("selected batch", "sites", len(batch))

		recognizer := ner.NewClient(cfg.NER.Endpoint, cfg.NER.Timeout)
		ext := extractor.New(recognizer, extractor.Options{
			Timeout:      cfg.Crawler.Timeout,
			UserAgent:    cfg.Crawler.UserAgent,
			StrictPhones: cfg.Crawler.StrictPhones,
			PhoneRegion:  cfg.Crawler.PhoneRegion,
		}, logger)
		disc := crawler.NewDiscoverer(cfg.Crawler.Timeout, cfg.Crawler.UserAgent, logger)

		c := crawler.New(disc, ext, st, visited, crawler.Options{
			MaxPagesPerSite: cfg.Crawler.MaxPagesPerSite,
			PageDelay:       cfg.Crawler.PageDelay,
		}, logger)

		records, summary, err := c.Run(ctx, batch)
		if err != nil {
			return fmt.Errorf("crawl failed: %w", err)
		}
		logger.Info("batch complete",
			"visited", summary.PagesVisited,
			"skipped", summary.PagesSkipped,
			"failed", summary.PagesFailed)

		unique := dedup.Collapse(records)
		if len(unique) == 0 {
			fmt.Println("No contacts found. Try a different keyword or raise the page limits.")
			return nil
		}

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = "contacts." + format
		}

		data, err := reporter.New(cfg.Export.Placeholder).Generate(unique, format)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}

		fmt.Printf("Found %d unique contacts. Saved to %s\n", len(unique), output)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the visited-links and candidate-pool state",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		st, err := store.New(cfg.Storage.Path)
		if err != nil {
			return err
		}
		if err := st.Reset(store.KeyVisited, store.KeyCandidates); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		fmt.Println("Visited links and candidate pool cleared.")
		return nil
	},
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "contactsmith",
	})
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
	return logger
}

func init() {
	// Crawl command flags
	crawlCmd.Flags().String("keyword", "", "Search keyword (required)")
	crawlCmd.Flags().Int("sites", 0, "Number of websites to crawl this run")
	crawlCmd.Flags().Int("max-pages", 0, "Max pages to crawl per website")
	crawlCmd.Flags().String("format", "csv", "Export format (csv, xlsx)")
	crawlCmd.Flags().String("output", "", "Output file (default contacts.<format>)")

	// Add commands to root
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(resetCmd)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
