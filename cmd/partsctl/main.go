// Command partsctl runs parts searches and offline normalization from a shell.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aha-designer/backend/config"
	"github.com/aha-designer/backend/internal/domain"
	"github.com/aha-designer/backend/internal/infrastructure/trustedparts"
	"github.com/aha-designer/backend/internal/logging"
	"github.com/aha-designer/backend/internal/normalize"
	"github.com/aha-designer/backend/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type options struct {
	configFile string
	format     string
	maxResults int
	verbose    bool

	country     string
	exact       bool
	inStockOnly bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "partsctl",
		Short: "Search TrustedParts and normalize parts-search responses",
		Long: `partsctl talks to the TrustedParts inventory search API and turns its
responses into a ranked list of parts with distributor offers.

Credentials and defaults come from the same configuration as the server
(config.yaml or AHA_* environment variables).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "json" && opts.format != "yaml" {
				return fmt.Errorf("unsupported format %q (want json or yaml)", opts.format)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: search ./config.yaml, ./config/, /etc/aha-designer/)")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "o", "json", "output format: json or yaml")
	rootCmd.PersistentFlags().IntVarP(&opts.maxResults, "max-results", "n", domain.DefaultMaxResults, "maximum number of parts to print (1-100)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	normalizeCmd := &cobra.Command{
		Use:   "normalize [file|-]",
		Short: "Normalize a captured search response",
		Long: `Reads a raw parts-search response from a file, or stdin when the argument
is "-" or omitted, and prints the normalized parts. No network access.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, args, opts)
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search <token>",
		Short: "Run a live inventory search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
	}
	searchCmd.Flags().StringVar(&opts.country, "country", "", "country code (default from config, else US)")
	searchCmd.Flags().BoolVar(&opts.exact, "exact", false, "exact part number match")
	searchCmd.Flags().BoolVar(&opts.inStockOnly, "in-stock-only", true, "only return offers with stock")

	rootCmd.AddCommand(normalizeCmd, searchCmd)
	return rootCmd
}

func runNormalize(cmd *cobra.Command, args []string, opts *options) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	body, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	hits, err := normalize.Run(body, resultCap(cmd, opts))
	if err != nil {
		return err
	}
	return writeHits(cmd.OutOrStdout(), hits, opts.format)
}

func runSearch(cmd *cobra.Command, args []string, opts *options) error {
	cfg, err := config.LoadFile(opts.configFile)
	if err != nil {
		return err
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc := usecase.NewSearchService(
		trustedparts.NewClient(cfg.TrustedParts, logger),
		usecase.SearchServiceConfig{
			CompanyID:   cfg.TrustedParts.CompanyID,
			APIKey:      cfg.TrustedParts.APIKey,
			CountryCode: cfg.TrustedParts.CountryCode,
		},
		logger,
	)

	request := &domain.SearchRequest{
		SearchToken: args[0],
		CountryCode: opts.country,
		MaxResults:  resultCap(cmd, opts),
	}
	if cmd.Flags().Changed("exact") {
		request.ExactMatch = &opts.exact
	}
	if cmd.Flags().Changed("in-stock-only") {
		request.InStockOnly = &opts.inStockOnly
	}

	hits, err := svc.Search(cmd.Context(), request)
	if err != nil {
		logger.Debug("search failed", zap.Error(err))
		return err
	}
	return writeHits(cmd.OutOrStdout(), hits, opts.format)
}

// resultCap is nil unless --max-results was given, so the engine default applies
func resultCap(cmd *cobra.Command, opts *options) *int {
	if !cmd.Flags().Changed("max-results") {
		return nil
	}
	n := opts.maxResults
	return &n
}

func writeHits(w io.Writer, hits []domain.PartHit, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(hits); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}
}
