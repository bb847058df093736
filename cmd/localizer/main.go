// Command localizer translates CMS content snapshots into the site's
// locales, and serves the translation API used by the admin dashboard.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/TravanaHQ/localizer"
	"github.com/TravanaHQ/localizer/cache"
	"github.com/TravanaHQ/localizer/config"
	"github.com/TravanaHQ/localizer/httpapi"
	"github.com/TravanaHQ/localizer/provider"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           localizer.Name,
		Short:         localizer.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	root.AddCommand(
		newTranslateCmd(&configPath),
		newServeCmd(&configPath),
		newUsageCmd(&configPath),
		newLocalesCmd(&configPath),
		newVersionCmd(),
	)
	return root
}

// buildAdapter assembles the provider chain: backend -> retry -> rate limit
// -> fallback adapter.
func buildAdapter(cfg config.Config) (*provider.Adapter, error) {
	var backend provider.Backend
	switch cfg.Provider {
	case "deepl", "":
		backend = provider.NewDeepLBackend(provider.DeepLConfig{
			APIKey:  cfg.DeepL.APIKey,
			BaseURL: cfg.DeepL.BaseURL,
		})
	case "openai":
		backend = provider.NewOpenAIBackend(provider.OpenAIConfig{
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.Model,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	backend = provider.NewRetryableBackend(backend, provider.DefaultRetryConfig())
	backend = provider.NewRateLimitedBackend(backend, provider.RateLimitConfig{})
	return provider.NewAdapter(backend), nil
}

func buildCache(cfg config.Config) (localizer.TranslationCache, error) {
	if cfg.RedisURL != "" {
		return cache.NewRedisCache(cache.RedisConfig{URL: cfg.RedisURL, TTL: cfg.CacheTTL})
	}
	if cfg.CacheTTL > 0 {
		return cache.NewInMemoryCache(cfg.CacheTTL), nil
	}
	return nil, nil
}

func newTranslateCmd(configPath *string) *cobra.Command {
	var (
		target     string
		allLocales bool
		localeList string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "translate [snapshot.json]",
		Short: "Translate a content snapshot into one or all locales",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			snap, err := readSnapshot(args)
			if err != nil {
				return err
			}

			adapter, err := buildAdapter(cfg)
			if err != nil {
				return err
			}
			tc, err := buildCache(cfg)
			if err != nil {
				return err
			}

			opts := []localizer.TranslatorOption{localizer.WithSourceLang(cfg.SourceLang)}
			if tc != nil {
				opts = append(opts, localizer.WithCache(tc))
			}
			translator := localizer.NewTranslator(adapter, opts...)

			var result any
			switch {
			case target != "":
				tr, err := translator.Translate(cmd.Context(), snap, target)
				if err != nil {
					return err
				}
				result = tr
			default:
				targets := cfg.Locales
				if localeList != "" {
					targets = splitLocales(localeList)
				} else if !allLocales {
					return fmt.Errorf("either --to, --locales or --all is required")
				}
				scheduler := localizer.NewScheduler(translator,
					localizer.WithBatchSize(cfg.BatchSize),
					localizer.WithCooldown(cfg.Cooldown()),
					localizer.WithLogger(slog.Default()),
				)
				results, err := scheduler.TranslateAll(cmd.Context(), snap, targets)
				if err != nil {
					return err
				}
				result = results
			}

			return writeOutput(cmd, output, result)
		},
	}

	cmd.Flags().StringVar(&target, "to", "", "single target locale (e.g. fr)")
	cmd.Flags().BoolVar(&allLocales, "all", false, "fan out to every configured locale")
	cmd.Flags().StringVar(&localeList, "locales", "", "comma-separated target locales")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func newServeCmd(configPath *string) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the translation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			adapter, err := buildAdapter(cfg)
			if err != nil {
				return err
			}
			tc, err := buildCache(cfg)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			srv := httpapi.New(httpapi.Config{
				Provider:   adapter,
				Cache:      tc,
				SourceLang: cfg.SourceLang,
				BatchSize:  cfg.BatchSize,
				Cooldown:   cfg.Cooldown(),
				Locales:    cfg.Locales,
				Logger:     logger,
			})

			logger.Info("serving translation API", "addr", cfg.Listen, "provider", cfg.Provider)
			return http.ListenAndServe(cfg.Listen, srv.Router())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}

func newUsageCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show provider quota usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			adapter, err := buildAdapter(cfg)
			if err != nil {
				return err
			}

			usage := adapter.Usage(cmd.Context())
			if usage == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "usage unavailable (provider unconfigured or unreachable)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "characters used:  %d\ncharacter limit:  %d\nremaining:        %d\n",
				usage.CharactersUsed, usage.CharacterLimit, usage.Remaining())
			return nil
		},
	}
}

func newLocalesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List locales by provider coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			adapter, err := buildAdapter(cfg)
			if err != nil {
				return err
			}

			supported, fallback := localizer.PartitionLocales(adapter, cfg.Locales)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "native translation:")
			for _, loc := range supported {
				fmt.Fprintf(out, "  %-4s %s\n", loc, localizer.GetLanguageName(loc))
			}
			fmt.Fprintln(out, "pass-through fallback:")
			for _, loc := range fallback {
				fmt.Fprintf(out, "  %-4s %s\n", loc, localizer.GetLanguageName(loc))
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", localizer.Name, localizer.FullVersion())
			if localizer.BuildDate != "unknown" && localizer.BuildDate != "" {
				fmt.Fprintf(out, "  built: %s\n", localizer.BuildDate)
			}
		},
	}
}

func readSnapshot(args []string) (*localizer.ContentSnapshot, error) {
	var data []byte
	var err error
	if len(args) == 0 {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}
	}

	var snap localizer.ContentSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}

func splitLocales(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func writeOutput(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
