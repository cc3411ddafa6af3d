package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/studyforge/studyforge/pkg/cli"
	"github.com/studyforge/studyforge/pkg/drafts"
	"github.com/studyforge/studyforge/pkg/genio"
)

var (
	// Global flags
	cfgFile     string
	contextName string
	outputFile  string
	outputFmt   string
	queryExpr   string
	verbose     bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "studyforge",
	Short: "Course authoring CLI backed by LLM generation",
	Long: `studyforge - generate, refine and review structured courses.

A course is generated from a prompt, stored as a draft, and reviewed
against a catalog of pedagogical rules. Individual sections can be
regenerated in place without touching the rest of the document.

Configuration is stored in ~/.studyforge/ and supports multiple generator
contexts, similar to kubectl's context management.

Examples:
  # Set up a generator context
  studyforge config add-context prod --provider openai --api-key sk-xxx --model gpt-4o

  # Generate a course and save it as a draft
  studyforge generate "a 60 minute Go course for Python developers"

  # Review a draft
  studyforge validate <draft-id> --check-sources

  # Regenerate sections 2 and 4 of a draft
  studyforge regenerate <draft-id> --sections 2,4 "make the exercises harder"
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.studyforge/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "generator context to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "format", "", "output format: yaml, json or raw (default: yaml)")
	rootCmd.PersistentFlags().StringVarP(&queryExpr, "query", "q", "", "jq expression applied to the output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(regenerateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(draftsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	var err error
	globalConfig, err = cli.LoadConfigWithPath(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config: %v\n", err)
	}
}

func getConfig() *cli.Config {
	return globalConfig
}

// getContext returns the generator context to use.
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	ctx, err := cfg.ResolveContext(contextName)
	if err != nil {
		if contextName == "" {
			return nil, fmt.Errorf("no context specified. Use -c or set a default with 'studyforge config use-context'")
		}
		return nil, err
	}
	return ctx, nil
}

// newSession builds the generator session for a context.
func newSession(ctx context.Context, gc *cli.Context) (genio.Session, error) {
	switch gc.Provider {
	case cli.ProviderOpenAI:
		opts := []option.RequestOption{option.WithAPIKey(gc.APIKey)}
		if gc.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(gc.BaseURL))
		}
		client := openai.NewClient(opts...)
		return &genio.OpenAISession{
			Client: &client,
			Model:  gc.Model,
			System: gc.SystemPrompt,
		}, nil

	case cli.ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  gc.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		return &genio.GeminiSession{
			Client: client,
			Model:  gc.Model,
			System: gc.SystemPrompt,
		}, nil

	case cli.ProviderRealtime:
		if gc.BaseURL == "" {
			return nil, fmt.Errorf("context %q: realtime provider requires base_url", gc.Name)
		}
		header := http.Header{}
		if gc.APIKey != "" {
			header.Set("Authorization", "Bearer "+gc.APIKey)
		}
		return genio.DialWS(ctx, gc.BaseURL, header)

	default:
		return nil, fmt.Errorf("context %q: unknown provider %q", gc.Name, gc.Provider)
	}
}

// openStore opens the draft store under the config directory.
func openStore() (drafts.Store, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return drafts.OpenBadger(drafts.BadgerOptions{Dir: cfg.DraftsDir()})
}

// outputResult renders a command result honoring the global output flags.
func outputResult(result any) error {
	return cli.Output(result, cli.OutputOptions{
		Format: cli.OutputFormat(outputFmt),
		File:   outputFile,
		Query:  queryExpr,
	})
}
