package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyforge/studyforge/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage studyforge configuration.

Configuration is stored in ~/.studyforge/config.yaml.
Multiple contexts can be defined for different generators or accounts.`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new generator context",
	Long: `Add a new generator context.

Examples:
  studyforge config add-context prod --provider openai --api-key sk-xxx --model gpt-4o
  studyforge config add-context lab --provider gemini --api-key xxx --model gemini-2.0-flash
  studyforge config add-context local --provider realtime --base-url ws://localhost:8080/generate`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		provider, _ := cmd.Flags().GetString("provider")
		apiKey, _ := cmd.Flags().GetString("api-key")
		model, _ := cmd.Flags().GetString("model")
		baseURL, _ := cmd.Flags().GetString("base-url")
		system, _ := cmd.Flags().GetString("system-prompt")

		switch provider {
		case cli.ProviderOpenAI, cli.ProviderGemini:
			if apiKey == "" {
				return fmt.Errorf("api-key is required for provider %q", provider)
			}
		case cli.ProviderRealtime:
			if baseURL == "" {
				return fmt.Errorf("base-url is required for provider %q", provider)
			}
		default:
			return fmt.Errorf("unknown provider %q (want openai, gemini or realtime)", provider)
		}

		ctx := &cli.Context{
			Name:         name,
			Provider:     provider,
			APIKey:       apiKey,
			Model:        model,
			BaseURL:      baseURL,
			SystemPrompt: system,
		}
		if err := getConfig().AddContext(name, ctx); err != nil {
			return err
		}
		cli.PrintSuccess("Context '%s' added", name)
		return nil
	},
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getConfig().DeleteContext(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Context '%s' deleted", args[0])
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the default context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getConfig().UseContext(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to context '%s'", args[0])
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:   "list-contexts",
	Short: "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if len(cfg.Contexts) == 0 {
			fmt.Println("No contexts configured")
			return nil
		}
		for _, name := range cfg.ListContexts() {
			marker := "  "
			if name == cfg.CurrentContext {
				marker = "* "
			}
			ctx := cfg.Contexts[name]
			fmt.Printf("%s%s\t%s\t%s\n", marker, name, ctx.Provider, ctx.Model)
		}
		return nil
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View full configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		// Mask keys before rendering.
		view := *cfg
		view.Contexts = make(map[string]*cli.Context, len(cfg.Contexts))
		for name, ctx := range cfg.Contexts {
			masked := *ctx
			masked.APIKey = cli.MaskAPIKey(ctx.APIKey)
			view.Contexts[name] = &masked
		}
		return outputResult(view)
	},
}

func init() {
	configAddContextCmd.Flags().StringP("provider", "p", "", "generator provider: openai, gemini or realtime (required)")
	configAddContextCmd.Flags().StringP("api-key", "k", "", "API key")
	configAddContextCmd.Flags().StringP("model", "m", "", "model identifier")
	configAddContextCmd.Flags().StringP("base-url", "u", "", "endpoint override (websocket URL for realtime)")
	configAddContextCmd.Flags().String("system-prompt", "", "system instruction sent with every turn")

	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
}
