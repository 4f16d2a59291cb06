package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	controllerx "github.com/pattarav/supportline/agent/agents/controller"
	specialistx "github.com/pattarav/supportline/agent/agents/specialist"
	llmx "github.com/pattarav/supportline/agent/llm"
	configx "github.com/pattarav/supportline/pkg/config"
	logx "github.com/pattarav/supportline/pkg/logger"
)

var (
	flagEnvFile string
	flagName    string
	flagPremium bool
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "supportline",
	Short: "Supportline is a console customer-support chat router",
	Long: `Supportline triages free-text support queries into billing, technical, or
general issues via a language-model call, hands the session to the matching
specialist, and lets that specialist answer directly or invoke a simulated
backend action.`,
	SilenceUsage: true,
	RunE:         runChat,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", "", "path to a .env file to load before reading configuration")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&flagName, "name", "Guest", "user name for the session")
	rootCmd.Flags().BoolVar(&flagPremium, "premium", false, "treat the user as a premium subscriber")
}

func runChat(cmd *cobra.Command, _ []string) error {
	logx.Init(logx.Config{Debug: flagDebug, PrettyFormat: true})

	if err := configx.LoadEnvFile(flagEnvFile); err != nil {
		return err
	}

	// Missing credential aborts here, before any session begins.
	llmCfg, err := configx.New[llmx.Config]("OPENROUTER")
	if err != nil {
		return fmt.Errorf("classifier configuration: %w", err)
	}

	registry, err := specialistx.NewRegistry(*llmCfg)
	if err != nil {
		return fmt.Errorf("build agent registry: %w", err)
	}

	ctrl, err := controllerx.New(registry, cmd.InOrStdin(), cmd.OutOrStdout(), controllerx.Config{
		UserName: flagName,
		Premium:  flagPremium,
	})
	if err != nil {
		return err
	}

	return ctrl.Run(cmd.Context())
}
