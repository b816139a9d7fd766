package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/salesight/internal/llm"
	"github.com/ppiankov/salesight/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Salesight configuration",
	Long: `Manage Salesight configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (SALESIGHT_*, e.g. SALESIGHT_LLM_PROVIDER)
3. Config file (~/.salesight/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after merging defaults, config file and environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		configFile := viper.ConfigFileUsed()
		if configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
		fmt.Fprintln(w, "  Current Configuration")
		fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
		fmt.Fprintln(w)
		fmt.Fprintln(w, string(yamlData))

		resolveCredentials(&cfg.LLM)
		if cfg.LLM.Provider != "" {
			status := "not set"
			if cfg.LLM.APIKey != "" {
				status = "set"
			}
			if env := llm.APIKeyEnv(cfg.LLM.Provider); env != "" {
				fmt.Fprintf(w, "API key (%s): %s\n\n", env, status)
			}
		}

		fmt.Fprintln(w, "Configuration hierarchy (highest to lowest priority):")
		fmt.Fprintln(w, "  1. CLI flags")
		fmt.Fprintln(w, "  2. Environment variables (SALESIGHT_*, OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY)")
		fmt.Fprintln(w, "  3. Config file (~/.salesight/config.yaml)")
		fmt.Fprintln(w, "  4. Defaults")
		fmt.Fprintln(w)

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.salesight/config.yaml with all available options.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configPath := filepath.Join(home, ".salesight", "config.yaml")
		if err := writeDefaultConfig(configPath); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "✓ Created default configuration: %s\n", configPath)
		fmt.Fprintf(w, "\nTo view the configuration:\n")
		fmt.Fprintf(w, "  salesight config show\n")
		fmt.Fprintf(w, "\nTo customize, edit the file with your preferred editor:\n")
		fmt.Fprintf(w, "  $EDITOR %s\n\n", configPath)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// writeDefaultConfig writes the documented default configuration to path.
// An existing file is never overwritten.
func writeDefaultConfig(path string) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'salesight config show' to view it, or delete it first to recreate", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	// Helper for writing with error checking
	printf := func(format string, a ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(f, format, a...)
	}

	printf("# Salesight Configuration File\n")
	printf("#\n")
	printf("# Configuration hierarchy (highest to lowest priority):\n")
	printf("#   1. CLI flags\n")
	printf("#   2. Environment variables (SALESIGHT_*)\n")
	printf("#   3. This config file\n")
	printf("#   4. Built-in defaults\n")
	printf("#\n")
	printf("# llm.provider: openai, anthropic, ollama, gemini, or empty to use rules only\n\n")
	printf("%s", yamlData)
	printf("\n# API Keys (kept out of this file; use environment variables):\n")
	printf("#   export OPENAI_API_KEY=sk-...\n")
	printf("#   export ANTHROPIC_API_KEY=sk-ant-...\n")
	printf("#   export GEMINI_API_KEY=...\n")
	printf("#   export OLLAMA_BASE_URL=http://localhost:11434\n")

	return err
}
