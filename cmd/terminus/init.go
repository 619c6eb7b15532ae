package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flashingpumpkin/terminus/internal/config"
)

// DefaultConfigTemplate is the commented template written by terminus init.
const DefaultConfigTemplate = `# terminus configuration
# Every value below is the built-in default. Uncomment to change it.

# Glyph shown before the input field.
# prompt = "$ "

# Colour theme: auto, dark or light.
# theme = "auto"

# Number of output lines kept before the oldest are dropped.
# max_lines = 10000

# Write diagnostics to this file.
# log_file = "terminus.log"

[animation]
# Delay between characters of command output.
# base_delay = "20ms"

# Delay between characters when a typed command is echoed.
# echo_delay = "10ms"

[ticker]
# How often scramblybugs prints a number.
# interval = "100ms"
`

// newInitCmd creates the init subcommand.
func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long: `Create a default .terminus/config.toml configuration file.

The file documents every setting with its default value commented out.

If the configuration file already exists, the command will fail unless --force is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration file")
	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	workingDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	configDir := filepath.Join(workingDir, config.DefaultConfigDir)
	configPath := filepath.Join(configDir, "config.toml")

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Created %s\n", configPath)

	return nil
}
