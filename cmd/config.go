package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:        "config",
		Usage:       "Display the active configuration",
		Description: `Show the current active configuration including all settings from file and environment variables.`,
		Action:      runConfig,
	}
}

func runConfig(_ context.Context, _ *cli.Command) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	fmt.Println("Active Configuration:")

	fmt.Println("\nDatabase:")
	fmt.Printf("  Path: %s\n", cfg.Database.Path)

	fmt.Println("\nCompile:")
	fmt.Printf("  Mode: %s\n", cfg.Compile.Mode)

	if cfg.Compile.OutputDir != "" {
		fmt.Printf("  Output Dir: %s\n", cfg.Compile.OutputDir)
	}

	fmt.Println("\nLogging:")
	fmt.Printf("  Level: %s\n", cfg.Logging.Level)
	fmt.Printf("  Format: %s\n", cfg.Logging.Format)
	fmt.Printf("  Output: %s\n", cfg.Logging.Output)

	return nil
}
