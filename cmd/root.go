package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/recordkit/schemac/internal/config"
	"github.com/recordkit/schemac/internal/logging"
)

var (
	loadedConfig *config.Config
	configOnce   sync.Once
	configErr    error
)

// activeConfig loads the application configuration once per process and
// initializes the global logger from it.
func activeConfig() (*config.Config, error) {
	configOnce.Do(func() {
		loadedConfig, configErr = config.LoadConfig()
		if configErr == nil {
			logging.InitializeLogger(loadedConfig.Logging)
		}
	})

	return loadedConfig, configErr
}

// RootCommand assembles the CLI.
func RootCommand() *cli.Command {
	return &cli.Command{
		Name:  "schemac",
		Usage: "Compile collection schemas to SQL DDL and typed column models",
		Description: `schemac compiles abstract collection definitions (named fields with
semantic types, nullability, uniqueness, and defaults) into CREATE TABLE
statements and a typed column model for a query layer, and can apply the
result to a DuckDB database.`,
		Commands: []*cli.Command{
			CompileCommand(),
			ApplyCommand(),
			ValidateCommand(),
			ConfigCommand(),
		},
	}
}

func Execute() error {
	err := RootCommand().Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	return err
}
