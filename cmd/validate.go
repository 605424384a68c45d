package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/recordkit/schemac/internal/errors"
	"github.com/recordkit/schemac/internal/schema"
)

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:        "validate",
		Usage:       "Check schema files without producing output",
		ArgsUsage:   "<schema file> [<schema file> ...]",
		Description: `Load and validate every schema file, reporting each problem found. Exits non-zero when any file is invalid.`,
		Action:      runValidate,
	}
}

func runValidate(_ context.Context, cmd *cli.Command) error {
	if _, err := activeConfig(); err != nil {
		return err
	}

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New(errors.ErrTypeSchema, "at least one schema file is required")
	}

	invalid := 0

	for _, path := range paths {
		col, err := schema.LoadFile(path)
		if err != nil {
			invalid++

			fmt.Printf("✗ %s\n    %v\n", path, err)

			var structErr *errors.Error
			if errors.AsError(err, &structErr) {
				for _, suggestion := range structErr.Suggestions {
					fmt.Printf("    hint: %s\n", suggestion)
				}
			}

			continue
		}

		fmt.Printf("✓ %s (%s, %d field(s))\n", path, col.Name, len(col.Fields))
	}

	if invalid > 0 {
		return errors.Newf(errors.ErrTypeSchema, "%d of %d schema file(s) failed validation", invalid, len(paths))
	}

	return nil
}
