package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/recordkit/schemac/internal/compiler"
	"github.com/recordkit/schemac/internal/dialect"
	"github.com/recordkit/schemac/internal/errors"
	"github.com/recordkit/schemac/internal/logging"
	"github.com/recordkit/schemac/internal/storage"
)

func ApplyCommand() *cli.Command {
	return &cli.Command{
		Name:        "apply",
		Usage:       "Compile schema files and apply them to a DuckDB database",
		ArgsUsage:   "<schema file> [<schema file> ...]",
		Description: `Compile every schema file, then set up each table with DROP TABLE IF EXISTS followed by the generated CREATE TABLE. All collections must compile before any statement is executed, so a broken schema never leaves a partially applied database.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database file path (defaults to configuration)",
			},
		},
		Action: runApply,
	}
}

func runApply(ctx context.Context, cmd *cli.Command) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New(errors.ErrTypeSchema, "at least one schema file is required")
	}

	dbPath := cmd.String("db")
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}

	log := logging.GetLogger().WithField("run_id", uuid.NewString())

	// Compilation happens up front: if any collection fails, no DDL runs.
	compiled, err := compileFiles(ctx, paths, compiler.ModeNative)
	if err != nil {
		log.ErrorWithErr("schema compilation failed, nothing applied", err)
		return err
	}

	tables := make([]storage.CompiledTable, 0, len(compiled))
	for _, c := range compiled {
		tables = append(tables, storage.CompiledTable{Name: c.Collection.Name, DDL: c.DDL})
	}

	applier, err := storage.NewApplier(dbPath, dialect.Standard())
	if err != nil {
		return err
	}
	defer func() { _ = applier.Close() }()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Applying %d table(s) to %s...", len(tables), dbPath)
	s.Start()

	err = applier.Apply(ctx, tables)
	s.Stop()

	if err != nil {
		log.ErrorWithErr("schema apply failed", err)
		return err
	}

	log.WithField("database", dbPath).Infof("applied %d table(s)", len(tables))

	for _, table := range tables {
		fmt.Printf("  ✓ %s\n", table.Name)
	}

	fmt.Printf("Applied %d table(s) to %s\n", len(tables), dbPath)

	return nil
}
