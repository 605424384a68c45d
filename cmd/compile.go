package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/recordkit/schemac/internal/compiler"
	"github.com/recordkit/schemac/internal/dialect"
	"github.com/recordkit/schemac/internal/errors"
	"github.com/recordkit/schemac/internal/logging"
	"github.com/recordkit/schemac/internal/schema"
)

func CompileCommand() *cli.Command {
	return &cli.Command{
		Name:        "compile",
		Usage:       "Compile schema files to DDL or a column model",
		ArgsUsage:   "<schema file> [<schema file> ...]",
		Description: `Compile one or more collection definition files. By default the generated CREATE TABLE statements are printed to stdout; with --emit model the typed column model is printed as JSON instead. Use serializable mode when the model will cross a JSON boundary.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "emit",
				Value: "ddl",
				Usage: "What to emit: ddl or model",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Column model mode: native or serializable (defaults to configuration)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Directory to write one output file per collection instead of stdout",
			},
		},
		Action: runCompile,
	}
}

func runCompile(ctx context.Context, cmd *cli.Command) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New(errors.ErrTypeSchema, "at least one schema file is required")
	}

	emit := cmd.String("emit")
	if emit != "ddl" && emit != "model" {
		return errors.Newf(errors.ErrTypeConfig, "invalid --emit value %q (must be ddl or model)", emit)
	}

	modeName := cmd.String("mode")
	if modeName == "" {
		modeName = cfg.Compile.Mode
	}

	mode, err := parseMode(modeName)
	if err != nil {
		return err
	}

	outDir := cmd.String("out")
	if outDir == "" {
		outDir = cfg.Compile.OutputDir
	}

	log := logging.GetLogger().WithField("run_id", uuid.NewString())
	log.Debugf("compiling %d schema file(s)", len(paths))

	compiled, err := compileFiles(ctx, paths, mode)
	if err != nil {
		return err
	}

	if outDir != "" {
		return writeOutputs(compiled, emit, outDir, log)
	}

	return printOutputs(compiled, emit)
}

func parseMode(name string) (compiler.Mode, error) {
	switch name {
	case "native":
		return compiler.ModeNative, nil
	case "serializable":
		return compiler.ModeSerializable, nil
	default:
		return 0, errors.Newf(errors.ErrTypeConfig, "invalid mode %q (must be native or serializable)", name)
	}
}

// compiledCollection bundles both compiler outputs for one schema file.
type compiledCollection struct {
	Collection schema.Collection
	DDL        string
	Model      compiler.Table
}

// compileFiles loads and compiles every schema file. Files are independent,
// so they compile concurrently; results keep argument order. Any failure
// aborts the whole run with no partial output.
func compileFiles(ctx context.Context, paths []string, mode compiler.Mode) ([]compiledCollection, error) {
	rules := dialect.Standard()
	results := make([]compiledCollection, len(paths))

	g, _ := errgroup.WithContext(ctx)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			col, err := schema.LoadFile(path)
			if err != nil {
				return err
			}

			ddl, err := compiler.GenerateCreateTable(rules, col)
			if err != nil {
				return err
			}

			model, err := compiler.BuildTable(rules, col, mode)
			if err != nil {
				return err
			}

			results[i] = compiledCollection{Collection: col, DDL: ddl, Model: model}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func printOutputs(compiled []compiledCollection, emit string) error {
	if emit == "model" {
		models := make([]compiler.Table, 0, len(compiled))
		for _, c := range compiled {
			models = append(models, c.Model)
		}

		data, err := json.MarshalIndent(models, "", "  ")
		if err != nil {
			return errors.Wrap(err, errors.ErrTypeSerialization, "failed to encode column model")
		}

		fmt.Println(string(data))

		return nil
	}

	for _, c := range compiled {
		fmt.Printf("%s;\n", c.DDL)
	}

	return nil
}

func writeOutputs(compiled []compiledCollection, emit, outDir string, log *logging.Logger) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrTypeFileSystem, "failed to create output directory %s", outDir)
	}

	for _, c := range compiled {
		var (
			path string
			data []byte
		)

		if emit == "model" {
			encoded, err := json.MarshalIndent(c.Model, "", "  ")
			if err != nil {
				return errors.Wrap(err, errors.ErrTypeSerialization, "failed to encode column model")
			}

			path = filepath.Join(outDir, c.Collection.Name+".json")
			data = append(encoded, '\n')
		} else {
			path = filepath.Join(outDir, c.Collection.Name+".sql")
			data = []byte(c.DDL + ";\n")
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrTypeFileSystem, "failed to write %s", path)
		}

		log.WithField("collection", c.Collection.Name).Debugf("wrote %s", path)
	}

	fmt.Printf("Wrote %d file(s) to %s\n", len(compiled), outDir)

	return nil
}
