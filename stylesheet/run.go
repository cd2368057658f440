package stylesheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssel/state"
)

// Run compiles a YAML selector definition document into CSS text. It is
// the action behind the "render" subcommand: first argument is the
// definition file, optional second argument is the destination file
// (stdout when absent).
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no definition file has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	strict := env.Cfg.Render.Strict
	if cmd.IsSet("strict") {
		strict = cmd.Bool("strict")
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read definition file: %w", err)
	}
	doc, err := LoadDocument(data)
	if err != nil {
		return err
	}

	sheet, err := NewCompiler(log, strict).Compile(doc)
	if err != nil {
		return fmt.Errorf("unable to compile selector definitions: %w", err)
	}

	out := os.Stdout
	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if out, err = os.Create(dst); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
		}
		defer out.Close()
	} else {
		dst = "STDOUT"
	}

	if _, err := sheet.WriteTo(out); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}

	log.Info("Rendered stylesheet",
		zap.String("source", src),
		zap.String("destination", dst),
		zap.Int("rules", len(sheet.Rules)),
		zap.Bool("strict", strict),
		zap.Duration("elapsed", env.Uptime()))
	return nil
}
