package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssel/config"
	"cssel/misc"
	"cssel/state"
	"cssel/stylesheet"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()
	return nil
}

// Ignore urfave/cli default error handling - cli.Exit() looks
// non-transparent and unnecessary. Subcommands return regular errors.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "CSS selector and stylesheet generation tool",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "force debug level console logging"},
		},
		Commands: []*cli.Command{
			{
				Name:         "build",
				Usage:        "Builds a single selector from fragment flags and prints it",
				OnUsageError: usageErrorHandler,
				Action:       buildSelector,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "element", Aliases: []string{"e"}, Usage: "element (tag) `NAME` or *"},
					&cli.StringFlag{Name: "id", Usage: "id `NAME` (without #)"},
					&cli.StringSliceFlag{Name: "class", Usage: "class `NAME` (without dot), may be repeated"},
					&cli.StringSliceFlag{Name: "attr", Usage: "attribute selector `BODY` (without brackets), may be repeated"},
					&cli.StringSliceFlag{Name: "pseudo-class", Usage: "pseudo-class `NAME` (without colon), may be repeated"},
					&cli.StringFlag{Name: "pseudo-element", Usage: "pseudo-element `NAME` (without colons)"},
					&cli.BoolFlag{Name: "strict", Usage: "reject tokens which are not plain CSS identifiers"},
				},
				ArgsUsage: " ",
			},
			{
				Name:         "render",
				Usage:        "Compiles YAML selector definitions into a stylesheet",
				OnUsageError: usageErrorHandler,
				Action:       stylesheet.Run,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "strict", Usage: "reject tokens which are not plain CSS identifiers"},
				},
				ArgsUsage: "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to a YAML file with selector definitions, for example:

        rules:
          - selector:
              element: a
              attrs: ['href$=".png"']
              pseudo_classes: [focus]
            properties:
              color: red
          - selector:
              combine:
                left: {element: div, id: main}
                combinator: "+"
                right: {element: span}
            properties:
              display: none

DESTINATION:
    file name to write CSS to, if absent - STDOUT
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func buildSelector(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	strict := env.Cfg.Render.Strict
	if cmd.IsSet("strict") {
		strict = cmd.Bool("strict")
	}

	def := stylesheet.SelectorDef{
		Element:       cmd.String("element"),
		ID:            cmd.String("id"),
		Classes:       cmd.StringSlice("class"),
		Attrs:         cmd.StringSlice("attr"),
		PseudoClasses: cmd.StringSlice("pseudo-class"),
		PseudoElement: cmd.String("pseudo-element"),
	}

	sel, err := stylesheet.NewCompiler(env.Log, strict).CompileSelector(def)
	if err != nil {
		return fmt.Errorf("unable to build selector: %w", err)
	}

	fmt.Println(sel)
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
