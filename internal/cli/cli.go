package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amirbrooks/assistant/internal/config"
	"github.com/amirbrooks/assistant/internal/logging"
	"github.com/amirbrooks/assistant/internal/store"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitInternal = 10
)

// Version is set at build time.
var Version = "dev"

// IO carries the streams a run reads from and writes to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// exitError carries the process exit code alongside the error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error    { return &exitError{code: ExitUsage, err: err} }
func internalError(err error) error { return &exitError{code: ExitInternal, err: err} }

func Run(args []string) int {
	return RunIO(args, IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

func RunIO(args []string, stdio IO) int {
	root := newRootCmd(stdio)
	root.SetArgs(args)
	root.SetIn(stdio.In)
	root.SetOut(stdio.Out)
	root.SetErr(stdio.Err)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stdio.Err, "assistant:", err)
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return ExitUsage
	}
	return ExitOK
}

func newRootCmd(stdio IO) *cobra.Command {
	var flags config.Flags
	cmd := &cobra.Command{
		Use:   "assistant [root]",
		Short: "Interactive assistant for contacts and notes",
		Long: `assistant keeps an address book and a notebook in a workspace directory
and answers one command per line until you type "exit" or "close".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && flags.Root == "" {
				flags.Root = args[0]
			}
			return runSession(flags, stdio)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.Root, "root", "", "workspace directory (default ~/.assistant or ASSISTANT_ROOT)")
	pf.StringVar(&flags.Backend, "backend", "", "storage backend: file or sqlite")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&flags.LogFile, "log-file", "", "log file (default <root>/logs/assistant.log)")
	cmd.Flags().IntVar(&flags.BirthdayDays, "birthday-days", 0, "default window for the birthdays command")
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "disable styled output")

	cmd.AddCommand(
		newVersionCmd(),
		newInitCmd(&flags),
		newConfigCmd(&flags),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "assistant", Version)
		},
	}
}

func newInitCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the workspace directory and config.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(*flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Initialized assistant workspace at:", ws.Root)
			return nil
		},
	}
}

// openWorkspace resolves the root and makes sure it exists on disk.
func openWorkspace(flags config.Flags) (*store.Workspace, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, usageError(err)
	}
	ws, err := store.Open(config.ResolveRoot(flags, env))
	if err != nil {
		return nil, internalError(err)
	}
	if err := ws.Init(); err != nil {
		return nil, internalError(fmt.Errorf("init: %w", err))
	}
	return ws, nil
}

func runSession(flags config.Flags, stdio IO) (err error) {
	env, err := config.LoadEnv()
	if err != nil {
		return usageError(err)
	}
	ws, err := store.Open(config.ResolveRoot(flags, env))
	if err != nil {
		return internalError(err)
	}
	if err := ws.Init(); err != nil {
		return internalError(fmt.Errorf("init: %w", err))
	}
	settings, err := config.Resolve(flags, env, ws.Root, ws.Config())
	if err != nil {
		return usageError(err)
	}

	log, err := logging.New(logging.Options{Level: settings.LogLevel, Path: settings.LogFile})
	if errors.Is(err, logging.ErrLevel) {
		return usageError(err)
	}
	if err != nil {
		return internalError(err)
	}
	defer func() { _ = log.Sync() }()

	backend, err := ws.OpenBackend(settings.Backend)
	if err != nil {
		return internalError(err)
	}
	defer backend.Close()

	book, notes, err := backend.Load()
	if err != nil {
		log.Error("load failed", zap.String("location", backend.Location()), zap.Error(err))
		return internalError(fmt.Errorf("load %s: %w", backend.Location(), err))
	}
	log.Info("loaded",
		zap.String("backend", settings.Backend),
		zap.String("location", backend.Location()),
		zap.Int("contacts", book.Len()),
		zap.Int("notes", notes.Len()),
	)

	render := NewRenderer(stdio.Out, settings.Color)
	fmt.Fprintln(stdio.Out, render.Info("Data has been loaded from: "+backend.Location()))

	// Saving is deferred so data survives a panic in a command.
	defer func() {
		if serr := backend.Save(book, notes); serr != nil {
			log.Error("save failed", zap.String("location", backend.Location()), zap.Error(serr))
			if err == nil {
				err = internalError(fmt.Errorf("save %s: %w", backend.Location(), serr))
			}
			return
		}
		log.Info("saved",
			zap.String("location", backend.Location()),
			zap.Int("contacts", book.Len()),
			zap.Int("notes", notes.Len()),
		)
		fmt.Fprintln(stdio.Out, render.Info("Data has been saved to: "+backend.Location()))
	}()

	d := NewDispatcher(log, book, notes, HandlerOptions{
		Today:        time.Now,
		BirthdayDays: settings.BirthdayDays,
	})
	if err := NewSession(d, stdio.In, stdio.Out, render).Run(); err != nil {
		return internalError(fmt.Errorf("read input: %w", err))
	}
	return nil
}
