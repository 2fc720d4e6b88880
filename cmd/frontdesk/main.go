// Command frontdesk is the operator CLI for the school front-office API.
//
// Every invocation restores the saved session first, runs one command and exits. Commands that
// need a signed-in operator refuse to run otherwise.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/target/frontdesk-console/config"
	"github.com/target/frontdesk-console/internal/bootstrap"
	"github.com/target/frontdesk-console/internal/session"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	// protected commands require a signed-in session.
	protected bool
	run       commandFn
}

type commandContext struct {
	Ctx      context.Context
	Logger   *slog.Logger
	Config   config.AppConfig
	Services bootstrap.ServiceContainer

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const notSignedInMsg = "not signed in; run `frontdesk login`"

// errNotSignedIn is returned when a protected command runs without a session.
var errNotSignedIn = errors.New(notSignedInMsg)

func main() {
	code := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code) //nolint:forbidigo // CLI must propagate command status to shell scripts
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		_ = printUsage(stderr)
		return exitUsage
	}

	cmdName := args[0]
	if cmdName == "help" || cmdName == "-h" || cmdName == "--help" {
		_ = printUsage(stdout)
		return exitOK
	}
	cmd, ok := commands()[cmdName]
	if !ok {
		_ = writef(stderr, "unknown command %q\n\n", cmdName)
		_ = printUsage(stderr)
		return exitUsage
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		_ = writef(stderr, "load config: %v\n", err)
		return exitError
	}
	logger := bootstrap.InitLogger(stderr, cfg.Observability.SlogLevel())

	cmdCtx, closeFn, err := newCommandContext(ctx, cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "initialise console", "error", err)
		return exitError
	}
	defer func() {
		if cerr := closeFn(); cerr != nil {
			logger.WarnContext(ctx, "release resources failed", "error", cerr)
		}
	}()
	cmdCtx.In, cmdCtx.Out, cmdCtx.Err = stdin, stdout, stderr

	if err := cmdCtx.Services.Session.Hydrate(ctx); err != nil {
		logger.ErrorContext(ctx, "restore session", "error", err)
		return exitError
	}

	if cmd.protected {
		if err := requireSession(cmdCtx); err != nil {
			_ = writeln(stderr, err.Error())
			return exitError
		}
	}

	if runErr := cmd.run(cmdCtx, args[1:]); runErr != nil {
		var usage usageError
		if errors.As(runErr, &usage) {
			_ = writef(stderr, "%s\n", usage.Error())
			return exitUsage
		}
		_ = writef(stderr, "%s: %s\n", cmdName, describeError(runErr))
		logger.DebugContext(ctx, "command failed", "command", cmdName, "error", runErr)
		return exitError
	}
	return exitOK
}

func newCommandContext(
	ctx context.Context,
	cfg config.AppConfig,
	logger *slog.Logger,
) (*commandContext, func() error, error) {
	tokens, closeFn, err := bootstrap.BuildTokenStore(ctx, bootstrap.TokenStoreDeps{
		TokenStore: cfg.TokenStore,
		Redis:      cfg.Redis,
		Logger:     logger,
	})
	if err != nil {
		return nil, closeFn, err
	}

	services, err := bootstrap.NewServices(bootstrap.ServiceDeps{
		Config: &cfg,
		Tokens: tokens,
		Logger: logger,
	})
	if err != nil {
		return nil, closeFn, err
	}

	closeAll := func() error {
		return errors.Join(services.Close(), closeFn())
	}
	return &commandContext{
		Ctx:      ctx,
		Logger:   logger,
		Config:   cfg,
		Services: services,
	}, closeAll, nil
}

// requireSession applies the access guard. Hydration has already finished, so the only
// outcomes are render and redirect.
func requireSession(cmdCtx *commandContext) error {
	if session.Guard(cmdCtx.Services.Store.Snapshot()) != session.DecisionRender {
		return errNotSignedIn
	}
	return nil
}

func commands() map[string]command {
	list := []command{
		{name: "login", description: "Sign in and save the session on this device", run: runLogin},
		{name: "logout", description: "Sign out and forget the saved session", run: runLogout},
		{name: "status", description: "Show the current session", run: runStatus},
		{name: "whoami", description: "Show the signed-in operator", protected: true, run: runWhoami},
		{name: "refresh", description: "Reload the operator profile", protected: true, run: runRefresh},
		{name: "register", description: "Create a staff account", run: runRegister},
		{name: "forgot-password", description: "Email a password reset link", run: runForgotPassword},
		{name: "reset-password", description: "Set a new password with a reset token", run: runResetPassword},
		{name: "visitors", description: "List, show, record or check out visitors", protected: true, run: runVisitors},
		{name: "calls", description: "List, show or log phone calls", protected: true, run: runCalls},
		{name: "years", description: "Manage academic years", protected: true, run: runYears},
		{name: "roles", description: "Manage roles and their permissions", protected: true, run: runRoles},
		{name: "permissions", description: "List or create permissions", protected: true, run: runPermissions},
		{name: "assign-roles", description: "Replace the roles of a user", protected: true, run: runAssignRoles},
		{name: "dashboard", description: "Show visitor and call counts for the current year", protected: true, run: runDashboard},
	}
	out := make(map[string]command, len(list))
	for _, c := range list {
		out[c.name] = c
	}
	return out
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: frontdesk <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-18s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

// usageError marks a command-line mistake; it exits with status 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
