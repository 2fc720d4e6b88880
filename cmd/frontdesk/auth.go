package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	"github.com/target/frontdesk-console/internal/domain/model"
)

type loginOptions struct {
	Username      string
	Password      string
	PasswordStdin bool
}

func newFlagSet(cmdCtx *commandContext, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usagef("%s: see flags above", fs.Name())
		}
		return usagef("%s: %v", fs.Name(), err)
	}
	return nil
}

// prompt reads one line from in after printing label to stderr. A closed input yields "".
func prompt(cmdCtx *commandContext, in *bufio.Reader, label string) (string, error) {
	if err := writef(cmdCtx.Err, "%s: ", label); err != nil {
		return "", err
	}
	return readLine(in, label)
}

func readLine(in *bufio.Reader, label string) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "login")
	var opts loginOptions
	fs.StringVar(&opts.Username, "username", "", "Username (prompted when omitted)")
	fs.StringVar(&opts.Password, "password", "", "Password (prompted when omitted)")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from the first line of stdin")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	in := bufio.NewReader(cmdCtx.In)
	var err error
	if opts.Username == "" && !opts.PasswordStdin {
		if opts.Username, err = prompt(cmdCtx, in, "Username"); err != nil {
			return err
		}
	}
	if opts.Password == "" {
		if opts.PasswordStdin {
			if opts.Password, err = readLine(in, "password"); err != nil {
				return err
			}
		} else if opts.Password, err = prompt(cmdCtx, in, "Password"); err != nil {
			return err
		}
	}

	res := cmdCtx.Services.Session.Login(cmdCtx.Ctx, opts.Username, opts.Password)
	if !res.Success {
		if res.Err != nil {
			return res.Err
		}
		return errors.New(res.Error)
	}
	return writef(cmdCtx.Out, "Signed in as %s (%s)\n", res.User.DisplayName(), res.User.Role)
}

func runLogout(cmdCtx *commandContext, args []string) error {
	if err := parseFlags(newFlagSet(cmdCtx, "logout"), args); err != nil {
		return err
	}
	cmdCtx.Services.Session.Logout(cmdCtx.Ctx)
	return writeln(cmdCtx.Out, "Signed out")
}

type statusView struct {
	State          domainauth.State     `json:"state"`
	Authenticated  bool                 `json:"authenticated"`
	User           *domainauth.Identity `json:"user,omitempty"`
	TokenExpiresAt *time.Time           `json:"token_expires_at,omitempty"`
}

func runStatus(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "status")
	var out outputOptions
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	snap := cmdCtx.Services.Store.Snapshot()
	view := statusView{
		State:         cmdCtx.Services.Session.State(),
		Authenticated: snap.IsAuthenticated(),
	}
	if view.Authenticated {
		view.User = snap.Identity
		if !snap.TokenExpiresAt.IsZero() {
			expires := snap.TokenExpiresAt
			view.TokenExpiresAt = &expires
		}
	}

	return render(cmdCtx.Out, out, view, func(tw *tabwriter.Writer) error {
		if !view.Authenticated {
			return row(tw, "Not signed in")
		}
		if err := identityTable(tw, *view.User); err != nil {
			return err
		}
		if view.TokenExpiresAt != nil {
			return row(tw, "Token expires:", view.TokenExpiresAt.Local().Format(time.RFC1123))
		}
		return nil
	})
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "whoami")
	var out outputOptions
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	return printIdentity(cmdCtx, out)
}

func runRefresh(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "refresh")
	var out outputOptions
	addOutputFlags(fs, &out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := cmdCtx.Services.Session.Refresh(cmdCtx.Ctx); err != nil {
		return err
	}
	return printIdentity(cmdCtx, out)
}

func printIdentity(cmdCtx *commandContext, out outputOptions) error {
	snap := cmdCtx.Services.Store.Snapshot()
	if !snap.IsAuthenticated() {
		return errNotSignedIn
	}
	id := *snap.Identity
	return render(cmdCtx.Out, out, id, func(tw *tabwriter.Writer) error {
		return identityTable(tw, id)
	})
}

func identityTable(tw *tabwriter.Writer, id domainauth.Identity) error {
	lines := [][]any{
		{"Name:", id.DisplayName()},
		{"Username:", id.Username},
		{"Email:", orDash(id.Email)},
		{"Role:", id.Role},
		{"Super admin:", id.IsSuperAdmin},
		{"Permissions:", orDash(strings.Join(id.Permissions.Codes(), ", "))},
	}
	for _, l := range lines {
		if err := row(tw, l...); err != nil {
			return err
		}
	}
	return nil
}

func runRegister(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "register")
	var req model.SignUpRequest
	fs.StringVar(&req.Username, "username", "", "Username (required)")
	fs.StringVar(&req.Email, "email", "", "Email address (required)")
	fs.StringVar(&req.FirstName, "first-name", "", "First name (required)")
	fs.StringVar(&req.LastName, "last-name", "", "Last name (required)")
	fs.StringVar(&req.Phone, "phone", "", "Phone number")
	fs.StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if req.Password == "" {
		pw, err := prompt(cmdCtx, bufio.NewReader(cmdCtx.In), "Password")
		if err != nil {
			return err
		}
		req.Password = pw
	}

	if err := cmdCtx.Services.Accounts.Register(cmdCtx.Ctx, req); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Account %s created. Sign in with `frontdesk login`.\n", strings.TrimSpace(req.Username))
}

func runForgotPassword(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "forgot-password")
	var req model.ForgotPasswordRequest
	fs.StringVar(&req.Email, "email", "", "Account email address (required)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := cmdCtx.Services.Accounts.ForgotPassword(cmdCtx.Ctx, req); err != nil {
		return err
	}
	return writeln(cmdCtx.Out, "If the account exists, a reset link has been sent.")
}

func runResetPassword(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "reset-password")
	var req model.ResetPasswordRequest
	fs.StringVar(&req.Token, "token", "", "Reset token from the email (required)")
	fs.StringVar(&req.NewPassword, "password", "", "New password (prompted when omitted)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if req.NewPassword == "" {
		pw, err := prompt(cmdCtx, bufio.NewReader(cmdCtx.In), "New password")
		if err != nil {
			return err
		}
		req.NewPassword = pw
	}
	if err := cmdCtx.Services.Accounts.ResetPassword(cmdCtx.Ctx, req); err != nil {
		return err
	}
	return writeln(cmdCtx.Out, "Password updated.")
}
