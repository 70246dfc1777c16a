package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/rs/zerolog"

	"github.com/naveenspark/financeflow/internal/browser"
	"github.com/naveenspark/financeflow/internal/config"
	"github.com/naveenspark/financeflow/internal/tui"
	"github.com/naveenspark/financeflow/pkg/domain"
	"github.com/naveenspark/financeflow/pkg/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Println("financeflow " + version)
			return nil
		case "help", "--help", "-h":
			printHelp(os.Stdout)
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return runTUI(cfg)
	}

	c := newCLI(cfg, os.Stdin, os.Stdout, os.Stderr)
	return c.dispatch(context.Background(), args)
}

// runTUI launches the interactive UI. Logs go to a file so they do not
// draw over the screen.
func runTUI(cfg *config.Config) error {
	logFile, err := cfg.OpenLog()
	if err != nil {
		return err
	}
	defer logFile.Close() //nolint:errcheck
	log := cfg.GetLogger(logFile)

	nav := tui.NewNavigator()
	gw := session.New(session.Config{
		BaseURL:  cfg.APIURL,
		Store:    session.NewFileStore(cfg.SessionPath()),
		Navigate: nav.ToLogin,
		Logger:   *log.Logger,
		Timeout:  cfg.Timeout,
	})
	if err := gw.Restore(); err != nil {
		log.Warn().Err(err).Msg("restore session")
	}

	app := tui.NewApp(gw, gw.Client(), cfg.WebURL)
	p := tea.NewProgram(app, tea.WithAltScreen())
	nav.Attach(p)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// cli runs the one-shot subcommands.
type cli struct {
	cfg *config.Config
	gw  *session.Gateway
	in  *bufio.Reader
	out io.Writer
	log *config.Logger

	// readPassword reads a line without echo. It falls back to a plain
	// line read when stdin is not a terminal.
	readPassword func() (string, error)
	openURL      func(string) error
}

func newCLI(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) *cli {
	log := cfg.GetLogger(stderr)
	if !cfg.Debug {
		quiet := log.Level(zerolog.WarnLevel)
		log = config.NewLogger(&quiet)
	}
	c := &cli{
		cfg:     cfg,
		in:      bufio.NewReader(stdin),
		out:     stdout,
		log:     log,
		openURL: browser.Open,
	}
	c.readPassword = func() (string, error) {
		f, ok := stdin.(*os.File)
		if !ok || !term.IsTerminal(f.Fd()) {
			return c.readLine()
		}
		b, err := term.ReadPassword(f.Fd())
		fmt.Fprintln(c.out)
		return string(b), err
	}
	c.gw = session.New(session.Config{
		BaseURL: cfg.APIURL,
		Store:   session.NewFileStore(cfg.SessionPath()),
		Navigate: func() {
			fmt.Fprintln(stderr, "Session expired. Run: financeflow login")
		},
		Logger:  *log.Logger,
		Timeout: cfg.Timeout,
	})
	return c
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	if err := c.gw.Restore(); err != nil {
		c.log.Warn().Err(err).Msg("restore session")
	}
	switch args[0] {
	case "login":
		return c.login(ctx, args[1:])
	case "register":
		return c.register(ctx)
	case "logout":
		return c.logout()
	case "whoami":
		return c.whoami()
	case "verify":
		if len(args) < 2 {
			return errors.New("usage: financeflow verify <token>")
		}
		return c.verify(ctx, args[1])
	case "resend":
		if len(args) < 2 {
			return errors.New("usage: financeflow resend <email>")
		}
		return c.resend(ctx, args[1])
	case "scan":
		if len(args) < 2 {
			return errors.New("usage: financeflow scan <image> [account-id]")
		}
		var accountID int64
		if len(args) > 2 {
			id, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid account id %q", args[2])
			}
			accountID = id
		}
		return c.scan(ctx, args[1], accountID)
	case "web":
		return c.web()
	default:
		return fmt.Errorf("unknown command %q (see: financeflow help)", args[0])
	}
}

func (c *cli) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *cli) prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	v, err := c.readLine()
	return strings.TrimSpace(v), err
}

func (c *cli) promptSecret(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	return c.readPassword()
}

func (c *cli) login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = c.prompt("Email"); err != nil {
			return err
		}
	}
	password, err := c.promptSecret("Password")
	if err != nil {
		return err
	}

	s, err := c.gw.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Signed in as %s\n", s.User.DisplayName())
	return nil
}

func (c *cli) register(ctx context.Context) error {
	var reg domain.Registration
	var err error
	if reg.FullName, err = c.prompt("Full name"); err != nil {
		return err
	}
	if reg.Email, err = c.prompt("Email"); err != nil {
		return err
	}
	if reg.Password, err = c.promptSecret("Password"); err != nil {
		return err
	}
	if reg.ConfirmPassword, err = c.promptSecret("Confirm password"); err != nil {
		return err
	}

	if err := c.gw.Register(ctx, reg); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Account created. Check %s for a verification link, then run: financeflow login\n", reg.Email)
	return nil
}

func (c *cli) logout() error {
	if !c.gw.IsAuthenticated() {
		fmt.Fprintln(c.out, "Already signed out.")
		return nil
	}
	if err := c.gw.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Signed out.")
	printTip(c.out)
	return nil
}

func (c *cli) whoami() error {
	s := c.gw.Current()
	if !s.IsAuthenticated() {
		fmt.Fprintln(c.out, "Not signed in. Run: financeflow login")
		return nil
	}
	if s.User != nil && s.User.FullName != "" {
		fmt.Fprintf(c.out, "%s <%s>\n", s.User.FullName, s.User.Email)
	} else {
		fmt.Fprintln(c.out, s.User.DisplayName())
	}
	if exp, ok := c.gw.ExpiresAt(); ok {
		fmt.Fprintln(c.out, describeExpiry(exp, time.Now()))
	}
	return nil
}

// describeExpiry reports the token's stated expiry. The server remains the
// authority; an expired-looking token is still sent until it is rejected.
func describeExpiry(exp, now time.Time) string {
	if !exp.After(now) {
		return fmt.Sprintf("Token expired %s; the next request will ask you to sign in again.", exp.Local().Format(time.RFC1123))
	}
	return fmt.Sprintf("Token expires %s (in %s)", exp.Local().Format(time.RFC1123), exp.Sub(now).Round(time.Minute))
}

func (c *cli) verify(ctx context.Context, token string) error {
	msg, err := c.gw.Client().VerifyEmail(ctx, token)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	if msg == "" {
		msg = "Email verified. You can now sign in."
	}
	fmt.Fprintln(c.out, msg)
	return nil
}

func (c *cli) resend(ctx context.Context, email string) error {
	if err := c.gw.Client().ResendVerification(ctx, email); err != nil {
		return fmt.Errorf("resend verification: %w", err)
	}
	fmt.Fprintf(c.out, "Verification email sent to %s.\n", email)
	return nil
}

// scan extracts a receipt and, when accountID is set, records it as a debit
// on that account.
func (c *cli) scan(ctx context.Context, path string, accountID int64) error {
	if !c.gw.IsAuthenticated() {
		return errors.New("not signed in (run: financeflow login)")
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open receipt: %w", err)
	}
	defer f.Close() //nolint:errcheck

	r, err := c.gw.Client().ScanReceipt(ctx, path, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Merchant:    %s\n", r.MerchantName)
	fmt.Fprintf(c.out, "Amount:      %.2f\n", r.Amount.Float())
	fmt.Fprintf(c.out, "Date:        %s\n", r.Date)
	if r.Category != "" {
		fmt.Fprintf(c.out, "Category:    %s\n", r.Category)
	}
	if r.Description != "" {
		fmt.Fprintf(c.out, "Description: %s\n", r.Description)
	}
	if accountID == 0 {
		return nil
	}

	var fallback int64
	if r.CategoryID == 0 {
		cats, err := c.gw.Client().ListCategories(ctx, domain.CategoryExpense)
		if err != nil {
			return err
		}
		if len(cats) == 0 {
			return errors.New("no expense category to file the receipt under")
		}
		fallback = cats[0].ID
	}
	tx, err := c.gw.Client().CreateTransaction(ctx, r.Transaction(accountID, fallback))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Saved as transaction #%d.\n", tx.ID)
	return nil
}

func (c *cli) web() error {
	if err := c.openURL(c.cfg.WebURL); err != nil {
		fmt.Fprintf(c.out, "Could not open browser. Visit:\n  %s\n", c.cfg.WebURL)
	}
	return nil
}
