package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/fintrack/infra"
	"github.com/amirasaad/fintrack/infra/initializer"
	"github.com/amirasaad/fintrack/infra/migrations"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

var (
	okColor    = color.New(color.FgGreen)
	badColor   = color.New(color.FgRed, color.Bold)
	mutedColor = color.New(color.Faint)
)

func commands(stdin io.Reader, stdout io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&migrateCmd{out: stdout},
		&registerCmd{in: stdin, out: stdout},
		&accountsCmd{out: stdout},
		&auditCmd{out: stdout},
	}
}

// loadConfig reads the environment quietly: the CLI talks to the user on
// stdout, so only warnings reach the log.
func loadConfig() (*config.App, error) {
	cfg, err := config.Load(*envFile)
	if err != nil {
		return nil, err
	}
	cfg.Log.Level = int(log.WarnLevel)
	cfg.Log.Format = "text"
	return cfg, nil
}

// withApp opens the app described by the environment and runs fn on it.
func withApp(ctx context.Context, fn func(*app.App) error) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	deps, res, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return subcommands.ExitFailure
	}
	defer res.Close() //nolint:errcheck
	if err := fn(app.New(deps, cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// migrateCmd applies or rolls back the schema.
type migrateCmd struct {
	out  io.Writer
	down bool
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply database migrations" }
func (*migrateCmd) Usage() string {
	return `cli migrate [-down]

  Brings the schema up to date. On Postgres, -down rolls every migration back.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.down, "down", false, "roll back every migration (Postgres only)")
}

func (c *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer infra.Close(db) //nolint:errcheck

	dialect := infra.DialectOf(cfg.DB.Url)
	if c.down {
		if dialect != infra.DialectPostgres {
			fmt.Fprintln(os.Stderr, "Error: -down is only supported on Postgres")
			return subcommands.ExitUsageError
		}
		sqlDB, err := db.DB()
		if err == nil {
			err = migrations.Down(sqlDB)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rolling back: %v\n", err)
			return subcommands.ExitFailure
		}
		okColor.Fprintln(c.out, "Migrations rolled back") //nolint:errcheck
		return subcommands.ExitSuccess
	}

	if err := infra.Migrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "Error migrating: %v\n", err)
		return subcommands.ExitFailure
	}
	if dialect == infra.DialectPostgres {
		if sqlDB, err := db.DB(); err == nil {
			if v, dirty, err := migrations.Version(sqlDB); err == nil {
				okColor.Fprintf(c.out, "Schema at version %d (dirty=%t)\n", v, dirty) //nolint:errcheck
				return subcommands.ExitSuccess
			}
		}
	}
	okColor.Fprintf(c.out, "Schema up to date (%s)\n", dialect) //nolint:errcheck
	return subcommands.ExitSuccess
}

// registerCmd provisions a user with the same seeding as the API.
type registerCmd struct {
	in    io.Reader
	out   io.Writer
	email string
	name  string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a user" }
func (*registerCmd) Usage() string {
	return `cli register -email <email> -name <name>

  Creates a user with a default cash account and starter categories.
  The password is read from the terminal, or from stdin when piped.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "email address")
	f.StringVar(&c.name, "name", "", "display name")
}

func (c *registerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.name == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	fmt.Fprint(c.out, "Password: ")
	password, err := readPassword(c.in)
	fmt.Fprintln(c.out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		return subcommands.ExitFailure
	}
	return withApp(ctx, func(a *app.App) error {
		return registerUser(ctx, a, c.out, c.email, c.name, password)
	})
}

func registerUser(ctx context.Context, a *app.App, out io.Writer, email, name, password string) error {
	session, err := a.AuthService.Register(ctx, email, password, name)
	if err != nil {
		return err
	}
	okColor.Fprintf(out, "User %s created with ID %s\n", session.User.Email, session.User.ID) //nolint:errcheck
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// accountsCmd lists a user's accounts.
type accountsCmd struct {
	out   io.Writer
	email string
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list a user's accounts and balances" }
func (*accountsCmd) Usage() string {
	return `cli accounts -email <email>
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "email address of the user")
}

func (c *accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app.App) error {
		return printAccounts(ctx, a, c.out, c.email)
	})
}

func printAccounts(ctx context.Context, a *app.App, out io.Writer, email string) error {
	u, err := a.UserService.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	accounts, err := a.AccountService.List(ctx, u.ID)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		balance := money.Format(acc.BalanceCents, acc.Currency)
		line := fmt.Sprintf("%s  %-20s %-10s %s", acc.ID, acc.Name, acc.Type, balance)
		switch {
		case acc.IsArchived:
			mutedColor.Fprintln(out, line+"  (archived)") //nolint:errcheck
		case acc.BalanceCents < 0:
			badColor.Fprintln(out, line) //nolint:errcheck
		default:
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

// auditCmd reconciles every account of a user.
type auditCmd struct {
	out   io.Writer
	email string
}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "check stored balances against transaction history" }
func (*auditCmd) Usage() string {
	return `cli audit -email <email>

  Exits non-zero when any account's balance drifted from its history.
`
}

func (c *auditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "email address of the user")
}

func (c *auditCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app.App) error {
		return auditUser(ctx, a, c.out, c.email)
	})
}

var errDrift = errors.New("balance drift detected")

func auditUser(ctx context.Context, a *app.App, out io.Writer, email string) error {
	u, err := a.UserService.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	audits, err := a.AccountService.AuditAll(ctx, u.ID)
	if err != nil {
		return err
	}
	drifted := 0
	for _, audit := range audits {
		if audit.Consistent() {
			okColor.Fprintf(out, "OK     %s  balance %s over %d transactions\n", //nolint:errcheck
				audit.AccountID, money.MinorUnitsToString(audit.BalanceCents), audit.TransactionCount)
			continue
		}
		drifted++
		badColor.Fprintf(out, "DRIFT  %s  stored %s expected %s (drift %s)\n", //nolint:errcheck
			audit.AccountID,
			money.MinorUnitsToString(audit.BalanceCents),
			money.MinorUnitsToString(audit.ExpectedCents),
			money.MinorUnitsToString(audit.DriftCents),
		)
	}
	if drifted > 0 {
		return fmt.Errorf("%w in %d account(s)", errDrift, drifted)
	}
	return nil
}
