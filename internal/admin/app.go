package admin

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aturkov/scorekeep/internal/logging"
	"github.com/aturkov/scorekeep/internal/netx"
	"github.com/aturkov/scorekeep/internal/server/catalog"
	"github.com/aturkov/scorekeep/internal/server/config"
	"github.com/aturkov/scorekeep/internal/server/repositories/repomanager"
	"github.com/aturkov/scorekeep/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config) *App {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return &App{
		config: cfg,
		logger: logger,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) openDB(ctx context.Context) (*sql.DB, *repomanager.PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", a.config.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}
	return db, repomanager.NewPostgresRepositoryManager(), nil
}

// Run dispatches the subcommand in args (os.Args[1:]).
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: initdb | adduser | publish <subject> <pdf-file>")
	}

	switch args[0] {
	case "initdb":
		return a.runInitDB(ctx)
	case "adduser":
		return a.runAddUser(ctx)
	case "publish":
		if len(args) != 3 {
			return fmt.Errorf("usage: publish <subject> <pdf-file>")
		}
		return a.runPublish(ctx, args[1], args[2])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) runInitDB(ctx context.Context) error {
	db, rm, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	fmt.Fprintln(a.out, "Database initialized.")
	return nil
}

func (a *App) runAddUser(ctx context.Context) error {
	fullName, err := GetSimpleText(a.in, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	nickname, err := GetSimpleText(a.in, "Nickname", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	db, rm, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	accounts := services.NewAccountService(db, rm, a.config)
	user, err := accounts.Register(ctx, fullName, email, nickname, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created user %s (%s)\n", user.Nickname, user.ID)
	return nil
}

func (a *App) runPublish(ctx context.Context, subject, path string) error {
	cat, err := catalog.Load(a.config.CatalogFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	materials := services.NewMaterialService(cat, a.config)

	// The upload key is the catalog's pdf_key, so the published object is
	// exactly the one the material endpoint serves. Subjects without a
	// pdf_key cannot be published.
	key, url, err := materials.GetUploadURL(ctx, subject)
	if err != nil {
		return fmt.Errorf("no material configured for subject %q: %w", subject, err)
	}

	if err := netx.UploadToPresignedURL(url, data, "application/pdf"); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Published %s as %s\n", path, key)
	return nil
}
