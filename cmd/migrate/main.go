package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/tradedir-backend/pkg/config"
	"github.com/angelmondragon/tradedir-backend/pkg/db"
	"github.com/angelmondragon/tradedir-backend/pkg/logger"
	"github.com/angelmondragon/tradedir-backend/pkg/migrate"
)

const usage = `tradedir directory schema migrations

  -cmd up|down|status     apply, roll back one, or list migrations
  -cmd version -version N  move the schema to version N (YYYYMMDDHHMMSS)
  -cmd create -name NAME   write a new timestamped SQL file into -dir
  -cmd validate            check file names and goose annotations in -dir

Without -dir the migrations compiled into the binary are used.
`

type options struct {
	cmd     string
	dir     string
	name    string
	version string
}

func main() {
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.cmd, "cmd", "up", "up|down|status|version|create|validate")
	flag.StringVar(&opts.dir, "dir", migrate.DefaultDir, "migrations directory")
	flag.StringVar(&opts.name, "name", "", "new migration name, for -cmd create")
	flag.StringVar(&opts.version, "version", "", "target version, for -cmd version")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// create and validate only touch files, so they run without config.
	if err := runOffline(opts); !errors.Is(err, errNeedsDatabase) {
		exitOn(err)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": opts.cmd,
		"dir": opts.dir,
	})

	if err := runOnline(ctx, cfg, logg, opts); err != nil {
		logg.Error(ctx, "migrate.failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migrate.done")
}

var errNeedsDatabase = errors.New("command needs a database")

func runOffline(opts options) error {
	switch opts.cmd {
	case "create":
		if opts.name == "" {
			return errors.New("missing -name for create")
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name)
		if err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		fmt.Println("created migration:", path)
		return nil
	case "validate":
		if err := migrate.ValidateDir(opts.dir); err != nil {
			return fmt.Errorf("validate migrations: %w", err)
		}
		fmt.Println("migrations ok")
		return nil
	}
	return errNeedsDatabase
}

func runOnline(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts options) (err error) {
	switch opts.cmd {
	case "up", "down", "status":
	case "version":
		if opts.version == "" {
			return errors.New("missing -version for version")
		}
	default:
		return fmt.Errorf("unknown -cmd %q", opts.cmd)
	}

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	// SQLite schemas come from the models at boot; the SQL files are Postgres.
	if client.Driver() != config.DriverPostgres {
		return fmt.Errorf("goose migrations target postgres, got %s", client.Driver())
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}

	if opts.cmd == "version" {
		return migrate.MigrateToVersion(ctx, sqlDB, opts.dir, opts.version)
	}
	return migrate.Run(ctx, sqlDB, opts.dir, opts.cmd)
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
