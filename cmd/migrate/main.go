package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/infrastructure/config"
	"github.com/alexrentacar/backoffice/internal/infrastructure/crypto"
	"github.com/alexrentacar/backoffice/internal/infrastructure/logger"
	"github.com/alexrentacar/backoffice/internal/infrastructure/migration"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence"
	"github.com/alexrentacar/backoffice/migrations"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var (
		migrationsPath string
		logLevel       string
	)

	flag.StringVar(&migrationsPath, "path", "", "Read migrations from this directory instead of the embedded set")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if migrationsPath != "" {
		abs, err := filepath.Abs(migrationsPath)
		if err != nil {
			log.Fatal("Failed to get absolute path", zap.Error(err))
		}
		migrationsPath = abs
	}

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", migrationsPath),
	)

	// create and list work on files only
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		dir := migrationsPath
		if dir == "" {
			dir = "migrations"
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(dir, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		var names []string
		if migrationsPath == "" {
			names, err = migration.ListMigrations(migrations.FS)
		} else {
			names, err = migration.ListMigrations(os.DirFS(migrationsPath))
		}
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		log.Info("Available migrations", zap.Int("count", len(names)))
		for _, n := range names {
			fmt.Println("  -", n)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if command == "create-admin" {
		if len(args) < 3 {
			log.Fatal("Usage: migrate create-admin <username> <password>")
		}
		if err := createAdmin(cfg, args[1], args[2], log); err != nil {
			log.Fatal("Failed to create admin user", zap.Error(err))
		}
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	var m *migration.Migrator
	if migrationsPath == "" {
		m, err = migration.NewFromFS(db, migrations.FS, log)
	} else {
		m, err = migration.New(db, migrationsPath, log)
	}
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "steps":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate steps <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration steps failed", zap.Error(err))
		}

	case "goto":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.GoTo(uint(version)); err != nil {
			log.Fatal("Migration goto failed", zap.Error(err))
		}

	case "status":
		st, err := m.Status()
		if err != nil {
			log.Fatal("Failed to read status", zap.Error(err))
		}
		if st.Version == 0 {
			log.Info("No migrations applied")
			return
		}
		log.Info("Current migration version", zap.Uint("version", st.Version), zap.Bool("dirty", st.Dirty))

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		log.Warn("Forcing migration version")
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// createAdmin inserts an active admin user, refusing duplicates
func createAdmin(cfg *config.Config, username, password string, log *zap.Logger) error {
	key, err := cfg.Crypto.Key()
	if err != nil {
		return fmt.Errorf("decode field key: %w", err)
	}
	cipher, err := crypto.NewFieldCipher(key)
	if err != nil {
		return err
	}
	crypto.Register(crypto.NewEncryptedSerializer(cipher, log))

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	store := persistence.NewGormStore(db.DB, cipher)
	exists, err := store.Users().ExistsByUsername(ctx, username, uuid.Nil)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("user %q already exists", username)
	}

	user, err := identity.NewUser(username, password, identity.RoleAdmin, identity.SystemActor.UserID)
	if err != nil {
		return err
	}
	if err := store.Users().Save(ctx, user); err != nil {
		return err
	}
	log.Info("Admin user created", zap.String("username", user.Username), zap.String("id", user.ID.String()))
	return nil
}

func printUsage() {
	fmt.Println(`Rental back-office database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                                 Apply all pending migrations
  down                               Roll back all migrations
  steps <n>                          Apply n migrations (positive=up, negative=down)
  goto <version>                     Migrate to a specific version
  status                             Show current version and dirty flag
  force <version>                    Force set migration version
  create <name> [desc]               Create a new migration file pair
  list                               List available migrations
  create-admin <username> <password> Create an admin user

Flags:
  -path string          Read migrations from a directory (default: embedded)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  RENTAL_DATABASE_HOST, RENTAL_DATABASE_PORT, RENTAL_DATABASE_USER,
  RENTAL_DATABASE_PASSWORD, RENTAL_DATABASE_DBNAME, RENTAL_DATABASE_SSLMODE`)
}
