package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pg56714/line-dine-mapper/internal/config"
	"github.com/pg56714/line-dine-mapper/internal/database"
	"github.com/pg56714/line-dine-mapper/internal/logger"
)

// Options control the bootstrap pipeline. Override hooks exist for tests.
type Options struct {
	Config *config.Config

	LoggerInit func(*config.Config) error
	Connect    func(database.Config) (*sqlx.DB, error)
	Migrate    func(database.Config) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	DB *sqlx.DB
}

// Run initializes the logger, connects to the database, and applies migrations.
// A failure at any step is fatal: no partially initialized state is returned.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	dbCfg := database.Config{
		Host:           opts.Config.Database.Host,
		Port:           opts.Config.Database.Port,
		User:           opts.Config.Database.User,
		Password:       opts.Config.Database.Password,
		Name:           opts.Config.Database.Name,
		SSLMode:        opts.Config.Database.SSLMode,
		MaxConnections: opts.Config.Database.MaxConnections,
	}

	connect := opts.Connect
	if connect == nil {
		connect = database.Connect
	}
	db, err := connect(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	migrate := opts.Migrate
	if migrate == nil {
		migrate = database.RunMigrations
	}
	if err := migrate(dbCfg); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	return &Result{DB: db}, nil
}
