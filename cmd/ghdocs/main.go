package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ghdocs"
	"github.com/fwojciec/ghdocs/fetch"
	"github.com/fwojciec/ghdocs/fs"
	"github.com/fwojciec/ghdocs/github"
	ghhttp "github.com/fwojciec/ghdocs/http"
	"github.com/fwojciec/ghdocs/rank"
	ghslog "github.com/fwojciec/ghdocs/slog"
	"github.com/fwojciec/ghdocs/sqlite"
	"github.com/fwojciec/ghdocs/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Base directory for downloaded files and the database. Set before calling Run().
	HomeDir string

	// Configuration file path. Overridden by --config.
	ConfigPath string

	// GitHub token used for API and download requests.
	Token string

	// SQLite database, opened on first use by the sqlite backend.
	DB *sqlite.DB

	// Lister and Downloader override the GitHub clients, for end-to-end testing.
	Lister     ghdocs.Lister
	Downloader ghdocs.Downloader
}

// NewMain returns a new instance of Main with defaults from the environment.
func NewMain() *Main {
	home := defaultHomeDir()
	configPath := os.Getenv("GHDOCS_CONFIG")
	if configPath == "" {
		configPath = filepath.Join(home, "config.yaml")
	}
	return &Main{
		HomeDir:    home,
		ConfigPath: configPath,
		Token:      os.Getenv("GITHUB_TOKEN"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		err := m.DB.Close()
		m.DB = nil
		return err
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ghdocs"),
		kong.Description("Search documentation fetched from GitHub repositories."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ghdocs --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	configPath := m.ConfigPath
	if cli.Config != "" {
		configPath = cli.Config
	}
	cfg, err := yaml.LoadConfig(configPath, m.HomeDir)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Check the configuration file at %s\n", configPath)
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	defer m.Close()
	deps.Catalog = ghdocs.NewCatalog(cfg.Sources, m.opener(cfg, logger, cli.Verbose))

	if kongCtx.Command() == "update" {
		pipeline, err := m.pipeline(ctx, logger, cli.Verbose)
		if err != nil {
			return err
		}
		deps.Pipeline = pipeline
	}

	return kongCtx.Run(deps)
}

// opener returns the IndexOpener for the configured backend.
func (m *Main) opener(cfg ghdocs.Config, logger *slog.Logger, verbose bool) ghdocs.IndexOpener {
	ranker := rank.New(cfg.Search)
	return func(src ghdocs.Source) (ghdocs.IndexService, error) {
		var index ghdocs.IndexService
		switch cfg.Backend {
		case ghdocs.BackendSQLite:
			if m.DB == nil {
				if err := os.MkdirAll(filepath.Dir(cfg.Database), 0755); err != nil {
					return nil, ghdocs.Errorf(ghdocs.ESTORAGE, "cannot create database directory: %v", err)
				}
				db := sqlite.NewDB(cfg.Database)
				if err := db.Open(); err != nil {
					return nil, fmt.Errorf("failed to open database at %q: %w", cfg.Database, err)
				}
				m.DB = db
			}
			index = sqlite.NewIndexService(m.DB, src.Name, cfg.Search, ranker)
		default:
			index = fs.NewIndexService(src.IndexFile, cfg.Search, ranker)
		}

		if verbose {
			index = ghslog.NewLoggingIndexService(index, src.Name, logger)
		}
		return index, nil
	}
}

// pipeline wires the GitHub lister and raw file downloader.
func (m *Main) pipeline(ctx context.Context, logger *slog.Logger, verbose bool) (*fetch.Pipeline, error) {
	lister := m.Lister
	if lister == nil {
		var opts []github.Option
		if m.Token != "" {
			opts = append(opts, github.WithToken(m.Token))
		}
		l, err := github.NewLister(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub client: %w", err)
		}
		lister = l
	}

	downloader := m.Downloader
	if downloader == nil {
		var opts []ghhttp.Option
		if m.Token != "" {
			opts = append(opts, ghhttp.WithToken(m.Token))
		}
		downloader = ghhttp.NewDownloader(opts...)
	}

	if verbose {
		lister = ghslog.NewLoggingLister(lister, logger)
		downloader = ghslog.NewLoggingDownloader(downloader, logger)
	}

	return &fetch.Pipeline{
		Lister:     lister,
		Downloader: downloader,
		Logger:     logger,
	}, nil
}

func defaultHomeDir() string {
	if dir := os.Getenv("GHDOCS_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ghdocs"
	}
	return filepath.Join(home, ".ghdocs")
}
