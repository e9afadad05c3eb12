package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/noelzubin/cmdref/search"
	"github.com/noelzubin/cmdref/search/bleve_indexer"
	"github.com/noelzubin/cmdref/session"
	"github.com/noelzubin/cmdref/store"
	"github.com/noelzubin/cmdref/store/jsonfile"
	"github.com/noelzubin/cmdref/store/seed"
	"github.com/noelzubin/cmdref/store/sqlite"
	"github.com/noelzubin/cmdref/utils"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run(), empty for the default.
	ConfigPath string

	Config   *utils.Config
	Logger   *log.Logger
	Backend  store.Backend
	Store    *store.Store
	Searcher search.Searcher

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cmdref"),
		kong.Description("Search and annotate a command reference."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// The browser is the default command
	if len(args) == 0 {
		args = []string{"tui"}
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := m.open(cli); err != nil {
		return err
	}
	defer m.Close()

	deps.Config = m.Config
	deps.Logger = m.Logger
	deps.Session = session.New(m.Store, m.Backend, m.Searcher, session.Options{
		Category:  m.Config.Category,
		SearchAll: m.Config.SearchAll,
		Exact:     m.Config.Exact,
		Logger:    m.Logger,
	})

	return kongCtx.Run(deps)
}

// open loads config, logger, corpus and search engine.
func (m *Main) open(cli *CLI) error {
	path := cli.Config
	if path == "" {
		path = m.ConfigPath
	}
	config, err := utils.NewConfig(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if cli.DB != "" {
		config.DBPath = cli.DB
	}
	if cli.Backend != "" {
		config.Backend = cli.Backend
	}
	if cli.Engine != "" {
		config.Engine = cli.Engine
	}
	if err := config.Validate(); err != nil {
		return err
	}
	m.Config = config

	logger, closer, err := utils.NewLogger(config.LogPath, config.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	m.Logger = logger
	m.closers = append(m.closers, closer)

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0755); err != nil {
		return err
	}
	m.Backend = newBackend(config)
	if c, ok := m.Backend.(io.Closer); ok {
		m.closers = append(m.closers, c)
	}

	m.Store, err = loadStore(m.Backend, logger)
	if err != nil {
		return err
	}

	switch config.Engine {
	case "bleve":
		indexer, err := bleve_indexer.NewBleveIndexer(config, logger)
		if err != nil {
			return fmt.Errorf("failed to open index: %w", err)
		}
		m.Searcher = indexer
		m.closers = append(m.closers, closerFunc(indexer.CloseIndex))
	default:
		m.Searcher = search.NewScanner()
	}
	return nil
}

func newBackend(config *utils.Config) store.Backend {
	switch config.Backend {
	case "sqlite":
		return sqlite.NewBackend(config.DBPath)
	default:
		return jsonfile.NewBackend(config.DBPath)
	}
}

// loadStore reads the corpus. When there is none yet the default corpus is
// written in its place; an unreadable one is left alone and the defaults are
// used for this run.
func loadStore(b store.Backend, logger *log.Logger) (*store.Store, error) {
	st, err := b.Load()
	switch {
	case err == nil:
		logger.Debug("corpus loaded", "categories", len(st.Categories()), "topics", st.Len())
		return st, nil
	case errors.Is(err, fs.ErrNotExist):
		st = seed.Default()
		if err := b.Save(st); err != nil {
			return nil, fmt.Errorf("failed to save default corpus: %w", err)
		}
		logger.Info("created default corpus")
		return st, nil
	default:
		logger.Error("failed to load corpus, using defaults", "error", err)
		return seed.Default(), nil
	}
}
