package commands

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cleared-dev/teller/internal/config"
	"github.com/cleared-dev/teller/internal/gitops"
	"github.com/cleared-dev/teller/internal/ledger"
	"github.com/cleared-dev/teller/internal/logging"
	"github.com/cleared-dev/teller/internal/txform"
)

// repo is an opened teller repository: its config, logger, and ledger.
type repo struct {
	root      string
	cfg       *config.Config
	logger    *zap.Logger
	ledger    *ledger.Service
	localizer *txform.Localizer
}

func openRepo(dir string, flags *globalFlags) (*repo, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("opening %s (run `teller init` first?): %w", root, err)
	}

	level := cfg.Logging.Level
	if flags != nil && flags.verbose {
		level = "debug"
	}
	logPath := ""
	if cfg.Logging.File != "" {
		logPath = filepath.Join(root, cfg.Logging.File)
	}
	logger, err := logging.New(level, logPath)
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("account", cfg.Account.Name))

	opts := []ledger.Option{ledger.WithLogger(logger)}
	if cfg.Git.AutoCommit && gitops.IsRepo(root) {
		opts = append(opts, ledger.WithCommitter(gitops.Committer{
			Dir:         root,
			AuthorName:  cfg.Git.AuthorName,
			AuthorEmail: cfg.Git.AuthorEmail,
		}))
	}

	loc := txform.NewLocalizer(cfg.Form.Locale)
	logger.Debug("repository opened",
		zap.String("root", root),
		zap.String("locale", loc.Tag().String()))

	return &repo{
		root:      root,
		cfg:       cfg,
		logger:    logger,
		ledger:    ledger.NewService(root, opts...),
		localizer: loc,
	}, nil
}

func (r *repo) Close() {
	_ = r.logger.Sync()
}
