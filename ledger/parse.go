package ledger

import (
	"context"
	"log/slog"

	"github.com/robinvdvleuten/ptaledger/ast"
	"github.com/robinvdvleuten/ptaledger/builder"
	"github.com/robinvdvleuten/ptaledger/parser"
	"github.com/robinvdvleuten/ptaledger/telemetry"
)

type config struct {
	logger *slog.Logger
}

// Option configures Parse.
type Option func(*config)

// WithLogger sets the logger used while building entries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Parse parses a whole ledger document. The context only carries telemetry;
// parsing runs to completion once started.
func Parse(ctx context.Context, text string, opts ...Option) (*ParsedLedger, error) {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, timer := telemetry.StartTimer(ctx, "ledger.parse")
	defer timer.End()

	_, treeTimer := telemetry.StartTimer(ctx, "parse tree")
	root, err := parser.Parse(parser.RuleLedger, text)
	treeTimer.End()
	if err != nil {
		cfg.logger.Debug("syntax error", "error", err)
		return nil, err
	}

	_, buildTimer := telemetry.StartTimer(ctx, "build")
	defer buildTimer.End()

	l := &ParsedLedger{}
	b := builder.New(builder.WithLogger(cfg.logger))
	err = b.Build(root, func(e ast.Entry) error {
		l.append(e)
		return nil
	})
	if err != nil {
		cfg.logger.Debug("structural error", "error", err)
		return nil, err
	}

	cfg.logger.Debug("parsed ledger", "entries", l.Len())
	return l, nil
}
