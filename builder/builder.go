// Package builder turns parse trees into ledger records.
//
// The builder walks a tree top-down and dispatches on the rule of each node.
// Every rule has exactly one action: it is ignored, its children are visited,
// it constructs an entry, or it is a component that only makes sense inside
// an entry. Entries are built in a single step once all of their children
// have been converted, and are handed to the caller in document order.
package builder

import (
	"log/slog"

	"github.com/robinvdvleuten/ptaledger/ast"
	"github.com/robinvdvleuten/ptaledger/parser"
)

type action uint8

const (
	actionUnmapped action = iota
	actionIgnore
	actionRecurse
	actionConstruct
	actionComponent
)

// actions assigns an action to every rule. A rule left at actionUnmapped is
// reported as a StructuralError when it is encountered.
var actions = [parser.NumRules]action{
	parser.RuleLedger: actionRecurse,

	parser.RuleWhitespace:       actionIgnore,
	parser.RuleEmptyLine:        actionIgnore,
	parser.RuleEOI:              actionIgnore,
	parser.RuleCommentOrNewline: actionIgnore,
	parser.RuleComment:          actionIgnore,
	parser.RuleHeading:          actionIgnore,

	parser.RuleTransactionBlock:   actionConstruct,
	parser.RuleTransHeader:        actionConstruct,
	parser.RuleDirectiveOpen:      actionConstruct,
	parser.RuleDirectiveClose:     actionConstruct,
	parser.RuleDirectiveCommodity: actionConstruct,
	parser.RuleBalanceDirective:   actionConstruct,
	parser.RuleOptionDirective:    actionConstruct,

	parser.RuleStringLiteral:        actionComponent,
	parser.RuleCurrency:             actionComponent,
	parser.RuleTransAnnotation:      actionComponent,
	parser.RuleTransDescription:     actionComponent,
	parser.RuleTransDescriptionText: actionComponent,
	parser.RulePostingBasic:         actionComponent,
	parser.RulePostingIndent:        actionComponent,
	parser.RuleAccountDescriptor:    actionComponent,
	parser.RuleTopLevelAcct:         actionComponent,
	parser.RuleSubAcct:              actionComponent,
	parser.RuleAcctSeparator:        actionComponent,
	parser.RuleDecimalValue:         actionComponent,
	parser.RuleDate:                 actionComponent,
}

func actionFor(r parser.Rule) action {
	if r >= parser.NumRules {
		return actionUnmapped
	}
	return actions[r]
}

// Builder converts parse trees into entries. A Builder is not safe for
// concurrent use; create one per parse.
type Builder struct {
	logger   *slog.Logger
	interner *Interner
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger that receives a debug record per visited node.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithInterner shares an interner between builders.
func WithInterner(interner *Interner) Option {
	return func(b *Builder) {
		if interner != nil {
			b.interner = interner
		}
	}
}

// New creates a Builder with the given options.
func New(opts ...Option) *Builder {
	b := &Builder{
		logger:   slog.New(slog.DiscardHandler),
		interner: NewInterner(256),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build walks the tree rooted at root and calls yield with every entry in
// document order. The first error, from the tree or from yield, stops the
// walk and is returned.
func (b *Builder) Build(root *parser.Node, yield func(ast.Entry) error) error {
	return b.visit(root, yield)
}

func (b *Builder) visit(n *parser.Node, yield func(ast.Entry) error) error {
	act := actionFor(n.Rule)
	b.logger.Debug("visit", "rule", n.Rule, "pos", n.Pos, "action", act)

	switch act {
	case actionIgnore:
		return nil

	case actionRecurse:
		for _, c := range n.Children {
			if err := b.visit(c, yield); err != nil {
				return err
			}
		}
		return nil

	case actionConstruct:
		entry, err := b.construct(n)
		if err != nil {
			return err
		}
		return yield(entry)

	case actionComponent:
		return newStructuralError(n, nil, "%s cannot appear outside of an entry", n.Rule)

	default:
		return newStructuralError(n, nil, "no conversion defined for rule %s", n.Rule)
	}
}

func (b *Builder) construct(n *parser.Node) (ast.Entry, error) {
	switch n.Rule {
	case parser.RuleTransactionBlock, parser.RuleTransHeader:
		return b.Transaction(n)
	case parser.RuleDirectiveOpen:
		return b.open(n)
	case parser.RuleDirectiveClose:
		return b.close(n)
	case parser.RuleDirectiveCommodity:
		return b.commodity(n)
	case parser.RuleBalanceDirective:
		return b.balance(n)
	case parser.RuleOptionDirective:
		return b.option(n)
	}
	return nil, newStructuralError(n, nil, "no constructor for rule %s", n.Rule)
}

func (a action) String() string {
	switch a {
	case actionIgnore:
		return "ignore"
	case actionRecurse:
		return "recurse"
	case actionConstruct:
		return "construct"
	case actionComponent:
		return "component"
	}
	return "unmapped"
}
