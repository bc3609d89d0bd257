// Package pipeline selects and runs the transformation passes for an output mode.
package pipeline

import (
	"context"
	"fmt"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"gotox/internal/errors"
	"gotox/internal/program"
	"gotox/internal/transform"
)

var log = commonlog.GetLogger("gotox.pipeline")

// Mode names the consumer the table is prepared for.
type Mode string

const (
	// ModeGoto feeds the native model-checker format, which accepts the front
	// end's table as is.
	ModeGoto Mode = "goto"

	// ModeC feeds the C-like pretty printer.
	ModeC Mode = "c"

	// ModeDebug feeds the debug dump.
	ModeDebug Mode = "debug"
)

// Modes lists the known modes in a stable order.
func Modes() []Mode {
	return []Mode{ModeC, ModeDebug, ModeGoto}
}

func modeNames() []string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", errors.UnknownMode(name, modeNames())
}

// Options tune the passes a mode runs. The pass sequence itself is fixed per mode.
type Options struct {
	// NondetPrefix starts the names of synthesized nondet functions.
	NondetPrefix string

	// CheckTypes also verifies type consistency on input and after every pass.
	CheckTypes bool
}

func DefaultOptions() Options {
	return Options{NondetPrefix: transform.DefaultNondetPrefix}
}

var descriptions = map[string]string{
	"identity": "Rebuilds the table unchanged",
	"name":     "Rewrites names, components and labels into legal C identifiers",
	"expr":     "Lowers reinterpretations, rotations, implication and empty structs",
	"nondet":   "Replaces nondet values by calls to extern nondet functions",
}

// Describe returns a one-line description of a pass.
func Describe(pass string) string {
	return descriptions[pass]
}

// Passes returns the pass list of mode.
func Passes(mode Mode, opts Options) ([]transform.Transformer, error) {
	switch mode {
	case ModeGoto, ModeDebug:
		return []transform.Transformer{transform.NewIdentityTransformer()}, nil
	case ModeC:
		return []transform.Transformer{
			transform.NewNameTransformer(),
			transform.NewExprTransformer(),
			transform.NewNondetTransformer(opts.NondetPrefix),
		}, nil
	}
	return nil, errors.UnknownMode(string(mode), modeNames())
}

// Pipeline threads a table through a sequence of passes.
type Pipeline struct {
	mode   Mode
	opts   Options
	passes []transform.Transformer
}

// New creates the pipeline for mode.
func New(mode Mode, opts Options) (*Pipeline, error) {
	passes, err := Passes(mode, opts)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{mode: mode, opts: opts}
	for _, pass := range passes {
		p.AddPass(pass)
	}
	return p, nil
}

// AddPass appends a pass to the pipeline
func (p *Pipeline) AddPass(pass transform.Transformer) {
	p.passes = append(p.passes, pass)
}

func (p *Pipeline) Mode() Mode { return p.mode }

// PassNames returns the names of the passes in execution order.
func (p *Pipeline) PassNames() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	return names
}

// Run validates the input, runs every pass in order and validates after each.
// The first error aborts the run; no partially transformed table is returned.
func (p *Pipeline) Run(table *program.SymbolTable) (*program.SymbolTable, error) {
	log.Infof("running %d passes for mode %s on %d symbols", len(p.passes), p.mode, table.Len())

	if err := p.validate(table, ""); err != nil {
		log.Errorf("input rejected: %s", err)
		return nil, err
	}

	current := table
	for _, pass := range p.passes {
		log.Debugf("  - %s: %s", pass.Name(), Describe(pass.Name()))
		next, err := pass.Transform(current)
		if err != nil {
			log.Errorf("pass %s failed: %s", pass.Name(), err)
			return nil, err
		}
		if err := p.validate(next, pass.Name()); err != nil {
			log.Errorf("pass %s broke the table: %s", pass.Name(), err)
			return nil, err
		}
		log.Debugf("    %d symbols after %s", next.Len(), pass.Name())
		current = next
	}
	return current, nil
}

// validate checks referential closure, and type consistency when enabled. stage
// names the pass that produced the table, empty for the input.
func (p *Pipeline) validate(table *program.SymbolTable, stage string) error {
	if dangling := program.Unresolved(table); len(dangling) > 0 {
		ref := dangling[0]
		err := errors.UnresolvedReference(ref.From, ref.Identifier, table.Names())
		err.Pass = stage
		if sym, ok := table.Lookup(ref.From); ok {
			err.Location = sym.Location
		}
		if len(dangling) > 1 {
			err.Notes = append(err.Notes, fmt.Sprintf("%d more unresolved references", len(dangling)-1))
		}
		return err
	}
	if !p.opts.CheckTypes {
		return nil
	}
	if mismatches := program.CheckTypes(table); len(mismatches) > 0 {
		return errors.TypeInconsistency(stage, mismatches[0])
	}
	return nil
}

// Diagnose reports every unresolved reference of table and, when opts.CheckTypes
// is set, every type mismatch. It does not stop at the first problem.
func Diagnose(table *program.SymbolTable, opts Options) []*errors.PipelineError {
	var out []*errors.PipelineError
	names := table.Names()
	for _, ref := range program.Unresolved(table) {
		err := errors.UnresolvedReference(ref.From, ref.Identifier, names)
		if sym, ok := table.Lookup(ref.From); ok {
			err.Location = sym.Location
		}
		out = append(out, err)
	}
	if opts.CheckTypes {
		for _, m := range program.CheckTypes(table) {
			err := errors.TypeInconsistency("", m)
			if sym, ok := table.Lookup(m.Symbol); ok {
				err.Location = sym.Location
			}
			out = append(out, err)
		}
	}
	return out
}

// Run runs the default pipeline of mode on table.
func Run(mode Mode, table *program.SymbolTable) (*program.SymbolTable, error) {
	p, err := New(mode, DefaultOptions())
	if err != nil {
		return nil, err
	}
	return p.Run(table)
}

// RunAll runs independent tables concurrently, each with its own pipeline. Results
// keep the order of tables. The first failure cancels the rest.
func RunAll(ctx context.Context, mode Mode, opts Options, tables []*program.SymbolTable) ([]*program.SymbolTable, error) {
	if _, err := Passes(mode, opts); err != nil {
		return nil, err
	}
	results := make([]*program.SymbolTable, len(tables))
	g, ctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		i, table := i, table
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := New(mode, opts)
			if err != nil {
				return err
			}
			out, err := p.Run(table)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
