package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"gotox/internal/program"
)

// PipelineError is the structured error every pass and the orchestrator report.
type PipelineError struct {
	Kind        Kind
	Code        string
	Message     string
	Pass        string // failing pass, empty for input validation
	Symbol      string // symbol being transformed or holding the reference
	Construct   string // node kind for unsupported constructs
	Reference   string // dangling name for unresolved references
	Location    program.Location
	Suggestions []string
	Notes       []string
}

func (e *PipelineError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] ", e.Code))
	if e.Pass != "" {
		b.WriteString(e.Pass + ": ")
	}
	if e.Symbol != "" {
		b.WriteString(fmt.Sprintf("symbol %q: ", e.Symbol))
	}
	b.WriteString(e.Message)
	return b.String()
}

// Is matches another *PipelineError of the same kind, so errors.Is works with the
// sentinel values below.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	return ok && t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrUnresolvedReference    = &PipelineError{Kind: KindUnresolvedReference}
	ErrNameCollisionExhausted = &PipelineError{Kind: KindNameCollisionExhausted}
	ErrUnsupportedConstruct   = &PipelineError{Kind: KindUnsupportedConstruct}
	ErrDuplicateSymbol        = &PipelineError{Kind: KindDuplicateSymbol}
	ErrTypeInconsistency      = &PipelineError{Kind: KindTypeInconsistency}
	ErrUnknownMode            = &PipelineError{Kind: KindUnknownMode}
)

// As extracts the PipelineError from an error chain.
func As(err error) (*PipelineError, bool) {
	var pe *PipelineError
	if stderrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// PipelineErrorBuilder provides a fluent interface for creating pipeline errors
type PipelineErrorBuilder struct {
	err PipelineError
}

// NewPipelineError starts an error of the given kind
func NewPipelineError(kind Kind, message string) *PipelineErrorBuilder {
	return &PipelineErrorBuilder{
		err: PipelineError{
			Kind:    kind,
			Code:    codeOf[kind],
			Message: message,
		},
	}
}

func (b *PipelineErrorBuilder) WithPass(pass string) *PipelineErrorBuilder {
	b.err.Pass = pass
	return b
}

func (b *PipelineErrorBuilder) WithSymbol(name string) *PipelineErrorBuilder {
	b.err.Symbol = name
	return b
}

func (b *PipelineErrorBuilder) WithLocation(loc program.Location) *PipelineErrorBuilder {
	b.err.Location = loc
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *PipelineErrorBuilder) WithSuggestion(message string) *PipelineErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, message)
	return b
}

// WithNote adds a note to the error
func (b *PipelineErrorBuilder) WithNote(note string) *PipelineErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// Build returns the completed error
func (b *PipelineErrorBuilder) Build() *PipelineError {
	err := b.err
	return &err
}

// UnresolvedReference reports a name that no key of the table matches. Known names
// feed the "did you mean" suggestion.
func UnresolvedReference(from, reference string, known []string) *PipelineError {
	builder := NewPipelineError(KindUnresolvedReference,
		fmt.Sprintf("reference to unknown symbol '%s'", reference)).
		WithSymbol(from)
	builder.err.Reference = reference

	similar := findSimilarNames(reference, known)
	switch len(similar) {
	case 0:
		builder = builder.WithNote("the table handed to the pipeline must be referentially closed")
	case 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}
	return builder.Build()
}

// NameCollisionExhausted reports that no suffix was left for base.
func NameCollisionExhausted(symbol, base string) *PipelineError {
	return NewPipelineError(KindNameCollisionExhausted,
		fmt.Sprintf("no free name derived from '%s'", base)).
		WithSymbol(symbol).
		Build()
}

// UnsupportedConstruct reports a node kind the pass cannot lower. The symbol is
// filled in by the traversal when left empty.
func UnsupportedConstruct(pass, construct, detail string) *PipelineError {
	msg := fmt.Sprintf("cannot lower %s", construct)
	if detail != "" {
		msg += ": " + detail
	}
	err := NewPipelineError(KindUnsupportedConstruct, msg).
		WithPass(pass).
		WithNote("the same table may still be processed under a different mode").
		Build()
	err.Construct = construct
	return err
}

// DuplicateSymbol reports a second definition of name.
func DuplicateSymbol(name string, loc program.Location) *PipelineError {
	return NewPipelineError(KindDuplicateSymbol, fmt.Sprintf("symbol '%s' is already defined", name)).
		WithSymbol(name).
		WithLocation(loc).
		Build()
}

// TypeInconsistency wraps a mismatch found by program.CheckTypes.
func TypeInconsistency(pass string, m program.TypeMismatch) *PipelineError {
	return NewPipelineError(KindTypeInconsistency,
		fmt.Sprintf("%s has type %s, expected %s", m.Node, m.Actual, m.Expected)).
		WithPass(pass).
		WithSymbol(m.Symbol).
		Build()
}

// InvalidInput reports a malformed textual symbol table.
func InvalidInput(message string, loc program.Location) *PipelineError {
	return NewPipelineError(KindInvalidInput, message).WithLocation(loc).Build()
}

// UnknownMode reports a mode the orchestrator has no pass list for.
func UnknownMode(mode string, known []string) *PipelineError {
	builder := NewPipelineError(KindUnknownMode, fmt.Sprintf("unknown mode '%s'", mode))
	if similar := findSimilarNames(mode, known); len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	}
	return builder.WithNote("available modes: " + strings.Join(known, ", ")).Build()
}

// findSimilarNames returns candidates within a small edit distance of target,
// closest first.
func findSimilarNames(target string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	limit := 2
	if len(target) > 12 {
		limit = len(target) / 6
	}
	var hits []scored
	for _, c := range candidates {
		if c == target {
			continue
		}
		if d := levenshtein.Distance(target, c, nil); d <= limit {
			hits = append(hits, scored{c, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	if len(hits) > 3 {
		hits = hits[:3]
	}
	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.name
	}
	return names
}
