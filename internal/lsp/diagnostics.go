package lsp

import (
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gotox/grammar"
	"gotox/internal/errors"
	"gotox/internal/pipeline"
	"gotox/internal/program"
)

const diagnosticSource = "gotox"

// analyze loads source and collects everything wrong with it. Load failures
// end the analysis; otherwise closure and type problems are reported, and a
// table free of those is run through the mode's passes so lowering failures
// surface as warnings.
func (h *Handler) analyze(path, source string) ([]protocol.Diagnostic, *program.SymbolTable) {
	lines := strings.Split(source, "\n")
	diagnostics := []protocol.Diagnostic{}

	table, err := grammar.Load(path, source)
	if err != nil {
		return append(diagnostics, ConvertError(err, lines, protocol.DiagnosticSeverityError)), nil
	}

	opts := h.opts
	opts.CheckTypes = true
	for _, pe := range pipeline.Diagnose(table, opts) {
		diagnostics = append(diagnostics, ConvertPipelineError(pe, lines, protocol.DiagnosticSeverityError))
	}
	if len(diagnostics) > 0 {
		return diagnostics, table
	}

	p, err := pipeline.New(h.mode, h.opts)
	if err != nil {
		return append(diagnostics, ConvertError(err, lines, protocol.DiagnosticSeverityError)), table
	}
	if _, err := p.Run(table); err != nil {
		diag := ConvertError(err, lines, protocol.DiagnosticSeverityWarning)
		diag.Message = "mode " + string(h.mode) + ": " + diag.Message
		diagnostics = append(diagnostics, diag)
	}
	return diagnostics, table
}

// ConvertError turns any error into a diagnostic; unstructured errors land on
// the first line.
func ConvertError(err error, lines []string, severity protocol.DiagnosticSeverity) protocol.Diagnostic {
	if pe, ok := errors.As(err); ok {
		return ConvertPipelineError(pe, lines, severity)
	}
	return protocol.Diagnostic{
		Range:    lineRange(lines, 1, 1),
		Severity: ptrSeverity(severity),
		Source:   ptrString(diagnosticSource),
		Message:  err.Error(),
	}
}

// ConvertPipelineError places a pipeline error at its location. The range runs
// from the column to the end of the line; errors without a line go to the top.
func ConvertPipelineError(pe *errors.PipelineError, lines []string, severity protocol.DiagnosticSeverity) protocol.Diagnostic {
	message := pe.Message
	if pe.Symbol != "" {
		message = "symbol '" + pe.Symbol + "': " + message
	}
	for _, s := range pe.Suggestions {
		message += "\n" + s
	}

	return protocol.Diagnostic{
		Range:    lineRange(lines, pe.Location.Line, pe.Location.Column),
		Severity: ptrSeverity(severity),
		Code:     &protocol.IntegerOrString{Value: pe.Code},
		Source:   ptrString(diagnosticSource),
		Message:  message,
	}
}

func lineRange(lines []string, line, column int) protocol.Range {
	if line < 1 || line > len(lines) {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	end := uint32(0)
	if line <= len(lines) {
		end = uint32(utf8.RuneCountInString(strings.TrimRight(lines[line-1], "\r")))
	}
	start := uint32(column - 1)
	if end < start {
		end = start
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line - 1), Character: start},
		End:   protocol.Position{Line: uint32(line - 1), Character: end},
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
