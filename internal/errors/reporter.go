package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ErrorReporter handles consistent error formatting for the CLI
type ErrorReporter struct {
	sources map[string][]string
}

// NewErrorReporter creates a reporter. Sources registered with AddSource are used to
// print the offending line for errors that carry a location.
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{sources: make(map[string][]string)}
}

// AddSource registers the text of a loaded file.
func (er *ErrorReporter) AddSource(filename, source string) {
	er.sources[filename] = strings.Split(source, "\n")
}

// FormatError formats a pipeline error with Rust-like styling
func (er *ErrorReporter) FormatError(err *PipelineError) string {
	var result strings.Builder

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0001]: message
	result.WriteString(fmt.Sprintf("%s[%s]: %s\n", red("error"), err.Code, err.Message))

	indent := "   "
	if !err.Location.IsNone() {
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("-->"), err.Location))
		if line, ok := er.line(err.Location.File, err.Location.Line); ok {
			result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				bold(fmt.Sprintf("%3d", err.Location.Line)), dim("│"), line))
			if err.Location.Column > 0 {
				marker := strings.Repeat(" ", err.Location.Column-1) + "^"
				result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), red(marker)))
			}
		}
	}

	if err.Pass != "" {
		result.WriteString(fmt.Sprintf("%s %s pass: %s\n", indent, dim("│"), err.Pass))
	}
	if err.Symbol != "" {
		result.WriteString(fmt.Sprintf("%s %s symbol: %s\n", indent, dim("│"), err.Symbol))
	}

	suggestionColor := color.New(color.FgCyan).SprintFunc()
	for i, suggestion := range err.Suggestions {
		if i == 0 {
			result.WriteString(fmt.Sprintf("%s %s: %s\n", indent, suggestionColor("help"), suggestion))
		} else {
			result.WriteString(fmt.Sprintf("%s       %s\n", indent, suggestion))
		}
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note))
	}

	result.WriteString("\n")
	return result.String()
}

// Format renders any error; structured errors get the full layout.
func (er *ErrorReporter) Format(err error) string {
	if pe, ok := As(err); ok {
		return er.FormatError(pe)
	}
	return fmt.Sprintf("%s: %v\n", color.New(color.FgRed, color.Bold).Sprint("error"), err)
}

func (er *ErrorReporter) line(file string, n int) (string, bool) {
	lines, ok := er.sources[file]
	if !ok || n <= 0 || n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}
