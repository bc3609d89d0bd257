package errors

// Error codes for the gotox pipeline
// These codes appear in CLI output and LSP diagnostics.
//
// Error code ranges:
// E0001-E0099: Pipeline errors
// E0100-E0199: Textual symbol-table format errors
// E0200-E0299: Driver and configuration errors

// Kind classifies a PipelineError.
type Kind string

const (
	KindUnresolvedReference    Kind = "UnresolvedReference"
	KindNameCollisionExhausted Kind = "NameCollisionExhausted"
	KindUnsupportedConstruct   Kind = "UnsupportedConstruct"
	KindDuplicateSymbol        Kind = "DuplicateSymbol"
	KindTypeInconsistency      Kind = "TypeInconsistency"
	KindInvalidInput           Kind = "InvalidInput"
	KindUnknownMode            Kind = "UnknownMode"
)

const (
	// E0001: A reference names no symbol of the table
	ErrorUnresolvedReference = "E0001"

	// E0002: No free suffix was left for a sanitized name
	ErrorNameCollisionExhausted = "E0002"

	// E0003: A pass cannot lower a construct for the active mode
	ErrorUnsupportedConstruct = "E0003"

	// E0004: Two symbols share a unique name
	ErrorDuplicateSymbol = "E0004"

	// E0005: Node type disagrees with the table
	ErrorTypeInconsistency = "E0005"

	// E0100: Malformed textual symbol table
	ErrorInvalidInput = "E0100"

	// E0200: Unknown output mode
	ErrorUnknownMode = "E0200"
)

// codeOf maps each kind to its code.
var codeOf = map[Kind]string{
	KindUnresolvedReference:    ErrorUnresolvedReference,
	KindNameCollisionExhausted: ErrorNameCollisionExhausted,
	KindUnsupportedConstruct:   ErrorUnsupportedConstruct,
	KindDuplicateSymbol:        ErrorDuplicateSymbol,
	KindTypeInconsistency:      ErrorTypeInconsistency,
	KindInvalidInput:           ErrorInvalidInput,
	KindUnknownMode:            ErrorUnknownMode,
}

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnresolvedReference:
		return "A symbol refers to a name that is not in the symbol table"
	case ErrorNameCollisionExhausted:
		return "No unique name could be derived for a symbol"
	case ErrorUnsupportedConstruct:
		return "The requested output mode cannot express this construct"
	case ErrorDuplicateSymbol:
		return "Two symbols were declared under the same name"
	case ErrorTypeInconsistency:
		return "An expression's declared type disagrees with the symbol table"
	case ErrorInvalidInput:
		return "The symbol table text could not be parsed"
	case ErrorUnknownMode:
		return "The requested output mode does not exist"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Pipeline"
	case code >= "E0100" && code < "E0200":
		return "Input"
	case code >= "E0200" && code < "E0300":
		return "Driver"
	default:
		return "Unknown"
	}
}

// IsUpstreamDefect reports whether errors of this kind point at the producer of the
// table rather than at the requested mode.
func IsUpstreamDefect(kind Kind) bool {
	switch kind {
	case KindUnresolvedReference, KindDuplicateSymbol, KindTypeInconsistency:
		return true
	}
	return false
}
