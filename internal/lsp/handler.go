package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gotox/internal/pipeline"
	"gotox/internal/program"
)

var log = commonlog.GetLogger("gotox.lsp")

// Handler implements the language server for textual symbol tables. Every open
// document is loaded, checked for closure and type consistency, and run through
// the passes of the configured mode.
type Handler struct {
	mode pipeline.Mode
	opts pipeline.Options

	mu      sync.RWMutex
	content map[string]string
	tables  map[string]*program.SymbolTable
}

// NewHandler creates a handler that checks documents against mode.
func NewHandler(mode pipeline.Mode, opts pipeline.Options) *Handler {
	return &Handler{
		mode:    mode,
		opts:    opts,
		content: make(map[string]string),
		tables:  make(map[string]*program.SymbolTable),
	}
}

// Initialize responds to the client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen loads the opened document and publishes its diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.update(ctx, params.TextDocument.URI, path, params.TextDocument.Text)
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	delete(h.content, path)
	delete(h.tables, path)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentDidChange applies the edits and republishes diagnostics.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.RLock()
	text := h.content[path]
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start, end := offset(text, c.Range.Start), offset(text, c.Range.End)
			if start > end {
				start, end = end, start
			}
			text = text[:start] + c.Text + text[end:]
		}
	}

	h.update(ctx, params.TextDocument.URI, path, text)
	return nil
}

// TextDocumentCompletion offers the keywords, the primitive types and the names
// defined by the document.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	table := h.tables[path]
	h.mu.RUnlock()

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(table),
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	rawURI := params.TextDocument.URI

	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, err
	}

	source, table, err := h.getOrLoad(ctx, rawURI, path)
	if err != nil {
		return nil, err
	}

	tokens := collectSemanticTokens(path, source, table)

	data := []uint32{}
	var prevLine, prevStart uint32

	// delta-line, delta-start encoding
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// getOrLoad returns the document's text and last good table, reading the file
// from disk when the client never opened it.
func (h *Handler) getOrLoad(ctx *glsp.Context, rawURI protocol.DocumentUri, path string) (string, *program.SymbolTable, error) {
	h.mu.RLock()
	source, ok := h.content[path]
	table := h.tables[path]
	h.mu.RUnlock()
	if ok {
		return source, table, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	h.update(ctx, rawURI, path, string(content))

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.content[path], h.tables[path], nil
}

// update stores the new text, analyzes it and publishes the result. A table
// that fails to load keeps the previous one for tokens and completion.
func (h *Handler) update(ctx *glsp.Context, rawURI protocol.DocumentUri, path, source string) {
	diagnostics, table := h.analyze(path, source)

	h.mu.Lock()
	h.content[path] = source
	if table != nil {
		h.tables[path] = table
	}
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, rawURI, diagnostics)
}

// offset returns the byte index of pos in text. Characters count runes; positions
// past the end of a line or of the text clamp to it.
func offset(text string, pos protocol.Position) int {
	index := 0
	for line := uint32(0); line < pos.Line; line++ {
		next := strings.IndexByte(text[index:], '\n')
		if next < 0 {
			return len(text)
		}
		index += next + 1
	}
	for char := uint32(0); char < pos.Character && index < len(text); char++ {
		if text[index] == '\n' {
			break
		}
		_, size := utf8.DecodeRuneInString(text[index:])
		index += size
	}
	return index
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	log.Debugf("sending %d diagnostic(s) for %s", len(diagnostics), uri)

	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
