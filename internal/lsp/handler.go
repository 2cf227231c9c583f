package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"parsecheck/grammar"
	"parsecheck/internal/bridge"
	"parsecheck/internal/source"
)

var log = commonlog.GetLogger("parsecheck.lsp")

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"parameter",
	"keyword",
	"number",
	"operator",
	"comment",
}

// Define the set of supported semantic token modifiers
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
	"static",
	"deprecated",
	"abstract",
}

// Handler implements the LSP server handlers for mCRL2 specifications
// (.mcrl2) and modal formulas (.mcf).
type Handler struct {
	mu      sync.RWMutex
	content map[string]string

	bridge *bridge.Bridge
	// TypeCheck reports declaration and arity errors in addition to syntax
	// errors.
	TypeCheck bool
}

// NewHandler creates a handler that prints and checks through b. A nil b
// uses the default bridge.
func NewHandler(b *bridge.Bridge) *Handler {
	if b == nil {
		b = bridge.Default()
	}
	return &Handler{
		content: make(map[string]string),
		bridge:  b,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			DocumentFormattingProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: "parse-checker",
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen stores the document and publishes its diagnostics
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	h.setContent(params.TextDocument.URI, params.TextDocument.Text)
	h.publish(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

// TextDocumentDidChange replaces the document with the last full-text change
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	text, ok := "", false
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, ok = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			// Full sync is advertised, so a ranged change still carries the
			// whole text.
			text, ok = c.Text, true
		}
	}
	if !ok {
		return nil
	}

	h.setContent(params.TextDocument.URI, text)
	h.publish(ctx, params.TextDocument.URI, text)
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.content, params.TextDocument.URI)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentFormatting replaces the document with its pretty print. A
// document that does not parse, or that has comments the printer would drop,
// is left alone.
func (h *Handler) TextDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	text, err := h.getContent(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	if hasComments(text) {
		log.Debugf("not formatting %s: it has comments", params.TextDocument.URI)
		return []protocol.TextEdit{}, nil
	}

	printed, err := h.bridge.Print(modeOf(params.TextDocument.URI), text)
	if err != nil {
		log.Debugf("not formatting %s: %s", params.TextDocument.URI, err)
		return nil, nil
	}
	if printed == text {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{{
		Range:   protocol.Range{Start: protocol.Position{}, End: endOf(text)},
		NewText: printed,
	}}, nil
}

// hasComments reports whether text holds a "%" comment. Text that does not
// lex counts as commented.
func hasComments(text string) bool {
	tokens, err := grammar.TokenizeAll("", text)
	if err != nil {
		return true
	}
	for _, tok := range tokens {
		if tok.Type == grammar.CommentToken {
			return true
		}
	}
	return false
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	text, err := h.getContent(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens := collectSemanticTokens(text)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
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

func (h *Handler) setContent(uri, text string) {
	h.mu.Lock()
	h.content[uri] = text
	h.mu.Unlock()
}

// getContent returns the open document, or reads it from disk when the
// client never opened it.
func (h *Handler) getContent(uri string) (string, error) {
	h.mu.RLock()
	text, ok := h.content[uri]
	h.mu.RUnlock()
	if ok {
		return text, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return "", err
	}
	text, err = source.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return text, nil
}

func (h *Handler) publish(ctx *glsp.Context, uri, text string) {
	sendDiagnosticNotification(ctx, uri, h.diagnose(uri, text))
}

// modeOf picks the print mode from the document's extension.
func modeOf(uri string) bridge.Mode {
	switch strings.ToLower(filepath.Ext(uri)) {
	case ".mcf":
		return bridge.ModeFormula
	case ".qmcf":
		return bridge.ModeQuantitativeFormula
	}
	return bridge.ModeProcess
}

// endOf is the position just past the last character of text.
func endOf(text string) protocol.Position {
	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]
	return protocol.Position{Line: uint32(len(lines) - 1), Character: uint32(utf16Len(last))}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) to get C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	log.Debugf("sending %d diagnostics for %s", len(diagnostics), uri)

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
