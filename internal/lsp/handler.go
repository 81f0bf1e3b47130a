// Package lsp implements a Language Server Protocol front end for MiniML,
// so editors get live diagnostics and hover types without shelling out to
// the CLI. It speaks the same parse-then-typecheck pipeline as the batch
// tools; it never compiles or runs a program, since doing that on every
// half-typed keystroke would be both wasteful and unsafe.
package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"miniml/internal/ast"
	"miniml/internal/pipeline"
)

// Handler implements the subset of the LSP the MiniML tooling supports:
// open/change/close tracking, publish-diagnostics, and hover-for-type.
type Handler struct {
	mu    sync.RWMutex
	docs  map[string]string
	types map[string]ast.Type
}

// NewHandler returns a Handler with empty document state.
func NewHandler() *Handler {
	return &Handler{
		docs:  make(map[string]string),
		types: make(map[string]ast.Type),
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: boolptr(true),
				Change:    syncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: boolptr(true),
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "miniml-lsp",
			Version: strptr("0.1.0"),
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.diagnoseAndPublish(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// TextDocumentSyncKindFull means each notification carries the whole
	// document as the final change's Text, whole-document replacement.
	last := params.ContentChanges[len(params.ContentChanges)-1]
	change, ok := last.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return fmt.Errorf("unexpected content-change shape %T", last)
	}
	h.diagnoseAndPublish(ctx, params.TextDocument.URI, change.Text)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.docs, path)
	delete(h.types, path)
	h.mu.Unlock()
	return nil
}

// TextDocumentHover reports the type of the whole program, since a MiniML
// document is a single expression rather than a sequence of declarations.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	ty, ok := h.types[path]
	h.mu.RUnlock()
	if !ok || ty == nil {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: ty.String(),
		},
	}, nil
}

func (h *Handler) diagnoseAndPublish(ctx *glsp.Context, uri protocol.DocumentUri, source string) {
	path, err := uriToPath(uri)
	if err != nil {
		return
	}

	_, ty, typeErrs, parseErr := pipeline.Diagnose(path, source)

	h.mu.Lock()
	h.docs[path] = source
	if parseErr == nil && len(typeErrs) == 0 {
		h.types[path] = ty
	} else {
		delete(h.types, path)
	}
	h.mu.Unlock()

	var diagnostics []protocol.Diagnostic
	if parseErr != nil {
		diagnostics = []protocol.Diagnostic{convertParseError(parseErr)}
	} else {
		diagnostics = convertCompilerErrors(typeErrs)
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func uriToPath(raw protocol.DocumentUri) (string, error) {
	u, err := url.Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", raw, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 2 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func syncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
