package lsp

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/oxvg/oxvg-go/internal/config"
	"github.com/oxvg/oxvg-go/internal/diagnostic"
	"github.com/oxvg/oxvg-go/internal/lint"
	"github.com/oxvg/oxvg-go/internal/log"
)

const serverName = "oxvg lint"

// Server is the lint-serve backend: one JSON-RPC connection and the active
// lint.Config (reloaded live when the watched config file changes). It
// keeps no table of open documents.
type Server struct {
	conn       *conn
	cfg        lint.Config
	configPath string
	version    string
}

// NewServer builds a Server that lints with cfgPath's rules (or
// lint.DefaultConfig() when cfgPath is empty), speaking JSON-RPC over
// r/w (§6 "lint serve ... speaks LSP on stdio").
func NewServer(r io.Reader, w io.Writer, cfgPath, version string) (*Server, error) {
	cfg := lint.DefaultConfig()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded.Lint.Severities()
	}
	return &Server{conn: newConn(r, w), cfg: cfg, configPath: cfgPath, version: version}, nil
}

// Serve runs the read-dispatch loop until the connection closes or
// shutdown is requested. If s.configPath is set, a background fsnotify
// watch reloads s.cfg whenever the file changes on disk, so `lint serve`
// picks up edits to the project's lint config without a restart.
func (s *Server) Serve() error {
	stop := s.watchConfig()
	defer stop()

	for {
		msg, err := s.conn.readMessage()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := s.dispatch(msg); err != nil {
			log.Default().Error("lsp: handling " + msg.Method + ": " + err.Error())
		}
		if msg.Method == "exit" {
			return nil
		}
	}
}

func (s *Server) watchConfig() func() {
	if s.configPath == "" {
		return func() {}
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return func() {}
	}
	if err := watcher.Add(filepath.Dir(s.configPath)); err != nil {
		watcher.Close()
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(s.configPath) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				loaded, err := config.Load(s.configPath)
				if err != nil {
					log.Default().Error("lsp: reloading config: " + err.Error())
					continue
				}
				s.cfg = loaded.Lint.Severities()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Default().Error("lsp: watcher: " + err.Error())
			case <-done:
				return
			}
		}
	}()
	return func() {
		close(done)
		watcher.Close()
	}
}

func (s *Server) dispatch(msg message) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized", "$/cancelRequest":
		return nil
	case "textDocument/didOpen":
		var p didOpenParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return err
		}
		return s.lint(p.TextDocument.URI, p.TextDocument.Text)
	case "textDocument/didChange":
		var p didChangeParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return err
		}
		if len(p.ContentChanges) == 0 {
			return nil
		}
		return s.lint(p.TextDocument.URI, p.ContentChanges[len(p.ContentChanges)-1].Text)
	case "textDocument/didSave":
		var p didSaveParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return err
		}
		if p.Text == "" {
			return nil
		}
		return s.lint(p.TextDocument.URI, p.Text)
	case "shutdown":
		return s.conn.reply(msg.ID, nil)
	default:
		if msg.ID != nil {
			return s.conn.replyError(msg.ID, -32601, "method not found: "+msg.Method)
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg message) error {
	result := initializeResult{
		ServerInfo: serverInfo{Name: serverName, Version: s.version},
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    textDocumentSyncKindFull,
				Save:      true,
			},
		},
	}
	return s.conn.reply(msg.ID, result)
}

// lint runs the lint rule set over source and publishes the resulting
// diagnostics, converting each diagnostic.Diagnostic's byte range to an
// LSP 0-based line/column pair.
func (s *Server) lint(uri, source string) error {
	path := uriToPath(uri)
	report, err := lint.Run(source, path, s.cfg)
	if err != nil {
		return s.conn.notify("textDocument/publishDiagnostics", publishDiagnosticsParams{URI: uri})
	}
	diags := make([]lspDiagnostic, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		diags = append(diags, toLSPDiagnostic(d, source, uri))
	}
	return s.conn.notify("textDocument/publishDiagnostics", publishDiagnosticsParams{URI: uri, Diagnostics: diags})
}

func toLSPDiagnostic(d diagnostic.Diagnostic, source, uri string) lspDiagnostic {
	r := lspRange{Start: offsetToPosition(source, d.Start), End: offsetToPosition(source, d.End)}
	out := lspDiagnostic{
		Range:   r,
		Source:  serverName,
		Message: d.Message,
	}
	switch d.Severity {
	case diagnostic.SeverityError:
		out.Severity = severityError
	case diagnostic.SeverityWarn:
		out.Severity = severityWarning
	}
	if d.Advice != "" {
		rel := diagnosticRelatedInformation{Message: d.Advice}
		rel.Location.URI = uri
		rel.Location.Range = r
		out.RelatedInformation = []diagnosticRelatedInformation{rel}
	}
	return out
}

// offsetToPosition converts a byte offset to a 0-based LSP line/character
// pair, matching Ranges::to_line_and_col in the original Rust server.
func offsetToPosition(source string, offset int) position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	line := strings.Count(source[:offset], "\n")
	lastNL := strings.LastIndexByte(source[:offset], '\n')
	return position{Line: line, Character: offset - lastNL - 1}
}

func uriToPath(uri string) string {
	const filePrefix = "file://"
	if strings.HasPrefix(uri, filePrefix) {
		return strings.TrimPrefix(uri, filePrefix)
	}
	return uri
}
