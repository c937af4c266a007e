package lsp

// These mirror the small slice of the LSP type vocabulary §6 actually
// exercises: text-document open/change/save and diagnostics publishing.
// Field names match the protocol's camelCase wire format exactly since
// these are decoded/encoded with plain encoding/json, no custom tags
// needed beyond what's written here.

type position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type lspRange struct {
	Start position `json:"start"`
	End   position `json:"end"`
}

type diagnosticRelatedInformation struct {
	Location struct {
		URI   string   `json:"uri"`
		Range lspRange `json:"range"`
	} `json:"location"`
	Message string `json:"message"`
}

type lspDiagnostic struct {
	Range              lspRange                        `json:"range"`
	Severity           int                             `json:"severity,omitempty"`
	Source             string                          `json:"source"`
	Message            string                           `json:"message"`
	RelatedInformation []diagnosticRelatedInformation  `json:"relatedInformation,omitempty"`
}

const (
	severityError       = 1
	severityWarning     = 2
	severityInformation = 3
	severityHint        = 4
)

type textDocumentItem struct {
	URI  string `json:"uri"`
	Text string `json:"text"`
}

type didOpenParams struct {
	TextDocument textDocumentItem `json:"textDocument"`
}

type versionedTextDocumentIdentifier struct {
	URI string `json:"uri"`
}

type contentChange struct {
	Text string `json:"text"`
}

type didChangeParams struct {
	TextDocument   versionedTextDocumentIdentifier `json:"textDocument"`
	ContentChanges []contentChange                 `json:"contentChanges"`
}

type didSaveParams struct {
	TextDocument versionedTextDocumentIdentifier `json:"textDocument"`
	Text         string                          `json:"text,omitempty"`
}

type publishDiagnosticsParams struct {
	URI         string          `json:"uri"`
	Diagnostics []lspDiagnostic `json:"diagnostics"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type textDocumentSyncOptions struct {
	OpenClose bool `json:"openClose"`
	Change    int  `json:"change"`
	Save      bool `json:"save"`
}

type serverCapabilities struct {
	TextDocumentSync textDocumentSyncOptions `json:"textDocumentSync"`
}

type initializeResult struct {
	ServerInfo   serverInfo         `json:"serverInfo"`
	Capabilities serverCapabilities `json:"capabilities"`
}

const textDocumentSyncKindFull = 1
