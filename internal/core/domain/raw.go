package domain

// RawDocument is unprocessed content handed to a normaliser.
// Content is opaque bytes; MIMEType tells the registry which
// normaliser understands them.
type RawDocument struct {
	// URI locates the content: a file path or URL.
	URI string

	// MIMEType describes the content encoding, e.g. "text/html".
	MIMEType string

	// Content is the raw payload.
	Content []byte

	// Metadata carries provenance hints for the normaliser.
	Metadata map[string]string
}

// ChangeType describes what happened to a watched document.
type ChangeType string

// Change types emitted by watchers.
const (
	// ChangeCreated indicates a new document appeared.
	ChangeCreated ChangeType = "created"

	// ChangeUpdated indicates an existing document's content changed.
	ChangeUpdated ChangeType = "updated"

	// ChangeRemoved indicates a document disappeared.
	ChangeRemoved ChangeType = "removed"
)

// RawDocumentChange is a watcher event for one document.
type RawDocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Document is the affected document. For ChangeRemoved only
	// the URI is meaningful.
	Document RawDocument
}
