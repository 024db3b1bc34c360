package store

import "time"

// Sender identifies who authored a chat message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one entry of the transcript. Never edited after it is appended.
type ChatMessage struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// State is the top-level screen the session is on
type State string

const (
	StateNoDocument     State = "NO_DOCUMENT"
	StateDocumentLoaded State = "DOCUMENT_LOADED"
)

// Session represents the whole client state held in memory
type Session struct {
	State       State  `json:"state"`
	PdfFileName string `json:"pdf_file_name,omitempty"`
	PageCount   int    `json:"page_count,omitempty"`

	// Upload form
	Uploading   bool   `json:"uploading"`
	UploadError string `json:"upload_error,omitempty"`

	// Chat panel
	LoadingAnswer bool          `json:"loading_answer"`
	Query         string        `json:"query"`
	ChatHistory   []ChatMessage `json:"chat_history"`

	// Generation counts successful uploads. Chat requests are tagged with it.
	Generation int `json:"generation"`

	// Version increases with every accepted transition; pages drop older snapshots.
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns the initial state: no document, empty transcript.
func NewSession() Session {
	return Session{
		State:       StateNoDocument,
		ChatHistory: []ChatMessage{},
	}
}

// HasDocument reports whether a PDF has been accepted by the backend.
func (s Session) HasDocument() bool {
	return s.State == StateDocumentLoaded && s.PdfFileName != ""
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	c := s
	c.ChatHistory = make([]ChatMessage, len(s.ChatHistory))
	copy(c.ChatHistory, s.ChatHistory)
	return c
}
