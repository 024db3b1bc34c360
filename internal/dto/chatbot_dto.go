package dto

import (
	"net/url"
	"strconv"

	"smart-pdf-assistant/pkg/store"
)

// SelectedFile is the file picked in the upload form. A nil *SelectedFile means
// nothing was selected.
type SelectedFile struct {
	Name string `validate:"required"`
	Data []byte
}

type SendChatRequest struct {
	Query string `json:"query"`
}

// SessionResponse is what the page renders from, over HTTP and the websocket.
type SessionResponse struct {
	store.Session
	PdfURL string `json:"pdf_url,omitempty"`
}

// NewSessionResponse points the viewer at the local /pdf proxy route. The
// generation query changes on every upload so the page reloads the frame even
// when the same file name is uploaded again.
func NewSessionResponse(s store.Session) SessionResponse {
	res := SessionResponse{Session: s}
	if s.HasDocument() {
		res.PdfURL = "/pdf/" + url.PathEscape(s.PdfFileName) + "?g=" + strconv.Itoa(s.Generation)
	}
	return res
}

// SessionEvent is the websocket frame pushed after every transition.
type SessionEvent struct {
	Type   string          `json:"type"`
	Action string          `json:"action"`
	Data   SessionResponse `json:"data"`
}

const (
	SessionEventType = "session"
	// SnapshotAction tags the first frame a page receives after connecting.
	SnapshotAction = "snapshot"
)

type HealthResponse struct {
	State   string `json:"state"`
	Version int64  `json:"version"`
	Clients int    `json:"clients"`
}
