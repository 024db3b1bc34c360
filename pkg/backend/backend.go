package backend

import "context"

// UploadResponse is the body of POST /upload.
type UploadResponse struct {
	Message  string `json:"message,omitempty"`
	Filename string `json:"filename"`
}

type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse is the body of POST /chat.
type ChatResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Backend defines the contract of the remote PDF question-answering service
type Backend interface {
	// Upload sends the file as multipart field "pdf".
	Upload(ctx context.Context, name string, data []byte) Result[UploadResponse]

	// Chat posts a question about the current document.
	Chat(ctx context.Context, query string) Result[ChatResponse]

	// FetchPDF downloads the stored document for the viewer.
	FetchPDF(ctx context.Context, filename string) ([]byte, error)

	// PDFURL is where the backend serves the stored document.
	PDFURL(filename string) string
}
