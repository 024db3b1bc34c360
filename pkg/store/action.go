package store

// Action is a message that moves the session from one state to the next.
type Action interface {
	ActionName() string
}

type UploadRequested struct{}

type UploadSucceeded struct {
	FileName  string
	PageCount int
}

// UploadFailed settles the upload request in flight with the message shown
// under the upload form.
type UploadFailed struct {
	Message string
}

// UploadInvalid reports a submit rejected before any request was made. It
// does not settle an upload that may already be running.
type UploadInvalid struct {
	Message string
}

type ChatSubmitted struct {
	Text string
}

// ChatAnswered completes the chat request started in Generation.
type ChatAnswered struct {
	Generation int
	Text       string
}

// ChatFailed completes the chat request started in Generation with an error bubble.
type ChatFailed struct {
	Generation int
	Text       string
}

const (
	ActionUploadRequested = "upload_requested"
	ActionUploadSucceeded = "upload_succeeded"
	ActionUploadFailed    = "upload_failed"
	ActionUploadInvalid   = "upload_invalid"
	ActionChatSubmitted   = "chat_submitted"
	ActionChatAnswered    = "chat_answered"
	ActionChatFailed      = "chat_failed"
)

func (UploadRequested) ActionName() string { return ActionUploadRequested }
func (UploadSucceeded) ActionName() string { return ActionUploadSucceeded }
func (UploadFailed) ActionName() string    { return ActionUploadFailed }
func (UploadInvalid) ActionName() string   { return ActionUploadInvalid }
func (ChatSubmitted) ActionName() string   { return ActionChatSubmitted }
func (ChatAnswered) ActionName() string    { return ActionChatAnswered }
func (ChatFailed) ActionName() string      { return ActionChatFailed }
