package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUploadInProgress = errors.New("upload already in progress")
	ErrAnswerPending    = errors.New("an answer is still pending")
	ErrNoDocument       = errors.New("no PDF loaded")
	ErrEmptyQuery       = errors.New("query is empty")
)

// Reduce applies a to s and returns the next session. s is never modified.
// Guard errors leave the session untouched.
func Reduce(s Session, a Action) (Session, error) {
	next := s.Clone()

	switch act := a.(type) {
	case UploadRequested:
		if s.Uploading {
			return s, ErrUploadInProgress
		}
		next.Uploading = true
		next.UploadError = ""

	case UploadSucceeded:
		next.State = StateDocumentLoaded
		next.PdfFileName = act.FileName
		next.PageCount = act.PageCount
		next.ChatHistory = []ChatMessage{}
		next.UploadError = ""
		next.Uploading = false
		next.Generation++

	case UploadFailed:
		next.UploadError = act.Message
		next.Uploading = false

	case UploadInvalid:
		next.UploadError = act.Message

	case ChatSubmitted:
		switch {
		case !s.HasDocument():
			return s, ErrNoDocument
		case s.LoadingAnswer:
			return s, ErrAnswerPending
		case strings.TrimSpace(act.Text) == "":
			return s, ErrEmptyQuery
		}
		next.ChatHistory = append(next.ChatHistory, ChatMessage{Sender: SenderUser, Text: act.Text})
		next.LoadingAnswer = true
		next.Query = act.Text

	case ChatAnswered:
		completeChat(&next, act.Generation, act.Text)

	case ChatFailed:
		completeChat(&next, act.Generation, act.Text)

	default:
		return s, fmt.Errorf("unknown action %T", a)
	}

	return next, nil
}

// completeChat appends the bot reply unless a newer upload has reset the
// transcript since the request was sent. The busy flag and the input buffer
// are released either way.
func completeChat(next *Session, generation int, text string) {
	if generation == next.Generation {
		next.ChatHistory = append(next.ChatHistory, ChatMessage{Sender: SenderBot, Text: text})
	}
	next.LoadingAnswer = false
	next.Query = ""
}
