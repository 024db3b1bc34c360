package service

import (
	"context"
	"errors"
	"sync"

	"smart-pdf-assistant/pkg/backend"
)

// fakeBackend returns canned results and records every call.
type fakeBackend struct {
	mu sync.Mutex

	uploadResult backend.Result[backend.UploadResponse]
	chatResult   backend.Result[backend.ChatResponse]

	// onUpload and onChat run inside the call before it returns, to
	// interleave other work while the request is in flight.
	onUpload func()
	onChat   func()

	uploadCalls []string
	chatCalls   []string
}

var _ backend.Backend = &fakeBackend{}

func (f *fakeBackend) Upload(_ context.Context, name string, _ []byte) backend.Result[backend.UploadResponse] {
	f.mu.Lock()
	f.uploadCalls = append(f.uploadCalls, name)
	hook := f.onUpload
	res := f.uploadResult
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return res
}

func (f *fakeBackend) Chat(_ context.Context, query string) backend.Result[backend.ChatResponse] {
	f.mu.Lock()
	f.chatCalls = append(f.chatCalls, query)
	hook := f.onChat
	res := f.chatResult
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return res
}

func (f *fakeBackend) FetchPDF(context.Context, string) ([]byte, error) {
	return nil, errors.New("not used")
}

func (f *fakeBackend) PDFURL(filename string) string {
	return "http://backend.test/pdf/" + filename
}

func (f *fakeBackend) setUpload(res backend.Result[backend.UploadResponse]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadResult = res
}

func (f *fakeBackend) uploads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploadCalls)
}

func (f *fakeBackend) chats() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chatCalls)
}
