package view

import (
	"bytes"
	"io/fs"
	"testing"

	"smart-pdf-assistant/internal/dto"
	"smart-pdf-assistant/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, s store.Session) string {
	t.Helper()
	page, err := NewPage()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf, dto.NewSessionResponse(s)))
	return buf.String()
}

func TestRender_UploadForm(t *testing.T) {
	s := store.NewSession()
	s.UploadError = "Please select a PDF file to upload."

	html := render(t, s)

	assert.Contains(t, html, `<div class="landing-page" id="landing" >`)
	assert.Contains(t, html, "Please select a PDF file to upload.")
	assert.Contains(t, html, "Upload PDF")
	assert.Contains(t, html, `<div class="main-content" id="main" hidden>`)
}

func TestRender_ViewerAndTranscript(t *testing.T) {
	s := store.NewSession()
	s.State = store.StateDocumentLoaded
	s.PdfFileName = "my report.pdf"
	s.PageCount = 12
	s.Generation = 2
	s.LoadingAnswer = true
	s.ChatHistory = []store.ChatMessage{
		{Sender: store.SenderUser, Text: "<b>bold?</b>"},
		{Sender: store.SenderBot, Text: "plain"},
	}

	html := render(t, s)

	assert.Contains(t, html, `src="/pdf/my%20report.pdf?g=2"`)
	assert.Contains(t, html, "12 pages")
	assert.Contains(t, html, `<div class="chat-message user">&lt;b&gt;bold?&lt;/b&gt;</div>`)
	assert.Contains(t, html, `<div class="chat-message bot">plain</div>`)
	assert.Contains(t, html, `<p class="loading-msg" id="typing" >Assistant is typing...</p>`)
	assert.Contains(t, html, `<div class="landing-page" id="landing" hidden>`)
}

func TestStatic_ContainsAssets(t *testing.T) {
	for _, name := range []string{"app.js", "app.css"} {
		_, err := fs.Stat(Static(), name)
		assert.NoError(t, err, name)
	}
}
