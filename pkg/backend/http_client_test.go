package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_SendsMultipartPDFField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		f, hdr, err := r.FormFile("pdf")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "report.pdf", hdr.Filename)
		assert.Equal(t, "%PDF-1.4", string(data))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"PDF uploaded and processed","filename":"report.pdf"}`))
	}))
	defer srv.Close()

	res := NewHTTPClient(srv.URL, 0).Upload(context.Background(), "report.pdf", []byte("%PDF-1.4"))

	require.True(t, res.IsOK())
	assert.Equal(t, "report.pdf", res.Payload.Filename)
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestUpload_HTTPErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid PDF file"}`))
	}))
	defer srv.Close()

	res := NewHTTPClient(srv.URL, 0).Upload(context.Background(), "notes.txt", []byte("x"))

	require.True(t, res.IsHTTPError())
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid PDF file", res.Message)
}

func TestChat_SendsJSONQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is X?", req.Query)

		w.Write([]byte(`{"answer":"X is Y"}`))
	}))
	defer srv.Close()

	res := NewHTTPClient(srv.URL+"/", 0).Chat(context.Background(), "What is X?")

	require.True(t, res.IsOK())
	assert.Equal(t, "X is Y", res.Payload.Answer)
}

func TestChat_ErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"answer":"Please provide a question!"}`))
	}))
	defer srv.Close()

	res := NewHTTPClient(srv.URL, 0).Chat(context.Background(), "")

	require.True(t, res.IsHTTPError())
	assert.Empty(t, res.Message)
}

func TestChat_MalformedBodyIsTransportError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"success status", http.StatusOK},
		{"error status", http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("<html>bad gateway</html>"))
			}))
			defer srv.Close()

			res := NewHTTPClient(srv.URL, 0).Chat(context.Background(), "q")

			assert.True(t, res.IsTransportError())
			assert.Error(t, res.Err)
		})
	}
}

func TestChat_ConnectionRefusedIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := NewHTTPClient(url, 0).Chat(context.Background(), "q")

	assert.True(t, res.IsTransportError())
	assert.Equal(t, "transport_error", res.Kind.String())
}

func TestPDFURL_EscapesFilename(t *testing.T) {
	c := NewHTTPClient("http://backend.local/", 0)
	assert.Equal(t, "http://backend.local/pdf/my%20report%231.pdf", c.PDFURL("my report#1.pdf"))
}

func TestFetchPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/pdf/doc.pdf" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 0)
	data, err := c.FetchPDF(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	_, err = c.FetchPDF(context.Background(), "missing.pdf")
	assert.Error(t, err)
}
