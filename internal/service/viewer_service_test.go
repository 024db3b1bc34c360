package service

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"smart-pdf-assistant/internal/dto"
	"smart-pdf-assistant/internal/pkg/logger"
	"smart-pdf-assistant/internal/repository/memory"
	"smart-pdf-assistant/pkg/backend"
	"smart-pdf-assistant/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPDFBackend struct {
	fakeBackend
	fetches atomic.Int32
	err     error
	// stored overrides the document bytes when set.
	stored []byte
}

func (c *countingPDFBackend) FetchPDF(_ context.Context, filename string) ([]byte, error) {
	c.fetches.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	if c.stored != nil {
		return c.stored, nil
	}
	return []byte("%PDF " + filename), nil
}

func loadedStore(t *testing.T, be backend.Backend, filename string) *store.Store {
	t.Helper()
	st := store.New()
	_, err := NewUploadService(st, be, logger.NewNopLogger()).
		SubmitUpload(context.Background(), &dto.SelectedFile{Name: filename})
	require.NoError(t, err)
	return st
}

func TestViewer_ServesLoadedDocumentFromCache(t *testing.T) {
	be := &countingPDFBackend{}
	be.setUpload(backend.Ok(http.StatusOK, backend.UploadResponse{Filename: "doc.pdf"}))
	st := loadedStore(t, be, "doc.pdf")
	svc := NewViewerService(st, be, memory.NewPdfCache(time.Minute), logger.NewNopLogger())

	for i := 0; i < 3; i++ {
		data, err := svc.Document(context.Background(), "doc.pdf")
		require.NoError(t, err)
		assert.Equal(t, "%PDF doc.pdf", string(data))
	}
	assert.Equal(t, int32(1), be.fetches.Load())
}

func TestViewer_RefusesOtherFiles(t *testing.T) {
	be := &countingPDFBackend{}
	svc := NewViewerService(store.New(), be, memory.NewPdfCache(time.Minute), logger.NewNopLogger())

	_, err := svc.Document(context.Background(), "doc.pdf")
	assert.ErrorIs(t, err, ErrDocumentNotLoaded)

	be.setUpload(backend.Ok(http.StatusOK, backend.UploadResponse{Filename: "doc.pdf"}))
	st := loadedStore(t, be, "doc.pdf")
	svc = NewViewerService(st, be, memory.NewPdfCache(time.Minute), logger.NewNopLogger())

	_, err = svc.Document(context.Background(), "../secrets.pdf")
	assert.ErrorIs(t, err, ErrDocumentNotLoaded)
	assert.Zero(t, be.fetches.Load())
}

func TestViewer_FetchErrorIsNotCached(t *testing.T) {
	be := &countingPDFBackend{err: errors.New("status 500")}
	be.setUpload(backend.Ok(http.StatusOK, backend.UploadResponse{Filename: "doc.pdf"}))
	st := loadedStore(t, be, "doc.pdf")
	svc := NewViewerService(st, be, memory.NewPdfCache(time.Minute), logger.NewNopLogger())

	_, err := svc.Document(context.Background(), "doc.pdf")
	require.Error(t, err)

	be.err = nil
	data, err := svc.Document(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, int32(2), be.fetches.Load())
}

func TestViewer_ReuploadSameNameServesNewBytes(t *testing.T) {
	be := &countingPDFBackend{stored: []byte("OLD")}
	be.setUpload(backend.Ok(http.StatusOK, backend.UploadResponse{Filename: "doc.pdf"}))
	st := loadedStore(t, be, "doc.pdf")
	svc := NewViewerService(st, be, memory.NewPdfCache(time.Minute), logger.NewNopLogger())
	ctx := context.Background()

	first, err := svc.Document(ctx, "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "OLD", string(first))

	be.stored = []byte("NEW")
	_, err = NewUploadService(st, be, logger.NewNopLogger()).
		SubmitUpload(ctx, &dto.SelectedFile{Name: "doc.pdf"})
	require.NoError(t, err)

	second, err := svc.Document(ctx, "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "NEW", string(second))
	assert.Equal(t, int32(2), be.fetches.Load())
}
