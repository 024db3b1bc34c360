package service

import (
	"context"
	"errors"
	"fmt"

	"smart-pdf-assistant/internal/constant"
	"smart-pdf-assistant/internal/pkg/logger"
	"smart-pdf-assistant/internal/repository/memory"
	"smart-pdf-assistant/pkg/backend"
	"smart-pdf-assistant/pkg/store"
)

var ErrDocumentNotLoaded = errors.New("document is not the one loaded in this session")

type IViewerService interface {
	// Document returns the bytes of the loaded PDF. Only the file accepted by
	// the last successful upload is served.
	Document(ctx context.Context, filename string) ([]byte, error)
}

type viewerService struct {
	store   *store.Store
	backend backend.Backend
	cache   *memory.PdfCache
	logger  logger.ILogger
}

func NewViewerService(st *store.Store, be backend.Backend, cache *memory.PdfCache, log logger.ILogger) IViewerService {
	return &viewerService{
		store:   st,
		backend: be,
		cache:   cache,
		logger:  log,
	}
}

func (s *viewerService) Document(ctx context.Context, filename string) ([]byte, error) {
	session := s.store.Snapshot()
	if !session.HasDocument() || session.PdfFileName != filename {
		return nil, ErrDocumentNotLoaded
	}

	if data, ok := s.cache.Get(filename, session.Generation); ok {
		return data, nil
	}

	data, err := s.backend.FetchPDF(ctx, filename)
	if err != nil {
		s.logger.Error(constant.LogModuleViewer, "Failed to fetch PDF", map[string]interface{}{
			"file":  filename,
			"error": err,
		})
		return nil, fmt.Errorf("fetch %s: %w", filename, err)
	}
	s.cache.Save(filename, session.Generation, data)
	return data, nil
}
