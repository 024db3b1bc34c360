package service

import (
	"context"

	"smart-pdf-assistant/internal/constant"
	"smart-pdf-assistant/internal/dto"
	"smart-pdf-assistant/internal/pkg/logger"
	"smart-pdf-assistant/pkg/backend"
	"smart-pdf-assistant/pkg/pdfinfo"
	"smart-pdf-assistant/pkg/store"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type IUploadService interface {
	// SubmitUpload sends the selected file to the backend. A nil file yields
	// the local validation error without any request.
	SubmitUpload(ctx context.Context, file *dto.SelectedFile) (store.Session, error)
}

type uploadService struct {
	store   *store.Store
	backend backend.Backend
	logger  logger.ILogger
}

func NewUploadService(st *store.Store, be backend.Backend, log logger.ILogger) IUploadService {
	return &uploadService{
		store:   st,
		backend: be,
		logger:  log,
	}
}

func (s *uploadService) SubmitUpload(ctx context.Context, file *dto.SelectedFile) (store.Session, error) {
	// 1. Local validation
	if file == nil || validate.Struct(file) != nil {
		return s.store.Dispatch(ctx, store.UploadInvalid{Message: constant.UploadNoFileSelectedMessage})
	}

	// 2. Gate: one upload at a time
	if _, err := s.store.Dispatch(ctx, store.UploadRequested{}); err != nil {
		return s.store.Snapshot(), err
	}

	pageCount, err := pdfinfo.PageCount(file.Data)
	if err != nil {
		s.logger.Debug(constant.LogModuleUpload, "Page count unavailable", map[string]interface{}{
			"file":  file.Name,
			"error": err.Error(),
		})
	}

	// 3. Send and settle
	res := s.backend.Upload(ctx, file.Name, file.Data)
	switch {
	case res.IsOK() && res.Payload.Filename != "":
		s.logger.Info(constant.LogModuleUpload, "PDF accepted", map[string]interface{}{
			"file":       res.Payload.Filename,
			"page_count": pageCount,
			"size":       len(file.Data),
		})
		return s.store.Dispatch(ctx, store.UploadSucceeded{FileName: res.Payload.Filename, PageCount: pageCount})

	case res.IsOK():
		s.logger.Warn(constant.LogModuleUpload, "Upload response without filename", map[string]interface{}{
			"file":   file.Name,
			"status": res.Status,
		})
		return s.store.Dispatch(ctx, store.UploadFailed{Message: constant.UploadFailedMessage})

	case res.IsHTTPError():
		s.logger.Warn(constant.LogModuleUpload, "Upload rejected", map[string]interface{}{
			"file":    file.Name,
			"status":  res.Status,
			"message": res.Message,
		})
		return s.store.Dispatch(ctx, store.UploadFailed{Message: orDefault(res.Message, constant.UploadFailedMessage)})

	default:
		s.logger.Error(constant.LogModuleUpload, "Upload transport failure", map[string]interface{}{
			"file":  file.Name,
			"error": res.Err,
		})
		return s.store.Dispatch(ctx, store.UploadFailed{Message: constant.ServerErrorTryAgain})
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
