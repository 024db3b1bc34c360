package pdfinfo

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var ErrEmptyDocument = errors.New("empty document")

// PageCount reads the page tree of an in-memory PDF. Validation is relaxed
// because the backend, not this client, decides whether a file is acceptable.
func PageCount(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmptyDocument
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	n, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}
