package tpp

import (
	"errors"
	"fmt"
)

// ExportRequest contains the inputs for a whole-document export.
type ExportRequest struct {
	Document *Document
	Backend  Backend
}

// Export replays every page of the document through the backend,
// ignoring pause markers. It opens and closes the backend around the
// run; an Open failure is fatal and nothing is emitted.
func Export(req ExportRequest) error {
	if req.Document == nil {
		return errors.New("export: nil document")
	}
	if req.Backend == nil {
		return errors.New("export: nil backend")
	}
	if err := req.Backend.Open(); err != nil {
		return fmt.Errorf("export: open backend: %w", err)
	}
	NewNavigator(req.Document, req.Backend).RunAll()
	if err := req.Backend.Close(); err != nil {
		return fmt.Errorf("export: close backend: %w", err)
	}
	return nil
}
