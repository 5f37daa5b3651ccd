package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"spendtrack/internal/gateway"
	"spendtrack/internal/notify"
)

// Document describes an uploaded file held by the backend.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mimeType"`
	UploadedAt string `json:"uploadedAt"`
}

// DocumentsService wraps the /documents resource, including the binary
// download endpoint.
type DocumentsService struct {
	gw       Doer
	notifier notify.Notifier
}

// NewDocumentsService creates a DocumentsService.
func NewDocumentsService(gw Doer, notifier notify.Notifier) *DocumentsService {
	return &DocumentsService{gw: gw, notifier: notifier}
}

// List fetches all document records.
func (s *DocumentsService) List(ctx context.Context) ([]Document, error) {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/documents"})
	if err != nil {
		return nil, err
	}
	var docs []Document
	if err := decodeData(resp, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Upload sends a file as multipart form data under the "file" field.
func (s *DocumentsService) Upload(ctx context.Context, filename string, content io.Reader) (*Document, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	resp, err := s.gw.Do(ctx, gateway.Request{
		Method:      http.MethodPost,
		Path:        "/documents/upload",
		RawBody:     pr,
		ContentType: writer.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := decodeData(resp, &doc); err != nil {
		return nil, err
	}
	s.notifier.Success(fmt.Sprintf("Document %s uploaded", filename))
	return &doc, nil
}

// Download streams a document's binary content into w and returns the number
// of bytes written. The download endpoint returns the raw file, not the JSON
// envelope.
func (s *DocumentsService) Download(ctx context.Context, id string, w io.Writer) (int64, error) {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/documents/" + id + "/download"})
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, bytes.NewReader(resp.Body))
	if err != nil {
		return n, fmt.Errorf("writing document content: %w", err)
	}
	return n, nil
}

// Delete removes a document.
func (s *DocumentsService) Delete(ctx context.Context, id string) error {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: "/documents/" + id})
	if err != nil {
		return err
	}
	if err := decodeData(resp, nil); err != nil {
		return err
	}
	s.notifier.Success("Document deleted successfully")
	return nil
}
