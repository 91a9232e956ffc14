package services

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/storage"
	"expensetracker/internal/uuid"
)

// ReceiptURLPrefix is the route receipts are served from.
const ReceiptURLPrefix = "/api/receipts/image/"

// allowedReceiptTypes are the image formats accepted as receipts, matched
// against the sniffed content rather than the client's header.
var allowedReceiptTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// receiptService handles receipt uploads on a ReceiptStore.
type receiptService struct {
	store    *storage.ReceiptStore
	maxBytes int64
}

// NewReceiptService creates a new ReceiptServicer. Uploads larger than
// maxBytes are rejected.
func NewReceiptService(store *storage.ReceiptStore, maxBytes int64) ReceiptServicer {
	return &receiptService{store: store, maxBytes: maxBytes}
}

// UploadReceipt sniffs, names and stores an uploaded image.
func (s *receiptService) UploadReceipt(content io.Reader) (*models.Receipt, error) {
	if content == nil {
		return nil, apperrors.ErrNoFileUploaded
	}

	data, err := io.ReadAll(io.LimitReader(content, s.maxBytes+1))
	if err != nil {
		return nil, apperrors.Store("Error uploading receipt", err)
	}
	if len(data) == 0 {
		return nil, apperrors.ErrNoFileUploaded
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.ErrReceiptTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedReceiptTypes...) {
		return nil, apperrors.ErrUnsupportedReceipt
	}

	name := uuid.ReceiptName(mtype.Extension())
	size, err := s.store.Save(name, bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Store("Error uploading receipt", err)
	}

	logger.Get().Infow("receipt uploaded", "filename", name, "size", size, "mimetype", mtype.String())
	return &models.Receipt{
		Filename: name,
		URL:      ReceiptURLPrefix + name,
		Path:     filepath.ToSlash(filepath.Join(s.store.Dir(), name)),
		Size:     size,
		MimeType: mtype.String(),
	}, nil
}

// OpenReceipt opens a stored receipt. The caller closes the content.
func (s *receiptService) OpenReceipt(filename string) (*ReceiptFile, error) {
	f, info, err := s.store.Open(filename)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidName):
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid receipt filename")
		case errors.Is(err, storage.ErrNotExist):
			return nil, apperrors.WithMessage(apperrors.ErrReceiptNotFound, "Image not found")
		default:
			return nil, apperrors.Store("Error serving image", err)
		}
	}

	mtype, err := mimetype.DetectReader(f)
	if err == nil {
		_, err = f.Seek(0, io.SeekStart)
	}
	if err != nil {
		_ = f.Close()
		return nil, apperrors.Store("Error serving image", err)
	}

	return &ReceiptFile{
		Name:        info.Name(),
		ContentType: mtype.String(),
		ModTime:     info.ModTime(),
		Content:     f,
	}, nil
}

// DeleteReceipt removes a stored receipt. Only generated receipt names can be deleted.
func (s *receiptService) DeleteReceipt(filename string) error {
	if !uuid.IsReceiptName(filename) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid receipt filename")
	}
	err := s.store.Remove(filename)
	switch {
	case err == nil:
		logger.Get().Infow("receipt deleted", "filename", filename)
		return nil
	case errors.Is(err, storage.ErrInvalidName):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid receipt filename")
	case errors.Is(err, storage.ErrNotExist):
		return apperrors.ErrReceiptNotFound
	default:
		return apperrors.Store("Error deleting receipt", err)
	}
}
