package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/response"
	"expensetracker/internal/services"
)

// receiptField is the multipart field carrying the uploaded image.
const receiptField = "receipt"

// ReceiptHandler handles receipt uploads and downloads.
type ReceiptHandler struct {
	receiptService services.ReceiptServicer
	maxBytes       int64
}

// NewReceiptHandler creates a new ReceiptHandler. maxBytes bounds the request body.
func NewReceiptHandler(receiptService services.ReceiptServicer, maxBytes int64) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, maxBytes: maxBytes}
}

type receiptParams struct {
	Filename string `uri:"filename" binding:"required,notblank,max=255"`
}

func bindReceiptParams(c *gin.Context) (string, error) {
	var params receiptParams
	if err := c.ShouldBindUri(&params); err != nil {
		return "", apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid receipt filename"), err)
	}
	return params.Filename, nil
}

// UploadReceipt handles a receipt image upload
// @Summary     Upload a receipt
// @Description Store a JPEG, PNG, GIF or WebP receipt image. The type is detected from the content.
// @Tags        receipts
// @Accept      multipart/form-data
// @Produce     json
// @Param       receipt formData file true "Receipt image"
// @Success     201 {object} response.Envelope{data=models.Receipt} "Receipt stored"
// @Failure     400 {object} ErrorResponse "No file or unsupported type"
// @Failure     413 {object} ErrorResponse "File too large"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receipts/upload [post]
func (h *ReceiptHandler) UploadReceipt(c *gin.Context) {
	// Room for the multipart framing around the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)

	header, err := c.FormFile(receiptField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(c, apperrors.ErrReceiptTooLarge)
			return
		}
		respondWithError(c, apperrors.ErrNoFileUploaded)
		return
	}
	if header.Size > h.maxBytes {
		respondWithError(c, apperrors.ErrReceiptTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondWithError(c, apperrors.Store("Error uploading receipt", err))
		return
	}
	defer file.Close()

	receipt, err := h.receiptService.UploadReceipt(file)
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.Created(c, "Receipt uploaded successfully", receipt)
}

// GetReceiptImage streams a stored receipt
// @Summary     Get a receipt image
// @Description Stream a stored receipt with its detected content type
// @Tags        receipts
// @Produce     image/jpeg,image/png,image/gif,image/webp
// @Param       filename path string true "Receipt filename"
// @Success     200 {file} binary "Receipt image"
// @Failure     400 {object} ErrorResponse "Invalid filename"
// @Failure     404 {object} ErrorResponse "Image not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receipts/image/{filename} [get]
func (h *ReceiptHandler) GetReceiptImage(c *gin.Context) {
	filename, err := bindReceiptParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	receipt, err := h.receiptService.OpenReceipt(filename)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer receipt.Content.Close()

	c.Header("Content-Type", receipt.ContentType)
	c.Header("X-Content-Type-Options", "nosniff")
	http.ServeContent(c.Writer, c.Request, receipt.Name, receipt.ModTime, receipt.Content)
}

// DeleteReceipt removes a stored receipt
// @Summary     Delete a receipt
// @Description Remove a stored receipt image
// @Tags        receipts
// @Produce     json
// @Param       filename path string true "Receipt filename"
// @Success     200 {object} response.Envelope "Receipt deleted"
// @Failure     400 {object} ErrorResponse "Invalid filename"
// @Failure     404 {object} ErrorResponse "Receipt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receipts/{filename} [delete]
func (h *ReceiptHandler) DeleteReceipt(c *gin.Context) {
	filename, err := bindReceiptParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.receiptService.DeleteReceipt(filename); err != nil {
		respondWithError(c, err)
		return
	}
	response.Message(c, "Receipt deleted successfully", nil)
}
