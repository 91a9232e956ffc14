package services

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"expensetracker/internal/storage"
	"expensetracker/internal/testutil"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func newReceiptFixture(t *testing.T, maxBytes int64) (ReceiptServicer, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := storage.NewReceiptStore(fs, "uploads/receipts")
	testutil.AssertNoError(t, err)
	return NewReceiptService(store, maxBytes), fs
}

func TestUploadReceipt(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		svc, fs := newReceiptFixture(t, 1024)

		receipt, err := svc.UploadReceipt(bytes.NewReader(pngBytes))
		testutil.AssertNoError(t, err)

		if !strings.HasPrefix(receipt.Filename, "receipt-") || !strings.HasSuffix(receipt.Filename, ".png") {
			t.Errorf("unexpected filename %s", receipt.Filename)
		}
		if receipt.URL != ReceiptURLPrefix+receipt.Filename {
			t.Errorf("unexpected url %s", receipt.URL)
		}
		if receipt.MimeType != "image/png" {
			t.Errorf("expected image/png, got %s", receipt.MimeType)
		}
		if receipt.Size != int64(len(pngBytes)) {
			t.Errorf("expected size %d, got %d", len(pngBytes), receipt.Size)
		}
		if ok, _ := afero.Exists(fs, receipt.Path); !ok {
			t.Errorf("expected receipt stored at %s", receipt.Path)
		}
	})

	t.Run("unique_names", func(t *testing.T) {
		svc, _ := newReceiptFixture(t, 1024)

		a, err := svc.UploadReceipt(bytes.NewReader(pngBytes))
		testutil.AssertNoError(t, err)
		b, err := svc.UploadReceipt(bytes.NewReader(pngBytes))
		testutil.AssertNoError(t, err)

		if a.Filename == b.Filename {
			t.Error("expected distinct filenames for separate uploads")
		}
	})

	t.Run("not_an_image", func(t *testing.T) {
		svc, _ := newReceiptFixture(t, 1024)

		_, err := svc.UploadReceipt(strings.NewReader("just some text, not a receipt"))
		testutil.AssertAppError(t, err, "UNSUPPORTED_RECEIPT")
	})

	t.Run("too_large", func(t *testing.T) {
		svc, _ := newReceiptFixture(t, 16)

		_, err := svc.UploadReceipt(bytes.NewReader(pngBytes))
		testutil.AssertAppError(t, err, "RECEIPT_TOO_LARGE")
	})

	t.Run("empty", func(t *testing.T) {
		svc, _ := newReceiptFixture(t, 1024)

		_, err := svc.UploadReceipt(bytes.NewReader(nil))
		testutil.AssertAppError(t, err, "NO_FILE_UPLOADED")

		_, err = svc.UploadReceipt(nil)
		testutil.AssertAppError(t, err, "NO_FILE_UPLOADED")
	})
}

func TestOpenReceipt(t *testing.T) {
	svc, _ := newReceiptFixture(t, 1024)
	receipt, err := svc.UploadReceipt(bytes.NewReader(pngBytes))
	testutil.AssertNoError(t, err)

	t.Run("found", func(t *testing.T) {
		file, err := svc.OpenReceipt(receipt.Filename)
		testutil.AssertNoError(t, err)
		defer file.Content.Close()

		if file.ContentType != "image/png" {
			t.Errorf("expected image/png, got %s", file.ContentType)
		}
		body, err := io.ReadAll(file.Content)
		testutil.AssertNoError(t, err)
		if !bytes.Equal(body, pngBytes) {
			t.Error("expected content to be readable from the start after sniffing")
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.OpenReceipt("receipt-missing.png")
		testutil.AssertAppError(t, err, "RECEIPT_NOT_FOUND")
	})

	t.Run("traversal", func(t *testing.T) {
		_, err := svc.OpenReceipt("../../etc/passwd")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteReceipt(t *testing.T) {
	svc, fs := newReceiptFixture(t, 1024)
	receipt, err := svc.UploadReceipt(bytes.NewReader(pngBytes))
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteReceipt(receipt.Filename))
	if ok, _ := afero.Exists(fs, receipt.Path); ok {
		t.Error("expected receipt file to be removed")
	}

	err = svc.DeleteReceipt(receipt.Filename)
	testutil.AssertAppError(t, err, "RECEIPT_NOT_FOUND")

	err = svc.DeleteReceipt("notes.txt")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}
