package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"expensetracker/internal/logger"
	"expensetracker/internal/repository"
	"expensetracker/internal/server"
	"expensetracker/internal/services"
	"expensetracker/internal/storage"
	"expensetracker/internal/testutil"
	"expensetracker/internal/validator"
)

// maxUpload bounds receipt uploads in tests.
const maxUpload = 64 << 10

// today is the clock every dashboard window is measured from.
var today = time.Date(2025, time.February, 15, 12, 0, 0, 0, time.UTC)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Files  afero.Fs
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database and an in-memory receipt store.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	categories := repository.NewCategoryRepository(db)
	expenses, err := repository.NewExpenseRepository(db)
	if err != nil {
		t.Fatalf("failed to create expense repository: %v", err)
	}

	fs := afero.NewMemMapFs()
	store, err := storage.NewReceiptStore(fs, "uploads/receipts")
	if err != nil {
		t.Fatalf("failed to create receipt store: %v", err)
	}

	router := server.NewRouter(server.Services{
		Categories:     services.NewCategoryService(categories),
		Expenses:       services.NewExpenseService(expenses, categories),
		Dashboard:      services.NewDashboardService(expenses, func() time.Time { return today }),
		Receipts:       services.NewReceiptService(store, maxUpload),
		MaxUploadBytes: maxUpload,
	})

	return &testApp{DB: db, Router: router, Files: fs}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// upload posts content as the receipt form field.
func (app *testApp) upload(t *testing.T, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("receipt", "scan.bin")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/receipts/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// expectStatus fails the test unless rec has the wanted status, and returns the parsed body.
func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) map[string]interface{} {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

// rows returns the data array of a list envelope.
func rows(t *testing.T, result map[string]interface{}) []map[string]interface{} {
	t.Helper()
	data, ok := result["data"].([]interface{})
	if !ok {
		t.Fatalf("expected data array, got %v", result)
	}
	out := make([]map[string]interface{}, len(data))
	for i, d := range data {
		out[i] = d.(map[string]interface{})
	}
	return out
}

// createCategory creates a category and returns its id.
func (app *testApp) createCategory(t *testing.T, name string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/categories", fmt.Sprintf(`{"name":%q}`, name))
	result := expectStatus(t, rec, http.StatusCreated)
	return result["data"].(map[string]interface{})["id"].(float64)
}

// createExpense records an expense and returns its id.
func (app *testApp) createExpense(t *testing.T, categoryID float64, amount, date, description string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"amount":%s,"category_id":%.0f,"expense_date":%q,"description":%q}`, amount, categoryID, date, description)
	rec := app.request("POST", "/api/expenses", body)
	result := expectStatus(t, rec, http.StatusCreated)
	return result["data"].(map[string]interface{})["id"].(float64)
}
