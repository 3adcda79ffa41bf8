package controllers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"quotation-backend/database"
	"quotation-backend/middlewares"
	"quotation-backend/models"
	"quotation-backend/routes"
	"quotation-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	routes.Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s %s: %v body=%s", method, path, err, raw)
		}
	}
	return resp.StatusCode, out
}

// seedPipeline bootstraps an admin, logs in, and creates the
// company/customer/opportunity chain. Returns the token and the ids.
func seedPipeline(t *testing.T, app *fiber.App) (token, customerId, opportunityId string) {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/api/bootstrap", "",
		`{"username":"somchai","password":"s3cret-pass","full_name":"Somchai J.","email":"somchai@example.co.th"}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/login", "",
		`{"username":"somchai","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, status)
	token, _ = body["token"].(string)
	require.NotEmpty(t, token)

	status, company := doJSON(t, app, http.MethodPost, "/api/company", token,
		`{"name_th":"บจก. ทดสอบ","name_en":"Test Co., Ltd.","address":"Bangkok","tax_id":"0105500000000"}`)
	require.Equal(t, http.StatusCreated, status)

	status, customer := doJSON(t, app, http.MethodPost, "/api/customer", token,
		`{"name":"Acme Co.","address":"Rayong"}`)
	require.Equal(t, http.StatusCreated, status)
	customerId = customer["id"].(string)

	status, opportunity := doJSON(t, app, http.MethodPost, "/api/opportunity", token,
		fmt.Sprintf(`{"title":"ERP rollout","customer_id":%q,"company_id":%q}`, customerId, company["id"].(string)))
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, models.StageLead, opportunity["stage"])
	opportunityId = opportunity["id"].(string)
	return token, customerId, opportunityId
}

func TestQuotationLifecycle(t *testing.T) {
	app := setupApp(t)
	token, customerId, opportunityId := seedPipeline(t, app)
	period := services.Period(time.Now())

	// First quotation: number -0001, revision 1, blank item filtered out.
	createBody := fmt.Sprintf(`{"opportunity_id":%q,"include_vat":true,"items":[
		{"description":"A","price":100.00},
		{"description":"","price":50},
		{"description":"B","price":200.50}]}`, opportunityId)
	status, first := doJSON(t, app, http.MethodPost, "/api/quotation", token, createBody)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, period+"-0001", first["quotation_number"])
	assert.Equal(t, 1.0, first["revision"])
	assert.Equal(t, 300.50, first["sub_total"])
	assert.Equal(t, 21.04, first["vat"])
	assert.Equal(t, 321.54, first["grand_total"])
	assert.Len(t, first["items"], 2)
	firstId := first["id"].(string)

	// Second quotation for the same opportunity: next number, revision 2.
	status, second := doJSON(t, app, http.MethodPost, "/api/quotation", token,
		fmt.Sprintf(`{"opportunity_id":%q,"include_vat":false,"items":[{"description":"C","price":500}]}`, opportunityId))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, period+"-0002", second["quotation_number"])
	assert.Equal(t, 2.0, second["revision"])
	assert.Equal(t, 500.0, second["grand_total"])

	// Editing the first quotation recomputes totals but keeps number and revision.
	status, edited := doJSON(t, app, http.MethodPut, "/api/quotation/"+firstId, token,
		`{"items":[{"description":"A","price":250}],"include_vat":false}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, period+"-0001", edited["quotation_number"])
	assert.Equal(t, 1.0, edited["revision"])
	assert.Equal(t, 250.0, edited["sub_total"])
	assert.Equal(t, 0.0, edited["vat"])
	assert.Equal(t, 250.0, edited["grand_total"])

	// Portfolio before acceptance: latest number wins.
	status, value := doJSON(t, app, http.MethodGet, "/api/opportunity/"+opportunityId+"/value", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 500.0, value["value"])

	// Accepting the first quotation flips the selection and records a snapshot.
	status, _ = doJSON(t, app, http.MethodPut, "/api/quotation/"+firstId+"/status", token, `{"status":"accepted"}`)
	require.Equal(t, http.StatusOK, status)

	status, value = doJSON(t, app, http.MethodGet, "/api/opportunity/"+opportunityId+"/value", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 250.0, value["value"])

	var snapshots int64
	require.NoError(t, database.DB.Model(&models.QuotationSnapshot{}).Where("quotation_id = ?", firstId).Count(&snapshots).Error)
	assert.Equal(t, int64(1), snapshots)

	// Customer rollup matches the per-opportunity value.
	status, portfolio := doJSON(t, app, http.MethodGet, "/api/customer/"+customerId+"/portfolio", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 250.0, portfolio["total_value"])

	// Deleting the opportunity is refused while quotations exist.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/opportunity/"+opportunityId, token, "")
	assert.Equal(t, http.StatusConflict, status)

	// Print view carries the resolved parties.
	status, doc := doJSON(t, app, http.MethodGet, "/api/quotation/"+firstId+"/print", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, doc["company"])
	assert.NotNil(t, doc["customer"])
	assert.NotNil(t, doc["quotation"])
}

func TestQuotationRejectsAllBlankItems(t *testing.T) {
	app := setupApp(t)
	token, _, opportunityId := seedPipeline(t, app)

	status, _ := doJSON(t, app, http.MethodPost, "/api/quotation", token,
		fmt.Sprintf(`{"opportunity_id":%q,"items":[{"description":"   ","price":10}]}`, opportunityId))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestQuotationUnknownOpportunity(t *testing.T) {
	app := setupApp(t)
	token, _, _ := seedPipeline(t, app)

	status, _ := doJSON(t, app, http.MethodPost, "/api/quotation", token,
		`{"opportunity_id":"a2f5b2f0-0000-4000-8000-000000000000","items":[{"description":"A","price":10}]}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMoveStagePermissive(t *testing.T) {
	app := setupApp(t)
	token, _, opportunityId := seedPipeline(t, app)

	// Any of the six stages is reachable from any other, reverts included.
	for _, stage := range []string{"won", "lead", "negotiation", "lost", "qualified", "proposal"} {
		status, body := doJSON(t, app, http.MethodPut, "/api/opportunity/"+opportunityId+"/stage", token,
			fmt.Sprintf(`{"stage":%q}`, stage))
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, stage, body["stage"])
	}

	status, _ := doJSON(t, app, http.MethodPut, "/api/opportunity/"+opportunityId+"/stage", token,
		`{"stage":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestIdempotentQuotationCreation(t *testing.T) {
	app := setupApp(t)
	token, _, opportunityId := seedPipeline(t, app)

	body := fmt.Sprintf(`{"opportunity_id":%q,"items":[{"description":"A","price":100}]}`, opportunityId)
	send := func() (int, map[string]any) {
		req := httptest.NewRequest(http.MethodPost, "/api/quotation", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", "create-q-1")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		out := map[string]any{}
		require.NoError(t, json.Unmarshal(raw, &out))
		return resp.StatusCode, out
	}

	status1, first := send()
	require.Equal(t, http.StatusCreated, status1)
	status2, replay := send()
	require.Equal(t, http.StatusCreated, status2)
	assert.Equal(t, first["quotation_number"], replay["quotation_number"])

	// The retry replayed the stored response; no second number was allocated.
	var count int64
	require.NoError(t, database.DB.Model(&models.Quotation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCustomerDeleteBlockedByOpportunities(t *testing.T) {
	app := setupApp(t)
	token, customerId, _ := seedPipeline(t, app)

	status, _ := doJSON(t, app, http.MethodDelete, "/api/customer/"+customerId, token, "")
	assert.Equal(t, http.StatusConflict, status)
}

func TestCompanyDeleteBlockedByQuotations(t *testing.T) {
	app := setupApp(t)
	token, _, opportunityId := seedPipeline(t, app)

	status, _ := doJSON(t, app, http.MethodPost, "/api/quotation", token,
		fmt.Sprintf(`{"opportunity_id":%q,"items":[{"description":"A","price":100}]}`, opportunityId))
	require.Equal(t, http.StatusCreated, status)

	status, companies := doJSON(t, app, http.MethodGet, "/api/companies", token, "")
	require.Equal(t, http.StatusOK, status)
	companyId := companies["companies"].([]any)[0].(map[string]any)["id"].(string)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/company/"+companyId, token, "")
	assert.Equal(t, http.StatusConflict, status)
}
