package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armory-api/internal/application/analytics"
	"github.com/jhoicas/armory-api/internal/application/assignment"
	"github.com/jhoicas/armory-api/internal/application/auth"
	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/application/usecase"
	"github.com/jhoicas/armory-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/armory-api/internal/interfaces/http"
)

// newTestApp wires the full API over the in-memory store, the same way
// cmd/api does when STORE=memory.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()

	ledgerUC := ledger.New(store, store.Bases(), store.Assets())
	assignmentUC := assignment.New(store, store.Assignments())
	dashboardUC := analytics.NewDashboardUseCase(store.Analytics())
	baseUC := usecase.NewBaseUseCase(store.Bases())
	assetUC := usecase.NewAssetUseCase(store.Assets(), store.Stocks(), ledgerUC)
	authUC := auth.New(store.Users(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		BaseUC:       baseUC,
		AssetUC:      assetUC,
		LedgerUC:     ledgerUC,
		AssignmentUC: assignmentUC,
		DashboardUC:  dashboardUC,
		Assets:       store.Assets(),
		Bases:        store.Bases(),
		Purchases:    store.Purchases(),
		Transfers:    store.Transfers(),
		Expenditures: store.Expenditures(),
		JWTSecret:    testJWTSecret,
	})
	return app
}

// apiRequest performs a JSON request and returns the status code and raw
// body.
func apiRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeInto(t *testing.T, raw []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
}

func registerOperator(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, raw := apiRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Quartermaster",
		"email":    "qm@example.mil",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)
	var out struct {
		Token string `json:"token"`
	}
	decodeInto(t, raw, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func createBase(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()
	status, raw := apiRequest(t, app, http.MethodPost, "/api/bases/", token, fiber.Map{"name": name})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)
	var out struct {
		ID string `json:"_id"`
	}
	decodeInto(t, raw, &out)
	return out.ID
}

func TestAPI_RequiresToken(t *testing.T) {
	app := newTestApp(t)

	status, _ := apiRequest(t, app, http.MethodGet, "/api/bases/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = apiRequest(t, app, http.MethodGet, "/api/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_RegisterThenLogin(t *testing.T) {
	app := newTestApp(t)
	registerOperator(t, app)

	status, raw := apiRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "qm@example.mil",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status, "body: %s", raw)

	status, _ = apiRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "qm@example.mil",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_MovementFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerOperator(t, app)

	alphaID := createBase(t, app, token, "Fort Alpha")
	bravoID := createBase(t, app, token, "Fort Bravo")

	// Create an asset with an opening quantity of 10 at Alpha.
	status, raw := apiRequest(t, app, http.MethodPost, "/api/assets/", token, fiber.Map{
		"name":     "M4 Carbine",
		"type":     "Weapon",
		"quantity": 10,
		"baseId":   alphaID,
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)
	var asset struct {
		ID       string `json:"_id"`
		Quantity int64  `json:"quantity"`
		Status   string `json:"status"`
	}
	decodeInto(t, raw, &asset)
	assert.Equal(t, int64(10), asset.Quantity)
	assert.Equal(t, "Available", asset.Status)

	// Purchase 5 more into Alpha.
	status, raw = apiRequest(t, app, http.MethodPost, "/api/purchases/", token, fiber.Map{
		"baseId":      alphaID,
		"assetId":     asset.ID,
		"quantity":    5,
		"costPerUnit": "2",
		"totalCost":   "10",
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)
	var purchase struct {
		AssetID struct {
			ID   string `json:"_id"`
			Name string `json:"name"`
		} `json:"assetId"`
		BaseID struct {
			Name string `json:"name"`
		} `json:"baseId"`
	}
	decodeInto(t, raw, &purchase)
	assert.Equal(t, asset.ID, purchase.AssetID.ID)
	assert.Equal(t, "M4 Carbine", purchase.AssetID.Name)
	assert.Equal(t, "Fort Alpha", purchase.BaseID.Name)

	// Transfer 4 Alpha -> Bravo.
	status, raw = apiRequest(t, app, http.MethodPost, "/api/transfers/", token, fiber.Map{
		"assetId":    asset.ID,
		"fromBaseId": alphaID,
		"toBaseId":   bravoID,
		"quantity":   4,
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)

	// Transferring more than Alpha holds must conflict.
	status, raw = apiRequest(t, app, http.MethodPost, "/api/transfers/", token, fiber.Map{
		"assetId":    asset.ID,
		"fromBaseId": alphaID,
		"toBaseId":   bravoID,
		"quantity":   100,
	})
	require.Equal(t, http.StatusConflict, status, "body: %s", raw)
	var apiErr struct {
		Code string `json:"code"`
	}
	decodeInto(t, raw, &apiErr)
	assert.Equal(t, "INSUFFICIENT_QUANTITY", apiErr.Code)

	// Expend 2 at Alpha.
	status, raw = apiRequest(t, app, http.MethodPost, "/api/expenditures/", token, fiber.Map{
		"assetId":      asset.ID,
		"baseId":       alphaID,
		"quantity":     2,
		"expendType":   "Used",
		"expendReason": "training exercise",
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)

	// Event lists reflect the flow.
	status, raw = apiRequest(t, app, http.MethodGet, "/api/purchases/", token, nil)
	require.Equal(t, http.StatusOK, status)
	var purchases []json.RawMessage
	decodeInto(t, raw, &purchases)
	assert.Len(t, purchases, 2, "opening purchase plus the explicit one")

	status, raw = apiRequest(t, app, http.MethodGet, "/api/transfers/", token, nil)
	require.Equal(t, http.StatusOK, status)
	var transfers []json.RawMessage
	decodeInto(t, raw, &transfers)
	assert.Len(t, transfers, 1, "the failed transfer must not be recorded")

	// Dashboard: 10 opening + 5 purchased - 2 expended = 13 on hand,
	// net movement = 15 purchased + 4 in - 4 out.
	status, raw = apiRequest(t, app, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, status, "body: %s", raw)
	var metrics struct {
		TotalAssets        int64 `json:"totalAssets"`
		TotalBases         int64 `json:"totalBases"`
		TotalAssetQuantity int64 `json:"totalAssetQuantity"`
		NetMovement        int64 `json:"netMovement"`
		BaseBalances       []struct {
			BaseName       string `json:"baseName"`
			ClosingBalance int64  `json:"closingBalance"`
		} `json:"baseBalances"`
	}
	decodeInto(t, raw, &metrics)
	assert.Equal(t, int64(1), metrics.TotalAssets)
	assert.Equal(t, int64(2), metrics.TotalBases)
	assert.Equal(t, int64(13), metrics.TotalAssetQuantity)
	assert.Equal(t, int64(15), metrics.NetMovement)
	require.Len(t, metrics.BaseBalances, 2)
	assert.Equal(t, "Fort Alpha", metrics.BaseBalances[0].BaseName)
	assert.Equal(t, int64(9), metrics.BaseBalances[0].ClosingBalance)
	assert.Equal(t, int64(4), metrics.BaseBalances[1].ClosingBalance)
}

func TestAPI_AssignmentFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerOperator(t, app)
	baseID := createBase(t, app, token, "Fort Alpha")

	status, raw := apiRequest(t, app, http.MethodPost, "/api/assets/", token, fiber.Map{
		"name":   "Night Vision Goggles",
		"type":   "Optics",
		"baseId": baseID,
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)
	var asset struct {
		ID string `json:"_id"`
	}
	decodeInto(t, raw, &asset)

	status, raw = apiRequest(t, app, http.MethodPost, "/api/assignments/", token, fiber.Map{
		"assetId":    asset.ID,
		"assignedTo": "Sgt. Rivera",
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)
	var assigned struct {
		ID      string `json:"_id"`
		Status  string `json:"status"`
		AssetID struct {
			Name string `json:"name"`
		} `json:"assetId"`
	}
	decodeInto(t, raw, &assigned)
	assert.Equal(t, "Assigned", assigned.Status)
	assert.Equal(t, "Night Vision Goggles", assigned.AssetID.Name)

	// The asset is no longer available.
	status, raw = apiRequest(t, app, http.MethodPost, "/api/assignments/", token, fiber.Map{
		"assetId":    asset.ID,
		"assignedTo": "Cpl. Andersen",
	})
	require.Equal(t, http.StatusConflict, status, "body: %s", raw)
	var apiErr struct {
		Code string `json:"code"`
	}
	decodeInto(t, raw, &apiErr)
	assert.Equal(t, "INVALID_STATE", apiErr.Code)

	status, raw = apiRequest(t, app, http.MethodPut, "/api/assignments/"+assigned.ID+"/expended", token, nil)
	require.Equal(t, http.StatusOK, status, "body: %s", raw)
	var expended struct {
		Status     string  `json:"status"`
		ExpendedAt *string `json:"expendedAt"`
	}
	decodeInto(t, raw, &expended)
	assert.Equal(t, "Expended", expended.Status)
	assert.NotNil(t, expended.ExpendedAt)

	status, _ = apiRequest(t, app, http.MethodPut, "/api/assignments/"+assigned.ID+"/expended", token, nil)
	assert.Equal(t, http.StatusConflict, status, "expending twice must fail")

	status, raw = apiRequest(t, app, http.MethodGet, "/api/assignments/?status=Expended", token, nil)
	require.Equal(t, http.StatusOK, status)
	var rows []json.RawMessage
	decodeInto(t, raw, &rows)
	assert.Len(t, rows, 1)
}

func TestAPI_DeleteReferencedBaseRejected(t *testing.T) {
	app := newTestApp(t)
	token := registerOperator(t, app)
	baseID := createBase(t, app, token, "Fort Alpha")

	status, raw := apiRequest(t, app, http.MethodPost, "/api/assets/", token, fiber.Map{
		"name":     "M4 Carbine",
		"type":     "Weapon",
		"quantity": 10,
		"baseId":   baseID,
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)

	// The opening purchase references the base, so it can no longer be
	// deleted, only renamed.
	status, raw = apiRequest(t, app, http.MethodDelete, "/api/bases/"+baseID, token, nil)
	require.Equal(t, http.StatusBadRequest, status, "body: %s", raw)

	status, raw = apiRequest(t, app, http.MethodGet, "/api/bases/", token, nil)
	require.Equal(t, http.StatusOK, status)
	var bases []json.RawMessage
	decodeInto(t, raw, &bases)
	assert.Len(t, bases, 1, "the base must survive the rejected delete")
}

func TestAPI_ValidationErrors(t *testing.T) {
	app := newTestApp(t)
	token := registerOperator(t, app)

	status, raw := apiRequest(t, app, http.MethodPost, "/api/bases/", token, fiber.Map{})
	require.Equal(t, http.StatusBadRequest, status)
	var apiErr struct {
		Code string `json:"code"`
	}
	decodeInto(t, raw, &apiErr)
	assert.Equal(t, "VALIDATION", apiErr.Code)

	status, _ = apiRequest(t, app, http.MethodPost, "/api/expenditures/", token, fiber.Map{
		"assetId":  "some-id",
		"baseId":   "some-base",
		"quantity": 1,
		// expendType and expendReason missing
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_DashboardDateFilter(t *testing.T) {
	app := newTestApp(t)
	token := registerOperator(t, app)
	baseID := createBase(t, app, token, "Fort Alpha")

	status, raw := apiRequest(t, app, http.MethodPost, "/api/assets/", token, fiber.Map{
		"name":     "5.56mm Rounds",
		"type":     "Ammunition",
		"quantity": 100,
		"baseId":   baseID,
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)

	// A window far in the past sees no events and an empty opening.
	status, raw = apiRequest(t, app, http.MethodGet, "/api/dashboard?date=2000-01-01", token, nil)
	require.Equal(t, http.StatusOK, status, "body: %s", raw)
	var metrics struct {
		TotalPurchases int64 `json:"totalPurchases"`
		NetMovement    int64 `json:"netMovement"`
	}
	decodeInto(t, raw, &metrics)
	assert.Equal(t, int64(0), metrics.TotalPurchases)
	assert.Equal(t, int64(0), metrics.NetMovement)

	// A malformed date is a validation error.
	status, _ = apiRequest(t, app, http.MethodGet, "/api/dashboard?date=not-a-date", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
