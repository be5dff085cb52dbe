package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/infra/events"
	"github.com/gimhantharuke456/sachi-itpm/internal/infra/metrics"
	"github.com/gimhantharuke456/sachi-itpm/internal/server"
	"github.com/gimhantharuke456/sachi-itpm/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =====================
// レスポンス確認用
// =====================

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserDTO struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion int    `json:"tokenVersion"`
	IsActive     bool   `json:"isActive"`
}

type AuthLoginResponse struct {
	User  UserDTO `json:"user"`
	Token struct {
		AccessToken  string `json:"access_token"`
		ExpiresIn    int    `json:"expires_in"`
		TokenVersion int    `json:"token_version"`
	} `json:"token"`
}

type InventoryDTO struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Slug  string          `json:"slug"`
	Price decimal.Decimal `json:"price"`
}

type OrderDTO struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	TotalBill    decimal.Decimal `json:"totalBill"`
	Discount     decimal.Decimal `json:"discount"`
	CouponCode   *string         `json:"couponCode"`
	User         *UserDTO        `json:"user"`
	OrderedItems []struct {
		InventoryID string        `json:"inventoryId"`
		Quantity    int64         `json:"quantity"`
		Inventory   *InventoryDTO `json:"inventory"`
	} `json:"orderedItems"`
}

type QuoteDTO struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	CouponDiscount decimal.Decimal `json:"couponDiscount"`
	PointsDiscount decimal.Decimal `json:"pointsDiscount"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
}

type PointsDTO struct {
	UserID  string `json:"userId"`
	Balance int64  `json:"balance"`
}

type AuditLogDTO struct {
	ActorUserID  string `json:"actorUserId"`
	Action       string `json:"action"`
	ResourceType string `json:"resourceType"`
	ResourceID   string `json:"resourceId"`
}

// =====================
// helper
// =====================

type TestClient struct {
	t       *testing.T
	BaseURL string
}

func newTestClient(t *testing.T) *TestClient {
	t.Helper()

	cfg := config.Config{
		Port:              "0",
		JWTSecret:         "test-secret",
		AccessTokenTTLMin: 15,
		BcryptCost:        4,
		FEURL:             "*",
		Coupons:           map[string]int{"SAVE10": 10},
	}
	e := server.NewAPI(cfg, testutil.NewDB(t), events.NoopPublisher{}, metrics.New(), zap.NewNop())

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return &TestClient{t: t, BaseURL: ts.URL}
}

func (c *TestClient) do(method, path, bearer string, body interface{}) (int, []byte) {
	c.t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, data
}

func mustDecode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func (c *TestClient) register(username, role string) {
	c.t.Helper()

	status, body := c.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name":          "Test " + username,
		"username":      username,
		"contactNumber": "0771234567",
		"email":         username + "@example.com",
		"password":      "s3cure-pass",
		"role":          role,
	})
	require.Equal(c.t, http.StatusCreated, status, string(body))
}

// 登録してログインし、(userID, token)を返す
func (c *TestClient) signup(username, role string) (string, string) {
	c.t.Helper()

	c.register(username, role)
	status, body := c.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    username + "@example.com",
		"password": "s3cure-pass",
	})
	require.Equal(c.t, http.StatusOK, status, string(body))

	login := mustDecode[AuthLoginResponse](c.t, body)
	require.NotEmpty(c.t, login.Token.AccessToken)
	return login.User.ID, login.Token.AccessToken
}

func (c *TestClient) createItem(adminToken, name, price string) InventoryDTO {
	c.t.Helper()

	status, body := c.do(http.MethodPost, "/admin/inventory", adminToken, map[string]interface{}{
		"name":  name,
		"price": json.Number(price),
	})
	require.Equal(c.t, http.StatusCreated, status, string(body))
	return mustDecode[InventoryDTO](c.t, body)
}

// =====================
// auth
// =====================

func TestAuth_RegisterLoginMe(t *testing.T) {
	c := newTestClient(t)

	userID, token := c.signup("alice", "")

	status, body := c.do(http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	me := mustDecode[UserDTO](t, body)
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "USER", me.Role)
	assert.NotContains(t, string(body), "password")

	status, _ = c.do(http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuth_RegisterErrors(t *testing.T) {
	c := newTestClient(t)
	c.register("bob", "User")

	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{
			name:   "missing fields",
			body:   map[string]string{"email": "x@example.com"},
			status: http.StatusBadRequest,
		},
		{
			name: "weak password",
			body: map[string]string{
				"name": "X", "username": "x1", "contactNumber": "1", "email": "x1@example.com", "password": "password123",
			},
			status: http.StatusBadRequest,
		},
		{
			name: "bad role",
			body: map[string]string{
				"name": "X", "username": "x2", "contactNumber": "1", "email": "x2@example.com", "password": "s3cure-pass", "role": "root",
			},
			status: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			body: map[string]string{
				"name": "X", "username": "x3", "contactNumber": "1", "email": "bob@example.com", "password": "s3cure-pass",
			},
			status: http.StatusConflict,
		},
		{
			name: "duplicate username",
			body: map[string]string{
				"name": "X", "username": "bob", "contactNumber": "1", "email": "x4@example.com", "password": "s3cure-pass",
			},
			status: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := c.do(http.MethodPost, "/auth/register", "", tt.body)
			assert.Equal(t, tt.status, status, string(body))
			assert.NotEmpty(t, mustDecode[ErrorResponse](t, body).Error)
		})
	}

	status, body := c.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "bob@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", mustDecode[ErrorResponse](t, body).Error)
}

// 強制ログアウト後は古いトークンが401
func TestAdmin_ForceLogoutRevokesToken(t *testing.T) {
	c := newTestClient(t)

	_, adminToken := c.signup("root", "Admin")
	userID, userToken := c.signup("carol", "")

	status, _ := c.do(http.MethodGet, "/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := c.do(http.MethodPost, "/admin/users/"+userID+"/force-logout", adminToken, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"newTokenVersion":1`)

	status, _ = c.do(http.MethodGet, "/me", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// =====================
// orders
// =====================

func TestAdminOrders_Lifecycle(t *testing.T) {
	c := newTestClient(t)

	adminID, adminToken := c.signup("root", "Admin")
	userID, _ := c.signup("dave", "")
	item := c.createItem(adminToken, "Desk Lamp", "45.50")
	assert.Equal(t, "desk-lamp", item.Slug)

	status, body := c.do(http.MethodPost, "/admin/orders", adminToken, map[string]interface{}{
		"userId":       userID,
		"orderedItems": []map[string]interface{}{{"inventoryId": item.ID, "quantity": 2}},
		"totalBill":    91,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	created := mustDecode[OrderDTO](t, body)
	assert.True(t, created.TotalBill.Equal(decimal.NewFromInt(91)))
	assert.True(t, created.Discount.IsZero())
	require.Len(t, created.OrderedItems, 1)
	require.NotNil(t, created.OrderedItems[0].Inventory)
	assert.Equal(t, "Desk Lamp", created.OrderedItems[0].Inventory.Name)
	require.NotNil(t, created.User)
	assert.Equal(t, userID, created.User.ID)

	status, body = c.do(http.MethodGet, "/admin/orders/customer/"+userID, adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, mustDecode[[]OrderDTO](t, body), 1)

	status, body = c.do(http.MethodPatch, "/admin/orders/"+created.ID, adminToken, map[string]interface{}{
		"discount":   9.1,
		"totalBill":  81.9,
		"couponCode": "SAVE10",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	updated := mustDecode[OrderDTO](t, body)
	assert.True(t, updated.TotalBill.Equal(decimal.RequireFromString("81.9")))
	require.NotNil(t, updated.CouponCode)
	assert.Len(t, updated.OrderedItems, 1)

	status, body = c.do(http.MethodDelete, "/admin/orders/"+created.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	status, _ = c.do(http.MethodGet, "/admin/orders/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = c.do(http.MethodGet, "/admin/audit-logs?resource_type=order&resource_id="+created.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	logs := mustDecode[[]AuditLogDTO](t, body)
	require.Len(t, logs, 2)
	assert.Equal(t, "DELETE_ORDER", logs[0].Action)
	assert.Equal(t, "UPDATE_ORDER", logs[1].Action)
	assert.Equal(t, adminID, logs[0].ActorUserID)

	status, _ = c.do(http.MethodGet, "/admin/audit-logs?limit=abc", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminOrders_Validation(t *testing.T) {
	c := newTestClient(t)

	_, adminToken := c.signup("root", "Admin")
	userID, _ := c.signup("erin", "")
	item := c.createItem(adminToken, "Pen", "1")

	tests := []struct {
		name   string
		body   map[string]interface{}
		status int
	}{
		{
			name:   "no items",
			body:   map[string]interface{}{"userId": userID, "orderedItems": []interface{}{}, "totalBill": 1},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing totalBill",
			body:   map[string]interface{}{"userId": userID, "orderedItems": []map[string]interface{}{{"inventoryId": item.ID, "quantity": 1}}},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown inventory",
			body:   map[string]interface{}{"userId": userID, "orderedItems": []map[string]interface{}{{"inventoryId": "ghost", "quantity": 1}}, "totalBill": 1},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown user",
			body:   map[string]interface{}{"userId": "ghost", "orderedItems": []map[string]interface{}{{"inventoryId": item.ID, "quantity": 1}}, "totalBill": 1},
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := c.do(http.MethodPost, "/admin/orders", adminToken, tt.body)
			assert.Equal(t, tt.status, status, string(body))
		})
	}
}

// =====================
// checkout / points
// =====================

func TestCheckout_CouponAndPoints(t *testing.T) {
	c := newTestClient(t)

	_, adminToken := c.signup("root", "Admin")
	userID, userToken := c.signup("frank", "")
	item := c.createItem(adminToken, "Notebook", "50")

	status, body := c.do(http.MethodPut, "/admin/points/"+userID, adminToken, map[string]interface{}{"balance": 20})
	require.Equal(t, http.StatusOK, status, string(body))

	req := map[string]interface{}{
		"orderedItems":   []map[string]interface{}{{"inventoryId": item.ID, "quantity": 2}},
		"couponCode":     "save10",
		"pointsToRedeem": 5,
	}

	status, body = c.do(http.MethodPost, "/checkout/quote", userToken, req)
	require.Equal(t, http.StatusOK, status, string(body))
	q := mustDecode[QuoteDTO](t, body)
	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, q.CouponDiscount.Equal(decimal.NewFromInt(10)))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(85)))

	status, body = c.do(http.MethodPost, "/checkout", userToken, req)
	require.Equal(t, http.StatusCreated, status, string(body))
	o := mustDecode[OrderDTO](t, body)
	assert.True(t, o.TotalBill.Equal(decimal.NewFromInt(85)))
	assert.True(t, o.Discount.Equal(decimal.NewFromInt(15)))

	status, body = c.do(http.MethodGet, "/me/points", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(15), mustDecode[PointsDTO](t, body).Balance)

	status, body = c.do(http.MethodGet, "/me/orders/"+o.ID, userToken, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = c.do(http.MethodPost, "/checkout", userToken, map[string]interface{}{
		"inventoryId": item.ID,
		"couponCode":  "BOGUS",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid coupon code", mustDecode[ErrorResponse](t, body).Error)

	status, body = c.do(http.MethodGet, "/me/orders", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, mustDecode[[]OrderDTO](t, body), 1)
}

func TestPoints_NegativeBalanceRejected(t *testing.T) {
	c := newTestClient(t)

	_, adminToken := c.signup("root", "Admin")
	userID, _ := c.signup("gina", "")

	status, _ := c.do(http.MethodPut, "/admin/points/"+userID, adminToken, map[string]interface{}{"balance": -1})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := c.do(http.MethodGet, "/admin/points/"+userID, adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, mustDecode[PointsDTO](t, body).Balance)
}

// =====================
// suppliers / inventory
// =====================

func TestSuppliers_CRUD(t *testing.T) {
	c := newTestClient(t)
	_, adminToken := c.signup("root", "Admin")

	status, body := c.do(http.MethodPost, "/admin/suppliers", adminToken, map[string]string{
		"name": "Paper Co", "email": "bad-email", "contactNumber": "011", "address": "Colombo",
	})
	assert.Equal(t, http.StatusBadRequest, status, string(body))

	status, body = c.do(http.MethodPost, "/admin/suppliers", adminToken, map[string]string{
		"name": "Paper Co", "email": "sales@paper.co", "contactNumber": "011", "address": "Colombo",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	id := mustDecode[struct {
		ID string `json:"id"`
	}](t, body).ID

	status, _ = c.do(http.MethodDelete, "/admin/suppliers/"+id, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = c.do(http.MethodGet, "/admin/suppliers/"+id, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestInventory_PublicSearch(t *testing.T) {
	c := newTestClient(t)
	_, adminToken := c.signup("root", "Admin")
	c.createItem(adminToken, "Blue Pen", "1.50")
	c.createItem(adminToken, "Stapler", "7")

	status, body := c.do(http.MethodGet, "/inventory?q=pen", "", nil)
	require.Equal(t, http.StatusOK, status)
	items := mustDecode[[]InventoryDTO](t, body)
	require.Len(t, items, 1)
	assert.Equal(t, "Blue Pen", items[0].Name)

	status, _ = c.do(http.MethodPost, "/admin/inventory", adminToken, map[string]interface{}{"name": "No Price"})
	assert.Equal(t, http.StatusBadRequest, status)
}

// =====================
// health / metrics
// =====================

func TestHealthAndMetrics(t *testing.T) {
	c := newTestClient(t)

	status, body := c.do(http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"database":"up"`)

	status, body = c.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(string(body), `http_requests_total{method="GET",route="/healthz",status="200"} 1`), string(body))
}
