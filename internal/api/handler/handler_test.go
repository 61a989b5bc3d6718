package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elethan/lina/internal/auth"
	"github.com/elethan/lina/internal/dto"
	"github.com/elethan/lina/internal/service"
	pkgerrors "github.com/elethan/lina/pkg/errors"
	"github.com/elethan/lina/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	refreshToken  string
	logoutErr     error
	logoutJTI     string
	meResult      *dto.UserResponse
	meErr         error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest, _ service.ClientMeta) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, token string, _ service.ClientMeta) (*dto.TokenResponse, error) {
	m.refreshToken = token
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, jti string, _ time.Time) error {
	m.logoutJTI = jti
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) PruneSessions(_ context.Context) (int64, error) {
	return 0, nil
}

// ── Mock RequestService / EngineerService ──

type mockRequestService struct {
	listResult   *dto.RequestListResponse
	listQuery    *dto.RequestListQuery
	createResult *dto.CreateRequestResponse
	assignResult *dto.AssignEngineerResponse
	err          error
}

func (m *mockRequestService) List(_ context.Context, q *dto.RequestListQuery) (*dto.RequestListResponse, error) {
	m.listQuery = q
	return m.listResult, m.err
}
func (m *mockRequestService) Create(_ context.Context, _ *dto.CreateRequestRequest) (*dto.CreateRequestResponse, error) {
	return m.createResult, m.err
}
func (m *mockRequestService) AssignEngineer(_ context.Context, _ *dto.AssignEngineerRequest) (*dto.AssignEngineerResponse, error) {
	return m.assignResult, m.err
}

type mockEngineerService struct {
	options []dto.EngineerOption
	err     error
}

func (m *mockEngineerService) ListOptions(_ context.Context) ([]dto.EngineerOption, error) {
	return m.options, m.err
}

// ── Mock WorkOrderService ──

type mockWorkOrderService struct {
	listResult   *dto.WorkOrderListResponse
	createResult *dto.CreateWorkOrderResponse
	detail       *dto.WorkOrderDetailResponse
	gotID        int
	err          error
}

func (m *mockWorkOrderService) List(_ context.Context, _ *dto.WorkOrderListQuery) (*dto.WorkOrderListResponse, error) {
	return m.listResult, m.err
}
func (m *mockWorkOrderService) Create(_ context.Context, _ *dto.CreateWorkOrderRequest) (*dto.CreateWorkOrderResponse, error) {
	return m.createResult, m.err
}
func (m *mockWorkOrderService) GetByID(_ context.Context, id int) (*dto.WorkOrderDetailResponse, error) {
	m.gotID = id
	return m.detail, m.err
}
func (m *mockWorkOrderService) UpdateStatus(_ context.Context, id int, _ *dto.UpdateWorkOrderStatusRequest) (*dto.WorkOrderDetailResponse, error) {
	m.gotID = id
	return m.detail, m.err
}
func (m *mockWorkOrderService) AssignEngineers(_ context.Context, id int, _ *dto.AssignWorkOrderEngineersRequest) (*dto.WorkOrderDetailResponse, error) {
	m.gotID = id
	return m.detail, m.err
}

// ── Mock AssetService / PMService ──

type mockAssetService struct {
	assets []dto.AssetResponse
	err    error
}

func (m *mockAssetService) ListAssets(_ context.Context) ([]dto.AssetResponse, error) {
	return m.assets, m.err
}
func (m *mockAssetService) ListSites(_ context.Context) ([]dto.SiteResponse, error) {
	return []dto.SiteResponse{}, m.err
}
func (m *mockAssetService) ListSystems(_ context.Context) ([]dto.SystemResponse, error) {
	return []dto.SystemResponse{}, m.err
}

type mockPMService struct {
	calendar string
	err      error
}

func (m *mockPMService) ListTasks(_ context.Context, _ *dto.PMTaskQuery) ([]dto.PMTaskResponse, error) {
	return []dto.PMTaskResponse{}, m.err
}
func (m *mockPMService) DueItems(_ context.Context) ([]service.PMDueItem, error) {
	return nil, m.err
}
func (m *mockPMService) Calendar(_ context.Context) (string, error) {
	return m.calendar, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportWorkOrders(_ context.Context, _ *dto.WorkOrderListQuery) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	auth.SetPrincipal(c, &auth.Principal{
		UserID:    "test-user-id",
		Role:      "admin",
		Email:     "admin@lina.test",
		TokenID:   "test-jti",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	})
}

func withAuth(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		setAuth(c)
		h(c)
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "eng@lina.test",
		Password: "Test1234",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			found = true
			if c.Value != "test-refresh-token" {
				t.Errorf("expected cookie value test-refresh-token, got %s", c.Value)
			}
			if !c.HttpOnly {
				t.Error("refresh_token cookie should be HttpOnly")
			}
		}
	}
	if !found {
		t.Error("expected refresh_token cookie to be set")
	}
}

func TestAuthHandler_Login_BadEmail(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, "POST", "/auth/login", jsonBody(map[string]string{"email": "not-an-email", "password": "x"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials}, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{Email: "eng@lina.test", Password: "wrong"}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_FromCookie(t *testing.T) {
	mock := &mockAuthService{refreshResult: &dto.TokenResponse{AccessToken: "new-access", RefreshToken: "new-refresh"}}
	h := NewAuthHandler(mock, nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.refreshToken != "cookie-refresh" {
		t.Errorf("expected cookie token to be used, got %q", mock.refreshToken)
	}
}

func TestAuthHandler_RefreshToken_FromBody(t *testing.T) {
	mock := &mockAuthService{refreshResult: &dto.TokenResponse{AccessToken: "new-access"}}
	h := NewAuthHandler(mock, nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	w := serve(r, "POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{RefreshToken: "body-refresh"}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.refreshToken != "body-refresh" {
		t.Errorf("expected body token to be used, got %q", mock.refreshToken)
	}
}

func TestAuthHandler_RefreshToken_Missing(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	w := serve(r, "POST", "/auth/refresh", jsonBody(map[string]string{}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_Revoked(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrSessionRevoked}, nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	w := serve(r, "POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{RefreshToken: "old"}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, nil)

	r := gin.New()
	r.POST("/auth/logout", withAuth(h.Logout))
	w := serve(r, "POST", "/auth/logout", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.logoutJTI != "test-jti" {
		t.Errorf("expected access jti to be passed, got %q", mock.logoutJTI)
	}
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	mock := &mockAuthService{meResult: &dto.UserResponse{ID: "test-user-id", Name: "Test User"}}
	h := NewAuthHandler(mock, nil)

	r := gin.New()
	r.GET("/auth/me", withAuth(h.GetCurrentUser))
	if w := serve(r, "GET", "/auth/me", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	r = gin.New()
	r.GET("/auth/me", h.GetCurrentUser)
	if w := serve(r, "GET", "/auth/me", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without principal, got %d", w.Code)
	}
}

func TestAuthHandler_GetCurrentUser_NotFound(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{meErr: service.ErrUserNotFound}, nil)

	r := gin.New()
	r.GET("/auth/me", withAuth(h.GetCurrentUser))
	if w := serve(r, "GET", "/auth/me", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RequestHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRequestHandler_ListRequests(t *testing.T) {
	mock := &mockRequestService{listResult: &dto.RequestListResponse{Items: []dto.RequestResponse{}, StatusCounts: map[string]int{}}}
	h := NewRequestHandler(mock, &mockEngineerService{})

	r := gin.New()
	r.GET("/requests", h.ListRequests)
	w := serve(r, "GET", "/requests?search=linac&status=Open&unassigned=true", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	q := mock.listQuery
	if q == nil || q.Search != "linac" || q.Status != "Open" || !q.Unassigned {
		t.Errorf("query not bound: %+v", q)
	}
}

func TestRequestHandler_CreateRequest(t *testing.T) {
	mock := &mockRequestService{createResult: &dto.CreateRequestResponse{RequestID: 7}}
	h := NewRequestHandler(mock, &mockEngineerService{})

	r := gin.New()
	r.POST("/requests", h.CreateRequest)

	w := serve(r, "POST", "/requests", jsonBody(dto.CreateRequestRequest{ReportedBy: "Dr. Grey", CommentText: "Beam drift"}))
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}

	w = serve(r, "POST", "/requests", jsonBody(map[string]string{"reported_by": "Dr. Grey"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing comment, got %d", w.Code)
	}
}

func TestRequestHandler_AssignEngineer_ValidationMessage(t *testing.T) {
	mock := &mockRequestService{err: pkgerrors.NewValidation(service.MsgSelectRequest)}
	h := NewRequestHandler(mock, &mockEngineerService{})

	r := gin.New()
	r.POST("/requests/assign", h.AssignEngineer)
	w := serve(r, "POST", "/requests/assign", jsonBody(dto.AssignEngineerRequest{EngineerID: 1}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Message != service.MsgSelectRequest {
		t.Errorf("expected verbatim message %q, got %q", service.MsgSelectRequest, resp.Message)
	}
}

func TestRequestHandler_AssignEngineer_StoreError(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{err: errors.New("db down")}, &mockEngineerService{})

	r := gin.New()
	r.POST("/requests/assign", h.AssignEngineer)
	w := serve(r, "POST", "/requests/assign", jsonBody(dto.AssignEngineerRequest{RequestIDs: []int{1}, EngineerID: 1}))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestRequestHandler_ListEngineers(t *testing.T) {
	eng := &mockEngineerService{options: []dto.EngineerOption{{ID: 1, Name: "Ada Lovelace"}}}
	h := NewRequestHandler(&mockRequestService{}, eng)

	r := gin.New()
	r.GET("/engineers", h.ListEngineers)
	w := serve(r, "GET", "/engineers", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// WorkOrderHandler Tests
// ═══════════════════════════════════════════════════════════

func TestWorkOrderHandler_Create(t *testing.T) {
	mock := &mockWorkOrderService{createResult: &dto.CreateWorkOrderResponse{WorkOrderID: 3}}
	h := NewWorkOrderHandler(mock)

	r := gin.New()
	r.POST("/work-orders", h.CreateWorkOrder)
	w := serve(r, "POST", "/work-orders", jsonBody(dto.CreateWorkOrderRequest{RequestIDs: []int{1, 2}}))

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestWorkOrderHandler_Create_NoMatch(t *testing.T) {
	h := NewWorkOrderHandler(&mockWorkOrderService{err: service.ErrNoMatchingRequests})

	r := gin.New()
	r.POST("/work-orders", h.CreateWorkOrder)
	w := serve(r, "POST", "/work-orders", jsonBody(dto.CreateWorkOrderRequest{RequestIDs: []int{999}}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Message != "No matching requests found" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestWorkOrderHandler_GetWorkOrder(t *testing.T) {
	mock := &mockWorkOrderService{detail: &dto.WorkOrderDetailResponse{WorkOrderID: 5}}
	h := NewWorkOrderHandler(mock)

	r := gin.New()
	r.GET("/work-orders/:id", h.GetWorkOrder)

	if w := serve(r, "GET", "/work-orders/5", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.gotID != 5 {
		t.Errorf("expected id 5, got %d", mock.gotID)
	}
	if w := serve(r, "GET", "/work-orders/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestWorkOrderHandler_GetWorkOrder_NotFound(t *testing.T) {
	h := NewWorkOrderHandler(&mockWorkOrderService{err: service.ErrWorkOrderNotFound})

	r := gin.New()
	r.GET("/work-orders/:id", h.GetWorkOrder)
	if w := serve(r, "GET", "/work-orders/9", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestWorkOrderHandler_UpdateStatus_Invalid(t *testing.T) {
	h := NewWorkOrderHandler(&mockWorkOrderService{err: pkgerrors.NewValidation(service.MsgInvalidStatus)})

	r := gin.New()
	r.PUT("/work-orders/:id/status", h.UpdateStatus)
	w := serve(r, "PUT", "/work-orders/1/status", jsonBody(dto.UpdateWorkOrderStatusRequest{Status: "Done"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Message != service.MsgInvalidStatus {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestWorkOrderHandler_AssignEngineers_UnknownEngineer(t *testing.T) {
	h := NewWorkOrderHandler(&mockWorkOrderService{err: service.ErrEngineerNotFound})

	r := gin.New()
	r.PUT("/work-orders/:id/engineers", h.AssignEngineers)
	w := serve(r, "PUT", "/work-orders/1/engineers", jsonBody(dto.AssignWorkOrderEngineersRequest{EngineerIDs: []int{42}}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestWorkOrderHandler_List(t *testing.T) {
	mock := &mockWorkOrderService{listResult: &dto.WorkOrderListResponse{Items: []dto.WorkOrderResponse{}}}
	h := NewWorkOrderHandler(mock)

	r := gin.New()
	r.GET("/work-orders", h.ListWorkOrders)
	if w := serve(r, "GET", "/work-orders?status=Open&date_from=2026-01-01", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// InventoryHandler / ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestInventoryHandler_ListAssets(t *testing.T) {
	h := NewInventoryHandler(&mockAssetService{assets: []dto.AssetResponse{{AssetID: 1, SerialNumber: "SN-001"}}}, &mockPMService{})

	r := gin.New()
	r.GET("/assets", h.ListAssets)
	if w := serve(r, "GET", "/assets", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestInventoryHandler_PMCalendar(t *testing.T) {
	h := NewInventoryHandler(&mockAssetService{}, &mockPMService{calendar: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"})

	r := gin.New()
	r.GET("/pm/calendar.ics", h.PMCalendar)
	w := serve(r, "GET", "/pm/calendar.ics", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestExportHandler_ExportWorkOrders(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("xlsx"), filename: "work_orders_20260305.xlsx"}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/export/work-orders", h.ExportWorkOrders)
	w := serve(r, "GET", "/export/work-orders", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename*=UTF-8''work_orders_20260305.xlsx" {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestExportHandler_ExportWorkOrders_BadDate(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: pkgerrors.NewValidation("date_from must be YYYY-MM-DD")})

	r := gin.New()
	r.GET("/export/work-orders", h.ExportWorkOrders)
	if w := serve(r, "GET", "/export/work-orders?date_from=bad", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
