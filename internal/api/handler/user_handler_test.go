package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/PankajGoutam/User-Api/internal/api/middleware"
	"github.com/PankajGoutam/User-Api/internal/core/domain"
	"github.com/PankajGoutam/User-Api/internal/core/ports"
)

type stubUserService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	profileFn  func(ctx context.Context, userID string) (*domain.User, error)
	listFn     func(ctx context.Context, callerID string) ([]*domain.User, error)
	updateFn   func(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error)
	deleteFn   func(ctx context.Context, callerRole, email string) error
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubUserService) ListOthers(ctx context.Context, callerID string) ([]*domain.User, error) {
	return s.listFn(ctx, callerID)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, userID, input)
}

func (s *stubUserService) DeleteByEmail(ctx context.Context, callerRole, email string) error {
	return s.deleteFn(ctx, callerRole, email)
}

func newTestContext(t *testing.T, method, target, body string, caller *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != nil {
		c.Set(middleware.ContextUserKey, caller)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

const validRegisterBody = `{
	"name": "Alice",
	"email": "alice@example.com",
	"password": "pass123",
	"dateOfBirth": "1990-04-12",
	"address": {"city": "Pune", "zip": "411001"}
}`

func TestUserHandler_Register_Success(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Email != "alice@example.com" || input.Role != "" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.DateOfBirth.Year() != 1990 {
				t.Fatalf("dateOfBirth not parsed: %v", input.DateOfBirth)
			}
			return &domain.User{ID: "id-1", Name: input.Name, Email: input.Email, Role: domain.RoleUser}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/register", validRegisterBody, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true || resp["msg"] != "User Successfully Created" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["email"] != "alice@example.com" {
		t.Fatalf("unexpected data: %+v", resp["data"])
	}
	if _, leaked := data["password"]; leaked {
		t.Fatalf("password material in response")
	}
}

func TestUserHandler_Register_EmailExists(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrEmailExists
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/register", validRegisterBody, nil)
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["msg"] != "Email Already Exist" {
		t.Fatalf("unexpected msg: %v", resp["msg"])
	}
}

func TestUserHandler_Register_ValidationErrorsCollected(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	// Missing name, malformed email, short password: all three reported.
	body := `{"email":"not-an-email","password":"ab","dateOfBirth":"1990-04-12","address":{"city":"Pune"}}`
	c, rec := newTestContext(t, http.MethodPost, "/register", body, nil)
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["msg"] != "Validation Errors" {
		t.Fatalf("unexpected msg: %v", resp["msg"])
	}
	errs, ok := resp["errors"].([]any)
	if !ok || len(errs) != 3 {
		t.Fatalf("expected 3 collected errors, got %+v", resp["errors"])
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	stub := &stubUserService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "pass123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "id-1", Email: email, Role: domain.RoleUser}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/login", `{"email":"alice@example.com","password":"pass123"}`, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["msg"] != "Login Successfully" || resp["token"] != "token123" || resp["tokenType"] != "Bearer" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestUserHandler_Login_UserNotFound(t *testing.T) {
	stub := &stubUserService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/login", `{"email":"ghost@example.com","password":"pass123"}`, nil)
	_ = h.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["msg"] != "User Not Found" {
		t.Fatalf("unexpected msg: %v", resp["msg"])
	}
}

func TestUserHandler_Login_WrongPassword(t *testing.T) {
	stub := &stubUserService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/login", `{"email":"alice@example.com","password":"badpass"}`, nil)
	_ = h.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["msg"] != "Email and Password is incorrect!" {
		t.Fatalf("unexpected msg: %v", resp["msg"])
	}
}

func TestUserHandler_Profile_FreshLookup(t *testing.T) {
	stub := &stubUserService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "id-1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			// Fresh record differs from the token snapshot.
			return &domain.User{ID: userID, Name: "Alice Renamed", Email: "alice@example.com"}, nil
		},
	}
	h := NewUserHandler(stub)

	caller := &domain.User{ID: "id-1", Name: "Alice"}
	c, rec := newTestContext(t, http.MethodGet, "/profile", "", caller)
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["msg"] != "Profile Data" {
		t.Fatalf("unexpected msg: %v", resp["msg"])
	}
	if data := resp["data"].(map[string]any); data["name"] != "Alice Renamed" {
		t.Fatalf("expected fresh record, got %+v", data)
	}
}

func TestUserHandler_List_Success(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context, callerID string) ([]*domain.User, error) {
			if callerID != "id-1" {
				t.Fatalf("unexpected caller id: %s", callerID)
			}
			return []*domain.User{{ID: "id-2", Email: "peer@example.com"}}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/", "", &domain.User{ID: "id-1"})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	users, ok := resp["data"].([]any)
	if !ok || len(users) != 1 {
		t.Fatalf("unexpected data: %+v", resp["data"])
	}
}

func TestUserHandler_Update_PasswordOnlyWhenSupplied(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
			if input.Password != nil {
				t.Fatalf("password should be nil when omitted")
			}
			if input.Name == nil || *input.Name != "Alice Renamed" {
				t.Fatalf("unexpected name: %v", input.Name)
			}
			return &domain.User{ID: userID, Name: *input.Name}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/update", `{"name":"Alice Renamed"}`, &domain.User{ID: "id-1"})
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["msg"] != "User profile updated successfully" {
		t.Fatalf("unexpected msg: %v", resp["msg"])
	}
}

func TestUserHandler_Update_UserMissing(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/update", `{"name":"Ghost"}`, &domain.User{ID: "gone"})
	_ = h.Update(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["msg"] != "User does not exist!" {
		t.Fatalf("unexpected msg: %v", resp["msg"])
	}
}

func TestUserHandler_Delete_AdminOnly(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, callerRole, email string) error {
			if callerRole != domain.RoleUser {
				t.Fatalf("unexpected role: %s", callerRole)
			}
			return domain.ErrAdminOnly
		},
	}
	h := NewUserHandler(stub)

	caller := &domain.User{ID: "id-1", Role: domain.RoleUser}
	c, rec := newTestContext(t, http.MethodDelete, "/delete", `{"email":"victim@example.com"}`, caller)
	_ = h.Delete(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["msg"] != "Only Admin Can Access This" {
		t.Fatalf("unexpected msg: %v", resp["msg"])
	}
}

func TestUserHandler_Delete_TargetMissing(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, callerRole, email string) error {
			return domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	caller := &domain.User{ID: "id-1", Role: domain.RoleAdmin}
	c, rec := newTestContext(t, http.MethodDelete, "/delete", `{"email":"nobody@example.com"}`, caller)
	_ = h.Delete(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["msg"] != "User does not exist!" {
		t.Fatalf("unexpected msg: %v", resp["msg"])
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, callerRole, email string) error {
			if callerRole != domain.RoleAdmin || email != "victim@example.com" {
				t.Fatalf("unexpected args: %s %s", callerRole, email)
			}
			return nil
		},
	}
	h := NewUserHandler(stub)

	caller := &domain.User{ID: "id-1", Role: domain.RoleAdmin}
	c, rec := newTestContext(t, http.MethodDelete, "/delete", `{"email":"victim@example.com"}`, caller)
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["msg"] != "User deleted Successfully" {
		t.Fatalf("unexpected msg: %v", resp["msg"])
	}
}

func TestUserHandler_Profile_MissingContextUser(t *testing.T) {
	stub := &stubUserService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/profile", "", nil)
	err := h.Profile(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}
