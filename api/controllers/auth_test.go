package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avelara/dispatchly-backend/internal/auth"
	"github.com/avelara/dispatchly-backend/internal/users"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
)

type testAuthService struct {
	loginFn   func(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error)
	refreshFn func(ctx context.Context, req auth.RefreshRequest) (*auth.AuthResponse, error)
	logoutFn  func(ctx context.Context, accessID string) error
}

func (s *testAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return nil, nil
}

func (s *testAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.AuthResponse, error) {
	if s.refreshFn != nil {
		return s.refreshFn(ctx, req)
	}
	return nil, nil
}

func (s *testAuthService) Logout(ctx context.Context, accessID string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, accessID)
	}
	return nil
}

type testRegisterService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error)
}

func (s *testRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, req)
	}
	return nil, nil
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &testAuthService{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
			if req.Email != "karim@example.com" {
				t.Fatalf("unexpected email %s", req.Email)
			}
			return &auth.AuthResponse{
				AccessToken:  "access",
				RefreshToken: "refresh",
				User:         &users.UserDTO{ID: 1, Email: req.Email, Role: enums.RoleDriver},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"karim@example.com","password":"s3cret-pass"}`))
	resp := httptest.NewRecorder()
	AuthLogin(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data auth.AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.AccessToken != "access" || envelope.Data.RefreshToken != "refresh" {
		t.Fatalf("unexpected tokens: %+v", envelope.Data)
	}
}

func TestAuthLoginRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"a@b.c","password":"x","admin":true}`))
	resp := httptest.NewRecorder()
	AuthLogin(&testAuthService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginMapsUnauthorized(t *testing.T) {
	svc := &testAuthService{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"karim@example.com","password":"wrong"}`))
	resp := httptest.NewRecorder()
	AuthLogin(svc, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeUnauthorized) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
	if envelope.Error.Message != "invalid credentials" {
		t.Fatalf("unexpected message %s", envelope.Error.Message)
	}
}

func TestAuthRegisterCreated(t *testing.T) {
	svc := &testRegisterService{
		registerFn: func(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
			if req.Role != enums.RoleMerchant {
				t.Fatalf("unexpected role %s", req.Role)
			}
			return &auth.AuthResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"name":"Marie","email":"marie@example.com","password":"s3cret-pass","role":"merchant"}`))
	resp := httptest.NewRecorder()
	AuthRegister(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc := &testRegisterService{
		registerFn: func(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"name":"Marie","email":"marie@example.com","password":"s3cret-pass","role":"merchant"}`))
	resp := httptest.NewRecorder()
	AuthRegister(svc, testLogger())(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestAuthLogoutRevokesCurrentSession(t *testing.T) {
	var revoked string
	svc := &testAuthService{
		logoutFn: func(ctx context.Context, accessID string) error {
			revoked = accessID
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = asActor(req, 7, enums.RoleClient)
	resp := httptest.NewRecorder()
	AuthLogout(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if revoked != "session" {
		t.Fatalf("expected session id from context, got %q", revoked)
	}
}
