package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/srijeyam/tyrestore-backend/internal/accounts"
	"github.com/srijeyam/tyrestore-backend/internal/auth"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
)

type stubAuthService struct {
	session *auth.Session
	err     error
}

func (s stubAuthService) Signup(context.Context, auth.SignupRequest) (*auth.Session, error) {
	return s.session, s.err
}

func (s stubAuthService) AdminSignup(context.Context, auth.SignupRequest) (*auth.Session, error) {
	return s.session, s.err
}

func (s stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.Session, error) {
	return s.session, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (json.RawMessage, struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}) {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error struct {
			Code    string   `json:"code"`
			Message string   `json:"message"`
			Details []string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope.Data, envelope.Error
}

func TestSignupReturnsCreatedSession(t *testing.T) {
	session := &auth.Session{
		Token: "signed-token",
		User: &accounts.Account{
			ID:       primitive.NewObjectID(),
			Username: "ravi",
			Email:    "ravi@example.com",
		},
	}
	handler := Signup(stubAuthService{session: session}, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/signup",
		`{"username":"ravi","email":"ravi@example.com","password":"wheels123"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	data, _ := decodeEnvelope(t, rec)
	var got auth.Session
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if got.Token != "signed-token" {
		t.Fatalf("token = %q", got.Token)
	}
	if bytes.Contains(data, []byte("password")) {
		t.Fatal("response must not expose the password field")
	}
}

func TestSignupDuplicateEmailReturns400(t *testing.T) {
	handler := Signup(stubAuthService{
		err: pkgerrors.New(pkgerrors.CodeValidation, "User already exists"),
	}, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/signup",
		`{"username":"ravi","email":"ravi@example.com","password":"wheels123"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	_, apiErr := decodeEnvelope(t, rec)
	if apiErr.Message != "User already exists" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestSignupRejectsMalformedBody(t *testing.T) {
	handler := Signup(stubAuthService{}, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/signup", `{"email":"not-an-email"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLoginFailureReturns400WithFixedMessage(t *testing.T) {
	handler := Login(stubAuthService{
		err: pkgerrors.New(pkgerrors.CodeValidation, "Invalid email or password"),
	}, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"ravi@example.com","password":"wrong"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	_, apiErr := decodeEnvelope(t, rec)
	if apiErr.Message != "Invalid email or password" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestLoginSuccessReturnsSession(t *testing.T) {
	session := &auth.Session{
		Token: "signed-token",
		User:  &accounts.Account{ID: primitive.NewObjectID(), Email: "ravi@example.com"},
	}
	handler := Login(stubAuthService{session: session}, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"ravi@example.com","password":"wheels123"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
