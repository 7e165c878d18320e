package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/srijeyam/tyrestore-backend/internal/accounts"
	"github.com/srijeyam/tyrestore-backend/internal/auth"
	"github.com/srijeyam/tyrestore-backend/internal/cart"
	"github.com/srijeyam/tyrestore-backend/internal/catalog"
	"github.com/srijeyam/tyrestore-backend/internal/notifications"
	"github.com/srijeyam/tyrestore-backend/internal/orders"
	pkgauth "github.com/srijeyam/tyrestore-backend/pkg/auth"
	"github.com/srijeyam/tyrestore-backend/pkg/config"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
)

type noopAuthService struct{}

func (noopAuthService) Signup(context.Context, auth.SignupRequest) (*auth.Session, error) {
	return &auth.Session{Token: "t"}, nil
}
func (noopAuthService) AdminSignup(context.Context, auth.SignupRequest) (*auth.Session, error) {
	return &auth.Session{Token: "t"}, nil
}
func (noopAuthService) Login(context.Context, auth.LoginRequest) (*auth.Session, error) {
	return &auth.Session{Token: "t"}, nil
}

type noopCatalog struct{}

func (noopCatalog) List(context.Context) ([]catalog.Tyre, error) { return []catalog.Tyre{}, nil }
func (noopCatalog) Get(context.Context, string) (*catalog.Tyre, error) {
	return &catalog.Tyre{}, nil
}
func (noopCatalog) Create(context.Context, catalog.TyreInput) (*catalog.Tyre, error) {
	return &catalog.Tyre{ID: primitive.NewObjectID()}, nil
}
func (noopCatalog) Update(context.Context, string, catalog.TyreInput) (*catalog.Tyre, error) {
	return &catalog.Tyre{}, nil
}
func (noopCatalog) Delete(context.Context, string) error { return nil }

type noopCart struct{}

func (noopCart) List(context.Context, string) ([]cart.Item, error) { return []cart.Item{}, nil }
func (noopCart) Add(context.Context, string, cart.AddItemRequest) (*cart.Item, error) {
	return &cart.Item{}, nil
}
func (noopCart) SetQuantity(context.Context, string, string, int) (*cart.Item, error) {
	return &cart.Item{}, nil
}
func (noopCart) Remove(context.Context, string, string) error { return nil }
func (noopCart) Clear(context.Context, string) error          { return nil }

type noopOrders struct{}

func (noopOrders) Create(context.Context, string, orders.CreateOrderRequest) (*orders.Order, error) {
	return &orders.Order{ID: primitive.NewObjectID()}, nil
}
func (noopOrders) ListOwn(context.Context, string) ([]orders.Order, error) {
	return []orders.Order{}, nil
}
func (noopOrders) Get(context.Context, string, bool, string) (*orders.Order, error) {
	return &orders.Order{}, nil
}
func (noopOrders) ListAll(context.Context) ([]orders.Order, error) {
	return []orders.Order{}, nil
}
func (noopOrders) UpdateStatus(context.Context, string, orders.UpdateStatusRequest) (*orders.Order, error) {
	return &orders.Order{}, nil
}

type noopAccounts struct{}

func (noopAccounts) FindByID(context.Context, string) (*accounts.Account, error) {
	return nil, mongo.ErrNoDocuments
}

type noopConfirmation struct{}

func (noopConfirmation) SendConfirmation(context.Context, notifications.ConfirmationRequest) error {
	return nil
}

func testConfig(env string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: env, CORSOrigins: []string{"http://localhost:5173"}},
		JWT: config.JWTConfig{Secret: "router-test-secret", Issuer: "tyrestore", ExpirationDays: 7},
	}
}

func testRouter(t *testing.T, env string) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "routes-test", Level: zerolog.ErrorLevel, Output: io.Discard})
	return NewRouter(Deps{
		Config:        testConfig(env),
		Logger:        logg,
		AccountRepo:   noopAccounts{},
		AuthService:   noopAuthService{},
		Catalog:       noopCatalog{},
		Cart:          noopCart{},
		Orders:        noopOrders{},
		Notifications: noopConfirmation{},
	})
}

func mintTestToken(t *testing.T, isAdmin bool) string {
	t.Helper()
	token, err := pkgauth.MintToken(testConfig("dev").JWT, time.Now(), pkgauth.TokenPayload{
		UserID:  primitive.NewObjectID().Hex(),
		Email:   "user@example.com",
		IsAdmin: isAdmin,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := testRouter(t, "dev")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestTyreCatalogIsPublic(t *testing.T) {
	router := testRouter(t, "dev")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tyres/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAdminTyreMutationRequiresToken(t *testing.T) {
	router := testRouter(t, "dev")

	req := httptest.NewRequest(http.MethodPost, "/api/tyres/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without a token", rec.Code)
	}
}

func TestAdminTyreMutationRejectsNonAdmin(t *testing.T) {
	router := testRouter(t, "dev")

	req := httptest.NewRequest(http.MethodPost, "/api/tyres/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, false))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 for a non-admin", rec.Code)
	}
}

func TestAdminTyreMutationAcceptsAdmin(t *testing.T) {
	router := testRouter(t, "dev")

	body := `{"name":"Pilot Sport 5","brand":"Michelin","price":14500}`
	req := httptest.NewRequest(http.MethodPost, "/api/tyres/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, true))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminSignupHiddenInProduction(t *testing.T) {
	router := testRouter(t, "production")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/admin-signup", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code == http.StatusCreated || rec.Code == http.StatusOK {
		t.Fatalf("admin signup must not be mounted in production, got %d", rec.Code)
	}
}

func TestAdminOrdersRequireAdminFlag(t *testing.T) {
	router := testRouter(t, "dev")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, false))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, true))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for admin", rec.Code)
	}
}
