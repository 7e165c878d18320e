package orders

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/srijeyam/tyrestore-backend/internal/accounts"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
	"github.com/srijeyam/tyrestore-backend/pkg/types"
)

type stubOrdersRepo struct {
	byID      map[string]*Order
	insertErr error
}

func newStubOrdersRepo() *stubOrdersRepo {
	return &stubOrdersRepo{byID: map[string]*Order{}}
}

func (s *stubOrdersRepo) Insert(_ context.Context, order *Order) (*Order, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	order.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	s.byID[order.ID.Hex()] = order
	return order, nil
}

func (s *stubOrdersRepo) FindByID(_ context.Context, id string) (*Order, error) {
	order, ok := s.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return order, nil
}

func (s *stubOrdersRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]Order, error) {
	list := []Order{}
	for _, order := range s.byID {
		if order.UserID == userID {
			list = append(list, *order)
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (s *stubOrdersRepo) ListAll(context.Context) ([]Order, error) {
	list := []Order{}
	for _, order := range s.byID {
		list = append(list, *order)
	}
	sortNewestFirst(list)
	return list, nil
}

func (s *stubOrdersRepo) UpdateStatus(_ context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	order, ok := s.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		order.PaymentStatus = *req.PaymentStatus
	}
	order.UpdatedAt = time.Now().UTC()
	return order, nil
}

func sortNewestFirst(list []Order) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

type stubAccountLookup struct {
	account *accounts.Account
}

func (s *stubAccountLookup) FindByID(context.Context, string) (*accounts.Account, error) {
	if s.account == nil {
		return nil, mongo.ErrNoDocuments
	}
	return s.account, nil
}

type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) OrderPlaced(context.Context, *accounts.Account, *Order) error {
	s.calls++
	return s.err
}

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		Items: []OrderItem{
			{ProductID: "tyre-1", Name: "CrossContact LX", Price: 8999, Quantity: 2},
		},
		TotalAmount: 17998,
		ShippingAddress: &types.ShippingAddress{
			FullName: "Ravi Kumar",
			Address:  "14 MG Road",
			City:     "Chennai",
			State:    "Tamil Nadu",
			Pincode:  "600001",
			Phone:    "9840012345",
		},
		PaymentMethod: PaymentCOD,
	}
}

func buildService(t *testing.T, repo *stubOrdersRepo, lookup *stubAccountLookup, notifier *stubNotifier) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "orders-test", Level: zerolog.ErrorLevel, Output: io.Discard})
	svc, err := NewService(ServiceParams{
		OrderRepo:   repo,
		AccountRepo: lookup,
		Notifier:    notifier,
		Logger:      logg,
	})
	require.NoError(t, err)
	return svc
}

func seededAccount() *accounts.Account {
	return &accounts.Account{
		ID:       primitive.NewObjectID(),
		Username: "ravi",
		Email:    "ravi@example.com",
	}
}

func TestCreatePersistsAndNotifies(t *testing.T) {
	repo := newStubOrdersRepo()
	account := seededAccount()
	notifier := &stubNotifier{}
	svc := buildService(t, repo, &stubAccountLookup{account: account}, notifier)

	order, err := svc.Create(context.Background(), account.ID.Hex(), validRequest())
	require.NoError(t, err)

	assert.False(t, order.ID.IsZero(), "expected generated order id")
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, PaymentPending, order.PaymentStatus)
	assert.Equal(t, 1, notifier.calls)
	assert.Len(t, repo.byID, 1)
}

func TestCreateNotificationFailureDoesNotFailOrder(t *testing.T) {
	repo := newStubOrdersRepo()
	account := seededAccount()
	notifier := &stubNotifier{err: errors.New("smtp unreachable")}
	svc := buildService(t, repo, &stubAccountLookup{account: account}, notifier)

	order, err := svc.Create(context.Background(), account.ID.Hex(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.False(t, order.ID.IsZero(), "expected the persisted order despite the email failure")
}

func TestCreateCollectsEveryViolation(t *testing.T) {
	repo := newStubOrdersRepo()
	account := seededAccount()
	svc := buildService(t, repo, &stubAccountLookup{account: account}, &stubNotifier{})

	_, err := svc.Create(context.Background(), account.ID.Hex(), CreateOrderRequest{
		Items:       nil,
		TotalAmount: 0,
		ShippingAddress: &types.ShippingAddress{
			FullName: "Ravi Kumar",
			City:     "Chennai",
		},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	want := []string{
		"Order must contain at least one item",
		"Invalid total amount",
		"Address is required",
		"State is required",
		"PIN code is required",
		"Phone number is required",
		"Payment method is required",
	}
	got, ok := typed.Details().([]string)
	require.True(t, ok, "details = %T, want []string", typed.Details())
	assert.Equal(t, want, got)
	assert.Empty(t, repo.byID, "nothing must persist when validation fails")
}

func TestCreateMissingAddressReportsSingleViolation(t *testing.T) {
	account := seededAccount()
	svc := buildService(t, newStubOrdersRepo(), &stubAccountLookup{account: account}, &stubNotifier{})

	req := validRequest()
	req.ShippingAddress = nil
	_, err := svc.Create(context.Background(), account.ID.Hex(), req)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, []string{"Shipping address is required"}, typed.Details())
}

func TestCreateZeroTotalIsRejected(t *testing.T) {
	account := seededAccount()
	svc := buildService(t, newStubOrdersRepo(), &stubAccountLookup{account: account}, &stubNotifier{})

	req := validRequest()
	req.TotalAmount = 0
	_, err := svc.Create(context.Background(), account.ID.Hex(), req)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, []string{"Invalid total amount"}, typed.Details())
}

func TestCreatePersistenceFailureSurfacesInternal(t *testing.T) {
	repo := newStubOrdersRepo()
	repo.insertErr = errors.New("write concern timeout")
	account := seededAccount()
	notifier := &stubNotifier{}
	svc := buildService(t, repo, &stubAccountLookup{account: account}, notifier)

	_, err := svc.Create(context.Background(), account.ID.Hex(), validRequest())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInternal, typed.Code())
	assert.Equal(t, 0, notifier.calls, "no email must be sent when persistence fails")
}

func TestGetEnforcesOwnerOrAdmin(t *testing.T) {
	repo := newStubOrdersRepo()
	account := seededAccount()
	svc := buildService(t, repo, &stubAccountLookup{account: account}, &stubNotifier{})

	order, err := svc.Create(context.Background(), account.ID.Hex(), validRequest())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), account.ID.Hex(), false, order.ID.Hex())
	assert.NoError(t, err, "owner get")

	stranger := primitive.NewObjectID().Hex()
	_, err = svc.Get(context.Background(), stranger, false, order.ID.Hex())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	_, err = svc.Get(context.Background(), stranger, true, order.ID.Hex())
	assert.NoError(t, err, "admin get")

	_, err = svc.Get(context.Background(), account.ID.Hex(), true, primitive.NewObjectID().Hex())
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListAllReturnsNewestFirst(t *testing.T) {
	repo := newStubOrdersRepo()
	account := seededAccount()
	svc := buildService(t, repo, &stubAccountLookup{account: account}, &stubNotifier{})

	first, err := svc.Create(context.Background(), account.ID.Hex(), validRequest())
	require.NoError(t, err)
	repo.byID[first.ID.Hex()].CreatedAt = time.Now().Add(-time.Hour)

	second, err := svc.Create(context.Background(), account.ID.Hex(), validRequest())
	require.NoError(t, err)

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "expected newest order first")
}

func TestUpdateStatusValidatesEnums(t *testing.T) {
	repo := newStubOrdersRepo()
	account := seededAccount()
	svc := buildService(t, repo, &stubAccountLookup{account: account}, &stubNotifier{})

	order, err := svc.Create(context.Background(), account.ID.Hex(), validRequest())
	require.NoError(t, err)

	bad := Status("Teleported")
	_, err = svc.UpdateStatus(context.Background(), order.ID.Hex(), UpdateStatusRequest{Status: &bad})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	shipped := StatusShipped
	paid := PaymentPaid
	updated, err := svc.UpdateStatus(context.Background(), order.ID.Hex(), UpdateStatusRequest{
		Status:        &shipped,
		PaymentStatus: &paid,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, updated.Status)
	assert.Equal(t, PaymentPaid, updated.PaymentStatus)

	_, err = svc.UpdateStatus(context.Background(), order.ID.Hex(), UpdateStatusRequest{})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
