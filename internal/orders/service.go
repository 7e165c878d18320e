package orders

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/srijeyam/tyrestore-backend/internal/accounts"
	"github.com/srijeyam/tyrestore-backend/pkg/db"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
	"github.com/srijeyam/tyrestore-backend/pkg/types"
)

const orderNotFoundMessage = "Order not found"

// Service defines the behavior needed by the orders controllers.
type Service interface {
	Create(ctx context.Context, userID string, req CreateOrderRequest) (*Order, error)
	ListOwn(ctx context.Context, userID string) ([]Order, error)
	Get(ctx context.Context, userID string, isAdmin bool, orderID string) (*Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (*Order, error)
}

type orderRepository interface {
	Insert(ctx context.Context, order *Order) (*Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
}

type accountLookup interface {
	FindByID(ctx context.Context, id string) (*accounts.Account, error)
}

// Notifier dispatches order emails. Delivery failures never fail the order.
type Notifier interface {
	OrderPlaced(ctx context.Context, account *accounts.Account, order *Order) error
}

type service struct {
	orders   orderRepository
	accounts accountLookup
	notifier Notifier
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	OrderRepo   orderRepository
	AccountRepo accountLookup
	Notifier    Notifier
	Logger      *logger.Logger
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.AccountRepo == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		orders:   params.OrderRepo,
		accounts: params.AccountRepo,
		notifier: params.Notifier,
		logg:     params.Logger,
	}, nil
}

// Create validates the checkout payload, persists the order, and dispatches
// notification emails. Email failures are logged and swallowed so a placed
// order is always acknowledged.
func (s *service) Create(ctx context.Context, userID string, req CreateOrderRequest) (*Order, error) {
	if violations := validateCreate(req); len(violations) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Order validation failed").WithDetails(violations)
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required")
	}

	account, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		if db.IsNoDocuments(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}

	order, err := s.orders.Insert(ctx, &Order{
		UserID:          uid,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: *req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   PaymentPending,
		Status:          StatusPending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist order")
	}

	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, account, order); err != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{"order_id": order.ID.Hex()})
			s.logg.Error(logCtx, "order.notification.failed", err)
		}
	}

	return order, nil
}

func (s *service) ListOwn(ctx context.Context, userID string) ([]Order, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required")
	}

	orders, err := s.orders.ListByUser(ctx, uid)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return orders, nil
}

// Get returns the order when the caller owns it or holds the admin flag.
func (s *service) Get(ctx context.Context, userID string, isAdmin bool, orderID string) (*Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if db.IsNoDocuments(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, orderNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	if !isAdmin && order.UserID.Hex() != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not allowed to view this order")
	}
	return order, nil
}

func (s *service) ListAll(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list all orders")
	}
	return orders, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (*Order, error) {
	if req.Status == nil && req.PaymentStatus == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No status changes provided")
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Invalid order status: %s", *req.Status))
	}
	if req.PaymentStatus != nil && !req.PaymentStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Invalid payment status: %s", *req.PaymentStatus))
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, req)
	if err != nil {
		if db.IsNoDocuments(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, orderNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	return order, nil
}

// validateCreate collects every violation so the response can report the
// complete list in one round trip.
func validateCreate(req CreateOrderRequest) []string {
	violations := []string{}

	if len(req.Items) == 0 {
		violations = append(violations, "Order must contain at least one item")
	}
	if req.TotalAmount <= 0 {
		violations = append(violations, "Invalid total amount")
	}

	if req.ShippingAddress == nil {
		violations = append(violations, "Shipping address is required")
	} else {
		violations = append(violations, missingAddressFields(*req.ShippingAddress)...)
	}

	if strings.TrimSpace(string(req.PaymentMethod)) == "" {
		violations = append(violations, "Payment method is required")
	} else if !req.PaymentMethod.IsValid() {
		violations = append(violations, fmt.Sprintf("Invalid payment method: %s", req.PaymentMethod))
	}

	return violations
}

func missingAddressFields(addr types.ShippingAddress) []string {
	checks := []struct {
		value   string
		message string
	}{
		{addr.FullName, "Full name is required"},
		{addr.Address, "Address is required"},
		{addr.City, "City is required"},
		{addr.State, "State is required"},
		{addr.Pincode, "PIN code is required"},
		{addr.Phone, "Phone number is required"},
	}

	missing := []string{}
	for _, check := range checks {
		if strings.TrimSpace(check.value) == "" {
			missing = append(missing, check.message)
		}
	}
	return missing
}
