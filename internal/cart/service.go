package cart

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/srijeyam/tyrestore-backend/pkg/db"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
)

const lineNotFoundMessage = "Cart item not found"

// Service defines the behavior needed by the cart controller.
type Service interface {
	List(ctx context.Context, userID string) ([]Item, error)
	Add(ctx context.Context, userID string, req AddItemRequest) (*Item, error)
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (*Item, error)
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

type cartRepository interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Item, error)
	FindLine(ctx context.Context, userID primitive.ObjectID, productID string) (*Item, error)
	Insert(ctx context.Context, item *Item) (*Item, error)
	SetQuantity(ctx context.Context, userID primitive.ObjectID, productID string, quantity int) (*Item, error)
	DeleteLine(ctx context.Context, userID primitive.ObjectID, productID string) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type service struct {
	lines cartRepository
}

// NewService constructs a cart service with the provided repository.
func NewService(repo cartRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	return &service{lines: repo}, nil
}

func (s *service) List(ctx context.Context, userID string) ([]Item, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	items, err := s.lines.ListByUser(ctx, uid)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}
	return items, nil
}

// Add merges into an existing (user, product) line by incrementing its
// quantity with the requested amount, or inserts a fresh line.
func (s *service) Add(ctx context.Context, userID string, req AddItemRequest) (*Item, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.lines.FindLine(ctx, uid, req.ProductID)
	switch {
	case err == nil:
		merged, err := s.lines.SetQuantity(ctx, uid, req.ProductID, existing.Quantity+req.Quantity)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge cart line")
		}
		return merged, nil
	case db.IsNoDocuments(err):
		item, err := s.lines.Insert(ctx, &Item{
			UserID:       uid,
			ProductID:    req.ProductID,
			Name:         req.Name,
			Price:        req.Price,
			Image:        req.Image,
			Quantity:     req.Quantity,
			VehicleType:  req.VehicleType,
			VehicleModel: req.VehicleModel,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert cart line")
		}
		return item, nil
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart line")
	}
}

func (s *service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*Item, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.lines.SetQuantity(ctx, uid, productID, quantity)
	if err != nil {
		if db.IsNoDocuments(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, lineNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set cart quantity")
	}
	return item, nil
}

func (s *service) Remove(ctx context.Context, userID, productID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}

	if err := s.lines.DeleteLine(ctx, uid, productID); err != nil {
		if db.IsNoDocuments(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, lineNotFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart line")
	}
	return nil
}

func (s *service) Clear(ctx context.Context, userID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}

	if err := s.lines.Clear(ctx, uid); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func parseUserID(userID string) (primitive.ObjectID, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required")
	}
	return uid, nil
}
