package catalog

import (
	"context"
	"fmt"

	"github.com/srijeyam/tyrestore-backend/pkg/db"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
)

const tyreNotFoundMessage = "Tyre not found"

// Service defines the behavior needed by the tyres controller.
type Service interface {
	List(ctx context.Context) ([]Tyre, error)
	Get(ctx context.Context, id string) (*Tyre, error)
	Create(ctx context.Context, input TyreInput) (*Tyre, error)
	Update(ctx context.Context, id string, input TyreInput) (*Tyre, error)
	Delete(ctx context.Context, id string) error
}

type tyreRepository interface {
	List(ctx context.Context) ([]Tyre, error)
	FindByID(ctx context.Context, id string) (*Tyre, error)
	Insert(ctx context.Context, input TyreInput) (*Tyre, error)
	Replace(ctx context.Context, id string, input TyreInput) (*Tyre, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	tyres tyreRepository
}

// NewService constructs a catalog service with the provided repository.
func NewService(repo tyreRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tyre repository is required")
	}
	return &service{tyres: repo}, nil
}

func (s *service) List(ctx context.Context) ([]Tyre, error) {
	tyres, err := s.tyres.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tyres")
	}
	return tyres, nil
}

func (s *service) Get(ctx context.Context, id string) (*Tyre, error) {
	tyre, err := s.tyres.FindByID(ctx, id)
	if err != nil {
		if db.IsNoDocuments(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, tyreNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tyre")
	}
	return tyre, nil
}

func (s *service) Create(ctx context.Context, input TyreInput) (*Tyre, error) {
	tyre, err := s.tyres.Insert(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create tyre")
	}
	return tyre, nil
}

func (s *service) Update(ctx context.Context, id string, input TyreInput) (*Tyre, error) {
	tyre, err := s.tyres.Replace(ctx, id, input)
	if err != nil {
		if db.IsNoDocuments(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, tyreNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update tyre")
	}
	return tyre, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.tyres.Delete(ctx, id); err != nil {
		if db.IsNoDocuments(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, tyreNotFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete tyre")
	}
	return nil
}
