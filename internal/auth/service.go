package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/srijeyam/tyrestore-backend/internal/accounts"
	pkgauth "github.com/srijeyam/tyrestore-backend/pkg/auth"
	"github.com/srijeyam/tyrestore-backend/pkg/config"
	"github.com/srijeyam/tyrestore-backend/pkg/db"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
)

const (
	duplicateEmailMessage     = "User already exists"
	invalidCredentialsMessage = "Invalid email or password"

	bcryptCost = 10
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*Session, error)
	AdminSignup(ctx context.Context, req SignupRequest) (*Session, error)
	Login(ctx context.Context, req LoginRequest) (*Session, error)
}

type accountRepository interface {
	Insert(ctx context.Context, dto accounts.CreateAccountDTO) (*accounts.Account, error)
	FindByEmail(ctx context.Context, email string) (*accounts.Account, error)
}

type service struct {
	accounts accountRepository
	jwtCfg   config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	AccountRepo accountRepository
	JWTConfig   config.JWTConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.AccountRepo == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	return &service{
		accounts: params.AccountRepo,
		jwtCfg:   params.JWTConfig,
	}, nil
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	return s.signup(ctx, req, false)
}

// AdminSignup creates a privileged account. Route exposure is gated to
// non-production environments by the router.
func (s *service) AdminSignup(ctx context.Context, req SignupRequest) (*Session, error) {
	return s.signup(ctx, req, true)
}

func (s *service) signup(ctx context.Context, req SignupRequest, isAdmin bool) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	account, err := s.accounts.Insert(ctx, accounts.CreateAccountDTO{
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	})
	if err != nil {
		if db.IsDuplicateKey(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, duplicateEmailMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create account")
	}

	return s.newSession(account)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if db.IsNoDocuments(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidCredentialsMessage)
	}

	return s.newSession(account)
}

func (s *service) newSession(account *accounts.Account) (*Session, error) {
	token, err := pkgauth.MintToken(s.jwtCfg, time.Now(), pkgauth.TokenPayload{
		UserID:  account.ID.Hex(),
		Email:   account.Email,
		IsAdmin: account.IsAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &Session{Token: token, User: account}, nil
}
