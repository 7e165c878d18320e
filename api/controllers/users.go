package controllers

import (
	"context"
	"net/http"

	"github.com/srijeyam/tyrestore-backend/api/middleware"
	"github.com/srijeyam/tyrestore-backend/api/responses"
	"github.com/srijeyam/tyrestore-backend/internal/accounts"
	"github.com/srijeyam/tyrestore-backend/pkg/db"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
)

type accountFinder interface {
	FindByID(ctx context.Context, id string) (*accounts.Account, error)
}

// CurrentUser returns the authenticated account without its credentials.
func CurrentUser(repo accountFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		account, err := repo.FindByID(r.Context(), userID)
		if err != nil {
			if db.IsNoDocuments(err) {
				err = pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
			} else {
				err = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, account)
	}
}
