package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/core"
)

// authenticate resolves the acting identity from the Authorization header
// when one is present. Requests without a token pass through anonymously;
// requireAuthenticatedUser decides which routes demand an actor.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorization := r.Header.Get("Authorization")
		if authorization != "" {
			authorizationParts := strings.Split(authorization, " ")
			if len(authorizationParts) != 2 || authorizationParts[0] != "Token" {
				app.invalidAuthenticationTokenResponse(w, r, xerrors.New("Authorization header must be in the format 'Token <token>'"))
				return
			}

			claim, err := app.auth.Authenticate(authorizationParts[1])
			if err != nil {
				app.invalidAuthenticationTokenResponse(w, r, err)
				return
			}

			user, err := app.core.GetUserByUsername(r.Context(), claim.Username)
			if err != nil {
				if errors.Is(err, core.NoRecordFound) {
					app.notFoundResponse(w, r)
					return
				}
				app.internalErrorResponse(w, r, err)
				return
			}
			user.Token = authorizationParts[1]
			r = app.auth.SetAuthenticatedUser(r, user)
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) requireAuthenticatedUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !app.auth.IsUserAuthenticated(r) {
			app.authenticationRequiredResponse(w, r, xerrors.Newf("authentication required"))
			return
		}
		next(w, r)
	}
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.internalErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
