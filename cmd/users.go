package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/core"
	"github.com/mingx/socialnet/internal/monitoring"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/internal/validator"
	"github.com/mingx/socialnet/models"
)

type profilePayload struct {
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	Location       *string `json:"location"`
	Website        *string `json:"website"`
	CoverPhoto     *string `json:"cover_photo"`
}

func (app *application) registerUser(w http.ResponseWriter, r *http.Request) {
	type registerUserPayload struct {
		Email    string          `json:"email"`
		Username string          `json:"username"`
		Password string          `json:"password"`
		Profile  *profilePayload `json:"profile"`
	}

	type RegisterUserRequest struct {
		registerUserPayload `json:"user"`
	}

	var registerUserRequest RegisterUserRequest

	if err := app.readJSON(w, r, &registerUserRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	user := &auth.User{
		Email:             strings.TrimSpace(registerUserRequest.Email),
		Username:          strings.TrimSpace(registerUserRequest.Username),
		PlaintextPassword: registerUserRequest.Password,
	}

	v := validator.New()
	v.CheckNotBlank(user.Email, "email", "must be provided")
	v.CheckEmail(user.Email, "must be a valid email address")
	v.CheckNotBlank(user.Username, "username", "must be provided")
	v.Check(len(user.Username) >= 3, "username", "must be at least 3 characters long")
	v.CheckNotBlank(user.PlaintextPassword, "password", "must be provided")
	v.Check(len(user.PlaintextPassword) >= 8, "password", "must be at least 8 characters long")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	if err := user.SetPassword(user.PlaintextPassword); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	profile := &models.Profile{}
	if registerUserRequest.Profile != nil {
		profile.Bio = registerUserRequest.Profile.Bio
		profile.ProfilePicture = registerUserRequest.Profile.ProfilePicture
		profile.Location = registerUserRequest.Profile.Location
		profile.Website = registerUserRequest.Profile.Website
		profile.CoverPhoto = registerUserRequest.Profile.CoverPhoto
	}

	// User and profile are created in one transaction: a user without a
	// profile must never exist.
	newUser, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (*auth.User, error) {
		return app.core.CreateUser(txCtx, user, profile)
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateUsername):
			v.AddError("username", "Username is already in use")
			app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
			return
		case errors.Is(err, core.ErrDuplicateEmail):
			v.AddError("email", "Email address is already in use")
			app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
			return
		default:
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	token, err := app.auth.GenerateToken(newUser)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	monitoring.RegistrationsTotal.Inc()

	newUser.Token = token
	response, err := app.userResponse(r.Context(), newUser)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	type loginUserPayload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	type LoginUserRequest struct {
		loginUserPayload `json:"user"`
	}

	var loginUserRequest LoginUserRequest

	if err := app.readJSON(w, r, &loginUserRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(loginUserRequest.Email, "email", "must be provided")
	v.CheckEmail(loginUserRequest.Email, "must be a valid email address")
	v.CheckNotBlank(loginUserRequest.Password, "password", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	user, err := app.core.GetUserByEmail(r.Context(), loginUserRequest.Email)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			monitoring.LoginFailure.WithLabelValues("unknown_email").Inc()
			app.badRequestResponse(w, r, &AppError{
				ErrorMessage: "Invalid credentials",
				ErrorStack:   err,
			})
			return
		default:
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	match, err := user.IsPasswordMatch(loginUserRequest.Password)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	if !match {
		monitoring.LoginFailure.WithLabelValues("wrong_password").Inc()
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Invalid credentials",
		})
		return
	}

	token, err := app.auth.GenerateToken(user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	user.Token = token
	response, err := app.userResponse(r.Context(), user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, _ := app.auth.GetAuthenticatedUser(r)

	response, err := app.userResponse(r.Context(), user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getUser(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	username := params.ByName("username")

	user, err := app.core.GetUserByUsername(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	response, err := app.userResponse(r.Context(), user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateUser(w http.ResponseWriter, r *http.Request) {
	type updateUserPayload struct {
		Email    *string         `json:"email"`
		Username *string         `json:"username"`
		Password *string         `json:"password"`
		Profile  *profilePayload `json:"profile"`
	}

	type UpdateUserRequest struct {
		updateUserPayload `json:"user"`
	}

	params := httprouter.ParamsFromContext(r.Context())
	target, err := app.core.GetUserByUsername(r.Context(), params.ByName("username"))
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)
	if err := authorizeUserMutation(actor, target); err != nil {
		app.forbiddenResponse(w, r, "You can only update your own profile")
		return
	}

	var updateUserRequest UpdateUserRequest
	if err := app.readJSON(w, r, &updateUserRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	if updateUserRequest.Email != nil {
		target.Email = strings.TrimSpace(*updateUserRequest.Email)
		v.CheckNotBlank(target.Email, "email", "must be provided")
		v.CheckEmail(target.Email, "must be a valid email address")
	}
	if updateUserRequest.Username != nil {
		target.Username = strings.TrimSpace(*updateUserRequest.Username)
		v.CheckNotBlank(target.Username, "username", "must be provided")
		v.Check(len(target.Username) >= 3, "username", "must be at least 3 characters long")
	}
	if updateUserRequest.Password != nil {
		v.Check(len(*updateUserRequest.Password) >= 8, "password", "must be at least 8 characters long")
	}

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	if updateUserRequest.Password != nil {
		if err := target.SetPassword(*updateUserRequest.Password); err != nil {
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	updatedUser, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (*auth.User, error) {
		updated, err := app.core.UpdateUser(txCtx, target)
		if err != nil {
			return nil, err
		}

		// Only the profile fields present in the payload are touched.
		if updateUserRequest.Profile != nil {
			profile, err := app.core.GetProfileByUserID(txCtx, updated.ID)
			if err != nil {
				return nil, err
			}

			patch := updateUserRequest.Profile
			if patch.Bio != nil {
				profile.Bio = patch.Bio
			}
			if patch.ProfilePicture != nil {
				profile.ProfilePicture = patch.ProfilePicture
			}
			if patch.Location != nil {
				profile.Location = patch.Location
			}
			if patch.Website != nil {
				profile.Website = patch.Website
			}
			if patch.CoverPhoto != nil {
				profile.CoverPhoto = patch.CoverPhoto
			}

			if _, err := app.core.UpdateProfile(txCtx, profile); err != nil {
				return nil, err
			}
		}

		return updated, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateUsername):
			v.AddError("username", "Username is already in use")
			app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		case errors.Is(err, core.ErrDuplicateEmail):
			v.AddError("email", "Email address is already in use")
			app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	response, err := app.userResponse(r.Context(), updatedUser)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteUser(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	target, err := app.core.GetUserByUsername(r.Context(), params.ByName("username"))
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	actor, _ := app.auth.GetAuthenticatedUser(r)
	if err := authorizeUserMutation(actor, target); err != nil {
		app.forbiddenResponse(w, r, "You can only delete your own profile")
		return
	}

	// The cascade over posts, follows, likes, reposts, comments, messages
	// and notifications must be all-or-nothing.
	err = app.session.DoTransactionally(r.Context(), func(txCtx context.Context) error {
		return app.core.DeleteUser(txCtx, target.ID)
	})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "User deleted"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// userResponse shapes a user with its nested profile. The password never
// leaves the server.
func (app *application) userResponse(ctx context.Context, user *auth.User) (envelope, error) {
	profile, err := app.core.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	type profileOutput struct {
		Bio            *string `json:"bio"`
		ProfilePicture *string `json:"profile_picture"`
	}

	type output struct {
		ID       int64         `json:"id"`
		Username string        `json:"username"`
		Email    string        `json:"email"`
		Token    string        `json:"token,omitempty"`
		Profile  profileOutput `json:"profile"`
	}

	return envelope{
		"user": &output{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Token:    user.Token,
			Profile: profileOutput{
				Bio:            profile.Bio,
				ProfilePicture: profile.ProfilePicture,
			},
		},
	}, nil
}
