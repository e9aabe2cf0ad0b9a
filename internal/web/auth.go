// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/kryptotracker/internal/platform/request"
	"github.com/taibuivan/kryptotracker/internal/platform/respond"
	"github.com/taibuivan/kryptotracker/internal/platform/validate"
	"github.com/taibuivan/kryptotracker/pkg/slice"
)

// Notifications of the account pages.
const (
	MsgLoginSuccess    = "Login erfolgreich! Weiterleitung..."
	MsgRegisterSuccess = "Registrierung erfolgreich! Weiterleitung..."
	MsgLogoutSuccess   = "Logout erfolgreich! Weiterleitung..."
	MsgLogoutFailed    = "Fehler beim Logout."
	MsgSettingsSaved   = "Profil erfolgreich gespeichert."
)

// maxFormMemory bounds urlencoded and small multipart forms.
const maxFormMemory = 1 << 20

// registerFields lists the register inputs in form order with the labels
// the user sees.
var registerFields = []struct{ name, label string }{
	{"username", "Username"},
	{"email", "E-Mail"},
	{"first_name", "Vorname"},
	{"last_name", "Nachname"},
	{"password", "Passwort"},
	{"passwordConfirmed", "Passwort wiederholen"},
}

// # Login

/*
GET /login.

Description: Shows the login form.
*/
func (handler *Handler) loginForm(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "login", view{Title: "Login"})
}

/*
POST /login.

Request:
  - email: string
  - password: string

Response:
  - 303: token stored, redirect to the dashboard
  - 4xx: form re-rendered with the error lines
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Login"}
	if err := requestutil.ParseForm(request, maxFormMemory); err != nil {
		handler.fail(writer, request, "login", page, err)
		return
	}
	page.Form = request.PostForm

	input := kryptoapi.LoginInput{
		Email:    requestutil.Form(request, "email"),
		Password: requestutil.RawForm(request, "password"),
	}

	validator := &validate.Validator{}
	validator.Required("email", "E-Mail", input.Email).
		Required("password", "Passwort", input.Password)
	if err := validator.Err(); err != nil {
		handler.fail(writer, request, "login", page, err)
		return
	}

	if err := handler.api.Login(request.Context(), store(request), input); err != nil {
		handler.fail(writer, request, "login", page, err)
		return
	}

	handler.succeed(writer, request, MsgLoginSuccess, constants.RouteDashboard)
}

// # Register

func (handler *Handler) registerForm(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "register", view{Title: "Registrieren"})
}

/*
POST /register.

Description: Creates an account. Empty fields and a mismatching password
confirmation are reported without contacting the backend.

Response:
  - 303: token stored, redirect to the dashboard
  - 4xx: form re-rendered with the error lines
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Registrieren"}
	if err := requestutil.ParseForm(request, maxFormMemory); err != nil {
		handler.fail(writer, request, "register", page, err)
		return
	}
	page.Form = request.PostForm

	input := kryptoapi.RegisterInput{
		Username:          requestutil.Form(request, "username"),
		Email:             requestutil.Form(request, "email"),
		FirstName:         requestutil.Form(request, "first_name"),
		LastName:          requestutil.Form(request, "last_name"),
		Password:          requestutil.RawForm(request, "password"),
		PasswordConfirmed: requestutil.RawForm(request, "passwordConfirmed"),
	}

	validator := &validate.Validator{}
	for _, field := range registerFields {
		validator.Required(field.name, field.label, request.PostFormValue(field.name))
	}
	validator.Match("passwordConfirmed", input.Password, input.PasswordConfirmed, validate.MsgPasswordMismatch)
	if err := validator.Err(); err != nil {
		handler.fail(writer, request, "register", page, err)
		return
	}

	if err := handler.api.Register(request.Context(), store(request), input); err != nil {
		handler.fail(writer, request, "register", page, withoutBackendRequired(err))
		return
	}

	handler.succeed(writer, request, MsgRegisterSuccess, constants.RouteDashboard)
}

// withoutBackendRequired drops the backend's generic empty-field lines: the
// form already reports empty fields by their label.
func withoutBackendRequired(err error) error {
	appError := apperr.As(err)
	if appError == nil || appError.Code != apperr.CodeValidation {
		return err
	}

	kept := slice.Filter(appError.Details, func(detail apperr.FieldError) bool {
		return detail.Message != validate.MsgBackendRequired
	})
	if len(kept) == 0 || len(kept) == len(appError.Details) {
		return err
	}

	filtered := *appError
	filtered.Details = kept
	filtered.Message = kept[0].Message
	return &filtered
}

// # Logout

/*
POST /logout.

Description: Revokes the token. The session is logged out whatever the
backend answers.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	message := MsgLogoutSuccess
	if err := handler.api.Logout(ctx, store(request)); err != nil && !kryptoapi.IsSessionExpired(err) {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "logout_failed", slog.String("error", err.Error()))
		message = MsgLogoutFailed
	}

	store(request).SetNotification(message)
	respond.Redirect(writer, request, constants.RouteLanding)
}

// # Settings

/*
GET /user/settings.

Description: Shows the profile of the account, prefilled.
*/
func (handler *Handler) settingsForm(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Einstellungen"}

	user, err := handler.api.CurrentUser(request.Context(), store(request))
	if err != nil {
		handler.fail(writer, request, "settings", page, err)
		return
	}

	page.Data = user
	page.Form = map[string][]string{
		"username":   {user.Username},
		"email":      {user.Email},
		"first_name": {user.FirstName},
		"last_name":  {user.LastName},
	}
	handler.render(writer, request, http.StatusOK, "settings", page)
}

/*
PUT /api/user-edit/{token} through POST /user/settings.

Request:
  - username, email, first_name, last_name: string (empty keeps the value)
  - password, passwordConfirmed: string (required, must match)
*/
func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Einstellungen"}
	if err := requestutil.ParseForm(request, maxFormMemory); err != nil {
		handler.fail(writer, request, "settings", page, err)
		return
	}
	page.Form = request.PostForm

	input := kryptoapi.UserUpdateInput{
		Username:          requestutil.Form(request, "username"),
		Email:             requestutil.Form(request, "email"),
		FirstName:         requestutil.Form(request, "first_name"),
		LastName:          requestutil.Form(request, "last_name"),
		Password:          requestutil.RawForm(request, "password"),
		PasswordConfirmed: requestutil.RawForm(request, "passwordConfirmed"),
	}

	validator := &validate.Validator{}
	validator.Email("email", input.Email).
		Required("password", "Passwort", input.Password).
		Required("passwordConfirmed", "Passwort wiederholen", input.PasswordConfirmed).
		Match("passwordConfirmed", input.Password, input.PasswordConfirmed, validate.MsgPasswordMismatch)
	if err := validator.Err(); err != nil {
		handler.fail(writer, request, "settings", page, err)
		return
	}

	if err := handler.api.UpdateUser(request.Context(), store(request), input); err != nil {
		handler.fail(writer, request, "settings", page, err)
		return
	}

	handler.succeed(writer, request, MsgSettingsSaved, "/user/settings")
}
