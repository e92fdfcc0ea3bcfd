package controller

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/mmeshcher/antrian-client/internal/api"
	"github.com/mmeshcher/antrian-client/internal/apperr"
	"github.com/mmeshcher/antrian-client/internal/builder"
	"github.com/mmeshcher/antrian-client/internal/session"
	"github.com/mmeshcher/antrian-client/internal/validation"
)

type entity string

const (
	entityAccount   entity = "account"
	entityCustomer  entity = "customer"
	entityProduct   entity = "product"
	entityQueue     entity = "queue"
	entityDashboard entity = "dashboard"
)

func (e entity) plural() string {
	if e == entityDashboard {
		return "the dashboard"
	}
	return string(e) + "s"
}

type operation string

const (
	opFetch         operation = "fetch"
	opSearch        operation = "search"
	opCreate        operation = "create"
	opUpdate        operation = "update"
	opDelete        operation = "delete"
	opSubmit        operation = "submit"
	opAddLine       operation = "add_line"
	opLogin         operation = "login"
	opRegister      operation = "register"
	opProfile       operation = "profile"
	opUpdateProfile operation = "update_profile"
	opLogout        operation = "logout"
)

// action возвращает фразу «что не удалось сделать» для сообщения об ошибке.
func action(e entity, op operation) string {
	switch op {
	case opFetch:
		return "load " + e.plural()
	case opSearch:
		return "search " + e.plural()
	case opCreate, opUpdate, opDelete:
		return string(op) + " the " + string(e)
	case opSubmit:
		return "submit the queue"
	case opAddLine:
		return "add the product"
	case opLogin:
		return "log in"
	case opRegister:
		return "create the account"
	case opProfile:
		return "load your profile"
	case opUpdateProfile:
		return "update your profile"
	case opLogout:
		return "log out"
	}
	return string(op) + " the " + string(e)
}

type activity uint8

const (
	activityFetch activity = iota
	activityCreate
	activityUpdate
	activityDelete
	activityLogin
	activityRegister
)

var loadingPools = map[activity][]string{
	activityFetch:    {"Loading…", "Fetching the latest data…", "Hang on, syncing…", "Almost there…"},
	activityCreate:   {"Saving…", "Creating…", "Writing it down…"},
	activityUpdate:   {"Updating…", "Saving changes…", "Applying your edits…"},
	activityDelete:   {"Deleting…", "Removing…", "Cleaning up…"},
	activityLogin:    {"Signing in…", "Checking your credentials…", "Opening your shop…"},
	activityRegister: {"Creating your account…", "Setting things up…", "Preparing your shop…"},
}

// loadingMessage выбирает надпись для состояния Loading. На логику не влияет.
func loadingMessage(a activity) string {
	pool := loadingPools[a]
	if len(pool) == 0 {
		return "Loading…"
	}
	return pool[rand.Intn(len(pool))]
}

// translate переводит исходную ошибку в ошибку с сообщением для пользователя.
func translate(e entity, op operation, err error) *apperr.Error {
	kind := apperr.Classify(err)

	var msg string
	switch kind {
	case apperr.KindValidation:
		msg = validationMessage(err)
	case apperr.KindAuth:
		switch {
		case errors.Is(err, session.ErrUnauthenticated):
			msg = "Please log in to continue"
		case op == opLogin:
			msg = "Invalid email or password"
		default:
			msg = "Your session has expired, please log in again"
		}
	case apperr.KindConflict:
		if op == opRegister {
			msg = "This email is already registered"
		} else {
			msg = fmt.Sprintf("This %s already exists", e)
		}
	case apperr.KindNotFound:
		msg = capitalize(string(e)) + " not found"
	case apperr.KindNetwork:
		msg = "Unable to reach the server, check your connection"
	case apperr.KindServer:
		msg = fmt.Sprintf("The server could not %s, please try again later", action(e, op))
	case apperr.KindUnknown:
		msg = fmt.Sprintf("Failed to %s", action(e, op))
	}

	return apperr.New(kind, msg, err)
}

func validationMessage(err error) string {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return capitalize(vErr.Field) + " " + vErr.Reason
	}

	var pErr *builder.PreconditionError
	if errors.As(err, &pErr) {
		switch {
		case pErr.MissingCustomer && pErr.MissingLines:
			return "Select a customer and add at least one product"
		case pErr.MissingCustomer:
			return "Select a customer first"
		default:
			return "Add at least one product"
		}
	}

	var sErr *api.StatusError
	if errors.As(err, &sErr) && sErr.Message != "" {
		return sErr.Message
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "The request was rejected, check the entered data"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
