package notificationerrors

import (
	"net/http"

	"go-shiftswap/internal/shared/apperror"
)

var (
	ErrInvalidRecipient = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification recipient",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"notification kind is required",
		http.StatusBadRequest,
	)
	ErrInvalidEventID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification event id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrDuplicateEvent = apperror.New(
		apperror.CodeConflict,
		"notification already stored for this event",
		http.StatusConflict,
	)
)
