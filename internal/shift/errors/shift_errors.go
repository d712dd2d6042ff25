package shifterrors

import (
	"net/http"

	"go-shiftswap/internal/shared/apperror"
)

var (
	ErrReconcileFailed = apperror.New(
		apperror.CodeInternalError,
		"shift reconciliation failed",
		http.StatusInternalServerError,
	)
	ErrEntryConflict = apperror.New(
		apperror.CodeConflict,
		"shift entry was changed by another request, please retry",
		http.StatusConflict,
	)
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift entry not found",
		http.StatusNotFound,
	)
)
