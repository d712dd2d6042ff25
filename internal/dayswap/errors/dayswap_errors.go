package dayswaperrors

import (
	"net/http"

	"go-shiftswap/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidSwapRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid swap request id",
		http.StatusBadRequest,
	)
	ErrInvalidApprovalID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid approval id",
		http.StatusBadRequest,
	)
	ErrInvalidWorkPatternID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid compensatory_work_pattern_id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPairsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"at least one date pair is required",
		http.StatusBadRequest,
	)
	ErrSameDayPair = apperror.New(
		apperror.CodeInvalidInput,
		"day_off and day_worked must be different dates",
		http.StatusBadRequest,
	)
	ErrApproversRequired = apperror.New(
		apperror.CodeInvalidInput,
		"at least one approval level is required",
		http.StatusBadRequest,
	)
	ErrApproverIdentityRequired = apperror.New(
		apperror.CodeInvalidInput,
		"each approver needs a user_id or a role",
		http.StatusBadRequest,
	)
	ErrInvalidApprovalLevel = apperror.New(
		apperror.CodeInvalidInput,
		"approval levels must be positive and unique",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status must be PENDING, APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrApprovalNotFound = apperror.New(
		apperror.CodeNotFound,
		"approval not found",
		http.StatusNotFound,
	)
	ErrSwapRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"swap request not found",
		http.StatusNotFound,
	)
	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not the approver for this level",
		http.StatusForbidden,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"this approval has already been decided",
		http.StatusConflict,
	)
	ErrSwapRequestNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending swap requests can be deleted",
		http.StatusBadRequest,
	)
)
