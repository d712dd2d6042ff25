package rbac

import "go-shiftswap/internal/domain"

type (
	EnforceRequest     = domain.EnforceRequest
	EnforceResponse    = domain.EnforceResponse
	PermissionResponse = domain.PermissionResponse
)

// CheckQuery is bound from the query string of GET /rbac/check.
type CheckQuery struct {
	Resource string `form:"resource" binding:"required"`
	Action   string `form:"action" binding:"required"`
}
