package rbac

import (
	"net/http"
	"strings"

	"go-shiftswap/internal/middleware"
	"go-shiftswap/internal/shared/contextutil"
	"go-shiftswap/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Check reports whether the caller holds resource:action in their company.
func (h *Handler) Check(c *gin.Context) {
	var q CheckQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	req := EnforceRequest{
		UserID:    c.GetString(middleware.ContextUserID),
		CompanyID: c.GetString(middleware.ContextCompanyID),
		Resource:  strings.TrimSpace(q.Resource),
		Action:    strings.TrimSpace(q.Action),
	}

	allowed, err := h.service.Enforce(req)
	if err != nil {
		contextutil.GetLogger(c.Request.Context(), zap.L()).Error("rbac check failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	perms, err := h.service.ListPermissions(c.Request.Context())
	if err != nil {
		contextutil.GetLogger(c.Request.Context(), zap.L()).Error("rbac list permissions failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, perms, nil)
}
