package dayswap

import (
	"net/http"
	"strconv"

	"go-shiftswap/internal/approval"
	"go-shiftswap/internal/middleware"
	"go-shiftswap/internal/shared/apperror"
	"go-shiftswap/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("dayswap.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dayswap.handler")
	}
	return &Handler{service: service, logger: l}
}

func actorFromContext(c *gin.Context) (approval.Actor, bool) {
	userID, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		return approval.Actor{}, false
	}
	return approval.Actor{UserID: userID, Role: c.GetString(middleware.ContextRole)}, true
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("day swap request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeUnauthorized(c *gin.Context) {
	errObj := apperror.ErrUnauthorized
	response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)
	actorID := c.GetString(middleware.ContextUserID)
	h.logger.Debug("http create swap request", zap.String("company_id", companyID), zap.String("actor_id", actorID))

	var req CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create swap request validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString(middleware.ContextCompanyID)

	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.GetAll(ctx, companyID, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString(middleware.ContextCompanyID), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetString(middleware.ContextCompanyID), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) ListPendingApprovals(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		h.writeUnauthorized(c)
		return
	}

	resp, err := h.service.ListPendingForActor(c.Request.Context(), c.GetString(middleware.ContextCompanyID), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Decide(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)
	approvalID := c.Param("approval_id")

	actor, ok := actorFromContext(c)
	if !ok {
		h.writeUnauthorized(c)
		return
	}
	h.logger.Debug("http decide swap approval",
		zap.String("company_id", companyID),
		zap.String("approval_id", approvalID),
		zap.String("actor_id", actor.UserID.String()),
	)

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http decide swap approval validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), companyID, actor, approvalID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
