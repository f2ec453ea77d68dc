package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"classifieds-hub/internal/api/response"
	"classifieds-hub/internal/service"
)

const (
	listDefaultPage = 0
	listDefaultSize = 10
)

type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
}

func NewAnnouncementHandler(announcementService *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
	}
}

func RegisterAnnouncementRoutes(group *gin.RouterGroup, announcementService *service.AnnouncementService) {
	if announcementService == nil {
		return
	}

	handler := NewAnnouncementHandler(announcementService)
	ann := group.Group("/announcements")

	ann.POST("", handler.Create)
	ann.GET("", handler.List)
	ann.GET("/:id", handler.GetByID)
	ann.PUT("/:id", handler.Update)
	ann.DELETE("/:id", handler.Delete)
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req service.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, "invalid request body")
		return
	}

	item, err := h.announcementService.Create(c.Request.Context(), req)
	if err != nil {
		handleAnnouncementServiceError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *AnnouncementHandler) GetByID(c *gin.Context) {
	item, err := h.announcementService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleAnnouncementServiceError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	page, err := parseIntParam(c, "page", listDefaultPage)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, "page must be an integer")
		return
	}
	size, err := parseIntParam(c, "size", listDefaultSize)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, "size must be an integer")
		return
	}

	result, err := h.announcementService.List(
		c.Request.Context(),
		c.Query("category"),
		c.Query("dateAfter"),
		c.Query("keyword"),
		page,
		size,
	)
	if err != nil {
		handleAnnouncementServiceError(c, err)
		return
	}

	response.Paginated(c, result.Content, response.Pagination{
		Page:          result.PageNumber,
		PageSize:      result.PageSize,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		Last:          result.Last,
	})
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	editCode, ok := requireEditCode(c)
	if !ok {
		return
	}

	var req service.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, "invalid request body")
		return
	}

	item, err := h.announcementService.Update(c.Request.Context(), c.Param("id"), editCode, req)
	if err != nil {
		handleAnnouncementServiceError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	editCode, ok := requireEditCode(c)
	if !ok {
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), c.Param("id"), editCode); err != nil {
		handleAnnouncementServiceError(c, err)
		return
	}
	response.NoContent(c)
}

func requireEditCode(c *gin.Context) (string, bool) {
	editCode := strings.TrimSpace(c.Query("editCode"))
	if editCode == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, "editCode is required")
		return "", false
	}
	return editCode, true
}

func parseIntParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func handleAnnouncementServiceError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	var fErr *service.FieldValidationError
	var nErr *service.NotificationError

	switch {
	case errors.As(err, &fErr):
		response.FailFields(c, fErr.Fields)
	case errors.As(err, &vErr):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, vErr.Message)
	case errors.Is(err, service.ErrAnnouncementNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, "announcement not found")
	case errors.Is(err, service.ErrInvalidEditCode):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden, "invalid edit code")
	case errors.As(err, &nErr):
		response.Fail(c, http.StatusInternalServerError, response.ErrNotification, "confirmation delivery failed")
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "internal error")
	}
}
