package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeSuccess = 0
)

const (
	ErrValidation   = 40001
	ErrForbidden    = 40301
	ErrNotFound     = 40401
	ErrNotification = 50001
	ErrInternal     = 99999
)

type Response struct {
	Code       int               `json:"code"`
	Message    string            `json:"message"`
	Data       any               `json:"data,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
}

// Pagination mirrors the metadata computed by the store.
type Pagination struct {
	Page          int   `json:"page"`
	PageSize      int   `json:"page_size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	Last          bool  `json:"last"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Paginated(c *gin.Context, data any, page Pagination) {
	c.JSON(http.StatusOK, Response{
		Code:       CodeSuccess,
		Message:    "success",
		Data:       data,
		Pagination: &page,
	})
}

func Fail(c *gin.Context, httpStatus, appCode int, message string) {
	c.JSON(httpStatus, Response{
		Code:    appCode,
		Message: message,
	})
}

// FailFields reports every violated body-field constraint at once.
func FailFields(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    ErrValidation,
		Message: "validation failed",
		Fields:  fields,
	})
}
