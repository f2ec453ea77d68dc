package v1

import (
	"github.com/gin-gonic/gin"

	"classifieds-hub/internal/api/response"
	"classifieds-hub/internal/category"
)

type CategoryHandler struct{}

func RegisterCategoryRoutes(group *gin.RouterGroup) {
	handler := &CategoryHandler{}
	group.GET("/categories", handler.List)
}

// List returns every category name accepted by announcement filters.
func (h *CategoryHandler) List(c *gin.Context) {
	response.Success(c, category.Names())
}
