package http

import "github.com/gin-gonic/gin"

// RegisterPublic attaches the read-only routes consumed by the public site.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
}

// RegisterAdmin attaches the mutating routes. The caller is expected to guard
// the group with the admin middleware.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
