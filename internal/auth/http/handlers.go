package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studiofolio/portfolio-backend/internal/auth"
)

// Handler bundles the dependencies for auth HTTP endpoints.
type Handler struct {
	gate *auth.Gate
}

func New(gate *auth.Gate) *Handler {
	return &Handler{gate: gate}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email and password are required"})
		return
	}

	res := h.gate.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if !res.Success {
		status := http.StatusUnauthorized
		if res.Error == auth.AccessDeniedMessage {
			status = http.StatusForbidden
		}
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) logout(c *gin.Context) {
	h.gate.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}
