package contact

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the contact-form intake endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type submitReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}

	_, err := h.svc.Submit(c.Request.Context(), Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if err != nil {
		var ferrs FieldErrors
		if errors.As(err, &ferrs) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": ferrs})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Register attaches the contact route, guarded by the rate limiter.
func (h *Handler) Register(rg *gin.RouterGroup, rl *RateLimiter) {
	rg.POST("", rl.Middleware(), h.submit)
}
