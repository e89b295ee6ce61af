package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studiofolio/portfolio-backend/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if body, ok := h.cache.Get(ctx); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
	}

	items, err := h.store.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load projects"})
		return
	}

	if h.cache != nil {
		if body, err := json.Marshal(gin.H{"success": true, "projects": items}); err == nil {
			h.cache.Set(ctx, body)
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project": p})
}

func (h *Handler) create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid form"})
		return
	}

	fields := fieldsFromForm(form)
	image, closeImage, err := imageFromForm(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid image"})
		return
	}
	defer closeImage()

	id, err := h.store.Add(c.Request.Context(), fields, image)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

func (h *Handler) update(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid form"})
		return
	}

	fields := fieldsFromForm(form)
	image, closeImage, err := imageFromForm(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid image"})
		return
	}
	defer closeImage()

	if err := h.store.Update(c.Request.Context(), c.Param("id"), fields, image); err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// writeStoreError maps store failures onto HTTP responses: field-keyed
// validation errors become 400, unknown ids 404, everything else a generic
// 500 carrying the failing step's message.
func (h *Handler) writeStoreError(c *gin.Context, err error) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": verrs})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}
