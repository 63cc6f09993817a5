package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.log.LogError(c.Request.Context(), "projects.list", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, listResp{OK: true, Projects: items})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid body"})
		return
	}

	in, err := domain.FormInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		CarbonSaved: carbonText(req.CarbonSaved),
	}.Validate()
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"message": "invalid fields: " + strings.Join(verr.Fields, ", "),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		h.log.LogError(c.Request.Context(), "projects.create", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "failed to create project"})
		return
	}

	h.log.LogInfof(c.Request.Context(), "projects.create", "created project %s", p.ID)
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) delete(c *gin.Context) {
	publicID := strings.TrimSpace(c.Param("public_id"))

	ok, err := h.repo.SoftDelete(c.Request.Context(), publicID)
	if err != nil {
		h.log.LogError(c.Request.Context(), "projects.delete", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "failed to delete project"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "project not found"})
		return
	}

	h.log.LogInfof(c.Request.Context(), "projects.delete", "deleted project %s", publicID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// carbonText renders a decoded carbonSaved value as form text. Anything other
// than a number or string is left empty and fails validation.
func carbonText(v any) string {
	switch n := v.(type) {
	case float64:
		return domain.FormatNumber(n)
	case string:
		return n
	default:
		return ""
	}
}
