package authors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libreria-backend/internal/platform/apperr"
)

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type authorResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

func toResponse(a *Author) authorResponse {
	return authorResponse{ID: a.ID, Name: a.Name, Enabled: a.Enabled}
}

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/authors", h.Create)
	r.POST("/authors/resolve", h.Resolve)
	r.GET("/authors", h.List)
	r.PUT("/authors/:id", h.Rename)
	r.POST("/authors/:id/enable", h.Enable)
	r.POST("/authors/:id/disable", h.Disable)
}

func (h *Handler) Create(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.ErrInvalid("invalid json or missing name")))
		return
	}
	author, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.Header("Location", "/authors/"+author.ID)
	c.JSON(http.StatusCreated, toResponse(author))
}

// POST /authors/resolve
func (h *Handler) Resolve(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.ErrInvalid("invalid json or missing name")))
		return
	}
	author, err := h.svc.ResolveOrCreate(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(author))
}

func (h *Handler) List(c *gin.Context) {
	enabledOnly := c.Query("enabled") == "true" || c.Query("enabled") == "1"
	list, err := h.svc.List(c.Request.Context(), enabledOnly)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	out := make([]authorResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Rename(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.ErrInvalid("invalid json or missing name")))
		return
	}
	author, err := h.svc.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(author))
}

func (h *Handler) Enable(c *gin.Context) {
	author, err := h.svc.SetEnabled(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(author))
}

func (h *Handler) Disable(c *gin.Context) {
	author, err := h.svc.SetEnabled(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(author))
}
