package publishers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libreria-backend/internal/platform/apperr"
)

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type publisherResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

func toResponse(p *Publisher) publisherResponse {
	return publisherResponse{ID: p.ID, Name: p.Name, Enabled: p.Enabled}
}

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/publishers", h.Create)
	r.POST("/publishers/resolve", h.Resolve)
	r.GET("/publishers", h.List)
	r.PUT("/publishers/:id", h.Rename)
	r.POST("/publishers/:id/enable", h.Enable)
	r.POST("/publishers/:id/disable", h.Disable)
}

func (h *Handler) Create(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.ErrInvalid("invalid json or missing name")))
		return
	}
	publisher, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.Header("Location", "/publishers/"+publisher.ID)
	c.JSON(http.StatusCreated, toResponse(publisher))
}

func (h *Handler) Resolve(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.ErrInvalid("invalid json or missing name")))
		return
	}
	publisher, err := h.svc.ResolveOrCreate(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(publisher))
}

func (h *Handler) List(c *gin.Context) {
	enabledOnly := c.Query("enabled") == "true" || c.Query("enabled") == "1"
	list, err := h.svc.List(c.Request.Context(), enabledOnly)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	out := make([]publisherResponse, 0, len(list))
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
	publisher, err := h.svc.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(publisher))
}

func (h *Handler) Enable(c *gin.Context) {
	publisher, err := h.svc.SetEnabled(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(publisher))
}

func (h *Handler) Disable(c *gin.Context) {
	publisher, err := h.svc.SetEnabled(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(publisher))
}
