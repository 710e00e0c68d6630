package books

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libreria-backend/internal/platform/apperr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/books", h.Create)
	r.GET("/books", h.List)
	r.GET("/books/:id", h.Get)
	r.PUT("/books/:id", h.Update)
	r.POST("/books/:id/enable", h.Enable)
	r.POST("/books/:id/disable", h.Disable)
}

// POST /books
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.ErrInvalid("invalid json or missing required fields")))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.Header("Location", "/books/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

// GET /books?enabled=
func (h *Handler) List(c *gin.Context) {
	enabledOnly := c.Query("enabled") == "true" || c.Query("enabled") == "1"
	res, err := h.svc.List(c.Request.Context(), enabledOnly)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// PUT /books/:id
func (h *Handler) Update(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.ErrInvalid("invalid json or missing required fields")))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Enable(c *gin.Context) {
	res, err := h.svc.SetEnabled(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Disable(c *gin.Context) {
	res, err := h.svc.SetEnabled(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
