package lending

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libreria-backend/internal/platform/apperr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/loans", h.Issue)
	r.GET("/loans", h.List)
	r.GET("/loans/:id", h.Get)
	r.PUT("/loans/:id", h.Modify)
	r.POST("/loans/:id/return", h.Retire)
	r.POST("/loans/:id/reactivate", h.Reactivate)
	r.POST("/loans/:id/enable", h.Enable)
	r.POST("/loans/:id/disable", h.Disable)
}

// POST /loans
func (h *Handler) Issue(c *gin.Context) {
	var req IssueLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.ErrInvalid("invalid json or missing required fields")))
		return
	}
	res, err := h.svc.Issue(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.Header("Location", "/loans/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

// GET /loans?state=&customer_id=&book_id=
func (h *Handler) List(c *gin.Context) {
	f := LoanFilter{
		CustomerID: c.Query("customer_id"),
		BookID:     c.Query("book_id"),
	}
	switch c.Query("state") {
	case "out":
		f.State = StateOut
	case "returned":
		f.State = StateReturned
	}
	res, err := h.svc.List(c.Request.Context(), f)
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

// PUT /loans/:id
func (h *Handler) Modify(c *gin.Context) {
	var req ModifyLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.ErrInvalid("invalid json or missing required fields")))
		return
	}
	res, err := h.svc.Modify(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /loans/:id/return
func (h *Handler) Retire(c *gin.Context) {
	res, err := h.svc.Retire(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /loans/:id/reactivate
func (h *Handler) Reactivate(c *gin.Context) {
	res, err := h.svc.Reactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Enable(c *gin.Context) {
	res, err := h.svc.SetRecordStatus(c.Request.Context(), c.Param("id"), RecordActive)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Disable(c *gin.Context) {
	res, err := h.svc.SetRecordStatus(c.Request.Context(), c.Param("id"), RecordDisabled)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
