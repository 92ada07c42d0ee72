package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aruizmx/invitados/internal/entity"
	"github.com/aruizmx/invitados/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type GuestHandler struct {
	guestService service.GuestService
}

func NewGuestHandler(guestService service.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

func (h *GuestHandler) CreateGuest(c *gin.Context) {
	var req service.GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guest, err := h.guestService.CreateGuest(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, entity.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, guest)
}

func (h *GuestHandler) GetGuest(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return
	}

	guest, err := h.guestService.GetGuest(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, guest)
}

func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return
	}

	var req service.GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guest, err := h.guestService.UpdateGuest(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrGuestNotFound):
			// The row may have been deleted from another session between
			// loading the form and saving it.
			logrus.WithField("guest_id", id).Warn("Update target no longer exists")
			c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, guest)
}

func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return
	}

	if err := h.guestService.DeleteGuest(c.Request.Context(), id); err != nil {
		if errors.Is(err, entity.ErrGuestNotFound) {
			logrus.WithField("guest_id", id).Warn("Delete target no longer exists")
			c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GuestHandler) ListGuests(c *gin.Context) {
	filter, confirmedOnly := listParams(c)

	guests, err := h.guestService.ListGuests(c.Request.Context(), filter, confirmedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if guests == nil {
		guests = []*entity.Guest{}
	}
	c.JSON(http.StatusOK, guests)
}

func (h *GuestHandler) ExportGuests(c *gin.Context) {
	filter, confirmedOnly := listParams(c)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="guests.csv"`)

	if err := h.guestService.ExportCSV(c.Request.Context(), c.Writer, filter, confirmedOnly); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
}

func (h *GuestHandler) GetStats(c *gin.Context) {
	stats, err := h.guestService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func listParams(c *gin.Context) (string, bool) {
	filter := c.Query("q")
	confirmedOnly := c.Query("confirmed") == "true"
	return filter, confirmedOnly
}
