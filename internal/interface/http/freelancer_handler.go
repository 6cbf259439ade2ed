package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/customtee/platform-api/internal/application"
	"github.com/customtee/platform-api/pkg/response"
	"github.com/customtee/platform-api/pkg/validation"
)

type FreelancerHandler struct {
	Review *application.ReviewService
	Logger *logrus.Logger
}

func NewFreelancerHandler(review *application.ReviewService, logger *logrus.Logger) *FreelancerHandler {
	return &FreelancerHandler{Review: review, Logger: logger}
}

type applyRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// Apply serves POST /freelancers/apply. Re-applying resets an existing
// application to PENDING instead of failing.
func (h *FreelancerHandler) Apply(c *gin.Context) {
	// Notes are optional, so a bodyless POST counts as an application
	// with no notes.
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString("userID")
	app, created, err := h.Review.Apply(c.Request.Context(), uid, req.Notes)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("application submit failed")
		response.Error(c, http.StatusInternalServerError, "could not submit application", nil)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"application": app}, "Application submitted.", nil)
}

// Mine serves GET /freelancers/application.
func (h *FreelancerHandler) Mine(c *gin.Context) {
	uid := c.GetString("userID")
	mine, err := h.Review.Mine(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("application lookup failed")
		response.Error(c, http.StatusInternalServerError, "could not load application", nil)
		return
	}
	response.Success(c, http.StatusOK, mine, "", nil)
}
