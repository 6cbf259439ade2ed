package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/customtee/platform-api/internal/application"
	"github.com/customtee/platform-api/internal/domain/entity"
	"github.com/customtee/platform-api/pkg/response"
	"github.com/customtee/platform-api/pkg/validation"
)

type AdminHandler struct {
	Review    *application.ReviewService
	Directory *application.DirectoryService
	Logger    *logrus.Logger
}

func NewAdminHandler(review *application.ReviewService, directory *application.DirectoryService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Review: review, Directory: directory, Logger: logger}
}

// ListApplications serves GET /admin/freelancers/applications.
func (h *AdminHandler) ListApplications(c *gin.Context) {
	page, err := h.Review.List(c.Request.Context(), application.ApplicationListParams{
		Status:   c.Query("status"),
		Search:   c.Query("q"),
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
		SortBy:   c.Query("sortBy"),
		SortDir:  c.Query("sortDir"),
		Page:     c.Query("page"),
		PageSize: c.Query("pageSize"),
	})
	if err != nil {
		h.Logger.WithError(err).Error("application listing failed")
		response.Error(c, http.StatusInternalServerError, "could not list applications", nil)
		return
	}
	response.Success(c, http.StatusOK, page, "", nil)
}

// ApproveApplication serves POST /admin/freelancers/:id/approve.
func (h *AdminHandler) ApproveApplication(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Review.Approve(c.Request.Context(), id); err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			response.Error(c, http.StatusNotFound, "application not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("application_id", id).Error("approve failed")
		response.Error(c, http.StatusInternalServerError, "could not approve application", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Application approved.", nil)
}

// RejectApplication serves POST /admin/freelancers/:id/reject.
func (h *AdminHandler) RejectApplication(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Review.Reject(c.Request.Context(), id); err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			response.Error(c, http.StatusNotFound, "application not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("application_id", id).Error("reject failed")
		response.Error(c, http.StatusInternalServerError, "could not reject application", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Application rejected.", nil)
}

// ListUsers serves GET /admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := h.Directory.ListUsers(c.Request.Context(), application.UserListParams{
		Search:   c.Query("q"),
		Role:     c.Query("role"),
		Admin:    c.Query("admin"),
		Active:   c.Query("active"),
		SortBy:   c.Query("sortBy"),
		SortDir:  c.Query("sortDir"),
		Page:     c.Query("page"),
		PageSize: c.Query("pageSize"),
	})
	if err != nil {
		h.Logger.WithError(err).Error("user listing failed")
		response.Error(c, http.StatusInternalServerError, "could not list users", nil)
		return
	}
	response.Success(c, http.StatusOK, page, "", nil)
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=BUYER FREELANCER"`
}

type setAdminRequest struct {
	IsAdmin *bool `json:"isAdmin" binding:"required"`
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetRole serves PATCH /admin/users/:id/role.
func (h *AdminHandler) SetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Directory.SetRole(c.Request.Context(), c.Param("id"), entity.Role(req.Role))
	if err != nil {
		h.writeDirectoryError(c, err, "role update failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "Role updated.", nil)
}

// SetAdmin serves PATCH /admin/users/:id/admin.
func (h *AdminHandler) SetAdmin(c *gin.Context) {
	var req setAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Directory.SetAdmin(c.Request.Context(), c.Param("id"), *req.IsAdmin)
	if err != nil {
		h.writeDirectoryError(c, err, "admin flag update failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "Admin flag updated.", nil)
}

// SetActive serves PATCH /admin/users/:id/active.
func (h *AdminHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Directory.SetActive(c.Request.Context(), c.Param("id"), *req.Active)
	if err != nil {
		h.writeDirectoryError(c, err, "active flag update failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "Account status updated.", nil)
}

func (h *AdminHandler) writeDirectoryError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, application.ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "invalid role", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "user not found", nil)
	default:
		h.Logger.WithError(err).Error(logMsg)
		response.Error(c, http.StatusInternalServerError, "could not update user", nil)
	}
}
