package handlers

import (
	"errors"
	"net/http"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the token-based admin console under /admin
type AdminHandler struct {
	auth       *services.AdminAuthService
	members    *services.MemberService
	broadcasts *services.BroadcastService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(auth *services.AdminAuthService, members *services.MemberService, broadcasts *services.BroadcastService) *AdminHandler {
	return &AdminHandler{
		auth:       auth,
		members:    members,
		broadcasts: broadcasts,
	}
}

// Login handles POST /admin/login. It only confirms that the token is right.
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.TokenLoginRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.auth.CheckToken(req.Token); err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "Invalid admin token"})
			return
		}
		respondError(c, envelopeOK, err, "Admin token not configured")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Admin authenticated"})
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	members, err := h.members.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, envelopeOK, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "users": members})
}

// GetUser handles GET /admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	member, err := h.members.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, envelopeOK, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": member})
}

// EmailUser handles POST /admin/email/user/:id
func (h *AdminHandler) EmailUser(c *gin.Context) {
	var req models.AdminEmailRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.broadcasts.SendToMember(c.Request.Context(), c.Param("id"), req.Subject, req.Text); err != nil {
		respondError(c, envelopeOK, err, "Failed to send email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Email sent"})
}

// EmailUsers handles POST /admin/email/users
func (h *AdminHandler) EmailUsers(c *gin.Context) {
	var req models.AdminEmailRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.broadcasts.SendToMembers(c.Request.Context(), req.UserIDs, req.Subject, req.Text); err != nil {
		respondError(c, envelopeOK, err, "Failed to send emails")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Emails sent"})
}

// EmailAll handles POST /admin/email/all
func (h *AdminHandler) EmailAll(c *gin.Context) {
	var req models.AdminEmailRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.broadcasts.SendToAll(c.Request.Context(), req.Subject, req.Text); err != nil {
		respondError(c, envelopeOK, err, "Failed to send emails")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Emails sent to all users"})
}
