package handlers

import (
	"net/http"
	"strings"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// LegacyHandler serves the routes the older React admin panel calls under /api
type LegacyHandler struct {
	auth     *services.AdminAuthService
	members  *services.MemberService
	settings *services.SettingsService
}

// NewLegacyHandler creates a new LegacyHandler
func NewLegacyHandler(auth *services.AdminAuthService, members *services.MemberService, settings *services.SettingsService) *LegacyHandler {
	return &LegacyHandler{
		auth:     auth,
		members:  members,
		settings: settings,
	}
}

// legacyMember adds the lower-case aliases the old panel reads.
type legacyMember struct {
	*models.Member
	BatchAlias    string `json:"batch"`
	SkillsAlias   string `json:"skills"`
	LanguageAlias string `json:"preferedLanguage"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func toLegacy(members []*models.Member) []legacyMember {
	out := make([]legacyMember, 0, len(members))
	for _, m := range members {
		out = append(out, legacyMember{
			Member:        m,
			BatchAlias:    m.Batch,
			SkillsAlias:   m.Skills,
			LanguageAlias: m.PreferredLanguage,
			CreatedAt:     isoMillis(m.CreatedAt),
			UpdatedAt:     isoMillis(m.UpdatedAt),
		})
	}
	return out
}

func normalizeQuery(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// Login handles POST /api/admin/login
func (h *LegacyHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	_ = c.ShouldBindJSON(&req)

	token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, envelopeSuccess, err, "Failed to login. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"message": "Admin authenticated",
	})
}

// GetRegistrationStatus handles GET /api/settings/registration-status
func (h *LegacyHandler) GetRegistrationStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"isOpen": h.settings.RegistrationOpen(c.Request.Context())})
}

// SetRegistrationStatus handles PUT /api/settings/registration-status
func (h *LegacyHandler) SetRegistrationStatus(c *gin.Context) {
	var req models.RegistrationStatusRequest
	_ = c.ShouldBindJSON(&req)
	open := models.Truthy(req.IsOpen)

	if err := h.settings.SetRegistrationOpen(c.Request.Context(), open); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to update registration status",
			"isOpen":  open,
		})
		return
	}

	state := "CLOSED"
	if open {
		state = "OPEN"
	}
	c.JSON(http.StatusOK, gin.H{
		"isOpen":  open,
		"message": "Registration is now " + state,
	})
}

// ListUsers handles GET /api/users?status=all|active|inactive
func (h *LegacyHandler) ListUsers(c *gin.Context) {
	status := models.ParseMemberStatus(normalizeQuery(c.DefaultQuery("status", "all")))
	members, err := h.members.ListByStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, "", err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, toLegacy(members))
}

// UpdateStatus handles PUT /api/users/:id/status
func (h *LegacyHandler) UpdateStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	_ = c.ShouldBindJSON(&req)

	member, err := h.members.SetActive(c.Request.Context(), c.Param("id"), models.Truthy(req.Active))
	if err != nil {
		respondError(c, "", err, "Failed to update user status")
		return
	}
	c.JSON(http.StatusOK, member)
}

// AddTask handles POST /api/users/:id/task
func (h *LegacyHandler) AddTask(c *gin.Context) {
	var req models.TaskRequest
	_ = c.ShouldBindJSON(&req)

	member, err := h.members.AddTask(c.Request.Context(), c.Param("id"), req.Task)
	if err != nil {
		respondError(c, "", err, "Failed to add task")
		return
	}
	c.JSON(http.StatusOK, member)
}

// ReplaceTasks handles PUT /api/users/:id/updateTasks
func (h *LegacyHandler) ReplaceTasks(c *gin.Context) {
	var req models.TasksRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Tasks == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "tasks must be an array of strings"})
		return
	}

	member, err := h.members.ReplaceTasks(c.Request.Context(), c.Param("id"), *req.Tasks)
	if err != nil {
		respondError(c, "", err, "Failed to update tasks")
		return
	}
	c.JSON(http.StatusOK, member)
}
