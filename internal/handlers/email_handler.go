package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// EmailHandler serves the audited broadcast routes and the email log under /api/email
type EmailHandler struct {
	broadcasts *services.BroadcastService
	emailLogs  *services.EmailLogService
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(broadcasts *services.BroadcastService, emailLogs *services.EmailLogService) *EmailHandler {
	return &EmailHandler{
		broadcasts: broadcasts,
		emailLogs:  emailLogs,
	}
}

// sentBy names the admin for the audit trail: header first, then body, then "unknown".
func sentBy(c *gin.Context, body models.AuditInfo) string {
	for _, h := range []string{"X-Admin-Email", "x_admin_email"} {
		if v := strings.TrimSpace(c.GetHeader(h)); v != "" {
			return v
		}
	}
	candidate := body.SentBy
	if candidate == "" {
		candidate = body.AdminEmail
	}
	if v := strings.TrimSpace(candidate); v != "" {
		return v
	}
	return models.DefaultSentBy
}

// SendIndividual handles POST /api/email/send-individual
func (h *EmailHandler) SendIndividual(c *gin.Context) {
	var req models.IndividualEmailRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.broadcasts.AuditedSendIndividual(c.Request.Context(), req.UserID, sentBy(c, req.AuditInfo))
	if err != nil {
		respondError(c, envelopeSuccess, err, "Failed to send email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": result.Message})
}

// SendBulk handles POST /api/email/send-bulk
func (h *EmailHandler) SendBulk(c *gin.Context) {
	var req models.AuditInfo
	_ = c.ShouldBindJSON(&req)

	result, err := h.broadcasts.AuditedSendBulk(c.Request.Context(), sentBy(c, req))
	if err != nil {
		respondError(c, envelopeSuccess, err, "Failed to send bulk email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": result.Message})
}

// SendCustom handles POST /api/email/send-custom
func (h *EmailHandler) SendCustom(c *gin.Context) {
	var req models.CustomEmailRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.broadcasts.AuditedSendCustom(c.Request.Context(), services.CustomEmail{
		UserIDs: req.UserIDs,
		Subject: req.Subject,
		HTML:    req.HTMLContent,
		Text:    req.PlainText,
	}, sentBy(c, req.AuditInfo))
	if err != nil {
		status := statusFor(err)
		body := gin.H{"success": false, "message": clientMessage(err, "Failed to send custom email")}
		var berr *services.BroadcastError
		if errors.As(err, &berr) && berr.LogID != nil && status == http.StatusInternalServerError {
			body["emailLogId"] = berr.LogID.Hex()
		}
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, body)
		return
	}

	body := gin.H{"success": true, "message": result.Message}
	if result.LogID != nil {
		body["emailLogId"] = result.LogID.Hex()
	}
	c.JSON(http.StatusOK, body)
}

// emailLogView overrides the log timestamps with millisecond ISO strings.
type emailLogView struct {
	*models.EmailLog
	SentAt    string `json:"sentAt"`
	CreatedAt string `json:"createdAt"`
}

func toEmailLogView(entry *models.EmailLog) emailLogView {
	return emailLogView{
		EmailLog:  entry,
		SentAt:    isoMillis(entry.SentAt),
		CreatedAt: isoMillis(entry.CreatedAt),
	}
}

// ListLogs handles GET /api/email/logs?type=all|individual|bulk|custom
func (h *EmailHandler) ListLogs(c *gin.Context) {
	logs, err := h.emailLogs.List(c.Request.Context(), c.DefaultQuery("type", "all"))
	if err != nil {
		respondError(c, envelopeSuccess, err, "Failed to fetch email logs")
		return
	}
	views := make([]emailLogView, 0, len(logs))
	for _, entry := range logs {
		views = append(views, toEmailLogView(entry))
	}
	c.JSON(http.StatusOK, views)
}

// GetLog handles GET /api/email/logs/:id
func (h *EmailHandler) GetLog(c *gin.Context) {
	entry, err := h.emailLogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, envelopeSuccess, err, "Failed to fetch email log")
		return
	}
	c.JSON(http.StatusOK, toEmailLogView(entry))
}
