package handlers

import (
	"errors"
	"net/http"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/ccpc-cuj/membership-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// RegistrationHandler serves the public registration form
type RegistrationHandler struct {
	memberService *services.MemberService
	log           zerolog.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(memberService *services.MemberService, log zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		memberService: memberService,
		log:           log,
	}
}

// Register handles POST /login and POST /api/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			h.log.Debug().Strs("missing", fields).Msg("registration rejected")
		} else {
			h.log.Debug().Err(err).Msg("registration body not decodable")
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "All fields are required"})
		return
	}

	if _, err := h.memberService.Register(c.Request.Context(), &req); err != nil {
		respondError(c, envelopeOK, err, "Something went wrong. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Registration successful. Check your e-mail",
	})
}
