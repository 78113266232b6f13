package handlers

import (
	"context"
	"net/http"

	"github.com/ramosdigital/contact-api/internal/api/constants"
	"github.com/ramosdigital/contact-api/internal/api/dto/common"
	"github.com/ramosdigital/contact-api/internal/api/dto/v1/contact"
	"github.com/ramosdigital/contact-api/internal/middleware"
	"github.com/ramosdigital/contact-api/internal/models"
	"github.com/ramosdigital/contact-api/internal/service"
	"github.com/ramosdigital/contact-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactSubmitter processes one submission.
type ContactSubmitter interface {
	Submit(ctx context.Context, sub models.ContactSubmission) service.Result
}

type ContactHandler struct {
	contactService ContactSubmitter
}

func NewContactHandler(contactService ContactSubmitter) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Contact data not found in context")
		return
	}

	req, ok := contactData.(*contact.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid contact data format")
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = c.Query("locale")
	}

	result := h.contactService.Submit(c.Request.Context(), models.ContactSubmission{
		Name:           req.Name,
		Email:          req.Email,
		Type:           req.Type,
		Message:        req.Message,
		Honeypot:       req.HoneypotValue(),
		Locale:         models.Locale(locale),
		RecaptchaToken: req.RecaptchaToken,
		ClientIP:       c.ClientIP(),
		UserAgent:      c.Request.UserAgent(),
		Referrer:       c.Request.Referer(),
		RequestID:      middleware.GetRequestID(c),
	})

	status, code := statusFor(result)
	c.JSON(status, contact.ContactResponse{
		Success: result.Success,
		Error:   result.Message,
		Code:    code,
		Fields:  result.Fields,
	})
}

// statusFor maps a submission result to its HTTP status and error code.
func statusFor(r service.Result) (int, string) {
	if r.Success {
		return http.StatusOK, ""
	}
	switch r.Kind {
	case service.KindValidation:
		return http.StatusBadRequest, string(common.ErrCodeValidation)
	case service.KindDelivery:
		return http.StatusBadGateway, string(common.ErrCodeDelivery)
	default:
		return http.StatusInternalServerError, string(common.ErrCodeInternalServer)
	}
}
