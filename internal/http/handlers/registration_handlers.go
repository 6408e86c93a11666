package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/praveshgrewal/UCMS/domain"
)

// RegistrationHandlers handles alumni registration HTTP requests
type RegistrationHandlers struct {
	regSvc domain.RegistrationService
}

// NewRegistrationHandlers creates new registration handlers
func NewRegistrationHandlers(regSvc domain.RegistrationService) *RegistrationHandlers {
	return &RegistrationHandlers{regSvc: regSvc}
}

// RegisterRequest represents a registration submission
type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	AlternatePhone      string `json:"alternate_phone,omitempty"`
	PhotoURL            string `json:"photo_url,omitempty"`
	AcademicAssociation string `json:"academic_association,omitempty"`
	JoiningYearUG       string `json:"joining_year_ug,omitempty"`
	JoiningYearPG       string `json:"joining_year_pg,omitempty"`
	Specialty           string `json:"specialty,omitempty"`
	Country             string `json:"country,omitempty"`
	State               string `json:"state,omitempty"`
	City                string `json:"city,omitempty"`
	WorkAssociation     string `json:"work_association,omitempty"`
	Designation         string `json:"designation,omitempty"`
	Hospital            string `json:"hospital,omitempty"`
}

// VerifyRequest carries the codes for each channel present on the profile
type VerifyRequest struct {
	ProfileID uint   `json:"profile_id" binding:"required"`
	PhoneCode string `json:"phone_code,omitempty"`
	EmailCode string `json:"email_code,omitempty"`
}

// ResendRequest asks for a fresh code on one channel
type ResendRequest struct {
	Contact string `json:"contact" binding:"required"`
	Channel string `json:"channel" binding:"required,oneof=phone email"`
}

// Register handles a registration submission
func (h *RegistrationHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := &domain.Profile{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		AlternatePhone:      req.AlternatePhone,
		PhotoURL:            req.PhotoURL,
		AcademicAssociation: req.AcademicAssociation,
		JoiningYearUG:       req.JoiningYearUG,
		JoiningYearPG:       req.JoiningYearPG,
		Specialty:           req.Specialty,
		Country:             req.Country,
		State:               req.State,
		City:                req.City,
		WorkAssociation:     req.WorkAssociation,
		Designation:         req.Designation,
		Hospital:            req.Hospital,
	}

	result, err := h.regSvc.Submit(c.Request.Context(), profile)
	if err != nil {
		switch err {
		case domain.ErrContactRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email or phone number required"})
		case domain.ErrAlreadyRegistered:
			c.JSON(http.StatusConflict, gin.H{"error": "Already registered and approved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit registration"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message":    "Registration received. Please verify your contact details.",
			"profile_id": result.ProfileID,
			"sms_sent":   result.SMSSent,
			"email_sent": result.EmailSent,
		},
	})
}

// Verify handles dual-channel verification of a pending registration
func (h *RegistrationHandlers) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.regSvc.CompleteVerification(c.Request.Context(), req.ProfileID, req.PhoneCode, req.EmailCode)
	if err != nil {
		switch err {
		case domain.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		case domain.ErrCodeInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":    "Contact details verified. Your registration awaits admin review.",
			"profile_id": req.ProfileID,
		},
	})
}

// Resend handles resending a verification code on one channel
func (h *RegistrationHandlers) Resend(c *gin.Context) {
	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.regSvc.Resend(c.Request.Context(), req.Contact, domain.Channel(req.Channel))
	if err != nil {
		switch err {
		case domain.ErrContactRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Contact does not match the requested channel"})
		case domain.ErrResendThrottled:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resend code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Verification code sent",
		},
	})
}
