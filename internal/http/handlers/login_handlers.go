package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/praveshgrewal/UCMS/domain"
)

// LoginHandlers handles returning-user OTP login HTTP requests
type LoginHandlers struct {
	loginSvc    domain.LoginService
	profileRepo domain.ProfileRepository
}

// NewLoginHandlers creates new login handlers
func NewLoginHandlers(loginSvc domain.LoginService, profileRepo domain.ProfileRepository) *LoginHandlers {
	return &LoginHandlers{loginSvc: loginSvc, profileRepo: profileRepo}
}

// LoginRequest starts an OTP login for an approved contact
type LoginRequest struct {
	Contact string `json:"contact" binding:"required"`
}

// LoginVerifyRequest confirms the code issued for a login request
type LoginVerifyRequest struct {
	Token string `json:"token" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// UpdateMeRequest carries an alumni's edits to their own profile
type UpdateMeRequest struct {
	Name string `json:"name" binding:"required"`

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

// RequestOTP handles the first login step: issue a code to the contact
func (h *LoginHandlers) RequestOTP(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	login, err := h.loginSvc.RequestLogin(c.Request.Context(), req.Contact)
	if err != nil {
		switch err {
		case domain.ErrContactRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email or phone number is required"})
		case domain.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "No approved profile found for this contact"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start login"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Login code sent",
			"token":   login.Token,
			"channel": login.Channel,
		},
	})
}

// VerifyOTP handles the second login step: confirm the code and mint a session
func (h *LoginHandlers) VerifyOTP(c *gin.Context) {
	var req LoginVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.loginSvc.ConfirmLogin(c.Request.Context(), req.Token, req.Code)
	if err != nil {
		switch err {
		case domain.ErrLoginSessionExpired:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login request expired, please start again"})
		case domain.ErrCodeInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired login code"})
		case domain.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile no longer available"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  result.AccessToken,
			"refresh_token": result.RefreshToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"profile": gin.H{
				"id":     result.Profile.ID,
				"name":   result.Profile.Name,
				"email":  result.Profile.Email,
				"phone":  result.Profile.Phone,
				"status": result.Profile.Status,
			},
		},
	})
}

// Me handles getting the authenticated alumni profile
func (h *LoginHandlers) Me(c *gin.Context) {
	profileID, exists := c.Get("profile_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile not found in context"})
		return
	}

	profile, err := h.profileRepo.FindByID(c.Request.Context(), profileID.(uint))
	if err != nil {
		if err == domain.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profileView(profile)})
}

// UpdateMe handles the authenticated alumni editing their own profile.
// Contact details are not editable here; they anchor verification and
// login and only admins may change them.
func (h *LoginHandlers) UpdateMe(c *gin.Context) {
	profileID, exists := c.Get("profile_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile not found in context"})
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileRepo.FindByID(c.Request.Context(), profileID.(uint))
	if err != nil {
		if err == domain.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	profile.Name = req.Name
	profile.AlternatePhone = req.AlternatePhone
	profile.PhotoURL = req.PhotoURL
	profile.AcademicAssociation = req.AcademicAssociation
	profile.JoiningYearUG = req.JoiningYearUG
	profile.JoiningYearPG = req.JoiningYearPG
	profile.Specialty = req.Specialty
	profile.Country = req.Country
	profile.State = req.State
	profile.City = req.City
	profile.WorkAssociation = req.WorkAssociation
	profile.Designation = req.Designation
	profile.Hospital = req.Hospital

	if err := h.profileRepo.Update(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profileView(profile)})
}

// Logout handles session termination (requires authentication)
func (h *LoginHandlers) Logout(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID not found"})
		return
	}

	if err := h.loginSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Logged out successfully",
		},
	})
}
