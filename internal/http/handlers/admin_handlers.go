package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/praveshgrewal/UCMS/domain"
)

// AdminHandlers handles the admin review workflow HTTP requests
type AdminHandlers struct {
	adminSvc    domain.AdminService
	profileRepo domain.ProfileRepository
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(adminSvc domain.AdminService, profileRepo domain.ProfileRepository) *AdminHandlers {
	return &AdminHandlers{adminSvc: adminSvc, profileRepo: profileRepo}
}

// AdminLoginRequest represents an admin credential login
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries admin edits to a profile's details.
// Review state is not editable here; Approve and Reject own that.
type UpdateProfileRequest struct {
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

// Login handles admin credential authentication
func (h *AdminHandlers) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.adminSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  result.AccessToken,
			"refresh_token": result.RefreshToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"user": gin.H{
				"id":       result.Identity.ID,
				"username": result.Identity.Username,
				"role":     result.Identity.Role,
			},
		},
	})
}

// PendingRequests lists pending registrations awaiting review
func (h *AdminHandlers) PendingRequests(c *gin.Context) {
	profiles, err := h.adminSvc.PendingRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending requests"})
		return
	}

	results := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		results = append(results, profileView(&profiles[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"count":    len(results),
			"requests": results,
		},
	})
}

// GetProfile returns a single profile for review
func (h *AdminHandlers) GetProfile(c *gin.Context) {
	id, ok := h.profileID(c)
	if !ok {
		return
	}

	profile, err := h.profileRepo.FindByID(c.Request.Context(), id)
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

// Approve marks a profile approved and trusts its contact details
func (h *AdminHandlers) Approve(c *gin.Context) {
	h.review(c, h.adminSvc.Approve, "Profile approved")
}

// Reject marks a profile rejected
func (h *AdminHandlers) Reject(c *gin.Context) {
	h.review(c, h.adminSvc.Reject, "Profile rejected")
}

// Delete removes a profile entirely
func (h *AdminHandlers) Delete(c *gin.Context) {
	h.review(c, h.adminSvc.Delete, "Profile deleted")
}

// UpdateProfile handles admin edits to a profile
func (h *AdminHandlers) UpdateProfile(c *gin.Context) {
	id, ok := h.profileID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := &domain.Profile{
		ID:                  id,
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

	if err := h.adminSvc.UpdateProfile(c.Request.Context(), profile); err != nil {
		if err == domain.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":    "Profile updated",
			"profile_id": id,
		},
	})
}

func (h *AdminHandlers) review(c *gin.Context, action func(ctx context.Context, profileID uint) error, message string) {
	id, ok := h.profileID(c)
	if !ok {
		return
	}

	if err := action(c.Request.Context(), id); err != nil {
		if err == domain.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":    message,
			"profile_id": id,
		},
	})
}

func (h *AdminHandlers) profileID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile ID"})
		return 0, false
	}
	return uint(id), true
}
