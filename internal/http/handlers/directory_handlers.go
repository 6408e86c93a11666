package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/praveshgrewal/UCMS/domain"
)

// DirectoryHandlers serves the approved-alumni directory search
type DirectoryHandlers struct {
	profileRepo domain.ProfileRepository
}

// NewDirectoryHandlers creates new directory handlers
func NewDirectoryHandlers(profileRepo domain.ProfileRepository) *DirectoryHandlers {
	return &DirectoryHandlers{profileRepo: profileRepo}
}

// Search handles filtered directory lookups. At least one filter must be
// set; an unfiltered scan of the whole directory is not offered.
func (h *DirectoryHandlers) Search(c *gin.Context) {
	filter := domain.DirectoryFilter{
		Name:            c.Query("name"),
		JoiningYear:     c.Query("joining_year"),
		WorkAssociation: c.Query("work_association"),
		Specialty:       c.Query("specialty"),
		Location:        c.Query("location"),
		Designation:     c.Query("designation"),
	}
	if filter.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one search filter is required"})
		return
	}

	profiles, err := h.profileRepo.Search(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	results := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		results = append(results, directoryView(&profiles[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"count":   len(results),
			"results": results,
		},
	})
}

// directoryView is the public projection of an approved profile: contact
// details stay out of directory listings.
func directoryView(p *domain.Profile) gin.H {
	return gin.H{
		"id":                   p.ID,
		"name":                 p.Name,
		"photo_url":            p.PhotoURL,
		"academic_association": p.AcademicAssociation,
		"joining_year_ug":      p.JoiningYearUG,
		"joining_year_pg":      p.JoiningYearPG,
		"specialty":            p.Specialty,
		"country":              p.Country,
		"state":                p.State,
		"city":                 p.City,
		"work_association":     p.WorkAssociation,
		"designation":          p.Designation,
		"hospital":             p.Hospital,
	}
}

// profileView is the owner's and admin's full projection of a profile.
func profileView(p *domain.Profile) gin.H {
	return gin.H{
		"id":                   p.ID,
		"name":                 p.Name,
		"email":                p.Email,
		"phone":                p.Phone,
		"alternate_phone":      p.AlternatePhone,
		"photo_url":            p.PhotoURL,
		"academic_association": p.AcademicAssociation,
		"joining_year_ug":      p.JoiningYearUG,
		"joining_year_pg":      p.JoiningYearPG,
		"specialty":            p.Specialty,
		"country":              p.Country,
		"state":                p.State,
		"city":                 p.City,
		"work_association":     p.WorkAssociation,
		"designation":          p.Designation,
		"hospital":             p.Hospital,
		"status":               p.Status,
		"verified":             p.Verified,
		"created_at":           p.CreatedAt,
		"updated_at":           p.UpdatedAt,
	}
}
