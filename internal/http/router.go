package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/praveshgrewal/UCMS/internal/http/handlers"
	"github.com/praveshgrewal/UCMS/internal/http/middleware"
)

func BuildRouter(rh *handlers.RegistrationHandlers, lh *handlers.LoginHandlers, dh *handlers.DirectoryHandlers, ah *handlers.AdminHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", rh.Register)
	auth.POST("/register/verify", rh.Verify)
	auth.POST("/otp/resend", rh.Resend)
	auth.POST("/login", lh.RequestOTP)
	auth.POST("/login/verify", lh.VerifyOTP)

	r.POST("/admin/login", ah.Login)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/profile/me", lh.Me)
	v.PUT("/profile/me", lh.UpdateMe)
	v.POST("/auth/logout", lh.Logout)
	v.GET("/directory", dh.Search)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/requests", ah.PendingRequests)
	adm.GET("/profiles/:id", ah.GetProfile)
	adm.PUT("/profiles/:id", ah.UpdateProfile)
	adm.POST("/profiles/:id/approve", ah.Approve)
	adm.POST("/profiles/:id/reject", ah.Reject)
	adm.DELETE("/profiles/:id", ah.Delete)

	return r
}
