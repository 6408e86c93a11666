package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/praveshgrewal/UCMS/internal/config"
	httpx "github.com/praveshgrewal/UCMS/internal/http"
	"github.com/praveshgrewal/UCMS/internal/http/handlers"
	"github.com/praveshgrewal/UCMS/internal/http/middleware"
	"github.com/praveshgrewal/UCMS/internal/infrastructure/auth"
	"github.com/praveshgrewal/UCMS/internal/infrastructure/database"
	"github.com/praveshgrewal/UCMS/internal/infrastructure/notifications"
	"github.com/praveshgrewal/UCMS/internal/infrastructure/repositories"
	"github.com/praveshgrewal/UCMS/internal/services"
)

func Run(cfg *config.Config) error {
	logger, err := newLogger(cfg.Environment)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	notificationSvc := notifications.NewGateway(
		cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom,
		cfg.SendgridKey, cfg.SendgridFromEmail, cfg.SendgridFromName,
		logger,
	)

	// Repositories
	profileRepo := repositories.NewProfileRepository(gdb)
	codeRepo := repositories.NewCodeRepository(gdb)
	identityRepo := repositories.NewIdentityRepository(gdb)
	loginSessionRepo := repositories.NewLoginSessionRepository(rdb, cfg.LoginSessionTTL)
	sessionRepo := repositories.NewSessionRepository(rdb, cfg.RefreshTTL)

	// Services
	codeConfig := services.CodeConfig{
		Length:       cfg.OTPLength,
		TTL:          cfg.OTPTTL,
		ResendWindow: cfg.OTPResendWindow,
	}
	codeSvc := services.NewCodeService(codeRepo, notificationSvc, rdb, logger, codeConfig)
	regSvc := services.NewRegistrationService(profileRepo, codeSvc, logger, cfg.BlockApprovedDuplicates)
	loginSvc := services.NewLoginService(
		profileRepo, identityRepo, loginSessionRepo, sessionRepo,
		codeSvc, tokenSvc, logger,
		cfg.LoginSessionTTL, cfg.RefreshTTL, cfg.AccessTTL,
	)
	adminSvc := services.NewAdminService(
		profileRepo, identityRepo, sessionRepo,
		passwordSvc, tokenSvc, logger,
		cfg.RefreshTTL, cfg.AccessTTL,
	)

	// Handlers
	regH := handlers.NewRegistrationHandlers(regSvc)
	loginH := handlers.NewLoginHandlers(loginSvc, profileRepo)
	dirH := handlers.NewDirectoryHandlers(profileRepo)
	adminH := handlers.NewAdminHandlers(adminSvc, profileRepo)

	// Middleware
	jwtMW := middleware.NewAuthMW(tokenSvc, sessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(regH, loginH, dirH, adminH, jwtMW, casbinMW)

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
		cas.E.AddPolicy("role_admin", "/auth/logout", "POST")
		cas.E.AddPolicy("role_alumni", "/profile/me", "(GET|PUT)")
		cas.E.AddPolicy("role_alumni", "/auth/logout", "POST")
		cas.E.AddPolicy("role_alumni", "/directory", "GET")
		_ = cas.E.SavePolicy()
		logger.Info("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
