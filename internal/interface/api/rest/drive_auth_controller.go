package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"finance-tracker-api/internal/application/ports"
	"finance-tracker-api/internal/infrastructure/jwt"
	driveauthDTO "finance-tracker-api/internal/interface/api/rest/dto/driveauth"
	"finance-tracker-api/internal/interface/api/rest/middleware"
)

type DriveAuthController struct {
	driveAuthService ports.DriveAuthService
	logger           *zap.Logger
}

func NewDriveAuthController(
	r *gin.Engine,
	driveAuthService ports.DriveAuthService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *DriveAuthController {
	dc := &DriveAuthController{
		driveAuthService: driveAuthService,
		logger:           logger,
	}

	auth := middleware.AuthMiddleware(jwtService)
	r.GET(RouteDriveOAuthAuthorize, auth, dc.AuthorizeHandler)
	r.POST(RouteDriveOAuthExchange, auth, dc.ExchangeHandler)
	r.DELETE(RouteDriveOAuthRevoke, auth, dc.RevokeHandler)
	r.GET(RouteDriveOAuthStatus, auth, dc.StatusHandler)

	return dc
}

func (dc *DriveAuthController) AuthorizeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, driveauthDTO.AuthorizeResponse{
		URL: dc.driveAuthService.AuthorizationURL(),
	})
}

func (dc *DriveAuthController) ExchangeHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	var req driveauthDTO.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ex, err := dc.driveAuthService.ExchangeCode(c.Request.Context(), userID, req.Code)
	if err != nil {
		respondError(c, dc.logger, err)
		return
	}

	c.JSON(http.StatusOK, driveauthDTO.ExchangeResponse{
		AccessToken:   ex.AccessToken,
		ExpiresAt:     ex.ExpiresAt,
		RefreshStored: ex.RefreshStored,
	})
}

func (dc *DriveAuthController) RevokeHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	if err := dc.driveAuthService.Revoke(c.Request.Context(), userID); err != nil {
		respondError(c, dc.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (dc *DriveAuthController) StatusHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	connected, err := dc.driveAuthService.Connected(c.Request.Context(), userID)
	if err != nil {
		respondError(c, dc.logger, err)
		return
	}

	c.JSON(http.StatusOK, driveauthDTO.StatusResponse{Connected: connected})
}
