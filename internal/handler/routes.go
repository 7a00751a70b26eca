package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vakildesk/vakildesk-api/internal/middleware"
	"github.com/vakildesk/vakildesk-api/internal/service"
)

// Handlers bundles everything RegisterRoutes needs.
type Handlers struct {
	Auth    *AuthHandler
	Cases   *CaseHandler
	Advisor *AdvisorHandler
	Data    *DataHandler
	Metrics *MetricsHandler
}

// RegisterRoutes mounts the API under the given prefix. Login and signed
// file downloads are public; everything else sits behind the JWT guard.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, authSvc *service.AuthService) {
	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)
	api.GET("/files/:token", h.Data.Download)

	secured := api.Group("")
	secured.Use(middleware.JWT(authSvc))

	secured.GET("/auth/me", h.Auth.Me)

	secured.GET("/cases", h.Cases.List)
	secured.POST("/cases", h.Cases.Create)
	secured.GET("/cases/summary", h.Cases.Summary)
	secured.GET("/cases/:id", h.Cases.Get)
	secured.PUT("/cases/:id", h.Cases.Update)
	secured.POST("/cases/:id/predict-stage", h.Advisor.PredictStage)

	secured.GET("/calendar", h.Cases.Calendar)
	secured.GET("/calendar/:date", h.Cases.CalendarOn)

	secured.POST("/drafts", h.Advisor.Draft)
	secured.POST("/drafts/export", h.Advisor.ExportDraft)
	secured.POST("/reviews", h.Advisor.Review)
	secured.POST("/chat", h.Advisor.Chat)

	secured.GET("/data/export", h.Data.Export)
	secured.POST("/data/export", h.Data.ExportStored)
	secured.POST("/data/import", h.Data.Import)
}
