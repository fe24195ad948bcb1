package handlers

import (
	"net/http"

	"commandcenter-backend/service"
	"commandcenter-backend/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterDeps holds what the HTTP surface is built from
type RouterDeps struct {
	CaseService    *service.CaseService
	ReconService   *service.ReconService
	Logger         *zap.Logger
	Metrics        *telemetry.Metrics
	MaxUploadBytes int64
}

// NewRouter wires every route onto a new gin engine
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))
	if deps.Metrics != nil {
		r.Use(RequestMetrics(deps.Metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	caseHandler := NewCaseHandler(deps.CaseService)
	fileHandler := NewFileHandler(deps.CaseService, deps.MaxUploadBytes)
	reconHandler := NewReconHandler(deps.ReconService)

	api := r.Group("/api")
	{
		api.GET("/dashboard", caseHandler.GetDashboard)

		// Party endpoints
		api.GET("/parties", caseHandler.ListParties)
		api.POST("/parties", caseHandler.CreateParty)
		api.GET("/parties/:id", caseHandler.GetParty)
		api.POST("/parties/:id/intel", caseHandler.AddIntel)
		api.PUT("/parties/:id/intel/:intelId/read", caseHandler.MarkIntelRead)

		// Timeline endpoints
		api.GET("/timeline", caseHandler.ListTimeline)
		api.GET("/timeline/upcoming", caseHandler.UpcomingDeadlines)
		api.POST("/timeline", caseHandler.CreateTimelineEvent)
		api.PUT("/timeline/:id/toggle", caseHandler.ToggleTimelineEvent)

		// File endpoints
		api.GET("/files", fileHandler.ListFiles)
		api.POST("/files/upload", fileHandler.UploadFile)
		api.GET("/files/:id", fileHandler.GetFile)
		api.GET("/files/:id/download", fileHandler.DownloadFile)
		api.PUT("/files/:id/notes", fileHandler.UpdateFileNotes)
		api.DELETE("/files/:id", fileHandler.DeleteFile)

		// Note endpoints
		api.GET("/notes", caseHandler.ListNotes)
		api.POST("/notes", caseHandler.CreateNote)
		api.PUT("/notes/:id/pin", caseHandler.ToggleNotePinned)
		api.DELETE("/notes/:id", caseHandler.DeleteNote)

		// Alert endpoints
		api.GET("/alerts", caseHandler.ListAlerts)
		api.POST("/alerts", caseHandler.CreateAlert)
		api.POST("/alerts/purge", caseHandler.PurgeDismissedAlerts)
		api.PUT("/alerts/:id/dismiss", caseHandler.DismissAlert)

		// Milestone endpoints
		api.GET("/milestones", caseHandler.ListMilestones)
		api.PUT("/milestones/:step/toggle", caseHandler.ToggleMilestone)

		// Recon trigger, GET for cron schedulers
		api.GET("/recon", reconHandler.RunRecon)
		api.POST("/recon", reconHandler.RunRecon)
	}

	return r
}
