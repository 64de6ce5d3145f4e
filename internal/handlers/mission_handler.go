package handlers

import (
	"net/http"

	"drone-survey-service/internal/models"
	"drone-survey-service/internal/services"
	"drone-survey-service/utils"

	"github.com/gin-gonic/gin"
)

type MissionHandler struct {
	missionService   services.IMissionService
	telemetryService *services.TelemetryService
}

func NewMissionHandler(missionService services.IMissionService, telemetryService *services.TelemetryService) *MissionHandler {
	return &MissionHandler{
		missionService:   missionService,
		telemetryService: telemetryService,
	}
}

func (h *MissionHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	missionGr := router.Group("/api/v1/missions")
	missionGr.Use(m.RequireAuth())

	missionGr.GET("", h.GetAllMissions)
	missionGr.GET("/:id", h.GetMissionByID)
	missionGr.GET("/:id/telemetry", h.GetMissionTelemetry)
	missionGr.GET("/:id/survey", h.GetMissionSurvey)

	missionGr.POST("", h.CreateMission)
	missionGr.POST("/:id/start", h.StartMission)
	missionGr.POST("/:id/pause", h.PauseMission)
	missionGr.POST("/:id/resume", h.ResumeMission)
	missionGr.POST("/:id/abort", h.AbortMission)
	missionGr.POST("/:id/complete", h.CompleteMission)

	missionGr.PATCH("/:id", h.UpdateMission)
}

func (h *MissionHandler) GetAllMissions(c *gin.Context) {
	missions, err := h.missionService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"missions": missions}))
}

func (h *MissionHandler) GetMissionByID(c *gin.Context) {
	mission, err := h.missionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"mission": mission}))
}

func (h *MissionHandler) GetMissionTelemetry(c *gin.Context) {
	// Existence check before generating samples.
	if _, err := h.missionService.Get(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	telemetry := h.telemetryService.MissionTelemetry(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"telemetry": telemetry}))
}

func (h *MissionHandler) GetMissionSurvey(c *gin.Context) {
	survey, err := h.missionService.Survey(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"survey": survey}))
}

func (h *MissionHandler) CreateMission(c *gin.Context) {
	var req models.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	claims, ok := ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.CreateErrorResponse("MISSING_TOKEN", "authorization required"))
		return
	}

	mission, err := h.missionService.Create(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(gin.H{"mission": mission}))
}

func (h *MissionHandler) StartMission(c *gin.Context) {
	mission, err := h.missionService.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"mission": mission}))
}

func (h *MissionHandler) PauseMission(c *gin.Context) {
	mission, err := h.missionService.Pause(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"mission": mission}))
}

func (h *MissionHandler) ResumeMission(c *gin.Context) {
	mission, err := h.missionService.Resume(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"mission": mission}))
}

func (h *MissionHandler) AbortMission(c *gin.Context) {
	mission, err := h.missionService.Abort(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"mission": mission}))
}

func (h *MissionHandler) CompleteMission(c *gin.Context) {
	mission, err := h.missionService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"mission": mission}))
}

func (h *MissionHandler) UpdateMission(c *gin.Context) {
	var req models.UpdateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	mission, err := h.missionService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"mission": mission}))
}
