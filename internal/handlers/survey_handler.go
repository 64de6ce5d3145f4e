package handlers

import (
	"net/http"

	"drone-survey-service/internal/models"
	"drone-survey-service/internal/services"
	"drone-survey-service/utils"

	"github.com/gin-gonic/gin"
)

type SurveyHandler struct {
	surveyService    services.ISurveyService
	telemetryService *services.TelemetryService
}

func NewSurveyHandler(surveyService services.ISurveyService, telemetryService *services.TelemetryService) *SurveyHandler {
	return &SurveyHandler{
		surveyService:    surveyService,
		telemetryService: telemetryService,
	}
}

func (h *SurveyHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	surveyGr := router.Group("/api/v1/surveys")
	surveyGr.Use(m.RequireAuth())

	surveyGr.GET("", h.GetAllSurveys)
	surveyGr.GET("/:id", h.GetSurveyByID)
	surveyGr.GET("/:id/findings", h.GetSurveyFindings)
	surveyGr.GET("/:id/telemetry", h.GetSurveyTelemetry)
	surveyGr.GET("/:id/statistics", h.GetSurveyStatistics)

	surveyGr.POST("", h.CreateSurvey)
	surveyGr.POST("/:id/findings", h.AddSurveyFindings)

	surveyGr.PATCH("/:id", h.UpdateSurvey)
	surveyGr.PATCH("/:id/status", h.UpdateSurveyStatus)
}

func (h *SurveyHandler) GetAllSurveys(c *gin.Context) {
	surveys, err := h.surveyService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"surveys": surveys}))
}

func (h *SurveyHandler) GetSurveyByID(c *gin.Context) {
	survey, err := h.surveyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"survey": survey}))
}

func (h *SurveyHandler) GetSurveyFindings(c *gin.Context) {
	survey, err := h.surveyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"findings": survey.Findings}))
}

func (h *SurveyHandler) GetSurveyTelemetry(c *gin.Context) {
	if _, err := h.surveyService.Get(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	stats := h.telemetryService.SurveyStatistics(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"telemetry": stats}))
}

func (h *SurveyHandler) GetSurveyStatistics(c *gin.Context) {
	survey, err := h.surveyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"statistics": survey.Data}))
}

func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req models.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	survey, err := h.surveyService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(gin.H{"survey": survey}))
}

func (h *SurveyHandler) AddSurveyFindings(c *gin.Context) {
	var req models.AddFindingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	survey, err := h.surveyService.AddFindings(c.Request.Context(), c.Param("id"), req.Findings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"survey": survey}))
}

func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	var req models.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	survey, err := h.surveyService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"survey": survey}))
}

func (h *SurveyHandler) UpdateSurveyStatus(c *gin.Context) {
	var req models.UpdateSurveyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	survey, err := h.surveyService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"survey": survey}))
}
