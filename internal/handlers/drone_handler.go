package handlers

import (
	"net/http"

	"drone-survey-service/internal/models"
	"drone-survey-service/internal/services"
	"drone-survey-service/utils"

	"github.com/gin-gonic/gin"
)

type DroneHandler struct {
	droneService     services.IDroneService
	missionService   services.IMissionService
	telemetryService *services.TelemetryService
}

func NewDroneHandler(droneService services.IDroneService, missionService services.IMissionService, telemetryService *services.TelemetryService) *DroneHandler {
	return &DroneHandler{
		droneService:     droneService,
		missionService:   missionService,
		telemetryService: telemetryService,
	}
}

func (h *DroneHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	droneGr := router.Group("/api/v1/drones")
	droneGr.Use(m.RequireAuth())

	droneGr.GET("", h.GetAllDrones)
	droneGr.GET("/:id", h.GetDroneByID)
	droneGr.GET("/:id/telemetry", h.GetDroneTelemetry)
	droneGr.GET("/:id/missions", h.GetDroneMissions)

	droneGr.POST("", h.CreateDrone)

	droneGr.PATCH("/:id", h.UpdateDrone)
	droneGr.PATCH("/:id/status", h.UpdateDroneStatus)
	droneGr.PATCH("/:id/maintenance", h.ScheduleMaintenance)
}

func (h *DroneHandler) GetAllDrones(c *gin.Context) {
	drones, err := h.droneService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"drones": drones}))
}

func (h *DroneHandler) GetDroneByID(c *gin.Context) {
	drone, err := h.droneService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"drone": drone}))
}

func (h *DroneHandler) GetDroneTelemetry(c *gin.Context) {
	if _, err := h.droneService.Get(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	telemetry := h.telemetryService.DroneTelemetry(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"telemetry": telemetry}))
}

func (h *DroneHandler) GetDroneMissions(c *gin.Context) {
	missions, err := h.missionService.ListByDrone(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"missions": missions}))
}

func (h *DroneHandler) CreateDrone(c *gin.Context) {
	var req models.CreateDroneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	drone, err := h.droneService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(gin.H{"drone": drone}))
}

func (h *DroneHandler) UpdateDrone(c *gin.Context) {
	var req models.UpdateDroneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	drone, err := h.droneService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"drone": drone}))
}

func (h *DroneHandler) UpdateDroneStatus(c *gin.Context) {
	var req models.UpdateDroneStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	drone, err := h.droneService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"drone": drone}))
}

func (h *DroneHandler) ScheduleMaintenance(c *gin.Context) {
	drone, err := h.droneService.ScheduleMaintenance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"drone": drone}))
}
