package handlers

import (
	"net/http"

	"drone-survey-service/internal/models"
	"drone-survey-service/internal/services"
	"drone-survey-service/utils"

	"github.com/gin-gonic/gin"
)

type FacilityHandler struct {
	facilityService services.IFacilityService
	missionService  services.IMissionService
}

func NewFacilityHandler(facilityService services.IFacilityService, missionService services.IMissionService) *FacilityHandler {
	return &FacilityHandler{
		facilityService: facilityService,
		missionService:  missionService,
	}
}

func (h *FacilityHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	facilityGr := router.Group("/api/v1/facilities")
	facilityGr.Use(m.RequireAuth())

	facilityGr.GET("", h.GetAllFacilities)
	facilityGr.GET("/:id", h.GetFacilityByID)
	facilityGr.GET("/:id/missions", h.GetFacilityMissions)
	facilityGr.GET("/:id/drones", h.GetFacilityDrones)

	facilityGr.POST("", h.CreateFacility)

	facilityGr.PATCH("/:id", h.UpdateFacility)
}

func (h *FacilityHandler) GetAllFacilities(c *gin.Context) {
	facilities, err := h.facilityService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"facilities": facilities,
		"count":      len(facilities),
	}))
}

func (h *FacilityHandler) GetFacilityByID(c *gin.Context) {
	facility, err := h.facilityService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"facility": facility}))
}

func (h *FacilityHandler) GetFacilityMissions(c *gin.Context) {
	if _, err := h.facilityService.Get(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	missions, err := h.missionService.ListByFacility(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"missions": missions,
		"count":    len(missions),
	}))
}

func (h *FacilityHandler) GetFacilityDrones(c *gin.Context) {
	if _, err := h.facilityService.Get(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	drones, err := h.facilityService.Drones(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"drones": drones,
		"count":  len(drones),
	}))
}

func (h *FacilityHandler) CreateFacility(c *gin.Context) {
	var req models.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	facility, err := h.facilityService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(gin.H{"facility": facility}))
}

func (h *FacilityHandler) UpdateFacility(c *gin.Context) {
	var req models.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	facility, err := h.facilityService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"facility": facility}))
}
