package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/terratale/ledgerd/internal/core/domain"
	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/dto"
)

// scheduleHandler handles recurring payment requests and the manual
// driver trigger.
type scheduleHandler struct {
	scheduleService portssvc.ScheduleSvcFacade
}

func registerScheduleRoutes(rg *gin.RouterGroup, scheduleService portssvc.ScheduleSvcFacade) {
	h := &scheduleHandler{scheduleService: scheduleService}

	schedules := rg.Group("/schedules")
	{
		schedules.POST("", h.createSchedule)
		schedules.GET("", h.listSchedules)
		schedules.POST("/run", h.runDue)
		schedules.GET("/logs/recent", h.listRecentLogs)
		schedules.GET("/:scheduleID", h.getSchedule)
		schedules.PATCH("/:scheduleID", h.updateStatus)
		schedules.GET("/:scheduleID/logs", h.listLogs)
	}
}

func (h *scheduleHandler) createSchedule(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err, "Failed to create schedule")
		return
	}
	c.JSON(http.StatusCreated, dto.ToScheduleResponse(schedule))
}

func (h *scheduleHandler) listSchedules(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	schedules, err := h.scheduleService.ListSchedules(c.Request.Context(), actorID)
	if err != nil {
		respondError(c, err, "Failed to list schedules")
		return
	}
	c.JSON(http.StatusOK, dto.ToScheduleResponses(schedules))
}

func (h *scheduleHandler) getSchedule(c *gin.Context) {
	scheduleID, ok := parseScheduleID(c)
	if !ok {
		return
	}
	schedule, err := h.scheduleService.GetSchedule(c.Request.Context(), scheduleID)
	if err != nil {
		respondError(c, err, "Failed to retrieve schedule")
		return
	}
	c.JSON(http.StatusOK, dto.ToScheduleResponse(schedule))
}

func (h *scheduleHandler) updateStatus(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	scheduleID, ok := parseScheduleID(c)
	if !ok {
		return
	}
	var req dto.UpdateScheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	schedule, err := h.scheduleService.SetScheduleStatus(c.Request.Context(), actorID, scheduleID, domain.ScheduleStatus(req.Status))
	if err != nil {
		respondError(c, err, "Failed to update schedule")
		return
	}
	c.JSON(http.StatusOK, dto.ToScheduleResponse(schedule))
}

func (h *scheduleHandler) listLogs(c *gin.Context) {
	scheduleID, ok := parseScheduleID(c)
	if !ok {
		return
	}
	logs, err := h.scheduleService.ListScheduleLogs(c.Request.Context(), scheduleID, parseLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list schedule logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToScheduleLogResponses(logs))
}

func (h *scheduleHandler) listRecentLogs(c *gin.Context) {
	logs, err := h.scheduleService.ListRecentLogs(c.Request.Context(), parseLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list schedule logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToScheduleLogResponses(logs))
}

// runDue triggers one driver pass immediately. The cron scheduler calls
// the same service entry point.
func (h *scheduleHandler) runDue(c *gin.Context) {
	summary, err := h.scheduleService.RunDue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondError(c, err, "Failed to run schedules")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func parseScheduleID(c *gin.Context) (int64, bool) {
	scheduleID, err := strconv.ParseInt(c.Param("scheduleID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule id"})
		return 0, false
	}
	return scheduleID, true
}
