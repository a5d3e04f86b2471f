package handlers

import (
	"net/http"
	"strconv"

	"campusnews/models"
	"campusnews/services/announcement"
	"campusnews/utils"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	Service announcement.Service
}

func NewAnnouncementHandler(service announcement.Service) *AnnouncementHandler {
	return &AnnouncementHandler{Service: service}
}

type announcementRequest struct {
	Title    string `json:"title" binding:"required"`
	Text     string `json:"text" binding:"required"`
	Priority int    `json:"priority"`
}

// CreateAnnouncementHandler publishes a moderator-written announcement in a
// channel. The push to subscribers happens after the announcement is stored.
func (h *AnnouncementHandler) CreateAnnouncementHandler(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid channel id", err.Error())
		return
	}

	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid announcement payload", err.Error())
		return
	}

	moderatorID, err := strconv.ParseInt(c.GetString("moderatorID"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid moderator identity", err.Error())
		return
	}

	id, err := h.Service.Create(c.Request.Context(), models.Announcement{
		ChannelID:   channelID,
		ModeratorID: moderatorID,
		Title:       req.Title,
		Text:        req.Text,
		Priority:    req.Priority,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to publish announcement", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListAnnouncementsHandler returns a channel's announcements, newest first.
func (h *AnnouncementHandler) ListAnnouncementsHandler(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid channel id", err.Error())
		return
	}

	announcements, err := h.Service.ListByChannel(c.Request.Context(), channelID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load announcements", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}
