package handlers

import (
	"net/http"
	"strconv"

	"campusnews/models"
	"campusnews/services/device"
	"campusnews/utils"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	Registry device.Registry
}

func NewDeviceHandler(registry device.Registry) *DeviceHandler {
	return &DeviceHandler{Registry: registry}
}

type deviceRequest struct {
	Platform models.Platform `json:"platform" binding:"required"`
	Token    string          `json:"token" binding:"required"`
}

// SubscribeDeviceHandler registers a push endpoint for a channel.
func (h *DeviceHandler) SubscribeDeviceHandler(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid channel id", err.Error())
		return
	}

	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid device payload", err.Error())
		return
	}
	if req.Platform != models.PlatformAndroid && req.Platform != models.PlatformWindows {
		utils.JSONError(c, http.StatusBadRequest, "Unknown platform", string(req.Platform))
		return
	}

	err = h.Registry.Subscribe(c.Request.Context(), models.Device{
		ChannelID: channelID,
		Platform:  req.Platform,
		Token:     req.Token,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register device", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Device registered"})
}

// UnsubscribeDeviceHandler removes a push endpoint from a channel.
func (h *DeviceHandler) UnsubscribeDeviceHandler(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid channel id", err.Error())
		return
	}

	token := c.Query("token")
	if token == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing device token", "token query parameter is required")
		return
	}

	if err := h.Registry.Unsubscribe(c.Request.Context(), channelID, token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to remove device", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device removed"})
}
