package handlers

import (
	"net/http"
	"strconv"

	reminderRepo "campusnews/database/repository/reminder"
	"campusnews/models"
	"campusnews/services/reminder"
	"campusnews/utils"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	Repo      reminderRepo.ReminderRepository
	Scheduler reminder.Scheduler
}

func NewReminderHandler(repo reminderRepo.ReminderRepository, scheduler reminder.Scheduler) *ReminderHandler {
	return &ReminderHandler{Repo: repo, Scheduler: scheduler}
}

// CreateReminderHandler persists a new reminder and activates its timer.
func (h *ReminderHandler) CreateReminderHandler(c *gin.Context) {
	var rem models.Reminder
	if err := c.ShouldBindJSON(&rem); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reminder payload", err.Error())
		return
	}
	if err := rem.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reminder", err.Error())
		return
	}

	if err := h.Repo.Create(c.Request.Context(), &rem); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store reminder", err.Error())
		return
	}
	if err := h.Scheduler.Activate(&rem); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to activate reminder", err.Error())
		return
	}

	c.JSON(http.StatusCreated, rem)
}

// GetReminderHandler returns a single reminder.
func (h *ReminderHandler) GetReminderHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reminder id", err.Error())
		return
	}

	rem, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Reminder not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, rem)
}

// UpdateReminderHandler persists changed fields and re-arms the timer.
func (h *ReminderHandler) UpdateReminderHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reminder id", err.Error())
		return
	}

	var rem models.Reminder
	if err := c.ShouldBindJSON(&rem); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reminder payload", err.Error())
		return
	}
	rem.ID = id
	if err := rem.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reminder", err.Error())
		return
	}

	if err := h.Repo.Update(c.Request.Context(), &rem); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update reminder", err.Error())
		return
	}
	if err := h.Scheduler.Replace(&rem); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to re-arm reminder", err.Error())
		return
	}

	c.JSON(http.StatusOK, rem)
}

// DeleteReminderHandler removes the reminder and cancels its timer.
func (h *ReminderHandler) DeleteReminderHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reminder id", err.Error())
		return
	}

	if err := h.Repo.DeleteByID(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete reminder", err.Error())
		return
	}
	h.Scheduler.Deactivate(id)

	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}

// ListRemindersHandler returns every persisted reminder.
func (h *ReminderHandler) ListRemindersHandler(c *gin.Context) {
	reminders, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load reminders", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}
