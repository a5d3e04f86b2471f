// File: campusnews/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusnews/config"
	"campusnews/database"
	announcementRepo "campusnews/database/repository/announcement"
	deviceRepo "campusnews/database/repository/device"
	reminderRepo "campusnews/database/repository/reminder"
	"campusnews/handlers"
	"campusnews/middleware"
	"campusnews/models"
	"campusnews/routes"
	"campusnews/services/announcement"
	"campusnews/services/device"
	"campusnews/services/push"
	"campusnews/services/reminder"
	"campusnews/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitDeviceCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	remRepo := reminderRepo.NewMongoReminderRepo()
	annRepo := announcementRepo.NewMongoAnnouncementRepo()
	devRepo := deviceRepo.NewMongoDeviceRepo()

	// Platform senders. Missing gateway credentials are a configuration
	// error, not a reason to refuse startup.
	if config.AppConfig.FCMApiKey == "" {
		logger.Error("main: FCM_API_KEY is not configured, Android pushes will be rejected by the gateway")
	}
	if config.AppConfig.WNSPackageSID == "" || config.AppConfig.WNSClientSecret == "" {
		logger.Error("main: WNS credentials are not configured, Windows pushes will be rejected by the gateway")
	}
	wnsCredentials := push.NewWNSCredentials(
		config.AppConfig.WNSPackageSID,
		config.AppConfig.WNSClientSecret,
		logger,
	)
	senders := map[models.Platform]push.Sender{
		models.PlatformAndroid: push.NewFCMSender(config.AppConfig.FCMApiKey, logger),
		models.PlatformWindows: push.NewWNSSender(wnsCredentials, logger),
	}

	// services.
	pushService := push.NewDefaultPushService(
		senders,
		time.Duration(config.AppConfig.PushCoalesceWindowMs)*time.Millisecond,
		logger,
	)
	deviceRegistry := &device.DefaultDeviceRegistry{
		Repo:   devRepo,
		Cache:  utils.GetDeviceCacheClient(),
		Logger: logger,
	}
	announcementService := &announcement.DefaultAnnouncementService{
		Repo:    annRepo,
		Devices: deviceRegistry,
		Push:    pushService,
		Logger:  logger,
	}
	scheduler := reminder.NewDefaultScheduler(remRepo, announcementService, logger)

	// Restore persisted reminders into the scheduler.
	restoreReminders(scheduler, remRepo)

	reminderHandler := handlers.NewReminderHandler(remRepo, scheduler)
	deviceHandler := handlers.NewDeviceHandler(deviceRegistry)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)

	handlerBundle := &routes.HandlerBundle{
		Reminder:     reminderHandler,
		Device:       deviceHandler,
		Announcement: announcementHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// restoreReminders activates every persisted, still-live reminder after a
// restart. Expired ones are skipped by the scheduler itself.
func restoreReminders(scheduler reminder.Scheduler, repo reminderRepo.ReminderRepository) {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reminders, err := repo.GetAll(ctx)
	if err != nil {
		logger.Sugar().Errorf("main: failed to load reminders: %v", err)
		return
	}
	for i := range reminders {
		if err := scheduler.Activate(&reminders[i]); err != nil {
			logger.Sugar().Warnf("main: skipping invalid persisted reminder %d: %v", reminders[i].ID, err)
		}
	}
	logger.Sugar().Infof("main: restored %d reminders", len(reminders))
}
