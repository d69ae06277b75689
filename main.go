package main

import (
	"os"

	"Himal/CronJobs"
	"Himal/FiberConfig"
	"Himal/Models"
	"Himal/Notifications"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file, using environment as-is")
	}

	if os.Getenv("LOG_FORMAT") == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Models.Connect()
	if err := Models.EnsureUploadDirs(); err != nil {
		logrus.WithError(err).Fatal("creating upload directories")
	}

	if err := Notifications.InitFirebase(); err != nil {
		logrus.WithError(err).Warn("firebase not initialized, push notifications disabled")
	}

	maintenance := CronJobs.NewNightlyMaintenance(false)
	if err := maintenance.Start(); err != nil {
		logrus.WithError(err).Error("nightly maintenance not scheduled")
	}
	defer maintenance.Stop()

	FiberConfig.FiberConfig()
}
