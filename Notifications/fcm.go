package Notifications

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"Himal/Models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

var firebaseClient *messaging.Client

// InitFirebase sets up the FCM client from a service account key. Skipped
// quietly when the key is not configured; notifications then become no-ops.
func InitFirebase() error {
	credentials := os.Getenv("FIREBASE_CREDENTIALS")
	if credentials == "" {
		logrus.Info("FIREBASE_CREDENTIALS not set, push notifications disabled")
		return nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentials))
	if err != nil {
		return fmt.Errorf("initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("getting messaging client: %w", err)
	}

	firebaseClient = client
	logrus.Info("firebase messaging initialized")
	return nil
}

// NotifyPOStatusChange pushes a status-change notice to every registered
// device. Failures are logged, never surfaced to the request that caused them.
func NotifyPOStatusChange(poNumber, status string) {
	sendToAll(
		"Purchase Order Update",
		fmt.Sprintf("PO %s is now %s", poNumber, status),
		map[string]string{
			"kind":      "po_status",
			"po_number": poNumber,
			"status":    status,
		},
	)
}

// NotifyPayrollPosted announces a completed payroll run.
func NotifyPayrollPosted(bsYear, bsMonth, employeeCount int) {
	sendToAll(
		"Payroll Posted",
		fmt.Sprintf("Payroll for %d-%02d (BS) posted for %d employees", bsYear, bsMonth, employeeCount),
		map[string]string{
			"kind":     "payroll",
			"bs_year":  strconv.Itoa(bsYear),
			"bs_month": strconv.Itoa(bsMonth),
		},
	)
}

func sendToAll(title, body string, data map[string]string) {
	if firebaseClient == nil {
		return
	}

	var tokens []Models.DeviceToken
	if err := Models.DB.Find(&tokens).Error; err != nil {
		logrus.WithError(err).Warn("loading device tokens")
		return
	}

	ctx := context.Background()
	for _, token := range tokens {
		message := &messaging.Message{
			Token: token.Value,
			Data:  data,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound: "default",
				},
			},
		}
		if _, err := firebaseClient.Send(ctx, message); err != nil {
			logrus.WithError(err).WithField("token_id", token.ID).Warn("push notification failed")
			// Stale tokens come back as unregistered; drop them so the list
			// does not grow without bound.
			if messaging.IsUnregistered(err) {
				Models.DB.Delete(&token)
			}
		}
	}
}
