package CronJobs

import (
	"encoding/json"
	"fmt"
	"time"

	"Himal/Calculations"
	"Himal/Models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// NightlyMaintenance runs the housekeeping jobs: flagging overdue purchase
// orders and refreshing the stored trip figures against the current rates.
type NightlyMaintenance struct {
	cronScheduler  *cron.Cron
	runImmediately bool
	jobID          cron.EntryID
}

func NewNightlyMaintenance(runImmediately bool) *NightlyMaintenance {
	return &NightlyMaintenance{
		cronScheduler:  cron.New(cron.WithSeconds()),
		runImmediately: runImmediately,
	}
}

// Start schedules the maintenance run for 2:00 AM daily.
func (m *NightlyMaintenance) Start() error {
	var err error
	m.jobID, err = m.cronScheduler.AddFunc("0 0 2 * * *", func() {
		logrus.Info("running nightly maintenance")
		m.run()
	})
	if err != nil {
		return fmt.Errorf("scheduling nightly maintenance: %w", err)
	}

	m.cronScheduler.Start()
	logrus.Info("nightly maintenance scheduled for 2:00 AM")

	if m.runImmediately {
		m.run()
	}
	return nil
}

func (m *NightlyMaintenance) Stop() {
	if m.cronScheduler != nil {
		m.cronScheduler.Stop()
		logrus.Info("nightly maintenance stopped")
	}
}

func (m *NightlyMaintenance) run() {
	m.flagOverdueOrders()
	m.refreshRecentTrips()
}

// flagOverdueOrders logs pending purchase orders whose delivery date has
// passed. The status itself is left to a human; the log line feeds the
// morning review.
func (m *NightlyMaintenance) flagOverdueOrders() {
	today := time.Now().Format("2006-01-02")

	var orders []Models.PurchaseOrder
	err := Models.DB.Where("status IN ? AND delivery_date != '' AND delivery_date < ?",
		[]string{"Pending", "Partial"}, today).Find(&orders).Error
	if err != nil {
		logrus.WithError(err).Error("loading overdue purchase orders")
		return
	}

	for _, order := range orders {
		logrus.WithFields(logrus.Fields{
			"po_number":     order.PONumber,
			"status":        order.Status,
			"delivery_date": order.DeliveryDate,
		}).Warn("purchase order past delivery date")
	}
	if len(orders) > 0 {
		logrus.WithField("count", len(orders)).Info("overdue purchase orders flagged")
	}
}

// refreshRecentTrips recomputes the stored breakdown of the last 30 days of
// trips. Older trips keep the figures they were paid on.
func (m *NightlyMaintenance) refreshRecentTrips() {
	since := time.Now().AddDate(0, 0, -30).Format("2006-01-02")

	var trips []Models.Trip
	if err := Models.DB.Where("date >= ?", since).Find(&trips).Error; err != nil {
		logrus.WithError(err).Error("loading recent trips")
		return
	}

	refreshed := 0
	for i := range trips {
		var destinations []Models.Destination
		if err := json.Unmarshal(trips[i].Destinations, &destinations); err != nil {
			logrus.WithField("trip_id", trips[i].ID).Warn("trip has malformed destinations")
			continue
		}
		breakdown := Calculations.ComputeTripPay(destinations, trips[i].DetentionStart, trips[i].DetentionEnd,
			trips[i].PartyCount, trips[i].DropOffRate, trips[i].DetentionRate)
		if breakdown.NetPay == trips[i].NetPay {
			continue
		}
		Calculations.ApplyBreakdown(&trips[i], breakdown)
		if err := Models.DB.Save(&trips[i]).Error; err != nil {
			logrus.WithError(err).WithField("trip_id", trips[i].ID).Warn("trip refresh not saved")
			continue
		}
		refreshed++
	}
	logrus.WithField("refreshed", refreshed).Info("trip figures refreshed")
}
