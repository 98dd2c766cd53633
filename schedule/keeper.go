package schedule

import (
	"github.com/robfig/cron/v3"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"assetpool/internal/handlers/business"
)

// maxActionsPerPoll bounds one poll so a scan bug can never spin the keeper.
const maxActionsPerPoll = 100

// PollOnce scans for due actions and services every one it finds. Each
// perform is independently idempotent, so overlapping keeper instances or a
// crash mid-drain leave nothing in a bad state.
func PollOnce(db *gorm.DB) {
	for i := 0; i < maxActionsPerPoll; i++ {
		action, err := business.ScanDueAction(db)
		if err != nil {
			logger.Errorf("keeper scan failed: %v", err)
			return
		}
		if action == nil {
			return
		}
		if err := business.PerformDueAction(db, *action); err != nil {
			logger.WithFields(logger.Fields{
				"component": action.Component,
				"id":        action.ID,
			}).Errorf("keeper action failed: %v", err)
			return
		}
		logger.WithFields(logger.Fields{
			"component": action.Component,
			"id":        action.ID,
		}).Info("keeper serviced due action")
	}
	logger.Warnf("keeper stopped after %d actions in one poll", maxActionsPerPoll)
}

// StartKeeper schedules PollOnce on the given cron spec and starts the
// scheduler. The caller owns the returned cron and blocks on it.
func StartKeeper(db *gorm.DB, spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { PollOnce(db) }); err != nil {
		return nil, err
	}
	c.Start()
	logger.Infof("keeper started with schedule %q", spec)
	return c, nil
}
