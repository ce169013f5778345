package api

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// expiryWarningWindow is how far ahead the sweep looks for Drive tokens
// about to expire.
const expiryWarningWindow = 10 * time.Minute

// StartExpirySweep runs a periodic scan over tm's in-flight tasks,
// logging a warning for every Drive token due to expire soon. It never
// refreshes a token — refresh is outside the transfer core's contract;
// the caller is expected to resubmit with a fresh access token.
//
// cronExpr follows cron's standard five-field syntax (minute-granularity);
// an empty string defaults to once per minute.
func StartExpirySweep(tm *TaskManager, cronExpr string) (*cron.Cron, error) {
	if cronExpr == "" {
		cronExpr = "* * * * *"
	}

	c := cron.New()
	_, err := c.AddFunc(cronExpr, func() {
		for _, warning := range tm.ExpiringDriveTokens(expiryWarningWindow) {
			log.Printf("drive token expiring soon: %s", warning)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
