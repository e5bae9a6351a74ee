package feed

import (
	"context"
	"log"
	"os"

	"PlayoffPredictor/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// RefreshField pulls the live field and persists it, seeding the static
// fallback instead when the feed is down and nothing is stored yet.
func RefreshField(db *gorm.DB, client *Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), client.cfg.Timeout*2)
	defer cancel()

	teamModel := models.PlayoffTeam{}

	field, err := client.LoadField(ctx)
	if err != nil {
		count, countErr := teamModel.CountTeams(db)
		if countErr == nil && count == 0 {
			log.Printf("[feed] live field unavailable (%v), seeding fallback field", err)
			return teamModel.ReplaceField(db, FallbackField())
		}
		return err
	}
	return teamModel.ReplaceField(db, field)
}

// StartSchedule wires the periodic jobs: field refresh and login token
// cleanup. The schedule is overridable for ops via FEED_REFRESH_CRON.
func StartSchedule(db *gorm.DB, client *Client) *cron.Cron {
	spec := os.Getenv("FEED_REFRESH_CRON")
	if spec == "" {
		spec = "@every 1h"
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := RefreshField(db, client); err != nil {
			log.Printf("[feed] field refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("[feed] invalid refresh schedule %q: %v", spec, err)
	}

	_, err = c.AddFunc("@every 6h", func() {
		tokenModel := models.LoginToken{}
		if purged, err := tokenModel.PurgeExpired(db); err != nil {
			log.Printf("[feed] token cleanup failed: %v", err)
		} else if purged > 0 {
			log.Printf("[feed] purged %d expired login tokens", purged)
		}
	})
	if err != nil {
		log.Printf("[feed] could not schedule token cleanup: %v", err)
	}

	c.Start()
	return c
}
