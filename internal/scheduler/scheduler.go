// Package scheduler lance les tâches périodiques du serveur.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
)

// StartPurge planifie la purge des loops expirées toutes les interval
// jusqu'à l'annulation de ctx
func StartPurge(ctx context.Context, db *gorm.DB, interval time.Duration) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			taskCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()

			result, err := PurgeExpired(taskCtx, db, time.Now())
			if err != nil {
				logs.LogJSON("ERROR", "Expired loops purge failed", map[string]interface{}{
					"error": err.Error(),
				})
				return
			}
			logs.LogJSON("INFO", "Expired loops purged", map[string]interface{}{
				"posts":   result.Posts,
				"remixes": result.Remixes,
				"media":   result.Media,
			})
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule purge: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		logs.LogJSON("INFO", "Stopping purge scheduler", nil)
		if err := scheduler.Shutdown(); err != nil {
			logs.LogJSON("ERROR", "Failed to shut down scheduler", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	return nil
}
