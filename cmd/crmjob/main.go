// crmjob runs one periodic job and exits. An external timer (cron, systemd
// timer) is expected to invoke it; the binary itself holds no schedule.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"crmd/internal/config"
	"crmd/internal/infrastructure/logger"
	"crmd/internal/jobs"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: crmjob <heartbeat|lowstock|reminders|report>")
	}
	job := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	api := jobs.NewAPIClient(cfg.Jobs.APIBaseURL, cfg.Jobs.HTTPTimeout)
	ctx := context.Background()
	now := time.Now().UTC()

	switch job {
	case "heartbeat":
		err = jobs.Heartbeat(ctx, now, api, jobs.NewFileSink(cfg.Jobs.HeartbeatLogFile))
	case "lowstock":
		err = jobs.LowStock(ctx, now, api, jobs.NewFileSink(cfg.Jobs.LowStockLogFile),
			cfg.Jobs.LowStockIncrement, cfg.Jobs.LowStockThreshold)
	case "reminders":
		var count int
		count, err = jobs.Reminders(ctx, now, api, jobs.NewFileSink(cfg.Jobs.RemindersLogFile))
		if err == nil {
			fmt.Println("Order reminders processed!")
			zapLogger.Info("reminders sent", zap.Int("count", count))
		}
	case "report":
		err = jobs.Report(ctx, now, api, jobs.NewFileSink(cfg.Jobs.ReportLogFile))
	default:
		log.Fatalf("unknown job %q (want heartbeat, lowstock, reminders or report)", job)
	}

	// Only sink failures reach here; API errors were already logged to the
	// sink. The job is log-and-continue either way, so exit clean.
	if err != nil {
		zapLogger.Error("job log write failed", zap.String("job", job), zap.Error(err))
	}
}
