package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-co-op/gocron/v2"

	"github.com/Roma7-7-7/sns-publisher/internal"
	"github.com/Roma7-7-7/sns-publisher/pkg/clock"
	"github.com/Roma7-7-7/sns-publisher/pkg/snspub"
)

var (
	Version   = "dev"     //nolint:gochecknoglobals // version is a global variable
	BuildTime = "unknown" //nolint:gochecknoglobals // build time is a global variable
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	exitCode := run(ctx)
	cancel()
	os.Exit(exitCode)
}

func run(ctx context.Context) int {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load aws config", "error", err) //nolint:sloglint // logger is not yet initialized
		return 1
	}

	conf, err := internal.GetConfig(ctx, awsCfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get config", "error", err) //nolint:sloglint // logger is not yet initialized
		return 1
	}

	log := internal.NewLogger(os.Stdout, conf.Dev)
	log.InfoContext(ctx, "sns-publisher daemon starting", "version", Version, "build_time", BuildTime)

	if conf.TopicARN == "" {
		log.ErrorContext(ctx, "topic arn is not set", "error", internal.ErrNoTopic)
		return 1
	}

	loc, err := time.LoadLocation(conf.Location)
	if err != nil {
		log.ErrorContext(ctx, "failed to load timezone", "error", err, "location", conf.Location)
		return 1
	}

	publisher := snspub.New(conf.PublisherOptions(awsCfg, log))
	heartbeat := internal.NewHeartbeat(publisher, conf.TopicARN, conf.HeartbeatSource, clock.Zoned(loc), log)

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		log.ErrorContext(ctx, "failed to create scheduler", "error", err)
		return 1
	}

	heartbeatJob, err := scheduler.NewJob(
		gocron.CronJob(conf.HeartbeatSchedule, true),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(ctx, 30*time.Second) //nolint:mnd // reasonable publish timeout
			defer cancel()
			if err := heartbeat.Run(ctx); err != nil {
				log.ErrorContext(ctx, "failed to publish heartbeat", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to create heartbeat job", "error", err, "schedule", conf.HeartbeatSchedule)
		return 1
	}

	scheduler.Start()

	nextRun, err := heartbeatJob.NextRun()
	if err != nil {
		log.WarnContext(ctx, "failed to get heartbeat next run time", "error", err)
	}

	log.InfoContext(ctx, "starting daemon",
		"topic_arn", conf.TopicARN,
		"heartbeat_schedule", conf.HeartbeatSchedule,
		"heartbeat_next_run", nextRun,
		"timezone", conf.Location)
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.ErrorContext(ctx, "failed to shutdown scheduler", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.InfoContext(ctx, "received shutdown signal", "signal", sig)
		return 0
	case <-ctx.Done():
		log.InfoContext(ctx, "context cancelled")
		return 0
	}
}
