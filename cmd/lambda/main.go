package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/Roma7-7-7/sns-publisher/internal"
	"github.com/Roma7-7-7/sns-publisher/pkg/snspub"
)

func main() {
	ctx := context.Background()

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load aws config", "error", err) //nolint:sloglint // logger is not yet initialized
		os.Exit(1)
	}

	conf, err := internal.GetConfig(ctx, awsCfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get config", "error", err) //nolint:sloglint // logger is not yet initialized
		os.Exit(1)
	}

	log := internal.NewLogger(os.Stdout, conf.Dev)

	publisher := snspub.New(conf.PublisherOptions(awsCfg, log))
	handler := internal.NewLambdaHandler(publisher, conf.TopicARN, log)
	lambda.Start(handler.HandleRequest)
}
