package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/Roma7-7-7/sns-publisher/pkg/snspub"
	pkgSSM "github.com/Roma7-7-7/sns-publisher/pkg/ssm"
)

const topicARNParam = "/sns-publisher/prod/topic-arn"

type Config struct {
	Dev bool

	TopicARN        string
	Endpoint        string
	LogEnabled      bool
	LogLevel        snspub.LogLevel
	PropagateErrors bool

	HeartbeatSchedule string
	HeartbeatSource   string
	Location          string
}

// GetConfig reads the application config from env vars. awsCfg is used for the SSM
// fallback when the topic ARN is not set outside dev mode.
func GetConfig(ctx context.Context, awsCfg aws.Config) (*Config, error) {
	return getConfig(ctx, ssm.NewFromConfig(awsCfg))
}

func getConfig(ctx context.Context, ssmClient pkgSSM.Client) (*Config, error) {
	res, err := configFromEnv()
	if err != nil {
		return nil, err
	}

	// In dev mode or if the topic is set via env vars, skip SSM
	if res.Dev || res.TopicARN != "" {
		return res, nil
	}

	if err = res.fetchTopicARN(ctx, ssmClient); err != nil {
		return nil, fmt.Errorf("fetch SSM parameters (set SNS_TOPIC_ARN to skip SSM): %w", err)
	}

	return res, nil
}

func configFromEnv() (*Config, error) {
	res := &Config{
		Dev:               os.Getenv("ENV") == "dev",
		TopicARN:          os.Getenv("SNS_TOPIC_ARN"),
		Endpoint:          os.Getenv("SNS_ENDPOINT"),
		HeartbeatSchedule: os.Getenv("HEARTBEAT_SCHEDULE"),
		HeartbeatSource:   os.Getenv("HEARTBEAT_SOURCE"),
		Location:          os.Getenv("LOCATION"),
	}
	if res.HeartbeatSchedule == "" {
		res.HeartbeatSchedule = "0 */5 * * * *"
	}
	if res.HeartbeatSource == "" {
		res.HeartbeatSource = "sns-publisher"
	}
	if res.Location == "" {
		res.Location = "UTC"
	}

	var err error
	if res.LogEnabled, err = envBool("SNS_LOG_ENABLED", true); err != nil {
		return nil, err
	}
	if res.PropagateErrors, err = envBool("SNS_PROPAGATE_ERRORS", true); err != nil {
		return nil, err
	}

	level, ok := snspub.ParseLogLevel(os.Getenv("SNS_LOG_LEVEL"))
	if !ok {
		return nil, fmt.Errorf("invalid SNS_LOG_LEVEL %q: expected info or error", os.Getenv("SNS_LOG_LEVEL"))
	}
	res.LogLevel = level

	return res, nil
}

func (c *Config) fetchTopicARN(ctx context.Context, client pkgSSM.Client) error {
	return pkgSSM.FetchParameters(ctx, client, map[string]*string{
		topicARNParam: &c.TopicARN,
	}, pkgSSM.WithDecryption())
}

// PublisherOptions maps the application config onto publisher overrides.
// Outcomes are logged through log.
func (c *Config) PublisherOptions(awsCfg aws.Config, log *slog.Logger) snspub.Options {
	opts := snspub.Options{
		AWSConfig:       &awsCfg,
		LogEnabled:      aws.Bool(c.LogEnabled),
		LogHandler:      snspub.NewSlogLogHandler(log),
		LogLevel:        c.LogLevel,
		PropagateErrors: aws.Bool(c.PropagateErrors),
	}
	if c.Endpoint != "" {
		endpoint := c.Endpoint
		opts.ClientOptions = []func(*sns.Options){
			func(o *sns.Options) {
				o.BaseEndpoint = aws.String(endpoint)
			},
		}
	}

	return opts
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	res, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return res, nil
}
