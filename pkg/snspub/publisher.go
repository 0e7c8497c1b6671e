// Package snspub publishes JSON-encoded messages to AWS SNS topics with optional outcome logging.
//
// A Publisher issues exactly one SNS Publish call per Publish invocation. Outcomes are passed to a
// LogHandler according to the LogEnabled and LogLevel settings, and failures are either returned
// to the caller or swallowed depending on PropagateErrors.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	publisher := snspub.New(snspub.Options{
//		AWSConfig: &cfg,
//		LogLevel:  snspub.LogLevelError,
//	})
//
//	out, err := publisher.Publish(ctx, snspub.PublishRequest{
//		Message:  map[string]any{"order_id": 42},
//		TopicARN: "arn:aws:sns:us-west-2:111122223333:MyTopic",
//	})
package snspub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// ErrEncodeMessage is returned when a message cannot be encoded as JSON.
// No publish call is made in that case.
var ErrEncodeMessage = errors.New("encode message")

type (
	// PublishAPI is the subset of the SNS client used by Publisher.
	PublishAPI interface {
		Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	}

	// PublishRequest describes a single message to publish.
	PublishRequest struct {
		// Message is encoded as JSON into the SNS message body.
		Message any
		// TopicARN is the destination topic.
		TopicARN string
		// Extra holds additional publish parameters. Its non-nil fields take
		// precedence over the computed Message and TopicArn.
		Extra *sns.PublishInput
	}

	Publisher struct {
		client PublishAPI
		conf   Config
	}
)

// New resolves opts and constructs the SNS client from the resolved AWS config.
func New(opts Options) *Publisher {
	conf := Resolve(opts)
	return &Publisher{
		client: sns.NewFromConfig(conf.AWSConfig, conf.ClientOptions...),
		conf:   conf,
	}
}

// NewWithClient is like New but uses client instead of constructing one.
// AWSConfig and ClientOptions are recorded but not applied.
func NewWithClient(client PublishAPI, opts Options) *Publisher {
	return &Publisher{
		client: client,
		conf:   Resolve(opts),
	}
}

// Client returns the SNS client the publisher sends requests through.
func (p *Publisher) Client() PublishAPI {
	return p.client
}

// Config returns the resolved configuration.
func (p *Publisher) Config() Config {
	return p.conf
}

// Publish sends req to SNS.
//
// On success the SNS output is returned unchanged. On failure the SNS error is
// returned unchanged when PropagateErrors is set, otherwise Publish returns nil, nil.
func (p *Publisher) Publish(ctx context.Context, req PublishRequest) (*sns.PublishOutput, error) {
	input, err := BuildInput(req)
	if err != nil {
		return nil, err
	}

	out, err := p.client.Publish(ctx, input)
	if err != nil {
		return nil, p.handleFailure(ctx, req, err)
	}

	p.handleSuccess(ctx, req, out)
	return out, nil
}

func (p *Publisher) handleSuccess(ctx context.Context, req PublishRequest, out *sns.PublishOutput) {
	if p.conf.LogEnabled && p.conf.LogLevel == LogLevelInfo {
		p.conf.LogHandler.Info(ctx, SuccessEvent{Request: req, Result: out})
	}
}

func (p *Publisher) handleFailure(ctx context.Context, req PublishRequest, err error) error {
	if p.conf.LogEnabled {
		p.conf.LogHandler.Error(ctx, FailureEvent{Request: req, Err: err})
	}
	if p.conf.PropagateErrors {
		return err
	}
	return nil
}

// Topic returns the topic the request is sent to. Extra.TopicArn takes precedence over TopicARN.
func (r PublishRequest) Topic() string {
	if r.Extra != nil && r.Extra.TopicArn != nil {
		return *r.Extra.TopicArn
	}
	return r.TopicARN
}

// BuildInput encodes req.Message and builds the SNS publish input for req.
func BuildInput(req PublishRequest) (*sns.PublishInput, error) {
	msg, err := EncodeMessage(req.Message)
	if err != nil {
		return nil, err
	}

	input := &sns.PublishInput{}
	if req.Extra != nil {
		*input = *req.Extra
	}
	if input.Message == nil {
		input.Message = aws.String(msg)
	}
	if input.TopicArn == nil {
		input.TopicArn = aws.String(req.TopicARN)
	}

	return input, nil
}

// EncodeMessage returns the compact JSON text of v without HTML escaping.
// Map keys are written in sorted order, U+2028 and U+2029 are escaped and
// invalid UTF-8 is replaced with U+FFFD, as encoding/json does.
func EncodeMessage(v any) (string, error) {
	buff := &bytes.Buffer{}
	enc := json.NewEncoder(buff)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeMessage, err)
	}

	return string(bytes.TrimSuffix(buff.Bytes(), []byte("\n"))), nil
}
