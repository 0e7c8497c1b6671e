package snspub

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/smithy-go"
)

type (
	// SuccessEvent is passed to LogHandler.Info after a message was published.
	SuccessEvent struct {
		Request PublishRequest
		Result  *sns.PublishOutput
	}

	// FailureEvent is passed to LogHandler.Error after a publish failed.
	FailureEvent struct {
		Request PublishRequest
		Err     error
	}

	// LogHandler receives publish outcomes. Return values of the sink are not observed.
	LogHandler interface {
		Info(ctx context.Context, e SuccessEvent)
		Error(ctx context.Context, e FailureEvent)
	}

	// LogHandlerFuncs adapts plain functions to LogHandler. Nil funcs are no-ops.
	LogHandlerFuncs struct {
		InfoFunc  func(ctx context.Context, e SuccessEvent)
		ErrorFunc func(ctx context.Context, e FailureEvent)
	}

	// SlogLogHandler writes publish outcomes to slog loggers.
	SlogLogHandler struct {
		info *slog.Logger
		err  *slog.Logger
	}
)

func (f LogHandlerFuncs) Info(ctx context.Context, e SuccessEvent) {
	if f.InfoFunc != nil {
		f.InfoFunc(ctx, e)
	}
}

func (f LogHandlerFuncs) Error(ctx context.Context, e FailureEvent) {
	if f.ErrorFunc != nil {
		f.ErrorFunc(ctx, e)
	}
}

// NewSlogLogHandler returns a handler that writes both outcomes to log.
func NewSlogLogHandler(log *slog.Logger) *SlogLogHandler {
	return &SlogLogHandler{
		info: log,
		err:  log,
	}
}

// DefaultLogHandler writes successes to stdout and failures to stderr as slog text.
func DefaultLogHandler() *SlogLogHandler {
	return &SlogLogHandler{
		info: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		err:  slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

func (h *SlogLogHandler) Info(ctx context.Context, e SuccessEvent) {
	fields := []any{"topic_arn", e.Request.Topic()}
	if e.Result != nil {
		fields = append(fields, "message_id", aws.ToString(e.Result.MessageId))
		if e.Result.SequenceNumber != nil {
			fields = append(fields, "sequence_number", aws.ToString(e.Result.SequenceNumber))
		}
	}

	h.info.InfoContext(ctx, "published message", fields...)
}

func (h *SlogLogHandler) Error(ctx context.Context, e FailureEvent) {
	fields := []any{"topic_arn", e.Request.Topic(), "error", e.Err}

	var apiErr smithy.APIError
	if errors.As(e.Err, &apiErr) {
		fields = append(fields, "error_code", apiErr.ErrorCode())
	}

	h.err.ErrorContext(ctx, "publish failed", fields...)
}
