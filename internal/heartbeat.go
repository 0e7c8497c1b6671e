package internal

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/Roma7-7-7/sns-publisher/pkg/clock"
	"github.com/Roma7-7-7/sns-publisher/pkg/snspub"
)

type (
	HeartbeatMessage struct {
		Source   string    `json:"source"`
		SentAt   time.Time `json:"sent_at"`
		Sequence uint64    `json:"sequence"`
	}

	// Heartbeat publishes a liveness message to a topic on every Run.
	Heartbeat struct {
		publisher Publisher
		topicARN  string
		source    string

		sequence atomic.Uint64

		clock clock.Interface
		log   *slog.Logger
	}
)

func NewHeartbeat(publisher Publisher, topicARN, source string, clock clock.Interface, log *slog.Logger) *Heartbeat {
	return &Heartbeat{
		publisher: publisher,
		topicARN:  topicARN,
		source:    source,
		clock:     clock,
		log:       log,
	}
}

func (h *Heartbeat) Run(ctx context.Context) error {
	msg := HeartbeatMessage{
		Source:   h.source,
		SentAt:   h.clock.Now(),
		Sequence: h.sequence.Add(1),
	}
	h.log.DebugContext(ctx, "publish heartbeat", "sequence", msg.Sequence)

	out, err := h.publisher.Publish(ctx, snspub.PublishRequest{
		Message:  msg,
		TopicARN: h.topicARN,
		Extra: &sns.PublishInput{
			Subject: aws.String("heartbeat"),
		},
	})
	if err != nil {
		return fmt.Errorf("publish heartbeat %d: %w", msg.Sequence, err)
	}
	if out != nil {
		h.log.DebugContext(ctx, "heartbeat published", "sequence", msg.Sequence, "message_id", aws.ToString(out.MessageId))
	}

	return nil
}
