package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/Roma7-7-7/sns-publisher/pkg/snspub"
)

var ErrNoTopic = errors.New("topic arn is not set")

type (
	PublishEvent struct {
		Message                json.RawMessage   `json:"message"`
		TopicARN               string            `json:"topic_arn"`
		Subject                string            `json:"subject"`
		MessageGroupID         string            `json:"message_group_id"`
		MessageDeduplicationID string            `json:"message_deduplication_id"`
		Attributes             map[string]string `json:"attributes"`
	}

	PublishResponse struct {
		MessageID      string `json:"message_id,omitempty"`
		SequenceNumber string `json:"sequence_number,omitempty"`
	}

	LambdaHandler struct {
		publisher       Publisher
		defaultTopicARN string
		log             *slog.Logger
	}
)

func NewLambdaHandler(publisher Publisher, defaultTopicARN string, log *slog.Logger) *LambdaHandler {
	return &LambdaHandler{
		publisher:       publisher,
		defaultTopicARN: defaultTopicARN,
		log:             log,
	}
}

func (h *LambdaHandler) HandleRequest(ctx context.Context, e PublishEvent) (*PublishResponse, error) {
	req, err := h.request(e)
	if err != nil {
		return nil, err
	}

	h.log.DebugContext(ctx, "publishing event", "topic_arn", req.TopicARN, "attributes", len(e.Attributes))
	out, err := h.publisher.Publish(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("publish message: %w", err)
	}

	// nil output means the failure was logged and swallowed
	if out == nil {
		return &PublishResponse{}, nil
	}

	return &PublishResponse{
		MessageID:      aws.ToString(out.MessageId),
		SequenceNumber: aws.ToString(out.SequenceNumber),
	}, nil
}

func (h *LambdaHandler) request(e PublishEvent) (snspub.PublishRequest, error) {
	topicARN := e.TopicARN
	if topicARN == "" {
		topicARN = h.defaultTopicARN
	}
	if topicARN == "" {
		return snspub.PublishRequest{}, ErrNoTopic
	}

	req := snspub.PublishRequest{
		Message:  e.Message,
		TopicARN: topicARN,
	}

	extra := &sns.PublishInput{}
	hasExtra := false
	if e.Subject != "" {
		extra.Subject = aws.String(e.Subject)
		hasExtra = true
	}
	if e.MessageGroupID != "" {
		extra.MessageGroupId = aws.String(e.MessageGroupID)
		hasExtra = true
	}
	if e.MessageDeduplicationID != "" {
		extra.MessageDeduplicationId = aws.String(e.MessageDeduplicationID)
		hasExtra = true
	}
	if len(e.Attributes) > 0 {
		extra.MessageAttributes = make(map[string]types.MessageAttributeValue, len(e.Attributes))
		for k, v := range e.Attributes {
			extra.MessageAttributes[k] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}
		hasExtra = true
	}
	if hasExtra {
		req.Extra = extra
	}

	return req, nil
}
