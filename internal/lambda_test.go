package internal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roma7-7-7/sns-publisher/pkg/snspub"
)

const (
	defaultTopic = "arn:aws:sns:us-west-2:111122223333:Default"
	eventTopic   = "arn:aws:sns:us-west-2:111122223333:MyTopic"
)

func TestLambdaHandler_HandleRequest(t *testing.T) {
	publisher := &fakePublisher{out: &sns.PublishOutput{MessageId: aws.String("some-id")}}
	h := NewLambdaHandler(publisher, defaultTopic, discardLogger())

	var e PublishEvent
	require.NoError(t, json.Unmarshal([]byte(`{
		"message": ["value1", 123, {"x": "y"}],
		"topic_arn": "`+eventTopic+`",
		"subject": "hello",
		"attributes": {"kind": "test"}
	}`), &e))

	resp, err := h.HandleRequest(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, &PublishResponse{MessageID: "some-id"}, resp)

	require.Len(t, publisher.requests, 1)
	req := publisher.requests[0]
	assert.Equal(t, eventTopic, req.TopicARN)
	require.NotNil(t, req.Extra)
	assert.Equal(t, "hello", aws.ToString(req.Extra.Subject))
	assert.Equal(t, "test", aws.ToString(req.Extra.MessageAttributes["kind"].StringValue))
	assert.Equal(t, "String", aws.ToString(req.Extra.MessageAttributes["kind"].DataType))

	input, err := snspub.BuildInput(req)
	require.NoError(t, err)
	assert.Equal(t, `["value1",123,{"x":"y"}]`, aws.ToString(input.Message))
}

func TestLambdaHandler_HandleRequest_DefaultTopic(t *testing.T) {
	publisher := &fakePublisher{out: &sns.PublishOutput{MessageId: aws.String("some-id")}}
	h := NewLambdaHandler(publisher, defaultTopic, discardLogger())

	_, err := h.HandleRequest(context.Background(), PublishEvent{Message: json.RawMessage(`{"a":1}`)})
	require.NoError(t, err)

	require.Len(t, publisher.requests, 1)
	assert.Equal(t, defaultTopic, publisher.requests[0].TopicARN)
	assert.Nil(t, publisher.requests[0].Extra)
}

func TestLambdaHandler_HandleRequest_NoTopic(t *testing.T) {
	publisher := &fakePublisher{}
	h := NewLambdaHandler(publisher, "", discardLogger())

	_, err := h.HandleRequest(context.Background(), PublishEvent{Message: json.RawMessage(`1`)})
	require.ErrorIs(t, err, ErrNoTopic)
	assert.Empty(t, publisher.requests)
}

func TestLambdaHandler_HandleRequest_PublishError(t *testing.T) {
	publishErr := errors.New("some-error")
	h := NewLambdaHandler(&fakePublisher{err: publishErr}, defaultTopic, discardLogger())

	_, err := h.HandleRequest(context.Background(), PublishEvent{Message: json.RawMessage(`1`)})
	require.ErrorIs(t, err, publishErr)
}

func TestLambdaHandler_HandleRequest_SwallowedError(t *testing.T) {
	h := NewLambdaHandler(&fakePublisher{}, defaultTopic, discardLogger())

	resp, err := h.HandleRequest(context.Background(), PublishEvent{Message: json.RawMessage(`1`)})
	require.NoError(t, err)
	assert.Equal(t, &PublishResponse{}, resp)
}
