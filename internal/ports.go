package internal

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/Roma7-7-7/sns-publisher/pkg/snspub"
)

type Publisher interface {
	Publish(ctx context.Context, req snspub.PublishRequest) (*sns.PublishOutput, error)
}
