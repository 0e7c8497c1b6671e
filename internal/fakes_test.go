package internal

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/Roma7-7-7/sns-publisher/pkg/snspub"
)

type fakePublisher struct {
	mu       sync.Mutex
	requests []snspub.PublishRequest
	out      *sns.PublishOutput
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, req snspub.PublishRequest) (*sns.PublishOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.out, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
