// Package ssm reads values from AWS Systems Manager Parameter Store.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	client := ssm.NewFromConfig(cfg)
//
//	var topicARN string
//	err := ssm.FetchParameters(ctx, client, map[string]*string{
//		"/sns-publisher/prod/topic-arn": &topicARN,
//	}, ssm.WithDecryption())
package ssm

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// maxNamesPerRequest is the GetParameters API limit.
const maxNamesPerRequest = 10

// ErrParamsNotFound is returned when one or more requested parameters do not exist.
var ErrParamsNotFound = errors.New("params not found")

type (
	Client interface {
		GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
	}

	FetchOptions struct {
		withDecryption bool
		prefix         string
	}

	OptionsF func(*FetchOptions)
)

// WithDecryption decrypts SecureString parameters.
func WithDecryption() OptionsF {
	return func(o *FetchOptions) {
		o.withDecryption = true
	}
}

// WithPrefix prepends prefix to every parameter name before lookup.
func WithPrefix(prefix string) OptionsF {
	return func(o *FetchOptions) {
		o.prefix = strings.TrimSuffix(prefix, "/")
	}
}

// FetchParameters looks up every key of params and stores the value in the mapped pointer.
// Names are requested in batches of up to 10. If any name is missing, the returned error wraps
// ErrParamsNotFound and lists all missing names; found values are still populated.
func FetchParameters(ctx context.Context, client Client, params map[string]*string, opts ...OptionsF) error {
	if len(params) == 0 {
		return nil
	}

	options := &FetchOptions{}
	for _, o := range opts {
		o(options)
	}

	dests := make(map[string]*string, len(params))
	names := make([]string, 0, len(params))
	for name, dest := range params {
		full := options.fullName(name)
		dests[full] = dest
		names = append(names, full)
	}
	slices.Sort(names)

	var missing []string
	for batch := range slices.Chunk(names, maxNamesPerRequest) {
		result, err := client.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          batch,
			WithDecryption: aws.Bool(options.withDecryption),
		})
		if err != nil {
			return fmt.Errorf("ssm get parameters: %w", err)
		}

		missing = append(missing, result.InvalidParameters...)
		for _, param := range result.Parameters {
			if param.Name == nil || param.Value == nil {
				continue
			}
			if dest, ok := dests[*param.Name]; ok {
				*dest = *param.Value
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrParamsNotFound, strings.Join(missing, ", "))
	}

	return nil
}

func (o *FetchOptions) fullName(name string) string {
	if o.prefix == "" {
		return name
	}
	return o.prefix + "/" + strings.TrimPrefix(name, "/")
}
