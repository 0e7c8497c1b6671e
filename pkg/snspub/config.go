package snspub

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// LogLevel controls which publish outcomes reach the LogHandler.
// Failures are logged at every level while logging is enabled.
type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelError LogLevel = "error"
)

type (
	// Config is the fully resolved publisher configuration.
	Config struct {
		// AWSConfig is passed verbatim to sns.NewFromConfig.
		AWSConfig aws.Config
		// ClientOptions are applied to the SNS client on construction.
		ClientOptions []func(*sns.Options)

		LogEnabled      bool
		LogHandler      LogHandler
		LogLevel        LogLevel
		PropagateErrors bool
	}

	// Options is a sparse override of Config. Nil and empty fields keep their defaults.
	Options struct {
		AWSConfig     *aws.Config
		ClientOptions []func(*sns.Options)

		LogEnabled      *bool
		LogHandler      LogHandler
		LogLevel        LogLevel
		PropagateErrors *bool
	}
)

// DefaultConfig returns the configuration used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		AWSConfig:       aws.Config{},
		LogEnabled:      true,
		LogHandler:      DefaultLogHandler(),
		LogLevel:        LogLevelInfo,
		PropagateErrors: true,
	}
}

// Resolve merges opts over DefaultConfig field by field.
func Resolve(opts Options) Config {
	return opts.merge(DefaultConfig())
}

func (o Options) merge(base Config) Config {
	res := base

	if o.AWSConfig != nil {
		res.AWSConfig = *o.AWSConfig
	}
	if o.ClientOptions != nil {
		res.ClientOptions = o.ClientOptions
	}
	if o.LogEnabled != nil {
		res.LogEnabled = *o.LogEnabled
	}
	if o.LogHandler != nil {
		res.LogHandler = o.LogHandler
	}
	if o.LogLevel != "" {
		res.LogLevel = o.LogLevel
	}
	if o.PropagateErrors != nil {
		res.PropagateErrors = *o.PropagateErrors
	}

	return res
}

// ParseLogLevel maps a textual level to a LogLevel. Empty input yields LogLevelInfo.
func ParseLogLevel(s string) (LogLevel, bool) {
	switch LogLevel(s) {
	case "", LogLevelInfo:
		return LogLevelInfo, true
	case LogLevelError:
		return LogLevelError, true
	default:
		return "", false
	}
}
