package mongo

import (
	"time"

	"go.uber.org/zap"
)

// Option configures repository construction.
type Option func(*settings)

type settings struct {
	collection   string
	provider     Provider
	logger       *zap.Logger
	ping         bool
	timeout      time.Duration
	searchFields []string
}

func newSettings(opts ...Option) *settings {
	s := &settings{
		provider: ProviderAuto,
		logger:   zap.NewNop(),
		ping:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCollectionName overrides the collection name derived from the entity type.
func WithCollectionName(name string) Option {
	return func(s *settings) { s.collection = name }
}

// WithProvider selects the connection string format instead of sniffing it.
func WithProvider(p Provider) Option {
	return func(s *settings) { s.provider = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPing controls whether construction round-trips to the server before returning.
func WithPing(ping bool) Option {
	return func(s *settings) { s.ping = ping }
}

// WithTimeout bounds connecting and pinging. Zero leaves the caller's context alone.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithSearchFields sets the fields matched by QueryOption.Search in FindAll.
func WithSearchFields(fields ...string) Option {
	return func(s *settings) { s.searchFields = fields }
}
