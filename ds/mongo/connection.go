package mongo

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/logistics-id/mongorepo/common"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"
)

// Provider identifies the shape of a connection string.
type Provider int

const (
	// ProviderAuto picks ProviderCosmos when the string mentions cosmosDomain
	// and ProviderStandard otherwise.
	ProviderAuto Provider = iota
	ProviderStandard
	// ProviderCosmos is the Azure custom format: a connection string followed by
	// "/<database>", connected over TLS 1.2 or newer.
	ProviderCosmos
)

const cosmosDomain = "azure.com"

func (p Provider) String() string {
	switch p {
	case ProviderStandard:
		return "standard"
	case ProviderCosmos:
		return "cosmos"
	default:
		return "auto"
	}
}

// ParseProvider maps a configuration value onto a Provider.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ProviderAuto, nil
	case "standard", "mongodb":
		return ProviderStandard, nil
	case "cosmos", "azure":
		return ProviderCosmos, nil
	}
	return ProviderAuto, fmt.Errorf("%w: unknown provider %q", common.ErrInvalidConfig, s)
}

// Descriptor is a parsed connection string: the settings used to build the
// client and the database to select on it.
type Descriptor struct {
	Provider      Provider
	URI           string
	Database      string
	MinTLSVersion uint16
}

// ParseDescriptor interprets raw according to p. With ProviderAuto the
// provider is chosen by looking for cosmosDomain in raw; any other
// vendor-specific format goes to the standard parser.
func ParseDescriptor(raw string, p Provider) (*Descriptor, error) {
	raw = strings.TrimSpace(raw)
	if p == ProviderAuto {
		p = detectProvider(raw)
	}

	if raw == "" {
		return nil, parseError(p, errors.New("empty connection string"))
	}

	if p == ProviderCosmos {
		return parseCosmos(raw)
	}
	return parseStandard(raw)
}

func detectProvider(raw string) Provider {
	if strings.Contains(raw, cosmosDomain) {
		return ProviderCosmos
	}
	return ProviderStandard
}

func parseStandard(raw string) (*Descriptor, error) {
	cs, err := connstring.ParseAndValidate(raw)
	if err != nil {
		return nil, parseError(ProviderStandard, err)
	}
	if cs.Database == "" {
		return nil, parseError(ProviderStandard, errors.New("database name missing from URL path"))
	}

	return &Descriptor{
		Provider: ProviderStandard,
		URI:      raw,
		Database: cs.Database,
	}, nil
}

// parseCosmos splits "<settings>/<database>". A single trailing slash is
// ignored; the separator before the database is removed from the settings.
func parseCosmos(raw string) (*Descriptor, error) {
	trimmed := strings.TrimSuffix(raw, "/")
	i := strings.LastIndex(trimmed, "/")

	// the slash must come after the scheme separator
	if scheme := strings.Index(trimmed, "://"); scheme >= 0 && i <= scheme+2 {
		i = -1
	}
	if i <= 0 || i == len(trimmed)-1 {
		return nil, parseError(ProviderCosmos, errors.New("no trailing database segment"))
	}

	return &Descriptor{
		Provider:      ProviderCosmos,
		URI:           trimmed[:i],
		Database:      trimmed[i+1:],
		MinTLSVersion: tls.VersionTLS12,
	}, nil
}

func parseError(p Provider, err error) error {
	return &common.ConnectionError{
		Operation: "parse",
		Provider:  p.String(),
		Err:       fmt.Errorf("%w: %w", common.ErrInvalidConnection, err),
	}
}

// ClientOptions builds driver options from the descriptor. The write concern
// is left at the driver default. A forced minimum TLS version only raises the
// floor; TLS settings taken from the URI are kept.
func (d *Descriptor) ClientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(d.URI)
	if d.MinTLSVersion == 0 {
		return opts
	}

	cfg := &tls.Config{}
	if opts.TLSConfig != nil {
		cfg = opts.TLSConfig.Clone()
	}
	if cfg.MinVersion < d.MinTLSVersion {
		cfg.MinVersion = d.MinTLSVersion
	}
	return opts.SetTLSConfig(cfg)
}

// Redacted returns the settings URI with any password masked.
func (d *Descriptor) Redacted() string {
	return redact(d.URI)
}

func redact(uri string) string {
	scheme := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if scheme < 0 || at <= scheme {
		return uri
	}

	creds := uri[scheme+3 : at]
	user, _, ok := strings.Cut(creds, ":")
	if !ok {
		return uri
	}
	return uri[:scheme+3] + user + ":xxxxx" + uri[at:]
}

// Connect creates a client for d and selects its database. Connection pooling,
// retries and the TLS handshake are left to the driver.
func Connect(ctx context.Context, d *Descriptor, opts ...Option) (*mongo.Client, *mongo.Database, error) {
	return connect(ctx, d, newSettings(opts...))
}

func connect(ctx context.Context, d *Descriptor, s *settings) (*mongo.Client, *mongo.Database, error) {
	l := s.logger.With(
		zap.String("component", "ds.mongodb"),
		zap.String("provider", d.Provider.String()),
		zap.String("dsn", d.Redacted()),
		zap.String("database", d.Database),
	)

	clientOpts := d.ClientOptions().SetMonitor(newCommandMonitor(l).monitor())
	if err := clientOpts.Validate(); err != nil {
		l.Error("MGO/CONN INVALID", zap.Error(err))
		return nil, nil, &common.ConnectionError{
			Operation: "validate",
			Provider:  d.Provider.String(),
			Err:       fmt.Errorf("%w: %w", common.ErrInvalidConnection, err),
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		l.Error("MGO/CONN FAILED", zap.Error(err))
		return nil, nil, &common.ConnectionError{Operation: "connect", Provider: d.Provider.String(), Err: err}
	}

	if s.ping {
		if err := client.Ping(ctx, nil); err != nil {
			l.Error("MGO/CONN FAILURE", zap.Error(err))
			_ = client.Disconnect(context.Background())
			return nil, nil, &common.ConnectionError{Operation: "ping", Provider: d.Provider.String(), Err: err}
		}
	}

	l.Info("MGO/CONN CONNECTED")

	return client, client.Database(d.Database), nil
}
