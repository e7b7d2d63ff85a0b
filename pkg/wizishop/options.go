package wizishop

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option configures session establishment and the resulting Client.
type Option func(*settings)

// settings collects everything the constructors need. Identity fields track
// whether the caller set them explicitly, because an explicit value always
// wins over one derived from the login response.
type settings struct {
	endpoint  string
	userAgent string
	http      Doer
	logger    *slog.Logger
	tracer    trace.TracerProvider
	sink      FailureSink

	throttleFloor    int64
	throttleCooldown time.Duration
	sleep            SleepFunc
	perSecond        float64
	burst            int

	token        string
	accountID    string
	accountIDSet bool
	shopID       string
	shopIDSet    bool
}

func defaultSettings() *settings {
	return &settings{
		endpoint:         DefaultEndpoint,
		userAgent:        "wizishop-go-sdk/" + Version,
		throttleFloor:    DefaultThrottleFloor,
		throttleCooldown: DefaultThrottleCooldown,
	}
}

func applyOptions(opts []Option) *settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithEndpoint overrides the API root (default https://api.wizishop.com/).
func WithEndpoint(u string) Option {
	return func(s *settings) {
		s.endpoint = u
	}
}

// WithHTTPClient overrides the transport. *http.Client satisfies Doer.
func WithHTTPClient(d Doer) Option {
	return func(s *settings) {
		s.http = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		s.userAgent = ua
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithTracerProvider sets the OpenTelemetry provider used for request spans.
// The global provider is used when unset.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *settings) {
		s.tracer = tp
	}
}

// WithFailureSink sets the collaborator notified when a create call fails.
func WithFailureSink(fs FailureSink) Option {
	return func(s *settings) {
		s.sink = fs
	}
}

// WithThrottle overrides the remaining-call floor and the cooldown applied
// once the API reports fewer remaining calls than floor.
func WithThrottle(floor int64, cooldown time.Duration) Option {
	return func(s *settings) {
		s.throttleFloor = floor
		s.throttleCooldown = cooldown
	}
}

// WithRequestRate paces outgoing requests with a token bucket, in addition
// to the header driven cooldown. A zero rate disables pacing.
func WithRequestRate(perSecond float64, burst int) Option {
	return func(s *settings) {
		s.perSecond = perSecond
		s.burst = burst
	}
}

// WithToken supplies a previously issued session token.
func WithToken(raw string) Option {
	return func(s *settings) {
		s.token = raw
	}
}

// WithAccountID sets the account id explicitly.
func WithAccountID(id string) Option {
	return func(s *settings) {
		s.accountID = id
		s.accountIDSet = true
	}
}

// WithShopID sets the shop id explicitly. An explicit empty id selects the
// account-scoped endpoint even if the login response names a default shop.
func WithShopID(id string) Option {
	return func(s *settings) {
		s.shopID = id
		s.shopIDSet = true
	}
}

// WithSleepFunc overrides the cooldown sleep for testing.
func WithSleepFunc(f SleepFunc) Option {
	return func(s *settings) {
		s.sleep = f
	}
}
