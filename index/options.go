package index

import (
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/contextvault/hnswkv/codec"
)

type options struct {
	codec       codec.Codec
	logger      *Logger
	metrics     MetricsCollector
	cacheSize   int
	rateLimiter *rate.Limiter
}

// Option configures Open via the functional-options pattern.
type Option func(*options)

// WithCodec configures the codec used to encode Points and LayerNodes. A
// nil c uses codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures structured logging for Insert/KNNSearch/Get.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			o.logger = NoopLogger()
			return
		}
		o.logger = &Logger{Logger: logger}
	}
}

// WithMetrics configures a MetricsCollector. The default is
// NoopMetricsCollector.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithCache wraps the Graph Store in an LRU read cache of the given size.
// size <= 0 disables caching (the default).
func WithCache(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithRateLimiter throttles backend calls this Index issues against limiter.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(o *options) {
		o.rateLimiter = limiter
	}
}
