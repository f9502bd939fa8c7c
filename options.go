package sbitmap

// autoShift tells New to derive the shift from depth.
const autoShift = -1

type options struct {
	shift      int
	roundRobin bool
	logger     *Logger
	metrics    MetricsCollector
}

func defaultOptions() options {
	return options{
		shift:   autoShift,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}

// Option configures Bitmap construction.
type Option func(*options)

// WithShift pins log2(bits per word) instead of deriving it from
// depth. Valid shifts are in [0, 6]; New rejects anything else with
// ErrInvalidShift, since a word holds at most 64 bits.
//
// Fewer, larger words cost less memory (every word occupies a full
// cache line regardless of how many bits it uses); more, smaller
// words spread concurrent callers across cache lines.
func WithShift(shift int) Option {
	return func(o *options) {
		o.shift = shift
	}
}

// WithRoundRobin toggles strict round-robin allocation.
//
// In round-robin mode slots are handed out in cyclic order
// 0, 1, ..., depth-1, 0, ... at the cost of throughput: the search
// always begins exactly at the hint's bit instead of skipping ahead
// to spread load.
func WithRoundRobin(enabled bool) Option {
	return func(o *options) {
		o.roundRobin = enabled
	}
}

// WithLogger configures the logger used for construction and
// diagnostic output. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures a MetricsCollector observing Get/Put calls.
// If nil is passed, metrics collection is disabled.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}
