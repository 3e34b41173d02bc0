package dispatch

import (
	"context"
	"time"

	"dualmark/constants"
	"dualmark/debug"
	"dualmark/lane"

	"github.com/charmbracelet/log"
)

// options is the configuration shared by every backend.
type options struct {
	core         int
	waitTimeout  time.Duration
	closeGrace   time.Duration
	yield        lane.Yield
	pollInterval time.Duration
	externalLoop bool
	stop         *uint32
	logger       *log.Logger
}

// Option configures a Dispatcher.
type Option func(*options)

func defaultOptions(yield lane.Yield) options {
	return options{
		core:        constants.SecondaryCore,
		waitTimeout: constants.DefaultWaitTimeout,
		closeGrace:  time.Second,
		yield:       yield,
		stop:        new(uint32),
		logger:      debug.Logger(),
	}
}

func buildOptions(yield lane.Yield, opts []Option) options {
	o := defaultOptions(yield)
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSecondaryCore places the secondary lane on core.
func WithSecondaryCore(core int) Option {
	return func(o *options) { o.core = core }
}

// WithWaitTimeout bounds StopParallel when the caller's context carries no
// deadline. Zero waits indefinitely.
func WithWaitTimeout(d time.Duration) Option {
	return func(o *options) { o.waitTimeout = d }
}

// WithCloseGrace bounds how long Close waits for a runner to exit.
func WithCloseGrace(d time.Duration) Option {
	return func(o *options) { o.closeGrace = d }
}

// WithYield sets what the primary lane does between completion probes in
// the flag backends. Busy-wait defaults to relax, polling task to gosched.
func WithYield(y lane.Yield) Option {
	return func(o *options) { o.yield = y }
}

// WithPollInterval paces an idle polling task. Zero polls every slice.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithExternalLoop makes a busy-wait dispatcher skip starting its own
// cooperative loop; the caller drives BusyWait.Hook instead.
func WithExternalLoop() Option {
	return func(o *options) { o.externalLoop = true }
}

// WithLogger sets the lifecycle logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// bound applies the wait timeout to ctx if it has no deadline of its own.
func (o *options) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || o.waitTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.waitTimeout)
}
