// Package playback decides whether a video resource can start playing
// within a bounded time window.
package playback

import (
	"context"
	"errors"
	"strings"
	"time"

	applog "photoframe/internal/log"
	"photoframe/internal/metrics"

	"github.com/rs/zerolog"
)

// DefaultTimeout is how long a probe waits for the decoder.
const DefaultTimeout = 1000 * time.Millisecond

// Decoder loads a resource into a disposable decoding context.
//
// Load blocks until the decoder has buffered enough to begin playback and
// then returns nil. It must return promptly once ctx is done; that is how
// an abandoned attempt releases its resources.
type Decoder interface {
	Load(ctx context.Context, url string) error
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(ctx context.Context, url string) error

func (f DecoderFunc) Load(ctx context.Context, url string) error {
	return f(ctx, url)
}

// Prober races a decoder load against a timeout.
type Prober struct {
	decoder Decoder
	timeout time.Duration
	logger  zerolog.Logger
}

// NewProber creates a prober. A non-positive timeout selects DefaultTimeout.
func NewProber(decoder Decoder, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		decoder: decoder,
		timeout: timeout,
		logger:  applog.WithComponent("prober"),
	}
}

// Timeout returns the probe window.
func (p *Prober) Timeout() time.Duration {
	return p.timeout
}

// Probe reports whether url becomes playable before the timeout. The decode
// attempt is cancelled as soon as Probe returns, whatever the outcome.
//
// Only a decoder that never answers holds Probe for the full timeout. An
// empty url, a decoder rejection or a cancelled ctx returns false at once,
// since none of them can turn playable by waiting.
func (p *Prober) Probe(ctx context.Context, url string) bool {
	if strings.TrimSpace(url) == "" {
		metrics.ProbesTotal.WithLabelValues("skipped").Inc()
		return false
	}

	started := time.Now()
	defer func() { metrics.ProbeDuration.Observe(time.Since(started).Seconds()) }()

	decodeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so a decoder finishing after the deadline never blocks.
	ready := make(chan error, 1)
	go func() {
		ready <- p.decoder.Load(decodeCtx, url)
	}()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case err := <-ready:
		if err != nil {
			if errors.Is(err, context.Canceled) {
				metrics.ProbesTotal.WithLabelValues("cancelled").Inc()
				return false
			}
			p.logger.Debug().Err(err).Str(applog.FieldURL, url).Msg("decoder rejected resource")
			metrics.ProbesTotal.WithLabelValues("rejected").Inc()
			return false
		}
		metrics.ProbesTotal.WithLabelValues("playable").Inc()
		return true
	case <-timer.C:
		p.logger.Debug().Str(applog.FieldURL, url).Dur("timeout", p.timeout).Msg("playback probe timed out")
		metrics.ProbesTotal.WithLabelValues("timeout").Inc()
		return false
	case <-ctx.Done():
		metrics.ProbesTotal.WithLabelValues("cancelled").Inc()
		return false
	}
}
