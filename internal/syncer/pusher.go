package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"asura/tracker/internal/observability"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const callTimeout = 10 * time.Second

// Remote is the part of the state API the pusher needs.
type Remote interface {
	HasSession() bool
	FetchState(ctx context.Context) (json.RawMessage, error)
	PushState(ctx context.Context, raw []byte) error
}

// Local is the document container being synced.
type Local interface {
	Capture() ([]byte, uint64, error)
	Generation() uint64
	HydrateJSON(raw []byte) error
}

// Pusher hydrates the local store from the remote on start and then pushes
// the serialized document on a fixed schedule. The last writer wins.
type Pusher struct {
	local    Local
	remote   Remote
	interval time.Duration
	log      logrus.FieldLogger

	// mu serializes applying remote state against capturing local state.
	mu sync.Mutex

	cronMu sync.Mutex
	cron   *cron.Cron
}

func NewPusher(local Local, remote Remote, interval time.Duration, log logrus.FieldLogger) *Pusher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Pusher{local: local, remote: remote, interval: interval, log: log}
}

// Pull fetches the remote document and hydrates the local store with it.
func (p *Pusher) Pull(ctx context.Context) error {
	if !p.remote.HasSession() {
		observability.SyncTotal.WithLabelValues("pull", "skipped").Inc()
		return ErrNoSession
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, err := p.remote.FetchState(ctx)
	if err != nil {
		observability.SyncTotal.WithLabelValues("pull", "error").Inc()
		return fmt.Errorf("fetch state: %w", err)
	}
	if raw == nil {
		observability.SyncTotal.WithLabelValues("pull", "empty").Inc()
		return nil
	}
	if err := p.local.HydrateJSON(raw); err != nil {
		observability.SyncTotal.WithLabelValues("pull", "error").Inc()
		return fmt.Errorf("hydrate: %w", err)
	}
	observability.SyncTotal.WithLabelValues("pull", "ok").Inc()
	return nil
}

// Push sends the current document. It reports pushed=false when there is no
// session or when remote state was applied after the capture.
func (p *Pusher) Push(ctx context.Context) (pushed bool, err error) {
	if !p.remote.HasSession() {
		observability.SyncTotal.WithLabelValues("push", "skipped").Inc()
		return false, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, gen, err := p.local.Capture()
	if err != nil {
		observability.SyncTotal.WithLabelValues("push", "error").Inc()
		return false, err
	}
	if p.local.Generation() != gen {
		observability.SyncTotal.WithLabelValues("push", "dropped").Inc()
		return false, nil
	}
	if err := p.remote.PushState(ctx, raw); err != nil {
		observability.SyncTotal.WithLabelValues("push", "error").Inc()
		return false, fmt.Errorf("push state: %w", err)
	}
	observability.SyncTotal.WithLabelValues("push", "ok").Inc()
	return true, nil
}

// Start pulls once and schedules periodic pushes. Pull failures are logged
// and do not prevent the schedule from starting.
func (p *Pusher) Start(ctx context.Context) error {
	if err := p.Pull(ctx); err != nil {
		p.log.WithError(err).Warn("initial pull failed")
	}

	c := cron.New()
	if _, err := c.AddFunc("@every "+p.interval.String(), p.tick); err != nil {
		return fmt.Errorf("schedule push: %w", err)
	}
	c.Start()

	p.cronMu.Lock()
	p.cron = c
	p.cronMu.Unlock()
	p.log.WithField("interval", p.interval.String()).Info("sync started")
	return nil
}

// Stop cancels the schedule. A push already in flight is not cancelled; the
// returned context is done once it has finished.
func (p *Pusher) Stop() context.Context {
	p.cronMu.Lock()
	c := p.cron
	p.cron = nil
	p.cronMu.Unlock()
	if c == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return c.Stop()
}

func (p *Pusher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	pushed, err := p.Push(ctx)
	if err != nil {
		p.log.WithError(err).Warn("periodic push failed")
		return
	}
	if pushed {
		p.log.Debug("document pushed")
	}
}
