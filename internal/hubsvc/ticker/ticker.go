package ticker

import (
	"context"
	"sync"
	"time"

	"github.com/avvvet/torcedor-hub/internal/comm"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/clock"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/matchtime"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/prediction"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/service"
	log "github.com/sirupsen/logrus"
)

// BoardLoader fetches the upcoming match board.
type BoardLoader func(ctx context.Context) service.MatchList

// PublishFunc delivers one tick to one socket.
type PublishFunc func(socketId string, payload comm.TickPayload)

// Ticker re-resolves the match board for every watching socket once per
// interval. The board itself is reloaded every refresh; timing is
// recomputed from the clock on every tick.
type Ticker struct {
	clock    clock.Clock
	interval time.Duration
	refresh  time.Duration
	load     BoardLoader
	publish  PublishFunc

	mu      sync.Mutex
	watches map[string]*watch
}

type watch struct {
	ticker clock.Ticker
	ctx    context.Context
	cancel context.CancelFunc
}

func (w *watch) stop() {
	w.ticker.Stop()
	w.cancel()
}

// DefaultInterval replaces a non-positive tick interval.
const DefaultInterval = time.Second

func New(c clock.Clock, interval, refresh time.Duration, load BoardLoader, publish PublishFunc) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{
		clock:    c,
		interval: interval,
		refresh:  refresh,
		load:     load,
		publish:  publish,
		watches:  make(map[string]*watch),
	}
}

// Watch starts ticking for socketId. Watching again restarts the stream.
func (t *Ticker) Watch(socketId string) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &watch{
		ticker: t.clock.NewTicker(t.interval),
		ctx:    ctx,
		cancel: cancel,
	}

	t.mu.Lock()
	if old, ok := t.watches[socketId]; ok {
		old.stop()
	}
	t.watches[socketId] = w
	t.mu.Unlock()

	log.Infof("socket %s watching matches", socketId)
	go t.run(socketId, w)
}

// Unwatch stops the timer for socketId. Once it returns no further tick
// is published for that watch, including one from a fetch still in flight.
func (t *Ticker) Unwatch(socketId string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if w, ok := t.watches[socketId]; ok {
		w.stop()
		delete(t.watches, socketId)
		log.Infof("socket %s stopped watching matches", socketId)
	}
}

// Stop tears down every watch.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, w := range t.watches {
		w.stop()
		delete(t.watches, id)
	}
}

// Watching is the number of live watches.
func (t *Ticker) Watching() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.watches)
}

func (t *Ticker) run(socketId string, w *watch) {
	board, ok := t.loadBoard(w)
	if !ok {
		return
	}
	loadedAt := t.clock.Now()
	t.emit(socketId, w, board)

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.ticker.C():
			if t.refresh > 0 && t.clock.Now().Sub(loadedAt) >= t.refresh {
				fresh, ok := t.loadBoard(w)
				if !ok {
					return
				}
				board, loadedAt = fresh, t.clock.Now()
			}
			t.emit(socketId, w, board)
		}
	}
}

// loadBoard reports false when the watch ended while the fetch ran; the
// result is then dropped.
func (t *Ticker) loadBoard(w *watch) (service.MatchList, bool) {
	board := t.load(w.ctx)
	return board, w.ctx.Err() == nil
}

func (t *Ticker) emit(socketId string, w *watch, board service.MatchList) {
	payload := Tick(board, t.clock.Now())

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.watches[socketId] != w {
		return
	}
	t.publish(socketId, payload)
}

// Tick resolves every match on the board at now.
func Tick(board service.MatchList, now time.Time) comm.TickPayload {
	payload := comm.TickPayload{
		At:      now,
		Matches: make([]comm.MatchTick, 0, len(board.Matches)),
		Notice:  board.Notice,
	}
	for _, m := range board.Matches {
		info := matchtime.Resolve(m, now)
		payload.Matches = append(payload.Matches, comm.MatchTick{
			MatchID:    m.ID.String(),
			Info:       info,
			CanPredict: prediction.CanSubmit(info),
		})
	}
	return payload
}
