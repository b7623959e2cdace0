package watch

import (
	"context"
	"sync"
	"time"

	"github.com/solarena/rlgl/internal/models"
	"github.com/solarena/rlgl/utils"
)

// RoundSource is the slice of the store the hub observes.
type RoundSource interface {
	GetRound(ctx context.Context) (*models.Round, error)
}

// Hub turns the shared round record into a push-based subscription:
// it polls the store and fans out a snapshot whenever the record changed.
// Subscribers re-derive timeLeft against their own clock from the absolute
// RoundEndTime; the hub never pushes a counter.
type Hub struct {
	source   RoundSource
	interval time.Duration
	logger   *utils.Logger

	mu     sync.Mutex
	subs   map[int]chan models.Round
	nextID int
}

func NewHub(source RoundSource, interval time.Duration, logger *utils.Logger) *Hub {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Hub{
		source:   source,
		interval: interval,
		logger:   logger,
		subs:     make(map[int]chan models.Round),
	}
}

// Subscribe returns a channel of round snapshots. The subscription is torn
// down when ctx is cancelled; the channel is closed and never leaks.
func (h *Hub) Subscribe(ctx context.Context) <-chan models.Round {
	ch := make(chan models.Round, 1)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}

func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var last *models.Round
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			round, err := h.source.GetRound(ctx)
			if err != nil {
				if ctx.Err() == nil {
					h.logger.Warnf("watch: failed to read round: %v", err)
				}
				continue
			}
			if round == nil || !changed(last, round) {
				continue
			}
			last = round
			h.broadcast(*round)
		}
	}
}

func changed(prev, next *models.Round) bool {
	if prev == nil {
		return true
	}
	return prev.RoundID != next.RoundID ||
		prev.Status != next.Status ||
		!prev.GreenPool.Equal(next.GreenPool) ||
		!prev.RedPool.Equal(next.RedPool) ||
		!prev.Jackpot.Equal(next.Jackpot) ||
		!prev.RoundEndTime.Equal(next.RoundEndTime)
}

// broadcast is latest-wins: a slow subscriber drops the stale snapshot
// rather than blocking the hub.
func (h *Hub) broadcast(round models.Round) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- round:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- round:
			default:
			}
		}
	}
}
