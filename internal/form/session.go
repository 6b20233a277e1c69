package form

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/nulln0ne/rdx-dex/internal/token"
)

var (
	// ErrStaleResponse is returned when a newer refresh was started while a
	// load was in flight; its result was discarded.
	ErrStaleResponse = errors.New("stale response discarded")
	ErrNoPair        = errors.New("no pair selected")
)

// Sequence hands out monotonically increasing request numbers. Only the
// response to the latest request is applied.
type Sequence struct {
	n atomic.Uint64
}

func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

func (s *Sequence) IsLatest(seq uint64) bool {
	return s.n.Load() == seq
}

// Session is the state of one user's pool and swap forms for the selected
// pair. Loads run outside the lock; a load that finishes after a newer one
// started is dropped instead of overwriting fresher state.
type Session struct {
	loader      Loader
	slippageBps uint32
	seq         Sequence

	mu        sync.Mutex
	snap      *Snapshot
	swap      SwapForm
	liquidity LiquidityForm
	remove    RemoveForm
}

func NewSession(loader Loader, slippageBps uint32) *Session {
	return &Session{
		loader:      loader,
		slippageBps: slippageBps,
		swap:        NewSwapForm(slippageBps),
	}
}

// SelectPair loads state for pair and resets the forms if the pair changed.
func (s *Session) SelectPair(ctx context.Context, pair token.Pair) (Snapshot, error) {
	return s.load(ctx, pair)
}

// Refresh reloads the selected pair and re-validates the displayed inputs
// without touching their text.
func (s *Session) Refresh(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if s.snap == nil {
		s.mu.Unlock()
		return Snapshot{}, ErrNoPair
	}
	pair := s.snap.Pair
	s.mu.Unlock()
	return s.load(ctx, pair)
}

func (s *Session) load(ctx context.Context, pair token.Pair) (Snapshot, error) {
	seq := s.seq.Next()
	snap, err := s.loader.Load(ctx, pair)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.IsLatest(seq) {
		return Snapshot{}, ErrStaleResponse
	}
	if err != nil {
		return Snapshot{}, err
	}
	if s.snap == nil || !samePair(s.snap.Pair, snap.Pair) {
		s.swap = NewSwapForm(s.slippageBps)
		s.liquidity.Reset()
		s.remove.Reset()
	}
	s.snap = &snap
	s.swap.Revalidate(snap)
	s.liquidity.Revalidate(snap)
	s.remove.Revalidate(snap)
	return snap, nil
}

func samePair(a, b token.Pair) bool {
	return a.A.Address == b.A.Address && a.B.Address == b.B.Address
}

// Snapshot returns the last applied snapshot.
func (s *Session) Snapshot() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return Snapshot{}, false
	}
	return *s.snap, true
}

func (s *Session) SetSwapInput(value string) (SwapForm, error) {
	return withSnap(s, func(snap Snapshot) SwapForm {
		s.swap.SetInput(value, snap)
		return s.swap
	})
}

func (s *Session) SetSwapPercent(percent uint32) (SwapForm, error) {
	return withSnap(s, func(snap Snapshot) SwapForm {
		s.swap.SetPercent(percent, snap)
		return s.swap
	})
}

func (s *Session) SetLiquidityA(value string) (LiquidityForm, error) {
	return withSnap(s, func(snap Snapshot) LiquidityForm {
		s.liquidity.SetA(value, snap)
		return s.liquidity
	})
}

func (s *Session) SetLiquidityPercent(percent uint32) (LiquidityForm, error) {
	return withSnap(s, func(snap Snapshot) LiquidityForm {
		s.liquidity.SetPercentA(percent, snap)
		return s.liquidity
	})
}

func (s *Session) SetLiquidityB(value string) (LiquidityForm, error) {
	return withSnap(s, func(snap Snapshot) LiquidityForm {
		s.liquidity.SetB(value, snap)
		return s.liquidity
	})
}

func (s *Session) SetRemoveLP(value string) (RemoveForm, error) {
	return withSnap(s, func(snap Snapshot) RemoveForm {
		s.remove.SetLP(value, snap)
		return s.remove
	})
}

// ResetForms clears every input after a submitted transaction completes.
func (s *Session) ResetForms() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swap.Reset()
	s.liquidity.Reset()
	s.remove.Reset()
}

func (s *Session) Swap() SwapForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swap
}

func (s *Session) Liquidity() LiquidityForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liquidity
}

func (s *Session) Remove() RemoveForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove
}

func withSnap[T any](s *Session, fn func(Snapshot) T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		var zero T
		return zero, ErrNoPair
	}
	return fn(*s.snap), nil
}
