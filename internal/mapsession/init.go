package mapsession

import (
	"context"
	"sync"
)

type initState int

const (
	stateUninitialized initState = iota
	stateInitializing
	stateReady
)

// mapInit serializes one-time map initialization. The first caller runs
// initFn; callers arriving while it is in flight wait in arrival order for
// its outcome instead of racing a second attempt. A failed initialization
// resets to uninitialized so the next caller retries.
type mapInit struct {
	mu      sync.Mutex
	state   initState
	initFn  func(context.Context) error
	waiters []chan error
}

func newMapInit(initFn func(context.Context) error) *mapInit {
	return &mapInit{initFn: initFn}
}

// Ensure blocks until the map is initialized, the initialization fails, or
// ctx is done.
func (m *mapInit) Ensure(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case stateReady:
		m.mu.Unlock()
		return nil
	case stateInitializing:
		ch := make(chan error, 1)
		m.waiters = append(m.waiters, ch)
		m.mu.Unlock()
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.state = stateInitializing
	m.mu.Unlock()

	err := m.initFn(ctx)

	m.mu.Lock()
	if err == nil {
		m.state = stateReady
	} else {
		m.state = stateUninitialized
	}
	waiters := m.waiters
	m.waiters = nil
	m.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}

	return err
}
