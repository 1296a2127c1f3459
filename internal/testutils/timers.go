// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

import (
	"sync"
	"time"
)

// ManualTimers satisfies evm.Timers with channels the test fires by hand.
// Ticks and Deadline are unbuffered, so a send returns only once the waiter
// is blocked on them
type ManualTimers struct {
	Ticks    chan time.Time
	Deadline chan time.Time

	lock      sync.Mutex
	intervals []time.Duration
	timeouts  []time.Duration
}

func NewManualTimers() *ManualTimers {
	return &ManualTimers{
		Ticks:    make(chan time.Time),
		Deadline: make(chan time.Time),
	}
}

func (m *ManualTimers) NewTicker(d time.Duration) (<-chan time.Time, func()) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.intervals = append(m.intervals, d)
	return m.Ticks, func() {}
}

func (m *ManualTimers) After(d time.Duration) <-chan time.Time {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.timeouts = append(m.timeouts, d)
	return m.Deadline
}

// Intervals lists the poll intervals tickers were requested with
func (m *ManualTimers) Intervals() []time.Duration {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]time.Duration(nil), m.intervals...)
}

// Timeouts lists the durations deadlines were requested with
func (m *ManualTimers) Timeouts() []time.Duration {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]time.Duration(nil), m.timeouts...)
}
