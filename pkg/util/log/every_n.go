// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"sync"
	"time"
)

// EveryN provides a way to rate limit spammy log messages. It tracks how
// recently a given log message has been emitted so that it can determine
// whether it's worth logging again.
type EveryN struct {
	N time.Duration

	mu      sync.Mutex
	lastLog time.Time
}

// Every is a convenience constructor for an EveryN object that allows a log
// message every n duration.
func Every(n time.Duration) *EveryN {
	return &EveryN{N: n}
}

// ShouldLog returns whether it's been more than N time since the last event.
func (e *EveryN) ShouldLog() bool {
	return e.shouldLog(time.Now())
}

func (e *EveryN) shouldLog(now time.Time) bool {
	if V(2) {
		// Always log when high verbosity is desired.
		return true
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastLog.IsZero() || now.Sub(e.lastLog) >= e.N {
		e.lastLog = now
		return true
	}
	return false
}
