// Copyright 2024 Groundctl, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"time"

	"github.com/frostbyte73/core"
	"go.uber.org/atomic"
)

// watchdog compares the frame-arrival clock against the configured
// timeout once per tick. It is armed only while frames are expected,
// i.e. the session streams and the decoder is active.
type watchdog struct {
	interval  time.Duration
	lastFrame *atomic.Int64
	timeout   atomic.Int64
	armed     atomic.Bool

	now     func() time.Time
	expired func()
	done    core.Fuse
}

func newWatchdog(interval time.Duration, lastFrame *atomic.Int64, expired func()) *watchdog {
	return &watchdog{
		interval:  interval,
		lastFrame: lastFrame,
		now:       time.Now,
		expired:   expired,
	}
}

func (w *watchdog) start() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.check()
			case <-w.done.Watch():
				return
			}
		}
	}()
}

func (w *watchdog) arm(timeout time.Duration) {
	w.timeout.Store(int64(timeout))
	w.armed.Store(true)
}

func (w *watchdog) disarm() {
	w.armed.Store(false)
}

func (w *watchdog) stop() {
	w.done.Break()
}

func (w *watchdog) check() {
	if !w.armed.Load() {
		return
	}
	timeout := w.timeout.Load()
	if timeout <= 0 {
		return
	}
	if w.now().UnixNano()-w.lastFrame.Load() > timeout {
		// one shot per starvation, rearmed on the next decoder attach
		w.armed.Store(false)
		w.expired()
	}
}
