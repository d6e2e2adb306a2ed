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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func newTestWatchdog() (*watchdog, *atomic.Int64, *atomic.Int32, *time.Time) {
	lastFrame := atomic.NewInt64(0)
	fired := atomic.NewInt32(0)
	now := time.Unix(1000, 0)
	w := newWatchdog(time.Second, lastFrame, func() { fired.Inc() })
	w.now = func() time.Time { return now }
	return w, lastFrame, fired, &now
}

func TestWatchdogFiresOnStarvation(t *testing.T) {
	w, lastFrame, fired, now := newTestWatchdog()

	lastFrame.Store(now.UnixNano())
	w.arm(5 * time.Second)

	// frames recent, no fire
	*now = now.Add(3 * time.Second)
	w.check()
	require.EqualValues(t, 0, fired.Load())

	// past the timeout, fires exactly once
	*now = now.Add(3 * time.Second)
	w.check()
	require.EqualValues(t, 1, fired.Load())
	w.check()
	require.EqualValues(t, 1, fired.Load())
}

func TestWatchdogIgnoresTransientJitter(t *testing.T) {
	w, lastFrame, fired, now := newTestWatchdog()

	lastFrame.Store(now.UnixNano())
	w.arm(5 * time.Second)

	for i := 0; i < 10; i++ {
		// each tick arrives with a gap shorter than the timeout
		*now = now.Add(4 * time.Second)
		lastFrame.Store(now.UnixNano())
		w.check()
	}
	require.EqualValues(t, 0, fired.Load())
}

func TestWatchdogDisarmed(t *testing.T) {
	w, lastFrame, fired, now := newTestWatchdog()

	lastFrame.Store(now.Add(-time.Hour).UnixNano())

	// never armed, never fires
	w.check()
	require.EqualValues(t, 0, fired.Load())

	w.arm(5 * time.Second)
	w.disarm()
	w.check()
	require.EqualValues(t, 0, fired.Load())

	// rearming after starvation fires again
	w.arm(5 * time.Second)
	w.check()
	require.EqualValues(t, 1, fired.Load())
}

func TestWatchdogZeroTimeout(t *testing.T) {
	w, lastFrame, fired, now := newTestWatchdog()

	lastFrame.Store(now.Add(-time.Hour).UnixNano())
	w.arm(0)
	w.check()
	require.EqualValues(t, 0, fired.Load())
}
