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

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoopFIFO(t *testing.T) {
	l := newControlLoop()

	var got []int
	done := make(chan struct{})
	for i := 0; i < 100; i++ {
		i := i
		l.post(func() { got = append(got, i) })
	}
	l.post(func() { close(done) })
	<-done

	require.Len(t, got, 100)
	for i, v := range got {
		require.Equal(t, i, v)
	}

	l.close()
}

func TestLoopInlineFromLoopGoroutine(t *testing.T) {
	l := newControlLoop()

	var got []string
	done := make(chan struct{})
	l.post(func() {
		got = append(got, "outer-start")
		// posting from the control goroutine runs inline, preserving
		// FIFO relative to the running task
		l.post(func() { got = append(got, "inner") })
		got = append(got, "outer-end")
		close(done)
	})
	<-done

	require.Equal(t, []string{"outer-start", "inner", "outer-end"}, got)

	l.close()
}

func TestLoopCloseDrains(t *testing.T) {
	l := newControlLoop()

	count := 0
	for i := 0; i < 50; i++ {
		l.post(func() { count++ })
	}
	l.close()

	require.Equal(t, 50, count)

	// posting after close is a no-op
	l.post(func() { count++ })
	require.Equal(t, 50, count)
}
