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
	"sync"

	"github.com/frostbyte73/core"
	"github.com/linkdata/deadlock"
	"github.com/petermattis/goid"
	"go.uber.org/atomic"
)

// controlLoop serializes every graph mutation and bus reaction onto a
// single goroutine. Tasks are FIFO and non-preemptible; public entry
// points post and return without blocking. A post made from the control
// goroutine itself runs inline to preserve FIFO semantics.
type controlLoop struct {
	mu     deadlock.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool

	gid  atomic.Int64
	done core.Fuse
}

func newControlLoop() *controlLoop {
	l := &controlLoop{}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *controlLoop) run() {
	l.gid.Store(goid.Get())

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.queue) == 0 {
			l.mu.Unlock()
			l.done.Break()
			return
		}
		task := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		task()
	}
}

func (l *controlLoop) post(task func()) {
	if goid.Get() == l.gid.Load() {
		task()
		return
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()
	l.cond.Signal()
}

// close drains the queue, then stops the loop and waits for it to exit.
func (l *controlLoop) close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		l.cond.Signal()
	}
	l.mu.Unlock()

	if goid.Get() == l.gid.Load() {
		return
	}
	<-l.done.Watch()
}
