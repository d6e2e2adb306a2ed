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
	"github.com/linkdata/deadlock"

	"github.com/groundctl/videoreceiver/pkg/types"
)

// Callbacks fans state-edge notifications out to collaborators. All
// callbacks fire on the control goroutine; handlers must not block.
type Callbacks struct {
	mu deadlock.RWMutex

	onError func(error)

	onStreamingChanged       []func(bool)
	onDecodingChanged        []func(bool)
	onRecordingChanged       []func(bool)
	onVideoFileChanged       []func(string)
	onImageFileChanged       []func(string)
	onVideoSizeChanged       []func(types.VideoSize)
	onFirstRecordingKeyFrame []func()
	onRestartTimeout         []func()
}

func NewCallbacks() *Callbacks {
	return &Callbacks{}
}

func (c *Callbacks) SetOnError(f func(error)) {
	c.mu.Lock()
	c.onError = f
	c.mu.Unlock()
}

func (c *Callbacks) OnError(err error) {
	c.mu.RLock()
	onError := c.onError
	c.mu.RUnlock()
	if onError != nil {
		onError(err)
	}
}

func (c *Callbacks) AddOnStreamingChanged(f func(bool)) {
	c.mu.Lock()
	c.onStreamingChanged = append(c.onStreamingChanged, f)
	c.mu.Unlock()
}

func (c *Callbacks) OnStreamingChanged(streaming bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.onStreamingChanged {
		f(streaming)
	}
}

func (c *Callbacks) AddOnDecodingChanged(f func(bool)) {
	c.mu.Lock()
	c.onDecodingChanged = append(c.onDecodingChanged, f)
	c.mu.Unlock()
}

func (c *Callbacks) OnDecodingChanged(decoding bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.onDecodingChanged {
		f(decoding)
	}
}

func (c *Callbacks) AddOnRecordingChanged(f func(bool)) {
	c.mu.Lock()
	c.onRecordingChanged = append(c.onRecordingChanged, f)
	c.mu.Unlock()
}

func (c *Callbacks) OnRecordingChanged(recording bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.onRecordingChanged {
		f(recording)
	}
}

func (c *Callbacks) AddOnVideoFileChanged(f func(string)) {
	c.mu.Lock()
	c.onVideoFileChanged = append(c.onVideoFileChanged, f)
	c.mu.Unlock()
}

func (c *Callbacks) OnVideoFileChanged(path string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.onVideoFileChanged {
		f(path)
	}
}

func (c *Callbacks) AddOnImageFileChanged(f func(string)) {
	c.mu.Lock()
	c.onImageFileChanged = append(c.onImageFileChanged, f)
	c.mu.Unlock()
}

func (c *Callbacks) OnImageFileChanged(path string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.onImageFileChanged {
		f(path)
	}
}

func (c *Callbacks) AddOnVideoSizeChanged(f func(types.VideoSize)) {
	c.mu.Lock()
	c.onVideoSizeChanged = append(c.onVideoSizeChanged, f)
	c.mu.Unlock()
}

func (c *Callbacks) OnVideoSizeChanged(size types.VideoSize) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.onVideoSizeChanged {
		f(size)
	}
}

func (c *Callbacks) AddOnFirstRecordingKeyFrame(f func()) {
	c.mu.Lock()
	c.onFirstRecordingKeyFrame = append(c.onFirstRecordingKeyFrame, f)
	c.mu.Unlock()
}

func (c *Callbacks) OnFirstRecordingKeyFrame() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.onFirstRecordingKeyFrame {
		f()
	}
}

func (c *Callbacks) AddOnRestartTimeout(f func()) {
	c.mu.Lock()
	c.onRestartTimeout = append(c.onRestartTimeout, f)
	c.mu.Unlock()
}

func (c *Callbacks) OnRestartTimeout() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.onRestartTimeout {
		f()
	}
}
