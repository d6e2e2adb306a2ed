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

package gstreamer

import (
	"sync"

	"github.com/go-gst/go-gst/gst"
	"go.uber.org/atomic"

	"github.com/groundctl/videoreceiver/pkg/errors"
)

var initOnce sync.Once

// Runtime is the process-wide handle to the media framework. Element,
// bin and pipeline creation go through here; the packages above still
// use the gst types directly for linking, probes, events and bus access.
//
// Runtime also accounts for live element instances so that teardown
// paths can be verified to release everything they created.
type Runtime struct {
	created  atomic.Int64
	released atomic.Int64
}

// Init initializes the framework exactly once and returns the runtime
// context to be passed to the rest of the engine.
func Init() *Runtime {
	initOnce.Do(func() {
		gst.Init(nil)
	})
	return &Runtime{}
}

func (r *Runtime) NewElement(factory string) (*gst.Element, error) {
	e, err := gst.NewElement(factory)
	if err != nil {
		return nil, errors.ErrUnavailable(factory)
	}
	r.created.Inc()
	return e, nil
}

func (r *Runtime) NewElementWithName(factory, name string) (*gst.Element, error) {
	e, err := gst.NewElementWithName(factory, name)
	if err != nil {
		return nil, errors.ErrUnavailable(factory)
	}
	r.created.Inc()
	return e, nil
}

func (r *Runtime) NewPipeline(name string) (*gst.Pipeline, error) {
	p, err := gst.NewPipeline(name)
	if err != nil {
		return nil, errors.ErrGstPipelineError(err)
	}
	r.created.Inc()
	return p, nil
}

func (r *Runtime) NewBin(name string) *gst.Bin {
	b := gst.NewBin(name)
	r.created.Inc()
	return b
}

// Released records that ownership of the given elements has been
// dropped. Callers null the element state before dropping when it was
// part of a live graph.
func (r *Runtime) Released(count int) {
	r.released.Add(int64(count))
}

// LiveElements returns the number of created-but-not-released elements.
// Used by tests to verify teardown symmetry.
func (r *Runtime) LiveElements() int64 {
	return r.created.Load() - r.released.Load()
}
