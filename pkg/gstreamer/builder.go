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
	"github.com/go-gst/go-gst/gst"

	"github.com/groundctl/videoreceiver/pkg/errors"
)

// BuildQueue builds a pass-through queue. With latency set, the queue
// is bounded by time instead of the byte/buffer defaults.
func (r *Runtime) BuildQueue(name string, latency uint64, leaky bool) (*gst.Element, error) {
	queue, err := r.NewElementWithName("queue", name)
	if err != nil {
		return nil, err
	}
	if latency > 0 {
		if err = queue.SetProperty("max-size-time", latency); err != nil {
			return nil, errors.ErrGstPipelineError(err)
		}
		if err = queue.SetProperty("max-size-bytes", uint(0)); err != nil {
			return nil, errors.ErrGstPipelineError(err)
		}
		if err = queue.SetProperty("max-size-buffers", uint(0)); err != nil {
			return nil, errors.ErrGstPipelineError(err)
		}
	}
	if leaky {
		queue.SetArg("leaky", "downstream")
	}

	return queue, nil
}

// LinkPads links two pads, translating the pad link return into an error.
func LinkPads(srcName string, src *gst.Pad, sinkName string, sink *gst.Pad) error {
	if padReturn := src.Link(sink); padReturn != gst.PadLinkOK {
		return errors.ErrPadLinkFailed(srcName, sinkName, padReturn.String())
	}
	return nil
}

// PadIsRTP reports whether the pad's known caps intersect the RTP
// filter. Pads that have not negotiated yet fall back to their allowed
// caps; callers combine the result with scheme knowledge gathered at
// build time.
func PadIsRTP(pad *gst.Pad) bool {
	caps := pad.GetCurrentCaps()
	if caps == nil {
		caps = pad.GetAllowedCaps()
	}
	if caps == nil {
		return false
	}
	filter := gst.NewCapsFromString("application/x-rtp")
	if filter == nil {
		return false
	}
	return !caps.IsAny() && caps.CanIntersect(filter)
}
