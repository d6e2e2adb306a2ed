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
	"github.com/go-gst/go-gst/gst"
	"go.uber.org/atomic"

	"github.com/groundctl/videoreceiver/pkg/errors"
	"github.com/groundctl/videoreceiver/pkg/gstreamer"
)

// rebaser shifts buffer PTS/DTS on the recording branch by a signed
// nanosecond amount. The keyframe probe sets the primary pad offset;
// this element is the seam for any additional timestamp policy. With
// shift zero it is passthrough.
type rebaser struct {
	*gst.Element
	pad   *gst.Pad
	probe uint64
	shift atomic.Int64
}

func newRebaser(rt *gstreamer.Runtime) (*rebaser, error) {
	element, err := rt.NewElementWithName("identity", "rebaser")
	if err != nil {
		return nil, err
	}

	pad := element.GetStaticPad("src")
	if pad == nil {
		element.Unref()
		rt.Released(1)
		return nil, errors.ErrMissingPad("identity", "src")
	}

	r := &rebaser{
		Element: element,
		pad:     pad,
	}
	r.probe = pad.AddProbe(gst.PadProbeTypeBuffer, r.onBuffer)

	return r, nil
}

func (r *rebaser) SetShift(nanos int64) {
	r.shift.Store(nanos)
}

func (r *rebaser) onBuffer(_ *gst.Pad, info *gst.PadProbeInfo) gst.PadProbeReturn {
	shift := r.shift.Load()
	if shift == 0 {
		return gst.PadProbeOK
	}

	buf := info.GetBuffer()
	if buf == nil {
		return gst.PadProbeOK
	}

	if pts := buf.PresentationTimestamp(); pts != gst.ClockTimeNone {
		buf.SetPresentationTimestamp(gst.ClockTime(int64(pts) + shift))
	}
	if dts := buf.DecodingTimestamp(); dts != gst.ClockTimeNone {
		buf.SetDecodingTimestamp(gst.ClockTime(int64(dts) + shift))
	}

	return gst.PadProbeOK
}

func (r *rebaser) Close() {
	if r.pad != nil {
		r.pad.RemoveProbe(r.probe)
		r.pad.Unref()
		r.pad = nil
	}
}
