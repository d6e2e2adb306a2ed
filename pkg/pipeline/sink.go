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

	"github.com/groundctl/videoreceiver/pkg/errors"
	"github.com/groundctl/videoreceiver/pkg/gstreamer"
	"github.com/groundctl/videoreceiver/pkg/types"
)

// recordSink is the muxer plus file writer, wrapped in a bin with a
// single ghosted sink pad requested from the muxer.
type recordSink struct {
	bin *gst.Bin
	mux *gst.Element

	elementCount int
}

func buildRecordSink(rt *gstreamer.Runtime, path string, format types.FileFormat) (*recordSink, error) {
	if !format.Valid() {
		return nil, errors.ErrInvalidFormat(format)
	}

	mux, err := rt.NewElement(format.MuxFactory())
	if err != nil {
		return nil, err
	}

	sink, err := rt.NewElement("filesink")
	if err != nil {
		mux.Unref()
		rt.Released(1)
		return nil, err
	}

	fail := func(err error) (*recordSink, error) {
		sink.Unref()
		mux.Unref()
		rt.Released(2)
		return nil, err
	}

	if err = sink.SetProperty("location", path); err != nil {
		return fail(errors.ErrGstPipelineError(err))
	}
	if err = sink.SetProperty("sync", false); err != nil {
		return fail(errors.ErrGstPipelineError(err))
	}

	bin := rt.NewBin("sink")
	if err = bin.AddMany(mux, sink); err != nil {
		bin.Unref()
		rt.Released(3)
		return nil, errors.ErrGstPipelineError(err)
	}

	pad := mux.GetRequestPad("video_%u")
	if pad == nil {
		bin.Unref()
		rt.Released(3)
		return nil, errors.ErrPadRequestFailed(format.MuxFactory(), "video_%u")
	}

	ghost := gst.NewGhostPad("sink", pad)
	pad.Unref()
	if !bin.AddPad(ghost.Pad) {
		bin.Unref()
		rt.Released(3)
		return nil, errors.ErrGhostPadFailed
	}

	if err = mux.Link(sink); err != nil {
		bin.Unref()
		rt.Released(3)
		return nil, errors.ErrGstPipelineError(err)
	}

	return &recordSink{
		bin:          bin,
		mux:          mux,
		elementCount: 3,
	}, nil
}
