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
	"net/url"
	"strconv"

	"github.com/go-gst/go-gst/gst"

	"github.com/groundctl/videoreceiver/pkg/config"
	"github.com/groundctl/videoreceiver/pkg/errors"
	"github.com/groundctl/videoreceiver/pkg/gstreamer"
	"github.com/groundctl/videoreceiver/pkg/logger"
	"github.com/groundctl/videoreceiver/pkg/types"
)

// sourceBin wraps the ingest element and its parser in a single bin.
// Parsed elementary-stream pads appear on the bin as ghost pads while
// the pipeline is live, so downstream only ever links against the bin.
type sourceBin struct {
	bin    *gst.Bin
	src    *gst.Element
	parser *gst.Element

	shape        types.SourceShape
	elementCount int
}

func buildSource(rt *gstreamer.Runtime, conf *config.Config, uri string) (*sourceBin, error) {
	scheme := types.ClassifyURI(uri)
	if scheme == types.SchemeUnknown {
		return nil, errors.ErrUriInvalid
	}

	var (
		src    *gst.Element
		buffer *gst.Element
		parser *gst.Element
		count  int
		err    error
	)

	// every created element is either moved into the bin or unreffed on
	// the failure path below
	fail := func(err error) (*sourceBin, error) {
		for _, e := range []*gst.Element{src, buffer, parser} {
			if e != nil {
				e.Unref()
			}
		}
		rt.Released(count)
		return nil, err
	}

	u, uErr := url.Parse(uri)
	if uErr != nil {
		return nil, errors.ErrUriInvalid
	}
	port, _ := strconv.Atoi(u.Port())

	switch scheme {
	case types.SchemeTCPMpegTS:
		if src, err = rt.NewElementWithName("tcpclientsrc", "source"); err != nil {
			return fail(err)
		}
		count++
		if err = src.SetProperty("host", u.Hostname()); err != nil {
			return fail(errors.ErrGstPipelineError(err))
		}
		if err = src.SetProperty("port", port); err != nil {
			return fail(errors.ErrGstPipelineError(err))
		}

	case types.SchemeRTSP:
		if src, err = rt.NewElementWithName("rtspsrc", "source"); err != nil {
			return fail(err)
		}
		count++
		if err = src.SetProperty("location", uri); err != nil {
			return fail(errors.ErrGstPipelineError(err))
		}
		if err = src.SetProperty("latency", uint(conf.RtspLatency.Milliseconds())); err != nil {
			return fail(errors.ErrGstPipelineError(err))
		}
		if err = src.SetProperty("udp-reconnect", true); err != nil {
			return fail(errors.ErrGstPipelineError(err))
		}
		if err = src.SetProperty("timeout", conf.RtspTimeoutMicros()); err != nil {
			return fail(errors.ErrGstPipelineError(err))
		}

	default:
		// udp, udp265, mpegts and tsusb all ingest over udpsrc
		if src, err = rt.NewElementWithName("udpsrc", "source"); err != nil {
			return fail(err)
		}
		count++
		if err = src.SetProperty("uri", "udp://"+u.Hostname()+":"+u.Port()); err != nil {
			return fail(errors.ErrGstPipelineError(err))
		}
		if capsStr := scheme.RTPCaps(); capsStr != "" {
			caps := gst.NewCapsFromString(capsStr)
			if caps == nil {
				return fail(errors.New("failed to parse rtp caps"))
			}
			if err = src.SetProperty("caps", caps); err != nil {
				return fail(errors.ErrGstPipelineError(err))
			}
		}
	}

	if scheme.IsMpegTS() {
		parser, err = rt.NewElementWithName("tsdemux", "parser")
	} else {
		parser, err = rt.NewElementWithName("parsebin", "parser")
	}
	if err != nil {
		return fail(err)
	}
	count++

	bin := rt.NewBin("source")
	count++
	if err = bin.AddMany(src, parser); err != nil {
		bin.Unref()
		src = nil
		parser = nil
		rt.Released(count)
		return nil, errors.ErrGstPipelineError(err)
	}

	s := &sourceBin{
		bin:    bin,
		src:    src,
		parser: parser,
	}

	// discover the ingest pad shape: a static src pad links now, a
	// dynamic one links from pad-added once data starts flowing
	if srcPad := src.GetStaticPad("src"); srcPad != nil {
		s.shape.HasStaticPad = true
		s.shape.IsRTP = scheme.RTPCaps() != "" || gstreamer.PadIsRTP(srcPad)
		srcPad.Unref()

		if s.shape.IsRTP {
			if buffer, err = rt.NewElement("rtpjitterbuffer"); err != nil {
				bin.Unref()
				rt.Released(count)
				return nil, err
			}
			count++
			if err = bin.Add(buffer); err != nil {
				buffer.Unref()
				bin.Unref()
				rt.Released(count)
				return nil, errors.ErrGstPipelineError(err)
			}
			err = gst.ElementLinkMany(src, buffer, parser)
		} else {
			err = src.Link(parser)
		}
		if err != nil {
			bin.Unref()
			rt.Released(count)
			return nil, errors.ErrGstPipelineError(err)
		}
	} else {
		src.Connect("pad-added", func(_ *gst.Element, pad *gst.Pad) {
			s.onSourcePadAdded(rt, pad)
		})
	}

	// parser output pads are always dynamic; each one is re-exposed on
	// the bin so the rest of the graph sees a single element
	parser.Connect("pad-added", func(_ *gst.Element, pad *gst.Pad) {
		name := pad.GetName()
		ghost := gst.NewGhostPad(name, pad)
		ghost.SetActive(true)
		if !bin.AddPad(ghost.Pad) {
			logger.Errorw("failed to expose parser pad", errors.ErrGhostPadFailed, "pad", name)
		}
	})

	s.elementCount = count
	return s, nil
}

// onSourcePadAdded links a late ingest pad into the parser, inserting a
// jitter buffer when the pad carries RTP. Runs on a streaming thread;
// it only touches elements inside the source bin.
func (s *sourceBin) onSourcePadAdded(rt *gstreamer.Runtime, pad *gst.Pad) {
	from := s.src
	if gstreamer.PadIsRTP(pad) {
		s.shape.IsRTP = true

		buffer, err := rt.NewElement("rtpjitterbuffer")
		if err != nil {
			logger.Warnw("continuing without jitter buffer", err)
		} else if err = s.bin.Add(buffer); err != nil {
			logger.Warnw("continuing without jitter buffer", err)
			buffer.Unref()
			rt.Released(1)
		} else {
			s.elementCount++
			buffer.SyncStateWithParent()

			sinkPad := buffer.GetStaticPad("sink")
			if sinkPad != nil {
				if pad.Link(sinkPad) == gst.PadLinkOK {
					pad = buffer.GetStaticPad("src")
					from = buffer
				} else {
					logger.Warnw("jitter buffer link failed", nil)
				}
				sinkPad.Unref()
			}
		}
	}

	if err := from.Link(s.parser); err != nil {
		logger.Errorw("failed to link source pad into parser", err, "pad", pad.GetName())
	}
}
