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

	"github.com/go-gst/go-glib/glib"
	"github.com/go-gst/go-gst/gst"
	"github.com/google/uuid"
	"github.com/linkdata/deadlock"
	"go.uber.org/atomic"

	"github.com/groundctl/videoreceiver/pkg/config"
	"github.com/groundctl/videoreceiver/pkg/errors"
	"github.com/groundctl/videoreceiver/pkg/gstreamer"
	"github.com/groundctl/videoreceiver/pkg/logger"
	"github.com/groundctl/videoreceiver/pkg/stats"
	"github.com/groundctl/videoreceiver/pkg/types"
)

// Receiver owns the live graph:
//
//	source ─> tee ─> decode_valve ─> [decoder ─> video_sink]
//	            └──> record_valve ─> [rebaser ─> mux ─> filesink]
//
// The bracketed branches attach and detach at runtime without
// disturbing ingest. Every graph mutation and bus reaction runs on the
// control goroutine; public entry points post tasks and return.
type Receiver struct {
	conf      *config.Config
	rt        *gstreamer.Runtime
	monitor   *stats.Monitor
	callbacks *Callbacks

	id       string
	loop     *controlLoop
	mainLoop *glib.MainLoop
	watch    *watchdog

	// graph handles, owned by the control goroutine
	pipeline    *gst.Pipeline
	bus         *gst.Bus
	source      *sourceBin
	tee         *gst.Element
	decodeValve *gst.Element
	recordValve *gst.Element
	decoder     *gst.Element
	videoSink   *gst.Element
	rebase      *rebaser
	fileSink    *recordSink

	uri          string
	timeout      time.Duration
	restartTimer *time.Timer
	watchActive  bool
	coreCount    int

	session  atomic.Int32
	decState atomic.Int32
	recState atomic.Int32

	streaming atomic.Bool
	lastFrame atomic.Int64

	mu        deadlock.Mutex
	videoFile string
	imageFile string
	videoSize types.VideoSize
}

func New(conf *config.Config, monitor *stats.Monitor) *Receiver {
	r := &Receiver{
		conf:      conf,
		rt:        gstreamer.Init(),
		monitor:   monitor,
		callbacks: NewCallbacks(),
		id:        uuid.NewString(),
		loop:      newControlLoop(),
		mainLoop:  glib.NewMainLoop(glib.MainContextDefault(), false),
	}
	r.watch = newWatchdog(conf.WatchdogInterval, &r.lastFrame, func() {
		r.loop.post(r.frameTimeoutExpired)
	})

	go r.mainLoop.Run()
	r.watch.start()

	logger.Debugw("receiver created", "sessionID", r.id)
	return r
}

// Close tears the session down and stops the control goroutine. The
// receiver cannot be reused afterwards.
func (r *Receiver) Close() {
	r.loop.post(r.stopLocked)
	r.loop.close()
	r.watch.stop()
	r.mainLoop.Quit()
}

func (r *Receiver) Callbacks() *Callbacks { return r.callbacks }

func (r *Receiver) Runtime() *gstreamer.Runtime { return r.rt }

func (r *Receiver) SessionState() SessionState   { return SessionState(r.session.Load()) }
func (r *Receiver) DecoderState() DecoderState   { return DecoderState(r.decState.Load()) }
func (r *Receiver) RecorderState() RecorderState { return RecorderState(r.recState.Load()) }

func (r *Receiver) Streaming() bool { return r.streaming.Load() }
func (r *Receiver) Decoding() bool  { return r.DecoderState() == DecoderActive }
func (r *Receiver) Recording() bool {
	s := r.RecorderState()
	return s == RecorderAwaitingKeyframe || s == RecorderActive
}

func (r *Receiver) VideoSize() types.VideoSize {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videoSize
}

func (r *Receiver) VideoFile() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videoFile
}

func (r *Receiver) ImageFile() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.imageFile
}

// ----- public entry points -----

func (r *Receiver) Start(uri string, timeout time.Duration) {
	if uri == "" {
		logger.Debugw("start rejected, no uri")
		return
	}
	r.loop.post(func() { r.startLocked(uri, timeout) })
}

func (r *Receiver) Stop() {
	r.loop.post(r.stopLocked)
}

func (r *Receiver) StartDecoding(videoSink *gst.Element) {
	r.loop.post(func() { r.startDecodingLocked(videoSink) })
}

func (r *Receiver) StopDecoding() {
	r.loop.post(r.stopDecodingLocked)
}

func (r *Receiver) StartRecording(path string, format types.FileFormat) {
	r.loop.post(func() { r.startRecordingLocked(path, format) })
}

func (r *Receiver) StopRecording() {
	r.loop.post(r.stopRecordingLocked)
}

// GrabImage is declared for collaborators but has no capture behavior
// yet. It records the requested path and notifies.
func (r *Receiver) GrabImage(path string) {
	r.loop.post(func() {
		r.mu.Lock()
		r.imageFile = path
		r.mu.Unlock()
		r.callbacks.OnImageFileChanged(path)
	})
}

// ----- session -----

func (r *Receiver) startLocked(uri string, timeout time.Duration) {
	if s := r.SessionState(); s != SessionIdle {
		r.reportInvalidState("start", s.String())
		return
	}

	r.uri = uri
	r.timeout = timeout
	r.session.Store(int32(SessionStarting))

	logger.Infow("starting", "uri", uri, "timeout", timeout)

	var (
		tee         *gst.Element
		decodeValve *gst.Element
		recordValve *gst.Element
		pipeline    *gst.Pipeline
		source      *sourceBin
		err         error
		pipelineUp  bool
	)

	fail := func(err error) {
		logger.Errorw("start failed", err, "uri", uri)
		if pipeline != nil {
			_ = pipeline.SetState(gst.StateNull)
			pipeline.Unref()
			if pipelineUp {
				// the pipeline released everything added to it
				count := 4
				if source != nil {
					count += source.elementCount
				}
				r.rt.Released(count)
			} else {
				r.rt.Released(1)
			}
		}
		if !pipelineUp {
			released := 0
			for _, e := range []*gst.Element{tee, decodeValve, recordValve} {
				if e != nil {
					e.Unref()
					released++
				}
			}
			if source != nil {
				source.bin.Unref()
				released += source.elementCount
			}
			r.rt.Released(released)
		}
		r.session.Store(int32(SessionFailed))
		r.callbacks.OnError(err)
	}

	if tee, err = r.rt.NewElementWithName("tee", "tee"); err != nil {
		fail(err)
		return
	}
	if decodeValve, err = r.rt.BuildQueue("decode_valve", 0, false); err != nil {
		fail(err)
		return
	}
	if recordValve, err = r.rt.BuildQueue("record_valve", 0, false); err != nil {
		fail(err)
		return
	}
	if pipeline, err = r.rt.NewPipeline("receiver"); err != nil {
		fail(err)
		return
	}
	if err = pipeline.SetProperty("message-forward", true); err != nil {
		fail(errors.ErrGstPipelineError(err))
		return
	}

	if source, err = buildSource(r.rt, r.conf, uri); err != nil {
		fail(err)
		return
	}

	source.bin.Connect("pad-added", func(_ *gst.Element, _ *gst.Pad) {
		r.loop.post(r.onNewSourcePad)
	})

	if err = pipeline.AddMany(source.bin.Element, tee, decodeValve, recordValve); err != nil {
		fail(errors.ErrGstPipelineError(err))
		return
	}
	pipelineUp = true

	if err = tee.Link(decodeValve); err != nil {
		fail(errors.ErrGstPipelineError(err))
		return
	}
	if err = tee.Link(recordValve); err != nil {
		fail(errors.ErrGstPipelineError(err))
		return
	}

	bus := pipeline.GetPipelineBus()
	if err = bus.AddWatch(r.onBusMessage); err != nil {
		fail(errors.ErrGstPipelineError(err))
		return
	}

	if err = pipeline.SetState(gst.StatePlaying); err != nil {
		bus.RemoveWatch()
		fail(errors.ErrGstPipelineError(err))
		return
	}

	r.pipeline = pipeline
	r.bus = bus
	r.watchActive = true
	r.source = source
	r.tee = tee
	r.decodeValve = decodeValve
	r.recordValve = recordValve
	r.coreCount = 4

	r.session.Store(int32(SessionStreaming))
	logger.Infow("running", "uri", uri)
}

// onNewSourcePad runs when the source bin exposes its first parsed
// output pad. Data can now flow into the tee; a deferred decoder
// attach completes here.
func (r *Receiver) onNewSourcePad() {
	if r.pipeline == nil || r.streaming.Load() {
		return
	}

	if err := r.source.bin.Link(r.tee); err != nil {
		logger.Errorw("failed to link source bin", errors.ErrGstPipelineError(err))
		return
	}

	r.streaming.Store(true)
	r.callbacks.OnStreamingChanged(true)
	logger.Infow("streaming", "uri", r.uri)

	if r.DecoderState() == DecoderAttaching && r.videoSink != nil {
		r.addDecoder()
	}
}

func (r *Receiver) stopLocked() {
	switch r.SessionState() {
	case SessionIdle, SessionStopping:
		return
	}

	if r.restartTimer != nil {
		r.restartTimer.Stop()
		r.restartTimer = nil
	}

	if r.pipeline == nil {
		r.session.Store(int32(SessionIdle))
		return
	}

	r.session.Store(int32(SessionStopping))
	logger.Infow("stopping", "uri", r.uri)

	if !r.streaming.Load() {
		r.shutdownPipeline()
		r.session.Store(int32(SessionIdle))
		return
	}

	// drain synchronously on the control goroutine: no more async bus
	// dispatch, inject EOS at the root and pop until it comes back
	r.removeBusWatch()
	r.pipeline.SendEvent(gst.NewEOSEvent())

	msg := r.bus.TimedPopFiltered(gst.ClockTimeNone, gst.MessageEOS|gst.MessageError)
	if msg == nil {
		r.shutdownPipeline()
		r.session.Store(int32(SessionFailed))
		return
	}

	switch msg.Type() {
	case gst.MessageError:
		gErr := msg.ParseError()
		logger.Errorw("error while stopping", errors.New(gErr.Error()))
		msg.Unref()
		r.shutdownPipeline()
		r.session.Store(int32(SessionFailed))

	case gst.MessageEOS:
		msg.Unref()
		if r.DecoderState() != DecoderAbsent {
			r.shutdownDecodingBranch()
		}
		if r.RecorderState() != RecorderAbsent {
			r.shutdownRecordingBranch()
		}
		r.shutdownPipeline()
		r.session.Store(int32(SessionIdle))
		logger.Infow("stopped", "uri", r.uri)
	}
}

func (r *Receiver) shutdownPipeline() {
	if r.pipeline == nil {
		return
	}

	r.watch.disarm()
	r.removeBusWatch()
	_ = r.pipeline.SetState(gst.StateNull)

	// the external video sink is never released with the graph
	if r.videoSink != nil {
		if s := r.DecoderState(); s == DecoderActive || s == DecoderDetaching {
			_ = r.pipeline.Remove(r.videoSink)
		}
		_ = r.videoSink.SetState(gst.StateNull)
		r.videoSink = nil
	}
	if r.rebase != nil {
		r.rebase.Close()
	}

	released := r.coreCount + r.source.elementCount
	if r.decoder != nil {
		released++
	}
	if r.rebase != nil {
		released++
	}
	if r.fileSink != nil {
		released += r.fileSink.elementCount
	}

	r.pipeline.Unref()
	r.rt.Released(released)

	r.pipeline = nil
	r.bus = nil
	r.source = nil
	r.tee = nil
	r.decodeValve = nil
	r.recordValve = nil
	r.decoder = nil
	r.rebase = nil
	r.fileSink = nil
	r.coreCount = 0

	if r.DecoderState() != DecoderAbsent {
		r.decState.Store(int32(DecoderAbsent))
		r.callbacks.OnDecodingChanged(false)
	}
	if r.RecorderState() != RecorderAbsent {
		r.recState.Store(int32(RecorderAbsent))
		r.callbacks.OnRecordingChanged(false)
	}
	if r.streaming.Load() {
		r.streaming.Store(false)
		r.callbacks.OnStreamingChanged(false)
	}
}

func (r *Receiver) removeBusWatch() {
	if r.watchActive && r.bus != nil {
		r.bus.RemoveWatch()
		r.watchActive = false
	}
}

// ----- decoding branch -----

func (r *Receiver) startDecodingLocked(videoSink *gst.Element) {
	if r.pipeline == nil {
		r.reportInvalidState("start decoding", "no pipeline")
		return
	}
	if s := r.DecoderState(); s != DecoderAbsent {
		r.reportInvalidState("start decoding", s.String())
		return
	}

	pad := videoSink.GetStaticPad("sink")
	if pad == nil {
		r.callbacks.OnError(errors.ErrMissingPad("video sink", "sink"))
		return
	}

	// every rendered buffer feeds the liveness clock
	r.lastFrame.Store(time.Now().UnixNano())
	pad.AddProbe(gst.PadProbeTypeBuffer, func(_ *gst.Pad, _ *gst.PadProbeInfo) gst.PadProbeReturn {
		r.lastFrame.Store(time.Now().UnixNano())
		return gst.PadProbeOK
	})
	pad.Unref()

	r.videoSink = videoSink
	r.decState.Store(int32(DecoderAttaching))

	if !r.streaming.Load() {
		logger.Debugw("decoder attach deferred until upstream data arrives")
		return
	}

	r.addDecoder()
}

func (r *Receiver) addDecoder() {
	decoder, err := r.rt.NewElement("decodebin")
	if err != nil {
		r.abortDecoderAttach(err)
		return
	}

	// the decoder negotiates caps and context against the external sink
	sink := r.videoSink
	decoder.Connect("autoplug-query", func(_ *gst.Element, _ *gst.Pad, _ *gst.Element, query *gst.Query) bool {
		return forwardQueryToSink(sink, query)
	})
	decoder.Connect("pad-added", func(_ *gst.Element, pad *gst.Pad) {
		r.loop.post(func() { r.onNewDecoderPad(pad) })
	})

	if err = r.pipeline.Add(decoder); err != nil {
		decoder.Unref()
		r.rt.Released(1)
		r.abortDecoderAttach(errors.ErrGstPipelineError(err))
		return
	}
	decoder.SyncStateWithParent()

	if err = r.decodeValve.Link(decoder); err != nil {
		_ = r.pipeline.Remove(decoder)
		_ = decoder.SetState(gst.StateNull)
		r.rt.Released(1)
		r.abortDecoderAttach(errors.ErrGstPipelineError(err))
		return
	}

	r.decoder = decoder
}

func (r *Receiver) abortDecoderAttach(err error) {
	logger.Errorw("decoder attach failed", err)
	r.videoSink = nil
	r.decState.Store(int32(DecoderAbsent))
	r.callbacks.OnError(err)
}

func (r *Receiver) onNewDecoderPad(pad *gst.Pad) {
	if r.pipeline == nil || r.DecoderState() != DecoderAttaching {
		return
	}

	caps := pad.GetCurrentCaps()

	if err := r.pipeline.Add(r.videoSink); err != nil {
		r.abortDecoderAttach(errors.ErrGstPipelineError(err))
		return
	}
	r.videoSink.SyncStateWithParent()

	if err := r.decoder.Link(r.videoSink); err != nil {
		_ = r.pipeline.Remove(r.videoSink)
		r.abortDecoderAttach(errors.ErrGstPipelineError(err))
		return
	}

	size := types.VideoSize{}
	if caps != nil && caps.GetSize() > 0 {
		if s := caps.GetStructureAt(0); s != nil {
			if v, err := s.GetValue("width"); err == nil {
				if w, ok := v.(int); ok {
					size.Width = w
				}
			}
			if v, err := s.GetValue("height"); err == nil {
				if h, ok := v.(int); ok {
					size.Height = h
				}
			}
		}
	}
	r.mu.Lock()
	r.videoSize = size
	r.mu.Unlock()
	r.callbacks.OnVideoSizeChanged(size)

	r.lastFrame.Store(time.Now().UnixNano())
	r.decState.Store(int32(DecoderActive))
	r.callbacks.OnDecodingChanged(true)
	r.watch.arm(r.timeout)

	logger.Infow("decoding started", "width", size.Width, "height", size.Height)
}

func (r *Receiver) stopDecodingLocked() {
	switch s := r.DecoderState(); s {
	case DecoderDetaching:
		return
	case DecoderActive:
	default:
		r.reportInvalidState("stop decoding", s.String())
		return
	}

	r.decState.Store(int32(DecoderDetaching))
	r.watch.disarm()
	r.scheduleUnlink(r.decodeValve)
}

func (r *Receiver) shutdownDecodingBranch() {
	if r.decoder != nil {
		_ = r.pipeline.Remove(r.decoder)
		_ = r.decoder.SetState(gst.StateNull)
		r.decoder = nil
		r.rt.Released(1)
	}
	if r.videoSink != nil {
		_ = r.pipeline.Remove(r.videoSink)
		_ = r.videoSink.SetState(gst.StateNull)
		r.videoSink = nil
	}

	r.watch.disarm()
	r.decState.Store(int32(DecoderAbsent))
	r.callbacks.OnDecodingChanged(false)
	logger.Infow("decoding stopped")
}

// ----- recording branch -----

func (r *Receiver) startRecordingLocked(path string, format types.FileFormat) {
	if r.pipeline == nil {
		r.reportInvalidState("start recording", "no pipeline")
		return
	}
	if s := r.RecorderState(); s != RecorderAbsent {
		r.reportInvalidState("start recording", s.String())
		return
	}

	r.mu.Lock()
	r.videoFile = path
	r.mu.Unlock()
	r.callbacks.OnVideoFileChanged(path)

	sink, err := buildRecordSink(r.rt, path, format)
	if err != nil {
		logger.Errorw("recorder build failed", err, "path", path, "format", format.String())
		r.callbacks.OnError(err)
		return
	}

	rebase, err := newRebaser(r.rt)
	if err != nil {
		sink.bin.Unref()
		r.rt.Released(sink.elementCount)
		r.callbacks.OnError(err)
		return
	}

	abort := func(err error) {
		_ = r.pipeline.Remove(rebase.Element)
		_ = r.pipeline.Remove(sink.bin.Element)
		rebase.Close()
		_ = rebase.SetState(gst.StateNull)
		_ = sink.bin.SetState(gst.StateNull)
		r.rt.Released(1 + sink.elementCount)
		logger.Errorw("recorder attach failed", err, "path", path)
		r.callbacks.OnError(err)
	}

	if err = r.pipeline.AddMany(rebase.Element, sink.bin.Element); err != nil {
		rebase.Close()
		rebase.Unref()
		sink.bin.Unref()
		r.rt.Released(1 + sink.elementCount)
		r.callbacks.OnError(errors.ErrGstPipelineError(err))
		return
	}

	if err = r.recordValve.Link(rebase.Element); err != nil {
		abort(errors.ErrGstPipelineError(err))
		return
	}
	if err = rebase.Link(sink.bin.Element); err != nil {
		abort(errors.ErrGstPipelineError(err))
		return
	}

	rebase.SyncStateWithParent()
	sink.bin.SyncStateWithParent()

	// drop everything until the first keyframe, then rebase the branch
	// timeline so that keyframe presents at zero
	pad := r.recordValve.GetStaticPad("src")
	if pad == nil {
		abort(errors.ErrMissingPad("record_valve", "src"))
		return
	}
	pad.AddProbe(gst.PadProbeTypeBuffer, func(p *gst.Pad, info *gst.PadProbeInfo) gst.PadProbeReturn {
		buf := info.GetBuffer()
		if buf == nil {
			return gst.PadProbeOK
		}
		if buf.HasFlags(gst.BufferFlagDeltaUnit) {
			return gst.PadProbeDrop
		}
		if pts := buf.PresentationTimestamp(); pts != gst.ClockTimeNone {
			p.SetOffset(-int64(pts))
		}
		r.loop.post(r.onFirstRecordingKeyframe)
		return gst.PadProbeRemove
	})
	pad.Unref()

	r.rebase = rebase
	r.fileSink = sink
	r.recState.Store(int32(RecorderAwaitingKeyframe))
	r.callbacks.OnRecordingChanged(true)

	logger.Infow("recording started", "path", path, "format", format.String())
}

func (r *Receiver) onFirstRecordingKeyframe() {
	if r.RecorderState() != RecorderAwaitingKeyframe {
		return
	}
	r.monitor.RecordingKeyframe()
	r.callbacks.OnFirstRecordingKeyFrame()
	// a handler may have stopped the recording already
	r.recState.CompareAndSwap(int32(RecorderAwaitingKeyframe), int32(RecorderActive))
	logger.Debugw("got first recording keyframe")
}

func (r *Receiver) stopRecordingLocked() {
	switch s := r.RecorderState(); s {
	case RecorderDetaching:
		return
	case RecorderAwaitingKeyframe, RecorderActive:
	default:
		r.reportInvalidState("stop recording", s.String())
		return
	}

	r.recState.Store(int32(RecorderDetaching))
	r.scheduleUnlink(r.recordValve)
}

func (r *Receiver) shutdownRecordingBranch() {
	if r.rebase != nil {
		r.rebase.Close()
		_ = r.pipeline.Remove(r.rebase.Element)
		_ = r.rebase.SetState(gst.StateNull)
		r.rebase = nil
		r.rt.Released(1)
	}
	if r.fileSink != nil {
		_ = r.pipeline.Remove(r.fileSink.bin.Element)
		_ = r.fileSink.bin.SetState(gst.StateNull)
		r.rt.Released(r.fileSink.elementCount)
		r.fileSink = nil
	}

	r.recState.Store(int32(RecorderAbsent))
	r.callbacks.OnRecordingChanged(false)
	logger.Infow("recording stopped")
}

// ----- branch unlink protocol -----

// scheduleUnlink arms an idle probe on the valve's src pad. The probe
// fires between buffers, unlinks the branch and injects EOS into its
// detached head; the branch terminus then posts a forwarded EOS which
// routes to the matching shutdown.
func (r *Receiver) scheduleUnlink(valve *gst.Element) {
	pad := valve.GetStaticPad("src")
	if pad == nil {
		logger.Errorw("cannot unlink branch", errors.ErrMissingPad(valve.GetName(), "src"))
		return
	}

	pad.AddProbe(gst.PadProbeTypeIdle, func(p *gst.Pad, _ *gst.PadProbeInfo) gst.PadProbeReturn {
		peer := p.GetPeer()
		if peer == nil {
			return gst.PadProbeRemove
		}
		p.Unlink(peer)
		peer.SendEvent(gst.NewEOSEvent())
		peer.Unref()
		logger.Debugw("branch EOS sent", "valve", valve.GetName())
		return gst.PadProbeRemove
	})
	pad.Unref()
}

// ----- bus reactions, restart -----

func (r *Receiver) handleEOS() {
	handled := false
	if r.DecoderState() == DecoderDetaching {
		r.shutdownDecodingBranch()
		handled = true
	}
	if r.RecorderState() == RecorderDetaching {
		r.shutdownRecordingBranch()
		handled = true
	}
	if !handled {
		r.handleError(errors.ErrUnexpectedEOS)
	}
}

func (r *Receiver) handleError(err error) {
	logger.Errorw("pipeline error", err, "uri", r.uri)
	r.monitor.PipelineError()
	r.callbacks.OnError(err)

	if r.SessionState() != SessionStreaming {
		return
	}
	r.stopLocked()
	r.scheduleRestart()
}

func (r *Receiver) frameTimeoutExpired() {
	if r.SessionState() != SessionStreaming || r.DecoderState() != DecoderActive {
		return
	}
	logger.Warnw("no frames before timeout, restarting", errors.ErrPipelineFrozen, "uri", r.uri)
	r.stopLocked()
	r.scheduleRestart()
}

func (r *Receiver) scheduleRestart() {
	if r.restartTimer != nil {
		r.restartTimer.Stop()
	}
	uri := r.uri
	timeout := r.timeout
	r.restartTimer = time.AfterFunc(r.conf.RestartDelay, func() {
		r.monitor.Restart()
		r.loop.post(func() {
			r.restartTimer = nil
			r.callbacks.OnRestartTimeout()
			r.startLocked(uri, timeout)
		})
	})
}

func (r *Receiver) reportInvalidState(op, state string) {
	err := errors.ErrInvalidState(op, state)
	logger.Warnw("operation rejected", err)
	r.callbacks.OnError(err)
}

// forwardQueryToSink lets decodebin negotiate directly against the
// external sink's sink pad.
func forwardQueryToSink(sink *gst.Element, query *gst.Query) bool {
	switch query.Type() {
	case gst.QueryCaps, gst.QueryContext:
		pad := sink.GetStaticPad("sink")
		if pad == nil {
			return false
		}
		ok := pad.Query(query)
		pad.Unref()
		return ok
	default:
		return false
	}
}
