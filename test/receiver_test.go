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

//go:build integration

package test

import (
	"testing"
	"time"

	"github.com/go-gst/go-gst/gst"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/groundctl/videoreceiver/pkg/config"
	"github.com/groundctl/videoreceiver/pkg/pipeline"
)

const streamAddr = "127.0.0.1:5600"

func newReceiver(t *testing.T) *pipeline.Receiver {
	t.Helper()
	conf := config.Default()
	recv := pipeline.New(conf, nil)
	t.Cleanup(recv.Close)
	return recv
}

// The empty URI is rejected before any element is created and no
// signal fires.
func TestStartWithEmptyURI(t *testing.T) {
	recv := newReceiver(t)

	signals := atomic.NewInt32(0)
	recv.Callbacks().AddOnStreamingChanged(func(bool) { signals.Inc() })
	recv.Callbacks().SetOnError(func(error) { signals.Inc() })

	recv.Start("", 5*time.Second)
	time.Sleep(300 * time.Millisecond)

	require.Equal(t, pipeline.SessionIdle, recv.SessionState())
	require.EqualValues(t, 0, signals.Load())
	require.EqualValues(t, 0, recv.Runtime().LiveElements())
}

// A looped-back RTP/H.264 stream reaches Streaming with both branches
// absent, and stop is idempotent with no leaked elements.
func TestUDPStreaming(t *testing.T) {
	recv := newReceiver(t)
	recv.Start("udp://"+streamAddr, 5*time.Second)

	sender, err := newRTPSender(streamAddr)
	require.NoError(t, err)
	defer sender.stop()
	sender.stream()

	require.Eventually(t, recv.Streaming, 10*time.Second, 100*time.Millisecond)
	require.Equal(t, pipeline.SessionStreaming, recv.SessionState())
	require.Equal(t, pipeline.DecoderAbsent, recv.DecoderState())
	require.Equal(t, pipeline.RecorderAbsent, recv.RecorderState())

	recv.Stop()
	recv.Stop()
	require.Eventually(t, func() bool {
		return recv.SessionState() == pipeline.SessionIdle
	}, 10*time.Second, 100*time.Millisecond)
	require.False(t, recv.Streaming())
	require.EqualValues(t, 0, recv.Runtime().LiveElements())
}

// Decoder round trip: attach, observe buffers, detach. The sink's
// buffer count stays frozen after detach while the session keeps
// streaming.
func TestDecodeAttachDetach(t *testing.T) {
	recv := newReceiver(t)
	recv.Start("udp://"+streamAddr, 5*time.Second)

	sender, err := newRTPSender(streamAddr)
	require.NoError(t, err)
	defer sender.stop()
	sender.stream()

	sink, err := gst.NewElement("fakesink")
	require.NoError(t, err)
	require.NoError(t, sink.SetProperty("sync", false))

	buffers := atomic.NewInt64(0)
	pad := sink.GetStaticPad("sink")
	require.NotNil(t, pad)
	pad.AddProbe(gst.PadProbeTypeBuffer, func(*gst.Pad, *gst.PadProbeInfo) gst.PadProbeReturn {
		buffers.Inc()
		return gst.PadProbeOK
	})
	pad.Unref()

	recv.StartDecoding(sink)

	require.Eventually(t, recv.Decoding, 15*time.Second, 100*time.Millisecond)
	require.Eventually(t, func() bool {
		return buffers.Load() >= 30
	}, 15*time.Second, 100*time.Millisecond)

	recv.StopDecoding()
	require.Eventually(t, func() bool {
		return recv.DecoderState() == pipeline.DecoderAbsent
	}, 10*time.Second, 100*time.Millisecond)

	frozen := buffers.Load()
	time.Sleep(time.Second)
	require.Equal(t, frozen, buffers.Load())
	require.True(t, recv.Streaming())
	require.Equal(t, pipeline.SessionStreaming, recv.SessionState())

	recv.Stop()
	require.Eventually(t, func() bool {
		return recv.SessionState() == pipeline.SessionIdle
	}, 10*time.Second, 100*time.Millisecond)
	require.EqualValues(t, 0, recv.Runtime().LiveElements())
}

// Recording round trip against the synthetic source: the branch
// reports the keyframe alignment before going active, and detaches
// cleanly.
func TestRecordAttachDetach(t *testing.T) {
	recv := newReceiver(t)
	recv.Start("udp://"+streamAddr, 5*time.Second)

	sender, err := newRTPSender(streamAddr)
	require.NoError(t, err)
	defer sender.stop()
	sender.stream()

	require.Eventually(t, recv.Streaming, 10*time.Second, 100*time.Millisecond)

	path := t.TempDir() + "/out.mkv"
	gotKeyframe := atomic.NewBool(false)
	recv.Callbacks().AddOnFirstRecordingKeyFrame(func() { gotKeyframe.Store(true) })

	recv.StartRecording(path, 0)
	require.Eventually(t, func() bool {
		return recv.RecorderState() == pipeline.RecorderActive
	}, 15*time.Second, 100*time.Millisecond)
	require.True(t, gotKeyframe.Load())
	require.Equal(t, path, recv.VideoFile())

	recv.StopRecording()
	require.Eventually(t, func() bool {
		return recv.RecorderState() == pipeline.RecorderAbsent
	}, 10*time.Second, 100*time.Millisecond)
	require.True(t, recv.Streaming())

	recv.Stop()
	require.Eventually(t, func() bool {
		return recv.SessionState() == pipeline.SessionIdle
	}, 10*time.Second, 100*time.Millisecond)
	require.EqualValues(t, 0, recv.Runtime().LiveElements())
}

// stop before any data arrived shuts the pipeline down synchronously.
func TestStopBeforeStreaming(t *testing.T) {
	recv := newReceiver(t)
	recv.Start("udp://"+streamAddr, 5*time.Second)

	require.Eventually(t, func() bool {
		return recv.SessionState() == pipeline.SessionStreaming
	}, 5*time.Second, 50*time.Millisecond)

	recv.Stop()
	require.Eventually(t, func() bool {
		return recv.SessionState() == pipeline.SessionIdle
	}, 5*time.Second, 50*time.Millisecond)
	require.EqualValues(t, 0, recv.Runtime().LiveElements())
}
