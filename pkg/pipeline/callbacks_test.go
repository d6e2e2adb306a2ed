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

	"github.com/groundctl/videoreceiver/pkg/errors"
	"github.com/groundctl/videoreceiver/pkg/types"
)

func TestCallbacksFanOut(t *testing.T) {
	c := NewCallbacks()

	var streaming []bool
	c.AddOnStreamingChanged(func(v bool) { streaming = append(streaming, v) })
	c.AddOnStreamingChanged(func(v bool) { streaming = append(streaming, v) })

	c.OnStreamingChanged(true)
	c.OnStreamingChanged(false)
	require.Equal(t, []bool{true, true, false, false}, streaming)

	var size types.VideoSize
	c.AddOnVideoSizeChanged(func(s types.VideoSize) { size = s })
	c.OnVideoSizeChanged(types.VideoSize{Width: 1920, Height: 1080})
	require.Equal(t, types.VideoSize{Width: 1920, Height: 1080}, size)

	keyframes := 0
	c.AddOnFirstRecordingKeyFrame(func() { keyframes++ })
	c.OnFirstRecordingKeyFrame()
	require.Equal(t, 1, keyframes)
}

func TestCallbacksOnError(t *testing.T) {
	c := NewCallbacks()

	// no handler installed, must not panic
	c.OnError(errors.ErrUriInvalid)

	var got error
	c.SetOnError(func(err error) { got = err })
	c.OnError(errors.ErrUriInvalid)
	require.Equal(t, errors.ErrUriInvalid, got)
}
