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
)

func TestStateStrings(t *testing.T) {
	require.Equal(t, "idle", SessionIdle.String())
	require.Equal(t, "starting", SessionStarting.String())
	require.Equal(t, "streaming", SessionStreaming.String())
	require.Equal(t, "stopping", SessionStopping.String())
	require.Equal(t, "failed", SessionFailed.String())

	require.Equal(t, "absent", DecoderAbsent.String())
	require.Equal(t, "attaching", DecoderAttaching.String())
	require.Equal(t, "active", DecoderActive.String())
	require.Equal(t, "detaching", DecoderDetaching.String())

	require.Equal(t, "absent", RecorderAbsent.String())
	require.Equal(t, "awaiting-keyframe", RecorderAwaitingKeyframe.String())
	require.Equal(t, "active", RecorderActive.String())
	require.Equal(t, "detaching", RecorderDetaching.String())

	require.Equal(t, "unknown", SessionState(99).String())
	require.Equal(t, "unknown", DecoderState(99).String())
	require.Equal(t, "unknown", RecorderState(99).String())
}
