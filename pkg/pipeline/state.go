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

// SessionState is the top-level lifecycle of a receiver session.
type SessionState int32

const (
	SessionIdle SessionState = iota
	SessionStarting
	SessionStreaming
	SessionStopping
	SessionFailed
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionStarting:
		return "starting"
	case SessionStreaming:
		return "streaming"
	case SessionStopping:
		return "stopping"
	case SessionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DecoderState tracks the decode/render branch independently of the
// session.
type DecoderState int32

const (
	DecoderAbsent DecoderState = iota
	DecoderAttaching
	DecoderActive
	DecoderDetaching
)

func (s DecoderState) String() string {
	switch s {
	case DecoderAbsent:
		return "absent"
	case DecoderAttaching:
		return "attaching"
	case DecoderActive:
		return "active"
	case DecoderDetaching:
		return "detaching"
	default:
		return "unknown"
	}
}

// RecorderState tracks the recording branch.
type RecorderState int32

const (
	RecorderAbsent RecorderState = iota
	RecorderAwaitingKeyframe
	RecorderActive
	RecorderDetaching
)

func (s RecorderState) String() string {
	switch s {
	case RecorderAbsent:
		return "absent"
	case RecorderAwaitingKeyframe:
		return "awaiting-keyframe"
	case RecorderActive:
		return "active"
	case RecorderDetaching:
		return "detaching"
	default:
		return "unknown"
	}
}
