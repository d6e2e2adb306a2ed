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

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	conf := Default()

	require.Equal(t, 5*time.Second, conf.FrameTimeout)
	require.Equal(t, 1389*time.Millisecond, conf.RestartDelay)
	require.Equal(t, 17*time.Millisecond, conf.RtspLatency)
	require.Equal(t, time.Second, conf.WatchdogInterval)
	require.EqualValues(t, 5_000_000, conf.RtspTimeoutMicros())
}

func TestNewConfig(t *testing.T) {
	conf, err := NewConfig("")
	require.NoError(t, err)
	require.Equal(t, Default(), conf)

	conf, err = NewConfig("log_level: debug\nrestart_delay: 2s\n")
	require.NoError(t, err)
	require.Equal(t, "debug", conf.LogLevel)
	require.Equal(t, 2*time.Second, conf.RestartDelay)
	// untouched keys keep their defaults
	require.Equal(t, 17*time.Millisecond, conf.RtspLatency)

	_, err = NewConfig("{{nope")
	require.Error(t, err)
}
