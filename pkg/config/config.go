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
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/groundctl/videoreceiver/pkg/errors"
)

type Config struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// watchdog timeout, overridable per Start call
	FrameTimeout time.Duration `yaml:"frame_timeout"`

	// delay between a failure-driven stop and the automatic restart
	RestartDelay time.Duration `yaml:"restart_delay"`

	// rtspsrc jitterbuffer latency
	RtspLatency time.Duration `yaml:"rtsp_latency"`

	// rtspsrc udp reconnect timeout, microsecond granularity on the wire
	RtspConnectTimeout time.Duration `yaml:"rtsp_connect_timeout"`

	// watchdog tick interval
	WatchdogInterval time.Duration `yaml:"watchdog_interval"`
}

func Default() *Config {
	return &Config{
		LogLevel:           "info",
		FrameTimeout:       5 * time.Second,
		RestartDelay:       1389 * time.Millisecond,
		RtspLatency:        17 * time.Millisecond,
		RtspConnectTimeout: 5 * time.Second,
		WatchdogInterval:   time.Second,
	}
}

func NewConfig(confString string) (*Config, error) {
	conf := Default()
	if confString != "" {
		if err := yaml.Unmarshal([]byte(confString), conf); err != nil {
			return nil, errors.New("could not parse config: " + err.Error())
		}
	}
	return conf, nil
}

func NewConfigFromFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(string(content))
}

// RtspTimeoutMicros is what rtspsrc expects for its timeout property.
func (c *Config) RtspTimeoutMicros() uint64 {
	return uint64(c.RtspConnectTimeout / time.Microsecond)
}
