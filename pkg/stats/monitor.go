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

package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Monitor counts receiver events. A nil Monitor is valid and records
// nothing.
type Monitor struct {
	pipelineErrors     prometheus.Counter
	restarts           prometheus.Counter
	recordingKeyframes prometheus.Counter
}

func NewMonitor() *Monitor {
	return &Monitor{
		pipelineErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "groundctl",
			Subsystem: "videoreceiver",
			Name:      "pipeline_errors",
		}),
		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "groundctl",
			Subsystem: "videoreceiver",
			Name:      "restarts",
		}),
		recordingKeyframes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "groundctl",
			Subsystem: "videoreceiver",
			Name:      "recording_keyframes",
		}),
	}
}

func (m *Monitor) Register(r prometheus.Registerer) error {
	if m == nil {
		return nil
	}
	for _, c := range []prometheus.Collector{m.pipelineErrors, m.restarts, m.recordingKeyframes} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Monitor) PipelineError() {
	if m != nil {
		m.pipelineErrors.Inc()
	}
}

func (m *Monitor) Restart() {
	if m != nil {
		m.restarts.Inc()
	}
}

func (m *Monitor) RecordingKeyframe() {
	if m != nil {
		m.recordingKeyframes.Inc()
	}
}
