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
	"github.com/groundctl/videoreceiver/pkg/logger"
)

const binForwardedStructure = "GstBinForwarded"

// onBusMessage translates framework messages into control-loop tasks.
// It runs on the glib main loop thread and never touches receiver
// state directly.
func (r *Receiver) onBusMessage(msg *gst.Message) bool {
	switch msg.Type() {
	case gst.MessageError:
		gErr := msg.ParseError()
		err := errors.ErrGstPipelineError(errors.New(gErr.Error()))
		r.loop.post(func() { r.handleError(err) })

	case gst.MessageEOS:
		r.loop.post(r.handleEOS)

	case gst.MessageStateChanged:
		// state transitions are driven, not observed

	case gst.MessageElement:
		// with message-forward enabled, an EOS that reached a branch
		// terminus inside a bin arrives wrapped in an element message
		s := msg.GetStructure()
		if s == nil || s.Name() != binForwardedStructure {
			break
		}
		v, err := s.GetValue("message")
		if err != nil {
			break
		}
		fwd, ok := v.(*gst.Message)
		if !ok || fwd == nil {
			break
		}
		if fwd.Type() == gst.MessageEOS {
			logger.Debugw("forwarded EOS", "origin", fwd.Source())
			r.loop.post(r.handleEOS)
		}

	default:
		logger.Debugw(msg.String())
	}

	return true
}
