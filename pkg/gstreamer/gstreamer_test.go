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

package gstreamer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementAccounting(t *testing.T) {
	r := &Runtime{}
	require.EqualValues(t, 0, r.LiveElements())

	r.created.Add(5)
	require.EqualValues(t, 5, r.LiveElements())

	r.Released(3)
	require.EqualValues(t, 2, r.LiveElements())

	r.Released(2)
	require.EqualValues(t, 0, r.LiveElements())
}
