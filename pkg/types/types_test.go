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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyURI(t *testing.T) {
	for _, tc := range []struct {
		uri    string
		scheme SourceScheme
	}{
		{"tcp://127.0.0.1:5000", SchemeTCPMpegTS},
		{"mpegts://127.0.0.1:5600", SchemeUDPMpegTS},
		{"udp://127.0.0.1:5600", SchemeUDP264},
		{"udp265://127.0.0.1:5600", SchemeUDP265},
		{"rtsp://127.0.0.1:8554/test", SchemeRTSP},
		{"tsusb://0.0.0.0:5000", SchemeTaisyncUSB},
		{"", SchemeUnknown},
		{"http://example.com", SchemeUnknown},
		{"udp265", SchemeUnknown},
	} {
		require.Equal(t, tc.scheme, ClassifyURI(tc.uri), tc.uri)
	}
}

func TestSchemeProperties(t *testing.T) {
	require.True(t, SchemeTCPMpegTS.IsMpegTS())
	require.True(t, SchemeUDPMpegTS.IsMpegTS())
	require.False(t, SchemeUDP264.IsMpegTS())
	require.False(t, SchemeRTSP.IsMpegTS())

	require.Contains(t, SchemeUDP264.RTPCaps(), "H264")
	require.Contains(t, SchemeUDP265.RTPCaps(), "H265")
	require.Empty(t, SchemeRTSP.RTPCaps())
	require.Empty(t, SchemeTCPMpegTS.RTPCaps())
	require.Empty(t, SchemeTaisyncUSB.RTPCaps())
}

func TestFileFormat(t *testing.T) {
	for _, tc := range []struct {
		format    FileFormat
		mux       string
		extension string
	}{
		{FileFormatMatroska, "matroskamux", ".mkv"},
		{FileFormatQuickTime, "qtmux", ".mov"},
		{FileFormatMP4, "mp4mux", ".mp4"},
	} {
		require.True(t, tc.format.Valid())
		require.Equal(t, tc.mux, tc.format.MuxFactory())
		require.Equal(t, tc.extension, tc.format.Extension())
	}

	for _, f := range []FileFormat{-1, 3, 100} {
		require.False(t, f.Valid())
		require.Empty(t, f.MuxFactory())
		require.Empty(t, f.Extension())
		require.Equal(t, "unknown", f.String())
	}
}
