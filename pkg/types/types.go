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

import "strings"

// FileFormat selects the container for recorded video files.
type FileFormat int

const (
	FileFormatMatroska FileFormat = iota
	FileFormatQuickTime
	FileFormatMP4
)

var fileFormats = []struct {
	name      string
	mux       string
	extension string
}{
	{"matroska", "matroskamux", ".mkv"},
	{"quicktime", "qtmux", ".mov"},
	{"mp4", "mp4mux", ".mp4"},
}

func (f FileFormat) Valid() bool {
	return f >= FileFormatMatroska && f <= FileFormatMP4
}

func (f FileFormat) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return fileFormats[f].name
}

// MuxFactory returns the muxer element factory for the format.
func (f FileFormat) MuxFactory() string {
	if !f.Valid() {
		return ""
	}
	return fileFormats[f].mux
}

// Extension is a presentation concern only, the container tag is what
// flows across the API.
func (f FileFormat) Extension() string {
	if !f.Valid() {
		return ""
	}
	return fileFormats[f].extension
}

// SourceScheme identifies the ingest path chosen for a URI.
type SourceScheme int

const (
	SchemeUnknown SourceScheme = iota
	SchemeTCPMpegTS
	SchemeUDPMpegTS
	SchemeUDP264
	SchemeUDP265
	SchemeRTSP
	SchemeTaisyncUSB
)

var schemePrefixes = []struct {
	prefix string
	scheme SourceScheme
}{
	{"tcp://", SchemeTCPMpegTS},
	{"mpegts://", SchemeUDPMpegTS},
	{"udp265://", SchemeUDP265},
	{"udp://", SchemeUDP264},
	{"rtsp://", SchemeRTSP},
	{"tsusb://", SchemeTaisyncUSB},
}

// ClassifyURI maps a URI onto its source scheme. Unrecognized or empty
// URIs map to SchemeUnknown.
func ClassifyURI(uri string) SourceScheme {
	for _, s := range schemePrefixes {
		if strings.HasPrefix(uri, s.prefix) {
			return s.scheme
		}
	}
	return SchemeUnknown
}

func (s SourceScheme) String() string {
	switch s {
	case SchemeTCPMpegTS:
		return "tcp-mpegts"
	case SchemeUDPMpegTS:
		return "udp-mpegts"
	case SchemeUDP264:
		return "udp-h264"
	case SchemeUDP265:
		return "udp-h265"
	case SchemeRTSP:
		return "rtsp"
	case SchemeTaisyncUSB:
		return "taisync-usb"
	default:
		return "unknown"
	}
}

// IsMpegTS reports whether the scheme carries raw MPEG-TS and needs an
// explicit demuxer instead of parsebin.
func (s SourceScheme) IsMpegTS() bool {
	return s == SchemeTCPMpegTS || s == SchemeUDPMpegTS
}

// RTPCaps returns the caps filter applied to the ingest element, or ""
// when the scheme does not carry RTP.
func (s SourceScheme) RTPCaps() string {
	switch s {
	case SchemeUDP264:
		return "application/x-rtp, media=(string)video, clock-rate=(int)90000, encoding-name=(string)H264"
	case SchemeUDP265:
		return "application/x-rtp, media=(string)video, clock-rate=(int)90000, encoding-name=(string)H265"
	default:
		return ""
	}
}

// SourceShape is discovered while building the source bin.
type SourceShape struct {
	HasStaticPad bool
	IsRTP        bool
}

// VideoSize is published once the decoder output caps are known.
type VideoSize struct {
	Width  int
	Height int
}
