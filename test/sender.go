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

//go:build integration

package test

import (
	"net"
	"time"

	"github.com/pion/rtp"
)

// Minimal H.264 NAL units, sent in RTP single-NAL mode. Enough for
// parsebin to negotiate a parsed stream; the content never has to be
// decodable into meaningful pictures.
var (
	naluSPS = []byte{
		0x67, 0x42, 0xc0, 0x1e, 0xd9, 0x00, 0x44, 0x3e,
		0xc0, 0x44, 0x00, 0x00, 0x03, 0x00, 0x04, 0x00,
		0x00, 0x03, 0x00, 0xf0, 0x3c, 0x58, 0xb9, 0x20,
	}
	naluPPS = []byte{0x68, 0xce, 0x3c, 0x80}
	naluIDR = []byte{
		0x65, 0x88, 0x84, 0x00, 0x10, 0xff, 0xfe, 0xf6,
		0xf0, 0xfe, 0x05, 0x36, 0x56, 0x04, 0x50, 0x96,
	}
	naluP = []byte{
		0x41, 0x9a, 0x24, 0x6c, 0x41, 0x4f, 0xfe, 0xd6,
		0x8c, 0xb0, 0x00, 0x00, 0x03, 0x00, 0x00, 0x03,
	}
)

// rtpSender pushes a synthetic RTP/H.264 stream at a loopback port.
type rtpSender struct {
	conn *net.UDPConn
	seq  uint16
	ts   uint32
	done chan struct{}
}

func newRTPSender(addr string) (*rtpSender, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, err
	}
	return &rtpSender{
		conn: conn,
		done: make(chan struct{}),
	}, nil
}

func (s *rtpSender) sendNALU(payload []byte, marker bool) error {
	pkt := &rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			Marker:         marker,
			PayloadType:    96,
			SequenceNumber: s.seq,
			Timestamp:      s.ts,
			SSRC:           0x22446688,
		},
		Payload: payload,
	}
	s.seq++

	buf, err := pkt.Marshal()
	if err != nil {
		return err
	}
	_, err = s.conn.Write(buf)
	return err
}

// sendFrames emits count frames at roughly 30 fps, re-sending
// parameter sets and a keyframe at the start of every group.
func (s *rtpSender) sendFrames(count int) error {
	for i := 0; i < count; i++ {
		if i%30 == 0 {
			if err := s.sendNALU(naluSPS, false); err != nil {
				return err
			}
			if err := s.sendNALU(naluPPS, false); err != nil {
				return err
			}
			if err := s.sendNALU(naluIDR, true); err != nil {
				return err
			}
		} else {
			if err := s.sendNALU(naluP, true); err != nil {
				return err
			}
		}
		s.ts += 90000 / 30
		time.Sleep(33 * time.Millisecond)
	}
	return nil
}

// stream keeps sending until stop is called.
func (s *rtpSender) stream() {
	go func() {
		for {
			select {
			case <-s.done:
				return
			default:
				_ = s.sendFrames(30)
			}
		}
	}()
}

func (s *rtpSender) stop() {
	close(s.done)
	_ = s.conn.Close()
}
