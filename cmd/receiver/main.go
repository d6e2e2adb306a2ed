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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gst/go-gst/gst"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/groundctl/videoreceiver/pkg/config"
	"github.com/groundctl/videoreceiver/pkg/errors"
	"github.com/groundctl/videoreceiver/pkg/logger"
	"github.com/groundctl/videoreceiver/pkg/pipeline"
	"github.com/groundctl/videoreceiver/pkg/stats"
	"github.com/groundctl/videoreceiver/pkg/types"
)

func main() {
	cmd := &cli.Command{
		Name:      "videoreceiver",
		Usage:     "ground station video receiver",
		ArgsUsage: "URI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "receiver yaml config file",
				Sources: cli.EnvVars("VIDEORECEIVER_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "watchdog frame timeout in seconds",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:  "no-decode",
				Usage: "do not attach the decoding branch",
			},
			&cli.IntFlag{
				Name:  "stop-decoding",
				Usage: "detach the decoding branch after SECONDS",
			},
			&cli.StringFlag{
				Name:  "record",
				Usage: "record to FILE",
			},
			&cli.IntFlag{
				Name:  "format",
				Usage: "recording container: 0=matroska, 1=quicktime, 2=mp4",
			},
			&cli.IntFlag{
				Name:  "stop-recording",
				Usage: "detach the recording branch after SECONDS",
				Value: 15,
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(_ context.Context, c *cli.Command) error {
	uri := c.Args().First()
	if uri == "" {
		return errors.ErrUriInvalid
	}

	var conf *config.Config
	var err error
	if path := c.String("config"); path != "" {
		conf, err = config.NewConfigFromFile(path)
		if err != nil {
			return err
		}
	} else {
		conf = config.Default()
	}
	if level := c.String("log-level"); level != "" {
		conf.LogLevel = level
	}
	logger.Init(conf.LogLevel, conf.LogFile)

	monitor := stats.NewMonitor()
	if err = monitor.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	recv := pipeline.New(conf, monitor)
	defer recv.Close()

	recv.Callbacks().SetOnError(func(err error) {
		logger.Errorw("receiver error", err)
	})
	recv.Callbacks().AddOnStreamingChanged(func(streaming bool) {
		logger.Infow("streaming changed", "streaming", streaming)
	})
	recv.Callbacks().AddOnFirstRecordingKeyFrame(func() {
		logger.Infow("recording keyframe aligned")
	})

	timeout := conf.FrameTimeout
	if c.IsSet("timeout") {
		timeout = time.Duration(c.Int("timeout")) * time.Second
	}
	recv.Start(uri, timeout)

	if !c.Bool("no-decode") {
		sink, err := gst.NewElement("autovideosink")
		if err != nil {
			return err
		}
		recv.StartDecoding(sink)
		if after := c.Int("stop-decoding"); after > 0 {
			time.AfterFunc(time.Duration(after)*time.Second, recv.StopDecoding)
		}
	}

	if path := c.String("record"); path != "" {
		format := types.FileFormat(c.Int("format"))
		if !format.Valid() {
			return errors.ErrInvalidFormat(c.Int("format"))
		}
		recv.StartRecording(path, format)
		if after := c.Int("stop-recording"); after > 0 {
			time.AfterFunc(time.Duration(after)*time.Second, recv.StopRecording)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// fail fast if the pipeline never comes up
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for !recv.Streaming() {
		select {
		case <-sigCh:
			recv.Stop()
			return nil
		case <-tick.C:
			if recv.SessionState() == pipeline.SessionFailed {
				return errors.New("failed to start: " + uri)
			}
		}
	}

	<-sigCh
	logger.Infow("shutting down")
	recv.Stop()

	deadline := time.Now().Add(10 * time.Second)
	for recv.SessionState() != pipeline.SessionIdle && time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}
