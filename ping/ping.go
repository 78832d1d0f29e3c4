// /home/krylon/go/src/github.com/blicero/wattson/ping/ping.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-22 18:12:36 krylon>

// Package ping provides a simple reachability check, mostly so that I can
// control its log level separately.
// Before we try to shut down the monitored system over SSH, we want to
// know if it is even worth the attempt.
package ping

import (
	"log"

	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/logdomain"
	"github.com/blicero/wattson/settings"
	probing "github.com/prometheus-community/pro-bing"
)

// Pinger wraps the pinging of hosts.
type Pinger struct {
	log *log.Logger
	cfg *settings.Settings
}

// Create creates a new Pinger.
//
// Didn't see that coming, now, did you?
func Create() (*Pinger, error) {
	var (
		err error
		p   = new(Pinger)
	)

	if p.log, err = common.GetLogger(logdomain.Ping); err != nil {
		return nil, err
	} else if p.cfg, err = settings.Parse(""); err != nil {
		return nil, err
	}

	return p, nil
} // func Create() (*Pinger, error)

// PingAddr pings the given host and returns true if it answered at
// least one echo request.
func (p *Pinger) PingAddr(addr string) bool {
	var (
		err   error
		alive bool
		pp    *probing.Pinger
		stats *probing.Statistics
	)

	if pp, err = probing.NewPinger(addr); err != nil {
		p.log.Printf("[ERROR] Failed to create Pinger for %s: %s\n",
			addr,
			err.Error())
		goto END
	}

	pp.Interval = p.cfg.PingInterval
	pp.Timeout = p.cfg.PingTimeout
	pp.Count = int(p.cfg.PingCount)

	if err = pp.Run(); err != nil {
		p.log.Printf("[ERROR] Failed to run Pinger on %s: %s\n",
			addr,
			err.Error())
		goto END
	}

	stats = pp.Statistics()
	p.log.Printf("[TRACE] %s - Packet loss is %f%% (%d/%d)\n",
		addr,
		stats.PacketLoss,
		stats.PacketsRecv,
		stats.PacketsSent)
	if stats.PacketLoss < 100 {
		p.log.Printf("[DEBUG] %s is alive\n",
			addr)
		alive = true
	} else {
		p.log.Printf("[TRACE] %s is offline\n",
			addr)
	}

END:
	return alive
} // func (p *Pinger) PingAddr(addr string) bool
