// /home/krylon/go/src/github.com/blicero/wattson/stats/stats.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-24 20:07:43 krylon>

// Package stats implements the read side of the application, deriving
// the numbers the web interface and the notifications display from
// the collected data.
//
// All operations degrade gracefully: if the database holds no data
// (or cannot be queried), they return a safe default instead of an
// error - 0 for load averages, 1.0 for uptime ratios, and the NoData
// sentinel for the battery runtime prediction.
package stats

import (
	"log"
	"math"

	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/database"
	"github.com/blicero/wattson/logdomain"
	"github.com/blicero/wattson/model"
)

// NoData is returned by PredictBatteryRuntime when no prediction can
// be made, either because the UPS is not on battery power or because
// we have not observed a complete charge drop yet.
const NoData int64 = -1

// RuntimeCap is the upper limit for the predicted battery runtime.
// If the extrapolation yields more than 24 hours, something is fishy,
// and we cap the estimate rather than raise false hopes.
const RuntimeCap int64 = 86400

// Stats answers questions about the collected data.
type Stats struct {
	log *log.Logger
	db  *database.Database
}

// New creates a Stats instance on top of the given database connection.
// The connection is borrowed, not owned - closing it afterwards is the
// caller's business.
func New(db *database.Database) (*Stats, error) {
	var (
		err error
		s   = &Stats{db: db}
	)

	if s.log, err = common.GetLogger(logdomain.Stats); err != nil {
		return nil, err
	}

	return s, nil
} // func New(db *database.Database) (*Stats, error)

// AverageLoad returns the average load factor over the given number of
// seconds before now, picking the coarsest storage tier that still
// covers the window: raw samples for up to an hour, minute rollups for
// up to a day, hour rollups beyond that.
func (s *Stats) AverageLoad(now, seconds int64) float64 {
	var (
		err error
		avg float64
	)

	if seconds <= database.RetainRaw {
		avg, err = s.db.LoadAvgRaw(now - seconds)
	} else if seconds <= database.RetainMinute {
		avg, err = s.db.LoadAvgMinute(now - seconds)
	} else {
		avg, err = s.db.LoadAvgHour(now - seconds)
	}

	if err != nil {
		s.log.Printf("[ERROR] Cannot compute average load over %d seconds: %s\n",
			seconds,
			err.Error())
		return 0
	}

	return avg
} // func (s *Stats) AverageLoad(now, seconds int64) float64

// SystemUptime returns the fraction of time the monitored system has
// been online - on either power source - since we started tracking,
// as a number in [0, 1].
// If tracking has not started yet, it optimistically returns 1.
func (s *Stats) SystemUptime(now int64) float64 {
	var (
		err      error
		start    int64
		downtime int64
	)

	if start, err = s.db.MetaGet(database.KeyTrackingStart); err != nil {
		s.log.Printf("[ERROR] Cannot look up %s: %s\n",
			database.KeyTrackingStart,
			err.Error())
		return 1.0
	} else if start == 0 || now <= start {
		return 1.0
	} else if downtime, err = s.db.DowntimeTotal(now); err != nil {
		s.log.Printf("[ERROR] Cannot compute total downtime: %s\n",
			err.Error())
		return 1.0
	}

	var tracked = float64(now - start)
	var ratio = (tracked - float64(downtime)) / tracked

	return math.Max(0.0, math.Min(1.0, ratio))
} // func (s *Stats) SystemUptime(now int64) float64

// WallPowerUptime returns the fraction of time the monitored system
// has been online AND drawing wall power since we started tracking, as
// a number in [0, 1]. Time spent on battery counts against it, so the
// result is never greater than SystemUptime.
// If tracking has not started yet, it optimistically returns 1.
func (s *Stats) WallPowerUptime(now int64) float64 {
	var (
		err     error
		start   int64
		notWall int64
		battery int64
	)

	if start, err = s.db.MetaGet(database.KeyTrackingStart); err != nil {
		s.log.Printf("[ERROR] Cannot look up %s: %s\n",
			database.KeyTrackingStart,
			err.Error())
		return 1.0
	} else if start == 0 || now <= start {
		return 1.0
	} else if notWall, err = s.db.DowntimeTotal(now); err != nil {
		s.log.Printf("[ERROR] Cannot compute total downtime: %s\n",
			err.Error())
		return 1.0
	} else if battery, err = s.db.BatteryTotal(now); err != nil {
		s.log.Printf("[ERROR] Cannot compute total battery time: %s\n",
			err.Error())
		return 1.0
	}

	notWall += battery

	var tracked = float64(now - start)
	var ratio = (tracked - float64(notWall)) / tracked

	return math.Max(0.0, math.Min(1.0, ratio))
} // func (s *Stats) WallPowerUptime(now int64) float64

// PredictBatteryRuntime estimates how many seconds remain until the
// battery charge drops to the given threshold, by extrapolating the
// drain rate observed since the current outage began.
//
// The battery reports its charge in whole percents, so rather than
// fitting a line through a staircase, we look at the first timestamp
// of each distinct charge level and average the time per percent lost.
//
// Returns NoData if the UPS is not on battery or fewer than two charge
// levels have been observed. If the charge is not actually dropping,
// returns RuntimeCap. If the charge is already at or below the
// threshold, returns 0.
func (s *Stats) PredictBatteryRuntime(threshold float64) int64 {
	var (
		err    error
		ev     *model.Event
		points []model.ChargePoint
	)

	if ev, err = s.db.BatteryGetOpen(); err != nil {
		s.log.Printf("[ERROR] Cannot look up open battery event: %s\n",
			err.Error())
		return NoData
	} else if ev == nil {
		// Not on battery power.
		return NoData
	} else if points, err = s.db.SampleGetChargeSince(ev.Start); err != nil {
		s.log.Printf("[ERROR] Cannot load charge readings since %d: %s\n",
			ev.Start,
			err.Error())
		return NoData
	} else if len(points) < 2 {
		return NoData
	}

	var transitions = make([]model.ChargePoint, 0, len(points))

	for _, p := range points {
		if len(transitions) == 0 || p.Charge < transitions[len(transitions)-1].Charge {
			transitions = append(transitions, p)
		}
	}

	if len(transitions) < 2 {
		// No completed percentage drop yet.
		return NoData
	}

	var (
		first = transitions[0]
		last  = transitions[len(transitions)-1]
		drop  = first.Charge - last.Charge
	)

	if drop <= 0 {
		return RuntimeCap
	}

	var perPercent = float64(last.Timestamp-first.Timestamp) / drop
	var remaining = last.Charge - threshold

	if remaining <= 0 {
		return 0
	}

	var estimate = int64(remaining * perPercent)

	if estimate > RuntimeCap {
		return RuntimeCap
	}

	return estimate
} // func (s *Stats) PredictBatteryRuntime(threshold float64) int64
