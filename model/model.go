// /home/krylon/go/src/github.com/blicero/wattson/model/model.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-21 19:48:11 krylon>

// Package model provides the data types used throughout the application.
package model

import (
	"fmt"
	"time"

	"github.com/blicero/wattson/model/event"
)

// RawSample is a single measurement of UPS load and battery charge,
// taken (ideally) once per second.
// Charge is only meaningful if HasCharge is true - some UPS models do
// not report the battery charge at all, and even those that do may
// occasionally fail to deliver a value.
type RawSample struct {
	Timestamp int64
	Load      float64
	Charge    float64
	HasCharge bool
}

// When returns the sample's timestamp as a time.Time.
func (s *RawSample) When() time.Time {
	return time.Unix(s.Timestamp, 0)
} // func (s *RawSample) When() time.Time

// Rollup is an aggregate of load samples over one fixed time window,
// one minute or one hour wide, depending on the tier it lives in.
// Bucket is the Unix timestamp of the *beginning* of the window.
type Rollup struct {
	Bucket  int64
	AvgLoad float64
	Count   int64
}

// When returns the beginning of the Rollup's window as a time.Time.
func (r *Rollup) When() time.Time {
	return time.Unix(r.Bucket, 0)
} // func (r *Rollup) When() time.Time

// Event is a period during which something was amiss - the monitored
// system was offline entirely, or it was running on battery power.
// An Event with End == 0 is still ongoing.
type Event struct {
	ID    int64
	Kind  event.Kind
	Start int64
	End   int64
}

// IsOpen returns true if the Event has not ended yet.
func (e *Event) IsOpen() bool {
	return e.End == 0
} // func (e *Event) IsOpen() bool

// Duration returns the Event's duration in seconds. For an open Event,
// the reference timestamp now is used in place of the end.
func (e *Event) Duration(now int64) int64 {
	if e.IsOpen() {
		return now - e.Start
	}

	return e.End - e.Start
} // func (e *Event) Duration(now int64) int64

// StartTime returns the beginning of the Event as a time.Time.
func (e *Event) StartTime() time.Time {
	return time.Unix(e.Start, 0)
} // func (e *Event) StartTime() time.Time

// EndTime returns the end of the Event as a time.Time. For an open
// Event, the result is meaningless.
func (e *Event) EndTime() time.Time {
	return time.Unix(e.End, 0)
} // func (e *Event) EndTime() time.Time

// ChargePoint is a battery charge reading at one point in time, used
// for estimating the remaining battery runtime.
type ChargePoint struct {
	Timestamp int64
	Charge    float64
}

// FmtSeconds renders a duration given in seconds in a human-friendly
// manner. Negative values are taken to mean the quantity could not be
// determined.
func FmtSeconds(sec int64) string {
	if sec < 0 {
		return "(not enough data)"
	} else if sec >= 3600 {
		return fmt.Sprintf("%dh%02dm%02ds",
			sec/3600,
			(sec%3600)/60,
			sec%60)
	} else if sec >= 60 {
		return fmt.Sprintf("%dm%02ds",
			sec/60,
			sec%60)
	}

	return fmt.Sprintf("%ds", sec)
} // func FmtSeconds(sec int64) string

// FmtLoad renders a UPS load factor (in percent) along with the
// approximate power draw it amounts to, given the nominal power
// rating of the UPS (in Watts).
func FmtLoad(load, nominal float64) string {
	return fmt.Sprintf("%.2f%% (%.2fW)",
		load,
		load*nominal/100)
} // func FmtLoad(load, nominal float64) string
