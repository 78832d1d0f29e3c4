// /home/krylon/go/src/github.com/blicero/wattson/collector/effect/effect.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-08 17:26:40 krylon>

// Package effect provides symbolic constants for the side effects the
// power state machine asks the collector to perform.
// The state machine itself only decides WHAT needs to happen; actually
// touching the database, the mail bridge or the monitored system is
// the collector's job. That split keeps the state machine testable
// without a UPS, a mail server, or anything else, really.
package effect

//go:generate stringer -type=ID

// ID identifies a single side effect.
type ID uint8

// DowntimeBegin/End and BatteryBegin/End manipulate the event tables,
// the Notify effects send emails. NotifyLowBattery also triggers the
// remote shutdown.
const (
	DowntimeBegin ID = iota
	DowntimeEnd
	BatteryBegin
	BatteryEnd
	NotifyPowerCut
	NotifyPowerRestored
	NotifyLowBattery
)
