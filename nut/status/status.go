// /home/krylon/go/src/github.com/blicero/wattson/nut/status/status.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-22 17:31:40 krylon>

// Package status deals with the power state of the UPS as reported by
// the NUT daemon.
package status

import "strings"

//go:generate stringer -type=ID

// ID represents the power state of the UPS.
type ID uint8

// Unknown means the status could not be determined (or parsed),
// Online means the UPS is running on wall power, OnBattery means the
// power is out and the UPS is draining its battery.
const (
	Unknown ID = iota
	Online
	OnBattery
)

// Parse extracts the power state from a raw NUT status string.
//
// NUT reports the UPS status as a string of flags, separated by
// blanks, e.g. "OL" or "OB DISCHRG LB". OL means running on line
// (i.e. wall) power, OB means running on battery. If - bizarrely -
// both flags are present, we believe the more alarming one and
// consider the UPS to be on battery.
func Parse(raw string) ID {
	var (
		st     = Unknown
		tokens = strings.Fields(raw)
	)

	for _, t := range tokens {
		switch t {
		case "OB":
			return OnBattery
		case "OL":
			st = Online
		}
	}

	return st
} // func Parse(raw string) ID

// SystemOnline returns true if the status indicates the monitored
// system is up and talking to us, regardless of the power source.
func (id ID) SystemOnline() bool {
	return id != Unknown
} // func (id ID) SystemOnline() bool

// WallPower returns true if the status indicates the UPS is drawing
// power from the grid.
func (id ID) WallPower() bool {
	return id == Online
} // func (id ID) WallPower() bool
