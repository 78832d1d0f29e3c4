// /home/krylon/go/src/github.com/blicero/wattson/model/event/event.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-02 18:09:54 krylon>

// Package event provides symbolic constants to distinguish the kinds
// of events the collector keeps track of.
package event

//go:generate stringer -type=Kind

// Kind identifies the kind of an Event: a period of downtime, or a
// period of running on battery power.
type Kind uint8

// Downtime means the monitored system was not reachable at all,
// Battery means it was up but running off the UPS battery.
const (
	Downtime Kind = iota
	Battery
)

// AllKinds returns all valid event Kinds.
func AllKinds() []Kind {
	return []Kind{
		Downtime,
		Battery,
	}
} // func AllKinds() []Kind
