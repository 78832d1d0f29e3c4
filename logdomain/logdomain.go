// /home/krylon/go/src/github.com/blicero/wattson/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-14 19:02:51 krylon>

// Package logdomain provides symbolic constants to identify the pieces
// of the application that want to do logging.
package logdomain

// ID represents the various pieces of the application that may want to log messages.
type ID uint8

//go:generate stringer -type=ID

const (
	Common ID = iota
	Collector
	Database
	DBPool
	Notify
	Nut
	Ping
	Shutdown
	Stats
	Web
)

// AllDomains returns a slice of all valid values for logdomain.ID
func AllDomains() []ID {
	return []ID{
		Common,
		Collector,
		Database,
		DBPool,
		Notify,
		Nut,
		Ping,
		Shutdown,
		Stats,
		Web,
	}
} // func AllDomains() []ID
