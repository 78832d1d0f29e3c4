// /home/krylon/go/src/github.com/blicero/wattson/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-19 18:22:31 krylon>

// Package query provides symbolic constants to identifiy database queries.
package query

//go:generate stringer -type=ID

// ID represents a database query.
type ID uint8

// All the queries the database layer knows how to perform.
const (
	SampleAdd ID = iota
	SampleGetChargeSince
	DataGetLastStamp
	RollupMinute
	RollupHour
	PruneRaw
	PruneMinute
	PruneHour
	DowntimeOpen
	DowntimeClose
	DowntimeAddSpan
	DowntimeGetOpen
	DowntimeTotal
	BatteryOpen
	BatteryClose
	BatteryGetOpen
	BatteryTotal
	EventGetRecent
	LoadAvgRaw
	LoadAvgMinute
	LoadAvgHour
	MetaInit
	MetaGet
)
