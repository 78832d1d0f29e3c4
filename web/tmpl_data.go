// /home/krylon/go/src/github.com/blicero/wattson/web/tmpl_data.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-23 18:02:51 krylon>
//
// This file contains data structures to be passed to HTML templates.

package web

import (
	"github.com/blicero/wattson/model"
	"github.com/blicero/wattson/nut"
)

type tmplDataBase struct { // nolint: unused
	Title      string
	Messages   []*message
	Debug      bool
	TestMsgGen bool
	URL        string
}

// loadRow is one line in the load factor list, a time window and the
// average load over it, pretty-printed.
type loadRow struct {
	Label string
	Value string
}

type tmplDataStatus struct { // nolint: unused,deadcode
	tmplDataBase
	Now         int64
	SystemName  string
	Reading     *nut.Reading
	Charge      string
	OnBattery   bool
	Online      bool
	Predicted   string
	DevRuntime  string
	Loads       []loadRow
	UptimeTotal float64
	UptimeWall  float64
	Events      []*model.Event
	Stale       bool
	LastSample  int64
}
