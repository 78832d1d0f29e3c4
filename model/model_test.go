// /home/krylon/go/src/github.com/blicero/wattson/model/model_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-21 20:15:46 krylon>

package model

import (
	"testing"

	"github.com/blicero/wattson/model/event"
)

func TestFmtSeconds(t *testing.T) {
	type testCase struct {
		sec    int64
		expect string
	}

	var cases = []testCase{
		{-1, "(not enough data)"},
		{0, "0s"},
		{59, "59s"},
		{60, "1m00s"},
		{61, "1m01s"},
		{3510, "58m30s"},
		{3599, "59m59s"},
		{3600, "1h00m00s"},
		{5025, "1h23m45s"},
		{86400, "24h00m00s"},
	}

	for _, c := range cases {
		if res := FmtSeconds(c.sec); res != c.expect {
			t.Errorf("FmtSeconds(%d) returned %q, expected %q",
				c.sec,
				res,
				c.expect)
		}
	}
} // func TestFmtSeconds(t *testing.T)

func TestFmtLoad(t *testing.T) {
	type testCase struct {
		load    float64
		nominal float64
		expect  string
	}

	var cases = []testCase{
		{0, 600, "0.00% (0.00W)"},
		{10, 600, "10.00% (60.00W)"},
		{12.5, 600, "12.50% (75.00W)"},
		{100, 600, "100.00% (600.00W)"},
		{50, 1000, "50.00% (500.00W)"},
	}

	for _, c := range cases {
		if res := FmtLoad(c.load, c.nominal); res != c.expect {
			t.Errorf("FmtLoad(%.2f, %.2f) returned %q, expected %q",
				c.load,
				c.nominal,
				res,
				c.expect)
		}
	}
} // func TestFmtLoad(t *testing.T)

func TestEventDuration(t *testing.T) {
	type testCase struct {
		ev     Event
		now    int64
		expect int64
	}

	var cases = []testCase{
		{Event{ID: 1, Kind: event.Downtime, Start: 1000, End: 1100}, 2000, 100},
		{Event{ID: 2, Kind: event.Downtime, Start: 1000}, 1250, 250},
		{Event{ID: 3, Kind: event.Battery, Start: 500, End: 500}, 2000, 0},
	}

	for _, c := range cases {
		if d := c.ev.Duration(c.now); d != c.expect {
			t.Errorf("Duration of Event #%d is %d, expected %d",
				c.ev.ID,
				d,
				c.expect)
		}

		if c.ev.IsOpen() != (c.ev.End == 0) {
			t.Errorf("IsOpen of Event #%d should be %t",
				c.ev.ID,
				c.ev.End == 0)
		}
	}
} // func TestEventDuration(t *testing.T)
