// /home/krylon/go/src/github.com/blicero/wattson/database/03_event_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-22 17:02:19 krylon>

package database

import (
	"testing"

	"github.com/blicero/wattson/model"
	"github.com/blicero/wattson/model/event"
)

func TestDowntimeOpen(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err  error
		ev   *model.Event
		open *model.Event
	)

	if ev, err = tdb.DowntimeOpen(5000); err != nil {
		t.Fatalf("Cannot open downtime event: %s",
			err.Error())
	} else if ev == nil {
		t.Fatal("DowntimeOpen returned no event")
	} else if ev.ID < 1 {
		t.Errorf("Downtime event has invalid ID %d",
			ev.ID)
	} else if !ev.IsOpen() {
		t.Error("Freshly opened downtime event is not open")
	} else if ev.Kind != event.Downtime {
		t.Errorf("Downtime event has kind %s",
			ev.Kind)
	}

	if open, err = tdb.DowntimeGetOpen(); err != nil {
		t.Fatalf("Cannot look up open downtime event: %s",
			err.Error())
	} else if open == nil {
		t.Fatal("No open downtime event was found")
	} else if open.ID != ev.ID {
		t.Errorf("Open downtime event has ID %d, expected %d",
			open.ID,
			ev.ID)
	}

	// The database must not allow a second open downtime event.
	if _, err = tdb.DowntimeOpen(5100); err == nil {
		t.Error("Opening a second downtime event should have failed")
	}
} // func TestDowntimeOpen(t *testing.T)

func TestDowntimeClose(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err   error
		total int64
		open  *model.Event
	)

	if err = tdb.DowntimeClose(5200); err != nil {
		t.Fatalf("Cannot close downtime event: %s",
			err.Error())
	} else if open, err = tdb.DowntimeGetOpen(); err != nil {
		t.Fatalf("Cannot look up open downtime event: %s",
			err.Error())
	} else if open != nil {
		t.Errorf("Downtime event #%d is still open after DowntimeClose",
			open.ID)
	}

	if total, err = tdb.DowntimeTotal(6000); err != nil {
		t.Fatalf("Cannot query downtime total: %s",
			err.Error())
	} else if total != 200 {
		t.Errorf("Unexpected downtime total %d (expected 200)",
			total)
	}

	// Closing again is harmless.
	if err = tdb.DowntimeClose(5300); err != nil {
		t.Fatalf("Closing with no open downtime event should not fail: %s",
			err.Error())
	}
} // func TestDowntimeClose(t *testing.T)

func TestDowntimeAddSpan(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err   error
		total int64
		ev    *model.Event
	)

	if ev, err = tdb.DowntimeAddSpan(7000, 7400); err != nil {
		t.Fatalf("Cannot add downtime span: %s",
			err.Error())
	} else if ev == nil {
		t.Fatal("DowntimeAddSpan returned no event")
	} else if ev.IsOpen() {
		t.Error("A downtime span must not be open")
	} else if ev.Duration(8000) != 400 {
		t.Errorf("Downtime span has duration %d (expected 400)",
			ev.Duration(8000))
	}

	if total, err = tdb.DowntimeTotal(8000); err != nil {
		t.Fatalf("Cannot query downtime total: %s",
			err.Error())
	} else if total != 600 {
		t.Errorf("Unexpected downtime total %d (expected 600)",
			total)
	}

	if _, err = tdb.DowntimeAddSpan(7800, 7700); err == nil {
		t.Error("Adding a downtime span that ends before it begins should have failed")
	}
} // func TestDowntimeAddSpan(t *testing.T)

func TestBatteryEvents(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err   error
		total int64
		ev    *model.Event
		open  *model.Event
	)

	if ev, err = tdb.BatteryOpen(7100); err != nil {
		t.Fatalf("Cannot open battery event: %s",
			err.Error())
	} else if ev.Kind != event.Battery {
		t.Errorf("Battery event has kind %s",
			ev.Kind)
	} else if open, err = tdb.BatteryGetOpen(); err != nil {
		t.Fatalf("Cannot look up open battery event: %s",
			err.Error())
	} else if open == nil {
		t.Fatal("No open battery event was found")
	} else if open.ID != ev.ID {
		t.Errorf("Open battery event has ID %d, expected %d",
			open.ID,
			ev.ID)
	}

	if _, err = tdb.BatteryOpen(7150); err == nil {
		t.Error("Opening a second battery event should have failed")
	}

	// An open event counts up to the reference timestamp.
	if total, err = tdb.BatteryTotal(7200); err != nil {
		t.Fatalf("Cannot query battery total: %s",
			err.Error())
	} else if total != 100 {
		t.Errorf("Unexpected battery total %d (expected 100)",
			total)
	}

	if err = tdb.BatteryClose(7250); err != nil {
		t.Fatalf("Cannot close battery event: %s",
			err.Error())
	} else if open, err = tdb.BatteryGetOpen(); err != nil {
		t.Fatalf("Cannot look up open battery event: %s",
			err.Error())
	} else if open != nil {
		t.Errorf("Battery event #%d is still open after BatteryClose",
			open.ID)
	}

	if total, err = tdb.BatteryTotal(9000); err != nil {
		t.Fatalf("Cannot query battery total: %s",
			err.Error())
	} else if total != 150 {
		t.Errorf("Unexpected battery total %d (expected 150)",
			total)
	}
} // func TestBatteryEvents(t *testing.T)

func TestEventGetRecent(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err    error
		events []*model.Event
	)

	// By now we have two downtime events ([5000,5200], [7000,7400])
	// and one battery event ([7100,7250]).
	if events, err = tdb.EventGetRecent(10); err != nil {
		t.Fatalf("Cannot query recent events: %s",
			err.Error())
	} else if len(events) != 3 {
		t.Fatalf("Unexpected number of recent events: %d (expected 3)",
			len(events))
	}

	var expect = []struct {
		kind  event.Kind
		start int64
		end   int64
	}{
		{event.Battery, 7100, 7250},
		{event.Downtime, 7000, 7400},
		{event.Downtime, 5000, 5200},
	}

	for i, x := range expect {
		var ev = events[i]

		if ev.Kind != x.kind || ev.Start != x.start || ev.End != x.end {
			t.Errorf("Unexpected event at index %d: %s [%d, %d] (expected %s [%d, %d])",
				i,
				ev.Kind,
				ev.Start,
				ev.End,
				x.kind,
				x.start,
				x.end)
		}
	}

	if events, err = tdb.EventGetRecent(2); err != nil {
		t.Fatalf("Cannot query recent events: %s",
			err.Error())
	} else if len(events) != 2 {
		t.Errorf("Unexpected number of recent events: %d (expected 2)",
			len(events))
	}
} // func TestEventGetRecent(t *testing.T)
