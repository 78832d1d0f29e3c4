// /home/krylon/go/src/github.com/blicero/wattson/collector/02_reconcile_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-22 18:04:09 krylon>

package collector

import (
	"testing"

	"github.com/blicero/wattson/model"
	"github.com/blicero/wattson/model/event"
)

var tcoll *Collector

func TestCollectorCreate(t *testing.T) {
	var err error

	if tcoll, err = Create(); err != nil {
		tcoll = nil
		t.Fatalf("Cannot create Collector: %s",
			err.Error())
	}
} // func TestCollectorCreate(t *testing.T)

// On a pristine database there is nothing to reconcile.
func TestReconcileFresh(t *testing.T) {
	if tcoll == nil {
		t.SkipNow()
	}

	var (
		err    error
		events []*model.Event
	)

	if err = tcoll.Reconcile(1000); err != nil {
		t.Fatalf("Reconcile on an empty database failed: %s",
			err.Error())
	} else if events, err = tcoll.db.EventGetRecent(10); err != nil {
		t.Fatalf("Cannot query recent events: %s",
			err.Error())
	} else if len(events) != 0 {
		t.Errorf("Reconcile on an empty database created %d event(s)",
			len(events))
	}
} // func TestReconcileFresh(t *testing.T)

// A gap no longer than the configured threshold is none of our business.
func TestReconcileNoGap(t *testing.T) {
	if tcoll == nil {
		t.SkipNow()
	}

	var (
		err    error
		events []*model.Event
	)

	if err = tcoll.db.SampleAdd(&model.RawSample{Timestamp: 2000, Load: 40}); err != nil {
		t.Fatalf("Cannot add sample: %s",
			err.Error())
	} else if err = tcoll.Reconcile(2010); err != nil {
		t.Fatalf("Reconcile failed: %s",
			err.Error())
	} else if events, err = tcoll.db.EventGetRecent(10); err != nil {
		t.Fatalf("Cannot query recent events: %s",
			err.Error())
	} else if len(events) != 0 {
		t.Errorf("Reconcile across a harmless gap created %d event(s)",
			len(events))
	}
} // func TestReconcileNoGap(t *testing.T)

// If the collector was gone for longer than the threshold, the gap is
// recorded as downtime, and events left open by the crash are closed
// where the record ends.
func TestReconcileGap(t *testing.T) {
	if tcoll == nil {
		t.SkipNow()
	}

	var (
		err      error
		open     *model.Event
		events   []*model.Event
		downtime int64
		battery  int64
	)

	// Fake the collector having died during an outage.
	if _, err = tcoll.db.DowntimeOpen(2100); err != nil {
		t.Fatalf("Cannot open downtime event: %s",
			err.Error())
	} else if _, err = tcoll.db.BatteryOpen(2150); err != nil {
		t.Fatalf("Cannot open battery event: %s",
			err.Error())
	} else if err = tcoll.db.SampleAdd(&model.RawSample{Timestamp: 2200, Load: 40}); err != nil {
		t.Fatalf("Cannot add sample: %s",
			err.Error())
	}

	if err = tcoll.Reconcile(2400); err != nil {
		t.Fatalf("Reconcile failed: %s",
			err.Error())
	}

	if open, err = tcoll.db.DowntimeGetOpen(); err != nil {
		t.Fatalf("Cannot look up open downtime event: %s",
			err.Error())
	} else if open != nil {
		t.Errorf("Downtime event #%d is still open after reconciliation",
			open.ID)
	}

	if open, err = tcoll.db.BatteryGetOpen(); err != nil {
		t.Fatalf("Cannot look up open battery event: %s",
			err.Error())
	} else if open != nil {
		t.Errorf("Battery event #%d is still open after reconciliation",
			open.ID)
	}

	// [2100, 2200] from the crashed outage plus [2200, 2400) for the gap.
	if downtime, err = tcoll.db.DowntimeTotal(2400); err != nil {
		t.Fatalf("Cannot query downtime total: %s",
			err.Error())
	} else if downtime != 300 {
		t.Errorf("Unexpected downtime total %d (expected 300)",
			downtime)
	}

	if battery, err = tcoll.db.BatteryTotal(2400); err != nil {
		t.Fatalf("Cannot query battery total: %s",
			err.Error())
	} else if battery != 50 {
		t.Errorf("Unexpected battery total %d (expected 50)",
			battery)
	}

	if events, err = tcoll.db.EventGetRecent(10); err != nil {
		t.Fatalf("Cannot query recent events: %s",
			err.Error())
	} else if len(events) != 3 {
		t.Fatalf("Unexpected number of events after reconciliation: %d (expected 3)",
			len(events))
	} else if events[0].Kind != event.Downtime || events[0].Start != 2200 || events[0].End != 2400 {
		t.Errorf("The most recent event should be the gap [2200, 2400], got %s [%d, %d]",
			events[0].Kind,
			events[0].Start,
			events[0].End)
	}
} // func TestReconcileGap(t *testing.T)
