// /home/krylon/go/src/github.com/blicero/wattson/database/02_sample_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-22 16:10:38 krylon>

package database

import (
	"math"
	"testing"

	"github.com/blicero/wattson/model"
)

// We fill two adjacent minutes with samples, one at load 50, one at
// load 25, so every rollup and average has a value we can predict
// without a calculator.
const (
	tsBase    int64 = 1720000800 // aligned to a full hour
	sampleCnt int64 = 120
	loadLo          = 25.0
	loadHi          = 50.0
	loadMid         = 37.5
	eps             = 0.0001
)

func TestSampleAdd(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err    error
		status = false
	)

	tdb.Begin() // nolint: errcheck
	defer func() {
		if status {
			tdb.Commit() // nolint: errcheck
		} else {
			t.Log("Rolling back database transaction.")
			tdb.Rollback() // nolint: errcheck
		}
	}()

	for i := int64(0); i < sampleCnt; i++ {
		var s = model.RawSample{
			Timestamp: tsBase + i,
			Load:      loadHi,
			Charge:    100,
			HasCharge: i < 60,
		}

		if i >= 60 {
			s.Load = loadLo
		}

		if err = tdb.SampleAdd(&s); err != nil {
			t.Fatalf("Cannot add sample for %d: %s",
				s.Timestamp,
				err.Error())
		}
	}

	status = true
} // func TestSampleAdd(t *testing.T)

func TestLoadAvgRaw(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	type testCase struct {
		cutoff int64
		expect float64
	}

	var cases = []testCase{
		{tsBase - 1, loadMid},
		{tsBase + 59, loadLo},
		{tsBase + 119, 0},
	}

	for _, c := range cases {
		var (
			err error
			avg float64
		)

		if avg, err = tdb.LoadAvgRaw(c.cutoff); err != nil {
			t.Fatalf("Cannot query raw load average after %d: %s",
				c.cutoff,
				err.Error())
		} else if math.Abs(avg-c.expect) > eps {
			t.Errorf("Unexpected raw load average after %d: %f (expected %f)",
				c.cutoff,
				avg,
				c.expect)
		}
	}
} // func TestLoadAvgRaw(t *testing.T)

// Writing a second sample for an existing timestamp must replace the
// first one, not accumulate.
func TestSampleUpsert(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err error
		avg float64
		s   = model.RawSample{
			Timestamp: tsBase + sampleCnt - 1,
			Load:      35,
		}
	)

	if err = tdb.SampleAdd(&s); err != nil {
		t.Fatalf("Cannot overwrite sample for %d: %s",
			s.Timestamp,
			err.Error())
	} else if avg, err = tdb.LoadAvgRaw(tsBase + sampleCnt - 2); err != nil {
		t.Fatalf("Cannot query raw load average: %s",
			err.Error())
	} else if math.Abs(avg-35) > eps {
		t.Errorf("Unexpected load average %f after upsert, expected 35 - was the sample duplicated?",
			avg)
	}

	// Put the original value back, the other tests rely on it.
	s.Load = loadLo

	if err = tdb.SampleAdd(&s); err != nil {
		t.Fatalf("Cannot restore sample for %d: %s",
			s.Timestamp,
			err.Error())
	}
} // func TestSampleUpsert(t *testing.T)

func TestRollupMinute(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err error
		avg float64
	)

	if err = tdb.RollupMinute(tsBase + 60); err != nil {
		t.Fatalf("Cannot roll up first minute: %s",
			err.Error())
	} else if avg, err = tdb.LoadAvgMinute(tsBase - 1); err != nil {
		t.Fatalf("Cannot query minute load average: %s",
			err.Error())
	} else if math.Abs(avg-loadHi) > eps {
		t.Errorf("Unexpected minute load average %f after first rollup (expected %f)",
			avg,
			loadHi)
	}

	if err = tdb.RollupMinute(tsBase + 120); err != nil {
		t.Fatalf("Cannot roll up second minute: %s",
			err.Error())
	} else if avg, err = tdb.LoadAvgMinute(tsBase - 1); err != nil {
		t.Fatalf("Cannot query minute load average: %s",
			err.Error())
	} else if math.Abs(avg-loadMid) > eps {
		t.Errorf("Unexpected minute load average %f after second rollup (expected %f)",
			avg,
			loadMid)
	}

	// Re-running a rollup for an unchanged minute must not change
	// anything.
	if err = tdb.RollupMinute(tsBase + 120); err != nil {
		t.Fatalf("Cannot re-run minute rollup: %s",
			err.Error())
	} else if avg, err = tdb.LoadAvgMinute(tsBase - 1); err != nil {
		t.Fatalf("Cannot query minute load average: %s",
			err.Error())
	} else if math.Abs(avg-loadMid) > eps {
		t.Errorf("Minute rollup is not idempotent: average is %f after re-run (expected %f)",
			avg,
			loadMid)
	}

	// The rows are keyed by the beginning of their window.
	if avg, err = tdb.LoadAvgMinute(tsBase); err != nil {
		t.Fatalf("Cannot query minute load average: %s",
			err.Error())
	} else if math.Abs(avg-loadLo) > eps {
		t.Errorf("Unexpected minute load average %f after cutoff %d (expected %f)",
			avg,
			tsBase,
			loadLo)
	}
} // func TestRollupMinute(t *testing.T)

func TestRollupHour(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err error
		avg float64
	)

	if err = tdb.RollupHour(tsBase + 3600); err != nil {
		t.Fatalf("Cannot roll up hour: %s",
			err.Error())
	} else if avg, err = tdb.LoadAvgHour(tsBase - 1); err != nil {
		t.Fatalf("Cannot query hour load average: %s",
			err.Error())
	} else if math.Abs(avg-loadMid) > eps {
		t.Errorf("Unexpected hour load average %f (expected %f)",
			avg,
			loadMid)
	}

	if err = tdb.RollupHour(tsBase + 3600); err != nil {
		t.Fatalf("Cannot re-run hour rollup: %s",
			err.Error())
	} else if avg, err = tdb.LoadAvgHour(tsBase - 1); err != nil {
		t.Fatalf("Cannot query hour load average: %s",
			err.Error())
	} else if math.Abs(avg-loadMid) > eps {
		t.Errorf("Hour rollup is not idempotent: average is %f after re-run (expected %f)",
			avg,
			loadMid)
	}
} // func TestRollupHour(t *testing.T)

func TestChargeSince(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err    error
		points []model.ChargePoint
	)

	// Only the first minute's samples carry a charge value.
	if points, err = tdb.SampleGetChargeSince(tsBase); err != nil {
		t.Fatalf("Cannot query charge readings: %s",
			err.Error())
	} else if len(points) != 60 {
		t.Fatalf("Unexpected number of charge readings: %d (expected 60)",
			len(points))
	} else if points[0].Timestamp != tsBase {
		t.Errorf("First charge reading has timestamp %d (expected %d)",
			points[0].Timestamp,
			tsBase)
	} else if points[59].Timestamp != tsBase+59 {
		t.Errorf("Last charge reading has timestamp %d (expected %d)",
			points[59].Timestamp,
			tsBase+59)
	}

	for _, p := range points {
		if math.Abs(p.Charge-100) > eps {
			t.Errorf("Unexpected charge %f at %d (expected 100)",
				p.Charge,
				p.Timestamp)
		}
	}

	if points, err = tdb.SampleGetChargeSince(tsBase + 60); err != nil {
		t.Fatalf("Cannot query charge readings: %s",
			err.Error())
	} else if len(points) != 0 {
		t.Errorf("Expected no charge readings after %d, got %d",
			tsBase+60,
			len(points))
	}
} // func TestChargeSince(t *testing.T)

func TestDataGetLastStamp(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err   error
		stamp int64
	)

	if stamp, err = tdb.DataGetLastStamp(); err != nil {
		t.Fatalf("Cannot query most recent timestamp: %s",
			err.Error())
	} else if stamp != tsBase+sampleCnt-1 {
		t.Errorf("Unexpected most recent timestamp %d (expected %d)",
			stamp,
			tsBase+sampleCnt-1)
	}
} // func TestDataGetLastStamp(t *testing.T)

func TestPrune(t *testing.T) {
	if tdb == nil {
		t.SkipNow()
	}

	var (
		err   error
		avg   float64
		stamp int64
		now   = tsBase + sampleCnt + RetainRaw
	)

	if err = tdb.Prune(now); err != nil {
		t.Fatalf("Cannot prune expired data: %s",
			err.Error())
	}

	// All raw samples are expired now, the rollups are not.
	if avg, err = tdb.LoadAvgRaw(tsBase - 1); err != nil {
		t.Fatalf("Cannot query raw load average: %s",
			err.Error())
	} else if avg != 0 {
		t.Errorf("Raw samples were not pruned, load average is %f",
			avg)
	}

	if avg, err = tdb.LoadAvgMinute(tsBase - 1); err != nil {
		t.Fatalf("Cannot query minute load average: %s",
			err.Error())
	} else if math.Abs(avg-loadMid) > eps {
		t.Errorf("Minute rollups should have survived pruning, load average is %f",
			avg)
	}

	// With the raw tier empty, the most recent timestamp comes from
	// the minute rollups.
	if stamp, err = tdb.DataGetLastStamp(); err != nil {
		t.Fatalf("Cannot query most recent timestamp: %s",
			err.Error())
	} else if stamp != tsBase+60 {
		t.Errorf("Unexpected most recent timestamp %d (expected %d)",
			stamp,
			tsBase+60)
	}
} // func TestPrune(t *testing.T)
