// /home/krylon/go/src/github.com/blicero/wattson/collector/01_state_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-22 17:52:16 krylon>

package collector

import (
	"slices"
	"testing"

	"github.com/blicero/wattson/collector/effect"
	"github.com/blicero/wattson/nut/status"
)

func TestStateInitial(t *testing.T) {
	var ps = NewPowerState()

	if !ps.SystemOnline || !ps.WallPower {
		t.Errorf("Initial state should be online and on wall power, got online=%t, wall=%t",
			ps.SystemOnline,
			ps.WallPower)
	} else if ps.LowBattSent {
		t.Error("Initial state should not have the low battery notification latched")
	}
} // func TestStateInitial(t *testing.T)

func TestStateTransitions(t *testing.T) {
	var ps = NewPowerState()

	var script = []struct {
		st     status.ID
		expect []effect.ID
	}{
		// Nothing happening.
		{status.Online, []effect.ID{}},
		// The monitored system drops off the network.
		{status.Unknown, []effect.ID{effect.DowntimeBegin}},
		// ...and stays gone. No repeated effects.
		{status.Unknown, []effect.ID{}},
		// It comes back, on wall power.
		{status.Online, []effect.ID{effect.DowntimeEnd, effect.BatteryEnd, effect.NotifyPowerRestored}},
		// Power cut.
		{status.OnBattery, []effect.ID{effect.BatteryBegin, effect.NotifyPowerCut}},
		// Still on battery. No repeated effects.
		{status.OnBattery, []effect.ID{}},
		// Power comes back.
		{status.Online, []effect.ID{effect.BatteryEnd, effect.NotifyPowerRestored}},
		// Offline again...
		{status.Unknown, []effect.ID{effect.DowntimeBegin}},
		// ...and reappearing on battery power: the downtime ends, but
		// we never saw the power cut happen, so there is no battery
		// event to begin.
		{status.OnBattery, []effect.ID{effect.DowntimeEnd}},
		{status.Online, []effect.ID{effect.BatteryEnd, effect.NotifyPowerRestored}},
	}

	for i, step := range script {
		var fx = ps.Step(step.st)

		if !slices.Equal(fx, step.expect) {
			t.Errorf("Step %d (%s): unexpected effects %v (expected %v)",
				i,
				step.st,
				fx,
				step.expect)
		}
	}
} // func TestStateTransitions(t *testing.T)

func TestCheckBattery(t *testing.T) {
	var (
		ps = NewPowerState()
		fx []effect.ID
	)

	// On wall power, the charge level is nobody's business.
	if fx = ps.CheckBattery(5, 20); len(fx) != 0 {
		t.Errorf("CheckBattery on wall power yielded %v",
			fx)
	}

	ps.Step(status.OnBattery)

	if fx = ps.CheckBattery(50, 20); len(fx) != 0 {
		t.Errorf("CheckBattery above the threshold yielded %v",
			fx)
	}

	// The threshold itself already counts as low.
	if fx = ps.CheckBattery(20, 20); !slices.Equal(fx, []effect.ID{effect.NotifyLowBattery}) {
		t.Errorf("CheckBattery at the threshold yielded %v (expected %v)",
			fx,
			effect.NotifyLowBattery)
	}

	// Once per outage is plenty.
	if fx = ps.CheckBattery(15, 20); len(fx) != 0 {
		t.Errorf("CheckBattery should not fire twice per outage, got %v",
			fx)
	}

	// Power returns, the latch is released...
	ps.Step(status.Online)

	if fx = ps.CheckBattery(15, 20); len(fx) != 0 {
		t.Errorf("CheckBattery on restored wall power yielded %v",
			fx)
	}

	// ...so the next outage gets its own notification.
	ps.Step(status.OnBattery)

	if fx = ps.CheckBattery(15, 20); !slices.Equal(fx, []effect.ID{effect.NotifyLowBattery}) {
		t.Errorf("CheckBattery in a fresh outage yielded %v (expected %v)",
			fx,
			effect.NotifyLowBattery)
	}
} // func TestCheckBattery(t *testing.T)
