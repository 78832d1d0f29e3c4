// /home/krylon/go/src/github.com/blicero/wattson/collector/state.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-24 17:29:50 krylon>

package collector

import (
	"github.com/blicero/wattson/collector/effect"
	"github.com/blicero/wattson/nut/status"
)

// PowerState tracks the power situation of the monitored system across
// ticks. It lives in memory only - after a restart we start over from
// the optimistic default and leave correcting the record to the gap
// reconciliation.
type PowerState struct {
	SystemOnline bool
	WallPower    bool
	LowBattSent  bool
}

// NewPowerState returns the initial state: until the first real
// reading tells us otherwise, we assume the system is online and on
// wall power.
func NewPowerState() *PowerState {
	return &PowerState{
		SystemOnline: true,
		WallPower:    true,
	}
} // func NewPowerState() *PowerState

// Step feeds one parsed status reading into the state machine.
// It updates the state and returns the effects the caller is expected
// to perform. Step itself performs no I/O whatsoever.
func (ps *PowerState) Step(st status.ID) []effect.ID {
	var (
		fx     = make([]effect.ID, 0, 2)
		online = st.SystemOnline()
		wall   = st.WallPower()
	)

	if ps.SystemOnline && !online {
		fx = append(fx, effect.DowntimeBegin)
	} else if !ps.SystemOnline && online {
		fx = append(fx, effect.DowntimeEnd)
	}

	if ps.WallPower && !wall && online {
		fx = append(fx, effect.BatteryBegin, effect.NotifyPowerCut)
		ps.LowBattSent = false
	} else if !ps.WallPower && wall {
		fx = append(fx, effect.BatteryEnd, effect.NotifyPowerRestored)
		ps.LowBattSent = false
	}

	ps.SystemOnline = online
	ps.WallPower = wall

	return fx
} // func (ps *PowerState) Step(st status.ID) []effect.ID

// CheckBattery evaluates the low battery condition against the given
// charge reading. It returns the NotifyLowBattery effect at most once
// per outage - the flag guarding it is reset whenever wall power goes
// away or comes back.
func (ps *PowerState) CheckBattery(charge, threshold float64) []effect.ID {
	if !ps.WallPower && charge <= threshold && !ps.LowBattSent {
		ps.LowBattSent = true
		return []effect.ID{effect.NotifyLowBattery}
	}

	return nil
} // func (ps *PowerState) CheckBattery(charge, threshold float64) []effect.ID
