// /home/krylon/go/src/github.com/blicero/wattson/collector/collector.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-24 22:03:17 krylon>

// Package collector implements the heart of the application: a loop
// that ticks once per second, samples the UPS, keeps the event tables
// honest, rolls raw samples up into minute and hour aggregates, and
// prunes data that has outlived its retention window.
//
// All writes of one tick are committed together. The web frontend
// reads from the same database concurrently; WAL mode keeps the two
// from blocking each other.
package collector

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/blicero/wattson/collector/effect"
	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/database"
	"github.com/blicero/wattson/logdomain"
	"github.com/blicero/wattson/model"
	"github.com/blicero/wattson/notify"
	"github.com/blicero/wattson/nut"
	"github.com/blicero/wattson/nut/status"
	"github.com/blicero/wattson/settings"
	"github.com/blicero/wattson/shutdown"
	"github.com/blicero/wattson/stats"
)

// tickInterval is how often the collection loop runs. The rollup and
// retention arithmetic assumes this is much smaller than a minute, so
// do not get creative here.
const tickInterval = time.Second

// Collector runs the collection loop.
type Collector struct {
	log        *log.Logger
	cfg        *settings.Settings
	db         *database.Database
	nut        *nut.Client
	not        *notify.Notifier
	trig       *shutdown.Trigger
	state      *PowerState
	active     atomic.Bool
	lastMinute int64
	lastHour   int64
	maintDay   int64
}

// Create returns a fresh Collector.
func Create() (*Collector, error) {
	var (
		err error
		c   = &Collector{
			state: NewPowerState(),
		}
	)

	if c.log, err = common.GetLogger(logdomain.Collector); err != nil {
		return nil, err
	} else if c.cfg, err = settings.Parse(""); err != nil {
		return nil, err
	} else if c.db, err = database.Open(common.DbPath); err != nil {
		c.log.Printf("[ERROR] Failed to open database: %s\n",
			err.Error())
		return nil, err
	} else if c.nut, err = nut.NewClient(c.cfg.UPSName, c.cfg.QueryTimeout); err != nil {
		return nil, err
	} else if c.not, err = notify.New(); err != nil {
		return nil, err
	} else if c.trig, err = shutdown.New(); err != nil {
		return nil, err
	}

	return c, nil
} // func Create() (*Collector, error)

// IsActive returns the state of the Collector's active flag.
func (c *Collector) IsActive() bool {
	return c.active.Load()
} // func (c *Collector) IsActive() bool

// Stop clears the Collector's active flag, the main loop will wind
// down at the next tick.
func (c *Collector) Stop() {
	c.active.Store(false)
} // func (c *Collector) Stop()

// Start performs the startup chores - reconciling gaps in the record
// and making sure the tracking start is recorded - then launches the
// main loop.
func (c *Collector) Start() error {
	var (
		err error
		now = time.Now().Unix()
	)

	if err = c.Reconcile(now); err != nil {
		c.log.Printf("[ERROR] Failed to reconcile collection gap: %s\n",
			err.Error())
		return err
	} else if err = c.db.MetaInit(database.KeyTrackingStart, now); err != nil {
		c.log.Printf("[ERROR] Failed to record tracking start: %s\n",
			err.Error())
		return err
	}

	c.lastMinute = now - now%60
	c.lastHour = now - now%3600
	c.maintDay = now / 86400

	c.active.Store(true)
	go c.run()

	c.log.Printf("[INFO] Collector is up, watching %s\n",
		c.cfg.UPSName)

	return nil
} // func (c *Collector) Start() error

// Reconcile checks for a gap between the most recent persisted data
// and now. If the collector was not running for longer than the
// configured threshold, the true state of the system during that time
// is unknowable, so the entire gap is conservatively recorded as
// downtime, and any events left open are closed where the record ends.
func (c *Collector) Reconcile(now int64) error {
	var (
		err  error
		last int64
	)

	if last, err = c.db.DataGetLastStamp(); err != nil {
		return err
	} else if last == 0 {
		// First-ever run, nothing to reconcile.
		return nil
	}

	var gap = now - last

	if gap <= c.cfg.GapThreshold {
		return nil
	}

	c.log.Printf("[INFO] Detected collection gap of %s (since %s)\n",
		model.FmtSeconds(gap),
		time.Unix(last, 0).Format(common.TimestampFormat))

	if err = c.db.Begin(); err != nil {
		return err
	}

	if err = c.db.DowntimeClose(last); err != nil {
		goto ROLLBACK
	} else if err = c.db.BatteryClose(last); err != nil {
		goto ROLLBACK
	} else if _, err = c.db.DowntimeAddSpan(last, now); err != nil {
		goto ROLLBACK
	}

	if err = c.db.Commit(); err != nil {
		return err
	}

	c.log.Printf("[INFO] Recorded gap [%d, %d) as downtime\n",
		last,
		now)

	return nil

ROLLBACK:
	if rbErr := c.db.Rollback(); rbErr != nil {
		c.log.Printf("[CANTHAPPEN] Cannot roll back transaction: %s\n",
			rbErr.Error())
	}

	return err
} // func (c *Collector) Reconcile(now int64) error

func (c *Collector) run() {
	var tick = time.NewTicker(tickInterval)
	defer tick.Stop()

	for c.IsActive() {
		<-tick.C
		c.tick(time.Now().Unix())
	}

	c.log.Println("[INFO] Collector loop says goodbye")
} // func (c *Collector) run()

// tick runs a single iteration of the collection loop. No failure
// inside a tick is fatal - whatever could not be done this second is
// logged, and we try our luck again at the next one.
func (c *Collector) tick(now int64) {
	var (
		err           error
		qerr          error
		load, charge  float64
		haveLoad      bool
		haveCharge    bool
		st            status.ID
		haveStatus    bool
		fx            []effect.ID
		notifications []effect.ID
	)

	if err = c.db.Begin(); err != nil {
		c.log.Printf("[ERROR] Cannot start transaction: %s\n",
			err.Error())
		return
	}

	// Sampler
	if load, qerr = c.nut.QueryNumber(nut.VarLoad); qerr == nil {
		haveLoad = true
	}

	if charge, qerr = c.nut.QueryNumber(nut.VarCharge); qerr == nil {
		haveCharge = true
	}

	if st, qerr = c.nut.Status(); qerr == nil {
		haveStatus = true
	}

	if haveLoad {
		var s = model.RawSample{
			Timestamp: now,
			Load:      load,
			Charge:    charge,
			HasCharge: haveCharge,
		}

		if err = c.db.SampleAdd(&s); err != nil {
			c.log.Printf("[ERROR] Cannot store sample for %d: %s\n",
				now,
				err.Error())
		}
	} else if common.Debug {
		c.log.Printf("[DEBUG] No load reading this tick\n")
	}

	// Event state machine
	if haveStatus {
		fx = c.state.Step(st)
	}

	if haveCharge {
		fx = append(fx, c.state.CheckBattery(charge, c.cfg.BatteryThreshold)...)
	}

	for _, f := range fx {
		switch f {
		case effect.DowntimeBegin:
			c.log.Println("[INFO] System went OFFLINE")
			var open *model.Event
			if open, err = c.db.DowntimeGetOpen(); err != nil {
				c.log.Printf("[ERROR] Cannot check for open downtime event: %s\n",
					err.Error())
			} else if open == nil {
				if _, err = c.db.DowntimeOpen(now); err != nil {
					c.log.Printf("[ERROR] Cannot open downtime event: %s\n",
						err.Error())
				}
			} else if common.Debug {
				c.log.Printf("[DEBUG] Downtime event #%d is already open\n",
					open.ID)
			}
		case effect.DowntimeEnd:
			c.log.Println("[INFO] System back ONLINE")
			if err = c.db.DowntimeClose(now); err != nil {
				c.log.Printf("[ERROR] Cannot close downtime event: %s\n",
					err.Error())
			}
		case effect.BatteryBegin:
			c.log.Println("[INFO] Switched to BATTERY power")
			var open *model.Event
			if open, err = c.db.BatteryGetOpen(); err != nil {
				c.log.Printf("[ERROR] Cannot check for open battery event: %s\n",
					err.Error())
			} else if open == nil {
				if _, err = c.db.BatteryOpen(now); err != nil {
					c.log.Printf("[ERROR] Cannot open battery event: %s\n",
						err.Error())
				}
			} else if common.Debug {
				c.log.Printf("[DEBUG] Battery event #%d is already open\n",
					open.ID)
			}
		case effect.BatteryEnd:
			c.log.Println("[INFO] Back to WALL power")
			if err = c.db.BatteryClose(now); err != nil {
				c.log.Printf("[ERROR] Cannot close battery event: %s\n",
					err.Error())
			}
		case effect.NotifyPowerCut, effect.NotifyPowerRestored, effect.NotifyLowBattery:
			// Side effects that talk to the outside world wait
			// until the tick's writes are committed.
			notifications = append(notifications, f)
		}
	}

	// Rollups. The boundaries only advance once the transaction has
	// been committed - a rollup that failed or never made it to disk
	// gets another chance at the next tick.
	var (
		curMinute = now - now%60
		curHour   = now - now%3600
		advMinute bool
		advHour   bool
	)

	if curMinute > c.lastMinute {
		if err = c.db.RollupMinute(curMinute); err != nil {
			c.log.Printf("[ERROR] Minute rollup at %d failed: %s\n",
				curMinute,
				err.Error())
		} else {
			advMinute = true
		}
	}

	if curHour > c.lastHour {
		if err = c.db.RollupHour(curHour); err != nil {
			c.log.Printf("[ERROR] Hour rollup at %d failed: %s\n",
				curHour,
				err.Error())
		} else {
			advHour = true
		}
	}

	// Retention
	if err = c.db.Prune(now); err != nil {
		c.log.Printf("[ERROR] Cannot prune expired data: %s\n",
			err.Error())
	}

	if err = c.db.Commit(); err != nil {
		c.log.Printf("[ERROR] Cannot commit transaction, losing one tick's worth of data: %s\n",
			err.Error())
		return
	}

	if advMinute {
		c.lastMinute = curMinute
		if common.Debug {
			c.log.Printf("[DEBUG] Minute rollup at %d complete\n",
				curMinute)
		}
	}

	if advHour {
		c.lastHour = curHour
		if common.Debug {
			c.log.Printf("[DEBUG] Hour rollup at %d complete\n",
				curHour)
		}
	}

	for _, f := range notifications {
		switch f {
		case effect.NotifyPowerCut:
			c.notifyPowerCut(now)
		case effect.NotifyPowerRestored:
			c.notifyPowerRestored(now)
		case effect.NotifyLowBattery:
			c.notifyLowBattery(now)
		}
	}

	// Once a day, treat the database to a little spa day.
	if day := now / 86400; day != c.maintDay {
		c.maintDay = day
		if err = c.db.PerformMaintenance(); err != nil {
			c.log.Printf("[ERROR] Database maintenance failed: %s\n",
				err.Error())
		}
	}
} // func (c *Collector) tick(now int64)

// chargeString returns the current battery charge for use in a
// notification, as a string, because the answer may well be that we
// do not know.
func (c *Collector) chargeString() string {
	var (
		err    error
		charge float64
	)

	if charge, err = c.nut.QueryNumber(nut.VarCharge); err != nil {
		return "(unknown)"
	}

	return fmt.Sprintf("%.0f%%", charge)
} // func (c *Collector) chargeString() string

func (c *Collector) notifyPowerCut(now int64) {
	var (
		err error
		st  *stats.Stats
	)

	if st, err = stats.New(c.db); err != nil {
		c.log.Printf("[ERROR] Cannot create Stats: %s\n",
			err.Error())
		return
	}

	var (
		sys  = c.cfg.SystemName
		body = fmt.Sprintf(`The main power supply to %s has been interrupted. This could be caused by inclement weather, an electrical grid failure, or %s being unplugged, as well as a litany of other possible reasons.

If power comes back soon, you will be notified by email.

If it does not, %s will shut down once the UPS battery drops to %.0f percent, and it will have to be powered back on manually afterwards.

Current statistics:
- Wall power is disconnected. The battery backup is in use.
- Battery is at %s charge.
- Average load of %s in the last hour.`,
			sys,
			sys,
			sys,
			c.cfg.BatteryThreshold,
			c.chargeString(),
			model.FmtLoad(st.AverageLoad(now, 3600), c.cfg.NominalPower))
	)

	if c.not.Deliver("Power Supply Interrupted", body) {
		c.log.Println("[INFO] Sent power cut notification")
	} else {
		c.log.Println("[ERROR] Failed to send power cut notification")
	}
} // func (c *Collector) notifyPowerCut(now int64)

func (c *Collector) notifyPowerRestored(now int64) {
	var (
		err error
		st  *stats.Stats
	)

	if st, err = stats.New(c.db); err != nil {
		c.log.Printf("[ERROR] Cannot create Stats: %s\n",
			err.Error())
		return
	}

	var (
		sys  = c.cfg.SystemName
		body = fmt.Sprintf(`The main power supply to %s has been restored. No further action is required at this time.

Current statistics:
- Wall power is connected. The battery backup is no longer in use.
- Battery is at %s charge.
- Average load of %s in the last hour.`,
			sys,
			c.chargeString(),
			model.FmtLoad(st.AverageLoad(now, 3600), c.cfg.NominalPower))
	)

	if c.not.Deliver("Power Supply Restored", body) {
		c.log.Println("[INFO] Sent power restored notification")
	} else {
		c.log.Println("[ERROR] Failed to send power restored notification")
	}
} // func (c *Collector) notifyPowerRestored(now int64)

func (c *Collector) notifyLowBattery(now int64) {
	var (
		err error
		st  *stats.Stats
	)

	if st, err = stats.New(c.db); err != nil {
		c.log.Printf("[ERROR] Cannot create Stats: %s\n",
			err.Error())
		return
	}

	var (
		sys  = c.cfg.SystemName
		body = fmt.Sprintf(`The main power supply to %s has been interrupted, and the UPS battery is now at or below %.0f%%.

%s is being told to power itself off now, so it does not crash hard when the battery runs out.

Please note that once wall power is restored, %s must be powered back on manually.

Current statistics:
- Wall power is disconnected. The battery backup is in use.
- Battery is at %s charge.
- Average load of %s in the last hour.`,
			sys,
			c.cfg.BatteryThreshold,
			sys,
			sys,
			c.chargeString(),
			model.FmtLoad(st.AverageLoad(now, 3600), c.cfg.NominalPower))
	)

	if c.not.Deliver("UPS Battery Low | Shutting Down", body) {
		c.log.Println("[INFO] Sent low battery notification")
	} else {
		c.log.Println("[ERROR] Failed to send low battery notification")
	}

	c.log.Println("[INFO] Initiating remote shutdown")

	if err = c.trig.Invoke(); err != nil {
		c.log.Printf("[ERROR] Remote shutdown failed: %s\n",
			err.Error())

		var escalation = fmt.Sprintf(`For some reason, %s failed to shut itself down (%s).

Please shut it down manually right now, or it will crash abruptly when the UPS battery runs out.`,
			sys,
			err.Error())

		if c.not.Deliver("ACTION NEEDED: UPS Battery Low | Shutdown Failed", escalation) {
			c.log.Println("[INFO] Sent shutdown failure notification")
		} else {
			c.log.Println("[ERROR] Failed to send shutdown failure notification")
		}
	}
} // func (c *Collector) notifyLowBattery(now int64)
