// /home/krylon/go/src/github.com/blicero/wattson/database/qinit.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-20 21:34:02 krylon>

package database

// This files contains the SQL queries to initialize a fresh database.
// Having that defined inside the application is both convenient for reference
// and for testing.
// All statements are idempotent, so running them against an already
// initialized database is harmless.

var qinit = []string{
	`
CREATE TABLE IF NOT EXISTS metrics_raw (
    timestamp	INTEGER PRIMARY KEY,
    load_factor	REAL,
    charge	REAL,
    CHECK (load_factor IS NULL OR load_factor >= 0),
    CHECK (charge IS NULL OR charge >= 0)
) STRICT
`,
	`
CREATE TABLE IF NOT EXISTS metrics_minute (
    minute_ts	INTEGER PRIMARY KEY,
    avg_load	REAL NOT NULL,
    sample_count INTEGER NOT NULL,
    CHECK (avg_load >= 0),
    CHECK (sample_count > 0)
) STRICT
`,
	`
CREATE TABLE IF NOT EXISTS metrics_hour (
    hour_ts	INTEGER PRIMARY KEY,
    avg_load	REAL NOT NULL,
    sample_count INTEGER NOT NULL,
    CHECK (avg_load >= 0),
    CHECK (sample_count > 0)
) STRICT
`,
	`
CREATE TABLE IF NOT EXISTS downtime_event (
    id		INTEGER PRIMARY KEY,
    start_ts	INTEGER NOT NULL,
    end_ts	INTEGER,
    CHECK (end_ts IS NULL OR end_ts >= start_ts)
) STRICT
`,
	"CREATE INDEX IF NOT EXISTS down_start_idx ON downtime_event (start_ts)",
	"CREATE UNIQUE INDEX IF NOT EXISTS down_open_idx ON downtime_event (end_ts IS NULL) WHERE end_ts IS NULL",
	`
CREATE TABLE IF NOT EXISTS battery_event (
    id		INTEGER PRIMARY KEY,
    start_ts	INTEGER NOT NULL,
    end_ts	INTEGER,
    CHECK (end_ts IS NULL OR end_ts >= start_ts)
) STRICT
`,
	"CREATE INDEX IF NOT EXISTS bat_start_idx ON battery_event (start_ts)",
	"CREATE UNIQUE INDEX IF NOT EXISTS bat_open_idx ON battery_event (end_ts IS NULL) WHERE end_ts IS NULL",
	`
CREATE TABLE IF NOT EXISTS metadata (
    key		TEXT PRIMARY KEY,
    value	INTEGER NOT NULL
) STRICT
`,
}
