// /home/krylon/go/src/github.com/blicero/wattson/database/qdb.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-23 22:54:48 krylon>

package database

import (
	"github.com/blicero/wattson/database/query"
)

var qdb = map[query.ID]string{
	query.SampleAdd: `
INSERT OR REPLACE INTO metrics_raw (timestamp, load_factor, charge)
                            VALUES (        ?,           ?,      ?)
`,
	query.SampleGetChargeSince: `
SELECT
    timestamp,
    charge
FROM metrics_raw
WHERE timestamp >= ? AND charge IS NOT NULL
ORDER BY timestamp
`,
	query.DataGetLastStamp: `
SELECT MAX(stamp) FROM (
    SELECT MAX(timestamp) AS stamp FROM metrics_raw
    UNION ALL
    SELECT MAX(minute_ts) AS stamp FROM metrics_minute
)
`,
	query.RollupMinute: `
INSERT OR REPLACE INTO metrics_minute (minute_ts, avg_load, sample_count)
SELECT
    ?,
    AVG(load_factor),
    COUNT(*)
FROM metrics_raw
WHERE timestamp >= ? AND timestamp < ?
HAVING COUNT(*) > 0
`,
	query.RollupHour: `
INSERT OR REPLACE INTO metrics_hour (hour_ts, avg_load, sample_count)
SELECT
    ?,
    SUM(avg_load * sample_count) / SUM(sample_count),
    SUM(sample_count)
FROM metrics_minute
WHERE minute_ts >= ? AND minute_ts < ?
HAVING SUM(sample_count) > 0
`,
	query.PruneRaw:    "DELETE FROM metrics_raw WHERE timestamp < ?",
	query.PruneMinute: "DELETE FROM metrics_minute WHERE minute_ts < ?",
	query.PruneHour:   "DELETE FROM metrics_hour WHERE hour_ts < ?",
	query.DowntimeOpen: `
INSERT INTO downtime_event (start_ts)
                    VALUES (       ?)
RETURNING id
`,
	query.DowntimeClose: "UPDATE downtime_event SET end_ts = ? WHERE end_ts IS NULL",
	query.DowntimeAddSpan: `
INSERT INTO downtime_event (start_ts, end_ts)
                    VALUES (       ?,      ?)
RETURNING id
`,
	query.DowntimeGetOpen: `
SELECT
    id,
    start_ts
FROM downtime_event
WHERE end_ts IS NULL
`,
	query.DowntimeTotal: `
SELECT COALESCE(SUM(COALESCE(end_ts, ?) - start_ts), 0)
FROM downtime_event
`,
	query.BatteryOpen: `
INSERT INTO battery_event (start_ts)
                   VALUES (       ?)
RETURNING id
`,
	query.BatteryClose: "UPDATE battery_event SET end_ts = ? WHERE end_ts IS NULL",
	query.BatteryGetOpen: `
SELECT
    id,
    start_ts
FROM battery_event
WHERE end_ts IS NULL
`,
	query.BatteryTotal: `
SELECT COALESCE(SUM(COALESCE(end_ts, ?) - start_ts), 0)
FROM battery_event
`,
	query.EventGetRecent: `
SELECT
    kind,
    id,
    start_ts,
    end_ts
FROM (
    SELECT 0 AS kind, id, start_ts, end_ts FROM downtime_event
    UNION ALL
    SELECT 1 AS kind, id, start_ts, end_ts FROM battery_event
)
ORDER BY start_ts DESC
LIMIT ?
`,
	query.LoadAvgRaw: `
SELECT COALESCE(AVG(load_factor), 0)
FROM metrics_raw
WHERE timestamp > ?
`,
	query.LoadAvgMinute: `
SELECT COALESCE(SUM(avg_load * sample_count) / SUM(sample_count), 0)
FROM metrics_minute
WHERE minute_ts > ?
`,
	query.LoadAvgHour: `
SELECT COALESCE(SUM(avg_load * sample_count) / SUM(sample_count), 0)
FROM metrics_hour
WHERE hour_ts > ?
`,
	query.MetaInit: "INSERT OR IGNORE INTO metadata (key, value) VALUES (?, ?)",
	query.MetaGet:  "SELECT value FROM metadata WHERE key = ?",
}
