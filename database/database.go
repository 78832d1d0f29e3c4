// /home/krylon/go/src/github.com/blicero/wattson/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-24 18:46:29 krylon>

// Package database provides the persistence layer of the application.
// All the data we collect about the UPS ends up in a SQLite database,
// and this package provides the operations we perform on it.
//
// The database uses WAL mode, so the collector can write new samples
// while the web frontend reads from the same database without either
// side blocking the other.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/database/query"
	"github.com/blicero/wattson/logdomain"
	"github.com/blicero/wattson/model"
	"github.com/blicero/wattson/model/event"
	_ "github.com/mattn/go-sqlite3" // Import the database driver
)

// Retention windows of the three storage tiers, in seconds.
const (
	RetainRaw    = 3600
	RetainMinute = 86400
	RetainHour   = 86400 * 30
)

// KeyTrackingStart is the metadata key under which we store the
// timestamp of the first-ever run.
const KeyTrackingStart = "tracking_start"

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction failed
// because there is already one in progress.
var ErrTxInProgress = errors.New("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = errors.New("There is no transaction in progress")

// ErrInvalidValue indicates that one or more parameters passed to a method
// had values that are invalid for that operation.
var ErrInvalidValue = errors.New("Invalid value for parameter")

// ErrObjectNotFound indicates that an Object was not found in the database.
var ErrObjectNotFound = errors.New("object was not found in database")

// If a query returns an error and the error text is matched by this regex, we
// consider the error as transient and try again after a short delay.
var retryPat = regexp.MustCompile("(?i)database is (?:locked|busy)")

// worthARetry returns true if an error returned from the database
// is matched by the retryPat regex.
func worthARetry(e error) bool {
	return retryPat.MatchString(e.Error())
} // func worthARetry(e error) bool

// retryDelay is the amount of time we wait before we repeat a database
// operation that failed due to a transient error.
const retryDelay = 25 * time.Millisecond

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// Database is the storage backend.
//
// It is not safe to share a Database instance between goroutines, however
// opening multiple connections to the same Database is safe.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens a Database. If the database specified by the path does not exist,
// yet, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	} else if common.Debug {
		db.log.Printf("[DEBUG] Open database %s\n", path)
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Failed to check if %s already exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Failed to open %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
				return nil, e2
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					db.path,
					e2.Error())
			}
			return nil, err
		}
		db.log.Printf("[INFO] Database at %s has been initialized\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var err error
	var tx *sql.Tx

	if common.Debug {
		db.log.Printf("[DEBUG] Initialize fresh database at %s\n",
			db.path)
	}

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range qinit {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database.
// If there is a pending transaction, it is rolled back.
func (db *Database) Close() error {
	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt  *sql.Stmt
		found bool
		err   error
	)

	if stmt, found = db.queries[id]; found {
		return stmt, nil
	} else if _, found = qdb[id]; !found {
		return nil, fmt.Errorf("Unknown Query %d",
			id)
	}

	db.log.Printf("[TRACE] Prepare query %s\n", id)

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(qdb[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			qdb[id])
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

// PerformMaintenance performs some maintenance operations on the database.
// It cannot be called while a transaction is in progress and will block
// pretty much all access to the database while it is running.
func (db *Database) PerformMaintenance() error {
	var mQueries = []string{
		"PRAGMA wal_checkpoint(TRUNCATE)",
		"VACUUM",
		"REINDEX",
		"ANALYZE",
	}
	var err error

	if db.tx != nil {
		return ErrTxInProgress
	}

	for _, q := range mQueries {
		if _, err = db.db.Exec(q); err != nil {
			db.log.Printf("[ERROR] Failed to execute %s: %s\n",
				q,
				err.Error())
		}
	}

	return nil
} // func (db *Database) PerformMaintenance() error

// Begin begins an explicit database transaction.
// Only one transaction can be in progress at once, attempting to start one,
// while another transaction is already in progress will yield ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	if common.Debug {
		db.log.Printf("[TRACE] Database#%d Begin Transaction\n",
			db.id)
	}

	if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	for db.tx == nil {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			} else {
				db.log.Printf("[ERROR] Failed to start transaction: %s\n",
					err.Error())
				return err
			}
		}
	}

	return nil
} // func (db *Database) Begin() error

// Rollback terminates a pending transaction, undoing any changes to the
// database made during that transaction.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Rollback() error {
	var err error

	if common.Debug {
		db.log.Printf("[TRACE] Database#%d Roll back Transaction\n",
			db.id)
	}

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	// Once Rollback has been called, the transaction is finished no
	// matter what it returned.
	err = db.tx.Rollback()
	db.tx = nil

	if err != nil {
		return fmt.Errorf("Cannot roll back database transaction: %s",
			err.Error())
	}

	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes made during that
// transaction permanent and visible to other connections.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Commit() error {
	var err error

	if common.Debug {
		db.log.Printf("[TRACE] Database#%d Commit Transaction\n",
			db.id)
	}

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	// Once Commit has been called, the transaction is finished no
	// matter what it returned. Holding on to it would only wedge the
	// connection.
	err = db.tx.Commit()
	db.tx = nil

	if err != nil {
		return fmt.Errorf("Cannot commit transaction: %s",
			err.Error())
	}

	return nil
} // func (db *Database) Commit() error

// SampleAdd adds a raw sample to the Database. Writing several samples
// with the same timestamp is allowed, the last write wins.
func (db *Database) SampleAdd(s *model.RawSample) error {
	const qid query.ID = query.SampleAdd
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var charge = sql.NullFloat64{
		Float64: s.Charge,
		Valid:   s.HasCharge,
	}

EXEC_QUERY:
	if _, err = stmt.Exec(s.Timestamp, s.Load, charge); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot add sample for %d to database: %w",
				s.Timestamp,
				err)
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	return nil
} // func (db *Database) SampleAdd(s *model.RawSample) error

// SampleGetChargeSince returns all battery charge readings taken at or
// after the given timestamp, in chronological order.
// Samples without a charge value are skipped.
func (db *Database) SampleGetChargeSince(since int64) ([]model.ChargePoint, error) {
	const qid query.ID = query.SampleGetChargeSince
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(since); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query charge readings: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close()

	var points = make([]model.ChargePoint, 0, 64)

	for rows.Next() {
		var p model.ChargePoint

		if err = rows.Scan(&p.Timestamp, &p.Charge); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		points = append(points, p)
	}

	return points, nil
} // func (db *Database) SampleGetChargeSince(since int64) ([]model.ChargePoint, error)

// DataGetLastStamp returns the most recent timestamp found across the
// raw samples and the minute rollups, or 0 if the database holds no
// data at all yet.
func (db *Database) DataGetLastStamp() (int64, error) {
	const qid query.ID = query.DataGetLastStamp
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query last timestamp: %s\n",
			err.Error())
		return 0, err
	}

	defer rows.Close()

	if rows.Next() {
		var stamp sql.NullInt64

		if err = rows.Scan(&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return 0, err
		} else if stamp.Valid {
			return stamp.Int64, nil
		}
	}

	return 0, nil
} // func (db *Database) DataGetLastStamp() (int64, error)

// RollupMinute aggregates the raw samples of the minute that ended at
// the given boundary into a single minute rollup row, keyed by the
// beginning of that minute.
// If the minute holds no samples, no row is written.
// Re-running the rollup for an unchanged minute produces the same row.
func (db *Database) RollupMinute(boundary int64) error {
	const qid query.ID = query.RollupMinute
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var start = boundary - 60

EXEC_QUERY:
	if _, err = stmt.Exec(start, start, boundary); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot roll up minute [%d, %d): %w",
				start,
				boundary,
				err)
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	return nil
} // func (db *Database) RollupMinute(boundary int64) error

// RollupHour aggregates the minute rollups of the hour that ended at
// the given boundary into a single hour rollup row, keyed by the
// beginning of that hour. The average is weighted by sample count, so
// sparse minutes do not skew the result.
// If the hour holds no minute rollups, no row is written.
func (db *Database) RollupHour(boundary int64) error {
	const qid query.ID = query.RollupHour
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var start = boundary - 3600

EXEC_QUERY:
	if _, err = stmt.Exec(start, start, boundary); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot roll up hour [%d, %d): %w",
				start,
				boundary,
				err)
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	return nil
} // func (db *Database) RollupHour(boundary int64) error

// Prune deletes all rows that have outlived the retention window of
// their respective tier, relative to the given reference timestamp.
func (db *Database) Prune(now int64) error {
	var err error

	if err = db.pruneTier(query.PruneRaw, now-RetainRaw); err != nil {
		return err
	} else if err = db.pruneTier(query.PruneMinute, now-RetainMinute); err != nil {
		return err
	} else if err = db.pruneTier(query.PruneHour, now-RetainHour); err != nil {
		return err
	}

	return nil
} // func (db *Database) Prune(now int64) error

func (db *Database) pruneTier(qid query.ID, cutoff int64) error {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(cutoff); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot prune rows older than %d (%s): %w",
				cutoff,
				qid,
				err)
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	return nil
} // func (db *Database) pruneTier(qid query.ID, cutoff int64) error

// DowntimeOpen opens a new downtime event beginning at the given
// timestamp.
func (db *Database) DowntimeOpen(start int64) (*model.Event, error) {
	const qid query.ID = query.DowntimeOpen
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(start); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot open downtime event at %d: %w",
				start,
				err)
			db.log.Printf("[ERROR] %s\n", err.Error())
			return nil, err
		}
	} else {
		var ev = &model.Event{
			Kind:  event.Downtime,
			Start: start,
		}

		defer rows.Close()

		if !rows.Next() {
			// CANTHAPPEN
			db.log.Printf("[ERROR] Query %s did not return a value\n",
				qid)
			return nil, fmt.Errorf("Query %s did not return a value", qid)
		} else if err = rows.Scan(&ev.ID); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		return ev, nil
	}
} // func (db *Database) DowntimeOpen(start int64) (*model.Event, error)

// DowntimeClose closes the open downtime event - if any - at the given
// timestamp.
func (db *Database) DowntimeClose(end int64) error {
	const qid query.ID = query.DowntimeClose
	var (
		err  error
		stmt *sql.Stmt
		res  sql.Result
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if res, err = stmt.Exec(end); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot close downtime event at %d: %w",
				end,
				err)
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	var cnt int64

	if cnt, err = res.RowsAffected(); err != nil {
		db.log.Printf("[ERROR] Cannot query number of affected rows: %s\n",
			err.Error())
	} else if cnt == 0 && common.Debug {
		db.log.Printf("[DEBUG] No open downtime event to close at %d\n",
			end)
	}

	return nil
} // func (db *Database) DowntimeClose(end int64) error

// DowntimeAddSpan records a downtime event whose beginning and end are
// both already known, e.g. a gap discovered after a restart.
func (db *Database) DowntimeAddSpan(start, end int64) (*model.Event, error) {
	const qid query.ID = query.DowntimeAddSpan
	var (
		err  error
		stmt *sql.Stmt
	)

	if end < start {
		return nil, ErrInvalidValue
	}

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(start, end); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot add downtime event [%d, %d): %w",
				start,
				end,
				err)
			db.log.Printf("[ERROR] %s\n", err.Error())
			return nil, err
		}
	} else {
		var ev = &model.Event{
			Kind:  event.Downtime,
			Start: start,
			End:   end,
		}

		defer rows.Close()

		if !rows.Next() {
			// CANTHAPPEN
			db.log.Printf("[ERROR] Query %s did not return a value\n",
				qid)
			return nil, fmt.Errorf("Query %s did not return a value", qid)
		} else if err = rows.Scan(&ev.ID); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		return ev, nil
	}
} // func (db *Database) DowntimeAddSpan(start, end int64) (*model.Event, error)

// DowntimeGetOpen returns the currently open downtime event, or nil if
// the system is not considered offline at the moment.
func (db *Database) DowntimeGetOpen() (*model.Event, error) {
	const qid query.ID = query.DowntimeGetOpen
	return db.eventGetOpen(qid, event.Downtime)
} // func (db *Database) DowntimeGetOpen() (*model.Event, error)

// DowntimeTotal returns the number of seconds the system has spent
// offline, in total. Open events are counted up to the given reference
// timestamp.
func (db *Database) DowntimeTotal(now int64) (int64, error) {
	const qid query.ID = query.DowntimeTotal
	return db.eventTotal(qid, now)
} // func (db *Database) DowntimeTotal(now int64) (int64, error)

// BatteryOpen opens a new battery event beginning at the given
// timestamp.
func (db *Database) BatteryOpen(start int64) (*model.Event, error) {
	const qid query.ID = query.BatteryOpen
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(start); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot open battery event at %d: %w",
				start,
				err)
			db.log.Printf("[ERROR] %s\n", err.Error())
			return nil, err
		}
	} else {
		var ev = &model.Event{
			Kind:  event.Battery,
			Start: start,
		}

		defer rows.Close()

		if !rows.Next() {
			// CANTHAPPEN
			db.log.Printf("[ERROR] Query %s did not return a value\n",
				qid)
			return nil, fmt.Errorf("Query %s did not return a value", qid)
		} else if err = rows.Scan(&ev.ID); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		return ev, nil
	}
} // func (db *Database) BatteryOpen(start int64) (*model.Event, error)

// BatteryClose closes the open battery event - if any - at the given
// timestamp.
func (db *Database) BatteryClose(end int64) error {
	const qid query.ID = query.BatteryClose
	var (
		err  error
		stmt *sql.Stmt
		res  sql.Result
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if res, err = stmt.Exec(end); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot close battery event at %d: %w",
				end,
				err)
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	var cnt int64

	if cnt, err = res.RowsAffected(); err != nil {
		db.log.Printf("[ERROR] Cannot query number of affected rows: %s\n",
			err.Error())
	} else if cnt == 0 && common.Debug {
		db.log.Printf("[DEBUG] No open battery event to close at %d\n",
			end)
	}

	return nil
} // func (db *Database) BatteryClose(end int64) error

// BatteryGetOpen returns the currently open battery event, or nil if
// the UPS is not considered to be running on battery at the moment.
func (db *Database) BatteryGetOpen() (*model.Event, error) {
	const qid query.ID = query.BatteryGetOpen
	return db.eventGetOpen(qid, event.Battery)
} // func (db *Database) BatteryGetOpen() (*model.Event, error)

// BatteryTotal returns the number of seconds the UPS has spent running
// on battery, in total. Open events are counted up to the given
// reference timestamp.
func (db *Database) BatteryTotal(now int64) (int64, error) {
	const qid query.ID = query.BatteryTotal
	return db.eventTotal(qid, now)
} // func (db *Database) BatteryTotal(now int64) (int64, error)

func (db *Database) eventGetOpen(qid query.ID, kind event.Kind) (*model.Event, error) {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query open %s event: %s\n",
			kind,
			err.Error())
		return nil, err
	}

	defer rows.Close()

	if rows.Next() {
		var ev = &model.Event{Kind: kind}

		if err = rows.Scan(&ev.ID, &ev.Start); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		return ev, nil
	}

	return nil, nil
} // func (db *Database) eventGetOpen(qid query.ID, kind event.Kind) (*model.Event, error)

func (db *Database) eventTotal(qid query.ID, now int64) (int64, error) {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(now); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query event total (%s): %s\n",
			qid,
			err.Error())
		return 0, err
	}

	defer rows.Close()

	if !rows.Next() {
		// CANTHAPPEN
		db.log.Printf("[CANTHAPPEN] Query %s did not return a value\n",
			qid)
		return 0, fmt.Errorf("Query %s did not return a value", qid)
	}

	var total int64

	if err = rows.Scan(&total); err != nil {
		db.log.Printf("[ERROR] Cannot scan row: %s\n",
			err.Error())
		return 0, err
	}

	return total, nil
} // func (db *Database) eventTotal(qid query.ID, now int64) (int64, error)

// EventGetRecent returns the most recent events of both kinds, up to
// the given number, most recent first.
func (db *Database) EventGetRecent(max int64) ([]*model.Event, error) {
	const qid query.ID = query.EventGetRecent
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(max); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query recent events: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close()

	var events = make([]*model.Event, 0, max)

	for rows.Next() {
		var (
			kind uint8
			end  sql.NullInt64
			ev   = new(model.Event)
		)

		if err = rows.Scan(&kind, &ev.ID, &ev.Start, &end); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		ev.Kind = event.Kind(kind)
		if end.Valid {
			ev.End = end.Int64
		}

		events = append(events, ev)
	}

	return events, nil
} // func (db *Database) EventGetRecent(max int64) ([]*model.Event, error)

// LoadAvgRaw returns the average load factor over all raw samples
// taken at or after the given timestamp, or 0 if there are none.
func (db *Database) LoadAvgRaw(cutoff int64) (float64, error) {
	const qid query.ID = query.LoadAvgRaw
	return db.loadAvg(qid, cutoff)
} // func (db *Database) LoadAvgRaw(cutoff int64) (float64, error)

// LoadAvgMinute returns the sample-count-weighted average load factor
// over all minute rollups at or after the given timestamp, or 0 if
// there are none.
func (db *Database) LoadAvgMinute(cutoff int64) (float64, error) {
	const qid query.ID = query.LoadAvgMinute
	return db.loadAvg(qid, cutoff)
} // func (db *Database) LoadAvgMinute(cutoff int64) (float64, error)

// LoadAvgHour returns the sample-count-weighted average load factor
// over all hour rollups at or after the given timestamp, or 0 if there
// are none.
func (db *Database) LoadAvgHour(cutoff int64) (float64, error) {
	const qid query.ID = query.LoadAvgHour
	return db.loadAvg(qid, cutoff)
} // func (db *Database) LoadAvgHour(cutoff int64) (float64, error)

func (db *Database) loadAvg(qid query.ID, cutoff int64) (float64, error) {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(cutoff); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query load average (%s): %s\n",
			qid,
			err.Error())
		return 0, err
	}

	defer rows.Close()

	if !rows.Next() {
		// CANTHAPPEN
		db.log.Printf("[CANTHAPPEN] Query %s did not return a value\n",
			qid)
		return 0, fmt.Errorf("Query %s did not return a value", qid)
	}

	var avg float64

	if err = rows.Scan(&avg); err != nil {
		db.log.Printf("[ERROR] Cannot scan row: %s\n",
			err.Error())
		return 0, err
	}

	return avg, nil
} // func (db *Database) loadAvg(qid query.ID, cutoff int64) (float64, error)

// MetaInit stores the given metadata value if - and only if - no value
// is stored under that key yet.
func (db *Database) MetaInit(key string, value int64) error {
	const qid query.ID = query.MetaInit
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(key, value); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot store metadata %s = %d: %w",
				key,
				value,
				err)
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	return nil
} // func (db *Database) MetaInit(key string, value int64) error

// MetaGet looks up the metadata value stored under the given key.
// If the key does not exist, it returns 0.
func (db *Database) MetaGet(key string) (int64, error) {
	const qid query.ID = query.MetaGet
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Failed to prepare query %s: %s\n",
			qid,
			err.Error())
		panic(err)
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(key); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query metadata %s: %s\n",
			key,
			err.Error())
		return 0, err
	}

	defer rows.Close()

	if rows.Next() {
		var value int64

		if err = rows.Scan(&value); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return 0, err
		}

		return value, nil
	}

	if common.Debug {
		db.log.Printf("[DEBUG] Metadata key %s was not found in database\n",
			key)
	}

	return 0, nil
} // func (db *Database) MetaGet(key string) (int64, error)
