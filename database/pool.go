// /home/krylon/go/src/github.com/blicero/wattson/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-19 20:14:33 krylon>

package database

import (
	"log"
	"sync"

	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/logdomain"
)

// Pool is a naive pool of database connections, so the web frontend
// can serve several requests concurrently without the handlers
// stepping on each other's toes.
type Pool struct {
	lock sync.Mutex
	cond *sync.Cond
	log  *log.Logger
	pool []*Database
}

// NewPool opens the given number of database connections and returns
// the freshly filled Pool.
func NewPool(cnt int) (*Pool, error) {
	var (
		err  error
		pool = &Pool{
			pool: make([]*Database, 0, cnt),
		}
	)

	pool.cond = sync.NewCond(&pool.lock)

	if pool.log, err = common.GetLogger(logdomain.DBPool); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(common.DbPath); err != nil {
			pool.log.Printf("[ERROR] Cannot open database connection #%d: %s\n",
				i+1,
				err.Error())
			return nil, err
		}

		pool.pool = append(pool.pool, db)
	}

	return pool, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a connection from the Pool.
// If the Pool is empty, Get blocks until a connection is returned.
func (pool *Pool) Get() *Database {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	for len(pool.pool) == 0 {
		pool.cond.Wait()
	}

	var db = pool.pool[len(pool.pool)-1]
	pool.pool = pool.pool[:len(pool.pool)-1]

	return db
} // func (pool *Pool) Get() *Database

// GetNoWait returns a connection from the Pool.
// If the Pool is empty, a fresh connection is opened instead of
// waiting for one to be returned.
func (pool *Pool) GetNoWait() (*Database, error) {
	pool.lock.Lock()

	if len(pool.pool) > 0 {
		var db = pool.pool[len(pool.pool)-1]
		pool.pool = pool.pool[:len(pool.pool)-1]
		pool.lock.Unlock()
		return db, nil
	}

	pool.lock.Unlock()

	if common.Debug {
		pool.log.Printf("[DEBUG] Pool is empty, opening a fresh connection to %s\n",
			common.DbPath)
	}

	return Open(common.DbPath)
} // func (pool *Pool) GetNoWait() (*Database, error)

// Put returns a connection to the Pool.
func (pool *Pool) Put(db *Database) {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	pool.pool = append(pool.pool, db)
	pool.cond.Signal()
} // func (pool *Pool) Put(db *Database)

// Close closes all connections currently in the Pool.
// Connections that are checked out at the time are the borrower's
// problem.
func (pool *Pool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	var err error

	for _, db := range pool.pool {
		if err = db.Close(); err != nil {
			pool.log.Printf("[ERROR] Cannot close database connection: %s\n",
				err.Error())
			return err
		}
	}

	pool.pool = pool.pool[:0]
	return nil
} // func (pool *Pool) Close() error
