// /home/krylon/go/src/github.com/blicero/wattson/nut/nut.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-23 21:02:17 krylon>

// Package nut talks to the Network UPS Tools daemon, by way of the
// upsc(8) command line client, to query the state of the UPS.
package nut

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/logdomain"
	"github.com/blicero/wattson/nut/status"
)

// upscCmd is the NUT client we delegate the actual talking to.
const upscCmd = "upsc"

// Names of the NUT variables we care about.
const (
	VarStatus  = "ups.status"
	VarLoad    = "ups.load"
	VarCharge  = "battery.charge"
	VarRuntime = "battery.runtime"
)

// Client queries a single UPS via the NUT daemon.
type Client struct {
	ups     string
	timeout time.Duration
	log     *log.Logger
}

// NewClient creates a Client for the given UPS (in NUT notation, i.e.
// "upsname[@hostname[:port]]"). Queries that take longer than timeout
// are aborted.
func NewClient(ups string, timeout time.Duration) (*Client, error) {
	var (
		err error
		c   = &Client{
			ups:     ups,
			timeout: timeout,
		}
	)

	if c.log, err = common.GetLogger(logdomain.Nut); err != nil {
		return nil, err
	}

	return c, nil
} // func NewClient(ups string, timeout time.Duration) (*Client, error)

// Query asks the NUT daemon for a single UPS variable and returns its
// raw string value.
func (c *Client) Query(variable string) (string, error) {
	var (
		err error
		raw []byte
		ctx context.Context
		cnl context.CancelFunc
	)

	ctx, cnl = context.WithTimeout(context.Background(), c.timeout)
	defer cnl()

	var cmd = exec.CommandContext(ctx, upscCmd, c.ups, variable)

	if raw, err = cmd.Output(); err != nil {
		c.log.Printf("[DEBUG] Failed to query %s from %s: %s\n",
			variable,
			c.ups,
			err.Error())
		return "", err
	}

	// upsc occasionally emits warnings before the value proper, so we
	// take the last non-empty line of its output.
	var lines = strings.Split(string(raw), "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		var val = strings.TrimSpace(lines[i])
		if val != "" {
			return val, nil
		}
	}

	return "", fmt.Errorf("upsc returned no value for %s", variable)
} // func (c *Client) Query(variable string) (string, error)

// QueryNumber asks the NUT daemon for a single UPS variable and
// attempts to parse its value as a number.
func (c *Client) QueryNumber(variable string) (float64, error) {
	var (
		err error
		raw string
		val float64
	)

	if raw, err = c.Query(variable); err != nil {
		return 0, err
	} else if val, err = strconv.ParseFloat(raw, 64); err != nil {
		c.log.Printf("[DEBUG] Value %q of %s is not a number: %s\n",
			raw,
			variable,
			err.Error())
		return 0, err
	}

	return val, nil
} // func (c *Client) QueryNumber(variable string) (float64, error)

// Status queries the power state of the UPS.
// If the query fails - most likely because the system the NUT daemon
// runs on is down - the status is Unknown.
func (c *Client) Status() (status.ID, error) {
	var (
		err error
		raw string
	)

	if raw, err = c.Query(VarStatus); err != nil {
		return status.Unknown, err
	}

	return status.Parse(raw), nil
} // func (c *Client) Status() (status.ID, error)

// Reading is a live snapshot of the most interesting UPS variables,
// meant for display in the web interface.
type Reading struct {
	Stamp      time.Time
	Status     status.ID
	Load       float64
	HasLoad    bool
	Charge     float64
	HasCharge  bool
	Runtime    int64
	HasRuntime bool
}

// Read queries the UPS for all the variables that make up a Reading.
// Read does not fail; variables that cannot be queried are left at
// their zero values with the corresponding Has flag unset, and the
// Status is Unknown.
func (c *Client) Read() *Reading {
	var (
		err error
		val float64
		r   = &Reading{Stamp: time.Now()}
	)

	if r.Status, err = c.Status(); err != nil {
		c.log.Printf("[DEBUG] Cannot query status of %s: %s\n",
			c.ups,
			err.Error())
	}

	if val, err = c.QueryNumber(VarLoad); err == nil {
		r.Load = val
		r.HasLoad = true
	}

	if val, err = c.QueryNumber(VarCharge); err == nil {
		r.Charge = val
		r.HasCharge = true
	}

	if val, err = c.QueryNumber(VarRuntime); err == nil {
		r.Runtime = int64(val)
		r.HasRuntime = true
	}

	return r
} // func (c *Client) Read() *Reading
