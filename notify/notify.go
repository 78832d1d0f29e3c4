// /home/krylon/go/src/github.com/blicero/wattson/notify/notify.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-23 19:55:28 krylon>

// Package notify delivers notifications to the outside world.
//
// The actual delivery is done by a small mail bridge that accepts a
// JSON payload via HTTP POST and turns it into an email. If delivery
// fails, we log the failure and move on - the notification is not
// retried, an email about a power outage that arrives three hours
// late helps nobody.
package notify

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/logdomain"
	"github.com/blicero/wattson/settings"
	"github.com/odeke-em/go-uuid"
)

type payload struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notifier delivers notifications via the mail bridge.
type Notifier struct {
	log    *log.Logger
	cfg    *settings.Settings
	client http.Client
}

// New creates a new Notifier.
func New() (*Notifier, error) {
	var (
		err error
		n   = new(Notifier)
	)

	if n.log, err = common.GetLogger(logdomain.Notify); err != nil {
		return nil, err
	} else if n.cfg, err = settings.Parse(""); err != nil {
		return nil, err
	}

	n.client.Timeout = n.cfg.NotifyTimeout

	return n, nil
} // func New() (*Notifier, error)

// Deliver sends a single notification with the given subject and body.
// The return value tells the caller if delivery succeeded; failure is
// logged but never retried.
func (n *Notifier) Deliver(subject, body string) bool {
	var (
		err error
		buf []byte
		res *http.Response
		msg = payload{
			ID:      uuid.UUID4().String(),
			Subject: subject,
			Body:    body,
		}
	)

	if buf, err = json.Marshal(&msg); err != nil {
		n.log.Printf("[ERROR] Cannot serialize notification %q: %s\n",
			subject,
			err.Error())
		return false
	}

	if res, err = n.client.Post(n.cfg.NotifyURL, "application/json", bytes.NewReader(buf)); err != nil {
		n.log.Printf("[ERROR] Failed to deliver notification %q: %s\n",
			subject,
			err.Error())
		return false
	}

	defer res.Body.Close() // nolint: errcheck

	if res.StatusCode != http.StatusOK {
		n.log.Printf("[ERROR] Mail bridge replied %s to notification %q\n",
			res.Status,
			subject)
		return false
	}

	if common.Debug {
		n.log.Printf("[DEBUG] Delivered notification %q (%s)\n",
			subject,
			msg.ID)
	}

	return true
} // func (n *Notifier) Deliver(subject, body string) bool
