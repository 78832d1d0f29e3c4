// /home/krylon/go/src/github.com/blicero/wattson/shutdown/shutdown.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-23 20:41:55 krylon>

// Package shutdown implements the emergency brake: when the UPS battery
// is about to run dry, we log into the monitored system via SSH and
// tell it to power itself off before it crashes hard.
package shutdown

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/logdomain"
	"github.com/blicero/wattson/ping"
	"github.com/blicero/wattson/settings"
	"golang.org/x/crypto/ssh"
)

// ErrTimeout indicates the shutdown command was sent, but we did not
// hear back in time.
var ErrTimeout = errors.New("remote shutdown timed out")

// ErrUnreachable indicates the host did not even answer a ping, so we
// did not bother trying to SSH into it.
var ErrUnreachable = errors.New("host did not respond to ping")

// ErrNotConfigured indicates no SSH key has been configured, so remote
// shutdown is not possible.
var ErrNotConfigured = errors.New("no SSH key is configured")

// Trigger shuts down the monitored system on request.
type Trigger struct {
	log *log.Logger
	cfg *settings.Settings
	png *ping.Pinger
}

// New creates a new Trigger.
func New() (*Trigger, error) {
	var (
		err error
		t   = new(Trigger)
	)

	if t.log, err = common.GetLogger(logdomain.Shutdown); err != nil {
		return nil, err
	} else if t.cfg, err = settings.Parse(""); err != nil {
		return nil, err
	} else if t.png, err = ping.Create(); err != nil {
		return nil, err
	}

	return t, nil
} // func New() (*Trigger, error)

// Invoke tells the monitored system to power itself off.
//
// Before opening an SSH connection, the host is pinged once - if it
// does not answer, it is probably down already (or we could not reach
// it anyway), and we return ErrUnreachable without further ado.
// If the shutdown command could not be delivered within the configured
// timeout, Invoke returns ErrTimeout.
// A nil return value means the command was delivered and exited
// without complaint - it does not mean the system is down yet.
func (t *Trigger) Invoke() error {
	var (
		err    error
		raw    []byte
		signer ssh.Signer
	)

	if t.cfg.ShutdownKey == "" {
		t.log.Printf("[WARN] Cannot shut down %s: %s\n",
			t.cfg.ShutdownHost,
			ErrNotConfigured.Error())
		return ErrNotConfigured
	}

	if !t.png.PingAddr(t.cfg.ShutdownHost) {
		t.log.Printf("[WARN] %s does not respond to ping, not attempting shutdown\n",
			t.cfg.ShutdownHost)
		return ErrUnreachable
	}

	if raw, err = os.ReadFile(t.cfg.ShutdownKey); err != nil {
		var ex = fmt.Errorf("Failed to read SSH key from %s: %w",
			t.cfg.ShutdownKey,
			err)
		t.log.Printf("[ERROR] %s\n", ex.Error())
		return ex
	} else if signer, err = ssh.ParsePrivateKey(raw); err != nil {
		var ex = fmt.Errorf("Failed to parse SSH key: %w",
			err)
		t.log.Printf("[ERROR] %s\n", ex.Error())
		return ex
	}

	var sshCfg = &ssh.ClientConfig{
		User: t.cfg.ShutdownUser,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         t.cfg.ShutdownTimeout,
	}

	var (
		addr    = fmt.Sprintf("%s:%d", t.cfg.ShutdownHost, t.cfg.ShutdownPort)
		client  *ssh.Client
		session *ssh.Session
	)

	if client, err = ssh.Dial("tcp", addr, sshCfg); err != nil {
		var ex = fmt.Errorf("Failed to connect to %s: %w",
			addr,
			err)
		t.log.Printf("[ERROR] %s\n", ex.Error())
		return ex
	}

	defer client.Close()

	if session, err = client.NewSession(); err != nil {
		var ex = fmt.Errorf("Failed to create SSH session with %s: %w",
			addr,
			err)
		t.log.Printf("[ERROR] %s\n", ex.Error())
		return ex
	}

	defer session.Close()

	t.log.Printf("[INFO] Telling %s to shut down: %s\n",
		t.cfg.ShutdownHost,
		t.cfg.ShutdownCommand)

	var done = make(chan error, 1)

	go func() {
		var (
			e      error
			output []byte
		)

		if output, e = session.CombinedOutput(t.cfg.ShutdownCommand); e != nil {
			t.log.Printf("[DEBUG] Output of shutdown command:\n%s\n",
				output)
		}

		done <- e
	}()

	select {
	case err = <-done:
		if err != nil {
			t.log.Printf("[ERROR] Shutdown command failed on %s: %s\n",
				t.cfg.ShutdownHost,
				err.Error())
			return err
		}
	case <-time.After(t.cfg.ShutdownTimeout):
		t.log.Printf("[ERROR] Shutdown command on %s timed out after %s\n",
			t.cfg.ShutdownHost,
			t.cfg.ShutdownTimeout)
		return ErrTimeout
	}

	t.log.Printf("[INFO] Shutdown command was delivered to %s\n",
		t.cfg.ShutdownHost)

	return nil
} // func (t *Trigger) Invoke() error
