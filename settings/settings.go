// /home/krylon/go/src/github.com/blicero/wattson/settings/settings.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-24 19:21:05 krylon>

// Package settings deals with the configuration file. Duh.
package settings

import (
	"fmt"
	"os"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/wattson/common"
	"github.com/pelletier/go-toml"
)

const defaultConfig = `
# Time-stamp: <>
[Global]
Debug = true
SystemName = "the server"

[Web]
Port = 4077

[UPS]
Name = "cyberups@localhost"
QueryTimeout = 5
NominalPower = 600.0

[Battery]
ShutdownThreshold = 20.0

[Collector]
GapThreshold = 30

[Notify]
URL = "http://localhost:8025/send-email"
Timeout = 10

[Ping]
Count = 3
Interval = 1
Timeout = 5

[Shutdown]
Host = "server.local"
Port = 22
User = "admin"
KeyFile = ""
Command = "sudo systemctl poweroff"
Timeout = 30
`

// Settings defines several configurable parameters used throughout the application.
type Settings struct {
	Debug            bool
	SystemName       string
	WebPort          int64
	UPSName          string
	QueryTimeout     time.Duration
	NominalPower     float64
	BatteryThreshold float64
	GapThreshold     int64
	NotifyURL        string
	NotifyTimeout    time.Duration
	PingCount        int64
	PingInterval     time.Duration
	PingTimeout      time.Duration
	ShutdownHost     string
	ShutdownPort     int64
	ShutdownUser     string
	ShutdownKey      string
	ShutdownCommand  string
	ShutdownTimeout  time.Duration
}

// Parse reads the configuration file at the given path.
// If path is an empty string, it uses the global default path.
func Parse(path string) (*Settings, error) {
	if path == "" {
		path = common.CfgPath
	}

	var (
		err  error
		ok   bool
		cfg  *Settings
		tree *toml.Tree
	)

	if ok, err = krylib.Fexists(path); err != nil {
		return nil, err
	} else if !ok {
		if err = createDefaultConfig(path); err != nil {
			return nil, err
		}
	}

	if tree, err = toml.LoadFile(path); err != nil {
		return nil, err
	}

	cfg = new(Settings)

	cfg.Debug = tree.Get("Global.Debug").(bool)
	cfg.SystemName = tree.Get("Global.SystemName").(string)
	cfg.WebPort = tree.Get("Web.Port").(int64)
	cfg.UPSName = tree.Get("UPS.Name").(string)
	cfg.QueryTimeout = time.Duration(tree.Get("UPS.QueryTimeout").(int64)) * time.Second
	cfg.NominalPower = tree.Get("UPS.NominalPower").(float64)
	cfg.BatteryThreshold = tree.Get("Battery.ShutdownThreshold").(float64)
	cfg.GapThreshold = tree.Get("Collector.GapThreshold").(int64)
	cfg.NotifyURL = tree.Get("Notify.URL").(string)
	cfg.NotifyTimeout = time.Duration(tree.Get("Notify.Timeout").(int64)) * time.Second
	cfg.PingCount = tree.Get("Ping.Count").(int64)
	cfg.PingInterval = time.Duration(tree.Get("Ping.Interval").(int64)) * time.Second
	cfg.PingTimeout = time.Duration(tree.Get("Ping.Timeout").(int64)) * time.Second
	cfg.ShutdownHost = tree.Get("Shutdown.Host").(string)
	cfg.ShutdownPort = tree.Get("Shutdown.Port").(int64)
	cfg.ShutdownUser = tree.Get("Shutdown.User").(string)
	cfg.ShutdownKey = tree.Get("Shutdown.KeyFile").(string)
	cfg.ShutdownCommand = tree.Get("Shutdown.Command").(string)
	cfg.ShutdownTimeout = time.Duration(tree.Get("Shutdown.Timeout").(int64)) * time.Second

	return cfg, nil
} // func Parse(path string) (*Settings, error)

func createDefaultConfig(path string) error {
	var (
		err     error
		written int
		fh      *os.File
	)

	if fh, err = os.Create(path); err != nil {
		return err
	}

	defer fh.Close()

	if written, err = fh.WriteString(defaultConfig); err != nil {
		return err
	} else if written != len(defaultConfig) {
		err = fmt.Errorf("Unexpected number of bytes written to config file: %d (expected %d)",
			written,
			len(defaultConfig))
		return err
	}

	return nil
} // func createDefaultConfig(path string) error
