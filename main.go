// /home/krylon/go/src/github.com/blicero/wattson/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-24 23:42:19 krylon>

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blicero/wattson/collector"
	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/web"
)

func main() {
	fmt.Printf("%s %s - %s\n",
		common.AppName,
		common.Version,
		common.BuildStamp.Format(common.TimestampFormat))

	var (
		err     error
		addr    string
		mode    string
		basedir string
		srv     *web.Server
		coll    *collector.Collector
	)

	flag.StringVar(&addr, "addr", "", "Address of the web interface")
	flag.StringVar(
		&mode,
		"mode",
		"run",
		"What mode to run in (run, collect, web)")
	flag.StringVar(
		&basedir,
		"basedir",
		common.BaseDir,
		"Directory to store the database, log, and configuration in")

	flag.Parse()

	if basedir != common.BaseDir {
		if err = common.SetBaseDir(basedir); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Error setting base directory to %s: %s\n",
				basedir,
				err.Error())
			os.Exit(1)
		}
	} else if err = common.InitApp(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Error initializing application environment: %s\n",
			err.Error())
		os.Exit(1)
	}

	switch strings.ToLower(mode) {
	case "run":
		if coll, err = collector.Create(); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Error creating Collector: %s\n",
				err.Error())
			os.Exit(1)
		} else if err = coll.Start(); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Error starting Collector: %s\n",
				err.Error())
			os.Exit(1)
		} else if srv, err = web.Create(addr); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Error creating web interface: %s\n",
				err.Error())
			os.Exit(1)
		}

		srv.Run()
	case "collect":
		if coll, err = collector.Create(); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Error creating Collector: %s\n",
				err.Error())
			os.Exit(1)
		} else if err = coll.Start(); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Error starting Collector: %s\n",
				err.Error())
			os.Exit(1)
		}

		for coll.IsActive() {
			time.Sleep(time.Second)
		}
	case "web":
		if srv, err = web.Create(addr); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Error creating web interface: %s\n",
				err.Error())
			os.Exit(1)
		}

		srv.Run()
	default:
		fmt.Fprintf(
			os.Stderr,
			"Unknown mode %q (must be run, collect, or web)\n",
			mode)
		os.Exit(1)
	}
} // func main()
