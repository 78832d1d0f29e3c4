// /home/krylon/go/src/github.com/blicero/wattson/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-25 18:10:34 krylon>

// Package common provides constants, variables and functions used
// throughout the application.
package common

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/blicero/wattson/logdomain"
	"github.com/hashicorp/logutils"
)

// Debug indicates whether to emit additional log messages and perform
// additional sanity checks.
const Debug = true

const (
	// AppName is the name of the application.
	AppName = "Wattson"
	// Version is the version number.
	Version = "0.3.1"
	// TimestampFormat is the format string used to render timestamps.
	TimestampFormat = "2006-01-02 15:04:05"
	// DefaultPort is the port the web frontend listens on by default.
	DefaultPort = 4077
)

// BuildStamp is the time at which the application was built.
var BuildStamp = time.Unix(1787263200, 0)

// SuffixPattern is used to extract the suffix of a file name, so we can
// look up its MIME type.
var SuffixPattern = regexp.MustCompile("([.][^.]+)$")

// BaseDir is the folder where the application stores its files - the
// database, the log, the configuration file.
// DbPath, LogPath, and CfgPath are the locations of those files.
var (
	BaseDir = filepath.Join(os.Getenv("HOME"), ".wattson.d")
	DbPath  = filepath.Join(BaseDir, "wattson.db")
	LogPath = filepath.Join(BaseDir, "wattson.log")
	CfgPath = filepath.Join(BaseDir, "wattson.toml")
)

func init() {
	if dir, ok := os.LookupEnv("WATTSON_BASEDIR"); ok {
		BaseDir = dir
		DbPath = filepath.Join(dir, "wattson.db")
		LogPath = filepath.Join(dir, "wattson.log")
		CfgPath = filepath.Join(dir, "wattson.toml")
	}

	// The database lives on the writer's host, but the path may need to
	// be adjusted when collector and frontend run from different
	// working environments.
	if path, ok := os.LookupEnv("WATTSON_DB_PATH"); ok {
		DbPath = path
	}
} // func init()

// LogLevels are the log levels recognized by the logger, in ascending
// order of severity.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// PackageLevels defines the minimum log level per package.
var PackageLevels = func() map[logdomain.ID]logutils.LogLevel {
	var minLevel logutils.LogLevel = "TRACE"

	if !Debug {
		minLevel = "INFO"
	}

	var m = make(map[logdomain.ID]logutils.LogLevel, len(logdomain.AllDomains()))

	for _, dom := range logdomain.AllDomains() {
		m[dom] = minLevel
	}

	return m
}()

// SetBaseDir sets the BaseDir and related variables. This is mainly
// meant for testing, so the tests do not mess with the user's real data.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BaseDir to %s\n", path)

	BaseDir = path
	DbPath = filepath.Join(path, "wattson.db")
	LogPath = filepath.Join(path, "wattson.log")
	CfgPath = filepath.Join(path, "wattson.toml")

	if err := InitApp(); err != nil {
		fmt.Fprintf(os.Stderr,
			"Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// InitApp performs the basic preparations for the application to run.
// As of now, this means creating the BaseDir if it does not exist.
// It is safe to call InitApp repeatedly.
func InitApp() error {
	var err error

	if err = os.MkdirAll(BaseDir, 0700); err != nil {
		return fmt.Errorf("Error creating BaseDir %s: %w",
			BaseDir,
			err)
	}

	return nil
} // func InitApp() error

// GetLogger tries to create a named Logger instance for the given log
// domain and return it.
// If the BaseDir does not exist, it is created first.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err  error
		name = fmt.Sprintf("%s.%s ",
			AppName,
			dom)
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("Error initializing application environment: %w",
			err)
	}

	var logfile *os.File

	if logfile, err = os.OpenFile(LogPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644); err != nil {
		var msg = fmt.Sprintf("Error opening log file %s: %s",
			LogPath,
			err.Error())
		fmt.Fprintln(os.Stderr, msg)
		return nil, errors.New(msg)
	}

	var writer io.Writer

	if Debug {
		writer = io.MultiWriter(os.Stdout, logfile)
	} else {
		writer = logfile
	}

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: PackageLevels[dom],
		Writer:   writer,
	}

	var logger = log.New(filter, name, log.Ldate|log.Ltime|log.Lshortfile)

	return logger, nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)
