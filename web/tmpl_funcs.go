// /home/krylon/go/src/github.com/blicero/wattson/web/tmpl_funcs.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-23 17:44:09 krylon>
//
// Helper functions available inside the HTML templates.

package web

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/model"
	"github.com/mborgerson/GoTruncateHtml/truncatehtml"
)

var funcmap = template.FuncMap{
	"app_string":  appString,
	"now":         nowFunc,
	"hostname":    hostname,
	"fmt_stamp":   fmtStamp,
	"fmt_seconds": model.FmtSeconds,
	"fmt_ratio":   fmtRatio,
	"trunc":       trunc,
	"cycle":       cycleFunc,
}

func appString() string {
	return fmt.Sprintf("%s %s (built on %s)",
		common.AppName,
		common.Version,
		common.BuildStamp.Format(common.TimestampFormat))
} // func appString() string

func nowFunc() string {
	return time.Now().Format(common.TimestampFormat)
} // func nowFunc() string

func hostname() string {
	var (
		err  error
		name string
	)

	if name, err = os.Hostname(); err != nil {
		return "(unknown)"
	}

	return name
} // func hostname() string

func fmtStamp(stamp int64) string {
	return time.Unix(stamp, 0).Format(common.TimestampFormat)
} // func fmtStamp(stamp int64) string

func fmtRatio(ratio float64) string {
	return fmt.Sprintf("%.8f%%", ratio*100)
} // func fmtRatio(ratio float64) string

func trunc(s string, maxlen int) string {
	var (
		err error
		buf []byte
	)

	if buf, err = truncatehtml.TruncateHtml([]byte(s), maxlen, "..."); err != nil {
		return s
	}

	return string(buf)
} // func trunc(s string, maxlen int) string

func cycleFunc(idx int, vals ...string) string {
	return vals[idx%len(vals)]
} // func cycleFunc(idx int, vals ...string) string
