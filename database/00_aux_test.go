// /home/krylon/go/src/github.com/blicero/wattson/database/00_aux_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-21 18:36:24 krylon>

package database

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/blicero/wattson/common"
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/wattson_database_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		// If any test failed, we keep the test directory (and the
		// database inside it) around, so we can inspect it manually.
		// If all tests pass, OTOH, we can safely remove the directory.
		if err = os.RemoveAll(baseDir); err != nil {
			fmt.Printf("Cannot remove temporary directory %s: %s\n",
				baseDir,
				err.Error())
		}
	}

	os.Exit(result)
} // func TestMain(m *testing.M)
