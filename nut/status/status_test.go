// /home/krylon/go/src/github.com/blicero/wattson/nut/status/status_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-22 18:10:33 krylon>

package status

import "testing"

func TestParse(t *testing.T) {
	var cases = []struct {
		raw    string
		expect ID
	}{
		{"OL", Online},
		{"OB", OnBattery},
		{"OL CHRG", Online},
		{"OB DISCHRG", OnBattery},
		{"OB DISCHRG LB", OnBattery},
		{"ALARM OL", Online},
		// If the daemon claims both, we believe the scarier one.
		{"OL OB", OnBattery},
		{"OB OL", OnBattery},
		{"", Unknown},
		{"WAIT", Unknown},
		{"FSD CAL", Unknown},
	}

	for _, c := range cases {
		if st := Parse(c.raw); st != c.expect {
			t.Errorf("Parse(%q) = %s (expected %s)",
				c.raw,
				st,
				c.expect)
		}
	}
} // func TestParse(t *testing.T)

func TestDerivedFlags(t *testing.T) {
	var cases = []struct {
		st     ID
		online bool
		wall   bool
	}{
		{Unknown, false, false},
		{Online, true, true},
		{OnBattery, true, false},
	}

	for _, c := range cases {
		if on := c.st.SystemOnline(); on != c.online {
			t.Errorf("%s.SystemOnline() = %t (expected %t)",
				c.st,
				on,
				c.online)
		}

		if w := c.st.WallPower(); w != c.wall {
			t.Errorf("%s.WallPower() = %t (expected %t)",
				c.st,
				w,
				c.wall)
		}
	}
} // func TestDerivedFlags(t *testing.T)
