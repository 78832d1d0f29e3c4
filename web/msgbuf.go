// /home/krylon/go/src/github.com/blicero/wattson/web/msgbuf.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-23 18:30:12 krylon>

package web

import (
	"slices"
	"sync"
	"time"

	"github.com/blicero/wattson/common"
	"github.com/hashicorp/logutils"
)

// message is a single note the Server wants the user to see on the
// status page, usually something that went wrong while rendering it.
type message struct {
	Timestamp time.Time
	Level     logutils.LogLevel
	Message   string
}

func (m *message) TimeString() string {
	return m.Timestamp.Format(common.TimestampFormat)
} // func (m *message) TimeString() string

type msgLink struct {
	msg  *message
	next *msgLink
}

// msgBuf is a buffer of messages, drained in one go when the next
// page is rendered.
type msgBuf struct {
	lock sync.RWMutex
	cnt  int
	link *msgLink
}

func newMsgBuf() *msgBuf {
	var buf = new(msgBuf)

	return buf
} // func newMsgBuf() *msgBuf

// Size returns the number of messages in the buffer.
func (mb *msgBuf) Size() int {
	mb.lock.RLock()
	var n = mb.cnt
	mb.lock.RUnlock()
	return n
}

func (mb *msgBuf) put(m *message) {
	mb.lock.Lock()

	var lnk = &msgLink{
		msg:  m,
		next: mb.link,
	}

	mb.link = lnk
	mb.cnt++

	mb.lock.Unlock()
}

func (mb *msgBuf) getAll() []*message {
	mb.lock.Lock()
	defer mb.lock.Unlock()

	var (
		list = make([]*message, mb.cnt)
		idx  = 0
		lnk  = mb.link
	)

	for lnk != nil {
		list[idx] = lnk.msg
		mb.cnt--
		idx++
		lnk = lnk.next
	}

	mb.link = nil
	slices.Reverse[[]*message](list)
	return list
} // func (mb *msgBuf) getAll() []*message
