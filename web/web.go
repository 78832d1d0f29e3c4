// /home/krylon/go/src/github.com/blicero/wattson/web/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 07. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-24 23:11:46 krylon>

package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blicero/wattson/common"
	"github.com/blicero/wattson/database"
	"github.com/blicero/wattson/logdomain"
	"github.com/blicero/wattson/model"
	"github.com/blicero/wattson/nut"
	"github.com/blicero/wattson/nut/status"
	"github.com/blicero/wattson/settings"
	"github.com/blicero/wattson/stats"
	"github.com/gorilla/mux"
)

const ( // nolint: deadcode
	poolSize     = 2
	cacheControl = "max-age=3600, public"
	noCache      = "no-store, max-age=0"
)

//go:embed assets
var assets embed.FS

// Server wraps the state required for the web interface
type Server struct {
	addr      string
	log       *log.Logger
	cfg       *settings.Settings
	pool      *database.Pool
	nut       *nut.Client
	lock      sync.RWMutex // nolint: unused,structcheck
	active    atomic.Bool
	router    *mux.Router
	mbuf      *msgBuf
	tmpl      *template.Template
	web       http.Server
	mimeTypes map[string]string
}

// Create creates and returns a new Server. If addr is empty, the
// listening address is built from the configured web port.
func Create(addr string) (*Server, error) {
	var (
		err error
		msg string
		srv = &Server{
			addr: addr,
			mbuf: newMsgBuf(),
			mimeTypes: map[string]string{
				".css":  "text/css",
				".map":  "application/json",
				".js":   "text/javascript",
				".png":  "image/png",
				".jpg":  "image/jpeg",
				".jpeg": "image/jpeg",
				".webp": "image/webp",
				".gif":  "image/gif",
				".json": "application/json",
				".html": "text/html",
			},
		}
	)

	if srv.log, err = common.GetLogger(logdomain.Web); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Error creating Logger: %s\n",
			err.Error())
		return nil, err
	} else if srv.cfg, err = settings.Parse(""); err != nil {
		srv.log.Printf("[ERROR] Cannot read settings: %s\n",
			err.Error())
		return nil, err
	} else if srv.pool, err = database.NewPool(poolSize); err != nil {
		srv.log.Printf("[ERROR] Cannot allocate database connection pool: %s\n",
			err.Error())
		return nil, err
	} else if srv.pool == nil {
		srv.log.Printf("[CANTHAPPEN] Database pool is nil!\n")
		return nil, errors.New("Database pool is nil")
	} else if srv.nut, err = nut.NewClient(srv.cfg.UPSName, srv.cfg.QueryTimeout); err != nil {
		srv.log.Printf("[ERROR] Cannot create NUT client: %s\n",
			err.Error())
		return nil, err
	}

	if srv.addr == "" {
		srv.addr = fmt.Sprintf("[::]:%d", srv.cfg.WebPort)
	}

	const tmplFolder = "assets/templates"
	var templates []fs.DirEntry
	var tmplRe = regexp.MustCompile("[.]tmpl$")

	if templates, err = assets.ReadDir(tmplFolder); err != nil {
		srv.log.Printf("[ERROR] Cannot read embedded templates: %s\n",
			err.Error())
		return nil, err
	}

	srv.tmpl = template.New("").Funcs(funcmap)
	for _, entry := range templates {
		var (
			content []byte
			path    = filepath.Join(tmplFolder, entry.Name())
		)

		if !tmplRe.MatchString(entry.Name()) {
			continue
		} else if content, err = assets.ReadFile(path); err != nil {
			msg = fmt.Sprintf("Cannot read embedded file %s: %s",
				path,
				err.Error())
			srv.log.Printf("[CRITICAL] %s\n", msg)
			return nil, errors.New(msg)
		} else if srv.tmpl, err = srv.tmpl.Parse(string(content)); err != nil {
			msg = fmt.Sprintf("Could not parse template %s: %s",
				entry.Name(),
				err.Error())
			srv.log.Println("[CRITICAL] " + msg)
			return nil, errors.New(msg)
		} else if common.Debug {
			srv.log.Printf("[TRACE] Template \"%s\" was parsed successfully.\n",
				entry.Name())
		}
	}

	srv.router = mux.NewRouter()
	srv.web.Addr = srv.addr
	srv.web.ErrorLog = srv.log
	srv.web.Handler = srv.router

	// Web interface handlers
	srv.router.HandleFunc("/favicon.ico", srv.handleFavIco)
	srv.router.HandleFunc("/static/{file}", srv.handleStaticFile)
	srv.router.HandleFunc("/{page:(?:index|main|status)?$}", srv.handleStatus)

	// AJAX Handlers
	srv.router.HandleFunc("/ajax/beacon", srv.handleBeacon)

	return srv, nil
} // func Create(addr string) (*Server, error)

// IsActive returns the Server's active flag.
func (srv *Server) IsActive() bool {
	return srv.active.Load()
} // func (srv *Server) IsActive() bool

// Stop clears the Server's active flag.
func (srv *Server) Stop() {
	srv.active.Store(false)
} // func (srv *Server) Stop()

// SendMessage puts a message in the Server's message buffer.
func (srv *Server) SendMessage(msg string) {
	var m = &message{
		Timestamp: time.Now(),
		Level:     "DEBUG",
		Message:   msg,
	}
	srv.mbuf.put(m)
} // func (srv *Server) SendMessage(msg *message)

// Run executes the Server's loop, waiting for new connections and starting
// goroutines to handle them.
func (srv *Server) Run() {
	var err error

	defer srv.log.Println("[INFO] Web server is shutting down")

	srv.log.Printf("[INFO] Web frontend is going online at %s\n", srv.addr)
	http.Handle("/", srv.router)

	if err = srv.web.ListenAndServe(); err != nil {
		if err.Error() != "http: Server closed" {
			srv.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			srv.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (srv *Server) Run()

func (srv *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	srv.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	const (
		tmplName  = "status"
		recentCnt = 10
	)

	var (
		err  error
		msg  string
		db   *database.Database
		st   *stats.Stats
		tmpl *template.Template
		now  = time.Now().Unix()
		data = tmplDataStatus{
			tmplDataBase: tmplDataBase{
				Title: "UPS Statistics",
				Debug: common.Debug,
				URL:   r.URL.String(),
			},
			Now:        now,
			SystemName: srv.cfg.SystemName,
		}
	)

	if tmpl = srv.tmpl.Lookup(tmplName); tmpl == nil {
		msg = fmt.Sprintf("Could not find template %q", tmplName)
		srv.log.Println("[CRITICAL] " + msg)
		srv.sendErrorMessage(w, msg)
		return
	}

	db = srv.pool.Get()
	defer srv.pool.Put(db)

	if st, err = stats.New(db); err != nil {
		msg = fmt.Sprintf("Cannot create Stats facade: %s",
			err.Error())
		srv.log.Println("[ERROR] " + msg)
		srv.sendErrorMessage(w, msg)
		return
	}

	data.Reading = srv.nut.Read()
	data.Online = data.Reading.Status.SystemOnline()
	data.OnBattery = data.Reading.Status == status.OnBattery

	if data.Reading.HasCharge {
		data.Charge = fmt.Sprintf("%.0f%%", data.Reading.Charge)
	} else {
		data.Charge = "(unknown)"
	}

	if data.Reading.HasRuntime {
		data.DevRuntime = model.FmtSeconds(data.Reading.Runtime)
	}

	if data.OnBattery {
		if est := st.PredictBatteryRuntime(srv.cfg.BatteryThreshold); est != stats.NoData {
			data.Predicted = model.FmtSeconds(est)
		}
	}

	var windows = []struct {
		label   string
		seconds int64
	}{
		{"Last minute", 60},
		{"Last hour", 3600},
		{"Last 24 hours", 86400},
		{"Last 7 days", 86400 * 7},
		{"Last 30 days", 86400 * 30},
	}

	data.Loads = make([]loadRow, 0, len(windows)+1)

	if data.Reading.HasLoad {
		data.Loads = append(data.Loads, loadRow{
			Label: "Right now",
			Value: model.FmtLoad(data.Reading.Load, srv.cfg.NominalPower),
		})
	} else {
		data.Loads = append(data.Loads, loadRow{
			Label: "Right now",
			Value: "(unknown)",
		})
	}

	for _, win := range windows {
		data.Loads = append(data.Loads, loadRow{
			Label: win.label,
			Value: model.FmtLoad(st.AverageLoad(now, win.seconds), srv.cfg.NominalPower),
		})
	}

	data.UptimeTotal = st.SystemUptime(now)
	data.UptimeWall = st.WallPowerUptime(now)

	if data.Events, err = db.EventGetRecent(recentCnt); err != nil {
		msg = fmt.Sprintf("Failed to load recent events: %s",
			err.Error())
		srv.log.Println("[ERROR] " + msg)
		srv.SendMessage(msg)
	}

	if data.LastSample, err = db.DataGetLastStamp(); err != nil {
		srv.log.Printf("[ERROR] Failed to query most recent sample timestamp: %s\n",
			err.Error())
	} else if data.LastSample == 0 || now-data.LastSample > srv.cfg.GapThreshold {
		data.Stale = true
	}

	data.Messages = srv.mbuf.getAll()

	w.Header().Set("Cache-Control", noCache)
	if err = tmpl.Execute(w, &data); err != nil {
		msg = fmt.Sprintf("Error rendering template %q: %s",
			tmplName,
			err.Error())
		srv.SendMessage(msg)
		srv.sendErrorMessage(w, msg)
	}
} // func (srv *Server) handleStatus(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////
/// Handle static assets /////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////

func (srv *Server) handleFavIco(w http.ResponseWriter, request *http.Request) {
	srv.log.Printf("[TRACE] Handle request for %s\n",
		request.URL.EscapedPath())

	const (
		filename = "assets/static/favicon.ico"
		mimeType = "image/vnd.microsoft.icon"
	)

	w.Header().Set("Content-Type", mimeType)

	if !common.Debug {
		w.Header().Set("Cache-Control", "max-age=7200")
	} else {
		w.Header().Set("Cache-Control", "no-store, max-age=0")
	}

	var (
		err error
		fh  fs.File
	)

	if fh, err = assets.Open(filename); err != nil {
		msg := fmt.Sprintf("ERROR - cannot find file %s", filename)
		srv.sendErrorMessage(w, msg)
	} else {
		defer fh.Close()
		w.WriteHeader(200)
		io.Copy(w, fh) // nolint: errcheck
	}
} // func (srv *Server) handleFavIco(w http.ResponseWriter, request *http.Request)

func (srv *Server) handleStaticFile(w http.ResponseWriter, request *http.Request) {
	// Since we controll what static files the server has available, we
	// can easily map MIME type to slice. Soon.

	vars := mux.Vars(request)
	filename := vars["file"]
	path := filepath.Join("assets", "static", filename)

	var mimeType string

	srv.log.Printf("[TRACE] Delivering static file %s to client\n", filename)

	var match []string

	if match = common.SuffixPattern.FindStringSubmatch(filename); match == nil {
		mimeType = "text/plain"
	} else if mime, ok := srv.mimeTypes[match[1]]; ok {
		mimeType = mime
	} else {
		srv.log.Printf("[ERROR] Did not find MIME type for %s\n", filename)
	}

	w.Header().Set("Content-Type", mimeType)

	if common.Debug {
		w.Header().Set("Cache-Control", "no-store, max-age=0")
	} else {
		w.Header().Set("Cache-Control", "max-age=7200")
	}

	var (
		err error
		fh  fs.File
	)

	if fh, err = assets.Open(path); err != nil {
		msg := fmt.Sprintf("ERROR - cannot find file %s", path)
		srv.sendErrorMessage(w, msg)
	} else {
		defer fh.Close()
		w.WriteHeader(200)
		io.Copy(w, fh) // nolint: errcheck
	}
} // func (srv *Server) handleStaticFile(w http.ResponseWriter, request *http.Request)

func (srv *Server) sendErrorMessage(w http.ResponseWriter, msg string) {
	html := `
<!DOCTYPE html>
<html>
  <head>
    <title>Internal Error</title>
  </head>
  <body>
    <h1>Internal Error</h1>
    <hr />
    We are sorry to inform you an internal application error has occured:<br />
    %s
    <p>
    Back to <a href="/index">Homepage</a>
    <hr />
    &copy; 2018 <a href="mailto:krylon@gmx.net">Benjamin Walkenhorst</a>
  </body>
</html>
`

	srv.log.Printf("[ERROR] %s\n", msg)

	output := fmt.Sprintf(html, msg)
	w.WriteHeader(500)
	_, _ = w.Write([]byte(output)) // nolint: gosec
} // func (srv *Server) sendErrorMessage(w http.ResponseWriter, msg string)
