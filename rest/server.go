package rest

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/kario-app/taskfilter/dateparse"
	"github.com/kario-app/taskfilter/filter"
	"github.com/kario-app/taskfilter/log"
	"github.com/kario-app/taskfilter/store"
)

type Store interface {
	FindTags(kind store.Kind) (store.Tags, bool)
	PutTags(kind store.Kind, tags store.Tags) error
}

type Updater interface {
	UpdateAll() map[store.Kind]error
}

// Backuper is implemented by stores able to dump themselves, e.g. engine.Bolt.
type Backuper interface {
	Backup(w io.Writer) error
}

type Server struct {
	Store   Store
	Updater Updater
	Parser  dateparse.Parser
	Opts    Opts

	mu     sync.Mutex
	srv    *http.Server
	closed bool
}

type Opts struct {
	Listen      string
	LogRequests bool
	AdminPasswd string // Admin API is off when empty.

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	RateLimiter bool
	ReqLimit    int
	LimitWindow time.Duration

	Window filter.Window // Dates accepted by /api/dates/range.
}

// Run blocks serving requests. After Shutdown it returns http.ErrServerClosed, even when
// Shutdown came first.
func (s *Server) Run() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return http.ErrServerClosed
	}
	s.srv = &http.Server{
		Addr:              s.Opts.Listen,
		Handler:           s.routes(),
		ReadTimeout:       s.Opts.ReadTimeout,
		ReadHeaderTimeout: s.Opts.ReadHeaderTimeout,
		WriteTimeout:      s.Opts.WriteTimeout,
		IdleTimeout:       s.Opts.IdleTimeout,
	}
	srv := s.srv
	s.mu.Unlock()

	log.Printf("[INFO] rest server listening on %s", s.Opts.Listen)
	return srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("rest server shutdown: %w", err)
	}
	return nil
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	if s.Opts.LogRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {
		if s.Opts.RateLimiter {
			r.Use(httprate.LimitByIP(s.Opts.ReqLimit, s.Opts.LimitWindow))
		}

		r.Get("/dates/parse", s.parseCtrl)
		r.Get("/dates/format", s.formatCtrl)
		r.Get("/dates/range", s.storedRangeCtrl)
		r.Post("/dates/range", s.rangeCtrl)

		r.Get("/tags/{kind}", s.tagsCtrl)
		r.Post("/tags/{kind}/toggle", s.toggleCtrl)

		if s.Opts.AdminPasswd != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.BasicAuth("taskfilter", map[string]string{"admin": s.Opts.AdminPasswd}))
				r.Post("/sync", s.syncCtrl)
				r.Put("/tags/{kind}", s.putTagsCtrl)
				r.Get("/backup", s.backupCtrl)
			})
		}
	})

	return r
}

type parseResp struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsRange   bool   `json:"isRange"`
	Display   string `json:"display"`
}

// parseCtrl answers 200 with empty dates when the text is not a date.
func (s *Server) parseCtrl(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		sendErrorJson(w, 400, "missing q")
		return
	}

	res := s.Parser.Parse(q)
	log.Printf("[DEBUG] rest parse q=%q start=%s end=%s range=%t", q, res.Start, res.End, res.IsRange)

	sendJsonResponse(w, parseResp{
		StartDate: dateparse.FormatISO(res.Start),
		EndDate:   dateparse.FormatISO(res.End),
		IsRange:   res.IsRange,
		Display:   res.String(),
	})
}

func (s *Server) formatCtrl(w http.ResponseWriter, r *http.Request) {
	loc := s.Parser.Reference().Location()
	start, err1 := dateparse.ParseISO(r.URL.Query().Get("start"), loc)
	end, err2 := dateparse.ParseISO(r.URL.Query().Get("end"), loc)
	if err := errors.Join(err1, err2); err != nil {
		sendErrorJson(w, 400, "invalid date, expected yyyy-mm-dd")
		return
	}

	sendJsonResponse(w, map[string]string{
		"display": dateparse.FormatRange(start, end),
	})
}

type rangeResp struct {
	filter.DateRange
	Stored  string `json:"stored"`
	Display string `json:"display"`
}

func newRangeResp(dr filter.DateRange) rangeResp {
	return rangeResp{DateRange: dr, Stored: dr.JSON(), Display: dr.Display()}
}

// rangeCtrl builds a date filter either from q, a single date or a range, or from the ends
// picked one at a time in from and the optional to.
func (s *Server) rangeCtrl(w http.ResponseWriter, r *http.Request) {
	var start, end time.Time
	if q := r.PostFormValue("q"); strings.TrimSpace(q) != "" {
		res := s.Parser.Parse(q)
		if res.Empty() {
			sendErrorJson(w, 400, "cannot parse date")
			return
		}
		start, end = res.Start, res.End
	} else {
		var ok bool
		if start, ok = s.Parser.ParseDate(r.PostFormValue("from")); !ok {
			sendErrorJson(w, 400, "cannot parse from")
			return
		}
		if to := r.PostFormValue("to"); strings.TrimSpace(to) != "" {
			if end, ok = s.Parser.ParseDate(to); !ok {
				sendErrorJson(w, 400, "cannot parse to")
				return
			}
		}
	}

	now := s.Parser.Reference()
	for _, d := range []time.Time{start, end} {
		if d.IsZero() {
			continue
		}
		if err := s.Opts.Window.Check(d, now); err != nil {
			sendErrorJson(w, 422, err.Error())
			return
		}
	}

	sendJsonResponse(w, newRangeResp(filter.NewDateRange(start, end)))
}

// storedRangeCtrl restores a filter saved in its stored JSON form.
func (s *Server) storedRangeCtrl(w http.ResponseWriter, r *http.Request) {
	dr, err := filter.ParseDateRange(r.URL.Query().Get("stored"))
	if err != nil {
		sendErrorJson(w, 400, err.Error())
		return
	}
	sendJsonResponse(w, newRangeResp(dr))
}

type tagsResp struct {
	Preset store.Tags `json:"preset"`
	Custom store.Tags `json:"custom"`
}

func (s *Server) tagsCtrl(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		sendErrorJson(w, 400, "invalid kind")
		return
	}

	tags, found := s.Store.FindTags(kind)
	if !found {
		sendErrorJson(w, 404, "catalog not found")
		return
	}

	preset, custom := filter.Search(tags, r.URL.Query().Get("q")).Split()
	sendJsonResponse(w, tagsResp{Preset: preset, Custom: custom})
}

func (s *Server) toggleCtrl(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		sendErrorJson(w, 400, "invalid kind")
		return
	}
	if err := r.ParseForm(); err != nil {
		sendErrorJson(w, 400, "invalid form")
		return
	}

	tag := r.PostForm.Get("tag")
	if tag == "" {
		sendErrorJson(w, 400, "missing tag")
		return
	}

	tags, found := s.Store.FindTags(kind)
	if !found {
		sendErrorJson(w, 404, "tag not found")
		return
	}
	i := tags.Index(tag)
	if i < 0 {
		sendErrorJson(w, 404, "tag not found")
		return
	}

	// Selections hold catalog spelling, so "#work" toggles "#Work".
	sendJsonResponse(w, filter.Toggle(r.PostForm["selected"], tags[i].Name))
}

func (s *Server) syncCtrl(w http.ResponseWriter, r *http.Request) {
	if s.Updater == nil {
		sendErrorJson(w, 501, "sync is not configured")
		return
	}

	res := make(map[store.Kind]string, len(store.Kinds))
	for kind, err := range s.Updater.UpdateAll() {
		if err != nil {
			res[kind] = err.Error()
		} else {
			res[kind] = "ok"
		}
	}
	sendJsonResponse(w, res)
}

// putTagsCtrl replaces the custom tags of a built catalog. Presets stay, and the next sync
// rebuilds the catalog from its sources.
func (s *Server) putTagsCtrl(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(r)
	if !ok {
		sendErrorJson(w, 400, "invalid kind")
		return
	}

	var req store.Tags
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorJson(w, 400, "invalid json")
		return
	}

	tags, found := s.Store.FindTags(kind)
	if !found {
		sendErrorJson(w, 404, "catalog not found")
		return
	}

	preset, _ := tags.Split()
	custom := store.Tags{}
	for _, tag := range req {
		if tag.Name == "" || preset.Index(tag.Name) >= 0 || custom.Index(tag.Name) >= 0 {
			continue
		}
		tag.Preset = false
		custom = append(custom, tag)
	}

	if err := s.Store.PutTags(kind, append(preset.Copy(), custom...)); err != nil {
		log.Printf("[ERROR] rest put tags %s: %v", kind, err)
		sendErrorJson(w, 500, "cannot save tags")
		return
	}
	log.Printf("[INFO] rest custom %s replaced, len=%d", kind, len(custom))

	sendJsonResponse(w, tagsResp{Preset: preset, Custom: custom})
}

// backupCtrl stages the gzipped dump in a temp file, so a failed backup is reported with an
// error status instead of a truncated 200.
func (s *Server) backupCtrl(w http.ResponseWriter, r *http.Request) {
	b, ok := s.Store.(Backuper)
	if !ok {
		sendErrorJson(w, 501, "store does not support backups")
		return
	}

	tmp, err := os.CreateTemp("", "taskfilter-backup-*.gz")
	if err != nil {
		log.Printf("[ERROR] rest backup: cannot create temp file: %v", err)
		sendErrorJson(w, 500, "cannot make backup")
		return
	}
	defer func() {
		if err := tmp.Close(); err != nil {
			log.Printf("[WARN] rest backup: cannot close %s: %v", tmp.Name(), err)
		}
		if err := os.Remove(tmp.Name()); err != nil {
			log.Printf("[WARN] rest backup: cannot remove %s: %v", tmp.Name(), err)
		}
	}()

	gz := gzip.NewWriter(tmp)
	err = b.Backup(gz)
	if closeErr := gz.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		log.Printf("[ERROR] rest backup: %v", err)
		sendErrorJson(w, 500, "cannot make backup")
		return
	}

	size, err := tmp.Seek(0, io.SeekCurrent)
	if err == nil {
		_, err = tmp.Seek(0, io.SeekStart)
	}
	if err != nil {
		log.Printf("[ERROR] rest backup: cannot rewind %s: %v", tmp.Name(), err)
		sendErrorJson(w, 500, "cannot make backup")
		return
	}

	fname := fmt.Sprintf("taskfilter_%s.bolt.gz", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fname))
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(200)

	if _, err := io.Copy(w, tmp); err != nil {
		log.Printf("[WARN] rest backup: cannot send %s: %v", fname, err)
	}
}

func kindParam(r *http.Request) (store.Kind, bool) {
	return store.ParseKind(chi.URLParam(r, "kind"))
}

func sendJsonResponse(w http.ResponseWriter, data interface{}) {
	respJson, err := json.Marshal(data)
	if err != nil {
		log.Printf("[WARN] cannot marshal response data: %+v", err)
		sendErrorJson(w, 500, "cannot marshal response data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if _, err = w.Write(respJson); err != nil {
		log.Printf("[WARN] cannot write response data: %+v", err)
	}
}

func sendErrorJson(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	restErr := &struct {
		Msg string `json:"msg"`
	}{msg}

	errJson, err := json.Marshal(restErr)
	if err != nil {
		log.Printf("[WARN] cannot marshal rest error: %+v", err)
		return
	}

	if _, err = w.Write(errJson); err != nil {
		log.Printf("[WARN] cannot write rest error: %+v", err)
	}
}
