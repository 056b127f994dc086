package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kario-app/taskfilter/catalog"
	"github.com/kario-app/taskfilter/dateparse"
	"github.com/kario-app/taskfilter/filter"
	"github.com/kario-app/taskfilter/log"
	"github.com/kario-app/taskfilter/rest"
	"github.com/kario-app/taskfilter/source"
	"github.com/kario-app/taskfilter/store/engine"
	"golang.org/x/sync/errgroup"
)

type EngineType string

var (
	EngineMemory EngineType = "memory"
	EngineBolt   EngineType = "bolt"
	EngineSQLite EngineType = "sqlite"
)

type Server struct {
	SyncAt        string `long:"sync-at" env:"SYNC_AT" value-name:"hh:mm[:ss]" description:"Time of day to rebuild the tag catalogs from all sources. Disabled when empty."`
	NoSyncOnStart bool   `long:"no-sync-on-start" env:"NO_SYNC_ON_START" description:"Do not build the tag catalogs on start."`

	Dates struct {
		MonthsBefore int `long:"months-before" env:"MONTHS_BEFORE" value-name:"num" default:"3" description:"How many months back a date filter may start."`
		MonthsAfter  int `long:"months-after" env:"MONTHS_AFTER" value-name:"num" default:"3" description:"How many months ahead a date filter may end."`
	} `group:"Date filter" namespace:"dates" env-namespace:"DATES"`

	Web struct {
		Listen      string `long:"listen" env:"LISTEN" value-name:"addr" default:"0.0.0.0:80" description:"Web server address."`
		AccessLog   bool   `long:"access-log" env:"ACCESS_LOG" description:"Log every HTTP request."`
		AdminPasswd string `long:"admin-passwd" env:"ADMIN_PASSWD" description:"Password of user admin for /api/admin/*. The admin API is off when empty."`

		ReadTimeout       time.Duration `long:"read-timeout" env:"READ_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server ReadTimeout"`
		ReadHeaderTimeout time.Duration `long:"read-header-timeout" env:"READ_HEADER_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server ReadHeaderTimeout"`
		IdleTimeout       time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" value-name:"duration" default:"30s" description:"http.Server IdleTimeout"`

		// Backups are streamed in one response, so WriteTimeout must be large enough.
		WriteTimeout time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" value-name:"duration" default:"60s" description:"http.Server WriteTimeout"`

		RateLimiter struct {
			ReqLimit    int           `long:"reqs" env:"REQS" value-name:"num" default:"100" description:"Requests allowed from one IP. 0 turns the rate limiter off."`
			LimitWindow time.Duration `long:"window" env:"WINDOW" value-name:"duration" default:"1s" description:"Period the request limit applies to."`
		} `group:"Rate Limiter" namespace:"ratelim" env-namespace:"RATE_LIM"`
	} `group:"Web" namespace:"web" env-namespace:"WEB"`

	Store struct {
		Engine EngineType `long:"engine" env:"ENGINE" value-name:"type" choice:"memory" choice:"bolt" choice:"sqlite" default:"bolt" description:"Where the tag catalogs are kept."`

		Bolt struct {
			File string `long:"file" env:"FILE" value-name:"path" default:"taskfilter.bolt" description:"Database file."`
		} `group:"Bolt store" namespace:"bolt" env-namespace:"BOLT"`

		SQLite struct {
			File string `long:"file" env:"FILE" value-name:"path" default:"taskfilter.sqlite" description:"Database file."`
		} `group:"SQLite store" namespace:"sqlite" env-namespace:"SQLITE"`
	} `group:"Store" namespace:"store" env-namespace:"STORE"`

	Source struct {
		Override string `long:"override" env:"OVERRIDE" value-name:"file.yml|file.toml" description:"File with custom labels and priorities, merged over the presets."`
	} `group:"Sources" namespace:"source" env-namespace:"SOURCE"`
}

func (s *Server) Execute(args []string) error {
	a, err := s.makeApp()
	if err != nil {
		return err
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case <-sigChan:
			a.shutdown()
		case <-a.done:
		}
	}()

	return a.run()
}

type Store interface {
	rest.Store
	catalog.Store
	Close() error
}

type app struct {
	srv         *rest.Server
	proc        *catalog.Processor
	store       Store
	autoSync    bool
	syncOnStart bool
	syncFinish  chan struct{}

	shutdownOnce sync.Once
	done         chan struct{}
}

func (s *Server) makeApp() (*app, error) {
	a := &app{
		syncOnStart: !s.NoSyncOnStart,
		syncFinish:  make(chan struct{}),
		done:        make(chan struct{}),
	}

	var syncAt time.Time
	if s.SyncAt != "" {
		t, err := parseSyncAt(s.SyncAt)
		if err != nil {
			return nil, fmt.Errorf("sync at: %w", err)
		}
		syncAt = t
		a.autoSync = true
	}

	if s.Dates.MonthsBefore < 0 || s.Dates.MonthsAfter < 0 {
		return nil, fmt.Errorf("date window must not be negative")
	}

	st, err := s.makeStore()
	if err != nil {
		return nil, err
	}
	a.store = st

	a.proc = catalog.NewProcessor(catalog.ProcOpts{
		Src:      s.makeSources(),
		Store:    st,
		UpdateAt: syncAt,
	})

	a.srv = &rest.Server{
		Store:   st,
		Updater: a.proc,
		Parser:  dateparse.Parser{},
		Opts: rest.Opts{
			Listen:      s.Web.Listen,
			LogRequests: s.Web.AccessLog,
			AdminPasswd: s.Web.AdminPasswd,

			ReadTimeout:       s.Web.ReadTimeout,
			ReadHeaderTimeout: s.Web.ReadHeaderTimeout,
			WriteTimeout:      s.Web.WriteTimeout,
			IdleTimeout:       s.Web.IdleTimeout,

			RateLimiter: s.Web.RateLimiter.ReqLimit > 0,
			ReqLimit:    s.Web.RateLimiter.ReqLimit,
			LimitWindow: s.Web.RateLimiter.LimitWindow,

			Window: filter.Window{Before: s.Dates.MonthsBefore, After: s.Dates.MonthsAfter},
		},
	}

	return a, nil
}

func (s *Server) makeStore() (Store, error) {
	switch s.Store.Engine {
	case EngineMemory:
		return engine.NewMemory(), nil
	case EngineBolt:
		return engine.NewBolt(s.Store.Bolt.File)
	case EngineSQLite:
		return engine.NewSQLite(s.Store.SQLite.File)
	default:
		return nil, fmt.Errorf("unknown store engine %s", s.Store.Engine)
	}
}

func (s *Server) makeSources() []catalog.Source {
	src := make([]catalog.Source, 0, 2)
	src = append(src, source.NewPreset())

	if s.Source.Override != "" {
		src = append(src, &source.Override{
			Path: s.Source.Override,
		})
	}
	return src
}

func parseSyncAt(val string) (time.Time, error) {
	if t, err := time.Parse("15:04", val); err == nil {
		return t, nil
	}

	t, err := time.Parse("15:04:05", val)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time '%s', it must match pattern hh:mm[:ss]", val)
	}
	return t, nil
}

// run blocks until the app is shut down. A server that fails to start shuts the app down.
func (a *app) run() error {
	g, ctx := errgroup.WithContext(context.Background())

	if a.autoSync {
		g.Go(func() error {
			a.proc.RunUpdates()
			return nil
		})
	}

	g.Go(func() error {
		if a.syncOnStart {
			a.proc.UpdateAll()
		}
		close(a.syncFinish)
		return nil
	})

	g.Go(func() error {
		if err := a.srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] startup: %v", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-ctx.Done():
			a.shutdown()
		case <-a.done:
		}
		return nil
	})

	return g.Wait()
}

func (a *app) shutdown() {
	a.shutdownOnce.Do(func() {
		log.Printf("[INFO] shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		g, _ := errgroup.WithContext(ctx)

		if a.autoSync {
			g.Go(func() error {
				return a.proc.Shutdown(ctx)
			})
		}
		g.Go(func() error {
			return a.srv.Shutdown(ctx)
		})
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return fmt.Errorf("sync on start: %w", ctx.Err())
			case <-a.syncFinish:
				return nil
			}
		})

		if err := g.Wait(); err != nil {
			log.Printf("[ERROR] app shutdown: %v", err)
		}
		if err := a.store.Close(); err != nil {
			log.Printf("[WARN] app shutdown: %v", err)
		}
		close(a.done)
	})
}
