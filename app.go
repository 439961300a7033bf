package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/VinniZP/lingx-sub016/internal/adapters/access"
	dbsqlite "github.com/VinniZP/lingx-sub016/internal/adapters/db/sqlite"
	memevents "github.com/VinniZP/lingx-sub016/internal/adapters/events/memory"
	natsevents "github.com/VinniZP/lingx-sub016/internal/adapters/events/nats"
	expcsv "github.com/VinniZP/lingx-sub016/internal/adapters/exporter/csv"
	expjson "github.com/VinniZP/lingx-sub016/internal/adapters/exporter/flatjson"
	exportreg "github.com/VinniZP/lingx-sub016/internal/adapters/exporter/registry"
	csvparser "github.com/VinniZP/lingx-sub016/internal/adapters/parser/csv"
	"github.com/VinniZP/lingx-sub016/internal/adapters/parser/flatjson"
	parreg "github.com/VinniZP/lingx-sub016/internal/adapters/parser/registry"
	"github.com/VinniZP/lingx-sub016/internal/api/httpapi"
	"github.com/VinniZP/lingx-sub016/internal/config"
	"github.com/VinniZP/lingx-sub016/internal/logging"
	"github.com/VinniZP/lingx-sub016/internal/ports"
	"github.com/VinniZP/lingx-sub016/internal/usecase/branching"
	exporterusecase "github.com/VinniZP/lingx-sub016/internal/usecase/exporter"
	"github.com/VinniZP/lingx-sub016/internal/usecase/importer"
)

// App wires storage, services and the HTTP server together.
type App struct {
	cfg    *config.Config
	log    *slog.Logger
	logC   io.Closer
	db     *sql.DB
	events ports.EventPublisher
	server *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := dbsqlite.Init(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	store := dbsqlite.NewStore(db)

	var events ports.EventPublisher
	if cfg.Events.NATSURL != "" {
		events, err = natsevents.Connect(cfg.Events.NATSURL, cfg.Events.Subject, log)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		events = memevents.New(cfg.Events.Buffer, log)
	}

	branchSvc := branching.New(store, events, log)

	// Parser registry and importer service
	parserRegistry := parreg.New()
	// Register parsers directly to keep wiring explicit
	parserRegistry.Register(flatjson.New())
	parserRegistry.Register(csvparser.New())
	importSvc := importer.New(store, parserRegistry)

	// Exporters and service
	expReg := exportreg.New()
	expReg.Register(expjson.New())
	expReg.Register(expcsv.New())
	expSvc := exporterusecase.New(store, expReg)

	gin.SetMode(cfg.HTTP.Mode)
	api := httpapi.New(httpapi.Deps{
		Store:     store,
		Branching: branchSvc,
		Importer:  importSvc,
		Exporter:  expSvc,
		Access:    access.Permissive{},
		Log:       log,
	})

	return &App{
		cfg:    cfg,
		log:    log,
		logC:   logCloser,
		db:     db,
		events: events,
		server: &http.Server{Addr: cfg.HTTP.Addr, Handler: api.Router()},
	}, nil
}

// Run serves HTTP until the context is canceled, then drains in-flight
// requests.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("listening", "addr", a.cfg.HTTP.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close releases the event publisher, the database and the log file.
func (a *App) Close() {
	a.events.Close()
	if err := a.db.Close(); err != nil {
		a.log.Warn("closing database", "error", err)
	}
	if a.logC != nil {
		_ = a.logC.Close()
	}
}
