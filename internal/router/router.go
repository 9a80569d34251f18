package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"event-publisher/internal/adapters/calendar/caldav"
	mem "event-publisher/internal/adapters/storage/memory"
	pg "event-publisher/internal/adapters/storage/postgres"
	"event-publisher/internal/domain/instances"
	"event-publisher/internal/domain/records"
	"event-publisher/internal/domain/sync"
	"event-publisher/internal/middleware"
	"event-publisher/internal/platform/config"
	"event-publisher/internal/platform/logger"
	"event-publisher/internal/ports/calendar"

	_ "event-publisher/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config *config.Config

	// Optional: overrides the CalDAV client. Tests inject fakes here.
	Calendar calendar.Calendar

	// Optional: if set, use Postgres. If not, in-memory.
	DB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.Normalize()

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.ActorContext)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		recordsRepo   records.Repository
		instancesRepo instances.Repository
	)

	// If no explicit DB, try env (for dev/handoff).
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to in-memory storage", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		if err := pg.Migrate(context.Background(), db); err != nil {
			log.Error("migration failed", map[string]any{"error": err.Error()})
		}
		recordsRepo = pg.NewRecordsRepo(db)
		instancesRepo = pg.NewInstancesRepo(db)
	} else {
		recordsRepo = mem.NewRecordsRepo()
		instancesRepo = mem.NewInstancesRepo()
	}

	cal := opts.Calendar
	if cal == nil {
		client, err := caldav.New(cfg.CalDAV, log)
		if err != nil {
			log.Warn("caldav client not configured", map[string]any{"error": err.Error()})
		} else {
			cal = client
		}
	}

	recordsSvc := records.NewService(recordsRepo)
	engine := sync.New(recordsRepo, cal, cfg, log)
	expander := instances.NewExpander(recordsRepo, instancesRepo, cfg, log)

	records.RegisterRoutes(r, recordsSvc, engine, expander)
	instances.RegisterRoutes(r, instancesRepo, expander)

	return r
}
