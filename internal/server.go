package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/config"
	"github.com/ascentfit/ascent/internal/dashboard"
	"github.com/ascentfit/ascent/internal/db"
	"github.com/ascentfit/ascent/internal/habits"
	"github.com/ascentfit/ascent/internal/localstore"
	"github.com/ascentfit/ascent/internal/middleware"
	"github.com/ascentfit/ascent/internal/notify"
	"github.com/ascentfit/ascent/internal/profile"
	"github.com/ascentfit/ascent/internal/routine"
	"github.com/ascentfit/ascent/internal/sleeplog"
	"github.com/ascentfit/ascent/internal/telemetry/metrics"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"
	"github.com/ascentfit/ascent/internal/weightlog"
	"github.com/ascentfit/ascent/internal/workoutlog"
	"github.com/ascentfit/ascent/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	localStore       *localstore.Store
	notifier         *notify.Notifier
	habitsService    *habits.Service
	sleepRepo        *sleeplog.Repo
	routineService   *routine.Service
	dashboardService *dashboard.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "ascent_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "ascent-backend", rdb)
	if err != nil {
		return nil, err
	}

	localStore := localstore.NewStore(rdb)
	notifier := notify.NewNotifier(rdb, metricsManager.CounterChangeEvents)

	habitsService := habits.NewService(
		habits.NewRepo(dbPool),
		habits.NewLocalCompletions(localStore),
		localStore,
	)
	sleepRepo := sleeplog.NewRepo(dbPool)
	routineService := routine.NewService(localStore)
	dashboardService := dashboard.NewService(
		habitsService,
		sleepRepo,
		weightlog.NewRepo(dbPool),
		weightlog.NewLocalEntries(localStore),
		routineService,
		metricsManager.CounterDashboardCacheHits,
	)

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		localStore:       localStore,
		notifier:         notifier,
		habitsService:    habitsService,
		sleepRepo:        sleepRepo,
		routineService:   routineService,
		dashboardService: dashboardService,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	// dashboard stats are cached per (owner, day); drop them on change events
	dashboardService.ListenForChanges(ctx, notifier.Subscribe(ctx))

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("ascent-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "POST", "OPTIONS").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	profileHandler := profile.NewHandler(
		profile.NewRepo(s.dbPool),
		s.authService,
	)
	profileHandler.SetupRoutes(
		r,
		reqRateLimiter,
		s.config.AuthRateLimitAllowedPerMin,
		s.metricsManager,
	)

	habitsHandler := habits.NewHandler(
		s.habitsService,
		s.notifier,
		s.metricsManager.CounterHabitToggles,
	)
	r.HandleFunc("/habits", habitsHandler.HandleCatalog).Methods("GET", "OPTIONS").Name("habits-catalog")
	r.HandleFunc("/habits", habitsHandler.HandleAddCustom).Methods("POST", "OPTIONS").Name("habits-add")
	r.HandleFunc("/habits/toggle", habitsHandler.HandleToggle).Methods("POST", "OPTIONS").Name("habits-toggle")
	r.HandleFunc("/habits/completions", habitsHandler.HandleCompletions).Methods("GET", "OPTIONS").Name("habits-completions")
	r.HandleFunc("/habits/streaks", habitsHandler.HandleStreaks).Methods("GET", "OPTIONS").Name("habits-streaks")

	sleepHandler := sleeplog.NewHandler(
		s.sleepRepo,
		s.notifier,
		s.metricsManager.CounterSleepLogs,
	)
	r.HandleFunc("/sleep", sleepHandler.HandleGet).Methods("GET", "OPTIONS").Name("sleep-get")
	r.HandleFunc("/sleep", sleepHandler.HandleSave).Methods("PUT", "OPTIONS").Name("sleep-save")
	r.HandleFunc("/sleep/overview", sleepHandler.HandleOverview).Methods("GET", "OPTIONS").Name("sleep-overview")

	weightHandler := weightlog.NewHandler(
		weightlog.NewRepo(s.dbPool),
		weightlog.NewLocalEntries(s.localStore),
		s.notifier,
		s.metricsManager.CounterWeightEntries,
	)
	r.HandleFunc("/weight", weightHandler.HandleList).Methods("GET", "OPTIONS").Name("weight-list")
	r.HandleFunc("/weight", weightHandler.HandleSave).Methods("PUT", "OPTIONS").Name("weight-save")
	r.HandleFunc("/weight/overview", weightHandler.HandleOverview).Methods("GET", "OPTIONS").Name("weight-overview")

	routineHandler := routine.NewHandler(s.routineService)
	r.HandleFunc("/routine", routineHandler.HandleGet).Methods("GET", "OPTIONS").Name("routine-get")
	r.HandleFunc("/routine/day", routineHandler.HandleUpdateDay).Methods("PUT", "OPTIONS").Name("routine-update-day")
	r.HandleFunc("/routine/reset", routineHandler.HandleReset).Methods("POST", "OPTIONS").Name("routine-reset")

	workoutsHandler := workoutlog.NewHandler(
		workoutlog.NewRepo(s.dbPool),
		workoutlog.NewSessions(s.localStore),
		s.notifier,
		s.metricsManager.CounterWorkoutsFinished,
	)
	r.HandleFunc("/workouts/catalog/{type}", workoutsHandler.HandleCatalog).Methods("GET", "OPTIONS").Name("workouts-catalog")
	r.HandleFunc("/workouts/session/{type}", workoutsHandler.HandleGetSession).Methods("GET", "OPTIONS").Name("workouts-session-get")
	r.HandleFunc("/workouts/session/{type}", workoutsHandler.HandleToggleExercise).Methods("PUT", "OPTIONS").Name("workouts-session-toggle")
	r.HandleFunc("/workouts/finish", workoutsHandler.HandleFinish).Methods("POST", "OPTIONS").Name("workouts-finish")
	r.HandleFunc("/workouts/list", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("workouts-list")

	dashboardHandler := dashboard.NewHandler(s.dashboardService)
	r.HandleFunc("/dashboard", dashboardHandler.HandleStats).Methods("GET", "OPTIONS").Name("dashboard")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.ResolveIdentity())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
