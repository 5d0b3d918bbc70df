package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/logrus/sentry"

	"github.com/iftakhar005/talenthunt/internal/cache"
	"github.com/iftakhar005/talenthunt/internal/cache/memory"
	"github.com/iftakhar005/talenthunt/internal/cache/redis"
	"github.com/iftakhar005/talenthunt/internal/health"
	mm "github.com/iftakhar005/talenthunt/internal/middleware"
	"github.com/iftakhar005/talenthunt/internal/server"
	"github.com/iftakhar005/talenthunt/internal/service"
	"github.com/iftakhar005/talenthunt/internal/service/impl"
	"github.com/iftakhar005/talenthunt/internal/storage/postgres"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Host           string        `long:"http.host" env:"HTTP_HOST" default:"0.0.0.0" description:"IP to listen on"`
	Port           int           `long:"http.port" env:"HTTP_PORT" default:"8080" description:"port to listen on for insecure connections"`
	RequestTimeout time.Duration `long:"http.request-timeout" env:"HTTP_REQUEST_TIMEOUT" default:"45s" description:"request processing timeout"`

	Postgres                   string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMaxOpenConnections int    `long:"postgres.max_open_connections" env:"POSTGRES_MAX_OPEN_CONNECTIONS" default:"0" description:"postgres maximal open connections count, 0 means unlimited"`
	PostgresMaxIdleConnections int    `long:"postgres.max_idle_connections" env:"POSTGRES_MAX_IDLE_CONNECTIONS" default:"5" description:"postgres maximal idle connections count"`
	PostgresMigrations         string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`

	RedisAddr   string `long:"redis.addr" env:"REDIS_ADDR" description:"redis address, in-memory cache is used when empty"`
	RedisPrefix string `long:"redis.prefix" env:"REDIS_PREFIX" default:"talenthunt:" description:"prefix of cache keys"`

	JWTSecret  string        `long:"jwt.secret" env:"JWT_SECRET" required:"true" description:"secret used to sign bearer tokens"`
	TokenTTL   time.Duration `long:"jwt.ttl" env:"JWT_TTL" default:"168h" description:"bearer token lifetime"`
	CodeTTL    time.Duration `long:"verification.ttl" env:"VERIFICATION_TTL" default:"10m" description:"verification code lifetime"`
	BcryptCost int           `long:"bcrypt.cost" env:"BCRYPT_COST" default:"10" description:"bcrypt cost of password hashes"`

	PurgeSchedule string `long:"verification.purge-schedule" env:"VERIFICATION_PURGE_SCHEDULE" default:"@every 1h" description:"cron schedule of expired verifications cleanup"`

	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
}{}

var errTerminated = errors.New("terminated")

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Talent Hunt"
	parser.LongDescription = "Talent Hunt API server"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	if opts.SentryDSN != "" {
		v := health.GetVersion()
		hook, err := sentry.NewHook(sentry.Options{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			Release:          fmt.Sprintf("%s-%s", v.Version, v.Commit),
			ServerName:       "talentd",
		}, logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel)

		if err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}

		logrus.AddHook(hook)
	} else {
		logrus.Info("empty sentry dsn")
		logrus.Warn("skip sentry initialization")
	}

	db := mustGetDB()
	c, pingers := mustGetCache()
	pingers = append(pingers, health.SubjectPinger("postgres", health.PingerFunc(db.PingContext)))

	s := impl.New(postgres.New(db), impl.Config{
		JWTSecret:  []byte(opts.JWTSecret),
		TokenTTL:   opts.TokenTTL,
		CodeTTL:    opts.CodeTTL,
		BcryptCost: opts.BcryptCost,
	})

	r := chi.NewMux()
	r.Use(mm.NewMetrics(prometheus.DefaultRegisterer).Handler)
	server.SetupRouter(s, c, r, opts.RequestTimeout)
	r.Get("/health", health.Handler(pingers...))
	r.Handle("/metrics", promhttp.Handler())

	srv := http.Server{
		Addr:    fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler: r,
	}

	scheduler := mustGetScheduler(s)
	scheduler.Start()
	defer scheduler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gr, ctx := errgroup.WithContext(ctx)
	gr.Go(srv.ListenAndServe)
	gr.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})
	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		select {
		case s := <-sigs:
			logrus.Infof("terminating by %s signal", s)
		case <-ctx.Done():
			return nil
		}

		return errTerminated
	})

	logrus.Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("server unexpectedly closed")
	}
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}
	db.SetMaxOpenConns(opts.PostgresMaxOpenConnections)
	db.SetMaxIdleConns(opts.PostgresMaxIdleConnections)

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	switch v, d, err := migrator.Version(); err {
	case nil:
		logrus.Infof("database version %d with dirty state %t", v, d)
	case migrate.ErrNilVersion:
		logrus.Info("database version: nil")
	default:
		logrus.WithError(err).Fatal("failed to get version")
	}

	switch err := migrator.Up(); err {
	case nil:
		logrus.Info("database was migrated")
	case migrate.ErrNoChange:
		logrus.Info("database is up-to-date")
	default:
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}

func mustGetCache() (cache.Storage, []health.Pinger) {
	if opts.RedisAddr == "" {
		logrus.Info("empty redis address, in-memory cache will be used")
		return memory.NewStorage(), nil
	}

	rdb := goredis.NewClient(&goredis.Options{Addr: opts.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).Fatal("failed to ping redis")
	}

	return redis.New(rdb, opts.RedisPrefix), []health.Pinger{
		health.SubjectPinger("redis", health.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})),
	}
}

func mustGetScheduler(s service.Service) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc(opts.PurgeSchedule, func() {
		n, err := s.PurgeExpiredVerifications(context.Background())
		if err != nil {
			logrus.WithError(err).Error("failed to purge expired verifications")
			return
		}
		logrus.WithField("count", n).Debug("expired verifications purged")
	}); err != nil {
		logrus.WithError(err).Fatal("failed to schedule verifications purge")
	}

	return c
}
