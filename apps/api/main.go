package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	echoapi "github.com/DustinMarino133/cyberskill/apps/api/echo"
	"github.com/DustinMarino133/cyberskill/core"
	"github.com/DustinMarino133/cyberskill/core/course"
	"github.com/DustinMarino133/cyberskill/core/progress"
	"github.com/DustinMarino133/cyberskill/core/session"
	"github.com/DustinMarino133/cyberskill/core/shop"
	"github.com/DustinMarino133/cyberskill/core/user"
	emailsvc "github.com/DustinMarino133/cyberskill/services/email"
	logsvc "github.com/DustinMarino133/cyberskill/services/logger"
	"github.com/DustinMarino133/cyberskill/storage/database"
	sqlxrepos "github.com/DustinMarino133/cyberskill/storage/database/sqlx"
	inmemstore "github.com/DustinMarino133/cyberskill/storage/sessionstore/inmem"
	redisstore "github.com/DustinMarino133/cyberskill/storage/sessionstore/redis"
)

func main() {
	conf := core.LoadConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	if err := run(conf, logger); err != nil {
		logger.Fatal("api startup failed", err)
	}
}

func run(conf *core.Config, logger core.Logger) error {
	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		return err
	}
	defer db.Close()
	if err = database.Ping(db); err != nil {
		return err
	}

	// set up the session store; sessions live in Redis outside DEV so they
	// survive restarts
	var sessStore session.Store
	if conf.Debug {
		sessStore = inmemstore.New()
	} else {
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		defer client.Close()
		sessStore = redisstore.New(client, conf.Redis.SessionTTL)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	clock := core.NewClock()
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc)
	sessSvc := session.NewService(sessStore, session.NewFixtureResolver())
	shopSvc := shop.NewService(sqlxrepos.NewWalletRepository(db), shop.DefaultCatalog(), clock, conf.Shop.StartingBalance)
	progSvc := progress.NewService(sqlxrepos.NewProgressRepository(db), shopSvc, clock)
	crsSvc := course.NewService(sqlxrepos.NewEnrollmentRepository(db), course.DefaultCatalog(), shopSvc, progSvc, clock)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:        conf.Server.Address(),
			Logger:      logger,
			UserSvc:     usrSvc,
			SessionSvc:  sessSvc,
			ShopSvc:     shopSvc,
			CourseSvc:   crsSvc,
			ProgressSvc: progSvc,
		},
		shutdown,
	)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("api listening on " + conf.Server.Address())
		serverErrors <- app.Start()
	}()

	select {
	case err = <-serverErrors:
		return err
	case sig := <-shutdown:
		logger.Info("shutdown started", sig)
		defer logger.Info("shutdown complete", sig)

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = app.Stop(ctx); err != nil {
			logger.Error("graceful shutdown failed", err)
			return app.Stop(context.Background())
		}
	}
	return nil
}
