package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cloud.google.com/go/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"google.golang.org/api/option"

	bCtx "github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/database/mongoclient"
	"github.com/neonflick/goapi/base/database/redisclient"
	"github.com/neonflick/goapi/base/log"
	"github.com/neonflick/goapi/base/metrics"
	"github.com/neonflick/goapi/base/reaper"
	"github.com/neonflick/goapi/domain/healthcheck"
	mmiddleware "github.com/neonflick/goapi/middleware"
	"github.com/neonflick/goapi/service/query"
	"github.com/neonflick/goapi/service/redis"
	blob_repository "github.com/neonflick/goapi/stores/blob/repository"
	hc_delivery "github.com/neonflick/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/neonflick/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/neonflick/goapi/stores/healthcheck/usecase"
	listing_repository "github.com/neonflick/goapi/stores/listing/repository"
	listing_usecase "github.com/neonflick/goapi/stores/listing/usecase"
	reservation_repository "github.com/neonflick/goapi/stores/reservation/repository"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	log.SetDebug(viper.GetBool(`debug`))
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	defer log.Sync()

	ctx, cancel := bCtx.WithCancel(bCtx.Background())

	interval := viper.GetDuration("reaper.interval")
	batchSize := viper.GetInt("reaper.batchSize")
	callTimeout := viper.GetDuration("reaper.callTimeout")
	retries := viper.GetInt("reaper.retries")

	ctx.WithFields(log.Fields{
		"interval":    interval,
		"batchSize":   batchSize,
		"callTimeout": callTimeout,
		"retries":     retries,
		"bucket":      viper.GetString("storage.bucket"),
	}).Info("config")

	ctx.Info("init mongo")
	q := initMongo()

	ctx.Info("init redis")
	redisPool := redisclient.MustConnectRedis(viper.GetString("redis.uri"), viper.GetString("redis.password"), redisclient.RedisParam{
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		Retry:          true,
	})
	redisService := redis.New("redis", metrics.New("redis"), &redis.Pools{
		Src: redisPool,
	})

	ctx.Info("init cloud storage")
	var storageOpts []option.ClientOption
	if credentials := viper.GetString("storage.credentialsFile"); credentials != "" {
		storageOpts = append(storageOpts, option.WithCredentialsFile(credentials))
	}
	storageClient, err := storage.NewClient(ctx, storageOpts...)
	if err != nil {
		ctx.WithField("err", err).Panic("storage.NewClient failed")
	}
	blobRepo, err := blob_repository.NewCloudStorageRepo(&blob_repository.CloudStorageRepoCfg{
		Timeout:    viper.GetDuration("storage.timeout"),
		Client:     storageClient,
		BucketName: viper.GetString("storage.bucket"),
		Url:        viper.GetString("storage.url"),
	})
	if err != nil {
		ctx.WithField("err", err).Panic("NewCloudStorageRepo failed")
	}

	listingRepo := listing_repository.New(q)
	if err := listingRepo.EnsureIndexes(ctx); err != nil {
		ctx.WithField("err", err).Panic("listingRepo.EnsureIndexes failed")
	}
	listing := listing_usecase.New(&listing_usecase.UsecaseCfg{
		Repo:        listingRepo,
		Blob:        blobRepo,
		CallTimeout: callTimeout,
		Retries:     retries,
	})

	// start server to pass the platform health check
	startEchoServer(hc_usecase.New(hc_repo.New(q, redisService)))

	errCh := make(chan error, 10)
	r := reaper.New(&reaper.Cfg{
		Listing:       listing,
		Reservation:   reservation_repository.New(redisService),
		Interval:      interval,
		BatchSize:     batchSize,
		RetireTimeout: viper.GetDuration("reaper.retireTimeout"),
		ErrorCh:       errCh,
	})
	r.Start(ctx)

	go func() {
		for err := range errCh {
			ctx.WithField("err", err).Warn("reap cycle failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	ctx.WithField("signal", sig).Info("received signal")
	cancel()

	// the listing being retired is finished, the rest of the batch waits for the next run
	r.Wait()
	ctx.Info("reaper stopped")
}

func startEchoServer(hc healthcheck.HealthCheckUsecase) {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware("")
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	hc_delivery.New(e, hc)

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.WithField("err", err).Error("shutting down the server")
		}
	}()
}

func initMongo() query.Mongo {
	mongoClient := mongoclient.MustConnectMongoClient(mongoclient.MongoParam{
		URI:            viper.GetString("mongo.uri"),
		AuthDBName:     viper.GetString("mongo.authDBName"),
		DBName:         viper.GetString("mongo.dbName"),
		SSL:            viper.GetBool("mongo.enableSSL"),
		SetSafe:        true,
		PoolMultiplier: 2,
	})
	return query.New(mongoClient, viper.GetBool("mongo.checkIndex"))
}
