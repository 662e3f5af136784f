package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"
	"google.golang.org/api/option"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/database/mongoclient"
	"github.com/neonflick/goapi/base/database/redisclient"
	"github.com/neonflick/goapi/base/log"
	"github.com/neonflick/goapi/base/metrics"
	bValidator "github.com/neonflick/goapi/base/validator"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/keys"
	mmiddleware "github.com/neonflick/goapi/middleware"
	"github.com/neonflick/goapi/service/cache"
	"github.com/neonflick/goapi/service/cache/provider"
	"github.com/neonflick/goapi/service/cache/provider/compound"
	"github.com/neonflick/goapi/service/cache/provider/primitive"
	cacheRedis "github.com/neonflick/goapi/service/cache/provider/redis"
	"github.com/neonflick/goapi/service/chain"
	"github.com/neonflick/goapi/service/query"
	"github.com/neonflick/goapi/service/redis"
	auth_delivery "github.com/neonflick/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/neonflick/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/neonflick/goapi/stores/auth/usecase"
	blob_repository "github.com/neonflick/goapi/stores/blob/repository"
	blocklist_delivery "github.com/neonflick/goapi/stores/blocklist/delivery/http"
	blocklist_repository "github.com/neonflick/goapi/stores/blocklist/repository"
	blocklist_usecase "github.com/neonflick/goapi/stores/blocklist/usecase"
	hc_delivery "github.com/neonflick/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/neonflick/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/neonflick/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/neonflick/goapi/stores/listing/delivery/http"
	listing_repository "github.com/neonflick/goapi/stores/listing/repository"
	listing_usecase "github.com/neonflick/goapi/stores/listing/usecase"
	payment_delivery "github.com/neonflick/goapi/stores/payment/delivery/http"
	payment_usecase "github.com/neonflick/goapi/stores/payment/usecase"
	reservation_repository "github.com/neonflick/goapi/stores/reservation/repository"

	_ "github.com/neonflick/goapi/app/api/docs"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to the yaml config")
	pflag.Parse()

	viper.SetDefault("server.bodyLimit", "12M")
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

//	@title			Listing Marketplace API
//	@version		1.0
//	@description	Fixed price listings paid for with a single on-chain transfer.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrieve token from #/auth/post_auth_wallet and apply with `bearer {token}`
func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(viper.GetString("server.bodyLimit")))
	middL := mmiddleware.InitMiddleware(viper.GetString("server.allowOrigin"))
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middL.CORS)
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(mongoclient.MongoParam{
		URI:            viper.GetString("mongo.uri"),
		AuthDBName:     viper.GetString("mongo.authDBName"),
		DBName:         viper.GetString("mongo.dbName"),
		SSL:            viper.GetBool("mongo.enableSSL"),
		SetSafe:        true,
		PoolMultiplier: 2,
	})
	q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))

	// init Redis service
	context.Info("init redis")
	redisPool := redisclient.MustConnectRedis(viper.GetString("redis.uri"), viper.GetString("redis.password"), redisclient.RedisParam{
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		Retry:          true,
	})
	redisService := redis.New("redis", metrics.New("redis"), &redis.Pools{
		Src: redisPool,
	})

	// the blocklist is read on every create and prepare, keep a short lived copy in process
	blocklistCache := cache.New(cache.ServiceConfig{
		Ttl: viper.GetDuration("blocklist.cacheTtl"),
		Pfx: keys.PfxBlocklist,
		Cache: compound.NewCompound([]provider.Provider{
			primitive.NewPrimitive("blocklist", 8),
			cacheRedis.NewRedis(redisService),
		}),
	})

	// init cloud storage
	context.Info("init cloud storage")
	var storageOpts []option.ClientOption
	if credentials := viper.GetString("storage.credentialsFile"); credentials != "" {
		storageOpts = append(storageOpts, option.WithCredentialsFile(credentials))
	}
	storageClient, err := storage.NewClient(context, storageOpts...)
	if err != nil {
		context.WithField("err", err).Panic("storage.NewClient failed")
	}
	blobRepo, err := blob_repository.NewCloudStorageRepo(&blob_repository.CloudStorageRepoCfg{
		Timeout:    viper.GetDuration("storage.timeout"),
		Client:     storageClient,
		BucketName: viper.GetString("storage.bucket"),
		Url:        viper.GetString("storage.url"),
	})
	if err != nil {
		context.WithField("err", err).Panic("NewCloudStorageRepo failed")
	}

	// init chain service
	chainClient, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrl:     viper.GetString("chain.rpcUrl"),
		Commitment: viper.GetString("chain.commitment"),
		Timeout:    viper.GetDuration("chain.timeout"),
		Retries:    viper.GetInt("chain.retries"),
	})
	if err != nil {
		context.WithField("err", err).Panic("chain.NewClient failed")
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(q, redisService)
	listingRepo := listing_repository.New(q)
	blocklistRepo := blocklist_repository.New(q)
	reservationRepo := reservation_repository.New(redisService)

	for _, r := range []interface{ EnsureIndexes(ctx.Ctx) error }{listingRepo, blocklistRepo} {
		if err := r.EnsureIndexes(context); err != nil {
			context.WithField("err", err).Panic("EnsureIndexes failed")
		}
	}

	hc := hc_usecase.New(hcRepo)
	blocklist := blocklist_usecase.New(blocklistRepo, blocklistCache)
	auth := auth_usecase.New(viper.GetString("jwt.secret"), blocklist)
	listing := listing_usecase.New(&listing_usecase.UsecaseCfg{
		Repo:            listingRepo,
		Blob:            blobRepo,
		Blocklist:       blocklist,
		DefaultDuration: viper.GetDuration("listing.defaultDuration"),
		MinDuration:     viper.GetDuration("listing.minDuration"),
		MaxDuration:     viper.GetDuration("listing.maxDuration"),
		MaxImageSize:    viper.GetInt("listing.maxImageSize"),
	})
	paymentCfg := &payment_usecase.UsecaseCfg{
		Listing:         listingRepo,
		Blocklist:       blocklist,
		Chain:           chainClient,
		Reservation:     reservationRepo,
		PlatformAddress: domain.Address(viper.GetString("payment.platformAddress")),
		SafetyMargin:    viper.GetDuration("payment.safetyMargin"),
		ReservationTTL:  viper.GetDuration("payment.reservationTTL"),
	}
	if err := paymentCfg.Validate(); err != nil {
		context.WithField("err", err).Panic("payment config invalid")
	}
	payment := payment_usecase.New(paymentCfg)

	context.WithFields(log.Fields{
		"platformAddress": viper.GetString("payment.platformAddress"),
		"chainRpc":        viper.GetString("chain.rpcUrl"),
		"bucket":          viper.GetString("storage.bucket"),
		"admins":          len(viper.GetStringSlice("admins")),
	}).Info("config")

	authMiddleware := auth_middleware.New(auth, viper.GetStringSlice("admins"))

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, authMiddleware)
	listing_delivery.New(e, listing, authMiddleware)
	payment_delivery.New(e, payment)
	blocklist_delivery.New(e, blocklist, authMiddleware)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
