package main

import (
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/base/database/mongoclient"
	"github.com/niftyhouse/indexer/base/delivery"
	"github.com/niftyhouse/indexer/base/ethereum"
	"github.com/niftyhouse/indexer/base/extindexer"
	"github.com/niftyhouse/indexer/base/log"
	"github.com/niftyhouse/indexer/base/tracker"
	"github.com/niftyhouse/indexer/base/validator"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/activity"
	"github.com/niftyhouse/indexer/domain/nftitem"
	mmiddleware "github.com/niftyhouse/indexer/middleware"
	"github.com/niftyhouse/indexer/service/chain"
	serviceContract "github.com/niftyhouse/indexer/service/chain/contract"
	"github.com/niftyhouse/indexer/service/moralis"
	"github.com/niftyhouse/indexer/service/query"
	activityRepo "github.com/niftyhouse/indexer/stores/activity/repository"
	activityUseCase "github.com/niftyhouse/indexer/stores/activity/usecase"
	marketplaceUseCase "github.com/niftyhouse/indexer/stores/marketplace/usecase"
	tokenHttp "github.com/niftyhouse/indexer/stores/token/delivery/http"
	"github.com/niftyhouse/indexer/stores/token/repository"
	tokenUseCase "github.com/niftyhouse/indexer/stores/token/usecase"
	webResourceRepo "github.com/niftyhouse/indexer/stores/web_resource/repository"
	webResourceUseCase "github.com/niftyhouse/indexer/stores/web_resource/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/sync/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}

	viper.BindEnv("MORALIS_APIKEY")
}

func main() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer cancel()

	chainId := viper.GetInt64("chain.chainId")
	rpcUrl := viper.GetString("chain.rpcUrl")
	marketplaceContract := viper.GetString("chain.marketplaceContract")
	startBlock := viper.GetUint64("chain.startBlock")
	pollInterval := viper.GetDuration("chain.pollInterval")
	ipfsGateway := viper.GetString("webResource.ipfsGateway")
	moralisApikey := viper.GetString("moralis.apikey")
	if env := viper.GetString("MORALIS_APIKEY"); len(env) > 0 {
		moralisApikey = env
	}
	indexPageDelay := viper.GetDuration("externalIndexer.pageDelay")
	priceInterval := viper.GetDuration("priceRefresher.interval")

	ctx.WithFields(log.Fields{
		"chainId":             chainId,
		"rpcUrl":              rpcUrl,
		"marketplaceContract": marketplaceContract,
		"startBlock":          startBlock,
	}).Info("config")

	if err := validator.ValidateChainTarget(chainId, marketplaceContract); err != nil {
		ctx.WithFields(log.Fields{
			"err":                 err,
			"chainId":             chainId,
			"marketplaceContract": marketplaceContract,
		}).Panic("invalid chain config")
	}

	ctx.Info("init mongo")
	q := initMongo()

	ctx.Info("connecting eth client")
	rpcClient, err := ethclient.DialContext(ctx, rpcUrl)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"url": rpcUrl,
		}).Panic("failed to connect rpc")
	}
	throttledClient := ethereum.NewTrottledClient(rpcClient, 100)

	chainService, err := chain.NewClient(ctx, &chain.ClientCfg{
		RpcUrls: map[int32]string{
			int32(chainId): rpcUrl,
		},
	})
	if err != nil {
		ctx.WithField("err", err).Panic("chainService init failed")
	}

	moralisCfg := &moralis.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    10 * time.Second,
		Apikey:     moralisApikey,
	}

	// repos
	nftitemRepo := repository.NewNftItem(q)
	actRepo := activityRepo.NewActivityRepo(q)
	httpReader := webResourceRepo.NewHttpReaderRepo(http.Client{}, 30*time.Second, nil)
	var ipfsReader domain.WebResourceReaderRepository
	if nodeApi := viper.GetString("webResource.ipfsNodeApi"); len(nodeApi) > 0 {
		ipfsReader = webResourceRepo.NewIpfsNodeApiReaderRepo(ipfsapi.NewShell(nodeApi), 30*time.Second)
	} else {
		ipfsReader = webResourceRepo.NewIpfsGatewayReaderRepo(http.Client{}, ipfsGateway, 30*time.Second)
	}
	dataUriReader := webResourceRepo.NewDataUriReaderRepo()

	// usecases
	tokenUC := tokenUseCase.NewTokenUseCase(&tokenUseCase.TokenUseCaseCfg{
		NftitemRepo: nftitemRepo,
	})
	activityUC := activityUseCase.NewActivityUseCase(&activityUseCase.ActivityUseCaseCfg{
		ActivityRepo: actRepo,
	})
	webResourceUC := webResourceUseCase.NewWebResourceUseCase(&webResourceUseCase.WebResourceUseCaseCfg{
		HttpReader:    httpReader,
		IpfsReader:    ipfsReader,
		DataUriReader: dataUriReader,
	})
	marketplaceEventUC := marketplaceUseCase.NewMarketplaceEventUseCase(&marketplaceUseCase.MarketplaceEventUseCaseCfg{
		NftitemRepo:         nftitemRepo,
		ActivityRepo:        actRepo,
		WebResource:         webResourceUC,
		MarketplaceContract: serviceContract.NewMarketplace(chainService),
	})

	// chain-event pipeline
	handler := tracker.NewMarketplaceEventHandler(&tracker.MarketplaceEventHandlerCfg{
		ChainId:            chainId,
		MarketplaceEventUC: marketplaceEventUC,
	})
	watcher := tracker.NewWatcher(&tracker.WatcherCfg{
		Client:          throttledClient,
		ContractAddress: common.HexToAddress(marketplaceContract),
		StartBlock:      startBlock,
		PollInterval:    pollInterval,
		Handler:         handler,
	})

	// external collections. The provider refuses every request without an
	// api key, so the whole subsystem is skipped instead of failing later.
	var indexer *extindexer.Indexer
	var priceRefresher *extindexer.PriceRefresher
	if err := moralisCfg.Validate(); err != nil {
		ctx.WithField("err", err).Error("external indexing disabled")
	} else {
		var targets []extindexer.Target
		if err := viper.UnmarshalKey("externalIndexer.targets", &targets); err != nil {
			ctx.WithField("err", err).Panic("invalid external targets")
		}
		moralisClient := moralis.NewClient(moralisCfg)
		indexer = extindexer.NewIndexer(&extindexer.IndexerCfg{
			Moralis:     moralisClient,
			NftitemRepo: nftitemRepo,
			Targets:     targets,
			PageDelay:   indexPageDelay,
		})
		priceRefresher = extindexer.NewPriceRefresher(&extindexer.PriceRefresherCfg{
			Moralis:     moralisClient,
			NftitemRepo: nftitemRepo,
			Interval:    priceInterval,
		})
	}

	startEchoServer(ctx, tokenUC, activityUC, indexer, priceRefresher)

	ctx.Info("starting workers")
	watcher.Start(ctx)
	if priceRefresher != nil {
		priceRefresher.Start(ctx)
	}

	if indexer != nil && viper.GetBool("externalIndexer.runOnStart") {
		go func() {
			if err := indexer.IndexAll(ctx); err != nil {
				ctx.WithField("err", err).Error("indexer.IndexAll failed")
			}
		}()
	}

	watcher.Wait()
	if priceRefresher != nil {
		priceRefresher.Stop()
	}
}

func startEchoServer(
	ctx bCtx.Ctx,
	tokenUC nftitem.UseCase,
	activityUC activity.UseCase,
	indexer *extindexer.Indexer,
	priceRefresher *extindexer.PriceRefresher,
) {
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.GzipWithConfig(echoMiddleware.GzipConfig{}))
	e.Use(echoMiddleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())

	e.GET("/healthz", func(c echo.Context) error {
		return delivery.MakeJsonResp(c, http.StatusOK, "ok")
	})
	e.POST("/admin/index-external", func(c echo.Context) error {
		if indexer == nil {
			return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, domain.ErrMissingApiKey.Error())
		}
		go func() {
			if err := indexer.IndexAll(ctx); err != nil {
				ctx.WithField("err", err).Error("indexer.IndexAll failed")
			}
		}()
		return delivery.MakeJsonResp(c, http.StatusAccepted, "started")
	})
	e.POST("/admin/refresh-prices", func(c echo.Context) error {
		if priceRefresher == nil {
			return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, domain.ErrMissingApiKey.Error())
		}
		if err := priceRefresher.RunOnce(c.Get("ctx").(bCtx.Ctx)); err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
		return delivery.MakeJsonResp(c, http.StatusOK, "done")
	})

	tokenHttp.New(e, tokenUC, activityUC)

	address := viper.GetString("server.address")
	ctx.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			ctx.Error("shutting down the server")
		}
	}()
}

func initMongo() query.Mongo {
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	return query.New(mongoClient, checkIndex)
}
