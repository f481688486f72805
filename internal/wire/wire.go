package wire

import (
	"Showcase/internal/api"
	"Showcase/internal/api/config"
	"Showcase/internal/api/handler"
	"Showcase/internal/api/middleware"
	"Showcase/internal/job"
	"Showcase/internal/pkg/cron"
	"Showcase/internal/pkg/es"
	"Showcase/internal/pkg/kafka"
	"Showcase/internal/pkg/minio"
	"Showcase/internal/pkg/mongo"
	"Showcase/internal/pkg/security"
	"Showcase/internal/pkg/worker"
	"Showcase/internal/repository"
	"Showcase/internal/service"
	"context"
	"io"
	log "log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	mongodb "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const (
	DriverKafka = "kafka"
	DriverHTTP  = "http"
)

// Infra 可选的外部依赖，为 nil 时对应能力降级
type Infra struct {
	Mongo   *mongodb.Database
	Elastic *elasticsearch.TypedClient
	Storage *minio.Storage
}

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager // 未启用结果消费时为 nil
	CronMgr      *cron.Manager
	closers      []io.Closer
}

// Close 释放生产者等资源
func (a *ApplicationContainer) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Error("failed to close component", "err", err)
		}
	}
}

func BuildApplication(ctx context.Context, db *gorm.DB, infra Infra, cfg *config.Config) (*ApplicationContainer, error) {
	app := &ApplicationContainer{DB: db}

	transactor := repository.NewTransactor(db)
	videoRepo := repository.NewVideoRepo(db)
	actionRepo := repository.NewActionRepo(db)
	feedRepo := repository.NewFeedRepo(db)
	businessRepo := repository.NewBusinessRepo(db)
	favoriteRepo := repository.NewFavoriteRepo(db)

	var index service.VideoIndex
	if infra.Elastic != nil {
		esRepo := es.NewVideoRepo(infra.Elastic, cfg.Elastic.VideoIndex)
		if err := esRepo.EnsureIndex(ctx); err != nil {
			return nil, err
		}
		index = esRepo
	}

	var notificationRepo mongo.NotificationRepo
	if infra.Mongo != nil {
		notificationRepo = mongo.NewNotificationRepo(infra.Mongo)
	}

	var storage service.ObjectStorage
	if infra.Storage != nil {
		storage = infra.Storage
	}

	queue, err := buildQueue(cfg)
	if err != nil {
		return nil, err
	}
	if closer, ok := queue.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}

	ledger := service.NewCounterLedger(repository.NewCounterRepo(db))
	notificationService := service.NewNotificationService(notificationRepo)
	videoService := service.NewVideoService(videoRepo, businessRepo, queue, index, ledger, notificationService, cfg.Worker)
	actionService := service.NewVideoActionService(transactor, videoRepo, actionRepo, favoriteRepo, ledger, notificationService)
	feedService := service.NewFeedService(feedRepo, videoRepo, businessRepo, index, cfg.Feed)
	trendingService := service.NewTrendingService(feedRepo, cfg.Trending, cfg.Feed)
	favoriteService := service.NewFavoriteService(favoriteRepo, videoRepo, businessRepo, notificationService)
	mediaService := service.NewMediaService(storage)

	verifier := security.NewTokenVerifier(cfg.JWT)
	guards := middleware.Guards{
		Auth:         middleware.AuthMiddleware(verifier),
		AuthOptional: middleware.AuthOptionalMiddleware(verifier),
		Worker:       middleware.WorkerTokenMiddleware(cfg.Worker.CallbackToken),
	}
	app.Router = api.SetupRouter(api.RouterOptions{
		Guards:         guards,
		AuditLimit:     cfg.Log.BodyPreviewLimit,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	},
		handler.NewVideoHandler(videoService, feedService, trendingService, actionService),
		handler.NewCommentHandler(actionService),
		handler.NewBusinessHandler(videoService, feedService),
		handler.NewInternalHandler(videoService),
		handler.NewMediaHandler(mediaService),
		handler.NewFavoriteHandler(favoriteService),
		handler.NewNotificationHandler(notificationService),
	)

	app.CronMgr = cron.NewCronManager(cfg.Cron,
		job.NewStaleProcessingJob(videoService),
		job.NewCounterSyncJob(videoService),
	)

	if cfg.Kafka.TranscodeResultEnable {
		app.KafkaManager, err = kafka.NewConsumerManager(cfg.Kafka, kafka.NewTranscodeResultHandler(videoService))
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	return app, nil
}

// buildQueue 按 worker.driver 选择投递方式
func buildQueue(cfg *config.Config) (service.TranscodeQueue, error) {
	switch cfg.Worker.Driver {
	case DriverHTTP:
		return worker.NewHTTPQueue(cfg.Worker.Endpoint, cfg.Worker.CallbackToken), nil
	default:
		return kafka.NewTranscodeProducer(cfg.Kafka)
	}
}
