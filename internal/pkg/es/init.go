package es

import (
	"Showcase/internal/api/config"
	"Showcase/internal/pkg/logger"
	"context"
	log "log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

var Client *elasticsearch.TypedClient

var VideoIndex string

const (
	NotFoundCode = 404
	ConflictCode = 409
)

// InitClient 初始化 Elasticsearch 客户端，未配置地址时返回 nil 客户端
func InitClient(elasticCfg config.ElasticConfig) (*elasticsearch.TypedClient, error) {
	if elasticCfg.Address == "" {
		log.Info("Elasticsearch disabled, search falls back to database")
		return nil, nil
	}
	VideoIndex = elasticCfg.VideoIndex

	cfg := elasticsearch.Config{
		Addresses: []string{elasticCfg.Address},
		Username:  elasticCfg.Username,
		Password:  elasticCfg.Password,
		Transport: &logger.ESTransport{
			Transport: http.DefaultTransport,
		},
	}

	client, err := elasticsearch.NewTypedClient(cfg)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return nil, err
	}

	info, err := client.Info().Do(context.Background())
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return nil, err
	}

	Client = client
	log.Info("Connected to Elasticsearch", "version", info.Version.Int)
	return client, nil
}
