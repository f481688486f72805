package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件和环境变量加载配置并填充到 Cfg
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("SHOWCASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg
	return nil
}

// Default 返回只包含默认值的配置，测试和工具使用
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("mongo.database", "showcase")

	v.SetDefault("elastic.video_index", "showcase-videos")

	v.SetDefault("kafka.transcode_topic", "video-transcode")
	v.SetDefault("kafka.transcode_result_topic", "video-transcode-result")
	v.SetDefault("kafka.transcode_result_group", "showcase-transcode-result")
	v.SetDefault("kafka.consumer.session_timeout", 30)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 10)

	v.SetDefault("worker.driver", "kafka")
	v.SetDefault("worker.max_attempts", 3)
	v.SetDefault("worker.attempt_timeout", 2*time.Hour)

	v.SetDefault("jwt.issuer", "Showcase")

	v.SetDefault("logstash.index", "logstash-showcase")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.slow_sql", 200*time.Millisecond)
	v.SetDefault("log.slow_redis", 100*time.Millisecond)
	v.SetDefault("log.slow_mongo", 200*time.Millisecond)
	v.SetDefault("log.slow_elastic", 500*time.Millisecond)
	v.SetDefault("log.body_preview_limit", 1000)

	v.SetDefault("feed.default_limit", 20)
	v.SetDefault("feed.max_limit", 50)

	v.SetDefault("trending.window", 7*24*time.Hour)
	v.SetDefault("trending.cache_ttl", 30*time.Second)

	v.SetDefault("cron.stale_processing", "0 */10 * * * *")
	v.SetDefault("cron.counter_sync", "0 */5 * * * *")
}
