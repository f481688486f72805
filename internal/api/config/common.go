package config

import "time"

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Elastic  ElasticConfig  `mapstructure:"elastic"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	Log      LogConfig      `mapstructure:"log"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Trending TrendingConfig `mapstructure:"trending"`
	Cron     CronConfig     `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	Bucket           string `mapstructure:"bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
}

// ElasticConfig Elastic配置，Address 为空时搜索走数据库
type ElasticConfig struct {
	Address    string `mapstructure:"address"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	VideoIndex string `mapstructure:"video_index"`
}

type KafkaConfig struct {
	Brokers               []string       `mapstructure:"brokers"`
	Sasl                  SaslConfig     `mapstructure:"sasl"`
	Consumer              ConsumerConfig `mapstructure:"consumer"`
	TranscodeTopic        string         `mapstructure:"transcode_topic"`
	TranscodeResultTopic  string         `mapstructure:"transcode_result_topic"`
	TranscodeResultGroup  string         `mapstructure:"transcode_result_group"`
	TranscodeResultEnable bool           `mapstructure:"transcode_result_enable"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// WorkerConfig 转码 Worker 配置
type WorkerConfig struct {
	Driver         string        `mapstructure:"driver"` // kafka | http
	Endpoint       string        `mapstructure:"endpoint"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
	CallbackToken  string        `mapstructure:"callback_token"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// LogConfig 慢查询阈值
type LogConfig struct {
	Level            string        `mapstructure:"level"`
	SlowSQL          time.Duration `mapstructure:"slow_sql"`
	SlowRedis        time.Duration `mapstructure:"slow_redis"`
	SlowMongo        time.Duration `mapstructure:"slow_mongo"`
	SlowElastic      time.Duration `mapstructure:"slow_elastic"`
	BodyPreviewLimit int           `mapstructure:"body_preview_limit"`
}

type FeedConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

type TrendingConfig struct {
	Window   time.Duration `mapstructure:"window"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// CronConfig 定时任务表达式（带秒）
type CronConfig struct {
	StaleProcessing string `mapstructure:"stale_processing"`
	CounterSync     string `mapstructure:"counter_sync"`
}
