package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/collect-gateway/pkg/callbackclient"
	"github.com/Behyna/collect-gateway/pkg/mongodb"
	"github.com/Behyna/collect-gateway/pkg/mq"
	"github.com/Behyna/collect-gateway/pkg/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMySQL   = "mysql"
	DriverMongoDB = "mongodb"
)

type Config struct {
	API      API       `mapstructure:"api"`
	Storage  Storage   `mapstructure:"storage"`
	RabbitMQ mq.Config `mapstructure:"rabbitmq"`
	Callback Callback  `mapstructure:"callback"`
	Metrics  Metrics   `mapstructure:"metrics"`
}

type API struct {
	Port        string `mapstructure:"port"`
	ServiceName string `mapstructure:"service_name"`
}

type Storage struct {
	Driver  string         `mapstructure:"driver"`
	MySQL   mysql.Config   `mapstructure:"mysql"`
	MongoDB mongodb.Config `mapstructure:"mongodb"`
}

type Callback struct {
	Client          callbackclient.Config `mapstructure:"client"`
	Delay           time.Duration         `mapstructure:"delay"`
	DefaultURL      string                `mapstructure:"default_url"`
	PublishInterval time.Duration         `mapstructure:"publish_interval"`
	PublishBatch    int                   `mapstructure:"publish_batch"`
}

type Metrics struct {
	CollectInterval time.Duration `mapstructure:"collect_interval"`
	// Listen addresses of the workers' /metrics endpoints. Empty disables one.
	PublisherAddr string `mapstructure:"publisher_addr"`
	CallbackAddr  string `mapstructure:"callback_addr"`
}

func Load() (cfg *Config, err error) {
	// .env is optional; real environment variables always win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", ":8080")
	v.SetDefault("api.service_name", "collect-gateway")
	v.SetDefault("storage.driver", DriverMySQL)
	v.SetDefault("storage.mongodb.timeout", 10*time.Second)
	v.SetDefault("rabbitmq.prefetch", 64)
	v.SetDefault("callback.delay", 15*time.Second)
	v.SetDefault("callback.client.timeout", 10*time.Second)
	v.SetDefault("callback.publish_interval", time.Second)
	v.SetDefault("callback.publish_batch", 100)
	v.SetDefault("metrics.collect_interval", 15*time.Second)
	v.SetDefault("metrics.publisher_addr", ":9101")
	v.SetDefault("metrics.callback_addr", ":9102")
}
