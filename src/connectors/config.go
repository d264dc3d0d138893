package connectors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BaseURL     string        `envconfig:"BACKEND_URL" default:"http://localhost:8088"`
	Token       string        `envconfig:"BACKEND_TOKEN"`
	Timeout     time.Duration `envconfig:"BACKEND_TIMEOUT" default:"15s"`
	ReadRetries int           `envconfig:"BACKEND_READ_RETRIES" default:"3"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
