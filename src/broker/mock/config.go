package mock

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port          string        `envconfig:"MOCK_BROKER_PORT" default:"8088"`
	TokenHash     string        `envconfig:"MOCK_BROKER_TOKEN_HASH"` // bcrypt hash of the accepted bearer token, empty disables auth
	DedupeTTL     time.Duration `envconfig:"MOCK_BROKER_DEDUPE_TTL" default:"24h"`
	RejectSymbols []string      `envconfig:"MOCK_BROKER_REJECT_SYMBOLS"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
