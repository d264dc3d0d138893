package mockbroker

import (
	"context"
	"time"

	"orderdesk/src/broker/mock"
	"orderdesk/src/server"

	"github.com/sirupsen/logrus"
)

const sweepInterval = time.Minute

type MockBroker struct{}

func (t *MockBroker) Start() error {
	config := mock.GetConfig()
	broker := mock.New(config)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker.StartSweeper(ctx, sweepInterval)

	logrus.WithFields(map[string]interface{}{
		"port":        config.Port,
		"dedupe_ttl":  config.DedupeTTL.String(),
		"auth":        config.TokenHash != "",
		"reject_syms": config.RejectSymbols,
	}).Info("Starting mock broker")

	server.StartServer(config.Port, broker.Routes())
	return nil
}
