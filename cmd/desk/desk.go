package desk

import (
	"orderdesk/src/connectors"
	"orderdesk/src/database"
	"orderdesk/src/lookup"
	"orderdesk/src/pipeline"
	"orderdesk/src/repository"
	"orderdesk/src/server"
	"orderdesk/src/templates"

	"github.com/sirupsen/logrus"
)

type Desk struct{}

// Start opens the history store, connects to the trading backend and serves
// the desk API until interrupted.
func (t *Desk) Start() error {
	serverConfig := server.GetConfig()
	pipelineConfig := pipeline.GetConfig()

	db, err := database.Open(database.GetConfig())
	if err != nil {
		logrus.WithError(err).Error("Failed to open history database")
		return err
	}
	history := repository.NewHistoryRepository(db)

	client := connectors.NewClient(connectors.GetConfig())
	chain := lookup.NewChainLookup(client, lookup.GetConfig().Debounce)
	defer chain.Stop()

	tmpl := templates.NewService(client)
	defer tmpl.Wait()

	p := pipeline.New(client,
		pipeline.WithHistory(history),
		pipeline.WithDryRun(pipelineConfig.DryRun),
	)

	logrus.WithFields(map[string]interface{}{
		"backend": client.BaseURL(),
		"dry_run": pipelineConfig.DryRun,
	}).Info("Starting order desk")

	server.StartServer(serverConfig.Port, server.NewRouter(server.Desk{
		Pipeline:  p,
		History:   history,
		Templates: tmpl,
		Chain:     chain,
		TokenHash: serverConfig.TokenHash,
	}))
	return nil
}
