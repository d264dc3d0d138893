package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"orderdesk/cmd/desk"
	"orderdesk/cmd/mockbroker"
	"orderdesk/cmd/ticket"
	"orderdesk/src/auth"
	"orderdesk/src/connectors"
	"orderdesk/src/database"
	"orderdesk/src/pipeline"
	"orderdesk/src/repository"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var Version string

func main() {
	SetupLogger()

	app := cli.NewApp()
	app.Name = "Order Desk CMD"
	app.Usage = "Draft, validate and submit orders to the trading backend"
	app.Version = Version

	app.Commands = []cli.Command{
		serveCMD,
		mockBrokerCMD,
		submitCMD,
		historyCMD,
		hashTokenCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func SetupLogger() {
	config := database.GetConfig()

	level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if strings.EqualFold(config.LogFormat, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

var (
	serveCMD = cli.Command{
		Name:        "serve",
		Usage:       "run the desk API",
		Action:      serveAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Serve the order desk HTTP API`,
	}
	mockBrokerCMD = cli.Command{
		Name:        "mockbroker",
		Usage:       "run a local trading backend",
		Action:      mockBrokerAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run an in-memory broker with requestId deduplication`,
	}
	submitCMD = cli.Command{
		Name:      "submit",
		Usage:     "draft and submit one order",
		Action:    submitAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "symbol", Usage: "ticker symbol"},
			cli.StringFlag{Name: "side", Value: "buy", Usage: "buy or sell"},
			cli.Int64Flag{Name: "qty", Value: 1, Usage: "quantity (contracts for options)"},
			cli.StringFlag{Name: "type", Value: "market", Usage: "market or limit"},
			cli.Float64Flag{Name: "limit", Usage: "limit price"},
			cli.StringFlag{Name: "class", Value: "simple", Usage: "simple, bracket or oco"},
			cli.Float64Flag{Name: "take-profit", Usage: "take-profit limit price"},
			cli.Float64Flag{Name: "stop", Usage: "stop-loss stop price"},
			cli.Float64Flag{Name: "stop-limit", Usage: "stop-loss limit price"},
			cli.Float64Flag{Name: "trail-price", Usage: "trailing amount"},
			cli.Float64Flag{Name: "trail-percent", Usage: "trailing percent"},
			cli.Float64Flag{Name: "estimate", Usage: "estimated fill price for the preview"},
			cli.StringFlag{Name: "option-type", Usage: "call or put"},
			cli.Float64Flag{Name: "strike", Usage: "option strike"},
			cli.StringFlag{Name: "expiration", Usage: "option expiration (YYYY-MM-DD)"},
			cli.BoolFlag{Name: "dry-run", Usage: "ask the backend to simulate the execution"},
			cli.BoolFlag{Name: "yes, y", Usage: "skip the confirmation prompt"},
		},
		Description: `Build an order from flags, preview it and send it after confirmation`,
	}
	historyCMD = cli.Command{
		Name:      "history",
		Usage:     "list recorded executions",
		Action:    historyAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "limit", Value: repository.DefaultHistoryLimit},
		},
		Description: `Print the local order history, newest first`,
	}
	hashTokenCMD = cli.Command{
		Name:        "hash-token",
		Usage:       "hash a bearer token for DESK_TOKEN_HASH or MOCK_BROKER_TOKEN_HASH",
		Action:      hashTokenAction,
		ArgsUsage:   "<token>",
		Flags:       []cli.Flag{},
		Description: `Print the bcrypt hash of a bearer token`,
	}
)

func serveAction(_ *cli.Context) error {
	logrus.Info("Starting desk CMD")

	d := &desk.Desk{}
	if err := d.Start(); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}
	return nil
}

func mockBrokerAction(_ *cli.Context) error {
	logrus.Info("Starting mockbroker CMD")

	b := &mockbroker.MockBroker{}
	if err := b.Start(); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}
	return nil
}

func submitAction(c *cli.Context) error {
	log := logrus.WithField("cmd", "submit")

	db, err := database.Open(database.GetConfig())
	if err != nil {
		log.WithError(err).Error("Failed to open history database")
		return err
	}

	client := connectors.NewClient(connectors.GetConfig())
	p := pipeline.New(client,
		pipeline.WithHistory(repository.NewHistoryRepository(db)),
		pipeline.WithDryRun(c.Bool("dry-run") || pipeline.GetConfig().DryRun),
	)

	t := &ticket.Ticket{Pipeline: p, In: os.Stdin, Out: os.Stdout}
	outcome, err := t.Run(context.Background(), ticket.Options{
		Symbol:         c.String("symbol"),
		Side:           c.String("side"),
		Quantity:       c.Int64("qty"),
		OrderType:      c.String("type"),
		LimitPrice:     c.Float64("limit"),
		OrderClass:     c.String("class"),
		TakeProfit:     c.Float64("take-profit"),
		StopPrice:      c.Float64("stop"),
		StopLimit:      c.Float64("stop-limit"),
		TrailPrice:     c.Float64("trail-price"),
		TrailPercent:   c.Float64("trail-percent"),
		EstimatedPrice: c.Float64("estimate"),
		OptionType:     c.String("option-type"),
		Strike:         c.Float64("strike"),
		Expiration:     c.String("expiration"),
		AssumeYes:      c.Bool("yes"),
	})
	if err != nil {
		return err
	}
	if outcome.State == pipeline.StateNetworkError {
		return fmt.Errorf("order not confirmed by backend: %s", outcome.Message)
	}
	return nil
}

func historyAction(c *cli.Context) error {
	db, err := database.Open(database.GetConfig())
	if err != nil {
		logrus.WithError(err).Error("Failed to open history database")
		return err
	}

	entries, err := repository.NewHistoryRepository(db).List(context.Background(), c.Int("limit"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tREQUEST\tSYMBOL\tSIDE\tQTY\tTYPE\tLIMIT\tSTATUS\tDRY RUN")
	for _, e := range entries {
		limit := "-"
		if e.LimitPrice != nil {
			limit = fmt.Sprintf("%.2f", *e.LimitPrice)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%t\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.RequestID, e.Symbol, e.Side, e.Qty, e.Type, limit, e.Status, e.DryRun)
	}
	return w.Flush()
}

func hashTokenAction(c *cli.Context) error {
	token := strings.TrimSpace(c.Args().First())
	if token == "" {
		return fmt.Errorf("usage: hash-token <token>")
	}
	hash, err := auth.HashToken(token)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
