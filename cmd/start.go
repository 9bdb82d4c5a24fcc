package cmd

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"

	"github.com/fatcatfablab/hwbot/config"
	"github.com/fatcatfablab/hwbot/poller"
	"github.com/fatcatfablab/hwbot/practicum"
	"github.com/fatcatfablab/hwbot/sender"
	"github.com/fatcatfablab/hwbot/types"
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start polling",
	Run:   start,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func start(_ *cobra.Command, _ []string) {
	if err := cfg.Check(); err != nil {
		log.Fatalf("CRITICAL: %s", err)
	}

	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		log.Fatalf("failed to parse %s: %s", cfg.Endpoint, err)
	}

	s := initSender(&http.Client{Timeout: cfg.Timeout})
	p := poller.New(cfg, practicum.New(endpoint, cfg.APIToken, cfg.Timeout), s)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		log.Fatalf("CRITICAL: %s", err)
	}
}

func initSender(hc *http.Client) types.Sender {
	if cfg.Silent {
		return sender.LogSender{Destination: cfg.ChatID}
	}

	switch cfg.Notifier {
	case config.NotifierSlack:
		return sender.NewSlack(cfg.ChatID, cfg.BotToken, slack.OptionHTTPClient(hc))
	default:
		s, err := sender.NewTelegram(cfg.BotToken, cfg.ChatID, hc)
		if err != nil {
			log.Fatalf("error initializing telegram sender: %s", err)
		}
		return s
	}
}
