package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"moneybook/internal/amqp"
	applog "moneybook/internal/log"
	"moneybook/internal/report"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print ledger events published by other moneybook processes",
		Long: `Watch consumes the AMQP queue configured by AMQP_URL, AMQP_EXCHANGE and
AMQP_QUEUE and prints one line per ledger event until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cfg.AMQPURL == "" {
				return errors.New("watch needs AMQP_URL to be set")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.AMQPPublishTimeout, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			err = client.ConsumeEvents(ctx, func(event *amqp.LedgerEvent) error {
				return writeEvent(out, event)
			})
			if errors.Is(err, context.Canceled) {
				logger.Info("Stopped watching", applog.FieldOperation, applog.OpShutdown)
				return nil
			}
			return err
		},
	}
}

func writeEvent(w io.Writer, event *amqp.LedgerEvent) error {
	ts := event.Timestamp.Format("2006-01-02 15:04:05")
	var err error
	switch {
	case event.Event == amqp.EventTransactionAdded && event.Transaction != nil:
		_, err = fmt.Fprintf(w, "%s %s: %s (%d total)\n", ts, event.Event, report.FormatTransaction(*event.Transaction), event.Count)
	case event.Event == amqp.EventLedgerSaved:
		_, err = fmt.Fprintf(w, "%s %s: %d transactions to %s\n", ts, event.Event, event.Count, event.Location)
	default:
		_, err = fmt.Fprintf(w, "%s %s\n", ts, event.Event)
	}
	return err
}
