package main

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/account-ledger/pkg/config"
	"github.com/chris/account-ledger/pkg/export"
	"github.com/chris/account-ledger/pkg/logger"
	"github.com/chris/account-ledger/pkg/notify"
	"github.com/chris/account-ledger/pkg/session"
	"github.com/chris/account-ledger/pkg/storage"
	dydbstore "github.com/chris/account-ledger/pkg/storage/dynamodb"
	"github.com/chris/account-ledger/pkg/storage/file"
	redisstore "github.com/chris/account-ledger/pkg/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	ctx := logger.WithContext(context.Background(), log)

	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		fmt.Printf("Error: no se pudo crear la carpeta '%s'. Finalizando.\n", cfg.DataDir())
		log.Fatal().Err(err).Str("dir", cfg.DataDir()).Msg("failed to create data directory")
	}

	var replicas []storage.Saver
	var notifier notify.Notifier = notify.NoOp{}

	if cfg.CacheEnabled() {
		client := redisstore.NewClient(cfg.RedisAddr, cfg.RedisPass)
		defer client.Close()
		replicas = append(replicas, redisstore.New(client, cfg.AccountKey))
		log.Info().Str("addr", cfg.RedisAddr).Msg("mirroring account to Redis")
	}

	if cfg.MirrorEnabled() || cfg.NotificationsEnabled() {
		// AWS Session
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to load SDK config")
		}

		if cfg.MirrorEnabled() {
			replicas = append(replicas, dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.LedgerTable, cfg.AccountKey))
			log.Info().Str("table", cfg.LedgerTable).Msg("mirroring account to DynamoDB")
		}
		if cfg.NotificationsEnabled() {
			notifier = notify.NewSQSNotifier(sqs.NewFromConfig(awsCfg), cfg.QueueURL)
			log.Info().Str("queue_url", cfg.QueueURL).Msg("publishing movements to SQS")
		}
	}

	var store storage.Store = file.New(cfg.DataFile)
	if len(replicas) > 0 {
		store = storage.NewMirror(store, replicas...)
	}

	s := session.New(os.Stdin, os.Stdout, session.Deps{
		Store:    store,
		Exporter: export.NewExporter(cfg.ExportDir),
		Notifier: notifier,
		Location: cfg.DataFile,
	})
	if err := s.Run(ctx); err != nil {
		log.Error().Err(err).Msg("session finished with errors")
		os.Exit(1)
	}
}
