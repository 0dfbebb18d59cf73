package main

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/account-ledger/pkg/logger"
	dydbstore "github.com/chris/account-ledger/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

// Reconciler checks the mirrored account.
type Reconciler interface {
	Reconcile(ctx context.Context) (dydbstore.Report, error)
}

// ErrBalanceMismatch is returned when the stored balance disagrees with the replayed movements.
var ErrBalanceMismatch = errors.New("stored balance does not match movement log")

var reconciler Reconciler

// JSON lines on stdout end up in CloudWatch.
var log = logger.NewWithWriter(os.Stdout)

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	log.Info().Msg("starting reconciliation of the mirrored account")

	report, err := reconciler.Reconcile(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to reconcile account")
		return err
	}

	event := log.Info()
	if !report.Match {
		event = log.Error()
	}
	event.Str("account_key", report.AccountKey).
		Str("account_id", report.AccountID).
		Int("movements", report.Movements).
		Str("stored", report.Stored.StringFixed(2)).
		Str("derived", report.Derived.StringFixed(2)).
		Bool("match", report.Match).
		Msg("reconciliation finished")

	if !report.Match {
		return ErrBalanceMismatch
	}
	return nil
}

func main() {
	// Load environment variables for local testing.
	godotenv.Load()

	log = log.Level(logger.ParseLevel(os.Getenv("LOG_LEVEL")))

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load SDK config")
	}

	ledgerTable := os.Getenv("DYNAMODB_LEDGER_TABLE_NAME")
	if ledgerTable == "" {
		log.Fatal().Msg("DYNAMODB_LEDGER_TABLE_NAME environment variable not set")
	}

	reconciler = dydbstore.New(dynamodb.NewFromConfig(cfg), ledgerTable, os.Getenv("BANK_ACCOUNT_KEY"))
	lambda.Start(HandleRequest)
}
