package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/sync/errgroup"
)

// DynamoConfig holds connection settings for DynamoDB
type DynamoConfig struct {
	Region    string
	Endpoint  string // Optional: DynamoDB Local, LocalStack
	AccessKey string
	SecretKey string
}

// NewDynamo builds a DynamoDB client. Static credentials are used when both keys are set,
// otherwise the default AWS credential chain applies.
func NewDynamo(ctx context.Context, cfg DynamoConfig) (*dynamodb.Client, error) {
	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	slog.Info("dynamodb client ready", "region", cfg.Region, "endpoint", cfg.Endpoint)
	return client, nil
}

// TableAPI is the subset of *dynamodb.Client needed to bootstrap tables.
type TableAPI interface {
	dynamodb.DescribeTableAPIClient
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureTables creates every missing table and waits for it to become active.
// Existing tables are left untouched.
func EnsureTables(ctx context.Context, client TableAPI, schemas ...*dynamodb.CreateTableInput) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, schema := range schemas {
		g.Go(func() error {
			return ensureTable(ctx, client, schema)
		})
	}
	return g.Wait()
}

func ensureTable(ctx context.Context, client TableAPI, schema *dynamodb.CreateTableInput) error {
	name := aws.ToString(schema.TableName)

	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: schema.TableName})
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to describe table %q: %w", name, err)
	}

	_, err = client.CreateTable(ctx, schema)
	if err != nil {
		return fmt.Errorf("table %q does not exist and could not be created: %w", name, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	err = waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: schema.TableName}, 2*time.Minute)
	if err != nil {
		return fmt.Errorf("table %q not active: %w", name, err)
	}

	slog.Info("created dynamodb table", "table", name)
	return nil
}
