package cmd

import (
	"fmt"

	"github.com/kawafuchieirin/team-workspace/internal/config"
	"github.com/kawafuchieirin/team-workspace/internal/db"
	"github.com/kawafuchieirin/team-workspace/internal/logger"
	"github.com/kawafuchieirin/team-workspace/internal/repository"
	"github.com/spf13/cobra"
)

func TablesCmd() *cobra.Command {
	var endpoint string

	c := &cobra.Command{
		Use:   "tables",
		Short: "Create the DynamoDB goal and record tables if they are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(true, cfg.AppEnv, "")

			if cmd.Flags().Changed("endpoint") {
				cfg.DynamoEndpoint = endpoint
			}

			client, err := db.NewDynamo(cmd.Context(), db.DynamoConfig{
				Region:    cfg.DynamoRegion,
				Endpoint:  cfg.DynamoEndpoint,
				AccessKey: cfg.AWSAccessKeyID,
				SecretKey: cfg.AWSSecretAccessKey,
			})
			if err != nil {
				return err
			}

			err = db.EnsureTables(cmd.Context(), client,
				repository.GoalTableSchema(cfg.GoalsTableName),
				repository.RecordTableSchema(cfg.RecordsTableName),
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tables ready: %s, %s\n", cfg.GoalsTableName, cfg.RecordsTableName)
			return nil
		},
	}

	c.Flags().StringVar(&endpoint, "endpoint", "", "DynamoDB endpoint override (empty for AWS)")
	return c
}
