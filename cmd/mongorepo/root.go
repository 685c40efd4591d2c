package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/logistics-id/mongorepo/common"
	"github.com/logistics-id/mongorepo/ds/mongo"
	"github.com/logistics-id/mongorepo/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	envFile  string
	provider string
	dev      bool
	level    string

	config *mongo.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "mongorepo",
		Short:         "Resolve and check MongoDB repository connection strings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&o.envFile, "env-file", ".env", "dotenv file loaded before reading MONGODB_* variables")
	cmd.PersistentFlags().StringVar(&o.provider, "provider", "", "connection string format: auto, standard or cosmos (default from MONGODB_PROVIDER)")
	cmd.PersistentFlags().BoolVar(&o.dev, "dev", false, "human readable console logs")
	cmd.PersistentFlags().StringVar(&o.level, "log-level", "", "minimum log level")

	cmd.AddCommand(newResolveCmd(o), newPingCmd(o))

	return cmd
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	if o.envFile != "" {
		if _, err := os.Stat(o.envFile); err == nil {
			if err := godotenv.Load(o.envFile); err != nil {
				return fmt.Errorf("load %s: %w", o.envFile, err)
			}
		}
	}

	cfg, err := mongo.LoadConfig()
	if err != nil {
		return err
	}
	if o.provider != "" {
		cfg.Provider = o.provider
	}
	o.config = cfg

	if o.logger, err = log.New(log.Config{Name: "mongorepo", IsDev: o.dev, Level: o.level}); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(common.WithRequestID(ctx, uuid.NewString()))

	return nil
}

// connString returns the positional argument or the configured datasource.
func (o *rootOptions) connString(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if o.config.Datasource == "" {
		return "", fmt.Errorf("%w: pass a connection string or set MONGODB_DATASOURCE", common.ErrInvalidConfig)
	}
	return o.config.Datasource, nil
}

func (o *rootOptions) descriptor(args []string) (*mongo.Descriptor, error) {
	raw, err := o.connString(args)
	if err != nil {
		return nil, err
	}
	p, err := mongo.ParseProvider(o.config.Provider)
	if err != nil {
		return nil, err
	}
	return mongo.ParseDescriptor(raw, p)
}
