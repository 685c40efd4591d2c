package main

import (
	"fmt"

	"github.com/logistics-id/mongorepo/ds/mongo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPingCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping [connection-string]",
		Short: "Connect to the resolved database and ping the server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := o.descriptor(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, db, err := mongo.Connect(ctx, d,
				mongo.WithLogger(o.logger),
				mongo.WithTimeout(o.config.CtxTimeout),
				mongo.WithPing(true),
			)
			if err != nil {
				return err
			}
			defer func() {
				if err := client.Disconnect(ctx); err != nil {
					o.logger.Warn("MGO/CONN CLOSE FAILED", zap.Error(err))
				}
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%s)\n", db.Name(), d.Provider)
			return nil
		},
	}
}
