package main

import (
	"crypto/tls"
	"fmt"

	"github.com/logistics-id/mongorepo/ds/mongo"
	"github.com/spf13/cobra"
)

func newResolveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [connection-string]",
		Short: "Show the provider, database and client settings a connection string resolves to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := o.descriptor(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "provider: %s\n", d.Provider)
			fmt.Fprintf(out, "database: %s\n", d.Database)
			fmt.Fprintf(out, "settings: %s\n", d.Redacted())
			fmt.Fprintf(out, "tls:      %s\n", tlsLabel(d))
			return nil
		},
	}
}

func tlsLabel(d *mongo.Descriptor) string {
	switch d.MinTLSVersion {
	case 0:
		return "driver default"
	case tls.VersionTLS12:
		return ">= 1.2"
	case tls.VersionTLS13:
		return ">= 1.3"
	}
	return fmt.Sprintf(">= 0x%04x", d.MinTLSVersion)
}
