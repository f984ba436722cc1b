package main

import (
	"fmt"

	"github.com/jonathan/career-guide/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes the accounts, profile, resume, counselor and preference endpoints.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := o.open(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				app.cfg.Port = port
			}

			cfg := server.Config{App: app.cfg, Store: app.store}
			if app.cfg.APIKey != "" {
				client, err := app.newLLM(cmd.Context(), app.cfg)
				if err != nil {
					app.Close()
					return fmt.Errorf("failed to create LLM client: %w", err)
				}
				defer client.Close()
				cfg.LLM = client
			}

			srv, err := server.New(cfg)
			if err != nil {
				app.Close()
				return fmt.Errorf("failed to create server: %w", err)
			}

			// Start closes the store on shutdown
			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (default from config)")
	return cmd
}
