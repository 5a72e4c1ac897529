package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	lifeassist "github.com/MahidharReddy003/aislingshot-sub000"
	"github.com/MahidharReddy003/aislingshot-sub000/internal/cli"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes every flow as an MCP tool whose input schema is the flow's
input schema, so agents get the same validation as HTTP clients.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rt, err := cli.BuildApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		srv := mcp.NewServer(rt.Invoker(), rt.Flows(),
			mcp.WithLogger(logger),
			mcp.WithVersion(lifeassist.Version),
		)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting LifeAssist MCP Server (Stdio)", "tools", len(srv.Tools()))
			return srv.ServeStdio()
		case "sse":
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully", "signal", fmt.Sprint(ctx.Signal()))
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
