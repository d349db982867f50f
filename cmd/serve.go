package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pixshield/internal/apihandlers"
)

var (
	serveAddr string // Listen address
	servePort string // Listen port
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the PIX API server",
	Long: `Starts an HTTP server exposing key classification, amount formatting,
PIX sending and the demo account via a JSON API under /api/v1.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		cfg := appInstance.Config
		if cfg.Server.GinMode != "" {
			gin.SetMode(cfg.Server.GinMode)
		}
		addr := firstSet(serveAddr, cfg.Server.Addr)
		port := firstSet(servePort, cfg.Server.Port)

		router := apihandlers.NewRouter(appInstance)

		listenAddr := fmt.Sprintf("%s:%s", addr, port)
		log.WithField("backend", appInstance.Backend.BaseURL()).Infof("Starting pixshield API server on http://%s", listenAddr)

		// router.Run blocks unless an error occurs
		if err := router.Run(listenAddr); err != nil {
			log.Errorf("Failed to run API server: %v", err)
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func firstSet(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default server.addr)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default server.port)")
}
