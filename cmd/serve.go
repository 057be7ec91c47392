package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tablescout/tablescout/internal/finder"
	"github.com/tablescout/tablescout/internal/geoip"
	"github.com/tablescout/tablescout/internal/places"
	"github.com/tablescout/tablescout/internal/reviews"
	"github.com/tablescout/tablescout/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the restaurant finder over HTTP",
	Long: `serve starts an HTTP server exposing the search pipeline: an embedded
form page on /, a JSON search endpoint on /api/search, and caller location
detection on /api/location. Flag defaults become the per-request defaults.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		log := newLogger(cfg)
		resolver := geoip.NewResolver(log)
		f := finder.New(cfg,
			places.NewClient(cfg.GoogleAPIKey, log),
			reviews.NewOpenAISummarizer(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.SummaryModel, log),
			log)

		srv := server.New(cfg, f, resolver, log)
		if err := srv.ListenAndServe(); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	},
}

func init() {
	serveCmd.Flags().String("listen", ":3003", "Address to listen on")
	serveCmd.Flags().StringSlice("allowed-origins", nil, "CORS allowed origins")

	viper.BindPFlag("listen_addr", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("allowed_origins", serveCmd.Flags().Lookup("allowed-origins"))

	rootCmd.AddCommand(serveCmd)
}
