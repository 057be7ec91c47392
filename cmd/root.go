package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tablescout/tablescout/internal/finder"
	"github.com/tablescout/tablescout/internal/geoip"
	"github.com/tablescout/tablescout/internal/models"
	"github.com/tablescout/tablescout/internal/places"
	"github.com/tablescout/tablescout/internal/reviews"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tablescout",
	Short: "Finds nearby restaurants that fit your budget and tastes",
	Long: `tablescout locates you by IP, queries the Places API for restaurants
around you, keeps at most three that fit your budget and food preferences,
and enriches each with a photo and an AI-generated review summary.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		log := newLogger(cfg)
		ctx := context.Background()

		fmt.Println("Detecting your current location...")
		resolver := geoip.NewResolver(log)
		loc, err := resolver.Resolve(ctx, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\U0001F4CD Searching near: %s\n", loc)

		f := finder.New(cfg,
			places.NewClient(cfg.GoogleAPIKey, log),
			reviews.NewOpenAISummarizer(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.SummaryModel, log),
			log)

		listings, err := f.FindNearby(ctx, *loc, finder.ParamsFromConfig(cfg), finder.NewBarProgress(os.Stderr))
		if err != nil {
			fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
			os.Exit(1)
		}

		renderListings(os.Stdout, listings)
	},
}

// initConfig loads a local .env so credentials are in the environment
// before viper reads it.
func initConfig() {
	_ = godotenv.Load()
}

func loadConfig() (*models.Config, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *models.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tablescout.yaml)")

	rootCmd.PersistentFlags().Float64("budget", 50, "Maximum spend per person in USD")
	rootCmd.PersistentFlags().Int("radius", 2000, "Search radius in meters")
	rootCmd.PersistentFlags().StringSlice("preferences", nil, "Food preference tags, e.g. Halal,Vegetarian")
	rootCmd.PersistentFlags().Bool("exclude-no-price", true, "Drop restaurants without price information")
	rootCmd.PersistentFlags().String("google-api-key", "", "Google Maps API key (or GOOGLE_MAPS_API_KEY)")
	rootCmd.PersistentFlags().String("openai-api-key", "", "OpenAI API key (or OPENAI_API_KEY)")
	rootCmd.PersistentFlags().String("openai-base-url", "", "Alternative OpenAI-compatible endpoint")
	rootCmd.PersistentFlags().String("model", "gpt-4o-mini", "Model used for review summaries")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	flags := rootCmd.PersistentFlags()
	viper.BindPFlag("budget", flags.Lookup("budget"))
	viper.BindPFlag("radius_meters", flags.Lookup("radius"))
	viper.BindPFlag("preferences", flags.Lookup("preferences"))
	viper.BindPFlag("exclude_no_price_info", flags.Lookup("exclude-no-price"))
	viper.BindPFlag("google_api_key", flags.Lookup("google-api-key"))
	viper.BindPFlag("openai_api_key", flags.Lookup("openai-api-key"))
	viper.BindPFlag("openai_base_url", flags.Lookup("openai-base-url"))
	viper.BindPFlag("summary_model", flags.Lookup("model"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
