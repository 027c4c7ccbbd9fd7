package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"patter/pkg/config"
	"patter/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "patter",
	Short: "Terminal client for a streaming agent backend",
	Long: `patter connects to an agent backend that streams responses as
framed events, reveals assistant text with natural pacing, and shows
tool activity as it happens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := logger.Init(); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		defer logger.Close()

		app := NewApp(cfg)
		ctx := context.Background()

		if prompt := viper.GetString("prompt"); prompt != "" {
			return app.RunOnce(ctx, prompt)
		}
		return app.RunInteractive(ctx)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .patter/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("backend", "", "agent backend base URL")
	viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("backend"))

	rootCmd.PersistentFlags().StringP("strategy", "s", "", "reveal strategy: line or char")
	viper.BindPFlag("reveal.strategy", rootCmd.PersistentFlags().Lookup("strategy"))

	rootCmd.PersistentFlags().StringP("prompt", "p", "", "send a single prompt and exit")
	viper.BindPFlag("prompt", rootCmd.PersistentFlags().Lookup("prompt"))
}
