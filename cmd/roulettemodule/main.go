package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/config"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/wire"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "roulettemodule",
	Short: "European roulette settlement service",
	Long:  "Single-table European roulette service with a provably fair outcome generator, bet validation, and round settlement over HTTP.",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file")
}

func run(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = config.Default()
	}

	app, producer, store, err := wire.BuildApp(cfg)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	defer func() {
		if producer != nil {
			producer.Close()
		}
		if store != nil {
			store.Close()
		}
	}()

	return app.Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
