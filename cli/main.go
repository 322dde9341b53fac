package main

import (
	"errors"
	"fmt"
	"os"

	"PixBot/config"
	"PixBot/store"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	databaseURL string
	db          *gorm.DB
	cfg         *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pixctl",
	Short: "PixBot administration CLI",
	Long: `Administrative tasks against the PixBot database: migrations, VIP grants,
coin adjustments, interest ticks and leaderboards. Reads the same .env as the bot.`,
	SilenceUsage:      true,
	PersistentPreRunE: openStore,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			store.Close(db)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&databaseURL, "database", "d", "", "Database URL (defaults to DATABASE_URL)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(grantVIPCmd)
	rootCmd.AddCommand(addCoinsCmd)
	rootCmd.AddCommand(interestCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(commandsCmd)
}

// openStore loads config like the bot does. The token is not needed here.
func openStore(cmd *cobra.Command, args []string) error {
	if cmd.Annotations["offline"] == "true" {
		return nil
	}

	var err error
	cfg, err = config.Load()
	if err != nil && !errors.Is(err, config.ErrMissingToken) {
		return err
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	cfg.SetupLogging()

	db, err = store.Open(cfg.DatabaseURL)
	return err
}
