// README: Entry point; loads config, wires services, starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "planner-api",
	Short: "AI travel planning API: itineraries, flight options and follow-up chat.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// a missing .env is fine; real environment variables always win
		_ = godotenv.Load()
		return nil
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply SQL migrations to PLANNER_DB_DSN.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return migrate(cmd.Context(), viper.GetString("migrations.dir"))
	},
}

func init() {
	rootCmd.PersistentFlags().String("addr", "", "listen address (overrides PLANNER_HTTP_ADDR and PORT)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	migrateCmd.Flags().String("dir", "migrations", "directory containing *.sql migrations")

	if err := viper.BindPFlag("http.addr", rootCmd.PersistentFlags().Lookup("addr")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("migrations.dir", migrateCmd.Flags().Lookup("dir")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
