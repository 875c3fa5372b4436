// README: Smoke/benchmark runner against a live planner API; executes HTTP, DB and Redis checks and prints results.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"travelplanner/internal/config"
)

// Options controls one bench run. Connection settings come from the shared planner config.
type Options struct {
	BaseURL       string
	DSN           string
	RedisAddr     string
	MigrationsDir string
	Migrate       bool
	Strict        bool
	Live          bool
	Timeout       time.Duration
	Concurrency   int
	Duration      time.Duration
}

var bv = viper.New()

var rootCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run smoke and load checks against a planner deployment.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return nil
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		return run(cmd.Context(), opts)
	},
}

func init() {
	f := rootCmd.Flags()
	f.String("base-url", "http://localhost:8000", "API base URL")
	f.String("migrations", "migrations", "directory of migration SQL files")
	f.Bool("migrate", false, "apply migrations before the checks")
	f.Bool("strict", false, "exit non-zero on pending checks")
	f.Bool("live", false, "run checks that call the generation service")
	f.Duration("timeout", 5*time.Minute, "total timeout")
	f.Int("concurrency", 20, "workers for load checks")
	f.Duration("duration", 10*time.Second, "duration of each load check")

	// PLANNER_BENCH_BASE_URL, PLANNER_BENCH_LIVE, ...
	bv.SetEnvPrefix("planner_bench")
	bv.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	bv.AutomaticEnv()
	if err := bv.BindPFlags(f); err != nil {
		panic(err)
	}
}

func loadOptions() (Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		BaseURL:       strings.TrimRight(bv.GetString("base-url"), "/"),
		DSN:           cfg.DB.DSN,
		RedisAddr:     cfg.Redis.Addr,
		MigrationsDir: bv.GetString("migrations"),
		Migrate:       bv.GetBool("migrate"),
		Strict:        bv.GetBool("strict"),
		Live:          bv.GetBool("live"),
		Timeout:       bv.GetDuration("timeout"),
		Concurrency:   bv.GetInt("concurrency"),
		Duration:      bv.GetDuration("duration"),
	}
	if opts.Concurrency < 1 {
		return Options{}, fmt.Errorf("concurrency must be at least 1, got %d", opts.Concurrency)
	}
	return opts, nil
}

func run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	results := NewRunner(opts).RunAll(ctx)

	counts := map[Status]int{}
	for _, r := range results {
		counts[r.Status]++
	}
	fmt.Println("\n== Summary ==")
	fmt.Printf("PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", counts[StatusPass], counts[StatusFail], counts[StatusPending], counts[StatusSkip])

	if counts[StatusFail] > 0 || (opts.Strict && counts[StatusPending] > 0) {
		return fmt.Errorf("bench failed")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
