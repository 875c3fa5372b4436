// README: Command-line demo; generates one plan (and optionally a follow-up answer) without the HTTP layer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"travelplanner/internal/app"
	"travelplanner/internal/config"
	"travelplanner/internal/infra"
	"travelplanner/internal/modules/planning"
)

var (
	source         string
	destination    string
	startDate      string
	endDate        string
	budget         float64
	travelers      int
	interests      []string
	includeFlights bool
	question       string
)

var rootCmd = &cobra.Command{
	Use:   "plan_demo",
	Short: "Generate a travel plan from the command line.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return nil
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&source, "from", "Mumbai", "departure city or airport code")
	f.StringVar(&destination, "to", "Goa", "destination city or airport code")
	f.StringVar(&startDate, "start", "2025-01-10", "start date (YYYY-MM-DD)")
	f.StringVar(&endDate, "end", "2025-01-14", "end date (YYYY-MM-DD)")
	f.Float64Var(&budget, "budget", 50000, "total budget in INR")
	f.IntVar(&travelers, "travelers", 2, "number of travelers")
	f.StringSliceVar(&interests, "interests", []string{"beaches", "food"}, "comma-separated interests")
	f.BoolVar(&includeFlights, "flights", false, "include flight options (needs SERP_API_KEY)")
	f.StringVar(&question, "ask", "", "follow-up question to ask about the generated plan")
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := infra.NewLogger(os.Stderr, cfg.Log.Level, "text")

	planner, err := app.Build(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}
	defer planner.Close()

	st := planner.Status()
	if !st.GeneratorConfigured {
		return fmt.Errorf("%s credential not set: export GEMINI_API_KEY or OPENAI_API_KEY", cfg.AI.Provider)
	}
	if interests == nil {
		interests = []string{}
	}

	req, err := planning.TripRequestInput{
		Source:         source,
		Destination:    destination,
		StartDate:      startDate,
		EndDate:        endDate,
		Budget:         &budget,
		Travelers:      &travelers,
		Interests:      interests,
		IncludeFlights: includeFlights,
	}.Validate()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Planning %s -> %s with %s...\n", req.Source, req.Destination, st.Model)
	plan, err := planner.GeneratePlan(ctx, req)
	if err != nil {
		return err
	}
	fmt.Println(plan.Plan)
	if plan.FlightDetails != nil {
		fmt.Println(*plan.FlightDetails)
	}

	if question == "" {
		return nil
	}
	answer, err := planner.Chat(ctx, planning.ChatTurn{Question: question, PriorPlan: plan.Plan})
	if err != nil {
		return err
	}
	fmt.Printf("\n---\nQ: %s\n\n%s\n", question, answer)
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
