package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"travelplanner/internal/ai"
	"travelplanner/internal/metrics"
	"travelplanner/internal/modules/flights"
	"travelplanner/internal/modules/planning"
)

// DefaultGenerateTimeout bounds a single generation call when none is configured.
const DefaultGenerateTimeout = 60 * time.Second

// analyzedOffers is how many upstream offers are handed to the model for its own summary.
const analyzedOffers = 3

// FlightLookup fetches raw flight offers for a route and date.
type FlightLookup interface {
	Lookup(ctx context.Context, source, destination, date string) (*flights.Lookup, error)
}

// InsightsCollector gathers optional destination context. It never fails.
type InsightsCollector interface {
	Collect(ctx context.Context, req planning.TripRequest) planning.Insights
}

// Deps wires a TripPlanner. Generator, Flights and Insights may be nil.
type Deps struct {
	Generator       ai.TextGenerator
	Flights         FlightLookup
	Insights        InsightsCollector
	Composer        *planning.Composer
	Provider        string
	GenerateTimeout time.Duration
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
}

// TripPlanner orchestrates prompt composition, flight lookup and text generation.
type TripPlanner struct {
	generator ai.TextGenerator
	flights   FlightLookup
	insights  InsightsCollector
	composer  *planning.Composer
	provider  string
	timeout   time.Duration
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// Status is the configuration snapshot reported by the health endpoint.
type Status struct {
	GeneratorConfigured bool
	Provider            string
	Model               string
	FlightsEnabled      bool
	InsightsEnabled     bool
}

func NewTripPlanner(d Deps) *TripPlanner {
	p := &TripPlanner{
		generator: d.Generator,
		flights:   d.Flights,
		insights:  d.Insights,
		composer:  d.Composer,
		provider:  d.Provider,
		timeout:   d.GenerateTimeout,
		metrics:   d.Metrics,
		log:       d.Logger,
	}
	if p.composer == nil {
		p.composer = planning.NewComposer("")
	}
	if p.timeout <= 0 {
		p.timeout = DefaultGenerateTimeout
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	return p
}

func (p *TripPlanner) Status() Status {
	s := Status{
		GeneratorConfigured: p.generator != nil,
		Provider:            p.provider,
		FlightsEnabled:      p.flights != nil,
		InsightsEnabled:     p.insights != nil,
	}
	if p.generator != nil {
		s.Model = p.generator.Name()
	}
	return s
}

func (p *TripPlanner) missingGenerator() error {
	if p.provider == "openai" {
		return planning.ConfigurationError{
			Setting: "OPENAI_API_KEY",
			Msg:     "OpenAI is not configured. Please set OPENAI_API_KEY environment variable.",
		}
	}
	return planning.ConfigurationError{
		Setting: "GEMINI_API_KEY",
		Msg:     "Gemini AI is not configured. Please set GEMINI_API_KEY environment variable.",
	}
}

// GeneratePlan produces the travel plan for a validated request. Flight and insight lookups
// degrade silently; only generation failures are returned.
func (p *TripPlanner) GeneratePlan(ctx context.Context, req planning.TripRequest) (*planning.FormattedPlan, error) {
	if p.generator == nil {
		return nil, p.missingGenerator()
	}

	var (
		lookup    *flights.Lookup
		lookupErr error
		insights  planning.Insights
	)

	g, gctx := errgroup.WithContext(ctx)
	if req.IncludeFlights && p.flights != nil {
		g.Go(func() error {
			lookup, lookupErr = p.flights.Lookup(gctx, req.Source, req.Destination, req.StartDate)
			if lookupErr != nil {
				p.log.Warn("flight lookup failed", "source", req.Source, "destination", req.Destination, "date", req.StartDate, "error", lookupErr)
			}
			return nil
		})
	}
	if p.insights != nil {
		g.Go(func() error {
			insights = p.insights.Collect(gctx, req)
			return nil
		})
	}
	_ = g.Wait()

	var result *flights.SearchResult
	if lookupErr == nil && lookup != nil {
		result = lookup.Result
	}

	prompt := p.composer.PlanPrompt(req, insights)
	if result != nil && len(result.BestFlights) > 0 {
		data, err := json.MarshalIndent(topOffers(result.BestFlights), "", "  ")
		if err != nil {
			p.log.Warn("encode flight data for prompt", "error", err)
		} else {
			prompt += p.composer.FlightAnalysisPrompt(string(data))
		}
	}

	text, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	plan := &planning.FormattedPlan{Plan: planning.RenderPlan(text)}
	if req.IncludeFlights {
		details := flights.NoFlightsMessage
		if result != nil {
			q := lookup.Query
			details = flights.FormatMarkdown(result, q.Origin, q.Destination, q.Date)
		}
		plan.FlightDetails = &details
	}
	return plan, nil
}

// Chat answers a follow-up question about a previously generated plan.
func (p *TripPlanner) Chat(ctx context.Context, turn planning.ChatTurn) (string, error) {
	if p.generator == nil {
		return "", p.missingGenerator()
	}
	return p.generate(ctx, p.composer.ChatPrompt(turn))
}

func (p *TripPlanner) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	text, err := p.generator.Generate(ctx, prompt)
	p.metrics.ObserveUpstream(p.generator.Name(), time.Since(start), err)
	if err != nil {
		p.log.Error("text generation failed", "provider", p.generator.Name(), "error", err)
		return "", planning.UpstreamError{Service: p.generator.Name(), Err: err}
	}
	return text, nil
}

func topOffers(offers []flights.Offer) []flights.Offer {
	if len(offers) > analyzedOffers {
		return offers[:analyzedOffers]
	}
	return offers
}
