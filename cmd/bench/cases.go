// README: Smoke cases for the planner API; includes HTTP contract, DB, Redis, and throughput checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"travelplanner/internal/infra"
	"travelplanner/internal/modules/airports"
)

type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusPending Status = "PENDING"
	StatusSkip    Status = "SKIP"
)

type Result struct {
	Name    string
	Status  Status
	Latency time.Duration
	Note    string
}

func fail(err error) Result {
	return Result{Status: StatusFail, Note: err.Error()}
}

func failf(format string, args ...any) Result {
	return Result{Status: StatusFail, Note: fmt.Sprintf(format, args...)}
}

func skip(note string) Result {
	return Result{Status: StatusSkip, Note: note}
}

type Check struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

type Runner struct {
	opts  Options
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewRunner(opts Options) *Runner {
	return &Runner{
		opts:  opts,
		httpc: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (r *Runner) connect(ctx context.Context) {
	if r.opts.DSN != "" {
		if db, err := infra.NewDB(ctx, r.opts.DSN); err == nil {
			r.db = db
		} else {
			fmt.Printf("postgres unavailable: %v\n", err)
		}
	}
	if r.opts.RedisAddr != "" {
		if rdb, err := infra.NewRedis(ctx, r.opts.RedisAddr); err == nil {
			r.redis = rdb
		} else {
			fmt.Printf("redis unavailable: %v\n", err)
		}
	}
}

func (r *Runner) close() {
	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	r.connect(ctx)
	defer r.close()

	checks := r.checks()
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		res := c.Run(ctx, r)
		res.Name = c.Name
		results = append(results, res)

		line := fmt.Sprintf("%-7s %s", res.Status, c.Name)
		if res.Latency > 0 {
			line += fmt.Sprintf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			line += " - " + res.Note
		}
		fmt.Println(line)
	}
	return results
}

func planBody(includeFlights bool) map[string]any {
	return map[string]any{
		"source":          "Mumbai",
		"destination":     "Goa",
		"start_date":      time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		"end_date":        time.Now().AddDate(0, 1, 4).Format("2006-01-02"),
		"budget":          50000,
		"travelers":       2,
		"interests":       []string{"beaches", "food"},
		"include_flights": includeFlights,
	}
}

func without(body map[string]any, key string) map[string]any {
	out := make(map[string]any, len(body))
	for k, v := range body {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// expect lists the statuses that pass; pending ones are acceptable on an unconfigured server.
type expect struct {
	ok      []int
	pending []int
}

func (r *Runner) checks() []Check {
	tooFew := planBody(false)
	tooFew["travelers"] = 0

	return []Check{
		{Name: "Env: Postgres connect", Run: dbCheck(func(ctx context.Context, db *pgxpool.Pool) Result {
			if err := db.Ping(ctx); err != nil {
				return fail(err)
			}
			return Result{Status: StatusPass}
		})},
		{Name: "Env: Redis connect", Run: func(ctx context.Context, r *Runner) Result {
			if r.redis == nil {
				return skip("redis not configured")
			}
			if err := r.redis.Ping(ctx).Err(); err != nil {
				return fail(err)
			}
			return Result{Status: StatusPass}
		}},
		{Name: "Migrations: apply", Run: func(ctx context.Context, r *Runner) Result {
			if !r.opts.Migrate {
				return skip("--migrate not set")
			}
			if r.db == nil {
				return failf("db not configured")
			}
			applied, err := infra.ApplyMigrations(ctx, r.db, r.opts.MigrationsDir)
			if err != nil {
				return fail(err)
			}
			return Result{Status: StatusPass, Note: fmt.Sprintf("%d file(s)", len(applied))}
		}},
		{Name: "Airports: seeded cities resolve", Run: dbCheck(func(ctx context.Context, db *pgxpool.Pool) Result {
			svc := airports.NewService(airports.NewStore(db))
			start := time.Now()
			for place, want := range map[string]string{"Mumbai": "BOM", "Goa": "GOI", "bangalore": "BLR", "DEL": "DEL"} {
				if got := svc.Resolve(ctx, place); got != want {
					return failf("%s resolved to %s, want %s", place, got, want)
				}
			}
			return Result{Status: StatusPass, Latency: time.Since(start)}
		})},

		{Name: "API: health", Run: r.health},
		{Name: "API: request id echoed", Run: r.requestID},
		r.httpCheck("API: root info", http.MethodGet, "/", nil, expect{ok: []int{200}}),
		r.httpCheck("API: metrics", http.MethodGet, "/metrics", nil, expect{ok: []int{200}, pending: []int{404}}),
		r.httpCheck("API: unknown route -> 404", http.MethodGet, "/no-such-route", nil, expect{ok: []int{404}}),

		r.httpCheck("Plan: missing fields -> 400", http.MethodPost, "/generate-plan", map[string]any{"source": "Mumbai"}, expect{ok: []int{400}}),
		r.httpCheck("Plan: missing interests -> 400", http.MethodPost, "/generate-plan", without(planBody(false), "interests"), expect{ok: []int{400}}),
		r.httpCheck("Plan: invalid travelers -> 400", http.MethodPost, "/generate-plan", tooFew, expect{ok: []int{400}}),
		r.httpCheck("Chat: missing question -> 400", http.MethodPost, "/chat", map[string]any{"travel_plan": "# Your Travel Plan"}, expect{ok: []int{400}}),

		r.live(r.httpCheck("Plan: generate without flights", http.MethodPost, "/generate-plan", planBody(false), expect{ok: []int{200}, pending: []int{500}})),
		r.live(r.httpCheck("Plan: legacy alias /plan-trip", http.MethodPost, "/plan-trip", planBody(false), expect{ok: []int{200}, pending: []int{500}})),
		r.live(r.httpCheck("Plan: generate with flights", http.MethodPost, "/generate-plan", planBody(true), expect{ok: []int{200}, pending: []int{500}})),
		r.live(r.httpCheck("Chat: follow-up", http.MethodPost, "/chat", map[string]any{
			"question":    "What should I pack?",
			"travel_plan": "# Your Travel Plan\n\nDay 1: Arrive in Goa, evening at Baga Beach.",
		}, expect{ok: []int{200}, pending: []int{500}})),

		manual("Error: flight search down -> no flights string", "block outbound access to the search API and request include_flights=true"),
		manual("Error: generator timeout -> 500", "set AI_TIMEOUT=1ms and request a plan"),

		{Name: "Load: health", Run: func(ctx context.Context, r *Runner) Result {
			return r.load(ctx, http.MethodGet, "/health", nil)
		}},
		{Name: "Load: rejected plan requests", Run: func(ctx context.Context, r *Runner) Result {
			return r.load(ctx, http.MethodPost, "/generate-plan", map[string]any{"source": "Mumbai"})
		}},
	}
}

func dbCheck(fn func(ctx context.Context, db *pgxpool.Pool) Result) func(context.Context, *Runner) Result {
	return func(ctx context.Context, r *Runner) Result {
		if r.db == nil {
			return skip("db not configured")
		}
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return fn(ctx, r.db)
	}
}

func (r *Runner) live(c Check) Check {
	if r.opts.Live {
		return c
	}
	return manual(c.Name, "--live not set")
}

func manual(name, note string) Check {
	return Check{Name: name, Run: func(context.Context, *Runner) Result { return skip(note) }}
}

func (r *Runner) do(ctx context.Context, method, path string, body any, header http.Header) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.opts.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	return r.httpc.Do(req)
}

func (r *Runner) httpCheck(name, method, path string, body any, want expect) Check {
	return Check{Name: name, Run: func(ctx context.Context, r *Runner) Result {
		start := time.Now()
		resp, err := r.do(ctx, method, path, body, nil)
		if err != nil {
			return fail(err)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		res := Result{Status: StatusFail, Latency: time.Since(start), Note: fmt.Sprintf("status=%d", resp.StatusCode)}
		switch {
		case slices.Contains(want.ok, resp.StatusCode):
			res.Status = StatusPass
		case slices.Contains(want.pending, resp.StatusCode):
			res.Status = StatusPending
		}
		return res
	}}
}

func (r *Runner) health(ctx context.Context, _ *Runner) Result {
	start := time.Now()
	resp, err := r.do(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	var body struct {
		Status     string `json:"status"`
		Configured bool   `json:"gemini_api_configured"`
		Provider   string `json:"llm_provider"`
		Flights    bool   `json:"flights_enabled"`
		Insights   bool   `json:"insights_enabled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fail(err)
	}
	latency := time.Since(start)
	if resp.StatusCode != http.StatusOK || body.Status != "healthy" {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d body=%+v", resp.StatusCode, body)}
	}
	return Result{Status: StatusPass, Latency: latency, Note: fmt.Sprintf("provider=%s configured=%v flights=%v insights=%v",
		body.Provider, body.Configured, body.Flights, body.Insights)}
}

func (r *Runner) requestID(ctx context.Context, _ *Runner) Result {
	id := uuid.NewString()
	resp, err := r.do(ctx, http.MethodGet, "/health", nil, http.Header{"X-Request-Id": {id}})
	if err != nil {
		return fail(err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != id {
		return failf("sent %s, got %q", id, got)
	}
	return Result{Status: StatusPass}
}

// load hammers one endpoint with opts.Concurrency workers for opts.Duration and reports throughput
// and latency percentiles.
func (r *Runner) load(ctx context.Context, method, path string, body any) Result {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Duration)
	defer cancel()

	var (
		errCount  atomic.Int64
		mu        sync.Mutex
		latencies []time.Duration
	)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.opts.Concurrency; i++ {
		g.Go(func() error {
			var local []time.Duration
			for gctx.Err() == nil {
				start := time.Now()
				resp, err := r.do(gctx, method, path, body, nil)
				if err != nil {
					if gctx.Err() == nil {
						errCount.Add(1)
					}
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				local = append(local, time.Since(start))
			}
			mu.Lock()
			latencies = append(latencies, local...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(latencies) == 0 {
		return failf("no requests completed (errors=%d)", errCount.Load())
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	rps := float64(len(latencies)) / r.opts.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f p50=%s p95=%s errors=%d",
		rps, percentile(latencies, 50), percentile(latencies, 95), errCount.Load())}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	idx := (len(sorted)*p + 99) / 100
	if idx < 1 {
		idx = 1
	}
	return sorted[idx-1].Round(time.Microsecond)
}
