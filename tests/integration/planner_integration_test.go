package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthResponse struct {
	Status              string          `json:"status"`
	GeminiAPIConfigured bool            `json:"gemini_api_configured"`
	Provider            string          `json:"llm_provider"`
	EnvironmentVars     map[string]bool `json:"environment_vars"`
}

type planResponse struct {
	Success       bool    `json:"success"`
	Plan          string  `json:"plan"`
	FlightDetails *string `json:"flight_details"`
	Detail        string  `json:"detail"`
}

func TestPlannerEndToEnd(t *testing.T) {
	loadDotEnv(t)

	baseURL := strings.TrimRight(os.Getenv("PLANNER_API_BASE_URL"), "/")
	if baseURL == "" {
		t.Skip("PLANNER_API_BASE_URL not set; skipping live API tests")
	}
	client := &http.Client{Timeout: 2 * time.Minute}
	waitForAPIReady(t, client, baseURL)

	var health healthResponse
	status, body := call(t, client, http.MethodGet, baseURL+"/health", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Contains(t, health.EnvironmentVars, "SERP_API_KEY")
	t.Logf("[TEST LOG] provider=%s configured=%v", health.Provider, health.GeminiAPIConfigured)

	status, body = call(t, client, http.MethodPost, baseURL+"/generate-plan", map[string]any{"source": "Mumbai"})
	require.Equal(t, http.StatusBadRequest, status, string(body))

	trip := map[string]any{
		"source":          "Mumbai",
		"destination":     "Goa",
		"start_date":      time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		"end_date":        time.Now().AddDate(0, 1, 3).Format("2006-01-02"),
		"budget":          40000,
		"travelers":       2,
		"interests":       []string{"beaches", "seafood"},
		"include_flights": health.EnvironmentVars["SERP_API_KEY"],
	}

	status, body = call(t, client, http.MethodPost, baseURL+"/generate-plan", trip)
	var plan planResponse
	require.NoError(t, json.Unmarshal(body, &plan), string(body))

	if !health.GeminiAPIConfigured {
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.False(t, plan.Success)
		assert.NotEmpty(t, plan.Detail)
		t.Skip("generation not configured on the server; plan and chat checks skipped")
	}

	require.Equal(t, http.StatusOK, status, string(body))
	assert.True(t, plan.Success)
	assert.True(t, strings.HasPrefix(plan.Plan, "# Your Travel Plan\n\n"))
	if trip["include_flights"] == true {
		require.NotNil(t, plan.FlightDetails)
		t.Logf("[TEST LOG] flight details:\n%s", *plan.FlightDetails)
	} else {
		assert.Nil(t, plan.FlightDetails)
	}

	status, body = call(t, client, http.MethodPost, baseURL+"/chat", map[string]string{
		"question":    "Which day is best for a beach visit? Answer in one sentence.",
		"travel_plan": plan.Plan,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var chat struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(body, &chat))
	assert.True(t, chat.Success)
	assert.NotEmpty(t, strings.TrimSpace(chat.Response))
	t.Logf("[TEST LOG] chat response: %s", chat.Response)
}

func TestAirportsSeeded(t *testing.T) {
	loadDotEnv(t)

	dsn := strings.TrimSpace(os.Getenv("PLANNER_TEST_DSN"))
	if dsn == "" {
		t.Skip("PLANNER_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, redactedDSN(dsn))
	t.Cleanup(db.Close)

	var n int
	require.NoError(t, db.QueryRow(ctx, "SELECT COUNT(*) FROM airports").Scan(&n))
	assert.Greater(t, n, 0, "run `planner-api migrate` against %s first", redactedDSN(dsn))
}

func call(t *testing.T, client *http.Client, method, url string, payload any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err, "%s %s", method, url)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func redactedDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at == -1 || scheme == -1 || at <= scheme+3 {
		return dsn
	}
	return dsn[:scheme+3] + "***:***" + dsn[at:]
}

func waitForAPIReady(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("api not ready: GET %s/health did not return 200 in time", baseURL)
}

// loadDotEnv loads the nearest .env walking up from the test directory; set variables win.
func loadDotEnv(t *testing.T) {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 8; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			_ = godotenv.Load(candidate)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
