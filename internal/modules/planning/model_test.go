package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validInput() TripRequestInput {
	return TripRequestInput{
		Source:      " del ",
		Destination: "GOI",
		StartDate:   "2026-12-01",
		EndDate:     "2026-12-05",
		Budget:      ptr(50000.0),
		Travelers:   ptr(2),
		Interests:   []string{"beaches", " ", "food"},
	}
}

func TestValidateOK(t *testing.T) {
	req, err := validInput().Validate()
	require.NoError(t, err)

	assert.Equal(t, "del", req.Source)
	assert.Equal(t, 50000.0, req.Budget)
	assert.Equal(t, 2, req.Travelers)
	assert.Equal(t, []string{"beaches", "food"}, req.Interests)
}

func TestValidateMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*TripRequestInput)
		wantField string
	}{
		{"destination", func(in *TripRequestInput) { in.Destination = "" }, "destination"},
		{"blank source", func(in *TripRequestInput) { in.Source = "   " }, "source"},
		{"dates", func(in *TripRequestInput) { in.StartDate, in.EndDate = "", "" }, "start_date, end_date"},
		{"budget", func(in *TripRequestInput) { in.Budget = nil }, "budget"},
		{"travelers", func(in *TripRequestInput) { in.Travelers = nil }, "travelers"},
		{"interests", func(in *TripRequestInput) { in.Interests = nil }, "interests"},
		{"negative budget", func(in *TripRequestInput) { in.Budget = ptr(-1.0) }, "budget"},
		{"zero travelers", func(in *TripRequestInput) { in.Travelers = ptr(0) }, "travelers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := in.Validate()

			require.Error(t, err)
			assert.True(t, IsValidation(err))
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateZeroBudgetAllowed(t *testing.T) {
	in := validInput()
	in.Budget = ptr(0.0)
	in.Interests = []string{}
	req, err := in.Validate()
	require.NoError(t, err)
	assert.Zero(t, req.Budget)
	assert.Empty(t, req.Interests)
}

func TestChatTurnValidate(t *testing.T) {
	assert.NoError(t, ChatTurn{Question: "q", PriorPlan: "p"}.Validate())

	err := ChatTurn{Question: " "}.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "question, travel_plan")
}

func TestErrorKinds(t *testing.T) {
	up := UpstreamError{Service: "gemini", Err: assert.AnError}
	assert.True(t, IsUpstream(up))
	assert.False(t, IsValidation(up))
	assert.ErrorIs(t, up, assert.AnError)

	cfg := ConfigurationError{Setting: "GEMINI_API_KEY"}
	assert.True(t, IsConfiguration(cfg))
	assert.Equal(t, "GEMINI_API_KEY is not configured", cfg.Error())
}
