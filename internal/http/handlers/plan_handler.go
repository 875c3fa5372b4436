package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelplanner/internal/modules/planning"
)

// Planner is the orchestration the plan endpoints need.
type Planner interface {
	GeneratePlan(ctx context.Context, req planning.TripRequest) (*planning.FormattedPlan, error)
	Chat(ctx context.Context, turn planning.ChatTurn) (string, error)
}

type PlanHandler struct {
	planner Planner
}

func NewPlanHandler(p Planner) *PlanHandler {
	return &PlanHandler{planner: p}
}

type planResponse struct {
	Success       bool    `json:"success"`
	Plan          string  `json:"plan"`
	FlightDetails *string `json:"flight_details"`
}

type chatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// Generate handles POST /generate-plan and its legacy alias POST /plan-trip.
func (h *PlanHandler) Generate(c *gin.Context) {
	var in planning.TripRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req, err := in.Validate()
	if err != nil {
		writeDomainError(c, err)
		return
	}

	plan, err := h.planner.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, planResponse{Success: true, Plan: plan.Plan, FlightDetails: plan.FlightDetails})
}

// Chat handles POST /chat.
func (h *PlanHandler) Chat(c *gin.Context) {
	var turn planning.ChatTurn
	if err := c.ShouldBindJSON(&turn); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := turn.Validate(); err != nil {
		writeDomainError(c, err)
		return
	}

	reply, err := h.planner.Chat(c.Request.Context(), turn)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, chatResponse{Success: true, Response: reply})
}
