package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
)

// DebriefRepository defines the interface for plan-of-action and debrief
// artifacts
type DebriefRepository interface {
	SavePlan(ctx context.Context, plan *entity.PlanOfAction) error
	GetPlanByMission(ctx context.Context, missionID string) (*entity.PlanOfAction, error)
	SaveDebrief(ctx context.Context, debrief *entity.Debrief) error
	GetDebriefByMission(ctx context.Context, missionID string) (*entity.Debrief, error)
}
