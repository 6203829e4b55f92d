package repository

import (
	"context"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDebriefRepository implements the DebriefRepository interface
type MongoDebriefRepository struct {
	plans    *mongo.Collection
	debriefs *mongo.Collection
}

// NewMongoDebriefRepository creates a new MongoDB debrief repository
func NewMongoDebriefRepository(db *mongo.Database) repository.DebriefRepository {
	plans := db.Collection("plansOfAction")
	debriefs := db.Collection("debriefs")

	ctx := context.Background()

	missionIndex := mongo.IndexModel{
		Keys:    bson.M{"missionId": 1},
		Options: options.Index().SetUnique(true),
	}

	plans.Indexes().CreateOne(ctx, missionIndex)
	debriefs.Indexes().CreateOne(ctx, missionIndex)

	return &MongoDebriefRepository{
		plans:    plans,
		debriefs: debriefs,
	}
}

// SavePlan upserts the plan of action for a mission
func (r *MongoDebriefRepository) SavePlan(ctx context.Context, plan *entity.PlanOfAction) error {
	plan.UpdatedAt = time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = plan.UpdatedAt
	}

	upsert := true
	_, err := r.plans.ReplaceOne(ctx,
		bson.M{"missionId": plan.MissionID},
		plan,
		&options.ReplaceOptions{Upsert: &upsert},
	)
	return err
}

// GetPlanByMission finds the plan of action for a mission
func (r *MongoDebriefRepository) GetPlanByMission(ctx context.Context, missionID string) (*entity.PlanOfAction, error) {
	var plan entity.PlanOfAction
	err := r.plans.FindOne(ctx, bson.M{"missionId": missionID}).Decode(&plan)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// SaveDebrief upserts the debrief for a mission
func (r *MongoDebriefRepository) SaveDebrief(ctx context.Context, debrief *entity.Debrief) error {
	debrief.UpdatedAt = time.Now()
	if debrief.CreatedAt.IsZero() {
		debrief.CreatedAt = debrief.UpdatedAt
	}

	upsert := true
	_, err := r.debriefs.ReplaceOne(ctx,
		bson.M{"missionId": debrief.MissionID},
		debrief,
		&options.ReplaceOptions{Upsert: &upsert},
	)
	return err
}

// GetDebriefByMission finds the debrief for a mission
func (r *MongoDebriefRepository) GetDebriefByMission(ctx context.Context, missionID string) (*entity.Debrief, error) {
	var debrief entity.Debrief
	err := r.debriefs.FindOne(ctx, bson.M{"missionId": missionID}).Decode(&debrief)
	if err != nil {
		return nil, err
	}
	return &debrief, nil
}
