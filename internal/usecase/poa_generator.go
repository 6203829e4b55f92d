package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"
	"trainops-service/pkg/logger"
	"trainops-service/pkg/metrics"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const planSystemPrompt = `You are an experienced certified flight instructor preparing training materials.
Respond with a single JSON object and nothing else (no markdown fences).`

// PlanGenerator produces plan-of-action and debrief drafts with the OpenAI
// chat completions API. Output is always persisted as a draft for the
// instructor to edit, never shared with the student automatically.
type PlanGenerator struct {
	client       openai.Client
	model        openai.ChatModel
	debriefRepo  repository.DebriefRepository
	syllabusRepo repository.SyllabusRepository
	missionRepo  repository.MissionRepository
	logger       logger.Logger
	metrics      *metrics.Metrics
}

// NewPlanGenerator creates a new plan generator
func NewPlanGenerator(
	apiKey, model string,
	debriefRepo repository.DebriefRepository,
	syllabusRepo repository.SyllabusRepository,
	missionRepo repository.MissionRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *PlanGenerator {
	return &PlanGenerator{
		client:       openai.NewClient(option.WithAPIKey(apiKey)),
		model:        openai.ChatModel(model),
		debriefRepo:  debriefRepo,
		syllabusRepo: syllabusRepo,
		missionRepo:  missionRepo,
		logger:       logger,
		metrics:      metrics,
	}
}

// planPayload is the JSON shape requested from the model
type planPayload struct {
	Objectives           []string `json:"objectives"`
	PreflightBriefing    string   `json:"preflight_briefing"`
	FlightManeuvers      []string `json:"flight_maneuvers"`
	CompletionStandards  []string `json:"completion_standards"`
	SafetyConsiderations []string `json:"safety_considerations"`
	CommonErrors         []string `json:"common_errors"`
}

type debriefPayload struct {
	Summary              string   `json:"summary"`
	ObjectivesCompleted  []string `json:"objectives_completed"`
	ObjectivesPartial    []string `json:"objectives_partial"`
	ObjectivesNotMet     []string `json:"objectives_not_met"`
	StudentStrengths     []string `json:"student_strengths"`
	AreasForImprovement  []string `json:"areas_for_improvement"`
	RecommendedNextSteps []string `json:"recommended_next_steps"`
}

// GeneratePlan drafts a plan of action for the mission's lesson
func (g *PlanGenerator) GeneratePlan(ctx context.Context, missionID string) (*entity.PlanOfAction, error) {
	mission, err := g.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.LessonTemplateID == "" {
		return nil, fmt.Errorf("mission %s has no lesson template to plan from", mission.Code)
	}

	lesson, err := g.syllabusRepo.GetLesson(ctx, mission.LessonTemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson template: %w", err)
	}

	prompt := fmt.Sprintf(`Draft a plan of action for the flight training lesson below.

Lesson: %s
Description: %s
Activity type: %s
Planned duration: %d minutes

Return JSON with keys: objectives (array), preflight_briefing (string),
flight_maneuvers (array), completion_standards (array),
safety_considerations (array), common_errors (array).`,
		lesson.Title, lesson.Description, mission.Category.Label(), mission.ActivityMinutes)

	raw, err := g.complete(ctx, prompt)
	if err != nil {
		g.metrics.ErrorsCount.WithLabelValues("plan_generation").Inc()
		return nil, err
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		g.metrics.ErrorsCount.WithLabelValues("plan_generation").Inc()
		return nil, fmt.Errorf("failed to parse generated plan: %w", err)
	}

	now := time.Now()
	plan := &entity.PlanOfAction{
		ID:                   uuid.NewString(),
		MissionID:            mission.ID,
		LessonTitle:          lesson.Title,
		Objectives:           payload.Objectives,
		PreflightBriefing:    payload.PreflightBriefing,
		FlightManeuvers:      payload.FlightManeuvers,
		CompletionStandards:  payload.CompletionStandards,
		SafetyConsiderations: payload.SafetyConsiderations,
		CommonErrors:         payload.CommonErrors,
		GeneratedByAI:        true,
		SharedWithStudent:    false,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := g.debriefRepo.SavePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to store plan: %w", err)
	}

	g.logger.Info("Plan of action generated", "missionId", mission.ID, "lesson", lesson.Title)
	return plan, nil
}

// GenerateDebrief drafts a debrief from the instructor's raw notes
func (g *PlanGenerator) GenerateDebrief(ctx context.Context, missionID, instructorNotes string) (*entity.Debrief, error) {
	mission, err := g.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	var lessonTitle string
	if mission.LessonTemplateID != "" {
		if lesson, lessonErr := g.syllabusRepo.GetLesson(ctx, mission.LessonTemplateID); lessonErr == nil {
			lessonTitle = lesson.Title
		}
	}

	prompt := fmt.Sprintf(`Write a post-flight debrief from these instructor notes.

Lesson: %s
Activity type: %s
Assessment: %s
Notes:
%s

Return JSON with keys: summary (string), objectives_completed (array),
objectives_partial (array), objectives_not_met (array),
student_strengths (array), areas_for_improvement (array),
recommended_next_steps (array).`,
		lessonTitle, mission.Category.Label(), mission.Assessment, instructorNotes)

	raw, err := g.complete(ctx, prompt)
	if err != nil {
		g.metrics.ErrorsCount.WithLabelValues("debrief_generation").Inc()
		return nil, err
	}

	var payload debriefPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		g.metrics.ErrorsCount.WithLabelValues("debrief_generation").Inc()
		return nil, fmt.Errorf("failed to parse generated debrief: %w", err)
	}

	now := time.Now()
	debrief := &entity.Debrief{
		ID:                     uuid.NewString(),
		MissionID:              mission.ID,
		Summary:                payload.Summary,
		ObjectivesCompleted:    payload.ObjectivesCompleted,
		ObjectivesPartial:      payload.ObjectivesPartial,
		ObjectivesNotMet:       payload.ObjectivesNotMet,
		StudentStrengths:       payload.StudentStrengths,
		AreasForImprovement:    payload.AreasForImprovement,
		InstructorObservations: instructorNotes,
		RecommendedNextSteps:   payload.RecommendedNextSteps,
		GeneratedByAI:          true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := g.debriefRepo.SaveDebrief(ctx, debrief); err != nil {
		return nil, fmt.Errorf("failed to store debrief: %w", err)
	}

	g.logger.Info("Debrief generated", "missionId", mission.ID)
	return debrief, nil
}

func (g *PlanGenerator) complete(ctx context.Context, prompt string) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(planSystemPrompt),
			openai.UserMessage(prompt),
		},
		Model: g.model,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return stripCodeFences(completion.Choices[0].Message.Content), nil
}

// stripCodeFences tolerates models that wrap JSON in a markdown block
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
