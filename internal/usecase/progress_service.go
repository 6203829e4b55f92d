package usecase

import (
	"context"
	"fmt"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"
	"trainops-service/internal/scheduling"
	"trainops-service/pkg/logger"
)

// Suggestion types for the next mission
const (
	SuggestionNext   = "next"
	SuggestionRepeat = "repeat"
	SuggestionCustom = "custom"
)

// Suggestion is one recommended option for a student's next mission
type Suggestion struct {
	Type   string                 `json:"type"`
	Lesson *entity.SyllabusLesson `json:"lesson,omitempty"`
	Reason string                 `json:"reason"`
}

// ProgressService resolves a student's syllabus position from their
// completed-mission history.
type ProgressService struct {
	missionRepo    repository.MissionRepository
	enrollmentRepo repository.EnrollmentRepository
	syllabusRepo   repository.SyllabusRepository
	logger         logger.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(
	missionRepo repository.MissionRepository,
	enrollmentRepo repository.EnrollmentRepository,
	syllabusRepo repository.SyllabusRepository,
	logger logger.Logger,
) *ProgressService {
	return &ProgressService{
		missionRepo:    missionRepo,
		enrollmentRepo: enrollmentRepo,
		syllabusRepo:   syllabusRepo,
		logger:         logger,
	}
}

// GetProgress derives the enrollment's syllabus position
func (p *ProgressService) GetProgress(ctx context.Context, enrollmentID string) (*scheduling.Progress, error) {
	enrollment, err := p.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollment: %w", err)
	}

	lessons, err := p.syllabusRepo.LessonsBySyllabus(ctx, enrollment.SyllabusID)
	if err != nil {
		return nil, fmt.Errorf("failed to load syllabus lessons: %w", err)
	}

	completedIDs, err := p.missionRepo.CompletedLessonIDs(ctx, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed lessons: %w", err)
	}

	completed := make(map[string]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = struct{}{}
	}

	progress := scheduling.ResolveProgress(lessons, completed)
	return &progress, nil
}

// Suggestions proposes options for the student's next mission: advancing to
// the current syllabus lesson, repeating the last one when the most recent
// assessment asked for more practice, and a free-form custom mission.
func (p *ProgressService) Suggestions(ctx context.Context, enrollmentID string) ([]Suggestion, error) {
	progress, err := p.GetProgress(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	suggestions := []Suggestion{}

	if progress.Current != nil {
		suggestions = append(suggestions, Suggestion{
			Type:   SuggestionNext,
			Lesson: progress.Current,
			Reason: fmt.Sprintf("Next lesson in the syllabus: %s", progress.Current.Title),
		})
	}

	if progress.Previous != nil && p.lastAssessmentNeedsPractice(ctx, enrollmentID, progress.Previous.ID) {
		suggestions = append(suggestions, Suggestion{
			Type:   SuggestionRepeat,
			Lesson: progress.Previous,
			Reason: fmt.Sprintf("Last attempt at %s needs more practice", progress.Previous.Title),
		})
	}

	suggestions = append(suggestions, Suggestion{
		Type:   SuggestionCustom,
		Reason: "Custom mission outside the syllabus",
	})

	return suggestions, nil
}

// lastAssessmentNeedsPractice reports whether the most recent completed
// mission for the lesson was assessed as needing more practice.
func (p *ProgressService) lastAssessmentNeedsPractice(ctx context.Context, enrollmentID, lessonID string) bool {
	missions, err := p.missionRepo.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		p.logger.Warn("Failed to load enrollment missions", "enrollmentId", enrollmentID, "error", err)
		return false
	}

	// Missions come back newest first; the first completed match decides.
	for _, mission := range missions {
		if mission.Status != entity.MissionCompleted || mission.LessonTemplateID != lessonID {
			continue
		}
		return mission.Assessment == entity.AssessmentNeedsMorePractice
	}
	return false
}
