package entity

import "time"

// PlanOfAction is the pre-mission briefing artifact, optionally generated by
// the AI assistant from the lesson and the student's progression context.
type PlanOfAction struct {
	ID                   string    `bson:"_id,omitempty"`
	MissionID            string    `bson:"missionId"`
	LessonTitle          string    `bson:"lessonTitle"`
	Objectives           []string  `bson:"objectives"`
	PreflightBriefing    string    `bson:"preflightBriefing"`
	FlightManeuvers      []string  `bson:"flightManeuvers,omitempty"`
	CompletionStandards  []string  `bson:"completionStandards"`
	SafetyConsiderations []string  `bson:"safetyConsiderations"`
	CommonErrors         []string  `bson:"commonErrors"`
	InstructorNotes      string    `bson:"instructorNotes"`
	GeneratedByAI        bool      `bson:"generatedByAi"`
	SharedWithStudent    bool      `bson:"sharedWithStudent"`
	CreatedAt            time.Time `bson:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt"`
}

// Debrief is the post-mission review artifact
type Debrief struct {
	ID                     string    `bson:"_id,omitempty"`
	MissionID              string    `bson:"missionId"`
	Summary                string    `bson:"summary"`
	ObjectivesCompleted    []string  `bson:"objectivesCompleted"`
	ObjectivesPartial      []string  `bson:"objectivesPartial"`
	ObjectivesNotMet       []string  `bson:"objectivesNotMet"`
	StudentStrengths       []string  `bson:"studentStrengths"`
	AreasForImprovement    []string  `bson:"areasForImprovement"`
	InstructorObservations string    `bson:"instructorObservations"`
	RecommendedNextSteps   []string  `bson:"recommendedNextSteps"`
	Transcript             string    `bson:"transcript,omitempty"`
	GeneratedByAI          bool      `bson:"generatedByAi"`
	CreatedAt              time.Time `bson:"createdAt"`
	UpdatedAt              time.Time `bson:"updatedAt"`
}
