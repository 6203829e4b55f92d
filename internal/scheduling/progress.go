package scheduling

import (
	"math"
	"sort"

	"trainops-service/internal/domain/entity"
)

// Progress is a student's position within an ordered syllabus, derived from
// completed-mission history rather than stored directly.
type Progress struct {
	Current         *entity.SyllabusLesson `json:"current_lesson"`
	Next            *entity.SyllabusLesson `json:"next_lesson"`
	Previous        *entity.SyllabusLesson `json:"previous_lesson"`
	CompletedCount  int                    `json:"completed_count"`
	TotalCount      int                    `json:"total_count"`
	PercentComplete int                    `json:"percent_complete"`
}

// ResolveProgress determines the current, next and most recently completed
// lesson from the syllabus lesson list and the set of lesson IDs the student
// has completed at least one mission for.
//
// Progression advances from the highest-order completed lesson, not the first
// incomplete one: a student who repeats an earlier lesson after reaching a
// later one keeps their furthest position. Repeated completions of the same
// lesson count once toward the percentage.
func ResolveProgress(lessons []entity.SyllabusLesson, completedLessonIDs map[string]struct{}) Progress {
	ordered := make([]entity.SyllabusLesson, len(lessons))
	copy(ordered, lessons)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	progress := Progress{
		TotalCount:     len(ordered),
		CompletedCount: len(completedLessonIDs),
	}

	highestIndex := -1
	var highest *entity.SyllabusLesson
	for i := range ordered {
		if _, done := completedLessonIDs[ordered[i].ID]; done && ordered[i].OrderIndex > highestIndex {
			highestIndex = ordered[i].OrderIndex
			highest = &ordered[i]
		}
	}

	if highestIndex == -1 {
		// Nothing completed yet: start at the beginning.
		if len(ordered) > 0 {
			progress.Current = &ordered[0]
		}
		if len(ordered) > 1 {
			progress.Next = &ordered[1]
		}
	} else {
		progress.Previous = highest
		for i := range ordered {
			if ordered[i].OrderIndex == highestIndex+1 {
				progress.Current = &ordered[i]
				if i+1 < len(ordered) {
					progress.Next = &ordered[i+1]
				}
				break
			}
		}
		// No lesson at highestIndex+1 means the syllabus is finished:
		// Current and Next stay nil.
	}

	if progress.TotalCount > 0 {
		progress.PercentComplete = int(math.Round(100 * float64(progress.CompletedCount) / float64(progress.TotalCount)))
	}

	return progress
}
