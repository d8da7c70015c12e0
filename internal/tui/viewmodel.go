package tui

import (
	"dsa_sheet/internal/domain/model"
)

// ProblemItem is a catalog problem annotated with the caller's completion
// state. Problems without a progress row default to not completed.
type ProblemItem struct {
	model.Problem
	Completed  bool
	ProgressID string
}

// TopicGroup nests a topic's problems under it with a running completed count.
type TopicGroup struct {
	model.Topic
	Problems       []ProblemItem
	CompletedCount int
}

// Sheet is the joined view of the three fetched collections.
type Sheet struct {
	Topics         []TopicGroup
	TotalProblems  int
	TotalCompleted int
}

// BuildSheet joins the three independently fetched collections into the
// nested topic → problems view. It is a pure function of its inputs.
func BuildSheet(topics []model.Topic, problems []model.Problem, progress []model.Progress) Sheet {
	progressByProblem := make(map[string]model.Progress, len(progress))
	for _, p := range progress {
		progressByProblem[p.ProblemID] = p
	}

	sheet := Sheet{Topics: make([]TopicGroup, 0, len(topics))}
	for _, topic := range topics {
		group := TopicGroup{Topic: topic}
		for _, problem := range problems {
			if problem.TopicID != topic.ID {
				continue
			}
			item := ProblemItem{Problem: problem}
			if pr, ok := progressByProblem[problem.ID]; ok {
				item.Completed = pr.Completed
				item.ProgressID = pr.ID
			}
			if item.Completed {
				group.CompletedCount++
			}
			group.Problems = append(group.Problems, item)
		}
		sheet.TotalProblems += len(group.Problems)
		sheet.TotalCompleted += group.CompletedCount
		sheet.Topics = append(sheet.Topics, group)
	}
	return sheet
}

// SetCompleted patches one problem's completion state in place and fixes the
// affected topic's count and the sheet totals. Used after a server-confirmed
// toggle; a no-op when the problem is absent.
func (s *Sheet) SetCompleted(problemID string, completed bool, progressID string) {
	for ti := range s.Topics {
		group := &s.Topics[ti]
		for pi := range group.Problems {
			item := &group.Problems[pi]
			if item.ID != problemID {
				continue
			}
			if item.Completed == completed {
				return
			}
			item.Completed = completed
			item.ProgressID = progressID
			if completed {
				group.CompletedCount++
				s.TotalCompleted++
			} else {
				group.CompletedCount--
				s.TotalCompleted--
			}
			return
		}
	}
}
