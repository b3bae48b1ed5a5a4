// Package hierarchy orders a subject's children for display. It is pure:
// no I/O, no mutation beyond reordering the given slice.
package hierarchy

import (
	"sort"

	"github.com/skillbase/skillbase-backend/internal/model"
)

// SortTopics orders topics ascending by subject_order. Equal order keys
// resolve by ascending id, so insertion order wins; the sort is stable on
// top of that so fully identical keys keep their input order.
func SortTopics(topics []model.Topic) {
	sort.SliceStable(topics, func(i, j int) bool {
		if topics[i].SubjectOrder != topics[j].SubjectOrder {
			return topics[i].SubjectOrder < topics[j].SubjectOrder
		}
		return topics[i].ID < topics[j].ID
	})
}

// SortQuizzes orders quizzes the same way SortTopics orders topics.
func SortQuizzes(quizzes []model.Quiz) {
	sort.SliceStable(quizzes, func(i, j int) bool {
		if quizzes[i].SubjectOrder != quizzes[j].SubjectOrder {
			return quizzes[i].SubjectOrder < quizzes[j].SubjectOrder
		}
		return quizzes[i].ID < quizzes[j].ID
	})
}
