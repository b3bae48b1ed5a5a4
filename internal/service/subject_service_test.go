package service

import (
	"context"
	"errors"
	"testing"

	"github.com/skillbase/skillbase-backend/internal/model"
)

func TestSubjectServiceCreate(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	sub, err := f.subjectService.Create(ctx, &model.CreateSubjectRequest{
		Title:       "Onboarding",
		Description: "First steps",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.ID == 0 {
		t.Error("expected a generated id")
	}
	if sub.Topics == nil || sub.Quizzes == nil || sub.Assignments == nil {
		t.Error("new subject must carry empty child collections, not nil")
	}

	if _, err := f.subjectService.Create(ctx, &model.CreateSubjectRequest{Title: "Onboarding"}); !errors.Is(err, ErrTitleTaken) {
		t.Errorf("duplicate title: got %v, want ErrTitleTaken", err)
	}
}

func TestSubjectServiceGetByIDHydratesInDisplayOrder(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub := f.seedSubject(t, "Onboarding")

	// Children are created out of display order on purpose.
	for _, req := range []model.CreateTopicRequest{
		{Title: "Advanced", SubjectOrder: 3},
		{Title: "Welcome", SubjectOrder: 1},
		{Title: "Setup", SubjectOrder: 2},
	} {
		req := req
		if _, err := f.topicService.Create(ctx, sub.ID, &req); err != nil {
			t.Fatalf("create topic: %v", err)
		}
	}
	for _, req := range []model.CreateQuizRequest{
		{Title: "Final", SubjectOrder: 2},
		{Title: "Intro", SubjectOrder: 1},
	} {
		req := req
		if _, err := f.quizService.Create(ctx, sub.ID, &req); err != nil {
			t.Fatalf("create quiz: %v", err)
		}
	}

	got, err := f.subjectService.GetByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	wantTopics := []string{"Welcome", "Setup", "Advanced"}
	if len(got.Topics) != len(wantTopics) {
		t.Fatalf("got %d topics, want %d", len(got.Topics), len(wantTopics))
	}
	for i, title := range wantTopics {
		if got.Topics[i].Title != title {
			t.Errorf("topic[%d] = %q, want %q", i, got.Topics[i].Title, title)
		}
	}

	wantQuizzes := []string{"Intro", "Final"}
	for i, title := range wantQuizzes {
		if got.Quizzes[i].Title != title {
			t.Errorf("quiz[%d] = %q, want %q", i, got.Quizzes[i].Title, title)
		}
	}

	if got.Assignments == nil {
		t.Error("assignments must be an empty slice, not nil")
	}
}

func TestSubjectServiceGetByIDNotFound(t *testing.T) {
	f := newCatalogFixture()
	if _, err := f.subjectService.GetByID(context.Background(), 404); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("got %v, want ErrSubjectNotFound", err)
	}
}

func TestSubjectServiceGetByTitle(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	seeded := f.seedSubject(t, "Onboarding")

	got, err := f.subjectService.GetByTitle(ctx, "Onboarding")
	if err != nil {
		t.Fatalf("GetByTitle: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("got subject %d, want %d", got.ID, seeded.ID)
	}

	if _, err := f.subjectService.GetByTitle(ctx, "No Such Course"); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("got %v, want ErrSubjectNotFound", err)
	}
}

func TestSubjectServiceUpdatePartial(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub, err := f.subjectService.Create(ctx, &model.CreateSubjectRequest{
		Title:       "Onboarding",
		Description: "First steps",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	published := true
	got, err := f.subjectService.Update(ctx, sub.ID, &model.UpdateSubjectRequest{IsPublished: &published})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !got.IsPublished {
		t.Error("IsPublished not applied")
	}
	if got.Title != "Onboarding" || got.Description != "First steps" {
		t.Error("fields not named in the request must be untouched")
	}

	title := "Onboarding v2"
	if _, err := f.subjectService.Update(ctx, 404, &model.UpdateSubjectRequest{Title: &title}); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("unknown id: got %v, want ErrSubjectNotFound", err)
	}
}

func TestSubjectServiceUpdateDuplicateTitle(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	f.seedSubject(t, "Onboarding")
	other := f.seedSubject(t, "Security Basics")

	title := "Onboarding"
	if _, err := f.subjectService.Update(ctx, other.ID, &model.UpdateSubjectRequest{Title: &title}); !errors.Is(err, ErrTitleTaken) {
		t.Errorf("got %v, want ErrTitleTaken", err)
	}
}

func TestSubjectServiceDeleteCascades(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub := f.seedSubject(t, "Onboarding")
	user := f.seedUser(t, "Ava", "ava@example.com")

	if _, err := f.topicService.Create(ctx, sub.ID, &model.CreateTopicRequest{
		Title: "Welcome",
		Steps: []model.CreateStepRequest{{Title: "Say hi"}},
	}); err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if _, err := f.quizService.Create(ctx, sub.ID, &model.CreateQuizRequest{
		Title:     "Intro",
		Questions: []model.CreateQuestionRequest{{Prompt: "Ready?"}},
	}); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if _, _, err := f.assignmentService.Assign(ctx, sub.ID, user.ID, 50); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := f.subjectService.Delete(ctx, sub.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if topics, _ := f.topics.GetAllBySubjectID(ctx, sub.ID); len(topics) != 0 {
		t.Errorf("topics survived the delete: %d left", len(topics))
	}
	if quizzes, _ := f.quizzes.GetAllBySubjectID(ctx, sub.ID); len(quizzes) != 0 {
		t.Errorf("quizzes survived the delete: %d left", len(quizzes))
	}
	if recs, _ := f.assignments.ListBySubject(ctx, sub.ID); len(recs) != 0 {
		t.Errorf("assignment records survived the delete: %d left", len(recs))
	}
	if _, err := f.subjectService.GetByID(ctx, sub.ID); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("subject still readable after delete: %v", err)
	}

	// The user referenced by the assignment is untouched.
	if _, err := f.userService.GetByID(ctx, user.ID); err != nil {
		t.Errorf("user must survive subject deletion: %v", err)
	}

	if err := f.subjectService.Delete(ctx, sub.ID); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("second delete: got %v, want ErrSubjectNotFound", err)
	}
}

func TestSubjectServiceGetAllHydrates(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	a := f.seedSubject(t, "Onboarding")
	f.seedSubject(t, "Security Basics")

	if _, err := f.topicService.Create(ctx, a.ID, &model.CreateTopicRequest{Title: "Welcome"}); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	subjects, err := f.subjectService.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(subjects) != 2 {
		t.Fatalf("got %d subjects, want 2", len(subjects))
	}
	if len(subjects[0].Topics) != 1 {
		t.Errorf("first subject not hydrated: %d topics", len(subjects[0].Topics))
	}
	if subjects[1].Topics == nil {
		t.Error("childless subject must carry an empty topic slice")
	}
}
