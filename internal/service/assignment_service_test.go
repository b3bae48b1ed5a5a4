package service

import (
	"context"
	"errors"
	"testing"

	"github.com/skillbase/skillbase-backend/internal/model"
)

func TestAssignCreatesThenUpdates(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub := f.seedSubject(t, "Onboarding")
	user := f.seedUser(t, "Ava", "ava@example.com")

	rec, created, err := f.assignmentService.Assign(ctx, sub.ID, user.ID, 40)
	if err != nil {
		t.Fatalf("first Assign: %v", err)
	}
	if !created {
		t.Error("first assign must report created")
	}
	if rec.CompletionRate != 40 {
		t.Errorf("rate = %d, want 40", rec.CompletionRate)
	}

	rec, created, err = f.assignmentService.Assign(ctx, sub.ID, user.ID, 65)
	if err != nil {
		t.Fatalf("second Assign: %v", err)
	}
	if created {
		t.Error("re-assign must report updated, not created")
	}
	if rec.CompletionRate != 65 {
		t.Errorf("rate = %d, want 65", rec.CompletionRate)
	}

	// Still exactly one record for the pair.
	recs, err := f.assignments.ListBySubject(ctx, sub.ID)
	if err != nil {
		t.Fatalf("ListBySubject: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
}

func TestAssignUnknownUserOrSubject(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub := f.seedSubject(t, "Onboarding")
	user := f.seedUser(t, "Ava", "ava@example.com")

	if _, _, err := f.assignmentService.Assign(ctx, sub.ID, 404, 0); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: got %v, want ErrUserNotFound", err)
	}
	if _, _, err := f.assignmentService.Assign(ctx, 404, user.ID, 0); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("unknown subject: got %v, want ErrSubjectNotFound", err)
	}
}

func TestUnassignIsNoopWhenAbsent(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub := f.seedSubject(t, "Onboarding")
	user := f.seedUser(t, "Ava", "ava@example.com")

	if err := f.assignmentService.Unassign(ctx, sub.ID, user.ID); err != nil {
		t.Fatalf("unassign of absent pair must be a no-op, got %v", err)
	}

	if _, _, err := f.assignmentService.Assign(ctx, sub.ID, user.ID, 10); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := f.assignmentService.Unassign(ctx, sub.ID, user.ID); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if _, err := f.assignmentService.GetBySubjectAndUser(ctx, sub.ID, user.ID); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("record still present after unassign: %v", err)
	}
}

func TestAssignManySkipsUnknownUsers(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub := f.seedSubject(t, "Onboarding")
	ava := f.seedUser(t, "Ava", "ava@example.com")
	ben := f.seedUser(t, "Ben", "ben@example.com")

	outcomes, err := f.assignmentService.AssignMany(ctx, sub.ID, []int{ava.ID, 999, ben.ID})
	if err != nil {
		t.Fatalf("AssignMany: %v", err)
	}

	want := []model.AssignmentOutcome{
		{UserID: ava.ID, Status: model.AssignmentAssigned},
		{UserID: 999, Status: model.AssignmentSkipped},
		{UserID: ben.ID, Status: model.AssignmentAssigned},
	}
	if len(outcomes) != len(want) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(want))
	}
	for i, w := range want {
		if outcomes[i].UserID != w.UserID || outcomes[i].Status != w.Status {
			t.Errorf("outcome[%d] = %+v, want %+v", i, outcomes[i], w)
		}
	}

	recs, _ := f.assignments.ListBySubject(ctx, sub.ID)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	for _, rec := range recs {
		if rec.CompletionRate != 0 {
			t.Errorf("bulk assign must start the rate at 0, got %d", rec.CompletionRate)
		}
	}

	// Re-running flips the known users to updated without duplicating.
	outcomes, err = f.assignmentService.AssignMany(ctx, sub.ID, []int{ava.ID, ben.ID})
	if err != nil {
		t.Fatalf("second AssignMany: %v", err)
	}
	for i, o := range outcomes {
		if o.Status != model.AssignmentUpdated {
			t.Errorf("outcome[%d].Status = %s, want %s", i, o.Status, model.AssignmentUpdated)
		}
	}
	if recs, _ := f.assignments.ListBySubject(ctx, sub.ID); len(recs) != 2 {
		t.Errorf("re-run duplicated records: %d", len(recs))
	}
}

func TestAssignManyUnknownSubject(t *testing.T) {
	f := newCatalogFixture()
	user := f.seedUser(t, "Ava", "ava@example.com")

	if _, err := f.assignmentService.AssignMany(context.Background(), 404, []int{user.ID}); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("got %v, want ErrSubjectNotFound", err)
	}
}

func TestUnassignMany(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub := f.seedSubject(t, "Onboarding")
	ava := f.seedUser(t, "Ava", "ava@example.com")
	ben := f.seedUser(t, "Ben", "ben@example.com")

	if _, err := f.assignmentService.AssignMany(ctx, sub.ID, []int{ava.ID}); err != nil {
		t.Fatalf("seed assignments: %v", err)
	}

	outcomes, err := f.assignmentService.UnassignMany(ctx, sub.ID, []int{ava.ID, ben.ID})
	if err != nil {
		t.Fatalf("UnassignMany: %v", err)
	}
	if outcomes[0].Status != model.AssignmentUnassigned {
		t.Errorf("assigned user: got %s, want %s", outcomes[0].Status, model.AssignmentUnassigned)
	}
	if outcomes[1].Status != model.AssignmentSkipped {
		t.Errorf("never-assigned user: got %s, want %s", outcomes[1].Status, model.AssignmentSkipped)
	}
	if recs, _ := f.assignments.ListBySubject(ctx, sub.ID); len(recs) != 0 {
		t.Errorf("records remain after UnassignMany: %d", len(recs))
	}
}

func TestUpdateCompletionRate(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub := f.seedSubject(t, "Onboarding")
	user := f.seedUser(t, "Ava", "ava@example.com")

	rec, err := f.assignmentService.UpdateCompletionRate(ctx, sub.ID, user.ID, 80)
	if err != nil {
		t.Fatalf("UpdateCompletionRate: %v", err)
	}
	if rec.CompletionRate != 80 {
		t.Errorf("rate = %d, want 80", rec.CompletionRate)
	}

	got, err := f.assignmentService.GetBySubjectAndUser(ctx, sub.ID, user.ID)
	if err != nil {
		t.Fatalf("GetBySubjectAndUser: %v", err)
	}
	if got.CompletionRate != 80 {
		t.Errorf("persisted rate = %d, want 80", got.CompletionRate)
	}
}

func TestGetBySubjectAndUserHydrates(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub := f.seedSubject(t, "Onboarding")
	user := f.seedUser(t, "Ava", "ava@example.com")

	if _, err := f.topicService.Create(ctx, sub.ID, &model.CreateTopicRequest{Title: "Welcome"}); err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if _, _, err := f.assignmentService.Assign(ctx, sub.ID, user.ID, 25); err != nil {
		t.Fatalf("assign: %v", err)
	}

	rec, err := f.assignmentService.GetBySubjectAndUser(ctx, sub.ID, user.ID)
	if err != nil {
		t.Fatalf("GetBySubjectAndUser: %v", err)
	}
	if rec.Subject == nil || len(rec.Subject.Topics) != 1 {
		t.Error("record must carry the hydrated subject tree")
	}
	if rec.User == nil || rec.User.Email != "ava@example.com" {
		t.Error("record must carry the public user projection")
	}
}

func TestListUsersForSubject(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	sub := f.seedSubject(t, "Onboarding")
	ava := f.seedUser(t, "Ava", "ava@example.com")
	ben := f.seedUser(t, "Ben", "ben@example.com")

	if _, err := f.assignmentService.AssignMany(ctx, sub.ID, []int{ava.ID, ben.ID}); err != nil {
		t.Fatalf("seed assignments: %v", err)
	}

	users, err := f.assignmentService.ListUsersForSubject(ctx, sub.ID)
	if err != nil {
		t.Fatalf("ListUsersForSubject: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].ID != ava.ID || users[1].ID != ben.ID {
		t.Errorf("users out of assignment order: %d, %d", users[0].ID, users[1].ID)
	}

	if _, err := f.assignmentService.ListUsersForSubject(ctx, 404); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("unknown subject: got %v, want ErrSubjectNotFound", err)
	}
}

func TestListSubjectsForUser(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	onboarding := f.seedSubject(t, "Onboarding")
	security := f.seedSubject(t, "Security Basics")
	user := f.seedUser(t, "Ava", "ava@example.com")

	if _, _, err := f.assignmentService.Assign(ctx, security.ID, user.ID, 0); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, _, err := f.assignmentService.Assign(ctx, onboarding.ID, user.ID, 0); err != nil {
		t.Fatalf("assign: %v", err)
	}

	subjects, err := f.assignmentService.ListSubjectsForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListSubjectsForUser: %v", err)
	}
	if len(subjects) != 2 {
		t.Fatalf("got %d subjects, want 2", len(subjects))
	}
	// Assignment order, not subject id order.
	if subjects[0].ID != security.ID || subjects[1].ID != onboarding.ID {
		t.Errorf("subjects out of assignment order: %d, %d", subjects[0].ID, subjects[1].ID)
	}

	if _, err := f.assignmentService.ListSubjectsForUser(ctx, 404); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: got %v, want ErrUserNotFound", err)
	}
}

// End-to-end walk through an onboarding flow: build a subject tree,
// assign a cohort, track progress, and tear the subject down.
func TestOnboardingFlow(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	sub, err := f.subjectService.Create(ctx, &model.CreateSubjectRequest{Title: "Onboarding", IsPublished: true})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	if _, err := f.topicService.Create(ctx, sub.ID, &model.CreateTopicRequest{
		Title:        "Local Environment",
		SubjectOrder: 2,
		Steps:        []model.CreateStepRequest{{Title: "Clone the repo", TopicOrder: 1}},
	}); err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if _, err := f.topicService.Create(ctx, sub.ID, &model.CreateTopicRequest{
		Title:        "Welcome",
		SubjectOrder: 1,
	}); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	ava := f.seedUser(t, "Ava", "ava@example.com")
	ben := f.seedUser(t, "Ben", "ben@example.com")

	outcomes, err := f.assignmentService.AssignMany(ctx, sub.ID, []int{ava.ID, ben.ID, 777})
	if err != nil {
		t.Fatalf("AssignMany: %v", err)
	}
	if outcomes[2].Status != model.AssignmentSkipped {
		t.Errorf("ghost user outcome = %s, want %s", outcomes[2].Status, model.AssignmentSkipped)
	}

	if _, err := f.assignmentService.UpdateCompletionRate(ctx, sub.ID, ava.ID, 100); err != nil {
		t.Fatalf("update rate: %v", err)
	}

	got, err := f.subjectService.GetByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Topics[0].Title != "Welcome" {
		t.Errorf("first topic = %q, want %q", got.Topics[0].Title, "Welcome")
	}
	if len(got.Assignments) != 2 {
		t.Fatalf("got %d assignments, want 2", len(got.Assignments))
	}
	for _, rec := range got.Assignments {
		if rec.UserID == ava.ID && rec.CompletionRate != 100 {
			t.Errorf("ava's rate = %d, want 100", rec.CompletionRate)
		}
	}

	if err := f.subjectService.Delete(ctx, sub.ID); err != nil {
		t.Fatalf("delete subject: %v", err)
	}
	if subjects, _ := f.assignmentService.ListSubjectsForUser(ctx, ava.ID); len(subjects) != 0 {
		t.Errorf("assignments survived subject deletion: %d", len(subjects))
	}
}
