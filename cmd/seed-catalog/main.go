package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/skillbase/skillbase-backend/internal/config"
	"github.com/skillbase/skillbase-backend/internal/database"
	"github.com/skillbase/skillbase-backend/internal/logger"
	"github.com/skillbase/skillbase-backend/internal/model"
	"github.com/skillbase/skillbase-backend/internal/repository"
	"github.com/skillbase/skillbase-backend/internal/service"
)

// seed-catalog provisions a demo subject with ordered topics and quizzes
// plus a handful of learner accounts assigned to it. Safe to re-run:
// existing rows are reused.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	subjectRepo := repository.NewSubjectRepository(pool)
	topicRepo := repository.NewTopicRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	subjectService := service.NewSubjectService(subjectRepo, topicRepo, quizRepo, assignmentRepo, nil, 0, log)
	topicService := service.NewTopicService(topicRepo, subjectService, log)
	quizService := service.NewQuizService(quizRepo, subjectService, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, userRepo, subjectService, log)
	userService := service.NewUserService(userRepo, cfg.BcryptCost, log)

	fmt.Println("=== Seeding Demo Catalog ===")

	// Subject
	subject, err := subjectService.GetByTitle(ctx, "Onboarding")
	if errors.Is(err, service.ErrSubjectNotFound) {
		subject, err = subjectService.Create(ctx, &model.CreateSubjectRequest{
			Title:       "Onboarding",
			Description: "First steps for new team members",
			IsPublished: true,
			Type:        "course",
		})
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed subject")
	}
	// Re-read hydrated so the child checks below see existing rows.
	subject, err = subjectService.GetByID(ctx, subject.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load subject")
	}
	fmt.Printf("Subject 'Onboarding' ready with ID: %d\n", subject.ID)

	// Topics, intentionally created out of display order to exercise the
	// subject_order sorting on read.
	if len(subject.Topics) == 0 {
		topics := []model.CreateTopicRequest{
			{Title: "Advanced Tooling", SubjectOrder: 3, Steps: []model.CreateStepRequest{
				{Title: "Editor setup", Content: "Install and configure your editor.", TopicOrder: 1},
				{Title: "Debugging", Content: "Attach a debugger to the dev stack.", TopicOrder: 2},
			}},
			{Title: "Welcome", SubjectOrder: 1, Steps: []model.CreateStepRequest{
				{Title: "Meet the team", Content: "Say hello in the team channel.", TopicOrder: 1},
			}},
			{Title: "Local Environment", SubjectOrder: 2, Steps: []model.CreateStepRequest{
				{Title: "Clone the repo", Content: "git clone and run the bootstrap script.", TopicOrder: 1},
				{Title: "Run the stack", Content: "docker compose up and verify /health.", TopicOrder: 2},
			}},
		}
		for i := range topics {
			if _, err := topicService.Create(ctx, subject.ID, &topics[i]); err != nil {
				log.Fatal().Err(err).Str("title", topics[i].Title).Msg("Failed to seed topic")
			}
		}
		fmt.Printf("Seeded %d topics\n", len(topics))
	}

	// Quizzes
	if len(subject.Quizzes) == 0 {
		options := json.RawMessage(`["Yes", "No"]`)
		quizzes := []model.CreateQuizRequest{
			{Title: "Environment Check", SubjectOrder: 2, Questions: []model.CreateQuestionRequest{
				{Prompt: "Does /health return ok on your machine?", Options: options, QuizOrder: 1},
			}},
			{Title: "Welcome Quiz", SubjectOrder: 1, Questions: []model.CreateQuestionRequest{
				{Prompt: "Have you introduced yourself to the team?", Options: options, QuizOrder: 1},
			}},
		}
		for i := range quizzes {
			if _, err := quizService.Create(ctx, subject.ID, &quizzes[i]); err != nil {
				log.Fatal().Err(err).Str("title", quizzes[i].Title).Msg("Failed to seed quiz")
			}
		}
		fmt.Printf("Seeded %d quizzes\n", len(quizzes))
	}

	// Learners
	learners := []model.CreateUserRequest{
		{Name: "Ava Reyes", Email: "ava@example.com", Password: "changeme1", Role: "learner"},
		{Name: "Ben Okafor", Email: "ben@example.com", Password: "changeme1", Role: "learner"},
		{Name: "Cleo Tanaka", Email: "cleo@example.com", Password: "changeme1", Role: "learner"},
	}
	userIDs := make([]int, 0, len(learners))
	for i := range learners {
		user, err := userService.Create(ctx, &learners[i])
		if errors.Is(err, service.ErrEmailTaken) {
			existing, ferr := userRepo.GetByEmail(ctx, learners[i].Email)
			if ferr != nil {
				log.Fatal().Err(ferr).Str("email", learners[i].Email).Msg("Failed to load existing user")
			}
			userIDs = append(userIDs, existing.ID)
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("email", learners[i].Email).Msg("Failed to seed user")
		}
		userIDs = append(userIDs, user.ID)
	}
	fmt.Printf("Learners ready: %v\n", userIDs)

	// Assignments
	outcomes, err := assignmentService.AssignMany(ctx, subject.ID, userIDs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to assign learners")
	}
	for _, o := range outcomes {
		fmt.Printf("  user %d: %s\n", o.UserID, o.Status)
	}

	fmt.Println("Done.")
}
