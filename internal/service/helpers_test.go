package service

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"quizlink/internal/dto"
	"quizlink/internal/guard"
	"quizlink/internal/model"
	"quizlink/internal/repository"
	"quizlink/internal/token"
)

const testBaseURL = "http://localhost:8080"

// newTestDB opens an isolated in-memory database. TranslateError matches the
// production configuration so unique violations surface as
// gorm.ErrDuplicatedKey, which the registration path depends on. The pool is
// pinned to one connection so concurrent test writers serialize.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Student{},
		&model.Admin{},
		&model.Quiz{},
		&model.Question{},
		&model.QuizLink{},
		&model.QuizLinkAttempt{},
		&model.Attempt{},
		&model.Response{},
		&model.StudentQuizStatus{},
	))
	return db
}

// env bundles the full service graph over one test database.
type env struct {
	db      *gorm.DB
	store   *guard.MemoryStore
	monitor *guard.Monitor

	links        LinkService
	registration RegistrationService
	attempts     AttemptService
	disruptions  DisruptionService

	attemptRepo     repository.AttemptRepository
	responseRepo    repository.ResponseRepository
	statusRepo      repository.StatusRepository
	linkAttemptRepo repository.LinkAttemptRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := newTestDB(t)
	store := guard.NewMemoryStore()
	monitor := guard.NewMonitor(store)

	quizRepo := repository.NewQuizRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	linkRepo := repository.NewQuizLinkRepository(db)
	linkAttemptRepo := repository.NewLinkAttemptRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	statusRepo := repository.NewStatusRepository(db)

	links := NewLinkService(linkRepo, quizRepo, linkAttemptRepo, token.NewGenerator(), nil, testBaseURL)
	registration := NewRegistrationService(links, studentRepo, linkAttemptRepo, linkRepo)
	attempts := NewAttemptService(quizRepo, questionRepo, attemptRepo, responseRepo, statusRepo, linkAttemptRepo, monitor)
	disruptions := NewDisruptionService(monitor, attempts, attemptRepo, quizRepo)

	return &env{
		db:              db,
		store:           store,
		monitor:         monitor,
		links:           links,
		registration:    registration,
		attempts:        attempts,
		disruptions:     disruptions,
		attemptRepo:     attemptRepo,
		responseRepo:    responseRepo,
		statusRepo:      statusRepo,
		linkAttemptRepo: linkAttemptRepo,
	}
}

// seedQuiz creates an active quiz with questionCount questions whose correct
// answer is always "A".
func seedQuiz(t *testing.T, db *gorm.DB, questionCount int) *model.Quiz {
	t.Helper()

	quiz := &model.Quiz{
		Title:        "Geography Basics",
		Description:  "Capitals and rivers",
		TimeLimit:    30,
		PassingScore: 70,
		MaxAttempts:  1,
		IsActive:     true,
	}
	require.NoError(t, db.Create(quiz).Error)

	options, err := json.Marshal([]string{"Paris", "London", "Berlin", "Madrid"})
	require.NoError(t, err)
	for i := 0; i < questionCount; i++ {
		require.NoError(t, db.Create(&model.Question{
			QuizID:        quiz.ID,
			Text:          fmt.Sprintf("Question %d", i+1),
			Options:       string(options),
			CorrectAnswer: "A",
			OrderInQuiz:   i + 1,
		}).Error)
	}

	require.NoError(t, db.Preload("Questions").First(quiz, quiz.ID).Error)
	return quiz
}

func seedStudent(t *testing.T, db *gorm.DB) *model.Student {
	t.Helper()

	student := &model.Student{
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Phone: "9876543210",
	}
	require.NoError(t, db.Create(student).Error)
	return student
}

func dtoGenerateLink(expiresAt *time.Time, maxUses *int) dto.GenerateLinkDTO {
	return dto.GenerateLinkDTO{ExpiresAt: expiresAt, MaxUses: maxUses}
}

func seedLink(t *testing.T, db *gorm.DB, quizID uint) *model.QuizLink {
	t.Helper()

	tok, err := token.NewGenerator().Generate()
	require.NoError(t, err)

	link := &model.QuizLink{
		QuizID:   quizID,
		Token:    tok,
		IsActive: true,
	}
	require.NoError(t, db.Create(link).Error)
	return link
}
