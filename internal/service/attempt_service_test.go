package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizlink/internal/apperr"
	"quizlink/internal/dto"
	"quizlink/internal/model"
)

func startReq(quizID, studentID uint) dto.StartAttemptDTO {
	return dto.StartAttemptDTO{QuizID: quizID, StudentID: studentID}
}

func TestGetQuizDetailSanitized(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 3)

	detail, err := e.attempts.GetQuizDetail(quiz.ID)
	require.NoError(t, err)

	assert.Equal(t, quiz.Title, detail.Quiz.Title)
	require.Len(t, detail.Questions, 3)
	for i, q := range detail.Questions {
		assert.Equal(t, i+1, q.OrderInQuiz)
		assert.Equal(t, []string{"Paris", "London", "Berlin", "Madrid"}, q.Options)
	}
}

func TestGetQuizDetailErrors(t *testing.T) {
	e := newEnv(t)

	_, err := e.attempts.GetQuizDetail(42)
	assert.ErrorIs(t, err, apperr.ErrQuizMissing)

	quiz := seedQuiz(t, e.db, 1)
	require.NoError(t, e.db.Model(quiz).Update("is_active", false).Error)
	_, err = e.attempts.GetQuizDetail(quiz.ID)
	assert.ErrorIs(t, err, apperr.ErrQuizInactive)
}

func TestStartNewAttempt(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 2)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "10.0.0.1", "agent")
	require.NoError(t, err)

	assert.NotZero(t, session.AttemptID)
	assert.Equal(t, 1, session.AttemptNumber)
	assert.Equal(t, quiz.TimeLimit*60, session.TimeRemaining)
	assert.False(t, session.Resumed)
	assert.Empty(t, session.ExistingAnswers)

	status, err := e.statusRepo.Find(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, model.QuizStatusInProgress, status.Status)
	assert.Equal(t, 1, status.AttemptsUsed)
}

func TestStartResumesInProgressAttempt(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 2)
	student := seedStudent(t, e.db)

	first, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)

	require.NoError(t, e.attempts.SaveAnswer(first.AttemptID, dto.SaveAnswerDTO{
		QuestionID:     quiz.Questions[0].ID,
		SelectedAnswer: "A",
	}))
	require.NoError(t, e.attempts.SaveAnswer(first.AttemptID, dto.SaveAnswerDTO{
		QuestionID:     quiz.Questions[1].ID,
		SelectedAnswer: "C",
	}))

	second, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)

	assert.Equal(t, first.AttemptID, second.AttemptID)
	assert.True(t, second.Resumed)
	require.Len(t, second.ExistingAnswers, 2)
	assert.Equal(t, "A", second.ExistingAnswers[0].SelectedAnswer)
	assert.Equal(t, "C", second.ExistingAnswers[1].SelectedAnswer)

	// Resume must not burn an attempt from the quota.
	status, err := e.statusRepo.Find(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, status.AttemptsUsed)
}

func TestStartQuotaExhausted(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)
	_, err = e.attempts.Complete(session.AttemptID, dto.CompleteAttemptDTO{TimeSpent: 60})
	require.NoError(t, err)

	_, err = e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	assert.ErrorIs(t, err, apperr.ErrNoAttemptsRemaining)
}

func TestStartSecondAttemptWhenAllowed(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	require.NoError(t, e.db.Model(quiz).Update("max_attempts", 2).Error)
	student := seedStudent(t, e.db)

	first, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)
	_, err = e.attempts.Complete(first.AttemptID, dto.CompleteAttemptDTO{TimeSpent: 60})
	require.NoError(t, err)

	second, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.AttemptID, second.AttemptID)
	assert.Equal(t, 2, second.AttemptNumber)
}

func TestStartCompletesExpiredAttempt(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)

	// Simulate the countdown having hit zero while the page was gone.
	require.NoError(t, e.db.Model(&model.Attempt{}).
		Where("id = ?", session.AttemptID).Update("time_remaining", 0).Error)

	_, err = e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	assert.ErrorIs(t, err, apperr.ErrNoAttemptsRemaining)

	stored, err := e.attemptRepo.FindByID(session.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, stored.Status)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 0, *stored.Score)
}

func TestStartWindowChecks(t *testing.T) {
	e := newEnv(t)
	student := seedStudent(t, e.db)

	_, err := e.attempts.StartOrResume(startReq(404, student.ID), "", "")
	assert.ErrorIs(t, err, apperr.ErrQuizMissing)

	quiz := seedQuiz(t, e.db, 1)
	future := time.Now().Add(time.Hour)
	require.NoError(t, e.db.Model(quiz).Update("valid_from", future).Error)
	_, err = e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	assert.ErrorIs(t, err, apperr.ErrQuizNotYetAvailable)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, e.db.Model(quiz).
		Updates(map[string]interface{}{"valid_from": nil, "valid_until": past}).Error)
	_, err = e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	assert.ErrorIs(t, err, apperr.ErrQuizWindowExpired)
}

func TestSaveAnswerComputesCorrectness(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 2)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)

	require.NoError(t, e.attempts.SaveAnswer(session.AttemptID, dto.SaveAnswerDTO{
		QuestionID:     quiz.Questions[0].ID,
		SelectedAnswer: "A",
	}))
	require.NoError(t, e.attempts.SaveAnswer(session.AttemptID, dto.SaveAnswerDTO{
		QuestionID:     quiz.Questions[1].ID,
		SelectedAnswer: "B",
	}))

	responses, err := e.responseRepo.FindByAttemptID(session.AttemptID)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.True(t, responses[0].IsCorrect)
	assert.False(t, responses[1].IsCorrect)
}

func TestSaveAnswerReplacesPrevious(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)

	questionID := quiz.Questions[0].ID
	require.NoError(t, e.attempts.SaveAnswer(session.AttemptID, dto.SaveAnswerDTO{
		QuestionID: questionID, SelectedAnswer: "B",
	}))
	require.NoError(t, e.attempts.SaveAnswer(session.AttemptID, dto.SaveAnswerDTO{
		QuestionID: questionID, SelectedAnswer: "A",
	}))

	responses, err := e.responseRepo.FindByAttemptID(session.AttemptID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "A", responses[0].SelectedAnswer)
	assert.True(t, responses[0].IsCorrect)
}

func TestSaveAnswerRejections(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	foreign := seedQuiz(t, e.db, 1)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)

	err = e.attempts.SaveAnswer(session.AttemptID, dto.SaveAnswerDTO{
		QuestionID: foreign.Questions[0].ID, SelectedAnswer: "A",
	})
	assert.ErrorIs(t, err, apperr.ErrQuestionNotInQuiz)

	err = e.attempts.SaveAnswer(404, dto.SaveAnswerDTO{
		QuestionID: quiz.Questions[0].ID, SelectedAnswer: "A",
	})
	assert.ErrorIs(t, err, apperr.ErrAttemptNotFound)

	_, err = e.attempts.Complete(session.AttemptID, dto.CompleteAttemptDTO{TimeSpent: 30})
	require.NoError(t, err)
	err = e.attempts.SaveAnswer(session.AttemptID, dto.SaveAnswerDTO{
		QuestionID: quiz.Questions[0].ID, SelectedAnswer: "A",
	})
	assert.ErrorIs(t, err, apperr.ErrAttemptNotActive)
}

func TestSyncTimeMonotonic(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)

	require.NoError(t, e.attempts.SyncTime(session.AttemptID, 1500))

	stored, err := e.attemptRepo.FindByID(session.AttemptID)
	require.NoError(t, err)
	require.NotNil(t, stored.TimeRemaining)
	assert.Equal(t, 1500, *stored.TimeRemaining)

	// An out-of-order delivery with more time than the checkpoint is rejected
	// and the stored value stands.
	err = e.attempts.SyncTime(session.AttemptID, 1700)
	assert.ErrorIs(t, err, apperr.ErrStaleTimeSync)

	stored, err = e.attemptRepo.FindByID(session.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, 1500, *stored.TimeRemaining)

	require.NoError(t, e.attempts.SyncTime(session.AttemptID, 1200))
}

func TestSyncTimeOnTerminalAttempt(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)
	_, err = e.attempts.Complete(session.AttemptID, dto.CompleteAttemptDTO{TimeSpent: 30})
	require.NoError(t, err)

	err = e.attempts.SyncTime(session.AttemptID, 100)
	assert.ErrorIs(t, err, apperr.ErrAttemptNotActive)
}

func TestCompleteScoresFromStoredResponses(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 5)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)

	// Four correct answers, one question left unanswered. The unanswered one
	// counts as incorrect: 4/5 = 80.
	for i := 0; i < 4; i++ {
		require.NoError(t, e.attempts.SaveAnswer(session.AttemptID, dto.SaveAnswerDTO{
			QuestionID: quiz.Questions[i].ID, SelectedAnswer: "A",
		}))
	}

	result, err := e.attempts.Complete(session.AttemptID, dto.CompleteAttemptDTO{TimeSpent: 400})
	require.NoError(t, err)

	assert.Equal(t, 80, result.Score)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.Equal(t, 4, result.CorrectAnswers)
	assert.True(t, result.Passed)
	require.NotNil(t, result.CompletedAt)

	status, err := e.statusRepo.Find(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, model.QuizStatusCompleted, status.Status)
}

func TestCompleteIsIdempotent(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 2)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)
	require.NoError(t, e.attempts.SaveAnswer(session.AttemptID, dto.SaveAnswerDTO{
		QuestionID: quiz.Questions[0].ID, SelectedAnswer: "A",
	}))

	first, err := e.attempts.Complete(session.AttemptID, dto.CompleteAttemptDTO{TimeSpent: 100})
	require.NoError(t, err)

	// A duplicate submit returns the stored result without re-scoring, even
	// if more answers somehow arrived in between.
	second, err := e.attempts.Complete(session.AttemptID, dto.CompleteAttemptDTO{TimeSpent: 999})
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.CorrectAnswers, second.CorrectAnswers)
	assert.Equal(t, first.Passed, second.Passed)

	stored, err := e.attemptRepo.FindByID(session.AttemptID)
	require.NoError(t, err)
	require.NotNil(t, stored.TimeSpent)
	assert.Equal(t, 100, *stored.TimeSpent)
}

func TestCompleteAttachesLinkAttempt(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)

	reg, err := e.registration.Register(registerReq(link.Token), "", "")
	require.NoError(t, err)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, reg.Student.ID), "", "")
	require.NoError(t, err)

	_, err = e.attempts.Complete(session.AttemptID, dto.CompleteAttemptDTO{
		TimeSpent:     50,
		LinkAttemptID: &reg.LinkAttemptID,
	})
	require.NoError(t, err)

	var binding model.QuizLinkAttempt
	require.NoError(t, e.db.First(&binding, reg.LinkAttemptID).Error)
	require.NotNil(t, binding.AttemptID)
	assert.Equal(t, session.AttemptID, *binding.AttemptID)
}

func TestCompleteClearsDisruptionCounters(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)

	_, err = e.monitor.Record(quiz.ID, student.ID, "reload")
	require.NoError(t, err)

	_, err = e.attempts.Complete(session.AttemptID, dto.CompleteAttemptDTO{TimeSpent: 10})
	require.NoError(t, err)

	warnings, err := e.monitor.Warnings(quiz.ID, student.ID)
	require.NoError(t, err)
	assert.Zero(t, warnings)
}

func TestCompleteUnknownAttempt(t *testing.T) {
	e := newEnv(t)

	_, err := e.attempts.Complete(404, dto.CompleteAttemptDTO{})
	assert.ErrorIs(t, err, apperr.ErrAttemptNotFound)
}

func TestResetReopensEligibility(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	student := seedStudent(t, e.db)

	session, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)
	require.NoError(t, e.attempts.SaveAnswer(session.AttemptID, dto.SaveAnswerDTO{
		QuestionID: quiz.Questions[0].ID, SelectedAnswer: "A",
	}))
	_, err = e.attempts.Complete(session.AttemptID, dto.CompleteAttemptDTO{TimeSpent: 30})
	require.NoError(t, err)

	require.NoError(t, e.attempts.Reset(student.ID, quiz.ID))

	_, err = e.attemptRepo.FindByID(session.AttemptID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	responses, err := e.responseRepo.FindByAttemptID(session.AttemptID)
	require.NoError(t, err)
	assert.Empty(t, responses)

	status, err := e.statusRepo.Find(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, model.QuizStatusAvailable, status.Status)
	assert.Zero(t, status.AttemptsUsed)

	// The student can start over.
	fresh, err := e.attempts.StartOrResume(startReq(quiz.ID, student.ID), "", "")
	require.NoError(t, err)
	assert.NotEqual(t, session.AttemptID, fresh.AttemptID)
}

func TestResetWithoutAttempt(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	student := seedStudent(t, e.db)

	err := e.attempts.Reset(student.ID, quiz.ID)
	assert.ErrorIs(t, err, apperr.ErrAttemptNotFound)
}
