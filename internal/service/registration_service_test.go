package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizlink/internal/apperr"
	"quizlink/internal/dto"
	"quizlink/internal/model"
)

func registerReq(token string) dto.RegisterLinkDTO {
	return dto.RegisterLinkDTO{
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Phone: "9876543210",
		Token: token,
	}
}

func TestRegisterCreatesStudent(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)

	result, err := e.registration.Register(registerReq(link.Token), "10.0.0.1", "test-agent")
	require.NoError(t, err)

	assert.NotZero(t, result.Student.ID)
	assert.Equal(t, "asha@example.com", result.Student.Email)
	assert.Equal(t, quiz.ID, result.QuizID)
	assert.NotZero(t, result.LinkAttemptID)

	var binding model.QuizLinkAttempt
	require.NoError(t, e.db.First(&binding, result.LinkAttemptID).Error)
	assert.Equal(t, link.ID, binding.QuizLinkID)
	assert.Equal(t, result.Student.ID, binding.StudentID)
	assert.Equal(t, "10.0.0.1", binding.IPAddress)
	assert.Equal(t, "test-agent", binding.UserAgent)

	var stored model.QuizLink
	require.NoError(t, e.db.First(&stored, link.ID).Error)
	assert.Equal(t, 1, stored.UsedCount)
}

func TestRegisterReusesStudentByEmail(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)
	existing := seedStudent(t, e.db)

	req := registerReq(link.Token)
	req.Name = "Asha R."
	req.Phone = "9000000000"

	result, err := e.registration.Register(req, "", "")
	require.NoError(t, err)

	// Same identity, refreshed details, no duplicate row.
	assert.Equal(t, existing.ID, result.Student.ID)
	assert.Equal(t, "Asha R.", result.Student.Name)
	assert.Equal(t, "9000000000", result.Student.Phone)

	var count int64
	require.NoError(t, e.db.Model(&model.Student{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterSameStudentTwiceRejected(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)

	_, err := e.registration.Register(registerReq(link.Token), "", "")
	require.NoError(t, err)

	_, err = e.registration.Register(registerReq(link.Token), "", "")
	assert.ErrorIs(t, err, apperr.ErrAlreadyAttempted)

	// The failed registration must not consume a use.
	var stored model.QuizLink
	require.NoError(t, e.db.First(&stored, link.ID).Error)
	assert.Equal(t, 1, stored.UsedCount)
}

func TestRegisterConcurrentDuplicates(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)
	seedStudent(t, e.db) // pre-resolve the identity so both racers take the insert path

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.registration.Register(registerReq(link.Token), "", "")
		}(i)
	}
	wg.Wait()

	// Exactly one racer wins; the unique index, not an existence check,
	// decides which.
	var won, lost int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, apperr.ErrAlreadyAttempted)
			lost++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)

	var bindings int64
	require.NoError(t, e.db.Model(&model.QuizLinkAttempt{}).
		Where("quiz_link_id = ?", link.ID).Count(&bindings).Error)
	assert.EqualValues(t, 1, bindings)
}

func TestRegisterDifferentStudentsShareLink(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)

	first, err := e.registration.Register(registerReq(link.Token), "", "")
	require.NoError(t, err)

	second := registerReq(link.Token)
	second.Email = "vikram@example.com"
	second.Name = "Vikram Shah"
	result, err := e.registration.Register(second, "", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.Student.ID, result.Student.ID)

	var stored model.QuizLink
	require.NoError(t, e.db.First(&stored, link.ID).Error)
	assert.Equal(t, 2, stored.UsedCount)
}

func TestRegisterMaxUsesBoundary(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)
	require.NoError(t, e.db.Model(link).Update("max_uses", 2).Error)

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	var failures int
	for _, email := range emails {
		req := registerReq(link.Token)
		req.Email = email
		if _, err := e.registration.Register(req, "", ""); err != nil {
			assert.ErrorIs(t, err, apperr.ErrLinkExhaustedUses)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	var stored model.QuizLink
	require.NoError(t, e.db.First(&stored, link.ID).Error)
	assert.Equal(t, 2, stored.UsedCount)
}

func TestRegisterInvalidLink(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)
	require.NoError(t, e.db.Model(link).Update("is_active", false).Error)

	_, err := e.registration.Register(registerReq(link.Token), "", "")
	assert.ErrorIs(t, err, apperr.ErrLinkDeactivated)

	_, err = e.registration.Register(registerReq("no-such-token"), "", "")
	assert.ErrorIs(t, err, apperr.ErrLinkNotFound)
}
