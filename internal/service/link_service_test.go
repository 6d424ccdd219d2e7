package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizlink/internal/apperr"
	"quizlink/internal/model"
)

func TestValidateHappyPath(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 3)
	link := seedLink(t, e.db, quiz.ID)

	result, err := e.links.Validate(link.Token, nil)
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
	assert.False(t, result.HasAttempted)
	require.NotNil(t, result.Quiz)
	assert.Equal(t, quiz.ID, result.Quiz.ID)
	assert.Equal(t, quiz.Title, result.Quiz.Title)
	assert.Equal(t, quiz.TimeLimit, result.Quiz.TimeLimit)
	require.NotNil(t, result.QuizLink)
	assert.Equal(t, 0, result.QuizLink.UsedCount)
}

func TestValidateTouchesLastAccessed(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)

	_, err := e.links.Validate(link.Token, nil)
	require.NoError(t, err)

	var stored model.QuizLink
	require.NoError(t, e.db.First(&stored, link.ID).Error)
	assert.NotNil(t, stored.LastAccessedAt)
}

func TestValidateUnknownToken(t *testing.T) {
	e := newEnv(t)

	result, err := e.links.Validate("deadbeef", nil)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Equal(t, apperr.ReasonNotFound, result.Reason)
	assert.Nil(t, result.Quiz)
}

func TestValidateFailureTaxonomy(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name   string
		mutate func(t *testing.T, e *env, quiz *model.Quiz, link *model.QuizLink)
		reason string
	}{
		{
			name: "deactivated link",
			mutate: func(t *testing.T, e *env, _ *model.Quiz, link *model.QuizLink) {
				require.NoError(t, e.db.Model(link).Update("is_active", false).Error)
			},
			reason: apperr.ReasonDeactivated,
		},
		{
			name: "expired link",
			mutate: func(t *testing.T, e *env, _ *model.Quiz, link *model.QuizLink) {
				require.NoError(t, e.db.Model(link).Update("expires_at", past).Error)
			},
			reason: apperr.ReasonExpired,
		},
		{
			name: "exhausted uses",
			mutate: func(t *testing.T, e *env, _ *model.Quiz, link *model.QuizLink) {
				require.NoError(t, e.db.Model(link).
					Updates(map[string]interface{}{"max_uses": 2, "used_count": 2}).Error)
			},
			reason: apperr.ReasonExhaustedUses,
		},
		{
			name: "inactive quiz",
			mutate: func(t *testing.T, e *env, quiz *model.Quiz, _ *model.QuizLink) {
				require.NoError(t, e.db.Model(quiz).Update("is_active", false).Error)
			},
			reason: apperr.ReasonQuizInactive,
		},
		{
			name: "quiz not yet available",
			mutate: func(t *testing.T, e *env, quiz *model.Quiz, _ *model.QuizLink) {
				require.NoError(t, e.db.Model(quiz).Update("valid_from", future).Error)
			},
			reason: apperr.ReasonQuizNotYetAvailable,
		},
		{
			name: "quiz window expired",
			mutate: func(t *testing.T, e *env, quiz *model.Quiz, _ *model.QuizLink) {
				require.NoError(t, e.db.Model(quiz).Update("valid_until", past).Error)
			},
			reason: apperr.ReasonQuizWindowExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			quiz := seedQuiz(t, e.db, 1)
			link := seedLink(t, e.db, quiz.ID)
			tt.mutate(t, e, quiz, link)

			result, err := e.links.Validate(link.Token, nil)
			require.NoError(t, err)
			assert.False(t, result.Valid)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestValidateCheckOrderDeactivatedBeforeExpired(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, e.db.Model(link).
		Updates(map[string]interface{}{"is_active": false, "expires_at": past}).Error)

	result, err := e.links.Validate(link.Token, nil)
	require.NoError(t, err)
	assert.Equal(t, apperr.ReasonDeactivated, result.Reason)
}

func TestValidateReportsHasAttempted(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)
	student := seedStudent(t, e.db)

	require.NoError(t, e.db.Create(&model.QuizLinkAttempt{
		QuizLinkID: link.ID,
		StudentID:  student.ID,
		QuizID:     quiz.ID,
	}).Error)

	result, err := e.links.Validate(link.Token, &student.ID)
	require.NoError(t, err)

	// The link itself remains usable by other students.
	assert.True(t, result.Valid)
	assert.True(t, result.HasAttempted)

	other := student.ID + 100
	result, err = e.links.Validate(link.Token, &other)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.False(t, result.HasAttempted)
}

func TestGenerateLink(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)

	maxUses := 5
	expires := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	link, err := e.links.GenerateLink(quiz.ID, dtoGenerateLink(&expires, &maxUses), nil)
	require.NoError(t, err)

	assert.Len(t, link.Token, 64)
	assert.Equal(t, testBaseURL+"/q/"+link.Token, link.URL)
	assert.Equal(t, quiz.ID, link.QuizID)
	require.NotNil(t, link.MaxUses)
	assert.Equal(t, maxUses, *link.MaxUses)
	assert.True(t, link.IsActive)
	assert.Zero(t, link.UsedCount)
}

func TestGenerateLinkUnknownQuiz(t *testing.T) {
	e := newEnv(t)

	_, err := e.links.GenerateLink(9999, dtoGenerateLink(nil, nil), nil)
	assert.ErrorIs(t, err, apperr.ErrQuizMissing)
}

func TestGenerateLinkTokensAreDistinct(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		link, err := e.links.GenerateLink(quiz.ID, dtoGenerateLink(nil, nil), nil)
		require.NoError(t, err)
		assert.False(t, seen[link.Token])
		seen[link.Token] = true
	}
}

func TestListLinks(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	other := seedQuiz(t, e.db, 1)

	for i := 0; i < 3; i++ {
		_, err := e.links.GenerateLink(quiz.ID, dtoGenerateLink(nil, nil), nil)
		require.NoError(t, err)
	}
	_, err := e.links.GenerateLink(other.ID, dtoGenerateLink(nil, nil), nil)
	require.NoError(t, err)

	links, err := e.links.ListLinks(quiz.ID)
	require.NoError(t, err)
	assert.Len(t, links, 3)
	for _, l := range links {
		assert.Equal(t, quiz.ID, l.QuizID)
		assert.Contains(t, l.URL, "/q/")
	}
}

func TestDeactivateLink(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)

	require.NoError(t, e.links.DeactivateLink(link.ID))

	result, err := e.links.Validate(link.Token, nil)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, apperr.ReasonDeactivated, result.Reason)

	// The row and its history survive deactivation.
	var stored model.QuizLink
	require.NoError(t, e.db.First(&stored, link.ID).Error)
	assert.False(t, stored.IsActive)

	err = e.links.DeactivateLink(9999)
	assert.ErrorIs(t, err, apperr.ErrLinkNotFound)
}

func TestCheckAttempt(t *testing.T) {
	e := newEnv(t)
	quiz := seedQuiz(t, e.db, 1)
	link := seedLink(t, e.db, quiz.ID)
	student := seedStudent(t, e.db)

	result, err := e.links.CheckAttempt(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.False(t, result.HasAttempted)
	assert.Zero(t, result.AttemptCount)

	require.NoError(t, e.db.Create(&model.QuizLinkAttempt{
		QuizLinkID: link.ID,
		StudentID:  student.ID,
		QuizID:     quiz.ID,
	}).Error)

	result, err = e.links.CheckAttempt(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.True(t, result.HasAttempted)
	assert.Equal(t, 1, result.AttemptCount)
}
