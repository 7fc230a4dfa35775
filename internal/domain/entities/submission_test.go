package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestSubmissionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to SubmissionStatus
		want     bool
	}{
		{StatusPending, StatusSent, true},
		{StatusPending, StatusFailed, true},
		{StatusFailed, StatusSent, true},
		{StatusFailed, StatusFailed, true},
		{StatusFailed, StatusPending, false},
		{StatusSent, StatusPending, false},
		{StatusSent, StatusFailed, false},
		{StatusSent, StatusSent, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSubmissionUpdate_Columns(t *testing.T) {
	status := StatusSent
	income := 3200
	sentAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	cols := SubmissionUpdate{
		ReportStatus:    &status,
		EstimatedIncome: &income,
		SentAt:          &sentAt,
	}.Columns()

	assert.Equal(t, map[string]interface{}{
		"report_status":    "sent",
		"estimated_income": 3200,
		"sent_at":          sentAt,
	}, cols)
	assert.True(t, SubmissionUpdate{}.IsEmpty())
}

func TestQuizSubmission_Answers(t *testing.T) {
	s := QuizSubmission{Responses: datatypes.JSONMap{
		"profession": "Freelancer",
		"hours":      nil,
		"score":      float64(3),
	}}

	assert.Equal(t, map[string]string{
		"profession": "Freelancer",
		"hours":      "",
		"score":      "3",
	}, s.Answers())
}
