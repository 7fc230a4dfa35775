package entities

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SubmissionStatus acompanha o envio do relatório de uma submissão
type SubmissionStatus string

const (
	StatusPending SubmissionStatus = "pending"
	StatusSent    SubmissionStatus = "sent"
	StatusFailed  SubmissionStatus = "failed"
)

// CanTransitionTo reports whether moving from s to next keeps the status moving
// forward. failed → failed is allowed so a retry can record a new attempt.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusSent || next == StatusFailed
	case StatusFailed:
		return next == StatusSent || next == StatusFailed
	}
	return false
}

// QuizSubmission representa as respostas de um usuário e o estado do relatório
type QuizSubmission struct {
	ID              uuid.UUID         `json:"id" gorm:"primaryKey;column:id;type:uuid;default:gen_random_uuid()"`
	Email           string            `json:"email" gorm:"column:email;not null"`
	Responses       datatypes.JSONMap `json:"responses" gorm:"column:responses;type:jsonb"`
	ReportStatus    SubmissionStatus  `json:"report_status" gorm:"column:report_status;type:varchar(16);default:pending"`
	RetryCount      int               `json:"retry_count" gorm:"column:retry_count;default:0"`
	ReportText      string            `json:"xai_response" gorm:"column:xai_response;type:text"`
	EstimatedIncome int               `json:"estimated_income" gorm:"column:estimated_income"`
	ErrorLog        *string           `json:"error_log" gorm:"column:error_log;type:text"`
	CreatedAt       time.Time         `json:"created_at" gorm:"column:created_at"`
	SentAt          *time.Time        `json:"sent_at" gorm:"column:sent_at"`
	Purchased       bool              `json:"purchased" gorm:"column:purchased;default:false"`
	PurchaseDate    *time.Time        `json:"purchase_date" gorm:"column:purchase_date"`
	StripeSessionID *string           `json:"stripe_session_id" gorm:"column:stripe_session_id"`
}

// TableName define o nome da tabela no banco de dados
func (QuizSubmission) TableName() string {
	return "quiz_responses"
}

// Answers returns the stored responses as plain strings.
func (s QuizSubmission) Answers() map[string]string {
	answers := make(map[string]string, len(s.Responses))
	for key, value := range s.Responses {
		switch v := value.(type) {
		case string:
			answers[key] = v
		case nil:
			answers[key] = ""
		default:
			answers[key] = fmt.Sprint(v)
		}
	}
	return answers
}

// NewResponses converts quiz answers to the jsonb column type.
func NewResponses(answers map[string]string) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(answers))
	for key, value := range answers {
		out[key] = value
	}
	return out
}

// SortedAnswerKeys returns the answer keys in a stable order for prompts and logs.
func SortedAnswerKeys(answers map[string]string) []string {
	keys := make([]string, 0, len(answers))
	for key := range answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SubmissionUpdate is a partial update. Nil fields are left untouched.
type SubmissionUpdate struct {
	ReportStatus    *SubmissionStatus
	RetryCount      *int
	ReportText      *string
	EstimatedIncome *int
	ErrorLog        *string
	SentAt          *time.Time
	Purchased       *bool
	PurchaseDate    *time.Time
	StripeSessionID *string
}

// Columns maps the set fields to their column names.
func (u SubmissionUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if u.ReportStatus != nil {
		cols["report_status"] = string(*u.ReportStatus)
	}
	if u.RetryCount != nil {
		cols["retry_count"] = *u.RetryCount
	}
	if u.ReportText != nil {
		cols["xai_response"] = *u.ReportText
	}
	if u.EstimatedIncome != nil {
		cols["estimated_income"] = *u.EstimatedIncome
	}
	if u.ErrorLog != nil {
		cols["error_log"] = *u.ErrorLog
	}
	if u.SentAt != nil {
		cols["sent_at"] = u.SentAt.UTC()
	}
	if u.Purchased != nil {
		cols["purchased"] = *u.Purchased
	}
	if u.PurchaseDate != nil {
		cols["purchase_date"] = u.PurchaseDate.UTC()
	}
	if u.StripeSessionID != nil {
		cols["stripe_session_id"] = *u.StripeSessionID
	}
	return cols
}

// IsEmpty reports whether the update would change nothing.
func (u SubmissionUpdate) IsEmpty() bool {
	return len(u.Columns()) == 0
}
