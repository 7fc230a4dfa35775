package quiz

import (
	"errors"
	"regexp"
	"time"
)

// Phase is the screen a session is on.
type Phase string

const (
	PhaseQuestions Phase = "questions"
	PhaseEmailGate Phase = "email_gate"
	PhasePaywall   Phase = "paywall"
)

// PaywallWindow is how long the discounted offer stays open.
const PaywallWindow = 15 * time.Minute

var (
	ErrWrongPhase      = errors.New("operation not allowed in the current phase")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidAnswer   = errors.New("answer is not one of the question options")
	ErrUnanswered      = errors.New("current question has not been answered")
	ErrInvalidEmail    = errors.New("invalid email address")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail applies the basic local@domain.tld check used across the funnel.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Session is the serializable state of one user's pass through the quiz.
type Session struct {
	ID              string            `json:"id"`
	BlockIndex      int               `json:"blockIndex"`
	QuestionIndex   int               `json:"questionIndex"`
	Answers         map[string]string `json:"answers"`
	UnlockedBadges  []string          `json:"unlockedBadges"`
	Phase           Phase             `json:"phase"`
	Email           string            `json:"email,omitempty"`
	EstimatedIncome int               `json:"estimatedIncome,omitempty"`
	Badge           string            `json:"badge,omitempty"`
	PaywallDeadline *time.Time        `json:"paywallDeadline,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// NewSession starts a session at the first question.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:             id,
		Answers:        map[string]string{},
		UnlockedBadges: []string{},
		Phase:          PhaseQuestions,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SecondsLeft returns the remaining paywall countdown, never below zero.
func (s *Session) SecondsLeft(now time.Time) int {
	if s.PaywallDeadline == nil {
		return 0
	}
	left := s.PaywallDeadline.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left / time.Second)
}

// Wizard applies navigation rules to a Session.
type Wizard struct {
	catalogue Catalogue
	session   *Session
}

// NewWizard binds a session to a catalogue.
func NewWizard(catalogue Catalogue, session *Session) *Wizard {
	if session.Answers == nil {
		session.Answers = map[string]string{}
	}
	return &Wizard{catalogue: catalogue, session: session}
}

// Session returns the underlying state.
func (w *Wizard) Session() *Session { return w.session }

// Current returns the block and question the session points at.
func (w *Wizard) Current() (Block, Question) {
	b := w.catalogue[w.session.BlockIndex]
	return b, b.Questions[w.session.QuestionIndex]
}

// Answer records value for questionID and unlocks the block badge once its
// condition holds. Answering again overwrites the previous value.
func (w *Wizard) Answer(questionID, value string, now time.Time) error {
	if w.session.Phase != PhaseQuestions {
		return ErrWrongPhase
	}
	q, blockIndex, ok := w.catalogue.Find(questionID)
	if !ok {
		return ErrUnknownQuestion
	}
	if !q.Accepts(value) {
		return ErrInvalidAnswer
	}

	w.session.Answers[questionID] = value

	if rule := w.catalogue[blockIndex].Badge; rule != nil && rule.Condition(w.session.Answers) {
		w.unlock(rule.Badge.Name)
	}
	w.session.UpdatedAt = now
	return nil
}

func (w *Wizard) unlock(name string) {
	for _, b := range w.session.UnlockedBadges {
		if b == name {
			return
		}
	}
	w.session.UnlockedBadges = append(w.session.UnlockedBadges, name)
}

// Next moves to the following question, the next block, or the email gate.
func (w *Wizard) Next(now time.Time) error {
	if w.session.Phase != PhaseQuestions {
		return ErrWrongPhase
	}
	block, q := w.Current()
	if _, answered := w.session.Answers[q.ID]; !answered {
		return ErrUnanswered
	}

	switch {
	case w.session.QuestionIndex < len(block.Questions)-1:
		w.session.QuestionIndex++
	case w.session.BlockIndex < len(w.catalogue)-1:
		w.session.BlockIndex++
		w.session.QuestionIndex = 0
	default:
		w.session.Phase = PhaseEmailGate
	}
	w.session.UpdatedAt = now
	return nil
}

// Prev steps back one question. From the email gate it returns to the last
// question. At the first question it does nothing.
func (w *Wizard) Prev(now time.Time) error {
	switch w.session.Phase {
	case PhaseEmailGate:
		w.session.Phase = PhaseQuestions
	case PhaseQuestions:
		switch {
		case w.session.QuestionIndex > 0:
			w.session.QuestionIndex--
		case w.session.BlockIndex > 0:
			w.session.BlockIndex--
			w.session.QuestionIndex = len(w.catalogue[w.session.BlockIndex].Questions) - 1
		}
	default:
		return ErrWrongPhase
	}
	w.session.UpdatedAt = now
	return nil
}

// Progress is the share of catalogue questions answered, from 0 to 100.
func (w *Wizard) Progress() float64 {
	total := w.catalogue.TotalQuestions()
	if total == 0 {
		return 0
	}
	answered := 0
	for _, b := range w.catalogue {
		for _, q := range b.Questions {
			if _, ok := w.session.Answers[q.ID]; ok {
				answered++
			}
		}
	}
	return float64(answered) / float64(total) * 100
}

// SubmitEmail stores the address captured at the email gate.
func (w *Wizard) SubmitEmail(email string, now time.Time) error {
	if w.session.Phase != PhaseEmailGate {
		return ErrWrongPhase
	}
	if !ValidEmail(email) {
		return ErrInvalidEmail
	}
	w.session.Email = email
	w.session.UpdatedAt = now
	return nil
}

// ShowPaywall records the report summary and starts the offer countdown.
func (w *Wizard) ShowPaywall(estimatedIncome int, badge string, now time.Time) error {
	if w.session.Phase != PhaseEmailGate || w.session.Email == "" {
		return ErrWrongPhase
	}
	deadline := now.Add(PaywallWindow)
	w.session.Phase = PhasePaywall
	w.session.EstimatedIncome = estimatedIncome
	w.session.Badge = badge
	w.session.PaywallDeadline = &deadline
	w.session.UpdatedAt = now
	return nil
}
