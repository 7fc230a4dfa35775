// Package quiz holds the question catalogue and the wizard that walks a user
// through it.
package quiz

import "github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"

// QuestionType distinguishes option lists from free-text answers.
type QuestionType string

const (
	SingleChoice QuestionType = "single"
	FreeText     QuestionType = "text"
)

// Question é uma pergunta do quiz
type Question struct {
	ID       string       `json:"id"`
	Question string       `json:"question"`
	Options  []string     `json:"options"`
	Type     QuestionType `json:"type"`
}

// Accepts reports whether value is a legal answer.
func (q Question) Accepts(value string) bool {
	if q.Type == FreeText {
		return value != ""
	}
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// BadgeRule unlocks a badge once its predicate holds over the answers so far.
type BadgeRule struct {
	Badge     entities.Badge
	Condition func(answers map[string]string) bool
}

// Block é um grupo de perguntas com um badge opcional
type Block struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	Badge     *BadgeRule `json:"-"`
}

// Catalogue is an ordered list of blocks.
type Catalogue []Block

// TotalQuestions counts questions across all blocks.
func (c Catalogue) TotalQuestions() int {
	n := 0
	for _, b := range c {
		n += len(b.Questions)
	}
	return n
}

// Find returns the question with id and the index of its block.
func (c Catalogue) Find(id string) (Question, int, bool) {
	for bi, b := range c {
		for _, q := range b.Questions {
			if q.ID == id {
				return q, bi, true
			}
		}
	}
	return Question{}, -1, false
}

func equals(key, value string) func(map[string]string) bool {
	return func(answers map[string]string) bool { return answers[key] == value }
}

// Default is the AI Money Test.
var Default = Catalogue{
	{
		ID:    "background",
		Title: "Your Background & Habits",
		Questions: []Question{
			{ID: "profession", Question: "What's your current profession?", Type: SingleChoice,
				Options: []string{"Student", "Freelancer", "Entrepreneur", "Corporate employee", "Unemployed"}},
			{ID: "hours", Question: "How many hours a week can you dedicate to learning or building with AI?", Type: SingleChoice,
				Options: []string{"Less than 3 hours", "3–7 hours", "8–15 hours", "Full time"}},
			{ID: "online_income", Question: "Do you already earn money online?", Type: SingleChoice,
				Options: []string{"Yes, full-time", "Yes, part-time", "Not yet, but I want to", "No"}},
			{ID: "monthly_income", Question: "What's your monthly income right now (USD)?", Type: SingleChoice,
				Options: []string{"0–500", "500–2,000", "2,000–5,000", "5,000+"}},
			{ID: "comfort_tools", Question: "How comfortable are you with using new tools?", Type: SingleChoice,
				Options: []string{"I love experimenting", "I try sometimes", "I find it overwhelming", "I avoid it unless I must"}},
		},
		Badge: &BadgeRule{
			Badge:     entities.Badge{Name: "The Tinkerer", Emoji: "🧪"},
			Condition: equals("comfort_tools", "I love experimenting"),
		},
	},
	{
		ID:    "skills",
		Title: "Skills & Tech Savviness",
		Questions: []Question{
			{ID: "coding", Question: "Can you write basic code (any language)?", Type: SingleChoice,
				Options: []string{"Yes, comfortably", "Only with help from AI", "No, but I'm willing to learn", "No, and not interested"}},
			{ID: "writing", Question: "What's your writing skill level?", Type: SingleChoice,
				Options: []string{"I write professionally", "I can write decent content", "I dislike writing", "I use AI to help with it"}},
			{ID: "digital_products", Question: "Have you created any digital products before?", Type: SingleChoice,
				Options: []string{"Yes, multiple times", "Once or twice", "No, but I want to", "No, and I'm not sure how"}},
			{ID: "ai_tools", Question: "Are you familiar with tools like ChatGPT, Midjourney, or Claude?", Type: SingleChoice,
				Options: []string{"I use them often", "I've tried a few", "I've heard of them", "Not really"}},
		},
		Badge: &BadgeRule{
			Badge:     entities.Badge{Name: "Digital Maker", Emoji: "🛠"},
			Condition: equals("digital_products", "Yes, multiple times"),
		},
	},
	{
		ID:    "monetization",
		Title: "Monetization Style & Vision",
		Questions: []Question{
			{ID: "exciting", Question: "What sounds most exciting to you?", Type: SingleChoice,
				Options: []string{
					"Selling AI tools or templates",
					"Automating a business",
					"Creating viral AI content",
					"Helping others use AI (coaching/consulting)",
					"Building a SaaS product",
				}},
			{ID: "preference", Question: "Would you prefer:", Type: SingleChoice,
				Options: []string{"Fast side-income (small wins)", "Building long-term value (bigger vision)", "Both"}},
			{ID: "audience", Question: "How big is your online audience?", Type: SingleChoice,
				Options: []string{"None", "< 1,000", "1,000–10,000", "10,000+"}},
			{ID: "selling", Question: "Do you like selling?", Type: SingleChoice,
				Options: []string{"I love it", "I do it if I have to", "I avoid it", "I prefer to partner with others"}},
		},
		Badge: &BadgeRule{
			Badge:     entities.Badge{Name: "The Guide", Emoji: "🤝"},
			Condition: equals("exciting", "Helping others use AI (coaching/consulting)"),
		},
	},
	{
		ID:    "readiness",
		Title: "Readiness & Momentum",
		Questions: []Question{
			{ID: "timeline", Question: "How soon do you want to start earning with AI?", Type: SingleChoice,
				Options: []string{"Immediately", "In the next 3 months", "Within the year", "I'm just exploring"}},
			{ID: "obstacles", Question: "What's stopping you right now?", Type: SingleChoice,
				Options: []string{"I don't know where to start", "No time", "Fear of failure", "Lack of tech skills", "I already started"}},
			{ID: "investment", Question: "How much are you willing to invest in learning/launching something?", Type: SingleChoice,
				Options: []string{"$0 – I want free only", "Up to $50", "Up to $500", "More, if it's worth it"}},
			{ID: "goal", Question: "What's your main goal with AI?", Type: SingleChoice,
				Options: []string{"Financial freedom", "Creative freedom", "Automating boring work", "Staying competitive", "Exploring the future"}},
			{ID: "idea", Question: "Do you already have an idea for using AI to earn money?", Type: SingleChoice,
				Options: []string{"Yes, it's specific", "Kind of", "No, I need help", "No, and I'm just browsing"}},
			{ID: "personality", Question: "What best describes you?", Type: SingleChoice,
				Options: []string{"Visionary", "Doer", "Thinker", "Explorer"}},
			{ID: "bonus", Question: "If you could earn $5,000/month with AI, what would you do first?", Type: FreeText,
				Options: []string{}},
		},
		Badge: &BadgeRule{
			Badge:     entities.Badge{Name: "Big Picture Thinker", Emoji: "🌟"},
			Condition: equals("personality", "Visionary"),
		},
	},
}

// BlockView is the JSON shape of a block for clients rendering the quiz.
type BlockView struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Questions []Question      `json:"questions"`
	Badge     *entities.Badge `json:"badge,omitempty"`
}

// BlockRef identifies the block a session is in.
type BlockRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Views flattens the catalogue for serialization.
func (c Catalogue) Views() []BlockView {
	views := make([]BlockView, 0, len(c))
	for _, b := range c {
		v := BlockView{ID: b.ID, Title: b.Title, Questions: b.Questions}
		if b.Badge != nil {
			badge := b.Badge.Badge
			v.Badge = &badge
		}
		views = append(views, v)
	}
	return views
}
