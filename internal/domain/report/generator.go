// Package report turns quiz answers into the personalized report that is emailed
// to the user. Generation is a fixed decision list: the first matching rule sets
// income, badge and income model, and rules are never combined.
package report

import (
	"strings"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
)

// Answer keys read by the generator.
const (
	KeyProfession      = "profession"
	KeyHours           = "hours"
	KeyOnlineIncome    = "online_income"
	KeyComfortTools    = "comfort_tools"
	KeyWriting         = "writing"
	KeyDigitalProducts = "digital_products"
	KeyAITools         = "ai_tools"
	KeySelling         = "selling"
	KeyTimeline        = "timeline"
)

const (
	defaultProfession      = "Professional"
	defaultHours           = "3–7 hours"
	defaultDigitalProducts = "No experience"
	defaultTimeline        = "In the next 3 months"
)

type profile struct {
	income      int
	badge       string
	incomeModel string
}

var baseline = profile{income: 1500, badge: "The AI Explorer", incomeModel: "AI-Powered Content Creation"}

type rule struct {
	matches func(answers map[string]string) bool
	profile profile
}

func answerIs(key, value string) func(map[string]string) bool {
	return func(answers map[string]string) bool { return answers[key] == value }
}

// rules are evaluated in order.
var rules = []rule{
	{answerIs(KeyProfession, "Entrepreneur"), profile{3200, "The AI Hustler", "AI Consulting & Automation Services"}},
	{answerIs(KeyProfession, "Freelancer"), profile{2400, "The Digital Craftsperson", "AI-Enhanced Freelance Services"}},
	{answerIs(KeyHours, "Full time"), profile{4500, "The AI Builder", "AI Product Development"}},
	{answerIs(KeyDigitalProducts, "Yes, multiple times"), profile{2800, "The Digital Maker", "AI-Enhanced Digital Products"}},
	{answerIs(KeyComfortTools, "I love experimenting"), profile{2100, "The AI Tinkerer", "AI Tool Creation & Templates"}},
}

// Generate builds the report for answers. Missing keys fall back to defaults, so
// an empty map yields the baseline report.
func Generate(answers map[string]string) entities.Report {
	if answers == nil {
		answers = map[string]string{}
	}

	p := baseline
	for _, r := range rules {
		if r.matches(answers) {
			p = r.profile
			break
		}
	}

	timeline := withDefault(answers[KeyTimeline], defaultTimeline)

	strengths := []string{
		pick(answers[KeyComfortTools] == "I love experimenting", "Love for experimenting", "Practical approach"),
		pick(timeline == "Immediately", "High motivation", "Strategic thinking"),
		pick(strings.Contains(answers[KeyOnlineIncome], "Yes"), "Online income experience", "Fresh perspective"),
	}
	weakSpots := []string{
		"Consistent daily practice",
		"Building online presence",
		pick(answers[KeySelling] == "I avoid it", "Comfort with selling", "Marketing skills"),
	}
	quickIdea := pick(answers[KeyAITools] == "I use them often",
		"Create a mini-course teaching your favorite AI workflows",
		"Set up AI accounts and create 5 pieces of valuable content in your expertise area",
	)

	return entities.Report{
		MonthlyIncome: p.income,
		IncomeModel:   p.incomeModel,
		Strengths:     strengths,
		WeakSpots:     weakSpots,
		Badge:         p.badge,
		QuickIdea:     quickIdea,
		FullReport: renderNarrative(narrativeData{
			Profession:       strings.ToLower(withDefault(answers[KeyProfession], defaultProfession)),
			Hours:            strings.ToLower(withDefault(answers[KeyHours], defaultHours)),
			ExperiencedMaker: withDefault(answers[KeyDigitalProducts], defaultDigitalProducts) == "Yes, multiple times",
			Income:           FormatThousands(p.income),
			IncomeModel:      p.incomeModel,
			Experimenter:     answers[KeyComfortTools] == "I love experimenting",
			Urgent:           timeline == "Immediately",
			EarnsOnline:      strings.Contains(answers[KeyOnlineIncome], "Yes"),
			ProWriter:        answers[KeyWriting] == "I write professionally",
			AvoidsSelling:    answers[KeySelling] == "I avoid it",
			UsesAITools:      answers[KeyAITools] == "I use them often",
			Badge:            p.badge,
			Student:          answers[KeyProfession] == "Student",
		}),
	}
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
