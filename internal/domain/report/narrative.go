package report

import (
	"strconv"
	"strings"
	"text/template"
)

type narrativeData struct {
	Profession       string
	Hours            string
	ExperiencedMaker bool
	Income           string
	IncomeModel      string
	Experimenter     bool
	Urgent           bool
	EarnsOnline      bool
	ProWriter        bool
	AvoidsSelling    bool
	UsesAITools      bool
	Badge            string
	Student          bool
}

var narrativeTemplate = template.Must(template.New("narrative").Parse(`🎯 **Your AI Money-Making Profile**

Based on your quiz responses, you have excellent potential to build a profitable AI-powered business. Here's your personalized roadmap:

**Your Current Situation:**
You're a {{.Profession}} with {{.Hours}} available per week for AI projects. {{if .ExperiencedMaker}}Your experience creating digital products gives you a significant head start in the AI space.{{else}}While you're newer to digital products, your motivation and willingness to learn are your biggest assets.{{end}}

**💰 Income Potential: ${{.Income}}/month**
With focused effort and the right strategy, you could realistically reach this income level within 3-6 months. This estimate is based on similar profiles in our community who've successfully monetized AI tools.

**🎯 Your Best AI Income Model: {{.IncomeModel}}**
This path aligns perfectly with your background, available time, and current skill level. It offers the fastest route to your first $1,000 in AI earnings.

**💪 Your Key Strengths:**
• {{if .Experimenter}}Natural curiosity and love for experimenting with new tools{{else}}Practical, results-focused approach to learning{{end}}
• {{if .Urgent}}High motivation and urgency to start earning{{else}}Strategic, long-term thinking{{end}}
• {{if .EarnsOnline}}Existing online income experience{{else}}Fresh perspective and eagerness to learn{{end}}
• {{if .ProWriter}}Professional writing skills{{else}}Willingness to improve communication skills{{end}}

**⚠️ Areas to Develop:**
• Consistent daily practice with AI tools (start with 30 minutes/day)
• Building an online presence and personal brand
• Learning basic marketing and customer acquisition
• {{if .AvoidsSelling}}Developing comfort with selling and self-promotion{{else}}Refining your sales approach{{end}}

**🚀 Your 48-Hour Quick Start Plan:**
{{if .UsesAITools}}Since you're already familiar with AI tools, create a mini-course teaching others your favorite AI workflows. Record 3 short videos and post them on LinkedIn with a clear call-to-action.{{else}}Set up accounts with ChatGPT, Claude, and Canva AI. Spend 2 hours learning prompt engineering basics, then create 5 pieces of valuable content in your expertise area. Share them on social media to start building your AI-powered personal brand.{{end}}

**🎖️ Your AI Archetype: {{.Badge}}**
This represents your unique approach to AI entrepreneurship. Embrace this identity as you build your AI-powered business!

**Next Steps:**
1. Join our community of AI entrepreneurs
2. Get the complete step-by-step guide with tools, templates, and case studies
3. Start implementing your 48-hour plan immediately
4. Track your progress and celebrate small wins

Remember: The AI revolution is happening now, and you're perfectly positioned to be part of it. Your combination of {{if .Student}}fresh perspective and learning ability{{else}}professional experience and drive{{end}} makes you ideal for AI entrepreneurship.

The key is to start small, stay consistent, and focus on providing real value to others using AI as your superpower. Your first $1,000 in AI earnings is closer than you think!`))

func renderNarrative(data narrativeData) string {
	var b strings.Builder
	// The template only reads fields of a fixed struct, so Execute cannot fail.
	_ = narrativeTemplate.Execute(&b, data)
	return b.String()
}

// FormatThousands renders n with comma separators, e.g. 4500 → "4,500".
func FormatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
