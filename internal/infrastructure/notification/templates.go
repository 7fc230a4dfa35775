package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/report"
)

const reportHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Your AI Money Test Results</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0; background-color: #f8fafc; }
    .container { max-width: 600px; margin: 0 auto; background: white; }
    .header { background: linear-gradient(135deg, #3b82f6 0%, #8b5cf6 100%); color: white; padding: 40px 30px; text-align: center; }
    .content { padding: 30px; }
    .badge { background: #fef3c7; border: 2px solid #f59e0b; border-radius: 50px; padding: 15px 25px; text-align: center; margin: 20px 0; }
    .income-box { background: #ecfdf5; border: 2px solid #10b981; border-radius: 12px; padding: 25px; text-align: center; margin: 20px 0; }
    .section { margin: 25px 0; padding: 20px; background: #f8fafc; border-radius: 8px; }
    .cta { background: #3b82f6; color: white; padding: 15px 30px; text-decoration: none; border-radius: 50px; display: inline-block; font-weight: bold; margin: 20px 0; }
    .footer { background: #1f2937; color: #9ca3af; padding: 30px; text-align: center; font-size: 14px; }
    .report-text { white-space: pre-line; background: white; padding: 20px; border-radius: 8px; border-left: 4px solid #3b82f6; font-size: 14px; line-height: 1.6; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🧠 Your AI Money Test Results</h1>
      <p>Personalized insights for {{.Email}}</p>
    </div>
    <div class="content">
      <div class="badge">
        <h2>🏆 Your AI Archetype: {{.Report.Badge}}</h2>
      </div>
      <div class="income-box">
        <h2>💰 Your Monthly Income Potential</h2>
        <div style="font-size: 36px; font-weight: bold; color: #10b981;">${{.Income}}</div>
        <p>Based on your skills and commitment level</p>
      </div>
      {{- if .Report.IncomeModel}}
      <div class="section">
        <h3>🎯 Best AI Income Model for You</h3>
        <p><strong>{{.Report.IncomeModel}}</strong></p>
        <p>This model aligns perfectly with your current skills and time availability.</p>
      </div>
      {{- end}}
      {{- if .Report.Strengths}}
      <div class="section">
        <h3>💪 Your Strengths</h3>
        <ul>{{range .Report.Strengths}}<li>{{.}}</li>{{end}}</ul>
      </div>
      {{- end}}
      {{- if .Report.WeakSpots}}
      <div class="section">
        <h3>⚠️ Areas to Watch</h3>
        <ul>{{range .Report.WeakSpots}}<li>{{.}}</li>{{end}}</ul>
      </div>
      {{- end}}
      {{- if .Report.QuickIdea}}
      <div class="section">
        <h3>🚀 48-Hour Quick Start</h3>
        <p><strong>{{.Report.QuickIdea}}</strong></p>
        <p>This is something you can implement this weekend to start seeing results.</p>
      </div>
      {{- end}}
      <div class="section">
        <h3>📋 Your Complete Analysis</h3>
        <div class="report-text">{{.Report.FullReport}}</div>
      </div>
      <div style="text-align: center; margin: 40px 0; padding: 30px; background: #fef3c7; border-radius: 12px; border: 2px solid #f59e0b;">
        <h3 style="color: #92400e; margin-top: 0;">🚀 Ready to Turn This Into Reality?</h3>
        <p style="color: #92400e; margin-bottom: 20px;">Get the complete step-by-step guide with tools, templates, and case studies</p>
        <a href="{{.OfferURL}}" class="cta" style="font-size: 18px; padding: 18px 36px;">Get the Complete Guide - $32</a>
        <p style="font-size: 12px; color: #92400e; margin-top: 15px;">⏰ Limited time offer - Save $11 from regular price</p>
      </div>
    </div>
    <div class="footer">
      <p><strong>One App Per Day</strong></p>
      <p>Helping entrepreneurs build AI-powered businesses without coding</p>
      <p style="font-size: 12px; margin-top: 20px;">
        This report was generated based on your quiz responses. Results may vary based on effort and market conditions.
      </p>
    </div>
  </div>
</body>
</html>`

const summaryHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Your AI App Quiz Report is Ready 🚀</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 20px; background-color: #f8fafc; }
    .container { max-width: 600px; margin: 0 auto; background: white; border-radius: 8px; padding: 30px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
    .summary-box { background: #f0f9ff; border: 2px solid #3b82f6; border-radius: 8px; padding: 20px; margin: 20px 0; }
    .next-steps { background: #f0fdf4; border: 2px solid #10b981; border-radius: 8px; padding: 20px; margin: 20px 0; }
    .cta-button { background: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block; font-weight: bold; margin: 10px 0; }
    .footer { text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb; color: #6b7280; font-size: 14px; }
  </style>
</head>
<body>
  <div class="container">
    <div style="text-align: center; margin-bottom: 30px;">
      <div style="font-size: 24px;">🧠✨</div>
      <h1>Your AI App Quiz Report is Ready!</h1>
    </div>
    <p>Hey there!</p>
    <p>Thanks for taking the quiz 🧠✨</p>
    <div class="summary-box">
      <h3>Here's your quick summary:</h3>
      <ul>
        <li>✅ You're ready to start building AI apps.</li>
        <li>✅ No coding skills? No problem. We'll guide you step-by-step.</li>
        <li>✅ Your journey starts with our guide: "How to Build AI Apps Without Coding".</li>
      </ul>
    </div>
    <div class="next-steps">
      <h3>What's next?</h3>
      <p>👉 Check your inbox for upcoming resources and tools</p>
      <p>👉 Follow us on Twitter for daily tips: @oneappperday</p>
      <p>👉 Let's build your first app this week</p>
    </div>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.OfferURL}}" class="cta-button">Get the Complete Guide - $32</a>
    </div>
    <p>Talk soon,</p>
    <p><strong>— The One App Per Day Team</strong></p>
    <div class="footer">
      <p>One App Per Day</p>
      <p>Helping entrepreneurs build AI-powered apps without coding</p>
    </div>
  </div>
</body>
</html>`

const welcomeHTML = `<h1>Welcome, {{.Name}}!</h1>
<p>Thank you for your purchase. You can now access your guide using the link below:</p>
<a href="{{.GuideURL}}">Download Your Guide</a>
<p>If you have any questions, feel free to reply to this email.</p>`

var (
	reportTemplate  = template.Must(template.New("report").Parse(reportHTML))
	summaryTemplate = template.Must(template.New("summary").Parse(summaryHTML))
	welcomeTemplate = template.Must(template.New("welcome").Parse(welcomeHTML))
)

type reportData struct {
	Email    string
	Income   string
	OfferURL string
	Report   entities.Report
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func reportSubject(r entities.Report) string {
	return fmt.Sprintf("🧠 Your AI Money Test Results - $%s/month potential!", report.FormatThousands(r.MonthlyIncome))
}

func reportText(r entities.Report, offerURL string) string {
	var b strings.Builder
	b.WriteString("Your AI Money Test Results\n\n")
	fmt.Fprintf(&b, "Your AI Archetype: %s\n", r.Badge)
	fmt.Fprintf(&b, "Monthly Income Potential: $%s\n\n", report.FormatThousands(r.MonthlyIncome))
	if r.IncomeModel != "" {
		fmt.Fprintf(&b, "Best AI Income Model: %s\n\n", r.IncomeModel)
	}
	if r.QuickIdea != "" {
		fmt.Fprintf(&b, "48-Hour Quick Start: %s\n\n", r.QuickIdea)
	}
	fmt.Fprintf(&b, "Full Report:\n%s\n\n", r.FullReport)
	fmt.Fprintf(&b, "Ready to get started? Visit: %s", offerURL)
	return b.String()
}

func summaryText(offerURL string) string {
	return `Hey there!

Thanks for taking the quiz 🧠✨

Here's your quick summary:
- You're ready to start building AI apps.
- No coding skills? No problem. We'll guide you step-by-step.
- Your journey starts with our guide: "How to Build AI Apps Without Coding".

What's next?
👉 Check your inbox for upcoming resources and tools
👉 Follow us on Twitter for daily tips: @oneappperday
👉 Let's build your first app this week

Talk soon,

— The One App Per Day Team

Get the Complete Guide: ` + offerURL
}

func welcomeText(name, guideURL string) string {
	return fmt.Sprintf("Welcome, %s!\n\nThank you for your purchase. You can now access your guide here: %s\n\nIf you have any questions, feel free to reply to this email.", name, guideURL)
}
