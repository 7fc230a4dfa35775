package entities

// Report é o relatório personalizado derivado das respostas do quiz
type Report struct {
	MonthlyIncome int      `json:"monthlyIncome"`
	IncomeModel   string   `json:"incomeModel"`
	Strengths     []string `json:"strengths"`
	WeakSpots     []string `json:"weakSpots"`
	Badge         string   `json:"badge"`
	QuickIdea     string   `json:"quickIdea"`
	FullReport    string   `json:"fullReport"`
}

// Badge é um rótulo cosmético desbloqueado durante o quiz
type Badge struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}
