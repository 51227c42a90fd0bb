package service

import (
	"math"

	"money-mind/internal/domain"
)

// Contenido estático por arquetipo. Los renderers son funciones puras
// archetype -> contenido; la única aritmética es porcentaje × monto.
// Arquetipos desconocidos o vacíos caen al DefaultArchetype.

// BudgetLine es una fila de la plantilla de presupuesto. Amount solo se
// llena cuando el caller aporta un ingreso mensual.
type BudgetLine struct {
	Category string  `json:"category"`
	Percent  int     `json:"percent"`
	Amount   float64 `json:"amount,omitempty"`
}

type BudgetPlan struct {
	Archetype     domain.Archetype `json:"archetype"`
	Philosophy    string           `json:"philosophy"`
	MonthlyIncome float64          `json:"monthly_income,omitempty"`
	Lines         []BudgetLine     `json:"lines"`
}

// InvestmentLine es una asignación de la plantilla de inversión, con un
// fondo de ejemplo puramente ilustrativo.
type InvestmentLine struct {
	AssetClass  string  `json:"asset_class"`
	Percent     int     `json:"percent"`
	ExampleFund string  `json:"example_fund"`
	Amount      float64 `json:"amount,omitempty"`
}

type InvestmentPlan struct {
	Archetype domain.Archetype `json:"archetype"`
	RiskNote  string           `json:"risk_note"`
	Lines     []InvestmentLine `json:"lines"`
}

// Recommendation agrupa las cuatro plantillas para un arquetipo.
type Recommendation struct {
	Archetype   domain.Archetype `json:"archetype"`
	Budget      BudgetPlan       `json:"budget"`
	Investments InvestmentPlan   `json:"investments"`
	Goals       []string         `json:"goals"`
	ActionPlan  []string         `json:"action_plan"`
}

var budgetTemplates = map[domain.Archetype]BudgetPlan{
	domain.ArchetypeStrategicBuilder: {
		Philosophy: "Aggressive wealth building: every dollar has a job.",
		Lines: []BudgetLine{
			{Category: "Essentials", Percent: 45},
			{Category: "Investing", Percent: 30},
			{Category: "Lifestyle", Percent: 15},
			{Category: "Buffer", Percent: 10},
		},
	},
	domain.ArchetypeMindfulWorrier: {
		Philosophy: "Security first: a thick cushion before anything else.",
		Lines: []BudgetLine{
			{Category: "Essentials", Percent: 50},
			{Category: "Emergency Fund", Percent: 25},
			{Category: "Lifestyle", Percent: 15},
			{Category: "Investing", Percent: 10},
		},
	},
	domain.ArchetypeExperienceCollector: {
		Philosophy: "Fund the memories without starving the future.",
		Lines: []BudgetLine{
			{Category: "Essentials", Percent: 50},
			{Category: "Experiences", Percent: 20},
			{Category: "Investing", Percent: 20},
			{Category: "Buffer", Percent: 10},
		},
	},
	domain.ArchetypeBalancedExplorer: {
		Philosophy: "A steady 50/30/20 while you discover what matters most.",
		Lines: []BudgetLine{
			{Category: "Essentials", Percent: 50},
			{Category: "Lifestyle", Percent: 30},
			{Category: "Saving & Investing", Percent: 20},
		},
	},
	domain.ArchetypeAuthenticExplorer: {
		Philosophy: "Align spending with values: purpose over prestige.",
		Lines: []BudgetLine{
			{Category: "Essentials", Percent: 50},
			{Category: "Values & Giving", Percent: 15},
			{Category: "Saving & Investing", Percent: 25},
			{Category: "Lifestyle", Percent: 10},
		},
	},
}

var investmentTemplates = map[domain.Archetype]InvestmentPlan{
	domain.ArchetypeStrategicBuilder: {
		RiskNote: "Growth-heavy mix; expect swings, hold the course.",
		Lines: []InvestmentLine{
			{AssetClass: "US Total Market", Percent: 60, ExampleFund: "VTI"},
			{AssetClass: "International Equity", Percent: 25, ExampleFund: "VXUS"},
			{AssetClass: "Bonds", Percent: 10, ExampleFund: "BND"},
			{AssetClass: "Cash", Percent: 5, ExampleFund: "High-yield savings"},
		},
	},
	domain.ArchetypeMindfulWorrier: {
		RiskNote: "Capital preservation first; sleep matters more than returns.",
		Lines: []InvestmentLine{
			{AssetClass: "Bonds", Percent: 40, ExampleFund: "BND"},
			{AssetClass: "US Total Market", Percent: 30, ExampleFund: "VTI"},
			{AssetClass: "Cash", Percent: 20, ExampleFund: "High-yield savings"},
			{AssetClass: "International Equity", Percent: 10, ExampleFund: "VXUS"},
		},
	},
	domain.ArchetypeExperienceCollector: {
		RiskNote: "Moderate growth with a liquid travel bucket.",
		Lines: []InvestmentLine{
			{AssetClass: "US Total Market", Percent: 45, ExampleFund: "VTI"},
			{AssetClass: "International Equity", Percent: 20, ExampleFund: "VXUS"},
			{AssetClass: "Bonds", Percent: 20, ExampleFund: "BND"},
			{AssetClass: "Cash (experiences)", Percent: 15, ExampleFund: "High-yield savings"},
		},
	},
	domain.ArchetypeBalancedExplorer: {
		RiskNote: "Classic three-fund balance while preferences settle.",
		Lines: []InvestmentLine{
			{AssetClass: "US Total Market", Percent: 50, ExampleFund: "VTI"},
			{AssetClass: "International Equity", Percent: 20, ExampleFund: "VXUS"},
			{AssetClass: "Bonds", Percent: 20, ExampleFund: "BND"},
			{AssetClass: "Cash", Percent: 10, ExampleFund: "High-yield savings"},
		},
	},
	domain.ArchetypeAuthenticExplorer: {
		RiskNote: "Balanced core with room for values-aligned funds.",
		Lines: []InvestmentLine{
			{AssetClass: "US Total Market", Percent: 45, ExampleFund: "VTI"},
			{AssetClass: "ESG Equity", Percent: 20, ExampleFund: "ESGV"},
			{AssetClass: "Bonds", Percent: 25, ExampleFund: "BND"},
			{AssetClass: "Cash", Percent: 10, ExampleFund: "High-yield savings"},
		},
	},
}

var goalTemplates = map[domain.Archetype][]string{
	domain.ArchetypeStrategicBuilder: {
		"Max out tax-advantaged accounts",
		"Grow net worth 15% this year",
		"Automate every recurring transfer",
	},
	domain.ArchetypeMindfulWorrier: {
		"Build a 6-month emergency fund",
		"Automate one small investment to build trust",
		"Schedule a monthly 15-minute money check-in",
	},
	domain.ArchetypeExperienceCollector: {
		"Open a dedicated travel fund",
		"Set a guilt-free experiences budget",
		"Start a retire-early projection",
	},
	domain.ArchetypeBalancedExplorer: {
		"Define your top three money values",
		"Start a starter emergency fund",
		"Try the 50/30/20 split for 90 days",
	},
	domain.ArchetypeAuthenticExplorer: {
		"Align one account with your values",
		"Set a giving target you can sustain",
		"Sketch the business or project fund",
	},
}

var actionPlanTemplates = map[domain.Archetype][]string{
	domain.ArchetypeStrategicBuilder: {
		"Review last 3 months of spending and cut the bottom 10%",
		"Increase automatic investing by 5% of income",
		"Rebalance the portfolio to the target mix",
		"Set a quarterly net-worth review",
	},
	domain.ArchetypeMindfulWorrier: {
		"Open a high-yield savings account this week",
		"Automate a small weekly transfer you won't feel",
		"Write down the three money worries that repeat",
		"Celebrate the first $1,000 saved",
	},
	domain.ArchetypeExperienceCollector: {
		"Name the next big experience and price it",
		"Open a separate account just for it",
		"Automate the monthly contribution",
		"Route windfalls 50/50 between fun and future",
	},
	domain.ArchetypeBalancedExplorer: {
		"Track spending for 30 days without judging it",
		"Pick one money area to learn about this month",
		"Set up the 50/30/20 split on payday",
		"Revisit how it felt after 90 days",
	},
	domain.ArchetypeAuthenticExplorer: {
		"List what you want your money to stand for",
		"Move one account to match those values",
		"Set a monthly amount for giving or creating",
		"Share the plan with someone you trust",
	},
}

// RecommendationService resuelve contenido estático por arquetipo.
// Independiente del engine: se versiona y evoluciona por separado.
type RecommendationService struct{}

func NewRecommendationService() *RecommendationService {
	return &RecommendationService{}
}

// BudgetFor devuelve la plantilla de presupuesto del arquetipo,
// escalada por el ingreso mensual si es positivo.
func (RecommendationService) BudgetFor(archetype domain.Archetype, monthlyIncome float64) BudgetPlan {
	resolved := resolveArchetype(archetype)
	plan := budgetTemplates[resolved]
	plan.Archetype = resolved

	lines := make([]BudgetLine, len(plan.Lines))
	copy(lines, plan.Lines)
	if monthlyIncome > 0 {
		plan.MonthlyIncome = monthlyIncome
		for i := range lines {
			lines[i].Amount = roundCents(monthlyIncome * float64(lines[i].Percent) / 100)
		}
	}
	plan.Lines = lines
	return plan
}

// InvestmentsFor devuelve la plantilla de inversión del arquetipo,
// escalada por el monto invertible si es positivo.
func (RecommendationService) InvestmentsFor(archetype domain.Archetype, investable float64) InvestmentPlan {
	resolved := resolveArchetype(archetype)
	plan := investmentTemplates[resolved]
	plan.Archetype = resolved

	lines := make([]InvestmentLine, len(plan.Lines))
	copy(lines, plan.Lines)
	if investable > 0 {
		for i := range lines {
			lines[i].Amount = roundCents(investable * float64(lines[i].Percent) / 100)
		}
	}
	plan.Lines = lines
	return plan
}

// GoalsFor devuelve las metas sugeridas para el arquetipo.
func (RecommendationService) GoalsFor(archetype domain.Archetype) []string {
	goals := goalTemplates[resolveArchetype(archetype)]
	out := make([]string, len(goals))
	copy(out, goals)
	return out
}

// ActionPlanFor devuelve los pasos de acción para el arquetipo.
func (RecommendationService) ActionPlanFor(archetype domain.Archetype) []string {
	steps := actionPlanTemplates[resolveArchetype(archetype)]
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}

// RecommendationsFor agrupa las cuatro plantillas a partir de los
// insights acumulados (con fallback al arquetipo por defecto).
func (s RecommendationService) RecommendationsFor(insights domain.Insights, monthlyIncome, investable float64) Recommendation {
	archetype := insights.ArchetypeOrDefault()
	return Recommendation{
		Archetype:   archetype,
		Budget:      s.BudgetFor(archetype, monthlyIncome),
		Investments: s.InvestmentsFor(archetype, investable),
		Goals:       s.GoalsFor(archetype),
		ActionPlan:  s.ActionPlanFor(archetype),
	}
}

func resolveArchetype(a domain.Archetype) domain.Archetype {
	if _, ok := budgetTemplates[a]; ok {
		return a
	}
	return domain.DefaultArchetype
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
