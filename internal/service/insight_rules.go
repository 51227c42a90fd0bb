package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"money-mind/internal/domain"
)

/*
========================
 Normalización de texto
========================
*/

// normalizeResponse baja a minúsculas y elimina diacríticos para que el
// matching por substring sea estable ante acentos. La descomposición
// NFD separa los caracteres precompuestos (é = e + U+0301) antes de
// descartar las marcas combinantes.
func normalizeResponse(s string) string {
	s = norm.NFD.String(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func containsAny(s string, list []string) bool {
	for _, x := range list {
		if strings.Contains(s, x) {
			return true
		}
	}
	return false
}

/*
========================
 Reglas por categoría
========================
*/

// insightRule asocia keywords (substring, frases multi-palabra incluidas)
// con los campos de Insights que produce al disparar.
type insightRule struct {
	keywords       []string
	archetype      domain.Archetype
	emotionalState string
	riskLevel      string
	traits         []string
	goals          []string
}

// categoryRules mapea cada categoría de prompt a su lista ordenada de
// reglas. El orden es prioridad: la primera regla que matchea reclama
// los campos escalares de esa llamada; los tags de traits/goals se
// acumulan de TODAS las reglas que matcheen.
var categoryRules = map[string][]insightRule{
	domain.CategoryFeelings: {
		{
			keywords:       []string{"stress", "anxious", "anxiety", "worry", "worried", "overwhelm", "scared", "afraid", "fear"},
			archetype:      domain.ArchetypeMindfulWorrier,
			emotionalState: "Financial Anxiety",
			traits:         []string{"Emotionally Aware"},
		},
		{
			keywords:       []string{"confident", "in control", "optimistic", "excited", "empowered"},
			archetype:      domain.ArchetypeStrategicBuilder,
			emotionalState: "Financial Confidence",
			traits:         []string{"Self-Assured"},
		},
		{
			keywords:       []string{"guilt", "shame", "ashamed", "regret", "embarrass"},
			archetype:      domain.ArchetypeAuthenticExplorer,
			emotionalState: "Financial Shame",
			traits:         []string{"Reflective"},
		},
		{
			keywords:       []string{"confus", "unsure", "don't know", "dont know", "complicated", "lost"},
			archetype:      domain.ArchetypeBalancedExplorer,
			emotionalState: "Financial Uncertainty",
			traits:         []string{"Open to Guidance"},
		},
	},
	domain.CategorySituation: {
		{
			keywords:       []string{"debt", "owe", "loan", "credit card", "behind on"},
			emotionalState: "Debt Pressure",
			riskLevel:      "Security-Focused",
			traits:         []string{"Debt-Aware"},
			goals:          []string{"Debt Freedom"},
		},
		{
			keywords:  []string{"invest", "stocks", "portfolio", "index fund", "401k", "retirement account"},
			archetype: domain.ArchetypeStrategicBuilder,
			riskLevel: "Growth-Oriented",
			traits:    []string{"Investor Mindset"},
		},
		{
			keywords: []string{"saving", "savings", "emergency fund", "put away"},
			traits:   []string{"Consistent Saver"},
			goals:    []string{"Financial Security"},
		},
		{
			keywords:       []string{"paycheck to paycheck", "tight", "struggling", "barely"},
			emotionalState: "Financial Strain",
			traits:         []string{"Resilient"},
		},
	},
	domain.CategoryBehavior: {
		{
			keywords:  []string{"budget", "track", "spreadsheet", "plan ahead", "every dollar"},
			archetype: domain.ArchetypeStrategicBuilder,
			traits:    []string{"Disciplined Planner"},
		},
		{
			keywords:  []string{"impulse", "splurge", "treat myself", "spend on experiences", "spontaneous"},
			archetype: domain.ArchetypeExperienceCollector,
			traits:    []string{"Spontaneous Spender"},
		},
		{
			keywords:       []string{"avoid", "ignore", "don't look", "dont look", "put off"},
			archetype:      domain.ArchetypeMindfulWorrier,
			emotionalState: "Financial Avoidance",
			traits:         []string{"Avoidant Tendency"},
		},
		{
			keywords: []string{"give", "donate", "help my family", "support"},
			traits:   []string{"Generous"},
		},
	},
	domain.CategoryMoneyMemory: {
		{
			keywords:       []string{"never enough", "scarcity", "poor", "struggle", "couldn't afford", "couldnt afford"},
			emotionalState: "Scarcity Imprint",
			traits:         []string{"Scarcity Mindset"},
		},
		{
			keywords: []string{"comfortable", "never worried", "plenty", "well off"},
			traits:   []string{"Abundance Mindset"},
		},
		{
			keywords: []string{"taboo", "never talked", "secret", "didn't talk", "didnt talk"},
			traits:   []string{"Breaking Money Silence"},
		},
	},
	domain.CategoryDreamLife: {
		{
			keywords:  []string{"travel", "world", "adventure", "explore", "abroad"},
			archetype: domain.ArchetypeExperienceCollector,
			traits:    []string{"Experience-Driven"},
			goals:     []string{"Travel & Experiences"},
		},
		{
			keywords:  []string{"retire early", "early retirement", "financial freedom", "financial independence", "quit my job"},
			archetype: domain.ArchetypeStrategicBuilder,
			goals:     []string{"Early Retirement", "Financial Independence"},
		},
		{
			keywords:  []string{"own business", "my own company", "startup", "entrepreneur", "create something"},
			archetype: domain.ArchetypeAuthenticExplorer,
			traits:    []string{"Purpose-Driven"},
			goals:     []string{"Entrepreneurship"},
		},
		{
			keywords:  []string{"family", "house", "home", "kids", "children"},
			archetype: domain.ArchetypeBalancedExplorer,
			goals:     []string{"Home Ownership", "Family Security"},
		},
	},
	domain.CategoryRisk: {
		{
			keywords:  []string{"growth", "grow", "aggressive", "high return", "opportunity", "go big"},
			riskLevel: "Growth-Oriented",
			traits:    []string{"Risk Tolerant"},
		},
		{
			keywords:  []string{"safe", "secure", "protect", "careful", "conservative", "can't lose", "cant lose"},
			riskLevel: "Security-Focused",
			traits:    []string{"Cautious"},
		},
		{
			keywords:  []string{"balance", "mix", "moderate", "some risk", "middle"},
			riskLevel: "Balanced",
		},
	},
	domain.CategoryAspiration: {
		{
			keywords: []string{"pay off", "debt free", "get out of debt"},
			goals:    []string{"Debt Freedom"},
		},
		{
			keywords:  []string{"wealth", "rich", "million", "net worth"},
			archetype: domain.ArchetypeStrategicBuilder,
			goals:     []string{"Wealth Building"},
		},
		{
			keywords:  []string{"give back", "donate", "charity", "help others"},
			archetype: domain.ArchetypeAuthenticExplorer,
			traits:    []string{"Generous"},
			goals:     []string{"Giving Back"},
		},
		{
			keywords:       []string{"peace", "calm", "stop worrying", "sleep at night"},
			emotionalState: "Seeking Calm",
			goals:          []string{"Peace of Mind"},
		},
		{
			keywords: []string{"save more", "emergency fund", "safety net"},
			goals:    []string{"Financial Security"},
		},
	},
}

/*
========================
 Merge de insights
========================
*/

// applyCategoryRules evalúa las reglas de la categoría contra la
// respuesta y las fusiona en los insights previos:
//   - escalares (archetype, emotionalState, riskLevel): solo la primera
//     regla que matchea puede fijarlos en esta llamada; si ninguna
//     matchea, los valores previos quedan intactos (nunca se borran).
//   - traits y goals: unión de todas las reglas que matcheen.
//
// Una categoría desconocida equivale a cero reglas: no-op.
func applyCategoryRules(prev domain.Insights, category, rawText string) domain.Insights {
	rules, ok := categoryRules[category]
	if !ok {
		return prev
	}

	text := normalizeResponse(rawText)
	out := prev
	scalarsClaimed := false

	for _, rule := range rules {
		if !containsAny(text, rule.keywords) {
			continue
		}

		if !scalarsClaimed {
			if rule.archetype != "" {
				out.Archetype = rule.archetype
			}
			if rule.emotionalState != "" {
				out.EmotionalState = rule.emotionalState
			}
			if rule.riskLevel != "" {
				out.RiskLevel = rule.riskLevel
			}
			scalarsClaimed = true
		}

		out.KeyTraits = appendUnique(out.KeyTraits, rule.traits)
		out.FinancialGoals = appendUnique(out.FinancialGoals, rule.goals)
	}

	return out
}

func appendUnique(dst []string, add []string) []string {
	for _, tag := range add {
		found := false
		for _, existing := range dst {
			if existing == tag {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, tag)
		}
	}
	return dst
}
