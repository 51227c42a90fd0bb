package service

import (
	"testing"

	"money-mind/internal/domain"
)

func TestFeelingsFirstMatchPriority(t *testing.T) {
	// "stressed" dispara la primera regla aunque el texto también
	// contenga keywords de reglas posteriores ("confident").
	got := applyCategoryRules(domain.Insights{}, domain.CategoryFeelings,
		"I'm stressed and anxious, even when I try to sound confident")

	if got.Archetype != domain.ArchetypeMindfulWorrier {
		t.Fatalf("expected MindfulWorrier, got %s", got.Archetype)
	}
	if got.EmotionalState != "Financial Anxiety" {
		t.Fatalf("expected Financial Anxiety, got %q", got.EmotionalState)
	}
}

func TestScalarsPreservedWhenNoRuleFires(t *testing.T) {
	prev := domain.Insights{
		Archetype:      domain.ArchetypeStrategicBuilder,
		EmotionalState: "Financial Confidence",
		RiskLevel:      "Growth-Oriented",
	}

	got := applyCategoryRules(prev, domain.CategoryRisk, "hmm, nothing comes to mind right now")

	if got.RiskLevel != "Growth-Oriented" {
		t.Fatalf("risk level erased by no-fire turn: %q", got.RiskLevel)
	}
	if got.Archetype != domain.ArchetypeStrategicBuilder || got.EmotionalState != "Financial Confidence" {
		t.Fatalf("scalars erased by no-fire turn: %+v", got)
	}
}

func TestScalarsOverwrittenWhenRuleFires(t *testing.T) {
	prev := domain.Insights{RiskLevel: "Growth-Oriented"}

	got := applyCategoryRules(prev, domain.CategoryRisk, "I'd rather keep it safe and protect what I have")

	if got.RiskLevel != "Security-Focused" {
		t.Fatalf("expected last-rule-wins overwrite, got %q", got.RiskLevel)
	}
}

func TestTraitsAccumulateAsUnion(t *testing.T) {
	first := applyCategoryRules(domain.Insights{}, domain.CategoryBehavior, "I budget and track every dollar")
	second := applyCategoryRules(first, domain.CategoryRisk, "careful and safe, always")

	wantTraits := []string{"Disciplined Planner", "Cautious"}
	for _, want := range wantTraits {
		found := false
		for _, tr := range second.KeyTraits {
			if tr == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected trait %q in %v", want, second.KeyTraits)
		}
	}

	// Repetir el mismo trait no duplica.
	third := applyCategoryRules(second, domain.CategoryBehavior, "like I said, I budget everything")
	count := 0
	for _, tr := range third.KeyTraits {
		if tr == "Disciplined Planner" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected trait deduplicated, found %d copies", count)
	}
}

func TestTagsUnionAcrossRulesScalarExclusive(t *testing.T) {
	// Las dos reglas de dream_life matchean: la de travel reclama los
	// escalares, pero ambas aportan sus goals.
	got := applyCategoryRules(domain.Insights{}, domain.CategoryDreamLife,
		"travel the world and retire early")

	if got.Archetype != domain.ArchetypeExperienceCollector {
		t.Fatalf("expected ExperienceCollector from first matching rule, got %s", got.Archetype)
	}

	for _, want := range []string{"Travel & Experiences", "Early Retirement", "Financial Independence"} {
		found := false
		for _, g := range got.FinancialGoals {
			if g == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected goal %q in %v", want, got.FinancialGoals)
		}
	}
}

func TestMultiWordPhraseMatchesAsSubstring(t *testing.T) {
	got := applyCategoryRules(domain.Insights{}, domain.CategoryAspiration, "I just want to pay off everything I owe")

	found := false
	for _, g := range got.FinancialGoals {
		if g == "Debt Freedom" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected multi-word phrase 'pay off' to match, goals: %v", got.FinancialGoals)
	}
}

func TestUnknownCategoryIsNoOp(t *testing.T) {
	prev := domain.Insights{
		Archetype: domain.ArchetypeMindfulWorrier,
		KeyTraits: []string{"Emotionally Aware"},
	}

	got := applyCategoryRules(prev, "horoscope", "I'm anxious and I want to travel")

	if got.Archetype != prev.Archetype || len(got.KeyTraits) != 1 || len(got.FinancialGoals) != 0 {
		t.Fatalf("unknown category must not change insights: %+v", got)
	}
}

func TestMatchingIsCaseInsensitiveAndAccentInsensitive(t *testing.T) {
	got := applyCategoryRules(domain.Insights{}, domain.CategoryFeelings, "SO STRESSED about everything")
	if got.Archetype != domain.ArchetypeMindfulWorrier {
		t.Fatalf("expected case-insensitive match, got %s", got.Archetype)
	}

	// Ambas codificaciones del acento: precompuesta (U+00E9) y
	// combinante (e + U+0301).
	tests := []struct {
		in   string
		want string
	}{
		{in: "Café", want: "cafe"},
		{in: "Café", want: "cafe"},
		{in: "estrés por el dinero", want: "estres por el dinero"},
		{in: "plain ascii", want: "plain ascii"},
	}
	for _, tt := range tests {
		if got := normalizeResponse(tt.in); got != tt.want {
			t.Fatalf("normalizeResponse(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestArchetypeOrDefaultFallback(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Archetype
		want domain.Archetype
	}{
		{name: "empty falls back", in: "", want: domain.ArchetypeBalancedExplorer},
		{name: "unknown falls back", in: "CryptoWizard", want: domain.ArchetypeBalancedExplorer},
		{name: "known passes through", in: domain.ArchetypeMindfulWorrier, want: domain.ArchetypeMindfulWorrier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Insights{Archetype: tt.in}.ArchetypeOrDefault()
			if got != tt.want {
				t.Fatalf("ArchetypeOrDefault(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}
