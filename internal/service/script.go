package service

import (
	"errors"
	"fmt"
	"strings"

	"money-mind/internal/domain"
)

// DefaultScript devuelve el guion fijo de la entrevista de terapia
// financiera. Es una copia nueva en cada llamada para que nadie pueda
// mutar el guion compartido.
func DefaultScript() []domain.PromptSpec {
	return []domain.PromptSpec{
		{
			ID:       "q_feelings",
			Text:     "Welcome. Let's start gently: when you think about money, what feelings come up for you?",
			Category: domain.CategoryFeelings,
		},
		{
			ID:       "q_situation",
			Text:     "Thank you for sharing that. How would you describe your financial situation right now?",
			Category: domain.CategorySituation,
		},
		{
			ID:       "q_behavior",
			Text:     "When money arrives, what do you usually do with it? Tell me about your habits.",
			Category: domain.CategoryBehavior,
		},
		{
			ID:       "q_money_memory",
			Text:     "Think back to growing up. How was money talked about, or not talked about, at home?",
			Category: domain.CategoryMoneyMemory,
		},
		{
			ID:       "q_dream_life",
			Text:     "If money were no obstacle, what would your ideal life look like five years from now?",
			Category: domain.CategoryDreamLife,
		},
		{
			ID:       "q_risk",
			Text:     "Imagine your savings could grow faster, but with ups and downs along the way. How does that sit with you?",
			Category: domain.CategoryRisk,
		},
		{
			ID:       "q_aspiration",
			Text:     "Last one: if we worked together for a year, what would you most want to achieve?",
			Category: domain.CategoryAspiration,
		},
	}
}

var ErrDuplicatePromptID = errors.New("script has duplicate prompt ids")

// ValidateScript verifica el contrato del proveedor de guion: secuencia
// no vacía con ids únicos. Las categorías no se validan: una categoría
// desconocida simplemente no dispara reglas.
func ValidateScript(script []domain.PromptSpec) error {
	if len(script) == 0 {
		return ErrEmptyScript
	}
	seen := make(map[string]struct{}, len(script))
	for i, p := range script {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return fmt.Errorf("prompt %d: empty id", i)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePromptID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
