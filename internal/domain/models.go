package domain

import "time"

// Archetype resume la personalidad financiera inferida del usuario.
// Se usa únicamente como clave de lookup para contenido estático.
type Archetype string

const (
	ArchetypeStrategicBuilder    Archetype = "StrategicBuilder"
	ArchetypeMindfulWorrier      Archetype = "MindfulWorrier"
	ArchetypeExperienceCollector Archetype = "ExperienceCollector"
	ArchetypeBalancedExplorer    Archetype = "BalancedExplorer"
	ArchetypeAuthenticExplorer   Archetype = "AuthenticExplorer"
)

// DefaultArchetype es el fallback cuando todavía no se infirió ninguno
// o cuando un consumidor recibe un valor desconocido.
const DefaultArchetype = ArchetypeBalancedExplorer

// Categorías de prompt. Una categoría desconocida no es error:
// simplemente ninguna regla dispara.
const (
	CategoryFeelings    = "feelings"
	CategorySituation   = "situation"
	CategoryBehavior    = "behavior"
	CategoryMoneyMemory = "money_memory"
	CategoryDreamLife   = "dream_life"
	CategoryRisk        = "risk"
	CategoryAspiration  = "aspiration"
)

// PromptSpec es un paso del guion. Inmutable durante la vida del proceso.
type PromptSpec struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Roles de turno en el transcript.
const (
	RoleGuide = "guide"
	RoleUser  = "user"
)

// GuideTurn es un intercambio del transcript.
// PromptID referencia al PromptSpec por id, nunca lo posee.
type GuideTurn struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	PromptID  string    `json:"prompt_id,omitempty"`
}

// Insights acumula la clasificación derivada de las respuestas.
// Escalares: last-rule-wins (una regla nueva sobreescribe, la ausencia
// de match nunca borra). Sets: unión sin duplicados.
type Insights struct {
	Archetype      Archetype `json:"archetype,omitempty"`
	EmotionalState string    `json:"emotional_state,omitempty"`
	KeyTraits      []string  `json:"key_traits"`
	FinancialGoals []string  `json:"financial_goals"`
	RiskLevel      string    `json:"risk_level,omitempty"`
}

// ArchetypeOrDefault devuelve el arquetipo inferido o el fallback.
func (i Insights) ArchetypeOrDefault() Archetype {
	switch i.Archetype {
	case ArchetypeStrategicBuilder, ArchetypeMindfulWorrier,
		ArchetypeExperienceCollector, ArchetypeBalancedExplorer,
		ArchetypeAuthenticExplorer:
		return i.Archetype
	default:
		return DefaultArchetype
	}
}

// ConversationState es la sesión mutable. Responses conserva las
// respuestas por id de prompt; Transcript es append-only.
type ConversationState struct {
	StepIndex  int               `json:"step_index"`
	Responses  map[string]string `json:"responses"`
	Transcript []GuideTurn       `json:"transcript"`
	Insights   Insights          `json:"insights"`
}

// SessionResult es la tupla final que recibe el consumidor al completar
// la sesión, exactamente una vez.
type SessionResult struct {
	Responses  map[string]string `json:"responses"`
	Transcript []GuideTurn       `json:"transcript"`
	Insights   Insights          `json:"insights"`
}

// Session asocia un estado de conversación a un id público.
type Session struct {
	ID        string            `json:"id"`
	Script    []PromptSpec      `json:"script"`
	State     ConversationState `json:"state"`
	CreatedAt time.Time         `json:"created_at"`
}
