package service

import (
	"errors"
	"strings"
	"time"

	"money-mind/internal/domain"
)

// ConversationEngine avanza un guion fijo de prompts, clasifica cada
// respuesta del usuario y acumula Insights. Es una máquina de estados
// síncrona y sin concurrencia interna: el caller debe serializar las
// llamadas a SubmitResponse.
type ConversationEngine struct {
	script []domain.PromptSpec
	state  domain.ConversationState
}

var ErrEmptyScript = errors.New("conversation script is empty")

// NewConversationEngine inicia una sesión nueva sobre el guion dado.
// Devuelve el primer turno de guía para que la capa de UI/voz lo
// renderice o lo hable.
func NewConversationEngine(script []domain.PromptSpec) (*ConversationEngine, domain.GuideTurn, error) {
	if len(script) == 0 {
		return nil, domain.GuideTurn{}, ErrEmptyScript
	}

	e := &ConversationEngine{
		script: script,
		state: domain.ConversationState{
			StepIndex: 0,
			Responses: make(map[string]string, len(script)),
		},
	}

	first := domain.GuideTurn{
		Role:      domain.RoleGuide,
		Text:      script[0].Text,
		Timestamp: time.Now().UTC(),
		PromptID:  script[0].ID,
	}
	e.state.Transcript = append(e.state.Transcript, first)

	return e, first, nil
}

// ResumeConversationEngine reconstruye un engine desde un estado
// guardado (sesiones HTTP stateless entre requests).
func ResumeConversationEngine(script []domain.PromptSpec, state domain.ConversationState) (*ConversationEngine, error) {
	if len(script) == 0 {
		return nil, ErrEmptyScript
	}
	if state.Responses == nil {
		state.Responses = make(map[string]string, len(script))
	}
	if state.StepIndex < 0 {
		state.StepIndex = 0
	}
	if state.StepIndex > len(script) {
		state.StepIndex = len(script)
	}
	return &ConversationEngine{script: script, state: state}, nil
}

// TurnOutcome describe el efecto de un SubmitResponse.
// Accepted=false significa no-op silencioso (input vacío o sesión
// terminal); nunca es un error.
type TurnOutcome struct {
	Accepted  bool                  `json:"accepted"`
	Completed bool                  `json:"completed"`
	NextTurn  *domain.GuideTurn     `json:"next_turn,omitempty"`
	Result    *domain.SessionResult `json:"result,omitempty"`
}

// SubmitResponse procesa una respuesta finalizada del usuario:
// la registra, clasifica según la categoría del prompt actual y avanza
// el cursor. En el último paso marca la sesión terminal y devuelve la
// tupla (responses, transcript, insights) exactamente una vez.
func (e *ConversationEngine) SubmitResponse(rawText string) TurnOutcome {
	text := strings.TrimSpace(rawText)
	if text == "" || e.Terminal() {
		return TurnOutcome{}
	}

	now := time.Now().UTC()
	prompt := e.script[e.state.StepIndex]

	e.state.Transcript = append(e.state.Transcript, domain.GuideTurn{
		Role:      domain.RoleUser,
		Text:      text,
		Timestamp: now,
		PromptID:  prompt.ID,
	})
	e.state.Responses[prompt.ID] = text

	e.state.Insights = applyCategoryRules(e.state.Insights, prompt.Category, text)

	e.state.StepIndex++
	if e.Terminal() {
		result := domain.SessionResult{
			Responses:  e.state.Responses,
			Transcript: e.state.Transcript,
			Insights:   e.state.Insights,
		}
		return TurnOutcome{Accepted: true, Completed: true, Result: &result}
	}

	next := e.script[e.state.StepIndex]
	turn := domain.GuideTurn{
		Role:      domain.RoleGuide,
		Text:      next.Text,
		Timestamp: now,
		PromptID:  next.ID,
	}
	e.state.Transcript = append(e.state.Transcript, turn)

	return TurnOutcome{Accepted: true, NextTurn: &turn}
}

// Terminal indica si la sesión ya consumió todo el guion.
func (e *ConversationEngine) Terminal() bool {
	return e.state.StepIndex >= len(e.script)
}

// CurrentPrompt devuelve el prompt pendiente de respuesta.
func (e *ConversationEngine) CurrentPrompt() (domain.PromptSpec, bool) {
	if e.Terminal() {
		return domain.PromptSpec{}, false
	}
	return e.script[e.state.StepIndex], true
}

// State devuelve una copia del estado para lectura o serialización.
func (e *ConversationEngine) State() domain.ConversationState {
	return e.state
}

// Insights devuelve la clasificación acumulada hasta el momento.
func (e *ConversationEngine) Insights() domain.Insights {
	return e.state.Insights
}
