package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"money-mind/internal/domain"
)

func newTestSessionService() *SessionService {
	return NewSessionService(NewMemorySessionStore(time.Minute), zap.NewNop())
}

func TestSessionServiceFullFlow(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	script := DefaultScript()
	session, first, err := svc.StartSession(ctx, script)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("expected session id")
	}
	if first.Text != script[0].Text {
		t.Fatalf("expected first prompt %q, got %q", script[0].Text, first.Text)
	}

	answers := []string{
		"mostly stressed and anxious if I'm honest",
		"some savings but also credit card debt",
		"I avoid looking at my accounts",
		"money was never talked about at home",
		"travel the world and retire early",
		"I want growth, I can handle the swings",
		"pay off my debt and find some peace",
	}

	var last TurnOutcome
	for i, answer := range answers {
		_, outcome, err := svc.SubmitResponse(ctx, session.ID, answer)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if !outcome.Accepted {
			t.Fatalf("submit %d not accepted", i)
		}
		last = outcome
	}

	if !last.Completed || last.Result == nil {
		t.Fatalf("expected completion after %d answers", len(answers))
	}
	if len(last.Result.Responses) != len(script) {
		t.Fatalf("expected %d responses, got %d", len(script), len(last.Result.Responses))
	}
	if last.Result.Insights.Archetype != domain.ArchetypeExperienceCollector {
		t.Fatalf("expected ExperienceCollector from dream_life turn, got %s", last.Result.Insights.Archetype)
	}
	if last.Result.Insights.RiskLevel != "Growth-Oriented" {
		t.Fatalf("expected Growth-Oriented risk, got %q", last.Result.Insights.RiskLevel)
	}

	// El estado queda consultable después de completar.
	stored, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("get session after completion: %v", err)
	}
	if stored.State.StepIndex != len(script) {
		t.Fatalf("expected terminal step index %d, got %d", len(script), stored.State.StepIndex)
	}
}

func TestSessionServiceEmptyInputDoesNotAdvance(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx, DefaultScript())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	_, outcome, err := svc.SubmitResponse(ctx, session.ID, "   ")
	if err != nil {
		t.Fatalf("submit empty: %v", err)
	}
	if outcome.Accepted {
		t.Fatalf("expected empty input rejected as no-op")
	}

	stored, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if stored.State.StepIndex != 0 {
		t.Fatalf("expected step index unchanged, got %d", stored.State.StepIndex)
	}
}

func TestSessionServiceConcurrentSubmitAndRead(t *testing.T) {
	// La UI de voz hace polling de GET /sessions/:id mientras llegan
	// turnos; lecturas y escrituras sobre la misma sesión no deben
	// compartir estado mutable (correr con -race).
	svc := newTestSessionService()
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx, DefaultScript())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	answers := []string{
		"stressed and anxious",
		"credit card debt",
		"I budget everything",
		"money was tight growing up",
		"travel the world",
		"keep it safe",
		"pay off my loans",
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for _, answer := range answers {
			if _, _, err := svc.SubmitResponse(ctx, session.ID, answer); err != nil {
				t.Errorf("submit: %v", err)
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			stored, err := svc.GetSession(ctx, session.ID)
			if err != nil {
				t.Errorf("get: %v", err)
				return
			}
			// Recorrer el estado fuerza lecturas del mapa y los slices.
			for id, text := range stored.State.Responses {
				_ = id
				_ = text
			}
			for _, turn := range stored.State.Transcript {
				_ = turn.Text
			}
		}
	}()

	wg.Wait()

	final, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("final get: %v", err)
	}
	if final.State.StepIndex != len(answers) {
		t.Fatalf("expected step index %d, got %d", len(answers), final.State.StepIndex)
	}
}

func TestSessionServiceUnknownSession(t *testing.T) {
	svc := newTestSessionService()

	_, _, err := svc.SubmitResponse(context.Background(), "missing-id", "hello")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionServiceRejectsInvalidScript(t *testing.T) {
	svc := newTestSessionService()

	duplicated := []domain.PromptSpec{
		{ID: "q1", Text: "a", Category: domain.CategoryFeelings},
		{ID: "q1", Text: "b", Category: domain.CategoryRisk},
	}
	if _, _, err := svc.StartSession(context.Background(), duplicated); !errors.Is(err, ErrDuplicatePromptID) {
		t.Fatalf("expected ErrDuplicatePromptID, got %v", err)
	}

	if _, _, err := svc.StartSession(context.Background(), nil); !errors.Is(err, ErrEmptyScript) {
		t.Fatalf("expected ErrEmptyScript, got %v", err)
	}
}
