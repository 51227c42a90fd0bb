package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"money-mind/internal/domain"
)

// SessionService orquesta sesiones de conversación sobre un SessionStore:
// crea el engine, persiste el estado efímero entre requests y lo
// reconstruye en cada turno. Los callers deben serializar los turnos de
// una misma sesión (contrato del proveedor de voz/UI).
type SessionService struct {
	store  SessionStore
	logger *zap.Logger
}

func NewSessionService(store SessionStore, logger *zap.Logger) *SessionService {
	return &SessionService{store: store, logger: logger}
}

// StartSession valida el guion, crea una sesión nueva y devuelve el
// primer turno de guía.
func (s *SessionService) StartSession(ctx context.Context, script []domain.PromptSpec) (domain.Session, domain.GuideTurn, error) {
	if err := ValidateScript(script); err != nil {
		return domain.Session{}, domain.GuideTurn{}, fmt.Errorf("validate script: %w", err)
	}

	engine, first, err := NewConversationEngine(script)
	if err != nil {
		return domain.Session{}, domain.GuideTurn{}, err
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		Script:    script,
		State:     engine.State(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, domain.GuideTurn{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.Int("script_len", len(script)),
	)

	return session, first, nil
}

// SubmitResponse aplica un turno de usuario a la sesión indicada.
// Un input vacío o una sesión ya terminal devuelven Accepted=false sin
// tocar el estado; no son errores.
func (s *SessionService) SubmitResponse(ctx context.Context, sessionID, rawText string) (domain.Session, TurnOutcome, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Session{}, TurnOutcome{}, err
	}

	engine, err := ResumeConversationEngine(session.Script, session.State)
	if err != nil {
		return domain.Session{}, TurnOutcome{}, fmt.Errorf("resume session %s: %w", sessionID, err)
	}

	outcome := engine.SubmitResponse(rawText)
	if !outcome.Accepted {
		return session, outcome, nil
	}

	session.State = engine.State()
	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, TurnOutcome{}, fmt.Errorf("save session: %w", err)
	}

	if outcome.Completed {
		s.logger.Info("session completed",
			zap.String("session_id", session.ID),
			zap.String("archetype", string(session.State.Insights.ArchetypeOrDefault())),
		)
	}

	return session, outcome, nil
}

// GetSession devuelve la sesión tal cual está en el store.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.store.Get(ctx, sessionID)
}
