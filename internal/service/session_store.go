package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"money-mind/internal/domain"
)

// SessionStore guarda el estado efímero de cada sesión de conversación.
// No es una capa de persistencia: las sesiones expiran por TTL y nada
// sobrevive a un reinicio salvo que Redis esté configurado.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

var ErrSessionNotFound = errors.New("session not found")

type memorySessionEntry struct {
	session   domain.Session
	expiresAt time.Time
}

type memorySessionStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memorySessionEntry
}

// NewMemorySessionStore crea el store por defecto, en proceso.
// La expiración es perezosa: se evalúa al leer.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &memorySessionStore{
		ttl:   ttl,
		items: make(map[string]memorySessionEntry),
	}
}

func (s *memorySessionStore) Save(_ context.Context, session domain.Session) error {
	if strings.TrimSpace(session.ID) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[session.ID] = memorySessionEntry{
		session:   cloneSession(session),
		expiresAt: time.Now().UTC().Add(s.ttl),
	}
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, id)
		return domain.Session{}, ErrSessionNotFound
	}
	return cloneSession(entry.session), nil
}

// cloneSession copia en profundidad: lo guardado y lo devuelto nunca
// comparten mapas ni slices con el caller, el mismo aislamiento que el
// store Redis obtiene de la serialización JSON. Sin esto, un GET
// concurrente con un turno en curso lee el mismo mapa que el engine
// está mutando.
func cloneSession(s domain.Session) domain.Session {
	out := s
	out.Script = append([]domain.PromptSpec(nil), s.Script...)
	out.State = cloneConversationState(s.State)
	return out
}

func cloneConversationState(st domain.ConversationState) domain.ConversationState {
	out := st
	if st.Responses != nil {
		out.Responses = make(map[string]string, len(st.Responses))
		for k, v := range st.Responses {
			out.Responses[k] = v
		}
	}
	out.Transcript = append([]domain.GuideTurn(nil), st.Transcript...)
	out.Insights.KeyTraits = append([]string(nil), st.Insights.KeyTraits...)
	out.Insights.FinancialGoals = append([]string(nil), st.Insights.FinancialGoals...)
	return out
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisSessionStore guarda sesiones serializadas como JSON con TTL.
// Útil para correr varias réplicas del API detrás de un balanceador.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisSessionStore{
		client: client,
		ttl:    ttl,
		prefix: "therapy:session:",
	}
}

func (s *redisSessionStore) Save(ctx context.Context, session domain.Session) error {
	if strings.TrimSpace(session.ID) == "" {
		return nil
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+session.ID, payload, s.ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	raw, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("redis get session: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.prefix+id).Err()
}
