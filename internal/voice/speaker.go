package voice

import (
	"context"
	"errors"
)

// Speaker define la interfaz de salida de voz: anunciar un turno de
// guía para que el proveedor lo sintetice. El engine nunca espera por
// esto; los callers lo invocan fire-and-forget.
type Speaker interface {
	Announce(ctx context.Context, text string) error
}

type disabledSpeaker struct {
	reason string
}

// NewDisabledSpeaker se usa cuando no hay proveedor de voz configurado.
func NewDisabledSpeaker(reason string) Speaker {
	return &disabledSpeaker{reason: reason}
}

func (s *disabledSpeaker) Announce(_ context.Context, _ string) error {
	if s.reason == "" {
		return errors.New("voice speaker disabled")
	}
	return errors.New(s.reason)
}
