// Package speech orchestrates speech generation: call the inference endpoint,
// assign an external id, persist the pair; and the inverse lookup.
package speech

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/matiasleandrokruk/speechgate/internal/apperrors"
)

// Title is the fixed title returned with every speech.
const Title = "Wedding Speech"

// Record is one persisted prompt/response pair. Records are write-once.
type Record struct {
	ExternalID    string `json:"externalId"`
	Prompt        string `json:"prompt"`
	GeneratedText string `json:"generatedText"`
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Repository stores and loads records.
type Repository interface {
	Insert(ctx context.Context, rec Record) error
	FindByExternalID(ctx context.Context, externalID string) (Record, error)
}

// Service wires a Generator to a Repository.
type Service struct {
	generator Generator
	repo      Repository
	newID     func() string
}

// NewService creates a Service.
func NewService(generator Generator, repo Repository) *Service {
	return &Service{generator: generator, repo: repo, newID: uuid.NewString}
}

// Generate calls the generator exactly once and persists the result under a
// fresh external id. Nothing is written when generation fails.
func (s *Service) Generate(ctx context.Context, prompt string) (Record, error) {
	if strings.TrimSpace(prompt) == "" {
		return Record{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "input is required")
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ExternalID:    s.newID(),
		Prompt:        prompt,
		GeneratedText: text,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Get returns the record stored under externalID.
func (s *Service) Get(ctx context.Context, externalID string) (Record, error) {
	if strings.TrimSpace(externalID) == "" {
		return Record{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "id is required")
	}
	return s.repo.FindByExternalID(ctx, externalID)
}
