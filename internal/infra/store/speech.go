package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matiasleandrokruk/speechgate/internal/apperrors"
	"github.com/matiasleandrokruk/speechgate/internal/domain/speech"
)

// Handle yields the shared database handle. *Connector satisfies it.
type Handle interface {
	DB(ctx context.Context) (*sql.DB, error)
}

// SpeechRepository executes the speech statements against the shared handle.
type SpeechRepository struct {
	handle Handle
}

// NewSpeechRepository creates a SpeechRepository.
func NewSpeechRepository(handle Handle) *SpeechRepository {
	return &SpeechRepository{handle: handle}
}

var _ speech.Repository = (*SpeechRepository)(nil)

// Insert persists rec. Any driver failure is a persistence error.
func (r *SpeechRepository) Insert(ctx context.Context, rec speech.Record) error {
	db, err := r.handle.DB(ctx)
	if err != nil {
		return err
	}
	stmt := InsertSpeech(rec.ExternalID, rec.Prompt, rec.GeneratedText)
	if _, err := db.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodePersistence, "insert speech", err,
			map[string]any{"external_id": rec.ExternalID})
	}
	return nil
}

// FindByExternalID returns the record stored under externalID.
// No matching row is a not-found error.
func (r *SpeechRepository) FindByExternalID(ctx context.Context, externalID string) (speech.Record, error) {
	db, err := r.handle.DB(ctx)
	if err != nil {
		return speech.Record{}, err
	}
	stmt := SelectSpeech(externalID)

	var rec speech.Record
	err = db.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(&rec.ExternalID, &rec.Prompt, &rec.GeneratedText)
	if errors.Is(err, sql.ErrNoRows) {
		return speech.Record{}, apperrors.NewWithContext(apperrors.ErrCodeNotFound, "speech not found",
			map[string]any{"external_id": externalID})
	}
	if err != nil {
		return speech.Record{}, apperrors.WrapWithContext(apperrors.ErrCodePersistence, "select speech", err,
			map[string]any{"external_id": externalID})
	}
	return rec, nil
}
