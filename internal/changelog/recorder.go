package changelog

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ventia/ventia-backend/internal/domain"
)

// Recorder persists derived note entries. Recording is best-effort: the
// entity mutation that produced the entries must succeed even when the note
// write fails, so failures are logged and swallowed.
type Recorder struct {
	noteRepo domain.NoteRepository
}

// NewRecorder creates a new Recorder
func NewRecorder(noteRepo domain.NoteRepository) *Recorder {
	return &Recorder{noteRepo: noteRepo}
}

// Record writes one note row per entry, linked to the target entity and
// tagged with the given note type ("creation" or "update").
func (r *Recorder) Record(workspaceID, authorID uuid.UUID, target domain.NoteTarget, noteType string, entries []string) {
	if len(entries) == 0 {
		return
	}

	notes := make([]*domain.Note, len(entries))
	for i, entry := range entries {
		notes[i] = &domain.Note{
			WorkspaceID: workspaceID,
			Content:     entry,
			Type:        noteType,
			ContactID:   target.ContactID,
			LeadID:      target.LeadID,
			CompanyID:   target.CompanyID,
			CreatedBy:   authorID,
		}
	}

	if err := r.noteRepo.CreateMany(notes); err != nil {
		log.Warn().Err(err).
			Str("workspace_id", workspaceID.String()).
			Str("note_type", noteType).
			Int("entries", len(entries)).
			Msg("Failed to record change-log notes")
	}
}
