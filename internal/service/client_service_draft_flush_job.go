package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/models"
)

const defaultDraftFlushInterval = time.Minute

type draftFlushJob struct {
	notes ClientNoteService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewDraftFlushJob(notes ClientNoteService, logger *logger.Logger) DraftFlushJob {
	return &draftFlushJob{notes: notes, logger: logger}
}

// Start runs a flush right away and then every interval. A running job is
// stopped first.
func (j *draftFlushJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultDraftFlushInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			j.flush(jobCtx)

			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

func (j *draftFlushJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// flush pushes every stored draft. Drafts of deleted notes are dropped;
// other failures keep the draft for the next round.
func (j *draftFlushJob) flush(ctx context.Context) {
	log := j.logger.With().Str("func", "*draftFlushJob.flush").Logger()

	drafts, err := j.notes.ListDrafts(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list drafts")
		return
	}

	for _, draft := range drafts {
		if ctx.Err() != nil {
			return
		}

		err = j.push(ctx, draft)
		switch {
		case err == nil:
			log.Info().Str("note_id", draft.NoteID).Msg("draft saved")
		case errors.Is(err, store.ErrNoteNotFound):
			log.Warn().Str("note_id", draft.NoteID).Msg("note was deleted, dropping its draft")
		default:
			log.Debug().Err(err).Str("note_id", draft.NoteID).Msg("draft is still unsaved")
			continue
		}

		if err = j.notes.DiscardDraft(ctx, draft.NoteID); err != nil {
			log.Err(err).Str("note_id", draft.NoteID).Msg("failed to discard draft")
		}
	}
}

func (j *draftFlushJob) push(ctx context.Context, draft models.Draft) error {
	content := models.NoteContent{Title: draft.Title, Content: draft.Content}
	if draft.NoteID == "" {
		_, err := j.notes.Create(ctx, content)
		return err
	}
	_, err := j.notes.Update(ctx, draft.NoteID, content)
	return err
}
