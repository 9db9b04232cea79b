package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/mock"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/models"
)

func TestDraftFlushJob_Flush(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	notes := mock.NewMockClientNoteService(ctrl)

	saved := models.Draft{NoteID: "saved", Title: "A", Content: "a"}
	deleted := models.Draft{NoteID: "deleted", Title: "B", Content: "b"}
	offline := models.Draft{NoteID: "offline", Title: "C", Content: "c"}
	unsent := models.Draft{Title: "New", Content: "never created"}

	notes.EXPECT().ListDrafts(ctx).Return([]models.Draft{saved, deleted, offline, unsent}, nil)

	notes.EXPECT().Update(ctx, "saved", models.NoteContent{Title: "A", Content: "a"}).Return(models.Note{ID: "saved"}, nil)
	notes.EXPECT().DiscardDraft(ctx, "saved").Return(nil)

	notes.EXPECT().Update(ctx, "deleted", gomock.Any()).Return(models.Note{}, store.ErrNoteNotFound)
	notes.EXPECT().DiscardDraft(ctx, "deleted").Return(nil)

	notes.EXPECT().Update(ctx, "offline", gomock.Any()).Return(models.Note{}, errors.New("connection refused"))

	notes.EXPECT().Create(ctx, models.NoteContent{Title: "New", Content: "never created"}).Return(models.Note{ID: "n"}, nil)
	notes.EXPECT().DiscardDraft(ctx, "").Return(nil)

	job := NewDraftFlushJob(notes, logger.Nop()).(*draftFlushJob)
	job.flush(ctx)
}

func TestDraftFlushJob_ListFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	notes := mock.NewMockClientNoteService(ctrl)
	notes.EXPECT().ListDrafts(gomock.Any()).Return(nil, errors.New("db closed"))

	NewDraftFlushJob(notes, logger.Nop()).(*draftFlushJob).flush(context.Background())
}

func TestDraftFlushJob_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	notes := mock.NewMockClientNoteService(ctrl)

	calls := make(chan struct{}, 16)
	notes.EXPECT().ListDrafts(gomock.Any()).DoAndReturn(func(context.Context) ([]models.Draft, error) {
		calls <- struct{}{}
		return nil, nil
	}).MinTimes(2)

	job := NewDraftFlushJob(notes, logger.Nop())
	job.Start(context.Background(), 10*time.Millisecond)

	for range 2 {
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatal("job did not flush")
		}
	}

	job.Stop()
	n := len(calls)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, len(calls), "no flush after Stop")

	// a second Stop is a no-op
	job.Stop()
}
