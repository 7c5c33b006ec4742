package services

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/domain"
	"focusflow/internal/errors"
	"focusflow/internal/repository"
)

type brokenSource struct {
	err error
}

func (b brokenSource) Transcripts(context.Context) (<-chan string, error) {
	return nil, b.err
}

func TestLineTranscriber_Transcripts(t *testing.T) {
	source := NewLineTranscriber(strings.NewReader("Buy milk\n\n   \n  Call mom tomorrow  \n"))

	ch, err := source.Transcripts(context.Background())
	require.NoError(t, err)

	var got []string
	for line := range ch {
		got = append(got, line)
	}
	assert.Equal(t, []string{"Buy milk", "Call mom tomorrow"}, got)
}

func TestLineTranscriber_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := NewLineTranscriber(strings.NewReader("one\ntwo\nthree\n"))

	ch, err := source.Transcripts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", <-ch)
	cancel()

	// drains to close without blocking forever
	for range ch {
	}
}

func TestVoiceService_Capture(t *testing.T) {
	tests := []struct {
		name           string
		source         TranscriptSource
		expectedTitles []string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:           "should quick-add each utterance",
			source:         NewLineTranscriber(strings.NewReader("Buy milk tomorrow\nShip release critical\n")),
			expectedTitles: []string{"Buy milk", "Ship release critical"},
		},
		{
			name:           "should skip utterances that fail validation",
			source:         NewLineTranscriber(strings.NewReader(strings.Repeat("a", 300) + "\nWater plants\n")),
			expectedTitles: []string{"Water plants"},
		},
		{
			name:           "should succeed with nothing heard",
			source:         NewLineTranscriber(strings.NewReader("")),
			expectedTitles: []string{},
		},
		{
			name:   "should report a missing source as unavailable",
			source: nil,
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeVoiceUnavailable))
			},
		},
		{
			name:   "should report a failing source as unavailable",
			source: brokenSource{err: stderrors.New("microphone busy")},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeVoiceUnavailable))
				assert.Contains(t, err.Error(), "microphone busy")
			},
		},
		{
			name:   "should report a reader-less transcriber as unavailable",
			source: NewLineTranscriber(nil),
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeVoiceUnavailable))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			taskService, repo := setupTaskService(t)
			service := NewVoiceService(taskService, nil)

			// Act
			tasks, err := service.Capture(context.Background(), tt.source)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Empty(t, tasks)
				assert.Empty(t, repo.List(), "nothing is created")
				return
			}

			require.NoError(t, err)
			titles := make([]string, 0, len(tasks))
			for _, task := range tasks {
				titles = append(titles, task.Title)
				assert.Equal(t, domain.DefaultList, task.List)
			}
			assert.Equal(t, tt.expectedTitles, titles)
			assert.Len(t, repo.List(), len(tt.expectedTitles))
		})
	}
}

func TestVoiceService_CaptureKeepsTasksOnSaveFailure(t *testing.T) {
	save := &failingSave{err: errors.NewStorageError("save board", stderrors.New("disk full"))}
	repo := repository.New(save.save, repository.WithClock(fixedClock(taskNow)))
	taskService := NewTaskService(repo, NewTimeService(fixedClock(taskNow), ""), nil, DefaultTaskDefaults(), nil)
	service := NewVoiceService(taskService, nil)

	tasks, err := service.Capture(context.Background(), NewLineTranscriber(strings.NewReader("One\nTwo\n")))

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
	assert.Len(t, tasks, 2)
	assert.Len(t, repo.List(), 2)
}
