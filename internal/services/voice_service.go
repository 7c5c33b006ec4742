package services

import (
	"bufio"
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"focusflow/internal/domain"
	"focusflow/internal/errors"
)

// LineTranscriber treats each non-blank line of its reader as one utterance.
type LineTranscriber struct {
	r io.Reader
}

// NewLineTranscriber creates a transcript source over r
func NewLineTranscriber(r io.Reader) *LineTranscriber {
	return &LineTranscriber{r: r}
}

// Transcripts streams the lines until the reader is exhausted or ctx is done
func (l *LineTranscriber) Transcripts(ctx context.Context) (<-chan string, error) {
	if l == nil || l.r == nil {
		return nil, errors.NewVoiceUnavailableError("no input", nil)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(l.r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// voiceServiceImpl implements the VoiceService interface
type voiceServiceImpl struct {
	taskService TaskService
	logger      *zap.SugaredLogger
}

// NewVoiceService creates a new VoiceService instance
func NewVoiceService(taskService TaskService, logger *zap.SugaredLogger) VoiceService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &voiceServiceImpl{
		taskService: taskService,
		logger:      logger,
	}
}

// Capture quick-adds every utterance the source produces. Utterances that
// fail validation are skipped. A failed save keeps the task and the first
// such error is returned with the captured tasks.
func (v *voiceServiceImpl) Capture(ctx context.Context, source TranscriptSource) ([]domain.Task, error) {
	if source == nil {
		return nil, errors.NewVoiceUnavailableError("no transcript source", nil)
	}

	transcripts, err := source.Transcripts(ctx)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeVoiceUnavailable) {
			return nil, err
		}
		return nil, errors.NewVoiceUnavailableError(err.Error(), err)
	}

	tasks := []domain.Task{}
	var firstErr error
	for text := range transcripts {
		task, err := v.taskService.QuickAdd(ctx, text)
		if task == nil {
			v.logger.Warnw("utterance skipped", "text", text, "error", err)
			continue
		}
		tasks = append(tasks, *task)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		v.logger.Debugw("voice task captured", "id", task.ID, "title", task.Title)
	}

	return tasks, firstErr
}
