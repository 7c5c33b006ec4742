package services

import (
	"context"
	"io"

	"go.uber.org/zap"

	"focusflow/internal/domain"
	"focusflow/internal/errors"
	"focusflow/internal/storage"
)

// transferServiceImpl implements the TransferService interface
type transferServiceImpl struct {
	repo   TaskRepository
	mapper *domain.Mapper
	logger *zap.SugaredLogger
}

// NewTransferService creates a new TransferService instance
func NewTransferService(repo TaskRepository, mapper *domain.Mapper, logger *zap.SugaredLogger) TransferService {
	if mapper == nil {
		mapper = domain.NewMapper()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &transferServiceImpl{
		repo:   repo,
		mapper: mapper,
		logger: logger,
	}
}

// Export writes the whole board in the persisted record format
func (s *transferServiceImpl) Export(ctx context.Context, w io.Writer) error {
	record := s.mapper.State.ToRecord(s.repo.Snapshot())
	if err := storage.Encode(w, record); err != nil {
		return errors.NewStorageError("export board", err)
	}
	s.logger.Debugw("board exported", "tasks", len(record.Tasks))
	return nil
}

// Import replaces the board with the record read from r and returns the
// number of imported tasks. A rejected document leaves the board untouched.
// Settings absent from the document keep their current values.
func (s *transferServiceImpl) Import(ctx context.Context, r io.Reader) (int, error) {
	record, err := storage.Decode(r)
	if err != nil {
		return 0, errors.NewImportError(err.Error(), err)
	}

	state, err := s.mapper.State.FromRecord(record, s.repo.Settings())
	if err != nil {
		return 0, errors.NewImportError(err.Error(), err)
	}

	if err := s.repo.Replace(ctx, state); err != nil {
		return len(state.Tasks), err
	}
	s.logger.Infow("board imported", "tasks", len(state.Tasks), "seq", state.Seq)
	return len(state.Tasks), nil
}
