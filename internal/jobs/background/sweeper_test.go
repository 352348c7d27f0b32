package background

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clientdesk/internal/models"
)

type mockFileRepo struct {
	mock.Mock
}

func (m *mockFileRepo) Create(ctx context.Context, record *models.FileRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FileRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FileRecord), args.Error(1)
}

func (m *mockFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFileRepo) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*models.FileRecord, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FileRecord), args.Error(1)
}

func (m *mockFileRepo) ListAll(ctx context.Context, limit, offset int) ([]*models.FileRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FileRecord), args.Error(1)
}

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, reader, size, contentType).Error(0)
}

func (m *mockBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlobStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func record(key string) *models.FileRecord {
	return &models.FileRecord{ID: uuid.New(), ClientID: uuid.New(), StorageKey: key}
}

func TestSweep_ChecksEveryRecordAcrossPages(t *testing.T) {
	fileRepo := new(mockFileRepo)
	blobs := new(mockBlobStore)

	page1 := []*models.FileRecord{record("a"), record("b")}
	page2 := []*models.FileRecord{record("c")}
	fileRepo.On("ListAll", mock.Anything, 2, 0).Return(page1, nil)
	fileRepo.On("ListAll", mock.Anything, 2, 2).Return(page2, nil)

	for _, key := range []string{"a", "b", "c"} {
		blobs.On("Exists", mock.Anything, key).Return(true, nil)
	}

	sweeper, err := NewSweeper(fileRepo, blobs, 2, zerolog.Nop())
	require.NoError(t, err)

	sweeper.Sweep(context.Background())

	blobs.AssertNumberOfCalls(t, "Exists", 3)

	// The short final page ends the walk without another listing call.
	fileRepo.AssertNumberOfCalls(t, "ListAll", 2)
}

func TestSweep_ReportsMissingBlobWithoutMutating(t *testing.T) {
	fileRepo := new(mockFileRepo)
	blobs := new(mockBlobStore)

	orphan := record("gone")
	fileRepo.On("ListAll", mock.Anything, 500, 0).Return([]*models.FileRecord{orphan}, nil)
	blobs.On("Exists", mock.Anything, "gone").Return(false, nil)

	sweeper, err := NewSweeper(fileRepo, blobs, 0, zerolog.Nop())
	require.NoError(t, err)

	sweeper.Sweep(context.Background())

	// Detection only: the sweep never deletes rows or writes blobs.
	fileRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	blobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSweep_ListFailureAborts(t *testing.T) {
	fileRepo := new(mockFileRepo)
	blobs := new(mockBlobStore)

	fileRepo.On("ListAll", mock.Anything, 500, 0).Return(nil, errors.New("database unreachable"))

	sweeper, err := NewSweeper(fileRepo, blobs, 0, zerolog.Nop())
	require.NoError(t, err)

	sweeper.Sweep(context.Background())
	blobs.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestSweep_ExistenceCheckErrorSkipsRecord(t *testing.T) {
	fileRepo := new(mockFileRepo)
	blobs := new(mockBlobStore)

	records := []*models.FileRecord{record("flaky"), record("fine")}
	fileRepo.On("ListAll", mock.Anything, 500, 0).Return(records, nil)
	blobs.On("Exists", mock.Anything, "flaky").Return(false, errors.New("timeout"))
	blobs.On("Exists", mock.Anything, "fine").Return(true, nil)

	sweeper, err := NewSweeper(fileRepo, blobs, 0, zerolog.Nop())
	require.NoError(t, err)

	sweeper.Sweep(context.Background())
	blobs.AssertNumberOfCalls(t, "Exists", 2)
}

func TestStartAndStop(t *testing.T) {
	fileRepo := new(mockFileRepo)
	blobs := new(mockBlobStore)

	sweeper, err := NewSweeper(fileRepo, blobs, 10, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, sweeper.Start(time.Hour))
	assert.NoError(t, sweeper.Stop())
}
