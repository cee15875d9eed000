package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"finance-tracker-api/internal/application/apperrors"
	"finance-tracker-api/internal/application/ports"
	"finance-tracker-api/internal/domain/attachment"
	"finance-tracker-api/internal/domain/record"
	"finance-tracker-api/internal/infrastructure/checksum"
	"finance-tracker-api/internal/infrastructure/mq"
)

func testRecord(id uuid.UUID) *record.Record {
	return &record.Record{
		ID:               id,
		UserID:           "u1",
		Date:             time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		AmountMinorUnits: 12999,
		CategoryID:       uuid.New(),
	}
}

func newAttachmentServiceForTest(
	repo *FakeAttachmentRepo,
	records *FakeRecordLookup,
	storage *FakeStorage,
	rbMQ *FakeMQ,
	maxPerRecord int,
) ports.AttachmentService {
	return NewAttachmentService(
		storage,
		NewLimitChecker(repo, maxPerRecord),
		repo,
		records,
		rbMQ,
		testCounter(),
		zap.NewNop(),
	)
}

func TestAttachmentService_Upload(t *testing.T) {
	recordID := uuid.New()
	data := []byte("receipt-bytes")

	tests := []struct {
		name        string
		data        []byte
		activeCount int
		wantErr     error
	}{
		{"empty file rejected", nil, 0, apperrors.ErrInvalidInput},
		{"fifth attachment allowed", data, 4, nil},
		{"sixth attachment rejected", data, 5, apperrors.ErrQuotaExceeded},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := &FakeAttachmentRepo{
				CountActiveByRecordFunc: func(ctx context.Context, rt record.Type, id uuid.UUID) (int, error) {
					return tt.activeCount, nil
				},
				CreateFunc: func(ctx context.Context, req *attachment.Attachment) (*attachment.Attachment, error) {
					out := *req
					out.ID = uuid.New()
					out.CreatedAt = time.Now().UTC()
					return &out, nil
				},
			}
			records := &FakeRecordLookup{
				FetchFunc: func(ctx context.Context, rt record.Type, id uuid.UUID) (*record.Record, error) {
					return testRecord(id), nil
				},
			}
			storage := &FakeStorage{
				UploadFunc: func(ctx context.Context, userID string, d []byte, filename, mimeType string) (*ports.StorageFile, error) {
					return &ports.StorageFile{
						RemoteID:    "drive-1",
						Filename:    filename,
						MimeType:    mimeType,
						SizeBytes:   uint64(len(d)),
						WebViewLink: "https://drive.example.com/drive-1",
					}, nil
				},
			}
			rbMQ := NewFakeMQ()
			svc := newAttachmentServiceForTest(repo, records, storage, rbMQ, 5)

			a, err := svc.Upload(context.Background(), "u1", ports.UploadInput{
				RecordType: record.TypeExpense,
				RecordID:   recordID,
				Filename:   "receipt.pdf",
				MimeType:   "application/pdf",
				Data:       tt.data,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Len(t, rbMQ.in, 0)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, a)

			assert.Equal(t, "drive-1", a.DriveFileID)
			assert.Equal(t, attachment.StatusActive, a.Status)
			assert.Equal(t, checksum.Sum(data), a.Checksum)
			require.NotNil(t, a.LinkedExpenseID)
			assert.Equal(t, recordID, *a.LinkedExpenseID)
			assert.Nil(t, a.LinkedIncomeID)
			assert.Equal(t, int64(12999), a.AmountMinorUnits)

			require.Len(t, rbMQ.in, 1)
			e := <-rbMQ.in
			assert.Equal(t, mq.ActionUploaded, e.Action)
			assert.Equal(t, "u1", e.UserID)
			assert.Equal(t, a.ID, e.Payload.ID)
		})
	}
}

func TestAttachmentService_Upload_KeepsClientChecksum(t *testing.T) {
	repo := &FakeAttachmentRepo{
		CountActiveByRecordFunc: func(ctx context.Context, rt record.Type, id uuid.UUID) (int, error) {
			return 0, nil
		},
		CreateFunc: func(ctx context.Context, req *attachment.Attachment) (*attachment.Attachment, error) {
			return req, nil
		},
	}
	records := &FakeRecordLookup{
		FetchFunc: func(ctx context.Context, rt record.Type, id uuid.UUID) (*record.Record, error) {
			return testRecord(id), nil
		},
	}
	storage := &FakeStorage{
		UploadFunc: func(ctx context.Context, userID string, d []byte, filename, mimeType string) (*ports.StorageFile, error) {
			return &ports.StorageFile{RemoteID: "drive-1"}, nil
		},
	}
	svc := newAttachmentServiceForTest(repo, records, storage, NewFakeMQ(), 5)

	clientSum := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	a, err := svc.Upload(context.Background(), "u1", ports.UploadInput{
		RecordType: record.TypeIncome,
		RecordID:   uuid.New(),
		Filename:   "invoice.png",
		Data:       []byte("other-bytes"),
		Checksum:   clientSum,
	})
	require.NoError(t, err)
	assert.Equal(t, clientSum, a.Checksum)
	require.NotNil(t, a.LinkedIncomeID)
	assert.Nil(t, a.LinkedExpenseID)
}

func TestAttachmentService_Replace(t *testing.T) {
	oldID := uuid.New()
	recordID := uuid.New()

	active := func() *attachment.Attachment {
		return &attachment.Attachment{
			ID:              oldID,
			LinkedExpenseID: &recordID,
			DriveFileID:     "drive-old",
			RecordType:      record.TypeExpense,
			Status:          attachment.StatusActive,
		}
	}

	t.Run("new object first, then soft delete of the old row", func(t *testing.T) {
		var calls []string
		var gotReplacedBy *uuid.UUID
		var gotExpiresAt time.Time
		newID := uuid.New()

		repo := &FakeAttachmentRepo{
			FetchByIDFunc: func(ctx context.Context, id uuid.UUID) (*attachment.Attachment, error) {
				return active(), nil
			},
			CreateFunc: func(ctx context.Context, req *attachment.Attachment) (*attachment.Attachment, error) {
				calls = append(calls, "create")
				out := *req
				out.ID = newID
				return &out, nil
			},
			MarkRemovedFunc: func(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID, retentionExpiresAt time.Time) (*attachment.Attachment, error) {
				calls = append(calls, "markRemoved")
				require.Equal(t, oldID, id)
				gotReplacedBy = replacedBy
				gotExpiresAt = retentionExpiresAt
				return active(), nil
			},
		}
		records := &FakeRecordLookup{
			FetchFunc: func(ctx context.Context, rt record.Type, id uuid.UUID) (*record.Record, error) {
				require.Equal(t, recordID, id)
				return testRecord(id), nil
			},
		}
		storage := &FakeStorage{
			UploadFunc: func(ctx context.Context, userID string, d []byte, filename, mimeType string) (*ports.StorageFile, error) {
				return &ports.StorageFile{RemoteID: "drive-new"}, nil
			},
			ReplaceFunc: func(ctx context.Context, userID, oldRemoteID string, d []byte, filename, mimeType string) (*ports.StorageFile, error) {
				t.Fatal("in-place remote replace must not be used")
				return nil, nil
			},
		}
		rbMQ := NewFakeMQ()
		svc := newAttachmentServiceForTest(repo, records, storage, rbMQ, 5)

		a, err := svc.Replace(context.Background(), "u1", oldID, ports.ReplaceInput{
			Filename: "v2.pdf",
			MimeType: "application/pdf",
			Data:     []byte("new-bytes"),
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"create", "markRemoved"}, calls)
		assert.Equal(t, newID, a.ID)
		assert.Equal(t, "drive-new", a.DriveFileID)
		require.NotNil(t, gotReplacedBy)
		assert.Equal(t, newID, *gotReplacedBy)
		assert.WithinDuration(t, time.Now().UTC().Add(attachment.RetentionWindow), gotExpiresAt, time.Minute)

		require.Len(t, rbMQ.in, 1)
		e := <-rbMQ.in
		assert.Equal(t, mq.ActionReplaced, e.Action)
	})

	t.Run("removed attachment cannot be replaced", func(t *testing.T) {
		repo := &FakeAttachmentRepo{
			FetchByIDFunc: func(ctx context.Context, id uuid.UUID) (*attachment.Attachment, error) {
				a := active()
				a.Status = attachment.StatusRemoved
				return a, nil
			},
		}
		svc := newAttachmentServiceForTest(repo, &FakeRecordLookup{}, &FakeStorage{}, NewFakeMQ(), 5)

		_, err := svc.Replace(context.Background(), "u1", oldID, ports.ReplaceInput{Data: []byte("x")})
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("empty file rejected", func(t *testing.T) {
		svc := newAttachmentServiceForTest(&FakeAttachmentRepo{}, &FakeRecordLookup{}, &FakeStorage{}, NewFakeMQ(), 5)

		_, err := svc.Replace(context.Background(), "u1", oldID, ports.ReplaceInput{})
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestAttachmentService_Remove(t *testing.T) {
	id := uuid.New()

	t.Run("active attachment is soft deleted with a retention deadline", func(t *testing.T) {
		var gotReplacedBy *uuid.UUID
		var gotExpiresAt time.Time

		repo := &FakeAttachmentRepo{
			FetchByIDFunc: func(ctx context.Context, aID uuid.UUID) (*attachment.Attachment, error) {
				return &attachment.Attachment{ID: aID, Status: attachment.StatusActive}, nil
			},
			MarkRemovedFunc: func(ctx context.Context, aID uuid.UUID, replacedBy *uuid.UUID, retentionExpiresAt time.Time) (*attachment.Attachment, error) {
				gotReplacedBy = replacedBy
				gotExpiresAt = retentionExpiresAt
				exp := retentionExpiresAt
				return &attachment.Attachment{ID: aID, Status: attachment.StatusRemoved, RetentionExpiresAt: &exp}, nil
			},
		}
		rbMQ := NewFakeMQ()
		svc := newAttachmentServiceForTest(repo, &FakeRecordLookup{}, &FakeStorage{}, rbMQ, 5)

		a, err := svc.Remove(context.Background(), "u1", id)
		require.NoError(t, err)

		assert.Equal(t, attachment.StatusRemoved, a.Status)
		assert.Nil(t, gotReplacedBy)
		assert.WithinDuration(t, time.Now().UTC().Add(attachment.RetentionWindow), gotExpiresAt, time.Minute)

		require.Len(t, rbMQ.in, 1)
		e := <-rbMQ.in
		assert.Equal(t, mq.ActionRemoved, e.Action)
	})

	t.Run("second remove fails", func(t *testing.T) {
		repo := &FakeAttachmentRepo{
			FetchByIDFunc: func(ctx context.Context, aID uuid.UUID) (*attachment.Attachment, error) {
				return &attachment.Attachment{ID: aID, Status: attachment.StatusRemoved}, nil
			},
		}
		svc := newAttachmentServiceForTest(repo, &FakeRecordLookup{}, &FakeStorage{}, NewFakeMQ(), 5)

		_, err := svc.Remove(context.Background(), "u1", id)
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("unknown attachment", func(t *testing.T) {
		repo := &FakeAttachmentRepo{
			FetchByIDFunc: func(ctx context.Context, aID uuid.UUID) (*attachment.Attachment, error) {
				return nil, apperrors.ErrNotFound
			},
		}
		svc := newAttachmentServiceForTest(repo, &FakeRecordLookup{}, &FakeStorage{}, NewFakeMQ(), 5)

		_, err := svc.Remove(context.Background(), "u1", id)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestAttachmentService_List(t *testing.T) {
	recordID := uuid.New()
	want := attachment.Attachments{
		{ID: uuid.New(), Status: attachment.StatusActive},
		{ID: uuid.New(), Status: attachment.StatusActive},
	}

	repo := &FakeAttachmentRepo{
		FetchActiveByRecordFunc: func(ctx context.Context, rt record.Type, id uuid.UUID) (attachment.Attachments, error) {
			require.Equal(t, record.TypeExpense, rt)
			require.Equal(t, recordID, id)
			return want, nil
		},
	}
	svc := newAttachmentServiceForTest(repo, &FakeRecordLookup{}, &FakeStorage{}, NewFakeMQ(), 5)

	got, err := svc.List(context.Background(), record.TypeExpense, recordID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
