package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"golang.org/x/oauth2"

	"finance-tracker-api/internal/application/ports"
	"finance-tracker-api/internal/domain/attachment"
	"finance-tracker-api/internal/domain/bulkimport"
	"finance-tracker-api/internal/domain/driveauth"
	"finance-tracker-api/internal/domain/record"
	"finance-tracker-api/internal/infrastructure/mq"
)

// testCounter builds an unregistered counter so parallel test files never
// hit the duplicate-registration panic of the promauto default registry.
func testCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fintracker_test",
			Name:      "general_counters",
		},
		[]string{"result"})
}

type FakeAttachmentRepo struct {
	CreateFunc              func(ctx context.Context, req *attachment.Attachment) (*attachment.Attachment, error)
	FetchByIDFunc           func(ctx context.Context, id uuid.UUID) (*attachment.Attachment, error)
	FetchActiveByRecordFunc func(ctx context.Context, recordType record.Type, recordID uuid.UUID) (attachment.Attachments, error)
	CountActiveByRecordFunc func(ctx context.Context, recordType record.Type, recordID uuid.UUID) (int, error)
	MarkRemovedFunc         func(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID, retentionExpiresAt time.Time) (*attachment.Attachment, error)
	FetchExpiredFunc        func(ctx context.Context, now time.Time) (attachment.Attachments, error)
	HardDeleteFunc          func(ctx context.Context, id uuid.UUID) error
	FetchDriveFileIDsFunc   func(ctx context.Context, userID string) ([]string, error)
}

func (f *FakeAttachmentRepo) Create(ctx context.Context, req *attachment.Attachment) (*attachment.Attachment, error) {
	if f.CreateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFunc(ctx, req)
}
func (f *FakeAttachmentRepo) FetchByID(ctx context.Context, id uuid.UUID) (*attachment.Attachment, error) {
	if f.FetchByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByIDFunc(ctx, id)
}
func (f *FakeAttachmentRepo) FetchActiveByRecord(ctx context.Context, recordType record.Type, recordID uuid.UUID) (attachment.Attachments, error) {
	if f.FetchActiveByRecordFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchActiveByRecordFunc(ctx, recordType, recordID)
}
func (f *FakeAttachmentRepo) CountActiveByRecord(ctx context.Context, recordType record.Type, recordID uuid.UUID) (int, error) {
	if f.CountActiveByRecordFunc == nil {
		return 0, errors.New("not used")
	}
	return f.CountActiveByRecordFunc(ctx, recordType, recordID)
}
func (f *FakeAttachmentRepo) MarkRemoved(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID, retentionExpiresAt time.Time) (*attachment.Attachment, error) {
	if f.MarkRemovedFunc == nil {
		return nil, errors.New("not used")
	}
	return f.MarkRemovedFunc(ctx, id, replacedBy, retentionExpiresAt)
}
func (f *FakeAttachmentRepo) FetchExpired(ctx context.Context, now time.Time) (attachment.Attachments, error) {
	if f.FetchExpiredFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchExpiredFunc(ctx, now)
}
func (f *FakeAttachmentRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	if f.HardDeleteFunc == nil {
		return errors.New("not used")
	}
	return f.HardDeleteFunc(ctx, id)
}
func (f *FakeAttachmentRepo) FetchDriveFileIDs(ctx context.Context, userID string) ([]string, error) {
	if f.FetchDriveFileIDsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchDriveFileIDsFunc(ctx, userID)
}

type FakeRecordLookup struct {
	FetchFunc func(ctx context.Context, recordType record.Type, id uuid.UUID) (*record.Record, error)
}

func (f *FakeRecordLookup) Fetch(ctx context.Context, recordType record.Type, id uuid.UUID) (*record.Record, error) {
	if f.FetchFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchFunc(ctx, recordType, id)
}

type FakeStorage struct {
	EnsureUserRootFunc func(ctx context.Context, userID string) (string, error)
	UploadFunc         func(ctx context.Context, userID string, data []byte, filename, mimeType string) (*ports.StorageFile, error)
	ReplaceFunc        func(ctx context.Context, userID, oldRemoteID string, data []byte, filename, mimeType string) (*ports.StorageFile, error)
	DeleteFunc         func(ctx context.Context, userID, remoteID string) error
	ListUserFilesFunc  func(ctx context.Context, userID string) ([]ports.StorageFile, error)
}

func (f *FakeStorage) EnsureUserRoot(ctx context.Context, userID string) (string, error) {
	if f.EnsureUserRootFunc == nil {
		return "root-id", nil
	}
	return f.EnsureUserRootFunc(ctx, userID)
}
func (f *FakeStorage) Upload(ctx context.Context, userID string, data []byte, filename, mimeType string) (*ports.StorageFile, error) {
	if f.UploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFunc(ctx, userID, data, filename, mimeType)
}
func (f *FakeStorage) Replace(ctx context.Context, userID, oldRemoteID string, data []byte, filename, mimeType string) (*ports.StorageFile, error) {
	if f.ReplaceFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ReplaceFunc(ctx, userID, oldRemoteID, data, filename, mimeType)
}
func (f *FakeStorage) Delete(ctx context.Context, userID, remoteID string) error {
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, userID, remoteID)
}
func (f *FakeStorage) ListUserFiles(ctx context.Context, userID string) ([]ports.StorageFile, error) {
	if f.ListUserFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListUserFilesFunc(ctx, userID)
}
func (f *FakeStorage) ListAllFiles(ctx context.Context) ([]ports.StorageFile, error) {
	return nil, nil
}

type FakeMQ struct {
	in chan mq.Event
}

func NewFakeMQ() *FakeMQ {
	return &FakeMQ{in: make(chan mq.Event, 16)}
}

func (f *FakeMQ) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeMQ) Init() error                                   { return nil }
func (f *FakeMQ) PublisherWorker(ctx context.Context)           {}
func (f *FakeMQ) GetInputChan() chan mq.Event                   { return f.in }
func (f *FakeMQ) GetConn() *amqp091.Connection                  { return nil }

type FakeJobRepo struct {
	CreateFunc         func(ctx context.Context, req *bulkimport.Job) (*bulkimport.Job, error)
	FetchByIDFunc      func(ctx context.Context, id uuid.UUID) (*bulkimport.Job, error)
	FetchStatusFunc    func(ctx context.Context, id uuid.UUID) (bulkimport.Status, error)
	UpdateProgressFunc func(ctx context.Context, id uuid.UUID, c bulkimport.Counters, status bulkimport.Status) (*bulkimport.Job, error)
	UpdateStatusFunc   func(ctx context.Context, id uuid.UUID, status bulkimport.Status) (*bulkimport.Job, error)
}

func (f *FakeJobRepo) Create(ctx context.Context, req *bulkimport.Job) (*bulkimport.Job, error) {
	if f.CreateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFunc(ctx, req)
}
func (f *FakeJobRepo) FetchByID(ctx context.Context, id uuid.UUID) (*bulkimport.Job, error) {
	if f.FetchByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByIDFunc(ctx, id)
}
func (f *FakeJobRepo) FetchStatus(ctx context.Context, id uuid.UUID) (bulkimport.Status, error) {
	if f.FetchStatusFunc == nil {
		return "", errors.New("not used")
	}
	return f.FetchStatusFunc(ctx, id)
}
func (f *FakeJobRepo) UpdateProgress(ctx context.Context, id uuid.UUID, c bulkimport.Counters, status bulkimport.Status) (*bulkimport.Job, error) {
	if f.UpdateProgressFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateProgressFunc(ctx, id, c, status)
}
func (f *FakeJobRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status bulkimport.Status) (*bulkimport.Job, error) {
	if f.UpdateStatusFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateStatusFunc(ctx, id, status)
}

type FakeAttachmentService struct {
	UploadFunc  func(ctx context.Context, userID string, in ports.UploadInput) (*attachment.Attachment, error)
	ReplaceFunc func(ctx context.Context, userID string, attachmentID uuid.UUID, in ports.ReplaceInput) (*attachment.Attachment, error)
	RemoveFunc  func(ctx context.Context, userID string, attachmentID uuid.UUID) (*attachment.Attachment, error)
	ListFunc    func(ctx context.Context, recordType record.Type, recordID uuid.UUID) (attachment.Attachments, error)
}

func (f *FakeAttachmentService) Upload(ctx context.Context, userID string, in ports.UploadInput) (*attachment.Attachment, error) {
	if f.UploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFunc(ctx, userID, in)
}
func (f *FakeAttachmentService) Replace(ctx context.Context, userID string, attachmentID uuid.UUID, in ports.ReplaceInput) (*attachment.Attachment, error) {
	if f.ReplaceFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ReplaceFunc(ctx, userID, attachmentID, in)
}
func (f *FakeAttachmentService) Remove(ctx context.Context, userID string, attachmentID uuid.UUID) (*attachment.Attachment, error) {
	if f.RemoveFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RemoveFunc(ctx, userID, attachmentID)
}
func (f *FakeAttachmentService) List(ctx context.Context, recordType record.Type, recordID uuid.UUID) (attachment.Attachments, error) {
	if f.ListFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListFunc(ctx, recordType, recordID)
}

type FakeCredsRepo struct {
	UpsertFunc       func(ctx context.Context, req *driveauth.Credential) error
	FetchFunc        func(ctx context.Context, userID string) (*driveauth.Credential, error)
	TouchFunc        func(ctx context.Context, userID string, validatedAt time.Time) error
	DeleteFunc       func(ctx context.Context, userID string) error
	FetchUserIDsFunc func(ctx context.Context) ([]string, error)
}

func (f *FakeCredsRepo) Upsert(ctx context.Context, req *driveauth.Credential) error {
	if f.UpsertFunc == nil {
		return errors.New("not used")
	}
	return f.UpsertFunc(ctx, req)
}
func (f *FakeCredsRepo) Fetch(ctx context.Context, userID string) (*driveauth.Credential, error) {
	if f.FetchFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchFunc(ctx, userID)
}
func (f *FakeCredsRepo) Touch(ctx context.Context, userID string, validatedAt time.Time) error {
	if f.TouchFunc == nil {
		return errors.New("not used")
	}
	return f.TouchFunc(ctx, userID, validatedAt)
}
func (f *FakeCredsRepo) Delete(ctx context.Context, userID string) error {
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, userID)
}
func (f *FakeCredsRepo) FetchUserIDs(ctx context.Context) ([]string, error) {
	if f.FetchUserIDsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserIDsFunc(ctx)
}

type FakeOAuthClient struct {
	ScopesFunc      func() []string
	AuthCodeURLFunc func(state string) string
	ExchangeFunc    func(ctx context.Context, code string) (*oauth2.Token, error)
	RefreshFunc     func(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	RevokeFunc      func(ctx context.Context, token string) error
}

func (f *FakeOAuthClient) Scopes() []string {
	if f.ScopesFunc == nil {
		return []string{"https://www.googleapis.com/auth/drive.file"}
	}
	return f.ScopesFunc()
}
func (f *FakeOAuthClient) AuthCodeURL(state string) string {
	if f.AuthCodeURLFunc == nil {
		return "https://accounts.example.com/auth?state=" + state
	}
	return f.AuthCodeURLFunc(state)
}
func (f *FakeOAuthClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if f.ExchangeFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ExchangeFunc(ctx, code)
}
func (f *FakeOAuthClient) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if f.RefreshFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RefreshFunc(ctx, refreshToken)
}
func (f *FakeOAuthClient) Revoke(ctx context.Context, token string) error {
	if f.RevokeFunc == nil {
		return errors.New("not used")
	}
	return f.RevokeFunc(ctx, token)
}
