// Package googledrive implements ports.StorageProvider against the Drive
// API using per-user delegated credentials. Every remote call is
// authenticated with a fresh per-user access token; there is no
// service-account fallback.
package googledrive

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"finance-tracker-api/internal/application/apperrors"
	"finance-tracker-api/internal/application/ports"
)

const folderMimeType = "application/vnd.google-apps.folder"

const fileFields = "id, name, mimeType, size, webViewLink"

// queryEscape guards the Drive query language against names containing
// quotes or backslashes.
var queryEscape = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

type Provider struct {
	log      *zap.Logger
	tokens   ports.AccessTokenProvider
	rootName string

	// Resolved per-user root folder ids, cached for the process lifetime.
	// Resolution for one user runs under that user's lock so concurrent
	// first use cannot create duplicate remote folders.
	mu      sync.Mutex
	rootIDs map[string]string
	locks   map[string]*sync.Mutex
}

func New(logger *zap.Logger, rootName string, tokens ports.AccessTokenProvider) *Provider {
	return &Provider{
		log:      logger,
		tokens:   tokens,
		rootName: rootName,
		rootIDs:  make(map[string]string),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (p *Provider) service(ctx context.Context, userID string) (*drive.Service, error) {
	tok, err := p.tokens.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	svc, err := drive.NewService(ctx, option.WithTokenSource(
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok}),
	))
	if err != nil {
		return nil, fmt.Errorf("%w: init drive client: %v", apperrors.ErrUpstream, err)
	}
	return svc, nil
}

func (p *Provider) cachedRoot(userID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rootIDs[userID]
}

func (p *Provider) userLock(userID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[userID] = l
	}
	return l
}

func (p *Provider) EnsureUserRoot(ctx context.Context, userID string) (string, error) {
	if id := p.cachedRoot(userID); id != "" {
		return id, nil
	}

	l := p.userLock(userID)
	l.Lock()
	defer l.Unlock()

	// Another caller may have resolved while we waited.
	if id := p.cachedRoot(userID); id != "" {
		return id, nil
	}

	id, err := p.resolveRoot(ctx, userID)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.rootIDs[userID] = id
	p.mu.Unlock()

	return id, nil
}

// resolveRoot looks the application folder up by name in the user's Drive
// root and creates it when absent.
func (p *Provider) resolveRoot(ctx context.Context, userID string) (string, error) {
	svc, err := p.service(ctx, userID)
	if err != nil {
		return "", err
	}

	q := fmt.Sprintf(
		"name = '%s' and mimeType = '%s' and 'root' in parents and trashed = false",
		queryEscape.Replace(p.rootName), folderMimeType,
	)
	list, err := svc.Files.List().Q(q).Fields("files(id)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: lookup root folder: %v", apperrors.ErrUpstream, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	created, err := svc.Files.Create(&drive.File{
		Name:     p.rootName,
		MimeType: folderMimeType,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: create root folder: %v", apperrors.ErrUpstream, err)
	}

	p.log.Info("created drive root folder",
		zap.String("user_id", userID),
		zap.String("folder_id", created.Id),
	)

	return created.Id, nil
}

func (p *Provider) Upload(ctx context.Context, userID string, data []byte, filename, mimeType string) (*ports.StorageFile, error) {
	rootID, err := p.EnsureUserRoot(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc, err := p.service(ctx, userID)
	if err != nil {
		return nil, err
	}

	meta := &drive.File{
		Name:     filename,
		MimeType: mimeType,
		Parents:  []string{rootID},
	}
	f, err := svc.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: upload %q: %v", apperrors.ErrUpstream, filename, err)
	}

	return toStorageFile(f), nil
}

// Replace overwrites the content of an existing remote object in place,
// keeping its remote id.
func (p *Provider) Replace(ctx context.Context, userID, oldRemoteID string, data []byte, filename, mimeType string) (*ports.StorageFile, error) {
	svc, err := p.service(ctx, userID)
	if err != nil {
		return nil, err
	}

	meta := &drive.File{
		Name:     filename,
		MimeType: mimeType,
	}
	f, err := svc.Files.Update(oldRemoteID, meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: replace %q: %v", apperrors.ErrUpstream, oldRemoteID, err)
	}

	return toStorageFile(f), nil
}

func (p *Provider) Delete(ctx context.Context, userID, remoteID string) error {
	svc, err := p.service(ctx, userID)
	if err != nil {
		return err
	}

	if err = svc.Files.Delete(remoteID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: delete %q: %v", apperrors.ErrUpstream, remoteID, err)
	}
	return nil
}

func (p *Provider) ListUserFiles(ctx context.Context, userID string) ([]ports.StorageFile, error) {
	rootID, err := p.EnsureUserRoot(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc, err := p.service(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		out       []ports.StorageFile
		pageToken string
	)
	q := fmt.Sprintf("'%s' in parents and trashed = false", rootID)
	for {
		call := svc.Files.List().Q(q).
			Fields("nextPageToken, files(" + fileFields + ")").
			PageSize(100).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		list, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("%w: list user files: %v", apperrors.ErrUpstream, err)
		}
		for _, f := range list.Files {
			out = append(out, *toStorageFile(f))
		}
		if list.NextPageToken == "" {
			return out, nil
		}
		pageToken = list.NextPageToken
	}
}

// ListAllFiles is a documented capability gap: with per-user delegated
// credentials there is no principal able to enumerate every user's Drive.
// It returns an empty list rather than attempting enumeration.
func (p *Provider) ListAllFiles(ctx context.Context) ([]ports.StorageFile, error) {
	return nil, nil
}

func toStorageFile(f *drive.File) *ports.StorageFile {
	return &ports.StorageFile{
		RemoteID:    f.Id,
		Filename:    f.Name,
		MimeType:    f.MimeType,
		SizeBytes:   uint64(f.Size),
		WebViewLink: f.WebViewLink,
	}
}
