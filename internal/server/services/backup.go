package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/passvault/passvault/internal/dbx"
	"github.com/passvault/passvault/internal/server/models"
	"github.com/passvault/passvault/internal/server/repositories/repomanager"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/passvault/passvault/internal/server/config"
)

// exportURLValidity bounds how long a returned download link stays usable.
const exportURLValidity = 15 * time.Minute

// Seams for testing the AWS plumbing without a live endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ExportSnapshot is the JSON document uploaded to object storage. It carries
// the user's records verbatim, including secret values; the bucket is the
// trust boundary.
type ExportSnapshot struct {
	ExportedAt  time.Time            `json:"exportedAt"`
	UserID      string               `json:"userId"`
	Credentials []*models.Credential `json:"credentials"`
	Notes       []*models.Note       `json:"notes"`
	Contacts    []*models.Contact    `json:"contacts"`
}

// BackupStatus reports the state of the export subsystem for one user.
// LastExport is nil until an export has happened in this process.
type BackupStatus struct {
	LastExport *time.Time `json:"lastBackup"`
	Status     string     `json:"status"`
}

// ExportResult points the caller at a finished export.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// BackupService exports a user's vault to S3-compatible object storage and
// hands back a time-limited download URL.
type BackupService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config

	mu          sync.Mutex
	lastExports map[string]time.Time
}

func NewBackupService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *BackupService {
	return &BackupService{
		db:          db,
		repomanager: m,
		config:      cfg,
		lastExports: make(map[string]time.Time),
	}
}

// Status reports whether exports are available and when this user last ran one.
func (s *BackupService) Status(ctx context.Context, userID string) *BackupStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := &BackupStatus{Status: "ready"}
	if last, ok := s.lastExports[userID]; ok {
		status.LastExport = &last
	}
	return status
}

// Export serializes the user's credentials, notes and contacts into a JSON
// snapshot, uploads it, and returns a presigned download URL. The record
// reads run in one transaction so the snapshot is internally consistent.
func (s *BackupService) Export(ctx context.Context, userID string) (*ExportResult, error) {
	snapshot := &ExportSnapshot{
		ExportedAt: time.Now().UTC(),
		UserID:     userID,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if snapshot.Credentials, err = s.repomanager.Credentials(tx).ListByUser(ctx, userID); err != nil {
			return fmt.Errorf("error listing credentials: %w", err)
		}
		if snapshot.Notes, err = s.repomanager.Notes(tx).ListByUser(ctx, userID); err != nil {
			return fmt.Errorf("error listing notes: %w", err)
		}
		if snapshot.Contacts, err = s.repomanager.Contacts(tx).ListByUser(ctx, userID); err != nil {
			return fmt.Errorf("error listing contacts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("error encoding snapshot: %w", err)
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := exportStorageKey(userID)
	contentType := "application/json"

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	}); err != nil {
		return nil, fmt.Errorf("error uploading snapshot: %w", err)
	}

	req, err := presignGetObject(s3.NewPresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(exportURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning download: %w", err)
	}

	now := time.Now()
	s.mu.Lock()
	s.lastExports[userID] = now
	s.mu.Unlock()

	return &ExportResult{Key: key, URL: req.URL, ExpiresAt: now.Add(exportURLValidity)}, nil
}

func (s *BackupService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func exportStorageKey(userID string) string {
	d := time.Now()
	return fmt.Sprintf("exports/%s/%d/%d/%d/%v.json", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}
