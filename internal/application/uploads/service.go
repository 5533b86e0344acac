package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/validation"

	"github.com/rs/zerolog/log"
)

// StorageClient defines what we need from the file store.
type StorageClient interface {
	UploadObject(ctx context.Context, bucket, path, mimeType string, body []byte) error
}

// HTTPClient is a StorageClient backed by a Supabase-style storage HTTP API.
type HTTPClient struct {
	BaseURL   string
	SecretKey string
	Client    *http.Client
}

func (c *HTTPClient) UploadObject(ctx context.Context, bucket, path, mimeType string, body []byte) error {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if c.BaseURL == "" {
		return fmt.Errorf("storage: STORAGE_URL is not set")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("storage: STORAGE_SECRET_KEY is not set")
	}
	base := strings.TrimRight(c.BaseURL, "/")
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", base, bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.SecretKey)
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", mimeType)

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("storage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage error: status %d body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// File is one pending upload.
type File struct {
	Name     string
	MimeType string
	Size     int64
	Content  []byte
}

// FilesFromMultipart buffers multipart file headers into upload inputs,
// preserving form order.
func FilesFromMultipart(headers []*multipart.FileHeader) ([]File, error) {
	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Content:  content,
		})
	}
	return files, nil
}

// FileResult is the outcome for one file in a batch.
type FileResult struct {
	Name      string `json:"name"`
	PublicURL string `json:"public_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BatchResult reports per-file outcomes; a failed file never fails the batch.
type BatchResult struct {
	Uploaded []FileResult `json:"uploaded"`
	Failed   []FileResult `json:"failed"`
}

// URLs returns the public URLs of successfully uploaded files, in upload order.
func (r *BatchResult) URLs() []string {
	out := make([]string, 0, len(r.Uploaded))
	for _, f := range r.Uploaded {
		out = append(out, f.PublicURL)
	}
	return out
}

// Buckets per upload kind.
const (
	BucketDocuments = "listing-documents"
	BucketAdMedia   = "ad-media"
)

// Service encapsulates upload logic.
type Service struct {
	Client     StorageClient
	StorageURL string
}

// UploadBatch uploads files one at a time in array order. A file failing
// validation or upload is logged and skipped; the rest still attempt. There
// is no rollback of already-uploaded files.
func (s *Service) UploadBatch(ctx context.Context, ownerID, bucket string, files []File) *BatchResult {
	res := &BatchResult{}
	check := validation.CheckDocumentFile
	if bucket == BucketAdMedia {
		check = validation.CheckAdMediaFile
	}
	for _, f := range files {
		if err := check(f.Name, f.MimeType, f.Size); err != nil {
			log.Warn().Str("owner_id", ownerID).Str("file", f.Name).Err(err).Msg("upload: file rejected")
			res.Failed = append(res.Failed, FileResult{Name: f.Name, Error: err.Error()})
			continue
		}
		path := fmt.Sprintf("%s/%d-%s", ownerID, time.Now().UnixMilli(), f.Name)
		if err := s.Client.UploadObject(ctx, bucket, path, f.MimeType, f.Content); err != nil {
			log.Error().Str("owner_id", ownerID).Str("file", f.Name).Err(err).Msg("upload: file failed")
			res.Failed = append(res.Failed, FileResult{Name: f.Name, Error: err.Error()})
			continue
		}
		res.Uploaded = append(res.Uploaded, FileResult{Name: f.Name, PublicURL: s.PublicURL(bucket, path)})
	}
	return res
}

// PublicURL builds the public URL for an uploaded object.
func (s *Service) PublicURL(bucket, path string) string {
	base := strings.TrimRight(s.StorageURL, "/")
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", base, bucket, path)
}
