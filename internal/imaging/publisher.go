package imaging

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/acm19/imagetools/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// Upload item statuses.
const (
	StatusUploaded = "uploaded"
	StatusSkipped  = "skipped"
)

// S3API is the subset of the S3 client used for publishing.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads processed images to object storage.
type Publisher interface {
	// Upload publishes the matching files of a directory. Per-file failures
	// are reported in the result, not returned.
	Upload(ctx context.Context, opts UploadOptions) (*UploadResult, error)
}

// UploadOptions configures an upload.
type UploadOptions struct {
	Directory  string
	Bucket     string
	Prefix     string
	Extensions []string
	// Overwrite replaces remote objects whose content differs.
	Overwrite bool
	// ProgressChan is an optional channel for receiving progress events.
	ProgressChan chan<- ProgressEvent
}

// UploadedObject describes one published file.
type UploadedObject struct {
	Key       string `json:"key"`
	Status    string `json:"status"`
	SizeBytes int64  `json:"sizeBytes"`
	Size      string `json:"size"`
	MD5       string `json:"md5"`
}

// UploadResult is the outcome of Upload.
type UploadResult struct {
	Success    bool                         `json:"success"`
	Message    string                       `json:"message,omitempty"`
	Directory  string                       `json:"directory"`
	Bucket     string                       `json:"bucket"`
	Prefix     string                       `json:"prefix,omitempty"`
	TotalFiles int                          `json:"totalFiles"`
	Uploaded   int                          `json:"uploaded"`
	Skipped    int                          `json:"skipped"`
	Failed     int                          `json:"failed"`
	TotalBytes int64                        `json:"totalBytes"`
	TotalSize  string                       `json:"totalSize"`
	Results    []ItemResult[UploadedObject] `json:"results"`
}

// S3Settings configures the S3 client built by NewS3Publisher.
type S3Settings struct {
	Region        string
	Endpoint      string
	UsePathStyle  bool
	MaxConcurrent int
}

// s3Publisher implements the Publisher interface.
type s3Publisher struct {
	client        S3API
	maxConcurrent int
}

// NewS3Publisher loads the default AWS configuration and creates a Publisher.
func NewS3Publisher(ctx context.Context, settings S3Settings) (Publisher, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if settings.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(settings.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
		}
		o.UsePathStyle = settings.UsePathStyle
	})
	return NewPublisher(client, settings.MaxConcurrent), nil
}

// NewPublisher creates a Publisher over an existing client. A non-positive
// maxConcurrent uploads one file at a time.
func NewPublisher(client S3API, maxConcurrent int) Publisher {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &s3Publisher{client: client, maxConcurrent: maxConcurrent}
}

// Upload runs up to maxConcurrent uploads at once. Results keep directory
// order regardless of completion order.
func (p *s3Publisher) Upload(ctx context.Context, opts UploadOptions) (*UploadResult, error) {
	const op = "upload"
	if err := validateRequired(op, "bucket", opts.Bucket); err != nil {
		return nil, err
	}
	if err := ValidateDirectory(op, opts.Directory); err != nil {
		return nil, err
	}

	files, err := matchingFiles(opts.Directory, NewExtensionFilter(opts.Extensions))
	if err != nil {
		return nil, Wrap(KindDirectoryNotFound, op, "failed to read directory", err)
	}

	result := &UploadResult{
		Success:   true,
		Directory: opts.Directory,
		Bucket:    opts.Bucket,
		Prefix:    opts.Prefix,
		Results:   make([]ItemResult[UploadedObject], len(files)),
	}
	if len(files) == 0 {
		result.Message = noImagesMessage
		result.TotalSize = FormatSize(0)
		return result, nil
	}

	logger.Info("Starting upload", "files", len(files), "bucket", opts.Bucket, "concurrency", p.maxConcurrent)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrent)
	for i, name := range files {
		g.Go(func() error {
			key := objectKey(opts.Prefix, name)
			obj, err := p.uploadFile(gctx, filepath.Join(opts.Directory, name), opts.Bucket, key, opts.Overwrite)
			if err != nil {
				logger.Error("Failed to upload file", "file", name, "key", key, "error", err)
				result.Results[i] = failed[UploadedObject](name, err)
			} else {
				result.Results[i] = succeeded(name, *obj)
			}
			sendProgress(opts.ProgressChan, ProgressEvent{
				Stage:   "uploading",
				Current: int(done.Add(1)),
				Total:   len(files),
				Message: fmt.Sprintf("Uploaded %s", name),
				File:    name,
			})
			return nil
		})
	}
	_ = g.Wait()

	result.TotalFiles = len(files)
	for _, item := range result.Results {
		switch {
		case !item.Success:
			result.Failed++
		case item.Result.Status == StatusSkipped:
			result.Skipped++
		default:
			result.Uploaded++
			result.TotalBytes += item.Result.SizeBytes
		}
	}
	result.TotalSize = FormatSize(result.TotalBytes)

	logger.Info("Upload completed", "uploaded", result.Uploaded, "skipped", result.Skipped,
		"failed", result.Failed, "bytes", humanize.IBytes(uint64(result.TotalBytes)))
	return result, nil
}

// uploadFile skips objects whose ETag already matches the local MD5 and
// refuses to replace differing content unless overwrite is set.
func (p *s3Publisher) uploadFile(ctx context.Context, filePath, bucket, key string, overwrite bool) (*UploadedObject, error) {
	const op = "upload"
	localHash, err := calculateMD5(filePath)
	if err != nil {
		return nil, Wrap(KindInputNotFound, op, "failed to calculate MD5", err)
	}

	size := SizeOf(filePath)
	obj := &UploadedObject{Key: key, SizeBytes: size, Size: FormatSize(size), MD5: localHash}

	headOutput, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		remoteETag := strings.Trim(aws.ToString(headOutput.ETag), `"`)
		if remoteETag == localHash {
			logger.Debug("Object already exists with matching hash, skipping", "key", key, "hash", localHash)
			obj.Status = StatusSkipped
			return obj, nil
		}
		if !overwrite {
			return nil, New(KindPublishFailed, op, fmt.Sprintf(
				"hash mismatch for '%s': object exists with different content (local: %s, remote: %s)", key, localHash, remoteETag))
		}
		logger.Info("Overwriting object with different content", "key", key)
	} else if !isNotFoundError(err) {
		return nil, Wrap(KindPublishFailed, op, "failed to check object existence", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, Wrap(KindInputNotFound, op, "failed to open file", err)
	}
	defer file.Close()

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, Wrap(KindPublishFailed, op, "failed to upload object", err)
	}

	logger.Debug("Uploaded object", "key", key, "bytes", size)
	obj.Status = StatusUploaded
	return obj, nil
}

func objectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(strings.Trim(prefix, "/"), name)
}

func calculateMD5(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// isNotFoundError checks if the error is a NotFound error
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey"
	}
	return false
}
