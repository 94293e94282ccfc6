package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mealstash/backend/config"
)

const imagesDirName = "images"

// ImageService acquires and stores recipe images. Files live under
// <dataDir>/images keyed by recipe id; when an S3 configuration is
// present each stored image is also mirrored there, best-effort.
type ImageService struct {
	dataDir  string
	s3Config *config.S3Config
	client   *http.Client
}

// NewImageService creates a new ImageService instance. s3Config may be
// nil when no bucket is configured.
func NewImageService(dataDir string, s3Config *config.S3Config) *ImageService {
	return &ImageService{
		dataDir:  dataDir,
		s3Config: s3Config,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// FetchAndStore downloads the image at imageURL and writes it under the
// recipe's id, returning the local path. One attempt only; the caller
// treats any failure as "recipe proceeds without an image".
func (s *ImageService) FetchAndStore(ctx context.Context, imageURL, recipeID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	imgDir := filepath.Join(s.dataDir, imagesDirName)
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}

	path := filepath.Join(imgDir, recipeID+".jpg")
	if err := os.WriteFile(path, imageData, 0o644); err != nil {
		return "", fmt.Errorf("failed to save image for %s: %w", recipeID, err)
	}

	if s.s3Config != nil {
		if _, err := s.uploadImageToS3(ctx, imageData, recipeID); err != nil {
			log.Printf("[ImageService] Failed to mirror image to S3, keeping local copy only: %v", err)
		}
	}

	log.Printf("[ImageService] Stored image for recipe %s (%d bytes)", recipeID, len(imageData))
	return path, nil
}

// Rename re-keys a stored image to another recipe id, replacing any
// image already stored under toID.
func (s *ImageService) Rename(fromID, toID string) (string, error) {
	from := filepath.Join(s.dataDir, imagesDirName, fromID+".jpg")
	to := filepath.Join(s.dataDir, imagesDirName, toID+".jpg")
	if err := os.Rename(from, to); err != nil {
		return "", fmt.Errorf("failed to re-key image %s -> %s: %w", fromID, toID, err)
	}
	return to, nil
}

// Delete removes the stored image for a recipe. A missing file is not an
// error.
func (s *ImageService) Delete(recipeID string) error {
	path := filepath.Join(s.dataDir, imagesDirName, recipeID+".jpg")
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image for %s: %w", recipeID, err)
	}
	return nil
}

// Path returns the local image path for a recipe and whether it exists.
func (s *ImageService) Path(recipeID string) (string, bool) {
	path := filepath.Join(s.dataDir, imagesDirName, recipeID+".jpg")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// uploadImageToS3 uploads image data to S3 and returns the public URL
func (s *ImageService) uploadImageToS3(ctx context.Context, imageData []byte, recipeID string) (string, error) {
	fileName := fmt.Sprintf("recipe-images/%s.jpg", recipeID)
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Mirrored image to S3: %s", publicURL)

	return publicURL, nil
}
