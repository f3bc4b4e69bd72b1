package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"backend/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client  *s3.Client
	s3Bucket  string
	s3BaseURL string
)

func InitS3(cfg *config.Config) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return fmt.Errorf("unable to load AWS config for S3: %w", err)
	}

	s3Client = s3.NewFromConfig(awsCfg)
	s3Bucket = cfg.S3Bucket
	s3BaseURL = cfg.CloudFrontURL
	if s3BaseURL == "" {
		s3BaseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.S3Bucket)
	}
	return nil
}

// UploadBase64ImageToS3 decodes a "data:<mime>;base64,<data>" URI, stores it
// under food-images/ and returns the public URL.
func UploadBase64ImageToS3(ctx context.Context, base64Data, filenamePrefix string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("S3 client not initialized")
	}

	parts := strings.Split(base64Data, ",")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:image") {
		return "", fmt.Errorf("invalid base64 image data URI")
	}

	mediaType := strings.SplitN(parts[0], ":", 2)[1]    // "image/jpeg;base64"
	contentType := strings.SplitN(mediaType, ";", 2)[0] // "image/jpeg"

	ext := extensionFor(contentType)

	imageData, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	key := fmt.Sprintf("food-images/%s-%d%s", filenamePrefix, time.Now().UnixNano(), ext)

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", s3BaseURL, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ""
}
