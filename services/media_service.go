package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	fig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cookiepedia/cookiepedia/config"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// MediaService uploads user media to S3: profile pictures, channel art,
// reel videos and their thumbnails.
type MediaService interface {
	UploadFileToS3(mediaFile *multipart.FileHeader, userID uint, fileType string) (string, error)
	ProcessProfileImage(mediaFile *multipart.FileHeader, userID uint) (string, error)
	ProcessReelUpload(videoFile *multipart.FileHeader, thumbnailFile *multipart.FileHeader, userID uint) (string, string, error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

const (
	MaxImageFileSize = 10 * 1024 * 1024
	MaxVideoFileSize = 100 * 1024 * 1024
)

func CheckSupportedFile(filename string) (bool, string) {
	supportedFileTypes := map[string]bool{
		".png":  true,
		".jpeg": true,
		".jpg":  true,
		".mp4":  true,
		".mov":  true,
	}

	fileExtension := filepath.Ext(filename)
	return supportedFileTypes[fileExtension], fileExtension
}

func generateUniqueFilename(extension string) string {
	timestamp := time.Now().UnixNano()
	randomUUID := uuid.New()
	return fmt.Sprintf("%d_%s%s", timestamp, randomUUID, extension)
}

// UploadFileToS3 streams the file to the configured bucket and returns its
// public URL. fileType becomes part of the object key prefix.
func (m *mediaService) UploadFileToS3(mediaFile *multipart.FileHeader, userID uint, fileType string) (string, error) {
	file, err := mediaFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	fileExtension := filepath.Ext(mediaFile.Filename)
	fileKey := fmt.Sprintf("media/%d_%s_%s%s", userID, fileType, uuid.New().String(), fileExtension)

	bucketName := m.Config.AwsBucketName
	if bucketName == "" {
		bucketName = os.Getenv("AWS_BUCKET")
	}
	if bucketName == "" {
		return "", fmt.Errorf("S3 bucket name is not configured")
	}

	cfg, err := fig.LoadDefaultConfig(context.TODO(),
		fig.WithRegion(os.Getenv("AWS_REGION")),
		fig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"), ""),
		),
	)
	if err != nil {
		return "", fmt.Errorf("unable to load AWS config: %v", err)
	}

	svc := s3.NewFromConfig(cfg)

	putObjectInput := &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(fileKey),
		Body:        file,
		ACL:         "public-read",
		ContentType: aws.String(mediaFile.Header.Get("Content-Type")),
	}
	if _, err = svc.PutObject(context.TODO(), putObjectInput); err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, os.Getenv("AWS_REGION"), fileKey)
	return fileURL, nil
}

// ProcessProfileImage squares the image to 400x400 before upload so every
// avatar renders at the same dimensions.
func (m *mediaService) ProcessProfileImage(mediaFile *multipart.FileHeader, userID uint) (string, error) {
	if mediaFile.Size > MaxImageFileSize {
		return "", fmt.Errorf("image file size exceeds limit")
	}
	if supported, _ := CheckSupportedFile(mediaFile.Filename); !supported {
		return "", fmt.Errorf("unsupported file type: %s", mediaFile.Filename)
	}

	file, err := mediaFile.Open()
	if err != nil {
		return "", fmt.Errorf("unable to open media file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}
	avatarImg := imaging.Fill(img, 400, 400, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, avatarImg, nil); err != nil {
		return "", fmt.Errorf("failed to encode avatar image: %v", err)
	}

	return m.uploadBytes(buf.Bytes(), generateUniqueFilename(".jpg"), userID, "avatars")
}

// ProcessReelUpload uploads the video, then the optional thumbnail image,
// which gets resized to 200px wide before upload.
func (m *mediaService) ProcessReelUpload(videoFile *multipart.FileHeader, thumbnailFile *multipart.FileHeader, userID uint) (string, string, error) {
	if videoFile.Size > MaxVideoFileSize {
		return "", "", fmt.Errorf("video file size exceeds limit")
	}

	videoURL, err := m.UploadFileToS3(videoFile, userID, "reel")
	if err != nil {
		return "", "", fmt.Errorf("failed to upload reel video: %w", err)
	}

	if thumbnailFile == nil {
		return videoURL, "", nil
	}
	thumbnailURL, err := m.processThumbnail(thumbnailFile, userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to process reel thumbnail: %w", err)
	}
	return videoURL, thumbnailURL, nil
}

func (m *mediaService) processThumbnail(mediaFile *multipart.FileHeader, userID uint) (string, error) {
	file, err := mediaFile.Open()
	if err != nil {
		return "", fmt.Errorf("unable to open thumbnail file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode thumbnail: %v", err)
	}
	thumbnail := resize.Resize(200, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumbnail, nil); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}
	return m.uploadBytes(buf.Bytes(), generateUniqueFilename(".jpg"), userID, "thumbnails")
}

func (m *mediaService) uploadBytes(data []byte, filename string, userID uint, folderName string) (string, error) {
	bucketName := m.Config.AwsBucketName
	if bucketName == "" {
		bucketName = os.Getenv("AWS_BUCKET")
	}
	if bucketName == "" {
		return "", fmt.Errorf("S3 bucket name is not configured")
	}

	cfg, err := fig.LoadDefaultConfig(context.TODO(),
		fig.WithRegion(os.Getenv("AWS_REGION")),
		fig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"), ""),
		),
	)
	if err != nil {
		return "", fmt.Errorf("unable to load AWS config: %v", err)
	}
	svc := s3.NewFromConfig(cfg)

	fileKey := fmt.Sprintf("%s/%d_%s", folderName, userID, filename)
	contentType := http.DetectContentType(data)

	_, err = svc.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(fileKey),
		Body:        bytes.NewReader(data),
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, os.Getenv("AWS_REGION"), fileKey), nil
}
