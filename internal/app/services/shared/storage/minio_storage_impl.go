package storage

import (
	"bytes"
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"mime"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

// UploadImage stores raw image bytes under fileName and returns the object
// name. The content type follows fileExtension.
func (m *minioStorage) UploadImage(ctx context.Context, imageData []byte, bucketName, fileName, fileExtension string) (string, error) {
	contentType := mime.TypeByExtension(fileExtension)
	if contentType == "" {
		return "", exceptions.ErrMinioCreateObject(fmt.Errorf("unknown content type for extension %s", fileExtension), bucketName)
	}

	_, err := m.MinioClient.PutObject(
		ctx,
		bucketName,
		fileName,
		bytes.NewReader(imageData),
		int64(len(imageData)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	return fileName, nil
}
