package contracts

import (
	"context"
)

type Storage interface {
	UploadImage(ctx context.Context, imageData []byte, bucketName, fileName, fileExtension string) (string, error)
}
