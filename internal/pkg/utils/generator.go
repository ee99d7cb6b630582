package utils

import (
	"checkout-service/internal/pkg/constvars"
	"fmt"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateQRCodeObjectName(transactionID, fileExtension string) string {
	return fmt.Sprintf(constvars.QRCodeObjectNameFormat, transactionID, fileExtension)
}
