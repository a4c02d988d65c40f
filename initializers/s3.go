package initializers

import (
	"context"

	s3client "beta-program-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3() {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("failed to initialize the S3 client")
		return
	}
	s3client.Instance = client
	if err = client.MakeBucket(context.Background()); err != nil {
		log.WithError(err).Error("failed to prepare the export bucket")
		return
	}
	log.Info("S3 client initialized")
}
