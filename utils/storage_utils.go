package utils

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Storage uploads files to an S3-compatible service (PSCloud).
type S3Storage struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
}

func (s *S3Storage) client() *s3.S3 {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(s.Region),
		Endpoint: aws.String(s.Endpoint),
		Credentials: credentials.NewStaticCredentials(
			s.AccessKey, s.SecretKey, "",
		),
	}))
	return s3.New(sess)
}

// Upload puts the file under the given key and returns its public URL.
func (s *S3Storage) Upload(file []byte, key string, contentType string) (string, error) {
	s3Client := s.client()

	_, err := s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})

	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.object.pscloud.io/%s", s.Bucket, key), nil
}
