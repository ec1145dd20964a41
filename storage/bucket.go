package storage

import (
	"os"
	"strings"

	"memorial/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Bucket is where uploaded memorial and memory photos end up - either a
// local directory or an S3 bucket
type Bucket struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	Name          string `gorm:"type:varchar(200)"`
	StorageType   StorageType
	Path          string // Directory on disk or a key prefix in the S3 bucket
	Region        string
	Endpoint      string
	AuthDetails   string // In case of S3 - "key:secret"
	SSEEncryption string
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		return os.MkdirAll(b.Path, 0777)
	}
	return nil
}

func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

// CreateSVC returns an S3 client for this bucket's credentials
func (b *Bucket) CreateSVC() *s3.S3 {
	auth := strings.SplitN(b.AuthDetails, ":", 2)
	if len(auth) != 2 {
		panic("invalid S3 auth details for bucket " + b.Name)
	}
	awsConfig := aws.Config{
		Credentials: credentials.NewStaticCredentials(auth[0], auth[1], ""),
		Region:      aws.String(b.Region),
	}
	if b.Endpoint != "" {
		awsConfig.Endpoint = aws.String(b.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&awsConfig)))
}
