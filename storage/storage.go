package storage

import (
	"io"
	"log"
	"net/http"

	"memorial/config"
	"memorial/db"
)

// StorageAPI is the photo storage contract: flat opaque paths in, bytes out
type StorageAPI interface {
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	GetBucket() *Bucket
}

var cachedStorage []StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	var buckets []Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.DEFAULT_BUCKET_DIR != "" {
		bucket := Bucket{
			Name:        "default",
			StorageType: StorageTypeFile,
			Path:        config.DEFAULT_BUCKET_DIR,
		}
		if err := bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Photo buckets found: %d\n", len(buckets))
	cachedStorage = []StorageAPI{}
	for _, bucket := range buckets {
		if bucket.StorageType == StorageTypeS3 {
			cachedStorage = append(cachedStorage, NewS3Storage(&bucket))
		} else {
			cachedStorage = append(cachedStorage, NewDiskStorage(&bucket))
		}
	}
}

func GetDefaultStorage() StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().StorageType == StorageTypeFile {
			return s
		}
	}
	for _, s := range cachedStorage {
		return s
	}
	return nil
}
