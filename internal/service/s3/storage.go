package s3

import (
	"context"
	"io"
	"mime/multipart"
)

// S3Object — поток содержимого объекта вместе с метаданными ответа
type S3Object interface {
	io.ReadCloser
	ContentLength() int64
	ContentType() string
}

type s3Object struct {
	io.ReadCloser
	contentLength int64
	contentType   string
}

func (o *s3Object) ContentLength() int64 {
	return o.contentLength
}

func (o *s3Object) ContentType() string {
	return o.contentType
}

// Storage — операции над содержимым файлов в S3-совместимом хранилище
type Storage interface {
	UploadFile(key string, file multipart.File) error
	GetObject(ctx context.Context, key string) (S3Object, error)
	DeleteObject(key string) error
	ObjectURL(key string) string
}
