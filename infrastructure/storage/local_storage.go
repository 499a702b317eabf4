package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"tix4u-backend/domain/ports"
)

// LocalStorage implements ObjectStorage บน local filesystem
// สำหรับ development ที่ไม่มี remote storage credential
// sign ไม่ได้ — SignedURL คืน ErrSigningUnavailable เสมอ
// เพื่อให้ caller fallback ไป direct upload / dev serving
type LocalStorage struct {
	basePath string
}

type LocalStorageConfig struct {
	BasePath string // ./uploads
}

func NewLocalStorage(config LocalStorageConfig) (ports.ObjectStorage, error) {
	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{basePath: config.BasePath}, nil
}

// SignedURL — local filesystem ออก credential ไม่ได้
func (l *LocalStorage) SignedURL(_ context.Context, _ string, _ ports.SignMethod, _ ports.SignOptions) (string, error) {
	return "", ports.ErrSigningUnavailable
}

func (l *LocalStorage) Put(_ context.Context, pathname string, r io.Reader, _ int64, contentType string) (ports.ObjectInfo, error) {
	pathname = normalizePath(pathname)
	fullPath := filepath.Join(l.basePath, pathname)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return ports.ObjectInfo{}, fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return ports.ObjectInfo{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, r)
	if err != nil {
		// ลบไฟล์ที่เขียนไม่สำเร็จทิ้ง
		os.Remove(fullPath)
		return ports.ObjectInfo{}, fmt.Errorf("failed to write file: %w", err)
	}

	return ports.ObjectInfo{
		Pathname:    pathname,
		Size:        written,
		ContentType: contentType,
	}, nil
}

func (l *LocalStorage) Head(_ context.Context, pathname string) (*ports.ObjectInfo, error) {
	pathname = normalizePath(pathname)
	fullPath := filepath.Join(l.basePath, pathname)

	stat, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &ports.ObjectInfo{
		Pathname:    pathname,
		Size:        stat.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(pathname)),
	}, nil
}

func (l *LocalStorage) Get(_ context.Context, pathname string) (io.ReadCloser, string, error) {
	pathname = normalizePath(pathname)
	fullPath := filepath.Join(l.basePath, pathname)

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	return f, mime.TypeByExtension(filepath.Ext(pathname)), nil
}

// Delete — ไฟล์ที่ไม่มีอยู่ไม่ถือเป็น error
func (l *LocalStorage) Delete(_ context.Context, pathname string) error {
	pathname = normalizePath(pathname)
	fullPath := filepath.Join(l.basePath, pathname)

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (l *LocalStorage) ProviderName() string {
	return "local"
}
