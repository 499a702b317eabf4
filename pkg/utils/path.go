package utils

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	ErrEmptyPath  = errors.New("path cannot be empty")
	ErrUnsafePath = errors.New("unsafe path detected")
)

var dangerousChars = regexp.MustCompile(`[<>:"|?*\x00-\x1f\x7f]`)

// SanitizeFileName ทำความสะอาดชื่อไฟล์ก่อนใช้สร้าง pathname
func SanitizeFileName(filename string) string {
	filename = filepath.Base(filename)
	filename = dangerousChars.ReplaceAllString(filename, "_")
	filename = strings.TrimSpace(filename)

	if filename == "" || filename == "." {
		return "file"
	}
	return filename
}

// SanitizePrefix ตรวจสอบ prefix ที่ client ส่งมา (กัน traversal และ path แปลกๆ)
func SanitizePrefix(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrEmptyPath
	}

	if strings.Contains(prefix, "..") || filepath.IsAbs(prefix) {
		return "", ErrUnsafePath
	}

	if dangerousChars.MatchString(prefix) {
		return "", ErrUnsafePath
	}

	prefix = strings.ReplaceAll(prefix, "\\", "/")
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return "", ErrEmptyPath
	}

	return prefix, nil
}

// BuildAssetPathname สร้าง storage pathname รูปแบบ {prefix}/{base}-{suffix}{ext}
// suffix เป็น random 8 ตัวอักษร ทำให้ pathname unique ต่อ upload
func BuildAssetPathname(prefix, filename string) string {
	filename = SanitizeFileName(filename)

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	if base == "" {
		base = "file"
	}

	return fmt.Sprintf("%s/%s-%s%s", prefix, base, GeneratePathSuffix(), ext)
}
