package cache

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrCacheMiss คืนจาก Store.Get เมื่อไม่พบ key
var ErrCacheMiss = errors.New("cache: key not found")

// Store คือ backend ของ cache (production ใช้ Redis, tests ใช้ in-memory fake)
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix ลบทุก key ที่ขึ้นต้นด้วย prefix คืนจำนวนที่ลบ
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
}

// Key ระบุ cache entry หนึ่งรายการ
type Key struct {
	Name  string
	Key   string
	Group string // default: "default"
	Type  string // default: "functions" (หรือ "handlers", "routes")
}

var nonAlphanumeric = regexp.MustCompile(`\W`)

// EscapeKey ตัดตัวอักษรที่ไม่ใช่ a-z A-Z 0-9 _ ออกทั้งหมด
// key ต่างกันที่มีแต่เครื่องหมายคั่นต่างกันจะชนกัน — เป็น behavior ที่ตั้งใจ
// เพื่อให้ key เข้ากันได้กับทุก storage backend
func EscapeKey(key string) string {
	return nonAlphanumeric.ReplaceAllString(key, "")
}

// BuildKey ประกอบ cache key เต็มรูปแบบ {group}:{type}:{name}:{escapedKey}
// เป็น pure function: input เดียวกันได้ string เดียวกันเสมอ
func BuildKey(k Key) string {
	group := k.Group
	if group == "" {
		group = "default"
	}
	typ := k.Type
	if typ == "" {
		typ = "functions"
	}
	return strings.Join([]string{group, typ, k.Name, EscapeKey(k.Key)}, ":")
}

// BuildKeyPrefix ประกอบ prefix {group}:{type}:{name} สำหรับ batch invalidation
func BuildKeyPrefix(k Key) string {
	group := k.Group
	if group == "" {
		group = "default"
	}
	typ := k.Type
	if typ == "" {
		typ = "functions"
	}
	return strings.Join([]string{group, typ, k.Name}, ":")
}

// Cache เป็น response/function cache ทั่วไปบน Store
type Cache struct {
	store Store
}

func New(store Store) *Cache {
	return &Cache{store: store}
}

// Invalidate ลบ entry เดียวตาม key ที่ประกอบจาก Key
func (c *Cache) Invalidate(ctx context.Context, k Key) error {
	return c.store.Delete(ctx, BuildKey(k))
}

// InvalidateByPrefix ลบทุก entry ที่ key ขึ้นต้นด้วย prefix
func (c *Cache) InvalidateByPrefix(ctx context.Context, prefix string) error {
	_, err := c.store.DeletePrefix(ctx, prefix)
	return err
}

// Remember อ่านค่าจาก cache ถ้าไม่มี เรียก fill แล้วเก็บผลตาม ttl
// ผลลัพธ์ unmarshal ลง target (ต้องเป็น pointer)
func (c *Cache) Remember(ctx context.Context, k Key, ttl time.Duration, target any, fill func() (any, error)) error {
	cacheKey := BuildKey(k)

	data, err := c.store.Get(ctx, cacheKey)
	if err == nil {
		return json.Unmarshal(data, target)
	}
	if !errors.Is(err, ErrCacheMiss) {
		return err
	}

	result, err := fill()
	if err != nil {
		return err
	}

	data, err = json.Marshal(result)
	if err != nil {
		return err
	}

	// cache write ล้มเหลวไม่ทำให้ request พัง
	_ = c.store.Set(ctx, cacheKey, data, ttl)

	return json.Unmarshal(data, target)
}
