package cache

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryStore) DeletePrefix(_ context.Context, prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}

func TestBuildKey(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected string
	}{
		{
			name:     "handler key with slashes stripped",
			key:      Key{Name: "products", Key: "product/123/details", Type: "handlers"},
			expected: "default:handlers:products:product123details",
		},
		{
			name:     "defaults applied",
			key:      Key{Name: "authProfile", Key: "abc-123"},
			expected: "default:functions:authProfile:abc123",
		},
		{
			name:     "explicit group",
			key:      Key{Name: "getAccessToken", Key: "default", Group: "api"},
			expected: "api:functions:getAccessToken:default",
		},
		{
			name:     "punctuation-only difference collides",
			key:      Key{Name: "n", Key: "a.b.c"},
			expected: "default:functions:n:abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildKey(tt.key))
		})
	}
}

func TestBuildKeyIsPure(t *testing.T) {
	k := Key{Name: "products", Key: "product/123/details", Type: "handlers"}
	first := BuildKey(k)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildKey(k))
	}
}

func TestEscapeKeyCollision(t *testing.T) {
	// key ที่ต่างกันเฉพาะเครื่องหมายคั่นต้องได้ key เดียวกัน
	assert.Equal(t, EscapeKey("product/123/details"), EscapeKey("product-123-details"))
	assert.Equal(t, "apiproductssaleitems", EscapeKey("/api/products/sale-items"))
}

func TestInvalidate(t *testing.T) {
	store := newMemoryStore()
	c := New(store)
	ctx := context.Background()

	k := Key{Name: "authProfile", Key: "user-1"}
	other := Key{Name: "authProfile", Key: "user-2"}

	require.NoError(t, store.Set(ctx, BuildKey(k), []byte("a"), 0))
	require.NoError(t, store.Set(ctx, BuildKey(other), []byte("b"), 0))

	require.NoError(t, c.Invalidate(ctx, k))

	_, err := store.Get(ctx, BuildKey(k))
	assert.ErrorIs(t, err, ErrCacheMiss)

	// entry อื่นต้องไม่โดนลบ
	_, err = store.Get(ctx, BuildKey(other))
	assert.NoError(t, err)
}

func TestInvalidateByPrefix(t *testing.T) {
	store := newMemoryStore()
	c := New(store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "default:handlers:products:a", []byte("1"), 0))
	require.NoError(t, store.Set(ctx, "default:handlers:products:b", []byte("2"), 0))
	require.NoError(t, store.Set(ctx, "default:functions:authProfile:u1", []byte("3"), 0))

	require.NoError(t, c.InvalidateByPrefix(ctx, "default:handlers:products"))

	_, err := store.Get(ctx, "default:handlers:products:a")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = store.Get(ctx, "default:handlers:products:b")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = store.Get(ctx, "default:functions:authProfile:u1")
	assert.NoError(t, err)
}

func TestRemember(t *testing.T) {
	store := newMemoryStore()
	c := New(store)
	ctx := context.Background()

	k := Key{Name: "authProfile", Key: "user-1"}
	calls := 0

	var got string
	err := c.Remember(ctx, k, time.Hour, &got, func() (any, error) {
		calls++
		return "profile", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "profile", got)
	assert.Equal(t, 1, calls)

	// ครั้งที่สองต้องมาจาก cache ไม่เรียก fill ซ้ำ
	var again string
	err = c.Remember(ctx, k, time.Hour, &again, func() (any, error) {
		calls++
		return "other", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "profile", again)
	assert.Equal(t, 1, calls)
}
