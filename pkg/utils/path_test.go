package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "poster.png", SanitizeFileName("poster.png"))
	assert.Equal(t, "poster.png", SanitizeFileName("../../etc/poster.png"))
	assert.Equal(t, "a_b_.png", SanitizeFileName(`a<b>.png`))
	assert.Equal(t, "file", SanitizeFileName(""))
	assert.Equal(t, "file", SanitizeFileName("."))
}

func TestSanitizePrefix(t *testing.T) {
	prefix, err := SanitizePrefix("events/logos")
	require.NoError(t, err)
	assert.Equal(t, "events/logos", prefix)

	prefix, err = SanitizePrefix("/events/logos/")
	assert.ErrorIs(t, err, ErrUnsafePath)
	assert.Empty(t, prefix)

	_, err = SanitizePrefix("../secrets")
	assert.ErrorIs(t, err, ErrUnsafePath)

	_, err = SanitizePrefix("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = SanitizePrefix("a<b")
	assert.ErrorIs(t, err, ErrUnsafePath)
}

func TestBuildAssetPathname(t *testing.T) {
	pathname := BuildAssetPathname("events/logos", "poster.png")

	assert.True(t, strings.HasPrefix(pathname, "events/logos/poster-"))
	assert.True(t, strings.HasSuffix(pathname, ".png"))

	// suffix ทำให้ pathname ไม่ซ้ำกันต่อ upload
	other := BuildAssetPathname("events/logos", "poster.png")
	assert.NotEqual(t, pathname, other)
}

func TestGeneratePassword(t *testing.T) {
	password := GeneratePassword(12)
	assert.Len(t, password, 12)

	// charset ตัดตัวที่อ่านสับสนออก
	assert.NotContains(t, password, "0")
	assert.NotContains(t, password, "O")
	assert.NotContains(t, password, "l")
}
