package templates

import (
	"context"
	"errors"
	"testing"
	"time"

	"testsmith/internal/domain/valueobject"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedStore_CachesHits(t *testing.T) {
	backing := &fakeStore{templates: map[valueobject.TestKind]string{
		valueobject.TestKindUnit: "stored template",
	}}
	cached := NewCachedStore(backing, time.Minute)

	for range 3 {
		text, err := cached.FindTemplate(context.Background(), "JavaScript", "jest", valueobject.TestKindUnit)
		require.NoError(t, err)
		assert.Equal(t, "stored template", text)
	}

	assert.Equal(t, 1, backing.calls)
}

func TestCachedStore_CachesMisses(t *testing.T) {
	backing := &fakeStore{templates: map[valueobject.TestKind]string{}}
	cached := NewCachedStore(backing, time.Minute)

	for range 3 {
		_, err := cached.FindTemplate(context.Background(), "JavaScript", "jest", valueobject.TestKindUnit)
		require.ErrorIs(t, err, ErrTemplateNotFound)
	}

	assert.Equal(t, 1, backing.calls)
}

func TestCachedStore_DoesNotCacheFailures(t *testing.T) {
	backing := &fakeStore{err: errors.New("connection refused")}
	cached := NewCachedStore(backing, time.Minute)

	for range 3 {
		_, err := cached.FindTemplate(context.Background(), "JavaScript", "jest", valueobject.TestKindUnit)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrTemplateNotFound)
	}

	assert.Equal(t, 3, backing.calls)
}

func TestCachedStore_ExpiredEntriesAreRefetched(t *testing.T) {
	backing := &fakeStore{templates: map[valueobject.TestKind]string{
		valueobject.TestKindUnit: "stored template",
	}}
	cached := NewCachedStore(backing, time.Nanosecond)

	_, err := cached.FindTemplate(context.Background(), "JavaScript", "jest", valueobject.TestKindUnit)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = cached.FindTemplate(context.Background(), "JavaScript", "jest", valueobject.TestKindUnit)
	require.NoError(t, err)
	assert.Equal(t, 2, backing.calls)
}

func TestCachedStore_KeysIncludeLanguageFrameworkAndKind(t *testing.T) {
	backing := &fakeStore{templates: map[valueobject.TestKind]string{
		valueobject.TestKindUnit:     "unit template",
		valueobject.TestKindEdgeCase: "edge template",
	}}
	cached := NewCachedStore(backing, time.Minute)

	_, err := cached.FindTemplate(context.Background(), "JavaScript", "jest", valueobject.TestKindUnit)
	require.NoError(t, err)
	_, err = cached.FindTemplate(context.Background(), "JavaScript", "jest", valueobject.TestKindEdgeCase)
	require.NoError(t, err)
	_, err = cached.FindTemplate(context.Background(), "JavaScript", "mocha", valueobject.TestKindUnit)
	require.NoError(t, err)

	assert.Equal(t, 3, backing.calls)
}
