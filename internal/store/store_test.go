package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/store/memstore"
)

func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), "memory://", Options{})
	require.NoError(t, err)
	assert.IsType(t, &memstore.Store{}, s)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	tests := []string{
		"mysql://localhost/blog",
		"localhost:27017",
		"://bad",
	}

	for _, databaseURL := range tests {
		t.Run(databaseURL, func(t *testing.T) {
			_, err := Open(context.Background(), databaseURL, Options{})
			assert.Error(t, err)
		})
	}
}

func TestBackend(t *testing.T) {
	assert.Equal(t, "mongodb", Backend("mongodb://localhost:27017/blog"))
	assert.Equal(t, "postgres", Backend("postgres://u:p@localhost/blog"))
	assert.Equal(t, "memory", Backend("memory://"))
	assert.Equal(t, "unknown", Backend("://bad"))
}
