package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/randomuser"
)

const twoUsers = `{"results":[
  {"name":{"first":"John","last":"Smith"},"location":{"city":"Billings","state":"Michigan","postcode":"63104"},"registered":{"date":"2007-07-09T05:51:59.390Z","age":14}},
  {"name":{"first":"Jane","last":"Doe"},"location":{"city":"Leeds","state":"Cumbria","postcode":12345},"registered":{"date":"2015-01-02T00:00:00Z","age":9}}
],"info":{"seed":"abc","results":2,"page":1,"version":"1.4"}}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileFetch(t *testing.T) {
	f := NewFile(writeFile(t, twoUsers))

	users, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "John Smith", users[0].FullName())
	assert.Equal(t, "Jane Doe", users[1].FullName())
}

func TestFileErrorEnvelope(t *testing.T) {
	f := NewFile(writeFile(t, `{"error":"Uh oh"}`))

	_, err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, randomuser.IsAPIError(err))
}

func TestFileEmptyResults(t *testing.T) {
	f := NewFile(writeFile(t, `{}`))

	users, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestFileFailures(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, randomuser.IsAPIError(err))

	_, err = NewFile(writeFile(t, `not json`)).Fetch(context.Background())
	require.Error(t, err)
	assert.False(t, randomuser.IsAPIError(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFile(writeFile(t, twoUsers)).Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
