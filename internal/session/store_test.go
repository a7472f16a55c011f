// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/biblioviz/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func decodeRecord(t *testing.T, raw string) types.Record {
	t.Helper()
	var rec types.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return rec
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records := []types.Record{
		decodeRecord(t, `{"dc:title":"First","prism:coverDate":"2020-03-15","authkeywords":"a | b"}`),
		decodeRecord(t, `{"dc:title":"Second","authkeywords":["graphs"]}`),
	}

	id, err := s.Save(ctx, "a AND b", records, 57)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	set, err := s.Load(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, set.ID)
	assert.Equal(t, "a AND b", set.Equation)
	assert.Equal(t, 57, set.TotalAvailable)
	require.Len(t, set.Records, 2)

	// Order and polymorphic fields survive the raw round trip.
	assert.Equal(t, "First", set.Records[0].Title)
	assert.Equal(t, "2020-03-15", set.Records[0].CoverDate)
	assert.Equal(t, "a | b", set.Records[0].Keywords.Text)
	assert.Equal(t, "Second", set.Records[1].Title)
	assert.Equal(t, []string{"graphs"}, set.Records[1].Keywords.List)
}

func TestSaveRecordWithoutRaw(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A record built in code has no retained raw JSON; Save marshals it.
	title := "Built In Code"
	id, err := s.Save(ctx, "a AND b", []types.Record{{Title: title}}, 1)
	require.NoError(t, err)

	set, err := s.Load(ctx, id)
	require.NoError(t, err)
	require.Len(t, set.Records, 1)
	assert.Equal(t, title, set.Records[0].Title)
}

func TestLoadUnknownID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, "a AND b", nil, 0)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.Save(ctx, "c OR d", []types.Record{{Title: "x"}}, 9)
	require.NoError(t, err)

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, second, got[0].ID)
	assert.Equal(t, "c OR d", got[0].Equation)
	assert.Equal(t, 1, got[0].Fetched)
	assert.Equal(t, 9, got[0].TotalAvailable)
	assert.Equal(t, first, got[1].ID)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
