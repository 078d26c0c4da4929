package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/journal/pkg/adapters/lifecycle"
	"github.com/aretw0/journal/pkg/core"
)

func TestSource_ForwardsEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	in := make(chan core.Event, 1)
	src := lifecycle.NewSource(in)
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventReload, ID: core.CollectionKey}

	select {
	case e := <-src.Events():
		got, ok := e.(core.Event)
		require.True(t, ok, "expected core.Event, got %T", e)
		assert.Equal(t, core.EventReload, got.Type)
		assert.Equal(t, "RELOAD notes.v1", e.String())
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}

	close(in)
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "output should close with the input")
	case <-ctx.Done():
		t.Fatal("output was not closed")
	}
}

func TestSource_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := lifecycle.NewSource(make(chan core.Event))
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("output was not closed")
	}
}

func TestSource_FiltersByType(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	in := make(chan core.Event, 4)
	src := lifecycle.NewSource(in, core.EventCreate, core.EventDelete)
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventReload, ID: core.CollectionKey}
	in <- core.Event{Type: core.EventCreate, ID: "a"}
	in <- core.Event{Type: core.EventModify, ID: "b"}
	in <- core.Event{Type: core.EventDelete, ID: "c"}
	close(in)

	var got []string
	for e := range src.Events() {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"CREATE a", "DELETE c"}, got)
}

func TestParseEventTypes(t *testing.T) {
	got, err := lifecycle.ParseEventTypes([]string{"reload", " Delete "})
	require.NoError(t, err)
	assert.Equal(t, []core.EventType{core.EventReload, core.EventDelete}, got)

	got, err = lifecycle.ParseEventTypes(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = lifecycle.ParseEventTypes([]string{"rename"})
	assert.ErrorContains(t, err, "unknown event type")
}
