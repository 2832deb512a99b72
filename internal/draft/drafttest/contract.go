// Package drafttest provides a behavioural test suite every draft.Store
// implementation must pass.
package drafttest

import (
	"context"
	"testing"

	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract exercises Get/Put/Delete semantics and a full
// snapshot round trip against store.
func RunStoreContract(t *testing.T, store draft.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key is ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "contract-missing")
		assert.ErrorIs(t, err, draft.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "contract-a", []byte(`{"v":1}`)))
		got, err := store.Get(ctx, "contract-a")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"v":1}`), got)
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "contract-b", []byte("first")))
		require.NoError(t, store.Put(ctx, "contract-b", []byte("second")))
		got, err := store.Get(ctx, "contract-b")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got)
	})

	t.Run("keys are isolated", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "contract-c1", []byte("one")))
		require.NoError(t, store.Put(ctx, "contract-c2", []byte("two")))
		got, err := store.Get(ctx, "contract-c1")
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), got)
	})

	t.Run("delete removes and is idempotent", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "contract-d", []byte("x")))
		require.NoError(t, store.Delete(ctx, "contract-d"))
		_, err := store.Get(ctx, "contract-d")
		assert.ErrorIs(t, err, draft.ErrNotFound)
		assert.NoError(t, store.Delete(ctx, "contract-d"))
		assert.NoError(t, store.Delete(ctx, "contract-never-written"))
	})

	t.Run("snapshot round trip", func(t *testing.T) {
		form := listing.DefaultFormData()
		form.Title = "Wortarten bestimmen"
		form.Description = "Arbeitsblätter zu Nomen, Verben und Adjektiven."
		form.Competencies = []string{"D.5.C.1", "D.5.C.2"}
		form.FileNames = []string{"wortarten.pdf"}

		in := draft.Snapshot{
			FormData:     form,
			CurrentStep:  listing.StepCommercial,
			VisitedSteps: []listing.Step{1, 2, 3},
		}
		data, err := in.Encode()
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, "contract-snapshot", data))

		raw, err := store.Get(ctx, "contract-snapshot")
		require.NoError(t, err)
		out, err := draft.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, in.FormData, out.FormData)
		assert.Equal(t, in.CurrentStep, out.CurrentStep)
		assert.Equal(t, in.VisitedSteps, out.VisitedSteps)
	})
}
