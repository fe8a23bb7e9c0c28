package folders

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pbaille/jot/internal/domain"
	"github.com/pbaille/jot/internal/persist"
	"github.com/pbaille/jot/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type seqRand struct{ n int }

func (r *seqRand) IntN(n int) int {
	v := r.n % n
	r.n++
	return v
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("f%d", n)
	}
}

func newStore(t *testing.T, seed []domain.Folder) (*Store, *persist.Adapter) {
	t.Helper()
	a := persist.New(storage.NewMemory(), zerolog.Nop())
	if seed != nil {
		require.NoError(t, a.SaveFolders(seed))
	}
	s, err := New(a, WithRand(&seqRand{}), WithIDFunc(counterIDs()))
	require.NoError(t, err)
	return s, a
}

func TestNewLoadsDefaults(t *testing.T) {
	s, _ := newStore(t, nil)
	assert.Equal(t, domain.DefaultFolders(), s.Folders())
	assert.Equal(t, "", s.Active())
}

func TestCreateAppendsAndActivates(t *testing.T) {
	s, a := newStore(t, []domain.Folder{})

	f, err := s.Create("")
	require.NoError(t, err)
	assert.Equal(t, domain.Folder{ID: "f1", Name: "New Folder", Icon: "📁", Color: domain.Blue}, f)
	assert.Equal(t, "f1", s.Active())

	g, err := s.Create("Recipes")
	require.NoError(t, err)
	assert.Equal(t, "Recipes", g.Name)
	assert.Equal(t, []string{"f1", "f2"}, ids(s.Folders()))

	persisted, err := a.Folders()
	require.NoError(t, err)
	assert.Equal(t, s.Folders(), persisted)
	active, _ := a.ActiveFolder()
	assert.Equal(t, "f2", active)
}

func TestUpdateMergesFields(t *testing.T) {
	s, a := newStore(t, nil)
	name := "Job"
	color := domain.Blue

	require.NoError(t, s.Update("work", domain.FolderPatch{Name: &name, Color: &color}))

	f, ok := s.Get("work")
	require.True(t, ok)
	assert.Equal(t, domain.Folder{ID: "work", Name: "Job", Icon: "💼", Color: domain.Blue}, f)

	persisted, _ := a.Folders()
	assert.Equal(t, s.Folders(), persisted)
}

func TestUpdateUnknownIsNoop(t *testing.T) {
	s, _ := newStore(t, nil)
	name := "x"
	require.NoError(t, s.Update("missing", domain.FolderPatch{Name: &name}))
	assert.Equal(t, domain.DefaultFolders(), s.Folders())
}

func TestDeleteActiveMovesToFirstRemaining(t *testing.T) {
	s, a := newStore(t, nil)
	require.NoError(t, s.SetActive("ideas"))

	require.NoError(t, s.Delete("ideas"))
	assert.Equal(t, "work", s.Active())
	assert.Equal(t, []string{"work", "health", "learning"}, ids(s.Folders()))

	require.NoError(t, s.SetActive("work"))
	require.NoError(t, s.Delete("work"))
	assert.Equal(t, "health", s.Active())

	active, _ := a.ActiveFolder()
	assert.Equal(t, "health", active)
}

func TestDeleteInactiveKeepsSelection(t *testing.T) {
	s, _ := newStore(t, nil)
	require.NoError(t, s.SetActive("health"))
	require.NoError(t, s.Delete("work"))
	assert.Equal(t, "health", s.Active())
}

func TestDeleteLastFolderClearsActive(t *testing.T) {
	s, a := newStore(t, []domain.Folder{{ID: "only", Name: "Only"}})
	require.NoError(t, s.SetActive("only"))

	require.NoError(t, s.Delete("only"))
	assert.Empty(t, s.Folders())
	assert.Equal(t, "", s.Active())

	active, _ := a.ActiveFolder()
	assert.Equal(t, "", active)
	persisted, _ := a.Folders()
	assert.Empty(t, persisted)
}

func TestFoldersSurvivePersistenceRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := persist.New(storage.NewMemory(), zerolog.Nop())
		s, err := New(a, WithRand(&seqRand{}))
		if err != nil {
			t.Fatalf("new store: %v", err)
		}

		steps := rapid.IntRange(0, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			current := s.Folders()
			target := "missing"
			if len(current) > 0 {
				target = current[rapid.IntRange(0, len(current)-1).Draw(t, "target")].ID
			}

			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				_, err = s.Create(rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "name"))
			case 1:
				name := rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "rename")
				color := rapid.SampledFrom(domain.Colors).Draw(t, "color")
				err = s.Update(target, domain.FolderPatch{Name: &name, Color: &color})
			case 2:
				err = s.Delete(target)
			}
			if err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
		}

		reloaded, err := New(a)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		assert.Equal(t, s.Folders(), reloaded.Folders())
		assert.Equal(t, s.Active(), reloaded.Active())
	})
}

func ids(fs []domain.Folder) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.ID
	}
	return out
}

// brokenKV fails every write once broken is set
type brokenKV struct {
	storage.KV
	broken bool
}

var errDiskFull = errors.New("disk full")

func (b *brokenKV) Set(key string, value []byte) error {
	if b.broken {
		return errDiskFull
	}
	return b.KV.Set(key, value)
}

func (b *brokenKV) Delete(key string) error {
	if b.broken {
		return errDiskFull
	}
	return b.KV.Delete(key)
}

func TestFailedWriteLeavesStateUntouched(t *testing.T) {
	kv := &brokenKV{KV: storage.NewMemory()}
	s, err := New(persist.New(kv, zerolog.Nop()), WithRand(&seqRand{}), WithIDFunc(counterIDs()))
	require.NoError(t, err)
	require.NoError(t, s.SetActive("work"))
	before := s.Folders()

	kv.broken = true
	name := "Job"

	_, err = s.Create("Extra")
	assert.ErrorIs(t, err, errDiskFull)
	assert.ErrorIs(t, s.Update("work", domain.FolderPatch{Name: &name}), errDiskFull)
	assert.ErrorIs(t, s.Delete("work"), errDiskFull)
	assert.ErrorIs(t, s.SetActive("health"), errDiskFull)

	assert.Equal(t, before, s.Folders())
	assert.Equal(t, "work", s.Active())
}
