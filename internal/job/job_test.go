package job

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_PreservesDeclarationOrder(t *testing.T) {
	t.Parallel()

	s := MustSet(New("zeta"), New("alpha", "zeta"), New("mid"))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, s.Names())
	assert.Equal(t, 3, s.Len())

	defs := s.All()
	require.Len(t, defs, 3)
	assert.Equal(t, []string{"zeta"}, defs[1].DependsOn)
}

func TestSet_RejectsDuplicatesAndEmptyNames(t *testing.T) {
	t.Parallel()

	s := NewSet()
	require.NoError(t, s.Add(New("A")))

	err := s.Add(New("A"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateJob))

	err = s.Add(New("   "))
	assert.ErrorIs(t, err, ErrEmptyName)

	// Names are case-sensitive.
	assert.NoError(t, s.Add(New("a")))
}

func TestSet_DuplicateMentionsSources(t *testing.T) {
	t.Parallel()

	s := NewSet()
	first := New("A")
	first.Source = "one.hcl"
	second := New("A")
	second.Source = "two.toml"

	require.NoError(t, s.Add(first))
	err := s.Add(second)
	assert.ErrorContains(t, err, "one.hcl")
	assert.ErrorContains(t, err, "two.toml")
}

func TestSet_Enabled(t *testing.T) {
	t.Parallel()

	s := MustSet(New("on"), New("off").Disabled())

	assert.True(t, s.IsEnabled("on"))
	assert.False(t, s.IsEnabled("off"))
	assert.False(t, s.IsEnabled("missing"))
	assert.True(t, s.Has("off"))
}

func TestSet_AddCopiesDependsOn(t *testing.T) {
	t.Parallel()

	deps := []string{"B"}
	s := MustSet(New("A", deps...))
	deps[0] = "mutated"

	got, ok := s.Get("A")
	require.True(t, ok)
	assert.Equal(t, []string{"B"}, got.DependsOn)
}

func TestSet_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var s *Set
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Names())
	assert.False(t, s.Has("A"))
}
