package domainfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAllThreeKinds(t *testing.T) {
	doc := []byte(`
vars:
  - name: ready
    bool: true
  - name: turn
    set: [0, 1]
  - name: count
    range: [0, 5]
`)
	spec, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, spec, 3)

	mm, err := spec.BuildMap()
	require.NoError(t, err)

	init := mm.Init()
	addr, err := mm.Addr("ready")
	require.NoError(t, err)
	assert.True(t, init[addr].B)

	addr, err = mm.Addr("turn")
	require.NoError(t, err)
	assert.Equal(t, 0, init[addr].I)

	addr, err = mm.Addr("count")
	require.NoError(t, err)
	assert.Equal(t, 0, init[addr].I)
}

func TestParseRejectsAmbiguousVariable(t *testing.T) {
	doc := []byte(`
vars:
  - name: x
    bool: true
    range: [0, 1]
`)
	_, err := Parse(doc)
	assert.Error(t, err)
}

func TestParseRejectsMissingName(t *testing.T) {
	doc := []byte(`
vars:
  - bool: true
`)
	_, err := Parse(doc)
	assert.Error(t, err)
}

func TestParseRejectsEmptyRange(t *testing.T) {
	doc := []byte(`
vars:
  - name: x
    range: [5, 1]
`)
	_, err := Parse(doc)
	assert.Error(t, err)
}

func TestParseRejectsBadRangeLength(t *testing.T) {
	doc := []byte(`
vars:
  - name: x
    range: [1, 2, 3]
`)
	_, err := Parse(doc)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/to/domain.yaml")
	assert.Error(t, err)
}
