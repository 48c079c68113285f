package gml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arolim/hcp-mcmc/internal/gml"
)

const sampleGML = `
graph [
  directed 0
  node [
    id 10
    label "a"
  ]
  node [
    id 20
    label "b"
  ]
  node [
    id 30
    label "c"
  ]
  edge [
    source 10
    target 20
  ]
  edge [
    source 20
    target 30
  ]
]
`

func TestParseRelabelsToPositions(t *testing.T) {
	g, err := gml.Parse(strings.NewReader(sampleGML))
	require.NoError(t, err)

	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 2, g.NumEdges())
	assert.True(t, g.HasEdge(0, 1))
	assert.True(t, g.HasEdge(1, 2))
	assert.False(t, g.HasEdge(0, 2))
}

func TestParseRejectsDuplicateNodeID(t *testing.T) {
	src := `graph [ node [ id 1 ] node [ id 1 ] ]`
	_, err := gml.Parse(strings.NewReader(src))
	assert.Error(t, err)
}

func TestParseRejectsEdgeToUndefinedNode(t *testing.T) {
	src := `graph [ node [ id 1 ] edge [ source 1 target 2 ] ]`
	_, err := gml.Parse(strings.NewReader(src))
	assert.Error(t, err)
}

func TestParseRejectsEmptyGraph(t *testing.T) {
	_, err := gml.Parse(strings.NewReader("graph [ ]"))
	assert.Error(t, err)
}

func TestParseSkipsUnknownBlocksAndAttributes(t *testing.T) {
	src := `
graph [
  node [
    id 5
    graphics [
      x 1.0
      y 2.0
    ]
  ]
]
`
	g, err := gml.Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumNodes())
}
