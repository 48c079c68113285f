// Package gml reads a GML (Graph Modelling Language) file and produces a
// positionally-indexed graph.Graph. GML node ids are arbitrary integers
// assigned by whatever tool produced the file; this package is the
// collaborator responsible for relabeling them to the 0..N-1 positions the
// sampler's core requires (spec.md's graph-reader collaborator, resolving
// the original source's "FIXME: node ids might not correspond to
// positions").
//
// Only the subset of GML needed to recover topology is parsed: nested
// bracketed blocks, `node [ id ... ]` and `edge [ source ... target ... ]`
// entries. Unknown keys and blocks (labels, layout hints, graphics) are
// skipped rather than rejected.
package gml

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arolim/hcp-mcmc/internal/graph"
	apperrors "github.com/arolim/hcp-mcmc/pkg/errors"
)

// ParseFile reads and parses the GML file at path.
func ParseFile(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("opening GML file %s", path), err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a GML document from r and builds a graph.Graph, relabeling
// the file's node ids to positions 0..N-1 in order of first appearance.
func Parse(r io.Reader) (*graph.Graph, error) {
	toks, err := tokenize(r)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	rawNodes, rawEdges, err := p.parseGraph()
	if err != nil {
		return nil, err
	}

	positions := make(map[int64]int, len(rawNodes))
	for _, id := range rawNodes {
		if _, dup := positions[id]; dup {
			return nil, apperrors.New(apperrors.CodeParseError, fmt.Sprintf("duplicate GML node id %d", id))
		}
		positions[id] = len(positions)
	}

	edges := make([]graph.Edge, 0, len(rawEdges))
	for _, e := range rawEdges {
		src, ok := positions[e.source]
		if !ok {
			return nil, apperrors.New(apperrors.CodeParseError, fmt.Sprintf("edge references undefined node id %d", e.source))
		}
		dst, ok := positions[e.target]
		if !ok {
			return nil, apperrors.New(apperrors.CodeParseError, fmt.Sprintf("edge references undefined node id %d", e.target))
		}
		edges = append(edges, graph.Edge{Source: src, Target: dst})
	}

	return graph.New(len(positions), edges)
}

type rawEdge struct {
	source, target int64
}

// parser walks a flat token stream produced by tokenize, treating every
// `node` or `edge` keyword token as the start of a block, at whatever
// depth it appears under the (possibly absent) `graph [ ... ]` wrapper.
type parser struct {
	toks []string
	pos  int
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (string, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) parseGraph() ([]int64, []rawEdge, error) {
	var nodes []int64
	var edges []rawEdge

	for {
		tok, ok := p.next()
		if !ok {
			break
		}
		switch strings.ToLower(tok) {
		case "node":
			id, err := p.parseNodeBlock()
			if err != nil {
				return nil, nil, err
			}
			nodes = append(nodes, id)
		case "edge":
			e, err := p.parseEdgeBlock()
			if err != nil {
				return nil, nil, err
			}
			edges = append(edges, e)
		}
	}

	if len(nodes) == 0 {
		return nil, nil, apperrors.New(apperrors.CodeParseError, "GML document declares no nodes")
	}
	return nodes, edges, nil
}

// parseNodeBlock consumes `[ ... id <int> ... ]`, skipping unrecognized
// keys and their values (scalars or nested blocks).
func (p *parser) parseNodeBlock() (int64, error) {
	if err := p.expect("["); err != nil {
		return 0, err
	}
	var id int64
	var sawID bool
	for {
		tok, ok := p.next()
		if !ok {
			return 0, apperrors.New(apperrors.CodeParseError, "unterminated node block")
		}
		if tok == "]" {
			break
		}
		if strings.EqualFold(tok, "id") {
			v, err := p.parseScalarInt()
			if err != nil {
				return 0, err
			}
			id = v
			sawID = true
			continue
		}
		if err := p.skipValue(); err != nil {
			return 0, err
		}
	}
	if !sawID {
		return 0, apperrors.New(apperrors.CodeParseError, "node block missing id")
	}
	return id, nil
}

// parseEdgeBlock consumes `[ ... source <int> ... target <int> ... ]`.
func (p *parser) parseEdgeBlock() (rawEdge, error) {
	if err := p.expect("["); err != nil {
		return rawEdge{}, err
	}
	var e rawEdge
	var sawSource, sawTarget bool
	for {
		tok, ok := p.next()
		if !ok {
			return rawEdge{}, apperrors.New(apperrors.CodeParseError, "unterminated edge block")
		}
		if tok == "]" {
			break
		}
		switch {
		case strings.EqualFold(tok, "source"):
			v, err := p.parseScalarInt()
			if err != nil {
				return rawEdge{}, err
			}
			e.source, sawSource = v, true
		case strings.EqualFold(tok, "target"):
			v, err := p.parseScalarInt()
			if err != nil {
				return rawEdge{}, err
			}
			e.target, sawTarget = v, true
		default:
			if err := p.skipValue(); err != nil {
				return rawEdge{}, err
			}
		}
	}
	if !sawSource || !sawTarget {
		return rawEdge{}, apperrors.New(apperrors.CodeParseError, "edge block missing source or target")
	}
	return e, nil
}

func (p *parser) parseScalarInt() (int64, error) {
	tok, ok := p.next()
	if !ok {
		return 0, apperrors.New(apperrors.CodeParseError, "expected integer value, got end of input")
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, apperrors.New(apperrors.CodeParseError, fmt.Sprintf("expected integer value, got %q", tok))
	}
	return v, nil
}

// skipValue consumes one value: either a bracketed sub-block (balanced) or
// a single scalar token.
func (p *parser) skipValue() error {
	tok, ok := p.peek()
	if !ok {
		return apperrors.New(apperrors.CodeParseError, "expected a value, got end of input")
	}
	if tok != "[" {
		p.pos++
		return nil
	}
	depth := 0
	for {
		tok, ok := p.next()
		if !ok {
			return apperrors.New(apperrors.CodeParseError, "unterminated bracketed block")
		}
		if tok == "[" {
			depth++
		} else if tok == "]" {
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
}

func (p *parser) expect(tok string) error {
	got, ok := p.next()
	if !ok || got != tok {
		return apperrors.New(apperrors.CodeParseError, fmt.Sprintf("expected %q, got %q", tok, got))
	}
	return nil
}

// tokenize splits a GML document into whitespace-separated words, quoted
// strings (kept as one token, quotes stripped), and standalone `[`/`]`
// bracket tokens.
func tokenize(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeIOError, "reading GML input", err)
	}

	var toks []string
	var cur strings.Builder
	inQuotes := false

	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}

	for _, r := range string(data) {
		switch {
		case inQuotes:
			if r == '"' {
				inQuotes = false
				flush()
				continue
			}
			cur.WriteRune(r)
		case r == '"':
			flush()
			inQuotes = true
		case r == '[' || r == ']':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	if inQuotes {
		return nil, apperrors.New(apperrors.CodeParseError, "unterminated quoted string")
	}
	return toks, nil
}
