// Package diff computes the shortest edit script between two sequences and applies it in place to a
// mutable list, so that a list observed by listeners can be brought up to date with the fewest
// inserts and deletes while every unchanged element keeps its identity.
package diff

// Implementation note: Compute is Myers' O(ND) greedy algorithm. For every depth d (the number of
// non-diagonal moves) it records the furthest reaching x on every diagonal k = x - y. The full
// graph is kept so that the path can be recovered by backtracking instead of keeping a trace of
// point objects. A good explanation of the algorithm can be found here:
//
// https://blog.jcoglan.com/2017/02/12/the-myers-diff-algorithm-part-1/
// https://blog.jcoglan.com/2017/02/15/the-myers-diff-algorithm-part-2/

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidArgument is returned when a sequence, list or predicate is nil.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrScriptMismatch is returned by Apply when the script does not describe a transformation
	// from target to source.
	ErrScriptMismatch = errors.New("edit script does not match sequences")
)

// Point is a position in the edit graph: X elements of the first sequence and Y elements of the
// second sequence have been consumed.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Script is the path through the edit graph from (0,0) to (len(a), len(b)).
//
// Two consecutive points are either a unit horizontal move (delete), a unit vertical move (insert)
// or a diagonal run of one or more matching elements.
type Script []Point

// Compute returns the shortest edit script that transforms a into b, using eq to compare an element
// of a with an element of b.
//
// Among several shortest scripts, the one preferring deletes over inserts is returned. The result
// is deterministic for the same input.
func Compute[T any](a, b Sequence[T], eq func(x, y T) bool) (Script, error) {
	switch {
	case isNil(a):
		return nil, fmt.Errorf("%w: sequence a is nil", ErrInvalidArgument)
	case isNil(b):
		return nil, fmt.Errorf("%w: sequence b is nil", ErrInvalidArgument)
	case eq == nil:
		return nil, fmt.Errorf("%w: equality predicate is nil", ErrInvalidArgument)
	}

	n, m := a.Len(), b.Len()
	if n+m < 0 {
		panic("diff: inputs too large")
	}
	g := computeMyersGraph(a, b, eq)
	return g.script(n, m), nil
}

// myersGraph stores the furthest reaching x for every depth and diagonal in a flat slice. Depth d
// has d+1 diagonals, they are packed one after the other.
type myersGraph struct {
	v        []int
	maxDepth int
}

func (g *myersGraph) upgradeMaxDepth(maxDepth int) {
	if maxDepth <= g.maxDepth {
		return
	}
	n := (maxDepth + 2) * (maxDepth + 1) / 2
	g.v = slices.Grow(g.v, n-len(g.v))
	g.v = g.v[:n]
	g.maxDepth = maxDepth
}

func (g *myersGraph) get(d, k int) int    { return g.v[g.index(d, k)] }
func (g *myersGraph) set(d, k int, x int) { g.v[g.index(d, k)] = x }

func (g *myersGraph) index(d, k int) int {
	if d < 0 || d > g.maxDepth || k < -d || k > d || (k+d)&1 != 0 {
		panic(fmt.Sprintf("diff: graph index (d=%d, k=%d) out of range (max depth %d)", d, k, g.maxDepth))
	}
	return (d+1)*d/2 + (k+d)/2
}

// insertFrom reports whether the point on diagonal k at depth d is reached by an insert from
// diagonal k+1. Otherwise it is reached by a delete from diagonal k-1. The previous depth is
// passed as a lookup so that the same rule serves the forward pass and the backtracking.
func insertFrom(d, k int, prev func(k int) int) bool {
	return k == -d || (k != d && prev(k-1) < prev(k+1))
}

func computeMyersGraph[T any](a, b Sequence[T], eq func(x, y T) bool) myersGraph {
	n, m := a.Len(), b.Len()

	// Furthest reaching x of the previous depth, indexed by k + offset. Diagonals of depth d and
	// d-1 have different parity, so the slice can be updated in place.
	offset := n + m
	frontier := make([]int, 2*offset+1)
	prev := func(k int) int { return frontier[k+offset] }

	g := myersGraph{maxDepth: -1}
	for d := 0; d <= n+m; d++ {
		g.upgradeMaxDepth(d)
		for k := -d; k <= d; k += 2 {
			var x int
			switch {
			case d == 0:
				x = 0
			case insertFrom(d, k, prev):
				x = prev(k + 1)
			default:
				x = prev(k-1) + 1
			}
			y := x - k

			for x < n && y < m && eq(a.At(x), b.At(y)) {
				x++
				y++
			}

			frontier[k+offset] = x
			g.set(d, k, x)

			if x >= n && y >= m {
				return g
			}
		}
	}
	panic(fmt.Sprintf("diff: no edit script found within %d stages (n=%d, m=%d)", n+m, n, m))
}

// script backtracks from (n, m) to (0, 0) and returns the path in forward order.
func (g *myersGraph) script(n, m int) Script {
	path := Script{{n, m}}
	x, y := n, m
	for d := g.maxDepth; d >= 0; d-- {
		k := x - y

		// Start of the snake that ends in (x, y), and the point the non-diagonal move leading to
		// it started from.
		var startX, prevX, prevK int
		switch {
		case d == 0:
			startX = 0
		case insertFrom(d, k, func(k int) int { return g.get(d-1, k) }):
			prevK = k + 1
			prevX = g.get(d-1, prevK)
			startX = prevX
		default:
			prevK = k - 1
			prevX = g.get(d-1, prevK)
			startX = prevX + 1
		}

		if startX < x {
			path = append(path, Point{startX, startX - k})
		}
		if d == 0 {
			break
		}
		path = append(path, Point{prevX, prevX - prevK})
		x, y = prevX, prevX-prevK
	}
	slices.Reverse(path)
	return path
}

// Cost returns the number of non-diagonal moves, that is the number of inserts plus deletes.
func (s Script) Cost() int {
	cost := 0
	for i := 1; i < len(s); i++ {
		op := s.op(i)
		if op.Kind != Match {
			cost++
		}
	}
	return cost
}

// Ops returns the script as a sequence of operations, one per segment.
func (s Script) Ops() []Op {
	if len(s) < 2 {
		return nil
	}
	ops := make([]Op, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		ops = append(ops, s.op(i))
	}
	return ops
}

func (s Script) String() string {
	var sb strings.Builder
	for i, p := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.String())
	}
	return sb.String()
}

// op classifies the segment from s[i-1] to s[i]. It panics if the segment is neither a unit move nor
// a diagonal run, because Compute never produces such a segment.
func (s Script) op(i int) Op {
	from, to := s[i-1], s[i]
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == dy && dx > 0:
		return Op{Kind: Match, X: from.X, Y: from.Y, Len: dx}
	case dx == 1 && dy == 0:
		return Op{Kind: Delete, X: from.X, Y: from.Y, Len: 1}
	case dx == 0 && dy == 1:
		return Op{Kind: Insert, X: from.X, Y: from.Y, Len: 1}
	default:
		panic(fmt.Sprintf("diff: invalid edit script segment %v -> %v", from, to))
	}
}

// OpKind describes the kind of an edit script segment.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=OpKind
type OpKind int

const (
	Match  OpKind = iota // A run of matching elements
	Delete               // Deletion of an element of the first sequence
	Insert               // Insertion of an element of the second sequence
)

// Op is a single segment of a script. X and Y are the positions in the first and second sequence
// where the segment starts. Len is the length of a Match run and 1 otherwise.
type Op struct {
	Kind OpKind
	X, Y int
	Len  int
}
