package huffpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"

	"github.com/chronos-tachyon/huffpack/pqueue"
)

// NodeID identifies a Node within its Tree.
type NodeID int32

// NoNode is the NodeID of an absent parent or child.
const NoNode = NodeID(-1)

// Node is one vertex of a Tree.  Leaves carry a Symbol and have no
// children; internal nodes always have exactly two children and carry
// InvalidSymbol.
type Node struct {
	Symbol Symbol
	Freq   uint64
	Parent NodeID
	Left   NodeID
	Right  NodeID
}

// IsLeaf returns true iff this node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoNode
}

// State is the phase of a Builder.
type State byte

const (
	// Building means the queue still holds two or more nodes.
	Building State = iota

	// Done means a single root remains and the Tree is complete.
	Done
)

// String returns the name of this State.
func (s State) String() string {
	switch s {
	case Building:
		return "Building"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", byte(s))
	}
}

var _ fmt.Stringer = State(0)

// Builder constructs a Tree one merge at a time.
type Builder struct {
	nodes  []Node
	leaves []NodeID
	queue  *pqueue.Queue[NodeID]
	merges int
	root   NodeID
	state  State
}

// NewBuilder prepares to build a Tree from the given frequency table.  The
// table has one slot per Symbol of the alphabet and its last slot is the
// alphabet's sentinel.  A leaf is created for every Symbol with a nonzero
// frequency, plus one for the sentinel whatever its frequency.
func NewBuilder(counts []uint64) (*Builder, error) {
	numSymbols := len(counts)
	if numSymbols == 0 {
		return nil, ErrEmptyAlphabet
	}
	if numSymbols > int(MaxSymbol)+1 {
		return nil, fmt.Errorf("%w: got %d symbols, max %d", ErrAlphabetTooLarge, numSymbols, int(MaxSymbol)+1)
	}

	sentinel := Symbol(numSymbols - 1)
	numLeaves := 1
	for symbol := Symbol(0); symbol < sentinel; symbol++ {
		if counts[symbol] != 0 {
			numLeaves++
		}
	}

	b := &Builder{
		nodes:  make([]Node, 0, 2*numLeaves-1),
		leaves: make([]NodeID, numSymbols),
		root:   NoNode,
		state:  Building,
	}
	b.queue = pqueue.New(b.compare)

	for symbol := Symbol(0); symbol <= sentinel; symbol++ {
		b.leaves[symbol] = NoNode
		freq := counts[symbol]
		if freq == 0 && symbol != sentinel {
			continue
		}
		id := b.newNode(symbol, freq, NoNode, NoNode)
		b.leaves[symbol] = id
		b.queue.Insert(id)
	}

	b.settle()
	return b, nil
}

// State returns the current phase of the build.
func (b *Builder) State() State {
	return b.state
}

// Merges returns the number of merges performed so far.
func (b *Builder) Merges() int {
	return b.merges
}

// Pending returns the number of nodes still waiting in the queue.
func (b *Builder) Pending() int {
	if b.state == Done {
		return 1
	}
	return b.queue.Len()
}

// Step merges the two least frequent pending nodes.  It returns true if
// more merges remain, or false once the build is Done.  Calling Step on a
// finished Builder does nothing.
func (b *Builder) Step() bool {
	if b.state == Done {
		return false
	}

	x := b.extract()
	y := b.extract()

	// Saturate rather than wrap; only ties can be affected.
	freq := saturatingAdd(b.nodes[x].Freq, b.nodes[y].Freq)

	id := b.newNode(InvalidSymbol, freq, x, y)
	b.nodes[x].Parent = id
	b.nodes[y].Parent = id
	b.queue.Insert(id)
	b.merges++

	b.settle()
	return b.state == Building
}

// Finish runs the remaining merges and returns the completed Tree.  The
// Builder must not be used afterward.
func (b *Builder) Finish() *Tree {
	for b.Step() {
	}
	assert.Assertf(b.root != NoNode, "Builder.Finish: state %v without a root", b.state)

	t := &Tree{
		nodes:  b.nodes,
		leaves: b.leaves,
		root:   b.root,
		merges: b.merges,
	}
	*b = Builder{root: NoNode, state: Done}
	return t
}

func (b *Builder) newNode(symbol Symbol, freq uint64, left NodeID, right NodeID) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		Symbol: symbol,
		Freq:   freq,
		Parent: NoNode,
		Left:   left,
		Right:  right,
	})
	return id
}

func (b *Builder) extract() NodeID {
	id, err := b.queue.ExtractMin()
	assert.Assertf(err == nil, "Builder: %v while %v with %d merges", err, b.state, b.merges)
	return id
}

func (b *Builder) settle() {
	if b.queue.Len() != 1 {
		return
	}
	root, err := b.queue.Peek()
	assert.Assertf(err == nil, "Builder: %v", err)
	b.root = root
	b.state = Done
	b.queue.Destroy()
}

// compare orders nodes by ascending frequency.  Ties go to the node created
// first: leaves in Symbol order, then merged nodes in the order they were
// made.  This keeps the resulting Tree independent of heap mechanics.
func (b *Builder) compare(x, y NodeID) int {
	fx, fy := b.nodes[x].Freq, b.nodes[y].Freq
	switch {
	case fx < fy:
		return -1
	case fx > fy:
		return 1
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// BuildTree builds the Huffman tree for the given frequency table.  See
// NewBuilder for the layout of counts.
func BuildTree(counts []uint64) (*Tree, error) {
	b, err := NewBuilder(counts)
	if err != nil {
		return nil, err
	}
	return b.Finish(), nil
}

// Tree is a finished Huffman tree.  It is read-only.
type Tree struct {
	nodes  []Node
	leaves []NodeID
	root   NodeID
	merges int
}

// NumSymbols returns the size of the alphabet this Tree was built for.
func (t *Tree) NumSymbols() int {
	return len(t.leaves)
}

// Sentinel returns the alphabet's sentinel Symbol.
func (t *Tree) Sentinel() Symbol {
	return Symbol(len(t.leaves) - 1)
}

// Root returns the NodeID of the root.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes in the Tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Merges returns the number of merges that built this Tree.  It is always
// one less than the number of leaves.
func (t *Tree) Merges() int {
	return t.merges
}

// Node returns the node with the given NodeID.
func (t *Tree) Node(id NodeID) Node {
	assert.Assertf(id >= 0 && int(id) < len(t.nodes), "Tree.Node: id %d out of range [0, %d)", id, len(t.nodes))
	return t.nodes[id]
}

// Leaf returns the NodeID of the leaf for symbol.
func (t *Tree) Leaf(symbol Symbol) (NodeID, error) {
	if symbol < 0 || int(symbol) >= len(t.leaves) {
		return NoNode, fmt.Errorf("%w: symbol %d, alphabet size %d", ErrSymbolRange, symbol, len(t.leaves))
	}
	id := t.leaves[symbol]
	if id == NoNode {
		return NoNode, fmt.Errorf("%w: symbol %d", ErrNoLeaf, symbol)
	}
	return id, nil
}

// Leaves returns the NodeIDs of every leaf, in Symbol order.
func (t *Tree) Leaves() []NodeID {
	out := make([]NodeID, 0, t.merges+1)
	for _, id := range t.leaves {
		if id != NoNode {
			out = append(out, id)
		}
	}
	return out
}

// Depth returns the number of edges between the given node and the root.
func (t *Tree) Depth(id NodeID) int {
	d := 0
	for node := t.Node(id); node.Parent != NoNode; node = t.nodes[node.Parent] {
		d++
	}
	return d
}

// CodeLength returns the number of bits in symbol's code.  This is the
// depth of its leaf, except that a Tree consisting of a lone leaf still
// assigns that leaf a 1-bit code.
func (t *Tree) CodeLength(symbol Symbol) (int, error) {
	id, err := t.Leaf(symbol)
	if err != nil {
		return 0, err
	}
	return t.codeLength(id), nil
}

func (t *Tree) codeLength(id NodeID) int {
	if id == t.root {
		return 1
	}
	return t.Depth(id)
}

// Code returns symbol's code, found by walking from its leaf up to the root.
func (t *Tree) Code(symbol Symbol) (Code, error) {
	id, err := t.Leaf(symbol)
	if err != nil {
		return Code{}, err
	}
	if id == t.root {
		return MakeCode(1, 0), nil
	}

	// The walk visits the bits last-to-first.
	var reversed Code
	for node := t.nodes[id]; node.Parent != NoNode; node = t.nodes[node.Parent] {
		if reversed.Size == maxCodeSize {
			return Code{}, fmt.Errorf("%w: symbol %d is deeper than %d", ErrCodeTooLong, symbol, maxCodeSize)
		}
		reversed = reversed.Append(t.nodes[node.Parent].Right == id)
		id = node.Parent
	}
	return reversed.Reversed(), nil
}

// Cost returns the total coded size in bits of the data the frequencies
// were counted from: the sum of frequency times code length over all leaves.
// Like merged frequencies, it saturates at math.MaxUint64.
func (t *Tree) Cost() uint64 {
	var sum uint64
	for _, id := range t.leaves {
		if id != NoNode {
			sum = saturatingAdd(sum, saturatingMul(t.nodes[id].Freq, uint64(t.codeLength(id))))
		}
	}
	return sum
}

// SymbolStat describes how one Symbol is coded.
type SymbolStat struct {
	Symbol     Symbol
	Freq       uint64
	CodeLength int

	// Bits is Freq * CodeLength, saturating at math.MaxUint64.
	Bits uint64
}

// Stats returns a SymbolStat for every Symbol with a nonzero frequency, in
// Symbol order.
func (t *Tree) Stats() []SymbolStat {
	out := make([]SymbolStat, 0, t.merges+1)
	for symbol, id := range t.leaves {
		if id == NoNode || t.nodes[id].Freq == 0 {
			continue
		}
		node := t.nodes[id]
		size := t.codeLength(id)
		out = append(out, SymbolStat{
			Symbol:     Symbol(symbol),
			Freq:       node.Freq,
			CodeLength: size,
			Bits:       saturatingMul(node.Freq, uint64(size)),
		})
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.root)
	fmt.Fprintf(&buf, "\tMerges() = %d\n", t.merges)
	for id, node := range t.nodes {
		if node.IsLeaf() {
			fmt.Fprintf(&buf, "\tNode(%d) = leaf{%d, freq=%d, parent=%d}\n", id, node.Symbol, node.Freq, node.Parent)
		} else {
			fmt.Fprintf(&buf, "\tNode(%d) = {%d, %d, freq=%d, parent=%d}\n", id, node.Left, node.Right, node.Freq, node.Parent)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
