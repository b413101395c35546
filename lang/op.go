package lang

// Op is one instruction of a compiled [Program].
//
// The set of instructions is closed: Seq, Literal, Verbatim, Value, PathOf,
// With, If, Each and Call. Custom macros build programs by combining them.
type Op interface {
	op()
}

// Seq runs its instructions in order.
type Seq []Op

// Literal emits text from the template.
type Literal string

// Verbatim emits the reconstructed source of a literal block.
type Verbatim string

// Value emits the stringified value found at Path, relative to the current
// path. Undefined values emit nothing.
type Value struct {
	Path string
}

// PathOf emits the current path extended by Path, without resolving it.
type PathOf struct {
	Path string
}

// With runs Body with the current path extended by Path.
// The current path is restored afterward.
type With struct {
	Path string
	Body Op
}

// If runs Body when the value at Path (relative to the current path) is
// defined.
type If struct {
	Path string
	Body Op
}

// Each runs Body once per member of the value at Path, with the current path
// set to the member's path. The current path is restored afterward.
type Each struct {
	Path string
	Body Op
}

// Call emits the result of the named host function.
type Call struct {
	Name string
}

func (Seq) op()      {}
func (Literal) op()  {}
func (Verbatim) op() {}
func (Value) op()    {}
func (PathOf) op()   {}
func (With) op()     {}
func (If) op()       {}
func (Each) op()     {}
func (Call) op()     {}

// Program is a compiled template. It is immutable and may be executed any
// number of times, concurrently, against different data.
type Program struct {
	root   Op
	source string
	hash   uint64
}

// NewProgram returns a program that runs root.
func NewProgram(root Op) *Program {
	return &Program{root: root}
}

// Root returns the top-level instruction of the program.
func (p *Program) Root() Op { return p.root }

// Hash returns the xxh3 hash of the program's source.
func (p *Program) Hash() uint64 { return p.hash }

// Source returns the template source the program was compiled from, or the
// empty string for programs built with [NewProgram].
func (p *Program) Source() string { return p.source }
