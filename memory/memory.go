package memory

import "fmt"

// Ref is a named reference to a memory slot, resolved to a slot index by a
// Map. It is a distinct type (not a bare string) so that call sites read as
// "a variable reference" rather than an arbitrary string.
type Ref string

func (r Ref) String() string { return string(r) }

// Memory is an immutable, ordered, fixed-length vector of Values, one per
// declared slot. Every mutation returns a new Memory; callers never mutate
// a Memory in place, so two Memories with equal contents are
// interchangeable.
type Memory []Value

// With returns a copy of m with slot addr set to val.
func (m Memory) With(addr int, val Value) Memory {
	out := make(Memory, len(m))
	copy(out, m)
	out[addr] = val
	return out
}

// Equal reports whether m and o hold the same values in the same slots.
func (m Memory) Equal(o Memory) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if !m[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Encode produces m's canonical fixed-width byte encoding: encodedSize
// bytes per slot, in slot order. Equal Memories produce identical
// encodings and vice versa, which is what lets the explorer key its
// visited set on this byte string instead of on a deep-equal struct.
func (m Memory) Encode() []byte {
	buf := make([]byte, len(m)*encodedSize)
	for i, v := range m {
		v.encodeInto(buf[i*encodedSize : (i+1)*encodedSize])
	}
	return buf
}

// DumpEntry is one (reference, value) pair produced by Map.Dump, in slot
// order.
type DumpEntry struct {
	Ref   Ref
	Value Value
}

// Map is the immutable binding between named references and memory slots,
// plus each slot's VarType. It is built once per checking run via NewMap
// and never mutated afterward.
type Map struct {
	order []Ref
	addr  map[Ref]int
	types []VarType
}

// Decl is one slot declaration: a reference bound to a type. NewMap takes
// an ordered slice of Decls (rather than a Go map) because slot order must
// be deterministic across runs, which would otherwise depend on Go's
// randomized map iteration order.
type Decl struct {
	Ref  Ref
	Type VarType
}

// NewMap builds a Map from an ordered list of declarations. It fails with a
// ConfigurationError if a reference is declared more than once.
func NewMap(decls ...Decl) (*Map, error) {
	m := &Map{
		addr: make(map[Ref]int, len(decls)),
	}
	for _, d := range decls {
		if _, dup := m.addr[d.Ref]; dup {
			return nil, &ConfigurationError{Msg: fmt.Sprintf("variable %q declared more than once", d.Ref)}
		}
		m.addr[d.Ref] = len(m.order)
		m.order = append(m.order, d.Ref)
		m.types = append(m.types, d.Type)
	}
	return m, nil
}

// Len returns the number of declared slots.
func (m *Map) Len() int { return len(m.order) }

// Addr resolves ref to its slot index.
func (m *Map) Addr(ref Ref) (int, error) {
	i, ok := m.addr[ref]
	if !ok {
		return 0, &ConfigurationError{Msg: fmt.Sprintf("unknown variable %q", ref)}
	}
	return i, nil
}

// MustAddr is Addr for builder call sites that have already validated ref
// exists (e.g. because they just declared it); it panics on failure rather
// than threading an error through code that can never observe one.
func (m *Map) MustAddr(ref Ref) int {
	i, err := m.Addr(ref)
	if err != nil {
		panic(err)
	}
	return i
}

// VarType returns the declared type for ref.
func (m *Map) VarType(ref Ref) (VarType, error) {
	i, err := m.Addr(ref)
	if err != nil {
		return nil, err
	}
	return m.types[i], nil
}

// Validate reports an error if val is outside ref's declared domain.
func (m *Map) Validate(ref Ref, val Value) error {
	i, err := m.Addr(ref)
	if err != nil {
		return err
	}
	if err := m.types[i].Validate(val); err != nil {
		return &ConfigurationError{Msg: fmt.Sprintf("%s: %v", ref, err)}
	}
	return nil
}

// ValidateAddr is Validate by slot index, used by compiled ops that have
// already resolved their destination address at build time.
func (m *Map) ValidateAddr(addr int, val Value) error {
	if err := m.types[addr].Validate(val); err != nil {
		return &ConfigurationError{Msg: fmt.Sprintf("%s: %v", m.order[addr], err)}
	}
	return nil
}

// Init returns the initial Memory: every slot set to its type's Init value.
func (m *Map) Init() Memory {
	out := make(Memory, len(m.types))
	for i, t := range m.types {
		out[i] = t.Init()
	}
	return out
}

// Dump returns every (reference, value) pair in mem, in slot order.
func (m *Map) Dump(mem Memory) []DumpEntry {
	out := make([]DumpEntry, len(m.order))
	for i, ref := range m.order {
		out[i] = DumpEntry{Ref: ref, Value: mem[i]}
	}
	return out
}

// Refs returns every declared reference, in slot order.
func (m *Map) Refs() []Ref {
	out := make([]Ref, len(m.order))
	copy(out, m.order)
	return out
}
