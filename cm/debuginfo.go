package cm

import "sort"

// Symbol is a pure address-range symbol not tied to any entity: an
// address mapped directly to a name and size.
type Symbol struct {
	Name string
	Size uint64
}

type objectInfo struct {
	Address uint64
	Size    uint64
}

// DebugInfo is the code model's in-memory object/debug-info sink: it
// tracks where entities and pure symbols live in an address space,
// enabling address-to-entity containment queries, plus a separate
// type-size registry recording a debug-info size per type independent
// of (and possibly disagreeing with) the layout engine's own SizeOf.
// Populated externally (it is not derived from the type/context graph);
// a persistent-backed variant is available via OpenDebugInfoStore.
type DebugInfo struct {
	byEntity  map[ID]objectInfo
	byAddress map[uint64]ID // exact address -> entity, for the unique-(address,entity) check
	addrs     []uint64      // kept sorted for the upper_bound-then-step-back query
	symbols   map[uint64]Symbol
	typeSizes map[ID]uint64
}

func newDebugInfo() *DebugInfo {
	return &DebugInfo{
		byEntity:  make(map[ID]objectInfo),
		byAddress: make(map[uint64]ID),
		symbols:   make(map[uint64]Symbol),
		typeSizes: make(map[ID]uint64),
	}
}

// AddType records sz as the debug-info size for t, overwriting any size
// previously recorded for it. Unlike AddObject this is not an
// insert-once registry: a front end may legitimately refine a type's
// recorded size as more of the binary is analyzed.
func (d *DebugInfo) AddType(t Type, sz uint64) {
	d.typeSizes[t.ID()] = sz
}

// TypeSize returns the debug-info size recorded for t, if any.
func (d *DebugInfo) TypeSize(t Type) (uint64, bool) {
	sz, ok := d.typeSizes[t.ID()]
	return sz, ok
}

// FindTypeSize returns the debug-info size recorded for t, or 0 if none
// was recorded.
func (d *DebugInfo) FindTypeSize(t Type) uint64 {
	return d.typeSizes[t.ID()]
}

// AddObject records that entity e occupies [address, address+size) in
// the address space. Rejects a second registration of the same entity
// or the same address.
func (d *DebugInfo) AddObject(e Entity, address, size uint64) error {
	if _, ok := d.byEntity[e.ID()]; ok {
		return newError(DuplicateInsertion, "add_object", "entity already has a registered address")
	}
	if _, ok := d.byAddress[address]; ok {
		return newError(DuplicateInsertion, "add_object", "address already bound to an entity")
	}
	d.byEntity[e.ID()] = objectInfo{Address: address, Size: size}
	d.byAddress[address] = e.ID()
	i := sort.Search(len(d.addrs), func(i int) bool { return d.addrs[i] >= address })
	d.addrs = append(d.addrs, 0)
	copy(d.addrs[i+1:], d.addrs[i:])
	d.addrs[i] = address
	return nil
}

// ObjectOf returns the (address, size) registered for e, if any.
func (d *DebugInfo) ObjectOf(e Entity) (address, size uint64, ok bool) {
	info, ok := d.byEntity[e.ID()]
	return info.Address, info.Size, ok
}

// EntityAt returns the entity id whose registered [address, address+size)
// range contains addr, via upper_bound(addr) stepped back one entry and
// a containment check.
func (d *DebugInfo) EntityAt(addr uint64) (ID, bool) {
	i := sort.Search(len(d.addrs), func(i int) bool { return d.addrs[i] > addr })
	if i == 0 {
		return ID{}, false
	}
	candidate := d.addrs[i-1]
	id := d.byAddress[candidate]
	info := d.byEntity[id]
	if addr >= info.Address && addr < info.Address+info.Size {
		return id, true
	}
	return ID{}, false
}

// AddSymbol records a pure symbol (not tied to an entity) at address.
func (d *DebugInfo) AddSymbol(address uint64, sym Symbol) error {
	if _, ok := d.symbols[address]; ok {
		return newError(DuplicateInsertion, "add_symbol", "address already bound to a symbol")
	}
	d.symbols[address] = sym
	return nil
}

// SymbolAt returns the pure symbol registered exactly at address.
func (d *DebugInfo) SymbolAt(address uint64) (Symbol, bool) {
	sym, ok := d.symbols[address]
	return sym, ok
}
