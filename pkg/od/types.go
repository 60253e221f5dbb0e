package od

import (
	"encoding/binary"
	"sync"
)

// Variable holds one addressable value: either a standalone VAR object,
// or one sub-index of an ARRAY/RECORD object. Every access goes through
// Read/Write so a concurrently running SDO server and PDO mapper never
// observe a torn value.
type Variable struct {
	mu sync.RWMutex

	Name        string
	SubIndex    uint8
	DataType    DataType
	Access      AccessClass
	PDOMap      PDOMapping
	LowLimit    []byte
	HighLimit   []byte

	value   []byte
	def     []byte
	stream  *Streamer
}

// NewVariable constructs a Variable with an initial value copied from
// def. The stored copy is independent of the caller's slice.
func NewVariable(name string, subIndex uint8, dataType DataType, access AccessClass, mapping PDOMapping, def []byte) *Variable {
	v := &Variable{
		Name:     name,
		SubIndex: subIndex,
		DataType: dataType,
		Access:   access,
		PDOMap:   mapping,
		def:      append([]byte(nil), def...),
	}
	v.value = append([]byte(nil), def...)
	return v
}

// Length returns the current encoded length in bytes.
func (v *Variable) Length() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.value)
}

// Bytes returns a copy of the current raw value.
func (v *Variable) Bytes() []byte {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]byte, len(v.value))
	copy(out, v.value)
	return out
}

// SetBytes overwrites the raw value. If the variable has a write
// extension installed (via AddExtension), it runs instead of the plain
// store.
func (v *Variable) SetBytes(b []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.Access == AccessReadOnly || v.Access == AccessConst || v.Access == AccessNone {
		return ODRReadOnly
	}
	if v.stream != nil && v.stream.write != nil {
		return v.stream.write(v, b)
	}
	return DefaultWriter(v, b)
}

// rawSetLocked stores b bypassing any write extension; used by
// extensions themselves to commit the underlying value.
func (v *Variable) rawSetLocked(b []byte) {
	v.value = append(v.value[:0], b...)
}

// ResetToDefault restores the value recorded at construction time.
func (v *Variable) ResetToDefault() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = append(v.value[:0], v.def...)
}

// AddExtension installs read/write hooks that intercept SetBytes/ReadInto
// instead of the plain in-memory store. Used for entries whose value is
// computed or has side effects, e.g. NMT command reception or a counter
// snapshot.
func (v *Variable) AddExtension(read StreamReader, write StreamWriter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stream = &Streamer{read: read, write: write}
}

// ReadInto copies the current value into out, running a read extension
// if one is installed.
func (v *Variable) ReadInto(out []byte) (int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.Access == AccessWriteOnly {
		return 0, ODRWriteOnly
	}
	if v.stream != nil && v.stream.read != nil {
		return v.stream.read(v, out)
	}
	n := copy(out, v.value)
	return n, nil
}

func (v *Variable) Uint8() (uint8, error) {
	b := v.Bytes()
	if len(b) < 1 {
		return 0, ODRDataShort
	}
	return b[0], nil
}

func (v *Variable) Uint16() (uint16, error) {
	b := v.Bytes()
	if len(b) < 2 {
		return 0, ODRDataShort
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (v *Variable) Uint32() (uint32, error) {
	b := v.Bytes()
	if len(b) < 4 {
		return 0, ODRDataShort
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (v *Variable) Uint64() (uint64, error) {
	b := v.Bytes()
	if len(b) < 8 {
		return 0, ODRDataShort
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (v *Variable) PutUint8(val uint8) error  { return v.SetBytes([]byte{val}) }
func (v *Variable) PutUint16(val uint16) error {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, val)
	return v.SetBytes(b)
}
func (v *Variable) PutUint32(val uint32) error {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, val)
	return v.SetBytes(b)
}
func (v *Variable) PutUint64(val uint64) error {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, val)
	return v.SetBytes(b)
}

// VariableList backs an ARRAY or RECORD object: one Variable per
// sub-index, with sub-index 0 conventionally the "highest sub-index
// supported" count.
type VariableList struct {
	Type      ObjectType
	Variables []*Variable
}

// SubObject returns the Variable at subIndex, or ODRSubNotExist.
func (l *VariableList) SubObject(subIndex uint8) (*Variable, error) {
	for _, v := range l.Variables {
		if v.SubIndex == subIndex {
			return v, nil
		}
	}
	return nil, ODRSubNotExist
}

// Entry is one index of the dictionary: either a single Variable (VAR)
// or a VariableList (ARRAY/RECORD).
type Entry struct {
	Index    uint16
	Name     string
	Type     ObjectType
	variable *Variable
	list     *VariableList
}

// SubIndex resolves a sub-index to its Variable regardless of whether
// this entry is a VAR, ARRAY, or RECORD.
func (e *Entry) SubIndex(subIndex uint8) (*Variable, error) {
	if e.Type == ObjectVAR {
		if subIndex != 0 {
			return nil, ODRSubNotExist
		}
		return e.variable, nil
	}
	return e.list.SubObject(subIndex)
}

// SubCount returns the number of addressable sub-indices.
func (e *Entry) SubCount() int {
	if e.Type == ObjectVAR {
		return 1
	}
	return len(e.list.Variables)
}

// ObjectDictionary is the complete indexed store for one node.
type ObjectDictionary struct {
	mu      sync.RWMutex
	entries map[uint16]*Entry
}

// New returns an empty dictionary.
func New() *ObjectDictionary {
	return &ObjectDictionary{entries: make(map[uint16]*Entry)}
}

// AddVariable installs a VAR object at index.
func (od *ObjectDictionary) AddVariable(index uint16, v *Variable) *Entry {
	e := &Entry{Index: index, Name: v.Name, Type: ObjectVAR, variable: v}
	od.mu.Lock()
	od.entries[index] = e
	od.mu.Unlock()
	return e
}

// AddList installs an ARRAY or RECORD object at index.
func (od *ObjectDictionary) AddList(index uint16, name string, list *VariableList) *Entry {
	e := &Entry{Index: index, Name: name, Type: list.Type, list: list}
	od.mu.Lock()
	od.entries[index] = e
	od.mu.Unlock()
	return e
}

// Index looks up an entry, returning ODRIdxNotExist if absent.
func (od *ObjectDictionary) Index(index uint16) (*Entry, error) {
	od.mu.RLock()
	defer od.mu.RUnlock()
	e, ok := od.entries[index]
	if !ok {
		return nil, ODRIdxNotExist
	}
	return e, nil
}

// Entries returns the full index map. Callers must not mutate it.
func (od *ObjectDictionary) Entries() map[uint16]*Entry {
	od.mu.RLock()
	defer od.mu.RUnlock()
	return od.entries
}

// Find is a convenience wrapper for the common index+sub lookup.
func (od *ObjectDictionary) Find(index uint16, subIndex uint8) (*Variable, error) {
	e, err := od.Index(index)
	if err != nil {
		return nil, err
	}
	return e.SubIndex(subIndex)
}
