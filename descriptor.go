package glcheck

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/glcheck/internal/constraint"
)

// ArrayBufferAttributeDescriptor declares one attribute of a vertex
// record.
type ArrayBufferAttributeDescriptor struct {
	Name     string
	Type     ScalarType
	Elements int
}

// ArrayBufferAttribute is an attribute of an ArrayBufferDescriptor with
// its computed byte offset.
type ArrayBufferAttribute struct {
	desc     *ArrayBufferDescriptor
	name     string
	typ      ScalarType
	elements int
	offset   int
}

// Descriptor returns the descriptor the attribute belongs to.
func (a *ArrayBufferAttribute) Descriptor() *ArrayBufferDescriptor { return a.desc }

// Name returns the attribute name.
func (a *ArrayBufferAttribute) Name() string { return a.name }

// Type returns the component type.
func (a *ArrayBufferAttribute) Type() ScalarType { return a.typ }

// Elements returns the number of components, in 1..4.
func (a *ArrayBufferAttribute) Elements() int { return a.elements }

// Offset returns the byte offset within a record.
func (a *ArrayBufferAttribute) Offset() int { return a.offset }

// Size returns the size of the attribute in bytes.
func (a *ArrayBufferAttribute) Size() int { return a.elements * a.typ.Size() }

// ArrayBufferDescriptor is the layout of one interleaved vertex record.
type ArrayBufferDescriptor struct {
	attrs  []*ArrayBufferAttribute
	byName map[string]*ArrayBufferAttribute
	size   int
}

// NewArrayBufferDescriptor lays the attributes out in order, packed with
// no padding.
func NewArrayBufferDescriptor(attrs ...ArrayBufferAttributeDescriptor) (*ArrayBufferDescriptor, error) {
	if err := constraint.Check(len(attrs) > 0, "Descriptor has at least one attribute"); err != nil {
		return nil, err
	}
	d := &ArrayBufferDescriptor{byName: make(map[string]*ArrayBufferAttribute, len(attrs))}
	for _, ad := range attrs {
		if err := constraint.First(
			constraint.Check(ad.Name != "", "Attribute name not empty"),
			constraint.InRange(ad.Elements, 1, 4, "Attribute elements"),
			constraint.Check(ad.Type.Size() > 0, "Attribute type is valid"),
		); err != nil {
			return nil, err
		}
		if _, dup := d.byName[ad.Name]; dup {
			return nil, constraint.Newf("Attribute name %q is unique", ad.Name)
		}
		a := &ArrayBufferAttribute{
			desc:     d,
			name:     ad.Name,
			typ:      ad.Type,
			elements: ad.Elements,
			offset:   d.size,
		}
		d.attrs = append(d.attrs, a)
		d.byName[a.name] = a
		d.size += a.Size()
	}
	return d, nil
}

// Attributes returns the attributes in record order.
func (d *ArrayBufferDescriptor) Attributes() []*ArrayBufferAttribute {
	return append([]*ArrayBufferAttribute(nil), d.attrs...)
}

// Attribute returns the attribute called name.
func (d *ArrayBufferDescriptor) Attribute(name string) (*ArrayBufferAttribute, bool) {
	a, ok := d.byName[name]
	return a, ok
}

// Size returns the size of one record in bytes.
func (d *ArrayBufferDescriptor) Size() int { return d.size }

// ArrayBufferWritableData stages records for ArrayBufferUpdate. It
// covers the records [first, first+count) of one buffer.
type ArrayBufferWritableData struct {
	buffer *ArrayBuffer
	first  int
	count  int
	data   []byte
}

// NewArrayBufferWritableData stages every record of b.
func NewArrayBufferWritableData(b *ArrayBuffer) (*ArrayBufferWritableData, error) {
	if err := live(b, "Array buffer"); err != nil {
		return nil, err
	}
	return NewArrayBufferWritableDataRange(b, 0, b.elements)
}

// NewArrayBufferWritableDataRange stages count records of b starting at
// first.
func NewArrayBufferWritableDataRange(b *ArrayBuffer, first, count int) (*ArrayBufferWritableData, error) {
	if err := live(b, "Array buffer"); err != nil {
		return nil, err
	}
	if err := constraint.First(
		constraint.InRange(first, 0, b.elements-1, "First record"),
		constraint.InRange(count, 1, b.elements-first, "Record count"),
	); err != nil {
		return nil, err
	}
	return &ArrayBufferWritableData{
		buffer: b,
		first:  first,
		count:  count,
		data:   make([]byte, count*b.desc.Size()),
	}, nil
}

// Buffer returns the target buffer.
func (w *ArrayBufferWritableData) Buffer() *ArrayBuffer { return w.buffer }

// Bytes returns the staged bytes.
func (w *ArrayBufferWritableData) Bytes() []byte { return w.data }

// slot returns the bytes of attr in record index.
func (w *ArrayBufferWritableData) slot(index int, attr *ArrayBufferAttribute, typ ScalarType, n int) ([]byte, error) {
	if err := constraint.First(
		constraint.NotNil(attr, "Attribute"),
		constraint.InRange(index, w.first, w.first+w.count-1, "Record index"),
	); err != nil {
		return nil, err
	}
	if err := constraint.First(
		constraint.Check(attr.desc == w.buffer.desc, "Buffer attribute belongs to the array buffer"),
		constraint.Check(attr.typ == typ, "Attribute is of type "+typ.String()),
		constraint.Check(n == attr.elements, "Value count matches attribute elements"),
	); err != nil {
		return nil, err
	}
	off := (index-w.first)*w.buffer.desc.Size() + attr.offset
	return w.data[off : off+attr.Size()], nil
}

// SetFloat32 writes the components of a float attribute in one record.
func (w *ArrayBufferWritableData) SetFloat32(index int, attr *ArrayBufferAttribute, values ...float32) error {
	b, err := w.slot(index, attr, ScalarFloat, len(values))
	if err != nil {
		return err
	}
	for i, v := range values {
		binary.NativeEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return nil
}

// SetInt32 writes the components of an int attribute in one record.
func (w *ArrayBufferWritableData) SetInt32(index int, attr *ArrayBufferAttribute, values ...int32) error {
	b, err := w.slot(index, attr, ScalarInt, len(values))
	if err != nil {
		return err
	}
	for i, v := range values {
		binary.NativeEndian.PutUint32(b[i*4:], uint32(v))
	}
	return nil
}

// SetUint8 writes the components of an unsigned byte attribute, such as
// a packed color.
func (w *ArrayBufferWritableData) SetUint8(index int, attr *ArrayBufferAttribute, values ...uint8) error {
	b, err := w.slot(index, attr, ScalarUnsignedByte, len(values))
	if err != nil {
		return err
	}
	copy(b, values)
	return nil
}
