package glcheck

import (
	"errors"
	"math"

	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/constraint"
	"github.com/gogpu/glcheck/internal/glenum"
)

// errUnmapCorrupted is returned when the driver reports that a mapped
// store was lost while mapped.
var errUnmapCorrupted = errors.New("glcheck: buffer contents lost while mapped")

// ArrayBufferAllocate creates an array buffer of elements records laid
// out by desc. The new buffer is left bound.
func (c *Common) ArrayBufferAllocate(elements int, desc *ArrayBufferDescriptor, usage UsageHint) (*ArrayBuffer, error) {
	if err := constraint.First(
		constraint.NotNil(desc, "Descriptor"),
		constraint.InRange(elements, 1, math.MaxInt32, "Elements"),
	); err != nil {
		return nil, err
	}
	hint, ok := usageHints.toNative(usage)
	if !ok {
		return nil, constraint.Newf("Usage hint %s is valid", usage)
	}

	b := &ArrayBuffer{desc: desc, elements: elements, usage: usage}
	b.id = c.drv.GenBuffer()
	c.drv.BindBuffer(gl.ARRAY_BUFFER, b.id)
	c.drv.BufferData(gl.ARRAY_BUFFER, b.Size(), nil, hint)
	if err := c.check(); err != nil {
		c.drv.DeleteBuffer(b.id)
		return nil, err
	}
	if c.debugEnabled() {
		c.log.Debug("glcheck: array buffer allocated",
			"id", b.id, "elements", elements, "size", b.Size(), "usage", usage.String())
	}
	return b, nil
}

// ArrayBufferBind binds b at the array buffer target.
func (c *Common) ArrayBufferBind(b *ArrayBuffer) error {
	if err := live(b, "Array buffer"); err != nil {
		return err
	}
	c.drv.BindBuffer(gl.ARRAY_BUFFER, b.id)
	return c.check()
}

// ArrayBufferIsBound reports whether b is bound at the array buffer
// target.
func (c *Common) ArrayBufferIsBound(b *ArrayBuffer) (bool, error) {
	if err := live(b, "Array buffer"); err != nil {
		return false, err
	}
	id, err := c.queryInt(glenum.ARRAY_BUFFER_BINDING)
	if err != nil {
		return false, err
	}
	return uint32(id) == b.id, nil
}

// ArrayBufferUnbind clears the array buffer binding.
func (c *Common) ArrayBufferUnbind() error {
	c.drv.BindBuffer(gl.ARRAY_BUFFER, 0)
	return c.check()
}

// requireArrayBufferBound is the bind-then-use check.
func (c *Common) requireArrayBufferBound(b *ArrayBuffer) error {
	bound, err := c.ArrayBufferIsBound(b)
	if err != nil {
		return err
	}
	return constraint.Check(bound, "Buffer is bound")
}

// ArrayBufferUpdate uploads staged records. The target buffer must be
// bound.
func (c *Common) ArrayBufferUpdate(data *ArrayBufferWritableData) error {
	if err := constraint.NotNil(data, "Data"); err != nil {
		return err
	}
	if err := c.requireArrayBufferBound(data.buffer); err != nil {
		return err
	}
	c.drv.BufferSubData(gl.ARRAY_BUFFER, data.first*data.buffer.desc.Size(), data.data)
	return c.check()
}

// ArrayBufferDelete deletes b. Deleting a bound buffer clears the
// binding.
func (c *Common) ArrayBufferDelete(b *ArrayBuffer) error {
	if err := live(b, "Array buffer"); err != nil {
		return err
	}
	c.drv.DeleteBuffer(b.id)
	b.markDeleted()
	if c.debugEnabled() {
		c.log.Debug("glcheck: array buffer deleted", "id", b.id)
	}
	return c.check()
}

// vertexAttributeChecks validates an association between a buffer
// attribute and a program attribute.
func (c *Common) vertexAttributeChecks(b *ArrayBuffer, attr *ArrayBufferAttribute, pa *ProgramAttribute) error {
	if err := constraint.First(
		live(b, "Array buffer"),
		constraint.NotNil(attr, "Buffer attribute"),
		constraint.NotNil(pa, "Program attribute"),
	); err != nil {
		return err
	}
	if err := live(pa.program, "Program"); err != nil {
		return err
	}
	if err := c.requireArrayBufferBound(b); err != nil {
		return err
	}
	return constraint.First(
		constraint.Check(attr.desc == b.desc, "Buffer attribute belongs to the array buffer"),
		constraint.Check(attr.typ.ShaderTypeConvertible(attr.elements, pa.typ),
			"Buffer attribute is of the same type as the program attribute"),
	)
}

// ArrayBufferBindVertexAttribute feeds the program attribute pa from the
// buffer attribute attr of b. The buffer must be bound.
func (c *Common) ArrayBufferBindVertexAttribute(b *ArrayBuffer, attr *ArrayBufferAttribute, pa *ProgramAttribute) error {
	if err := c.vertexAttributeChecks(b, attr, pa); err != nil {
		return err
	}
	typ, _ := scalarTypes.toNative(attr.typ)
	loc := uint32(pa.location)
	c.drv.EnableVertexAttribArray(loc)
	c.drv.VertexAttribPointer(loc, int32(attr.elements), typ, false, int32(b.desc.Size()), attr.offset)
	return c.check()
}

// ArrayBufferUnbindVertexAttribute disables the program attribute pa.
func (c *Common) ArrayBufferUnbindVertexAttribute(b *ArrayBuffer, attr *ArrayBufferAttribute, pa *ProgramAttribute) error {
	if err := c.vertexAttributeChecks(b, attr, pa); err != nil {
		return err
	}
	c.drv.DisableVertexAttribArray(uint32(pa.location))
	return c.check()
}

// ===== Mapping =====

// ArrayBufferMapRead maps b for reading. The returned slice is only
// valid until ArrayBufferUnmap and must not be written.
func (e *Extended) ArrayBufferMapRead(b *ArrayBuffer) ([]byte, error) {
	if err := live(b, "Array buffer"); err != nil {
		return nil, err
	}
	if err := e.requireArrayBufferBound(b); err != nil {
		return nil, err
	}
	view := e.drv.MapBuffer(gl.ARRAY_BUFFER, gl.READ_ONLY)
	if err := e.check(); err != nil {
		return nil, err
	}
	return view[:b.Size():b.Size()], nil
}

// ArrayBufferMapWrite discards the contents of b and maps it for
// writing. The returned data writes straight into the mapping and is
// only valid until ArrayBufferUnmap. It must not be passed to
// ArrayBufferUpdate.
func (e *Extended) ArrayBufferMapWrite(b *ArrayBuffer) (*ArrayBufferWritableData, error) {
	if err := live(b, "Array buffer"); err != nil {
		return nil, err
	}
	if err := e.requireArrayBufferBound(b); err != nil {
		return nil, err
	}
	hint, _ := usageHints.toNative(b.usage)
	e.drv.BufferData(gl.ARRAY_BUFFER, b.Size(), nil, hint)
	view := e.drv.MapBuffer(gl.ARRAY_BUFFER, gl.WRITE_ONLY)
	if err := e.check(); err != nil {
		return nil, err
	}
	return &ArrayBufferWritableData{
		buffer: b,
		count:  b.elements,
		data:   view[:b.Size():b.Size()],
	}, nil
}

// ArrayBufferUnmap ends a mapping of b.
func (e *Extended) ArrayBufferUnmap(b *ArrayBuffer) error {
	if err := live(b, "Array buffer"); err != nil {
		return err
	}
	if err := e.requireArrayBufferBound(b); err != nil {
		return err
	}
	ok := e.drv.UnmapBuffer(gl.ARRAY_BUFFER)
	if err := e.check(); err != nil {
		return err
	}
	if !ok {
		return errUnmapCorrupted
	}
	return nil
}
