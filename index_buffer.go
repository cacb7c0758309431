package glcheck

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/constraint"
)

// IndexBufferAllocate creates an index buffer of count indices using the
// smallest type that can hold maxIndex. The new buffer is left bound.
func (c *Common) IndexBufferAllocate(maxIndex uint32, count int, usage UsageHint) (*IndexBuffer, error) {
	return c.IndexBufferAllocateType(IndexTypeFor(maxIndex), count, usage)
}

// IndexBufferAllocateType creates an index buffer of count indices of
// type typ.
func (c *Common) IndexBufferAllocateType(typ IndexType, count int, usage UsageHint) (*IndexBuffer, error) {
	if err := constraint.InRange(count, 1, math.MaxInt32, "Index count"); err != nil {
		return nil, err
	}
	if _, ok := indexTypes.toNative(typ); !ok {
		return nil, constraint.Newf("Index type %s is valid", typ)
	}
	if err := c.checkIndexType(typ); err != nil {
		return nil, err
	}
	hint, ok := usageHints.toNative(usage)
	if !ok {
		return nil, constraint.Newf("Usage hint %s is valid", usage)
	}

	b := &IndexBuffer{typ: typ, count: count, usage: usage}
	b.id = c.drv.GenBuffer()
	c.drv.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
	c.drv.BufferData(gl.ELEMENT_ARRAY_BUFFER, b.Size(), nil, hint)
	if err := c.check(); err != nil {
		c.drv.DeleteBuffer(b.id)
		return nil, err
	}
	if c.debugEnabled() {
		c.log.Debug("glcheck: index buffer allocated",
			"id", b.id, "type", typ.String(), "count", count)
	}
	return b, nil
}

// checkIndexType rejects 32-bit indices on OpenGL ES 2 unless
// GL_OES_element_index_uint is visible.
func (c *Common) checkIndexType(typ IndexType) error {
	if typ != IndexUnsignedInt || c.version.Tier != TierEmbedded || c.version.Major >= 3 {
		return nil
	}
	return constraint.Check(c.ext.IsVisible(ExtElementIndexUint),
		"Index type UnsignedInt requires "+ExtElementIndexUint)
}

// IndexBufferUpdate replaces the first len(indices) indices of b.
func (c *Common) IndexBufferUpdate(b *IndexBuffer, indices []uint32) error {
	if err := live(b, "Index buffer"); err != nil {
		return err
	}
	if err := constraint.InRange(len(indices), 1, b.count, "Index count"); err != nil {
		return err
	}
	limit := b.typ.MaxIndex()
	size := b.typ.Size()
	data := make([]byte, len(indices)*size)
	for i, v := range indices {
		if v > limit {
			return constraint.Newf("Index %d fits in %s (got %d)", i, b.typ, v)
		}
		switch b.typ {
		case IndexUnsignedByte:
			data[i] = byte(v)
		case IndexUnsignedShort:
			binary.NativeEndian.PutUint16(data[i*2:], uint16(v))
		default:
			binary.NativeEndian.PutUint32(data[i*4:], v)
		}
	}
	c.drv.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
	c.drv.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, data)
	return c.check()
}

// IndexBufferDelete deletes b.
func (c *Common) IndexBufferDelete(b *IndexBuffer) error {
	if err := live(b, "Index buffer"); err != nil {
		return err
	}
	c.drv.DeleteBuffer(b.id)
	b.markDeleted()
	if c.debugEnabled() {
		c.log.Debug("glcheck: index buffer deleted", "id", b.id)
	}
	return c.check()
}
