package glcheck

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/constraint"
)

// DrawElements draws every index of ib as primitives of the given
// topology, using the current program and vertex attributes.
func (c *Common) DrawElements(topology gputypes.PrimitiveTopology, ib *IndexBuffer) error {
	if err := live(ib, "Index buffer"); err != nil {
		return err
	}
	mode, ok := topologies.toNative(topology)
	if !ok {
		return constraint.Newf("Primitive topology %s is valid", topology)
	}
	typ, _ := indexTypes.toNative(ib.typ)

	c.drv.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
	c.drv.DrawElements(mode, int32(ib.count), typ, 0)
	c.drv.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return c.check()
}
