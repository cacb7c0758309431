package glcheck

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestDrawElements(t *testing.T) {
	for _, profile := range allProfiles {
		t.Run(profile, func(t *testing.T) {
			iface, drv := openNamed(t, profile)
			c := common(iface)
			p := newProgram(t, c)
			d := newDescriptor(t)
			position, _ := d.Attribute("position")
			pa, _ := p.Attribute("position")

			vb, err := c.ArrayBufferAllocate(3, d, UsageStaticDraw)
			mustNoErr(t, err)
			mustNoErr(t, c.ArrayBufferBindVertexAttribute(vb, position, pa))
			ib, err := c.IndexBufferAllocate(2, 3, UsageStaticDraw)
			mustNoErr(t, err)
			mustNoErr(t, c.IndexBufferUpdate(ib, []uint32{0, 1, 2}))
			mustNoErr(t, c.ProgramActivate(p))

			mustNoErr(t, c.DrawElements(gputypes.PrimitiveTopologyTriangleList, ib))
			mustNoErr(t, c.DrawElements(gputypes.PrimitiveTopologyLineStrip, ib))
			if drv.Draws() != 2 {
				t.Errorf("Draws() = %d, want 2", drv.Draws())
			}
		})
	}
}

func TestDrawElementsWithoutProgram(t *testing.T) {
	iface, drv := openNamed(t, "gl33")
	c := common(iface)
	ib, err := c.IndexBufferAllocate(2, 3, UsageStaticDraw)
	mustNoErr(t, err)

	err = c.DrawElements(gputypes.PrimitiveTopologyTriangleList, ib)
	if !errors.Is(err, ErrRuntime) {
		t.Errorf("error = %v, want ErrRuntime", err)
	}
	if drv.Draws() != 0 {
		t.Errorf("Draws() = %d, want 0", drv.Draws())
	}
}

func TestDrawElementsViolations(t *testing.T) {
	iface, drv := openNamed(t, "gles3")
	c := common(iface)

	wantViolation(t, c.DrawElements(gputypes.PrimitiveTopologyTriangleList, nil), "Index buffer not null")

	ib, err := c.IndexBufferAllocate(2, 3, UsageStaticDraw)
	mustNoErr(t, err)
	wantViolation(t, c.DrawElements(gputypes.PrimitiveTopology(99), ib), "Primitive topology")

	mustNoErr(t, c.IndexBufferDelete(ib))
	wantViolation(t, c.DrawElements(gputypes.PrimitiveTopologyTriangleList, ib), "Index buffer not deleted")

	if n := drv.CallCount("DrawElements"); n != 0 {
		t.Errorf("DrawElements called %d times, want 0", n)
	}
}
