package glcheck

import (
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/constraint"
)

// RenderbufferAllocate creates a renderbuffer. The format must be one the
// tier supports; on OpenGL ES 2, Depth24Stencil8 is only available
// through the PackedDepthStencil capability.
func (c *Common) RenderbufferAllocate(format RenderbufferFormat, width, height int) (*Renderbuffer, error) {
	if !c.backend.renderbufferFormatAllowed(format) {
		return nil, constraint.Newf("Renderbuffer format %s is supported by %s", format, c.version)
	}
	return c.renderbufferAllocate(format, width, height)
}

func (c *Common) renderbufferAllocate(format RenderbufferFormat, width, height int) (*Renderbuffer, error) {
	if err := constraint.First(
		constraint.InRange(width, 1, c.cache.maxRenderbufferSize, "Renderbuffer width"),
		constraint.InRange(height, 1, c.cache.maxRenderbufferSize, "Renderbuffer height"),
	); err != nil {
		return nil, err
	}
	internal, ok := renderbufferFormats.toNative(format)
	if !ok {
		return nil, constraint.Newf("Renderbuffer format %s is valid", format)
	}

	r := &Renderbuffer{format: format, width: width, height: height}
	r.id = c.drv.GenRenderbuffer()
	c.drv.BindRenderbuffer(gl.RENDERBUFFER, r.id)
	c.drv.RenderbufferStorage(gl.RENDERBUFFER, internal, int32(width), int32(height))
	c.drv.BindRenderbuffer(gl.RENDERBUFFER, 0)
	if err := c.check(); err != nil {
		c.drv.DeleteRenderbuffer(r.id)
		return nil, err
	}
	if c.debugEnabled() {
		c.log.Debug("glcheck: renderbuffer allocated",
			"id", r.id, "format", format.String(), "width", width, "height", height)
	}
	return r, nil
}

// RenderbufferDelete deletes r. Framebuffers that use r become
// incomplete.
func (c *Common) RenderbufferDelete(r *Renderbuffer) error {
	if err := live(r, "Renderbuffer"); err != nil {
		return err
	}
	c.drv.DeleteRenderbuffer(r.id)
	r.markDeleted()
	if c.debugEnabled() {
		c.log.Debug("glcheck: renderbuffer deleted", "id", r.id)
	}
	return c.check()
}
