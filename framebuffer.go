package glcheck

import (
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/constraint"
	"github.com/gogpu/glcheck/internal/glenum"
)

// Attachment is an image to attach to a framebuffer. Attachments are
// built with the constructors below, which check that the image can
// serve the role.
type Attachment struct {
	role  RenderableRole
	point ColorAttachmentPoint
	rb    *Renderbuffer
	tex   *Texture2D
	cube  *TextureCube
	face  CubeMapFace
}

// Role returns the role the image is attached as.
func (a Attachment) Role() RenderableRole { return a.role }

func renderbufferAttachment(rb *Renderbuffer, role RenderableRole, point ColorAttachmentPoint) (Attachment, error) {
	if err := live(rb, "Renderbuffer"); err != nil {
		return Attachment{}, err
	}
	if err := constraint.Check(rb.Role() == role, "Renderbuffer is "+role.String()+"-renderable"); err != nil {
		return Attachment{}, err
	}
	return Attachment{role: role, point: point, rb: rb}, nil
}

func textureAttachment(t *Texture2D, role RenderableRole, point ColorAttachmentPoint) (Attachment, error) {
	if err := live(t, "Texture"); err != nil {
		return Attachment{}, err
	}
	if err := constraint.Check(t.Role() == role, "Texture is "+role.String()+"-renderable"); err != nil {
		return Attachment{}, err
	}
	return Attachment{role: role, point: point, tex: t}, nil
}

// ColorRenderbuffer attaches a color renderbuffer at point.
func ColorRenderbuffer(point ColorAttachmentPoint, rb *Renderbuffer) (Attachment, error) {
	return renderbufferAttachment(rb, RoleColor, point)
}

// ColorTexture2D attaches a color texture at point.
func ColorTexture2D(point ColorAttachmentPoint, t *Texture2D) (Attachment, error) {
	return textureAttachment(t, RoleColor, point)
}

// ColorTextureCube attaches one face of a cube texture at point.
func ColorTextureCube(point ColorAttachmentPoint, t *TextureCube, face CubeMapFace) (Attachment, error) {
	if err := live(t, "Texture"); err != nil {
		return Attachment{}, err
	}
	if _, ok := cubeMapFaces.toNative(face); !ok {
		return Attachment{}, constraint.Newf("Cube face %s is valid", face)
	}
	return Attachment{role: RoleColor, point: point, cube: t, face: face}, nil
}

// DepthRenderbuffer attaches a depth renderbuffer.
func DepthRenderbuffer(rb *Renderbuffer) (Attachment, error) {
	return renderbufferAttachment(rb, RoleDepth, 0)
}

// DepthTexture2D attaches a depth texture.
func DepthTexture2D(t *Texture2D) (Attachment, error) {
	return textureAttachment(t, RoleDepth, 0)
}

// StencilRenderbuffer attaches a stencil renderbuffer.
func StencilRenderbuffer(rb *Renderbuffer) (Attachment, error) {
	return renderbufferAttachment(rb, RoleStencil, 0)
}

// DepthStencilRenderbuffer attaches a packed depth+stencil renderbuffer
// to both the depth and the stencil attachment points.
func DepthStencilRenderbuffer(rb *Renderbuffer) (Attachment, error) {
	return renderbufferAttachment(rb, RoleDepthStencil, 0)
}

// alive rechecks the image of an attachment, which may have been deleted
// since the attachment was built.
func (a Attachment) alive() error {
	switch {
	case a.rb != nil:
		return live(a.rb, "Renderbuffer")
	case a.tex != nil:
		return live(a.tex, "Texture")
	case a.cube != nil:
		return live(a.cube, "Texture")
	}
	return constraint.New("Attachment not null")
}

func (c *Common) attach(point uint32, a Attachment) {
	switch {
	case a.rb != nil:
		c.drv.FramebufferRenderbuffer(gl.FRAMEBUFFER, point, gl.RENDERBUFFER, a.rb.id)
	case a.tex != nil:
		c.drv.FramebufferTexture2D(gl.FRAMEBUFFER, point, gl.TEXTURE_2D, a.tex.id, 0)
	default:
		target, _ := cubeMapFaces.toNative(a.face)
		c.drv.FramebufferTexture2D(gl.FRAMEBUFFER, point, target, a.cube.id, 0)
	}
}

// FramebufferAllocate assembles a framebuffer from attachments.
//
// A failed check deletes the framebuffer and returns a nil handle. An
// incomplete framebuffer is not an error: it is returned with its
// status and the caller decides whether to keep it.
func (c *Common) FramebufferAllocate(attachments ...Attachment) (*Framebuffer, FramebufferStatus, error) {
	for _, a := range attachments {
		if err := a.alive(); err != nil {
			return nil, 0, err
		}
	}

	fb := &Framebuffer{colors: make(map[ColorAttachmentPoint]bool)}
	fb.id = c.drv.GenFramebuffer()
	c.drv.BindFramebuffer(gl.FRAMEBUFFER, fb.id)
	defer c.drv.BindFramebuffer(gl.FRAMEBUFFER, 0)

	status, err := c.assemble(fb, attachments)
	if err != nil {
		c.drv.DeleteFramebuffer(fb.id)
		return nil, 0, err
	}
	if c.debugEnabled() {
		c.log.Debug("glcheck: framebuffer allocated",
			"id", fb.id, "colors", len(fb.colors), "depth", fb.hasDepth, "stencil", fb.hasStencil,
			"status", status.String())
	}
	return fb, status, nil
}

func (c *Common) assemble(fb *Framebuffer, attachments []Attachment) (FramebufferStatus, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	for _, a := range attachments {
		switch a.role {
		case RoleColor:
			if err := constraint.InRange(int(a.point), 0, len(c.cache.colorPoints)-1, "Color attachment point"); err != nil {
				return 0, err
			}
			if fb.colors[a.point] {
				return 0, constraint.New("Color buffer not already present at this index")
			}
			c.attach(gl.COLOR_ATTACHMENT0+uint32(a.point), a)
			fb.colors[a.point] = true
		case RoleDepth:
			if fb.hasDepth {
				return 0, constraint.New("Only one depth+stencil buffer provided")
			}
			c.attach(gl.DEPTH_ATTACHMENT, a)
			fb.hasDepth = true
		case RoleStencil:
			if fb.hasStencil {
				return 0, constraint.New("Only one depth+stencil buffer provided")
			}
			c.attach(gl.STENCIL_ATTACHMENT, a)
			fb.hasStencil = true
		case RoleDepthStencil:
			if fb.hasDepth || fb.hasStencil {
				return 0, constraint.New("Only one depth+stencil buffer provided")
			}
			// DEPTH_STENCIL_ATTACHMENT does not exist on OpenGL ES 2.
			c.attach(gl.DEPTH_ATTACHMENT, a)
			c.attach(gl.STENCIL_ATTACHMENT, a)
			fb.hasDepth, fb.hasStencil = true, true
		default:
			return 0, constraint.New("Attachment not null")
		}
		if err := c.check(); err != nil {
			return 0, err
		}
	}
	if err := constraint.Check(len(fb.colors) > 0, "Framebuffer has at least one color buffer"); err != nil {
		return 0, err
	}

	code := c.drv.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if err := c.check(); err != nil {
		return 0, err
	}
	return framebufferStatusFromNative(code), nil
}

// FramebufferDrawBind makes fb the target of rendering.
func (c *Common) FramebufferDrawBind(fb *Framebuffer) error {
	if err := live(fb, "Framebuffer"); err != nil {
		return err
	}
	c.drv.BindFramebuffer(c.backend.drawFramebufferTarget(), fb.id)
	return c.check()
}

// FramebufferDrawIsBound reports whether fb is the target of rendering.
func (c *Common) FramebufferDrawIsBound(fb *Framebuffer) (bool, error) {
	if err := live(fb, "Framebuffer"); err != nil {
		return false, err
	}
	id, err := c.queryInt(gl.FRAMEBUFFER_BINDING)
	if err != nil {
		return false, err
	}
	return uint32(id) == fb.id, nil
}

// FramebufferDrawAnyIsBound reports whether any framebuffer object, as
// opposed to the default framebuffer, is the target of rendering.
func (c *Common) FramebufferDrawAnyIsBound() (bool, error) {
	id, err := c.queryInt(gl.FRAMEBUFFER_BINDING)
	if err != nil {
		return false, err
	}
	return id != 0, nil
}

// FramebufferDrawUnbind makes the default framebuffer the target of
// rendering.
func (c *Common) FramebufferDrawUnbind() error {
	c.drv.BindFramebuffer(c.backend.drawFramebufferTarget(), 0)
	return c.check()
}

// FramebufferDrawValidate returns the completeness of the framebuffer
// that is the target of rendering.
func (c *Common) FramebufferDrawValidate() (FramebufferStatus, error) {
	code := c.drv.CheckFramebufferStatus(c.backend.drawFramebufferTarget())
	if err := c.check(); err != nil {
		return 0, err
	}
	return framebufferStatusFromNative(code), nil
}

// FramebufferDelete deletes fb. The attached images are not deleted.
func (c *Common) FramebufferDelete(fb *Framebuffer) error {
	if err := live(fb, "Framebuffer"); err != nil {
		return err
	}
	c.drv.DeleteFramebuffer(fb.id)
	fb.markDeleted()
	if c.debugEnabled() {
		c.log.Debug("glcheck: framebuffer deleted", "id", fb.id)
	}
	return c.check()
}

// ===== Draw buffers =====

// FramebufferDrawBuffers returns the fragment output slots of the
// context.
func (e *Extended) FramebufferDrawBuffers() []DrawBuffer {
	return append([]DrawBuffer(nil), e.cache.drawBuffers...)
}

// FramebufferDrawSetBuffers routes fragment outputs to color attachment
// points of fb, which must be bound. Slots missing from mapping write
// nowhere.
func (e *Extended) FramebufferDrawSetBuffers(fb *Framebuffer, mapping map[DrawBuffer]ColorAttachmentPoint) error {
	if err := live(fb, "Framebuffer"); err != nil {
		return err
	}
	bound, err := e.FramebufferDrawIsBound(fb)
	if err != nil {
		return err
	}
	if err := constraint.Check(bound, "Framebuffer is bound"); err != nil {
		return err
	}
	for slot, point := range mapping {
		if err := constraint.First(
			constraint.InRange(int(slot), 0, len(e.cache.drawBuffers)-1, "Draw buffer"),
			constraint.InRange(int(point), 0, len(e.cache.colorPoints)-1, "Color attachment point"),
		); err != nil {
			return err
		}
	}

	names := drawBufferNames(e.cache.names[:0], len(e.cache.drawBuffers), mapping)
	e.cache.names = names
	e.drv.DrawBuffers(names)
	return e.check()
}

// drawBufferNames appends the native name of every slot in 0..n-1 to
// dst: COLOR_ATTACHMENT0+point for mapped slots and NONE otherwise.
func drawBufferNames(dst []uint32, n int, mapping map[DrawBuffer]ColorAttachmentPoint) []uint32 {
	for i := range n {
		if point, ok := mapping[DrawBuffer(i)]; ok {
			dst = append(dst, gl.COLOR_ATTACHMENT0+uint32(point))
		} else {
			dst = append(dst, glenum.NONE)
		}
	}
	return dst
}
