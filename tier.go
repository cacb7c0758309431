package glcheck

import (
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/glenum"
)

// tierBackend supplies the behavior that differs between tiers. The
// shared operations in Common consult it instead of switching on the
// tier.
type tierBackend interface {
	// baseline returns an *UnsupportedError when a mandatory extension
	// is missing.
	baseline(ext *ExtensionRegistry) error

	depthBits(c *Common) (int, error)
	stencilBits(c *Common) (int, error)
	maxColorAttachments(c *Common) (int, error)

	renderbufferFormatAllowed(f RenderbufferFormat) bool
	textureFormat(f gputypes.TextureFormat) (textureSpec, bool)
	blendMinMax() bool

	// drawFramebufferTarget is the binding point used for rendering.
	drawFramebufferTarget() uint32
}

var (
	es2RenderbufferFormats = []RenderbufferFormat{
		RenderbufferDepth16,
		RenderbufferStencil8,
		RenderbufferRGBA5551,
		RenderbufferRGBA4444,
		RenderbufferRGB565,
	}
	gl3RenderbufferFormats = []RenderbufferFormat{
		RenderbufferDepth16,
		RenderbufferDepth24,
		RenderbufferDepth24Stencil8,
		RenderbufferRGBA8888,
		RenderbufferRGB888,
	}
)

// ===== Embedded =====

type embeddedBackend struct {
	gl3 bool
}

func (embeddedBackend) baseline(*ExtensionRegistry) error { return nil }

func (embeddedBackend) depthBits(c *Common) (int, error) {
	return c.queryInt(glenum.DEPTH_BITS)
}

func (embeddedBackend) stencilBits(c *Common) (int, error) {
	return c.queryInt(glenum.STENCIL_BITS)
}

func (b embeddedBackend) maxColorAttachments(c *Common) (int, error) {
	if !b.gl3 {
		return 1, nil
	}
	return c.queryInt(gl.MAX_COLOR_ATTACHMENTS)
}

func (b embeddedBackend) renderbufferFormatAllowed(f RenderbufferFormat) bool {
	return slices.Contains(es2RenderbufferFormats, f) || (b.gl3 && slices.Contains(gl3RenderbufferFormats, f))
}

func (b embeddedBackend) textureFormat(f gputypes.TextureFormat) (textureSpec, bool) {
	if b.gl3 {
		s, ok := gl3TextureFormats[f]
		return s, ok
	}
	s, ok := es2TextureFormats[f]
	return s, ok
}

func (embeddedBackend) blendMinMax() bool { return false }

func (b embeddedBackend) drawFramebufferTarget() uint32 {
	if b.gl3 {
		return gl.DRAW_FRAMEBUFFER
	}
	return gl.FRAMEBUFFER
}

// ===== Legacy =====

type legacyBackend struct{}

// legacyFramebufferExtensions is the EXT alternative to
// GL_ARB_framebuffer_object.
var legacyFramebufferExtensions = []string{
	ExtFramebufferObjectEXT,
	ExtFramebufferMultisampleEXT,
	ExtFramebufferBlitEXT,
	ExtPackedDepthStencilEXT,
}

func (legacyBackend) baseline(ext *ExtensionRegistry) error {
	if ext.IsSupported(ExtFramebufferObjectARB) {
		return nil
	}
	for _, name := range legacyFramebufferExtensions {
		if !ext.IsSupported(name) {
			return &UnsupportedError{
				Message: "OpenGL 2.1 requires " + ExtFramebufferObjectARB + " or " + name + " and its companions",
			}
		}
	}
	return nil
}

func (legacyBackend) depthBits(c *Common) (int, error) {
	return c.queryInt(glenum.DEPTH_BITS)
}

func (legacyBackend) stencilBits(c *Common) (int, error) {
	return c.queryInt(glenum.STENCIL_BITS)
}

func (legacyBackend) maxColorAttachments(c *Common) (int, error) {
	return c.queryInt(gl.MAX_COLOR_ATTACHMENTS)
}

func (legacyBackend) renderbufferFormatAllowed(f RenderbufferFormat) bool {
	return slices.Contains(gl3RenderbufferFormats, f)
}

func (legacyBackend) textureFormat(f gputypes.TextureFormat) (textureSpec, bool) {
	s, ok := legacyTextureFormats[f]
	return s, ok
}

func (legacyBackend) blendMinMax() bool { return false }

func (legacyBackend) drawFramebufferTarget() uint32 { return gl.DRAW_FRAMEBUFFER }

// ===== Modern =====

type modernBackend struct{}

func (modernBackend) baseline(*ExtensionRegistry) error { return nil }

// attachmentBits reads the size of the depth or stencil image of the
// bound draw framebuffer. Core profiles removed DEPTH_BITS and
// STENCIL_BITS.
func attachmentBits(c *Common, depth bool) (int, error) {
	fb, err := c.queryInt(gl.FRAMEBUFFER_BINDING)
	if err != nil {
		return 0, err
	}
	var point, pname uint32
	switch {
	case fb == 0 && depth:
		point, pname = glenum.DEPTH, glenum.FRAMEBUFFER_ATTACHMENT_DEPTH_SIZE
	case fb == 0:
		point, pname = glenum.STENCIL, glenum.FRAMEBUFFER_ATTACHMENT_STENCIL_SIZE
	case depth:
		point, pname = gl.DEPTH_ATTACHMENT, glenum.FRAMEBUFFER_ATTACHMENT_DEPTH_SIZE
	default:
		point, pname = gl.STENCIL_ATTACHMENT, glenum.FRAMEBUFFER_ATTACHMENT_STENCIL_SIZE
	}

	kind := c.drv.GetFramebufferAttachmentParameteriv(gl.DRAW_FRAMEBUFFER, point, glenum.FRAMEBUFFER_ATTACHMENT_OBJECT_TYPE)
	if err := c.check(); err != nil {
		return 0, err
	}
	if kind == glenum.NONE {
		return 0, nil
	}
	bits := c.drv.GetFramebufferAttachmentParameteriv(gl.DRAW_FRAMEBUFFER, point, pname)
	if err := c.check(); err != nil {
		return 0, err
	}
	return int(bits), nil
}

func (modernBackend) depthBits(c *Common) (int, error) { return attachmentBits(c, true) }

func (modernBackend) stencilBits(c *Common) (int, error) { return attachmentBits(c, false) }

func (modernBackend) maxColorAttachments(c *Common) (int, error) {
	return c.queryInt(gl.MAX_COLOR_ATTACHMENTS)
}

func (modernBackend) renderbufferFormatAllowed(f RenderbufferFormat) bool {
	return slices.Contains(gl3RenderbufferFormats, f)
}

func (modernBackend) textureFormat(f gputypes.TextureFormat) (textureSpec, bool) {
	s, ok := gl3TextureFormats[f]
	return s, ok
}

func (modernBackend) blendMinMax() bool { return true }

func (modernBackend) drawFramebufferTarget() uint32 { return gl.DRAW_FRAMEBUFFER }
