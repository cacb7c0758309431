package glcheck

import (
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/constraint"
)

// ===== Packed depth/stencil (OpenGL ES 2) =====

// PackedDepthStencil exposes GL_OES_packed_depth_stencil or
// GL_EXT_packed_depth_stencil.
type PackedDepthStencil struct {
	c    *Common
	name string
}

// Name returns the extension the capability was found through.
func (p *PackedDepthStencil) Name() string { return p.name }

// RenderbufferAllocateDepth24Stencil8 creates a packed 24-bit depth and
// 8-bit stencil renderbuffer.
func (p *PackedDepthStencil) RenderbufferAllocateDepth24Stencil8(width, height int) (*Renderbuffer, error) {
	return p.c.renderbufferAllocate(RenderbufferDepth24Stencil8, width, height)
}

// PackedDepthStencil returns the packed depth/stencil capability if the
// driver exposes either extension name.
func (e *Embedded) PackedDepthStencil() (*PackedDepthStencil, bool) {
	for _, name := range []string{ExtPackedDepthStencilOES, ExtPackedDepthStencilEXT} {
		if e.ext.IsVisible(name) {
			return &PackedDepthStencil{c: e.Common, name: name}, true
		}
	}
	return nil, false
}

// ===== Depth textures (OpenGL ES 2) =====

// DepthTexture exposes GL_OES_depth_texture.
type DepthTexture struct {
	c *Common
}

// Texture2DAllocate creates a depth texture. Color formats go through
// Embedded.Texture2DAllocate instead.
func (d *DepthTexture) Texture2DAllocate(desc Texture2DDescriptor) (*Texture2D, error) {
	if err := constraint.Check(textureRole(desc.Format) == RoleDepth,
		"Texture format "+desc.Format.String()+" is a depth format"); err != nil {
		return nil, err
	}
	return d.c.texture2DAllocate(desc)
}

// DepthTexture returns the depth texture capability if the driver
// exposes GL_OES_depth_texture.
func (e *Embedded) DepthTexture() (*DepthTexture, bool) {
	if !e.ext.IsVisible(ExtDepthTexture) {
		return nil, false
	}
	return &DepthTexture{c: e.Common}, true
}

// ===== Anisotropic filtering =====

// TextureFilterAnisotropic exposes GL_EXT_texture_filter_anisotropic.
type TextureFilterAnisotropic struct {
	c   *Common
	max float32
}

// MaximumAnisotropy returns the largest supported anisotropy.
func (a *TextureFilterAnisotropic) MaximumAnisotropy() float32 { return a.max }

// Texture2DSetAnisotropy sets the anisotropy of t, which is left bound
// to unit 0.
func (a *TextureFilterAnisotropic) Texture2DSetAnisotropy(t *Texture2D, v float32) error {
	if err := live(t, "Texture"); err != nil {
		return err
	}
	if v < 1 || v > a.max {
		return constraint.Newf("Anisotropy in range [1, %g] (got %g)", a.max, v)
	}
	a.c.drv.ActiveTexture(gl.TEXTURE0)
	a.c.drv.BindTexture(gl.TEXTURE_2D, t.id)
	a.c.drv.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, v)
	return a.c.check()
}

// TextureFilterAnisotropic returns the anisotropic filtering capability
// if the driver exposes GL_EXT_texture_filter_anisotropic.
func (c *Common) TextureFilterAnisotropic() (*TextureFilterAnisotropic, bool) {
	if !c.ext.IsVisible(ExtTextureFilterAnisotropic) {
		return nil, false
	}
	return &TextureFilterAnisotropic{c: c, max: c.cache.maxAnisotropy}, true
}
