package glcheck

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/constraint"
	"github.com/gogpu/glcheck/internal/glenum"
)

// Texture2DDescriptor describes a 2D texture. A MipmapFilter other than
// MipmapFilterModeUndefined builds a mipmap chain on every upload.
type Texture2DDescriptor struct {
	Width, Height int
	Format        gputypes.TextureFormat
	WrapS, WrapT  gputypes.AddressMode
	MinFilter     gputypes.FilterMode
	MipmapFilter  gputypes.MipmapFilterMode
	MagFilter     gputypes.FilterMode
}

// TextureCubeDescriptor describes a cube texture with square faces of
// Size texels.
type TextureCubeDescriptor struct {
	Size                int
	Format              gputypes.TextureFormat
	WrapR, WrapS, WrapT gputypes.AddressMode
	MinFilter           gputypes.FilterMode
	MipmapFilter        gputypes.MipmapFilterMode
	MagFilter           gputypes.FilterMode
}

// sampling holds the native sampler parameters of a descriptor.
type sampling struct {
	wrap      []uint32 // S, T and for cubes R
	minFilter uint32
	magFilter uint32
}

func convertSampling(wraps []gputypes.AddressMode, minF gputypes.FilterMode, mip gputypes.MipmapFilterMode, magF gputypes.FilterMode) (sampling, error) {
	var s sampling
	for _, w := range wraps {
		n, ok := addressModes.toNative(w)
		if !ok {
			return sampling{}, constraint.Newf("Wrap mode %s is valid", w)
		}
		s.wrap = append(s.wrap, n)
	}
	var ok bool
	if s.minFilter, ok = minFilters.toNative(minFilter{minF, mip}); !ok {
		return sampling{}, constraint.Newf("Minification filter %s/%s is valid", minF, mip)
	}
	if s.magFilter, ok = magFilters.toNative(magF); !ok {
		return sampling{}, constraint.Newf("Magnification filter %s is valid", magF)
	}
	return s, nil
}

var wrapParams = []uint32{gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T, gl.TEXTURE_WRAP_R}

func (c *Common) applySampling(target uint32, s sampling) {
	for i, w := range s.wrap {
		c.drv.TexParameteri(target, wrapParams[i], int32(w))
	}
	c.drv.TexParameteri(target, gl.TEXTURE_MIN_FILTER, int32(s.minFilter))
	c.drv.TexParameteri(target, gl.TEXTURE_MAG_FILTER, int32(s.magFilter))
}

func (c *Common) checkUnit(unit TextureUnit) error {
	return constraint.InRange(int(unit), 0, len(c.cache.units)-1, "Texture unit")
}

func (c *Common) textureSpecFor(f gputypes.TextureFormat) (textureSpec, error) {
	s, ok := c.backend.textureFormat(f)
	if !ok {
		return textureSpec{}, constraint.Newf("Texture format %s is supported by %s", f, c.version)
	}
	return s, nil
}

// ===== 2D textures =====

// Texture2DAllocate creates a 2D texture with undefined contents. The
// texture is left bound to unit 0.
//
// On OpenGL ES 2, depth formats are only available through the
// DepthTexture capability.
func (c *Common) Texture2DAllocate(desc Texture2DDescriptor) (*Texture2D, error) {
	if textureRole(desc.Format) != RoleColor && c.version.Tier == TierEmbedded && c.version.Major < 3 {
		return nil, constraint.Newf("Texture format %s is a color format", desc.Format)
	}
	return c.texture2DAllocate(desc)
}

func (c *Common) texture2DAllocate(desc Texture2DDescriptor) (*Texture2D, error) {
	if err := constraint.First(
		constraint.InRange(desc.Width, 1, c.cache.maxTextureSize, "Texture width"),
		constraint.InRange(desc.Height, 1, c.cache.maxTextureSize, "Texture height"),
	); err != nil {
		return nil, err
	}
	spec, err := c.textureSpecFor(desc.Format)
	if err != nil {
		return nil, err
	}
	s, err := convertSampling([]gputypes.AddressMode{desc.WrapS, desc.WrapT}, desc.MinFilter, desc.MipmapFilter, desc.MagFilter)
	if err != nil {
		return nil, err
	}

	t := &Texture2D{
		width:     desc.Width,
		height:    desc.Height,
		format:    desc.Format,
		spec:      spec,
		mipmapped: desc.MipmapFilter != gputypes.MipmapFilterModeUndefined,
	}
	t.id = c.drv.GenTexture()
	c.drv.ActiveTexture(gl.TEXTURE0)
	c.drv.BindTexture(gl.TEXTURE_2D, t.id)
	c.applySampling(gl.TEXTURE_2D, s)
	c.drv.TexImage2D(gl.TEXTURE_2D, 0, spec.internal, int32(t.width), int32(t.height), spec.format, spec.typ, nil)
	if t.mipmapped {
		c.drv.GenerateMipmap(gl.TEXTURE_2D)
	}
	if err := c.check(); err != nil {
		c.drv.DeleteTexture(t.id)
		return nil, err
	}
	if c.debugEnabled() {
		c.log.Debug("glcheck: texture allocated",
			"id", t.id, "width", t.width, "height", t.height, "format", t.format.String())
	}
	return t, nil
}

// Texture2DBind binds t to unit.
func (c *Common) Texture2DBind(unit TextureUnit, t *Texture2D) error {
	if err := constraint.First(c.checkUnit(unit), live(t, "Texture")); err != nil {
		return err
	}
	c.drv.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	c.drv.BindTexture(gl.TEXTURE_2D, t.id)
	return c.check()
}

// Texture2DIsBound reports whether t is bound to unit.
func (c *Common) Texture2DIsBound(unit TextureUnit, t *Texture2D) (bool, error) {
	if err := constraint.First(c.checkUnit(unit), live(t, "Texture")); err != nil {
		return false, err
	}
	id, err := c.unitBinding(unit, glenum.TEXTURE_BINDING_2D)
	if err != nil {
		return false, err
	}
	return id == t.id, nil
}

// unitBinding queries pname on unit and leaves the active unit as it
// was.
func (c *Common) unitBinding(unit TextureUnit, pname uint32) (uint32, error) {
	prev, err := c.queryInt(glenum.ACTIVE_TEXTURE)
	if err != nil {
		return 0, err
	}
	c.drv.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	id, err := c.queryInt(pname)
	c.drv.ActiveTexture(uint32(prev))
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}

// Texture2DUnbind clears the 2D binding of unit.
func (c *Common) Texture2DUnbind(unit TextureUnit) error {
	if err := c.checkUnit(unit); err != nil {
		return err
	}
	c.drv.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	c.drv.BindTexture(gl.TEXTURE_2D, 0)
	return c.check()
}

// Texture2DUpdate replaces the whole image of t. data holds rows of
// texels bottom to top with no padding. The texture is left bound to
// unit 0.
func (c *Common) Texture2DUpdate(t *Texture2D, data []byte) error {
	if err := live(t, "Texture"); err != nil {
		return err
	}
	return c.Texture2DUpdateRegion(t, image.Rect(0, 0, t.width, t.height), data)
}

// Texture2DUpdateRegion replaces the texels of t inside area.
func (c *Common) Texture2DUpdateRegion(t *Texture2D, area image.Rectangle, data []byte) error {
	if err := live(t, "Texture"); err != nil {
		return err
	}
	if err := constraint.Check(!area.Empty() && area.In(image.Rect(0, 0, t.width, t.height)),
		"Update area is within the texture"); err != nil {
		return err
	}
	want := area.Dx() * area.Dy() * t.spec.bytes
	if err := constraint.Check(len(data) == want, "Data size matches update area"); err != nil {
		return err
	}
	c.drv.ActiveTexture(gl.TEXTURE0)
	c.drv.BindTexture(gl.TEXTURE_2D, t.id)
	c.drv.TexSubImage2D(gl.TEXTURE_2D, 0,
		int32(area.Min.X), int32(area.Min.Y), int32(area.Dx()), int32(area.Dy()),
		t.spec.format, t.spec.typ, data)
	if t.mipmapped {
		c.drv.GenerateMipmap(gl.TEXTURE_2D)
	}
	return c.check()
}

// Texture2DDelete deletes t.
func (c *Common) Texture2DDelete(t *Texture2D) error {
	if err := live(t, "Texture"); err != nil {
		return err
	}
	c.drv.DeleteTexture(t.id)
	t.markDeleted()
	if c.debugEnabled() {
		c.log.Debug("glcheck: texture deleted", "id", t.id)
	}
	return c.check()
}

// ===== Cube textures =====

// TextureCubeAllocate creates a cube texture. Only color formats are
// accepted. The texture is left bound to unit 0.
func (c *Common) TextureCubeAllocate(desc TextureCubeDescriptor) (*TextureCube, error) {
	if err := constraint.First(
		constraint.InRange(desc.Size, 1, c.cache.maxTextureSize, "Texture size"),
		constraint.Check(textureRole(desc.Format) == RoleColor, "Cube texture format is a color format"),
	); err != nil {
		return nil, err
	}
	spec, err := c.textureSpecFor(desc.Format)
	if err != nil {
		return nil, err
	}
	s, err := convertSampling([]gputypes.AddressMode{desc.WrapS, desc.WrapT, desc.WrapR}, desc.MinFilter, desc.MipmapFilter, desc.MagFilter)
	if err != nil {
		return nil, err
	}

	t := &TextureCube{
		size:      desc.Size,
		format:    desc.Format,
		spec:      spec,
		mipmapped: desc.MipmapFilter != gputypes.MipmapFilterModeUndefined,
	}
	t.id = c.drv.GenTexture()
	c.drv.ActiveTexture(gl.TEXTURE0)
	c.drv.BindTexture(gl.TEXTURE_CUBE_MAP, t.id)
	c.applySampling(gl.TEXTURE_CUBE_MAP, s)
	for _, face := range CubeMapFaces() {
		target, _ := cubeMapFaces.toNative(face)
		c.drv.TexImage2D(target, 0, spec.internal, int32(t.size), int32(t.size), spec.format, spec.typ, nil)
	}
	if t.mipmapped {
		c.drv.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	}
	if err := c.check(); err != nil {
		c.drv.DeleteTexture(t.id)
		return nil, err
	}
	if c.debugEnabled() {
		c.log.Debug("glcheck: cube texture allocated", "id", t.id, "size", t.size, "format", t.format.String())
	}
	return t, nil
}

// TextureCubeBind binds t to unit.
func (c *Common) TextureCubeBind(unit TextureUnit, t *TextureCube) error {
	if err := constraint.First(c.checkUnit(unit), live(t, "Texture")); err != nil {
		return err
	}
	c.drv.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	c.drv.BindTexture(gl.TEXTURE_CUBE_MAP, t.id)
	return c.check()
}

// TextureCubeIsBound reports whether t is bound to unit.
func (c *Common) TextureCubeIsBound(unit TextureUnit, t *TextureCube) (bool, error) {
	if err := constraint.First(c.checkUnit(unit), live(t, "Texture")); err != nil {
		return false, err
	}
	id, err := c.unitBinding(unit, glenum.TEXTURE_BINDING_CUBE_MAP)
	if err != nil {
		return false, err
	}
	return id == t.id, nil
}

// TextureCubeUnbind clears the cube binding of unit.
func (c *Common) TextureCubeUnbind(unit TextureUnit) error {
	if err := c.checkUnit(unit); err != nil {
		return err
	}
	c.drv.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	c.drv.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return c.check()
}

// TextureCubeUpdate replaces the image of one face of t.
func (c *Common) TextureCubeUpdate(t *TextureCube, face CubeMapFace, data []byte) error {
	if err := live(t, "Texture"); err != nil {
		return err
	}
	target, ok := cubeMapFaces.toNative(face)
	if !ok {
		return constraint.Newf("Cube face %s is valid", face)
	}
	if err := constraint.Check(len(data) == t.size*t.size*t.spec.bytes, "Data size matches face"); err != nil {
		return err
	}
	c.drv.ActiveTexture(gl.TEXTURE0)
	c.drv.BindTexture(gl.TEXTURE_CUBE_MAP, t.id)
	c.drv.TexSubImage2D(target, 0, 0, 0, int32(t.size), int32(t.size), t.spec.format, t.spec.typ, data)
	if t.mipmapped {
		c.drv.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	}
	return c.check()
}

// TextureCubeDelete deletes t.
func (c *Common) TextureCubeDelete(t *TextureCube) error {
	if err := live(t, "Texture"); err != nil {
		return err
	}
	c.drv.DeleteTexture(t.id)
	t.markDeleted()
	return c.check()
}
