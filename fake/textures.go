package fake

import (
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/glenum"
)

type texImage struct {
	width, height int32
	internal      int32
	format, typ   uint32
	data          []byte
}

type texture struct {
	target   uint32
	images   map[uint32]*texImage
	params   map[uint32]float32
	mipmaps  bool
	deleted  bool
}

// pixelFormat describes one accepted (internal, format, type) triple.
type pixelFormat struct {
	internal      int32
	format, typ   uint32
	bytes         int
	color         bool
	depth         int
	stencil       int
	es2           bool   // accepted by OpenGL ES 2
	es2Extension  string // required on OpenGL ES 2
	legacyDesktop bool   // accepted by OpenGL 2.1
}

var pixelFormats = []pixelFormat{
	{internal: gl.RGBA, format: gl.RGBA, typ: gl.UNSIGNED_BYTE, bytes: 4, color: true, es2: true, legacyDesktop: true},
	{internal: gl.RGB, format: gl.RGB, typ: gl.UNSIGNED_BYTE, bytes: 3, color: true, es2: true, legacyDesktop: true},
	{internal: gl.DEPTH_COMPONENT, format: gl.DEPTH_COMPONENT, typ: gl.UNSIGNED_SHORT, bytes: 2, depth: 16, es2: true, es2Extension: "GL_OES_depth_texture"},
	{internal: gl.DEPTH_COMPONENT, format: gl.DEPTH_COMPONENT, typ: gl.UNSIGNED_INT, bytes: 4, depth: 24, es2: true, es2Extension: "GL_OES_depth_texture"},
	{internal: gl.RGBA8, format: gl.RGBA, typ: gl.UNSIGNED_BYTE, bytes: 4, color: true, legacyDesktop: true},
	{internal: gl.SRGB8_ALPHA8, format: gl.RGBA, typ: gl.UNSIGNED_BYTE, bytes: 4, color: true, legacyDesktop: true},
	{internal: gl.RGB8, format: gl.RGB, typ: gl.UNSIGNED_BYTE, bytes: 3, color: true, legacyDesktop: true},
	{internal: gl.R8, format: gl.RED, typ: gl.UNSIGNED_BYTE, bytes: 1, color: true},
	{internal: gl.RG8, format: gl.RG, typ: gl.UNSIGNED_BYTE, bytes: 2, color: true},
	{internal: gl.R16F, format: gl.RED, typ: gl.HALF_FLOAT, bytes: 2, color: true},
	{internal: gl.RG16F, format: gl.RG, typ: gl.HALF_FLOAT, bytes: 4, color: true},
	{internal: gl.RGBA16F, format: gl.RGBA, typ: gl.HALF_FLOAT, bytes: 8, color: true},
	{internal: gl.R32F, format: gl.RED, typ: gl.FLOAT, bytes: 4, color: true},
	{internal: gl.RG32F, format: gl.RG, typ: gl.FLOAT, bytes: 8, color: true},
	{internal: gl.RGBA32F, format: gl.RGBA, typ: gl.FLOAT, bytes: 16, color: true},
	{internal: gl.R8UI, format: gl.RED_INTEGER, typ: gl.UNSIGNED_BYTE, bytes: 1, color: true},
	{internal: gl.RGBA8UI, format: gl.RGBA_INTEGER, typ: gl.UNSIGNED_BYTE, bytes: 4, color: true},
	{internal: gl.DEPTH_COMPONENT16, format: gl.DEPTH_COMPONENT, typ: gl.UNSIGNED_SHORT, bytes: 2, depth: 16, legacyDesktop: true},
	{internal: gl.DEPTH_COMPONENT24, format: gl.DEPTH_COMPONENT, typ: gl.UNSIGNED_INT, bytes: 4, depth: 24, legacyDesktop: true},
	{internal: glenum.DEPTH_COMPONENT32F, format: gl.DEPTH_COMPONENT, typ: gl.FLOAT, bytes: 4, depth: 32},
	{internal: gl.DEPTH24_STENCIL8, format: gl.DEPTH_STENCIL, typ: gl.UNSIGNED_INT_24_8, bytes: 4, depth: 24, stencil: 8, legacyDesktop: true},
}

func (d *Driver) lookupPixelFormat(internal int32, format, typ uint32) (pixelFormat, bool) {
	for _, f := range pixelFormats {
		if f.internal != internal || f.format != format || f.typ != typ {
			continue
		}
		switch {
		case d.es2():
			if !f.es2 || (f.es2Extension != "" && !d.exts.Contains(f.es2Extension)) {
				return pixelFormat{}, false
			}
		case !d.es && d.major < 3:
			if !f.legacyDesktop {
				return pixelFormat{}, false
			}
		}
		return f, true
	}
	return pixelFormat{}, false
}

// TextureImage returns the level 0 image of texture id at target, which
// is TEXTURE_2D or one of the cube map faces.
func (d *Driver) TextureImage(id, target uint32) (width, height int, data []byte, ok bool) {
	t, exists := d.textures[id]
	if !exists {
		return 0, 0, nil, false
	}
	img, exists := t.images[target]
	if !exists {
		return 0, 0, nil, false
	}
	return int(img.width), int(img.height), append([]byte(nil), img.data...), true
}

// TextureParameter returns a texture parameter previously set on id.
func (d *Driver) TextureParameter(id, pname uint32) (float32, bool) {
	t, exists := d.textures[id]
	if !exists {
		return 0, false
	}
	v, ok := t.params[pname]
	return v, ok
}

func isCubeFace(target uint32) bool {
	switch target {
	case gl.TEXTURE_CUBE_MAP_POSITIVE_X, gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
		gl.TEXTURE_CUBE_MAP_POSITIVE_Y, gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
		gl.TEXTURE_CUBE_MAP_POSITIVE_Z, gl.TEXTURE_CUBE_MAP_NEGATIVE_Z:
		return true
	}
	return false
}

// boundTexture returns the texture bound for target on the active unit.
// Image targets (cube faces) resolve to the cube map binding.
func (d *Driver) boundTexture(target uint32) (uint32, *texture) {
	u := &d.units[d.activeUnit]
	var id uint32
	switch {
	case target == gl.TEXTURE_2D:
		id = u.tex2D
	case target == gl.TEXTURE_CUBE_MAP || isCubeFace(target):
		id = u.cube
	default:
		d.setError(gl.INVALID_ENUM)
		return 0, nil
	}
	if id == 0 {
		d.setError(gl.INVALID_OPERATION)
		return 0, nil
	}
	return id, d.textures[id]
}

// GenTexture implements native.Textures.
func (d *Driver) GenTexture() uint32 {
	d.record("GenTexture")
	id := d.newName()
	d.textures[id] = &texture{
		images: make(map[uint32]*texImage),
		params: make(map[uint32]float32),
	}
	return id
}

// DeleteTexture implements native.Textures.
func (d *Driver) DeleteTexture(id uint32) {
	d.record("DeleteTexture")
	t, ok := d.textures[id]
	if !ok {
		return
	}
	t.deleted = true
	delete(d.textures, id)
	for i := range d.units {
		if d.units[i].tex2D == id {
			d.units[i].tex2D = 0
		}
		if d.units[i].cube == id {
			d.units[i].cube = 0
		}
	}
	if fb, ok := d.framebuffers[d.drawFB]; ok {
		fb.detach(glenum.TEXTURE, id)
	}
}

// ActiveTexture implements native.Textures.
func (d *Driver) ActiveTexture(unit uint32) {
	d.record("ActiveTexture")
	if unit < gl.TEXTURE0 || int(unit-gl.TEXTURE0) >= len(d.units) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	d.activeUnit = int(unit - gl.TEXTURE0)
}

// BindTexture implements native.Textures.
func (d *Driver) BindTexture(target, id uint32) {
	d.record("BindTexture")
	if target != gl.TEXTURE_2D && target != gl.TEXTURE_CUBE_MAP {
		d.setError(gl.INVALID_ENUM)
		return
	}
	if id != 0 {
		t, ok := d.textures[id]
		if !ok {
			d.setError(gl.INVALID_OPERATION)
			return
		}
		if t.target != 0 && t.target != target {
			d.setError(gl.INVALID_OPERATION)
			return
		}
		t.target = target
	}
	u := &d.units[d.activeUnit]
	if target == gl.TEXTURE_2D {
		u.tex2D = id
	} else {
		u.cube = id
	}
}

// TexParameteri implements native.Textures.
func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	d.record("TexParameteri")
	_, t := d.boundTexture(target)
	if t == nil {
		return
	}
	p := uint32(param)
	switch pname {
	case gl.TEXTURE_MIN_FILTER:
		switch p {
		case gl.NEAREST, gl.LINEAR, gl.NEAREST_MIPMAP_NEAREST, gl.LINEAR_MIPMAP_NEAREST,
			gl.NEAREST_MIPMAP_LINEAR, gl.LINEAR_MIPMAP_LINEAR:
		default:
			d.setError(gl.INVALID_ENUM)
			return
		}
	case gl.TEXTURE_MAG_FILTER:
		if p != gl.NEAREST && p != gl.LINEAR {
			d.setError(gl.INVALID_ENUM)
			return
		}
	case gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T, gl.TEXTURE_WRAP_R:
		if p != gl.REPEAT && p != gl.CLAMP_TO_EDGE && p != gl.MIRRORED_REPEAT {
			d.setError(gl.INVALID_ENUM)
			return
		}
	default:
		d.setError(gl.INVALID_ENUM)
		return
	}
	t.params[pname] = float32(param)
}

// TexParameterf implements native.Textures. Only the anisotropy
// parameter of GL_EXT_texture_filter_anisotropic is supported.
func (d *Driver) TexParameterf(target, pname uint32, param float32) {
	d.record("TexParameterf")
	_, t := d.boundTexture(target)
	if t == nil {
		return
	}
	if pname != gl.TEXTURE_MAX_ANISOTROPY || !d.exts.Contains("GL_EXT_texture_filter_anisotropic") {
		d.setError(gl.INVALID_ENUM)
		return
	}
	if param < 1 || param > d.profile.MaxAnisotropy {
		d.setError(gl.INVALID_VALUE)
		return
	}
	t.params[pname] = param
}

func isPowerOfTwo(v int32) bool { return v > 0 && v&(v-1) == 0 }

// TexImage2D implements native.Textures.
func (d *Driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, typ uint32, data []byte) {
	d.record("TexImage2D")
	if target != gl.TEXTURE_2D && !isCubeFace(target) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	_, t := d.boundTexture(target)
	if t == nil {
		return
	}
	maxSize := int32(d.profile.MaxTextureSize)
	if level != 0 || width < 0 || height < 0 || width > maxSize || height > maxSize {
		d.setError(gl.INVALID_VALUE)
		return
	}
	if isCubeFace(target) && width != height {
		d.setError(gl.INVALID_VALUE)
		return
	}
	pf, ok := d.lookupPixelFormat(internalFormat, format, typ)
	if !ok {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	size := int(width) * int(height) * pf.bytes
	if data != nil && len(data) < size {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	img := &texImage{
		width: width, height: height,
		internal: internalFormat, format: format, typ: typ,
		data: make([]byte, size),
	}
	copy(img.data, data)
	t.images[target] = img
	t.mipmaps = false
}

// TexSubImage2D implements native.Textures.
func (d *Driver) TexSubImage2D(target uint32, level, x, y, width, height int32, format, typ uint32, data []byte) {
	d.record("TexSubImage2D")
	if target != gl.TEXTURE_2D && !isCubeFace(target) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	_, t := d.boundTexture(target)
	if t == nil {
		return
	}
	img, ok := t.images[target]
	if !ok {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	if level != 0 || x < 0 || y < 0 || width < 0 || height < 0 ||
		x+width > img.width || y+height > img.height {
		d.setError(gl.INVALID_VALUE)
		return
	}
	if format != img.format || typ != img.typ {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	pf, _ := d.lookupPixelFormat(img.internal, img.format, img.typ)
	row := int(width) * pf.bytes
	if len(data) < row*int(height) {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	stride := int(img.width) * pf.bytes
	for r := 0; r < int(height); r++ {
		dst := (int(y)+r)*stride + int(x)*pf.bytes
		copy(img.data[dst:dst+row], data[r*row:(r+1)*row])
	}
}

// GenerateMipmap implements native.Textures. OpenGL ES 2 rejects
// non-power-of-two textures.
func (d *Driver) GenerateMipmap(target uint32) {
	d.record("GenerateMipmap")
	if target != gl.TEXTURE_2D && target != gl.TEXTURE_CUBE_MAP {
		d.setError(gl.INVALID_ENUM)
		return
	}
	_, t := d.boundTexture(target)
	if t == nil {
		return
	}
	for _, img := range t.images {
		if d.es2() && (!isPowerOfTwo(img.width) || !isPowerOfTwo(img.height)) {
			d.setError(gl.INVALID_OPERATION)
			return
		}
	}
	t.mipmaps = true
}
