package fake

import (
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/glenum"
)

func validBlendFactor(f uint32) bool {
	switch f {
	case gl.ZERO, gl.ONE,
		gl.SRC_COLOR, gl.ONE_MINUS_SRC_COLOR, gl.DST_COLOR, gl.ONE_MINUS_DST_COLOR,
		gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.DST_ALPHA, gl.ONE_MINUS_DST_ALPHA,
		gl.CONSTANT_COLOR, gl.ONE_MINUS_CONSTANT_COLOR, gl.CONSTANT_ALPHA, gl.ONE_MINUS_CONSTANT_ALPHA,
		gl.SRC_ALPHA_SATURATE:
		return true
	}
	return false
}

func (d *Driver) validBlendEquation(e uint32) bool {
	switch e {
	case gl.FUNC_ADD, gl.FUNC_SUBTRACT, gl.FUNC_REVERSE_SUBTRACT:
		return true
	case gl.MIN, gl.MAX:
		return !d.es2() || d.exts.Contains("GL_EXT_blend_minmax")
	}
	return false
}

func validCompare(fn uint32) bool {
	switch fn {
	case gl.NEVER, gl.LESS, gl.EQUAL, gl.LEQUAL, gl.GREATER, gl.NOTEQUAL, gl.GEQUAL, gl.ALWAYS:
		return true
	}
	return false
}

func validStencilOp(op uint32) bool {
	switch op {
	case gl.KEEP, gl.ZERO, gl.REPLACE, gl.INCR, gl.DECR, gl.INVERT, gl.INCR_WRAP, gl.DECR_WRAP:
		return true
	}
	return false
}

func validFace(face uint32) bool {
	return face == gl.FRONT || face == gl.BACK || face == gl.FRONT_AND_BACK
}

// faces returns the stencil state indices selected by face.
func faces(face uint32) []int {
	switch face {
	case gl.FRONT:
		return []int{0}
	case gl.BACK:
		return []int{1}
	}
	return []int{0, 1}
}

// BlendState returns srcRGB, dstRGB, srcAlpha, dstAlpha, equationRGB and
// equationAlpha in that order.
func (d *Driver) BlendState() [6]uint32 { return d.blend }

// StencilState returns the function, operations, reference and masks
// for the front (back == false) or back face.
func (d *Driver) StencilState(back bool) (fn, sfail, dpfail, dppass uint32, ref int32, valueMask, writeMask uint32) {
	s := d.stencil[0]
	if back {
		s = d.stencil[1]
	}
	return s.fn, s.sfail, s.dpfail, s.dppass, s.ref, s.valueMask, s.writeMask
}

// Culling returns the cull face and front face modes.
func (d *Driver) Culling() (face, front uint32) { return d.cullFace, d.frontFace }

// DepthFunction returns the depth comparison function.
func (d *Driver) DepthFunction() uint32 { return d.depthFunc }

// ClearValues returns the color, depth and stencil clear values.
func (d *Driver) ClearValues() ([4]float32, float32, int32) {
	return d.clearColor, d.clearDepth, d.clearStencil
}

// ScissorBox returns the scissor box as x, y, width, height.
func (d *Driver) ScissorBox() [4]int32 { return d.scissor }

// ViewportBox returns the viewport as x, y, width, height.
func (d *Driver) ViewportBox() [4]int32 { return d.viewport }

// BlendFuncSeparate implements native.Raster.
func (d *Driver) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	d.record("BlendFuncSeparate")
	for _, f := range []uint32{srcRGB, dstRGB, srcAlpha, dstAlpha} {
		if !validBlendFactor(f) {
			d.setError(gl.INVALID_ENUM)
			return
		}
	}
	d.blend[0], d.blend[1], d.blend[2], d.blend[3] = srcRGB, dstRGB, srcAlpha, dstAlpha
}

// BlendEquationSeparate implements native.Raster. MIN and MAX need
// GL_EXT_blend_minmax on OpenGL ES 2.
func (d *Driver) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	d.record("BlendEquationSeparate")
	if !d.validBlendEquation(modeRGB) || !d.validBlendEquation(modeAlpha) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	d.blend[4], d.blend[5] = modeRGB, modeAlpha
}

// CullFace implements native.Raster.
func (d *Driver) CullFace(face uint32) {
	d.record("CullFace")
	if !validFace(face) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	d.cullFace = face
}

// FrontFace implements native.Raster.
func (d *Driver) FrontFace(mode uint32) {
	d.record("FrontFace")
	if mode != gl.CW && mode != gl.CCW {
		d.setError(gl.INVALID_ENUM)
		return
	}
	d.frontFace = mode
}

// DepthFunc implements native.Raster.
func (d *Driver) DepthFunc(fn uint32) {
	d.record("DepthFunc")
	if !validCompare(fn) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	d.depthFunc = fn
}

// DepthMask implements native.Raster.
func (d *Driver) DepthMask(flag bool) {
	d.record("DepthMask")
	d.depthMask = flag
}

// ColorMask implements native.Raster.
func (d *Driver) ColorMask(r, g, b, a bool) {
	d.record("ColorMask")
	d.colorMask = [4]bool{r, g, b, a}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

// ClearColor implements native.Raster.
func (d *Driver) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
	d.clearColor = [4]float32{clamp01(r), clamp01(g), clamp01(b), clamp01(a)}
}

// ClearDepthf implements native.Raster.
func (d *Driver) ClearDepthf(depth float32) {
	d.record("ClearDepthf")
	d.clearDepth = clamp01(depth)
}

// ClearStencil implements native.Raster.
func (d *Driver) ClearStencil(s int32) {
	d.record("ClearStencil")
	d.clearStencil = s
}

// Clear implements native.Raster. Clearing an incomplete framebuffer
// raises INVALID_FRAMEBUFFER_OPERATION.
func (d *Driver) Clear(mask uint32) {
	d.record("Clear")
	if mask&^uint32(gl.COLOR_BUFFER_BIT|gl.DEPTH_BUFFER_BIT|gl.STENCIL_BUFFER_BIT) != 0 {
		d.setError(gl.INVALID_VALUE)
		return
	}
	if d.status() != gl.FRAMEBUFFER_COMPLETE {
		d.setError(gl.INVALID_FRAMEBUFFER_OPERATION)
		return
	}
	d.clears++
}

// StencilFuncSeparate implements native.Raster.
func (d *Driver) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	d.record("StencilFuncSeparate")
	if !validFace(face) || !validCompare(fn) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	for _, i := range faces(face) {
		d.stencil[i].fn, d.stencil[i].ref, d.stencil[i].valueMask = fn, ref, mask
	}
}

// StencilOpSeparate implements native.Raster.
func (d *Driver) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	d.record("StencilOpSeparate")
	if !validFace(face) || !validStencilOp(sfail) || !validStencilOp(dpfail) || !validStencilOp(dppass) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	for _, i := range faces(face) {
		d.stencil[i].sfail, d.stencil[i].dpfail, d.stencil[i].dppass = sfail, dpfail, dppass
	}
}

// StencilMaskSeparate implements native.Raster.
func (d *Driver) StencilMaskSeparate(face, mask uint32) {
	d.record("StencilMaskSeparate")
	if !validFace(face) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	for _, i := range faces(face) {
		d.stencil[i].writeMask = mask
	}
}

// Scissor implements native.Raster.
func (d *Driver) Scissor(x, y, width, height int32) {
	d.record("Scissor")
	if width < 0 || height < 0 {
		d.setError(gl.INVALID_VALUE)
		return
	}
	d.scissor = [4]int32{x, y, width, height}
}

// Viewport implements native.Raster.
func (d *Driver) Viewport(x, y, width, height int32) {
	d.record("Viewport")
	if width < 0 || height < 0 {
		d.setError(gl.INVALID_VALUE)
		return
	}
	d.viewport = [4]int32{x, y, width, height}
}

// LineWidth implements native.Raster. Core profiles reject wide lines.
func (d *Driver) LineWidth(width float32) {
	d.record("LineWidth")
	if width <= 0 {
		d.setError(gl.INVALID_VALUE)
		return
	}
	if d.core() && width > 1 && d.profile.AliasedLineWidth[1] <= 1 {
		d.setError(gl.INVALID_VALUE)
		return
	}
	d.lineWidth = width
}

// PolygonMode implements native.Raster. OpenGL ES has no polygon modes,
// and core profiles only accept FRONT_AND_BACK.
func (d *Driver) PolygonMode(face, mode uint32) {
	d.record("PolygonMode")
	if d.es {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	if !validFace(face) || (d.core() && face != gl.FRONT_AND_BACK) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	switch mode {
	case glenum.POINT, glenum.LINE, glenum.FILL:
	default:
		d.setError(gl.INVALID_ENUM)
		return
	}
	d.polygonMode = mode
}

func indexSize(typ uint32) int {
	switch typ {
	case gl.UNSIGNED_BYTE:
		return 1
	case gl.UNSIGNED_SHORT:
		return 2
	case gl.UNSIGNED_INT:
		return 4
	}
	return 0
}

// DrawElements implements native.Raster. It validates the draw against
// the element buffer, the current program and the framebuffer.
func (d *Driver) DrawElements(mode uint32, count int32, typ uint32, offset int) {
	d.record("DrawElements")
	switch mode {
	case gl.POINTS, gl.LINES, gl.LINE_LOOP, gl.LINE_STRIP, gl.TRIANGLES, gl.TRIANGLE_STRIP, gl.TRIANGLE_FAN:
	default:
		d.setError(gl.INVALID_ENUM)
		return
	}
	size := indexSize(typ)
	if size == 0 || (typ == gl.UNSIGNED_INT && d.es2() && !d.exts.Contains("GL_OES_element_index_uint")) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	if count < 0 || offset < 0 {
		d.setError(gl.INVALID_VALUE)
		return
	}
	if d.status() != gl.FRAMEBUFFER_COMPLETE {
		d.setError(gl.INVALID_FRAMEBUFFER_OPERATION)
		return
	}
	b, ok := d.buffers[d.elementBuffer]
	if d.elementBuffer == 0 || !ok || b.mapped || offset+int(count)*size > len(b.data) {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	for _, a := range d.attribs {
		if !a.enabled {
			continue
		}
		if vb, ok := d.buffers[a.buffer]; !ok || vb.mapped {
			d.setError(gl.INVALID_OPERATION)
			return
		}
	}
	if d.current == 0 {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	d.draws++
}
