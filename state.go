package glcheck

import (
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/constraint"
	"github.com/gogpu/glcheck/internal/glenum"
)

// isEnabled queries a capability.
func (c *Common) isEnabled(capability uint32) (bool, error) {
	on := c.drv.IsEnabled(capability)
	if err := c.check(); err != nil {
		return false, err
	}
	return on, nil
}

// ===== Blending =====

// BlendingEnable enables blending with the same factors for color and
// alpha and additive blending.
func (c *Common) BlendingEnable(src, dst gputypes.BlendFactor) error {
	return c.BlendingEnableSeparateWithEquationSeparate(src, src, dst, dst,
		gputypes.BlendOperationAdd, gputypes.BlendOperationAdd)
}

// BlendingEnableSeparate enables blending with separate color and alpha
// factors.
func (c *Common) BlendingEnableSeparate(srcRGB, srcAlpha, dstRGB, dstAlpha gputypes.BlendFactor) error {
	return c.BlendingEnableSeparateWithEquationSeparate(srcRGB, srcAlpha, dstRGB, dstAlpha,
		gputypes.BlendOperationAdd, gputypes.BlendOperationAdd)
}

// BlendingEnableWithEquation enables blending with one equation for color
// and alpha.
func (c *Common) BlendingEnableWithEquation(src, dst gputypes.BlendFactor, eq gputypes.BlendOperation) error {
	return c.BlendingEnableSeparateWithEquationSeparate(src, src, dst, dst, eq, eq)
}

// BlendingEnableSeparateWithEquationSeparate enables blending with
// separate factors and equations. SrcAlphaSaturated is only valid as a
// source factor. Min and Max need a Modern context.
func (c *Common) BlendingEnableSeparateWithEquationSeparate(
	srcRGB, srcAlpha, dstRGB, dstAlpha gputypes.BlendFactor,
	eqRGB, eqAlpha gputypes.BlendOperation,
) error {
	if err := constraint.First(
		constraint.Check(dstRGB != gputypes.BlendFactorSrcAlphaSaturated, "Destination RGB factor not SOURCE_ALPHA_SATURATE"),
		constraint.Check(dstAlpha != gputypes.BlendFactorSrcAlphaSaturated, "Destination alpha factor not SOURCE_ALPHA_SATURATE"),
	); err != nil {
		return err
	}
	var factors [4]uint32
	for i, f := range [...]gputypes.BlendFactor{srcRGB, dstRGB, srcAlpha, dstAlpha} {
		n, ok := blendFactors.toNative(f)
		if !ok {
			return constraint.Newf("Blend factor %s is valid", f)
		}
		factors[i] = n
	}
	var equations [2]uint32
	for i, eq := range [...]gputypes.BlendOperation{eqRGB, eqAlpha} {
		if (eq == gputypes.BlendOperationMin || eq == gputypes.BlendOperationMax) && !c.backend.blendMinMax() {
			return constraint.Newf("Blend equation %s is supported by %s", eq, c.version)
		}
		n, ok := blendOperations.toNative(eq)
		if !ok {
			return constraint.Newf("Blend equation %s is valid", eq)
		}
		equations[i] = n
	}

	c.drv.Enable(gl.BLEND)
	c.drv.BlendEquationSeparate(equations[0], equations[1])
	c.drv.BlendFuncSeparate(factors[0], factors[1], factors[2], factors[3])
	return c.check()
}

// BlendingDisable disables blending.
func (c *Common) BlendingDisable() error {
	c.drv.Disable(gl.BLEND)
	return c.check()
}

// BlendingIsEnabled reports whether blending is enabled.
func (c *Common) BlendingIsEnabled() (bool, error) { return c.isEnabled(gl.BLEND) }

// ===== Culling =====

// CullingEnable discards faces with the given winding order.
func (c *Common) CullingEnable(faces FaceSelection, order gputypes.FrontFace) error {
	face, ok := faceSelections.toNative(faces)
	if !ok {
		return constraint.Newf("Face selection %s is valid", faces)
	}
	front, ok := frontFaces.toNative(order)
	if !ok {
		return constraint.Newf("Front face %s is valid", order)
	}
	c.drv.Enable(gl.CULL_FACE)
	c.drv.CullFace(face)
	c.drv.FrontFace(front)
	return c.check()
}

// CullingDisable disables face culling.
func (c *Common) CullingDisable() error {
	c.drv.Disable(gl.CULL_FACE)
	return c.check()
}

// CullingIsEnabled reports whether face culling is enabled.
func (c *Common) CullingIsEnabled() (bool, error) { return c.isEnabled(gl.CULL_FACE) }

// ===== Color buffer =====

// ColorBufferClear4f clears the color buffer.
func (c *Common) ColorBufferClear4f(r, g, b, a float32) error {
	c.drv.ClearColor(r, g, b, a)
	c.drv.Clear(gl.COLOR_BUFFER_BIT)
	return c.check()
}

// ColorBufferClear3f clears the color buffer to an opaque color.
func (c *Common) ColorBufferClear3f(r, g, b float32) error {
	return c.ColorBufferClear4f(r, g, b, 1)
}

// ColorBufferMask selects the channels that rendering writes.
func (c *Common) ColorBufferMask(r, g, b, a bool) error {
	c.drv.ColorMask(r, g, b, a)
	return c.check()
}

// ColorBufferMaskStatus returns the red, green, blue and alpha write
// mask.
func (c *Common) ColorBufferMaskStatus() ([4]bool, error) {
	m, err := c.queryBools(glenum.COLOR_WRITEMASK, 4)
	if err != nil {
		return [4]bool{}, err
	}
	return [4]bool(m), nil
}

// ===== Depth buffer =====

// DepthBufferGetBits returns the depth bits of the current draw
// framebuffer. Zero means there is no depth buffer.
func (c *Common) DepthBufferGetBits() (int, error) {
	return c.backend.depthBits(c)
}

func (c *Common) requireDepth() error {
	bits, err := c.DepthBufferGetBits()
	if err != nil {
		return err
	}
	return constraint.Check(bits > 0, "Depth buffer present")
}

// DepthBufferTestEnable enables depth testing with fn.
func (c *Common) DepthBufferTestEnable(fn gputypes.CompareFunction) error {
	if err := c.requireDepth(); err != nil {
		return err
	}
	n, ok := compareFunctions.toNative(fn)
	if !ok {
		return constraint.Newf("Depth function %s is valid", fn)
	}
	c.drv.Enable(gl.DEPTH_TEST)
	c.drv.DepthFunc(n)
	return c.check()
}

// DepthBufferTestDisable disables depth testing.
func (c *Common) DepthBufferTestDisable() error {
	if err := c.requireDepth(); err != nil {
		return err
	}
	c.drv.Disable(gl.DEPTH_TEST)
	return c.check()
}

// DepthBufferTestIsEnabled reports whether depth testing is enabled.
func (c *Common) DepthBufferTestIsEnabled() (bool, error) {
	if err := c.requireDepth(); err != nil {
		return false, err
	}
	return c.isEnabled(gl.DEPTH_TEST)
}

// DepthBufferWriteEnable enables depth writes.
func (c *Common) DepthBufferWriteEnable() error {
	if err := c.requireDepth(); err != nil {
		return err
	}
	c.drv.DepthMask(true)
	return c.check()
}

// DepthBufferWriteDisable disables depth writes.
func (c *Common) DepthBufferWriteDisable() error {
	if err := c.requireDepth(); err != nil {
		return err
	}
	c.drv.DepthMask(false)
	return c.check()
}

// DepthBufferWriteIsEnabled reports whether depth writes are enabled.
func (c *Common) DepthBufferWriteIsEnabled() (bool, error) {
	if err := c.requireDepth(); err != nil {
		return false, err
	}
	m, err := c.queryBools(glenum.DEPTH_WRITEMASK, 1)
	if err != nil {
		return false, err
	}
	return m[0], nil
}

// DepthBufferClear clears the depth buffer to depth.
func (c *Common) DepthBufferClear(depth float32) error {
	if err := c.requireDepth(); err != nil {
		return err
	}
	c.drv.ClearDepthf(depth)
	c.drv.Clear(gl.DEPTH_BUFFER_BIT)
	return c.check()
}

// ===== Stencil buffer =====

// StencilBufferGetBits returns the stencil bits of the current draw
// framebuffer. Zero means there is no stencil buffer.
func (c *Common) StencilBufferGetBits() (int, error) {
	return c.backend.stencilBits(c)
}

func (c *Common) requireStencil() error {
	bits, err := c.StencilBufferGetBits()
	if err != nil {
		return err
	}
	return constraint.Check(bits > 0, "Stencil buffer present")
}

// StencilBufferEnable enables stencil testing.
func (c *Common) StencilBufferEnable() error {
	if err := c.requireStencil(); err != nil {
		return err
	}
	c.drv.Enable(gl.STENCIL_TEST)
	return c.check()
}

// StencilBufferDisable disables stencil testing.
func (c *Common) StencilBufferDisable() error {
	if err := c.requireStencil(); err != nil {
		return err
	}
	c.drv.Disable(gl.STENCIL_TEST)
	return c.check()
}

// StencilBufferIsEnabled reports whether stencil testing is enabled.
func (c *Common) StencilBufferIsEnabled() (bool, error) {
	if err := c.requireStencil(); err != nil {
		return false, err
	}
	return c.isEnabled(gl.STENCIL_TEST)
}

// StencilBufferClear clears the stencil buffer to s.
func (c *Common) StencilBufferClear(s int32) error {
	if err := c.requireStencil(); err != nil {
		return err
	}
	c.drv.ClearStencil(s)
	c.drv.Clear(gl.STENCIL_BUFFER_BIT)
	return c.check()
}

// StencilBufferFunction sets the stencil test for faces.
func (c *Common) StencilBufferFunction(faces FaceSelection, fn gputypes.CompareFunction, ref int32, mask uint32) error {
	if err := c.requireStencil(); err != nil {
		return err
	}
	face, ok := faceSelections.toNative(faces)
	if !ok {
		return constraint.Newf("Face selection %s is valid", faces)
	}
	n, ok := compareFunctions.toNative(fn)
	if !ok {
		return constraint.Newf("Stencil function %s is valid", fn)
	}
	c.drv.StencilFuncSeparate(face, n, ref, mask)
	return c.check()
}

// StencilBufferMask sets the stencil write mask for faces.
func (c *Common) StencilBufferMask(faces FaceSelection, mask uint32) error {
	if err := c.requireStencil(); err != nil {
		return err
	}
	face, ok := faceSelections.toNative(faces)
	if !ok {
		return constraint.Newf("Face selection %s is valid", faces)
	}
	c.drv.StencilMaskSeparate(face, mask)
	return c.check()
}

// StencilBufferOperation sets the actions taken when the stencil test
// fails, the depth test fails, and both pass.
func (c *Common) StencilBufferOperation(faces FaceSelection, sfail, dpfail, dppass gputypes.StencilOperation) error {
	if err := c.requireStencil(); err != nil {
		return err
	}
	face, ok := faceSelections.toNative(faces)
	if !ok {
		return constraint.Newf("Face selection %s is valid", faces)
	}
	var ops [3]uint32
	for i, op := range [...]gputypes.StencilOperation{sfail, dpfail, dppass} {
		n, ok := stencilOperations.toNative(op)
		if !ok {
			return constraint.Newf("Stencil operation %s is valid", op)
		}
		ops[i] = n
	}
	c.drv.StencilOpSeparate(face, ops[0], ops[1], ops[2])
	return c.check()
}

// ===== Scissor and viewport =====

// ScissorEnable restricts rendering to the given rectangle.
func (c *Common) ScissorEnable(x, y, width, height int) error {
	if err := constraint.First(
		constraint.InRange(width, 1, math.MaxInt32, "Scissor width"),
		constraint.InRange(height, 1, math.MaxInt32, "Scissor height"),
	); err != nil {
		return err
	}
	c.drv.Enable(gl.SCISSOR_TEST)
	c.drv.Scissor(int32(x), int32(y), int32(width), int32(height))
	return c.check()
}

// ScissorDisable disables the scissor test.
func (c *Common) ScissorDisable() error {
	c.drv.Disable(gl.SCISSOR_TEST)
	return c.check()
}

// ScissorIsEnabled reports whether the scissor test is enabled.
func (c *Common) ScissorIsEnabled() (bool, error) { return c.isEnabled(gl.SCISSOR_TEST) }

// ViewportSet maps normalized device coordinates to the given rectangle.
func (c *Common) ViewportSet(x, y, width, height int) error {
	if err := constraint.First(
		constraint.InRange(width, 0, math.MaxInt32, "Viewport width"),
		constraint.InRange(height, 0, math.MaxInt32, "Viewport height"),
	); err != nil {
		return err
	}
	c.drv.Viewport(int32(x), int32(y), int32(width), int32(height))
	return c.check()
}

// ===== Lines and polygons =====

// LineSetWidth sets the rasterized line width. The width must be inside
// the aliased line width range of the context.
func (c *Common) LineSetWidth(width float32) error {
	r := c.cache.aliasedLineWidth
	if width < r[0] || width > r[1] {
		return constraint.Newf("Line width in range [%g, %g] (got %g)", r[0], r[1], width)
	}
	c.drv.LineWidth(width)
	return c.check()
}

// PolygonSetMode sets how front and back facing polygons are rasterized.
func (e *Extended) PolygonSetMode(mode PolygonMode) error {
	n, ok := polygonModes.toNative(mode)
	if !ok {
		return constraint.Newf("Polygon mode %s is valid", mode)
	}
	e.drv.PolygonMode(gl.FRONT_AND_BACK, n)
	if err := e.check(); err != nil {
		return err
	}
	e.cache.polygonMode = mode
	return nil
}

// PolygonGetMode returns the last mode set by PolygonSetMode.
func (e *Extended) PolygonGetMode() PolygonMode { return e.cache.polygonMode }
