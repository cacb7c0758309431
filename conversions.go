package glcheck

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/glenum"
)

// enumTable maps a domain enum onto native constants and back. Each
// table is a bijection over its domain.
type enumTable[T comparable] struct {
	name string
	to   map[T]uint32
	from map[uint32]T
}

func newEnumTable[T comparable](name string, pairs map[T]uint32) *enumTable[T] {
	t := &enumTable[T]{name: name, to: pairs, from: make(map[uint32]T, len(pairs))}
	for v, n := range pairs {
		if _, dup := t.from[n]; dup {
			panic(fmt.Sprintf("glcheck: %s: native value 0x%X mapped twice", name, n))
		}
		t.from[n] = v
	}
	return t
}

// toNative returns the native value of v, or false when v is not a
// member of the domain.
func (t *enumTable[T]) toNative(v T) (uint32, bool) {
	n, ok := t.to[v]
	return n, ok
}

// fromNative returns the domain value of n. The driver only reports
// values that were set through toNative, so an unmapped n is a bug.
func (t *enumTable[T]) fromNative(n uint32) T {
	v, ok := t.from[n]
	if !ok {
		panic(fmt.Sprintf("unreachable: %s: unmapped native value 0x%X", t.name, n))
	}
	return v
}

// values returns the domain of the table.
func (t *enumTable[T]) values() []T {
	vs := make([]T, 0, len(t.to))
	for v := range t.to {
		vs = append(vs, v)
	}
	return vs
}

var blendFactors = newEnumTable("blend factor", map[gputypes.BlendFactor]uint32{
	gputypes.BlendFactorZero:              gl.ZERO,
	gputypes.BlendFactorOne:               gl.ONE,
	gputypes.BlendFactorSrc:               gl.SRC_COLOR,
	gputypes.BlendFactorOneMinusSrc:       gl.ONE_MINUS_SRC_COLOR,
	gputypes.BlendFactorSrcAlpha:          gl.SRC_ALPHA,
	gputypes.BlendFactorOneMinusSrcAlpha:  gl.ONE_MINUS_SRC_ALPHA,
	gputypes.BlendFactorDst:               gl.DST_COLOR,
	gputypes.BlendFactorOneMinusDst:       gl.ONE_MINUS_DST_COLOR,
	gputypes.BlendFactorDstAlpha:          gl.DST_ALPHA,
	gputypes.BlendFactorOneMinusDstAlpha:  gl.ONE_MINUS_DST_ALPHA,
	gputypes.BlendFactorSrcAlphaSaturated: gl.SRC_ALPHA_SATURATE,
	gputypes.BlendFactorConstant:          gl.CONSTANT_COLOR,
	gputypes.BlendFactorOneMinusConstant:  gl.ONE_MINUS_CONSTANT_COLOR,
})

var blendOperations = newEnumTable("blend operation", map[gputypes.BlendOperation]uint32{
	gputypes.BlendOperationAdd:             gl.FUNC_ADD,
	gputypes.BlendOperationSubtract:        gl.FUNC_SUBTRACT,
	gputypes.BlendOperationReverseSubtract: gl.FUNC_REVERSE_SUBTRACT,
	gputypes.BlendOperationMin:             gl.MIN,
	gputypes.BlendOperationMax:             gl.MAX,
})

var compareFunctions = newEnumTable("compare function", map[gputypes.CompareFunction]uint32{
	gputypes.CompareFunctionNever:        gl.NEVER,
	gputypes.CompareFunctionLess:         gl.LESS,
	gputypes.CompareFunctionEqual:        gl.EQUAL,
	gputypes.CompareFunctionLessEqual:    gl.LEQUAL,
	gputypes.CompareFunctionGreater:      gl.GREATER,
	gputypes.CompareFunctionNotEqual:     gl.NOTEQUAL,
	gputypes.CompareFunctionGreaterEqual: gl.GEQUAL,
	gputypes.CompareFunctionAlways:       gl.ALWAYS,
})

var stencilOperations = newEnumTable("stencil operation", map[gputypes.StencilOperation]uint32{
	gputypes.StencilOperationKeep:           gl.KEEP,
	gputypes.StencilOperationZero:           gl.ZERO,
	gputypes.StencilOperationReplace:        gl.REPLACE,
	gputypes.StencilOperationInvert:         gl.INVERT,
	gputypes.StencilOperationIncrementClamp: gl.INCR,
	gputypes.StencilOperationDecrementClamp: gl.DECR,
	gputypes.StencilOperationIncrementWrap:  gl.INCR_WRAP,
	gputypes.StencilOperationDecrementWrap:  gl.DECR_WRAP,
})

var frontFaces = newEnumTable("front face", map[gputypes.FrontFace]uint32{
	gputypes.FrontFaceCCW: gl.CCW,
	gputypes.FrontFaceCW:  gl.CW,
})

var topologies = newEnumTable("primitive topology", map[gputypes.PrimitiveTopology]uint32{
	gputypes.PrimitiveTopologyPointList:     gl.POINTS,
	gputypes.PrimitiveTopologyLineList:      gl.LINES,
	gputypes.PrimitiveTopologyLineStrip:     gl.LINE_STRIP,
	gputypes.PrimitiveTopologyTriangleList:  gl.TRIANGLES,
	gputypes.PrimitiveTopologyTriangleStrip: gl.TRIANGLE_STRIP,
})

var addressModes = newEnumTable("address mode", map[gputypes.AddressMode]uint32{
	gputypes.AddressModeClampToEdge:   gl.CLAMP_TO_EDGE,
	gputypes.AddressModeRepeat:        gl.REPEAT,
	gputypes.AddressModeMirrorRepeat:  gl.MIRRORED_REPEAT,
})

var magFilters = newEnumTable("magnification filter", map[gputypes.FilterMode]uint32{
	gputypes.FilterModeNearest: gl.NEAREST,
	gputypes.FilterModeLinear:  gl.LINEAR,
})

// minFilter is a minification filter: the texel filter plus the filter
// between mipmap levels, where Undefined means no mipmapping.
type minFilter struct {
	texel  gputypes.FilterMode
	mipmap gputypes.MipmapFilterMode
}

var minFilters = newEnumTable("minification filter", map[minFilter]uint32{
	{gputypes.FilterModeNearest, gputypes.MipmapFilterModeUndefined}: gl.NEAREST,
	{gputypes.FilterModeLinear, gputypes.MipmapFilterModeUndefined}:  gl.LINEAR,
	{gputypes.FilterModeNearest, gputypes.MipmapFilterModeNearest}:   gl.NEAREST_MIPMAP_NEAREST,
	{gputypes.FilterModeLinear, gputypes.MipmapFilterModeNearest}:    gl.LINEAR_MIPMAP_NEAREST,
	{gputypes.FilterModeNearest, gputypes.MipmapFilterModeLinear}:    gl.NEAREST_MIPMAP_LINEAR,
	{gputypes.FilterModeLinear, gputypes.MipmapFilterModeLinear}:     gl.LINEAR_MIPMAP_LINEAR,
})

var faceSelections = newEnumTable("face selection", map[FaceSelection]uint32{
	FaceFront:        gl.FRONT,
	FaceBack:         gl.BACK,
	FaceFrontAndBack: gl.FRONT_AND_BACK,
})

var polygonModes = newEnumTable("polygon mode", map[PolygonMode]uint32{
	PolygonPoints: glenum.POINT,
	PolygonLines:  glenum.LINE,
	PolygonFill:   glenum.FILL,
})

var usageHints = newEnumTable("usage hint", map[UsageHint]uint32{
	UsageStreamDraw:  gl.STREAM_DRAW,
	UsageStreamRead:  gl.STREAM_READ,
	UsageStreamCopy:  gl.STREAM_COPY,
	UsageStaticDraw:  gl.STATIC_DRAW,
	UsageStaticRead:  gl.STATIC_READ,
	UsageStaticCopy:  gl.STATIC_COPY,
	UsageDynamicDraw: gl.DYNAMIC_DRAW,
	UsageDynamicRead: gl.DYNAMIC_READ,
	UsageDynamicCopy: gl.DYNAMIC_COPY,
})

var indexTypes = newEnumTable("index type", map[IndexType]uint32{
	IndexUnsignedByte:  gl.UNSIGNED_BYTE,
	IndexUnsignedShort: gl.UNSIGNED_SHORT,
	IndexUnsignedInt:   gl.UNSIGNED_INT,
})

var scalarTypes = newEnumTable("scalar type", map[ScalarType]uint32{
	ScalarByte:          gl.BYTE,
	ScalarUnsignedByte:  gl.UNSIGNED_BYTE,
	ScalarShort:         gl.SHORT,
	ScalarUnsignedShort: gl.UNSIGNED_SHORT,
	ScalarInt:           gl.INT,
	ScalarUnsignedInt:   gl.UNSIGNED_INT,
	ScalarFloat:         gl.FLOAT,
})

var shaderTypes = newEnumTable("shader type", map[ShaderType]uint32{
	ShaderFloat:           gl.FLOAT,
	ShaderFloatVec2:       glenum.FLOAT_VEC2,
	ShaderFloatVec3:       glenum.FLOAT_VEC3,
	ShaderFloatVec4:       glenum.FLOAT_VEC4,
	ShaderInt:             gl.INT,
	ShaderIntVec2:         glenum.INT_VEC2,
	ShaderIntVec3:         glenum.INT_VEC3,
	ShaderIntVec4:         glenum.INT_VEC4,
	ShaderBool:            glenum.BOOL,
	ShaderBoolVec2:        glenum.BOOL_VEC2,
	ShaderBoolVec3:        glenum.BOOL_VEC3,
	ShaderBoolVec4:        glenum.BOOL_VEC4,
	ShaderFloatMat2:       glenum.FLOAT_MAT2,
	ShaderFloatMat3:       glenum.FLOAT_MAT3,
	ShaderFloatMat4:       glenum.FLOAT_MAT4,
	ShaderSampler2D:       glenum.SAMPLER_2D,
	ShaderSampler3D:       glenum.SAMPLER_3D,
	ShaderSamplerCube:     glenum.SAMPLER_CUBE,
	ShaderSampler2DShadow: glenum.SAMPLER_2D_SHADOW,
})

var renderbufferFormats = newEnumTable("renderbuffer format", map[RenderbufferFormat]uint32{
	RenderbufferRGB565:          glenum.RGB565,
	RenderbufferRGB888:          gl.RGB8,
	RenderbufferRGBA4444:        glenum.RGBA4,
	RenderbufferRGBA5551:        glenum.RGB5_A1,
	RenderbufferRGBA8888:        gl.RGBA8,
	RenderbufferDepth16:         gl.DEPTH_COMPONENT16,
	RenderbufferDepth24:         gl.DEPTH_COMPONENT24,
	RenderbufferDepth24Stencil8: gl.DEPTH24_STENCIL8,
	RenderbufferStencil8:        glenum.STENCIL_INDEX8,
})

var cubeMapFaces = newEnumTable("cube map face", map[CubeMapFace]uint32{
	CubeMapPositiveX: gl.TEXTURE_CUBE_MAP_POSITIVE_X,
	CubeMapNegativeX: gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
	CubeMapPositiveY: gl.TEXTURE_CUBE_MAP_POSITIVE_Y,
	CubeMapNegativeY: gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
	CubeMapPositiveZ: gl.TEXTURE_CUBE_MAP_POSITIVE_Z,
	CubeMapNegativeZ: gl.TEXTURE_CUBE_MAP_NEGATIVE_Z,
})

var framebufferStatuses = newEnumTable("framebuffer status", map[FramebufferStatus]uint32{
	FramebufferComplete:                    gl.FRAMEBUFFER_COMPLETE,
	FramebufferIncompleteAttachment:        glenum.FRAMEBUFFER_INCOMPLETE_ATTACHMENT,
	FramebufferIncompleteMissingAttachment: glenum.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT,
	FramebufferIncompleteDrawBuffer:        glenum.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER,
	FramebufferIncompleteReadBuffer:        glenum.FRAMEBUFFER_INCOMPLETE_READ_BUFFER,
	FramebufferIncompleteDimensions:        glenum.FRAMEBUFFER_INCOMPLETE_DIMENSIONS,
	FramebufferUnsupported:                 glenum.FRAMEBUFFER_UNSUPPORTED,
})

// framebufferStatusFromNative maps a completeness code. Drivers report
// vendor codes here, so unmapped values become FramebufferUnknown.
func framebufferStatusFromNative(code uint32) FramebufferStatus {
	if s, ok := framebufferStatuses.from[code]; ok {
		return s
	}
	return FramebufferUnknown
}

// ===== Texture formats =====

// textureSpec is the native (internal format, format, type) triple used
// to allocate a texture of some domain format.
type textureSpec struct {
	internal int32
	format   uint32
	typ      uint32
	bytes    int
}

// es2TextureFormats are the unsized formats of OpenGL ES 2. The depth
// entries need GL_OES_depth_texture.
var es2TextureFormats = map[gputypes.TextureFormat]textureSpec{
	gputypes.TextureFormatRGBA8Unorm:   {gl.RGBA, gl.RGBA, gl.UNSIGNED_BYTE, 4},
	gputypes.TextureFormatDepth16Unorm: {gl.DEPTH_COMPONENT, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT, 2},
	gputypes.TextureFormatDepth24Plus:  {gl.DEPTH_COMPONENT, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT, 4},
}

// legacyTextureFormats are the sized formats of desktop OpenGL 2.1 with
// the framebuffer object extensions.
var legacyTextureFormats = map[gputypes.TextureFormat]textureSpec{
	gputypes.TextureFormatRGBA8Unorm:          {gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, 4},
	gputypes.TextureFormatRGBA8UnormSrgb:      {gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE, 4},
	gputypes.TextureFormatDepth16Unorm:        {gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT, 2},
	gputypes.TextureFormatDepth24Plus:         {gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT, 4},
	gputypes.TextureFormatDepth24PlusStencil8: {gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8, 4},
}

// gl3TextureFormats are the sized formats shared by OpenGL 3.0 and
// OpenGL ES 3.0.
var gl3TextureFormats = map[gputypes.TextureFormat]textureSpec{
	gputypes.TextureFormatR8Unorm:             {gl.R8, gl.RED, gl.UNSIGNED_BYTE, 1},
	gputypes.TextureFormatRG8Unorm:            {gl.RG8, gl.RG, gl.UNSIGNED_BYTE, 2},
	gputypes.TextureFormatRGBA8Unorm:          {gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, 4},
	gputypes.TextureFormatRGBA8UnormSrgb:      {gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE, 4},
	gputypes.TextureFormatR16Float:            {gl.R16F, gl.RED, gl.HALF_FLOAT, 2},
	gputypes.TextureFormatRG16Float:           {gl.RG16F, gl.RG, gl.HALF_FLOAT, 4},
	gputypes.TextureFormatRGBA16Float:         {gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT, 8},
	gputypes.TextureFormatR32Float:            {gl.R32F, gl.RED, gl.FLOAT, 4},
	gputypes.TextureFormatRG32Float:           {gl.RG32F, gl.RG, gl.FLOAT, 8},
	gputypes.TextureFormatRGBA32Float:         {gl.RGBA32F, gl.RGBA, gl.FLOAT, 16},
	gputypes.TextureFormatR8Uint:              {gl.R8UI, gl.RED_INTEGER, gl.UNSIGNED_BYTE, 1},
	gputypes.TextureFormatRGBA8Uint:           {gl.RGBA8UI, gl.RGBA_INTEGER, gl.UNSIGNED_BYTE, 4},
	gputypes.TextureFormatDepth16Unorm:        {gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT, 2},
	gputypes.TextureFormatDepth24Plus:         {gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT, 4},
	gputypes.TextureFormatDepth32Float:        {glenum.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT, 4},
	gputypes.TextureFormatDepth24PlusStencil8: {gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8, 4},
}

// textureRole returns the attachment role of a texture format.
func textureRole(f gputypes.TextureFormat) RenderableRole {
	switch {
	case f.HasDepth() && f.HasStencil():
		return RoleDepthStencil
	case f.HasDepth():
		return RoleDepth
	case f.HasStencil():
		return RoleStencil
	}
	return RoleColor
}
