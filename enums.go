package glcheck

import "fmt"

// FaceSelection selects front, back or both polygon faces.
type FaceSelection uint8

const (
	FaceFront FaceSelection = iota + 1
	FaceBack
	FaceFrontAndBack
)

func (f FaceSelection) String() string {
	switch f {
	case FaceFront:
		return "Front"
	case FaceBack:
		return "Back"
	case FaceFrontAndBack:
		return "FrontAndBack"
	}
	return fmt.Sprintf("FaceSelection(%d)", uint8(f))
}

// PolygonMode is the rasterization mode for polygons.
type PolygonMode uint8

const (
	PolygonPoints PolygonMode = iota + 1
	PolygonLines
	PolygonFill
)

func (m PolygonMode) String() string {
	switch m {
	case PolygonPoints:
		return "Points"
	case PolygonLines:
		return "Lines"
	case PolygonFill:
		return "Fill"
	}
	return fmt.Sprintf("PolygonMode(%d)", uint8(m))
}

// UsageHint tells the driver how buffer contents will be used.
type UsageHint uint8

const (
	UsageStreamDraw UsageHint = iota + 1
	UsageStreamRead
	UsageStreamCopy
	UsageStaticDraw
	UsageStaticRead
	UsageStaticCopy
	UsageDynamicDraw
	UsageDynamicRead
	UsageDynamicCopy
)

var usageNames = [...]string{"", "StreamDraw", "StreamRead", "StreamCopy", "StaticDraw", "StaticRead", "StaticCopy", "DynamicDraw", "DynamicRead", "DynamicCopy"}

func (u UsageHint) String() string {
	if int(u) > 0 && int(u) < len(usageNames) {
		return usageNames[u]
	}
	return fmt.Sprintf("UsageHint(%d)", uint8(u))
}

// IndexType is the element type of an index buffer.
type IndexType uint8

const (
	IndexUnsignedByte IndexType = iota + 1
	IndexUnsignedShort
	IndexUnsignedInt
)

func (t IndexType) String() string {
	switch t {
	case IndexUnsignedByte:
		return "UnsignedByte"
	case IndexUnsignedShort:
		return "UnsignedShort"
	case IndexUnsignedInt:
		return "UnsignedInt"
	}
	return fmt.Sprintf("IndexType(%d)", uint8(t))
}

// Size returns the size of one index in bytes.
func (t IndexType) Size() int {
	switch t {
	case IndexUnsignedByte:
		return 1
	case IndexUnsignedShort:
		return 2
	case IndexUnsignedInt:
		return 4
	}
	return 0
}

// MaxIndex returns the largest index the type can hold.
func (t IndexType) MaxIndex() uint32 {
	switch t {
	case IndexUnsignedByte:
		return 0xFF
	case IndexUnsignedShort:
		return 0xFFFF
	}
	return 0xFFFFFFFF
}

// IndexTypeFor returns the smallest index type that can hold maxIndex.
func IndexTypeFor(maxIndex uint32) IndexType {
	switch {
	case maxIndex <= 0xFF:
		return IndexUnsignedByte
	case maxIndex <= 0xFFFF:
		return IndexUnsignedShort
	}
	return IndexUnsignedInt
}

// ScalarType is the component type of an array buffer attribute.
type ScalarType uint8

const (
	ScalarByte ScalarType = iota + 1
	ScalarUnsignedByte
	ScalarShort
	ScalarUnsignedShort
	ScalarInt
	ScalarUnsignedInt
	ScalarFloat
)

var scalarNames = [...]string{"", "Byte", "UnsignedByte", "Short", "UnsignedShort", "Int", "UnsignedInt", "Float"}

func (t ScalarType) String() string {
	if int(t) > 0 && int(t) < len(scalarNames) {
		return scalarNames[t]
	}
	return fmt.Sprintf("ScalarType(%d)", uint8(t))
}

// Size returns the size of one component in bytes.
func (t ScalarType) Size() int {
	switch t {
	case ScalarByte, ScalarUnsignedByte:
		return 1
	case ScalarShort, ScalarUnsignedShort:
		return 2
	case ScalarInt, ScalarUnsignedInt, ScalarFloat:
		return 4
	}
	return 0
}

// ShaderTypeConvertible reports whether elements components of type t
// can feed a program attribute of type st. Only float and int vectors
// of matching width convert.
func (t ScalarType) ShaderTypeConvertible(elements int, st ShaderType) bool {
	switch t {
	case ScalarFloat:
		switch elements {
		case 1:
			return st == ShaderFloat
		case 2:
			return st == ShaderFloatVec2
		case 3:
			return st == ShaderFloatVec3
		case 4:
			return st == ShaderFloatVec4
		}
	case ScalarInt:
		switch elements {
		case 1:
			return st == ShaderInt
		case 2:
			return st == ShaderIntVec2
		case 3:
			return st == ShaderIntVec3
		case 4:
			return st == ShaderIntVec4
		}
	}
	return false
}

// ShaderType is the type of an active program attribute or uniform.
type ShaderType uint8

const (
	ShaderFloat ShaderType = iota + 1
	ShaderFloatVec2
	ShaderFloatVec3
	ShaderFloatVec4
	ShaderInt
	ShaderIntVec2
	ShaderIntVec3
	ShaderIntVec4
	ShaderBool
	ShaderBoolVec2
	ShaderBoolVec3
	ShaderBoolVec4
	ShaderFloatMat2
	ShaderFloatMat3
	ShaderFloatMat4
	ShaderSampler2D
	ShaderSampler3D
	ShaderSamplerCube
	ShaderSampler2DShadow
)

var shaderTypeNames = [...]string{
	"",
	"float", "vec2", "vec3", "vec4",
	"int", "ivec2", "ivec3", "ivec4",
	"bool", "bvec2", "bvec3", "bvec4",
	"mat2", "mat3", "mat4",
	"sampler2D", "sampler3D", "samplerCube", "sampler2DShadow",
}

// String returns the GLSL spelling of the type.
func (t ShaderType) String() string {
	if int(t) > 0 && int(t) < len(shaderTypeNames) {
		return shaderTypeNames[t]
	}
	return fmt.Sprintf("ShaderType(%d)", uint8(t))
}

// IsSampler reports whether t is a sampler type.
func (t ShaderType) IsSampler() bool {
	return t >= ShaderSampler2D && t <= ShaderSampler2DShadow
}

// RenderableRole is what a renderbuffer or texture can be attached as.
type RenderableRole uint8

const (
	RoleColor RenderableRole = iota + 1
	RoleDepth
	RoleStencil
	RoleDepthStencil
)

func (r RenderableRole) String() string {
	switch r {
	case RoleColor:
		return "color"
	case RoleDepth:
		return "depth"
	case RoleStencil:
		return "stencil"
	case RoleDepthStencil:
		return "depth+stencil"
	}
	return fmt.Sprintf("RenderableRole(%d)", uint8(r))
}

// RenderbufferFormat is the storage format of a renderbuffer.
type RenderbufferFormat uint8

const (
	RenderbufferRGB565 RenderbufferFormat = iota + 1
	RenderbufferRGB888
	RenderbufferRGBA4444
	RenderbufferRGBA5551
	RenderbufferRGBA8888
	RenderbufferDepth16
	RenderbufferDepth24
	RenderbufferDepth24Stencil8
	RenderbufferStencil8
)

type renderbufferInfo struct {
	name           string
	bytes          int
	depth, stencil int
}

var renderbufferInfos = [...]renderbufferInfo{
	RenderbufferRGB565:          {"RGB565", 2, 0, 0},
	RenderbufferRGB888:          {"RGB888", 3, 0, 0},
	RenderbufferRGBA4444:        {"RGBA4444", 2, 0, 0},
	RenderbufferRGBA5551:        {"RGBA5551", 2, 0, 0},
	RenderbufferRGBA8888:        {"RGBA8888", 4, 0, 0},
	RenderbufferDepth16:         {"Depth16", 2, 16, 0},
	RenderbufferDepth24:         {"Depth24", 4, 24, 0},
	RenderbufferDepth24Stencil8: {"Depth24Stencil8", 4, 24, 8},
	RenderbufferStencil8:        {"Stencil8", 1, 0, 8},
}

func (f RenderbufferFormat) info() renderbufferInfo {
	if f == 0 || int(f) >= len(renderbufferInfos) {
		return renderbufferInfo{}
	}
	return renderbufferInfos[f]
}

func (f RenderbufferFormat) String() string {
	if n := f.info().name; n != "" {
		return n
	}
	return fmt.Sprintf("RenderbufferFormat(%d)", uint8(f))
}

// BytesPerPixel returns the storage size of one pixel.
func (f RenderbufferFormat) BytesPerPixel() int { return f.info().bytes }

// DepthBits returns the number of depth bits, zero for non-depth formats.
func (f RenderbufferFormat) DepthBits() int { return f.info().depth }

// StencilBits returns the number of stencil bits.
func (f RenderbufferFormat) StencilBits() int { return f.info().stencil }

// Role returns the attachment role the format is renderable as.
func (f RenderbufferFormat) Role() RenderableRole {
	i := f.info()
	switch {
	case i.depth > 0 && i.stencil > 0:
		return RoleDepthStencil
	case i.depth > 0:
		return RoleDepth
	case i.stencil > 0:
		return RoleStencil
	}
	return RoleColor
}

// FramebufferStatus is the completeness status of a framebuffer.
type FramebufferStatus uint8

const (
	FramebufferComplete FramebufferStatus = iota + 1
	FramebufferIncompleteAttachment
	FramebufferIncompleteMissingAttachment
	FramebufferIncompleteDrawBuffer
	FramebufferIncompleteReadBuffer
	FramebufferIncompleteDimensions
	FramebufferUnsupported
	FramebufferUnknown
)

var statusNames = [...]string{
	"", "Complete", "IncompleteAttachment", "IncompleteMissingAttachment",
	"IncompleteDrawBuffer", "IncompleteReadBuffer", "IncompleteDimensions",
	"Unsupported", "Unknown",
}

func (s FramebufferStatus) String() string {
	if int(s) > 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("FramebufferStatus(%d)", uint8(s))
}

// CubeMapFace is one face of a cube texture.
type CubeMapFace uint8

const (
	CubeMapPositiveX CubeMapFace = iota + 1
	CubeMapNegativeX
	CubeMapPositiveY
	CubeMapNegativeY
	CubeMapPositiveZ
	CubeMapNegativeZ
)

var cubeFaceNames = [...]string{"", "+X", "-X", "+Y", "-Y", "+Z", "-Z"}

func (f CubeMapFace) String() string {
	if int(f) > 0 && int(f) < len(cubeFaceNames) {
		return cubeFaceNames[f]
	}
	return fmt.Sprintf("CubeMapFace(%d)", uint8(f))
}

// CubeMapFaces lists the faces in native order.
func CubeMapFaces() []CubeMapFace {
	return []CubeMapFace{
		CubeMapPositiveX, CubeMapNegativeX,
		CubeMapPositiveY, CubeMapNegativeY,
		CubeMapPositiveZ, CubeMapNegativeZ,
	}
}

// TextureUnit is an index into the context's texture units.
type TextureUnit int

// ColorAttachmentPoint is the index of a framebuffer color attachment.
type ColorAttachmentPoint int

// DrawBuffer is the index of a fragment shader output slot.
type DrawBuffer int
