// Package glenum holds the OpenGL constants that the
// github.com/gogpu/wgpu/hal/gles/gl package does not define.
//
// Values are taken from the Khronos registry (gl.xml). Together with the
// wgpu package this is the only place native numeric encodings appear.
package glenum

// OpenGL constants use ALL_CAPS by industry convention.
//
//nolint:revive
const (
	NONE = 0

	// Queries
	NUM_EXTENSIONS               = 0x821D
	ARRAY_BUFFER_BINDING         = 0x8894
	ELEMENT_ARRAY_BUFFER_BINDING = 0x8895
	RENDERBUFFER_BINDING         = 0x8CA7
	TEXTURE_BINDING_2D           = 0x8069
	TEXTURE_BINDING_CUBE_MAP     = 0x8514
	ACTIVE_TEXTURE               = 0x84E0
	CURRENT_PROGRAM              = 0x8B8D
	DEPTH_BITS                   = 0x0D56
	STENCIL_BITS                 = 0x0D57
	ALIASED_LINE_WIDTH_RANGE     = 0x846E
	SMOOTH_LINE_WIDTH_RANGE      = 0x0B22
	LINE_WIDTH                   = 0x0B21
	COLOR_WRITEMASK              = 0x0C23
	DEPTH_WRITEMASK              = 0x0B72
	POLYGON_MODE                 = 0x0B40

	// EXT_texture_filter_anisotropic
	MAX_TEXTURE_MAX_ANISOTROPY = 0x84FF

	// Framebuffer completeness
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER        = 0x8CDB
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER        = 0x8CDC
	FRAMEBUFFER_UNSUPPORTED                   = 0x8CDD
	FRAMEBUFFER_INCOMPLETE_DIMENSIONS         = 0x8CD9

	// Framebuffer attachment queries
	FRAMEBUFFER_ATTACHMENT_OBJECT_TYPE  = 0x8CD0
	FRAMEBUFFER_DEFAULT                 = 0x8218
	TEXTURE                             = 0x1702
	FRAMEBUFFER_ATTACHMENT_DEPTH_SIZE   = 0x8216
	FRAMEBUFFER_ATTACHMENT_STENCIL_SIZE = 0x8217
	DEPTH                               = 0x1801
	STENCIL                             = 0x1802

	// Draw buffers
	DRAW_BUFFER0 = 0x8825

	// Polygon rasterization
	POINT = 0x1B00
	LINE  = 0x1B01
	FILL  = 0x1B02

	// Renderbuffer internal formats
	RGBA4          = 0x8056
	RGB5_A1        = 0x8057
	RGB565         = 0x8D62
	STENCIL_INDEX8 = 0x8D48

	// Texture internal formats
	DEPTH_COMPONENT32F = 0x8CAC

	// Packed pixel types
	UNSIGNED_SHORT_4_4_4_4 = 0x8033
	UNSIGNED_SHORT_5_5_5_1 = 0x8034
	UNSIGNED_SHORT_5_6_5   = 0x8363

	// Active attribute and uniform types
	FLOAT_VEC2        = 0x8B50
	FLOAT_VEC3        = 0x8B51
	FLOAT_VEC4        = 0x8B52
	INT_VEC2          = 0x8B53
	INT_VEC3          = 0x8B54
	INT_VEC4          = 0x8B55
	BOOL              = 0x8B56
	BOOL_VEC2         = 0x8B57
	BOOL_VEC3         = 0x8B58
	BOOL_VEC4         = 0x8B59
	FLOAT_MAT2        = 0x8B5A
	FLOAT_MAT3        = 0x8B5B
	FLOAT_MAT4        = 0x8B5C
	SAMPLER_2D        = 0x8B5E
	SAMPLER_3D        = 0x8B5F
	SAMPLER_CUBE      = 0x8B60
	SAMPLER_2D_SHADOW = 0x8B62
)
