// Package native defines the narrow driver surface consumed by glcheck.
//
// A Driver mirrors the OpenGL / OpenGL ES C entry points with Go types:
// object names are uint32, enums are uint32 and client memory is passed
// as byte slices. Implementations do not validate arguments beyond what
// the underlying API does; they report failures only through GetError,
// exactly as a real context would.
//
// Two implementations ship with the module: the in-memory driver in
// package fake, and Trace, which logs every call made through another
// Driver.
package native

// Queries covers state and string queries.
type Queries interface {
	GetError() uint32
	GetString(name uint32) string
	GetStringi(name, index uint32) string
	GetIntegerv(pname uint32, data []int32)
	GetFloatv(pname uint32, data []float32)
	GetBooleanv(pname uint32, data []bool)
	IsEnabled(capability uint32) bool
	Enable(capability uint32)
	Disable(capability uint32)
}

// Buffers covers buffer objects and vertex attribute arrays.
type Buffers interface {
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target, id uint32)
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)
	// MapBuffer returns a view of the buffer store that is valid until
	// UnmapBuffer. It returns nil on failure.
	MapBuffer(target, access uint32) []byte
	UnmapBuffer(target uint32) bool

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset int)
}

// Textures covers texture objects.
type Textures interface {
	GenTexture() uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, id uint32)
	TexParameteri(target, pname uint32, param int32)
	TexParameterf(target, pname uint32, param float32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, typ uint32, data []byte)
	TexSubImage2D(target uint32, level, x, y, width, height int32, format, typ uint32, data []byte)
	GenerateMipmap(target uint32)
}

// Framebuffers covers renderbuffer and framebuffer objects.
type Framebuffers interface {
	GenRenderbuffer() uint32
	DeleteRenderbuffer(id uint32)
	BindRenderbuffer(target, id uint32)
	RenderbufferStorage(target, internalFormat uint32, width, height int32)

	GenFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(target, id uint32)
	FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32)
	CheckFramebufferStatus(target uint32) uint32
	GetFramebufferAttachmentParameteriv(target, attachment, pname uint32) int32
	DrawBuffers(buffers []uint32)
}

// Programs covers shader and program objects and uniform uploads.
type Programs interface {
	CreateShader(typ uint32) uint32
	ShaderSource(id uint32, source string)
	CompileShader(id uint32)
	GetShaderiv(id, pname uint32) int32
	GetShaderInfoLog(id uint32) string
	DeleteShader(id uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(id uint32)
	GetProgramiv(id, pname uint32) int32
	GetProgramInfoLog(id uint32) string
	GetActiveAttrib(program, index uint32) (name string, size int32, typ uint32)
	GetActiveUniform(program, index uint32) (name string, size int32, typ uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	UseProgram(id uint32)
	DeleteProgram(id uint32)

	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	Uniform1i(location int32, v int32)
	Uniform2i(location int32, v0, v1 int32)
	UniformMatrix3fv(location int32, transpose bool, values []float32)
	UniformMatrix4fv(location int32, transpose bool, values []float32)
}

// Raster covers fixed-function pipeline state and drawing.
type Raster interface {
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	CullFace(face uint32)
	FrontFace(mode uint32)
	DepthFunc(fn uint32)
	DepthMask(flag bool)
	ColorMask(r, g, b, a bool)
	ClearColor(r, g, b, a float32)
	ClearDepthf(d float32)
	ClearStencil(s int32)
	Clear(mask uint32)
	StencilFuncSeparate(face, fn uint32, ref int32, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass uint32)
	StencilMaskSeparate(face, mask uint32)
	Scissor(x, y, width, height int32)
	Viewport(x, y, width, height int32)
	LineWidth(width float32)
	PolygonMode(face, mode uint32)
	DrawElements(mode uint32, count int32, typ uint32, offset int)
}

// Driver is a current OpenGL or OpenGL ES context.
//
// A Driver is bound to one thread of control. None of its methods may be
// called concurrently.
type Driver interface {
	Queries
	Buffers
	Textures
	Framebuffers
	Programs
	Raster
}
