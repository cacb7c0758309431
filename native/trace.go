package native

import (
	"context"
	"log/slog"
)

// Trace returns a Driver that forwards every call to d and logs it at
// debug level on l. Arguments are only formatted when debug logging is
// enabled on l.
func Trace(d Driver, l *slog.Logger) Driver {
	if l == nil {
		l = slog.Default()
	}
	return &tracer{d: d, log: l}
}

type tracer struct {
	d   Driver
	log *slog.Logger
}

func (t *tracer) trace(fn string, args ...any) {
	if !t.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	t.log.Debug("gl: "+fn, args...)
}

// ===== Queries =====

func (t *tracer) GetError() uint32 {
	code := t.d.GetError()
	t.trace("GetError", "result", code)
	return code
}

func (t *tracer) GetString(name uint32) string {
	s := t.d.GetString(name)
	t.trace("GetString", "name", name, "result", s)
	return s
}

func (t *tracer) GetStringi(name, index uint32) string {
	s := t.d.GetStringi(name, index)
	t.trace("GetStringi", "name", name, "index", index, "result", s)
	return s
}

func (t *tracer) GetIntegerv(pname uint32, data []int32) {
	t.d.GetIntegerv(pname, data)
	t.trace("GetIntegerv", "pname", pname, "result", data)
}

func (t *tracer) GetFloatv(pname uint32, data []float32) {
	t.d.GetFloatv(pname, data)
	t.trace("GetFloatv", "pname", pname, "result", data)
}

func (t *tracer) GetBooleanv(pname uint32, data []bool) {
	t.d.GetBooleanv(pname, data)
	t.trace("GetBooleanv", "pname", pname, "result", data)
}

func (t *tracer) IsEnabled(capability uint32) bool {
	r := t.d.IsEnabled(capability)
	t.trace("IsEnabled", "cap", capability, "result", r)
	return r
}

func (t *tracer) Enable(capability uint32) {
	t.trace("Enable", "cap", capability)
	t.d.Enable(capability)
}

func (t *tracer) Disable(capability uint32) {
	t.trace("Disable", "cap", capability)
	t.d.Disable(capability)
}

// ===== Buffers =====

func (t *tracer) GenBuffer() uint32 {
	id := t.d.GenBuffer()
	t.trace("GenBuffer", "result", id)
	return id
}

func (t *tracer) DeleteBuffer(id uint32) {
	t.trace("DeleteBuffer", "id", id)
	t.d.DeleteBuffer(id)
}

func (t *tracer) BindBuffer(target, id uint32) {
	t.trace("BindBuffer", "target", target, "id", id)
	t.d.BindBuffer(target, id)
}

func (t *tracer) BufferData(target uint32, size int, data []byte, usage uint32) {
	t.trace("BufferData", "target", target, "size", size, "data", data != nil, "usage", usage)
	t.d.BufferData(target, size, data, usage)
}

func (t *tracer) BufferSubData(target uint32, offset int, data []byte) {
	t.trace("BufferSubData", "target", target, "offset", offset, "len", len(data))
	t.d.BufferSubData(target, offset, data)
}

func (t *tracer) MapBuffer(target, access uint32) []byte {
	b := t.d.MapBuffer(target, access)
	t.trace("MapBuffer", "target", target, "access", access, "len", len(b))
	return b
}

func (t *tracer) UnmapBuffer(target uint32) bool {
	ok := t.d.UnmapBuffer(target)
	t.trace("UnmapBuffer", "target", target, "result", ok)
	return ok
}

func (t *tracer) EnableVertexAttribArray(index uint32) {
	t.trace("EnableVertexAttribArray", "index", index)
	t.d.EnableVertexAttribArray(index)
}

func (t *tracer) DisableVertexAttribArray(index uint32) {
	t.trace("DisableVertexAttribArray", "index", index)
	t.d.DisableVertexAttribArray(index)
}

func (t *tracer) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset int) {
	t.trace("VertexAttribPointer", "index", index, "size", size, "type", typ,
		"normalized", normalized, "stride", stride, "offset", offset)
	t.d.VertexAttribPointer(index, size, typ, normalized, stride, offset)
}

// ===== Textures =====

func (t *tracer) GenTexture() uint32 {
	id := t.d.GenTexture()
	t.trace("GenTexture", "result", id)
	return id
}

func (t *tracer) DeleteTexture(id uint32) {
	t.trace("DeleteTexture", "id", id)
	t.d.DeleteTexture(id)
}

func (t *tracer) ActiveTexture(unit uint32) {
	t.trace("ActiveTexture", "unit", unit)
	t.d.ActiveTexture(unit)
}

func (t *tracer) BindTexture(target, id uint32) {
	t.trace("BindTexture", "target", target, "id", id)
	t.d.BindTexture(target, id)
}

func (t *tracer) TexParameteri(target, pname uint32, param int32) {
	t.trace("TexParameteri", "target", target, "pname", pname, "param", param)
	t.d.TexParameteri(target, pname, param)
}

func (t *tracer) TexParameterf(target, pname uint32, param float32) {
	t.trace("TexParameterf", "target", target, "pname", pname, "param", param)
	t.d.TexParameterf(target, pname, param)
}

func (t *tracer) TexImage2D(target uint32, level, internalFormat, width, height int32, format, typ uint32, data []byte) {
	t.trace("TexImage2D", "target", target, "level", level, "internal", internalFormat,
		"width", width, "height", height, "format", format, "type", typ, "len", len(data))
	t.d.TexImage2D(target, level, internalFormat, width, height, format, typ, data)
}

func (t *tracer) TexSubImage2D(target uint32, level, x, y, width, height int32, format, typ uint32, data []byte) {
	t.trace("TexSubImage2D", "target", target, "level", level, "x", x, "y", y,
		"width", width, "height", height, "format", format, "type", typ, "len", len(data))
	t.d.TexSubImage2D(target, level, x, y, width, height, format, typ, data)
}

func (t *tracer) GenerateMipmap(target uint32) {
	t.trace("GenerateMipmap", "target", target)
	t.d.GenerateMipmap(target)
}

// ===== Framebuffers =====

func (t *tracer) GenRenderbuffer() uint32 {
	id := t.d.GenRenderbuffer()
	t.trace("GenRenderbuffer", "result", id)
	return id
}

func (t *tracer) DeleteRenderbuffer(id uint32) {
	t.trace("DeleteRenderbuffer", "id", id)
	t.d.DeleteRenderbuffer(id)
}

func (t *tracer) BindRenderbuffer(target, id uint32) {
	t.trace("BindRenderbuffer", "target", target, "id", id)
	t.d.BindRenderbuffer(target, id)
}

func (t *tracer) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	t.trace("RenderbufferStorage", "target", target, "internal", internalFormat, "width", width, "height", height)
	t.d.RenderbufferStorage(target, internalFormat, width, height)
}

func (t *tracer) GenFramebuffer() uint32 {
	id := t.d.GenFramebuffer()
	t.trace("GenFramebuffer", "result", id)
	return id
}

func (t *tracer) DeleteFramebuffer(id uint32) {
	t.trace("DeleteFramebuffer", "id", id)
	t.d.DeleteFramebuffer(id)
}

func (t *tracer) BindFramebuffer(target, id uint32) {
	t.trace("BindFramebuffer", "target", target, "id", id)
	t.d.BindFramebuffer(target, id)
}

func (t *tracer) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	t.trace("FramebufferTexture2D", "target", target, "attachment", attachment,
		"textarget", texTarget, "texture", texture, "level", level)
	t.d.FramebufferTexture2D(target, attachment, texTarget, texture, level)
}

func (t *tracer) FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32) {
	t.trace("FramebufferRenderbuffer", "target", target, "attachment", attachment,
		"rbtarget", rbTarget, "renderbuffer", renderbuffer)
	t.d.FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer)
}

func (t *tracer) CheckFramebufferStatus(target uint32) uint32 {
	s := t.d.CheckFramebufferStatus(target)
	t.trace("CheckFramebufferStatus", "target", target, "result", s)
	return s
}

func (t *tracer) GetFramebufferAttachmentParameteriv(target, attachment, pname uint32) int32 {
	v := t.d.GetFramebufferAttachmentParameteriv(target, attachment, pname)
	t.trace("GetFramebufferAttachmentParameteriv", "target", target, "attachment", attachment,
		"pname", pname, "result", v)
	return v
}

func (t *tracer) DrawBuffers(buffers []uint32) {
	t.trace("DrawBuffers", "buffers", buffers)
	t.d.DrawBuffers(buffers)
}

// ===== Programs =====

func (t *tracer) CreateShader(typ uint32) uint32 {
	id := t.d.CreateShader(typ)
	t.trace("CreateShader", "type", typ, "result", id)
	return id
}

func (t *tracer) ShaderSource(id uint32, source string) {
	t.trace("ShaderSource", "id", id, "len", len(source))
	t.d.ShaderSource(id, source)
}

func (t *tracer) CompileShader(id uint32) {
	t.trace("CompileShader", "id", id)
	t.d.CompileShader(id)
}

func (t *tracer) GetShaderiv(id, pname uint32) int32 {
	v := t.d.GetShaderiv(id, pname)
	t.trace("GetShaderiv", "id", id, "pname", pname, "result", v)
	return v
}

func (t *tracer) GetShaderInfoLog(id uint32) string {
	s := t.d.GetShaderInfoLog(id)
	t.trace("GetShaderInfoLog", "id", id, "len", len(s))
	return s
}

func (t *tracer) DeleteShader(id uint32) {
	t.trace("DeleteShader", "id", id)
	t.d.DeleteShader(id)
}

func (t *tracer) CreateProgram() uint32 {
	id := t.d.CreateProgram()
	t.trace("CreateProgram", "result", id)
	return id
}

func (t *tracer) AttachShader(program, shader uint32) {
	t.trace("AttachShader", "program", program, "shader", shader)
	t.d.AttachShader(program, shader)
}

func (t *tracer) LinkProgram(id uint32) {
	t.trace("LinkProgram", "id", id)
	t.d.LinkProgram(id)
}

func (t *tracer) GetProgramiv(id, pname uint32) int32 {
	v := t.d.GetProgramiv(id, pname)
	t.trace("GetProgramiv", "id", id, "pname", pname, "result", v)
	return v
}

func (t *tracer) GetProgramInfoLog(id uint32) string {
	s := t.d.GetProgramInfoLog(id)
	t.trace("GetProgramInfoLog", "id", id, "len", len(s))
	return s
}

func (t *tracer) GetActiveAttrib(program, index uint32) (string, int32, uint32) {
	name, size, typ := t.d.GetActiveAttrib(program, index)
	t.trace("GetActiveAttrib", "program", program, "index", index, "name", name, "size", size, "type", typ)
	return name, size, typ
}

func (t *tracer) GetActiveUniform(program, index uint32) (string, int32, uint32) {
	name, size, typ := t.d.GetActiveUniform(program, index)
	t.trace("GetActiveUniform", "program", program, "index", index, "name", name, "size", size, "type", typ)
	return name, size, typ
}

func (t *tracer) GetAttribLocation(program uint32, name string) int32 {
	loc := t.d.GetAttribLocation(program, name)
	t.trace("GetAttribLocation", "program", program, "name", name, "result", loc)
	return loc
}

func (t *tracer) GetUniformLocation(program uint32, name string) int32 {
	loc := t.d.GetUniformLocation(program, name)
	t.trace("GetUniformLocation", "program", program, "name", name, "result", loc)
	return loc
}

func (t *tracer) UseProgram(id uint32) {
	t.trace("UseProgram", "id", id)
	t.d.UseProgram(id)
}

func (t *tracer) DeleteProgram(id uint32) {
	t.trace("DeleteProgram", "id", id)
	t.d.DeleteProgram(id)
}

func (t *tracer) Uniform1f(location int32, v float32) {
	t.trace("Uniform1f", "location", location, "v", v)
	t.d.Uniform1f(location, v)
}

func (t *tracer) Uniform2f(location int32, v0, v1 float32) {
	t.trace("Uniform2f", "location", location, "v0", v0, "v1", v1)
	t.d.Uniform2f(location, v0, v1)
}

func (t *tracer) Uniform3f(location int32, v0, v1, v2 float32) {
	t.trace("Uniform3f", "location", location, "v0", v0, "v1", v1, "v2", v2)
	t.d.Uniform3f(location, v0, v1, v2)
}

func (t *tracer) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	t.trace("Uniform4f", "location", location, "v0", v0, "v1", v1, "v2", v2, "v3", v3)
	t.d.Uniform4f(location, v0, v1, v2, v3)
}

func (t *tracer) Uniform1i(location int32, v int32) {
	t.trace("Uniform1i", "location", location, "v", v)
	t.d.Uniform1i(location, v)
}

func (t *tracer) Uniform2i(location int32, v0, v1 int32) {
	t.trace("Uniform2i", "location", location, "v0", v0, "v1", v1)
	t.d.Uniform2i(location, v0, v1)
}

func (t *tracer) UniformMatrix3fv(location int32, transpose bool, values []float32) {
	t.trace("UniformMatrix3fv", "location", location, "transpose", transpose, "values", values)
	t.d.UniformMatrix3fv(location, transpose, values)
}

func (t *tracer) UniformMatrix4fv(location int32, transpose bool, values []float32) {
	t.trace("UniformMatrix4fv", "location", location, "transpose", transpose, "values", values)
	t.d.UniformMatrix4fv(location, transpose, values)
}

// ===== Raster =====

func (t *tracer) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	t.trace("BlendFuncSeparate", "srcRGB", srcRGB, "dstRGB", dstRGB, "srcAlpha", srcAlpha, "dstAlpha", dstAlpha)
	t.d.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (t *tracer) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	t.trace("BlendEquationSeparate", "modeRGB", modeRGB, "modeAlpha", modeAlpha)
	t.d.BlendEquationSeparate(modeRGB, modeAlpha)
}

func (t *tracer) CullFace(face uint32) {
	t.trace("CullFace", "face", face)
	t.d.CullFace(face)
}

func (t *tracer) FrontFace(mode uint32) {
	t.trace("FrontFace", "mode", mode)
	t.d.FrontFace(mode)
}

func (t *tracer) DepthFunc(fn uint32) {
	t.trace("DepthFunc", "func", fn)
	t.d.DepthFunc(fn)
}

func (t *tracer) DepthMask(flag bool) {
	t.trace("DepthMask", "flag", flag)
	t.d.DepthMask(flag)
}

func (t *tracer) ColorMask(r, g, b, a bool) {
	t.trace("ColorMask", "r", r, "g", g, "b", b, "a", a)
	t.d.ColorMask(r, g, b, a)
}

func (t *tracer) ClearColor(r, g, b, a float32) {
	t.trace("ClearColor", "r", r, "g", g, "b", b, "a", a)
	t.d.ClearColor(r, g, b, a)
}

func (t *tracer) ClearDepthf(d float32) {
	t.trace("ClearDepthf", "depth", d)
	t.d.ClearDepthf(d)
}

func (t *tracer) ClearStencil(s int32) {
	t.trace("ClearStencil", "stencil", s)
	t.d.ClearStencil(s)
}

func (t *tracer) Clear(mask uint32) {
	t.trace("Clear", "mask", mask)
	t.d.Clear(mask)
}

func (t *tracer) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	t.trace("StencilFuncSeparate", "face", face, "func", fn, "ref", ref, "mask", mask)
	t.d.StencilFuncSeparate(face, fn, ref, mask)
}

func (t *tracer) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	t.trace("StencilOpSeparate", "face", face, "sfail", sfail, "dpfail", dpfail, "dppass", dppass)
	t.d.StencilOpSeparate(face, sfail, dpfail, dppass)
}

func (t *tracer) StencilMaskSeparate(face, mask uint32) {
	t.trace("StencilMaskSeparate", "face", face, "mask", mask)
	t.d.StencilMaskSeparate(face, mask)
}

func (t *tracer) Scissor(x, y, width, height int32) {
	t.trace("Scissor", "x", x, "y", y, "width", width, "height", height)
	t.d.Scissor(x, y, width, height)
}

func (t *tracer) Viewport(x, y, width, height int32) {
	t.trace("Viewport", "x", x, "y", y, "width", width, "height", height)
	t.d.Viewport(x, y, width, height)
}

func (t *tracer) LineWidth(width float32) {
	t.trace("LineWidth", "width", width)
	t.d.LineWidth(width)
}

func (t *tracer) PolygonMode(face, mode uint32) {
	t.trace("PolygonMode", "face", face, "mode", mode)
	t.d.PolygonMode(face, mode)
}

func (t *tracer) DrawElements(mode uint32, count int32, typ uint32, offset int) {
	t.trace("DrawElements", "mode", mode, "count", count, "type", typ, "offset", offset)
	t.d.DrawElements(mode, count, typ, offset)
}
