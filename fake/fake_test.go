package fake

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/gogpu/wgpu/hal/gles/gl"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/glcheck/internal/glenum"
)

func newDriver(t *testing.T, name string) *Driver {
	t.Helper()
	d, err := NewNamed(name)
	if err != nil {
		t.Fatalf("NewNamed(%q) error = %v", name, err)
	}
	return d
}

func expectError(t *testing.T, d *Driver, want uint32) {
	t.Helper()
	if got := d.GetError(); got != want {
		t.Errorf("GetError() = 0x%X, want 0x%X", got, want)
	}
}

// ===== Profiles =====

func TestProfiles(t *testing.T) {
	builtin := []string{"gl21", "gl33", "gl46", "gles2", "gles3"}
	names := Profiles()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Profiles() = %v, want sorted", names)
	}
	if got := DefaultProfile().Name; got != "gl46" {
		t.Errorf("DefaultProfile().Name = %q, want %q", got, "gl46")
	}
	for _, name := range builtin {
		p, ok := LookupProfile(name)
		if !ok {
			t.Fatalf("LookupProfile(%q) not found", name)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("built-in profile %q: %v", name, err)
		}
	}
}

func TestNewNamedUnknown(t *testing.T) {
	_, err := NewNamed("voodoo2")
	var upe *UnknownProfileError
	if !errors.As(err, &upe) {
		t.Fatalf("NewNamed error = %v, want *UnknownProfileError", err)
	}
	if upe.Name != "voodoo2" {
		t.Errorf("Name = %q, want %q", upe.Name, "voodoo2")
	}
}

func TestProfileTOMLRoundTrip(t *testing.T) {
	p, _ := LookupProfile("gl33")
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := LoadProfile(&buf)
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadProfileInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad version", `name = "x"
version = "banana"
max_texture_units = 8
max_texture_size = 64
max_vertex_attribs = 8`},
		{"no units", `name = "x"
version = "3.3"
max_texture_size = 64
max_vertex_attribs = 8`},
		{"not toml", `name = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadProfile(strings.NewReader(tt.src)); err == nil {
				t.Error("LoadProfile() error = nil, want error")
			}
		})
	}
}

func TestRegisterProfile(t *testing.T) {
	p, _ := LookupProfile("gles2")
	p.Name = "gles2-minmax"
	p.Extensions = append(p.Extensions, "GL_EXT_blend_minmax")
	if err := RegisterProfile(p); err != nil {
		t.Fatalf("RegisterProfile() error = %v", err)
	}
	d := newDriver(t, "gles2-minmax")
	d.BlendEquationSeparate(gl.MIN, gl.MAX)
	expectError(t, d, gl.NO_ERROR)

	if err := RegisterProfile(Profile{}); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("RegisterProfile(empty) = %v, want ErrInvalidProfile", err)
	}
}

// ===== Queries =====

func TestExtensionQueries(t *testing.T) {
	tests := []struct {
		profile     string
		stringErr   uint32
		stringiErr  uint32
		numExtsWant int32
	}{
		{"gles2", gl.NO_ERROR, gl.INVALID_OPERATION, 0},
		{"gl21", gl.NO_ERROR, gl.INVALID_OPERATION, 0},
		{"gl33", gl.INVALID_ENUM, gl.NO_ERROR, 3},
		{"gles3", gl.NO_ERROR, gl.NO_ERROR, 4},
	}
	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			d := newDriver(t, tt.profile)
			d.GetString(gl.EXTENSIONS)
			expectError(t, d, tt.stringErr)
			d.GetStringi(gl.EXTENSIONS, 0)
			expectError(t, d, tt.stringiErr)
			n := []int32{0}
			d.GetIntegerv(glenum.NUM_EXTENSIONS, n)
			d.GetError()
			if n[0] != tt.numExtsWant {
				t.Errorf("NUM_EXTENSIONS = %d, want %d", n[0], tt.numExtsWant)
			}
		})
	}
}

func TestErrorFlagIsSticky(t *testing.T) {
	d := newDriver(t, "gl33")
	d.Enable(0xFFFF)
	d.GetStringi(gl.EXTENSIONS, 99)
	expectError(t, d, gl.INVALID_ENUM)
	expectError(t, d, gl.NO_ERROR)
}

func TestDepthBitsQueries(t *testing.T) {
	d := newDriver(t, "gles2")
	v := []int32{0}
	d.GetIntegerv(glenum.DEPTH_BITS, v)
	expectError(t, d, gl.NO_ERROR)
	if v[0] != 24 {
		t.Errorf("DEPTH_BITS = %d, want 24", v[0])
	}

	core := newDriver(t, "gl33")
	core.GetIntegerv(glenum.DEPTH_BITS, v)
	expectError(t, core, gl.INVALID_ENUM)
	got := core.GetFramebufferAttachmentParameteriv(gl.FRAMEBUFFER, glenum.DEPTH, glenum.FRAMEBUFFER_ATTACHMENT_DEPTH_SIZE)
	expectError(t, core, gl.NO_ERROR)
	if got != 24 {
		t.Errorf("default framebuffer depth size = %d, want 24", got)
	}
}

// ===== Buffers =====

func TestBufferBindAndUpdate(t *testing.T) {
	d := newDriver(t, "gles2")
	id := d.GenBuffer()

	d.BufferData(gl.ARRAY_BUFFER, 4, nil, gl.STATIC_DRAW)
	expectError(t, d, gl.INVALID_OPERATION)

	d.BindBuffer(gl.ARRAY_BUFFER, id)
	d.BufferData(gl.ARRAY_BUFFER, 4, nil, gl.STATIC_DRAW)
	d.BufferSubData(gl.ARRAY_BUFFER, 1, []byte{7, 8})
	expectError(t, d, gl.NO_ERROR)

	got, _ := d.BufferContents(id)
	if diff := cmp.Diff([]byte{0, 7, 8, 0}, got); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}

	d.BufferSubData(gl.ARRAY_BUFFER, 3, []byte{1, 2})
	expectError(t, d, gl.INVALID_VALUE)

	d.DeleteBuffer(id)
	v := []int32{-1}
	d.GetIntegerv(glenum.ARRAY_BUFFER_BINDING, v)
	if v[0] != 0 {
		t.Errorf("binding after delete = %d, want 0", v[0])
	}
}

func TestMapBuffer(t *testing.T) {
	d := newDriver(t, "gles2")
	d.BindBuffer(gl.ARRAY_BUFFER, d.GenBuffer())
	d.BufferData(gl.ARRAY_BUFFER, 4, nil, gl.STATIC_DRAW)
	if m := d.MapBuffer(gl.ARRAY_BUFFER, gl.WRITE_ONLY); m != nil {
		t.Error("MapBuffer on OpenGL ES 2 returned a mapping")
	}
	expectError(t, d, gl.INVALID_OPERATION)

	d = newDriver(t, "gl21")
	id := d.GenBuffer()
	d.BindBuffer(gl.ARRAY_BUFFER, id)
	d.BufferData(gl.ARRAY_BUFFER, 4, nil, gl.STATIC_DRAW)
	m := d.MapBuffer(gl.ARRAY_BUFFER, gl.WRITE_ONLY)
	copy(m, []byte{1, 2, 3, 4})
	d.BufferSubData(gl.ARRAY_BUFFER, 0, []byte{9})
	expectError(t, d, gl.INVALID_OPERATION)
	if !d.UnmapBuffer(gl.ARRAY_BUFFER) {
		t.Error("UnmapBuffer() = false, want true")
	}
	got, _ := d.BufferContents(id)
	if diff := cmp.Diff([]byte{1, 2, 3, 4}, got); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
}

// ===== Framebuffers =====

func colorRenderbuffer(d *Driver, format uint32, w, h int32) uint32 {
	rb := d.GenRenderbuffer()
	d.BindRenderbuffer(gl.RENDERBUFFER, rb)
	d.RenderbufferStorage(gl.RENDERBUFFER, format, w, h)
	d.BindRenderbuffer(gl.RENDERBUFFER, 0)
	return rb
}

func TestFramebufferStatus(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		attach  func(d *Driver)
		want    uint32
	}{
		{
			name:    "missing",
			profile: "gl33",
			attach:  func(*Driver) {},
			want:    glenum.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT,
		},
		{
			name:    "color and depth",
			profile: "gl33",
			attach: func(d *Driver) {
				d.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, colorRenderbuffer(d, gl.RGBA8, 64, 64))
				d.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, colorRenderbuffer(d, gl.DEPTH_COMPONENT24, 64, 64))
			},
			want: gl.FRAMEBUFFER_COMPLETE,
		},
		{
			name:    "depth format at color point",
			profile: "gl33",
			attach: func(d *Driver) {
				d.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, colorRenderbuffer(d, gl.DEPTH_COMPONENT24, 64, 64))
			},
			want: glenum.FRAMEBUFFER_INCOMPLETE_ATTACHMENT,
		},
		{
			name:    "separate depth and stencil",
			profile: "gles2",
			attach: func(d *Driver) {
				d.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, colorRenderbuffer(d, glenum.RGBA4, 64, 64))
				d.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, colorRenderbuffer(d, gl.DEPTH_COMPONENT16, 64, 64))
				d.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.STENCIL_ATTACHMENT, gl.RENDERBUFFER, colorRenderbuffer(d, glenum.STENCIL_INDEX8, 64, 64))
			},
			want: glenum.FRAMEBUFFER_UNSUPPORTED,
		},
		{
			name:    "dimension mismatch on es2",
			profile: "gles2",
			attach: func(d *Driver) {
				d.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, colorRenderbuffer(d, glenum.RGB565, 64, 64))
				d.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, colorRenderbuffer(d, gl.DEPTH_COMPONENT16, 32, 32))
			},
			want: glenum.FRAMEBUFFER_INCOMPLETE_DIMENSIONS,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDriver(t, tt.profile)
			d.BindFramebuffer(gl.FRAMEBUFFER, d.GenFramebuffer())
			tt.attach(d)
			expectError(t, d, gl.NO_ERROR)
			if got := d.CheckFramebufferStatus(gl.FRAMEBUFFER); got != tt.want {
				t.Errorf("CheckFramebufferStatus() = 0x%X, want 0x%X", got, tt.want)
			}
		})
	}
}

func TestRenderbufferFormatsPerVersion(t *testing.T) {
	tests := []struct {
		profile string
		format  uint32
		want    uint32
	}{
		{"gles2", glenum.RGBA4, gl.NO_ERROR},
		{"gles2", gl.RGBA8, gl.INVALID_ENUM},
		{"gles2", gl.DEPTH24_STENCIL8, gl.NO_ERROR},
		{"gl21", gl.DEPTH24_STENCIL8, gl.NO_ERROR},
		{"gles3", gl.RGBA8, gl.NO_ERROR},
	}
	for _, tt := range tests {
		d := newDriver(t, tt.profile)
		colorRenderbuffer(d, tt.format, 8, 8)
		if got := d.GetError(); got != tt.want {
			t.Errorf("%s: RenderbufferStorage(0x%X) error = 0x%X, want 0x%X", tt.profile, tt.format, got, tt.want)
		}
	}
}

func TestDrawBuffers(t *testing.T) {
	d := newDriver(t, "gles3")
	d.DrawBuffers([]uint32{gl.COLOR_ATTACHMENT0})
	expectError(t, d, gl.INVALID_OPERATION)

	d.BindFramebuffer(gl.FRAMEBUFFER, d.GenFramebuffer())
	d.DrawBuffers([]uint32{gl.COLOR_ATTACHMENT0 + 1})
	expectError(t, d, gl.INVALID_OPERATION)

	want := []uint32{glenum.NONE, gl.COLOR_ATTACHMENT0 + 1}
	d.DrawBuffers(want)
	expectError(t, d, gl.NO_ERROR)
	if diff := cmp.Diff(want, d.LastDrawBuffers()); diff != "" {
		t.Errorf("draw buffers mismatch (-want +got):\n%s", diff)
	}

	es2 := newDriver(t, "gles2")
	es2.BindFramebuffer(gl.FRAMEBUFFER, es2.GenFramebuffer())
	es2.DrawBuffers([]uint32{gl.COLOR_ATTACHMENT0})
	expectError(t, es2, gl.INVALID_OPERATION)
}

func TestDeleteTextureDetaches(t *testing.T) {
	d := newDriver(t, "gl33")
	fb := d.GenFramebuffer()
	d.BindFramebuffer(gl.FRAMEBUFFER, fb)
	tex := d.GenTexture()
	d.BindTexture(gl.TEXTURE_2D, tex)
	d.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 4, 4, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	d.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
	expectError(t, d, gl.NO_ERROR)
	if got := d.CheckFramebufferStatus(gl.FRAMEBUFFER); got != gl.FRAMEBUFFER_COMPLETE {
		t.Fatalf("status = 0x%X, want complete", got)
	}
	d.DeleteTexture(tex)
	if _, _, ok := d.FramebufferAttachment(fb, gl.COLOR_ATTACHMENT0); ok {
		t.Error("texture still attached after delete")
	}
}

// ===== Textures =====

func TestTextureImageAndSubImage(t *testing.T) {
	d := newDriver(t, "gles2")
	tex := d.GenTexture()
	d.BindTexture(gl.TEXTURE_2D, tex)
	d.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 2, 2, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	d.TexSubImage2D(gl.TEXTURE_2D, 0, 1, 1, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, []byte{1, 2, 3, 4})
	expectError(t, d, gl.NO_ERROR)
	_, _, data, _ := d.TextureImage(tex, gl.TEXTURE_2D)
	if diff := cmp.Diff([]byte{1, 2, 3, 4}, data[12:]); diff != "" {
		t.Errorf("texel mismatch (-want +got):\n%s", diff)
	}

	d.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 2, 2, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	expectError(t, d, gl.INVALID_OPERATION)

	d.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 3, 3, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	d.GenerateMipmap(gl.TEXTURE_2D)
	expectError(t, d, gl.INVALID_OPERATION)
}

func TestTextureAnisotropy(t *testing.T) {
	d := newDriver(t, "gles3")
	d.BindTexture(gl.TEXTURE_2D, d.GenTexture())
	d.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 4)
	expectError(t, d, gl.INVALID_ENUM)

	d = newDriver(t, "gl33")
	tex := d.GenTexture()
	d.BindTexture(gl.TEXTURE_2D, tex)
	d.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 4)
	expectError(t, d, gl.NO_ERROR)
	if v, _ := d.TextureParameter(tex, gl.TEXTURE_MAX_ANISOTROPY); v != 4 {
		t.Errorf("anisotropy = %v, want 4", v)
	}
}

// ===== Programs =====

const (
	vertexSource = `#version 100
attribute vec3 position;
attribute vec2 uv;
uniform mat4 mvp;
varying vec2 v_uv;
void main() { v_uv = uv; gl_Position = mvp * vec4(position, 1.0); }
`
	fragmentSource = `#version 100
precision mediump float;
uniform sampler2D albedo;
uniform highp float alpha;
varying vec2 v_uv;
void main() { gl_FragColor = texture2D(albedo, v_uv) * alpha; }
`
)

func linkProgram(t *testing.T, d *Driver, vs, fs string) uint32 {
	t.Helper()
	v := d.CreateShader(gl.VERTEX_SHADER)
	d.ShaderSource(v, vs)
	d.CompileShader(v)
	f := d.CreateShader(gl.FRAGMENT_SHADER)
	d.ShaderSource(f, fs)
	d.CompileShader(f)
	p := d.CreateProgram()
	d.AttachShader(p, v)
	d.AttachShader(p, f)
	d.LinkProgram(p)
	expectError(t, d, gl.NO_ERROR)
	return p
}

func TestProgramIntrospection(t *testing.T) {
	d := newDriver(t, "gles2")
	p := linkProgram(t, d, vertexSource, fragmentSource)
	if d.GetProgramiv(p, gl.LINK_STATUS) != 1 {
		t.Fatalf("link failed: %s", d.GetProgramInfoLog(p))
	}

	var attribs []string
	for i := range uint32(d.GetProgramiv(p, gl.ACTIVE_ATTRIBUTES)) {
		name, _, _ := d.GetActiveAttrib(p, i)
		attribs = append(attribs, name)
	}
	if diff := cmp.Diff([]string{"position", "uv"}, attribs); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}

	var uniforms []string
	for i := range uint32(d.GetProgramiv(p, gl.ACTIVE_UNIFORMS)) {
		name, _, typ := d.GetActiveUniform(p, i)
		uniforms = append(uniforms, name)
		if name == "alpha" && typ != gl.FLOAT {
			t.Errorf("alpha type = 0x%X, want FLOAT", typ)
		}
	}
	if diff := cmp.Diff([]string{"mvp", "albedo", "alpha"}, uniforms); diff != "" {
		t.Errorf("uniforms mismatch (-want +got):\n%s", diff)
	}
}

func TestShaderCompileError(t *testing.T) {
	d := newDriver(t, "gles2")
	s := d.CreateShader(gl.FRAGMENT_SHADER)
	d.ShaderSource(s, "void main() {}\n#error not today\n")
	d.CompileShader(s)
	expectError(t, d, gl.NO_ERROR)
	if d.GetShaderiv(s, gl.COMPILE_STATUS) != 0 {
		t.Fatal("COMPILE_STATUS = 1, want 0")
	}
	if log := d.GetShaderInfoLog(s); !strings.Contains(log, "0:2: '#error' : not today") {
		t.Errorf("info log = %q", log)
	}
}

func TestUniformTypeChecks(t *testing.T) {
	d := newDriver(t, "gles2")
	p := linkProgram(t, d, vertexSource, fragmentSource)
	alpha := d.GetUniformLocation(p, "alpha")

	d.Uniform1f(alpha, 0.5)
	expectError(t, d, gl.INVALID_OPERATION)

	d.UseProgram(p)
	d.Uniform1i(alpha, 1)
	expectError(t, d, gl.INVALID_OPERATION)
	d.Uniform1f(alpha, 0.5)
	expectError(t, d, gl.NO_ERROR)
	if v, _ := d.UniformValue(p, "alpha"); len(v) != 1 || v[0] != 0.5 {
		t.Errorf("alpha = %v, want [0.5]", v)
	}

	d.UniformMatrix4fv(d.GetUniformLocation(p, "mvp"), true, make([]float32, 16))
	expectError(t, d, gl.INVALID_VALUE)

	d.Uniform1f(-1, 3)
	expectError(t, d, gl.NO_ERROR)
}

// ===== Raster =====

func TestBlendMinMax(t *testing.T) {
	tests := []struct {
		profile string
		want    uint32
	}{
		{"gles2", gl.INVALID_ENUM},
		{"gles3", gl.NO_ERROR},
		{"gl21", gl.NO_ERROR},
	}
	for _, tt := range tests {
		d := newDriver(t, tt.profile)
		d.BlendEquationSeparate(gl.MIN, gl.FUNC_ADD)
		if got := d.GetError(); got != tt.want {
			t.Errorf("%s: error = 0x%X, want 0x%X", tt.profile, got, tt.want)
		}
	}
}

func TestPolygonMode(t *testing.T) {
	d := newDriver(t, "gles3")
	d.PolygonMode(gl.FRONT_AND_BACK, glenum.LINE)
	expectError(t, d, gl.INVALID_OPERATION)

	d = newDriver(t, "gl33")
	d.PolygonMode(gl.FRONT, glenum.LINE)
	expectError(t, d, gl.INVALID_ENUM)
	d.PolygonMode(gl.FRONT_AND_BACK, glenum.LINE)
	expectError(t, d, gl.NO_ERROR)
	v := []int32{0, 0}
	d.GetIntegerv(glenum.POLYGON_MODE, v)
	if v[0] != glenum.LINE {
		t.Errorf("POLYGON_MODE = 0x%X, want LINE", v[0])
	}
}

func TestDrawElements(t *testing.T) {
	d := newDriver(t, "gles2")
	d.DrawElements(gl.TRIANGLES, 3, gl.UNSIGNED_SHORT, 0)
	expectError(t, d, gl.INVALID_OPERATION)

	p := linkProgram(t, d, vertexSource, fragmentSource)
	d.UseProgram(p)
	d.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.GenBuffer())
	d.BufferData(gl.ELEMENT_ARRAY_BUFFER, 6, nil, gl.STATIC_DRAW)
	d.DrawElements(gl.TRIANGLES, 3, gl.UNSIGNED_SHORT, 0)
	expectError(t, d, gl.NO_ERROR)
	d.DrawElements(gl.TRIANGLES, 4, gl.UNSIGNED_SHORT, 0)
	expectError(t, d, gl.INVALID_OPERATION)
	if d.Draws() != 1 {
		t.Errorf("Draws() = %d, want 1", d.Draws())
	}
	if d.CallCount("DrawElements") != 3 {
		t.Errorf("CallCount(DrawElements) = %d, want 3", d.CallCount("DrawElements"))
	}
}

func TestClearIncompleteFramebuffer(t *testing.T) {
	d := newDriver(t, "gl33")
	d.Clear(gl.COLOR_BUFFER_BIT)
	expectError(t, d, gl.NO_ERROR)
	d.BindFramebuffer(gl.FRAMEBUFFER, d.GenFramebuffer())
	d.Clear(gl.COLOR_BUFFER_BIT)
	expectError(t, d, gl.INVALID_FRAMEBUFFER_OPERATION)
	if d.Clears() != 1 {
		t.Errorf("Clears() = %d, want 1", d.Clears())
	}
}
