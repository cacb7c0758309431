package glcheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ===== Compilation =====

func TestShaderCompileFailure(t *testing.T) {
	iface, drv := openNamed(t, "gl33")
	c := common(iface)

	_, err := c.VertexShaderCompile("broken", "#error missing feature\nvoid main() {}\n")
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CompileError", err)
	}
	if ce.Name != "broken" || !strings.Contains(ce.Log, "missing feature") {
		t.Errorf("CompileError = %+v", ce)
	}
	if drv.CallCount("DeleteShader") != 1 {
		t.Errorf("DeleteShader called %d times, want 1", drv.CallCount("DeleteShader"))
	}

	_, err = c.FragmentShaderCompile("types", "uniform quaternion q;\n")
	if !errors.As(err, &ce) {
		t.Errorf("unknown type error = %v, want *CompileError", err)
	}

	_, err = c.FragmentShaderCompile("empty", "")
	wantViolation(t, err, "Shader source not empty")
}

func TestProgramIntrospection(t *testing.T) {
	for _, profile := range allProfiles {
		t.Run(profile, func(t *testing.T) {
			iface, _ := openNamed(t, profile)
			p := newProgram(t, common(iface))

			if diff := cmp.Diff([]string{"position", "uv"}, p.AttributeNames()); diff != "" {
				t.Errorf("AttributeNames() mismatch (-want +got):\n%s", diff)
			}
			want := []string{"alpha", "image", "lights", "mode", "tint", "transform"}
			if diff := cmp.Diff(want, p.UniformNames()); diff != "" {
				t.Errorf("UniformNames() mismatch (-want +got):\n%s", diff)
			}

			types := map[string]ShaderType{}
			for _, name := range p.UniformNames() {
				u, _ := p.Uniform(name)
				types[name] = u.Type()
				if u.Program() != p {
					t.Errorf("uniform %q has the wrong program", name)
				}
			}
			wantTypes := map[string]ShaderType{
				"alpha":     ShaderFloat,
				"image":     ShaderSampler2D,
				"lights":    ShaderFloatVec3,
				"mode":      ShaderInt,
				"tint":      ShaderFloatVec4,
				"transform": ShaderFloatMat4,
			}
			if diff := cmp.Diff(wantTypes, types); diff != "" {
				t.Errorf("uniform types mismatch (-want +got):\n%s", diff)
			}
			lights, _ := p.Uniform("lights")
			if lights.Size() != 4 {
				t.Errorf("lights size = %d, want 4", lights.Size())
			}
			uv, _ := p.Attribute("uv")
			if uv.Type() != ShaderFloatVec2 {
				t.Errorf("uv type = %v, want vec2", uv.Type())
			}
		})
	}
}

func TestProgramCreateViolations(t *testing.T) {
	iface, _ := openNamed(t, "gles2")
	c := common(iface)
	v, err := c.VertexShaderCompile("v", vertexSource)
	mustNoErr(t, err)
	f, err := c.FragmentShaderCompile("f", fragmentSource)
	mustNoErr(t, err)

	_, err = c.ProgramCreate("p", nil, f)
	wantViolation(t, err, "Vertex shader not null")

	mustNoErr(t, c.FragmentShaderDelete(f))
	_, err = c.ProgramCreate("p", v, f)
	wantViolation(t, err, "Fragment shader not deleted")
}

func TestProgramLinkFailure(t *testing.T) {
	iface, _ := openNamed(t, "gl21")
	c := common(iface)
	v, err := c.VertexShaderCompile("v", "uniform float x;\nvoid main() {}\n")
	mustNoErr(t, err)
	f, err := c.FragmentShaderCompile("f", "uniform int x;\nvoid main() {}\n")
	mustNoErr(t, err)

	_, err = c.ProgramCreate("mismatch", v, f)
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CompileError", err)
	}
	if ce.Name != "mismatch" || !strings.Contains(ce.Log, "different types") {
		t.Errorf("CompileError = %+v", ce)
	}
}

// ===== Activation =====

func TestProgramActivation(t *testing.T) {
	iface, drv := openNamed(t, "gl33")
	c := common(iface)
	p := newProgram(t, c)

	mustNoErr(t, c.ProgramActivate(p))
	if drv.CurrentProgram() != p.NativeID() {
		t.Errorf("current program = %d, want %d", drv.CurrentProgram(), p.NativeID())
	}
	active, err := c.ProgramIsActive(p)
	mustNoErr(t, err)
	if !active {
		t.Error("ProgramIsActive() = false after activation")
	}

	mustNoErr(t, c.ProgramDeactivate())
	active, err = c.ProgramIsActive(p)
	mustNoErr(t, err)
	if active {
		t.Error("ProgramIsActive() = true after deactivation")
	}

	mustNoErr(t, c.ProgramDelete(p))
	wantViolation(t, c.ProgramActivate(p), "Program not deleted")
	_, err = c.ProgramIsActive(p)
	wantViolation(t, err, "Program not deleted")
}

// ===== Uniforms =====

func TestProgramPutUniforms(t *testing.T) {
	iface, drv := openNamed(t, "gles3")
	c := common(iface)
	p := newProgram(t, c)
	uniform := func(name string) *ProgramUniform {
		u, ok := p.Uniform(name)
		if !ok {
			t.Fatalf("no uniform %q", name)
		}
		return u
	}

	wantViolation(t, c.ProgramPutUniformFloat(uniform("alpha"), 0.5), "Program for uniform is active")
	mustNoErr(t, c.ProgramActivate(p))

	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	mustNoErr(t, c.ProgramPutUniformFloat(uniform("alpha"), 0.5))
	mustNoErr(t, c.ProgramPutUniformVector4f(uniform("tint"), [4]float32{1, 0.5, 0.25, 1}))
	mustNoErr(t, c.ProgramPutUniformInteger(uniform("mode"), 3))
	mustNoErr(t, c.ProgramPutUniformMatrix4x4f(uniform("transform"), identity))
	mustNoErr(t, c.ProgramPutUniformTextureUnit(uniform("image"), 5))

	tests := []struct {
		name string
		want []float32
	}{
		{"alpha", []float32{0.5}},
		{"tint", []float32{1, 0.5, 0.25, 1}},
		{"mode", []float32{3}},
		{"transform", identity[:]},
		{"image", []float32{5}},
	}
	for _, tt := range tests {
		got, ok := drv.UniformValue(p.NativeID(), tt.name)
		if !ok {
			t.Errorf("uniform %q was not set", tt.name)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("uniform %q mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestProgramPutUniformViolations(t *testing.T) {
	iface, _ := openNamed(t, "gles2")
	c := common(iface)
	p := newProgram(t, c)
	mustNoErr(t, c.ProgramActivate(p))
	alpha, _ := p.Uniform("alpha")
	mode, _ := p.Uniform("mode")
	image, _ := p.Uniform("image")
	tint, _ := p.Uniform("tint")

	wantViolation(t, c.ProgramPutUniformFloat(nil, 1), "Uniform not null")
	wantViolation(t, c.ProgramPutUniformInteger(alpha, 1), "Uniform type is int or bool")
	wantViolation(t, c.ProgramPutUniformFloat(mode, 1), "Uniform type is float")
	wantViolation(t, c.ProgramPutUniformVector3f(tint, [3]float32{}), "Uniform type is vec3")
	wantViolation(t, c.ProgramPutUniformTextureUnit(alpha, 0), "Uniform type is sampler2D or sampler3D")

	// gles2 has 8 texture units.
	wantViolation(t, c.ProgramPutUniformTextureUnit(image, 8), "Texture unit in range [0, 7]")
	wantViolation(t, c.ProgramPutUniformTextureUnit(image, -1), "Texture unit")

	other := newProgram(t, c)
	otherAlpha, _ := other.Uniform("alpha")
	wantViolation(t, c.ProgramPutUniformFloat(otherAlpha, 1), "Program for uniform is active")

	mustNoErr(t, c.ProgramDelete(p))
	wantViolation(t, c.ProgramPutUniformFloat(alpha, 1), "Program not deleted")
}

func TestShaderDelete(t *testing.T) {
	iface, _ := openNamed(t, "gl46")
	c := common(iface)
	v, err := c.VertexShaderCompile("v", vertexSource)
	mustNoErr(t, err)
	f, err := c.FragmentShaderCompile("f", fragmentSource)
	mustNoErr(t, err)
	p, err := c.ProgramCreate("p", v, f)
	mustNoErr(t, err)

	mustNoErr(t, c.VertexShaderDelete(v))
	mustNoErr(t, c.FragmentShaderDelete(f))
	wantViolation(t, c.VertexShaderDelete(v), "Vertex shader not deleted")

	// The linked program outlives its shaders.
	mustNoErr(t, c.ProgramActivate(p))
}
