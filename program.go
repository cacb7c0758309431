package glcheck

import (
	"fmt"
	"strings"

	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/constraint"
	"github.com/gogpu/glcheck/internal/glenum"
)

// ===== Shaders =====

func (c *Common) compileShader(typ uint32, name, source string) (uint32, error) {
	if err := constraint.Check(source != "", "Shader source not empty"); err != nil {
		return 0, err
	}
	id := c.drv.CreateShader(typ)
	c.drv.ShaderSource(id, source)
	c.drv.CompileShader(id)
	status := c.drv.GetShaderiv(id, gl.COMPILE_STATUS)
	if err := c.check(); err != nil {
		c.drv.DeleteShader(id)
		return 0, err
	}
	if status == 0 {
		log := c.drv.GetShaderInfoLog(id)
		c.drv.DeleteShader(id)
		if c.debugEnabled() {
			c.log.Debug("glcheck: shader compilation failed", "name", name, "log", log)
		}
		return 0, &CompileError{Name: name, Log: log}
	}
	return id, nil
}

// VertexShaderCompile compiles a vertex shader. A compilation failure
// returns a *CompileError carrying the driver's log.
func (c *Common) VertexShaderCompile(name, source string) (*VertexShader, error) {
	id, err := c.compileShader(gl.VERTEX_SHADER, name, source)
	if err != nil {
		return nil, err
	}
	s := &VertexShader{name: name}
	s.id = id
	return s, nil
}

// FragmentShaderCompile compiles a fragment shader.
func (c *Common) FragmentShaderCompile(name, source string) (*FragmentShader, error) {
	id, err := c.compileShader(gl.FRAGMENT_SHADER, name, source)
	if err != nil {
		return nil, err
	}
	s := &FragmentShader{name: name}
	s.id = id
	return s, nil
}

// VertexShaderDelete deletes s. Programs linked from s are unaffected.
func (c *Common) VertexShaderDelete(s *VertexShader) error {
	if err := live(s, "Vertex shader"); err != nil {
		return err
	}
	c.drv.DeleteShader(s.id)
	s.markDeleted()
	return c.check()
}

// FragmentShaderDelete deletes s.
func (c *Common) FragmentShaderDelete(s *FragmentShader) error {
	if err := live(s, "Fragment shader"); err != nil {
		return err
	}
	c.drv.DeleteShader(s.id)
	s.markDeleted()
	return c.check()
}

// ===== Programs =====

// ProgramCreate links v and f into a program and records its active
// attributes and uniforms. Built-in variables (gl_*) are not recorded.
func (c *Common) ProgramCreate(name string, v *VertexShader, f *FragmentShader) (*Program, error) {
	if err := constraint.First(live(v, "Vertex shader"), live(f, "Fragment shader")); err != nil {
		return nil, err
	}
	p := &Program{
		name:       name,
		attributes: make(map[string]*ProgramAttribute),
		uniforms:   make(map[string]*ProgramUniform),
	}
	p.id = c.drv.CreateProgram()
	c.drv.AttachShader(p.id, v.id)
	c.drv.AttachShader(p.id, f.id)
	c.drv.LinkProgram(p.id)
	status := c.drv.GetProgramiv(p.id, gl.LINK_STATUS)
	if err := c.check(); err != nil {
		c.drv.DeleteProgram(p.id)
		return nil, err
	}
	if status == 0 {
		log := c.drv.GetProgramInfoLog(p.id)
		c.drv.DeleteProgram(p.id)
		return nil, &CompileError{Name: name, Log: log}
	}
	if err := c.introspect(p); err != nil {
		c.drv.DeleteProgram(p.id)
		return nil, err
	}
	if c.debugEnabled() {
		c.log.Debug("glcheck: program linked",
			"name", name, "id", p.id, "attributes", len(p.attributes), "uniforms", len(p.uniforms))
	}
	return p, nil
}

func activeType(program, variable string, native uint32) (ShaderType, error) {
	t, ok := shaderTypes.from[native]
	if !ok {
		return 0, &UnsupportedError{
			Message: fmt.Sprintf("program %q: %q has unsupported type 0x%04X", program, variable, native),
		}
	}
	return t, nil
}

func (c *Common) introspect(p *Program) error {
	n := c.drv.GetProgramiv(p.id, gl.ACTIVE_ATTRIBUTES)
	for i := range uint32(max(n, 0)) {
		name, _, typ := c.drv.GetActiveAttrib(p.id, i)
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		t, err := activeType(p.name, name, typ)
		if err != nil {
			return err
		}
		p.attributes[name] = &ProgramAttribute{
			program:  p,
			name:     name,
			location: c.drv.GetAttribLocation(p.id, name),
			typ:      t,
		}
	}

	n = c.drv.GetProgramiv(p.id, gl.ACTIVE_UNIFORMS)
	for i := range uint32(max(n, 0)) {
		name, size, typ := c.drv.GetActiveUniform(p.id, i)
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		t, err := activeType(p.name, name, typ)
		if err != nil {
			return err
		}
		name = strings.TrimSuffix(name, "[0]")
		p.uniforms[name] = &ProgramUniform{
			program:  p,
			name:     name,
			location: c.drv.GetUniformLocation(p.id, name),
			typ:      t,
			size:     size,
		}
	}
	return c.check()
}

// ProgramActivate makes p the current program.
func (c *Common) ProgramActivate(p *Program) error {
	if err := live(p, "Program"); err != nil {
		return err
	}
	c.drv.UseProgram(p.id)
	return c.check()
}

// ProgramDeactivate clears the current program.
func (c *Common) ProgramDeactivate() error {
	c.drv.UseProgram(0)
	return c.check()
}

// ProgramIsActive reports whether p is the current program.
func (c *Common) ProgramIsActive(p *Program) (bool, error) {
	if err := live(p, "Program"); err != nil {
		return false, err
	}
	id, err := c.queryInt(glenum.CURRENT_PROGRAM)
	if err != nil {
		return false, err
	}
	return uint32(id) == p.id, nil
}

// ProgramDelete deletes p.
func (c *Common) ProgramDelete(p *Program) error {
	if err := live(p, "Program"); err != nil {
		return err
	}
	c.drv.DeleteProgram(p.id)
	p.markDeleted()
	if c.debugEnabled() {
		c.log.Debug("glcheck: program deleted", "name", p.name, "id", p.id)
	}
	return c.check()
}

// ===== Uniforms =====

// checkUniform validates a uniform upload: the owning program must be
// live and current and the uniform must have one of the given types.
func (c *Common) checkUniform(u *ProgramUniform, want ...ShaderType) error {
	if err := constraint.NotNil(u, "Uniform"); err != nil {
		return err
	}
	active, err := c.ProgramIsActive(u.program)
	if err != nil {
		return err
	}
	if err := constraint.Check(active, "Program for uniform is active"); err != nil {
		return err
	}
	for _, t := range want {
		if u.typ == t {
			return nil
		}
	}
	names := make([]string, len(want))
	for i, t := range want {
		names[i] = t.String()
	}
	return constraint.New("Uniform type is " + strings.Join(names, " or "))
}

// ProgramPutUniformFloat sets a float uniform.
func (c *Common) ProgramPutUniformFloat(u *ProgramUniform, v float32) error {
	if err := c.checkUniform(u, ShaderFloat); err != nil {
		return err
	}
	c.drv.Uniform1f(u.location, v)
	return c.check()
}

// ProgramPutUniformVector2f sets a vec2 uniform.
func (c *Common) ProgramPutUniformVector2f(u *ProgramUniform, v [2]float32) error {
	if err := c.checkUniform(u, ShaderFloatVec2); err != nil {
		return err
	}
	c.drv.Uniform2f(u.location, v[0], v[1])
	return c.check()
}

// ProgramPutUniformVector3f sets a vec3 uniform.
func (c *Common) ProgramPutUniformVector3f(u *ProgramUniform, v [3]float32) error {
	if err := c.checkUniform(u, ShaderFloatVec3); err != nil {
		return err
	}
	c.drv.Uniform3f(u.location, v[0], v[1], v[2])
	return c.check()
}

// ProgramPutUniformVector4f sets a vec4 uniform.
func (c *Common) ProgramPutUniformVector4f(u *ProgramUniform, v [4]float32) error {
	if err := c.checkUniform(u, ShaderFloatVec4); err != nil {
		return err
	}
	c.drv.Uniform4f(u.location, v[0], v[1], v[2], v[3])
	return c.check()
}

// ProgramPutUniformInteger sets an int or bool uniform.
func (c *Common) ProgramPutUniformInteger(u *ProgramUniform, v int32) error {
	if err := c.checkUniform(u, ShaderInt, ShaderBool); err != nil {
		return err
	}
	c.drv.Uniform1i(u.location, v)
	return c.check()
}

// ProgramPutUniformVector2i sets an ivec2 or bvec2 uniform.
func (c *Common) ProgramPutUniformVector2i(u *ProgramUniform, v [2]int32) error {
	if err := c.checkUniform(u, ShaderIntVec2, ShaderBoolVec2); err != nil {
		return err
	}
	c.drv.Uniform2i(u.location, v[0], v[1])
	return c.check()
}

// ProgramPutUniformMatrix3x3f sets a mat3 uniform from a column-major
// matrix.
func (c *Common) ProgramPutUniformMatrix3x3f(u *ProgramUniform, m [9]float32) error {
	if err := c.checkUniform(u, ShaderFloatMat3); err != nil {
		return err
	}
	c.drv.UniformMatrix3fv(u.location, false, m[:])
	return c.check()
}

// ProgramPutUniformMatrix4x4f sets a mat4 uniform from a column-major
// matrix.
func (c *Common) ProgramPutUniformMatrix4x4f(u *ProgramUniform, m [16]float32) error {
	if err := c.checkUniform(u, ShaderFloatMat4); err != nil {
		return err
	}
	c.drv.UniformMatrix4fv(u.location, false, m[:])
	return c.check()
}

// ProgramPutUniformTextureUnit points a sampler uniform at unit.
func (c *Common) ProgramPutUniformTextureUnit(u *ProgramUniform, unit TextureUnit) error {
	if err := c.checkUniform(u, ShaderSampler2D, ShaderSampler3D, ShaderSamplerCube, ShaderSampler2DShadow); err != nil {
		return err
	}
	if err := c.checkUnit(unit); err != nil {
		return err
	}
	c.drv.Uniform1i(u.location, int32(unit))
	return c.check()
}
