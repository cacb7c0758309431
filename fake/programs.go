package fake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/glenum"
)

type shader struct {
	typ      uint32
	source   string
	compiled bool
	log      string
	decls    []declaration
}

// declaration is a global attribute, input or uniform found in a source.
type declaration struct {
	storage string // "attribute", "in" or "uniform"
	typ     uint32
	name    string
	size    int32
}

type active struct {
	name     string
	size     int32
	typ      uint32
	location int32
}

type program struct {
	shaders  []uint32
	linked   bool
	log      string
	attribs  []active
	uniforms []active
	values   map[int32][]float32
}

var declPattern = regexp.MustCompile(
	`^\s*(?:layout\s*\([^)]*\)\s*)?(?:(?:flat|smooth|centroid)\s+)?(attribute|in|uniform)\s+` +
		`(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)

var glslTypes = map[string]uint32{
	"float":           gl.FLOAT,
	"vec2":            glenum.FLOAT_VEC2,
	"vec3":            glenum.FLOAT_VEC3,
	"vec4":            glenum.FLOAT_VEC4,
	"int":             gl.INT,
	"ivec2":           glenum.INT_VEC2,
	"ivec3":           glenum.INT_VEC3,
	"ivec4":           glenum.INT_VEC4,
	"bool":            glenum.BOOL,
	"bvec2":           glenum.BOOL_VEC2,
	"bvec3":           glenum.BOOL_VEC3,
	"bvec4":           glenum.BOOL_VEC4,
	"mat2":            glenum.FLOAT_MAT2,
	"mat3":            glenum.FLOAT_MAT3,
	"mat4":            glenum.FLOAT_MAT4,
	"sampler2D":       glenum.SAMPLER_2D,
	"sampler3D":       glenum.SAMPLER_3D,
	"samplerCube":     glenum.SAMPLER_CUBE,
	"sampler2DShadow": glenum.SAMPLER_2D_SHADOW,
}

// parseSource scans src for global declarations and #error directives.
// It returns a compile log when the source does not compile.
func parseSource(src string) ([]declaration, string) {
	if strings.TrimSpace(src) == "" {
		return nil, "ERROR: 0:1: '' : syntax error: empty shader source\n"
	}
	var (
		decls []declaration
		log   strings.Builder
	)
	for i, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if msg, ok := strings.CutPrefix(trimmed, "#error"); ok {
			fmt.Fprintf(&log, "ERROR: 0:%d: '#error' : %s\n", i+1, strings.TrimSpace(msg))
			continue
		}
		m := declPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		typ, ok := glslTypes[m[2]]
		if !ok {
			fmt.Fprintf(&log, "ERROR: 0:%d: '%s' : unknown type\n", i+1, m[2])
			continue
		}
		size := int32(1)
		if m[4] != "" {
			n, err := strconv.Atoi(m[4])
			if err != nil || n < 1 {
				fmt.Fprintf(&log, "ERROR: 0:%d: '%s' : invalid array size\n", i+1, m[3])
				continue
			}
			size = int32(n)
		}
		decls = append(decls, declaration{storage: m[1], typ: typ, name: m[3], size: size})
	}
	return decls, log.String()
}

// UniformValue returns the last value stored for the named uniform of
// program id. Integer uniforms are returned converted to float32.
func (d *Driver) UniformValue(id uint32, name string) ([]float32, bool) {
	p, ok := d.programs[id]
	if !ok {
		return nil, false
	}
	for _, u := range p.uniforms {
		if u.name == name {
			v, ok := p.values[u.location]
			return append([]float32(nil), v...), ok
		}
	}
	return nil, false
}

// CurrentProgram returns the program installed by UseProgram.
func (d *Driver) CurrentProgram() uint32 { return d.current }

// CreateShader implements native.Programs.
func (d *Driver) CreateShader(typ uint32) uint32 {
	d.record("CreateShader")
	if typ != gl.VERTEX_SHADER && typ != gl.FRAGMENT_SHADER {
		d.setError(gl.INVALID_ENUM)
		return 0
	}
	id := d.newName()
	d.shaders[id] = &shader{typ: typ}
	return id
}

// ShaderSource implements native.Programs.
func (d *Driver) ShaderSource(id uint32, source string) {
	d.record("ShaderSource")
	s, ok := d.shaders[id]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return
	}
	s.source = source
}

// CompileShader implements native.Programs. A failed compile is not a
// GL error; it is reported through COMPILE_STATUS and the info log.
func (d *Driver) CompileShader(id uint32) {
	d.record("CompileShader")
	s, ok := d.shaders[id]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return
	}
	s.decls, s.log = parseSource(s.source)
	s.compiled = s.log == ""
}

// GetShaderiv implements native.Programs.
func (d *Driver) GetShaderiv(id, pname uint32) int32 {
	d.record("GetShaderiv")
	s, ok := d.shaders[id]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		return boolInt(s.compiled)
	case gl.INFO_LOG_LENGTH:
		if s.log == "" {
			return 0
		}
		return int32(len(s.log) + 1)
	}
	d.setError(gl.INVALID_ENUM)
	return 0
}

// GetShaderInfoLog implements native.Programs.
func (d *Driver) GetShaderInfoLog(id uint32) string {
	d.record("GetShaderInfoLog")
	s, ok := d.shaders[id]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return ""
	}
	return s.log
}

// DeleteShader implements native.Programs. Programs that already link
// the shader are unaffected.
func (d *Driver) DeleteShader(id uint32) {
	d.record("DeleteShader")
	if id == 0 {
		return
	}
	if _, ok := d.shaders[id]; !ok {
		d.setError(gl.INVALID_VALUE)
		return
	}
	delete(d.shaders, id)
}

// CreateProgram implements native.Programs.
func (d *Driver) CreateProgram() uint32 {
	d.record("CreateProgram")
	id := d.newName()
	d.programs[id] = &program{values: make(map[int32][]float32)}
	return id
}

// AttachShader implements native.Programs.
func (d *Driver) AttachShader(prog, sh uint32) {
	d.record("AttachShader")
	p, ok := d.programs[prog]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return
	}
	if _, ok := d.shaders[sh]; !ok {
		d.setError(gl.INVALID_VALUE)
		return
	}
	for _, s := range p.shaders {
		if s == sh {
			d.setError(gl.INVALID_OPERATION)
			return
		}
	}
	p.shaders = append(p.shaders, sh)
}

// LinkProgram implements native.Programs. Linking needs exactly one
// compiled vertex and one compiled fragment shader.
func (d *Driver) LinkProgram(id uint32) {
	d.record("LinkProgram")
	p, ok := d.programs[id]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return
	}
	p.linked = false
	p.attribs = nil
	p.uniforms = nil
	p.values = make(map[int32][]float32)

	var vertex, fragment *shader
	for _, sid := range p.shaders {
		s, ok := d.shaders[sid]
		if !ok {
			continue
		}
		if !s.compiled {
			p.log = "error: linking with uncompiled shader\n"
			return
		}
		if s.typ == gl.VERTEX_SHADER {
			vertex = s
		} else {
			fragment = s
		}
	}
	if vertex == nil || fragment == nil {
		p.log = "error: program needs a vertex and a fragment shader\n"
		return
	}

	uniforms := make(map[string]declaration)
	for _, s := range []*shader{vertex, fragment} {
		for _, decl := range s.decls {
			switch {
			case decl.storage == "uniform":
				if prev, seen := uniforms[decl.name]; seen && prev.typ != decl.typ {
					p.log = fmt.Sprintf("error: uniform %q declared with different types\n", decl.name)
					return
				}
				if _, seen := uniforms[decl.name]; !seen {
					uniforms[decl.name] = decl
					p.uniforms = append(p.uniforms, active{
						name: decl.name, size: decl.size, typ: decl.typ,
						location: int32(len(p.uniforms)),
					})
				}
			case s == vertex:
				p.attribs = append(p.attribs, active{
					name: decl.name, size: decl.size, typ: decl.typ,
					location: int32(len(p.attribs)),
				})
			}
		}
	}
	if len(p.attribs) > len(d.attribs) {
		p.log = "error: too many vertex attributes\n"
		p.attribs, p.uniforms = nil, nil
		return
	}
	p.log = ""
	p.linked = true
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// GetProgramiv implements native.Programs.
func (d *Driver) GetProgramiv(id, pname uint32) int32 {
	d.record("GetProgramiv")
	p, ok := d.programs[id]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		return boolInt(p.linked)
	case gl.INFO_LOG_LENGTH:
		if p.log == "" {
			return 0
		}
		return int32(len(p.log) + 1)
	case gl.ACTIVE_ATTRIBUTES:
		return int32(len(p.attribs))
	case gl.ACTIVE_UNIFORMS:
		return int32(len(p.uniforms))
	}
	d.setError(gl.INVALID_ENUM)
	return 0
}

// GetProgramInfoLog implements native.Programs.
func (d *Driver) GetProgramInfoLog(id uint32) string {
	d.record("GetProgramInfoLog")
	p, ok := d.programs[id]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return ""
	}
	return p.log
}

func (d *Driver) activeAt(list func(*program) []active, id, index uint32) (string, int32, uint32) {
	p, ok := d.programs[id]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return "", 0, 0
	}
	items := list(p)
	if int(index) >= len(items) {
		d.setError(gl.INVALID_VALUE)
		return "", 0, 0
	}
	a := items[index]
	return a.name, a.size, a.typ
}

// GetActiveAttrib implements native.Programs.
func (d *Driver) GetActiveAttrib(prog, index uint32) (name string, size int32, typ uint32) {
	d.record("GetActiveAttrib")
	return d.activeAt(func(p *program) []active { return p.attribs }, prog, index)
}

// GetActiveUniform implements native.Programs.
func (d *Driver) GetActiveUniform(prog, index uint32) (name string, size int32, typ uint32) {
	d.record("GetActiveUniform")
	return d.activeAt(func(p *program) []active { return p.uniforms }, prog, index)
}

func (d *Driver) locationOf(list func(*program) []active, id uint32, name string) int32 {
	p, ok := d.programs[id]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return -1
	}
	if !p.linked {
		d.setError(gl.INVALID_OPERATION)
		return -1
	}
	for _, a := range list(p) {
		if a.name == name {
			return a.location
		}
	}
	return -1
}

// GetAttribLocation implements native.Programs.
func (d *Driver) GetAttribLocation(prog uint32, name string) int32 {
	d.record("GetAttribLocation")
	return d.locationOf(func(p *program) []active { return p.attribs }, prog, name)
}

// GetUniformLocation implements native.Programs.
func (d *Driver) GetUniformLocation(prog uint32, name string) int32 {
	d.record("GetUniformLocation")
	return d.locationOf(func(p *program) []active { return p.uniforms }, prog, name)
}

// UseProgram implements native.Programs.
func (d *Driver) UseProgram(id uint32) {
	d.record("UseProgram")
	if id == 0 {
		d.current = 0
		return
	}
	p, ok := d.programs[id]
	if !ok {
		d.setError(gl.INVALID_VALUE)
		return
	}
	if !p.linked {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	d.current = id
}

// DeleteProgram implements native.Programs. Deleting the current
// program also uninstalls it.
func (d *Driver) DeleteProgram(id uint32) {
	d.record("DeleteProgram")
	if id == 0 {
		return
	}
	if _, ok := d.programs[id]; !ok {
		d.setError(gl.INVALID_VALUE)
		return
	}
	delete(d.programs, id)
	if d.current == id {
		d.current = 0
	}
}

// ===== Uniforms =====

// uniformTypes lists the uniform types each entry point can load.
var uniformTypes = map[string][]uint32{
	"Uniform1f":        {gl.FLOAT},
	"Uniform2f":        {glenum.FLOAT_VEC2},
	"Uniform3f":        {glenum.FLOAT_VEC3},
	"Uniform4f":        {glenum.FLOAT_VEC4},
	"Uniform1i":        {gl.INT, glenum.BOOL, glenum.SAMPLER_2D, glenum.SAMPLER_3D, glenum.SAMPLER_CUBE, glenum.SAMPLER_2D_SHADOW},
	"Uniform2i":        {glenum.INT_VEC2, glenum.BOOL_VEC2},
	"UniformMatrix3fv": {glenum.FLOAT_MAT3},
	"UniformMatrix4fv": {glenum.FLOAT_MAT4},
}

func isSampler(typ uint32) bool {
	switch typ {
	case glenum.SAMPLER_2D, glenum.SAMPLER_3D, glenum.SAMPLER_CUBE, glenum.SAMPLER_2D_SHADOW:
		return true
	}
	return false
}

// storeUniform validates a load of values through entry point fn and
// stores them on the current program.
func (d *Driver) storeUniform(fn string, location int32, values []float32) {
	d.record(fn)
	p, ok := d.programs[d.current]
	if d.current == 0 || !ok {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	if location == -1 {
		return
	}
	if location < 0 || int(location) >= len(p.uniforms) {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	u := p.uniforms[location]
	accepted := false
	for _, t := range uniformTypes[fn] {
		if t == u.typ {
			accepted = true
			break
		}
	}
	if !accepted {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	if isSampler(u.typ) && (values[0] < 0 || int(values[0]) >= len(d.units)) {
		d.setError(gl.INVALID_VALUE)
		return
	}
	p.values[location] = append([]float32(nil), values...)
}

// Uniform1f implements native.Programs.
func (d *Driver) Uniform1f(location int32, v float32) {
	d.storeUniform("Uniform1f", location, []float32{v})
}

// Uniform2f implements native.Programs.
func (d *Driver) Uniform2f(location int32, v0, v1 float32) {
	d.storeUniform("Uniform2f", location, []float32{v0, v1})
}

// Uniform3f implements native.Programs.
func (d *Driver) Uniform3f(location int32, v0, v1, v2 float32) {
	d.storeUniform("Uniform3f", location, []float32{v0, v1, v2})
}

// Uniform4f implements native.Programs.
func (d *Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	d.storeUniform("Uniform4f", location, []float32{v0, v1, v2, v3})
}

// Uniform1i implements native.Programs.
func (d *Driver) Uniform1i(location int32, v int32) {
	d.storeUniform("Uniform1i", location, []float32{float32(v)})
}

// Uniform2i implements native.Programs.
func (d *Driver) Uniform2i(location int32, v0, v1 int32) {
	d.storeUniform("Uniform2i", location, []float32{float32(v0), float32(v1)})
}

// UniformMatrix3fv implements native.Programs. OpenGL ES 2 does not
// accept transposed matrices.
func (d *Driver) UniformMatrix3fv(location int32, transpose bool, values []float32) {
	d.uniformMatrix("UniformMatrix3fv", 9, location, transpose, values)
}

// UniformMatrix4fv implements native.Programs.
func (d *Driver) UniformMatrix4fv(location int32, transpose bool, values []float32) {
	d.uniformMatrix("UniformMatrix4fv", 16, location, transpose, values)
}

func (d *Driver) uniformMatrix(fn string, n int, location int32, transpose bool, values []float32) {
	if (transpose && d.es2()) || len(values) < n {
		d.record(fn)
		d.setError(gl.INVALID_VALUE)
		return
	}
	d.storeUniform(fn, location, values[:n])
}
