// Package shader translates WGSL shaders to the GLSL dialect of a
// validated context and builds programs from them through the facade.
//
// Translation uses naga. naga emits GLSL 3.30 core or GLSL ES 3.00 and
// later, so OpenGL ES 2.0, OpenGL 2.1 and OpenGL 3.0 to 3.2 contexts
// cannot run translated shaders and get an *glcheck.UnsupportedError.
package shader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/glcheck"
)

// Stage is a programmable pipeline stage.
type Stage uint8

const (
	Vertex Stage = iota + 1
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

func (s Stage) ir() (ir.ShaderStage, bool) {
	switch s {
	case Vertex:
		return ir.StageVertex, true
	case Fragment:
		return ir.StageFragment, true
	}
	return 0, false
}

// ErrNoEntryPoint is returned when a module has no entry point for the
// requested stage or name.
var ErrNoEntryPoint = errors.New("shader: entry point not found")

// TranslateError reports a WGSL module that naga rejected.
type TranslateError struct {
	Stage Stage
	Entry string
	Err   error
}

func (e *TranslateError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("shader: translate %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("shader: translate %s %q: %v", e.Stage, e.Entry, e.Err)
}

func (e *TranslateError) Unwrap() error { return e.Err }

// LanguageVersion returns the GLSL version that translated shaders use
// on a context of version v.
func LanguageVersion(v glcheck.Version) (glsl.Version, error) {
	switch v.Tier {
	case glcheck.TierEmbedded:
		switch {
		case v.AtLeast(3, 2):
			return glsl.VersionES320, nil
		case v.AtLeast(3, 1):
			return glsl.VersionES310, nil
		case v.AtLeast(3, 0):
			return glsl.VersionES300, nil
		}
	case glcheck.TierModern:
		switch {
		case v.AtLeast(4, 6):
			return glsl.Version460, nil
		case v.AtLeast(4, 5):
			return glsl.Version450, nil
		case v.AtLeast(4, 3):
			return glsl.Version430, nil
		case v.AtLeast(4, 2):
			return glsl.Version420, nil
		case v.AtLeast(4, 1):
			return glsl.Version410, nil
		case v.AtLeast(4, 0):
			return glsl.Version400, nil
		case v.AtLeast(3, 3):
			return glsl.Version330, nil
		}
	}
	return glsl.Version{}, &glcheck.UnsupportedError{
		Message: fmt.Sprintf("%s has no GLSL target for translated shaders", v),
	}
}

// Module is a parsed and validated WGSL module.
type Module struct {
	ir *ir.Module
}

// Parse parses and validates WGSL source.
func Parse(source string) (*Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("shader: %w", err)
	}
	m, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("shader: %w", err)
	}
	verrs, err := naga.Validate(m)
	if err != nil {
		return nil, fmt.Errorf("shader: %w", err)
	}
	if len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return nil, fmt.Errorf("shader: invalid module: %w", errors.Join(errs...))
	}
	return &Module{ir: m}, nil
}

// EntryPoints returns the names of the entry points of stage s in
// declaration order.
func (m *Module) EntryPoints(s Stage) []string {
	stage, ok := s.ir()
	if !ok {
		return nil
	}
	var names []string
	for _, ep := range m.ir.EntryPoints {
		if ep.Stage == stage {
			names = append(names, ep.Name)
		}
	}
	return names
}

// entryPoint resolves name for stage s. An empty name selects the first
// entry point of the stage.
func (m *Module) entryPoint(s Stage, name string) (string, error) {
	names := m.EntryPoints(s)
	if len(names) == 0 {
		return "", fmt.Errorf("%w: no %s entry point", ErrNoEntryPoint, s)
	}
	if name == "" {
		return names[0], nil
	}
	for _, n := range names {
		if n == name {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: no %s entry point %q", ErrNoEntryPoint, s, name)
}

// Output is a translated entry point.
type Output struct {
	Stage      Stage
	Entry      string
	Version    glsl.Version
	Source     string
	Extensions []string
}

// Translate emits GLSL for one entry point of m.
func (m *Module) Translate(version glsl.Version, s Stage, entry string) (*Output, error) {
	name, err := m.entryPoint(s, entry)
	if err != nil {
		return nil, &TranslateError{Stage: s, Entry: entry, Err: err}
	}
	opts := glsl.DefaultOptions()
	opts.LangVersion = version
	opts.EntryPoint = name
	if s == Vertex {
		opts.WriterFlags |= glsl.WriterFlagAdjustCoordinateSpace
	}
	src, info, err := glsl.Compile(m.ir, opts)
	if err != nil {
		return nil, &TranslateError{Stage: s, Entry: name, Err: err}
	}
	return &Output{
		Stage:      s,
		Entry:      name,
		Version:    version,
		Source:     src,
		Extensions: info.UsedExtensions,
	}, nil
}

// Compiler is the subset of a facade that builds programs. Every
// glcheck facade implements it.
type Compiler interface {
	Version() glcheck.Version
	Logger() *slog.Logger
	VertexShaderCompile(name, source string) (*glcheck.VertexShader, error)
	FragmentShaderCompile(name, source string) (*glcheck.FragmentShader, error)
	ProgramCreate(name string, v *glcheck.VertexShader, f *glcheck.FragmentShader) (*glcheck.Program, error)
	VertexShaderDelete(s *glcheck.VertexShader) error
	FragmentShaderDelete(s *glcheck.FragmentShader) error
}

var (
	_ Compiler = (*glcheck.Embedded)(nil)
	_ Compiler = (*glcheck.Legacy)(nil)
	_ Compiler = (*glcheck.Modern)(nil)
)

// Entries names the entry points a program is built from. Empty names
// select the first entry point of the stage.
type Entries struct {
	Vertex   string
	Fragment string
}

// Build translates the vertex and fragment entry points of m for the
// context behind c, compiles both and links them into a program named
// name. The shader objects are deleted once the program is linked.
func Build(c Compiler, name string, m *Module, entries Entries) (*glcheck.Program, error) {
	return build(c, name, m.Translate, entries)
}

type translateFunc func(version glsl.Version, s Stage, entry string) (*Output, error)

func build(c Compiler, name string, translate translateFunc, entries Entries) (*glcheck.Program, error) {
	version, err := LanguageVersion(c.Version())
	if err != nil {
		return nil, err
	}
	vs, err := translate(version, Vertex, entries.Vertex)
	if err != nil {
		return nil, err
	}
	fs, err := translate(version, Fragment, entries.Fragment)
	if err != nil {
		return nil, err
	}

	log := c.Logger()
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("shader: translated",
			"program", name,
			"glsl", version.String(),
			"vertex", vs.Entry,
			"fragment", fs.Entry,
			"extensions", slices.Concat(vs.Extensions, fs.Extensions))
	}

	v, err := c.VertexShaderCompile(name+"."+vs.Entry, vs.Source)
	if err != nil {
		return nil, err
	}
	f, err := c.FragmentShaderCompile(name+"."+fs.Entry, fs.Source)
	if err != nil {
		_ = c.VertexShaderDelete(v)
		return nil, err
	}
	p, err := c.ProgramCreate(name, v, f)
	if derr := errors.Join(c.VertexShaderDelete(v), c.FragmentShaderDelete(f)); derr != nil && err == nil {
		return p, derr
	}
	return p, err
}

// BuildSource parses source and builds a program from it.
func BuildSource(c Compiler, name, source string, entries Entries) (*glcheck.Program, error) {
	m, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return Build(c, name, m, entries)
}
