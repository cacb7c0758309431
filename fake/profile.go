package fake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gpucontext"
)

// ErrInvalidProfile is returned when a profile cannot describe a context.
var ErrInvalidProfile = errors.New("fake: invalid profile")

// Profile describes the context a Driver pretends to be.
//
// Profiles are plain data and can be stored as TOML:
//
//	name = "mesa-gl33"
//	version = "3.3.0 Mesa 23.2.1"
//	renderer = "llvmpipe (LLVM 15.0.7, 256 bits)"
//	extensions = ["GL_EXT_texture_filter_anisotropic"]
//	depth_bits = 24
//	stencil_bits = 8
type Profile struct {
	Name                   string     `toml:"name"`
	Version                string     `toml:"version"`
	Vendor                 string     `toml:"vendor"`
	Renderer               string     `toml:"renderer"`
	ShadingLanguageVersion string     `toml:"shading_language_version"`
	Extensions             []string   `toml:"extensions"`
	DepthBits              int        `toml:"depth_bits"`
	StencilBits            int        `toml:"stencil_bits"`
	MaxTextureUnits        int        `toml:"max_texture_units"`
	MaxTextureSize         int        `toml:"max_texture_size"`
	MaxColorAttachments    int        `toml:"max_color_attachments"`
	MaxDrawBuffers         int        `toml:"max_draw_buffers"`
	MaxVertexAttribs       int        `toml:"max_vertex_attribs"`
	AliasedLineWidth       [2]float32 `toml:"aliased_line_width"`
	SmoothLineWidth        [2]float32 `toml:"smooth_line_width"`
	MaxAnisotropy          float32    `toml:"max_anisotropy"`
}

// Validate reports whether p describes a usable context.
func (p Profile) Validate() error {
	if _, _, _, err := parseVersion(p.Version); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidProfile, p.Name, err)
	}
	if p.MaxTextureUnits <= 0 {
		return fmt.Errorf("%w: %q: max_texture_units must be positive", ErrInvalidProfile, p.Name)
	}
	if p.MaxTextureSize <= 0 {
		return fmt.Errorf("%w: %q: max_texture_size must be positive", ErrInvalidProfile, p.Name)
	}
	if p.MaxVertexAttribs <= 0 {
		return fmt.Errorf("%w: %q: max_vertex_attribs must be positive", ErrInvalidProfile, p.Name)
	}
	return nil
}

// HasExtension reports whether name is in the profile's extension list.
func (p Profile) HasExtension(name string) bool {
	for _, e := range p.Extensions {
		if e == name {
			return true
		}
	}
	return false
}

// LoadProfile decodes a TOML profile from r and validates it.
func LoadProfile(r io.Reader) (Profile, error) {
	var p Profile
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("fake: decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfileFile reads a TOML profile from path.
func LoadProfileFile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, err
	}
	defer f.Close()
	return LoadProfile(f)
}

// Encode writes p as TOML.
func (p Profile) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p)
}

// parseVersion extracts the API flavour and version from a version string.
func parseVersion(s string) (es bool, major, minor int, err error) {
	rest, es := strings.CutPrefix(s, "OpenGL ES ")
	if _, err := fmt.Sscanf(rest, "%d.%d", &major, &minor); err != nil {
		return false, 0, 0, fmt.Errorf("unparseable version %q", s)
	}
	return es, major, minor, nil
}

// ===== Built-in profiles =====

var profiles = gpucontext.NewRegistry[Profile](
	gpucontext.WithPriority("gl46", "gl33", "gles3", "gl21", "gles2"),
)

func init() {
	profiles.Register("gles2", func() Profile {
		return Profile{
			Name:                   "gles2",
			Version:                "OpenGL ES 2.0 Mesa 23.2.1",
			Vendor:                 "Mesa",
			Renderer:               "llvmpipe (LLVM 15.0.7, 256 bits)",
			ShadingLanguageVersion: "OpenGL ES GLSL ES 1.0.16",
			Extensions: []string{
				"GL_OES_packed_depth_stencil",
				"GL_OES_depth_texture",
				"GL_OES_element_index_uint",
				"GL_EXT_texture_filter_anisotropic",
			},
			DepthBits:        24,
			StencilBits:      8,
			MaxTextureUnits:  8,
			MaxTextureSize:   4096,
			MaxVertexAttribs: 16,
			AliasedLineWidth: [2]float32{1, 255},
			SmoothLineWidth:  [2]float32{1, 1},
			MaxAnisotropy:    16,
		}
	})
	profiles.Register("gles3", func() Profile {
		return Profile{
			Name:                   "gles3",
			Version:                "OpenGL ES 3.2 Mesa 23.2.1",
			Vendor:                 "Mesa",
			Renderer:               "Mesa Intel(R) UHD Graphics 620 (KBL GT2)",
			ShadingLanguageVersion: "OpenGL ES GLSL ES 3.20",
			Extensions: []string{
				"GL_OES_packed_depth_stencil",
				"GL_OES_depth_texture",
				"GL_OES_element_index_uint",
				"GL_EXT_color_buffer_float",
			},
			DepthBits:           24,
			StencilBits:         8,
			MaxTextureUnits:     16,
			MaxTextureSize:      16384,
			MaxColorAttachments: 8,
			MaxDrawBuffers:      8,
			MaxVertexAttribs:    16,
			AliasedLineWidth:    [2]float32{1, 2047},
			SmoothLineWidth:     [2]float32{1, 1},
		}
	})
	profiles.Register("gl21", func() Profile {
		return Profile{
			Name:                   "gl21",
			Version:                "2.1 Mesa 23.2.1",
			Vendor:                 "Mesa",
			Renderer:               "llvmpipe (LLVM 15.0.7, 256 bits)",
			ShadingLanguageVersion: "1.20",
			Extensions: []string{
				"GL_ARB_framebuffer_object",
				"GL_EXT_framebuffer_object",
				"GL_EXT_packed_depth_stencil",
				"GL_EXT_texture_filter_anisotropic",
			},
			DepthBits:           24,
			StencilBits:         8,
			MaxTextureUnits:     16,
			MaxTextureSize:      8192,
			MaxColorAttachments: 8,
			MaxDrawBuffers:      8,
			MaxVertexAttribs:    16,
			AliasedLineWidth:    [2]float32{1, 255},
			SmoothLineWidth:     [2]float32{1, 255},
			MaxAnisotropy:       16,
		}
	})
	profiles.Register("gl33", func() Profile {
		return Profile{
			Name:                   "gl33",
			Version:                "3.3.0 Mesa 23.2.1",
			Vendor:                 "Mesa",
			Renderer:               "llvmpipe (LLVM 15.0.7, 256 bits)",
			ShadingLanguageVersion: "3.30",
			Extensions: []string{
				"GL_ARB_framebuffer_object",
				"GL_EXT_texture_filter_anisotropic",
				"GL_KHR_debug",
			},
			DepthBits:           24,
			StencilBits:         8,
			MaxTextureUnits:     16,
			MaxTextureSize:      8192,
			MaxColorAttachments: 8,
			MaxDrawBuffers:      8,
			MaxVertexAttribs:    16,
			AliasedLineWidth:    [2]float32{1, 1},
			SmoothLineWidth:     [2]float32{1, 7.375},
			MaxAnisotropy:       16,
		}
	})
	profiles.Register("gl46", func() Profile {
		return Profile{
			Name:                   "gl46",
			Version:                "4.6.0 NVIDIA 535.113.01",
			Vendor:                 "NVIDIA Corporation",
			Renderer:               "NVIDIA GeForce RTX 3070/PCIe/SSE2",
			ShadingLanguageVersion: "4.60 NVIDIA",
			Extensions: []string{
				"GL_ARB_framebuffer_object",
				"GL_ARB_direct_state_access",
				"GL_EXT_texture_filter_anisotropic",
				"GL_KHR_debug",
			},
			DepthBits:           24,
			StencilBits:         8,
			MaxTextureUnits:     32,
			MaxTextureSize:      32768,
			MaxColorAttachments: 8,
			MaxDrawBuffers:      8,
			MaxVertexAttribs:    16,
			AliasedLineWidth:    [2]float32{1, 10},
			SmoothLineWidth:     [2]float32{1, 10},
			MaxAnisotropy:       16,
		}
	})
}

// Profiles returns the names of the built-in profiles, sorted.
func Profiles() []string {
	names := profiles.Available()
	sort.Strings(names)
	return names
}

// LookupProfile returns the built-in profile with the given name.
func LookupProfile(name string) (Profile, bool) {
	if !profiles.Has(name) {
		return Profile{}, false
	}
	return profiles.Get(name), true
}

// DefaultProfile returns the highest-priority built-in profile.
func DefaultProfile() Profile {
	return profiles.Best()
}

// RegisterProfile adds or replaces a named profile. The profile is
// validated before it is registered.
func RegisterProfile(p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProfile)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	profiles.Register(p.Name, func() Profile {
		c := p
		c.Extensions = append([]string(nil), p.Extensions...)
		return c
	})
	return nil
}
