package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/gogpu/glcheck"
	"github.com/gogpu/glcheck/fake"
	"github.com/gogpu/glcheck/shader"
)

var (
	okColor      = color.New(color.FgGreen).SprintFunc()
	hiddenColor  = color.New(color.FgYellow).SprintFunc()
	missingColor = color.New(color.FgRed).SprintFunc()
	titleColor   = color.New(color.Bold).SprintFunc()
)

type extensionRow struct {
	name    string
	visible bool
}

type capabilityRow struct {
	name   string
	via    string
	usable bool
}

// report is everything glprobe prints about one context.
type report struct {
	profile    string
	version    glcheck.Version
	vendor     string
	renderer   string
	adapter    string
	glsl       string
	limits     [][2]string
	extensions []extensionRow
	caps       []capabilityRow
}

// probe opens a fake driver for p and collects the report.
func probe(p fake.Profile, opts ...glcheck.Option) (*report, error) {
	drv, err := fake.New(p)
	if err != nil {
		return nil, err
	}
	iface, err := glcheck.Open(drv, opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.Name, err)
	}

	r := &report{
		profile:  p.Name,
		version:  iface.Version(),
		vendor:   iface.Vendor(),
		renderer: iface.Renderer(),
		adapter:  iface.AdapterInfo().Type.String(),
	}
	if v, err := shader.LanguageVersion(iface.Version()); err == nil {
		r.glsl = "GLSL " + v.String()
	} else {
		r.glsl = "none"
	}

	ext := iface.Extensions()
	for _, name := range ext.Supported().ToSlice() {
		r.extensions = append(r.extensions, extensionRow{name: name, visible: ext.IsVisible(name)})
	}
	sort.Slice(r.extensions, func(i, j int) bool { return r.extensions[i].name < r.extensions[j].name })

	var c *glcheck.Common
	switch f := iface.(type) {
	case *glcheck.Embedded:
		c = f.Common
		_, packed := f.PackedDepthStencil()
		_, depth := f.DepthTexture()
		r.caps = append(r.caps,
			capabilityRow{"packed depth/stencil", glcheck.ExtPackedDepthStencilOES, packed},
			capabilityRow{"depth textures", glcheck.ExtDepthTexture, depth},
		)
	case *glcheck.Legacy:
		c = f.Common
		r.limits = append(r.limits, [2]string{"draw buffers", strconv.Itoa(len(f.FramebufferDrawBuffers()))})
	case *glcheck.Modern:
		c = f.Common
		r.limits = append(r.limits, [2]string{"draw buffers", strconv.Itoa(len(f.FramebufferDrawBuffers()))})
	}
	aniso, ok := c.TextureFilterAnisotropic()
	r.caps = append(r.caps, capabilityRow{"anisotropic filtering", glcheck.ExtTextureFilterAnisotropic, ok})

	depth, err := c.DepthBufferGetBits()
	if err != nil {
		return nil, err
	}
	stencil, err := c.StencilBufferGetBits()
	if err != nil {
		return nil, err
	}
	aliased, smooth := c.LineWidthRange()
	r.limits = append([][2]string{
		{"texture units", strconv.Itoa(len(c.TextureUnits()))},
		{"texture size", strconv.Itoa(c.TextureMaximumSize())},
		{"renderbuffer size", strconv.Itoa(c.RenderbufferMaximumSize())},
		{"color attachments", strconv.Itoa(len(c.FramebufferColorAttachmentPoints()))},
		{"depth bits", strconv.Itoa(depth)},
		{"stencil bits", strconv.Itoa(stencil)},
		{"aliased line width", fmt.Sprintf("[%g, %g]", aliased[0], aliased[1])},
		{"smooth line width", fmt.Sprintf("[%g, %g]", smooth[0], smooth[1])},
	}, r.limits...)
	if ok {
		r.limits = append(r.limits, [2]string{"max anisotropy", fmt.Sprintf("%g", aniso.MaximumAnisotropy())})
	}
	return r, nil
}

func (r *report) render(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", titleColor("Profile:"), r.profile)
	fmt.Fprintf(w, "%s %s (%s tier)\n", titleColor("Version:"), r.version, r.version.Tier)
	fmt.Fprintf(w, "%s %s / %s (%s)\n", titleColor("Device: "), r.vendor, r.renderer, r.adapter)
	fmt.Fprintf(w, "%s %s\n\n", titleColor("Shaders:"), r.glsl)

	limits := newTable(w, "Limit", "Value")
	for _, l := range r.limits {
		limits.Append(l[:])
	}
	limits.Render()
	fmt.Fprintln(w)

	exts := newTable(w, "Extension", "Status")
	for _, e := range r.extensions {
		status := okColor("visible")
		if !e.visible {
			status = hiddenColor("hidden")
		}
		exts.Append([]string{e.name, status})
	}
	exts.Render()
	fmt.Fprintln(w)

	caps := newTable(w, "Capability", "Extension", "Status")
	for _, c := range r.caps {
		status := okColor("available")
		if !c.usable {
			status = missingColor("unavailable")
		}
		caps.Append([]string{c.name, c.via, status})
	}
	caps.Render()
}

func renderProfiles(w io.Writer, names []string, best string) {
	t := newTable(w, "Profile", "Version", "Renderer", "Default")
	for _, name := range names {
		p, ok := fake.LookupProfile(name)
		if !ok {
			continue
		}
		def := ""
		if name == best {
			def = okColor("*")
		}
		t.Append([]string{p.Name, p.Version, p.Renderer, def})
	}
	t.Render()
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetAutoWrapText(false)
	return t
}
