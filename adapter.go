package glcheck

import (
	"strings"

	"github.com/gogpu/gpucontext"
)

// adapterRules classify a renderer string. The first rule with a
// matching substring wins, so software rasterizers that mention the host
// GPU and integrated AMD parts come before the discrete vendors.
var adapterRules = []struct {
	substr string
	typ    gpucontext.AdapterType
}{
	{"llvmpipe", gpucontext.AdapterTypeSoftware},
	{"softpipe", gpucontext.AdapterTypeSoftware},
	{"swiftshader", gpucontext.AdapterTypeSoftware},
	{"swrast", gpucontext.AdapterTypeSoftware},
	{"software", gpucontext.AdapterTypeSoftware},
	{"intel", gpucontext.AdapterTypeIntegrated},
	{"mali", gpucontext.AdapterTypeIntegrated},
	{"adreno", gpucontext.AdapterTypeIntegrated},
	{"powervr", gpucontext.AdapterTypeIntegrated},
	{"apple", gpucontext.AdapterTypeIntegrated},
	{"radeon graphics", gpucontext.AdapterTypeIntegrated},
	{"vega 8", gpucontext.AdapterTypeIntegrated},
	{"nvidia", gpucontext.AdapterTypeDiscrete},
	{"geforce", gpucontext.AdapterTypeDiscrete},
	{"quadro", gpucontext.AdapterTypeDiscrete},
	{"radeon", gpucontext.AdapterTypeDiscrete},
	{"amd", gpucontext.AdapterTypeDiscrete},
}

// classifyRenderer guesses the adapter type from a GL_RENDERER string.
func classifyRenderer(renderer string) gpucontext.AdapterType {
	r := strings.ToLower(renderer)
	for _, rule := range adapterRules {
		if strings.Contains(r, rule.substr) {
			return rule.typ
		}
	}
	return gpucontext.AdapterTypeUnknown
}

// AdapterInfo describes the adapter behind the context. The type is
// inferred from the renderer string and is AdapterTypeUnknown when no
// known vendor or rasterizer name appears in it.
func (c *Common) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{
		Name: c.renderer,
		Type: classifyRenderer(c.renderer),
	}
}
