package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/gogpu/glcheck"
	"github.com/gogpu/glcheck/fake"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"glprobe"}, args...))
	t.Cleanup(func() { glcheck.SetLogger(nil) })
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ===== Commands =====

func TestProfilesCommand(t *testing.T) {
	out, err := run(t, "profiles")
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	for _, name := range fake.Profiles() {
		if !strings.Contains(out, name) {
			t.Errorf("output does not list %q:\n%s", name, out)
		}
	}
}

func TestReportCommand(t *testing.T) {
	tests := []struct {
		profile string
		want    []string
	}{
		{"gles2", []string{"OpenGL ES 2.0", "Embedded", "GL_OES_depth_texture", "depth textures", "Shaders: none"}},
		{"gl21", []string{"OpenGL 2.1", "Legacy", "draw buffers"}},
		{"gl46", []string{"OpenGL 4.6", "Modern", "GLSL 460 core", "Discrete"}},
	}
	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			out, err := run(t, "report", "--profile", tt.profile)
			if err != nil {
				t.Fatalf("report: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output does not contain %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestReportWithPolicy(t *testing.T) {
	policy := writeFile(t, "policy.toml", `
hidden = ["GL_OES_depth_texture"]
max_texture_units = 2
`)
	r, err := probeWithPolicy(t, "gles2", policy)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range r.extensions {
		if e.name == glcheck.ExtDepthTexture && e.visible {
			t.Error("GL_OES_depth_texture visible under a policy that hides it")
		}
	}
	for _, c := range r.caps {
		if c.name == "depth textures" && c.usable {
			t.Error("depth textures usable under a policy that hides them")
		}
	}
	if got := r.limits[0]; got != [2]string{"texture units", "2"} {
		t.Errorf("limits[0] = %v, want texture units 2", got)
	}

	out, err := run(t, "report", "--profile", "gles2", "--policy", policy)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "hidden") {
		t.Errorf("output does not mark the hidden extension:\n%s", out)
	}
}

func probeWithPolicy(t *testing.T, profile, path string) (*report, error) {
	t.Helper()
	p, ok := fake.LookupProfile(profile)
	if !ok {
		t.Fatalf("unknown profile %q", profile)
	}
	policy, err := glcheck.LoadPolicyFile(path)
	if err != nil {
		return nil, err
	}
	return probe(p, glcheck.WithRestrictions(policy))
}

func TestDumpRoundTrip(t *testing.T) {
	out, err := run(t, "dump", "--profile", "gl33")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	path := writeFile(t, "gl33.toml", strings.Replace(out, `name = "gl33"`, `name = "custom"`, 1))

	out, err = run(t, "report", "--profile-file", path)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "Profile: custom") || !strings.Contains(out, "OpenGL 3.3") {
		t.Errorf("report of dumped profile:\n%s", out)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown profile", []string{"report", "--profile", "gl99"}},
		{"missing profile file", []string{"dump", "--profile-file", filepath.Join(t.TempDir(), "none.toml")}},
		{"bad log level", []string{"--log-level", "loud", "profiles"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("Run() error = nil, want an error")
			}
		})
	}
}
