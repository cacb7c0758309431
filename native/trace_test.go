package native_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/fake"
	"github.com/gogpu/glcheck/native"
)

func TestTraceLogsCalls(t *testing.T) {
	d, err := fake.NewNamed("gl33")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tr := native.Trace(d, l)

	id := tr.GenBuffer()
	tr.BindBuffer(gl.ARRAY_BUFFER, id)
	if got := tr.GetString(gl.VERSION); got != d.Profile().Version {
		t.Errorf("GetString(VERSION) = %q, want %q", got, d.Profile().Version)
	}

	out := buf.String()
	for _, want := range []string{"gl: GenBuffer", "gl: BindBuffer", "gl: GetString"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output missing %q:\n%s", want, out)
		}
	}
	if d.CallCount("BindBuffer") != 1 {
		t.Errorf("BindBuffer forwarded %d times, want 1", d.CallCount("BindBuffer"))
	}
}

func TestTraceSilentAboveDebug(t *testing.T) {
	d, _ := fake.NewNamed("gles2")
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	tr := native.Trace(d, l)
	tr.Enable(gl.BLEND)
	if buf.Len() != 0 {
		t.Errorf("trace wrote at info level: %s", buf.String())
	}
	if !d.IsEnabled(gl.BLEND) {
		t.Error("Enable was not forwarded")
	}
}
