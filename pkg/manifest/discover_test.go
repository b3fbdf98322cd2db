package manifest

import (
	"testing"

	"github.com/arthur-debert/vendorsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_Ordering(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("", map[string]string{
		"b/y.cpp": "",
		"a/x.c":   "",
		"a/z.cc":  "",
	})

	files, err := Discover(env.FS, env.Root, []string{"a", "b"}, DefaultExtensions)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/x.c", "a/z.cc", "b/y.cpp"}, files)
}

func TestDiscover_OrderIndependentOfSubdirOrder(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("", map[string]string{
		"b/y.cpp": "",
		"a/x.c":   "",
	})

	files, err := Discover(env.FS, env.Root, []string{"b", "a"}, DefaultExtensions)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/x.c", "b/y.cpp"}, files)
}

func TestDiscover_Idempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("", map[string]string{
		"tensorflow/lite/micro/kernels/add.cc":   "",
		"tensorflow/lite/micro/kernels/add.h":    "",
		"tensorflow/lite/micro/micro_log.cc":     "",
		"third_party/kissfft/kiss_fft.c":         "",
		"third_party/flatbuffers/include/base.h": "",
		"signal/src/window.cxx":                  "",
	})
	subdirs := []string{"signal", "tensorflow", "third_party"}

	first, err := Discover(env.FS, env.Root, subdirs, DefaultExtensions)
	require.NoError(t, err)
	second, err := Discover(env.FS, env.Root, subdirs, DefaultExtensions)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		"signal/src/window.cxx",
		"tensorflow/lite/micro/kernels/add.cc",
		"tensorflow/lite/micro/micro_log.cc",
		"third_party/kissfft/kiss_fft.c",
	}, first)
}

func TestDiscover_FiltersExtensions(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("", map[string]string{
		"src/a.c":      "",
		"src/b.cc":     "",
		"src/c.cxx":    "",
		"src/d.cpp":    "",
		"src/e.h":      "",
		"src/f.hpp":    "",
		"src/g.C":      "",
		"src/h.cpp.in": "",
		"src/README":   "",
	})

	files, err := Discover(env.FS, env.Root, []string{"src"}, DefaultExtensions)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.c", "src/b.cc", "src/c.cxx", "src/d.cpp"}, files)

	files, err = Discover(env.FS, env.Root, []string{"src"}, []string{".cpp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/d.cpp"}, files)
}

func TestDiscover_MissingAndFileSubdirs(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("", map[string]string{
		"LICENSE": "",
		"a/x.c":   "",
		"top.c":   "",
	})

	files, err := Discover(env.FS, env.Root, []string{"missing", "LICENSE", "top.c", "a"}, DefaultExtensions)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/x.c"}, files)
}

func TestDiscover_NestedSubdirsDeduplicated(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("", map[string]string{"a/b/x.c": ""})

	files, err := Discover(env.FS, env.Root, []string{"a", "a/b"}, DefaultExtensions)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b/x.c"}, files)
}

func TestDiscover_Empty(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	files, err := Discover(env.FS, env.Root, nil, DefaultExtensions)
	require.NoError(t, err)
	assert.Empty(t, files)
}
