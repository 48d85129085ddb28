// Test Type: Unit Test
// Description: Tests for profile flags, source layout and the link response file

package build_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tidyforge/pkg/build"
	"github.com/arthur-debert/tidyforge/pkg/config"
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.BuildConfig {
	return config.BuildConfig{
		Compiler:    "clang",
		Linker:      "lld-link",
		ProjectDir:  "/proj",
		Sources:     []string{"src/*.cpp"},
		BuildDir:    "clang-build",
		OutDir:      "clang-output",
		Output:      "Core.dll",
		IncludeDirs: []string{"include", "/opt/sdk/include"},
		LibDirs:     []string{"lib"},
		Defines:     []string{"WIN32"},
		Flags:       []string{"-c"},
		LinkFlags:   []string{"/DLL"},
		Libs:        []string{"Kernel32.Lib"},
		Profiles: map[string]config.ProfileConfig{
			"release": {Defines: []string{"NDEBUG"}, Flags: []string{"-O2"}, LinkFlags: []string{"/OPT:REF"}},
			"debug":   {Defines: []string{"_DEBUG"}, Flags: []string{"-O0", "-g"}},
		},
	}
}

func TestResolveArgs(t *testing.T) {
	args, err := build.ResolveArgs(testConfig(), "release")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"-c", "-O2", "-DWIN32", "-DNDEBUG",
		"-I/proj/include", "-I/opt/sdk/include",
	}, args.Compile)
	assert.Equal(t, []string{"/DLL", "/OPT:REF"}, args.Link)

	debug, err := build.ResolveArgs(testConfig(), "debug")
	require.NoError(t, err)
	assert.Contains(t, debug.Compile, "-D_DEBUG")
	assert.NotContains(t, debug.Compile, "-DNDEBUG")
	assert.Equal(t, []string{"/DLL"}, debug.Link)
}

func TestResolveArgs_UnknownProfile(t *testing.T) {
	_, err := build.ResolveArgs(testConfig(), "profiling")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestSources(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/proj/src", 0755))
	for _, f := range []string{"CvUnit.cpp", "CvCity.cpp", "CvCity.h"} {
		require.NoError(t, fs.WriteFile("/proj/src/"+f, []byte("//"), 0644))
	}

	sources, err := build.Sources(fs, "/proj", []string{"src/*.cpp", "src/CvCity.cpp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/CvCity.cpp", "src/CvUnit.cpp"}, sources)
}

func TestLayout(t *testing.T) {
	l := build.NewLayout(testConfig(), "debug")

	assert.Equal(t, "/proj/clang-build/debug", l.BuildDir)
	assert.Equal(t, "/proj/clang-output/debug/build.log", l.LogPath())
	assert.Equal(t, "/proj/clang-build/debug/src/CvUnit.obj", l.Object("src/CvUnit.cpp"))

	bin, pdb := l.OutputPaths("Core.dll")
	assert.Equal(t, "/proj/clang-output/debug/Core.dll", bin)
	assert.Equal(t, "/proj/clang-output/debug/Core.pdb", pdb)
}

func TestWriteResponseFile(t *testing.T) {
	fs := filesystem.NewMemory()
	cfg := testConfig()
	l := build.NewLayout(cfg, "release")
	sources := []string{"src/a.cpp", "src/b.cpp"}
	require.NoError(t, l.Prepare(fs, sources))
	require.NoError(t, fs.WriteFile(l.Object("src/a.cpp"), []byte("obj"), 0644))

	args, err := build.ResolveArgs(cfg, "release")
	require.NoError(t, err)

	warnings, err := build.WriteResponseFile(fs, l, cfg, args, sources)
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], filepath.Join(l.BuildDir, "src/b.obj"))

	data, err := fs.ReadFile(l.ResponseFile())
	require.NoError(t, err)
	want := `/OUT:"/proj/clang-output/release/Core.dll"
/PDB:"/proj/clang-output/release/Core.pdb"
/DLL
/OPT:REF
/LIBPATH:"/proj/lib"
Kernel32.Lib
"/proj/clang-build/release/src/a.obj"
"/proj/clang-build/release/src/b.obj"
`
	assert.Equal(t, want, string(data))
}
