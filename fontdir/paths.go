package fontdir

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/flopp/go-findfont"
)

// Root is a starting point for a font scan.
type Root struct {
	Path  string   // directory, used for display and for entry paths
	FS    fs.FS    // file system rooted at Path
	Files []string // if non-empty, only these files are scanned, without walking
}

// IO decouples font directory discovery from OS I/O for testability.
type IO interface {
	Executable() (string, error)
	DirFS(string) fs.FS
	SystemFontFiles() []string
}

// SystemIO is the IO of the host system.
var SystemIO IO = systemIO{}

type systemIO struct{}

func (systemIO) Executable() (string, error) {
	return os.Executable()
}

func (systemIO) DirFS(path string) fs.FS {
	return os.DirFS(path)
}

// SystemFontFiles lists the font files in the font directories of the host
// operating system, as found by go-findfont.
func (systemIO) SystemFontFiles() []string {
	return findfont.List()
}

// fallbackDirs are scanned if the host system does not tell where its fonts are.
func fallbackDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Windows\Fonts`}
	case "darwin":
		return []string{"/Library/Fonts", "/System/Library/Fonts", "/Network/Library/Fonts"}
	}
	return []string{"/usr/share/fonts", "/usr/local/share/fonts", "/usr/X11R6/lib/X11/fonts"}
}

// SearchPaths returns the font search roots in priority order:
//
// ▪︎ the directory containing the running executable,
//
// ▪︎ the installed fonts of the host system, if these can be discovered,
//
// ▪︎ otherwise a fixed list of well-known font directories.
func SearchPaths(io IO) []Root {
	if io == nil {
		io = SystemIO
	}
	var roots []Root
	if exe, err := io.Executable(); err == nil {
		dir := filepath.Dir(exe)
		roots = append(roots, Root{Path: dir, FS: io.DirFS(dir)})
	} else {
		tracer().Infof("cannot locate executable: %v", err)
	}
	if files := io.SystemFontFiles(); len(files) > 0 {
		tracer().Debugf("host system reports %d font files", len(files))
		return append(roots, groupByDir(io, files)...)
	}
	tracer().Infof("host system font directory unknown, using fallback list")
	for _, dir := range fallbackDirs() {
		roots = append(roots, DirRoot(io, dir))
	}
	return roots
}

// DirRoot creates a root for walking a directory.
func DirRoot(io IO, dir string) Root {
	if io == nil {
		io = SystemIO
	}
	return Root{Path: dir, FS: io.DirFS(dir)}
}

// groupByDir bundles files into roots per directory, keeping the order in
// which directories first appear.
func groupByDir(io IO, files []string) []Root {
	var roots []Root
	inx := make(map[string]int)
	for _, f := range files {
		dir, name := filepath.Split(f)
		dir = filepath.Clean(dir)
		i, ok := inx[dir]
		if !ok {
			i = len(roots)
			inx[dir] = i
			roots = append(roots, Root{Path: dir, FS: io.DirFS(dir)})
		}
		roots[i].Files = append(roots[i].Files, name)
	}
	return roots
}
