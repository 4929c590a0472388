package driver

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// CreateFS defines a file system interface that supports creating files and
// directories, used as the fixture output target.
type CreateFS interface {
	// Sub returns a filesystem for a subdirectory.
	Sub(name string) (sub CreateFS, err error)
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Mkdir creates a new directory with the specified permissions.
	Mkdir(name string, filemode fs.FileMode) (err error)
}

// MkdirAll returns the filesystem for dir below filesys, creating every
// missing directory on the way.
func MkdirAll(filesys CreateFS, dir string) (sub CreateFS, err error) {
	sub = filesys
	for _, name := range strings.Split(filepath.ToSlash(dir), "/") {
		if len(name) == 0 || name == "." {
			continue
		}
		var next CreateFS
		next, err = sub.Sub(name)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return
			}
			err = sub.Mkdir(name, 0755)
			if err != nil {
				return
			}
			next, err = sub.Sub(name)
			if err != nil {
				return
			}
		}
		sub = next
	}
	return
}

// DirFS is a CreateFS rooted at an operating system directory.
type DirFS string

var _ CreateFS = DirFS("")

func (dir DirFS) join(name string) string {
	return filepath.Join(string(dir), filepath.FromSlash(name))
}

func (dir DirFS) Sub(name string) (sub CreateFS, err error) {
	info, err := os.Stat(dir.join(name))
	if err != nil {
		return
	}
	if !info.IsDir() {
		err = &fs.PathError{Op: "sub", Path: dir.join(name), Err: ErrNotDir}
		return
	}
	sub = DirFS(dir.join(name))
	return
}

func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	return os.Create(dir.join(name))
}

func (dir DirFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	return os.Mkdir(dir.join(name), filemode)
}

// memStore is the shared backing of a MemFS tree.
type memStore struct {
	mutex sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
}

// MemFS is an in-memory CreateFS.
type MemFS struct {
	store *memStore
	dir   string
}

var _ CreateFS = &MemFS{}

// NewMemFS creates an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{
		store: &memStore{
			files: make(map[string][]byte),
			dirs:  map[string]bool{".": true},
		},
		dir: ".",
	}
}

func (mfs *MemFS) join(name string) string {
	return path.Join(mfs.dir, name)
}

func (mfs *MemFS) Sub(name string) (sub CreateFS, err error) {
	mfs.store.mutex.Lock()
	defer mfs.store.mutex.Unlock()

	full := mfs.join(name)
	if !mfs.store.dirs[full] {
		err = &fs.PathError{Op: "sub", Path: full, Err: fs.ErrNotExist}
		return
	}
	sub = &MemFS{store: mfs.store, dir: full}
	return
}

func (mfs *MemFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	mfs.store.mutex.Lock()
	defer mfs.store.mutex.Unlock()

	full := mfs.join(name)
	_, isFile := mfs.store.files[full]
	if mfs.store.dirs[full] || isFile {
		err = &fs.PathError{Op: "mkdir", Path: full, Err: fs.ErrExist}
		return
	}
	if !mfs.store.dirs[path.Dir(full)] {
		err = &fs.PathError{Op: "mkdir", Path: full, Err: fs.ErrNotExist}
		return
	}
	mfs.store.dirs[full] = true
	return
}

func (mfs *MemFS) Create(name string) (file io.WriteCloser, err error) {
	mfs.store.mutex.Lock()
	defer mfs.store.mutex.Unlock()

	full := mfs.join(name)
	if mfs.store.dirs[full] || !mfs.store.dirs[path.Dir(full)] {
		err = &fs.PathError{Op: "create", Path: full, Err: fs.ErrInvalid}
		return
	}
	mfs.store.files[full] = nil
	file = &memFile{store: mfs.store, name: full}
	return
}

// ReadFile returns the contents of a closed file.
func (mfs *MemFS) ReadFile(name string) (data []byte, err error) {
	mfs.store.mutex.Lock()
	defer mfs.store.mutex.Unlock()

	full := mfs.join(name)
	data, ok := mfs.store.files[full]
	if !ok {
		err = &fs.PathError{Op: "read", Path: full, Err: fs.ErrNotExist}
		return
	}
	data = slices.Clone(data)
	return
}

// Files lists every file path in the tree, sorted.
func (mfs *MemFS) Files() (names []string) {
	mfs.store.mutex.Lock()
	defer mfs.store.mutex.Unlock()

	for name := range mfs.store.files {
		names = append(names, name)
	}
	slices.Sort(names)
	return
}

// memFile buffers writes until Close.
type memFile struct {
	store  *memStore
	name   string
	buffer bytes.Buffer
	closed bool
}

func (mf *memFile) Write(data []byte) (n int, err error) {
	if mf.closed {
		err = fs.ErrClosed
		return
	}
	return mf.buffer.Write(data)
}

func (mf *memFile) Close() (err error) {
	if mf.closed {
		err = fs.ErrClosed
		return
	}
	mf.closed = true

	mf.store.mutex.Lock()
	defer mf.store.mutex.Unlock()
	mf.store.files[mf.name] = slices.Clone(mf.buffer.Bytes())
	return
}
