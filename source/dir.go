package source

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/stream"
)

const defaultBatchSize = 64

// Entry describes one directory entry.
type Entry struct {
	Name    string
	Path    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// Hidden reports whether the entry is a dot-file.
func (e Entry) Hidden() bool { return strings.HasPrefix(e.Name, ".") }

// Ext returns the entry's file name extension, including the dot.
func (e Entry) Ext() string { return filepath.Ext(e.Name) }

func newEntry(dir string, fi fs.FileInfo) Entry {
	return Entry{
		Name:    fi.Name(),
		Path:    filepath.Join(dir, fi.Name()),
		Size:    fi.Size(),
		Mode:    fi.Mode(),
		ModTime: fi.ModTime(),
		IsDir:   fi.IsDir(),
	}
}

type dirOptions struct {
	pattern string
	hidden  bool
	batch   int
}

// DirOption configures a directory listing.
type DirOption func(*dirOptions)

// WithPattern keeps only entries whose name matches the filepath.Match glob.
func WithPattern(glob string) DirOption {
	return func(o *dirOptions) { o.pattern = glob }
}

// WithHidden controls whether dot-files are listed. They are by default.
func WithHidden(include bool) DirOption {
	return func(o *dirOptions) { o.hidden = include }
}

// WithBatchSize sets how many entries are read from the directory per
// underlying call.
func WithBatchSize(n int) DirOption {
	return func(o *dirOptions) {
		if n > 0 {
			o.batch = n
		}
	}
}

// Dir returns an iterator over the entries of dir. The directory is opened
// on the first pull and read in batches; entries come in the order the file
// system reports them.
func Dir(fsys afero.Fs, dir string, opts ...DirOption) stream.Iterator[Entry] {
	o := dirOptions{hidden: true, batch: defaultBatchSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &dirIter{fs: fsys, dir: dir, opts: o}
}

// ListDir returns a restartable stream over the entries of dir. Each
// terminal operation lists the directory afresh.
func ListDir(fsys afero.Fs, dir string, opts ...DirOption) *stream.Stream[Entry] {
	return stream.FromFunc(func(context.Context) stream.Iterator[Entry] {
		return Dir(fsys, dir, opts...)
	}).Named(dir)
}

type dirIter struct {
	fs   afero.Fs
	dir  string
	opts dirOptions

	f    afero.File
	buf  []fs.FileInfo
	done bool
}

func (it *dirIter) Next(ctx context.Context) (Entry, bool, error) {
	for {
		for len(it.buf) > 0 {
			fi := it.buf[0]
			it.buf = it.buf[1:]
			keep, err := it.accept(fi)
			if err != nil {
				return Entry{}, false, err
			}
			if keep {
				return newEntry(it.dir, fi), true, nil
			}
		}
		if it.done {
			return Entry{}, false, nil
		}
		if err := ctx.Err(); err != nil {
			return Entry{}, false, errors.SourceFailure(it.dir, err)
		}
		if err := it.fill(); err != nil {
			return Entry{}, false, err
		}
	}
}

func (it *dirIter) fill() error {
	if it.f == nil {
		f, err := it.fs.Open(it.dir)
		if err != nil {
			it.done = true
			return errors.SourceFailure(it.dir, err)
		}
		it.f = f
	}
	infos, err := it.f.Readdir(it.opts.batch)
	if err != nil && !stderrors.Is(err, io.EOF) {
		it.done = true
		return errors.SourceFailure(it.dir, err)
	}
	if len(infos) == 0 {
		it.done = true
	}
	it.buf = infos
	return nil
}

func (it *dirIter) accept(fi fs.FileInfo) (bool, error) {
	name := fi.Name()
	if !it.opts.hidden && strings.HasPrefix(name, ".") {
		return false, nil
	}
	if it.opts.pattern == "" {
		return true, nil
	}
	ok, err := filepath.Match(it.opts.pattern, name)
	if err != nil {
		it.done = true
		it.buf = nil
		return false, errors.InvalidArgument("pattern", it.opts.pattern).WithCause(err)
	}
	return ok, nil
}

func (it *dirIter) Close() error {
	if it.f == nil {
		return nil
	}
	err := it.f.Close()
	it.f = nil
	it.done = true
	return err
}
