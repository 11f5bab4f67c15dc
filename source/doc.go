// Package source provides stream producers backed by the file system.
//
// Dir and ListDir read directory entries lazily through an afero.Fs, so the
// same code lists the real disk, a read-only view of it, or an in-memory
// tree in tests. Watcher turns fsnotify change notifications into a
// pull-based producer with blocking, bounded and batch polling.
//
// Failures to read or watch are reported as SOURCE_FAILURE errors carrying
// the directory or watcher label.
//
//	files := source.ListDir(afero.NewOsFs(), ".", source.WithHidden(false))
//	names := stream.Map(files, func(e source.Entry) string { return e.Name })
//
//	w, err := source.Watch(".", source.WithOps(fsnotify.Write))
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	batch, err := w.Poll(ctx, time.Minute)
package source
