package download

import (
	"os"

	"hikyaku/pkg/chunk"
	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
	"hikyaku/pkg/pool"
)

func readLocal(object fsobject.Object, r chunk.Range, bufPool *pool.BufferPool) ([]byte, error) {
	handle, err := object.Local.Handle(func() (fsobject.FileHandle, error) {
		return os.Open(object.Local.Path)
	})
	if err != nil {
		return nil, herrors.Wrap(herrors.KindFileOperation, "opening "+object.Local.Path, err)
	}

	buf := bufPool.Get()[:r.Len()]
	if _, err := handle.ReadAt(buf, r.Start); err != nil {
		return nil, herrors.Wrap(herrors.KindFileOperation, "reading "+object.Local.Path, err)
	}
	return buf, nil
}
