package upload

import (
	"os"

	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
)

func writeLocal(object fsobject.Object, cd fsobject.ChunkData) error {
	handle, err := object.Local.Handle(func() (fsobject.FileHandle, error) {
		return os.OpenFile(object.Local.Path, os.O_CREATE|os.O_WRONLY, 0o644)
	})
	if err != nil {
		return herrors.Wrap(herrors.KindFileOperation, "opening "+object.Local.Path, err)
	}

	start := int64(cd.OffsetIndex) * object.ChunkSize
	if _, err := handle.WriteAt(cd.Bytes, start); err != nil {
		return herrors.Wrap(herrors.KindFileOperation, "writing "+object.Local.Path, err)
	}
	return nil
}
