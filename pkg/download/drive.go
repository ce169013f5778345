package download

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"hikyaku/pkg/chunk"
	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
	"hikyaku/pkg/pool"
)

func readDrive(ctx context.Context, object fsobject.Object, r chunk.Range, bufPool *pool.BufferPool) ([]byte, error) {
	client := object.DriveClientFor(r.Index)

	svc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, herrors.Wrap(herrors.KindConnection, "constructing Drive service", err)
	}

	call := svc.Files.Get(object.Drive.AnchorID).SupportsAllDrives(true)
	call.Header().Set("Range", fmt.Sprintf("bytes=%d-%d", r.Start, r.End))

	resp, err := call.Download()
	if err != nil {
		return nil, herrors.Wrap(herrors.KindConnection, "downloading Drive file "+object.Drive.AnchorID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, herrors.Newf(herrors.KindConnection, "Drive download returned status %d", resp.StatusCode)
	}

	buf := bufPool.Get()[:r.Len()]
	if _, err := io.ReadFull(resp.Body, buf); err != nil {
		return nil, herrors.Wrap(herrors.KindConnection, "reading Drive response body", err)
	}
	return buf, nil
}
