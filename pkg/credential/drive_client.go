package credential

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// NewDriveClients builds count independent *http.Client values, each
// carrying the same bearer token via oauth2's static token source. Token
// refresh is an external collaborator (spec §1): when a Drive token
// expires mid-transfer, the caller rebuilds the credential and the
// FileSystemObject with it rather than this package refreshing in place.
func NewDriveClients(ctx context.Context, cred Drive, count int) []*http.Client {
	if count <= 0 {
		count = 1
	}

	token := &oauth2.Token{
		AccessToken: cred.AccessToken,
		Expiry:      cred.Expiry,
	}
	source := oauth2.StaticTokenSource(token)

	clients := make([]*http.Client, count)
	for i := range clients {
		clients[i] = oauth2.NewClient(ctx, source)
		clients[i].Timeout = 0 // chunk PUT/GET bodies can be large; callers use context for deadlines.
	}
	return clients
}

// HTTPClientFor is a convenience for call sites that only ever need one
// client, e.g. the resolver's metadata lookups.
func HTTPClientFor(ctx context.Context, cred Drive) *http.Client {
	return NewDriveClients(ctx, cred, 1)[0]
}
