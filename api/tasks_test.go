package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDriveTokenExpiry_NonDriveSpecYieldsNothing(t *testing.T) {
	spec := EndpointSpec{Scheme: "file", Path: "tmp/x.bin"}
	assert.Empty(t, driveTokenExpiry(spec))
}

func TestDriveTokenExpiry_NoExpiryYieldsNothing(t *testing.T) {
	spec := EndpointSpec{Scheme: "gd", Path: "folder/file.bin", Drive: &DriveCredential{AccessToken: "tok"}}
	assert.Empty(t, driveTokenExpiry(spec))
}

func TestDriveTokenExpiry_TracksExpiry(t *testing.T) {
	spec := EndpointSpec{Scheme: "gd", Path: "folder/file.bin", Drive: &DriveCredential{AccessToken: "tok", ExpiresInSec: 30}}
	refs := driveTokenExpiry(spec)
	if assert.Len(t, refs, 1) {
		assert.Equal(t, "gd://folder/file.bin", refs[0].uri)
		assert.WithinDuration(t, time.Now().Add(30*time.Second), refs[0].expires, 2*time.Second)
	}
}

func TestExpiringDriveTokens_WarnsOnlyForSoonExpiringRunningTasks(t *testing.T) {
	tm := NewTaskManager(context.Background(), nil, 2)

	tm.mu.Lock()
	tm.tasks["soon"] = &taskEntry{
		id:     "soon",
		status: "running",
		driveTokens: []driveTokenRef{
			{uri: "gd://a/b.bin", expires: time.Now().Add(1 * time.Minute)},
		},
	}
	tm.tasks["later"] = &taskEntry{
		id:     "later",
		status: "running",
		driveTokens: []driveTokenRef{
			{uri: "gd://c/d.bin", expires: time.Now().Add(time.Hour)},
		},
	}
	tm.tasks["done"] = &taskEntry{
		id:     "done",
		status: "completed",
		driveTokens: []driveTokenRef{
			{uri: "gd://e/f.bin", expires: time.Now().Add(1 * time.Minute)},
		},
	}
	tm.mu.Unlock()

	warnings := tm.ExpiringDriveTokens(10 * time.Minute)
	require := assert.New(t)
	require.Len(warnings, 1)
	require.Contains(warnings[0], "gd://a/b.bin")
}
