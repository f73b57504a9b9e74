package noop

import (
	"context"
	"testing"

	"github.com/expki/go-colorquant/compute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	var store Store

	require.NoError(t, store.Save(ctx, compute.CentroidSet{{1, 2, 3}}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
