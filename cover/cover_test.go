// SPDX-License-Identifier: MIT
package cover_test

import (
	"bytes"
	"testing"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pslfsm/compiler/cover"
)

func TestAddItem_NoopWhenDisabled(t *testing.T) {
	db := cover.New(false)
	scope := db.CreateScope("top", xid.ID{})
	idx := db.AddItem(scope, "cover@t:1")
	assert.Equal(t, -1, idx)
	assert.Empty(t, scope.Items)
}

func TestAddItem_StampItem_TracksHits(t *testing.T) {
	db := cover.New(true)
	scope := db.CreateScope("top", xid.ID{})
	idx := db.AddItem(scope, "cover@t:1")
	require.GreaterOrEqual(t, idx, 0)
	db.StampItem(scope, idx)
	db.StampItem(scope, idx)
	assert.Equal(t, 2, scope.Totals())
}

func TestStampItem_IgnoresSentinelIndex(t *testing.T) {
	db := cover.New(false)
	scope := db.CreateScope("top", xid.ID{})
	db.StampItem(scope, -1) // must not panic or grow Items
	assert.Empty(t, scope.Items)
}

func TestSetEnabled_TogglesMask(t *testing.T) {
	db := cover.New(false)
	assert.False(t, db.Enabled())
	db.SetEnabled(true)
	assert.True(t, db.Enabled())
}

func TestDumpLoad_RoundTripPreservesTotals(t *testing.T) {
	db := cover.New(true)
	scope := db.CreateScope("top", xid.ID{})
	idx := db.AddItem(scope, "cover@t:1")
	db.StampItem(scope, idx)
	db.StampItem(scope, idx)
	db.StampItem(scope, idx)

	var buf bytes.Buffer
	require.NoError(t, db.Dump(&buf))

	reloaded := cover.New(true)
	require.NoError(t, reloaded.Load(&buf))

	scopes := reloaded.Scopes()
	require.Len(t, scopes, 1)
	assert.Equal(t, 3, scopes[0].Totals())
	assert.Equal(t, "top", scopes[0].Name)
}

func TestDumpLoad_MultipleScopesRoundTrip(t *testing.T) {
	db := cover.New(true)
	s1 := db.CreateScope("a", xid.ID{})
	s2 := db.CreateScope("b", xid.ID{})
	db.StampItem(s1, db.AddItem(s1, "x"))
	db.StampItem(s2, db.AddItem(s2, "y"))

	var buf bytes.Buffer
	require.NoError(t, db.Dump(&buf))

	reloaded := cover.New(true)
	require.NoError(t, reloaded.Load(&buf))
	assert.Len(t, reloaded.Scopes(), 2)
}
