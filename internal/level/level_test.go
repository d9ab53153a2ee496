package level

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-placer/internal/geom"
	"grid-placer/internal/palette"
	"grid-placer/internal/prefab"
	"grid-placer/internal/world"
)

var (
	approx = cmpopts.EquateApprox(0, 1e-9)
	cube   = palette.Entry{Kind: palette.StaticMesh, Asset: "cube"}
)

func newLevel() *Level { return New(prefab.NewLibrary(), nil) }

func TestSpawnMoveDestroy(t *testing.T) {
	l := newLevel()
	id, err := l.Spawn(cube, geom.NewTransform(geom.Vec3{1, 2, 3}), false)
	require.NoError(t, err)
	pose, ok := l.Locate(id)
	require.True(t, ok)
	assert.Equal(t, geom.Vec3{1, 2, 3}, pose.Position)

	l.Move(id, geom.NewTransform(geom.Vec3{4, 5, 6}))
	pose, _ = l.Locate(id)
	assert.Equal(t, geom.Vec3{4, 5, 6}, pose.Position)

	l.Destroy(id)
	_, ok = l.Locate(id)
	assert.False(t, ok)
	assert.Zero(t, l.Len())
	l.Destroy(id)
}

func TestSpawn_UnknownAsset(t *testing.T) {
	l := newLevel()
	_, err := l.Spawn(palette.Entry{Kind: palette.ActorClass, Asset: "ghost"}, geom.NewTransform(geom.Zero), false)
	assert.Error(t, err)
	assert.Zero(t, l.Len())
}

func TestLineTrace(t *testing.T) {
	l := newLevel()
	floor, err := l.SpawnStatic(cube, geom.Transform{Position: geom.Vec3{0, 0, -100}, Rotation: geom.Identity(), Scale: geom.Vec3{20, 20, 1}})
	require.NoError(t, err)
	box, err := l.Spawn(cube, geom.NewTransform(geom.Vec3{300, 0, 0}), false)
	require.NoError(t, err)
	preview, err := l.Spawn(cube, geom.NewTransform(geom.Vec3{0, 0, 0}), true)
	require.NoError(t, err)

	down := geom.Ray{Origin: geom.Vec3{0, 0, 1000}, Direction: geom.Vec3{0, 0, -2}}
	hit, ok := l.LineTrace(down, 1e5, world.ChannelVisibility)
	require.True(t, ok, "previews are not hit")
	assert.Equal(t, floor, hit.Object)
	if diff := cmp.Diff(geom.Vec3{0, 0, 0}, hit.Point, approx); diff != "" {
		t.Errorf("point (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(geom.Up, hit.Normal, approx); diff != "" {
		t.Errorf("normal (-want +got):\n%s", diff)
	}

	_, ok = l.LineTrace(down, 1e5, world.ChannelPlaced)
	assert.False(t, ok, "the placed channel skips static geometry")
	_, ok = l.LineTrace(down, 500, world.ChannelVisibility)
	assert.False(t, ok, "beyond max distance")

	side := geom.Ray{Origin: geom.Vec3{0, 0, 50}, Direction: geom.Vec3{1, 0, 0}}
	hit, ok = l.LineTrace(side, 1e5, world.ChannelVisibility, preview)
	require.True(t, ok)
	assert.Equal(t, box, hit.Object)
	if diff := cmp.Diff(geom.Vec3{250, 0, 50}, hit.Point, approx); diff != "" {
		t.Errorf("point (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(geom.Vec3{-1, 0, 0}, hit.Normal, approx); diff != "" {
		t.Errorf("normal (-want +got):\n%s", diff)
	}

	_, ok = l.LineTrace(side, 1e5, world.ChannelVisibility, box)
	assert.False(t, ok)
}

func TestLineTrace_RotatedBox(t *testing.T) {
	l := newLevel()
	id, err := l.Spawn(cube, geom.Transform{
		Position: geom.Vec3{0, 0, 0},
		Rotation: geom.Rotator{Pitch: 90}.Quat(),
		Scale:    geom.One,
	}, false)
	require.NoError(t, err)

	// pitch 90 lays the cube on its side: its local up points along world X
	ray := geom.Ray{Origin: geom.Vec3{500, 0, 0}, Direction: geom.Vec3{-1, 0, 0}}
	hit, ok := l.LineTrace(ray, 1e5, world.ChannelVisibility)
	require.True(t, ok)
	assert.Equal(t, id, hit.Object)
	if diff := cmp.Diff(geom.Vec3{100, 0, 0}, hit.Point, approx); diff != "" {
		t.Errorf("point (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(geom.Forward, hit.Normal, approx); diff != "" {
		t.Errorf("normal (-want +got):\n%s", diff)
	}
}

func TestTransactions(t *testing.T) {
	l := newLevel()
	tx := l.Begin("Place Object")
	a, err := l.Spawn(cube, geom.NewTransform(geom.Zero), false)
	require.NoError(t, err)
	p, err := l.Spawn(cube, geom.NewTransform(geom.Zero), true)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.ErrorIs(t, tx.Commit(), ErrClosed)

	tx = l.Begin("Place Object")
	b, err := l.Spawn(cube, geom.NewTransform(geom.Zero), false)
	require.NoError(t, err)
	tx.Rollback()
	_, ok := l.Object(b)
	assert.False(t, ok, "rollback removes the transaction's objects")
	assert.Equal(t, 1, l.UndoDepth())

	name, ok := l.Undo()
	require.True(t, ok)
	assert.Equal(t, "Place Object", name)
	_, ok = l.Object(a)
	assert.False(t, ok)
	_, ok = l.Object(p)
	assert.True(t, ok, "previews are not part of transactions")
	_, ok = l.Undo()
	assert.False(t, ok)
}

func TestBegin_Nested(t *testing.T) {
	l := newLevel()
	outer := l.Begin("outer")
	inner := l.Begin("inner")
	assert.Error(t, inner.Commit())
	inner.Rollback()
	require.NoError(t, outer.Commit())
}

func TestObjects_Order(t *testing.T) {
	l := newLevel()
	var ids []world.ObjectID
	for i := 0; i < 3; i++ {
		id, err := l.Spawn(cube, geom.NewTransform(geom.Zero), false)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	l.Destroy(ids[1])
	var got []world.ObjectID
	for _, o := range l.Objects() {
		got = append(got, o.ID)
	}
	assert.Equal(t, []world.ObjectID{ids[0], ids[2]}, got)
}
