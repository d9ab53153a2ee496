// Package level is the editor's object store. It implements the world services the placement
// session needs: spawning and moving objects, line traces, reference lookups and named
// transactions with undo.
package level

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"

	"grid-placer/internal/geom"
	"grid-placer/internal/palette"
	"grid-placer/internal/prefab"
	"grid-placer/internal/world"
)

// Object is one spawned palette entry.
type Object struct {
	ID        world.ObjectID
	Entry     palette.Entry
	Transform geom.Transform
	Parts     []prefab.Part
	// Preview objects are drawn translucent and never hit by traces.
	Preview bool
	// Static objects are level geometry; the Placed channel skips them.
	Static bool

	lo, hi geom.Vec3
}

// Bounds is the local box around the object's parts.
func (o *Object) Bounds() (lo, hi geom.Vec3) { return o.lo, o.hi }

// Level holds objects in spawn order.
type Level struct {
	lib     *prefab.Library
	log     *slog.Logger
	objects map[world.ObjectID]*Object
	order   []world.ObjectID
	next    world.ObjectID

	open *tx
	undo []record
}

type record struct {
	name    string
	created []world.ObjectID
}

// New returns an empty level resolving entries through lib.
func New(lib *prefab.Library, log *slog.Logger) *Level {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Level{lib: lib, log: log, objects: make(map[world.ObjectID]*Object)}
}

// Spawn creates an object for entry at t. Non-preview objects spawned while a transaction is
// open belong to it.
func (l *Level) Spawn(entry palette.Entry, t geom.Transform, preview bool) (world.ObjectID, error) {
	parts, err := l.lib.Resolve(entry)
	if err != nil {
		return world.None, err
	}
	l.next++
	o := &Object{ID: l.next, Entry: entry, Transform: t, Parts: parts, Preview: preview}
	o.lo, o.hi = prefab.Bounds(parts)
	l.objects[o.ID] = o
	l.order = append(l.order, o.ID)
	if !preview && l.open != nil {
		l.open.created = append(l.open.created, o.ID)
	}
	return o.ID, nil
}

// SpawnStatic adds level geometry outside any transaction.
func (l *Level) SpawnStatic(entry palette.Entry, t geom.Transform) (world.ObjectID, error) {
	id, err := l.Spawn(entry, t, false)
	if err != nil {
		return world.None, err
	}
	l.objects[id].Static = true
	if l.open != nil {
		l.open.created = slices.DeleteFunc(l.open.created, func(c world.ObjectID) bool { return c == id })
	}
	return id, nil
}

// Move sets the transform of id. Unknown IDs are ignored.
func (l *Level) Move(id world.ObjectID, t geom.Transform) {
	if o, ok := l.objects[id]; ok {
		o.Transform = t
	}
}

// Destroy removes id. Unknown IDs are ignored.
func (l *Level) Destroy(id world.ObjectID) {
	if _, ok := l.objects[id]; !ok {
		return
	}
	delete(l.objects, id)
	l.order = slices.DeleteFunc(l.order, func(o world.ObjectID) bool { return o == id })
}

// Locate returns the pose of id.
func (l *Level) Locate(id world.ObjectID) (geom.Pose, bool) {
	o, ok := l.objects[id]
	if !ok {
		return geom.Pose{}, false
	}
	return o.Transform.Pose(), true
}

// Object returns the object with id.
func (l *Level) Object(id world.ObjectID) (*Object, bool) {
	o, ok := l.objects[id]
	return o, ok
}

// Objects returns the live objects in spawn order.
func (l *Level) Objects() []*Object {
	out := make([]*Object, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.objects[id])
	}
	return out
}

// Len counts live objects, previews included.
func (l *Level) Len() int { return len(l.order) }

// LineTrace returns the nearest object box hit by ray within maxDistance. Previews and ignored
// objects are skipped, and the Placed channel skips static geometry.
func (l *Level) LineTrace(ray geom.Ray, maxDistance float64, channel world.Channel, ignore ...world.ObjectID) (world.Hit, bool) {
	dir := ray.Direction
	if dir.Len() == 0 {
		return world.Hit{}, false
	}
	dir = dir.Normalize()
	best := maxDistance
	var hit world.Hit
	found := false
	for _, id := range l.order {
		o := l.objects[id]
		if o.Preview || slices.Contains(ignore, id) {
			continue
		}
		if channel == world.ChannelPlaced && o.Static {
			continue
		}
		t, n, ok := o.intersect(geom.Ray{Origin: ray.Origin, Direction: dir})
		if !ok || t > best {
			continue
		}
		best = t
		found = true
		hit = world.Hit{Point: ray.Origin.Add(dir.Mul(t)), Normal: n, Object: id, Pose: o.Transform.Pose()}
	}
	return hit, found
}

// intersect runs a slab test in the object's local space. It returns the world distance along
// the unit direction and the world normal of the entered face.
func (o *Object) intersect(ray geom.Ray) (float64, geom.Vec3, bool) {
	tr := o.Transform
	rot := tr.Rotation
	if rot.Len() == 0 {
		rot = geom.Identity()
	}
	inv := rot.Inverse()
	scale := tr.Scale
	for k := 0; k < 3; k++ {
		if scale[k] == 0 {
			return 0, geom.Vec3{}, false
		}
	}
	div := func(v geom.Vec3) geom.Vec3 { return geom.Vec3{v[0] / scale[0], v[1] / scale[1], v[2] / scale[2]} }
	origin := div(inv.Rotate(ray.Origin.Sub(tr.Position)))
	dir := div(inv.Rotate(ray.Direction))

	tmin, tmax := math.Inf(-1), math.Inf(1)
	axis, sign := -1, 0.0
	for k := 0; k < 3; k++ {
		if math.Abs(dir[k]) < geom.Epsilon {
			if origin[k] < o.lo[k] || origin[k] > o.hi[k] {
				return 0, geom.Vec3{}, false
			}
			continue
		}
		t1 := (o.lo[k] - origin[k]) / dir[k]
		t2 := (o.hi[k] - origin[k]) / dir[k]
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tmin {
			tmin, axis, sign = t1, k, s
		}
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, geom.Vec3{}, false
		}
	}
	// rays starting inside a box do not hit it
	if axis < 0 || tmin < 0 {
		return 0, geom.Vec3{}, false
	}
	var n geom.Vec3
	n[axis] = sign / scale[axis]
	return tmin, rot.Rotate(n).Normalize(), true
}

// Begin opens a named transaction. Nested transactions are not supported; Begin while one is
// open returns a transaction that fails on commit.
func (l *Level) Begin(name string) world.Tx {
	if l.open != nil {
		return &tx{level: l, name: name, err: fmt.Errorf("transaction %q already open", l.open.name)}
	}
	l.open = &tx{level: l, name: name}
	return l.open
}

// Undo destroys the objects of the last committed transaction and returns its name.
func (l *Level) Undo() (string, bool) {
	if len(l.undo) == 0 {
		return "", false
	}
	r := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	for _, id := range r.created {
		l.Destroy(id)
	}
	l.log.Info("undo", "transaction", r.name, "objects", len(r.created))
	return r.name, true
}

// UndoDepth counts committed transactions that can be undone.
func (l *Level) UndoDepth() int { return len(l.undo) }

// ErrClosed is returned by Commit on a finished transaction.
var ErrClosed = errors.New("transaction closed")

type tx struct {
	level   *Level
	name    string
	created []world.ObjectID
	done    bool
	err     error
}

func (t *tx) Commit() error {
	if t.err != nil {
		return t.err
	}
	if t.done {
		return ErrClosed
	}
	t.done = true
	t.level.open = nil
	t.level.undo = append(t.level.undo, record{name: t.name, created: t.created})
	return nil
}

func (t *tx) Rollback() {
	if t.err != nil || t.done {
		return
	}
	t.done = true
	t.level.open = nil
	for _, id := range t.created {
		t.level.Destroy(id)
	}
}
