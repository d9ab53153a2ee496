// Package world declares what the placement engine needs from the host editor: a line trace
// against the scene, lookups of reference objects, spawning and moving objects, and
// transactions around committed placements.
package world

import (
	"fmt"

	"grid-placer/internal/geom"
	"grid-placer/internal/palette"
)

// ObjectID identifies an object in the host scene. The zero value means "no object".
type ObjectID uint64

// None is the zero ObjectID.
const None ObjectID = 0

// Channel selects which objects a line trace can hit.
type Channel uint8

const (
	ChannelVisibility Channel = iota
	ChannelCamera
	ChannelPlaced
)

var channelNames = [...]string{"visibility", "camera", "placed"}

func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return "unknown"
}

// ParseChannel maps a channel name back to its value.
func ParseChannel(s string) (Channel, bool) {
	for i, n := range channelNames {
		if n == s {
			return Channel(i), true
		}
	}
	return 0, false
}

// Hit is the result of a successful line trace.
type Hit struct {
	Point  geom.Vec3
	Normal geom.Vec3
	Object ObjectID
	// Pose of the hit object. Only meaningful when Object != None.
	Pose geom.Pose
}

// Tracer casts rays into the scene.
type Tracer interface {
	LineTrace(ray geom.Ray, maxDistance float64, channel Channel, ignore ...ObjectID) (Hit, bool)
}

// Locator resolves reference objects used by the custom grid, rotation and offset spaces.
type Locator interface {
	Locate(id ObjectID) (geom.Pose, bool)
}

// Spawner creates and removes objects for palette entries. Spawned previews are moved every
// pointer update; placed objects are spawned once at their final transform.
type Spawner interface {
	Spawn(entry palette.Entry, t geom.Transform, preview bool) (ObjectID, error)
	Move(id ObjectID, t geom.Transform)
	Destroy(id ObjectID)
}

// Tx is an open host transaction.
type Tx interface {
	Commit() error
	Rollback()
}

// Transactor opens named transactions so a commit can be undone as a unit.
type Transactor interface {
	Begin(name string) Tx
}

// NopTransactor opens transactions that do nothing.
type NopTransactor struct{}

func (NopTransactor) Begin(string) Tx { return nopTx{} }

type nopTx struct{}

func (nopTx) Commit() error { return nil }
func (nopTx) Rollback()     {}

func (c Channel) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Channel) UnmarshalText(b []byte) error {
	v, ok := ParseChannel(string(b))
	if !ok {
		return fmt.Errorf("unknown collision channel %q", b)
	}
	*c = v
	return nil
}
