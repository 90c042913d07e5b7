package simulation

import (
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages exchanged with the WorldActor are structpb.Struct values tagged
// with a "kind" field.
const (
	KindTick  = "tick"
	KindTune  = "tune"
	KindReset = "reset"
)

const fieldKind = "kind"

func num(v float64) *structpb.Value { return structpb.NewNumberValue(v) }
func flag(v bool) *structpb.Value { return structpb.NewBoolValue(v) }
func text(v string) *structpb.Value { return structpb.NewStringValue(v) }

func fields(m map[string]*structpb.Value) *structpb.Struct {
	return &structpb.Struct{Fields: m}
}

// KindOf returns the kind tag of a message, "" when missing.
func KindOf(msg *structpb.Struct) string {
	return msg.GetFields()[fieldKind].GetStringValue()
}

// NewTick asks the world to advance the flock by dt seconds under pointer.
func NewTick(dt float64, pointer flock.Pointer) *structpb.Struct {
	return fields(map[string]*structpb.Value{
		fieldKind: text(KindTick),
		"dt":      num(dt),
		"pointer": structpb.NewStructValue(fields(map[string]*structpb.Value{
			"inside": flag(pointer.Inside),
			"x":      num(pointer.X),
			"y":      num(pointer.Y),
			"left":   flag(pointer.Left),
			"right":  flag(pointer.Right),
		})),
	})
}

// DecodeTick reads back a tick built by NewTick. Missing fields decode to zero.
func DecodeTick(msg *structpb.Struct) (float64, flock.Pointer) {
	f := msg.GetFields()
	p := f["pointer"].GetStructValue().GetFields()
	return f["dt"].GetNumberValue(), flock.Pointer{
		Inside: p["inside"].GetBoolValue(),
		X:      p["x"].GetNumberValue(),
		Y:      p["y"].GetNumberValue(),
		Left:   p["left"].GetBoolValue(),
		Right:  p["right"].GetBoolValue(),
	}
}

// NewTune carries a new set of steering rules and speed limit.
func NewTune(b flock.Behaviors, maxSpeed float64) *structpb.Struct {
	return fields(map[string]*structpb.Value{
		fieldKind:    text(KindTune),
		"maxSpeed":   num(maxSpeed),
		"separation": encodeBehavior(b.Separation),
		"alignment":  encodeBehavior(b.Alignment),
		"cohesion":   encodeBehavior(b.Cohesion),
		"mouse":      encodeBehavior(b.Mouse),
	})
}

// DecodeTune reads back a tuning built by NewTune.
func DecodeTune(msg *structpb.Struct) (flock.Behaviors, float64) {
	f := msg.GetFields()
	return flock.Behaviors{
		Separation: decodeBehavior(f["separation"]),
		Alignment:  decodeBehavior(f["alignment"]),
		Cohesion:   decodeBehavior(f["cohesion"]),
		Mouse:      decodeBehavior(f["mouse"]),
	}, f["maxSpeed"].GetNumberValue()
}

// NewReset asks the world to respawn the population.
func NewReset() *structpb.Struct {
	return fields(map[string]*structpb.Value{fieldKind: text(KindReset)})
}

func encodeBehavior(b flock.Behavior) *structpb.Value {
	return structpb.NewStructValue(fields(map[string]*structpb.Value{
		"coefficient": num(b.Coefficient),
		"radius":      num(b.Radius),
		"sightAngle":  num(b.SightAngle),
		"minRange":    num(b.MinRange),
	}))
}

func decodeBehavior(v *structpb.Value) flock.Behavior {
	f := v.GetStructValue().GetFields()
	return flock.Behavior{
		Coefficient: f["coefficient"].GetNumberValue(),
		Radius:      f["radius"].GetNumberValue(),
		SightAngle:  f["sightAngle"].GetNumberValue(),
		MinRange:    f["minRange"].GetNumberValue(),
	}
}
