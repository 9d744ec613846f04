package simulation

import (
	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/behavior"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Messages understood by FlockActor. They are protobuf well-known types so
// they travel through goakt like any other proto.Message.
type (
	// Tick advances the simulation by one frame.
	Tick = emptypb.Empty
	// UpdateWeights replaces the steering weights, keyed by their JSON names.
	UpdateWeights = structpb.Struct
	// Reset respawns the population from the given seed, 0 picks one at random.
	Reset = wrapperspb.UInt64Value
)

const (
	keyAlignment      = "alignment"
	keyCohesion       = "cohesion"
	keySeparation     = "separation"
	keySeekPrey       = "seekPrey"
	keyAvoidPredators = "avoidPredators"
)

// NewUpdateWeights encodes w as an UpdateWeights message.
func NewUpdateWeights(w behavior.Weights) *UpdateWeights {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			keyAlignment:      structpb.NewNumberValue(w.Alignment),
			keyCohesion:       structpb.NewNumberValue(w.Cohesion),
			keySeparation:     structpb.NewNumberValue(w.Separation),
			keySeekPrey:       structpb.NewNumberValue(w.SeekPrey),
			keyAvoidPredators: structpb.NewNumberValue(w.AvoidPredators),
		},
	}
}

// WeightsFromUpdate decodes msg on top of base: keys that are missing or
// do not hold a number keep the base value.
func WeightsFromUpdate(msg *UpdateWeights, base behavior.Weights) behavior.Weights {
	fields := msg.GetFields()
	read := func(key string, into *float64) {
		v, ok := fields[key]
		if !ok {
			return
		}
		if n, ok := v.GetKind().(*structpb.Value_NumberValue); ok {
			*into = n.NumberValue
		}
	}

	w := base
	read(keyAlignment, &w.Alignment)
	read(keyCohesion, &w.Cohesion)
	read(keySeparation, &w.Separation)
	read(keySeekPrey, &w.SeekPrey)
	read(keyAvoidPredators, &w.AvoidPredators)
	return w
}

// NewReset builds a Reset message.
func NewReset(seed uint64) *Reset {
	return wrapperspb.UInt64(seed)
}
