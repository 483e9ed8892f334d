// internal/subsystem/subsystem.go
package subsystem

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tamzrod/sensor-adapter/internal/status"
)

// Environment reading ranges, half-open.
const (
	PM25Min    = 10
	PM25Max    = 50
	NoiseDBMin = 40
	NoiseDBMax = 90
)

// DefaultScanProbability is the per-cycle chance of a card scan.
const DefaultScanProbability = 0.1

// cardSpace is the number of distinct 4-digit card ids.
const cardSpace = 10000

// NewRand returns a PCG-backed source. seed == 0 seeds from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Environment simulates the air-quality / noise subsystem.
// It never fails.
type Environment struct {
	rng *rand.Rand
}

func NewEnvironment(rng *rand.Rand) *Environment {
	return &Environment{rng: rng}
}

// Sample draws PM25 from [10,50) and NoiseDB from [40,90).
func (e *Environment) Sample() status.Environment {
	return status.Environment{
		PM25:    PM25Min + e.rng.IntN(PM25Max-PM25Min),
		NoiseDB: NoiseDBMin + e.rng.IntN(NoiseDBMax-NoiseDBMin),
	}
}

// Access simulates the badge reader.
// Each Sample is an independent Bernoulli trial; nothing carries over.
type Access struct {
	rng         *rand.Rand
	probability float64
}

func NewAccess(rng *rand.Rand, probability float64) *Access {
	return &Access{rng: rng, probability: probability}
}

// Sample returns "CARD_NNNN" with the configured probability, otherwise "NO_CARD".
func (a *Access) Sample() status.Access {
	if a.rng.Float64() >= a.probability {
		return status.Access{LastScan: status.NoCard}
	}
	return status.Access{
		LastScan: fmt.Sprintf("%s%0*d", status.CardPrefix, status.CardDigits, a.rng.IntN(cardSpace)),
	}
}
