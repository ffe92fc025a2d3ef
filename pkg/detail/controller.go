// Package detail decides which racks render at full fidelity each frame.
//
// A Controller ramps a detail budget from a small initial value up to the rack
// count on a fixed cadence. The ramp is frame-driven: the render loop calls Tick
// with the elapsed time and the token returned by the last Reset. Ticks carrying a
// stale token are ignored, so an abandoned ramp can never move the budget.
package detail

import (
	"math"
	"time"

	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/utils"
)

// Token identifies one ramp episode
type Token uint64

// Signals are the per-rack local override inputs from the camera and selection
type Signals struct {
	Selected bool
	Hovered  bool
	// CameraDistance is the distance from the camera to the rack; NaN when unknown.
	CameraDistance float64
	ReducedEffects bool
}

// Controller tracks the detail budget and its ramp
type Controller struct {
	total    int
	budget   int
	step     int
	token    Token
	active   bool
	elapsed  time.Duration
	interval time.Duration
	distance float64
}

// NewController creates an idle controller using the standard cadence
func NewController() *Controller {
	return &Controller{
		interval: constants.DetailTickInterval,
		distance: constants.DetailCameraDistance,
	}
}

// Reset starts a new episode for total racks, cancelling any ramp in flight.
// An empty set, low effects, or a forced-simplified view sets the budget to zero
// without ramping.
func (c *Controller) Reset(total int, lowEffects bool) Token {
	c.token++
	c.elapsed = 0
	c.active = false
	if total < 0 {
		total = 0
	}
	c.total = total

	if total == 0 || lowEffects {
		c.budget = 0
		c.step = 0
		return c.token
	}

	c.budget = min(constants.InitialDetailBudget, total)
	c.step = StepSize(total)
	c.active = c.budget < total
	return c.token
}

// Tick advances the ramp by dt. Stale tokens and idle controllers are ignored.
// It returns the budget after the tick.
func (c *Controller) Tick(token Token, dt time.Duration) int {
	if token != c.token || !c.active || dt <= 0 {
		return c.budget
	}

	c.elapsed += dt
	for c.active && c.elapsed >= c.interval {
		c.elapsed -= c.interval
		c.budget = min(c.budget+c.step, c.total)
		if c.budget >= c.total {
			c.active = false
			c.elapsed = 0
		}
	}
	return c.budget
}

// Stop cancels the current ramp, leaving the budget where it is. Used on teardown.
func (c *Controller) Stop() {
	c.token++
	c.active = false
	c.elapsed = 0
}

// IsDetailed reports whether the rack at lodIndex renders at full detail.
// Selection and hover always win; camera proximity wins unless effects are reduced.
func (c *Controller) IsDetailed(lodIndex int, s Signals) bool {
	if lodIndex >= 0 && lodIndex < c.budget {
		return true
	}
	if s.Selected || s.Hovered {
		return true
	}
	if s.ReducedEffects || !utils.IsFinite(s.CameraDistance) || s.CameraDistance < 0 {
		return false
	}
	return s.CameraDistance <= c.distance
}

// Budget returns the number of racks eligible for full detail by index
func (c *Controller) Budget() int {
	return c.budget
}

// Total returns the rack count of the current episode
func (c *Controller) Total() int {
	return c.total
}

// Active reports whether a ramp is in flight
func (c *Controller) Active() bool {
	return c.active
}

// Token returns the current episode token
func (c *Controller) Token() Token {
	return c.token
}

// StepSize returns the per-tick budget increase for total racks
func StepSize(total int) int {
	step := int(math.Ceil(float64(total) * constants.DetailStepFraction))
	return utils.ClampInt(step, constants.DetailStepMin, constants.DetailStepMax)
}

// ConnectionBudget caps the number of rendered inter-rack connections for count racks
func ConnectionBudget(count, maxConnections int, perRack float64) int {
	if count <= 0 || maxConnections <= 0 || perRack <= 0 {
		return 0
	}
	return min(maxConnections, int(float64(count)*perRack))
}
