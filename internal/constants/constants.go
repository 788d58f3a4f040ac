package constants

import (
	"time"
)

// *********************************************************************************************************************
// SMOOTH SCROLLING (EXACT VALUES DETERMINED BY FEEL)

// ScrollTickInterval is the cadence of the scroll animation, roughly 60 frames per second
var ScrollTickInterval = 16 * time.Millisecond

// MaxScrollVelocity bounds the magnitude of the accumulated scroll velocity
const MaxScrollVelocity = 2.0

// ScrollStopThreshold is the velocity magnitude below which the animation halts
const ScrollStopThreshold = 0.001

// ScrollDamping is multiplied into the velocity after every tick
const ScrollDamping = 0.85

// ScrollStepFactor converts velocity into a change of the normalized scroll position per tick
const ScrollStepFactor = 0.02

// LineScrollDelta is added to the velocity for a single line up/down or a wheel notch on linux
const LineScrollDelta = 0.08

// PageScrollDelta is added to the velocity for page up/down
const PageScrollDelta = 0.8

// WheelDeltaFactor scales wheel deltas reported in multiples of 120
const WheelDeltaFactor = -0.03

// *********************************************************************************************************************

// WrapWidth is the maximum width of a wrapped command line
const WrapWidth = 60

// SeparatorWidth is the number of rule characters drawn under each section header
const SeparatorWidth = 80

// WrapIndicator prefixes continuation lines of a wrapped command
const WrapIndicator = "↳"

// ContinuationIndicator marks lines truncated at the right edge of the viewport
const ContinuationIndicator = "..."

// TabGap is the minimum number of cells between the widest keybinding and its command
const TabGap = 4

// ToastDuration is how long a toast stays visible
var ToastDuration = 5 * time.Second
