package grove

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 3 float32 fields of a TRS simultaneously.
// Create one via the convenience constructors (TweenTranslation, TweenScale,
// TweenSpin) and call Update(dt) each frame. The group writes values
// straight into the TRS; nodes pick them up on their next draw.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	fields [3]*float32

	// apply, when non-nil, converts the tweened fields into the target
	// value after they are written (used by TweenSpin).
	apply func()

	// Loop restarts every tween once all of them have finished,
	// so Done never becomes true.
	Loop bool
	Done bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	if g.apply != nil {
		g.apply()
	}

	if allDone && g.Loop {
		g.Reset()
		return
	}
	g.Done = allDone
}

// Reset rewinds every tween to its start and clears Done.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

// TweenTranslation creates a TweenGroup that animates trs.Translation to the
// given target over the specified duration using the easing function.
func TweenTranslation(trs *TRS, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(trs.Translation[i], to[i], duration, fn)
		g.fields[i] = &trs.Translation[i]
	}
	return g
}

// TweenScale creates a TweenGroup that animates trs.Scale to the given
// target over the specified duration using the easing function.
func TweenScale(trs *TRS, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(trs.Scale[i], to[i], duration, fn)
		g.fields[i] = &trs.Scale[i]
	}
	return g
}

// TweenSpin creates a TweenGroup that animates the rotation of trs about axis
// from angle from to angle to (radians). The rotation is replaced outright on
// every update.
func TweenSpin(trs *TRS, axis mgl32.Vec3, from, to, duration float32, fn ease.TweenFunc) *TweenGroup {
	angle := new(float32)
	axis = axis.Normalize()
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(from, to, duration, fn)
	g.fields[0] = angle
	g.apply = func() {
		trs.Rotation = mgl32.QuatRotate(*angle, axis)
	}
	return g
}
