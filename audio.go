package main

import (
	"bytes"
	"math"
)

// blipShape shapes one keyframe tick. Glide bends the pitch from
// FreqHz*GlideFrom to FreqHz*GlideTo over the note.
type blipShape struct {
	Seconds   float64
	FreqHz    float64
	Amp       float64
	GlideFrom float64
	GlideTo   float64
}

var (
	// crossing a keyframe forward: short, bright, falling
	forwardBlip = blipShape{Seconds: 0.06, FreqHz: 880, Amp: 0.22, GlideFrom: 1.03, GlideTo: 0.92}
	// walking back over a keyframe: lower and rising
	backwardBlip = blipShape{Seconds: 0.08, FreqHz: 660, Amp: 0.2, GlideFrom: 0.92, GlideTo: 1.03}
)

// generateBlipPCM renders b as 16-bit little-endian stereo PCM. It applies a
// short cosine attack, exponential decay, the pitch glide, and a quiet second
// harmonic. The right channel gets a tiny phase offset for width.
func generateBlipPCM(sampleRate int, b blipShape) []byte {
	n := int(float64(sampleRate) * b.Seconds)
	if n <= 1 {
		return nil
	}
	var buf bytes.Buffer
	buf.Grow(n * 4)

	// Envelope: short attack to avoid clicks, then exponential decay.
	attackN := int(math.Min(0.005, b.Seconds*0.2) * float64(sampleRate)) // up to 5ms
	// exp(-6.9) ~ 0.001, about -60dB at the end of the sample
	const lambda = 6.9

	startFreq := b.FreqHz * b.GlideFrom
	endFreq := b.FreqHz * b.GlideTo

	const (
		phaseOffsetR = 0.015 // radians
		panL         = 0.55
		panR         = 0.45
	)

	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)

		envA := 1.0
		if i < attackN {
			// cosine fade-in: 0 -> 1 smoothly
			envA = 0.5 - 0.5*math.Cos(math.Pi*float64(i)/float64(attackN))
		}
		env := b.Amp * envA * math.Exp(-lambda*t)

		// Glide in the log domain
		f := startFreq * math.Pow(endFreq/startFreq, t)
		phase += 2 * math.Pi * f / float64(sampleRate)

		second := math.Sin(2*phase) * 0.18
		mono := (math.Sin(phase) + second) * env

		l := mono * panL
		r := math.Sin(phase+phaseOffsetR)*env*panR + second*env*0.18*panR

		writeSample(&buf, l)
		writeSample(&buf, r)
	}
	return buf.Bytes()
}

// writeSample clamps v to [-1, 1] and appends it as little-endian int16
func writeSample(buf *bytes.Buffer, v float64) {
	s := int16(math.Max(-1, math.Min(1, v)) * 32767)
	buf.WriteByte(byte(s))
	buf.WriteByte(byte(s >> 8))
}
