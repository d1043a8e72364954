// seehuhn.de/go/plot - a 2D/3D plotting library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// dashState walks through a dash pattern.
type dashState struct {
	pattern []float64
	idx     int
	left    float64 // remaining length of the current element
}

func (s *dashState) on() bool { return s.idx%2 == 0 }

func (s *dashState) advance() {
	s.idx++
	s.left = s.pattern[s.idx%len(s.pattern)]
}

// applyDash splits r.lines into the "on" pieces of the dash pattern and
// stores them in r.dashed.  If the pattern has zero total length, dashing
// is disabled and false is returned.
//
// An odd-length pattern is used twice, so that alternate repetitions swap
// the meaning of on and off.
func (r *Rasterizer) applyDash() bool {
	total := 0.0
	for _, v := range r.Dash {
		total += v
	}
	if len(r.Dash)%2 == 1 {
		total *= 2
	}
	if !(total > 0) {
		return false
	}
	phase := math.Mod(r.DashPhase, total)
	if phase < 0 {
		phase += total
	}

	out := &r.dashed
	out.reset()
	for i, sp := range r.lines.subs {
		pts := r.lines.vertices(i)
		if len(pts) < 2 {
			out.begin(pts[0], vec.Vec2{})
			continue
		}

		st := dashState{pattern: r.Dash}
		st.left = st.pattern[0]
		rem := phase
		for rem >= st.left && (rem > 0 || st.left > 0) {
			rem -= st.left
			st.advance()
		}
		st.left -= rem

		before := len(out.subs)
		firstSub := -1
		startedOn := st.on()
		if startedOn {
			firstSub = len(out.subs)
			out.begin(pts[0], pts[1].Sub(pts[0]).Normalize())
		}

		n := len(pts)
		segs := n - 1
		if sp.closed {
			segs = n
		}
		for k := range segs {
			a, b := pts[k], pts[(k+1)%n]
			l := b.Sub(a).Length()
			t := b.Sub(a).Normalize()
			pos := 0.0
			for {
				step := l - pos
				if st.left > step {
					if st.on() {
						out.push(b)
					}
					st.left -= step
					break
				}
				pos += st.left
				q := a.Add(t.Mul(pos))
				if st.on() {
					out.push(q)
				}
				st.advance()
				if st.on() {
					out.begin(q, t)
				}
				if pos >= l {
					break
				}
			}
		}

		// On a closed subpath, a dash running through the starting point
		// is a single dash.
		last := len(out.subs) - 1
		if sp.closed && startedOn && st.on() && firstSub >= 0 && last > firstSub {
			r.mergeDashes(firstSub, last)
			continue
		}

		// A dash which would start exactly at the end of the subpath has
		// no length.  Only genuine zero-length dash elements produce dots.
		if last >= before && st.on() && st.left > 0 && st.left == st.pattern[st.idx%len(st.pattern)] {
			if s := out.subs[last]; s.end-s.start == 1 && last != firstSub {
				out.pts = out.pts[:s.start]
				out.subs = out.subs[:last]
			}
		}
	}
	return true
}

// mergeDashes joins the dash at index last onto the front of the dash at
// index first, and removes the former.
func (r *Rasterizer) mergeDashes(first, last int) {
	out := &r.dashed
	tail := out.vertices(last)
	head := out.vertices(first)

	r.scratch = append(r.scratch[:0], tail...)
	r.scratch = append(r.scratch, head[1:]...)

	start := len(out.pts)
	out.pts = append(out.pts, r.scratch...)
	out.subs[first].start = start
	out.subs[first].end = len(out.pts)
	out.subs = out.subs[:last]
}
