package world

import "slices"

// nearestCookie returns the index of the cookie closest to p, or -1 when there
// are none. Ties go to the earliest cookie in deployment order.
func nearestCookie(p Position, cookies []Cookie) int {
	best := -1
	bestDist := 0.0
	for i, c := range cookies {
		d := p.DistanceTo(c.Position)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// stepToward moves from toward target by at most speed. A target within reach
// is landed on exactly, so arrival never overshoots.
func stepToward(from, target Position, speed float64) Position {
	dx := target.X - from.X
	dy := target.Y - from.Y
	dist := from.DistanceTo(target)
	if dist == 0 {
		return from
	}
	if dist <= speed {
		return target
	}
	return Position{
		X: from.X + dx/dist*speed,
		Y: from.Y + dy/dist*speed,
	}
}

// stepMonsters advances every monster one tick toward its nearest cookie. All
// targets are chosen from prev, so the order monsters are processed in does
// not matter. moved counts monsters whose position changed.
func stepMonsters(prev GameState) (next GameState, moved int) {
	next = prev
	if len(prev.Monsters) == 0 || len(prev.Cookies) == 0 {
		return next, 0
	}

	monsters := slices.Clone(prev.Monsters)
	for i := range monsters {
		m := &monsters[i]
		target := nearestCookie(m.Position, prev.Cookies)
		if target < 0 {
			continue
		}

		pos := stepToward(m.Position, prev.Cookies[target].Position, m.Speed)
		if pos != m.Position {
			m.Position = pos
			moved++
		}
	}

	next.Monsters = monsters
	return next, moved
}
