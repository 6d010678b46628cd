package geometry

// Gravity is the protocol-level window gravity (win_gravity).
type Gravity int

const (
	GravityForget Gravity = iota
	GravityNorthWest
	GravityNorth
	GravityNorthEast
	GravityWest
	GravityCenter
	GravityEast
	GravitySouthWest
	GravitySouth
	GravitySouthEast
	GravityStatic
)

// GravityDelta returns how far the reference point of g lies from the
// content origin once the frame insets are added.
func GravityDelta(in Insets, g Gravity) (dx, dy int) {
	switch g {
	case GravityNorthWest:
		return -in.West, -in.North
	case GravityNorth:
		return (in.West - in.East) / 2, -in.North
	case GravityNorthEast:
		return in.East, -in.North
	case GravityWest:
		return -in.West, (in.North - in.South) / 2
	case GravityCenter:
		return (in.West - in.East) / 2, (in.North - in.South) / 2
	case GravityEast:
		return in.East, (in.North - in.South) / 2
	case GravitySouthWest:
		return -in.West, in.South
	case GravitySouth:
		return (in.West - in.East) / 2, in.South
	case GravitySouthEast:
		return in.East, in.South
	default:
		return 0, 0
	}
}

// ApplyGravity moves a client-requested position so that the gravity
// reference point of the frame stays where the client asked for it.
// reverse undoes a previous adjustment (used when a client is unmanaged).
func ApplyGravity(r Rect, in Insets, g Gravity, reverse bool) Rect {
	dx, dy := GravityDelta(in, g)
	if reverse {
		r.X += dx
		r.Y += dy
	} else {
		r.X -= dx
		r.Y -= dy
	}
	return r
}
