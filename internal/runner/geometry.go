package runner

// Coordinates: X grows to the right, elevation grows upward from the ground.
// PlayerOffset follows screen convention (negative is up), so elevation is
// its negation.
const (
	SpawnX        = 800.0
	CullX         = -100.0
	ObstacleWidth = 50.0

	PlayerLeft   = 100.0
	PlayerRight  = 150.0
	PlayerHeight = 60.0
)

type Kind int

const (
	KindLow Kind = iota
	KindHigh
)

func (k Kind) String() string {
	if k == KindHigh {
		return "high"
	}
	return "low"
}

// Band returns the elevation range an obstacle of this kind occupies.
// Low obstacles must be jumped; high ones hit a jumping player.
func (k Kind) Band() (bottom, top float64) {
	if k == KindHigh {
		return 110, 160
	}
	return 0, 50
}

type Obstacle struct {
	ID   int
	X    float64
	Kind Kind
}

// Box is an axis-aligned hitbox.
type Box struct {
	Left, Right float64
	Bottom, Top float64
}

func (o Obstacle) Box() Box {
	bottom, top := o.Kind.Band()
	return Box{Left: o.X, Right: o.X + ObstacleWidth, Bottom: bottom, Top: top}
}

func PlayerBox(offset float64) Box {
	elev := -offset
	return Box{Left: PlayerLeft, Right: PlayerRight, Bottom: elev, Top: elev + PlayerHeight}
}

// Overlaps reports strict overlap on both axes; touching edges do not collide.
func Overlaps(a, b Box) bool {
	return a.Right > b.Left && a.Left < b.Right && a.Top > b.Bottom && a.Bottom < b.Top
}
