package sim

// Outcome tells Collide which side of a colliding pair to remove.
type Outcome struct {
	RemoveA bool
	RemoveB bool
}

// Collide tests every live (a, b) pair with hit and lets respond mutate
// game state. Entities marked for removal take no part in later pairs of the
// same call and are culled from both pools before Collide returns.
// It returns the number of pairs that collided.
func Collide[A, B any](as *Pool[A], bs *Pool[B], hit func(*A, *B) bool, respond func(*A, *B) Outcome) int {
	deadA := make([]bool, as.Len())
	deadB := make([]bool, bs.Len())
	hits := 0

	for i, a := range as.All() {
		for j, b := range bs.All() {
			if deadA[i] {
				break
			}
			if deadB[j] {
				continue
			}
			if !hit(a, b) {
				continue
			}
			hits++
			out := respond(a, b)
			deadA[i] = deadA[i] || out.RemoveA
			deadB[j] = deadB[j] || out.RemoveB
		}
	}

	cull(as, deadA)
	cull(bs, deadB)
	return hits
}

// CollideOne tests every entity of pool against a single target.
func CollideOne[A, B any](pool *Pool[A], target *B, hit func(*A, *B) bool, respond func(*A, *B) (remove bool)) int {
	hits := 0
	pool.RemoveIf(func(a *A) bool {
		if !hit(a, target) {
			return false
		}
		hits++
		return respond(a, target)
	})
	return hits
}

func cull[T any](p *Pool[T], dead []bool) {
	i := 0
	p.RemoveIf(func(*T) bool {
		d := dead[i]
		i++
		return d
	})
}
