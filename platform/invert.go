package platform

import "github.com/milk9111/lavaclimb/ecs"

// InvertControl is the horizontal control inversion shared by every invertX
// platform of a playthrough. At most one platform owns it at a time.
type InvertControl struct {
	active bool
	owner  ecs.Entity
	claims []ecs.Entity
}

func (c *InvertControl) Active() bool {
	return c != nil && c.active
}

// Owner returns the owning platform. It is zero when inactive, and also
// while the effect outlives an owner that was destroyed.
func (c *InvertControl) Owner() ecs.Entity {
	if c == nil || !c.active {
		return 0
	}
	return c.owner
}

// ApplyX flips a horizontal input while the inversion is active.
func (c *InvertControl) ApplyX(moveX float64) float64 {
	if c.Active() {
		return -moveX
	}
	return moveX
}

func (c *InvertControl) claim(ent ecs.Entity) {
	c.claims = append(c.claims, ent)
}

// resolve settles the claims gathered during one tick. The claim of the
// platform under the actor wins, otherwise the first one. An inactive effect
// is picked up by any claim; ownership moves only while grounded on the
// claimant; the effect ends when grounded on any other platform.
func (c *InvertControl) resolve(standing ecs.Entity, grounded bool) {
	var winner ecs.Entity
	for _, ent := range c.claims {
		if ent == standing {
			winner = ent
			break
		}
	}
	if winner == 0 && len(c.claims) > 0 {
		winner = c.claims[0]
	}
	c.claims = c.claims[:0]

	switch {
	case winner != 0 && !c.active:
		c.active = true
		c.owner = winner
	case winner != 0 && winner != c.owner && grounded && standing == winner:
		c.owner = winner
	case c.active && grounded && standing != 0 && standing != c.owner:
		c.active = false
		c.owner = 0
	}
}

// release forgets ent as owner without ending the effect; the actor keeps
// inverted controls until grounded elsewhere.
func (c *InvertControl) release(ent ecs.Entity) {
	if c.owner == ent {
		c.owner = 0
	}
}

func (c *InvertControl) reset() {
	c.active = false
	c.owner = 0
	c.claims = c.claims[:0]
}
