package main

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lavaclimb/platform"
	"golang.org/x/image/colornames"
)

const (
	coinSize  = 12
	coinValue = 50
)

// CoinSpawner stacks coins on top of still platforms. It is the engine's
// bonus spawn hook.
type CoinSpawner struct {
	rng    *rand.Rand
	chance float64
	coins  []Rect

	Collected int
}

func NewCoinSpawner(rng *rand.Rand, chance float64) *CoinSpawner {
	return &CoinSpawner{rng: rng, chance: chance}
}

func (c *CoinSpawner) OfferPlatform(tag platform.RenderTag) {
	if tag.Ghost || tag.IsMoving || tag.IsDodger || tag.IsInversa {
		return
	}
	if c.rng.Float64() >= c.chance {
		return
	}
	c.coins = append(c.coins, Rect{
		X:      tag.X - coinSize/2,
		Y:      tag.Y - coinSize - 14,
		Width:  coinSize,
		Height: coinSize,
	})
}

// Update collects coins touching player and drops the ones below despawnY.
// It returns the number collected this frame.
func (c *CoinSpawner) Update(player *Rect, despawnY float64) int {
	kept := c.coins[:0]
	got := 0
	for _, coin := range c.coins {
		switch {
		case coin.Intersects(player):
			got++
		case coin.Y > despawnY:
		default:
			kept = append(kept, coin)
		}
	}
	c.coins = kept
	c.Collected += got
	return got
}

func (c *CoinSpawner) Len() int {
	return len(c.coins)
}

func (c *CoinSpawner) Draw(screen *ebiten.Image, viewTop float64) {
	for _, coin := range c.coins {
		cx := float32(coin.X + coin.Width/2)
		cy := float32(coin.Y + coin.Height/2 - viewTop)
		vector.DrawFilledCircle(screen, cx, cy, coinSize/2, colornames.Gold, true)
		vector.StrokeCircle(screen, cx, cy, coinSize/2, 1, colornames.Darkgoldenrod, true)
	}
}
