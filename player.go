package main

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lavaclimb/common"
	"github.com/milk9111/lavaclimb/physics"
	"github.com/milk9111/lavaclimb/platform"
	"golang.org/x/image/colornames"
)

// playerState is the interface each concrete player state implements.
type playerState interface {
	Enter(p *Player)
	HandleInput(p *Player)
	OnPhysics(p *Player)
	Name() string
}

const (
	playerWidth           = 24
	playerHeight          = 36
	runSpeed              = 230.0  // px/s
	gravity               = 1150.0 // px/s^2
	maxFallSpeed          = 900.0
	slipFollow            = 0.06 // share of the speed gap closed per frame while slipping
	jumpBufferTimerAmount = 10   // frames
	coyoteTimeFrames      = 6    // allow jump within this many frames after leaving ground
)

// setState helper switches states and calls Enter.
func (p *Player) setState(s playerState) {
	if p.state == s {
		return
	}
	p.state = s
	p.state.Enter(p)
}

type idleState struct{}

func (idleState) Name() string { return "idle" }
func (idleState) Enter(p *Player) {
	p.log.Debug("entered idle state")
}
func (idleState) HandleInput(p *Player) {
	if p.Input.JumpPressed {
		p.jump()
		return
	}
	if p.Input.MoveX != 0 {
		p.setState(stateRunning)
	}
}
func (idleState) OnPhysics(p *Player) {
	if !p.grounded {
		p.setState(stateFalling)
	}
}

type runningState struct{}

func (runningState) Name() string { return "running" }
func (runningState) Enter(p *Player) {
	p.log.Debug("entered running state")
}
func (runningState) HandleInput(p *Player) {
	if p.Input.JumpPressed {
		p.jump()
		return
	}
	if p.Input.MoveX == 0 {
		p.setState(stateIdle)
	}
}
func (runningState) OnPhysics(p *Player) {
	if !p.grounded {
		p.setState(stateFalling)
	}
}

type jumpingState struct{}

func (jumpingState) Name() string { return "jumping" }
func (jumpingState) Enter(p *Player) {
	p.log.Debug("entered jumping state")
}
func (jumpingState) HandleInput(p *Player) {
	if p.Input.JumpPressed {
		if !p.doubleJumped {
			p.doubleJumped = true
			p.VelocityY = -p.jumpImpulse
			p.setState(stateDoubleJumping)
			return
		}
		p.bufferJump()
	}
}
func (jumpingState) OnPhysics(p *Player) {
	if p.grounded {
		p.land()
		return
	}
	if p.VelocityY > 0 {
		p.setState(stateFalling)
	}
}

type doubleJumpingState struct{}

func (doubleJumpingState) Name() string { return "doublejump" }
func (doubleJumpingState) Enter(p *Player) {
	p.log.Debug("entered double jumping state")
}
func (doubleJumpingState) HandleInput(p *Player) {
	if p.Input.JumpPressed {
		p.bufferJump()
	}
}
func (doubleJumpingState) OnPhysics(p *Player) {
	if p.grounded {
		p.land()
		return
	}
	if p.VelocityY > 0 {
		p.setState(stateFalling)
	}
}

type fallingState struct{}

func (fallingState) Name() string { return "falling" }
func (fallingState) Enter(p *Player) {
	p.log.Debug("entered falling state")
}
func (fallingState) HandleInput(p *Player) {
	if !p.Input.JumpPressed {
		return
	}
	// allow coyote jump shortly after leaving ground
	if p.coyoteTimer > 0 && !p.doubleJumped {
		p.coyoteTimer = 0
		p.jump()
		return
	}
	if !p.doubleJumped {
		p.doubleJumped = true
		p.VelocityY = -p.jumpImpulse
		p.setState(stateDoubleJumping)
		return
	}
	p.bufferJump()
}
func (fallingState) OnPhysics(p *Player) {
	if p.grounded {
		p.land()
	}
}

// singletons for each state to avoid allocating on every transition
var (
	stateIdle          playerState = &idleState{}
	stateRunning       playerState = &runningState{}
	stateJumping       playerState = &jumpingState{}
	stateDoubleJumping playerState = &doubleJumpingState{}
	stateFalling       playerState = &fallingState{}
)

// Player is the climber. It implements platform.Actor.
type Player struct {
	Rect
	VelocityX float64
	VelocityY float64
	impactVY  float64
	Input     *Input

	space       *physics.Space
	body        physics.BodyHandle
	controls    *platform.InvertControl
	screenW     float64
	jumpImpulse float64
	log         *slog.Logger

	state           playerState
	grounded        bool
	doubleJumped    bool
	jumpBuffer      bool
	jumpBufferTimer int
	coyoteTimer     int
	slipLeft        time.Duration
	facingRight     bool
}

// NewPlayer places the player with its feet centred on (x, feetY).
func NewPlayer(x, feetY float64, input *Input, space *physics.Space, screenW, jumpImpulse float64) (*Player, error) {
	p := &Player{
		Rect: Rect{
			X:      x - playerWidth/2,
			Y:      feetY - playerHeight,
			Width:  playerWidth,
			Height: playerHeight,
		},
		Input:       input,
		space:       space,
		screenW:     screenW,
		jumpImpulse: jumpImpulse,
		log:         common.Logger("player"),
		state:       stateIdle,
		grounded:    true,
		facingRight: true,
	}
	body, err := space.CreateStaticBody(p.X, p.Y, p.Width, p.Height)
	if err != nil {
		return nil, err
	}
	p.body = body
	p.state.Enter(p)
	return p, nil
}

// SetControls hooks the player up to the engine's control inversion.
func (p *Player) SetControls(c *platform.InvertControl) {
	p.controls = c
}

func (p *Player) Position() (float64, float64) { return p.CenterX(), p.Bottom() }
func (p *Player) Grounded() bool               { return p.grounded }
func (p *Player) JumpPressed() bool            { return p.Input.JumpPressed }
func (p *Player) Body() physics.BodyHandle     { return p.body }

// Velocity reports the landing fall speed on the tick the player landed,
// so bouncy platforms see the impact the landing step just absorbed.
func (p *Player) Velocity() (float64, float64) {
	if p.impactVY > 0 {
		return p.VelocityX, p.impactVY
	}
	return p.VelocityX, p.VelocityY
}

// SetVelocityY is how bouncy platforms launch the player.
func (p *Player) SetVelocityY(vy float64) {
	p.VelocityY = vy
	p.impactVY = 0
	if vy < 0 {
		p.grounded = false
		p.doubleJumped = false
		p.setState(stateJumping)
	}
}

// GrantSlip makes horizontal speed lag behind input for d.
func (p *Player) GrantSlip(d time.Duration) {
	if d > p.slipLeft {
		p.slipLeft = d
	}
}

func (p *Player) Slipping() bool {
	return p.slipLeft > 0
}

func (p *Player) StateName() string {
	return p.state.Name()
}

func (p *Player) jump() {
	p.VelocityY = -p.jumpImpulse
	p.impactVY = 0
	p.grounded = false
	p.setState(stateJumping)
}

func (p *Player) bufferJump() {
	p.jumpBuffer = true
	p.jumpBufferTimer = jumpBufferTimerAmount
}

func (p *Player) land() {
	p.doubleJumped = false
	if p.Input.MoveX != 0 {
		p.setState(stateRunning)
	} else {
		p.setState(stateIdle)
	}
}

// Update moves the player one step and lands it on the surfaces it falls
// onto. Surfaces are one-way: the player passes through them going up.
func (p *Player) Update(dt time.Duration, surfaces []platform.RenderTag) {
	secs := dt.Seconds()

	moveX := p.Input.MoveX
	if p.controls != nil {
		moveX = p.controls.ApplyX(moveX)
	}
	if moveX < 0 {
		p.facingRight = false
	} else if moveX > 0 {
		p.facingRight = true
	}

	if p.jumpBuffer {
		p.jumpBufferTimer--
		if p.jumpBufferTimer <= 0 {
			p.jumpBuffer = false
		}
	}
	p.state.HandleInput(p)

	target := moveX * runSpeed
	if p.slipLeft > 0 {
		p.VelocityX = common.Lerp(p.VelocityX, target, slipFollow)
		p.slipLeft -= dt
	} else {
		p.VelocityX = target
	}

	p.VelocityY += gravity * secs
	if p.VelocityY > maxFallSpeed {
		p.VelocityY = maxFallSpeed
	}

	prevBottom := p.Bottom()
	p.X += p.VelocityX * secs
	p.Y += p.VelocityY * secs
	p.X = common.Wrap(p.CenterX(), p.screenW) - p.Width/2

	p.grounded = false
	p.impactVY = 0
	if p.VelocityY >= 0 {
		p.resolveLanding(prevBottom, surfaces)
	}
	p.space.MoveBody(p.body, p.X, p.Y)

	if p.grounded {
		p.coyoteTimer = coyoteTimeFrames
	} else if p.coyoteTimer > 0 {
		p.coyoteTimer--
	}

	if p.jumpBuffer && p.grounded {
		p.jumpBuffer = false
		p.jump()
	}

	p.state.OnPhysics(p)
}

func (p *Player) resolveLanding(prevBottom float64, surfaces []platform.RenderTag) {
	left, right := p.X, p.X+p.Width
	for _, s := range surfaces {
		sl, sr := s.X-s.Width/2, s.X+s.Width/2
		if right <= sl || left >= sr {
			continue
		}
		if prevBottom <= s.Y && p.Bottom() >= s.Y {
			p.Y = s.Y - p.Height
			p.impactVY = p.VelocityY
			p.VelocityY = 0
			p.grounded = true
			return
		}
	}
}

func (p *Player) Draw(screen *ebiten.Image, viewTop float64) {
	var clr color.Color = colornames.Crimson
	if p.controls.Active() {
		clr = colornames.Hotpink
	}
	y := float32(p.Y - viewTop)
	for _, shift := range []float64{0, -p.screenW, p.screenW} {
		x := p.X + shift
		if x+p.Width < 0 || x > p.screenW {
			continue
		}
		vector.DrawFilledRect(screen, float32(x), y, float32(p.Width), float32(p.Height), clr, false)
		eyeX := x + p.Width*0.65
		if !p.facingRight {
			eyeX = x + p.Width*0.2
		}
		vector.DrawFilledRect(screen, float32(eyeX), y+8, 5, 5, colornames.White, false)
	}
}
