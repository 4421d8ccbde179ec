package shapes

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/aspectgo/internal/callsite"
)

// Point is a movable position.
type Point struct {
	scene *Scene
	X, Y  int
}

// MoveBy translates the point.
func (p *Point) MoveBy(ctx context.Context, dx, dy int) error {
	_, err := p.scene.pointMoveBy.Invoke(ctx, callsite.Positional(p, dx, dy))
	return err
}

func (p *Point) String() string {
	return fmt.Sprintf("Point(%d,%d)", p.X, p.Y)
}

// Line connects two points.
type Line struct {
	scene  *Scene
	P1, P2 *Point
}

// MoveBy translates both end points.
func (l *Line) MoveBy(ctx context.Context, dx, dy int) error {
	_, err := l.scene.lineMoveBy.Invoke(ctx, callsite.Positional(l, dx, dy))
	return err
}

func (l *Line) String() string {
	return fmt.Sprintf("Line(%s-%s)", l.P1, l.P2)
}

// Polygon is a closed figure made of lines.
type Polygon struct {
	scene *Scene
	Lines []*Line
}

// MoveBy translates every edge.
func (p *Polygon) MoveBy(ctx context.Context, dx, dy int) error {
	_, err := p.scene.polygonMoveBy.Invoke(ctx, callsite.Positional(p, dx, dy))
	return err
}

func (p *Polygon) String() string {
	parts := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		parts = append(parts, l.String())
	}
	return "Polygon[" + strings.Join(parts, " ") + "]"
}

// Canvas holds every shape on screen.
type Canvas struct {
	scene  *Scene
	Shapes []Shape
}

// MoveBy translates every shape on the canvas.
func (c *Canvas) MoveBy(ctx context.Context, dx, dy int) error {
	_, err := c.scene.canvasMoveBy.Invoke(ctx, callsite.Positional(c, dx, dy))
	return err
}

func (c *Canvas) String() string {
	return fmt.Sprintf("Canvas(%d shapes)", len(c.Shapes))
}

// Distance returns the squared distance between two points.
func Distance(ctx context.Context, a, b *Point) (int, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("distance needs two points")
	}
	out, err := a.scene.distance.Invoke(ctx, callsite.Positional(a, b))
	if err != nil {
		return 0, err
	}
	return out.(int), nil
}

func deltas(args callsite.Args) (int, int, error) {
	dx, err := args.Int(1)
	if err != nil {
		return 0, 0, err
	}
	dy, err := args.Int(2)
	if err != nil {
		return 0, 0, err
	}
	return dx, dy, nil
}

func movePoint(_ context.Context, args callsite.Args) (any, error) {
	p := args.Receiver().(*Point)
	dx, dy, err := deltas(args)
	if err != nil {
		return nil, err
	}
	x, y := p.X+dx, p.Y+dy
	if b := p.scene.bounds; b != nil && !b.contains(x, y) {
		return nil, fmt.Errorf("move %s by (%d,%d): %w", p, dx, dy, ErrOutOfBounds)
	}
	p.X, p.Y = x, y
	return nil, nil
}

func moveLine(ctx context.Context, args callsite.Args) (any, error) {
	l := args.Receiver().(*Line)
	dx, dy, err := deltas(args)
	if err != nil {
		return nil, err
	}
	if err := l.P1.MoveBy(ctx, dx, dy); err != nil {
		return nil, err
	}
	return nil, l.P2.MoveBy(ctx, dx, dy)
}

func movePolygon(ctx context.Context, args callsite.Args) (any, error) {
	p := args.Receiver().(*Polygon)
	dx, dy, err := deltas(args)
	if err != nil {
		return nil, err
	}
	for _, l := range p.Lines {
		if err := l.MoveBy(ctx, dx, dy); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func moveCanvas(ctx context.Context, args callsite.Args) (any, error) {
	c := args.Receiver().(*Canvas)
	dx, dy, err := deltas(args)
	if err != nil {
		return nil, err
	}
	for _, s := range c.Shapes {
		if err := s.MoveBy(ctx, dx, dy); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func distance(_ context.Context, args callsite.Args) (any, error) {
	a := args.At(0).(*Point)
	b := args.At(1).(*Point)
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy, nil
}
