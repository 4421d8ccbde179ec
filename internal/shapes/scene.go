package shapes

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/aspectgo/internal/callsite"
)

// ErrOutOfBounds is returned when a move would leave a point outside the
// scene's bounds.
var ErrOutOfBounds = errors.New("point out of bounds")

// Shape is anything that can be moved.
type Shape interface {
	MoveBy(ctx context.Context, dx, dy int) error
	String() string
}

// Bounds is an inclusive rectangle points must stay within.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

func (b *Bounds) contains(x, y int) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Scene owns the call-sites of every shape operation.
type Scene struct {
	newPoint   *callsite.Site
	newLine    *callsite.Site
	newPolygon *callsite.Site
	newCanvas  *callsite.Site

	pointMoveBy   *callsite.Site
	lineMoveBy    *callsite.Site
	polygonMoveBy *callsite.Site
	canvasMoveBy  *callsite.Site

	distance *callsite.Site

	bounds *Bounds
}

// NewScene creates a scene with its call-sites.
func NewScene() *Scene {
	s := &Scene{}
	s.newPoint = callsite.NewFor((*Scene).NewPoint, s.constructPoint)
	s.newLine = callsite.NewFor((*Scene).NewLine, s.constructLine)
	s.newPolygon = callsite.NewFor((*Scene).NewPolygon, s.constructPolygon)
	s.newCanvas = callsite.NewFor((*Scene).NewCanvas, s.constructCanvas)
	s.pointMoveBy = callsite.NewFor((*Point).MoveBy, movePoint)
	s.lineMoveBy = callsite.NewFor((*Line).MoveBy, moveLine)
	s.polygonMoveBy = callsite.NewFor((*Polygon).MoveBy, movePolygon)
	s.canvasMoveBy = callsite.NewFor((*Canvas).MoveBy, moveCanvas)
	s.distance = callsite.NewFor(Distance, distance)
	return s
}

// Sites returns every call-site of the scene.
func (s *Scene) Sites() []*callsite.Site {
	return []*callsite.Site{
		s.newPoint, s.newLine, s.newPolygon, s.newCanvas,
		s.pointMoveBy, s.lineMoveBy, s.polygonMoveBy, s.canvasMoveBy,
		s.distance,
	}
}

// Register declares the scene's call-sites as hookable.
func (s *Scene) Register(c *callsite.Catalog) {
	c.Register(s.Sites()...)
}

// SetBounds restricts where points may move. A nil bounds removes the
// restriction.
func (s *Scene) SetBounds(b *Bounds) {
	s.bounds = b
}

// NewPoint creates a point.
func (s *Scene) NewPoint(ctx context.Context, x, y int) (*Point, error) {
	out, err := s.newPoint.Invoke(ctx, callsite.Positional(s, x, y))
	if err != nil {
		return nil, err
	}
	return out.(*Point), nil
}

func (s *Scene) constructPoint(_ context.Context, args callsite.Args) (any, error) {
	x, err := args.Int(1)
	if err != nil {
		return nil, err
	}
	y, err := args.Int(2)
	if err != nil {
		return nil, err
	}
	if s.bounds != nil && !s.bounds.contains(x, y) {
		return nil, fmt.Errorf("new point (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	return &Point{scene: s, X: x, Y: y}, nil
}

// NewLine creates a line between two points.
func (s *Scene) NewLine(ctx context.Context, p1, p2 *Point) (*Line, error) {
	out, err := s.newLine.Invoke(ctx, callsite.Positional(s, p1, p2))
	if err != nil {
		return nil, err
	}
	return out.(*Line), nil
}

func (s *Scene) constructLine(_ context.Context, args callsite.Args) (any, error) {
	p1, ok1 := args.At(1).(*Point)
	p2, ok2 := args.At(2).(*Point)
	if !ok1 || !ok2 || p1 == nil || p2 == nil {
		return nil, errors.New("a line needs two points")
	}
	return &Line{scene: s, P1: p1, P2: p2}, nil
}

// NewPolygon creates a polygon from its edges.
func (s *Scene) NewPolygon(ctx context.Context, lines ...*Line) (*Polygon, error) {
	out, err := s.newPolygon.Invoke(ctx, callsite.Positional(s, lines))
	if err != nil {
		return nil, err
	}
	return out.(*Polygon), nil
}

func (s *Scene) constructPolygon(_ context.Context, args callsite.Args) (any, error) {
	lines, _ := args.At(1).([]*Line)
	return &Polygon{scene: s, Lines: lines}, nil
}

// NewCanvas creates a canvas holding shapes.
func (s *Scene) NewCanvas(ctx context.Context, shapes ...Shape) (*Canvas, error) {
	out, err := s.newCanvas.Invoke(ctx, callsite.Positional(s, shapes))
	if err != nil {
		return nil, err
	}
	return out.(*Canvas), nil
}

func (s *Scene) constructCanvas(_ context.Context, args callsite.Args) (any, error) {
	shapes, _ := args.At(1).([]Shape)
	return &Canvas{scene: s, Shapes: shapes}, nil
}
