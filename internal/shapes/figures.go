package shapes

import (
	"context"
	"fmt"
	"io"
)

// Figures holds the sample drawing: a square, a line and a point, all on
// one canvas.
type Figures struct {
	Square *Polygon
	Line   *Line
	Point  *Point
	Canvas *Canvas
}

// BuildFigures creates the sample drawing through the scene's constructors.
func BuildFigures(ctx context.Context, s *Scene) (*Figures, error) {
	var firstErr error
	point := func(x, y int) *Point {
		if firstErr != nil {
			return nil
		}
		p, err := s.NewPoint(ctx, x, y)
		if err != nil {
			firstErr = err
		}
		return p
	}
	line := func(p1, p2 *Point) *Line {
		if firstErr != nil {
			return nil
		}
		l, err := s.NewLine(ctx, p1, p2)
		if err != nil {
			firstErr = err
		}
		return l
	}

	edges := []*Line{
		line(point(1, 1), point(1, 4)),
		line(point(1, 4), point(4, 4)),
		line(point(4, 4), point(4, 1)),
		line(point(4, 1), point(1, 1)),
	}
	single := line(point(5, 2), point(6, 5))
	dot := point(8, 9)
	if firstErr != nil {
		return nil, fmt.Errorf("failed to build figures: %w", firstErr)
	}

	square, err := s.NewPolygon(ctx, edges...)
	if err != nil {
		return nil, fmt.Errorf("failed to build square: %w", err)
	}
	canvas, err := s.NewCanvas(ctx, square, single, dot)
	if err != nil {
		return nil, fmt.Errorf("failed to build canvas: %w", err)
	}
	return &Figures{Square: square, Line: single, Point: dot, Canvas: canvas}, nil
}

// RunFigures builds the sample drawing and moves progressively larger parts
// of it, narrating each step to out.
func RunFigures(ctx context.Context, s *Scene, out io.Writer) (*Figures, error) {
	figs, err := BuildFigures(ctx, s)
	if err != nil {
		return nil, err
	}

	steps := []struct {
		title  string
		shape  Shape
		dx, dy int
	}{
		{"About to move a single point.", figs.Point, 0, 1},
		{"About to move a line containing points.", figs.Line, 2, 3},
		{"About to move a shape containing lines containing points.", figs.Square, 4, 5},
		{"About to move a canvas containing shapes containing lines containing points.", figs.Canvas, 6, 7},
	}
	for _, step := range steps {
		fmt.Fprintln(out, step.title)
		if err := step.shape.MoveBy(ctx, step.dx, step.dy); err != nil {
			return figs, fmt.Errorf("failed to move %s: %w", step.shape, err)
		}
		fmt.Fprintln(out)
	}
	return figs, nil
}
