// Package shapes is a small figure-editor model used to demonstrate
// weaving: points, lines, polygons and a canvas, where moving a composite
// moves every part it contains.
//
// Every constructor and MoveBy method dispatches through a call-site owned
// by the Scene, so aspects can be attached to them. Scene.Register lists
// those call-sites in a catalog.
package shapes
