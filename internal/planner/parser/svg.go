package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"floorplan-engine/internal/planner/models"
)

// ============================================================
// XML Structures
// ============================================================

type SVG struct {
	XMLName  xml.Name  `xml:"svg"`
	Rects    []Rect    `xml:"rect"`
	Paths    []Path    `xml:"path"`
	Lines    []Line    `xml:"line"`
	Polygons []Polygon `xml:"polygon"`
	Groups   []Group   `xml:"g"`
}

// Group описывает вложенную группу <g>, ее элементы разбираются так же.
type Group struct {
	Rects    []Rect    `xml:"rect"`
	Paths    []Path    `xml:"path"`
	Lines    []Line    `xml:"line"`
	Polygons []Polygon `xml:"polygon"`
	Groups   []Group   `xml:"g"`
}

type Rect struct {
	ID     string  `xml:"id,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type Path struct {
	ID string `xml:"id,attr"`
	D  string `xml:"d,attr"`
}

type Line struct {
	ID string  `xml:"id,attr"`
	X1 float64 `xml:"x1,attr"`
	Y1 float64 `xml:"y1,attr"`
	X2 float64 `xml:"x2,attr"`
	Y2 float64 `xml:"y2,attr"`
}

type Polygon struct {
	ID     string `xml:"id,attr"`
	Points string `xml:"points,attr"`
}

// ============================================================
// Elements
// ============================================================

// Element описывает размеченный элемент плана. Geometry хранит одно из RectGeometry,
// PathGeometry, LineGeometry, PolygonGeometry.
type Element struct {
	ID       string
	Type     models.ShapeType
	Geometry interface{}
}

type RectGeometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type PathGeometry struct {
	D string
}

type LineGeometry struct {
	X1, Y1, X2, Y2 float64
}

type PolygonGeometry struct {
	Points []models.Point
}

// ============================================================
// Parser
// ============================================================

// ParseSVG читает SVG и возвращает элементы, распознанные по префиксу id.
// Элементы без распознанного id пропускаются.
func ParseSVG(r io.Reader) ([]Element, error) {
	var svg SVG
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&svg); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	var elements []Element
	collect(&elements, Group{
		Rects:    svg.Rects,
		Paths:    svg.Paths,
		Lines:    svg.Lines,
		Polygons: svg.Polygons,
		Groups:   svg.Groups,
	})
	return elements, nil
}

func collect(out *[]Element, g Group) {
	for _, rect := range g.Rects {
		if t := ClassifyElementByID(rect.ID); t != "" {
			*out = append(*out, Element{ID: rect.ID, Type: t, Geometry: RectGeometry{
				X:      rect.X,
				Y:      rect.Y,
				Width:  rect.Width,
				Height: rect.Height,
			}})
		}
	}

	for _, path := range g.Paths {
		if t := ClassifyElementByID(path.ID); t != "" {
			*out = append(*out, Element{ID: path.ID, Type: t, Geometry: PathGeometry{D: path.D}})
		}
	}

	for _, line := range g.Lines {
		if t := ClassifyElementByID(line.ID); t != "" {
			*out = append(*out, Element{ID: line.ID, Type: t, Geometry: LineGeometry{
				X1: line.X1, Y1: line.Y1, X2: line.X2, Y2: line.Y2,
			}})
		}
	}

	for _, poly := range g.Polygons {
		if t := ClassifyElementByID(poly.ID); t != "" {
			*out = append(*out, Element{ID: poly.ID, Type: t, Geometry: PolygonGeometry{Points: ParsePoints(poly.Points)}})
		}
	}

	for _, child := range g.Groups {
		collect(out, child)
	}
}

// ClassifyElementByID определяет тип фигуры по id элемента.
func ClassifyElementByID(id string) models.ShapeType {
	switch {
	case strings.HasPrefix(id, "Wall_"), strings.HasPrefix(id, "Hui_Wall_"):
		return models.ShapeWall
	case strings.HasPrefix(id, "SlidingDoor_"), strings.HasPrefix(id, "Sliding_Door_"):
		return models.ShapeSlidingDoor
	case strings.HasPrefix(id, "Door_"):
		return models.ShapeDoor
	case strings.HasPrefix(id, "Window_"):
		return models.ShapeWindow
	case strings.HasPrefix(id, "Room_"),
		strings.HasSuffix(id, "_room"), // Hall_room, Toilet_room
		strings.HasSuffix(id, "_Room"),
		strings.HasPrefix(id, "Balcony"):
		return models.ShapeRoom
	}
	return ""
}
