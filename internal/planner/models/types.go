package models

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Rect задается левым верхним углом; Rotation в градусах вокруг центра.
type Rect struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation,omitempty"`
}

type Circle struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Radius float64 `json:"radius"`
}

type Bezier struct {
	Start   Point `json:"start"`
	Control Point `json:"control"`
	End     Point `json:"end"`
}

// Placement задает центр объекта в мировых координатах, Rotation в градусах.
type Placement struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// Dimensions объекта в мм.
type Dimensions struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// ============================================================
// Shapes
// ============================================================

type ShapeType string

const (
	ShapeWall        ShapeType = "wall"
	ShapeLine        ShapeType = "line"
	ShapeDoor        ShapeType = "door"
	ShapeWindow      ShapeType = "window"
	ShapeSlidingDoor ShapeType = "sliding_door"
	ShapeRoom        ShapeType = "room"
	ShapePolygon     ShapeType = "polygon"
	ShapeRectangle   ShapeType = "rectangle"
	ShapeCircle      ShapeType = "circle"
	ShapeBezier      ShapeType = "bezier"
	ShapeImage       ShapeType = "image"
	ShapeObject      ShapeType = "object"
)

// IsOpening сообщает, является ли тип проемом в стене.
func (t ShapeType) IsOpening() bool {
	return t == ShapeDoor || t == ShapeWindow || t == ShapeSlidingDoor
}

// Shape описывает одну фигуру плана. Геометрия хранится ровно в одном из полей
// Line, Rect, Points, Circle, Bezier, Placement в зависимости от Type.
type Shape struct {
	ID       string    `json:"id"`
	Type     ShapeType `json:"type"`
	Name     string    `json:"name,omitempty"`
	Category string    `json:"category,omitempty"`

	Line      *Line      `json:"line,omitempty"`
	Rect      *Rect      `json:"rect,omitempty"`
	Points    []Point    `json:"points,omitempty"`
	Circle    *Circle    `json:"circle,omitempty"`
	Bezier    *Bezier    `json:"bezier,omitempty"`
	Placement *Placement `json:"placement,omitempty"`

	HeightMM          float64 `json:"heightMM,omitempty"`
	ThicknessMM       float64 `json:"thicknessMM,omitempty"`
	ElevationBottomMM float64 `json:"elevationBottomMM,omitempty"`

	Dimensions   *Dimensions           `json:"dimensions,omitempty"`
	WallRelative *WallRelativePosition `json:"wallRelative,omitempty"`
}

// ShapeUpdate содержит частичное обновление фигуры, которое вызывающая сторона
// сливает со своей копией.
type ShapeUpdate struct {
	Placement    *Placement            `json:"placement,omitempty"`
	Dimensions   *Dimensions           `json:"dimensions,omitempty"`
	WallRelative *WallRelativePosition `json:"wallRelative,omitempty"`
}

// Plan получается в результате импорта.
type Plan struct {
	ID     string  `json:"id"`
	Unit   string  `json:"unit"`
	Shapes []Shape `json:"shapes"`
}

// ============================================================
// Wall frames
// ============================================================

type WallGeometry struct {
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Length  float64 `json:"length"`
	Angle   float64 `json:"angle"`
	UnitX   float64 `json:"unitX"`
	UnitY   float64 `json:"unitY"`
	NormalX float64 `json:"normalX"`
	NormalY float64 `json:"normalY"`
}

// Midpoint возвращает середину стены.
func (g WallGeometry) Midpoint() Point {
	return Point{X: (g.X1 + g.X2) / 2, Y: (g.Y1 + g.Y2) / 2}
}

// WallRelativePosition хранит позицию по переднему краю объекта, не по центру.
type WallRelativePosition struct {
	WallID                string  `json:"wallId"`
	DistanceFromWallStart float64 `json:"distanceFromWallStart"`
	PerpendicularOffset   float64 `json:"perpendicularOffset"`
	ElevationBottom       float64 `json:"elevationBottom"`
	Width                 float64 `json:"width"`
	Height                float64 `json:"height"`
	Depth                 float64 `json:"depth"`
}

type WorldPosition struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// ScreenRect задает прямоугольник в пикселях вида развертки.
type ScreenRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ============================================================
// Rooms & elevations
// ============================================================

type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions в порядке обхода для развертки.
var Directions = []Direction{North, East, South, West}

type RoomEdge struct {
	Direction    Direction `json:"direction"`
	Start        Point     `json:"start"`
	End          Point     `json:"end"`
	LengthPixels float64   `json:"lengthPixels"`
	EdgeIndex    int       `json:"edgeIndex"`
}

type EdgeOpening struct {
	Shape       Shape     `json:"shape"`
	PositionT   float64   `json:"positionT"`
	WidthPixels float64   `json:"widthPixels"`
	Type        ShapeType `json:"type"`
}

type SegmentData struct {
	SegmentIndex int           `json:"segmentIndex"`
	Label        string        `json:"label"`
	Direction    Direction     `json:"direction"`
	Edge         RoomEdge      `json:"edge"`
	LengthPixels float64       `json:"lengthPixels"`
	LengthMM     float64       `json:"lengthMM"`
	HasWall      bool          `json:"hasWall"`
	Wall         *Shape        `json:"wall,omitempty"`
	WallHeightMM float64       `json:"wallHeightMM"`
	Openings     []EdgeOpening `json:"openings"`
}

// DirectionWall описывает участок стены на сгруппированной стороне, в долях [0,1].
type DirectionWall struct {
	Wall     Shape   `json:"wall"`
	StartT   float64 `json:"startT"`
	EndT     float64 `json:"endT"`
	HeightMM float64 `json:"heightMM"`
}

type DirectionData struct {
	Direction       Direction       `json:"direction"`
	Edges           []RoomEdge      `json:"edges"`
	LengthPixels    float64         `json:"lengthPixels"`
	LengthMM        float64         `json:"lengthMM"`
	Walls           []DirectionWall `json:"walls"`
	CoveragePercent float64         `json:"coveragePercent"`
	HasWall         bool            `json:"hasWall"`
	WallHeightMM    float64         `json:"wallHeightMM"`
	Openings        []EdgeOpening   `json:"openings"`
}

type SegmentType string

const (
	SegmentWall        SegmentType = "wall"
	SegmentDoor        SegmentType = "door"
	SegmentWindow      SegmentType = "window"
	SegmentSlidingDoor SegmentType = "sliding_door"
	SegmentGap         SegmentType = "gap"
)

type CombinedWallSegment struct {
	Type            SegmentType `json:"type"`
	StartPositionMM float64     `json:"startPositionMM"`
	LengthMM        float64     `json:"lengthMM"`
	HeightMM        *float64    `json:"heightMM,omitempty"`
	ElevationBottom *float64    `json:"elevationBottom,omitempty"`
}
