package attach

import "floorplan-engine/internal/planner/models"

// ============================================================
// Category defaults
// ============================================================

// CategoryDefaults хранит размеры по умолчанию для категории объекта, мм.
type CategoryDefaults struct {
	Width           float64
	Depth           float64
	Height          float64
	ElevationBottom float64
}

var fallbackDefaults = CategoryDefaults{Width: 600, Depth: 600, Height: 900}

var categoryDefaults = map[string]CategoryDefaults{
	"base_cabinet":   {Width: 600, Depth: 600, Height: 850},
	"wall_cabinet":   {Width: 600, Depth: 350, Height: 700, ElevationBottom: 1400},
	"tall_cabinet":   {Width: 600, Depth: 600, Height: 2100},
	"countertop":     {Width: 1200, Depth: 620, Height: 40, ElevationBottom: 860},
	"sink":           {Width: 800, Depth: 600, Height: 200, ElevationBottom: 700},
	"washbasin":      {Width: 600, Depth: 450, Height: 180, ElevationBottom: 800},
	"toilet":         {Width: 380, Depth: 650, Height: 800},
	"shower":         {Width: 900, Depth: 900, Height: 2000},
	"bathtub":        {Width: 1700, Depth: 750, Height: 600},
	"radiator":       {Width: 1000, Depth: 100, Height: 600, ElevationBottom: 150},
	"shelf":          {Width: 800, Depth: 250, Height: 30, ElevationBottom: 1500},
	"mirror":         {Width: 600, Depth: 20, Height: 800, ElevationBottom: 1100},
	"outlet":         {Width: 80, Depth: 40, Height: 80, ElevationBottom: 300},
	"switch":         {Width: 80, Depth: 40, Height: 80, ElevationBottom: 1050},
	"wardrobe":       {Width: 1000, Depth: 600, Height: 2200},
	"door":           {Width: 900, Depth: 100, Height: 2100},
	"sliding_door":   {Width: 1800, Depth: 100, Height: 2100},
	"window":         {Width: 1000, Depth: 100, Height: 1200, ElevationBottom: 900},
	"appliance":      {Width: 600, Depth: 600, Height: 850},
	"refrigerator":   {Width: 600, Depth: 650, Height: 1850},
	"dishwasher":     {Width: 600, Depth: 570, Height: 820},
	"range_hood":     {Width: 600, Depth: 450, Height: 300, ElevationBottom: 1500},
	"towel_warmer":   {Width: 500, Depth: 100, Height: 800, ElevationBottom: 400},
	"tv":             {Width: 1200, Depth: 60, Height: 700, ElevationBottom: 1000},
	"bookcase":       {Width: 800, Depth: 300, Height: 2000},
	"desk":           {Width: 1200, Depth: 600, Height: 740},
	"bed":            {Width: 1600, Depth: 2000, Height: 500},
	"sofa":           {Width: 2000, Depth: 900, Height: 800},
	"kitchen_island": {Width: 1800, Depth: 900, Height: 900},
}

// DefaultsFor возвращает размеры категории или общие значения по умолчанию.
func DefaultsFor(category string) CategoryDefaults {
	if d, ok := categoryDefaults[category]; ok {
		return d
	}
	return fallbackDefaults
}

// fillDimensions дополняет незаданные размеры: сначала из Dimensions,
// затем из прямоугольника фигуры (ширина и глубина), затем из категории.
func fillDimensions(shape models.Shape) models.Dimensions {
	def := DefaultsFor(shape.Category)
	out := models.Dimensions{Width: def.Width, Depth: def.Depth, Height: def.Height}
	if r := shape.Rect; r != nil {
		if r.Width > 0 {
			out.Width = r.Width
		}
		if r.Height > 0 {
			out.Depth = r.Height
		}
	}
	dims := shape.Dimensions
	if dims == nil {
		return out
	}
	if dims.Width > 0 {
		out.Width = dims.Width
	}
	if dims.Depth > 0 {
		out.Depth = dims.Depth
	}
	if dims.Height > 0 {
		out.Height = dims.Height
	}
	return out
}
