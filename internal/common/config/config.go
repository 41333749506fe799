package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	BodyLimitMB  int
	CORSOrigins  []string

	LogLevel  string
	LogFormat string

	PixelsPerMM         float64
	DefaultWallHeightMM float64
	Tolerances          Tolerances
}

// Tolerances: допуски движка в мм (углы в радианах).
type Tolerances struct {
	WallMatchMM     float64 `yaml:"wall_match_mm"`
	OpeningMatchMM  float64 `yaml:"opening_match_mm"`
	AngleRad        float64 `yaml:"angle_rad"`
	OpeningAngleRad float64 `yaml:"opening_angle_rad"`
	MinEdgeLengthMM float64 `yaml:"min_edge_length_mm"`
	ConnectMM       float64 `yaml:"connect_mm"`
	LogicalLineMM   float64 `yaml:"logical_line_mm"`
	SnapThreshold   float64 `yaml:"snap_threshold"`
}

const defaultWallHeightMM = 2400.0

func DefaultTolerances() Tolerances {
	return Tolerances{
		WallMatchMM:     200,
		OpeningMatchMM:  150,
		AngleRad:        0.2,
		OpeningAngleRad: 0.3,
		MinEdgeLengthMM: 10,
		ConnectMM:       150,
		LogicalLineMM:   50,
		SnapThreshold:   500,
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем файл
// TOLERANCES_FILE (если задан), затем переменные окружения.
func Load() (*Config, error) {
	tol := DefaultTolerances()
	if path := os.Getenv("TOLERANCES_FILE"); path != "" {
		if err := loadTolerancesFile(path, &tol); err != nil {
			return nil, err
		}
	}

	tol.WallMatchMM = getEnvAsFloat("WALL_MATCH_TOLERANCE_MM", tol.WallMatchMM)
	tol.OpeningMatchMM = getEnvAsFloat("OPENING_MATCH_TOLERANCE_MM", tol.OpeningMatchMM)
	tol.AngleRad = getEnvAsFloat("ANGLE_MATCH_TOLERANCE_RAD", tol.AngleRad)
	tol.OpeningAngleRad = getEnvAsFloat("OPENING_ANGLE_TOLERANCE_RAD", tol.OpeningAngleRad)
	tol.MinEdgeLengthMM = getEnvAsFloat("MIN_EDGE_LENGTH_MM", tol.MinEdgeLengthMM)
	tol.ConnectMM = getEnvAsFloat("CONNECT_TOLERANCE_MM", tol.ConnectMM)
	tol.LogicalLineMM = getEnvAsFloat("LOGICAL_LINE_TOLERANCE_MM", tol.LogicalLineMM)
	tol.SnapThreshold = getEnvAsFloat("SNAP_THRESHOLD", tol.SnapThreshold)

	cfg := &Config{
		Port:                getEnv("PORT", "3000"),
		Environment:         getEnv("ENV", "development"),
		ReadTimeout:         getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:        getEnvAsInt("WRITE_TIMEOUT", 10),
		BodyLimitMB:         getEnvAsInt("BODY_LIMIT_MB", 20),
		CORSOrigins:         getEnvAsList("CORS_ORIGINS"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
		PixelsPerMM:         getEnvAsFloat("PIXELS_PER_MM", 1),
		DefaultWallHeightMM: getEnvAsFloat("DEFAULT_WALL_HEIGHT_MM", defaultWallHeightMM),
		Tolerances:          tol,
	}

	if !(cfg.PixelsPerMM > 0) {
		return nil, fmt.Errorf("PIXELS_PER_MM must be positive, got %v", cfg.PixelsPerMM)
	}
	return cfg, nil
}

func loadTolerancesFile(path string, tol *Tolerances) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tolerances file: %w", err)
	}
	if err := yaml.Unmarshal(data, tol); err != nil {
		return fmt.Errorf("parse tolerances file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
