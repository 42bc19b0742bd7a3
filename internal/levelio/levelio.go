// Package levelio loads level definitions from YAML into match3.LevelConfig.
// This is the only package allowed to touch a filesystem or a (de)serialization
// format on the level's behalf — internal/match3 never does either
// (spec.md §6 external collaborator boundary).
package levelio

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"matchcore/internal/match3"
)

// cellDoc is the YAML row-major cell representation. Empty fields default
// to their corresponding match3 zero value (None/empty).
type cellDoc struct {
	Tile     string `yaml:"tile"`
	Bomb     string `yaml:"bomb,omitempty"`
	Ground   string `yaml:"ground,omitempty"`
	GroundHP uint8  `yaml:"ground_hp,omitempty"`
	Cover    string `yaml:"cover,omitempty"`
	CoverHP  uint8  `yaml:"cover_hp,omitempty"`
	CoverDyn bool   `yaml:"cover_dynamic,omitempty"`
}

type objectiveDoc struct {
	Layer   string `yaml:"layer"`
	Element string `yaml:"element"`
	Target  uint16 `yaml:"target"`
}

// levelDoc mirrors the on-disk YAML schema.
type levelDoc struct {
	Width         int            `yaml:"width"`
	Height        int            `yaml:"height"`
	TileTypeCount int            `yaml:"tile_type_count"`
	MoveLimit     uint16         `yaml:"move_limit"`
	Seed          uint64         `yaml:"seed"`
	Cells         []cellDoc      `yaml:"cells"`
	Objectives    []objectiveDoc `yaml:"objectives"`
}

// Load reads a level definition from a YAML file at path.
func Load(path string) (match3.LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return match3.LevelConfig{}, errors.Wrapf(err, "levelio: read %s", path)
	}
	return Parse(data)
}

// Parse decodes a level definition from raw YAML bytes.
func Parse(data []byte) (match3.LevelConfig, error) {
	var doc levelDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return match3.LevelConfig{}, errors.Wrap(err, "levelio: parse yaml")
	}

	want := doc.Width * doc.Height
	if len(doc.Cells) != want {
		return match3.LevelConfig{}, errors.Errorf("levelio: expected %d cells (%dx%d), got %d", want, doc.Width, doc.Height, len(doc.Cells))
	}

	cells := make([]match3.CellConfig, 0, len(doc.Cells))
	for i, c := range doc.Cells {
		tile, err := parseTileKind(c.Tile)
		if err != nil {
			return match3.LevelConfig{}, errors.Wrapf(err, "levelio: cell %d", i)
		}
		bomb, err := parseBombKind(c.Bomb)
		if err != nil {
			return match3.LevelConfig{}, errors.Wrapf(err, "levelio: cell %d", i)
		}
		ground, err := parseGroundKind(c.Ground)
		if err != nil {
			return match3.LevelConfig{}, errors.Wrapf(err, "levelio: cell %d", i)
		}
		cover, err := parseCoverKind(c.Cover)
		if err != nil {
			return match3.LevelConfig{}, errors.Wrapf(err, "levelio: cell %d", i)
		}

		cells = append(cells, match3.CellConfig{
			Tile:       tile,
			Bomb:       bomb,
			GroundKind: ground,
			GroundHP:   c.GroundHP,
			CoverKind:  cover,
			CoverHP:    c.CoverHP,
			CoverDyn:   c.CoverDyn,
		})
	}

	objectives := make([]match3.Objective, 0, len(doc.Objectives))
	for i, o := range doc.Objectives {
		layer, element, err := parseObjective(o)
		if err != nil {
			return match3.LevelConfig{}, errors.Wrapf(err, "levelio: objective %d", i)
		}
		objectives = append(objectives, match3.Objective{
			Layer:   layer,
			Element: element,
			Target:  o.Target,
		})
	}

	return match3.LevelConfig{
		Width:         doc.Width,
		Height:        doc.Height,
		TileTypeCount: doc.TileTypeCount,
		Cells:         cells,
		MoveLimit:     doc.MoveLimit,
		Objectives:    objectives,
		Seed:          doc.Seed,
	}, nil
}

func parseTileKind(s string) (match3.TileKind, error) {
	switch s {
	case "", "none":
		return match3.KindNone, nil
	case "red":
		return match3.KindRed, nil
	case "green":
		return match3.KindGreen, nil
	case "blue":
		return match3.KindBlue, nil
	case "yellow":
		return match3.KindYellow, nil
	case "purple":
		return match3.KindPurple, nil
	case "orange":
		return match3.KindOrange, nil
	case "rainbow":
		return match3.KindRainbow, nil
	default:
		return 0, fmt.Errorf("unknown tile kind %q", s)
	}
}

func parseBombKind(s string) (match3.BombKind, error) {
	switch s {
	case "", "none":
		return match3.BombNone, nil
	case "horizontal_rocket":
		return match3.BombHorizontalRocket, nil
	case "vertical_rocket":
		return match3.BombVerticalRocket, nil
	case "area_bomb":
		return match3.BombAreaBomb, nil
	case "color_bomb":
		return match3.BombColorBomb, nil
	case "ufo":
		return match3.BombUfo, nil
	default:
		return 0, fmt.Errorf("unknown bomb kind %q", s)
	}
}

func parseGroundKind(s string) (match3.GroundKind, error) {
	switch s {
	case "", "none":
		return match3.GroundNone, nil
	case "ice":
		return match3.GroundIce, nil
	default:
		return 0, fmt.Errorf("unknown ground kind %q", s)
	}
}

func parseCoverKind(s string) (match3.CoverKind, error) {
	switch s {
	case "", "none":
		return match3.CoverNone, nil
	case "cage":
		return match3.CoverCage, nil
	case "chain":
		return match3.CoverChain, nil
	case "bubble":
		return match3.CoverBubble, nil
	default:
		return 0, fmt.Errorf("unknown cover kind %q", s)
	}
}

func parseObjective(o objectiveDoc) (match3.ObjectiveLayer, int32, error) {
	switch o.Layer {
	case "tile":
		k, err := parseTileKind(o.Element)
		return match3.ObjectiveTile, int32(k), err
	case "cover":
		k, err := parseCoverKind(o.Element)
		return match3.ObjectiveCover, int32(k), err
	case "ground":
		k, err := parseGroundKind(o.Element)
		return match3.ObjectiveGround, int32(k), err
	default:
		return 0, 0, fmt.Errorf("unknown objective layer %q", o.Layer)
	}
}
