// Package osmxml читает контурные линии из OSM XML, который генерирует Srtm2Osm.
package osmxml

import (
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// ErrUnresolvedReference - nd ссылается на неизвестную точку
var ErrUnresolvedReference = stderrors.New("unresolved node reference")

// Document - результат разбора: все точки и все линии в порядке следования
type Document struct {
	Points   map[string]domain.GeoPoint
	Contours []domain.GeoContour
}

type state int

const (
	stateIdle state = iota
	stateBuildingContour
)

// rawWay - линия до разрешения ссылок на точки
type rawWay struct {
	id       string
	refs     []string
	altitude float64
}

type cursor struct {
	state   state
	current *rawWay
	points  map[string]domain.GeoPoint
	ways    []rawWay
}

type Parser struct {
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse разбирает документ. Точки собираются за весь документ до разрешения
// ссылок, поэтому nd может ссылаться на node, объявленный ниже.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	c := &cursor{points: make(map[string]domain.GeoPoint)}

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.ErrInputMalformed.Wrap(err)
		}

		switch se := t.(type) {
		case xml.StartElement:
			if err := c.readStartElement(se); err != nil {
				return nil, errors.ErrInputMalformed.Wrap(err)
			}
		case xml.EndElement:
			if err := c.readEndElement(se); err != nil {
				return nil, errors.ErrInputMalformed.Wrap(err)
			}
		}
	}

	if c.state != stateIdle {
		return nil, errors.ErrInputMalformed.Wrapf("way %s is not closed", c.current.id)
	}

	doc, err := c.resolve()
	if err != nil {
		return nil, errors.ErrInputMalformed.Wrap(err)
	}

	p.logger.Debug("OSM document parsed",
		zap.Int("points", len(doc.Points)),
		zap.Int("contours", len(doc.Contours)),
	)

	return doc, nil
}

func (c *cursor) readStartElement(se xml.StartElement) error {
	switch se.Name.Local {
	case "node":
		return c.readNode(se)
	case "way":
		if c.state == stateBuildingContour {
			return fmt.Errorf("way %s opened inside way %s", attr(se, "id"), c.current.id)
		}
		c.current = &rawWay{id: attr(se, "id")}
		c.state = stateBuildingContour
	case "nd":
		if c.state != stateBuildingContour {
			return fmt.Errorf("nd outside of a way")
		}
		ref := attr(se, "ref")
		if ref == "" {
			return fmt.Errorf("nd without ref in way %s", c.current.id)
		}
		c.current.refs = append(c.current.refs, ref)
	case "tag":
		// теги узлов и отношений не нужны
		if c.state != stateBuildingContour || attr(se, "k") != "ele" {
			return nil
		}
		v := attr(se, "v")
		alt, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(alt) || math.IsInf(alt, 0) {
			return fmt.Errorf("way %s has invalid ele %q", c.current.id, v)
		}
		c.current.altitude = alt
	}
	return nil
}

func (c *cursor) readEndElement(se xml.EndElement) error {
	if se.Name.Local != "way" {
		return nil
	}
	if c.state != stateBuildingContour {
		return fmt.Errorf("way closed without being opened")
	}
	c.ways = append(c.ways, *c.current)
	c.current = nil
	c.state = stateIdle
	return nil
}

func (c *cursor) readNode(se xml.StartElement) error {
	id := attr(se, "id")
	if id == "" {
		return fmt.Errorf("node without id")
	}
	lat, err := parseCoord(se, "lat")
	if err != nil {
		return fmt.Errorf("node %s: %w", id, err)
	}
	lon, err := parseCoord(se, "lon")
	if err != nil {
		return fmt.Errorf("node %s: %w", id, err)
	}
	c.points[id] = domain.GeoPoint{Lat: lat, Lon: lon}
	return nil
}

func (c *cursor) resolve() (*Document, error) {
	contours := make([]domain.GeoContour, 0, len(c.ways))
	for _, w := range c.ways {
		contour := domain.GeoContour{
			Altitude: w.altitude,
			Points:   make([]domain.GeoPoint, 0, len(w.refs)),
		}
		for _, ref := range w.refs {
			pt, ok := c.points[ref]
			if !ok {
				return nil, fmt.Errorf("%w: point %s in way %s", ErrUnresolvedReference, ref, w.id)
			}
			contour.Points = append(contour.Points, pt)
		}
		contours = append(contours, contour)
	}
	return &Document{Points: c.points, Contours: contours}, nil
}

func parseCoord(se xml.StartElement, name string) (float64, error) {
	v := attr(se, name)
	if v == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return f, nil
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
