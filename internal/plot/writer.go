package plot

import (
	"bytes"
	"encoding/xml"
	"strconv"

	"github.com/google/uuid"
	"github.com/osm2svg/internal/domain"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// coordPrecision - знаков после запятой в координатах пути
const coordPrecision = 9

// drawingNamespace - пространство имён для детерминированных id чертежей
var drawingNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/osm2svg/drawing"))

// Style - двухуровневая толщина линии
type Style struct {
	StrokeWidth      float64
	MajorStrokeWidth float64
	// DuplicateMajorStroke повторяет путь основной горизонтали дважды,
	// как делал прежний инструмент. По умолчанию путь выводится один раз.
	DuplicateMajorStroke bool
}

// Document - параметры выходного документа
type Document struct {
	Name            string
	Width           float64
	Height          float64
	GroupByAltitude bool
}

// Drawing - сериализованный документ
type Drawing struct {
	ID      string
	Content []byte
	Paths   int
}

// VectorWriter сериализует сгруппированные контуры в SVG с относительными путями
type VectorWriter struct {
	style  Style
	logger *zap.Logger
}

func NewVectorWriter(style Style, logger *zap.Logger) *VectorWriter {
	return &VectorWriter{
		style:  style,
		logger: logger,
	}
}

// DrawingID - стабильный идентификатор чертежа по его имени
func DrawingID(name string) string {
	return "drawing-" + uuid.NewSHA1(drawingNamespace, []byte(name)).String()
}

// AltitudeLabel форматирует высоту для идентификаторов: 100, 102.5, -20
func AltitudeLabel(altitude float64) string {
	return strconv.FormatFloat(altitude, 'f', -1, 64)
}

// Write собирает документ целиком в памяти. Запись на диск выполняет
// вызывающая сторона одним действием.
func (w *VectorWriter) Write(groups []AltitudeGroup, doc Document) *Drawing {
	var buf bytes.Buffer
	buf.Grow(estimateSize(groups))

	id := DrawingID(doc.Name)
	w.writeHeader(&buf, id, doc)
	w.beginGroup(&buf, doc.Name, "  ")

	paths := 0
	for _, group := range groups {
		alt := AltitudeLabel(group.Altitude)
		indent := "    "
		if doc.GroupByAltitude {
			w.beginGroup(&buf, domain.AltitudeGroupPrefix+alt, indent)
			indent = "      "
		}

		index := 1
		for _, c := range group.Contours {
			if c.Empty() {
				continue
			}
			lineID := "line_" + alt + "_" + strconv.Itoa(index)
			width := w.style.StrokeWidth
			if c.Major {
				width = w.style.MajorStrokeWidth
			}

			w.writePath(&buf, indent, lineID, c.Line, width)
			if c.Major && w.style.DuplicateMajorStroke {
				w.writePath(&buf, indent, lineID, c.Line, width)
			}

			index++
			paths++
		}

		if doc.GroupByAltitude {
			buf.WriteString("    </g>\n")
		}
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")

	w.logger.Debug("Document serialized",
		zap.String("drawing_id", id),
		zap.Int("paths", paths),
		zap.Int("bytes", buf.Len()))

	return &Drawing{
		ID:      id,
		Content: buf.Bytes(),
		Paths:   paths,
	}
}

func (w *VectorWriter) writeHeader(buf *bytes.Buffer, id string, doc Document) {
	width := formatNumber(doc.Width)
	height := formatNumber(doc.Height)

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n")
	buf.WriteString(`<svg width="` + width + `mm" height="` + height + `mm" viewBox="0 0 ` + width + ` ` + height +
		`" version="1.1" id="` + id + `" xml:space="preserve"` + "\n")
	buf.WriteString(`  xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"` + "\n")
	buf.WriteString(`  xmlns="http://www.w3.org/2000/svg"` + "\n")
	buf.WriteString(`  xmlns:svg="http://www.w3.org/2000/svg">` + "\n")
}

func (w *VectorWriter) beginGroup(buf *bytes.Buffer, name, indent string) {
	buf.WriteString(indent + `<g id="`)
	_ = xml.EscapeText(buf, []byte(name))
	buf.WriteString(`" inkscape:label="`)
	_ = xml.EscapeText(buf, []byte(name))
	buf.WriteString(`" inkscape:groupmode="layer">` + "\n")
}

// writePath выводит путь: абсолютный move к первой вершине, далее
// приращения относительно предыдущей вершины
func (w *VectorWriter) writePath(buf *bytes.Buffer, indent, id string, line orb.LineString, width float64) {
	buf.WriteString(indent + `<path id="` + id + `" d="`)

	var prev orb.Point
	for i, p := range line {
		if i == 0 {
			buf.WriteString("m ")
			writePair(buf, p.X(), p.Y())
		} else {
			writePair(buf, p.X()-prev.X(), p.Y()-prev.Y())
		}
		prev = p
	}

	buf.WriteString(`" style="fill:none;stroke:#000000;stroke-width:`)
	buf.WriteString(formatNumber(width))
	buf.WriteString(`;stroke-linecap:square;stroke-linejoin:bevel;stroke-miterlimit:10;stroke-dasharray:none;stroke-opacity:1"/>` + "\n")
}

func writePair(buf *bytes.Buffer, x, y float64) {
	var num [32]byte
	buf.Write(strconv.AppendFloat(num[:0], x, 'f', coordPrecision, 64))
	buf.WriteByte(',')
	buf.Write(strconv.AppendFloat(num[:0], y, 'f', coordPrecision, 64))
	buf.WriteByte(' ')
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func estimateSize(groups []AltitudeGroup) int {
	n := 1024
	for _, g := range groups {
		n += 64
		for _, c := range g.Contours {
			n += 256 + len(c.Line)*32
		}
	}
	return n
}
