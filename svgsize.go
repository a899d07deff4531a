package svgico

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
	"github.com/tdewolff/parse/v2/xml"
)

// CSS pixels per unit for the absolute length units allowed on the root element.
var unitScale = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 4.0 / 3.0,
	"pc": 16,
	"mm": 96 / 25.4,
	"cm": 96 / 2.54,
	"in": 96,
}

// rootAttrs holds the sizing attributes of the outermost <svg> element.
type rootAttrs struct {
	width, height, viewBox string
}

// readRootAttrs scans the document up to the end of the first <svg> start tag.
func readRootAttrs(data []byte) (rootAttrs, error) {
	var attrs rootAttrs

	l := xml.NewLexer(parse.NewInputBytes(data))
	inRoot := false
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() == io.EOF {
				return attrs, fmt.Errorf("no <svg> root element")
			}
			return attrs, l.Err()
		case xml.StartTagToken:
			if string(localName(l.Text())) != "svg" {
				return attrs, fmt.Errorf("root element is <%s>, not <svg>", l.Text())
			}
			inRoot = true
		case xml.AttributeToken:
			if !inRoot {
				continue
			}
			val := string(unquote(l.AttrVal()))
			switch string(localName(l.Text())) {
			case "width":
				attrs.width = val
			case "height":
				attrs.height = val
			case "viewBox":
				attrs.viewBox = val
			}
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken:
			if inRoot {
				return attrs, nil
			}
		}
	}
}

// intrinsicSize resolves the document size: absolute width and height
// attributes win, missing or relative ones fall back to the viewBox.
// A dimension which can be resolved from neither is 0. hasViewBox reports
// whether the root element declares a viewBox.
func intrinsicSize(data []byte) (w, h float64, hasViewBox bool, err error) {
	attrs, err := readRootAttrs(data)
	if err != nil {
		return 0, 0, false, err
	}
	var vbW, vbH float64
	if attrs.viewBox != "" {
		vb, err := parseNumbers(attrs.viewBox)
		if err != nil || len(vb) != 4 {
			return 0, 0, false, fmt.Errorf("invalid viewBox %q", attrs.viewBox)
		}
		vbW, vbH = vb[2], vb[3]
		hasViewBox = true
	}

	w, ok, err := parseLength(attrs.width)
	if err != nil {
		return 0, 0, false, err
	}
	if !ok {
		w = vbW
	}
	h, ok, err = parseLength(attrs.height)
	if err != nil {
		return 0, 0, false, err
	}
	if !ok {
		h = vbH
	}
	return w, h, hasViewBox, nil
}

// parseLength converts an absolute SVG length into pixels. It reports false
// for an empty value or a percentage, which do not define an intrinsic size.
func parseLength(s string) (float64, bool, error) {
	b := parse.TrimWhitespace([]byte(s))
	if len(b) == 0 {
		return 0, false, nil
	}
	v, n := strconv.ParseFloat(b)
	if n == 0 {
		return 0, false, fmt.Errorf("invalid length %q", s)
	}
	unit := string(bytes.ToLower(b[n:]))
	if unit == "%" {
		return 0, false, nil
	}
	scale, ok := unitScale[unit]
	if !ok {
		return 0, false, fmt.Errorf("unsupported length unit %q", unit)
	}
	return v * scale, true, nil
}

// parseNumbers splits a comma or whitespace separated list of numbers.
func parseNumbers(s string) ([]float64, error) {
	var nums []float64
	b := []byte(s)
	for {
		b = bytes.TrimLeft(b, " \t\r\n,")
		if len(b) == 0 {
			return nums, nil
		}
		v, n := strconv.ParseFloat(b)
		if n == 0 {
			return nil, fmt.Errorf("invalid number in %q", s)
		}
		nums = append(nums, v)
		b = b[n:]
	}
}

func localName(name []byte) []byte {
	if i := bytes.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func unquote(b []byte) []byte {
	if len(b) >= 2 && (b[0] == '"' || b[0] == '\'') && b[len(b)-1] == b[0] {
		return b[1 : len(b)-1]
	}
	return b
}
