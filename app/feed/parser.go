package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/clbanning/mxj/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Parser converts raw supplier markup into a generic nested tree of maps,
// lists and string scalars. Attributes and element text land in the same tree,
// so path lookups need not distinguish them; an element carrying both
// attributes and text exposes the text under "#text".
type Parser struct{}

func NewParser() *Parser {
	// Attributes appear under their plain name, next to child elements.
	mxj.PrependAttrWithHyphen(false)
	mxj.XmlCharsetReader = charsetReader

	return &Parser{}
}

func (p *Parser) Run(data []byte) (map[string]interface{}, error) {
	tree, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	return map[string]interface{}(tree), nil
}

// charsetReader decodes the legacy encodings supplier exports commonly
// declare in their XML prolog.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return input, nil
	case "windows-1251", "cp1251":
		return transform.NewReader(input, charmap.Windows1251.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "koi8-r":
		return transform.NewReader(input, charmap.KOI8R.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported charset: %s", charset)
	}
}
