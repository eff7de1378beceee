package fs

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/instrmap"
)

// FormatXML writes the whole map as an XML document instead of CSV:
//
//	<instructions>
//	  <instruction mnemonic="ADDPS">
//	    <intrinsic>__m128 _mm_add_ps (__m128 a, __m128 b)</intrinsic>
//	  </instruction>
//	</instructions>
const FormatXML ValueFormat = "xml"

// WriteXML writes m to w as an indented XML document in key order.
func WriteXML(w io.Writer, m *instrmap.InstructionMap) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("instructions")
	for _, key := range m.Keys() {
		el := root.CreateElement("instruction")
		el.CreateAttr("mnemonic", key)
		for _, v := range m.Values(key) {
			el.CreateElement("intrinsic").SetText(v)
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

// ReadXML parses a document written by WriteXML.
func ReadXML(r io.Reader) (*instrmap.InstructionMap, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing map XML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "instructions" {
		return nil, instrmap.Errorf(instrmap.EINVALID, "missing <instructions> root element")
	}

	m := instrmap.NewInstructionMap()
	for _, el := range root.SelectElements("instruction") {
		key := strings.TrimSpace(el.SelectAttrValue("mnemonic", ""))
		if key == "" {
			return nil, instrmap.Errorf(instrmap.EINVALID, "instruction element without mnemonic")
		}
		for _, v := range el.SelectElements("intrinsic") {
			m.Add(key, v.Text())
		}
	}
	return m, nil
}
