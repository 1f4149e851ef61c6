// Package sdmx builds a DataStructure from an SDMX-ML Data Structure
// Definition document, the two-step ingestion contract exercised by
// original_source/vtl-sdmx's DataStructureTest: a DSD is parsed into a
// DataStructure first, and a separate reader (collab/csv here) then
// loads data points against that already-known structure. Only the
// component inventory (dimensions, primary measure, attributes) is
// read; SDMX concept/codelist references are not resolved.
package sdmx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

type dsdDoc struct {
	DataStructures struct {
		DataStructure []dataStructureElem `xml:"DataStructure"`
	} `xml:"Structures>DataStructures"`
}

type dataStructureElem struct {
	ID         string `xml:"id,attr"`
	Components struct {
		DimensionList struct {
			Dimensions []componentElem `xml:"Dimension"`
		} `xml:"DimensionList"`
		MeasureList struct {
			Measures []componentElem `xml:"PrimaryMeasure"`
		} `xml:"MeasureList"`
		AttributeList struct {
			Attributes []componentElem `xml:"Attribute"`
		} `xml:"AttributeList"`
	} `xml:"DataStructureComponents"`
}

type componentElem struct {
	ID          string `xml:"id,attr"`
	LocalRepr   struct {
		TextFormat struct {
			TextType string `xml:"textType,attr"`
		} `xml:"TextFormat"`
	} `xml:"LocalRepresentation"`
}

// ReadFile parses filename and builds the DataStructure named dsdID
// within it.
func ReadFile(filename, dsdID string) (structure.DataStructure, error) {
	f, err := os.Open(filename)
	if err != nil {
		return structure.DataStructure{}, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()
	return Read(f, dsdID)
}

// Read parses an SDMX-ML DSD document and builds the DataStructure
// named dsdID.
func Read(r io.Reader, dsdID string) (structure.DataStructure, error) {
	var doc dsdDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return structure.DataStructure{}, fmt.Errorf("cannot parse SDMX-ML document: %w", err)
	}

	var dsd *dataStructureElem
	for i := range doc.DataStructures.DataStructure {
		if doc.DataStructures.DataStructure[i].ID == dsdID {
			dsd = &doc.DataStructures.DataStructure[i]
			break
		}
	}
	if dsd == nil {
		return structure.DataStructure{}, fmt.Errorf("data structure definition %q not found", dsdID)
	}

	var components []structure.Component
	for _, d := range dsd.Components.DimensionList.Dimensions {
		components = append(components, structure.Component{
			Name: d.ID, Type: textTypeToType(d.LocalRepr.TextFormat.TextType), Role: structure.Identifier,
		})
	}
	for _, m := range dsd.Components.MeasureList.Measures {
		components = append(components, structure.Component{
			Name: m.ID, Type: textTypeToType(m.LocalRepr.TextFormat.TextType), Role: structure.Measure,
		})
	}
	for _, a := range dsd.Components.AttributeList.Attributes {
		components = append(components, structure.Component{
			Name: a.ID, Type: textTypeToType(a.LocalRepr.TextFormat.TextType), Role: structure.Attribute,
		})
	}

	return structure.New(components...)
}

// textTypeToType maps an SDMX TextFormat textType to a scalar Type,
// defaulting to String for codelist-backed and unrecognized types.
func textTypeToType(textType string) value.Type {
	switch textType {
	case "Integer", "Long", "Short", "BigInteger":
		return value.Integer
	case "Double", "Float", "Decimal", "BigDecimal":
		return value.Number
	case "Boolean":
		return value.Boolean
	default:
		return value.String
	}
}
