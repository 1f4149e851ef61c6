package avro

import (
	"bytes"
	"testing"

	goavro "github.com/linkedin/goavro/v2"

	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

const testSchema = `{
  "type": "record",
  "name": "Sale",
  "fields": [
    {"name": "region", "type": "string"},
    {"name": "amount", "type": "double"},
    {"name": "active", "type": ["null", "boolean"], "default": null}
  ]
}`

func writeOCF(t *testing.T, records []map[string]any) *bytes.Buffer {
	t.Helper()
	codec, err := goavro.NewCodec(testSchema)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	w, err := goavro.NewOCFWriter(goavro.OCFConfig{W: &buf, Codec: codec})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if err := w.Append([]any{r}); err != nil {
			t.Fatal(err)
		}
	}
	return &buf
}

func TestReadInfersFieldTypesFromSchema(t *testing.T) {
	buf := writeOCF(t, []map[string]any{
		{"region": "east", "amount": 10.5, "active": goavro.Union("boolean", true)},
	})
	ds, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	region, ok := ds.Structure.Component("region")
	if !ok || region.Type != value.String {
		t.Errorf("region type = %+v, want String", region)
	}
	amount, ok := ds.Structure.Component("amount")
	if !ok || amount.Type != value.Number {
		t.Errorf("amount type = %+v, want Number", amount)
	}
	active, ok := ds.Structure.Component("active")
	if !ok || active.Type != value.Boolean {
		t.Errorf("active type = %+v, want Boolean (first non-null union branch)", active)
	}
}

func TestReadEveryFieldIsMeasure(t *testing.T) {
	buf := writeOCF(t, []map[string]any{{"region": "east", "amount": 1.0, "active": goavro.Union("boolean", true)}})
	ds, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range ds.Structure.Components {
		if c.Role != structure.Measure {
			t.Errorf("component %q role = %v, want Measure (Avro schemas carry no role information)", c.Name, c.Role)
		}
	}
}

func TestReadDecodesRecordValues(t *testing.T) {
	buf := writeOCF(t, []map[string]any{
		{"region": "west", "amount": 7.0, "active": goavro.Union("boolean", false)},
	})
	ds, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := ds.Materialize()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	region, _ := rows[0].Get("region")
	amount, _ := rows[0].Get("amount")
	active, _ := rows[0].Get("active")
	if region.AsString() != "west" || amount.AsNumber() != 7 || active.AsBool() {
		t.Errorf("row = region=%v amount=%v active=%v, want west/7/false", region, amount, active)
	}
}

func TestReadNullUnionFieldDecodesAsNull(t *testing.T) {
	buf := writeOCF(t, []map[string]any{
		{"region": "north", "amount": 1.0, "active": goavro.Union("null", nil)},
	})
	ds, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := ds.Materialize()
	if err != nil {
		t.Fatal(err)
	}
	active, _ := rows[0].Get("active")
	if !active.IsNull() {
		t.Errorf("active = %v, want null", active)
	}
}

func TestInferFieldTypeUnionPicksFirstNonNullBranch(t *testing.T) {
	typ := inferFieldType([]any{"null", "long"})
	if typ != value.Integer {
		t.Errorf("inferFieldType = %v, want Integer", typ)
	}
}

func TestInferFieldTypePlainString(t *testing.T) {
	if inferFieldType("boolean") != value.Boolean {
		t.Error("inferFieldType(\"boolean\") should be Boolean")
	}
}

func TestAvroTypeNameUnknownFallsBackToString(t *testing.T) {
	if avroTypeName("bytes") != value.String {
		t.Error("avroTypeName(\"bytes\") should fall back to String")
	}
}
