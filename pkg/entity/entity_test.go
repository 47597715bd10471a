package entity

import (
	"strings"
	"testing"

	"github.com/terracarta/terraviz/pkg/errors"
	"github.com/terracarta/terraviz/pkg/jsonval"
)

func decode(t *testing.T, doc string) jsonval.Value {
	t.Helper()
	v, err := jsonval.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode test document: %v", err)
	}
	return v
}

func TestPolygonFromValue(t *testing.T) {
	v := decode(t, `[{"x":0,"y":0},{"x":1,"y":0},{"x":1,"y":1},{"x":0,"y":0}]`)

	p, err := PolygonFromValue(v, "$")
	if err != nil {
		t.Fatalf("PolygonFromValue: %v", err)
	}
	if len(p.Exterior) != 4 {
		t.Errorf("exterior holds %d points, want 4 (closing duplicate kept)", len(p.Exterior))
	}
	if p.Exterior[0] != p.Exterior[3] {
		t.Error("closing duplicate should equal first point")
	}
}

func TestPolygonFromValueMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"NotAnArray", `{"x":0}`},
		{"PointMissingY", `[{"x":0}]`},
		{"PointNotObject", `[4]`},
		{"NonNumericX", `[{"x":"a","y":0}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PolygonFromValue(decode(t, tt.doc), "$")
			if !errors.Is(err, errors.ErrCodeMalformedRecord) {
				t.Errorf("err = %v, want MALFORMED_RECORD", err)
			}
		})
	}
}

func TestPointFromValue(t *testing.T) {
	p, err := PointFromValue(decode(t, `{"x": 2.5, "y": -3, "extra": true}`), "$")
	if err != nil {
		t.Fatalf("PointFromValue: %v", err)
	}
	if p.X != 2.5 || p.Y != -3 {
		t.Errorf("point = (%v, %v), want (2.5, -3)", p.X, p.Y)
	}

	if _, err := PointFromValue(decode(t, `{"x": 2.5}`), "$"); !errors.Is(err, errors.ErrCodeMalformedRecord) {
		t.Errorf("missing y: err = %v, want MALFORMED_RECORD", err)
	}
}

const riverRecord = `{
	"i": 7,
	"indices": {"x": 3, "y": 4},
	"uv": {"x": 0.5, "y": 0.25},
	"h": 12.5,
	"neighbors": [18446744073709551615, 2, 18446744073709551615],
	"inlets": [3, 18446744073709551615, 5],
	"outlet": 2,
	"direction": {"x": 0, "y": -1},
	"fork_angle": 0.7,
	"strahler": 4
}`

func TestRiverNodeFromValue(t *testing.T) {
	n, err := RiverNodeFromValue(decode(t, riverRecord), "graph[7]")
	if err != nil {
		t.Fatalf("RiverNodeFromValue: %v", err)
	}

	if n.I != 7 {
		t.Errorf("I = %d, want 7", n.I)
	}
	if n.Pos.X != 0.5 || n.Pos.Y != 0.25 {
		t.Errorf("Pos = %v", n.Pos)
	}
	if n.Elevation != 12.5 {
		t.Errorf("Elevation = %v", n.Elevation)
	}
	if len(n.Neighbors) != 1 || n.Neighbors[0] != 2 {
		t.Errorf("Neighbors = %v, want [2] (sentinel filtered)", n.Neighbors)
	}
	if len(n.Inlets) != 2 || n.Inlets[0] != 3 || n.Inlets[1] != 5 {
		t.Errorf("Inlets = %v, want [3 5] (sentinel filtered)", n.Inlets)
	}
	if n.Outlet == nil || *n.Outlet != 2 {
		t.Errorf("Outlet = %v, want 2", n.Outlet)
	}
	if n.Strahler != 4 {
		t.Errorf("Strahler = %d, want 4", n.Strahler)
	}
}

func TestRiverNodeOutletFalsy(t *testing.T) {
	for _, outlet := range []string{`0`, `null`, `18446744073709551615`} {
		doc := strings.Replace(riverRecord, `"outlet": 2`, `"outlet": `+outlet, 1)
		n, err := RiverNodeFromValue(decode(t, doc), "graph[7]")
		if err != nil {
			t.Fatalf("outlet=%s: %v", outlet, err)
		}
		if n.Outlet != nil {
			t.Errorf("outlet=%s: Outlet = %v, want nil", outlet, *n.Outlet)
		}
	}
}

func TestRiverNodeMissingField(t *testing.T) {
	for _, field := range []string{"i", "indices", "uv", "h", "neighbors", "inlets", "direction", "fork_angle", "strahler"} {
		t.Run(field, func(t *testing.T) {
			doc := decode(t, riverRecord)
			members := make([]jsonval.Member, 0, len(doc.Members()))
			for _, m := range doc.Members() {
				if m.Key != field {
					members = append(members, m)
				}
			}
			_, err := RiverNodeFromValue(jsonval.Obj(members...), "graph[7]")
			if !errors.Is(err, errors.ErrCodeMalformedRecord) {
				t.Errorf("missing %s: err = %v, want MALFORMED_RECORD", field, err)
			}
			if err != nil && !strings.Contains(err.Error(), field) {
				t.Errorf("error %q does not name field %q", err.Error(), field)
			}
		})
	}

	// outlet is the one optional field.
	doc := decode(t, riverRecord)
	members := make([]jsonval.Member, 0, len(doc.Members()))
	for _, m := range doc.Members() {
		if m.Key != "outlet" {
			members = append(members, m)
		}
	}
	n, err := RiverNodeFromValue(jsonval.Obj(members...), "graph[7]")
	if err != nil {
		t.Fatalf("missing outlet should be fine: %v", err)
	}
	if n.Outlet != nil {
		t.Errorf("Outlet = %v, want nil", *n.Outlet)
	}
}

func TestTownNodeFromValue(t *testing.T) {
	n, err := TownNodeFromValue(decode(t, `{"i": 3, "uv": {"x": 1, "y": 2}}`), "nodes[3]")
	if err != nil {
		t.Fatalf("TownNodeFromValue: %v", err)
	}
	if n.I != 3 || n.Pos.X != 1 || n.Pos.Y != 2 {
		t.Errorf("node = %+v", n)
	}

	_, err = TownNodeFromValue(decode(t, `{"i": 3}`), "nodes[3]")
	if !errors.Is(err, errors.ErrCodeMalformedRecord) {
		t.Errorf("missing uv: err = %v, want MALFORMED_RECORD", err)
	}
}

func TestTownEdgeFromValue(t *testing.T) {
	e, err := TownEdgeFromValue(decode(t, `{"a": 0, "b": 9}`), "edges[0]")
	if err != nil {
		t.Fatalf("TownEdgeFromValue: %v", err)
	}
	if e.A != 0 || e.B != 9 {
		t.Errorf("edge = %+v", e)
	}

	_, err = TownEdgeFromValue(decode(t, `{"a": 0}`), "edges[0]")
	if !errors.Is(err, errors.ErrCodeMalformedRecord) {
		t.Errorf("missing b: err = %v, want MALFORMED_RECORD", err)
	}
}
