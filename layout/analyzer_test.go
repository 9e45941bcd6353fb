package layout

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/tsawler/figura/model"
)

func TestNewAnalyzer(t *testing.T) {
	a := NewAnalyzer()
	if a == nil {
		t.Fatal("NewAnalyzer() returned nil")
	}
	if a.config != DefaultConfig() {
		t.Errorf("config = %+v, want defaults", a.config)
	}
}

func TestAnalyzer_AnalyzePage_InvalidGeometry(t *testing.T) {
	a := NewAnalyzer()

	tests := []model.PageGeometry{
		{Width: 0, Height: 800},
		{Width: 600, Height: 0},
		{Width: -1, Height: -1},
	}

	for _, geom := range tests {
		_, err := a.AnalyzePage(nil, nil, nil, geom)
		if err == nil {
			t.Errorf("AnalyzePage(%+v) returned nil error", geom)
			continue
		}
		if !errors.Is(err, model.ErrInvalidGeometry) {
			t.Errorf("AnalyzePage(%+v) error = %v, want ErrInvalidGeometry", geom, err)
		}
	}
}

func TestAnalyzer_AnalyzePage_EmptyPrimitives(t *testing.T) {
	a := NewAnalyzer()
	geom := model.PageGeometry{Width: 600, Height: 800}

	blocks := []model.Block{
		{ID: "T0", Type: model.BlockText, Rect: model.Rect{X0: 10, Y0: 10, X1: 100, Y1: 30}, Text: "hello"},
	}
	images := []model.Block{
		{ID: "I0", Type: model.BlockImage, Rect: model.Rect{X0: 200, Y0: 200, X1: 300, Y1: 300}},
	}

	res, err := a.AnalyzePage(blocks, images, nil, geom)
	if err != nil {
		t.Fatalf("AnalyzePage() failed: %v", err)
	}

	if len(res.Clusters) != 0 {
		t.Errorf("Clusters = %v, want empty", res.Clusters)
	}
	if len(res.TextBlocks) != 1 || res.TextBlocks[0] != blocks[0] {
		t.Errorf("TextBlocks = %+v, want passthrough of %+v", res.TextBlocks, blocks)
	}
	if len(res.ImageBlocks) != 1 || res.ImageBlocks[0] != images[0] {
		t.Errorf("ImageBlocks = %+v, want passthrough of %+v", res.ImageBlocks, images)
	}
}

func TestAnalyzer_AnalyzePage_FullPageFrame(t *testing.T) {
	// A 600x800 page whose only primitive is a full-page frame: the
	// frame rule rejects it before merging and no cluster comes out.
	a := NewAnalyzer()
	geom := model.PageGeometry{Width: 600, Height: 800}

	prims := []model.Primitive{
		{ID: "DRAW_RAW0", Rect: model.Rect{X0: 0, Y0: 0, X1: 599, Y1: 799}},
	}

	res, err := a.AnalyzePage(nil, nil, prims, geom)
	if err != nil {
		t.Fatalf("AnalyzePage() failed: %v", err)
	}
	if len(res.Clusters) != 0 {
		t.Errorf("Clusters = %+v, want empty", res.Clusters)
	}
	if len(res.Primitives) != 1 {
		t.Errorf("Primitives = %+v, want the raw input passed through", res.Primitives)
	}
}

func TestAnalyzer_AnalyzePage_TwoNearRects(t *testing.T) {
	// Two squares separated by a 2-unit gap merge into a single cluster
	// padded to (95,95,205,155).
	a := NewAnalyzer()
	geom := model.PageGeometry{Width: 600, Height: 800}

	prims := []model.Primitive{
		{ID: "DRAW_RAW0", Rect: model.Rect{X0: 100, Y0: 100, X1: 150, Y1: 150}},
		{ID: "DRAW_RAW1", Rect: model.Rect{X0: 152, Y0: 100, X1: 200, Y1: 150}},
	}

	res, err := a.AnalyzePage(nil, nil, prims, geom)
	if err != nil {
		t.Fatalf("AnalyzePage() failed: %v", err)
	}
	if len(res.Clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(res.Clusters))
	}

	c := res.Clusters[0]
	want := model.Rect{X0: 95, Y0: 95, X1: 205, Y1: 155}
	if c.Rect != want {
		t.Errorf("cluster Rect = %+v, want %+v", c.Rect, want)
	}
	if c.ID != "D0" {
		t.Errorf("cluster ID = %q, want D0", c.ID)
	}
	if c.YMin != 100 || c.YMax != 150 {
		t.Errorf("vertical extent = [%v %v], want [100 150]", c.YMin, c.YMax)
	}
}

func TestAnalyzer_AnalyzePage_BoundingProperty(t *testing.T) {
	// The cluster rectangle is the tightest union of its contributing
	// primitives plus fixed padding.
	a := NewAnalyzer()
	geom := model.PageGeometry{Width: 600, Height: 800}

	prims := []model.Primitive{
		{ID: "DRAW_RAW0", Rect: model.Rect{X0: 100, Y0: 100, X1: 160, Y1: 140}},
		{ID: "DRAW_RAW1", Rect: model.Rect{X0: 150, Y0: 110, X1: 220, Y1: 150}},
		{ID: "DRAW_RAW2", Rect: model.Rect{X0: 210, Y0: 95, X1: 260, Y1: 135}},
	}

	res, err := a.AnalyzePage(nil, nil, prims, geom)
	if err != nil {
		t.Fatalf("AnalyzePage() failed: %v", err)
	}
	if len(res.Clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(res.Clusters))
	}

	union := prims[0].Rect.Union(prims[1].Rect).Union(prims[2].Rect)
	want := union.Expand(DefaultConfig().ClusterPadding)
	if res.Clusters[0].Rect != want {
		t.Errorf("cluster Rect = %+v, want tight union plus padding %+v", res.Clusters[0].Rect, want)
	}
}

func TestAnalyzer_SetTrace(t *testing.T) {
	a := NewAnalyzer()
	rec := &recordingTrace{}
	a.SetTrace(rec)

	geom := model.PageGeometry{Width: 600, Height: 800}
	prims := []model.Primitive{
		{ID: "frame", Rect: model.Rect{X0: 0, Y0: 0, X1: 599, Y1: 799}},
		{ID: "tiny", Rect: model.Rect{X0: 10, Y0: 10, X1: 20, Y1: 20}},
	}

	if _, err := a.AnalyzePage(nil, nil, prims, geom); err != nil {
		t.Fatalf("AnalyzePage() failed: %v", err)
	}

	if rec.rejected["frame"] != DropPageFrame {
		t.Errorf("frame rejection = %q, want %q", rec.rejected["frame"], DropPageFrame)
	}
	if len(rec.dropped) != 1 || rec.dropped[0] != DropNoise {
		t.Errorf("cluster drops = %v, want [%q]", rec.dropped, DropNoise)
	}

	// Resetting to nil restores the no-op sink without panicking.
	a.SetTrace(nil)
	if _, err := a.AnalyzePage(nil, nil, prims, geom); err != nil {
		t.Fatalf("AnalyzePage() with nil trace failed: %v", err)
	}
}

func TestLogTrace(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	a := NewAnalyzer()
	a.SetTrace(NewLogTrace(logger))

	geom := model.PageGeometry{Width: 600, Height: 800}
	prims := []model.Primitive{
		{ID: "frame", Rect: model.Rect{X0: 0, Y0: 0, X1: 599, Y1: 799}},
	}

	if _, err := a.AnalyzePage(nil, nil, prims, geom); err != nil {
		t.Fatalf("AnalyzePage() failed: %v", err)
	}

	entries := hook.AllEntries()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if entries[0].Message != "primitive rejected" {
		t.Errorf("message = %q, want 'primitive rejected'", entries[0].Message)
	}
	if entries[0].Data["primitive"] != "frame" {
		t.Errorf("primitive field = %v, want 'frame'", entries[0].Data["primitive"])
	}
	if entries[0].Data["reason"] != string(DropPageFrame) {
		t.Errorf("reason field = %v, want %q", entries[0].Data["reason"], DropPageFrame)
	}
}
