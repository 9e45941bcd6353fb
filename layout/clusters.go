package layout

import (
	"strconv"

	"github.com/tsawler/figura/model"
)

// ClusterFilter rejects merged rectangles unsuitable as content
// clusters, then finalizes the survivors: fixed padding on all sides,
// derived metrics, and a stable sequential identifier assigned in
// finalization order.
type ClusterFilter struct {
	config Config
	trace  Trace
}

// NewClusterFilter creates a cluster filter with default configuration.
func NewClusterFilter() *ClusterFilter {
	return NewClusterFilterWithConfig(DefaultConfig())
}

// NewClusterFilterWithConfig creates a cluster filter with the specified
// configuration.
func NewClusterFilterWithConfig(config Config) *ClusterFilter {
	return &ClusterFilter{
		config: config,
		trace:  NopTrace{},
	}
}

// Finalize turns merged rectangles into the final cluster list. A region
// is dropped when it covers most of the page in both dimensions (a
// background pane) or falls below the area floor (noise). Metrics
// describe the pre-padding union; only the output rectangle is padded.
func (f *ClusterFilter) Finalize(merged []model.Rect, geom model.PageGeometry) []model.Cluster {
	var clusters []model.Cluster

	for _, r := range merged {
		area := r.Area()
		if area <= 0 {
			f.trace.ClusterDropped(r, DropDegenerate, ClusterMetrics{})
			continue
		}

		metrics := ClusterMetrics{
			WidthRatio:  r.Width() / geom.Width,
			HeightRatio: r.Height() / geom.Height,
			Area:        area,
		}

		switch {
		case metrics.WidthRatio > f.config.PaneWidthRatio &&
			metrics.HeightRatio > f.config.PaneHeightRatio:
			f.trace.ClusterDropped(r, DropPagePane, metrics)
			continue
		case area < f.config.MinClusterArea:
			f.trace.ClusterDropped(r, DropNoise, metrics)
			continue
		}

		clusters = append(clusters, model.Cluster{
			ID:          "D" + strconv.Itoa(len(clusters)),
			Rect:        r.Expand(f.config.ClusterPadding),
			WidthRatio:  metrics.WidthRatio,
			HeightRatio: metrics.HeightRatio,
			Area:        area,
			CoverRatio:  area / geom.Area(),
			YMin:        r.Y0,
			YMax:        r.Y1,
		})
	}

	return clusters
}
