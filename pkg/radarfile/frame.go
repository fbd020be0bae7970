package radarfile

import (
	"math"

	"github.com/ha1tch/radar-toolkit/pkg/radar"
)

const titleSpace = 30

// frame places the chart, optional title and optional legend on one canvas.
type frame struct {
	width, height    float64
	top              float64 // chart y offset below the title
	legendX, legendY float64
}

func computeFrame(s radar.Scene, legend *radar.LegendView, title string, gap int) frame {
	fr := frame{width: s.Width, height: s.Height}
	if title != "" {
		fr.top = titleSpace
		fr.height += fr.top
	}
	if legend == nil {
		return fr
	}

	if legend.Layout == radar.LegendHorizontal {
		fr.legendX, fr.legendY = 0, fr.top+s.Height+float64(gap)
		fr.height = fr.legendY + legend.Height
		fr.width = math.Max(fr.width, legend.Width)
	} else {
		fr.legendX, fr.legendY = s.Width+float64(gap), fr.top
		fr.width = fr.legendX + legend.Width
		fr.height = math.Max(fr.height, fr.top+legend.Height)
	}
	return fr
}
