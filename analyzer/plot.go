package analyzer

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// 趋势图中叠加的高频关键桥轨迹条数
const trendTrajectoryCount = 5

// Plotter 只消费已经算好的表，打分流程不依赖任何渲染代码
type Plotter struct {
	dir  string
	topN int
}

func NewPlotter(dir string, topN int) *Plotter {
	return &Plotter{dir: dir, topN: topN}
}

// RenderAll 渲染全部对比图：每个buffer的得分分布直方图与功能性-效率散点、
// 平均效率变化趋势图、选定buffer的绝对-相对效率变化散点。
// scatterBuffer为0时取最大的buffer距离。
func (p *Plotter) RenderAll(
	scored []ScoredRecord,
	summary []SummaryRecord,
	freqs []BridgeFrequency,
	scatterBuffer float64,
) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return err
	}
	byBuffer := lo.GroupBy(scored, func(r ScoredRecord) float64 { return r.BufferKm })
	buffers := lo.Keys(byBuffer)
	sort.Float64s(buffers)
	if len(buffers) == 0 {
		return fmt.Errorf("no scored rows to plot")
	}

	for _, b := range buffers {
		top := lo.Filter(summary, func(r SummaryRecord, _ int) bool { return r.BufferKm == b })
		if err := p.renderScoreHistogram(b, byBuffer[b]); err != nil {
			return err
		}
		if err := p.renderCriticalityScatter(b, byBuffer[b], top); err != nil {
			return err
		}
	}

	if err := p.renderTrend(scored, freqs); err != nil {
		return err
	}

	if scatterBuffer == 0 {
		scatterBuffer = buffers[len(buffers)-1]
	}
	group, ok := byBuffer[scatterBuffer]
	if !ok {
		return fmt.Errorf("no scored rows for buffer %gkm", scatterBuffer)
	}
	return p.renderRelativeScatter(scatterBuffer, group)
}

// 组内关键性得分分布直方图
func (p *Plotter) renderScoreHistogram(buffer float64, group []ScoredRecord) error {
	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("Criticality score distribution (buffer %g km)", buffer)
	plt.X.Label.Text = "criticality score"
	plt.Y.Label.Text = "bridge count"
	values := make(plotter.Values, 0, len(group))
	for _, r := range group {
		values = append(values, r.CriticalityScore)
	}
	h, err := plotter.NewHist(values, 20)
	if err != nil {
		return err
	}
	plt.Add(h)
	return plt.Save(6*vg.Inch, 4*vg.Inch,
		filepath.Join(p.dir, fmt.Sprintf("score_hist_buffer_%g.png", buffer)))
}

// 功能性-效率损失散点，整组为灰色底，前N名按得分着色叠加
func (p *Plotter) renderCriticalityScatter(
	buffer float64,
	group []ScoredRecord,
	top []SummaryRecord,
) error {
	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("Functionality vs efficiency change (buffer %g km)", buffer)
	plt.X.Label.Text = "functionality (%)"
	plt.Y.Label.Text = "abs efficiency change"

	base := make(plotter.XYs, 0, len(group))
	for _, r := range group {
		base = append(base, plotter.XY{X: r.FunctionalityPct, Y: r.AbsEfficiencyChange})
	}
	baseScatter, err := plotter.NewScatter(base)
	if err != nil {
		return err
	}
	baseScatter.GlyphStyle = draw.GlyphStyle{
		Color:  color.Gray{Y: 0xb0},
		Radius: vg.Points(2),
		Shape:  draw.CircleGlyph{},
	}
	plt.Add(baseScatter)
	plt.Legend.Add("all bridges", baseScatter)

	if len(top) > 0 {
		highlighted := make(plotter.XYs, 0, len(top))
		for _, r := range top {
			highlighted = append(highlighted, plotter.XY{X: r.FunctionalityPct, Y: r.AbsEfficiencyChange})
		}
		topScatter, err := plotter.NewScatter(highlighted)
		if err != nil {
			return err
		}
		cm := moreland.SmoothBlueRed()
		cm.SetMin(0)
		cm.SetMax(1)
		topScatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			c, err := cm.At(top[i].CriticalityScore)
			if err != nil {
				c = color.Black
			}
			return draw.GlyphStyle{Color: c, Radius: vg.Points(3.5), Shape: draw.CircleGlyph{}}
		}
		plt.Add(topScatter)
		plt.Legend.Add(fmt.Sprintf("top %d by score", p.topN), topScatter)
	}
	plt.Legend.Top = true
	return plt.Save(6*vg.Inch, 4*vg.Inch,
		filepath.Join(p.dir, fmt.Sprintf("criticality_scatter_buffer_%g.png", buffer)))
}

// 平均效率变化随buffer距离的趋势，叠加高频关键桥的轨迹
func (p *Plotter) renderTrend(scored []ScoredRecord, freqs []BridgeFrequency) error {
	plt := plot.New()
	plt.Title.Text = "Mean efficiency change vs buffer distance"
	plt.X.Label.Text = "buffer distance (km)"
	plt.Y.Label.Text = "efficiency change"

	trend := MeanChangeByBuffer(scored)
	meanXYs := make(plotter.XYs, 0, len(trend))
	for _, t := range trend {
		meanXYs = append(meanXYs, plotter.XY{X: t.BufferKm, Y: t.MeanChange})
	}
	meanLine, meanPoints, err := plotter.NewLinePoints(meanXYs)
	if err != nil {
		return err
	}
	meanLine.Width = vg.Points(2)
	plt.Add(meanLine, meanPoints)
	plt.Legend.Add("mean (all bridges)", meanLine)

	count := trendTrajectoryCount
	if count > len(freqs) {
		count = len(freqs)
	}
	for i, f := range freqs[:count] {
		rows := lo.Filter(scored, func(r ScoredRecord, _ int) bool {
			return r.BridgeIOP == f.BridgeIOP
		})
		sort.Slice(rows, func(x, y int) bool { return rows[x].BufferKm < rows[y].BufferKm })
		xys := make(plotter.XYs, 0, len(rows))
		for _, r := range rows {
			xys = append(xys, plotter.XY{X: r.BufferKm, Y: r.ChangeInEfficiency})
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i + 1)
		plt.Add(line)
		plt.Legend.Add(f.BridgeIOP, line)
	}
	plt.Legend.Top = true
	return plt.Save(6*vg.Inch, 4*vg.Inch, filepath.Join(p.dir, "efficiency_trend.png"))
}

// 选定buffer下绝对效率变化与相对效率变化的散点
func (p *Plotter) renderRelativeScatter(buffer float64, group []ScoredRecord) error {
	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("Absolute vs relative efficiency change (buffer %g km)", buffer)
	plt.X.Label.Text = "abs efficiency change"
	plt.Y.Label.Text = "abs relative efficiency change"
	xys := make(plotter.XYs, 0, len(group))
	for _, r := range group {
		xys = append(xys, plotter.XY{X: r.AbsEfficiencyChange, Y: r.AbsRelativeChange})
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle = draw.GlyphStyle{
		Color:  plotutil.Color(0),
		Radius: vg.Points(2.5),
		Shape:  draw.CircleGlyph{},
	}
	plt.Add(s)
	return plt.Save(6*vg.Inch, 4*vg.Inch,
		filepath.Join(p.dir, fmt.Sprintf("abs_vs_relative_change_buffer_%g.png", buffer)))
}
