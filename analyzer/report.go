package analyzer

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
)

// 每次运行覆盖写入的CSV产物
const (
	ScoresFileName  = "bridge_criticality_scores.csv"
	SummaryFileName = "top10_critical_bridges.csv"
	HighwayFileName = "highway_summary.csv"
)

// TopCritical 每个buffer组内按关键性得分降序取前n名并拼接为汇总表。
// 得分并列时保持组内原始行序（稳定排序），rank在组内从1起编号。
func TopCritical(scored []ScoredRecord, n int) []SummaryRecord {
	byBuffer := lo.GroupBy(scored, func(r ScoredRecord) float64 { return r.BufferKm })
	buffers := lo.Keys(byBuffer)
	sort.Float64s(buffers)
	summary := make([]SummaryRecord, 0, n*len(buffers))
	for _, b := range buffers {
		group := append([]ScoredRecord(nil), byBuffer[b]...)
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CriticalityScore > group[j].CriticalityScore
		})
		if len(group) > n {
			group = group[:n]
		}
		for i, r := range group {
			summary = append(summary, SummaryRecord{Rank: i + 1, ScoredRecord: r})
		}
	}
	return summary
}

// FrequentCritical 统计每座桥进入多少个不同buffer组的前N名，
// 出现在多于一个组的即为"frequent critical bridge"。
// 结果按组数降序、同组数按bridge_IOP升序。
func FrequentCritical(summary []SummaryRecord) []BridgeFrequency {
	byBridge := lo.GroupBy(summary, func(r SummaryRecord) string { return r.BridgeIOP })
	freqs := lo.MapToSlice(byBridge, func(id string, rows []SummaryRecord) BridgeFrequency {
		buffers := lo.UniqBy(rows, func(r SummaryRecord) float64 { return r.BufferKm })
		return BridgeFrequency{BridgeIOP: id, Buffers: len(buffers)}
	})
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Buffers != freqs[j].Buffers {
			return freqs[i].Buffers > freqs[j].Buffers
		}
		return freqs[i].BridgeIOP < freqs[j].BridgeIOP
	})
	return freqs
}

// AggregateByHighway 按highway类型汇总关键性得分，行按类型名升序
func AggregateByHighway(scored []ScoredRecord) []HighwayAggregate {
	byHighway := lo.GroupBy(scored, func(r ScoredRecord) string { return r.Highway })
	aggregates := lo.MapToSlice(byHighway, func(highway string, rows []ScoredRecord) HighwayAggregate {
		scores := lo.Map(rows, func(r ScoredRecord, _ int) float64 { return r.CriticalityScore })
		mean, _ := stats.Mean(scores)
		max, _ := stats.Max(scores)
		return HighwayAggregate{
			Highway:   highway,
			Count:     len(rows),
			MeanScore: mean,
			MaxScore:  max,
		}
	})
	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].Highway < aggregates[j].Highway
	})
	return aggregates
}

// 趋势图的一个点：某buffer距离下所有桥效率变化的均值
type TrendPoint struct {
	BufferKm   float64
	MeanChange float64
}

// MeanChangeByBuffer 每个buffer距离的平均效率变化，按距离升序
func MeanChangeByBuffer(scored []ScoredRecord) []TrendPoint {
	byBuffer := lo.GroupBy(scored, func(r ScoredRecord) float64 { return r.BufferKm })
	buffers := lo.Keys(byBuffer)
	sort.Float64s(buffers)
	points := make([]TrendPoint, 0, len(buffers))
	for _, b := range buffers {
		changes := lo.Map(byBuffer[b], func(r ScoredRecord, _ int) float64 {
			return r.ChangeInEfficiency
		})
		mean, _ := stats.Mean(changes)
		points = append(points, TrendPoint{BufferKm: b, MeanChange: mean})
	}
	return points
}

// WriteArtifacts 将综合评分表、跨buffer前N名汇总表与highway聚合表写入dir，
// 目录不存在时创建，已有文件被覆盖
func WriteArtifacts(
	dir string,
	scored []ScoredRecord,
	summary []SummaryRecord,
	highways []HighwayAggregate,
) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, ScoresFileName), &scored); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, SummaryFileName), &summary); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, HighwayFileName), &highways)
}

// ReadScores 读回已写出的综合评分表
func ReadScores(path string) ([]ScoredRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var rows []ScoredRecord
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func writeCSV(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(rows, f)
}
