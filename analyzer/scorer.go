package analyzer

import (
	"math"

	"github.com/samber/lo"

	"github.com/niloufar07/Foggia-Road-Network/analyzer/algo"
)

// ScoreAll 按buffer距离升序逐组打分并拼接为一张综合评分表。
// 各组的min-max归一化参数相互独立，组内行序保持效率表的原始行序。
func (a *Analyzer) ScoreAll() ([]ScoredRecord, JoinLoss) {
	var loss JoinLoss
	results := make([]ScoredRecord, 0, len(a.efficiency))
	for _, b := range a.buffers {
		group := lo.Filter(a.efficiency, func(e EfficiencyRecord, _ int) bool {
			return e.BufferKm == b
		})
		scored, groupLoss := a.scoreGroup(b, group)
		results = append(results, scored...)
		loss.MissingFunctionality += groupLoss.MissingFunctionality
		loss.MissingEfficiency += groupLoss.MissingEfficiency
	}
	return results, loss
}

// 单个buffer组：内连接、归一化、关键性得分与相对效率变化
func (a *Analyzer) scoreGroup(buffer float64, group []EfficiencyRecord) ([]ScoredRecord, JoinLoss) {
	// 内连接，两侧缺数据的桥都会被丢弃，丢弃数量记入日志而非静默
	joined := lo.Filter(group, func(e EfficiencyRecord, _ int) bool {
		_, ok := a.functionality[e.BridgeIOP]
		return ok
	})
	loss := JoinLoss{
		MissingFunctionality: len(group) - len(joined),
		MissingEfficiency: len(a.functionality) - len(lo.UniqBy(joined,
			func(e EfficiencyRecord) string { return e.BridgeIOP })),
	}
	if loss.MissingFunctionality > 0 {
		log.Warnf("buffer %gkm: dropped %d efficiency rows without functionality data",
			buffer, loss.MissingFunctionality)
	}
	if loss.MissingEfficiency > 0 {
		log.Warnf("buffer %gkm: %d bridges with functionality data have no efficiency row",
			buffer, loss.MissingEfficiency)
	}

	samples := lo.Map(joined, func(e EfficiencyRecord, _ int) algo.Sample {
		return algo.Sample{
			ID:               e.BridgeIOP,
			Functionality:    a.functionality[e.BridgeIOP].FunctionalityPct,
			EfficiencyChange: e.ChangeInEfficiency,
		}
	})
	scored := algo.ScoreGroup(samples)

	records := make([]ScoredRecord, 0, len(joined))
	for i, e := range joined {
		s := scored[i]
		relative := 0.0
		if e.OriginalEfficiency != 0 {
			relative = e.ChangeInEfficiency / e.OriginalEfficiency
		} else {
			log.Warnf("bridge %s: original efficiency is 0, relative change reported as 0", e.BridgeIOP)
		}
		records = append(records, ScoredRecord{
			BufferKm:            buffer,
			BridgeIOP:           e.BridgeIOP,
			Highway:             e.Highway,
			OsmID:               e.OsmID,
			FunctionalityPct:    a.functionality[e.BridgeIOP].FunctionalityPct,
			OriginalEfficiency:  e.OriginalEfficiency,
			NewEfficiency:       e.NewEfficiency,
			ChangeInEfficiency:  e.ChangeInEfficiency,
			AbsEfficiencyChange: s.AbsChange,
			NormFunc:            s.NormFunc,
			NormEff:             s.NormEff,
			CriticalityScore:    s.CriticalityScore,
			RelativeChange:      relative,
			AbsRelativeChange:   math.Abs(relative),
		})
	}
	return records, loss
}
