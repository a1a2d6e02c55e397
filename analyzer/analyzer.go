package analyzer

import (
	"sort"

	"github.com/samber/lo"
)

// Analyzer 持有清洗后的两张输入表，按buffer距离分组计算关键性得分。
// 构造后输入表不再变化，一次Run内所有派生表都由它产出。
type Analyzer struct {
	// bridge_IOP -> 功能性记录
	functionality map[string]FunctionalityRecord
	efficiency    []EfficiencyRecord
	// 升序去重后的buffer距离
	buffers []float64
}

func New(functionality []FunctionalityRecord, efficiency []EfficiencyRecord) *Analyzer {
	// 将array转换为map
	index := make(map[string]FunctionalityRecord, len(functionality))
	for _, f := range functionality {
		if _, ok := index[f.BridgeIOP]; ok {
			log.Warnf("duplicate functionality row for bridge %s, keeping the last one", f.BridgeIOP)
		}
		index[f.BridgeIOP] = f
	}
	buffers := lo.Uniq(lo.Map(efficiency, func(e EfficiencyRecord, _ int) float64 {
		return e.BufferKm
	}))
	sort.Float64s(buffers)
	return &Analyzer{
		functionality: index,
		efficiency:    efficiency,
		buffers:       buffers,
	}
}

func (a *Analyzer) BufferDistances() []float64 {
	return a.buffers
}
