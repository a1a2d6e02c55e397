package analyzer

// 功能性表原始行：标识列为IOP，功能性为百分比字符串（如"93.4%"）
type RawFunctionalityRecord struct {
	IOP           string `csv:"IOP"`
	Functionality string `csv:"Functionality"`
}

// 震后桥梁结构功能性，每座桥一行，与buffer距离无关
type FunctionalityRecord struct {
	BridgeIOP        string  `csv:"bridge_IOP"`
	FunctionalityPct float64 `csv:"functionality"`
}

// 单座桥在单个buffer距离下的全局效率变化，由上游GIS流水线产出
type EfficiencyRecord struct {
	BridgeIOP          string  `csv:"bridge_IOP"`
	Highway            string  `csv:"highway"`
	BufferKm           float64 `csv:"buffer_km"`
	OsmID              string  `csv:"osm_id"`
	OriginalEfficiency float64 `csv:"original_efficiency"`
	NewEfficiency      float64 `csv:"new_efficiency"`
	ChangeInEfficiency float64 `csv:"change_in_efficiency"`
}

// 内连接后带派生指标的评分行，归一化参数只在本buffer组内取min/max
type ScoredRecord struct {
	BufferKm            float64 `csv:"buffer_km"`
	BridgeIOP           string  `csv:"bridge_IOP"`
	Highway             string  `csv:"highway"`
	OsmID               string  `csv:"osm_id"`
	FunctionalityPct    float64 `csv:"functionality"`
	OriginalEfficiency  float64 `csv:"original_efficiency"`
	NewEfficiency       float64 `csv:"new_efficiency"`
	ChangeInEfficiency  float64 `csv:"change_in_efficiency"`
	AbsEfficiencyChange float64 `csv:"abs_efficiency_change"`
	NormFunc            float64 `csv:"norm_func"`
	NormEff             float64 `csv:"norm_eff"`
	CriticalityScore    float64 `csv:"criticality_score"`
	RelativeChange      float64 `csv:"relative_efficiency_change"`
	AbsRelativeChange   float64 `csv:"abs_relative_efficiency_change"`
}

// 跨buffer汇总表的行，rank为组内按得分降序的名次（从1开始）
type SummaryRecord struct {
	Rank int `csv:"rank"`
	ScoredRecord
}

// 进入多个buffer组前N名的桥
type BridgeFrequency struct {
	BridgeIOP string `csv:"bridge_IOP"`
	Buffers   int    `csv:"buffer_group_count"`
}

// 按highway类型的聚合统计
type HighwayAggregate struct {
	Highway   string  `csv:"highway"`
	Count     int     `csv:"count"`
	MeanScore float64 `csv:"mean_criticality_score"`
	MaxScore  float64 `csv:"max_criticality_score"`
}

// 内连接丢弃的行数统计
type JoinLoss struct {
	// 有效率数据但缺功能性数据的行数
	MissingFunctionality int
	// 有功能性数据但在某buffer组内缺效率数据的桥数（按组累计）
	MissingEfficiency int
}
