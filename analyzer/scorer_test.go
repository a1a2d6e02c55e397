package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niloufar07/Foggia-Road-Network/analyzer"
)

func testFunctionality() []analyzer.FunctionalityRecord {
	return []analyzer.FunctionalityRecord{
		{BridgeIOP: "B1", FunctionalityPct: 80},
		{BridgeIOP: "B2", FunctionalityPct: 90},
		{BridgeIOP: "B3", FunctionalityPct: 85},
	}
}

func testEfficiency() []analyzer.EfficiencyRecord {
	return []analyzer.EfficiencyRecord{
		// buffer距离故意乱序，BufferDistances应当升序去重
		{BridgeIOP: "B1", Highway: "primary", BufferKm: 10, OsmID: "w1",
			OriginalEfficiency: 0.40, NewEfficiency: 0.39, ChangeInEfficiency: -0.01},
		{BridgeIOP: "B1", Highway: "primary", BufferKm: 5, OsmID: "w1",
			OriginalEfficiency: 0.50, NewEfficiency: 0.48, ChangeInEfficiency: -0.02},
		{BridgeIOP: "B2", Highway: "secondary", BufferKm: 5, OsmID: "w2",
			OriginalEfficiency: 0.50, NewEfficiency: 0.49, ChangeInEfficiency: -0.01},
		{BridgeIOP: "B2", Highway: "secondary", BufferKm: 10, OsmID: "w2",
			OriginalEfficiency: 0.40, NewEfficiency: 0.395, ChangeInEfficiency: -0.005},
		// B9没有功能性数据，会在内连接时被丢弃
		{BridgeIOP: "B9", Highway: "tertiary", BufferKm: 5, OsmID: "w9",
			OriginalEfficiency: 0.50, NewEfficiency: 0.50, ChangeInEfficiency: 0},
	}
}

func TestBufferDistances(t *testing.T) {
	a := analyzer.New(testFunctionality(), testEfficiency())
	assert.Equal(t, []float64{5, 10}, a.BufferDistances())
}

func TestScoreAll(t *testing.T) {
	a := analyzer.New(testFunctionality(), testEfficiency())
	scored, loss := a.ScoreAll()

	// 内连接后行数不超过任一侧的行数
	assert.Len(t, scored, 4)
	assert.Equal(t, 1, loss.MissingFunctionality)
	// B3两个组都没有效率数据，B9计入MissingFunctionality
	assert.Equal(t, 2, loss.MissingEfficiency)

	// 组按buffer升序拼接，组内保持效率表原始行序
	assert.Equal(t, 5.0, scored[0].BufferKm)
	assert.Equal(t, "B1", scored[0].BridgeIOP)
	assert.Equal(t, 5.0, scored[1].BufferKm)
	assert.Equal(t, "B2", scored[1].BridgeIOP)
	assert.Equal(t, 10.0, scored[2].BufferKm)
	assert.Equal(t, "B1", scored[2].BridgeIOP)

	// buffer=5组：B1功能性最低且损失最大，得分1；B2得分0
	assert.Equal(t, 0.02, scored[0].AbsEfficiencyChange)
	assert.Equal(t, 1.0, scored[0].NormFunc)
	assert.Equal(t, 1.0, scored[0].NormEff)
	assert.Equal(t, 1.0, scored[0].CriticalityScore)
	assert.Equal(t, 0.0, scored[1].CriticalityScore)

	// 相对效率变化 = change / original
	assert.InDelta(t, -0.04, scored[0].RelativeChange, 1e-12)
	assert.InDelta(t, 0.04, scored[0].AbsRelativeChange, 1e-12)

	// 归一化参数按组独立：buffer=10组内B1仍得1分
	assert.Equal(t, 1.0, scored[2].CriticalityScore)
	assert.Equal(t, 0.0, scored[3].CriticalityScore)
}

func TestScoreAllBounds(t *testing.T) {
	a := analyzer.New(testFunctionality(), testEfficiency())
	scored, _ := a.ScoreAll()
	for _, r := range scored {
		assert.GreaterOrEqual(t, r.CriticalityScore, 0.0)
		assert.LessOrEqual(t, r.CriticalityScore, 1.0)
	}
}

func TestScoreAllPure(t *testing.T) {
	a := analyzer.New(testFunctionality(), testEfficiency())
	scored1, _ := a.ScoreAll()
	scored2, _ := a.ScoreAll()
	assert.Equal(t, scored1, scored2)
}

func TestScoreAllZeroOriginalEfficiency(t *testing.T) {
	// original为0时相对变化回落为0而不是Inf/NaN
	a := analyzer.New(
		[]analyzer.FunctionalityRecord{
			{BridgeIOP: "B1", FunctionalityPct: 80},
			{BridgeIOP: "B2", FunctionalityPct: 90},
		},
		[]analyzer.EfficiencyRecord{
			{BridgeIOP: "B1", BufferKm: 5, OriginalEfficiency: 0, NewEfficiency: 0, ChangeInEfficiency: 0},
			{BridgeIOP: "B2", BufferKm: 5, OriginalEfficiency: 0.5, NewEfficiency: 0.49, ChangeInEfficiency: -0.01},
		},
	)
	scored, _ := a.ScoreAll()
	assert.Equal(t, 0.0, scored[0].RelativeChange)
	assert.Equal(t, 0.0, scored[0].AbsRelativeChange)
}
