package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niloufar07/Foggia-Road-Network/analyzer"
)

func TestParsePercent(t *testing.T) {
	v, err := analyzer.ParsePercent("80%")
	assert.NoError(t, err)
	assert.Equal(t, 80.0, v)

	v, err = analyzer.ParsePercent("93.4%")
	assert.NoError(t, err)
	assert.Equal(t, 93.4, v)

	// 允许首尾空白
	v, err = analyzer.ParsePercent(" 77.5 % ")
	assert.NoError(t, err)
	assert.Equal(t, 77.5, v)

	// 缺少百分号或数值非法都是格式错误
	_, err = analyzer.ParsePercent("80")
	assert.Error(t, err)
	_, err = analyzer.ParsePercent("abc%")
	assert.Error(t, err)
	_, err = analyzer.ParsePercent("")
	assert.Error(t, err)
}

func TestNormalizeFunctionality(t *testing.T) {
	records, err := analyzer.NormalizeFunctionality([]analyzer.RawFunctionalityRecord{
		{IOP: "B1", Functionality: "80%"},
		{IOP: "B2", Functionality: "93.4%"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []analyzer.FunctionalityRecord{
		{BridgeIOP: "B1", FunctionalityPct: 80.0},
		{BridgeIOP: "B2", FunctionalityPct: 93.4},
	}, records)
}

func TestNormalizeFunctionalityError(t *testing.T) {
	// 错误信息带上桥的标识，方便定位脏数据
	_, err := analyzer.NormalizeFunctionality([]analyzer.RawFunctionalityRecord{
		{IOP: "B1", Functionality: "80%"},
		{IOP: "B2", Functionality: "93.4"},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "B2")
}
