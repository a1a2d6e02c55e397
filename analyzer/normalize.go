package analyzer

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePercent 去掉百分号后缀后按浮点数解析，"93.4%" -> 93.4。
// 缺少百分号或数值非法时报错，该转换在加载时只应用一次。
func ParsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("missing %% suffix: %q", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percent value: %q", s)
	}
	return v, nil
}

// NormalizeFunctionality 清洗功能性表：解析百分比字符串，
// 并把连接键从IOP统一为效率表使用的bridge_IOP
func NormalizeFunctionality(raw []RawFunctionalityRecord) ([]FunctionalityRecord, error) {
	records := make([]FunctionalityRecord, 0, len(raw))
	for _, r := range raw {
		pct, err := ParsePercent(r.Functionality)
		if err != nil {
			return nil, fmt.Errorf("bridge %s: %v", r.IOP, err)
		}
		records = append(records, FunctionalityRecord{
			BridgeIOP:        r.IOP,
			FunctionalityPct: pct,
		})
	}
	return records, nil
}
