package algo

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
)

// 单座桥参与单个buffer组打分的输入元组
type Sample struct {
	ID string
	// 震后结构功能性，0-100
	Functionality float64
	// 全局效率变化（new - original），一般≤0
	EfficiencyChange float64
}

// 组内归一化后的打分结果，与Sample一一对应且保持输入顺序
type Scored struct {
	ID               string
	AbsChange        float64
	NormFunc         float64
	NormEff          float64
	CriticalityScore float64
}

// 组内某个指标取值全部相同（max==min）时归一化分母为0，
// 此时该指标贡献固定中点0.5，保证得分始终落在[0,1]
const DegenerateScore = 0.5

func MinMax(xs []float64) (float64, float64, error) {
	min, err := stats.Min(xs)
	if err != nil {
		return 0, 0, err
	}
	max, err := stats.Max(xs)
	if err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

func Normalize(x, min, max float64) float64 {
	if max <= min {
		return DegenerateScore
	}
	return (x - min) / (max - min)
}

// ScoreGroup 对一个buffer组内的样本做min-max归一化并计算关键性得分。
// 功能性取反向（功能性越低越关键），效率损失幅度取正向（损失越大越关键），
// 关键性得分为两者的等权平均。
func ScoreGroup(samples []Sample) []Scored {
	if len(samples) == 0 {
		return nil
	}
	absChanges := lo.Map(samples, func(s Sample, _ int) float64 {
		return math.Abs(s.EfficiencyChange)
	})
	functionality := lo.Map(samples, func(s Sample, _ int) float64 {
		return s.Functionality
	})
	fMin, fMax, _ := MinMax(functionality)
	eMin, eMax, _ := MinMax(absChanges)
	scored := make([]Scored, 0, len(samples))
	for i, s := range samples {
		normFunc := 1 - Normalize(s.Functionality, fMin, fMax)
		normEff := Normalize(absChanges[i], eMin, eMax)
		scored = append(scored, Scored{
			ID:               s.ID,
			AbsChange:        absChanges[i],
			NormFunc:         normFunc,
			NormEff:          normEff,
			CriticalityScore: (normFunc + normEff) / 2,
		})
	}
	return scored
}
