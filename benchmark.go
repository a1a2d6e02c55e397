package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/niloufar07/Foggia-Road-Network/analyzer"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 1000, "the scoring pass count for benchmark")
	benchmarkSeed  = flag.Int64("benchmark.seed", 0, "the seed for benchmark")
)

// 反复重建并打分以测量耗时，每轮打乱效率表行序，验证耗时与行序无关
func runBenchmark(
	functionality []analyzer.FunctionalityRecord,
	efficiency []analyzer.EfficiencyRecord,
) {
	log.Logger.SetLevel(logrus.WarnLevel)
	// 设置随机种子
	e := rand.New(rand.NewSource(*benchmarkSeed))

	// 开始benchmark
	start := time.Now()
	var rows int
	for i := 0; i < *benchmarkCount; i++ {
		e.Shuffle(len(efficiency), func(x, y int) {
			efficiency[x], efficiency[y] = efficiency[y], efficiency[x]
		})
		a := analyzer.New(functionality, efficiency)
		scored, _ := a.ScoreAll()
		rows += len(scored)
	}
	timeCost := time.Since(start)
	log.Error(
		"benchmark finished", "\n",
		"count:", *benchmarkCount, "\n",
		"scored rows:", rows, "\n",
		"time:", timeCost, "\n",
		"avg:", timeCost/time.Duration(*benchmarkCount), "\n",
	)
}
