package main

import (
	"flag"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"

	"github.com/niloufar07/Foggia-Road-Network/analyzer"
)

var (
	// 配置信息
	mongoURI         = flag.String("mongo_uri", "", "mongo db uri, only needed when inputs are {db}.{col}")
	functionalityStr = flag.String("functionality", "", "bridge functionality table [format: {fspath} or {db}.{col}]")
	efficiencyStr    = flag.String("efficiency", "", "network efficiency loss table [format: {fspath} or {db}.{col}]")
	outputDir        = flag.String("output", "output", "output dir for csv artifacts")
	plotDir          = flag.String("plots", "output/plots", "output dir for charts (empty means disable rendering)")
	topN             = flag.Int("top", 10, "top critical bridge count per buffer distance")
	scatterBuffer    = flag.Float64("scatter-buffer", 0, "buffer distance (km) for the absolute/relative change scatter (0 means the largest)")
	logLevel         = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")

	// 性能测试
	benchmark  = flag.Bool("benchmark", false, "benchmark mode")
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	flag.Parse()
	if level, ok := LOG_LEVELS[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", *logLevel)
	}

	functionalityPath, err := NewPath(*functionalityStr)
	if err != nil {
		log.Fatalf("invalid functionality path: %s", err)
	}
	if functionalityPath == nil {
		log.Fatalf("functionality table is required")
	}
	efficiencyPath, err := NewPath(*efficiencyStr)
	if err != nil {
		log.Fatalf("invalid efficiency path: %s", err)
	}
	if efficiencyPath == nil {
		log.Fatalf("efficiency table is required")
	}

	if *cpuProfile != "" {
		stop := startCPUProfile(*cpuProfile)
		defer stop()
	}

	functionality, efficiency := LoadTables(*mongoURI, functionalityPath, efficiencyPath)

	if *benchmark {
		// 性能测试
		runBenchmark(functionality, efficiency)
		return
	}

	// 打分流水线：按buffer距离分组做min-max归一化并计算关键性得分
	a := analyzer.New(functionality, efficiency)
	scored, loss := a.ScoreAll()
	log.Infof("scored %d (bridge, buffer) pairs over %d buffer distances",
		len(scored), len(a.BufferDistances()))
	if loss.MissingFunctionality > 0 || loss.MissingEfficiency > 0 {
		log.Warnf("inner join dropped rows: %d without functionality, %d without efficiency",
			loss.MissingFunctionality, loss.MissingEfficiency)
	}

	// 汇总与产出
	summary := analyzer.TopCritical(scored, *topN)
	freqs := analyzer.FrequentCritical(summary)
	highways := analyzer.AggregateByHighway(scored)
	if err := analyzer.WriteArtifacts(*outputDir, scored, summary, highways); err != nil {
		log.Fatalf("failed to write csv artifacts to %s: %v", *outputDir, err)
	}
	log.Infof("csv artifacts written to %s", *outputDir)

	// 图表渲染（可选）
	if *plotDir != "" {
		p := analyzer.NewPlotter(*plotDir, *topN)
		if err := p.RenderAll(scored, summary, freqs, *scatterBuffer); err != nil {
			log.Fatalf("failed to render charts to %s: %v", *plotDir, err)
		}
		log.Infof("charts written to %s", *plotDir)
	}
}
