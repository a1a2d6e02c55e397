package main

import (
	"os"
	"runtime/pprof"
)

// 将整个批处理过程的CPU profile写入文件，供go tool pprof离线分析
func startCPUProfile(path string) func() {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create cpu profile %s: %v", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		log.Fatalf("failed to start cpu profile: %v", err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}
