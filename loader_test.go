package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

// 文件加载路径不会触碰mongo
func noClient(t *testing.T) func() *mongo.Client {
	return func() *mongo.Client {
		t.Fatal("unexpected mongo access")
		return nil
	}
}

func writeTempCSV(t *testing.T, name, content string) *Path {
	file := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return &Path{File: file}
}

func TestLoadFunctionalityCSV(t *testing.T) {
	p := writeTempCSV(t, "functionality.csv",
		"IOP,Functionality\nB1,80%\nB2,93.4%\n")
	records, err := loadFunctionality(noClient(t), p)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "B1", records[0].BridgeIOP)
	assert.Equal(t, 80.0, records[0].FunctionalityPct)
	assert.Equal(t, 93.4, records[1].FunctionalityPct)
}

func TestLoadFunctionalityBadPercent(t *testing.T) {
	// 缺少百分号是致命的格式错误
	p := writeTempCSV(t, "functionality.csv",
		"IOP,Functionality\nB1,80\n")
	_, err := loadFunctionality(noClient(t), p)
	assert.Error(t, err)
}

func TestLoadFunctionalityMissingFile(t *testing.T) {
	_, err := loadFunctionality(noClient(t), &Path{File: "data/missing.csv"})
	assert.Error(t, err)
}

func TestLoadEfficiencyCSV(t *testing.T) {
	p := writeTempCSV(t, "efficiency.csv",
		"bridge_IOP,highway,buffer_km,osm_id,original_efficiency,new_efficiency,change_in_efficiency\n"+
			"B1,primary,5,w1,0.5,0.48,-0.02\n"+
			"B2,secondary,5,w2,0.5,0.49,-0.01\n")
	records, err := loadEfficiency(noClient(t), p)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "B1", records[0].BridgeIOP)
	assert.Equal(t, "primary", records[0].Highway)
	assert.Equal(t, 5.0, records[0].BufferKm)
	assert.Equal(t, 0.5, records[0].OriginalEfficiency)
	assert.Equal(t, -0.02, records[0].ChangeInEfficiency)
}
