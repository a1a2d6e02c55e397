package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPathFile(t *testing.T) {
	// 实际存在的文件按文件路径处理
	file := filepath.Join(t.TempDir(), "functionality.csv")
	assert.NoError(t, os.WriteFile(file, []byte("IOP,Functionality\n"), 0o644))
	p, err := NewPath(file)
	assert.NoError(t, err)
	assert.Equal(t, file, p.File)
	assert.Empty(t, p.DB)

	// 不存在但形如文件路径的输入也按文件处理，错误留到加载阶段
	p, err = NewPath("data/missing.csv")
	assert.NoError(t, err)
	assert.Equal(t, "data/missing.csv", p.File)
}

func TestNewPathColl(t *testing.T) {
	p, err := NewPath("foggia.efficiency")
	assert.NoError(t, err)
	assert.Empty(t, p.File)
	assert.Equal(t, "foggia", p.GetDb())
	assert.Equal(t, "efficiency", p.GetColl())
	assert.Equal(t, "foggia.efficiency", p.String())
}

func TestNewPathInvalid(t *testing.T) {
	p, err := NewPath("")
	assert.NoError(t, err)
	assert.Nil(t, p)

	_, err = NewPath("a.b.c")
	assert.Error(t, err)
}
